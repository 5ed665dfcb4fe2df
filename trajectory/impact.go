package trajectory

import (
	"math"

	"github.com/lixenwraith/shotplay/shot"
)

// ImpactThreshold bounds what counts as a collision between two samples
type ImpactThreshold struct {
	Turn     float64 // minimum heading change in radians
	MinSpeed float64 // ignore balls slower than this on both samples
	Jump     float64 // minimum speed gain, catches a resting ball being struck
}

// DefaultImpactThreshold catches cushion bounces and ball contacts while
// ignoring the gradual curve of swerve and rolling friction
var DefaultImpactThreshold = ImpactThreshold{
	Turn:     0.5,
	MinSpeed: 0.05,
	Jump:     0.2,
}

// DetectImpacts returns the frames where the velocity of a ball changes
// abruptly relative to the previous frame
func DetectImpacts(h shot.History, th ImpactThreshold) []int {
	var frames []int
	for i := 1; i < len(h); i++ {
		prev, cur := h[i-1], h[i]
		ps, cs := prev.Speed(), cur.Speed()

		if cs-ps >= th.Jump {
			frames = append(frames, i)
			continue
		}
		if ps < th.MinSpeed || cs < th.MinSpeed {
			continue
		}

		dot := prev.V[0]*cur.V[0] + prev.V[1]*cur.V[1]
		cos := dot / (ps * cs)
		cos = math.Max(-1, math.Min(1, cos))
		if math.Acos(cos) >= th.Turn {
			frames = append(frames, i)
		}
	}
	return frames
}
