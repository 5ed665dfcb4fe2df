package render

import (
	"math"

	"github.com/lixenwraith/shotplay/shot"
	"github.com/lixenwraith/shotplay/trajectory"
)

// Layout maps table geometry onto the frame buffer
// All *PX fields are pixels; TableX/TableY are simulation units
type Layout struct {
	Scale  float64 // pixels per simulation unit
	TableX float64 // full table width including rails and edges
	TableY float64 // full table length including rails and edges

	RailPX     int
	EdgePX     int
	TableXPX   int
	TableYPX   int
	SurfaceXPX int
	SurfaceYPX int
	DiamondPX  int
	OffsetXPX  int // playing surface origin within the frame
	OffsetYPX  int
}

// NewLayout fits the table into size pixels along its larger axis
func NewLayout(t shot.Table, size int, diamond float64) Layout {
	tx := 2*t.RailWidth + 2*t.EdgeWidth + t.W
	ty := 2*t.RailWidth + 2*t.EdgeWidth + t.L
	scale := float64(size) / math.Max(tx, ty)

	l := Layout{
		Scale:      scale,
		TableX:     tx,
		TableY:     ty,
		RailPX:     trajectory.PX(scale, t.RailWidth),
		EdgePX:     trajectory.PX(scale, t.EdgeWidth),
		TableXPX:   trajectory.PX(scale, tx),
		TableYPX:   trajectory.PX(scale, ty),
		SurfaceXPX: trajectory.PX(scale, t.W),
		SurfaceYPX: trajectory.PX(scale, t.L),
		DiamondPX:  trajectory.PX(scale, diamond),
	}
	l.OffsetXPX = (l.TableXPX - l.SurfaceXPX) / 2
	l.OffsetYPX = (l.TableYPX - l.SurfaceYPX) / 2
	return l
}

// Offset returns the playing surface origin as a Point
func (l Layout) Offset() Point {
	return Point{X: float64(l.OffsetXPX), Y: float64(l.OffsetYPX)}
}
