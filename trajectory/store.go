// Package trajectory resamples recorded ball histories onto the pixel grid
// used by the renderer. The store is built once per shot and never mutated.
package trajectory

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/shotplay/shot"
)

// PX converts a simulation distance to pixels, truncating toward zero
func PX(scale, d float64) int {
	return int(scale * d)
}

// Track is the per-frame pixel path of one ball
type Track struct {
	X, Y    []int
	Speed   []float64 // planar speed in simulation units per second
	Impacts []int     // ascending frames with an abrupt velocity change
}

// Len returns the number of frames in the track
func (t Track) Len() int {
	return len(t.X)
}

// HasImpact reports whether frame is one of the track's impact frames
func (t Track) HasImpact(frame int) bool {
	i := sort.SearchInts(t.Impacts, frame)
	return i < len(t.Impacts) && t.Impacts[i] == frame
}

// Store holds every ball's track for one shot at one scale
type Store struct {
	scale  float64
	frames int
	tracks map[string]Track
	ids    []string
}

// New samples every ball history of s at the given scale. One entry per
// simulation frame, no interpolation.
func New(s shot.Shot, scale float64) (*Store, error) {
	if err := shot.CheckFrames(s); err != nil {
		return nil, err
	}

	n := s.N()
	ids := shot.BallIDs(s)
	st := &Store{
		scale:  scale,
		frames: n,
		tracks: make(map[string]Track, len(ids)),
		ids:    ids,
	}

	for _, id := range ids {
		h, err := s.History(id)
		if err != nil {
			return nil, fmt.Errorf("sample ball %q: %w", id, err)
		}
		tr := Track{
			X:     make([]int, n),
			Y:     make([]int, n),
			Speed: make([]float64, n),
		}
		for i := 0; i < n; i++ {
			tr.X[i] = PX(scale, h[i].R[0])
			tr.Y[i] = PX(scale, h[i].R[1])
			tr.Speed[i] = h[i].Speed()
		}
		tr.Impacts = DetectImpacts(h, DefaultImpactThreshold)
		st.tracks[id] = tr
	}

	return st, nil
}

// Scale returns pixels per simulation distance unit
func (s *Store) Scale() float64 { return s.scale }

// Frames returns the shot's frame count, equal to every track length
func (s *Store) Frames() int { return s.frames }

// IDs returns the ball ids in sorted order
func (s *Store) IDs() []string { return s.ids }

// Track returns the track of a ball
func (s *Store) Track(id string) (Track, bool) {
	t, ok := s.tracks[id]
	return t, ok
}

// ImpactAt reports whether any ball has an impact at frame
func (s *Store) ImpactAt(frame int) bool {
	for _, id := range s.ids {
		if s.tracks[id].HasImpact(frame) {
			return true
		}
	}
	return false
}
