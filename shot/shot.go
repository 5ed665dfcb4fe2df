// Package shot describes a simulated pool shot as produced by an external
// trajectory simulator: table geometry, the balls on it, the sampled time
// axis and the recorded per-ball state history.
package shot

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Rail identifiers expected on every table
const (
	RailLeft   = "L"
	RailRight  = "R"
	RailTop    = "T" // back rail
	RailBottom = "B" // front rail
)

// ExpectedRails lists the rail ids a renderable table must carry
var ExpectedRails = []string{RailLeft, RailRight, RailTop, RailBottom}

// Sentinel errors
var (
	ErrInvalidShot    = errors.New("invalid shot")
	ErrEmptyShot      = errors.New("shot has no frames")
	ErrMissingHistory = errors.New("ball history missing or incomplete")
)

// Table is the static table geometry in simulation distance units
type Table struct {
	W         float64  `json:"w"` // playing surface width
	L         float64  `json:"l"` // playing surface length
	RailWidth float64  `json:"rail_width"`
	EdgeWidth float64  `json:"edge_width"`
	Rails     []string `json:"rails"`
}

// DefaultTable returns a 9ft table used when a shot carries unusable geometry
func DefaultTable() Table {
	return Table{
		W:         1.2700,
		L:         2.5400,
		RailWidth: 0.0508,
		EdgeWidth: 0.1000,
		Rails:     append([]string(nil), ExpectedRails...),
	}
}

// HasRail reports whether the table declares the given rail id
func (t Table) HasRail(id string) bool {
	for _, r := range t.Rails {
		if r == id {
			return true
		}
	}
	return false
}

// Usable reports whether the dimensions can be laid out on screen
func (t Table) Usable() bool {
	return t.W > 0 && t.L > 0 && t.RailWidth >= 0 && t.EdgeWidth >= 0
}

// Ball is the static description of one ball
type Ball struct {
	ID     string  `json:"id"`
	Radius float64 `json:"radius"`
}

// State is the kinematic state of a ball at one time sample
type State struct {
	R [3]float64 // position
	V [3]float64 // velocity
	W [3]float64 // angular velocity
}

// Speed returns the planar speed
func (s State) Speed() float64 {
	return math.Hypot(s.V[0], s.V[1])
}

// History is the full recorded state sequence of one ball, one entry per frame
type History []State

// Shot is the read-only view of a simulated shot consumed by the player
type Shot interface {
	Table() Table
	Balls() map[string]Ball
	Times() []float64
	N() int
	History(id string) (History, error)
}

// Recorded is an in-memory Shot
type Recorded struct {
	table     Table
	balls     map[string]Ball
	times     []float64
	histories map[string]History
}

// NewRecorded assembles a Shot from already simulated data
// Slices are retained, callers must not mutate them afterwards
func NewRecorded(table Table, balls []Ball, times []float64, histories map[string]History) *Recorded {
	bm := make(map[string]Ball, len(balls))
	for _, b := range balls {
		bm[b.ID] = b
	}
	return &Recorded{
		table:     table,
		balls:     bm,
		times:     times,
		histories: histories,
	}
}

func (s *Recorded) Table() Table           { return s.table }
func (s *Recorded) Balls() map[string]Ball { return s.balls }
func (s *Recorded) Times() []float64       { return s.times }
func (s *Recorded) N() int                 { return len(s.times) }

// History returns the recorded states of a ball
func (s *Recorded) History(id string) (History, error) {
	h, ok := s.histories[id]
	if !ok {
		return nil, fmt.Errorf("%w: ball %q", ErrMissingHistory, id)
	}
	return h, nil
}

// BallIDs returns the ball ids of a shot in sorted order
func BallIDs(s Shot) []string {
	balls := s.Balls()
	ids := make([]string, 0, len(balls))
	for id := range balls {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks table geometry. A non-nil result wraps ErrInvalidShot and
// is advisory: rendering proceeds with best-effort geometry.
func Validate(s Shot) error {
	t := s.Table()
	var missing []string
	for _, id := range ExpectedRails {
		if !t.HasRail(id) {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: table rails missing %v, expected %v", ErrInvalidShot, missing, ExpectedRails)
	}
	if !t.Usable() {
		return fmt.Errorf("%w: table dimensions w=%g l=%g rail=%g edge=%g", ErrInvalidShot, t.W, t.L, t.RailWidth, t.EdgeWidth)
	}
	return nil
}

// CheckFrames verifies the shot can be played: at least one frame and a
// complete history for every ball. Failures are fatal for a session.
func CheckFrames(s Shot) error {
	n := s.N()
	if n == 0 {
		return ErrEmptyShot
	}
	for _, id := range BallIDs(s) {
		h, err := s.History(id)
		if err != nil {
			return err
		}
		if len(h) != n {
			return fmt.Errorf("%w: ball %q has %d states, shot has %d frames", ErrMissingHistory, id, len(h), n)
		}
	}
	return nil
}

// InitialRate derives the playback rate from the last sampling interval
// Returns fallback when the time axis has fewer than two increasing samples
func InitialRate(times []float64, fallback float64) float64 {
	if len(times) < 2 {
		return fallback
	}
	dt := times[len(times)-1] - times[len(times)-2]
	if dt <= 0 {
		return fallback
	}
	return 1 / dt
}
