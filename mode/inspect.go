package mode

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/shotplay/input"
)

// InspectName shows per-ball position and speed at the current frame
const InspectName = "inspect"

// ErrNoStore is returned when inspect is entered without trajectory data
var ErrNoStore = errors.New("no trajectory store")

// Inspect keeps the side panel in sync with the displayed frame
type Inspect struct{}

// NewInspect is the inspect Factory
func NewInspect() Mode { return &Inspect{} }

func (m *Inspect) Name() string { return InspectName }

func (m *Inspect) Enter(h Host) error {
	if h.Store() == nil {
		return ErrNoStore
	}
	m.refresh(h)
	return nil
}

func (m *Inspect) Exit(h Host) {
	h.SetPanel(nil)
}

func (m *Inspect) Tasks() []Task {
	return []Task{
		{Name: "panel", Run: func(h Host) TaskStatus {
			m.refresh(h)
			return TaskCont
		}},
		{Name: "inspect_watch", Run: func(h Host) TaskStatus {
			if h.State().Requested(input.ActionInspect) {
				back := h.LastMode()
				if back == "" || back == InspectName {
					back = ReplayName
				}
				h.ChangeMode(back)
			}
			return TaskCont
		}},
	}
}

// refresh rebuilds the panel for the host's current frame
func (m *Inspect) refresh(h Host) {
	store := h.Store()
	frame := h.Frame()

	lines := make([]string, 0, len(store.IDs())+1)
	lines = append(lines, fmt.Sprintf("frame %d/%d  %.1f fps", frame, h.Frames(), h.Rate()))
	for _, id := range store.IDs() {
		tr, _ := store.Track(id)
		line := fmt.Sprintf("%-4s x=%4d y=%4d v=%5.2f", id, tr.X[frame], tr.Y[frame], tr.Speed[frame])
		if tr.HasImpact(frame) {
			line += " *"
		}
		lines = append(lines, line)
	}
	h.SetPanel(lines)
}
