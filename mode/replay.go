package mode

import "github.com/lixenwraith/shotplay/input"

// ReplayName is the default playback mode
const ReplayName = "replay"

// Replay is plain playback; the inspect key switches to the inspect mode
type Replay struct{}

// NewReplay is the replay Factory
func NewReplay() Mode { return &Replay{} }

func (m *Replay) Name() string { return ReplayName }

func (m *Replay) Enter(h Host) error {
	h.SetPanel(nil)
	return nil
}

func (m *Replay) Exit(h Host) {}

func (m *Replay) Tasks() []Task {
	return []Task{{Name: "inspect_watch", Run: func(h Host) TaskStatus {
		if h.State().Requested(input.ActionInspect) {
			h.ChangeMode(InspectName)
		}
		return TaskCont
	}}}
}
