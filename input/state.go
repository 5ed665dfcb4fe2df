package input

// Event is one key transition delivered to the playback state
type Event struct {
	Action  Action
	Pressed bool // false for a release of a held action
}

// State holds the playback flags read by the driver each tick.
// Apply is the only writer; Begin clears the one-shot requests of the
// previous tick. Held flags persist until their release event arrives.
type State struct {
	Running       bool
	Paused        bool
	StepForward   bool
	StepBackward  bool
	IncreaseSpeed bool
	DecreaseSpeed bool

	requests uint32 // one-shot actions seen this tick, bit per Action
}

// NewState returns a running, unpaused state
func NewState() *State {
	return &State{Running: true}
}

// Begin starts a new tick, dropping last tick's one-shot requests
func (s *State) Begin() {
	s.requests = 0
}

// Apply folds one event into the flags
func (s *State) Apply(ev Event) {
	switch ev.Action {
	case ActionNone:
	case ActionQuit:
		if ev.Pressed {
			s.Running = false
		}
	case ActionPauseToggle:
		if ev.Pressed {
			s.Paused = !s.Paused
		}
	case ActionSpeedUp:
		s.IncreaseSpeed = ev.Pressed
	case ActionSpeedDown:
		s.DecreaseSpeed = ev.Pressed
	case ActionStepForward:
		// Stepping always pauses; release leaves playback paused
		if ev.Pressed {
			s.Paused = true
		}
		s.StepForward = ev.Pressed
	case ActionStepBackward:
		if ev.Pressed {
			s.Paused = true
		}
		s.StepBackward = ev.Pressed
	default:
		if ev.Pressed {
			s.requests |= 1 << ev.Action
		}
	}
}

// Requested reports whether a one-shot action was pressed this tick
func (s *State) Requested(a Action) bool {
	return s.requests&(1<<a) != 0
}

// Consume starts a tick and drains every pending event from src into st
func Consume(src Source, st *State) {
	st.Begin()
	for _, ev := range src.Poll() {
		st.Apply(ev)
	}
}
