package mode

import "github.com/lixenwraith/shotplay/input"

// SharedTask watches the toggles available in every mode
func SharedTask() Task {
	return Task{Name: "shared", Run: shared}
}

func shared(h Host) TaskStatus {
	st := h.State()
	log := h.Logger()
	if st.Requested(input.ActionToggleHelp) {
		h.ToggleHelp()
	}
	if st.Requested(input.ActionToggleTrace) {
		on := h.ToggleTrace()
		log.Debug().Bool("trace", on).Msg("trace toggled")
	}
	if st.Requested(input.ActionToggleMute) {
		muted := h.ToggleMute()
		log.Debug().Bool("muted", muted).Msg("mute toggled")
	}
	if st.Requested(input.ActionDump) {
		h.Dump()
	}
	return TaskCont
}
