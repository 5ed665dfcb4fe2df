package input

import "strings"

// Action is a playback command produced by a key
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionPauseToggle
	ActionSpeedDown
	ActionSpeedUp
	ActionStepForward
	ActionStepBackward
	ActionResetSpeed
	ActionToggleHelp
	ActionToggleTrace
	ActionToggleMute
	ActionInspect
	ActionDump

	actionCount
)

// actionRegistry maps canonical action names to actions
// Used by the keymap config loader to resolve action strings
var actionRegistry = map[string]Action{
	"none":          ActionNone, // unbind sentinel
	"quit":          ActionQuit,
	"pause":         ActionPauseToggle,
	"speed_down":    ActionSpeedDown,
	"speed_up":      ActionSpeedUp,
	"step_forward":  ActionStepForward,
	"step_backward": ActionStepBackward,
	"reset_speed":   ActionResetSpeed,
	"toggle_help":   ActionToggleHelp,
	"toggle_trace":  ActionToggleTrace,
	"toggle_mute":   ActionToggleMute,
	"inspect":       ActionInspect,
	"dump":          ActionDump,
}

var actionNames = func() [actionCount]string {
	var n [actionCount]string
	for name, a := range actionRegistry {
		n[a] = name
	}
	return n
}()

// ActionByName resolves a canonical action name, case-insensitive
func ActionByName(name string) (Action, bool) {
	a, ok := actionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// String returns the canonical name
func (a Action) String() string {
	if a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Held reports whether the action is a continuous condition that lasts while
// its key is down, as opposed to a one-shot request
func (a Action) Held() bool {
	switch a {
	case ActionSpeedDown, ActionSpeedUp, ActionStepForward, ActionStepBackward:
		return true
	}
	return false
}

// Stepped reports whether each key event for the action should apply exactly
// once. Stepped actions are released on the Poll after their press.
func (a Action) Stepped() bool {
	return a == ActionStepForward || a == ActionStepBackward
}
