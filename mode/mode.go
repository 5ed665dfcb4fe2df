// Package mode routes per-tick behaviour through named playback modes.
// Every mode runs the shared watcher task followed by its own tasks; mode
// changes requested during a tick take effect at the start of the next one.
package mode

import (
	"github.com/rs/zerolog"

	"github.com/lixenwraith/shotplay/input"
	"github.com/lixenwraith/shotplay/trajectory"
)

// Host is the player surface visible to modes
type Host interface {
	State() *input.State
	Frame() int
	Frames() int
	Rate() float64
	Store() *trajectory.Store

	// SetPanel replaces the side panel text; nil hides it
	SetPanel(lines []string)
	ToggleHelp() bool
	ToggleTrace() bool
	ToggleMute() bool
	// Dump writes a diagnostic snapshot of the session to the log
	Dump()
	// ChangeMode requests a switch effective next tick
	ChangeMode(name string)
	// LastMode returns the mode active before the current one
	LastMode() string
	Logger() zerolog.Logger
}

// TaskStatus tells the router whether to keep a task
type TaskStatus uint8

const (
	TaskCont TaskStatus = iota // run again next tick
	TaskDone                   // drop until the mode is re-entered
)

// Task is a named per-tick function of a mode
type Task struct {
	Name string
	Run  func(h Host) TaskStatus
}

// Mode is one playback mode
type Mode interface {
	Name() string
	Enter(h Host) error
	Exit(h Host)
	Tasks() []Task
}
