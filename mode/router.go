package mode

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Router owns the current mode and its live tasks
type Router struct {
	registry *Registry
	log      zerolog.Logger

	current Mode
	last    string
	pending string
	tasks   []Task
}

// NewRouter creates a router with no active mode
func NewRouter(registry *Registry, logger zerolog.Logger) *Router {
	return &Router{registry: registry, log: logger}
}

// Change schedules a switch to name at the next Update
// Unknown names are rejected immediately
func (r *Router) Change(name string) error {
	if !r.registry.Has(name) {
		return fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
	r.pending = name
	return nil
}

// Current returns the active mode name, empty before the first Update
func (r *Router) Current() string {
	if r.current == nil {
		return ""
	}
	return r.current.Name()
}

// Last returns the previously active mode name
func (r *Router) Last() string {
	return r.last
}

// Update applies a pending change, then runs every live task once
func (r *Router) Update(h Host) error {
	if r.pending != "" {
		name := r.pending
		r.pending = ""
		if err := r.switchTo(h, name); err != nil {
			return err
		}
	}

	live := r.tasks[:0]
	for _, t := range r.tasks {
		if t.Run(h) == TaskCont {
			live = append(live, t)
		}
	}
	r.tasks = live
	return nil
}

func (r *Router) switchTo(h Host, name string) error {
	if r.current != nil && r.current.Name() == name {
		return nil
	}

	next, err := r.registry.New(name)
	if err != nil {
		return err
	}

	if r.current != nil {
		r.current.Exit(h)
		r.last = r.current.Name()
	}
	if err := next.Enter(h); err != nil {
		return fmt.Errorf("enter mode %q: %w", name, err)
	}

	r.current = next
	r.tasks = append([]Task{SharedTask()}, next.Tasks()...)
	r.log.Debug().Str("mode", name).Str("last", r.last).Msg("mode change")
	return nil
}
