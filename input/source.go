package input

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/shotplay/core"
)

// DefaultHoldWindow is how long a held action survives without a key repeat
const DefaultHoldWindow = 60 * time.Millisecond

// Source delivers input events without blocking
type Source interface {
	// Poll returns every event that arrived since the previous call
	Poll() []Event
}

type heldKey struct {
	last      time.Time
	delivered bool // press already returned by an earlier Poll
}

// TcellSource reads key events from a tcell screen on a background goroutine.
// Terminals report no key-up, so a held action is released once no press or
// auto-repeat for it arrives within the hold window. A press is always
// delivered by at least one Poll before its release. Stepped actions ignore
// the window: they are released on the next Poll so one tap applies for one
// tick, and each auto-repeat becomes a fresh press.
type TcellSource struct {
	screen tcell.Screen
	keys   *KeyTable
	hold   time.Duration
	now    func() time.Time
	log    zerolog.Logger

	events chan tcell.Event
	done   chan struct{}
	once   sync.Once

	held map[Action]heldKey
}

// NewTcellSource starts polling screen. hold <= 0 selects DefaultHoldWindow
func NewTcellSource(screen tcell.Screen, keys *KeyTable, hold time.Duration, logger zerolog.Logger) *TcellSource {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	s := &TcellSource{
		screen: screen,
		keys:   keys,
		hold:   hold,
		now:    time.Now,
		log:    logger,
		events: make(chan tcell.Event, 256),
		done:   make(chan struct{}),
		held:   make(map[Action]heldKey),
	}
	core.Go(s.pollLoop)
	return s
}

func (s *TcellSource) pollLoop() {
	for {
		ev := s.screen.PollEvent()
		// nil once the screen is finalized
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

// Poll implements Source
func (s *TcellSource) Poll() []Event {
	now := s.now()
	var out []Event

drain:
	for {
		select {
		case ev := <-s.events:
			out = s.handle(ev, now, out)
		default:
			break drain
		}
	}

	for a, h := range s.held {
		if !h.delivered {
			h.delivered = true
			s.held[a] = h
			continue
		}
		if a.Stepped() || now.Sub(h.last) >= s.hold {
			out = append(out, Event{Action: a, Pressed: false})
			delete(s.held, a)
		}
	}

	return out
}

func (s *TcellSource) handle(ev tcell.Event, now time.Time, out []Event) []Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a, ok := s.keys.Lookup(ev)
		if !ok {
			return out
		}
		s.log.Debug().Str("key", ev.Name()).Str("action", a.String()).Msg("key")
		if !a.Held() {
			return append(out, Event{Action: a, Pressed: true})
		}
		// Auto-repeat extends the hold without re-emitting the press
		if h, ok := s.held[a]; ok {
			if a.Stepped() && h.delivered {
				s.held[a] = heldKey{last: now}
				return append(out, Event{Action: a, Pressed: false}, Event{Action: a, Pressed: true})
			}
			h.last = now
			s.held[a] = h
			return out
		}
		s.held[a] = heldKey{last: now}
		return append(out, Event{Action: a, Pressed: true})
	case *tcell.EventResize:
		w, h := ev.Size()
		s.log.Debug().Int("width", w).Int("height", h).Msg("resize")
	}
	return out
}

// Close stops forwarding events. The polling goroutine exits once the screen
// is finalized.
func (s *TcellSource) Close() {
	s.once.Do(func() { close(s.done) })
}

// ScriptSource replays a fixed event list, one slice per Poll, then nothing
type ScriptSource struct {
	Ticks [][]Event
	next  int
}

// Poll implements Source
func (s *ScriptSource) Poll() []Event {
	if s.next >= len(s.Ticks) {
		return nil
	}
	evs := s.Ticks[s.next]
	s.next++
	return evs
}
