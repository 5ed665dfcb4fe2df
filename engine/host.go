package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/shotplay/mode"
)

var _ mode.Host = (*Player)(nil)

// SetPanel replaces the side panel text
func (p *Player) SetPanel(lines []string) {
	p.panel = lines
}

// ToggleHelp flips the help overlay
func (p *Player) ToggleHelp() bool {
	p.help = !p.help
	return p.help
}

// ToggleTrace flips trail rendering for every ball
func (p *Player) ToggleTrace() bool {
	on := p.trace.Toggle()
	p.m.trace.Store(on)
	return on
}

// ToggleMute flips audio cues
func (p *Player) ToggleMute() bool {
	muted := !p.m.muted.Load()
	if p.sound != nil {
		muted = p.sound.ToggleMute()
	}
	p.m.muted.Store(muted)
	return muted
}

// Dump logs the session state: metrics, flags and every ball at the
// current frame
func (p *Player) Dump() {
	ev := p.log.Info().
		Int("frame", p.frame).
		Int("frames", p.n).
		Float64("rate", p.rate).
		Float64("initial_rate", p.initialRate).
		Bool("paused", p.state.Paused).
		Bool("step_forward", p.state.StepForward).
		Bool("step_backward", p.state.StepBackward).
		Bool("increase_speed", p.state.IncreaseSpeed).
		Bool("decrease_speed", p.state.DecreaseSpeed).
		Strs("metrics", p.stats.Lines())

	balls := zerolog.Arr()
	for _, s := range p.sprites {
		balls.Dict(zerolog.Dict().
			Str("id", s.ID).
			Int("x", s.Track.X[p.frame]).
			Int("y", s.Track.Y[p.frame]).
			Float64("speed", s.Track.Speed[p.frame]))
	}
	ev.Array("balls", balls).Msg("state dump")

	// Nop or above-info loggers drop the record; show it on screen instead
	if p.log.GetLevel() > zerolog.InfoLevel {
		p.dump = p.dumpLines()
		p.dumpUntil = p.tp.Now().Add(dumpTTL)
		p.flash("logging off, state shown in panel")
		return
	}
	p.flash("state dumped to log")
}

// dumpLines renders the dump as panel text
func (p *Player) dumpLines() []string {
	lines := []string{
		fmt.Sprintf("frame %d/%d  rate %.2f (initial %.2f)", p.frame, p.n, p.rate, p.initialRate),
		fmt.Sprintf("paused=%t step=%t/%t speed=%t/%t", p.state.Paused,
			p.state.StepForward, p.state.StepBackward, p.state.IncreaseSpeed, p.state.DecreaseSpeed),
	}
	for _, s := range p.sprites {
		lines = append(lines, fmt.Sprintf("%-4s x=%4d y=%4d v=%5.2f",
			s.ID, s.Track.X[p.frame], s.Track.Y[p.frame], s.Track.Speed[p.frame]))
	}
	return append(lines, p.stats.Lines()...)
}

// ChangeMode schedules a mode switch for the next tick
func (p *Player) ChangeMode(name string) {
	if err := p.router.Change(name); err != nil {
		p.log.Warn().Err(err).Msg("mode change rejected")
	}
}

// LastMode returns the previously active mode
func (p *Player) LastMode() string {
	return p.router.Last()
}

// Logger returns the session logger
func (p *Player) Logger() zerolog.Logger {
	return p.log
}
