// Package engine drives shot playback: one single-threaded tick that reads
// input, runs mode tasks, draws the frame, presents it, advances the frame
// index and sleeps to the target rate.
package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/shotplay/audio"
	"github.com/lixenwraith/shotplay/input"
	"github.com/lixenwraith/shotplay/mode"
	"github.com/lixenwraith/shotplay/render"
	"github.com/lixenwraith/shotplay/render/renderers"
	"github.com/lixenwraith/shotplay/shot"
	"github.com/lixenwraith/shotplay/sprite"
	"github.com/lixenwraith/shotplay/status"
	"github.com/lixenwraith/shotplay/trajectory"
)

// Playback rate limits and per-tick multipliers for held speed keys
const (
	MinRate      = 1.0
	MaxRate      = 30.0
	SpeedUp      = 1.04
	SpeedDown    = 0.96
	FallbackRate = 30.0
)

// Presenter shows a finished frame, already flipped to a top-left origin
type Presenter interface {
	Present(frame *image.RGBA, ov render.Overlay)
}

// Sounder plays playback cues
type Sounder interface {
	Play(s audio.SoundType)
	ToggleMute() bool
}

// Config holds rendering and playback settings
type Config struct {
	Size         int     // pixels along the larger table axis
	ArcSegments  int     // corner fan resolution
	DiamondSize  float64 // diamond radius in simulation units
	Colors       renderers.TableColors
	Palette      sprite.Palette
	Trace        bool // trails visible at start, toggled at runtime
	TraceLength  int
	FallbackRate float64 // used when the time axis yields no rate
	Mode         string  // initial mode
	Help         []string
}

// DefaultConfig returns the stock settings
func DefaultConfig() Config {
	return Config{
		Size:         400,
		ArcSegments:  renderers.DefaultArcSegments,
		DiamondSize:  0.0095,
		Colors:       renderers.DefaultTableColors(),
		Palette:      sprite.DefaultPalette(),
		Trace:        true,
		TraceLength:  sprite.DefaultTraceLength,
		FallbackRate: FallbackRate,
		Mode:         mode.ReplayName,
	}
}

// Deps are the player's collaborators; nil fields get inert defaults
type Deps struct {
	Input     input.Source
	Presenter Presenter
	Sound     Sounder
	Time      TimeProvider
	Status    *status.Registry
	Modes     *mode.Registry
	Logger    zerolog.Logger
}

// metrics caches registry pointers written every tick
type metrics struct {
	frame   *atomic.Int64
	frames  *atomic.Int64
	loops   *atomic.Int64
	tickUS  *atomic.Int64
	impacts *atomic.Int64
	rate    *status.AtomicFloat
	fps     *status.AtomicFloat
	paused  *atomic.Bool
	muted   *atomic.Bool
	trace   *atomic.Bool
	mode    *status.AtomicString
}

// Player owns the playback session
type Player struct {
	cfg   Config
	log   zerolog.Logger
	shot  shot.Shot
	store *trajectory.Store

	layout  render.Layout
	sprites []*sprite.Ball
	orch    *render.Orchestrator
	trace   *renderers.TraceRenderer
	raster  *render.Raster
	flipped *image.RGBA

	state  *input.State
	src    input.Source
	router *mode.Router
	clock  *FrameClock
	tp     TimeProvider
	pres   Presenter
	sound  Sounder
	stats  *status.Registry
	m      metrics

	frame       int
	n           int
	rate        float64
	initialRate float64

	help         bool
	panel        []string
	message      string
	messageUntil time.Time
	dump         []string
	dumpUntil    time.Time
}

// How long a status bar notice and an on-screen dump stay visible
const (
	messageTTL = 2 * time.Second
	dumpTTL    = 5 * time.Second
)

// New builds a session for s. Invalid table geometry is logged and replaced
// by defaults; an empty shot or incomplete history is an error.
func New(s shot.Shot, cfg Config, deps Deps) (*Player, error) {
	log := deps.Logger

	table := s.Table()
	if err := shot.Validate(s); err != nil {
		log.Warn().Err(err).Msg("table geometry invalid, rendering with defaults")
		if !table.Usable() {
			table = shot.DefaultTable()
		}
	}

	if cfg.Size <= 0 {
		cfg.Size = DefaultConfig().Size
	}
	if cfg.FallbackRate <= 0 {
		cfg.FallbackRate = FallbackRate
	}
	if cfg.Mode == "" {
		cfg.Mode = mode.ReplayName
	}

	layout := render.NewLayout(table, cfg.Size, cfg.DiamondSize)
	store, err := trajectory.New(s, layout.Scale)
	if err != nil {
		return nil, fmt.Errorf("sample trajectories: %w", err)
	}

	p := &Player{
		cfg:    cfg,
		log:    log,
		shot:   s,
		store:  store,
		layout: layout,
		state:  input.NewState(),
		src:    deps.Input,
		tp:     deps.Time,
		pres:   deps.Presenter,
		sound:  deps.Sound,
		stats:  deps.Status,
		n:      store.Frames(),
	}
	if p.src == nil {
		p.src = &input.ScriptSource{}
	}
	if p.tp == nil {
		p.tp = NewMonotonicTimeProvider()
	}
	if p.stats == nil {
		p.stats = status.NewRegistry()
	}
	modes := deps.Modes
	if modes == nil {
		modes = mode.DefaultRegistry()
	}

	// Every sprite carries a trail; cfg.Trace only sets the initial visibility
	opts := sprite.Options{Palette: cfg.Palette, Trace: true, TraceLength: cfg.TraceLength}
	balls := s.Balls()
	for _, id := range store.IDs() {
		tr, _ := store.Track(id)
		p.sprites = append(p.sprites, sprite.New(balls[id], tr, layout.Scale, opts))
	}

	p.trace = renderers.NewTraceRenderer(p.sprites, cfg.Trace)
	p.orch = render.NewOrchestrator()
	p.orch.Register(renderers.NewTableRenderer(cfg.Colors, cfg.ArcSegments), render.PriorityTable)
	p.orch.Register(renderers.NewBallsRenderer(p.sprites), render.PriorityBalls)
	p.orch.Register(p.trace, render.PriorityTrace)
	p.raster = render.NewRaster(layout.TableXPX, layout.TableYPX)

	p.initialRate = shot.InitialRate(s.Times(), cfg.FallbackRate)
	p.rate = p.initialRate

	p.router = mode.NewRouter(modes, log)
	if err := p.router.Change(cfg.Mode); err != nil {
		return nil, err
	}

	p.cacheMetrics()
	p.m.frames.Store(int64(p.n))
	p.m.trace.Store(p.trace.IsVisible())
	p.clock = NewFrameClock(p.tp)

	log.Info().
		Int("frames", p.n).
		Int("balls", len(p.sprites)).
		Float64("rate", p.rate).
		Float64("scale", layout.Scale).
		Int("width_px", layout.TableXPX).
		Int("height_px", layout.TableYPX).
		Msg("session ready")

	return p, nil
}

func (p *Player) cacheMetrics() {
	r := p.stats
	p.m = metrics{
		frame:   r.Ints.Get(status.KeyFrame),
		frames:  r.Ints.Get(status.KeyFrames),
		loops:   r.Ints.Get(status.KeyLoops),
		tickUS:  r.Ints.Get(status.KeyTickUS),
		impacts: r.Ints.Get(status.KeyImpacts),
		rate:    r.Floats.Get(status.KeyRate),
		fps:     r.Floats.Get(status.KeyFPS),
		paused:  r.Bools.Get(status.KeyPaused),
		muted:   r.Bools.Get(status.KeyMuted),
		trace:   r.Bools.Get(status.KeyTrace),
		mode:    r.Strings.Get(status.KeyMode),
	}
}

// Run ticks until a quit request or ctx cancellation; the running flag is
// checked once at the top of each iteration
func (p *Player) Run(ctx context.Context) error {
	for p.state.Running {
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.Canceled) {
				p.log.Info().Msg("playback cancelled")
				return nil
			}
			return err
		}
		if err := p.Tick(); err != nil {
			return err
		}
	}
	p.log.Info().Int("frame", p.frame).Msg("playback stopped")
	return nil
}

// Tick runs one full iteration: input, mode tasks, draw, present,
// transition, throttle. Each step completes before the next begins.
func (p *Player) Tick() error {
	start := p.tp.Now()

	input.Consume(p.src, p.state)
	if err := p.router.Update(p); err != nil {
		return fmt.Errorf("mode update: %w", err)
	}

	p.draw()
	p.present()
	p.Advance()

	p.m.tickUS.Store(p.tp.Now().Sub(start).Microseconds())
	p.clock.Tick(p.rate)
	p.publish()
	return nil
}

// draw renders the current frame into the raster
func (p *Player) draw() {
	for _, s := range p.sprites {
		s.Update(p.frame)
	}
	ctx := render.Context{Frame: p.frame, Frames: p.n, Layout: p.layout}
	p.orch.RenderFrame(ctx, p.raster)
}

// present flips the raster to a top-left origin and hands it to the presenter
func (p *Player) present() {
	p.flipped = render.FlipVertical(p.flipped, p.raster.Image())
	if p.pres == nil {
		return
	}
	ov := render.Overlay{Status: p.statusLine(), Panel: p.panel}
	if p.dump != nil {
		if p.tp.Now().Before(p.dumpUntil) {
			ov.Panel = p.dump
		} else {
			p.dump = nil
		}
	}
	if p.help {
		ov.Help = p.cfg.Help
	}
	p.pres.Present(p.flipped, ov)
}

// Advance applies the frame and speed transition for this tick
func (p *Player) Advance() {
	st := p.state
	stepped := false

	switch {
	case !st.Paused:
		p.frame++
	case st.StepBackward:
		p.frame--
		stepped = true
	case st.StepForward:
		p.frame++
		stepped = true
	}

	if p.frame >= p.n {
		p.frame = 0
		p.m.loops.Add(1)
		if p.n > 1 {
			p.play(audio.SoundLoop)
		}
	}
	if p.frame < 0 {
		p.frame = p.n - 1
	}

	switch {
	case st.DecreaseSpeed:
		p.rate = max(MinRate, p.rate*SpeedDown)
	case st.IncreaseSpeed:
		p.rate = min(MaxRate, p.rate*SpeedUp)
	}
	if st.Requested(input.ActionResetSpeed) {
		p.rate = p.initialRate
	}

	if stepped {
		p.play(audio.SoundStep)
	} else if !st.Paused && p.store.ImpactAt(p.frame) {
		p.m.impacts.Add(1)
		p.play(audio.SoundImpact)
	}
}

// flash shows msg in the status bar for messageTTL
func (p *Player) flash(msg string) {
	p.message = msg
	p.messageUntil = p.tp.Now().Add(messageTTL)
}

func (p *Player) play(s audio.SoundType) {
	if p.sound != nil {
		p.sound.Play(s)
	}
}

func (p *Player) publish() {
	p.m.frame.Store(int64(p.frame))
	p.m.rate.Set(p.rate)
	p.m.fps.Set(p.clock.FPS())
	p.m.paused.Store(p.state.Paused)
	p.m.trace.Store(p.trace.IsVisible())
	p.m.mode.Store(p.router.Current())
}

func (p *Player) statusLine() string {
	line := fmt.Sprintf(" %s  frame %d/%d  %.1f fps", p.router.Current(), p.frame, p.n, p.rate)
	if p.state.Paused {
		line += "  [paused]"
	}
	if p.m.muted.Load() {
		line += "  [muted]"
	}
	if p.message != "" {
		if p.tp.Now().Before(p.messageUntil) {
			line += "  " + p.message
		} else {
			p.message = ""
		}
	}
	return line + "  (? help)"
}

// Frame returns the current display frame
func (p *Player) Frame() int { return p.frame }

// Frames returns the shot's frame count
func (p *Player) Frames() int { return p.n }

// Rate returns the target frame rate
func (p *Player) Rate() float64 { return p.rate }

// InitialRate returns the rate derived from the shot's time axis
func (p *Player) InitialRate() float64 { return p.initialRate }

// State exposes the playback flags
func (p *Player) State() *input.State { return p.state }

// Store returns the sampled trajectories
func (p *Player) Store() *trajectory.Store { return p.store }

// Layout returns the table to pixel mapping
func (p *Player) Layout() render.Layout { return p.layout }

// Sprites returns the ball sprites in id order
func (p *Player) Sprites() []*sprite.Ball { return p.sprites }

// Image returns the last presented frame, nil before the first tick
func (p *Player) Image() *image.RGBA { return p.flipped }

// Mode returns the active mode name
func (p *Player) Mode() string { return p.router.Current() }
