package engine

import (
	"context"
	"errors"
	"image"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/shotplay/audio"
	"github.com/lixenwraith/shotplay/input"
	"github.com/lixenwraith/shotplay/mode"
	"github.com/lixenwraith/shotplay/render"
	"github.com/lixenwraith/shotplay/shot"
)

// threeFrameShot is a 1.0 x 2.0 table (rail 0.05, edge 0.02) with three
// balls sampled at t = 0, 0.1, 0.2
func threeFrameShot() *shot.Recorded {
	table := shot.Table{
		W:         1.0,
		L:         2.0,
		RailWidth: 0.05,
		EdgeWidth: 0.02,
		Rails:     append([]string(nil), shot.ExpectedRails...),
	}
	hist := func(x0, y0, dx, dy float64) shot.History {
		h := make(shot.History, 3)
		for i := range h {
			h[i].R = [3]float64{x0 + dx*float64(i), y0 + dy*float64(i), 0}
		}
		return h
	}
	balls := []shot.Ball{
		{ID: "cue", Radius: 0.028575},
		{ID: "1", Radius: 0.028575},
		{ID: "2", Radius: 0.028575},
	}
	return shot.NewRecorded(table, balls, []float64{0, 0.1, 0.2}, map[string]shot.History{
		"cue": hist(0.5, 0.5, 0.1, 0.1),
		"1":   hist(0.3, 1.5, 0, -0.1),
		"2":   hist(0.7, 1.2, -0.05, 0.05),
	})
}

type recordingPresenter struct {
	frames   int
	size     image.Point
	overlays []render.Overlay
}

func (r *recordingPresenter) Present(frame *image.RGBA, ov render.Overlay) {
	r.frames++
	r.size = frame.Bounds().Size()
	r.overlays = append(r.overlays, ov)
}

type recordingSounder struct {
	played []audio.SoundType
	muted  bool
}

func (r *recordingSounder) Play(s audio.SoundType) { r.played = append(r.played, s) }

func (r *recordingSounder) ToggleMute() bool {
	r.muted = !r.muted
	return r.muted
}

func (r *recordingSounder) count(s audio.SoundType) int {
	n := 0
	for _, p := range r.played {
		if p == s {
			n++
		}
	}
	return n
}

type fixture struct {
	player *Player
	clock  *MockTimeProvider
	pres   *recordingPresenter
	sound  *recordingSounder
	script *input.ScriptSource
}

func newFixture(t *testing.T, s shot.Shot, ticks ...[]input.Event) *fixture {
	t.Helper()
	return newFixtureConfig(t, s, testConfig(), ticks...)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Size = 120
	cfg.Help = []string{"help line"}
	return cfg
}

func newFixtureConfig(t *testing.T, s shot.Shot, cfg Config, ticks ...[]input.Event) *fixture {
	t.Helper()
	f := &fixture{
		clock:  NewMockTimeProvider(time.Unix(0, 0)),
		pres:   &recordingPresenter{},
		sound:  &recordingSounder{},
		script: &input.ScriptSource{Ticks: ticks},
	}
	p, err := New(s, cfg, Deps{
		Input:     f.script,
		Presenter: f.pres,
		Sound:     f.sound,
		Time:      f.clock,
		Logger:    zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	f.player = p
	return f
}

func (f *fixture) ticks(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := f.player.Tick(); err != nil {
			t.Fatalf("Tick() error: %v", err)
		}
	}
}

func press(a input.Action) []input.Event {
	return []input.Event{{Action: a, Pressed: true}}
}

func TestFiveTicksLoopAndRate(t *testing.T) {
	f := newFixture(t, threeFrameShot())
	if f.player.Rate() != 10 {
		t.Fatalf("initial rate = %g, want 10", f.player.Rate())
	}

	f.ticks(t, 5)
	if f.player.Frame() != 2 {
		t.Errorf("frame after 5 ticks = %d, want 2", f.player.Frame())
	}
	if f.player.Rate() != 10 {
		t.Errorf("rate drifted to %g", f.player.Rate())
	}
	if f.sound.count(audio.SoundLoop) != 1 {
		t.Errorf("loop cue played %d times, want 1", f.sound.count(audio.SoundLoop))
	}
}

func TestFrameWraps(t *testing.T) {
	f := newFixture(t, threeFrameShot())
	want := []int{1, 2, 0, 1}
	for i, w := range want {
		f.ticks(t, 1)
		if f.player.Frame() != w {
			t.Fatalf("tick %d: frame = %d, want %d", i+1, f.player.Frame(), w)
		}
	}
}

func TestThrottleSleepsToRate(t *testing.T) {
	f := newFixture(t, threeFrameShot())
	f.ticks(t, 3)
	sleeps := f.clock.Sleeps()
	if len(sleeps) != 3 {
		t.Fatalf("sleeps = %v, want 3 entries", sleeps)
	}
	for _, d := range sleeps {
		if d != 100*time.Millisecond {
			t.Errorf("sleep = %v, want 100ms", d)
		}
	}
}

func TestFrameClock(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(0, 0))
	c := NewFrameClock(mock)

	// Work longer than the frame budget: no sleep
	mock.Advance(50 * time.Millisecond)
	if d := c.Tick(30); d != 50*time.Millisecond {
		t.Errorf("slow frame = %v, want 50ms", d)
	}
	if len(mock.Sleeps()) != 0 {
		t.Errorf("slept on a slow frame: %v", mock.Sleeps())
	}

	mock.Advance(10 * time.Millisecond)
	if d := c.Tick(20); d != 50*time.Millisecond {
		t.Errorf("fast frame = %v, want 50ms", d)
	}
	if s := mock.Sleeps(); len(s) != 1 || s[0] != 40*time.Millisecond {
		t.Errorf("sleeps = %v, want [40ms]", s)
	}
	if math.Abs(c.FPS()-20) > 1e-9 {
		t.Errorf("FPS() = %g, want 20", c.FPS())
	}
}

func TestSpeedLimits(t *testing.T) {
	f := newFixture(t, threeFrameShot())
	p := f.player
	st := p.State()

	st.IncreaseSpeed = true
	prev := p.Rate()
	for i := 0; i < 200; i++ {
		p.Advance()
		if p.Rate() < prev {
			t.Fatalf("rate decreased while speeding up: %g -> %g", prev, p.Rate())
		}
		prev = p.Rate()
	}
	if p.Rate() != MaxRate {
		t.Errorf("rate = %g, want cap %g", p.Rate(), MaxRate)
	}
	p.Advance()
	if p.Rate() != MaxRate {
		t.Error("rate not idempotent at cap")
	}

	// Decrease wins when both are held
	st.DecreaseSpeed = true
	for i := 0; i < 200; i++ {
		p.Advance()
		if p.Rate() > prev {
			t.Fatalf("rate increased while slowing down: %g -> %g", prev, p.Rate())
		}
		prev = p.Rate()
	}
	if p.Rate() != MinRate {
		t.Errorf("rate = %g, want floor %g", p.Rate(), MinRate)
	}
}

func TestSingleSpeedStep(t *testing.T) {
	f := newFixture(t, threeFrameShot())
	p := f.player
	p.State().IncreaseSpeed = true
	p.Advance()
	if math.Abs(p.Rate()-10*SpeedUp) > 1e-9 {
		t.Errorf("rate = %g, want %g", p.Rate(), 10*SpeedUp)
	}
	p.State().IncreaseSpeed = false
	p.State().DecreaseSpeed = true
	p.Advance()
	if math.Abs(p.Rate()-10*SpeedUp*SpeedDown) > 1e-9 {
		t.Errorf("rate = %g, want %g", p.Rate(), 10*SpeedUp*SpeedDown)
	}
}

func TestStepping(t *testing.T) {
	f := newFixture(t, threeFrameShot())
	p := f.player
	st := p.State()

	st.Paused = true
	p.Advance()
	if p.Frame() != 0 {
		t.Fatalf("paused frame moved to %d", p.Frame())
	}

	st.StepForward = true
	p.Advance()
	if p.Frame() != 1 {
		t.Errorf("step forward: frame = %d, want 1", p.Frame())
	}
	st.StepForward = false

	st.StepBackward = true
	p.Advance()
	if p.Frame() != 0 {
		t.Errorf("step backward: frame = %d, want 0", p.Frame())
	}
	p.Advance()
	if p.Frame() != 2 {
		t.Errorf("step backward from 0: frame = %d, want 2", p.Frame())
	}

	// Backward wins over forward
	st.StepForward = true
	p.Advance()
	if p.Frame() != 1 {
		t.Errorf("both steps held: frame = %d, want 1", p.Frame())
	}

	if f.sound.count(audio.SoundStep) != 4 {
		t.Errorf("step cue played %d times, want 4", f.sound.count(audio.SoundStep))
	}
}

func TestStepKeyPausesThroughInput(t *testing.T) {
	f := newFixture(t, threeFrameShot(),
		press(input.ActionStepForward),
		nil,
		[]input.Event{{Action: input.ActionStepForward, Pressed: false}},
		nil,
	)
	// Each held tick steps once; release leaves playback paused
	f.ticks(t, 4)
	if !f.player.State().Paused {
		t.Error("step did not pause")
	}
	if f.player.Frame() != 2 {
		t.Errorf("frame = %d, want 2", f.player.Frame())
	}
}

func TestResetSpeed(t *testing.T) {
	f := newFixture(t, threeFrameShot(),
		[]input.Event{{Action: input.ActionSpeedUp, Pressed: true}},
		nil,
		[]input.Event{{Action: input.ActionSpeedUp, Pressed: false}, {Action: input.ActionResetSpeed, Pressed: true}},
	)
	f.ticks(t, 2)
	if f.player.Rate() <= 10 {
		t.Fatalf("rate = %g, want above initial", f.player.Rate())
	}
	f.ticks(t, 1)
	if f.player.Rate() != 10 {
		t.Errorf("rate after reset = %g, want 10", f.player.Rate())
	}
}

func TestInitialRateFallback(t *testing.T) {
	h := shot.History{{R: [3]float64{0.5, 0.5, 0}}}
	s := shot.NewRecorded(shot.DefaultTable(), []shot.Ball{{ID: "cue", Radius: 0.03}}, []float64{0},
		map[string]shot.History{"cue": h})
	f := newFixture(t, s)
	if f.player.Rate() != FallbackRate {
		t.Errorf("rate = %g, want fallback %g", f.player.Rate(), FallbackRate)
	}
	f.ticks(t, 3)
	if f.player.Frame() != 0 {
		t.Errorf("single-frame shot moved to %d", f.player.Frame())
	}
}

func TestNewErrors(t *testing.T) {
	empty := shot.NewRecorded(shot.DefaultTable(), nil, nil, nil)
	if _, err := New(empty, DefaultConfig(), Deps{Logger: zerolog.Nop()}); !errors.Is(err, shot.ErrEmptyShot) {
		t.Errorf("empty shot error = %v", err)
	}

	missing := shot.NewRecorded(shot.DefaultTable(), []shot.Ball{{ID: "cue"}}, []float64{0, 0.1}, nil)
	if _, err := New(missing, DefaultConfig(), Deps{Logger: zerolog.Nop()}); !errors.Is(err, shot.ErrMissingHistory) {
		t.Errorf("missing history error = %v", err)
	}

	cfg := DefaultConfig()
	cfg.Mode = "menu"
	if _, err := New(threeFrameShot(), cfg, Deps{Logger: zerolog.Nop()}); !errors.Is(err, mode.ErrUnknownMode) {
		t.Errorf("unknown mode error = %v", err)
	}
}

func TestInvalidTableProceeds(t *testing.T) {
	s := threeFrameShot()
	tbl := s.Table()
	tbl.Rails = []string{shot.RailLeft}
	tbl.W = 0
	bad := shot.NewRecorded(tbl, []shot.Ball{{ID: "cue", Radius: 0.028575}}, s.Times(),
		map[string]shot.History{"cue": mustHistory(t, s, "cue")})

	f := newFixture(t, bad)
	want := render.NewLayout(shot.DefaultTable(), 120, DefaultConfig().DiamondSize)
	if f.player.Layout() != want {
		t.Errorf("layout = %+v, want default table layout", f.player.Layout())
	}
	f.ticks(t, 1)
}

func mustHistory(t *testing.T, s shot.Shot, id string) shot.History {
	t.Helper()
	h, err := s.History(id)
	if err != nil {
		t.Fatalf("History(%q) error: %v", id, err)
	}
	return h
}

func TestPresentAndOverlay(t *testing.T) {
	f := newFixture(t, threeFrameShot(), nil, press(input.ActionToggleHelp))
	f.ticks(t, 2)

	l := f.player.Layout()
	if f.pres.frames != 2 || f.pres.size != image.Pt(l.TableXPX, l.TableYPX) {
		t.Fatalf("presented %d frames of %v", f.pres.frames, f.pres.size)
	}
	if f.pres.overlays[0].Help != nil {
		t.Error("help shown before toggle")
	}
	if len(f.pres.overlays[1].Help) != 1 {
		t.Error("help not shown after toggle")
	}
	if f.pres.overlays[1].Status == "" {
		t.Error("empty status line")
	}
}

func TestPresentedFrameIsFlipped(t *testing.T) {
	f := newFixture(t, threeFrameShot())
	f.ticks(t, 1)

	raw := f.player.raster.Image()
	img := f.player.Image()
	h := img.Bounds().Dy()
	for _, y := range []int{0, h / 3, h - 1} {
		for _, x := range []int{0, img.Bounds().Dx() / 2} {
			if img.RGBAAt(x, y) != raw.RGBAAt(x, h-1-y) {
				t.Fatalf("pixel (%d,%d) not mirrored", x, y)
			}
		}
	}
}

func TestInspectModeSwitch(t *testing.T) {
	f := newFixture(t, threeFrameShot(), nil, press(input.ActionInspect), nil)
	f.ticks(t, 3)
	if f.player.Mode() != mode.InspectName {
		t.Fatalf("mode = %q, want inspect", f.player.Mode())
	}
	last := f.pres.overlays[2]
	// Header plus one row per ball
	if len(last.Panel) != 4 {
		t.Errorf("inspect panel = %v", last.Panel)
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	f := newFixture(t, threeFrameShot(), nil, nil, press(input.ActionQuit), nil)
	if err := f.player.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	// The quitting tick still completes
	if f.pres.frames != 3 {
		t.Errorf("ran %d ticks, want 3", f.pres.frames)
	}
	if f.player.State().Running {
		t.Error("still running")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	f := newFixture(t, threeFrameShot())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := f.player.Run(ctx); err != nil {
		t.Errorf("Run() on cancelled context = %v, want nil", err)
	}
	if f.pres.frames != 0 {
		t.Errorf("ticked %d times after cancel", f.pres.frames)
	}
}

func TestHostToggles(t *testing.T) {
	f := newFixture(t, threeFrameShot())
	p := f.player
	if p.ToggleTrace() {
		t.Error("trace should start visible")
	}
	if !p.ToggleMute() || !f.sound.muted {
		t.Error("mute not forwarded")
	}
	p.Dump()
	if p.message == "" {
		t.Error("dump did not flash a message")
	}
}

// traceLines renders the current frame and counts trail segments
func traceLines(p *Player) int {
	for _, s := range p.sprites {
		s.Update(p.Frame())
	}
	var rec render.Recorder
	p.orch.RenderFrame(render.Context{Frame: p.Frame(), Frames: p.Frames(), Layout: p.Layout()}, &rec)
	return rec.Count(render.CallLine)
}

func TestTraceHiddenAtStartCanBeShown(t *testing.T) {
	cfg := testConfig()
	cfg.Trace = false
	f := newFixtureConfig(t, threeFrameShot(), cfg)
	p := f.player
	f.ticks(t, 2)
	if p.Frame() != 2 {
		t.Fatalf("frame = %d, want 2", p.Frame())
	}

	if p.trace.IsVisible() || p.m.trace.Load() {
		t.Error("trace should start hidden")
	}
	if n := traceLines(p); n != 0 {
		t.Errorf("hidden trace drew %d lines", n)
	}

	if !p.ToggleTrace() {
		t.Fatal("toggle should show the trace")
	}
	if !p.m.trace.Load() {
		t.Error("trace metric not updated by toggle")
	}
	if n := traceLines(p); n == 0 {
		t.Error("trace toggled on but no lines drawn")
	}
}

func TestDumpWithoutLoggingShowsPanel(t *testing.T) {
	f := newFixture(t, threeFrameShot())
	p := f.player
	f.ticks(t, 1)

	p.Dump()
	if !strings.Contains(p.message, "logging off") {
		t.Errorf("message = %q, want logging off notice", p.message)
	}

	f.ticks(t, 1)
	panel := f.pres.overlays[len(f.pres.overlays)-1].Panel
	// Header, flags, then one row per ball
	if len(panel) < 5 || !strings.HasPrefix(panel[0], "frame ") {
		t.Fatalf("panel after dump = %q", panel)
	}
	if !strings.Contains(strings.Join(panel[2:5], "\n"), "cue ") {
		t.Errorf("ball rows missing cue: %q", panel[2:5])
	}

	f.clock.Advance(dumpTTL + time.Second)
	f.ticks(t, 1)
	panel = f.pres.overlays[len(f.pres.overlays)-1].Panel
	if len(panel) > 0 && strings.HasPrefix(panel[0], "frame ") {
		t.Errorf("dump still shown after %v: %q", dumpTTL, panel)
	}
}
