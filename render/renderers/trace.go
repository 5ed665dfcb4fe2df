package renderers

import (
	"math"

	"github.com/lixenwraith/shotplay/render"
	"github.com/lixenwraith/shotplay/sprite"
)

// TraceRenderer draws the fading trail behind each trace-enabled sprite
type TraceRenderer struct {
	sprites []*sprite.Ball
	visible bool
}

// NewTraceRenderer creates a visible trace renderer
func NewTraceRenderer(sprites []*sprite.Ball, visible bool) *TraceRenderer {
	return &TraceRenderer{sprites: sprites, visible: visible}
}

// IsVisible implements render.VisibilityToggle
func (r *TraceRenderer) IsVisible() bool { return r.visible }

// Toggle flips visibility and returns the new value
func (r *TraceRenderer) Toggle() bool {
	r.visible = !r.visible
	return r.visible
}

// Segments returns how many trail segments a sprite with the given trace
// length shows at frame
func Segments(frame, traceLength int) int {
	if frame < 2 {
		return 0
	}
	return min(frame, traceLength) - 1
}

// TraceAlpha is the opacity of segment n (0 oldest) out of segments
func TraceAlpha(n, segments int) uint8 {
	return uint8(255 * (1 - math.Exp(-float64(n)/float64(segments))))
}

// Render draws up to min(frame, length)-1 segments ending at the current frame
func (r *TraceRenderer) Render(ctx render.Context, c render.Canvas) {
	off := ctx.Layout.Offset()
	for _, s := range r.sprites {
		if !s.Trace {
			continue
		}
		frame := s.Frame()
		segs := Segments(frame, s.TraceLength)
		if segs <= 0 {
			continue
		}
		first := frame - segs
		for n := 0; n < segs; n++ {
			a := s.Point(first + n)
			b := s.Point(first + n + 1)
			col := s.Color
			col.A = TraceAlpha(n, segs)
			c.Line(
				render.Pt(a.X+off.X, a.Y+off.Y),
				render.Pt(b.X+off.X, b.Y+off.Y),
				col,
			)
		}
	}
}
