package renderers

import (
	"image"

	"github.com/lixenwraith/shotplay/render"
	"github.com/lixenwraith/shotplay/sprite"
)

// BallsRenderer blits every sprite surface centred on its anchor
type BallsRenderer struct {
	sprites []*sprite.Ball
}

// NewBallsRenderer draws the given sprites in slice order
func NewBallsRenderer(sprites []*sprite.Ball) *BallsRenderer {
	return &BallsRenderer{sprites: sprites}
}

// Render draws balls at their current anchors; sprites are updated by the
// player before the frame is drawn
func (r *BallsRenderer) Render(ctx render.Context, c render.Canvas) {
	offset := image.Pt(ctx.Layout.OffsetXPX, ctx.Layout.OffsetYPX)
	for _, s := range r.sprites {
		c.Blit(s.Surface, s.Rect(offset).Min)
	}
}
