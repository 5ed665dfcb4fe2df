// Package renderers holds the layers composed into each playback frame
package renderers

import (
	"image/color"
	"math"

	"github.com/lixenwraith/shotplay/render"
)

// DefaultArcSegments is the number of outline points per rounded corner
const DefaultArcSegments = 30

// TableColors are the fill colours of the static table
type TableColors struct {
	Cloth   color.NRGBA
	Rail    color.NRGBA
	Edge    color.NRGBA
	Diamond color.NRGBA
}

// DefaultTableColors matches the stock config values
func DefaultTableColors() TableColors {
	return TableColors{
		Cloth:   color.NRGBA{R: 0x2f, G: 0x7d, B: 0x4f, A: 255},
		Rail:    color.NRGBA{R: 0x25, G: 0x63, B: 0x3e, A: 255},
		Edge:    color.NRGBA{R: 0x5b, G: 0x3a, B: 0x1e, A: 255},
		Diamond: color.NRGBA{R: 0xef, G: 0xe6, B: 0xc8, A: 255},
	}
}

// TableRenderer redraws the table every frame from the layout alone
type TableRenderer struct {
	Colors      TableColors
	ArcSegments int
}

// NewTableRenderer creates a table renderer; segments <= 0 selects the default
func NewTableRenderer(colors TableColors, segments int) *TableRenderer {
	if segments <= 0 {
		segments = DefaultArcSegments
	}
	return &TableRenderer{Colors: colors, ArcSegments: segments}
}

// Render draws cloth, edges, rails, corners and diamonds
func (r *TableRenderer) Render(ctx render.Context, c render.Canvas) {
	l := ctx.Layout
	edge := float64(l.EdgePX)
	rail := float64(l.RailPX)
	tx := float64(l.TableXPX)
	ty := float64(l.TableYPX)

	c.Fill(r.Colors.Cloth)

	// Bottom
	c.Polygon(quad(edge, 0, tx-edge, edge), r.Colors.Edge)
	c.Polygon(quad(edge, edge, tx-edge, edge+rail), r.Colors.Rail)
	// Left
	c.Polygon(quad(0, edge, edge, ty-edge), r.Colors.Edge)
	c.Polygon(quad(edge, edge, edge+rail, ty-edge), r.Colors.Rail)
	// Right
	c.Polygon(quad(tx-edge, edge, tx, ty-edge), r.Colors.Edge)
	c.Polygon(quad(tx-edge-rail, edge, tx-edge, ty-edge), r.Colors.Rail)
	// Top
	c.Polygon(quad(edge, ty-edge, tx-edge, ty), r.Colors.Edge)
	c.Polygon(quad(edge, ty-edge-rail, tx-edge, ty-edge), r.Colors.Rail)

	c.Polygon(r.arc(render.Pt(edge, edge), edge, 180, 270), r.Colors.Edge)
	c.Polygon(r.arc(render.Pt(edge, ty-edge), edge, 90, 180), r.Colors.Edge)
	c.Polygon(r.arc(render.Pt(tx-edge, ty-edge), edge, 0, 90), r.Colors.Edge)
	c.Polygon(r.arc(render.Pt(tx-edge, edge), edge, 270, 360), r.Colors.Edge)

	d := float64(l.DiamondPX)
	half := float64(l.EdgePX / 2)
	for i := 0; i < 9; i++ {
		y := math.Trunc(edge/2 + (ty-edge)*float64(i)/8)
		c.Circle(render.Pt(half, y), d, r.Colors.Diamond)
		c.Circle(render.Pt(tx-half, y), d, r.Colors.Diamond)
	}
	for i := 0; i < 5; i++ {
		x := math.Trunc(edge/2 + (tx-edge)*float64(i)/4)
		c.Circle(render.Pt(x, math.Trunc(edge/2)), d, r.Colors.Diamond)
		c.Circle(render.Pt(x, math.Trunc(ty-edge/2)), d, r.Colors.Diamond)
	}
}

// arc returns a fan polygon: centre followed by ArcSegments points spanning
// [start, end] degrees inclusive
func (r *TableRenderer) arc(center render.Point, radius, start, end float64) []render.Point {
	n := r.ArcSegments
	pts := make([]render.Point, 0, n+1)
	pts = append(pts, center)
	a0 := start * math.Pi / 180
	a1 := end * math.Pi / 180
	for i := 0; i < n; i++ {
		theta := a0
		if n > 1 {
			theta = a0 + (a1-a0)*float64(i)/float64(n-1)
		}
		pts = append(pts, render.Pt(center.X+radius*math.Cos(theta), center.Y+radius*math.Sin(theta)))
	}
	return pts
}

// quad is an axis-aligned rectangle from (x0,y0) to (x1,y1)
func quad(x0, y0, x1, y1 float64) []render.Point {
	return []render.Point{{X: x0, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: y0}}
}
