package render

import (
	"image"
	"image/color"
	"math"
)

// Point is a pixel-space coordinate; y grows upward once the frame is flipped
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Canvas receives the draw calls of one frame
// Colors are non-premultiplied; A=0 draws nothing, A=255 is opaque
type Canvas interface {
	// Fill paints the whole canvas
	Fill(c color.NRGBA)
	// Polygon fills a closed polygon
	Polygon(pts []Point, c color.NRGBA)
	// Circle fills a disc
	Circle(center Point, r float64, c color.NRGBA)
	// Line strokes a one pixel wide segment
	Line(a, b Point, c color.NRGBA)
	// Blit composites src over the canvas with its top-left corner at `at`
	Blit(src image.Image, at image.Point)
}

// circleSegments is the polygon resolution used to fill discs
const circleSegments = 32

// CirclePoints approximates a circle outline as a closed polygon
func CirclePoints(center Point, r float64) []Point {
	pts := make([]Point, circleSegments)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = Point{X: center.X + r*math.Cos(theta), Y: center.Y + r*math.Sin(theta)}
	}
	return pts
}
