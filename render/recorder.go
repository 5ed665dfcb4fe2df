package render

import (
	"image"
	"image/color"
)

// CallKind identifies a recorded draw call
type CallKind uint8

const (
	CallFill CallKind = iota
	CallPolygon
	CallCircle
	CallLine
	CallBlit
)

// DrawCall is one captured Canvas invocation
type DrawCall struct {
	Kind   CallKind
	Points []Point // polygon vertices, line endpoints, circle centre
	Radius float64
	Color  color.NRGBA
	Rect   image.Rectangle // blit destination
}

// Recorder is a Canvas that keeps every call instead of drawing it
type Recorder struct {
	Calls []DrawCall
}

// Reset drops recorded calls, keeping capacity
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Count returns how many calls of the given kind were recorded
func (r *Recorder) Count(kind CallKind) int {
	n := 0
	for _, c := range r.Calls {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Of returns the recorded calls of one kind in order
func (r *Recorder) Of(kind CallKind) []DrawCall {
	var out []DrawCall
	for _, c := range r.Calls {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) Fill(c color.NRGBA) {
	r.Calls = append(r.Calls, DrawCall{Kind: CallFill, Color: c})
}

func (r *Recorder) Polygon(pts []Point, c color.NRGBA) {
	cp := append([]Point(nil), pts...)
	r.Calls = append(r.Calls, DrawCall{Kind: CallPolygon, Points: cp, Color: c})
}

func (r *Recorder) Circle(center Point, radius float64, c color.NRGBA) {
	r.Calls = append(r.Calls, DrawCall{Kind: CallCircle, Points: []Point{center}, Radius: radius, Color: c})
}

func (r *Recorder) Line(a, b Point, c color.NRGBA) {
	r.Calls = append(r.Calls, DrawCall{Kind: CallLine, Points: []Point{a, b}, Color: c})
}

func (r *Recorder) Blit(src image.Image, at image.Point) {
	rect := image.Rectangle{Min: at, Max: at.Add(src.Bounds().Size())}
	r.Calls = append(r.Calls, DrawCall{Kind: CallBlit, Rect: rect})
}
