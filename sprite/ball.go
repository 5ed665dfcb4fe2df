// Package sprite holds the positionable visual proxy of a ball
package sprite

import (
	"image"
	"image/color"

	"github.com/lixenwraith/shotplay/render"
	"github.com/lixenwraith/shotplay/shot"
	"github.com/lixenwraith/shotplay/trajectory"
)

// DefaultTraceLength is the number of past frames a trail may span
const DefaultTraceLength = 100

// Options configures sprite construction
type Options struct {
	Palette     Palette
	Trace       bool
	TraceLength int
}

// Ball is one ball's sprite: a pre-rendered disc and its sampled track
type Ball struct {
	ID          string
	Radius      int
	Color       color.NRGBA
	Trace       bool
	TraceLength int
	Track       trajectory.Track
	Surface     *image.RGBA // 2r x 2r, transparent outside the disc

	frame  int
	anchor image.Point
}

// New builds the sprite and positions it at frame 0
func New(b shot.Ball, track trajectory.Track, scale float64, opts Options) *Ball {
	r := trajectory.PX(scale, b.Radius)
	if r < 1 {
		r = 1
	}
	tl := opts.TraceLength
	if tl <= 0 {
		tl = DefaultTraceLength
	}

	s := &Ball{
		ID:          b.ID,
		Radius:      r,
		Color:       opts.Palette.Color(b.ID),
		Trace:       opts.Trace,
		TraceLength: tl,
		Track:       track,
		Surface:     image.NewRGBA(image.Rect(0, 0, 2*r, 2*r)),
	}
	render.NewRasterOn(s.Surface).Circle(render.Pt(float64(r), float64(r)), float64(r), s.Color)

	s.Update(0)
	return s
}

// Update moves the anchor to the sampled position at frame
// The caller guarantees 0 <= frame < Track.Len()
func (s *Ball) Update(frame int) {
	s.frame = frame
	s.anchor = image.Point{X: s.Track.X[frame], Y: s.Track.Y[frame]}
}

// Frame returns the current display frame
func (s *Ball) Frame() int {
	return s.frame
}

// Anchor returns the sprite centre in playing-surface pixels
func (s *Ball) Anchor() image.Point {
	return s.anchor
}

// Rect returns the surface destination with the given surface origin offset
func (s *Ball) Rect(offset image.Point) image.Rectangle {
	min := s.anchor.Add(offset).Sub(image.Pt(s.Radius, s.Radius))
	return image.Rectangle{Min: min, Max: min.Add(s.Surface.Bounds().Size())}
}

// Point returns the track position at frame as a render point
func (s *Ball) Point(frame int) render.Point {
	return render.Pt(float64(s.Track.X[frame]), float64(s.Track.Y[frame]))
}
