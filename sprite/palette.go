package sprite

import (
	"image/color"
	"strconv"
)

// White is used for ids without a palette entry
var White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Palette maps ball ids to display colours
type Palette map[string]color.NRGBA

// DefaultPalette returns the standard pool ball colours; stripes share the
// colour of their solid counterpart
func DefaultPalette() Palette {
	solid := []color.NRGBA{
		{R: 240, G: 200, B: 20, A: 255}, // 1 yellow
		{R: 20, G: 60, B: 200, A: 255},  // 2 blue
		{R: 210, G: 30, B: 30, A: 255},  // 3 red
		{R: 100, G: 30, B: 140, A: 255}, // 4 purple
		{R: 240, G: 110, B: 20, A: 255}, // 5 orange
		{R: 20, G: 130, B: 60, A: 255},  // 6 green
		{R: 120, G: 20, B: 30, A: 255},  // 7 maroon
	}

	p := Palette{
		"cue": White,
		"8":   {R: 20, G: 20, B: 20, A: 255},
	}
	for i, c := range solid {
		p[strconv.Itoa(i+1)] = c
		p[strconv.Itoa(i+9)] = c
	}
	return p
}

// Color returns the colour for id, white when unknown
func (p Palette) Color(id string) color.NRGBA {
	if c, ok := p[id]; ok {
		return c
	}
	return White
}

// With returns a copy of p with overrides applied
func (p Palette) With(overrides map[string]color.NRGBA) Palette {
	out := make(Palette, len(p)+len(overrides))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
