// Package terminal presents rendered frames on a tcell screen using
// upper-half-block cells, two vertical pixels per character
package terminal

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	xdraw "golang.org/x/image/draw"

	"github.com/lixenwraith/shotplay/render"
)

const halfBlock = '▀'

// Styles used for the text overlays
var (
	StyleStatus = tcell.StyleDefault.Reverse(true)
	StylePanel  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(20, 20, 28))
	StyleHelp   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(230, 230, 230)).Background(tcell.NewRGBColor(30, 34, 48))
)

// Presenter draws frames and overlays to a tcell screen
type Presenter struct {
	screen tcell.Screen
	scaled *image.RGBA
	w, h   int // screen size at the previous Present
}

// NewPresenter wraps an initialized screen
func NewPresenter(s tcell.Screen) *Presenter {
	return &Presenter{screen: s}
}

// Viewport returns the pixel size a frame of fw x fh is scaled to on a
// w x h cell screen, keeping the aspect ratio. The last row is reserved
// for the status bar.
func Viewport(fw, fh, w, h int) (int, int) {
	rows := h - 1
	if fw <= 0 || fh <= 0 || w <= 0 || rows <= 0 {
		return 0, 0
	}
	sx := float64(w) / float64(fw)
	sy := float64(2*rows) / float64(fh)
	s := min(sx, sy)
	return max(1, int(float64(fw)*s)), max(1, int(float64(fh)*s))
}

// Present implements engine.Presenter
func (p *Presenter) Present(frame *image.RGBA, ov render.Overlay) {
	w, h := p.screen.Size()
	if w != p.w || h != p.h {
		p.w, p.h = w, h
		p.screen.Sync()
	}
	p.screen.Clear()

	dw, dh := Viewport(frame.Bounds().Dx(), frame.Bounds().Dy(), w, h)
	if dw > 0 && dh > 0 {
		p.paint(frame, dw, dh, (w-dw)/2)
	}

	if len(ov.Panel) > 0 {
		drawBox(p.screen, 0, 0, ov.Panel, StylePanel, false)
	}
	if len(ov.Help) > 0 {
		bw := boxWidth(ov.Help) + 4
		bh := len(ov.Help) + 2
		drawBox(p.screen, max(0, (w-bw)/2), max(0, (h-1-bh)/2), ov.Help, StyleHelp, true)
	}
	if h > 0 {
		drawText(p.screen, 0, h-1, w, ov.Status, StyleStatus, true)
	}

	p.screen.Show()
}

// paint scales frame to dw x dh pixels and writes it as half-block cells
// starting at column x0
func (p *Presenter) paint(frame *image.RGBA, dw, dh, x0 int) {
	if p.scaled == nil || p.scaled.Bounds().Dx() != dw || p.scaled.Bounds().Dy() != dh {
		p.scaled = image.NewRGBA(image.Rect(0, 0, dw, dh))
	}

	var scaler xdraw.Scaler = xdraw.ApproxBiLinear
	if dw >= frame.Bounds().Dx() {
		scaler = xdraw.NearestNeighbor
	}
	scaler.Scale(p.scaled, p.scaled.Bounds(), frame, frame.Bounds(), xdraw.Src, nil)

	for row := 0; row*2 < dh; row++ {
		for x := 0; x < dw; x++ {
			st := tcell.StyleDefault.Foreground(toColor(p.scaled.RGBAAt(x, row*2)))
			if row*2+1 < dh {
				st = st.Background(toColor(p.scaled.RGBAAt(x, row*2+1)))
			}
			p.screen.SetContent(x0+x, row, halfBlock, nil, st)
		}
	}
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// drawText writes text at (x, y) clipped to maxw columns; fill pads the
// rest of the span with spaces
func drawText(s tcell.Screen, x, y, maxw int, text string, st tcell.Style, fill bool) {
	col := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if col+rw > maxw {
			break
		}
		s.SetContent(x+col, y, r, nil, st)
		col += rw
	}
	if fill {
		for ; col < maxw; col++ {
			s.SetContent(x+col, y, ' ', nil, st)
		}
	}
}

func boxWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, runewidth.StringWidth(l))
	}
	return w
}

// drawBox draws lines on a filled background with one column of padding
func drawBox(s tcell.Screen, x, y int, lines []string, st tcell.Style, border bool) {
	inner := boxWidth(lines)
	bw := inner + 2
	bh := len(lines)
	if border {
		bw += 2
		bh += 2
	}

	for row := 0; row < bh; row++ {
		for col := 0; col < bw; col++ {
			s.SetContent(x+col, y+row, ' ', nil, st)
		}
	}

	if border {
		for col := 1; col < bw-1; col++ {
			s.SetContent(x+col, y, tcell.RuneHLine, nil, st)
			s.SetContent(x+col, y+bh-1, tcell.RuneHLine, nil, st)
		}
		for row := 1; row < bh-1; row++ {
			s.SetContent(x, y+row, tcell.RuneVLine, nil, st)
			s.SetContent(x+bw-1, y+row, tcell.RuneVLine, nil, st)
		}
		s.SetContent(x, y, tcell.RuneULCorner, nil, st)
		s.SetContent(x+bw-1, y, tcell.RuneURCorner, nil, st)
		s.SetContent(x, y+bh-1, tcell.RuneLLCorner, nil, st)
		s.SetContent(x+bw-1, y+bh-1, tcell.RuneLRCorner, nil, st)
		x, y = x+1, y+1
	}

	for i, l := range lines {
		drawText(s, x+1, y+i, inner, l, st, false)
	}
}
