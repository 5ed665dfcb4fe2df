package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// Raster is the software frame buffer: an RGBA image filled by a reusable
// anti-aliasing rasterizer. Sole writer is the owning player's tick.
type Raster struct {
	img *image.RGBA
	z   *vector.Rasterizer
	src *image.Uniform
}

// NewRaster allocates a frame buffer of the given pixel size
func NewRaster(width, height int) *Raster {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Raster{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:   vector.NewRasterizer(width, height),
		src: image.NewUniform(color.NRGBA{}),
	}
}

// NewRasterOn draws onto an existing image, e.g. a sprite surface
func NewRasterOn(img *image.RGBA) *Raster {
	b := img.Bounds()
	return &Raster{
		img: img,
		z:   vector.NewRasterizer(b.Dx(), b.Dy()),
		src: image.NewUniform(color.NRGBA{}),
	}
}

// Image exposes the frame buffer for presentation
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Size returns the frame buffer dimensions
func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Fill paints every pixel, replacing previous content
func (r *Raster) Fill(c color.NRGBA) {
	r.src.C = c
	draw.Draw(r.img, r.img.Bounds(), r.src, image.Point{}, draw.Src)
}

// Polygon fills pts with the non-zero winding rule
func (r *Raster) Polygon(pts []Point, c color.NRGBA) {
	if len(pts) < 3 || c.A == 0 {
		return
	}
	w, h := r.Size()
	r.z.Reset(w, h)
	r.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		r.z.LineTo(float32(p.X), float32(p.Y))
	}
	r.z.ClosePath()
	r.rasterize(c)
}

// Circle fills a disc
func (r *Raster) Circle(center Point, radius float64, c color.NRGBA) {
	if radius <= 0 {
		return
	}
	r.Polygon(CirclePoints(center, radius), c)
}

// Line strokes a segment as a one pixel wide quad
func (r *Raster) Line(a, b Point, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	// Half-pixel offsets centre the stroke on integer coordinates
	nx, ny := -dy/l*0.5, dx/l*0.5
	ax, ay := a.X+0.5, a.Y+0.5
	bx, by := b.X+0.5, b.Y+0.5
	r.Polygon([]Point{
		{ax + nx, ay + ny},
		{bx + nx, by + ny},
		{bx - nx, by - ny},
		{ax - nx, ay - ny},
	}, c)
}

// Blit composites src over the frame buffer
func (r *Raster) Blit(src image.Image, at image.Point) {
	sb := src.Bounds()
	dst := image.Rectangle{Min: at, Max: at.Add(sb.Size())}
	draw.Draw(r.img, dst, src, sb.Min, draw.Over)
}

func (r *Raster) rasterize(c color.NRGBA) {
	r.src.C = c
	r.z.DrawOp = draw.Over
	r.z.Draw(r.img, r.img.Bounds(), r.src, image.Point{})
}
