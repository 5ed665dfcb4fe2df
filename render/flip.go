package render

import "image"

// FlipVertical writes src mirrored top-to-bottom into dst so that the
// bottom-left simulation origin appears at the bottom-left of the screen.
// dst is reallocated when its size differs from src; the result is returned.
func FlipVertical(dst, src *image.RGBA) *image.RGBA {
	sb := src.Bounds()
	if dst == nil || dst.Bounds().Size() != sb.Size() {
		dst = image.NewRGBA(image.Rect(0, 0, sb.Dx(), sb.Dy()))
	}
	h := sb.Dy()
	rowBytes := sb.Dx() * 4
	for y := 0; y < h; y++ {
		srcOff := src.PixOffset(sb.Min.X, sb.Min.Y+y)
		dstOff := dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+h-1-y)
		copy(dst.Pix[dstOff:dstOff+rowBytes], src.Pix[srcOff:srcOff+rowBytes])
	}
	return dst
}
