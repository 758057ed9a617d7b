package imaging

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// BackgroundFill estimates the background color of a label image by
// averaging its one-pixel border ring in Lab space. Printed labels sit on a
// near-uniform backing (usually white paper), so the border is a reliable
// sample; Lab averaging keeps the estimate perceptually sensible when the
// border mixes shades.
func BackgroundFill(img image.Image) color.Color {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w == 0 || h == 0 {
		return color.White
	}

	var l, a, b float64
	n := 0
	sample := func(x, y int) {
		c, ok := colorful.MakeColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		if !ok {
			return
		}
		cl, ca, cb := c.Lab()
		l += cl
		a += ca
		b += cb
		n++
	}

	for x := 0; x < w; x++ {
		sample(x, 0)
		sample(x, h-1)
	}
	for y := 1; y < h-1; y++ {
		sample(0, y)
		sample(w-1, y)
	}

	if n == 0 {
		return color.White
	}
	fn := float64(n)
	return colorful.Lab(l/fn, a/fn, b/fn).Clamped()
}
