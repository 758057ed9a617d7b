package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"

	"github.com/tkshfj/ndpi-thumb-ocr/internal/config"
)

// Preprocess normalizes a label image for OCR. The pipeline is fixed:
// grayscale, integer upscale (small thumbnails carry too few pixels per
// glyph), autocontrast, a contrast boost, optional binarization, and an
// unsharp mask. Deterministic: the same input and config always produce the
// same output.
func Preprocess(img image.Image, cfg config.OCR) image.Image {
	g := imaging.Grayscale(img)

	if cfg.Upscale > 1 {
		b := g.Bounds()
		g = imaging.Resize(g, b.Dx()*cfg.Upscale, b.Dy()*cfg.Upscale, imaging.Lanczos)
	}

	g = autocontrast(g)

	// Light contrast boost, factor 1.5 around the midpoint.
	g = imaging.AdjustContrast(g, 50)

	var out image.Image = g
	if cfg.Threshold >= 0 && cfg.Threshold <= 255 {
		out = segment.Threshold(out, uint8(cfg.Threshold))
	}

	if cfg.Sharpen {
		// Unsharp mask, radius 2, strength 150%.
		out = effect.UnsharpMask(out, 2, 1.5)
	}

	return out
}

// autocontrast linearly stretches the intensity range to the full 8-bit
// scale. Input must be grayscale (R=G=B), which Grayscale guarantees.
func autocontrast(g *image.NRGBA) *image.NRGBA {
	lo, hi := 255, 0
	for i := 0; i < len(g.Pix); i += 4 {
		v := int(g.Pix[i])
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi <= lo {
		return g
	}

	var lut [256]uint8
	scale := 255.0 / float64(hi-lo)
	for v := range lut {
		switch {
		case v <= lo:
			lut[v] = 0
		case v >= hi:
			lut[v] = 255
		default:
			lut[v] = uint8(float64(v-lo)*scale + 0.5)
		}
	}

	out := imaging.Clone(g)
	for i := 0; i < len(out.Pix); i += 4 {
		v := lut[out.Pix[i]]
		out.Pix[i], out.Pix[i+1], out.Pix[i+2] = v, v, v
	}
	return out
}
