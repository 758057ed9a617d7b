package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Rotate rotates counterclockwise by the given degrees, expanding the canvas
// as needed. Right-angle rotations take the exact fast paths; anything else
// resamples against the background color.
func Rotate(img image.Image, degrees int, bg color.Color) image.Image {
	switch ((degrees % 360) + 360) % 360 {
	case 0:
		return imaging.Clone(img)
	case 90:
		return imaging.Rotate90(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate270(img)
	default:
		return imaging.Rotate(img, float64(degrees), bg)
	}
}

// Crop extracts the given rectangle, clamped to the image bounds.
func Crop(img image.Image, r image.Rectangle) image.Image {
	return imaging.Crop(img, r)
}

// TrimBottom removes the bottom frac of the image. Slide labels often carry
// a QR code or graphics below the printed text; trimming keeps them out of
// the OCR layout analysis. The result is never shorter than one pixel.
func TrimBottom(img image.Image, frac float64) image.Image {
	b := img.Bounds()
	w := b.Dx()
	h := b.Dy()

	keep := h - int(float64(h)*frac)
	if keep < 1 {
		keep = 1
	}
	return imaging.Crop(img, image.Rect(0, 0, w, keep))
}

// PadBorder surrounds the image with a solid border of the given width.
// Tesseract's layout analysis clips characters that touch the image edge;
// the border keeps glyphs clear of it.
func PadBorder(img image.Image, px int, fill color.Color) image.Image {
	if px <= 0 {
		return imaging.Clone(img)
	}
	b := img.Bounds()
	dst := imaging.New(b.Dx()+2*px, b.Dy()+2*px, fill)
	return imaging.Paste(dst, img, image.Pt(px, px))
}
