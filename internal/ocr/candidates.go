package ocr

import (
	"image"

	"github.com/tkshfj/ndpi-thumb-ocr/internal/config"
	"github.com/tkshfj/ndpi-thumb-ocr/internal/detection"
	"github.com/tkshfj/ndpi-thumb-ocr/internal/imaging"
)

const (
	// borderPad keeps glyphs clear of the image edge, where Tesseract's
	// layout analysis clips them.
	borderPad = 20

	// bottomTrimFrac removes the band where QR codes and graphics usually
	// sit below the printed label text.
	bottomTrimFrac = 0.25
)

// Candidate is one preprocessing recipe for the OCR engine: an image
// variant together with the language and page segmentation mode to try it
// under.
type Candidate struct {
	Image image.Image
	Lang  string
	PSM   int
}

// forEachCandidate walks the candidate space lazily in a fixed order:
// language (outer), then PSM, then region, then rotation. For the 0°
// rotation a bottom-trimmed variant follows the full region; non-zero
// rotations get no trim variant, and trimming never touches the left or
// right edges. Every emitted image carries a solid border in the estimated
// background color.
//
// fn returning false stops the walk; nothing past that point is built,
// which is what makes early stopping cheap. The cross-product can be large
// (languages × psms × regions × rotations × trim variants) and is never
// materialized.
func forEachCandidate(img image.Image, cfg config.OCR, fn func(Candidate) bool) {
	rots := rotations(cfg)
	regs := regions(img, cfg)

	for _, lang := range cfg.LangCandidates {
		for _, psm := range cfg.PSMCandidates {
			for _, reg := range regs {
				fill := imaging.BackgroundFill(reg)
				for _, deg := range rots {
					rot := imaging.Rotate(reg, deg, fill)
					if !fn(Candidate{Image: imaging.PadBorder(rot, borderPad, fill), Lang: lang, PSM: psm}) {
						return
					}
					if deg == 0 {
						trimmed := imaging.TrimBottom(rot, bottomTrimFrac)
						if !fn(Candidate{Image: imaging.PadBorder(trimmed, borderPad, fill), Lang: lang, PSM: psm}) {
							return
						}
					}
				}
			}
		}
	}
}

// rotations resolves the rotation set: a forced rotation wins outright,
// otherwise the configured candidates when auto-rotate is on, otherwise
// upright only.
func rotations(cfg config.OCR) []int {
	if cfg.RotateDegrees != nil {
		return []int{*cfg.RotateDegrees}
	}
	if cfg.AutoRotate {
		return cfg.RotationCandidates
	}
	return []int{0}
}

// regions resolves the region set. With label cropping on, both the
// detected label crop and the full image are searched; the heuristic can
// over- or under-crop and the full image covers both failure modes.
func regions(img image.Image, cfg config.OCR) []image.Image {
	if !cfg.CropLabel {
		return []image.Image{img}
	}
	box := detection.DetectLabelRegion(img, cfg.LabelWidthRatio)
	label := imaging.Crop(img, box.Rect())
	return []image.Image{label, img}
}
