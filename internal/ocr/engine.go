package ocr

import "image"

// Token is a single recognized word with the engine's confidence for it on
// a 0-100 scale. Negative confidence marks structural entries the engine
// emitted without recognizing text.
type Token struct {
	Text       string
	Confidence float64
}

// Params selects the engine configuration for one recognition call.
type Params struct {
	// Language is a Tesseract language tag, possibly combined with "+"
	// (e.g. "jpn+eng").
	Language string
	// PSM is the page segmentation mode.
	PSM int
	// OEM is the OCR engine mode.
	OEM int
}

// Engine abstracts the OCR backend as two pure operations. RecognizeData
// returns per-token text and confidence and feeds candidate scoring;
// RecognizeText returns the engine's full-text rendering and produces the
// final output. Failures are per call: an error on one candidate never
// implies the next call fails.
//
// Any backend honoring this contract can substitute for Tesseract.
type Engine interface {
	RecognizeData(img image.Image, p Params) ([]Token, error)
	RecognizeText(img image.Image, p Params) (string, error)
}
