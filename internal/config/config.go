// Package config holds the immutable configuration values for the slide
// organizer: OCR search parameters, QR decoding options, and folder/thumbnail
// layout. Configs are plain values constructed once per run and passed into
// every component; nothing here mutates after construction.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// OCR controls the adaptive label-recognition search: which languages and
// page segmentation modes to try, how to preprocess candidates, and when to
// stop early.
type OCR struct {
	// Enabled gates the whole OCR pipeline; when false no text file is written.
	Enabled bool

	// LangCandidates are Tesseract language tags tried in order, e.g.
	// "jpn+eng". Order matters: the search walks languages outermost.
	LangCandidates []string

	// PSMCandidates are Tesseract page segmentation modes tried in order
	// (6=block, 11=sparse, 4=column, 3=auto).
	PSMCandidates []int

	// OEM is the Tesseract OCR engine mode.
	OEM int

	// Upscale enlarges small thumbnails by this integer factor before OCR.
	// Source images are often only a few hundred pixels across.
	Upscale int

	// Threshold binarizes at this 8-bit cutoff; negative disables.
	Threshold int

	// Sharpen applies an unsharp mask at the end of preprocessing.
	Sharpen bool

	// AutoRotate tries RotationCandidates; RotateDegrees forces a single
	// rotation and overrides AutoRotate when non-nil.
	AutoRotate    bool
	RotateDegrees *int

	// RotationCandidates are the degrees tried when AutoRotate is on.
	RotationCandidates []int

	// CropLabel enables the label-region heuristic; when off only the full
	// image is searched.
	CropLabel bool

	// LabelWidthRatio is the fallback crop width when no separator bar is
	// found, as a fraction of image width in (0, 1].
	LabelWidthRatio float64

	// EarlyStopConf halts the candidate search once a candidate's mean
	// confidence (0-100) reaches this value.
	EarlyStopConf float64
}

// QR controls the independent QR-code augmentation pass.
type QR struct {
	Enabled            bool
	RotationCandidates []int
}

// Thumb describes the per-slide folder layout and thumbnail parameters.
type Thumb struct {
	// PreferredAssoc lists associated-image names tried for the folder cover,
	// in order. PreferredAssocOCR is the order for the OCR source; "label"
	// first because that is where the printed text lives.
	PreferredAssoc    []string
	PreferredAssocOCR []string

	// MaxSize bounds the cover thumbnail; OCRRenderSize is the larger render
	// used when no associated image is available for OCR.
	MaxSize       int
	OCRRenderSize int

	JPEGQuality int

	// In-folder file names.
	SlideName string
	CoverName string
	TextName  string
}

// DefaultOCR returns the stock OCR search configuration.
func DefaultOCR() OCR {
	return OCR{
		LangCandidates:     []string{"jpn+eng", "jpn"},
		PSMCandidates:      []int{6, 11},
		OEM:                3,
		Upscale:            6,
		Threshold:          -1,
		Sharpen:            true,
		AutoRotate:         true,
		RotationCandidates: []int{0, -90},
		CropLabel:          true,
		LabelWidthRatio:    0.33,
		EarlyStopConf:      75.0,
	}
}

// DefaultQR returns the stock QR configuration (disabled).
func DefaultQR() QR {
	return QR{
		RotationCandidates: []int{0, -90},
	}
}

// DefaultThumb returns the stock folder layout.
func DefaultThumb() Thumb {
	return Thumb{
		PreferredAssoc:    []string{"thumbnail", "macro", "label"},
		PreferredAssocOCR: []string{"label", "macro", "thumbnail"},
		MaxSize:           512,
		OCRRenderSize:     2048,
		JPEGQuality:       85,
		SlideName:         "slide.ndpi",
		CoverName:         "folder.jpg",
		TextName:          "folder.ocr.txt",
	}
}

// Load returns the default OCR config with environment overrides applied.
// A .env file in the working directory is honored when present.
func Load() OCR {
	_ = godotenv.Load()

	cfg := DefaultOCR()
	if langs := os.Getenv("NDPI_OCR_LANGS"); langs != "" {
		cfg.LangCandidates = SplitList(langs)
	}
	if psms := os.Getenv("NDPI_OCR_PSMS"); psms != "" {
		if parsed, err := SplitIntList(psms); err == nil {
			cfg.PSMCandidates = parsed
		}
	}
	if up := os.Getenv("NDPI_OCR_UPSCALE"); up != "" {
		if n, err := strconv.Atoi(up); err == nil && n >= 1 {
			cfg.Upscale = n
		}
	}
	return cfg
}

// SplitList parses a comma-separated list, trimming whitespace and dropping
// empty entries.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SplitIntList parses a comma-separated list of integers.
func SplitIntList(s string) ([]int, error) {
	parts := SplitList(s)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
