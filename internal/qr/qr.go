// Package qr decodes QR codes printed on slide labels. It runs
// independently of the OCR search, always against the full-size source
// image, and its payload is prepended to the recognized text by the
// output combiner.
package qr

import (
	"image"
	"image/color"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/tkshfj/ndpi-thumb-ocr/internal/config"
	"github.com/tkshfj/ndpi-thumb-ocr/internal/imaging"
)

// Decode tries each configured rotation in order and returns the first
// non-empty payload, trimmed of surrounding whitespace. Disabled config or
// no decodable code returns ok=false.
func Decode(img image.Image, cfg config.QR) (payload string, ok bool) {
	if !cfg.Enabled {
		return "", false
	}

	reader := qrcode.NewQRCodeReader()
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	for _, deg := range cfg.RotationCandidates {
		cand := imaging.Rotate(img, deg, color.White)
		bmp, err := gozxing.NewBinaryBitmapFromImage(cand)
		if err != nil {
			continue
		}
		result, err := reader.Decode(bmp, hints)
		if err != nil || result == nil {
			continue
		}
		if text := strings.TrimSpace(result.GetText()); text != "" {
			return text, true
		}
	}
	return "", false
}
