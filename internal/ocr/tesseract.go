package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strconv"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract is the gosseract-backed Engine. A fresh client is created per
// recognition call; client setup is cheap next to recognition itself, and
// per-call clients keep language/PSM state from leaking between candidates.
type Tesseract struct{}

// NewTesseract returns the default Tesseract engine.
func NewTesseract() *Tesseract {
	return &Tesseract{}
}

// RecognizeData returns word-level tokens with confidences, the scoring
// input for the candidate search.
func (t *Tesseract) RecognizeData(img image.Image, p Params) ([]Token, error) {
	client, err := newClient(img, p)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("word boxes: %w", err)
	}

	tokens := make([]Token, 0, len(boxes))
	for _, b := range boxes {
		tokens = append(tokens, Token{Text: b.Word, Confidence: b.Confidence})
	}
	return tokens, nil
}

// RecognizeText returns the engine's full-text output for the image.
func (t *Tesseract) RecognizeText(img image.Image, p Params) (string, error) {
	client, err := newClient(img, p)
	if err != nil {
		return "", err
	}
	defer client.Close()

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}

// newClient builds a configured gosseract client holding the image. The
// caller owns Close.
func newClient(img image.Image, p Params) (*gosseract.Client, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	client := gosseract.NewClient()
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		client.Close()
		return nil, fmt.Errorf("set image: %w", err)
	}
	if p.Language != "" {
		if err := client.SetLanguage(strings.Split(p.Language, "+")...); err != nil {
			client.Close()
			return nil, fmt.Errorf("set language %q: %w", p.Language, err)
		}
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(p.PSM)); err != nil {
		client.Close()
		return nil, fmt.Errorf("set psm %d: %w", p.PSM, err)
	}
	if p.OEM > 0 {
		// gosseract exposes no init-time OEM parameter; the variable route
		// covers the engines that honor it.
		if err := client.SetVariable(gosseract.SettableVariable("tessedit_ocr_engine_mode"), strconv.Itoa(p.OEM)); err != nil {
			client.Close()
			return nil, fmt.Errorf("set oem %d: %w", p.OEM, err)
		}
	}
	return client, nil
}
