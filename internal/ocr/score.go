package ocr

import (
	"image"
	"regexp"

	"github.com/tkshfj/ndpi-thumb-ocr/internal/config"
	"github.com/tkshfj/ndpi-thumb-ocr/internal/imaging"
)

// wordRe matches tokens worth scoring: at least one ASCII alphanumeric rune
// or a CJK ideograph/kana rune. Pure punctuation and whitespace tokens are
// high-confidence noise from non-text regions and must not inflate scores.
var wordRe = regexp.MustCompile(`[A-Za-z0-9一-龯ぁ-んァ-ン]`)

// Scored is the winning candidate of a search: its mean confidence, the
// exact image variant that produced it, and the engine parameters it ran
// under.
type Scored struct {
	Score float64
	Image image.Image
	Lang  string
	PSM   int
}

// meanConfidence averages confidences over qualifying tokens: confidence
// >= 0 and at least one scoreable rune. No qualifying tokens scores 0.
func meanConfidence(tokens []Token) float64 {
	var sum float64
	n := 0
	for _, tok := range tokens {
		if tok.Confidence < 0 {
			continue
		}
		if tok.Text == "" || !wordRe.MatchString(tok.Text) {
			continue
		}
		sum += tok.Confidence
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// scoreCandidate preprocesses and scores one candidate. An engine failure
// is local recovery territory: the candidate scores -1 (never selected over
// any scored candidate) and the search continues.
func scoreCandidate(c Candidate, cfg config.OCR, eng Engine) float64 {
	pre := imaging.Preprocess(c.Image, cfg)
	tokens, err := eng.RecognizeData(pre, Params{Language: c.Lang, PSM: c.PSM, OEM: cfg.OEM})
	if err != nil {
		return -1
	}
	return meanConfidence(tokens)
}

// SelectBest scores candidates in generation order and returns the winner.
// Replacement requires a strictly greater score, so equal scores keep the
// earlier candidate. The first candidate reaching cfg.EarlyStopConf becomes
// final immediately and the remaining candidates are never evaluated, even
// if a later one would score higher. ok is false when the generator yields
// nothing (empty language or PSM lists).
func SelectBest(img image.Image, cfg config.OCR, eng Engine) (best Scored, ok bool) {
	forEachCandidate(img, cfg, func(c Candidate) bool {
		score := scoreCandidate(c, cfg, eng)
		if !ok || score > best.Score {
			best = Scored{Score: score, Image: c.Image, Lang: c.Lang, PSM: c.PSM}
			ok = true
		}
		if score >= cfg.EarlyStopConf {
			best = Scored{Score: score, Image: c.Image, Lang: c.Lang, PSM: c.PSM}
			return false
		}
		return true
	})
	return best, ok
}

// RecognizeLabel runs the full label-recovery search on an image and
// returns the recognized text. Scoring reads the engine's word-confidence
// output; the returned string comes from a second, full-text engine pass on
// the winning candidate and may differ from what the scorer saw, since the
// two output modes take different paths inside the engine. An empty candidate
// space yields an empty string without error.
func RecognizeLabel(img image.Image, cfg config.OCR, eng Engine) (string, error) {
	best, ok := SelectBest(img, cfg, eng)
	if !ok {
		return "", nil
	}
	pre := imaging.Preprocess(best.Image, cfg)
	return eng.RecognizeText(pre, Params{Language: best.Lang, PSM: best.PSM, OEM: cfg.OEM})
}
