package ocr

import (
	"errors"
	"image"
	"testing"

	"github.com/tkshfj/ndpi-thumb-ocr/internal/config"
)

// stubEngine scripts RecognizeData confidences by call index and records
// parameters. Each data call returns a single qualifying token.
type stubEngine struct {
	scores    []float64
	errAt     map[int]bool
	text      string
	textErr   error
	dataCalls int
	textCalls int
	lastText  Params
}

func (s *stubEngine) RecognizeData(_ image.Image, _ Params) ([]Token, error) {
	i := s.dataCalls
	s.dataCalls++
	if s.errAt[i] {
		return nil, errors.New("engine failure")
	}
	var conf float64
	if i < len(s.scores) {
		conf = s.scores[i]
	}
	return []Token{{Text: "A1", Confidence: conf}}, nil
}

func (s *stubEngine) RecognizeText(_ image.Image, p Params) (string, error) {
	s.textCalls++
	s.lastText = p
	return s.text, s.textErr
}

// searchConfig is a minimal 4-candidate search: one language, two PSMs,
// upright only, each with a trim variant. Preprocessing is kept cheap.
func searchConfig() config.OCR {
	cfg := config.DefaultOCR()
	cfg.LangCandidates = []string{"eng"}
	cfg.PSMCandidates = []int{6, 11}
	cfg.CropLabel = false
	cfg.AutoRotate = false
	cfg.Upscale = 1
	cfg.Sharpen = false
	cfg.EarlyStopConf = 75
	return cfg
}

func TestMeanConfidence(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
		want   float64
	}{
		{"empty", nil, 0},
		{"all structural", []Token{{"", -1}, {"", -1}}, 0},
		{"punctuation only", []Token{{"---", 95}, {"..", 88}}, 0},
		{"negative confidence excluded", []Token{{"ABC", -1}, {"P19", 80}}, 80},
		{"mixed", []Token{{"P1911642", 90}, {"|", 99}, {"x40", 70}}, 80},
		{"cjk counts", []Token{{"標本", 64}}, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := meanConfidence(tt.tokens); got != tt.want {
				t.Errorf("meanConfidence = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectBest_TieKeepsFirst(t *testing.T) {
	eng := &stubEngine{scores: []float64{60, 60, 60, 60}}
	img := createLabelImage(60, 40)

	best, ok := SelectBest(img, searchConfig(), eng)

	if !ok {
		t.Fatal("expected a selection")
	}
	if best.Score != 60 || best.PSM != 6 {
		t.Errorf("best = (score %v, psm %d), want first candidate (60, 6)", best.Score, best.PSM)
	}
	if eng.dataCalls != 4 {
		t.Errorf("dataCalls = %d, want 4 (no early stop at 60)", eng.dataCalls)
	}
}

func TestSelectBest_EarlyStopHaltsSearch(t *testing.T) {
	// Candidate 2 reaches the threshold; candidates 3 and 4 would score
	// higher but must never be evaluated.
	eng := &stubEngine{scores: []float64{50, 80, 99, 99}}
	img := createLabelImage(60, 40)

	best, ok := SelectBest(img, searchConfig(), eng)

	if !ok || best.Score != 80 {
		t.Errorf("best score = %v, want 80", best.Score)
	}
	if eng.dataCalls != 2 {
		t.Errorf("dataCalls = %d, want 2 (search must halt at threshold)", eng.dataCalls)
	}
}

func TestSelectBest_EarlyStopAtExactThreshold(t *testing.T) {
	eng := &stubEngine{scores: []float64{75, 99}}
	img := createLabelImage(60, 40)

	best, _ := SelectBest(img, searchConfig(), eng)

	if best.Score != 75 {
		t.Errorf("best score = %v, want 75 (threshold is inclusive)", best.Score)
	}
	if eng.dataCalls != 1 {
		t.Errorf("dataCalls = %d, want 1", eng.dataCalls)
	}
}

func TestSelectBest_EngineFailureScoresMinusOne(t *testing.T) {
	eng := &stubEngine{scores: []float64{0, 40, 30, 20}, errAt: map[int]bool{0: true}}
	img := createLabelImage(60, 40)

	best, ok := SelectBest(img, searchConfig(), eng)

	if !ok || best.Score != 40 {
		t.Errorf("best score = %v, want 40 (failed candidate must lose)", best.Score)
	}
	if eng.dataCalls != 4 {
		t.Errorf("dataCalls = %d, want 4 (failure must not abort the search)", eng.dataCalls)
	}
}

func TestSelectBest_AllFailKeepsFirst(t *testing.T) {
	eng := &stubEngine{errAt: map[int]bool{0: true, 1: true, 2: true, 3: true}}
	img := createLabelImage(60, 40)

	best, ok := SelectBest(img, searchConfig(), eng)

	if !ok {
		t.Fatal("expected a selection even when every candidate fails")
	}
	if best.Score != -1 || best.PSM != 6 {
		t.Errorf("best = (score %v, psm %d), want first failing candidate (-1, 6)", best.Score, best.PSM)
	}
}

func TestRecognizeLabel_FinalFullTextPass(t *testing.T) {
	eng := &stubEngine{scores: []float64{10, 20, 90}, text: "P1911642 x40"}
	img := createLabelImage(60, 40)

	got, err := RecognizeLabel(img, searchConfig(), eng)
	if err != nil {
		t.Fatalf("RecognizeLabel failed: %v", err)
	}

	if got != "P1911642 x40" {
		t.Errorf("text = %q, want the full-text pass output", got)
	}
	if eng.textCalls != 1 {
		t.Errorf("textCalls = %d, want exactly 1", eng.textCalls)
	}
	// Candidate 3 is the first PSM=11 variant.
	if eng.lastText.PSM != 11 || eng.lastText.Language != "eng" {
		t.Errorf("final pass params = %+v, want winner's (eng, 11)", eng.lastText)
	}
}

func TestRecognizeLabel_EmptyCandidateSpace(t *testing.T) {
	eng := &stubEngine{text: "unused"}
	cfg := searchConfig()
	cfg.LangCandidates = nil
	img := createLabelImage(60, 40)

	got, err := RecognizeLabel(img, cfg, eng)
	if err != nil {
		t.Fatalf("RecognizeLabel failed: %v", err)
	}

	if got != "" {
		t.Errorf("text = %q, want empty for empty candidate space", got)
	}
	if eng.dataCalls != 0 || eng.textCalls != 0 {
		t.Errorf("engine called (%d data, %d text), want no calls", eng.dataCalls, eng.textCalls)
	}
}

func TestRecognizeLabel_Idempotent(t *testing.T) {
	img := createLabelImage(60, 40)
	cfg := searchConfig()

	run := func() (string, int, Params) {
		eng := &stubEngine{scores: []float64{30, 55, 42, 10}, text: "Sample"}
		text, err := RecognizeLabel(img, cfg, eng)
		if err != nil {
			t.Fatalf("RecognizeLabel failed: %v", err)
		}
		return text, eng.dataCalls, eng.lastText
	}

	text1, calls1, params1 := run()
	text2, calls2, params2 := run()

	if text1 != text2 || calls1 != calls2 || params1 != params2 {
		t.Errorf("runs diverged: (%q, %d, %+v) vs (%q, %d, %+v)",
			text1, calls1, params1, text2, calls2, params2)
	}
}
