package config

import (
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "jpn+eng,jpn", []string{"jpn+eng", "jpn"}},
		{"whitespace", " jpn+eng , eng ", []string{"jpn+eng", "eng"}},
		{"empty entries", "jpn,,eng,", []string{"jpn", "eng"}},
		{"empty string", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitList(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitList(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitIntList(t *testing.T) {
	got, err := SplitIntList("6, 11,4")
	if err != nil {
		t.Fatalf("SplitIntList failed: %v", err)
	}
	want := []int{6, 11, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitIntList = %v, want %v", got, want)
	}
}

func TestSplitIntList_Invalid(t *testing.T) {
	if _, err := SplitIntList("6,abc"); err == nil {
		t.Error("SplitIntList should fail for non-numeric entries")
	}
}

func TestDefaultOCR(t *testing.T) {
	cfg := DefaultOCR()

	if len(cfg.LangCandidates) == 0 {
		t.Error("default config must have at least one language candidate")
	}
	if len(cfg.PSMCandidates) == 0 {
		t.Error("default config must have at least one PSM candidate")
	}
	if cfg.Upscale < 1 {
		t.Errorf("Upscale = %d, want >= 1", cfg.Upscale)
	}
	if cfg.Threshold >= 0 {
		t.Error("binarization should be disabled by default")
	}
	if cfg.LabelWidthRatio <= 0 || cfg.LabelWidthRatio > 1 {
		t.Errorf("LabelWidthRatio = %v, want in (0, 1]", cfg.LabelWidthRatio)
	}
	if cfg.RotateDegrees != nil {
		t.Error("no forced rotation by default")
	}
}
