package detection

import (
	"image"
	"image/color"
	"testing"
)

// createUniformImage creates a solid-color test image.
func createUniformImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createBarImage creates a white image with a full-height dark vertical bar.
func createBarImage(width, height, barX, barWidth int) *image.RGBA {
	img := createUniformImage(width, height, color.White)
	for x := barX; x < barX+barWidth && x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func TestDetectLabelRegion_SeparatorBar(t *testing.T) {
	// 400x300 with a clear bar at x=120: expected right edge is the bar
	// start plus margin, already above the 20%-width floor (80).
	img := createBarImage(400, 300, 120, 8)

	box := DetectLabelRegion(img, 0.33)

	if box.Left != 0 || box.Top != 0 || box.Bottom != 300 {
		t.Errorf("box = %+v, want full-height crop from left edge", box)
	}
	if box.Right < 130 || box.Right > 140 {
		t.Errorf("Right = %d, want between 130 and 140", box.Right)
	}
}

func TestDetectLabelRegion_FloorApplies(t *testing.T) {
	// Bar close to the window start: bar start + margin would be below the
	// 20%-width floor, so the floor wins.
	img := createBarImage(400, 300, 45, 10)

	box := DetectLabelRegion(img, 0.33)

	if box.Right != 80 {
		t.Errorf("Right = %d, want 80 (20%% of width)", box.Right)
	}
}

func TestDetectLabelRegion_UniformFallback(t *testing.T) {
	img := createUniformImage(400, 300, color.White)

	box := DetectLabelRegion(img, 0.33)

	if box.Right != 132 {
		t.Errorf("Right = %d, want floor(400*0.33) = 132", box.Right)
	}
	if box.Left != 0 || box.Top != 0 || box.Bottom != 300 {
		t.Errorf("box = %+v, want (0,0,132,300)", box)
	}
}

func TestDetectLabelRegion_NarrowRunIgnored(t *testing.T) {
	// A 3px run is below the minimum bar width, so the fallback applies.
	img := createBarImage(400, 300, 120, 3)

	box := DetectLabelRegion(img, 0.33)

	if box.Right != 132 {
		t.Errorf("Right = %d, want fallback 132", box.Right)
	}
}

func TestDetectLabelRegion_BarOutsideWindow(t *testing.T) {
	// Bar at 87% of width, outside the 10%..70% search window.
	img := createBarImage(400, 300, 350, 10)

	box := DetectLabelRegion(img, 0.33)

	if box.Right != 132 {
		t.Errorf("Right = %d, want fallback 132", box.Right)
	}
}

func TestDetectLabelRegion_BoxAlwaysValid(t *testing.T) {
	ratios := []float64{0.01, 0.33, 1.0}
	sizes := []struct{ w, h int }{
		{1, 1}, {2, 3}, {5, 5}, {50, 10}, {400, 300}, {3000, 200},
	}

	for _, sz := range sizes {
		for _, ratio := range ratios {
			imgs := []image.Image{
				createUniformImage(sz.w, sz.h, color.White),
				createUniformImage(sz.w, sz.h, color.Black),
			}
			for _, img := range imgs {
				box := DetectLabelRegion(img, ratio)
				if box.Left < 0 || box.Left >= box.Right || box.Right > sz.w {
					t.Errorf("size %dx%d ratio %v: invalid horizontal box %+v", sz.w, sz.h, ratio, box)
				}
				if box.Top < 0 || box.Top >= box.Bottom || box.Bottom > sz.h {
					t.Errorf("size %dx%d ratio %v: invalid vertical box %+v", sz.w, sz.h, ratio, box)
				}
			}
		}
	}
}

func TestDetectLabelRegion_WidestRunWins(t *testing.T) {
	// Two qualifying runs: the wider one defines the crop even though the
	// narrow one comes first.
	img := createBarImage(400, 300, 60, 7)
	for x := 180; x < 195; x++ {
		for y := 0; y < 300; y++ {
			img.Set(x, y, color.Black)
		}
	}

	box := DetectLabelRegion(img, 0.33)

	if box.Right != 190 {
		t.Errorf("Right = %d, want 190 (wider run start + margin)", box.Right)
	}
}
