package detection

import "image"

// Column-darkness parameters for the separator-bar heuristic. Intensities
// are 8-bit; fractions are relative to image size.
const (
	darkThreshold = 60   // column mean below this counts as dark
	bandTop       = 0.15 // vertical band used for column means
	bandBottom    = 0.85
	windowStart   = 0.10 // horizontal window searched for the bar
	windowEnd     = 0.70
	barMargin     = 10   // pixels kept past the bar start
	minRightFrac  = 0.20 // crop never narrower than this fraction of width
)

// CropBox is a rectangular crop in pixel coordinates, left/top inclusive,
// right/bottom exclusive. A valid box satisfies
// 0 <= Left < Right <= width and 0 <= Top < Bottom <= height.
type CropBox struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Rect converts the box to an image.Rectangle.
func (b CropBox) Rect() image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Right, b.Bottom)
}

// DetectLabelRegion locates the printed-label area of a macro/label image.
//
// Slide scanners typically separate the label from the tissue area with a
// dark vertical rule. The heuristic computes per-column mean intensity over
// the middle vertical band (borders are noisy), finds the widest dark run
// inside a constrained horizontal window, and keeps everything left of it.
// When no qualifying run exists the box falls back to the left
// labelWidthRatio fraction of the image.
func DetectLabelRegion(img image.Image, labelWidthRatio float64) CropBox {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	colMean := columnMeans(img)

	// Restrict to the middle band handled in columnMeans; here restrict the
	// horizontal search so the image's own left border cannot win.
	xStart := int(float64(w) * windowStart)
	xEnd := int(float64(w) * windowEnd)
	if xEnd <= xStart {
		// Tiny image: degenerate to the full width.
		xStart, xEnd = 0, w
	}

	minRun := w / 100
	if minRun < 6 {
		minRun = 6
	}

	bestLen, bestStart := 0, -1
	for i := xStart; i < xEnd; {
		if colMean[i] >= darkThreshold {
			i++
			continue
		}
		j := i
		for j < xEnd && colMean[j] < darkThreshold {
			j++
		}
		if run := j - i; run >= minRun && run > bestLen {
			bestLen, bestStart = run, i
		}
		i = j
	}

	if bestStart >= 0 {
		right := bestStart + barMargin
		if floor := int(float64(w) * minRightFrac); right < floor {
			right = floor
		}
		if right > w {
			right = w
		}
		return CropBox{Left: 0, Top: 0, Right: right, Bottom: h}
	}

	// Fallback: fixed-ratio left portion.
	right := int(float64(w) * labelWidthRatio)
	if right < 1 {
		right = 1
	}
	return CropBox{Left: 0, Top: 0, Right: right, Bottom: h}
}

// columnMeans returns the mean luminance of each column, sampled over the
// middle vertical band to avoid top/bottom artifacts.
func columnMeans(img image.Image) []float64 {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	y0 := int(float64(h) * bandTop)
	y1 := int(float64(h) * bandBottom)
	if y1 <= y0 {
		y0, y1 = 0, h
	}

	means := make([]float64, w)
	rows := float64(y1 - y0)
	for x := 0; x < w; x++ {
		var sum float64
		for y := y0; y < y1; y++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// ITU-R BT.601 luminance, scaled back to 8-bit
			lum := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 257.0
			sum += lum
		}
		means[x] = sum / rows
	}
	return means
}
