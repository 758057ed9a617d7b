// Package ocr implements the adaptive label-text recovery search.
//
// Slide labels arrive as small, noisy thumbnails in unknown orientation,
// with the printed text sharing the frame with tissue imagery, QR codes and
// separator bars. No single Tesseract configuration reads them reliably, so
// the package searches a space of preprocessing recipes instead: region
// crops (detected label area and full frame) × rotations × languages × page
// segmentation modes, plus a bottom-trimmed variant for upright images.
//
// Candidates are generated lazily in a fixed, deterministic order and each
// is scored by the mean word confidence the engine reports for it. The
// search keeps the best-so-far candidate, replaces it only on a strictly
// greater score, and stops as soon as any candidate reaches the configured
// confidence threshold. The winner is then re-read in full-text mode to
// produce the output string.
//
// The engine itself sits behind the Engine interface; Tesseract (via
// gosseract) is the shipped implementation.
package ocr
