// Package organize drives the per-slide batch: it moves loose NDPI files
// into per-slide folders, writes the folder cover thumbnail, and writes the
// recovered label text. All outputs are written atomically (temp file, then
// rename) because the target volumes are often SMB shares where a partial
// file lingers forever. Per-file failures are logged and counted, never
// fatal to the batch.
package organize

import (
	"fmt"
	"image"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/tkshfj/ndpi-thumb-ocr/internal/config"
	"github.com/tkshfj/ndpi-thumb-ocr/internal/ocr"
	"github.com/tkshfj/ndpi-thumb-ocr/internal/qr"
	"github.com/tkshfj/ndpi-thumb-ocr/internal/slide"
)

// Processor holds the wiring for one batch run.
type Processor struct {
	Thumb  config.Thumb
	OCR    config.OCR
	QR     config.QR
	Engine ocr.Engine
	Open   slide.Opener

	// DryRun prints intended actions without moving or writing anything.
	DryRun bool
}

// Run walks root for NDPI files and processes each to completion before the
// next. A failed file is logged and counted; the walk continues. The
// returned error is non-nil when the root cannot be walked or when any file
// failed, so callers can exit nonzero on a partially failed batch.
func (p *Processor) Run(root string) error {
	failed := 0
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".ndpi") {
			return nil
		}
		if err := p.processFile(path); err != nil {
			failed++
			log.Printf("ERR %s: %v", path, err)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("walk %s: %w", root, walkErr)
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

// processFile reorganizes one slide file and refreshes its outputs. The
// slide handle is scoped to this call and closed on every path.
func (p *Processor) processFile(path string) error {
	inside, err := MoveIntoSlideFolder(path, p.Thumb, p.DryRun)
	if err != nil {
		return err
	}

	dir := filepath.Dir(inside)
	coverPath := filepath.Join(dir, p.Thumb.CoverName)
	textPath := ""
	if p.OCR.Enabled {
		textPath = filepath.Join(dir, p.Thumb.TextName)
	}

	coverNeeded := !IsUpToDate(inside, coverPath)
	textNeeded := textPath != "" && !IsUpToDate(inside, textPath)
	if !coverNeeded && !textNeeded {
		return nil
	}

	if p.DryRun {
		if coverNeeded {
			log.Printf("[DRY] thumb %s -> %s", inside, coverPath)
		}
		if textNeeded {
			log.Printf("[DRY] ocr   %s -> %s (langs=%s)", inside, textPath,
				strings.Join(p.OCR.LangCandidates, ","))
		}
		return nil
	}

	handle, err := p.Open(inside)
	if err != nil {
		return fmt.Errorf("open slide: %w", err)
	}
	defer handle.Close()

	if coverNeeded {
		if err := p.writeCover(handle, coverPath); err != nil {
			return err
		}
	}
	if textNeeded {
		if err := p.writeText(handle, textPath); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) writeCover(s slide.Slide, out string) error {
	src, err := slide.CoverImage(s, p.Thumb)
	if err != nil {
		return fmt.Errorf("cover source: %w", err)
	}
	fitted := imaging.Fit(src, p.Thumb.MaxSize, p.Thumb.MaxSize, imaging.Lanczos)
	if err := WriteJPEGAtomic(out, fitted, p.Thumb.JPEGQuality); err != nil {
		return err
	}
	log.Printf("OK  %s", out)
	return nil
}

func (p *Processor) writeText(s slide.Slide, out string) error {
	src, err := slide.OCRImage(s, p.Thumb)
	if err != nil {
		return fmt.Errorf("ocr source: %w", err)
	}
	text, err := ocr.RecognizeLabel(src, p.OCR, p.Engine)
	if err != nil {
		return fmt.Errorf("recognize label: %w", err)
	}
	payload, _ := qr.Decode(src, p.QR)
	if err := WriteTextAtomic(out, CombineText(text, payload, p.QR.Enabled)); err != nil {
		return err
	}
	log.Printf("OK  %s", out)
	return nil
}

// CombineText merges the OCR text with an optional QR payload. With QR
// disabled the OCR text passes through unchanged, keeping the output format
// of OCR-only runs stable. With QR enabled both sections are tagged so
// consumers can tell them apart; an empty payload leaves only the tagged
// OCR section.
func CombineText(ocrText, qrPayload string, qrEnabled bool) string {
	if !qrEnabled {
		return ocrText
	}
	var parts []string
	if qrPayload != "" {
		parts = append(parts, "[QR]\n"+qrPayload)
	}
	parts = append(parts, "[OCR]\n"+ocrText)
	return strings.Join(parts, "\n\n")
}

// MoveIntoSlideFolder moves /path/NAME.ndpi to /path/NAME/slide.ndpi and
// returns the new location. A file already named like the in-folder slide
// passes through unchanged. An existing destination is an error rather than
// an overwrite.
func MoveIntoSlideFolder(path string, cfg config.Thumb, dryRun bool) (string, error) {
	if filepath.Base(path) == cfg.SlideName {
		return path, nil
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	folder := filepath.Join(filepath.Dir(path), stem)
	dest := filepath.Join(folder, cfg.SlideName)

	if _, err := os.Stat(dest); err == nil {
		return "", fmt.Errorf("destination exists: %s", dest)
	}

	if dryRun {
		log.Printf("[DRY] move %s -> %s", path, dest)
		return dest, nil
	}

	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("create slide folder: %w", err)
	}
	if err := os.Rename(path, dest); err != nil {
		// Rename fails across devices; fall back to copy+remove.
		if err := copyFile(path, dest); err != nil {
			return "", fmt.Errorf("move slide: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("remove original: %w", err)
		}
	}
	return dest, nil
}

// IsUpToDate reports whether out exists and is at least as new as src.
func IsUpToDate(src, out string) bool {
	outInfo, err := os.Stat(out)
	if err != nil {
		return false
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false
	}
	return !outInfo.ModTime().Before(srcInfo.ModTime())
}

// WriteTextAtomic writes UTF-8 text via a temp file and rename, so the
// final path never holds a truncated file.
func WriteTextAtomic(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write temp text: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// WriteJPEGAtomic encodes a JPEG via a temp file and rename.
func WriteJPEGAtomic(path string, img image.Image, quality int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp jpeg: %w", err)
	}
	if err := imaging.Encode(f, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode jpeg: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp jpeg: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
