package slide

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/tkshfj/ndpi-thumb-ocr/internal/config"
)

// fileSlide serves a plain raster file through the Slide interface: no
// associated images, thumbnails rendered by downscaling the decoded frame.
type fileSlide struct {
	img image.Image
}

// OpenFile opens an ordinary raster image (JPEG, PNG, GIF, TIFF, BMP) as a
// slide. Proprietary containers need their own Opener; everything
// downstream only sees the interface.
func OpenFile(path string) (Slide, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open slide %s: %w", path, err)
	}
	return &fileSlide{img: img}, nil
}

func (s *fileSlide) AssociatedImages() map[string]image.Image {
	return nil
}

func (s *fileSlide) Thumbnail(maxSize int) (image.Image, error) {
	if s.img == nil {
		return nil, fmt.Errorf("slide is closed")
	}
	b := s.img.Bounds()
	if b.Dx() <= maxSize && b.Dy() <= maxSize {
		return s.img, nil
	}
	return imaging.Fit(s.img, maxSize, maxSize, imaging.Lanczos), nil
}

func (s *fileSlide) Close() error {
	s.img = nil
	return nil
}

// CoverImage picks the source for the folder cover: a preferred associated
// image when present, else a rendered thumbnail at cover size.
func CoverImage(s Slide, cfg config.Thumb) (image.Image, error) {
	if img, ok := ChooseAssociated(s, cfg.PreferredAssoc); ok {
		return img, nil
	}
	return s.Thumbnail(cfg.MaxSize)
}

// OCRImage picks the source for label recovery. The preference order
// differs from the cover: "label" and "macro" carry the printed text, and
// the fallback render is larger because OCR needs the pixels.
func OCRImage(s Slide, cfg config.Thumb) (image.Image, error) {
	if img, ok := ChooseAssociated(s, cfg.PreferredAssocOCR); ok {
		return img, nil
	}
	return s.Thumbnail(cfg.OCRRenderSize)
}
