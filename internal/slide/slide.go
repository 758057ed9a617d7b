// Package slide abstracts access to whole-slide image files. Scanner
// containers embed small associated images ("label", "macro", "thumbnail")
// alongside the pyramid data; those are the fast, stable sources for folder
// covers and label OCR. The Slide interface exposes exactly what the
// organizer needs, so a real container reader can replace the default
// raster-file implementation without touching the pipeline.
package slide

import "image"

// Slide is an open handle onto one slide file.
type Slide interface {
	// AssociatedImages returns the embedded auxiliary images keyed by name.
	// May be empty.
	AssociatedImages() map[string]image.Image

	// Thumbnail renders a view of the slide bounded by maxSize pixels on
	// the long side.
	Thumbnail(maxSize int) (image.Image, error)

	// Close releases the handle. Must be called exactly once per
	// successful open, on every exit path.
	Close() error
}

// Opener opens a slide file.
type Opener func(path string) (Slide, error)

// ChooseAssociated returns the first associated image whose name matches
// keys, in key order.
func ChooseAssociated(s Slide, keys []string) (image.Image, bool) {
	assoc := s.AssociatedImages()
	for _, key := range keys {
		if img, ok := assoc[key]; ok {
			return img, true
		}
	}
	return nil, false
}
