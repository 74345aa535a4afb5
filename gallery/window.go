// Package gallery implements the thumbnail windowing of an image
// slider: a fixed-size window slides one position at a time over the
// full image sequence, independent of which image is selected.
package gallery

import (
	"strings"

	"traveldest/client/models"
)

// WindowSize is the number of thumbnails rendered at once.
const WindowSize = 7

type Direction string

const (
	Prev Direction = "prev"
	Next Direction = "next"
)

// Window owns the visible-thumbnail state for one image sequence.
// Selection and windowing are decoupled: the current image does not
// have to be inside the visible window.
type Window struct {
	images  []models.GalleryImage
	first   int
	current models.GalleryImage
	hasCur  bool
}

// New builds a window over images. The first image becomes current and
// the window starts at the head of the sequence.
func New(images []models.GalleryImage) *Window {
	w := &Window{images: images}
	if len(images) > 0 {
		w.current = images[0]
		w.hasCur = true
	}
	return w
}

// Visible returns the thumbnails currently in the window, fewer than
// WindowSize if the sequence is shorter.
func (w *Window) Visible() []models.GalleryImage {
	end := w.first + WindowSize
	if end > len(w.images) {
		end = len(w.images)
	}
	return w.images[w.first:end]
}

// Advance slides the window one position. Requests past either end are
// no-ops, not errors.
func (w *Window) Advance(dir Direction) {
	total := len(w.images)
	switch dir {
	case Prev:
		if w.first > 0 {
			w.first--
		}
	case Next:
		if w.first < total-WindowSize {
			w.first++
		}
	}
}

// Select makes image the current one, whether or not it is visible.
func (w *Window) Select(image models.GalleryImage) {
	w.current = image
	w.hasCur = true
}

// Current returns the selected image; ok is false for an empty gallery.
func (w *Window) Current() (models.GalleryImage, bool) {
	return w.current, w.hasCur
}

// HasLink reports whether image carries a click-through target.
func HasLink(image models.GalleryImage) bool {
	return image.Link != ""
}

// ExtractPostID pulls the post id out of a gallery link of the form
// "posts/<id>". Empty string when the link has no id segment.
func ExtractPostID(link string) string {
	segments := strings.Split(link, "/")
	if len(segments) > 1 {
		return segments[1]
	}
	return ""
}
