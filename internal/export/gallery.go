// Package export writes snapshots of the committed surface to disk.
package export

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

var ErrEmptyDrawing = errors.New("nothing to export: surface has no pixels")

// Gallery is a directory of saved drawings.
type Gallery struct {
	Dir string
}

// DefaultGalleryDir is ~/Pictures/LocalPaint, falling back to the working
// directory when there is no home.
func DefaultGalleryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "LocalPaint"
	}
	return filepath.Join(home, "Pictures", "LocalPaint")
}

// Save encodes img as PNG under a fresh random name and returns its path.
func (g Gallery) Save(img image.Image) (string, error) {
	if img.Bounds().Empty() {
		return "", ErrEmptyDrawing
	}
	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating gallery %s: %w", g.Dir, err)
	}

	path := filepath.Join(g.Dir, uuid.NewString()+".png")
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("saving drawing: %w", err)
	}
	log.Printf("[EXPORT] Saved drawing to %s", path)
	return path, nil
}
