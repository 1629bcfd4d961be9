package state

import (
	"image"
	"math"
)

// Bounds returns the pixel rectangle a stroke of the given width can touch.
// The box around the points is padded by half the width plus one pixel of
// anti-aliasing and is empty for a stroke with no points.
func (s *Stroke) Bounds(width float64) image.Rectangle {
	if s == nil || len(s.Points) == 0 {
		return image.Rectangle{}
	}

	minX, minY := s.Points[0].X, s.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range s.Points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	padding := width/2 + 1
	return image.Rect(
		int(math.Floor(minX-padding)),
		int(math.Floor(minY-padding)),
		int(math.Ceil(maxX+padding)),
		int(math.Ceil(maxY+padding)),
	)
}
