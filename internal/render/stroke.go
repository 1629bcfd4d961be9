package render

import (
	"image"
	"image/color"
	"image/draw"

	"LocalPaint/internal/state"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

const miterLimit = 4 << 6

// drawStroke composites s onto dst. Only the pixels inside the stroke's
// bounds are read or written. In erase mode the stroke coverage is cleared
// to transparent, otherwise src is blended over dst through the coverage.
func drawStroke(dst *image.RGBA, s *state.Stroke, p state.Paint, src image.Image) {
	if s == nil || len(s.Points) == 0 || p.Width <= 0 {
		return
	}
	r := s.Bounds(p.Width).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}

	mask := coverage(s, p.Width, r)
	if p.Erase {
		draw.DrawMask(dst, r, image.Transparent, image.Point{}, mask, image.Point{}, draw.Src)
		return
	}
	draw.DrawMask(dst, r, src, r.Min, mask, image.Point{}, draw.Over)
}

// coverage rasterizes the stroke outline into an alpha mask covering r.
// The mask origin is r.Min.
func coverage(s *state.Stroke, width float64, r image.Rectangle) *image.Alpha {
	w, h := r.Dx(), r.Dy()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))

	scanner := rasterx.NewScannerGV(w, h, mask, mask.Bounds())
	scanner.SetColor(color.Opaque)
	stroker := rasterx.NewStroker(w, h, scanner)
	stroker.SetStroke(fixed.Int26_6(width*64), miterLimit, rasterx.RoundCap, nil, rasterx.RoundGap, rasterx.Round)

	local := func(p state.Point) fixed.Point26_6 {
		return rasterx.ToFixedP(p.X-float64(r.Min.X), p.Y-float64(r.Min.Y))
	}

	stroker.Start(local(s.Points[0]))
	if len(s.Points) == 1 {
		// a tap with no movement leaves a round dot
		stroker.Line(local(s.Points[0]))
	}
	for _, p := range s.Points[1:] {
		stroker.Line(local(p))
	}
	stroker.Stop(false)
	stroker.Draw()
	return mask
}
