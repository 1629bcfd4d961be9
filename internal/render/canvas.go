// Package render holds the stroke canvas: the committed raster surface, the
// stroke being drawn and the paint applied to it.
package render

import (
	"image"
	"log"
	"strings"

	"LocalPaint/internal/state"
)

// Canvas records freehand strokes onto a committed surface.
//
// A Canvas is not safe for concurrent use. All calls are expected from the
// UI goroutine.
type Canvas struct {
	surface  *image.RGBA
	stroke   *state.Stroke // nil while idle
	paint    state.Paint
	tile     *Tile // set while paint.Pattern is non-empty
	patterns *Registry
	density  float64
	brushDP  float64
	rev      state.Revision

	// OnInvalidate is called whenever the rendered frame may have changed.
	OnInvalidate func()
	// OnCommit is called after a stroke lands on the committed surface,
	// after a reset and after a resize.
	OnCommit func(rev uint64)
}

// NewCanvas returns a canvas painting with the default color at brushDP
// device independent units. Resize must be called before strokes land.
func NewCanvas(patterns *Registry, density, brushDP float64) *Canvas {
	if density <= 0 {
		density = 1
	}
	c := &Canvas{
		patterns: patterns.Scaled(density),
		density:  density,
		brushDP:  brushDP,
	}
	c.paint = state.DefaultPaint(brushDP * density)
	return c
}

func (c *Canvas) invalidate() {
	if c.OnInvalidate != nil {
		c.OnInvalidate()
	}
}

func (c *Canvas) committed() {
	rev := c.rev.Tick()
	if c.OnCommit != nil {
		c.OnCommit(rev)
	}
}

// Size returns the surface size in pixels.
func (c *Canvas) Size() image.Point {
	if c.surface == nil {
		return image.Point{}
	}
	return c.surface.Rect.Size()
}

// Revision returns the number of changes made to the committed surface.
func (c *Canvas) Revision() uint64 {
	return c.rev.Load()
}

// Resize reallocates the committed surface. Prior content is discarded, not
// scaled. Calling Resize with the current size keeps the surface.
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if c.surface != nil && c.surface.Rect.Dx() == width && c.surface.Rect.Dy() == height {
		return
	}
	c.surface = image.NewRGBA(image.Rect(0, 0, width, height))
	log.Printf("[CANVAS] Surface resized to %dx%d", width, height)
	c.committed()
}

// Ingest feeds one pointer sample in surface pixel coordinates and reports
// whether the kind was handled. A move or up with no stroke in progress is
// handled as a no-op.
func (c *Canvas) Ingest(kind state.PointerKind, x, y float64) bool {
	switch kind {
	case state.PointerDown:
		if c.stroke != nil {
			log.Printf("[CANVAS] Pointer down during a stroke, restarting at (%.1f, %.1f)", x, y)
		}
		c.stroke = state.NewStroke(x, y)
	case state.PointerMove:
		if c.stroke == nil {
			return true
		}
		c.stroke.LineTo(x, y)
	case state.PointerUp:
		if c.stroke == nil {
			return true
		}
		c.stroke.LineTo(x, y)
		if c.surface != nil {
			drawStroke(c.surface, c.stroke, c.paint, c.source())
			c.stroke = nil
			c.committed()
		} else {
			c.stroke = nil
		}
	default:
		return false
	}
	c.invalidate()
	return true
}

// Drawing reports whether a stroke is in progress.
func (c *Canvas) Drawing() bool {
	return c.stroke != nil
}

// Render returns the committed surface with the stroke in progress drawn on
// top. The committed surface itself is not modified.
func (c *Canvas) Render() *image.RGBA {
	frame := c.Snapshot()
	if c.stroke != nil {
		drawStroke(frame, c.stroke, c.paint, c.source())
	}
	return frame
}

// Snapshot returns a copy of the committed surface.
func (c *Canvas) Snapshot() *image.RGBA {
	if c.surface == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	frame := image.NewRGBA(c.surface.Rect)
	copy(frame.Pix, c.surface.Pix)
	return frame
}

// Reset clears the committed surface to transparent. Paint is kept.
func (c *Canvas) Reset() {
	if c.surface != nil {
		clear(c.surface.Pix)
	}
	log.Println("[CANVAS] Surface cleared")
	c.committed()
	c.invalidate()
}

func (c *Canvas) source() image.Image {
	if c.paint.Pattern != "" && c.tile != nil {
		return c.tile
	}
	return image.NewUniform(c.paint.Fill())
}

// Paint returns the current paint configuration.
func (c *Canvas) Paint() state.Paint {
	return c.paint
}

// Apply replaces the whole paint configuration. A pattern that is not
// registered leaves the paint untouched and returns ErrUnknownPattern.
func (c *Canvas) Apply(p state.Paint) error {
	var tile *Tile
	if p.Pattern != "" {
		t, err := c.patterns.Lookup(p.Pattern)
		if err != nil {
			log.Printf("[CANVAS] Rejected paint: %v", err)
			return err
		}
		tile = t
	}
	c.paint = p
	c.tile = tile
	c.brushDP = p.Width / c.density
	c.invalidate()
	return nil
}

// SetColor accepts a #RRGGBB or #AARRGGBB literal, which replaces any
// pattern, or the name of a registered pattern. The opacity is kept.
func (c *Canvas) SetColor(value string) error {
	p := c.paint
	if strings.HasPrefix(value, "#") {
		clr, err := state.ParseHex(value)
		if err != nil {
			return err
		}
		p.Color = clr
		p.Pattern = ""
	} else {
		p.Pattern = value
	}
	return c.Apply(p)
}

// Px converts device independent units to pixels at the current density.
func (c *Canvas) Px(dp float64) float64 {
	return dp * c.density
}

// SetDensity changes the display scale factor. The brush width is
// re-derived from the last size set in device independent units and the
// pattern tiles are rescaled to match.
func (c *Canvas) SetDensity(density float64) {
	if density <= 0 || density == c.density {
		return
	}
	c.density = density
	c.paint.Width = c.Px(c.brushDP)
	c.patterns = c.patterns.Scaled(density)
	if c.paint.Pattern != "" {
		if t, err := c.patterns.Lookup(c.paint.Pattern); err == nil {
			c.tile = t
		}
	}
}

func (c *Canvas) Density() float64 {
	return c.density
}

// SetBrushWidth sets the stroke width for future strokes, in device
// independent units.
func (c *Canvas) SetBrushWidth(dp float64) {
	c.brushDP = dp
	c.paint.Width = c.Px(dp)
}

func (c *Canvas) SetErase(enabled bool) {
	c.paint.Erase = enabled
}

func (c *Canvas) OpacityPercent() int {
	return c.paint.OpacityPercent()
}

// SetOpacityPercent sets the opacity of the solid color. It survives later
// SetColor calls. Pattern fills are always drawn opaque.
func (c *Canvas) SetOpacityPercent(percent int) {
	c.paint = c.paint.WithOpacityPercent(percent)
}
