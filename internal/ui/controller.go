package ui

import (
	"errors"
	"log"
	"strings"

	"LocalPaint/internal/config"
	"LocalPaint/internal/export"
	"LocalPaint/internal/render"
	"LocalPaint/internal/state"
)

const fullOpacity = 100

// Controller turns toolbar and dialog choices into canvas calls. It keeps no
// drawing state of its own beyond the selected swatch and the last brush size.
type Controller struct {
	canvas  *render.Canvas
	gallery export.Gallery
	sizes   config.Brush

	current   string
	lastBrush float64

	// OnStatus receives short user facing messages.
	OnStatus func(string)
	// OnSwatch is called after the selected swatch changes.
	OnSwatch func(value string)
}

// NewController selects initial on the canvas with the medium brush.
func NewController(c *render.Canvas, gallery export.Gallery, sizes config.Brush, initial string) (*Controller, error) {
	h := &Controller{
		canvas:    c,
		gallery:   gallery,
		sizes:     sizes,
		lastBrush: sizes.Medium,
	}
	h.SetBrushSize(sizes.Medium)
	if err := c.SetColor(initial); err != nil {
		return nil, err
	}
	h.current = initial
	return h, nil
}

func (h *Controller) status(msg string) {
	log.Printf("[HOST] %s", msg)
	if h.OnStatus != nil {
		h.OnStatus(msg)
	}
}

func (h *Controller) Canvas() *render.Canvas { return h.canvas }

func (h *Controller) Sizes() config.Brush { return h.sizes }

// Current returns the selected swatch value.
func (h *Controller) Current() string { return h.current }

// LastBrushSize is the last brush (not eraser) size, in dp.
func (h *Controller) LastBrushSize() float64 { return h.lastBrush }

// SelectSwatch switches back to painting at full opacity with the last brush
// size. The fill only changes when value differs from the selected swatch.
func (h *Controller) SelectSwatch(value string) error {
	p := h.canvas.Paint().WithOpacityPercent(fullOpacity)
	p.Erase = false
	p.Width = h.canvas.Px(h.lastBrush)

	changed := value != h.current
	if changed {
		if strings.HasPrefix(value, "#") {
			c, err := state.ParseHex(value)
			if err != nil {
				return err
			}
			p.Color = c
			p.Pattern = ""
		} else {
			p.Pattern = value
		}
	}

	if err := h.canvas.Apply(p); err != nil {
		if errors.Is(err, render.ErrUnknownPattern) {
			h.status("Pattern not available: " + value)
		}
		return err
	}
	if changed {
		h.current = value
		if h.OnSwatch != nil {
			h.OnSwatch(value)
		}
	}
	return nil
}

// SetBrushSize leaves erase mode and paints at dp from now on.
func (h *Controller) SetBrushSize(dp float64) {
	h.canvas.SetErase(false)
	h.canvas.SetBrushWidth(dp)
	h.lastBrush = dp
}

// SetEraserSize enters erase mode at dp. The brush size is remembered for
// the next swatch tap.
func (h *Controller) SetEraserSize(dp float64) {
	h.canvas.SetErase(true)
	h.canvas.SetBrushWidth(dp)
}

func (h *Controller) Opacity() int {
	return h.canvas.OpacityPercent()
}

func (h *Controller) SetOpacity(percent int) {
	h.canvas.SetOpacityPercent(percent)
}

func (h *Controller) NewDrawing() {
	h.canvas.Reset()
	h.status("New drawing")
}

// Save writes the committed surface to the gallery and reports whether it
// worked.
func (h *Controller) Save() bool {
	path, err := h.gallery.Save(h.canvas.Snapshot())
	if err != nil {
		log.Printf("[HOST] Save failed: %v", err)
		h.status("Oops! Image could not be saved.")
		return false
	}
	h.status("Drawing saved to Gallery! (" + path + ")")
	return true
}
