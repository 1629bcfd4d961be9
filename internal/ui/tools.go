package ui

import (
	"image/color"

	"LocalPaint/internal/render"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const swatchSize = 32

// --- Custom Widget for Palette Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Swatch   Swatch
	Selected bool
	OnTapped func(Swatch)

	fill   *canvas.Image
	border *canvas.Rectangle
}

func newColorSwatch(s Swatch, patterns *render.Registry, tapped func(Swatch)) *colorSwatch {
	cs := &colorSwatch{Swatch: s, OnTapped: tapped}
	cs.fill = canvas.NewImageFromImage(s.preview(patterns, swatchSize))
	cs.fill.FillMode = canvas.ImageFillOriginal
	cs.fill.ScaleMode = canvas.ImageScalePixels
	cs.border = canvas.NewRectangle(color.Transparent)
	cs.ExtendBaseWidget(cs)
	return cs
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	s.fill.SetMinSize(fyne.NewSize(swatchSize, swatchSize))
	s.styleBorder()
	return widget.NewSimpleRenderer(container.NewStack(s.fill, s.border))
}

func (s *colorSwatch) styleBorder() {
	if s.Selected {
		s.border.StrokeColor = selectedBorder
		s.border.StrokeWidth = 3
	} else {
		s.border.StrokeColor = color.Gray{Y: 150}
		s.border.StrokeWidth = 1
	}
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Swatch)
	}
}

func (s *colorSwatch) setSelected(selected bool) {
	if s.Selected == selected {
		return
	}
	s.Selected = selected
	s.styleBorder()
	s.border.Refresh()
}

// paletteBox lays out the swatches in two rows and keeps the selection
// border on the controller's current swatch.
type paletteBox struct {
	widget.BaseWidget
	grid     *fyne.Container
	swatches []*colorSwatch
}

func newPaletteBox(h *Controller, patterns *render.Registry, onError func(error)) *paletteBox {
	pb := &paletteBox{}
	tapped := func(s Swatch) {
		if err := h.SelectSwatch(s.Value); err != nil && onError != nil {
			onError(err)
		}
	}

	objects := make([]fyne.CanvasObject, 0)
	for _, s := range Palette(patterns) {
		cs := newColorSwatch(s, patterns, tapped)
		cs.Selected = s.Value == h.Current()
		pb.swatches = append(pb.swatches, cs)
		objects = append(objects, cs)
	}
	cols := (len(objects) + 1) / 2
	pb.grid = container.NewGridWithColumns(cols, objects...)
	pb.ExtendBaseWidget(pb)
	return pb
}

func (pb *paletteBox) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(pb.grid)
}

func (pb *paletteBox) selectValue(value string) {
	for _, cs := range pb.swatches {
		cs.setSelected(cs.Swatch.Value == value)
	}
}

// --- The Main Toolbar ---
func NewToolbar(h *Controller, d *dialogs, patterns *render.Registry) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), d.showNew),      // New
		widget.NewToolbarAction(theme.ColorPaletteIcon(), d.showBrushSize),  // Brush
		widget.NewToolbarAction(theme.ContentClearIcon(), d.showEraserSize), // Eraser
		widget.NewToolbarAction(theme.VisibilityIcon(), d.showOpacity),      // Opacity
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), d.showSave), // Save to gallery
		widget.NewToolbarAction(theme.FileIcon(), d.showExportPDF),    // Export PDF
	)

	palette := newPaletteBox(h, patterns, d.showError)
	h.OnSwatch = palette.selectValue

	return container.NewVBox(tb, palette)
}
