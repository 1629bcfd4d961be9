package ui

import (
	"image"
	"math"

	"LocalPaint/internal/render"
	"LocalPaint/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// BoardWidget shows a render.Canvas and feeds it mouse and touch input.
type BoardWidget struct {
	widget.BaseWidget
	canvas *render.Canvas
	raster *canvas.Raster
	last   fyne.Position
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ mobile.Touchable = (*BoardWidget)(nil)

func NewBoardWidget(c *render.Canvas) *BoardWidget {
	b := &BoardWidget{canvas: c}
	b.raster = canvas.NewRaster(b.draw)
	b.raster.ScaleMode = canvas.ImageScalePixels
	c.OnInvalidate = func() { b.raster.Refresh() }
	b.ExtendBaseWidget(b)
	return b
}

// scale is the pixels per device independent unit of the window showing b.
func (b *BoardWidget) scale() float32 {
	if app := fyne.CurrentApp(); app != nil {
		if c := app.Driver().CanvasForObject(b); c != nil && c.Scale() > 0 {
			return c.Scale()
		}
	}
	return 1
}

// draw is the raster generator. w and h are the raster size in pixels, so
// this is where the canvas learns its surface size and display density.
func (b *BoardWidget) draw(w, h int) image.Image {
	if size := b.Size(); size.Width > 0 {
		b.canvas.SetDensity(float64(w) / float64(size.Width))
	}
	b.canvas.Resize(w, h)
	return b.canvas.Render()
}

// syncSize resizes the surface for a layout size in dp.
func (b *BoardWidget) syncSize(size fyne.Size) {
	s := b.scale()
	b.canvas.SetDensity(float64(s))
	b.canvas.Resize(int(math.Ceil(float64(size.Width*s))), int(math.Ceil(float64(size.Height*s))))
}

func (b *BoardWidget) ingest(kind state.PointerKind, pos fyne.Position) {
	b.last = pos
	d := b.canvas.Density()
	b.canvas.Ingest(kind, float64(pos.X)*d, float64(pos.Y)*d)
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.ingest(state.PointerDown, e.Position)
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.ingest(state.PointerUp, e.Position)
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.ingest(state.PointerMove, e.Position)
}

// DragEnd finishes the stroke when the release was not delivered as a
// mouse up, as happens when the pointer leaves the window mid drag.
func (b *BoardWidget) DragEnd() {
	if b.canvas.Drawing() {
		b.ingest(state.PointerUp, b.last)
	}
}

func (b *BoardWidget) TouchDown(e *mobile.TouchEvent) {
	b.ingest(state.PointerDown, e.Position)
}

func (b *BoardWidget) TouchUp(e *mobile.TouchEvent) {
	b.ingest(state.PointerUp, e.Position)
}

// TouchCancel ends the gesture like a release at the last known position,
// so a cancelled stroke is committed rather than left on screen.
func (b *BoardWidget) TouchCancel(_ *mobile.TouchEvent) {
	if b.canvas.Drawing() {
		b.ingest(state.PointerUp, b.last)
	}
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return &boardWidgetRenderer{board: b}
}

type boardWidgetRenderer struct {
	board *BoardWidget
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.board.raster}
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.board.raster.Resize(size)
	r.board.syncSize(size)
}

func (r *boardWidgetRenderer) Refresh() {
	r.board.raster.Refresh()
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Destroy() {}
