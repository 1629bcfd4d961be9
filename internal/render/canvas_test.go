package render

import (
	"image"
	"image/color"
	"testing"

	"LocalPaint/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCanvas(t *testing.T, w, h int) *Canvas {
	t.Helper()
	patterns, err := BundledRegistry(1)
	require.NoError(t, err)
	c := NewCanvas(patterns, 1, 10)
	c.Resize(w, h)
	return c
}

func stroke(c *Canvas, pts ...state.Point) {
	c.Ingest(state.PointerDown, pts[0].X, pts[0].Y)
	for _, p := range pts[1 : len(pts)-1] {
		c.Ingest(state.PointerMove, p.X, p.Y)
	}
	last := pts[len(pts)-1]
	c.Ingest(state.PointerUp, last.X, last.Y)
}

func assertTransparent(t *testing.T, img *image.RGBA) {
	t.Helper()
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			x := (i / 4) % img.Rect.Dx()
			y := (i / 4) / img.Rect.Dx()
			t.Fatalf("pixel (%d,%d) has alpha %d", x, y, img.Pix[i])
		}
	}
}

var (
	red         = color.RGBA{R: 255, A: 255}
	transparent = color.RGBA{}
)

func TestCommitRedBand(t *testing.T) {
	c := newTestCanvas(t, 200, 50)
	require.NoError(t, c.SetColor("#FFFF0000"))
	c.SetBrushWidth(10)
	c.SetOpacityPercent(100)

	stroke(c, state.Point{X: 10, Y: 20}, state.Point{X: 60, Y: 20}, state.Point{X: 110, Y: 20})
	frame := c.Render()

	assert.Equal(t, red, frame.RGBAAt(35, 20))
	assert.Equal(t, red, frame.RGBAAt(85, 17))
	assert.Equal(t, red, frame.RGBAAt(85, 22))
	assert.Equal(t, transparent, frame.RGBAAt(85, 27))
	assert.Equal(t, transparent, frame.RGBAAt(85, 12))
	assert.Equal(t, transparent, frame.RGBAAt(0, 20))
	assert.Equal(t, transparent, frame.RGBAAt(150, 20))
	assert.False(t, c.Drawing())
}

func TestCommitAtTopEdge(t *testing.T) {
	c := newTestCanvas(t, 120, 30)
	require.NoError(t, c.SetColor("#FFFF0000"))
	c.SetBrushWidth(10)

	stroke(c, state.Point{X: 0, Y: 0}, state.Point{X: 100, Y: 0})
	frame := c.Render()

	assert.Equal(t, red, frame.RGBAAt(50, 0))
	assert.Equal(t, red, frame.RGBAAt(50, 3))
	for y := 7; y < 30; y++ {
		assert.Equal(t, transparent, frame.RGBAAt(50, y), "y=%d", y)
	}
}

func TestRenderOverlaysActiveStroke(t *testing.T) {
	c := newTestCanvas(t, 100, 100)
	require.NoError(t, c.SetColor("#FFFF0000"))

	c.Ingest(state.PointerDown, 10, 50)
	c.Ingest(state.PointerMove, 90, 50)
	require.True(t, c.Drawing())

	assert.Equal(t, red, c.Render().RGBAAt(50, 50))
	assertTransparent(t, c.Snapshot())

	c.Ingest(state.PointerUp, 90, 50)
	assert.Equal(t, red, c.Snapshot().RGBAAt(50, 50))
}

func TestTapLeavesDot(t *testing.T) {
	c := newTestCanvas(t, 50, 50)
	require.NoError(t, c.SetColor("#FF000000"))
	c.SetBrushWidth(10)

	c.Ingest(state.PointerDown, 25, 25)
	c.Ingest(state.PointerUp, 25, 25)

	frame := c.Snapshot()
	assert.Equal(t, uint8(255), frame.RGBAAt(25, 25).A)
	assert.Equal(t, uint8(0), frame.RGBAAt(25, 40).A)
}

func TestResetClearsSurfaceKeepsPaint(t *testing.T) {
	c := newTestCanvas(t, 100, 100)
	require.NoError(t, c.SetColor("#FF0000FF"))
	c.SetOpacityPercent(40)
	stroke(c, state.Point{X: 10, Y: 10}, state.Point{X: 90, Y: 90})

	before := c.Paint()
	c.Reset()

	assertTransparent(t, c.Render())
	assert.Equal(t, before, c.Paint())
}

func TestResizeDiscardsContent(t *testing.T) {
	c := newTestCanvas(t, 100, 100)
	stroke(c, state.Point{X: 10, Y: 10}, state.Point{X: 90, Y: 90})

	c.Resize(100, 100)
	assert.NotZero(t, c.Snapshot().RGBAAt(50, 50).A, "same size keeps the surface")

	c.Resize(120, 80)
	frame := c.Render()
	assert.Equal(t, image.Rect(0, 0, 120, 80), frame.Bounds())
	assertTransparent(t, frame)
}

func TestEraseClearsOnlyStrokedPixels(t *testing.T) {
	c := newTestCanvas(t, 200, 50)
	require.NoError(t, c.SetColor("#FFFF0000"))
	c.SetBrushWidth(40)
	stroke(c, state.Point{X: -30, Y: 25}, state.Point{X: 230, Y: 25})
	require.Equal(t, red, c.Snapshot().RGBAAt(100, 25))

	c.SetErase(true)
	c.SetBrushWidth(10)
	stroke(c, state.Point{X: 50, Y: 25}, state.Point{X: 150, Y: 25})
	frame := c.Render()

	assert.Equal(t, transparent, frame.RGBAAt(100, 25))
	assert.Equal(t, transparent, frame.RGBAAt(100, 23))
	assert.Equal(t, red, frame.RGBAAt(100, 10))
	assert.Equal(t, red, frame.RGBAAt(100, 40))
	assert.Equal(t, red, frame.RGBAAt(20, 25))
	assert.Equal(t, red, frame.RGBAAt(180, 25))

	c.SetErase(false)
	stroke(c, state.Point{X: 50, Y: 25}, state.Point{X: 150, Y: 25})
	assert.Equal(t, red, c.Snapshot().RGBAAt(100, 25))
}

func TestOpacityRoundTrip(t *testing.T) {
	c := NewCanvas(nil, 1, 10)
	for p := 0; p <= 100; p++ {
		c.SetOpacityPercent(p)
		assert.InDelta(t, p, c.OpacityPercent(), 1, "percent %d", p)
	}
	c.SetOpacityPercent(150)
	assert.Equal(t, 100, c.OpacityPercent())
	c.SetOpacityPercent(-3)
	assert.Equal(t, 0, c.OpacityPercent())
}

func TestHalfOpacityStroke(t *testing.T) {
	c := newTestCanvas(t, 100, 40)
	require.NoError(t, c.SetColor("#FFFF0000"))
	c.SetOpacityPercent(50)
	stroke(c, state.Point{X: 10, Y: 20}, state.Point{X: 90, Y: 20})

	px := c.Snapshot().RGBAAt(50, 20)
	assert.Equal(t, uint8(128), px.A)
	assert.Equal(t, uint8(128), px.R)
}

func TestPatternFill(t *testing.T) {
	c := newTestCanvas(t, 120, 40)
	require.NoError(t, c.SetColor("pattern1"))
	c.SetOpacityPercent(10)
	c.SetBrushWidth(10)
	stroke(c, state.Point{X: 10, Y: 20}, state.Point{X: 110, Y: 20})

	frame := c.Snapshot()
	assert.Equal(t, color.RGBA{R: 204, A: 255}, frame.RGBAAt(20, 20))
	assert.Equal(t, color.RGBA{R: 255, G: 204, A: 255}, frame.RGBAAt(28, 20))

	require.NoError(t, c.SetColor("#FF00FF00"))
	assert.Empty(t, c.Paint().Pattern)
}

func TestUnknownPatternLeavesPaint(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	before := c.Paint()

	err := c.SetColor("no-such-pattern")
	assert.ErrorIs(t, err, ErrUnknownPattern)
	assert.Equal(t, before, c.Paint())

	err = c.SetColor("#12345")
	assert.ErrorIs(t, err, state.ErrBadColor)
	assert.Equal(t, before, c.Paint())
}

func TestIngestSequencing(t *testing.T) {
	c := newTestCanvas(t, 50, 50)
	invalidations := 0
	c.OnInvalidate = func() { invalidations++ }

	assert.False(t, c.Ingest(state.PointerHover, 10, 10))
	assert.False(t, c.Ingest(state.PointerCancel, 10, 10))
	assert.Equal(t, 0, invalidations)

	assert.True(t, c.Ingest(state.PointerMove, 10, 10))
	assert.True(t, c.Ingest(state.PointerUp, 20, 20))
	assert.False(t, c.Drawing())
	assertTransparent(t, c.Render())

	assert.True(t, c.Ingest(state.PointerDown, 10, 10))
	assert.True(t, c.Ingest(state.PointerMove, 20, 10))
	assert.True(t, c.Ingest(state.PointerUp, 30, 10))
	assert.Equal(t, 3, invalidations)
}

func TestCommitRevision(t *testing.T) {
	c := NewCanvas(nil, 1, 10)
	var seen []uint64
	c.OnCommit = func(rev uint64) { seen = append(seen, rev) }

	c.Resize(30, 30)
	stroke(c, state.Point{X: 1, Y: 1}, state.Point{X: 20, Y: 20})
	c.Reset()

	assert.Equal(t, []uint64{1, 2, 3}, seen)
	assert.Equal(t, uint64(3), c.Revision())
}

func TestIngestBeforeResize(t *testing.T) {
	c := NewCanvas(nil, 1, 10)
	assert.True(t, c.Ingest(state.PointerDown, 1, 1))
	assert.True(t, c.Ingest(state.PointerUp, 5, 5))
	assert.False(t, c.Drawing())
	assert.True(t, c.Render().Bounds().Empty())
	assert.Zero(t, c.Revision())
}

func TestBrushWidthUsesDensity(t *testing.T) {
	c := NewCanvas(nil, 2, 10)
	assert.Equal(t, 20.0, c.Paint().Width)

	c.SetBrushWidth(15)
	assert.Equal(t, 30.0, c.Paint().Width)

	c.SetDensity(3)
	assert.Equal(t, 45.0, c.Paint().Width)
}

func TestApplyPaint(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	p := state.Paint{Color: color.NRGBA{B: 255, A: 255}, Alpha: 255, Width: 8, Pattern: "pattern2"}
	require.NoError(t, c.Apply(p))
	assert.Equal(t, p, c.Paint())

	bad := p
	bad.Pattern = "pattern99"
	assert.ErrorIs(t, c.Apply(bad), ErrUnknownPattern)
	assert.Equal(t, p, c.Paint())
}

func TestCommitUsesPaintAtUp(t *testing.T) {
	c := newTestCanvas(t, 200, 60)
	require.NoError(t, c.SetColor("#FFFF0000"))
	c.SetBrushWidth(4)

	c.Ingest(state.PointerDown, 10, 30)
	c.Ingest(state.PointerMove, 100, 30)
	require.NoError(t, c.SetColor("#FF0000FF"))
	c.SetBrushWidth(20)
	c.SetOpacityPercent(50)
	c.Ingest(state.PointerUp, 190, 30)

	frame := c.Snapshot()
	assert.Equal(t, color.RGBA{B: 128, A: 128}, frame.RGBAAt(50, 30))
	assert.Equal(t, color.RGBA{B: 128, A: 128}, frame.RGBAAt(50, 38), "width at up, not at down")

	// switching to erase mid stroke clears instead of painting
	c.Ingest(state.PointerDown, 10, 30)
	c.Ingest(state.PointerMove, 100, 30)
	c.SetErase(true)
	c.SetBrushWidth(40)
	c.Ingest(state.PointerUp, 190, 30)
	assertTransparent(t, c.Snapshot())
}

func TestOpacitySurvivesColorChange(t *testing.T) {
	c := newTestCanvas(t, 100, 40)
	c.SetOpacityPercent(40)
	require.NoError(t, c.SetColor("#FFFF0000"))
	assert.Equal(t, 40, c.OpacityPercent())

	stroke(c, state.Point{X: 10, Y: 20}, state.Point{X: 90, Y: 20})
	assert.Equal(t, uint8(102), c.Snapshot().RGBAAt(50, 20).A)

	// a translucent literal is scaled by the opacity
	c.SetOpacityPercent(100)
	require.NoError(t, c.SetColor("#80FF0000"))
	assert.Equal(t, 100, c.OpacityPercent())
	assert.Equal(t, uint8(128), c.Paint().Fill().A)
}

func TestDensityRescalesPattern(t *testing.T) {
	c := newTestCanvas(t, 120, 40)
	require.NoError(t, c.SetColor("pattern1"))
	c.SetDensity(2)
	c.SetBrushWidth(10)
	stroke(c, state.Point{X: 10, Y: 20}, state.Point{X: 110, Y: 20})

	frame := c.Snapshot()
	// the 8px checker of pattern1 is 16px wide at density 2
	assert.Equal(t, color.RGBA{R: 204, A: 255}, frame.RGBAAt(20, 20))
	assert.Equal(t, color.RGBA{R: 204, A: 255}, frame.RGBAAt(28, 20))
	assert.Equal(t, color.RGBA{R: 255, G: 204, A: 255}, frame.RGBAAt(36, 20))
}
