package ui

import (
	"image"
	"image/color"
	"strings"

	"LocalPaint/internal/render"
	"LocalPaint/internal/state"
)

// Swatch is one entry of the palette: a color literal or a pattern name.
type Swatch struct {
	Value string
}

func (s Swatch) IsPattern() bool {
	return !strings.HasPrefix(s.Value, "#")
}

var paletteColors = []string{
	"#FF660000", "#FFFF0000", "#FFFF6600", "#FFFFCC00",
	"#FF009900", "#FF009999", "#FF0000FF", "#FF990099",
	"#FFFF6666", "#FFFFFFFF", "#FF787878", "#FF000000",
}

// Palette returns the color swatches followed by one swatch per pattern.
func Palette(patterns *render.Registry) []Swatch {
	swatches := make([]Swatch, 0, len(paletteColors)+len(patterns.Names()))
	for _, c := range paletteColors {
		swatches = append(swatches, Swatch{Value: c})
	}
	for _, name := range patterns.Names() {
		swatches = append(swatches, Swatch{Value: name})
	}
	return swatches
}

// preview renders the swatch fill at size x size pixels.
func (s Swatch) preview(patterns *render.Registry, size int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	var fill image.Image = image.Transparent
	if s.IsPattern() {
		if t, err := patterns.Lookup(s.Value); err == nil {
			fill = t
		}
	} else if c, err := state.ParseHex(s.Value); err == nil {
		fill = image.NewUniform(c)
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, fill.At(x, y))
		}
	}
	return img
}

var selectedBorder = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
