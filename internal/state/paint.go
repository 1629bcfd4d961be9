package state

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ErrBadColor is returned by ParseHex for anything that is not #RRGGBB or #AARRGGBB.
var ErrBadColor = errors.New("bad color literal")

// DefaultColor is the brown the palette starts on.
var DefaultColor = color.NRGBA{R: 0x66, A: 0xff}

// Paint is the configuration applied to the stroke being drawn and to the
// next commit.
type Paint struct {
	Color   color.NRGBA
	Alpha   uint8  // opacity, kept across color changes
	Pattern string // non-empty while a tiled pattern replaces the solid color
	Width   float64
	Erase   bool
}

func DefaultPaint(width float64) Paint {
	return Paint{Color: DefaultColor, Alpha: 0xff, Width: width}
}

// Fill is the solid color strokes are drawn with: Color scaled by the
// opacity.
func (p Paint) Fill() color.NRGBA {
	c := p.Color
	c.A = uint8((uint32(c.A)*uint32(p.Alpha) + 127) / 255)
	return c
}

// OpacityPercent maps the 8-bit alpha to [0,100].
func (p Paint) OpacityPercent() int {
	return int(math.Round(float64(p.Alpha) / 255 * 100))
}

// WithOpacityPercent returns p with its opacity set from a percentage.
// Values outside [0,100] are clamped.
func (p Paint) WithOpacityPercent(percent int) Paint {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	p.Alpha = uint8(math.Round(float64(percent) / 100 * 255))
	return p
}

// ParseHex parses #RRGGBB or #AARRGGBB.
func ParseHex(s string) (color.NRGBA, error) {
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	if len(hex) == 6 {
		v |= 0xff000000
	}
	return color.NRGBA{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// FormatHex is the inverse of ParseHex, always producing #AARRGGBB.
func FormatHex(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}
