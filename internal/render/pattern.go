package render

import (
	"embed"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"log"
	"path"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

//go:embed patterns/*.png
var bundled embed.FS

// ErrUnknownPattern is returned when a name is neither a color literal nor a
// registered pattern.
var ErrUnknownPattern = errors.New("unknown pattern")

// Tile is an image repeated infinitely in both directions.
type Tile struct {
	img *image.NRGBA
}

func (t *Tile) ColorModel() color.Model { return color.NRGBAModel }

// Bounds matches image.Uniform so draw.DrawMask never clips against it.
func (t *Tile) Bounds() image.Rectangle {
	return image.Rectangle{Min: image.Point{X: -1e9, Y: -1e9}, Max: image.Point{X: 1e9, Y: 1e9}}
}

func (t *Tile) At(x, y int) color.Color {
	return t.img.NRGBAAt(wrap(x, t.img.Rect.Dx()), wrap(y, t.img.Rect.Dy()))
}

// Size is the tile size in pixels.
func (t *Tile) Size() image.Point {
	return t.img.Rect.Size()
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Registry maps pattern names to decoded tiles at one display density.
type Registry struct {
	base    map[string]*image.NRGBA // tiles as decoded, density 1
	tiles   map[string]*Tile
	density float64
}

// NewRegistry decodes every *.png at the root of fsys. The tile name is the
// file name without extension. Tiles are scaled by density so a pattern keeps
// its on-screen size on dense displays.
func NewRegistry(fsys fs.FS, density float64) (*Registry, error) {
	files, err := fs.Glob(fsys, "*.png")
	if err != nil {
		return nil, fmt.Errorf("listing patterns: %w", err)
	}

	base := make(map[string]*image.NRGBA, len(files))
	for _, file := range files {
		f, err := fsys.Open(file)
		if err != nil {
			return nil, fmt.Errorf("opening pattern %s: %w", file, err)
		}
		img, err := imaging.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decoding pattern %s: %w", file, err)
		}
		name := strings.TrimSuffix(path.Base(file), path.Ext(file))
		base[name] = imaging.Clone(img)
	}

	log.Printf("[PATTERN] Loaded %d patterns", len(base))
	return scaled(base, density), nil
}

func scaled(base map[string]*image.NRGBA, density float64) *Registry {
	if density <= 0 {
		density = 1
	}
	r := &Registry{base: base, tiles: make(map[string]*Tile, len(base)), density: density}
	for name, img := range base {
		tile := img
		if density != 1 {
			b := img.Bounds()
			w := int(float64(b.Dx())*density + 0.5)
			h := int(float64(b.Dy())*density + 0.5)
			if w > 0 && h > 0 {
				tile = imaging.Resize(img, w, h, imaging.NearestNeighbor)
			}
		}
		r.tiles[name] = &Tile{img: tile}
	}
	return r
}

// Scaled returns the same patterns at another density. The receiver is
// returned unchanged when it already matches.
func (r *Registry) Scaled(density float64) *Registry {
	if r == nil || density <= 0 || density == r.density {
		return r
	}
	log.Printf("[PATTERN] Rescaling patterns for density %.2f", density)
	return scaled(r.base, density)
}

// Density is the display density the tiles are scaled for.
func (r *Registry) Density() float64 {
	if r == nil {
		return 1
	}
	return r.density
}

// BundledRegistry loads the patterns shipped with the binary.
func BundledRegistry(density float64) (*Registry, error) {
	sub, err := fs.Sub(bundled, "patterns")
	if err != nil {
		return nil, err
	}
	return NewRegistry(sub, density)
}

func (r *Registry) Lookup(name string) (*Tile, error) {
	if r != nil {
		if t, ok := r.tiles[name]; ok {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
}

// Names returns the registered pattern names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.tiles))
	for name := range r.tiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
