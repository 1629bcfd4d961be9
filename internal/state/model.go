package state

type Point struct{ X, Y float64 }

// PointerKind is the kind of a pointer sample fed to the canvas.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerHover
	PointerCancel
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerHover:
		return "hover"
	case PointerCancel:
		return "cancel"
	}
	return "unknown"
}

// Stroke is the polyline traced between a pointer down and the matching up.
type Stroke struct {
	Points []Point
}

func NewStroke(x, y float64) *Stroke {
	return &Stroke{Points: []Point{{X: x, Y: y}}}
}

func (s *Stroke) LineTo(x, y float64) {
	s.Points = append(s.Points, Point{X: x, Y: y})
}
