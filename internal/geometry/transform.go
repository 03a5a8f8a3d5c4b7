package geometry

// Transform describes the rotation/flip a client applied to its buffer
// before submitting it.
type Transform int

const (
	Normal Transform = iota
	Rotate90
	Rotate180
	Rotate270
	Flipped
	Flipped90
	Flipped180
	Flipped270
)

// TransformSize returns the size after applying the transform.
func (t Transform) TransformSize(s Size) Size {
	switch t {
	case Rotate90, Rotate270, Flipped90, Flipped270:
		return Size{W: s.H, H: s.W}
	default:
		return s
	}
}

// Invert returns the transform that undoes t.
func (t Transform) Invert() Transform {
	switch t {
	case Rotate90:
		return Rotate270
	case Rotate270:
		return Rotate90
	default:
		return t
	}
}

// TransformRect maps a rectangle from the untransformed space into the
// transformed space. The area is the size of the untransformed space.
func (t Transform) TransformRect(r Rect, area Size) Rect {
	p1 := t.transformPoint(r.Loc, area)
	p2 := t.transformPoint(r.Loc.Add(Point{X: r.Size.W, Y: r.Size.H}), area)

	loc := Point{X: min(p1.X, p2.X), Y: min(p1.Y, p2.Y)}
	size := Size{W: max(p1.X, p2.X) - loc.X, H: max(p1.Y, p2.Y) - loc.Y}
	return Rect{Loc: loc, Size: size}
}

func (t Transform) transformPoint(p Point, area Size) Point {
	switch t {
	case Rotate90:
		return Point{X: area.H - p.Y, Y: p.X}
	case Rotate180:
		return Point{X: area.W - p.X, Y: area.H - p.Y}
	case Rotate270:
		return Point{X: p.Y, Y: area.W - p.X}
	case Flipped:
		return Point{X: area.W - p.X, Y: p.Y}
	case Flipped90:
		return Point{X: area.H - p.Y, Y: area.W - p.X}
	case Flipped180:
		return Point{X: p.X, Y: area.H - p.Y}
	case Flipped270:
		return Point{X: p.Y, Y: p.X}
	default:
		return p
	}
}
