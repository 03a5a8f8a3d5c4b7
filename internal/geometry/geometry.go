// Package geometry provides the coordinate types used across the compositor.
//
// Logical coordinates are integer and resolution independent, physical
// coordinates are float64 and scaled to the output, buffer coordinates are
// integer pixels of a client buffer before scale/transform are applied.
package geometry

import "math"

type Point struct {
	X int
	Y int
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// ScaleF scales the point by a float factor, rounding each component.
func (p Point) ScaleF(factor float64) Point {
	return Point{
		X: int(math.Round(float64(p.X) * factor)),
		Y: int(math.Round(float64(p.Y) * factor)),
	}
}

func (p Point) ToF() PointF {
	return PointF{X: float64(p.X), Y: float64(p.Y)}
}

type PointF struct {
	X float64
	Y float64
}

func (p PointF) Add(q PointF) PointF {
	return PointF{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p PointF) Sub(q PointF) PointF {
	return PointF{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p PointF) Round() Point {
	return Point{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

type Size struct {
	W int
	H int
}

// ScaleF scales the size by a float factor, rounding each component.
func (s Size) ScaleF(factor float64) Size {
	return Size{
		W: int(math.Round(float64(s.W) * factor)),
		H: int(math.Round(float64(s.H) * factor)),
	}
}

func (s Size) Min(o Size) Size {
	return Size{W: min(s.W, o.W), H: min(s.H, o.H)}
}

func (s Size) Max(o Size) Size {
	return Size{W: max(s.W, o.W), H: max(s.H, o.H)}
}

func (s Size) IsEmpty() bool {
	return s.W <= 0 || s.H <= 0
}

func (s Size) ToF() SizeF {
	return SizeF{W: float64(s.W), H: float64(s.H)}
}

// ToBuffer converts a logical size to buffer pixels.
func (s Size) ToBuffer(scale int, transform Transform) Size {
	scaled := Size{W: s.W * scale, H: s.H * scale}
	return transform.TransformSize(scaled)
}

// ToLogical converts buffer pixel dimensions to a logical size.
func (s Size) ToLogical(scale int, transform Transform) Size {
	oriented := transform.Invert().TransformSize(s)
	if scale <= 0 {
		scale = 1
	}
	return Size{W: oriented.W / scale, H: oriented.H / scale}
}

type SizeF struct {
	W float64
	H float64
}

func (s SizeF) Scale(factor float64) SizeF {
	return SizeF{W: s.W * factor, H: s.H * factor}
}

func (s SizeF) IsEmpty() bool {
	return s.W <= 0 || s.H <= 0
}

// Rect is an axis-aligned rectangle in integer coordinates.
type Rect struct {
	Loc  Point
	Size Size
}

func NewRect(x, y, w, h int) Rect {
	return Rect{Loc: Point{X: x, Y: y}, Size: Size{W: w, H: h}}
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Loc.X && p.X < r.Loc.X+r.Size.W &&
		p.Y >= r.Loc.Y && p.Y < r.Loc.Y+r.Size.H
}

func (r Rect) ToF() RectF {
	return RectF{Loc: r.Loc.ToF(), Size: r.Size.ToF()}
}

// Physical converts a logical rectangle to physical coordinates.
func (r Rect) Physical(outputScale float64) RectF {
	return RectF{
		Loc:  PointF{X: float64(r.Loc.X) * outputScale, Y: float64(r.Loc.Y) * outputScale},
		Size: SizeF{W: float64(r.Size.W) * outputScale, H: float64(r.Size.H) * outputScale},
	}
}

// ToBuffer converts a logical rectangle to buffer pixels. The area is the
// logical size of the surface the rectangle belongs to.
func (r Rect) ToBuffer(scale int, transform Transform, area Size) Rect {
	oriented := transform.TransformRect(r, area)
	return Rect{
		Loc:  Point{X: oriented.Loc.X * scale, Y: oriented.Loc.Y * scale},
		Size: Size{W: oriented.Size.W * scale, H: oriented.Size.H * scale},
	}
}

// ToLogical converts a buffer rectangle to logical coordinates. The area is
// the buffer pixel size of the surface the rectangle belongs to.
func (r Rect) ToLogical(scale int, transform Transform, area Size) Rect {
	if scale <= 0 {
		scale = 1
	}
	down := Rect{
		Loc:  Point{X: r.Loc.X / scale, Y: r.Loc.Y / scale},
		Size: Size{W: r.Size.W / scale, H: r.Size.H / scale},
	}
	downArea := Size{W: area.W / scale, H: area.H / scale}
	return transform.Invert().TransformRect(down, downArea)
}

// RectF is an axis-aligned rectangle in physical coordinates.
type RectF struct {
	Loc  PointF
	Size SizeF
}

func (r RectF) IsEmpty() bool {
	return r.Size.IsEmpty()
}

// Merge returns the union of two rectangles. Empty rectangles are ignored.
func (r RectF) Merge(o RectF) RectF {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x1 := math.Min(r.Loc.X, o.Loc.X)
	y1 := math.Min(r.Loc.Y, o.Loc.Y)
	x2 := math.Max(r.Loc.X+r.Size.W, o.Loc.X+o.Size.W)
	y2 := math.Max(r.Loc.Y+r.Size.H, o.Loc.Y+o.Size.H)
	return RectF{Loc: PointF{X: x1, Y: y1}, Size: SizeF{W: x2 - x1, H: y2 - y1}}
}
