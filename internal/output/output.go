// Package output models the active display output.
package output

import "github.com/ItsNotGoodName/touchwm/internal/geometry"

// Output is the single active display the compositor renders to.
type Output struct {
	name  string
	size  geometry.Size
	scale float64
}

func New(name string, size geometry.Size, scale float64) *Output {
	if scale <= 0 {
		scale = 1
	}
	return &Output{
		name:  name,
		size:  size,
		scale: scale,
	}
}

func (o *Output) Name() string {
	return o.name
}

// Size returns the logical output size.
func (o *Output) Size() geometry.Size {
	return o.size
}

// Scale returns the physical pixels per logical unit.
func (o *Output) Scale() float64 {
	return o.scale
}

// Resize updates the logical output size after a mode change.
func (o *Output) Resize(size geometry.Size) {
	o.size = size
}

// PrimaryRectangle returns the area of the primary window. The primary
// shares the output with the secondary when one is visible.
func (o *Output) PrimaryRectangle(secondaryVisible bool) geometry.Rect {
	if !secondaryVisible {
		return geometry.Rect{Size: o.size}
	}
	return geometry.Rect{Size: geometry.Size{W: o.size.W, H: (o.size.H + 1) / 2}}
}

// SecondaryRectangle returns the area of the secondary window.
func (o *Output) SecondaryRectangle() geometry.Rect {
	top := (o.size.H + 1) / 2
	return geometry.Rect{
		Loc:  geometry.Point{Y: top},
		Size: geometry.Size{W: o.size.W, H: o.size.H - top},
	}
}
