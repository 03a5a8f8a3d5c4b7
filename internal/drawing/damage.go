package drawing

import "github.com/ItsNotGoodName/touchwm/internal/geometry"

// Damage tracks what changed on a surface since it was last composited.
//
// Physical damage is kept for the last MaxDamageAge imports so that a
// renderer reporting a buffer age can redraw only what changed. Buffer
// damage accumulates between imports and is handed to the renderer on the
// next one.
type Damage struct {
	physical [MaxDamageAge]geometry.RectF
	buffer   []geometry.Rect
}

// Clear rotates the physical damage ring and drops accumulated buffer
// damage.
//
// It must be called exactly once after a successful import, otherwise the
// ring desyncs from the renderer's buffer age.
func (d *Damage) Clear() {
	for i := MaxDamageAge - 1; i > 0; i-- {
		d.physical[i] = d.physical[i-1]
	}
	d.physical[0] = geometry.RectF{}
	d.buffer = d.buffer[:0]
}

// Buffer returns the buffer damage accumulated since the last import.
func (d *Damage) Buffer() []geometry.Rect {
	return d.buffer
}

// Physical returns the physical damage history, newest first.
func (d *Damage) Physical() []geometry.RectF {
	return d.physical[:]
}

// Damaged reports whether there is unimported damage.
func (d *Damage) Damaged() bool {
	return len(d.buffer) != 0
}
