package drawing

import (
	"log/slog"

	"github.com/ItsNotGoodName/touchwm/internal/geometry"
)

// Texture is a cached drawable texture.
//
// It carries everything needed to draw a surface's content even after the
// surface itself has died.
type Texture struct {
	damage    [MaxDamageAge]geometry.RectF
	location  geometry.Point
	texture   GPUTexture
	size      geometry.Size
	transform geometry.Transform
	scale     int
}

// NewTexture wraps a renderer texture that covers its full size.
func NewTexture(texture GPUTexture, size geometry.Size, outputScale float64) Texture {
	physical := size.ToF().Scale(outputScale)
	t := Texture{
		texture: texture,
		size:    size,
		scale:   1,
	}
	for i := range t.damage {
		t.damage[i] = geometry.RectF{Size: physical}
	}
	return t
}

// TextureFromSurface wraps a texture imported from a surface buffer,
// snapshotting the surface's damage history.
func TextureFromSurface(texture GPUTexture, location geometry.Point, buffer *SurfaceBuffer) Texture {
	return Texture{
		damage:    buffer.Damage.physical,
		location:  location,
		texture:   texture,
		size:      buffer.Size,
		transform: buffer.Transform,
		scale:     buffer.Scale,
	}
}

// Size returns the texture's logical dimensions.
func (t *Texture) Size() geometry.Size {
	return t.size
}

// DrawAt draws the texture inside the window bounds, scaled by windowScale
// and truncated to the bounds. Scaling happens before truncation.
//
// The bufferAge selects how much physical damage history is still valid; 0
// or anything beyond MaxDamageAge forces a full redraw. A fully empty
// damage selection skips the draw entirely.
func (t *Texture) DrawAt(frame Frame, outputScale float64, windowBounds geometry.Rect, windowScale float64, bufferAge uint8) {
	// Skip textures completely outside of the window bounds.
	scaledBounds := windowBounds.Size.ScaleF(1 / windowScale).Max(geometry.Size{W: 1, H: 1})
	if t.location.X >= scaledBounds.W || t.location.Y >= scaledBounds.H {
		return
	}

	// Truncate source size based on window bounds.
	srcSize := geometry.Size{W: t.size.W + t.location.X, H: t.size.H + t.location.Y}.Min(scaledBounds)
	src := geometry.Rect{Size: srcSize}
	srcBuffer := src.ToBuffer(t.scale, t.transform, t.size)

	// Scale output size based on window scale.
	location := windowBounds.Loc.Add(t.location.ScaleF(windowScale))
	dstSize := srcSize.ScaleF(windowScale).Min(windowBounds.Size)
	dst := geometry.Rect{Loc: location, Size: dstSize}
	dstPhysical := dst.Physical(outputScale)

	damage := []geometry.RectF{{Size: dstPhysical.Size}}
	if bufferAge >= 1 && bufferAge <= MaxDamageAge {
		damage = t.damage[:bufferAge]
	}

	// Skip rendering surfaces without damage.
	empty := true
	for _, rect := range damage {
		if !rect.IsEmpty() {
			empty = false
			break
		}
	}
	if empty {
		return
	}

	if err := frame.DrawTexture(t.texture, srcBuffer, dstPhysical, damage, t.transform, 1); err != nil {
		slog.Debug("Failed to draw texture", "error", err)
	}
}
