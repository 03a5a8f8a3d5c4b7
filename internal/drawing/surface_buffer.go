package drawing

import "github.com/ItsNotGoodName/touchwm/internal/geometry"

// SurfaceDamage is a damage rectangle reported by a client, either in
// buffer pixels or surface local coordinates.
type SurfaceDamage struct {
	Rect geometry.Rect
	// Buffer marks Rect as buffer coordinates instead of surface
	// coordinates.
	Buffer bool
}

// SurfaceBuffer caches the buffer state of a single surface.
type SurfaceBuffer struct {
	// Texture is the cached import result, nil until the buffer has been
	// imported.
	Texture GPUTexture

	// Size is the logical size of the surface content.
	Size geometry.Size

	// Buffer is the pending client buffer, nil once released.
	Buffer Buffer

	Transform geometry.Transform
	Scale     int
	Damage    Damage
}

func NewSurfaceBuffer() *SurfaceBuffer {
	return &SurfaceBuffer{Scale: 1}
}

// UpdateBuffer handles a buffer assignment. A nil buffer resets the surface
// to its default state.
func (s *SurfaceBuffer) UpdateBuffer(buffer Buffer, transform geometry.Transform, scale int) {
	if buffer == nil {
		*s = *NewSurfaceBuffer()
		return
	}

	if scale <= 0 {
		scale = 1
	}
	s.Transform = transform
	s.Scale = scale
	s.Size = buffer.Dimensions().ToLogical(scale, transform)
	s.Buffer = buffer
	s.Texture = nil
}

// BufferSize returns the surface size in buffer pixels.
func (s *SurfaceBuffer) BufferSize() geometry.Size {
	return s.Size.ToBuffer(s.Scale, s.Transform)
}

// AddDamage records client damage in both buffer coordinates, for the next
// import, and physical coordinates, merged into the newest damage ring slot.
func (s *SurfaceBuffer) AddDamage(outputScale float64, damage ...SurfaceDamage) {
	bufferArea := s.BufferSize()
	for _, d := range damage {
		var buffer geometry.Rect
		var physical geometry.RectF
		if d.Buffer {
			buffer = d.Rect
			logical := d.Rect.ToLogical(s.Scale, s.Transform, bufferArea)
			physical = logical.Physical(outputScale)
		} else {
			buffer = d.Rect.ToBuffer(s.Scale, s.Transform, s.Size)
			physical = d.Rect.Physical(outputScale)
		}

		s.Damage.physical[0] = s.Damage.physical[0].Merge(physical)
		s.Damage.buffer = append(s.Damage.buffer, buffer)
	}
}
