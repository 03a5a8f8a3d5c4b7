// Package drawing turns client submitted pixel buffers into damage tracked
// textures that can be drawn each frame.
package drawing

import "github.com/ItsNotGoodName/touchwm/internal/geometry"

// MaxDamageAge is the maximum buffer age before damage history is discarded.
const MaxDamageAge = 2

// Buffer is a client submitted pixel buffer.
type Buffer interface {
	// Dimensions returns the buffer size in pixels.
	Dimensions() geometry.Size
	// Shm reports whether the buffer is shared memory backed. Shm buffers
	// are released immediately after import, GPU backed buffers are
	// retained by the renderer.
	Shm() bool
	// Bytes returns the raw RGBA pixel data for shm buffers, nil otherwise.
	Bytes() []byte
	// Release returns the buffer to the client.
	Release()
}

// GPUTexture is an imported buffer owned by the renderer.
type GPUTexture interface {
	Size() geometry.Size
}

// Renderer imports client buffers into drawable textures.
type Renderer interface {
	// ImportBuffer uploads the damaged region of a buffer and returns a
	// drawable texture for it.
	ImportBuffer(buffer Buffer, damage []geometry.Rect) (GPUTexture, error)
	// CreateTexture creates a texture from raw RGBA pixels.
	CreateTexture(rgba []byte, width, height int) (GPUTexture, error)
}

// Frame draws textured rectangles for the frame currently being rendered.
type Frame interface {
	// DrawTexture blits src (buffer coordinates) to dst (physical
	// coordinates), limited to the damage rectangles.
	DrawTexture(texture GPUTexture, src geometry.Rect, dst geometry.RectF, damage []geometry.RectF, transform geometry.Transform, alpha float64) error
}
