package drawing

import (
	"testing"

	"github.com/ItsNotGoodName/touchwm/internal/geometry"
)

type fakeBuffer struct {
	size     geometry.Size
	shm      bool
	released int
}

func (b *fakeBuffer) Dimensions() geometry.Size { return b.size }
func (b *fakeBuffer) Shm() bool                 { return b.shm }
func (b *fakeBuffer) Bytes() []byte             { return make([]byte, b.size.W*b.size.H*4) }
func (b *fakeBuffer) Release()                  { b.released++ }

type fakeGPUTexture struct {
	size geometry.Size
}

func (t *fakeGPUTexture) Size() geometry.Size { return t.size }

type drawCall struct {
	src    geometry.Rect
	dst    geometry.RectF
	damage []geometry.RectF
}

type fakeFrame struct {
	calls []drawCall
}

func (f *fakeFrame) DrawTexture(_ GPUTexture, src geometry.Rect, dst geometry.RectF, damage []geometry.RectF, _ geometry.Transform, _ float64) error {
	f.calls = append(f.calls, drawCall{src: src, dst: dst, damage: damage})
	return nil
}

func TestDamageClearRotates(t *testing.T) {
	var d Damage
	first := geometry.RectF{Size: geometry.SizeF{W: 10, H: 10}}
	d.physical[0] = first
	d.buffer = append(d.buffer, geometry.Rect{Size: geometry.Size{W: 20, H: 20}})

	d.Clear()

	if got := d.physical[0]; !got.IsEmpty() {
		t.Errorf("got %v, want empty newest slot", got)
	}
	if got := d.physical[1]; got != first {
		t.Errorf("got %v, want %v", got, first)
	}
	if got := len(d.buffer); got != 0 {
		t.Errorf("got %d buffer rects, want 0", got)
	}

	if d.Damaged() {
		t.Error("clear should drop unimported buffer damage")
	}

	// A second clear ages the physical damage out of the ring entirely.
	d.Clear()
	for i, rect := range d.Physical() {
		if !rect.IsEmpty() {
			t.Errorf("slot %d: got %v, want empty", i, rect)
		}
	}
}

func TestSurfaceBufferUpdateBuffer(t *testing.T) {
	testCases := []struct {
		name      string
		size      geometry.Size
		transform geometry.Transform
		scale     int
		want      geometry.Size
	}{
		{
			name: "Simple",
			size: geometry.Size{W: 200, H: 100},
			want: geometry.Size{W: 200, H: 100},
		},
		{
			name:  "Scaled",
			size:  geometry.Size{W: 200, H: 100},
			scale: 2,
			want:  geometry.Size{W: 100, H: 50},
		},
		{
			name:      "Rotated",
			size:      geometry.Size{W: 200, H: 100},
			transform: geometry.Rotate90,
			want:      geometry.Size{W: 100, H: 200},
		},
		{
			name:      "RotatedScaled",
			size:      geometry.Size{W: 200, H: 100},
			transform: geometry.Rotate270,
			scale:     2,
			want:      geometry.Size{W: 50, H: 100},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSurfaceBuffer()
			s.Texture = &fakeGPUTexture{}
			s.UpdateBuffer(&fakeBuffer{size: tc.size}, tc.transform, tc.scale)

			if got := s.Size; got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
			if s.Texture != nil {
				t.Error("new buffer should invalidate the cached texture")
			}
		})
	}
}

func TestSurfaceBufferUpdateBufferNilResets(t *testing.T) {
	s := NewSurfaceBuffer()
	s.UpdateBuffer(&fakeBuffer{size: geometry.Size{W: 10, H: 10}}, geometry.Normal, 1)
	s.AddDamage(1, SurfaceDamage{Rect: geometry.Rect{Size: geometry.Size{W: 10, H: 10}}})

	s.UpdateBuffer(nil, geometry.Normal, 1)

	if s.Buffer != nil || !s.Size.IsEmpty() || s.Damage.Damaged() {
		t.Error("nil buffer should reset the surface state")
	}
	if got := s.Scale; got != 1 {
		t.Errorf("got scale %d, want 1", got)
	}
}

func TestSurfaceBufferAddDamage(t *testing.T) {
	s := NewSurfaceBuffer()
	s.UpdateBuffer(&fakeBuffer{size: geometry.Size{W: 100, H: 100}}, geometry.Normal, 2)

	// Surface coordinates scale up into buffer coordinates.
	s.AddDamage(1, SurfaceDamage{Rect: geometry.NewRect(1, 2, 3, 4)})
	if got, want := s.Damage.Buffer()[0], geometry.NewRect(2, 4, 6, 8); got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// Buffer coordinates are recorded untouched.
	s.AddDamage(1, SurfaceDamage{Rect: geometry.NewRect(10, 10, 2, 2), Buffer: true})
	if got, want := s.Damage.Buffer()[1], geometry.NewRect(10, 10, 2, 2); got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	if !s.Damage.Damaged() {
		t.Error("expected physical damage")
	}
}

func TestTextureDrawAtBufferAge(t *testing.T) {
	size := geometry.Size{W: 50, H: 50}
	bounds := geometry.Rect{Size: geometry.Size{W: 100, H: 100}}

	newDamagedTexture := func() Texture {
		s := NewSurfaceBuffer()
		s.UpdateBuffer(&fakeBuffer{size: size}, geometry.Normal, 1)
		s.AddDamage(1, SurfaceDamage{Rect: geometry.NewRect(0, 0, 10, 10)})
		return TextureFromSurface(&fakeGPUTexture{size: size}, geometry.Point{}, s)
	}

	t.Run("ValidAgeUsesHistory", func(t *testing.T) {
		frame := &fakeFrame{}
		texture := newDamagedTexture()
		texture.DrawAt(frame, 1, bounds, 1, 1)

		if len(frame.calls) != 1 {
			t.Fatalf("got %d draw calls, want 1", len(frame.calls))
		}
		if got, want := len(frame.calls[0].damage), 1; got != want {
			t.Fatalf("got %d damage rects, want %d", got, want)
		}
		want := geometry.RectF{Size: geometry.SizeF{W: 10, H: 10}}
		if got := frame.calls[0].damage[0]; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("UnknownAgeFullDamage", func(t *testing.T) {
		for _, age := range []uint8{0, MaxDamageAge + 1} {
			frame := &fakeFrame{}
			texture := newDamagedTexture()
			texture.DrawAt(frame, 1, bounds, 1, age)

			if len(frame.calls) != 1 {
				t.Fatalf("age %d: got %d draw calls, want 1", age, len(frame.calls))
			}
			want := geometry.RectF{Size: geometry.SizeF{W: 50, H: 50}}
			if got := frame.calls[0].damage[0]; got != want {
				t.Errorf("age %d: got %v, want %v", age, got, want)
			}
		}
	})

	t.Run("NoDamageSkipsDraw", func(t *testing.T) {
		s := NewSurfaceBuffer()
		s.UpdateBuffer(&fakeBuffer{size: size}, geometry.Normal, 1)
		texture := TextureFromSurface(&fakeGPUTexture{size: size}, geometry.Point{}, s)

		frame := &fakeFrame{}
		texture.DrawAt(frame, 1, bounds, 1, 1)
		if len(frame.calls) != 0 {
			t.Errorf("got %d draw calls, want 0", len(frame.calls))
		}
	})

	t.Run("OutsideBoundsSkipsDraw", func(t *testing.T) {
		s := NewSurfaceBuffer()
		s.UpdateBuffer(&fakeBuffer{size: size}, geometry.Normal, 1)
		s.AddDamage(1, SurfaceDamage{Rect: geometry.NewRect(0, 0, 10, 10)})
		texture := TextureFromSurface(&fakeGPUTexture{size: size}, geometry.Point{X: 200, Y: 0}, s)

		frame := &fakeFrame{}
		texture.DrawAt(frame, 1, bounds, 1, 1)
		if len(frame.calls) != 0 {
			t.Errorf("got %d draw calls, want 0", len(frame.calls))
		}
	})
}

func TestTextureDrawAtTruncates(t *testing.T) {
	frame := &fakeFrame{}
	texture := NewTexture(&fakeGPUTexture{}, geometry.Size{W: 200, H: 200}, 1)
	bounds := geometry.Rect{Loc: geometry.Point{X: 10, Y: 10}, Size: geometry.Size{W: 100, H: 100}}

	texture.DrawAt(frame, 1, bounds, 1, 0)

	if len(frame.calls) != 1 {
		t.Fatalf("got %d draw calls, want 1", len(frame.calls))
	}
	call := frame.calls[0]
	if got, want := call.src.Size, (geometry.Size{W: 100, H: 100}); got != want {
		t.Errorf("got src %v, want %v", got, want)
	}
	wantDst := geometry.RectF{
		Loc:  geometry.PointF{X: 10, Y: 10},
		Size: geometry.SizeF{W: 100, H: 100},
	}
	if got := call.dst; got != wantDst {
		t.Errorf("got dst %v, want %v", got, wantDst)
	}
}
