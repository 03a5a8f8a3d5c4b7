package wm

import (
	"errors"
	"testing"

	"github.com/ItsNotGoodName/touchwm/internal/drawing"
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

type fakeRenderer struct {
	imports int
	err     error
}

func (r *fakeRenderer) ImportBuffer(buffer drawing.Buffer, _ []geometry.Rect) (drawing.GPUTexture, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.imports++
	return &fakeGPUTexture{size: buffer.Dimensions()}, nil
}

func (r *fakeRenderer) CreateTexture(_ []byte, width, height int) (drawing.GPUTexture, error) {
	return &fakeGPUTexture{size: geometry.Size{W: width, H: height}}, nil
}

type fakeFrame struct {
	draws int
}

func (f *fakeFrame) DrawTexture(_ drawing.GPUTexture, _ geometry.Rect, _ geometry.RectF, _ []geometry.RectF, _ geometry.Transform, _ float64) error {
	f.draws++
	return nil
}

// commitBuffer attaches a damaged shm buffer like a committing client.
func commitBuffer(top *fakeToplevel, window *Window, size geometry.Size) *fakeBuffer {
	buffer := &fakeBuffer{size: size, shm: true}
	top.surface.Buffer.UpdateBuffer(buffer, geometry.Normal, 1)
	top.surface.Buffer.AddDamage(1, drawing.SurfaceDamage{Rect: geometry.Rect{Size: size}})
	top.geometry = geometry.Rect{Size: size}
	window.BuffersPending = true
	return buffer
}

func TestWindowDrawImportsPendingBuffers(t *testing.T) {
	f := newFixture()
	top, window := f.add()
	f.commit()

	buffer := commitBuffer(top, window, geometry.Size{W: 100, H: 100})

	renderer := &fakeRenderer{}
	frame := &fakeFrame{}
	window.Draw(renderer, frame, f.o, 1, nil, 0)

	if renderer.imports != 1 {
		t.Fatalf("got %d imports, want 1", renderer.imports)
	}
	if window.BuffersPending {
		t.Error("import should clear the pending flag")
	}

	// Shm buffers are handed back to the client right after import.
	if buffer.released != 1 {
		t.Errorf("got %d releases, want 1", buffer.released)
	}
	if top.surface.Buffer.Buffer != nil {
		t.Error("released buffer should be detached from the surface")
	}
	if top.surface.Buffer.Texture == nil {
		t.Error("import should cache the texture")
	}
	if top.surface.Buffer.Damage.Damaged() {
		t.Error("import should consume the buffer damage")
	}

	if frame.draws != 1 {
		t.Errorf("got %d draws, want 1", frame.draws)
	}
}

func TestWindowDrawReusesCachedTexture(t *testing.T) {
	f := newFixture()
	top, window := f.add()
	f.commit()

	commitBuffer(top, window, geometry.Size{W: 100, H: 100})

	renderer := &fakeRenderer{}
	window.Draw(renderer, &fakeFrame{}, f.o, 1, nil, 0)

	// A second commit without a new buffer reuses the imported texture.
	window.BuffersPending = true
	window.Draw(renderer, &fakeFrame{}, f.o, 1, nil, 0)

	if renderer.imports != 1 {
		t.Errorf("got %d imports, want 1", renderer.imports)
	}
}

func TestWindowDrawSkipsImportDuringTransaction(t *testing.T) {
	f := newFixture()
	top, window := f.add()
	f.commit()

	commitBuffer(top, window, geometry.Size{W: 100, H: 100})
	f.w.Resize(f.o)
	if window.transaction == nil {
		t.Fatal("resize should stage a window transaction")
	}

	renderer := &fakeRenderer{}
	window.Draw(renderer, &fakeFrame{}, f.o, 1, nil, 0)

	if renderer.imports != 0 {
		t.Errorf("got %d imports, want 0", renderer.imports)
	}
	if !window.BuffersPending {
		t.Error("buffers must stay pending during a transaction")
	}
}

func TestWindowImportErrorDropsBuffer(t *testing.T) {
	f := newFixture()
	top, window := f.add()
	f.commit()

	commitBuffer(top, window, geometry.Size{W: 100, H: 100})

	renderer := &fakeRenderer{err: errors.New("device lost")}
	window.Draw(renderer, &fakeFrame{}, f.o, 1, nil, 0)

	if top.surface.Buffer.Buffer != nil {
		t.Error("failed import should drop the buffer")
	}
	if top.surface.Buffer.Texture != nil {
		t.Error("failed import must not cache a texture")
	}
}

func TestWindowReconfigureStates(t *testing.T) {
	f := newFixture()
	top, window := f.add()
	window.InitialConfigureSent = true

	top.configures = nil
	window.Reconfigure()
	if len(top.configures) != 1 {
		t.Fatalf("got %d configures, want 1", len(top.configures))
	}
	configure := top.configures[0]
	if got, want := len(configure.States), 4; got != want {
		t.Errorf("got %d states, want %d tiled states", got, want)
	}
	if got, want := configure.DecorationMode, DecorationServerSide; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// Old clients get a maximized fallback instead of tiling states.
	top.version = 1
	top.configures = nil
	window.Reconfigure()
	if got, want := top.configures[0].States, []State{StateMaximized}; len(got) != 1 || got[0] != want[0] {
		t.Errorf("got %v, want %v", got, want)
	}
}
