package x11

import (
	"testing"

	"github.com/ItsNotGoodName/touchwm/internal/geometry"
	"github.com/ItsNotGoodName/touchwm/internal/output"
)

func TestFrameAge(t *testing.T) {
	size := geometry.Size{W: 100, H: 100}
	b := &Backend{
		output:   output.New("X11-1", size, 1),
		renderer: newRenderer(size),
	}

	_, age, err := b.Frame()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := age, uint8(0); got != want {
		t.Errorf("got age %d, want %d for the first frame", got, want)
	}

	_, age, _ = b.Frame()
	if got, want := age, uint8(1); got != want {
		t.Errorf("got age %d, want %d", got, want)
	}

	// Resizing reallocates the framebuffer, its history is gone.
	b.output.Resize(geometry.Size{W: 50, H: 50})
	_, age, _ = b.Frame()
	if got, want := age, uint8(0); got != want {
		t.Errorf("got age %d, want %d after a resize", got, want)
	}

	_, age, _ = b.Frame()
	if got, want := age, uint8(1); got != want {
		t.Errorf("got age %d, want %d", got, want)
	}
}
