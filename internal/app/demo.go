package app

import (
	"math/rand"

	"github.com/ItsNotGoodName/touchwm/internal/drawing"
	"github.com/ItsNotGoodName/touchwm/internal/geometry"
	"github.com/ItsNotGoodName/touchwm/internal/wm"
)

// demoClient is an in-process client that fills its window with a solid
// color. It acks configures and commits a matching buffer on the next tick.
type demoClient struct {
	surface *wm.Surface
	color   [4]byte
	alive   bool
	pending *wm.Configure
	painted geometry.Size
}

func newDemoClient() *demoClient {
	return &demoClient{
		surface: &wm.Surface{Buffer: drawing.NewSurfaceBuffer()},
		color: [4]byte{
			byte(64 + rand.Intn(192)),
			byte(64 + rand.Intn(192)),
			byte(64 + rand.Intn(192)),
			255,
		},
		alive: true,
	}
}

// update acts on the last configure, painting a buffer of the requested
// size and acking it. The owning window is resolved through the registry by
// root surface, like a protocol layer routing a commit.
func (d *demoClient) update(windows *wm.Windows) {
	if !d.alive || d.pending == nil {
		return
	}
	window := windows.Find(d.surface)
	if window == nil {
		return
	}
	configure := *d.pending
	d.pending = nil

	size := configure.Size
	if size.IsEmpty() {
		size = geometry.Size{W: 640, H: 480}
	}

	d.surface.Buffer.UpdateBuffer(newDemoBuffer(size, d.color), geometry.Normal, 1)
	d.surface.Buffer.AddDamage(1, drawing.SurfaceDamage{
		Rect: geometry.Rect{Size: size},
	})
	d.painted = size

	window.AckedSize = size
	window.BuffersPending = true
}

// Alive implements wm.Toplevel.
func (d *demoClient) Alive() bool {
	return d.alive
}

// Surface implements wm.Toplevel.
func (d *demoClient) Surface() *wm.Surface {
	if !d.alive {
		return nil
	}
	return d.surface
}

// Geometry implements wm.Toplevel.
func (d *demoClient) Geometry() geometry.Rect {
	return geometry.Rect{Size: d.painted}
}

// Version implements wm.Toplevel.
func (d *demoClient) Version() int {
	return 4
}

// SendConfigure implements wm.Toplevel.
func (d *demoClient) SendConfigure(configure wm.Configure) error {
	d.pending = &configure
	return nil
}

// SendClose implements wm.Toplevel.
func (d *demoClient) SendClose() error {
	d.alive = false
	return nil
}

func newDemoBuffer(size geometry.Size, color [4]byte) *demoBuffer {
	pix := make([]byte, size.W*size.H*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i] = color[0]
		pix[i+1] = color[1]
		pix[i+2] = color[2]
		pix[i+3] = color[3]
	}

	// Darker border so window edges are visible.
	border := 4
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			if x >= border && x < size.W-border && y >= border && y < size.H-border {
				continue
			}
			p := pix[(y*size.W+x)*4:]
			p[0] /= 2
			p[1] /= 2
			p[2] /= 2
		}
	}

	return &demoBuffer{pix: pix, size: size}
}

type demoBuffer struct {
	pix  []byte
	size geometry.Size
}

func (b *demoBuffer) Dimensions() geometry.Size {
	return b.size
}

func (b *demoBuffer) Shm() bool {
	return true
}

func (b *demoBuffer) Bytes() []byte {
	return b.pix
}

func (b *demoBuffer) Release() {}
