package wm

import (
	"log/slog"

	"github.com/ItsNotGoodName/touchwm/internal/drawing"
	"github.com/ItsNotGoodName/touchwm/internal/geometry"
	"github.com/ItsNotGoodName/touchwm/internal/output"
	"github.com/google/uuid"
)

// windowTransaction stages an atomic geometry change of a single window.
type windowTransaction struct {
	rectangle geometry.Rect
}

// textureCache stores the last drawn state of a window.
type textureCache struct {
	// geometry is the combined size of all textures.
	geometry geometry.Size
	textures []drawing.Texture
}

func (c *textureCache) reset(geometry geometry.Size) {
	c.geometry = geometry
	c.textures = c.textures[:0]
}

func (c *textureCache) push(texture drawing.Texture) {
	c.textures = append(c.textures, texture)
}

// Window is the compositor state of one client window.
type Window struct {
	// InitialConfigureSent is set once the first configure went out.
	InitialConfigureSent bool

	// BuffersPending is set when the client committed buffers that have
	// not been imported yet.
	BuffersPending bool

	// AckedSize is the last configure size acked by the client.
	AckedSize geometry.Size

	id           string
	rectangle    geometry.Rect
	surface      Toplevel
	textureCache textureCache
	visible      bool
	transaction  *windowTransaction
}

func NewWindow(surface Toplevel) *Window {
	return &Window{
		id:      uuid.NewString(),
		surface: surface,
	}
}

// ID is the stable identifier of the window.
func (w *Window) ID() string {
	return w.id
}

// Visible reports whether the window is composited on the active output.
func (w *Window) Visible() bool {
	return w.visible
}

// Rectangle returns the window's committed logical bounds.
func (w *Window) Rectangle() geometry.Rect {
	return w.rectangle
}

// Toplevel returns the window's shell role object.
func (w *Window) Toplevel() Toplevel {
	return w.surface
}

// RequestFrame delivers frame done callbacks to all surfaces.
func (w *Window) RequestFrame(runtime uint32) {
	w.withSurfaces(func(s *Surface) {
		if s.FrameDone != nil {
			s.FrameDone(runtime)
		}
	})
}

// Reconfigure sends a configure for the latest window properties.
func (w *Window) Reconfigure() {
	size := w.rectangle.Size
	if w.transaction != nil {
		size = w.transaction.rectangle.Size
	}

	configure := Configure{
		Size:           size,
		DecorationMode: DecorationServerSide,
	}

	// Mark the window as tiled, with a maximized fallback for clients too
	// old to understand tiling states.
	if w.surface.Version() >= 2 {
		configure.States = []State{StateTiledTop, StateTiledBottom, StateTiledLeft, StateTiledRight}
	} else {
		configure.States = []State{StateMaximized}
	}

	if err := w.surface.SendConfigure(configure); err != nil {
		// The client died mid flight, the window is reaped on the next
		// liveness sweep.
		slog.Debug("Configure sent to dead window", "window", w.id, "error", err)
	}
}

// updateDimensions stages a geometry change for the window.
func (w *Window) updateDimensions(transaction *Transaction, rectangle geometry.Rect) {
	// Prevent redundant configure events.
	wt := w.startTransaction(transaction)
	old := wt.rectangle
	wt.rectangle = rectangle
	if wt.rectangle != old && w.InitialConfigureSent {
		w.Reconfigure()
	}
}

// enter marks the window visible and notifies its surfaces.
func (w *Window) enter(o *output.Output) {
	w.withSurfaces(func(s *Surface) {
		if s.EnterOutput != nil {
			s.EnterOutput(o)
		}
	})
	w.visible = true
}

// leave marks the window invisible, notifies its surfaces, and stages a
// resize to the full output in anticipation of the overview.
func (w *Window) leave(transaction *Transaction, o *output.Output) {
	w.withSurfaces(func(s *Surface) {
		if s.LeaveOutput != nil {
			s.LeaveOutput(o)
		}
	})
	w.visible = false

	rectangle := w.startTransaction(transaction).rectangle
	rectangle.Size = o.Size()
	w.updateDimensions(transaction, rectangle)
}

// Draw renders the window's textures.
//
// Without explicit bounds the texture block is centered inside the window's
// own rectangle.
func (w *Window) Draw(renderer drawing.Renderer, frame drawing.Frame, o *output.Output, scale float64, bounds *geometry.Rect, bufferAge uint8) {
	// Skip updating windows during transactions.
	if w.transaction == nil && w.BuffersPending {
		w.importBuffers(renderer)
	}

	var rect geometry.Rect
	if bounds != nil {
		rect = *bounds
	} else {
		xOffset := max((w.rectangle.Size.W-w.textureCache.geometry.W)/2, 0)
		yOffset := max((w.rectangle.Size.H-w.textureCache.geometry.H)/2, 0)
		rect = geometry.Rect{
			Loc:  w.rectangle.Loc.Add(geometry.Point{X: xOffset, Y: yOffset}),
			Size: o.Size(),
		}
	}

	for i := range w.textureCache.textures {
		w.textureCache.textures[i].DrawAt(frame, o.Scale(), rect, scale, bufferAge)
	}
}

// importBuffers imports every pending buffer of the window's surface tree
// into the renderer and rebuilds the texture cache.
func (w *Window) importBuffers(renderer drawing.Renderer) {
	root := w.surface.Surface()
	if root == nil {
		return
	}

	geom := w.surface.Geometry()
	w.textureCache.reset(geom.Size)
	w.BuffersPending = false

	root.Walk(geometry.Point{}.Sub(geom.Loc), func(s *Surface, location geometry.Point) bool {
		buffer := s.Buffer
		if buffer == nil {
			return false
		}

		// Surface already imported, reuse the texture.
		if buffer.Texture != nil {
			w.textureCache.push(drawing.TextureFromSurface(buffer.Texture, location, buffer))
			return true
		}

		if buffer.Buffer == nil {
			return false
		}

		texture, err := renderer.ImportBuffer(buffer.Buffer, buffer.Damage.Buffer())
		if err != nil {
			slog.Error("Failed to import buffer", "window", w.id, "error", err)
			buffer.Buffer = nil
			return false
		}

		// Release shm buffers after import, the renderer keeps GPU backed
		// buffers alive itself.
		if buffer.Buffer.Shm() {
			buffer.Buffer.Release()
			buffer.Buffer = nil
		}

		buffer.Texture = texture
		w.textureCache.push(drawing.TextureFromSurface(texture, location, buffer))
		buffer.Damage.Clear()

		return true
	})
}

func (w *Window) withSurfaces(fn func(s *Surface)) {
	root := w.surface.Surface()
	if root == nil {
		return
	}
	root.Each(fn)
}

// startTransaction creates the window's staged state, or returns the
// active one.
//
// Takes the registry transaction as parameter to ensure the window cannot
// get stuck in the frozen state indefinitely.
func (w *Window) startTransaction(_ *Transaction) *windowTransaction {
	if w.transaction == nil {
		w.transaction = &windowTransaction{rectangle: w.rectangle}
	}
	return w.transaction
}

// applyTransaction commits the staged state, if any.
func (w *Window) applyTransaction() {
	if w.transaction == nil {
		return
	}
	w.rectangle = w.transaction.rectangle
	w.transaction = nil
}
