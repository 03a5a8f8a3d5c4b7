// Package x11 is an X11 window backend for development. The compositor runs
// inside a regular X window, touch gestures are emulated with the pointer.
package x11

import (
	"context"
	"log/slog"

	"github.com/ItsNotGoodName/touchwm/internal/backend"
	"github.com/ItsNotGoodName/touchwm/internal/drawing"
	"github.com/ItsNotGoodName/touchwm/internal/geometry"
	"github.com/ItsNotGoodName/touchwm/internal/output"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

type Backend struct {
	conn     *xgb.Conn
	wid      xproto.Window
	gc       xproto.Gcontext
	depth    byte
	output   *output.Output
	renderer *renderer
	frames   uint64
}

func New() (*Backend, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}

	screen := xproto.Setup(conn).DefaultScreen(conn)

	cursor, err := createCursor(conn, leftPtr)
	if err != nil {
		conn.Close()
		return nil, err
	}

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := xproto.CreateWindowChecked(conn, screen.RootDepth,
		wid, screen.Root,
		0, 0, screen.WidthInPixels, screen.HeightInPixels, 0,
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask|xproto.CwCursor, // 1, 2, 3
		[]uint32{
			0, // 1
			xproto.EventMaskStructureNotify | xproto.EventMaskKeyPress |
				xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease |
				xproto.EventMaskButtonMotion, // 2
			uint32(cursor), // 3
		}).Check(); err != nil {
		conn.Close()
		return nil, err
	}

	if err := xproto.MapWindowChecked(conn, wid).Check(); err != nil {
		conn.Close()
		return nil, err
	}

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := xproto.CreateGCChecked(conn, gc, xproto.Drawable(wid), 0, []uint32{}).Check(); err != nil {
		conn.Close()
		return nil, err
	}

	size := geometry.Size{W: int(screen.WidthInPixels), H: int(screen.HeightInPixels)}

	return &Backend{
		conn:     conn,
		wid:      wid,
		gc:       gc,
		depth:    screen.RootDepth,
		output:   output.New("X11-1", size, 1),
		renderer: newRenderer(size),
	}, nil
}

func (b *Backend) SeatName() string {
	return "seat-x11"
}

func (b *Backend) Output() *output.Output {
	return b.output
}

func (b *Backend) Renderer() drawing.Renderer {
	return b.renderer
}

func (b *Backend) Frame() (backend.Frame, uint8, error) {
	resized := b.renderer.resize(b.output.Size())

	// A fresh framebuffer has no usable history.
	age := uint8(1)
	if b.frames == 0 || resized {
		age = 0
	}
	b.frames++

	return &frame{backend: b}, age, nil
}

func (b *Backend) Close() error {
	b.conn.Close()
	return nil
}

// ReceiveEvents implements backend.Backend. The pointer acts as a single
// touch point, button press and release bracket the gesture.
func (b *Backend) ReceiveEvents(ctx context.Context, eventC chan<- backend.Event) {
	send := func(event backend.Event) bool {
		select {
		case <-ctx.Done():
			return false
		case eventC <- event:
			return true
		}
	}

	// The pointer stands in for a touchscreen, announce it as the seat's
	// only device. Real seats report hotplugs here too.
	if !send(backend.EventDeviceAdded{Device: backend.Device{Name: "x11-pointer"}}) {
		return
	}

	for {
		ev, err := b.conn.WaitForEvent()
		if err == nil && ev == nil {
			send(backend.EventClosed{})
			return
		}
		if err != nil {
			slog.Debug("Dropped X event", "error", err)
			continue
		}

		switch ev := ev.(type) {
		case xproto.ButtonPressEvent:
			if ev.Detail != xproto.ButtonIndex1 {
				continue
			}
			if !send(backend.EventTouchDown{Point: geometry.PointF{X: float64(ev.EventX), Y: float64(ev.EventY)}}) {
				return
			}
		case xproto.MotionNotifyEvent:
			if !send(backend.EventTouchMotion{Point: geometry.PointF{X: float64(ev.EventX), Y: float64(ev.EventY)}}) {
				return
			}
		case xproto.ButtonReleaseEvent:
			if ev.Detail != xproto.ButtonIndex1 {
				continue
			}
			if !send(backend.EventTouchUp{}) {
				return
			}
		case xproto.KeyPressEvent:
			if !send(backend.EventKeyPress{Keycode: uint32(ev.Detail)}) {
				return
			}
		case xproto.ConfigureNotifyEvent:
			if ev.Window != b.wid {
				continue
			}
			if !send(backend.EventOutputResized{Size: geometry.Size{W: int(ev.Width), H: int(ev.Height)}}) {
				return
			}
		case xproto.DestroyNotifyEvent:
			send(backend.EventClosed{})
			return
		}
	}
}
