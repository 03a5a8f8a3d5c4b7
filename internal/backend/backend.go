// Package backend abstracts the display and input stack the compositor runs
// on top of.
package backend

import (
	"context"

	"github.com/ItsNotGoodName/touchwm/internal/drawing"
	"github.com/ItsNotGoodName/touchwm/internal/geometry"
	"github.com/ItsNotGoodName/touchwm/internal/output"
)

// Backend is a display and input provider. All methods are called from the
// compositor loop except ReceiveEvents which runs in its own goroutine.
type Backend interface {
	SeatName() string
	Output() *output.Output
	Renderer() drawing.Renderer
	// Frame begins rendering a frame. Age is the buffer age of the
	// returned frame, 0 when unknown.
	Frame() (Frame, uint8, error)
	// ReceiveEvents sends backend events to eventC until ctx is done.
	ReceiveEvents(ctx context.Context, eventC chan<- Event)
	Close() error
}

// Frame is an in progress frame. Submit presents it, whether or not drawing
// happened.
type Frame interface {
	drawing.Frame
	Submit(damage []geometry.RectF) error
}

// Device identifies one input device attached to the seat.
type Device struct {
	Name string
}

// Event is a backend event. Events trigger the compositor loop.
type Event interface{}

type (
	EventDeviceAdded struct {
		Device Device
	}
	EventDeviceChanged struct {
		Device Device
	}
	EventDeviceRemoved struct {
		Device Device
	}
	EventTouchDown struct {
		Point geometry.PointF
	}
	EventTouchMotion struct {
		Point geometry.PointF
	}
	EventTouchUp struct{}
	EventKeyPress struct {
		Keycode uint32
	}
	EventOutputResized struct {
		Size geometry.Size
	}
	EventClosed struct{}
)
