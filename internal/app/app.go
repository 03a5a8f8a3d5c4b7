// Package app runs the compositor event loop.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/ItsNotGoodName/touchwm/internal/backend"
	"github.com/ItsNotGoodName/touchwm/internal/bus"
	"github.com/ItsNotGoodName/touchwm/internal/config"
	"github.com/ItsNotGoodName/touchwm/internal/geometry"
	"github.com/ItsNotGoodName/touchwm/internal/input"
	"github.com/ItsNotGoodName/touchwm/internal/wm"
	"github.com/thejerf/suture/v4"
)

// RenderInterval paces the render loop.
const RenderInterval = 5 * time.Millisecond

// X11 keycode for spacebar.
const keycodeSpace = 65

func New(bknd backend.Backend, store config.Store) (*Compositor, error) {
	cfg, err := store.GetConfig()
	if err != nil {
		return nil, err
	}

	windows := wm.New(cfg.Gestures.Tuning())

	c := &Compositor{
		backend:  bknd,
		windows:  windows,
		commandC: make(chan func(c *Compositor), 8),
		view:     NewSignal(wm.ViewWorkspace),
	}
	c.touch = input.NewTouchState(gestureHandler{c: c})
	c.view.AddEffect(func() {
		slog.Debug("View changed", "view", c.view.V.String())
	})

	bus.Subscribe("app.Compositor", func(ctx context.Context, event config.EventConfigChanged) error {
		c.Dispatch(func(c *Compositor) {
			c.windows.SetTuning(event.Config.Gestures.Tuning())
		})
		return nil
	})

	return c, nil
}

// Compositor owns all window state. State is only touched from the Serve
// goroutine, other goroutines go through Dispatch or Do.
type Compositor struct {
	backend  backend.Backend
	windows  *wm.Windows
	touch    *input.TouchState
	commandC chan func(c *Compositor)
	view     *Signal[wm.View]
	devices  []backend.Device
	demos    []*demoClient
}

func (*Compositor) String() string {
	return "app.Compositor"
}

func (c *Compositor) Serve(ctx context.Context) error {
	defer c.backend.Close()

	eventC := make(chan backend.Event, 8)
	go c.backend.ReceiveEvents(ctx, eventC)

	slog.Info("Compositor started",
		"seat", c.backend.SeatName(),
		"output", c.backend.Output().Name(),
		"size", c.backend.Output().Size())

	ticker := time.NewTicker(RenderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-c.commandC:
			fn(c)
		case event := <-eventC:
			if err := c.handleEvent(event); err != nil {
				return err
			}
		case <-ticker.C:
			if err := c.render(); err != nil {
				slog.Error("Failed to render frame", "error", err)
			}
		}
	}
}

func (c *Compositor) handleEvent(event backend.Event) error {
	o := c.backend.Output()

	switch event := event.(type) {
	case backend.EventDeviceAdded:
		c.devices = append(c.devices, event.Device)
		slog.Info("Device added", "seat", c.backend.SeatName(), "device", event.Device.Name)
	case backend.EventDeviceChanged:
		slog.Info("Device changed", "device", event.Device.Name)
	case backend.EventDeviceRemoved:
		for i, device := range c.devices {
			if device == event.Device {
				c.devices = append(c.devices[:i], c.devices[i+1:]...)
				break
			}
		}
		slog.Info("Device removed", "device", event.Device.Name)
	case backend.EventTouchDown:
		c.touch.Down(event.Point)
	case backend.EventTouchMotion:
		c.touch.Motion(event.Point)
	case backend.EventTouchUp:
		c.touch.Up()
	case backend.EventKeyPress:
		if event.Keycode == keycodeSpace {
			c.spawnDemo()
		}
	case backend.EventOutputResized:
		o.Resize(event.Size)
		c.windows.Resize(o)
	case backend.EventClosed:
		slog.Info("Display closed")
		return suture.ErrTerminateSupervisorTree
	}
	return nil
}

func (c *Compositor) render() error {
	o := c.backend.Output()

	for _, demo := range c.demos {
		demo.update(c.windows)
	}

	c.windows.Refresh(o)

	frame, bufferAge, err := c.backend.Frame()
	if err != nil {
		return err
	}

	c.windows.Draw(c.backend.Renderer(), frame, o, bufferAge)
	if err := frame.Submit(nil); err != nil {
		return err
	}

	c.windows.RequestFrames()
	c.view.SetValue(c.windows.ActiveView())
	return nil
}

func (c *Compositor) spawnDemo() {
	demo := newDemoClient()
	window := c.windows.Add(demo, c.backend.Output())

	// First configure so the client knows its size before the first
	// commit.
	window.InitialConfigureSent = true
	window.Reconfigure()

	c.demos = append(c.demos, demo)
	slog.Info("Spawned demo window", "window", window.ID())
}

// Dispatch queues fn onto the compositor loop without waiting.
func (c *Compositor) Dispatch(fn func(c *Compositor)) {
	c.commandC <- fn
}

// Do runs fn on the compositor loop and waits for it to finish.
func (c *Compositor) Do(ctx context.Context, fn func(w *wm.Windows)) error {
	doneC := make(chan struct{})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case c.commandC <- func(c *Compositor) {
		fn(c.windows)
		close(doneC)
	}:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-doneC:
		return nil
	}
}

// gestureHandler binds recognized gestures to the window manager.
type gestureHandler struct {
	c *Compositor
}

func (g gestureHandler) OnTouchStart(point geometry.PointF) {
	g.c.windows.OnTouchStart(g.c.backend.Output(), point)
}

func (g gestureHandler) OnTap(point geometry.PointF) {
	g.c.windows.OnTap(g.c.backend.Output(), point)
}

func (g gestureHandler) OnDrag(point geometry.PointF) {
	g.c.windows.OnDrag(g.c.backend.Output(), point)
}

func (g gestureHandler) OnDragRelease() {
	g.c.windows.OnDragRelease(g.c.backend.Output())
}
