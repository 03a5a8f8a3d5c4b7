// Package input digests raw touch events into the discrete gestures the
// window manager consumes.
package input

import (
	"math"
	"time"

	"github.com/ItsNotGoodName/touchwm/internal/geometry"
)

const (
	// MaxTapDuration is the longest press still reported as a tap.
	MaxTapDuration = 300 * time.Millisecond

	// MaxTapDistance is the furthest a touch may travel and still be
	// reported as a tap.
	MaxTapDistance = 20.
)

// Handler receives recognized gestures.
type Handler interface {
	OnTouchStart(point geometry.PointF)
	OnTap(point geometry.PointF)
	OnDrag(point geometry.PointF)
	OnDragRelease()
}

// TouchState tracks one touch sequence and reports it as either a tap or a
// drag, first-threshold-wins.
type TouchState struct {
	handler Handler
	now     func() time.Time

	active     bool
	isDrag     bool
	start      time.Time
	startPoint geometry.PointF
}

func NewTouchState(handler Handler) *TouchState {
	return &TouchState{
		handler: handler,
		now:     time.Now,
	}
}

// Down starts a new touch sequence.
func (t *TouchState) Down(point geometry.PointF) {
	t.active = true
	t.isDrag = false
	t.start = t.now()
	t.startPoint = point
	t.handler.OnTouchStart(point)
}

// Motion reports finger movement. Movement beyond MaxTapDistance promotes
// the sequence into a drag.
func (t *TouchState) Motion(point geometry.PointF) {
	if !t.active {
		return
	}

	if !t.isDrag {
		delta := point.Sub(t.startPoint)
		if math.Hypot(delta.X, delta.Y) <= MaxTapDistance {
			return
		}
		t.isDrag = true
	}

	t.handler.OnDrag(point)
}

// Up ends the touch sequence.
func (t *TouchState) Up() {
	if !t.active {
		return
	}
	t.active = false

	if !t.isDrag && t.now().Sub(t.start) <= MaxTapDuration {
		t.handler.OnTap(t.startPoint)
		return
	}
	t.handler.OnDragRelease()
}
