// Package wm is the window management core: it owns all client windows,
// arbitrates layout changes through transactions, and routes input and
// drawing.
package wm

import (
	"log/slog"
	"math"
	"time"

	"github.com/ItsNotGoodName/touchwm/internal/drawing"
	"github.com/ItsNotGoodName/touchwm/internal/geometry"
	"github.com/ItsNotGoodName/touchwm/internal/output"
)

// Windows tracks all known client windows.
//
// The primary and secondary designations reference windows by their stable
// identifier; a window's death never requires registry bookkeeping because
// stale identifiers are pruned lazily at commit and refresh points.
type Windows struct {
	windows     []*Window
	primary     string
	secondary   string
	transaction *Transaction
	overview    *Overview
	view        View
	graphics    graphics
	tuning      Tuning
	startTime   time.Time

	// now is the clock, swapped out by tests.
	now func() time.Time
}

func New(tuning Tuning) *Windows {
	return &Windows{
		tuning:    tuning.withDefaults(),
		startTime: time.Now(),
		now:       time.Now,
	}
}

// SetTuning replaces the gesture tuning, applying to the live overview as
// well.
func (w *Windows) SetTuning(tuning Tuning) {
	w.tuning = tuning.withDefaults()
	if w.overview != nil {
		w.overview.tuning = w.tuning
	}
}

// Add inserts a new window and stages it as primary. The previous primary
// drops into the secondary slot when that slot is free.
func (w *Windows) Add(surface Toplevel, o *output.Output) *Window {
	window := NewWindow(surface)
	w.windows = append(w.windows, window)
	w.setPrimary(o, len(w.windows)-1)
	return window
}

// Find returns the window owning the given root surface.
func (w *Windows) Find(root *Surface) *Window {
	for _, window := range w.windows {
		if window.surface.Surface() == root {
			return window
		}
	}
	return nil
}

func (w *Windows) lookup(id string) *Window {
	if id == "" {
		return nil
	}
	for _, window := range w.windows {
		if window.id == id {
			return window
		}
	}
	return nil
}

func (w *Windows) index(id string) int {
	if id == "" {
		return -1
	}
	for i, window := range w.windows {
		if window.id == id {
			return i
		}
	}
	return -1
}

// withVisible runs fn for the currently visible windows.
func (w *Windows) withVisible(fn func(window *Window)) {
	if primary := w.lookup(w.primary); primary != nil {
		fn(primary)
	}
	if secondary := w.lookup(w.secondary); secondary != nil {
		fn(secondary)
	}
}

// Draw renders the current window state.
//
// This is the per frame entry point; it resolves the pending transaction
// first so a frame always observes fully committed state.
func (w *Windows) Draw(renderer drawing.Renderer, frame drawing.Frame, o *output.Output, bufferAge uint8) {
	w.updateTransaction()

	switch {
	case w.view == ViewWorkspace || w.overview == nil:
		w.withVisible(func(window *Window) {
			window.Draw(renderer, frame, o, 1, nil, bufferAge)
		})
	case w.overview.floatingPosition != nil:
		w.withVisible(func(window *Window) {
			window.Draw(renderer, frame, o, 1, nil, bufferAge)
		})
		w.overview.drawDragAndDrop(renderer, frame, o, &w.graphics, w.windows, bufferAge)
	default:
		w.overview.draw(renderer, frame, o, w.windows, bufferAge, w.now())
	}
}

// RequestFrames delivers frame done callbacks to all visible windows.
func (w *Windows) RequestFrames() {
	if w.view == ViewWorkspace {
		runtime := w.Runtime()
		w.withVisible(func(window *Window) {
			window.RequestFrame(runtime)
		})
	}
}

// Refresh sweeps dead windows and fires the overview hold timer. Call it
// after any signal that a client may have died.
func (w *Windows) Refresh(o *output.Output) {
	for _, window := range w.windows {
		if !window.surface.Alive() {
			w.refreshVisible(o)
			break
		}
	}

	// Lift the focused window into drag and drop placement on long press.
	if w.view == ViewOverview && w.overview != nil {
		overview := w.overview
		if overview.holdStart != nil && w.now().Sub(*overview.holdStart) >= w.tuning.HoldDuration {
			overview.floatingPosition = &geometry.PointF{}
			overview.holdStart = nil
		}
	}
}

// refreshVisible reaps dead visible windows, reordering and resizing the
// remaining ones through a transaction.
func (w *Windows) refreshVisible(o *output.Output) {
	transaction := w.StartTransaction()

	// Drop dead primary/secondary designations.
	if secondary := w.lookup(transaction.secondary); secondary == nil || !secondary.surface.Alive() {
		transaction.secondary = ""
	}
	if primary := w.lookup(transaction.primary); primary == nil || !primary.surface.Alive() {
		transaction.primary = transaction.secondary
		transaction.secondary = ""
	}

	w.updateDimensions(transaction, o)
}

// Resize restages visible window dimensions after an output change.
func (w *Windows) Resize(o *output.Output) {
	w.updateDimensions(w.StartTransaction(), o)
}

// ToggleView stages a switch between workspace and overview.
func (w *Windows) ToggleView() {
	next := ViewOverview
	if w.view == ViewOverview {
		next = ViewWorkspace
	}
	w.StartTransaction().SetView(next)
}

// setView applies a committed view change.
func (w *Windows) setView(view View) {
	w.view = view
	if view == ViewOverview {
		if w.overview == nil {
			w.overview = newOverview(w.tuning)
		}
	} else {
		w.overview = nil
	}
}

// OnTouchStart handles the start of touch input.
func (w *Windows) OnTouchStart(o *output.Output, point geometry.PointF) {
	if w.view != ViewOverview || w.overview == nil {
		return
	}
	overview := w.overview

	// Touch inside the focused window arms the hold timer for staging it
	// as the drag and drop candidate.
	if len(w.windows) > 0 {
		bounds := overview.focusedBounds(o.Size(), len(w.windows))
		if bounds.Contains(point.Round()) {
			now := w.now()
			overview.holdStart = &now
		}
	}

	overview.lastDragPoint = point
}

// OnTap handles a quick touch.
func (w *Windows) OnTap(o *output.Output, point geometry.PointF) {
	if w.view != ViewOverview || w.overview == nil {
		return
	}
	overview := w.overview

	overview.holdStart = nil

	if len(w.windows) == 0 {
		return
	}

	// Tap inside the focused window opens it as primary.
	bounds := overview.focusedBounds(o.Size(), len(w.windows))
	if bounds.Contains(point.Round()) {
		index := overview.focusedIndex(len(w.windows))

		// Clear secondary unless *only* primary is empty.
		hadPrimary := w.lookup(w.primary) != nil
		w.setPrimary(o, index)
		if hadPrimary {
			w.setSecondary(o, -1)
		}

		w.ToggleView()
	}
}

// OnDrag handles a touch drag.
func (w *Windows) OnDrag(o *output.Output, point geometry.PointF) {
	if w.view != ViewOverview || w.overview == nil {
		return
	}
	overview := w.overview

	delta := point.Sub(overview.lastDragPoint)
	overview.lastDragPoint = point

	// A lifted window follows the finger directly, bypassing paging and
	// close handling.
	if overview.floatingPosition != nil {
		*overview.floatingPosition = overview.floatingPosition.Add(delta)
		return
	}

	// First movement latches the drag axis until release.
	if overview.dragDirection == nil {
		direction := DirectionVertical
		if math.Abs(delta.X) >= math.Abs(delta.Y) {
			direction = DirectionHorizontal
		}
		overview.dragDirection = &direction
	}

	switch *overview.dragDirection {
	case DirectionHorizontal:
		overview.xOffset += delta.X / w.tuning.HorizontalSensitivity
		overview.lastOverdragStep = nil
		overview.holdStart = nil
		overview.yOffset = 0
	case DirectionVertical:
		if overview.closeReleasePending {
			return
		}
		overview.lastOverdragStep = nil
		overview.holdStart = nil
		overview.yOffset += delta.Y

		// Close the window once the offset surpassed the threshold.
		closeDistance := float64(o.Size().H) * w.tuning.CloseDistance
		if math.Abs(overview.yOffset) >= closeDistance && len(w.windows) > 0 {
			index := overview.focusedIndex(len(w.windows))
			window := w.windows[index]
			if err := window.surface.SendClose(); err != nil {
				slog.Debug("Close sent to dead window", "window", window.id, "error", err)
			}
			w.windows = append(w.windows[:index], w.windows[index+1:]...)

			now := w.now()
			overview.lastOverdragStep = &now
			overview.closeReleasePending = true
			overview.yOffset = 0

			w.refreshVisible(o)
		}
	}
}

// OnDragRelease handles the end of a touch drag.
func (w *Windows) OnDragRelease(o *output.Output) {
	if w.view == ViewOverview && w.overview != nil && w.overview.floatingPosition != nil && len(w.windows) > 0 {
		overview := w.overview
		height := float64(o.Size().H)
		if overview.lastDragPoint.Y < height/3 {
			index := overview.focusedIndex(len(w.windows))
			w.setPrimary(o, index)
			w.ToggleView()
			return
		} else if overview.lastDragPoint.Y >= height/1.5 {
			index := overview.focusedIndex(len(w.windows))
			w.setSecondary(o, index)
			w.ToggleView()
			return
		}
	}

	if w.view == ViewOverview && w.overview != nil {
		now := w.now()
		w.overview.lastOverdragStep = &now
		w.overview.closeReleasePending = false
		w.overview.floatingPosition = nil
		w.overview.dragDirection = nil
	}
}

// Runtime is the compositor uptime in milliseconds.
func (w *Windows) Runtime() uint32 {
	return uint32(w.now().Sub(w.startTime).Milliseconds())
}

// setPrimary stages the window at index as the primary, -1 for none.
func (w *Windows) setPrimary(o *output.Output, index int) {
	transaction := w.StartTransaction()

	var id string
	if index >= 0 {
		id = w.windows[index].id
	} else {
		// Promote the staged secondary when the primary is cleared.
		id = transaction.secondary
		transaction.secondary = ""
	}

	if id == transaction.primary {
		return
	}

	if index >= 0 {
		w.windows[index].enter(o)
	}

	// Clear secondary if it became the new primary.
	if id != "" && id == transaction.secondary {
		transaction.secondary = ""
	}

	// Demote the old primary to secondary if that slot is empty, otherwise
	// the old primary leaves the output.
	old := transaction.primary
	transaction.primary = id
	if transaction.secondary == "" {
		transaction.secondary = old
	} else if primary := w.lookup(old); primary != nil {
		primary.leave(transaction, o)
	}

	w.updateDimensions(transaction, o)
}

// setSecondary stages the window at index as the secondary, -1 for none.
func (w *Windows) setSecondary(o *output.Output, index int) {
	transaction := w.StartTransaction()

	var id string
	if index >= 0 {
		id = w.windows[index].id
	}

	// Update the output's visible windows.
	if secondary := w.lookup(transaction.secondary); secondary != nil {
		secondary.leave(transaction, o)
	}
	if index >= 0 {
		w.windows[index].enter(o)
	}

	// Clear primary if it became the new secondary.
	if id != "" && id == transaction.primary {
		transaction.primary = ""
	}

	transaction.secondary = id
	w.updateDimensions(transaction, o)
}

// ActiveView returns the committed view.
func (w *Windows) ActiveView() View {
	return w.view
}

// PrimaryWindow returns the committed primary window, nil if there is none.
func (w *Windows) PrimaryWindow() *Window {
	return w.lookup(w.primary)
}

// SecondaryWindow returns the committed secondary window, nil if there is
// none.
func (w *Windows) SecondaryWindow() *Window {
	return w.lookup(w.secondary)
}

// WindowInfo is a read only snapshot of one window.
type WindowInfo struct {
	ID        string
	Rectangle geometry.Rect
	Visible   bool
	Primary   bool
	Secondary bool
}

// Snapshot returns a read only copy of the current window state.
func (w *Windows) Snapshot() []WindowInfo {
	infos := make([]WindowInfo, 0, len(w.windows))
	for _, window := range w.windows {
		infos = append(infos, WindowInfo{
			ID:        window.id,
			Rectangle: window.rectangle,
			Visible:   window.visible,
			Primary:   window.id == w.primary,
			Secondary: window.id == w.secondary,
		})
	}
	return infos
}
