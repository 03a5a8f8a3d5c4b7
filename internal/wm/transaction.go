package wm

import (
	"time"

	"github.com/ItsNotGoodName/touchwm/internal/output"
)

// View is the active window arrangement.
type View int

const (
	// ViewWorkspace composites the primary and secondary windows.
	ViewWorkspace View = iota
	// ViewOverview makes all windows browsable.
	ViewOverview
)

func (v View) String() string {
	switch v {
	case ViewOverview:
		return "overview"
	default:
		return "workspace"
	}
}

// Transaction stages atomic changes to the window arrangement.
//
// It captures the primary/secondary designation at creation time and is
// committed either once every participating window acked its new size or
// once MaxTransactionDuration elapsed, whichever comes first.
type Transaction struct {
	primary   string
	secondary string
	view      *View
	start     time.Time
}

func newTransaction(now time.Time, w *Windows) *Transaction {
	return &Transaction{
		primary:   w.primary,
		secondary: w.secondary,
		start:     now,
	}
}

// SetView stages a view change.
func (t *Transaction) SetView(view View) {
	t.view = &view
}

// StartTransaction creates a new transaction, or amends the active one.
func (w *Windows) StartTransaction() *Transaction {
	if w.transaction == nil {
		w.transaction = newTransaction(w.now(), w)
	}
	return w.transaction
}

// updateTransaction attempts to commit the pending transaction.
//
// Before the deadline an unfinished transaction blocks and live state stays
// untouched; afterwards it is force committed so an unresponsive client
// cannot wedge the compositor.
func (w *Windows) updateTransaction() {
	transaction := w.transaction
	if transaction == nil {
		return
	}

	if w.now().Sub(transaction.start) <= MaxTransactionDuration {
		for _, window := range w.windows {
			if window.transaction != nil && window.AckedSize != window.transaction.rectangle.Size {
				return
			}
		}
	}

	// Reap dead windows and apply the staged per-window state.
	alive := w.windows[:0]
	for _, window := range w.windows {
		if !window.surface.Alive() {
			continue
		}
		window.applyTransaction()
		alive = append(alive, window)
	}
	for i := len(alive); i < len(w.windows); i++ {
		w.windows[i] = nil
	}
	w.windows = alive

	// Windows staged while their client died resolve to nothing.
	if w.lookup(transaction.primary) == nil {
		transaction.primary = ""
	}
	if w.lookup(transaction.secondary) == nil {
		transaction.secondary = ""
	}

	// Primary and secondary always lead the window list.
	if i := w.index(transaction.primary); i > 0 {
		w.windows[0], w.windows[i] = w.windows[i], w.windows[0]
	}
	if i := w.index(transaction.secondary); i > 1 {
		w.windows[1], w.windows[i] = w.windows[i], w.windows[1]
	}

	if transaction.view != nil {
		w.setView(*transaction.view)
	}
	w.primary = transaction.primary
	w.secondary = transaction.secondary
	w.transaction = nil
}

// updateDimensions restages the primary/secondary rectangles of the
// transaction against the output layout.
func (w *Windows) updateDimensions(transaction *Transaction, o *output.Output) {
	if primary := w.lookup(transaction.primary); primary != nil {
		secondaryVisible := w.lookup(transaction.secondary) != nil
		primary.updateDimensions(transaction, o.PrimaryRectangle(secondaryVisible))
	}

	if secondary := w.lookup(transaction.secondary); secondary != nil {
		secondary.updateDimensions(transaction, o.SecondaryRectangle())
	}
}
