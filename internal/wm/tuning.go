package wm

import "time"

const (
	// MaxTransactionDuration is the deadline after which an unacked
	// transaction is force committed.
	MaxTransactionDuration = 200 * time.Millisecond

	// OverviewHorizontalSensitivity is the drag distance of one overview
	// page.
	OverviewHorizontalSensitivity = 250.

	// FgOverviewPercentage is the share of the output width reserved for
	// the focused window in the overview.
	FgOverviewPercentage = 0.75

	// BgOverviewPercentage is the share of remaining space reserved for
	// each further background window in the overview.
	BgOverviewPercentage = 0.5

	// OverviewCloseDistance is the share of the output height a window
	// must be dragged before it is closed.
	OverviewCloseDistance = 0.5

	// CloseCancelAnimationSpeed is the animation speed for the return
	// from a cancelled close, lower is faster.
	CloseCancelAnimationSpeed = 0.3

	// OverdragAnimationSpeed is the animation speed for the return from
	// overdrag, lower is faster.
	OverdragAnimationSpeed = 25.

	// OverdragLimit is the maximum overdrag beyond the page range.
	OverdragLimit = 3.

	// HoldDuration is the long press duration that lifts the focused
	// overview window into drag and drop placement.
	HoldDuration = 300 * time.Millisecond
)

// Tuning are the gesture parameters of the overview. The zero value of a
// field falls back to its default.
type Tuning struct {
	HorizontalSensitivity     float64
	OverdragLimit             float64
	OverdragAnimationSpeed    float64
	CloseCancelAnimationSpeed float64
	CloseDistance             float64
	HoldDuration              time.Duration
}

func DefaultTuning() Tuning {
	return Tuning{
		HorizontalSensitivity:     OverviewHorizontalSensitivity,
		OverdragLimit:             OverdragLimit,
		OverdragAnimationSpeed:    OverdragAnimationSpeed,
		CloseCancelAnimationSpeed: CloseCancelAnimationSpeed,
		CloseDistance:             OverviewCloseDistance,
		HoldDuration:              HoldDuration,
	}
}

func (t Tuning) withDefaults() Tuning {
	d := DefaultTuning()
	if t.HorizontalSensitivity <= 0 {
		t.HorizontalSensitivity = d.HorizontalSensitivity
	}
	if t.OverdragLimit <= 0 {
		t.OverdragLimit = d.OverdragLimit
	}
	if t.OverdragAnimationSpeed <= 0 {
		t.OverdragAnimationSpeed = d.OverdragAnimationSpeed
	}
	if t.CloseCancelAnimationSpeed <= 0 {
		t.CloseCancelAnimationSpeed = d.CloseCancelAnimationSpeed
	}
	if t.CloseDistance <= 0 {
		t.CloseDistance = d.CloseDistance
	}
	if t.HoldDuration <= 0 {
		t.HoldDuration = d.HoldDuration
	}
	return t
}
