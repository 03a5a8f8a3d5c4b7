package wm

import (
	"testing"
	"time"
)

func TestOverviewXPosition(t *testing.T) {
	testCases := []struct {
		name         string
		fgPercentage float64
		bgPercentage float64
		want         [5]int
	}{
		{
			name:         "HalfHalf",
			fgPercentage: 0.5,
			bgPercentage: 0.5,
			want:         [5]int{6, 13, 25, 37, 44},
		},
		{
			name:         "HalfThreeQuarters",
			fgPercentage: 0.5,
			bgPercentage: 0.75,
			want:         [5]int{2, 6, 25, 44, 48},
		},
		{
			name:         "ThreeQuartersThreeQuarters",
			fgPercentage: 0.75,
			bgPercentage: 0.75,
			want:         [5]int{1, 3, 13, 47, 49},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for i, position := range []float64{-2, -1, 0, 1, 2} {
				got := overviewXPosition(tc.fgPercentage, tc.bgPercentage, 100, 50, position)
				if got != tc.want[i] {
					t.Errorf("position %v: got %d, want %d", position, got, tc.want[i])
				}
			}
		})
	}
}

func TestOverviewFocusedIndex(t *testing.T) {
	testCases := []struct {
		name        string
		xOffset     float64
		windowCount int
		want        int
	}{
		{name: "Zero", xOffset: 0, windowCount: 3, want: 0},
		{name: "RoundsToNearest", xOffset: -1.4, windowCount: 3, want: 1},
		{name: "RoundsUp", xOffset: -1.6, windowCount: 3, want: 2},
		{name: "ClampsToLastWindow", xOffset: -5, windowCount: 3, want: 2},
		{name: "PositiveOverdragStaysFirst", xOffset: 2, windowCount: 3, want: 0},
		{name: "SingleWindow", xOffset: -3, windowCount: 1, want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := newOverview(DefaultTuning())
			o.xOffset = tc.xOffset
			if got := o.focusedIndex(tc.windowCount); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestOverviewClampOffsetLimits(t *testing.T) {
	o := newOverview(DefaultTuning())
	now := time.Unix(0, 0)

	o.xOffset = 10
	o.clampOffset(4, now)
	if got, want := o.xOffset, OverdragLimit; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	o.xOffset = -10
	o.clampOffset(4, now)
	if got, want := o.xOffset, -3-OverdragLimit; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestOverviewClampOffsetBounceBack(t *testing.T) {
	o := newOverview(DefaultTuning())
	start := time.Unix(0, 0)
	o.xOffset = 2
	o.lastOverdragStep = &start

	// One step of the decay, 25ms at the default speed moves one unit.
	o.clampOffset(3, start.Add(25*time.Millisecond))
	if got, want := o.xOffset, 1.; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// The decay never overshoots past the resting position.
	o.clampOffset(3, start.Add(200*time.Millisecond))
	if got, want := o.xOffset, 0.; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestOverviewClampOffsetCloseCancel(t *testing.T) {
	o := newOverview(DefaultTuning())
	start := time.Unix(0, 0)
	o.yOffset = -10
	o.lastOverdragStep = &start

	o.clampOffset(3, start.Add(2*time.Millisecond))
	if o.yOffset <= -10 || o.yOffset > 0 {
		t.Errorf("got %v, want a value in (-10, 0]", o.yOffset)
	}

	o.clampOffset(3, start.Add(time.Second))
	if got, want := o.yOffset, 0.; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestOverviewDrawOrder(t *testing.T) {
	testCases := []struct {
		name        string
		xOffset     float64
		windowCount int
		want        []placement
	}{
		{
			name:        "AllPositive",
			xOffset:     0,
			windowCount: 3,
			want: []placement{
				{position: 2, index: 2},
				{position: 1, index: 1},
				{position: 0, index: 0},
			},
		},
		{
			name:        "Centered",
			xOffset:     -2,
			windowCount: 5,
			want: []placement{
				{position: -2, index: 0},
				{position: -1, index: 1},
				{position: 2, index: 4},
				{position: 1, index: 3},
				{position: 0, index: 2},
			},
		},
		{
			name:        "LastFocused",
			xOffset:     -2,
			windowCount: 3,
			want: []placement{
				{position: -2, index: 0},
				{position: -1, index: 1},
				{position: 0, index: 2},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := newOverview(DefaultTuning())
			o.xOffset = tc.xOffset
			got := o.drawOrder(tc.windowCount)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d placements, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("placement %d: got %+v, want %+v", i, got[i], tc.want[i])
				}
			}
		})
	}
}
