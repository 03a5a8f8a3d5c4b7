package wm

import (
	"math"
	"time"

	"github.com/ItsNotGoodName/touchwm/internal/drawing"
	"github.com/ItsNotGoodName/touchwm/internal/geometry"
	"github.com/ItsNotGoodName/touchwm/internal/output"
)

// Direction is the latched axis of an overview drag.
type Direction int

const (
	DirectionHorizontal Direction = iota
	DirectionVertical
)

// Overview is the gesture state of the multi window picker.
//
// The integer part of xOffset selects the focused window, the fractional
// part animates between pages. yOffset accumulates a vertical close drag.
type Overview struct {
	xOffset float64
	yOffset float64

	// floatingPosition is set while a window is lifted for drop target
	// placement.
	floatingPosition *geometry.PointF

	lastDragPoint geometry.PointF

	// lastOverdragStep drives the bounce back animation while set.
	lastOverdragStep *time.Time

	dragDirection       *Direction
	closeReleasePending bool
	holdStart           *time.Time

	tuning Tuning
}

func newOverview(tuning Tuning) *Overview {
	return &Overview{tuning: tuning}
}

// focusedIndex is the index of the currently focused window.
func (o *Overview) focusedIndex(windowCount int) int {
	index := int(math.Round(math.Abs(math.Min(o.xOffset, 0))))
	return min(index, windowCount-1)
}

// focusedBounds is the screen area of the focused window.
func (o *Overview) focusedBounds(outputSize geometry.Size, windowCount int) geometry.Rect {
	windowSize := outputSize.ScaleF(FgOverviewPercentage)
	x := overviewXPosition(
		FgOverviewPercentage,
		BgOverviewPercentage,
		outputSize.W,
		windowSize.W,
		float64(o.focusedIndex(windowCount))+o.xOffset,
	)
	y := (outputSize.H - windowSize.H) / 2
	return geometry.Rect{Loc: geometry.Point{X: x, Y: y}, Size: windowSize}
}

// clampOffset clamps the X/Y offsets and advances the bounce back
// animation.
//
// The decay is framerate independent and monotonic, stopping exactly at
// the clamp boundary rather than overshooting.
func (o *Overview) clampOffset(windowCount int, now time.Time) {
	// Limit maximum overdrag.
	minOffset := -float64(windowCount) + 1
	o.xOffset = math.Max(minOffset-o.tuning.OverdragLimit, math.Min(o.xOffset, o.tuning.OverdragLimit))

	if o.lastOverdragStep == nil {
		return
	}

	// Handle bounce back from overdrag and from a cancelled close.
	delta := float64(now.Sub(*o.lastOverdragStep).Milliseconds())
	overdragDelta := delta / o.tuning.OverdragAnimationSpeed
	closeDelta := delta / o.tuning.CloseCancelAnimationSpeed

	if o.xOffset > 0 {
		o.xOffset -= math.Min(overdragDelta, o.xOffset)
	} else if o.xOffset < minOffset {
		o.xOffset = math.Min(o.xOffset+overdragDelta, minOffset)
	}

	o.yOffset -= math.Copysign(math.Min(closeDelta, math.Abs(o.yOffset)), o.yOffset)

	step := now
	o.lastOverdragStep = &step
}

// placement pairs a window index with its overview position relative to
// the focused slot.
type placement struct {
	position int
	index    int
}

// drawOrder yields windows so that outer windows are drawn first and inner
// windows overlap them correctly: negative positions ascending, then
// positive positions descending.
func (o *Overview) drawOrder(windowCount int) []placement {
	minInc := int(math.Round(o.xOffset))
	maxExc := windowCount + minInc

	var order []placement
	index := 0
	for position := minInc; position < 0 && index < windowCount; position++ {
		order = append(order, placement{position: position, index: index})
		index++
	}

	position := max(minInc, 0)
	index = max(-minInc, 0)
	var positive []placement
	for ; position < maxExc && index < windowCount; position, index = position+1, index+1 {
		positive = append(positive, placement{position: position, index: index})
	}
	for i := len(positive) - 1; i >= 0; i-- {
		order = append(order, positive[i])
	}

	return order
}

// draw renders the overview.
func (o *Overview) draw(renderer drawing.Renderer, frame drawing.Frame, out *output.Output, windows []*Window, bufferAge uint8, now time.Time) {
	o.clampOffset(len(windows), now)

	outputSize := out.Size()
	maxSize := outputSize.ScaleF(FgOverviewPercentage)
	fract := o.xOffset - math.Trunc(o.xOffset)
	minInc := int(math.Round(o.xOffset))

	for _, p := range o.drawOrder(len(windows)) {
		window := windows[p.index]

		// Shrink windows wider than the focused slot.
		scale := 1.
		if geom := window.surface.Geometry(); geom.Size.W > 0 {
			scale = math.Min(float64(maxSize.W)/float64(geom.Size.W), 1)
		}

		x := overviewXPosition(
			FgOverviewPercentage,
			BgOverviewPercentage,
			outputSize.W,
			maxSize.W,
			float64(p.position)-math.Round(fract)+fract,
		)
		y := (outputSize.H - maxSize.H) / 2
		bounds := geometry.Rect{Loc: geometry.Point{X: x, Y: y}, Size: maxSize}

		// Offset the focused window while it is dragged toward closing.
		if p.position == max(minInc, 0) {
			bounds.Loc.Y += int(math.Round(o.yOffset))
		}

		window.Draw(renderer, frame, out, scale, &bounds, bufferAge)
	}
}

// drawDragAndDrop renders the lifted window and the drop target areas.
func (o *Overview) drawDragAndDrop(renderer drawing.Renderer, frame drawing.Frame, out *output.Output, g *graphics, windows []*Window, bufferAge uint8) {
	if len(windows) == 0 || o.floatingPosition == nil {
		return
	}

	outputSize := out.Size()

	// Render the lifted window at the drag position.
	scale := 0.8
	size := outputSize.ScaleF(scale)
	loc := geometry.Point{
		X: outputSize.W/2 - size.W/2 + int(math.Round(o.floatingPosition.X)),
		Y: outputSize.H/2 - size.H/2 + int(math.Round(o.floatingPosition.Y)),
	}
	bounds := geometry.Rect{Loc: loc, Size: size}
	index := o.focusedIndex(len(windows))
	windows[index].Draw(renderer, frame, out, scale, &bounds, bufferAge)

	if err := g.ensure(renderer, out.Scale()); err != nil {
		return
	}

	// Drop target bands; the hovered one is highlighted.
	bandSize := geometry.Size{W: outputSize.W, H: outputSize.H / 3}
	targetScale := float64(max(outputSize.W, outputSize.H))

	top := geometry.Rect{Size: bandSize}
	if o.lastDragPoint.Y < float64(bandSize.H) {
		g.activeDropTarget.DrawAt(frame, out.Scale(), top, targetScale, 0)
	} else {
		g.dropTarget.DrawAt(frame, out.Scale(), top, targetScale, 0)
	}

	bottom := geometry.Rect{
		Loc:  geometry.Point{Y: outputSize.H - bandSize.H},
		Size: bandSize,
	}
	if o.lastDragPoint.Y >= float64(bottom.Loc.Y) {
		g.activeDropTarget.DrawAt(frame, out.Scale(), bottom, targetScale, 0)
	} else {
		g.dropTarget.DrawAt(frame, out.Scale(), bottom, targetScale, 0)
	}
}

// overviewXPosition calculates the X coordinate of a window in the
// overview from its position relative to the focused slot.
//
// Background space falls off geometrically toward the edges: each step
// away from the center gets (1 - bgPercentage) of the remaining space.
func overviewXPosition(fgPercentage, bgPercentage float64, outputWidth, windowWidth int, position float64) int {
	bgSpaceSize := float64(outputWidth) * (1 - fgPercentage) * 0.5
	nextSpaceSize := int(math.Round(bgSpaceSize * math.Pow(1-bgPercentage, math.Abs(position))))

	switch {
	case position < 0:
		return nextSpaceSize
	case position > 0:
		return outputWidth - windowWidth - nextSpaceSize
	default:
		return int(math.Round(bgSpaceSize))
	}
}

var (
	activeDropTargetRGBA = []byte{128, 128, 128, 128}
	dropTargetRGBA       = []byte{128, 128, 128, 64}
)

// graphics caches the compositor's own textures.
type graphics struct {
	activeDropTarget *drawing.Texture
	dropTarget       *drawing.Texture
}

func (g *graphics) ensure(renderer drawing.Renderer, outputScale float64) error {
	if g.activeDropTarget == nil {
		tex, err := renderer.CreateTexture(activeDropTargetRGBA, 1, 1)
		if err != nil {
			return err
		}
		texture := drawing.NewTexture(tex, geometry.Size{W: 1, H: 1}, outputScale)
		g.activeDropTarget = &texture
	}
	if g.dropTarget == nil {
		tex, err := renderer.CreateTexture(dropTargetRGBA, 1, 1)
		if err != nil {
			return err
		}
		texture := drawing.NewTexture(tex, geometry.Size{W: 1, H: 1}, outputScale)
		g.dropTarget = &texture
	}
	return nil
}
