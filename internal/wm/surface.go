package wm

import (
	"github.com/ItsNotGoodName/touchwm/internal/drawing"
	"github.com/ItsNotGoodName/touchwm/internal/geometry"
	"github.com/ItsNotGoodName/touchwm/internal/output"
)

// Surface is one node in a client's surface tree. The protocol layer owns
// the tree and fills in buffer state, the compositor core only walks it.
type Surface struct {
	Buffer *drawing.SurfaceBuffer

	// Offset is the subsurface position relative to its parent, zero for
	// the root surface.
	Offset geometry.Point

	Children []*Surface

	// Protocol notification hooks, nil when the client did not register
	// any.
	EnterOutput func(o *output.Output)
	LeaveOutput func(o *output.Output)
	FrameDone   func(runtime uint32)
}

// Walk visits the tree in drawing order. Each surface is reported with its
// absolute location; fn returns whether to descend into the children.
func (s *Surface) Walk(origin geometry.Point, fn func(s *Surface, location geometry.Point) bool) {
	location := origin.Add(s.Offset)
	if !fn(s, location) {
		return
	}
	for _, child := range s.Children {
		child.Walk(location, fn)
	}
}

// Each visits every surface of the tree.
func (s *Surface) Each(fn func(s *Surface)) {
	s.Walk(geometry.Point{}, func(s *Surface, _ geometry.Point) bool {
		fn(s)
		return true
	})
}

// State hints carried by a configure event.
type State uint8

const (
	StateMaximized State = iota
	StateTiledTop
	StateTiledBottom
	StateTiledLeft
	StateTiledRight
)

// DecorationMode selects who draws window decorations.
type DecorationMode uint8

const (
	DecorationClientSide DecorationMode = iota
	DecorationServerSide
)

// Configure describes a pending window configuration sent to the client.
type Configure struct {
	Size           geometry.Size
	States         []State
	DecorationMode DecorationMode
}

// Toplevel is the shell role object of an independent client window.
type Toplevel interface {
	// Alive reports whether the client surface still exists.
	Alive() bool
	// Surface returns the root of the client's surface tree, nil once the
	// surface died.
	Surface() *Surface
	// Geometry returns the visible bounds within the surface tree.
	Geometry() geometry.Rect
	// Version is the client's shell protocol version.
	Version() int
	// SendConfigure sends a configure event. Sending to a dead client
	// returns an error which callers may ignore.
	SendConfigure(configure Configure) error
	// SendClose asks the client to close the window.
	SendClose() error
}
