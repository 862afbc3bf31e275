// Package move implements the chain-of-moves model: MoveChain, Move and
// their conversion into the linear Command stream.
package move

import "github.com/slicekit/core/geom2d"

// TraceType is the semantic role of a segment.
type TraceType int

const (
	TraceTopSolidInfill TraceType = iota
	TraceSolidInfill
	TraceInfill
	TraceWallOuter
	TraceWallInner
	TraceInteriorWallOuter
	TraceInteriorWallInner
	TraceBridging
	TraceSupport
)

// MoveTypeKind discriminates Travel from fiber/non-fiber extrusion.
type MoveTypeKind int

const (
	KindWithFiber MoveTypeKind = iota
	KindWithoutFiber
	KindTravel
)

// MoveType is one of WithFiber(TraceType), WithoutFiber(TraceType) or
// Travel.
type MoveType struct {
	Kind  MoveTypeKind
	Trace TraceType
}

func WithFiber(t TraceType) MoveType    { return MoveType{Kind: KindWithFiber, Trace: t} }
func WithoutFiber(t TraceType) MoveType { return MoveType{Kind: KindWithoutFiber, Trace: t} }
func Travel() MoveType                  { return MoveType{Kind: KindTravel} }

// IsExtrusion reports whether the move deposits material.
func (m MoveType) IsExtrusion() bool { return m.Kind != KindTravel }

// IsFiber reports whether the move co-deposits fiber.
func (m MoveType) IsFiber() bool { return m.Kind == KindWithFiber }

// Move is a single segment: an endpoint, an extrusion width and a type.
// The segment's start point is implicit — either the owning MoveChain's
// StartPoint or the previous Move's End.
type Move struct {
	End   geom2d.Point
	Width float32
	Type  MoveType
}

// MoveChain is an ordered polyline with per-segment widths and types.
type MoveChain struct {
	StartPoint geom2d.Point
	Moves      []Move
	IsLoop     bool
}

// NewChain starts a chain at start.
func NewChain(start geom2d.Point, isLoop bool) *MoveChain {
	return &MoveChain{StartPoint: start, IsLoop: isLoop}
}

// Add appends a move to the chain.
func (c *MoveChain) Add(end geom2d.Point, width float32, t MoveType) {
	c.Moves = append(c.Moves, Move{End: end, Width: width, Type: t})
}

// EndPoint returns the chain's final point (the start point if it has no
// moves).
func (c *MoveChain) EndPoint() geom2d.Point {
	if len(c.Moves) == 0 {
		return c.StartPoint
	}
	return c.Moves[len(c.Moves)-1].End
}

// Length returns the chain's total traversed length.
func (c *MoveChain) Length() float32 {
	var total float32
	cur := c.StartPoint
	for _, m := range c.Moves {
		total += cur.Distance(m.End)
		cur = m.End
	}
	return total
}

// FromRing builds a looped chain that walks ring's points in order, using
// moveType/width for every segment, closing back to the first point.
func FromRing(ring geom2d.Ring, width float32, t MoveType) *MoveChain {
	if len(ring) == 0 {
		return &MoveChain{}
	}
	c := NewChain(ring[0], true)
	for i := 1; i < len(ring); i++ {
		c.Add(ring[i], width, t)
	}
	c.Add(ring[0], width, t)
	return c
}
