// Package command implements the linear Command stream: the tagged-variant
// instruction set the emitter walks, the conversion from MoveChain into
// that stream, and the four passes that optimise, throttle, merge fiber
// runs and assign move IDs.
package command

import "github.com/slicekit/core/geom2d"

// Kind discriminates the tagged Command variants.
type Kind int

const (
	KindMoveTo Kind = iota
	KindMoveAndExtrude
	KindMoveAndExtrudeFiber
	KindMoveAndExtrudeFiberAndCut
	KindLayerChange
	KindSetState
	KindDelay
	KindArc
	KindChangeObject
	KindChangeType
	KindNoAction
)

// RetractionType is one of NoRetract, Retract, Unretract or MoveRetract.
type RetractionType int

const (
	NoRetract RetractionType = iota
	Retract
	Unretract
	MoveRetract
)

// RetractMove is one waypoint of a MoveRetract, a multi-step retraction
// that eases the filament back over several amounts and points.
type RetractMove struct {
	Amount float32
	Point  geom2d.Point
}

// StateChange is a sparse diff of machine state; a nil pointer field means
// unchanged.
type StateChange struct {
	ExtruderTemp   *float32
	BedTemp        *float32
	FanSpeed       *float32
	MovementSpeed  *float32
	Acceleration   *float32
	Retract        *RetractionType
	MoveRetracts   []RetractMove
}

// IsEmpty reports whether the diff changes nothing, the condition
// OptimizePass collapses away.
func (s StateChange) IsEmpty() bool {
	return s.ExtruderTemp == nil && s.BedTemp == nil && s.FanSpeed == nil &&
		s.MovementSpeed == nil && s.Acceleration == nil && s.Retract == nil &&
		len(s.MoveRetracts) == 0
}

// TraceType mirrors move.TraceType without importing package move, since
// Command.ChangeType needs the tag independent of the chain representation
// it was derived from.
type TraceType int

// Command is the tagged variant consumed by the emitter. Only the fields
// relevant to Kind are populated; the others are zero.
type Command struct {
	Kind Kind

	End    geom2d.Point // MoveTo, MoveAndExtrude*, Arc
	Width  float32       // MoveAndExtrude*
	CutPos float32       // MoveAndExtrudeFiberAndCut
	MoveID int           // assigned by EvalIdPass; -1 until then

	Z            float32 // LayerChange
	LayerIndex   int     // LayerChange
	ObjectIndex  int     // ChangeObject
	Trace        TraceType
	State        StateChange
	DelayMS      int64
	ArcCenter    geom2d.Point
	ArcClockwise bool
}

func MoveTo(p geom2d.Point) Command {
	return Command{Kind: KindMoveTo, End: p, MoveID: -1}
}

func MoveAndExtrude(p geom2d.Point, width float32) Command {
	return Command{Kind: KindMoveAndExtrude, End: p, Width: width, MoveID: -1}
}

func MoveAndExtrudeFiber(p geom2d.Point, width float32) Command {
	return Command{Kind: KindMoveAndExtrudeFiber, End: p, Width: width, MoveID: -1}
}

func MoveAndExtrudeFiberAndCut(p geom2d.Point, width, cutPos float32) Command {
	return Command{Kind: KindMoveAndExtrudeFiberAndCut, End: p, Width: width, CutPos: cutPos, MoveID: -1}
}

func LayerChange(z float32, index int) Command {
	return Command{Kind: KindLayerChange, Z: z, LayerIndex: index}
}

func SetState(s StateChange) Command {
	return Command{Kind: KindSetState, State: s}
}

func Delay(ms int64) Command { return Command{Kind: KindDelay, DelayMS: ms} }

func ChangeObject(index int) Command {
	return Command{Kind: KindChangeObject, ObjectIndex: index}
}

func ChangeType(t TraceType) Command {
	return Command{Kind: KindChangeType, Trace: t}
}

func NoAction() Command { return Command{Kind: KindNoAction} }

// IsExtrusion reports whether cmd deposits material.
func (c Command) IsExtrusion() bool {
	switch c.Kind {
	case KindMoveAndExtrude, KindMoveAndExtrudeFiber, KindMoveAndExtrudeFiberAndCut:
		return true
	default:
		return false
	}
}

// IsFiber reports whether cmd co-deposits fiber.
func (c Command) IsFiber() bool {
	return c.Kind == KindMoveAndExtrudeFiber || c.Kind == KindMoveAndExtrudeFiberAndCut
}
