package command

import (
	"sort"

	"github.com/slicekit/core/move"
	"github.com/slicekit/core/settings"
	"github.com/slicekit/core/slice"
)

func traceOf(t move.TraceType) TraceType { return TraceType(t) }

func speedFor(sp settings.SpeedCategory, t move.TraceType) float32 {
	switch t {
	case move.TraceTopSolidInfill:
		return sp.TopSolidInfill
	case move.TraceSolidInfill:
		return sp.SolidInfill
	case move.TraceInfill:
		return sp.Infill
	case move.TraceWallOuter, move.TraceInteriorWallOuter:
		return sp.Perimeter
	case move.TraceWallInner, move.TraceInteriorWallInner:
		return sp.Perimeter
	case move.TraceBridging:
		return sp.Bridge
	case move.TraceSupport:
		return sp.Support
	default:
		return sp.Perimeter
	}
}

func accelFor(ac settings.AccelCategory, t move.TraceType) float32 {
	switch t {
	case move.TraceBridging:
		return ac.Bridge
	case move.TraceSupport:
		return ac.Support
	case move.TraceInfill, move.TraceSolidInfill, move.TraceTopSolidInfill:
		return ac.Infill
	default:
		return ac.Perimeter
	}
}

// FromChain walks c and appends the commands it produces to out, emitting
// SetState whenever the move's trace/speed changes and Retract/Unretract
// transitions between travel and extrusion.
func FromChain(out []Command, c *move.MoveChain, ls settings.LayerSettings, retracted bool) ([]Command, bool) {
	if c == nil || len(c.Moves) == 0 {
		return out, retracted
	}

	out = append(out, MoveTo(c.StartPoint))
	var lastTrace move.TraceType
	haveLastTrace := false

	for _, m := range c.Moves {
		if !m.Type.IsExtrusion() {
			if !retracted {
				rt := Retract
				out = append(out, SetState(StateChange{Retract: &rt}))
				retracted = true
			}
			out = append(out, MoveTo(m.End))
			continue
		}

		if retracted {
			rt := Unretract
			out = append(out, SetState(StateChange{Retract: &rt}))
			retracted = false
		}
		if !haveLastTrace || m.Type.Trace != lastTrace {
			speed := speedFor(ls.Speed, m.Type.Trace)
			accel := accelFor(ls.Acceleration, m.Type.Trace)
			out = append(out, ChangeType(traceOf(m.Type.Trace)))
			out = append(out, SetState(StateChange{MovementSpeed: &speed, Acceleration: &accel}))
			lastTrace = m.Type.Trace
			haveLastTrace = true
		}
		if m.Type.IsFiber() {
			out = append(out, MoveAndExtrudeFiber(m.End, m.Width))
		} else {
			out = append(out, MoveAndExtrude(m.End, m.Width))
		}
	}
	return out, retracted
}

// FromSlice converts every FixedChains entry followed by every Chains entry
// of sl into commands, prefixed by a LayerChange. Fixed chains (skirt, brim,
// walls) always precede the reorderable ones.
func FromSlice(sl *slice.Slice) []Command {
	var out []Command
	out = append(out, LayerChange(sl.TopHeight, sl.LayerIndex))

	retracted := true
	for _, c := range sl.FixedChains {
		out, retracted = FromChain(out, c, sl.Settings, retracted)
	}
	for _, c := range sl.Chains {
		out, retracted = FromChain(out, c, sl.Settings, retracted)
	}
	if !retracted {
		rt := Retract
		out = append(out, SetState(StateChange{Retract: &rt}))
	}
	return out
}

// objectStream is one slice's command stream, tagged with its object index
// and that slice's top height, the key ConvertObjectsIntoMoves merges
// interleaved multi-object layers on.
type objectStream struct {
	objectIndex int
	topHeight   float32
	commands    []Command
}

// ConvertObjectsIntoMoves merges every object's per-layer command stream,
// sorted on top height so interleaved multi-object layers print correctly.
func ConvertObjectsIntoMoves(objects [][]*slice.Slice) []Command {
	var streams []objectStream
	for objIdx, slices := range objects {
		for _, sl := range slices {
			streams = append(streams, objectStream{
				objectIndex: objIdx,
				topHeight:   sl.TopHeight,
				commands:    FromSlice(sl),
			})
		}
	}

	sort.SliceStable(streams, func(i, j int) bool {
		return streams[i].topHeight < streams[j].topHeight
	})

	var out []Command
	lastObject := -1
	for _, s := range streams {
		if s.objectIndex != lastObject {
			out = append(out, ChangeObject(s.objectIndex))
			lastObject = s.objectIndex
		}
		out = append(out, s.commands...)
	}
	return out
}
