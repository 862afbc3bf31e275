package command

import (
	"math"

	"github.com/slicekit/core/geom2d"
)

// OptimizePass merges redundant SetState commands (empty diff), collapses
// consecutive travels into the last one, and replaces zero-length moves
// with NoAction.
func OptimizePass(cmds []Command) []Command {
	out := make([]Command, 0, len(cmds))
	var cursor geom2d.Point
	haveCursor := false

	for _, c := range cmds {
		switch c.Kind {
		case KindSetState:
			if c.State.IsEmpty() {
				continue
			}
			out = append(out, c)

		case KindMoveTo:
			if haveCursor && c.End == cursor {
				out = append(out, NoAction())
				continue
			}
			if n := len(out); n > 0 && out[n-1].Kind == KindMoveTo {
				out[n-1] = c
			} else {
				out = append(out, c)
			}
			cursor, haveCursor = c.End, true

		case KindMoveAndExtrude, KindMoveAndExtrudeFiber, KindMoveAndExtrudeFiberAndCut:
			if haveCursor && c.End == cursor {
				out = append(out, NoAction())
				continue
			}
			out = append(out, c)
			cursor, haveCursor = c.End, true

		default:
			out = append(out, c)
		}
	}
	return out
}

// SlowDownLayerPass estimates each layer's print time from move lengths
// divided by feedrate; layers faster than slowDownThreshold have their
// movement speeds scaled uniformly toward minPrintSpeed, never below it.
// Layers are delimited by LayerChange commands.
func SlowDownLayerPass(cmds []Command, slowDownThreshold, minPrintSpeed float32) []Command {
	if slowDownThreshold <= 0 {
		return cmds
	}
	out := append([]Command(nil), cmds...)

	segStart := 0
	for i, c := range out {
		if c.Kind == KindLayerChange && i > segStart {
			slowDownSegment(out, segStart, i, slowDownThreshold, minPrintSpeed)
			segStart = i
		}
	}
	slowDownSegment(out, segStart, len(out), slowDownThreshold, minPrintSpeed)
	return out
}

func slowDownSegment(cmds []Command, start, end int, threshold, minSpeed float32) {
	var cursor geom2d.Point
	haveCursor := false
	curSpeed := float32(0)

	type moveRef struct {
		length float32
		speed  float32
	}
	var moves []moveRef
	var speedIdx []int

	for i := start; i < end; i++ {
		c := cmds[i]
		switch c.Kind {
		case KindSetState:
			if c.State.MovementSpeed != nil {
				curSpeed = *c.State.MovementSpeed
				speedIdx = append(speedIdx, i)
			}
		case KindMoveTo:
			cursor, haveCursor = c.End, true
		case KindMoveAndExtrude, KindMoveAndExtrudeFiber, KindMoveAndExtrudeFiberAndCut:
			length := float32(0)
			if haveCursor {
				length = cursor.Distance(c.End)
			}
			if curSpeed > 0 {
				moves = append(moves, moveRef{length: length, speed: curSpeed})
			}
			cursor, haveCursor = c.End, true
		}
	}
	if len(moves) == 0 {
		return
	}

	var totalTime float32
	minOfSpeeds := moves[0].speed
	for _, m := range moves {
		totalTime += m.length / m.speed
		if m.speed < minOfSpeeds {
			minOfSpeeds = m.speed
		}
	}
	if totalTime <= 0 || totalTime >= threshold {
		return
	}

	k := totalTime / threshold
	if minFactor := minSpeed / minOfSpeeds; k < minFactor {
		k = minFactor
	}
	if k >= 1 {
		return
	}

	for _, idx := range speedIdx {
		v := *cmds[idx].State.MovementSpeed
		newV := k * v
		if newV < minSpeed {
			newV = minSpeed
		}
		cmds[idx].State.MovementSpeed = &newV
	}
}

// MergeFiberPass scans for maximal runs of MoveAndExtrudeFiber whose
// consecutive direction-change angle stays within maxAngle. A run whose
// cumulative length reaches minLength is cut cutBefore millimetres before
// its end: the move straddling that point is split, the trailing piece
// becomes a MoveAndExtrudeFiberAndCut carrying the exact cut_pos offset.
// Runs shorter than minLength are downgraded entirely to MoveAndExtrude.
func MergeFiberPass(cmds []Command, maxAngle, minLength, cutBefore float32) []Command {
	out := make([]Command, 0, len(cmds))
	var cursor geom2d.Point

	i := 0
	for i < len(cmds) {
		c := cmds[i]
		if c.Kind != KindMoveAndExtrudeFiber {
			out = append(out, c)
			if c.Kind == KindMoveTo || c.IsExtrusion() {
				cursor = c.End
			}
			i++
			continue
		}

		runStart := i
		runCursor := cursor
		prevDir := c.End.Sub(cursor).Normalize()
		j := i + 1
		for j < len(cmds) && cmds[j].Kind == KindMoveAndExtrudeFiber {
			dir := cmds[j].End.Sub(cmds[j-1].End).Normalize()
			if angleBetween(prevDir, dir) > maxAngle {
				break
			}
			prevDir = dir
			j++
		}

		run := cmds[runStart:j]
		out = append(out, processFiberRun(run, runCursor, minLength, cutBefore)...)
		cursor = run[len(run)-1].End
		i = j
	}
	return out
}

func angleBetween(a, b geom2d.Point) float32 {
	dot := a.Dot(b)
	if dot > 1 {
		dot = 1
	}
	if dot < -1 {
		dot = -1
	}
	return float32(math.Acos(float64(dot)))
}

func processFiberRun(run []Command, startCursor geom2d.Point, minLength, cutBefore float32) []Command {
	lengths := make([]float32, len(run))
	cur := startCursor
	var total float32
	for i, m := range run {
		lengths[i] = cur.Distance(m.End)
		total += lengths[i]
		cur = m.End
	}

	if total < minLength {
		out := make([]Command, len(run))
		for i, m := range run {
			out[i] = MoveAndExtrude(m.End, m.Width)
		}
		return out
	}

	target := total - cutBefore
	if target < 0 {
		target = 0
	}

	var acc float32
	splitIdx := len(run) - 1
	for i := range run {
		segEnd := acc + lengths[i]
		if target < segEnd || i == len(run)-1 {
			splitIdx = i
			break
		}
		acc = segEnd
	}

	var prevPoint geom2d.Point
	if splitIdx == 0 {
		prevPoint = startCursor
	} else {
		prevPoint = run[splitIdx-1].End
	}

	segLen := lengths[splitIdx]
	splitDist := target - acc
	if splitDist < 0 {
		splitDist = 0
	}
	if splitDist > segLen {
		splitDist = segLen
	}

	out := make([]Command, 0, len(run)+1)
	out = append(out, run[:splitIdx]...)

	m := run[splitIdx]
	switch {
	case splitDist <= 0:
		out = append(out, MoveAndExtrudeFiberAndCut(m.End, m.Width, segLen))
	case splitDist >= segLen:
		out = append(out, MoveAndExtrudeFiberAndCut(m.End, m.Width, 0))
	default:
		t := splitDist / segLen
		splitPoint := prevPoint.Lerp(m.End, t)
		out = append(out, MoveAndExtrudeFiber(splitPoint, m.Width))
		out = append(out, MoveAndExtrudeFiberAndCut(m.End, m.Width, segLen-splitDist))
	}
	out = append(out, run[splitIdx+1:]...)
	return out
}

// EvalIdPass sequentially numbers every remaining extrusion command with a
// monotonically increasing MoveID, using a local counter rather than any
// shared or global one.
func EvalIdPass(cmds []Command) []Command {
	out := append([]Command(nil), cmds...)
	id := 0
	for i := range out {
		if out[i].IsExtrusion() {
			out[i].MoveID = id
			id++
		}
	}
	return out
}
