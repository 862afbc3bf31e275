package pass

import (
	"github.com/slicekit/core/geom2d"
	"github.com/slicekit/core/move"
	"github.com/slicekit/core/settings"
	"github.com/slicekit/core/slice"
)

type wallLoop struct {
	ring  geom2d.Ring
	width float32
	trace move.TraceType
}

// WallPass implements inset_polygon_recursive: starting from
// RemainingArea, offset inward by half the exterior wall width for the
// first perimeter, then recurse inward number_of_perimeters-1 times using
// interior widths. It is independent per slice.
func WallPass(slices []*slice.Slice, s *settings.Settings) error {
	if !ensureSlices(slices) {
		return nil
	}
	for _, sl := range slices {
		wallPassOne(sl, s)
	}
	return nil
}

func wallPassOne(sl *slice.Slice, s *settings.Settings) {
	perims := sl.Settings.NumberOfPerimeters
	if perims <= 0 {
		return
	}
	extWidth := s.ExtrusionWidth.Perimeter
	intWidth := s.ExtrusionWidth.Interior

	// levels[d] is RemainingArea inset by the centerline distance of the
	// d-th perimeter (0 = outermost).
	levels := make([]geom2d.MultiPolygon, perims)
	cumulative := float32(0)
	for depth := 0; depth < perims; depth++ {
		switch depth {
		case 0:
			cumulative += extWidth / 2
		case 1:
			cumulative += extWidth/2 + intWidth/2
		default:
			cumulative += intWidth
		}
		levels[depth] = geom2d.OffsetFrom(sl.RemainingArea, -cumulative)
	}

	depthOrder := make([]int, perims)
	for i := range depthOrder {
		depthOrder[i] = i
	}
	if sl.Settings.InnerPerimetersFirst {
		for i, j := 0, len(depthOrder)-1; i < j; i, j = i+1, j-1 {
			depthOrder[i], depthOrder[j] = depthOrder[j], depthOrder[i]
		}
	}

	var loops []wallLoop
	for _, depth := range depthOrder {
		width := extWidth
		outer, inner := move.TraceWallOuter, move.TraceWallInner
		intOuter, intInner := move.TraceInteriorWallOuter, move.TraceInteriorWallInner
		if depth > 0 {
			width = intWidth
		}
		shellTrace := outer
		holeTrace := inner
		if depth > 0 {
			shellTrace = intOuter
			holeTrace = intInner
		}
		for _, poly := range levels[depth] {
			loops = append(loops, wallLoop{ring: poly.Exterior, width: width, trace: shellTrace})
			for _, h := range poly.Holes {
				loops = append(loops, wallLoop{ring: h, width: width, trace: holeTrace})
			}
		}
	}

	for i, l := range loops {
		chain := move.FromRing(l.ring, l.width, move.WithoutFiber(l.trace))
		if i > 0 && len(sl.FixedChains) > 0 {
			prevEnd := sl.FixedChains[len(sl.FixedChains)-1].EndPoint()
			sl.FixedChains = append(sl.FixedChains, travelChain(prevEnd, chain.StartPoint))
		}
		sl.FixedChains = append(sl.FixedChains, chain)
	}

	total := extWidth
	if perims > 1 {
		total += intWidth * float32(perims-1)
	}
	sl.RemainingArea = geom2d.OffsetFrom(sl.RemainingArea, -total)
}
