package pass

import (
	"github.com/slicekit/core/geom2d"
	"github.com/slicekit/core/move"
	"github.com/slicekit/core/settings"
	"github.com/slicekit/core/slice"
)

// OrderPass greedily reorders each slice's reorderable Chains (never
// FixedChains) by nearest-next distance from the previous chain's end
// point to each remaining candidate's start point, ties broken by
// original enumeration order. It is independent per slice.
func OrderPass(slices []*slice.Slice, s *settings.Settings) error {
	if !ensureSlices(slices) {
		return nil
	}
	for _, sl := range slices {
		sl.Chains = orderChains(sl.Chains, sl.FixedChains)
	}
	return nil
}

func orderChains(chains []*move.MoveChain, fixed []*move.MoveChain) []*move.MoveChain {
	remaining := append([]*move.MoveChain(nil), chains...)
	ordered := make([]*move.MoveChain, 0, len(remaining))

	var cursor geom2d.Point
	if len(fixed) > 0 {
		cursor = fixed[len(fixed)-1].EndPoint()
	} else if len(remaining) > 0 {
		cursor = remaining[0].StartPoint
	}

	for len(remaining) > 0 {
		best := 0
		bestDist := cursor.Distance(remaining[0].StartPoint)
		for i := 1; i < len(remaining); i++ {
			d := cursor.Distance(remaining[i].StartPoint)
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
		chosen := remaining[best]
		ordered = append(ordered, chosen)
		cursor = chosen.EndPoint()
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return ordered
}
