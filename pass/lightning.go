package pass

import (
	"github.com/slicekit/core/geom2d"
	"github.com/slicekit/core/move"
	"github.com/slicekit/core/settings"
	"github.com/slicekit/core/slice"
)

// LightningFillPass grows a sparse support tree from anchor points sampled
// on the topmost layers down to whichever layer beneath them still has
// area to cover. It is a no-op unless InfillType is InfillLightning, and is
// sequential because each layer's anchors come from the layer above.
func LightningFillPass(slices []*slice.Slice, s *settings.Settings) error {
	if s.InfillType != settings.InfillLightning || !ensureSlices(slices) {
		return nil
	}

	width := s.ExtrusionWidth.Infill
	spacing := lightningSpacing(s)
	if spacing <= 0 {
		return nil
	}

	var anchors []geom2d.Point
	for k := len(slices) - 1; k >= 0; k-- {
		sl := slices[k]
		if sl.RemainingArea.IsEmpty() {
			anchors = nil
			continue
		}

		samples := sampleGrid(sl.RemainingArea, spacing)
		next := make([]geom2d.Point, 0, len(samples))
		for _, pt := range samples {
			if nearest, ok := nearestPoint(anchors, pt); ok {
				chain := move.NewChain(pt, false)
				chain.Add(nearest, width, move.WithoutFiber(move.TraceInfill))
				sl.Chains = append(sl.Chains, chain)
			}
			next = append(next, pt)
		}
		anchors = next
		sl.RemainingArea = nil
	}
	return nil
}

// lightningSpacing derives the tree's branch spacing from the infill
// density the same way a full rectilinear fill would, so sparser infill
// settings produce a sparser tree.
func lightningSpacing(s *settings.Settings) float32 {
	if s.InfillPercentage <= 0 {
		return 0
	}
	return s.ExtrusionWidth.Infill / (s.InfillPercentage / 100)
}

// sampleGrid returns one point per spacing-sized grid cell whose centre
// falls inside mp.
func sampleGrid(mp geom2d.MultiPolygon, spacing float32) []geom2d.Point {
	min, max := mp.Bounds()
	var pts []geom2d.Point
	for y := min.Y + spacing/2; y < max.Y; y += spacing {
		for x := min.X + spacing/2; x < max.X; x += spacing {
			pt := geom2d.Pt(x, y)
			if mp.Contains(pt) {
				pts = append(pts, pt)
			}
		}
	}
	return pts
}

// nearestPoint returns the closest point in candidates to pt.
func nearestPoint(candidates []geom2d.Point, pt geom2d.Point) (geom2d.Point, bool) {
	if len(candidates) == 0 {
		return geom2d.Point{}, false
	}
	best := candidates[0]
	bestDist := pt.Distance(best)
	for _, c := range candidates[1:] {
		if d := pt.Distance(c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, true
}
