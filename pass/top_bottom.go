package pass

import (
	"github.com/slicekit/core/geom2d"
	"github.com/slicekit/core/move"
	"github.com/slicekit/core/settings"
	"github.com/slicekit/core/slice"
)

// TopAndBottomLayersPass fills the area near top and bottom surfaces with
// solid infill, using the same subtract-offset-intersect construction as
// BridgingPass but measured against the intersection of the top_layers
// slices above (TopSolidInfill) and bottom_layers slices below
// (SolidInfill), at rotation angle 45+120k degrees. It reads neighbouring
// slices' frozen MainPolygon and is sequential with respect to the slices
// it spans.
func TopAndBottomLayersPass(slices []*slice.Slice, s *settings.Settings) error {
	if !ensureSlices(slices) {
		return nil
	}
	margin := 4 * s.ExtrusionWidth.TopSolidInfill
	for k, sl := range slices {
		angle := rotationAngle(k)

		if topLayersOf(s) > 0 {
			above := neighborIntersection(slices, k+1, k+topLayersOf(s))
			fillNeed(sl, above, margin, angle, s.ExtrusionWidth.TopSolidInfill, move.TraceTopSolidInfill)
		}
		if bottomLayersOf(s) > 0 {
			below := neighborIntersection(slices, k-bottomLayersOf(s), k-1)
			fillNeed(sl, below, margin, angle, s.ExtrusionWidth.SolidInfill, move.TraceSolidInfill)
		}
	}
	return nil
}

func topLayersOf(s *settings.Settings) int    { return s.TopLayers }
func bottomLayersOf(s *settings.Settings) int { return s.BottomLayers }

// neighborIntersection returns the intersection of MainPolygon across
// slices[lo..hi] inclusive. An out-of-range index (fewer neighbours than
// requested, i.e. near the top or bottom of the object) contributes an
// empty polygon, which forces the whole remaining area to need solid fill
// at that slice since there is nothing above/below to be interior to.
func neighborIntersection(slices []*slice.Slice, lo, hi int) geom2d.MultiPolygon {
	if lo > hi {
		return nil
	}
	var acc geom2d.MultiPolygon
	first := true
	for i := lo; i <= hi; i++ {
		if i < 0 || i >= len(slices) {
			return nil
		}
		if first {
			acc = slices[i].MainPolygon
			first = false
			continue
		}
		acc = acc.IntersectionWith(slices[i].MainPolygon)
	}
	return acc
}

func fillNeed(sl *slice.Slice, neighbor geom2d.MultiPolygon, margin, angle, width float32, trace move.TraceType) {
	need := sl.RemainingArea.DifferenceWith(neighbor)
	solid := geom2d.OffsetFrom(need, margin).IntersectionWith(sl.RemainingArea)
	if solid.IsEmpty() {
		return
	}
	chains := rasterFillMulti(solid, angle, width, width, 0, trace)
	sl.Chains = append(sl.Chains, chains...)
	sl.RemainingArea = sl.RemainingArea.DifferenceWith(solid)
}
