package pass

import (
	"github.com/slicekit/core/geom2d"
	"github.com/slicekit/core/move"
	"github.com/slicekit/core/settings"
	"github.com/slicekit/core/slice"
)

// SkirtPass unions the first skirt.layers layers' main_polygon and support
// regions across every object, convex-hulls the result, offsets outward by
// skirt.distance, clips to the bed rectangle and inserts the result as a
// looped WallOuter chain in object 0's first slice's FixedChains. It runs
// once across all objects, before BrimPass.
func SkirtPass(objects [][]*slice.Slice, s *settings.Settings) error {
	if !s.Skirt.Enabled || len(objects) == 0 || !ensureSlices(objects[0]) {
		return nil
	}

	var union geom2d.MultiPolygon
	for _, slices := range objects {
		n := s.Skirt.Layers
		if n > len(slices) {
			n = len(slices)
		}
		for i := 0; i < n; i++ {
			union = union.UnionWith(slices[i].MainPolygon)
			union = union.UnionWith(slices[i].SupportTower)
			union = union.UnionWith(slices[i].SupportInterface)
		}
	}
	if union.IsEmpty() {
		return nil
	}

	hull := geom2d.MultiPolygon{geom2d.ConvexHull(union)}
	skirt := geom2d.OffsetFrom(hull, s.Skirt.Distance)
	skirt = geom2d.ClipToRect(skirt, geom2d.Pt(0, 0), geom2d.Pt(s.PrintX, s.PrintY))
	if skirt.IsEmpty() {
		return nil
	}

	first := objects[0][0]
	for _, p := range skirt {
		chain := move.FromRing(p.Exterior, s.ExtrusionWidth.Skirt, move.WithoutFiber(move.TraceWallOuter))
		first.FixedChains = append(first.FixedChains, chain)
	}
	return nil
}
