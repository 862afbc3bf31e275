package pass

import (
	"math"

	"github.com/slicekit/core/geom2d"
	"github.com/slicekit/core/settings"
	"github.com/slicekit/core/slice"
)

// SupportTowerPass walks an object's slices from the topmost layer
// downward, accumulating overhang area into each slice's SupportTower. It
// is sequential because each layer's overhang depends on the layer above
// it, and the accumulated tower must reach all the way down to the bed.
func SupportTowerPass(slices []*slice.Slice, s *settings.Settings) error {
	if !s.Support.Enabled || !ensureSlices(slices) {
		return nil
	}

	n := len(slices)
	tanAngle := float32(math.Tan(float64(s.Support.MaxOverhangAngle)))

	var towerAbove geom2d.MultiPolygon
	depthAbove := 0
	for i := n - 1; i >= 0; i-- {
		var overhang geom2d.MultiPolygon
		if i < n-1 {
			above := slices[i+1]
			layerHeight := slices[i].TopHeight - slices[i].BottomHeight
			shrunk := geom2d.OffsetFrom(above.MainPolygon, -tanAngle*layerHeight)
			overhang = slices[i].MainPolygon.DifferenceWith(shrunk)
		}

		combined := overhang.UnionWith(towerAbove)
		depth := 0
		if !combined.IsEmpty() {
			depth = depthAbove + 1
		}

		if depth >= 1 && depth <= s.Support.InterfaceLayers {
			slices[i].SupportInterface = combined
		} else {
			slices[i].SupportTower = combined
		}

		towerAbove = combined
		depthAbove = depth
	}
	return nil
}
