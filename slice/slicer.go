package slice

import (
	"github.com/slicekit/core/geom2d"
	"github.com/slicekit/core/settings"
	"github.com/slicekit/core/tower"
)

// simplifyEpsilon is the Visvalingam-Whyatt tolerance applied to every
// freshly-sliced layer.
const simplifyEpsilon = 0.001

// iteratorSource is the subset of *tower.TriangleTowerIterator the slicer
// depends on, so tests can substitute a fake frontier.
type iteratorSource interface {
	AdvanceToHeight(z float32) error
	GetPoints() ([]geom2d.Ring, error)
}

// Slice intersects tw with horizontal planes from Z=0 up to maxZ, producing
// one Slice per layer. Layer height is resolved per layer from s, so
// overlays that change layer_height change the Z spacing of later layers
// too.
func Slice(tw *tower.TriangleTower, maxZ float32, s *settings.Settings) ([]*Slice, error) {
	return sliceFrom(tw.Iterator(), maxZ, s)
}

func sliceFrom(it iteratorSource, maxZ float32, s *settings.Settings) ([]*Slice, error) {
	var slices []*Slice
	currentZ := float32(0)

	for layerIndex := 0; ; layerIndex++ {
		ls := s.ResolveLayer(layerIndex, currentZ)
		h := ls.LayerHeight
		if h <= 0 {
			h = s.LayerHeight
		}

		bottom := currentZ
		if err := it.AdvanceToHeight(bottom + h/2); err != nil {
			return nil, err
		}
		midLoops, err := it.GetPoints()
		if err != nil {
			return nil, err
		}

		top := bottom + h
		if err := it.AdvanceToHeight(top); err != nil {
			return nil, err
		}

		mid := (bottom + top) / 2
		mp := geom2d.Simplify(geom2d.AssembleLoops(midLoops), simplifyEpsilon)
		layerSettings := s.ResolveLayer(layerIndex, mid)

		if mp.IsEmpty() && mid > maxZ {
			break
		}

		slices = append(slices, New(layerIndex, bottom, top, mp, layerSettings))
		currentZ = top
	}

	return slices, nil
}
