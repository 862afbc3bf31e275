// Package mask implements the mask pipeline: a mask mesh is sliced
// identically to an object, cropped against every object's footprint,
// optionally jittered inward, and finally folded into the owning objects'
// slices.
package mask

import (
	"math/rand/v2"

	"github.com/slicekit/core/geom2d"
	"github.com/slicekit/core/mesh"
	"github.com/slicekit/core/settings"
	"github.com/slicekit/core/slice"
	"github.com/slicekit/core/tower"
)

// cropSimplifyEpsilon is the tolerance object footprints are simplified to
// before being subtracted from a mask layer.
const cropSimplifyEpsilon = 0.2

// Settings parameterizes a single mask.
type Settings struct {
	Epsilon       float32
	WallSeparated bool
	Overlays      []settings.LayerOverlay

	ExtrusionWidth settings.ExtrusionWidthCategory
}

// Mask pairs a mesh with the settings controlling how it crops and
// overrides the objects it covers.
type Mask struct {
	Mesh     *mesh.ObjectMesh
	OrigTris []mesh.Triangle
	Settings Settings
}

// Slice builds the mask's own tower and slices it up to maxZ exactly like
// an object.
func Slice(m *Mask, maxZ float32, base *settings.Settings) ([]*slice.Slice, error) {
	tw, err := tower.New(m.Mesh, m.OrigTris)
	if err != nil {
		return nil, err
	}
	return slice.Slice(tw, maxZ, base)
}

// Crop subtracts the union of every object's layer-i MainPolygon
// (simplified at 0.2mm) from the matching mask layer, dropping layers that
// became empty. objectLayers[i] is the simplified union of every object's
// MainPolygon at layer i; a missing/short entry is treated as an empty
// footprint.
func Crop(maskSlices []*slice.Slice, objectLayers []geom2d.MultiPolygon) []*slice.Slice {
	out := make([]*slice.Slice, 0, len(maskSlices))
	for i, sl := range maskSlices {
		var objUnion geom2d.MultiPolygon
		if i < len(objectLayers) {
			objUnion = geom2d.Simplify(objectLayers[i], cropSimplifyEpsilon)
		}
		sl.MainPolygon = sl.MainPolygon.DifferenceWith(objUnion)
		sl.RemainingArea = sl.MainPolygon
		if sl.MainPolygon.IsEmpty() {
			continue
		}
		out = append(out, sl)
	}
	return out
}

// Jitter perturbs each layer's boundary by a uniform random inward offset
// in [0,epsilon) when |epsilon| exceeds float32 machine epsilon, to avoid
// edges exactly coincident with object walls. Each layer uses a
// counter-derived seed rather than a shared global generator.
func Jitter(maskSlices []*slice.Slice, epsilon float32, runSeed uint64) {
	const float32Epsilon = 1.1920929e-7
	if epsilon < 0 {
		epsilon = -epsilon
	}
	if epsilon <= float32Epsilon {
		return
	}
	for i, sl := range maskSlices {
		src := rand.New(rand.NewPCG(runSeed, uint64(i)))
		delta := float32(src.Float64()) * epsilon
		sl.MainPolygon = geom2d.OffsetFrom(sl.MainPolygon, -delta)
		sl.RemainingArea = sl.MainPolygon
	}
}

// FoldIntoObjects subtracts each mask layer's MainPolygon from the
// matching object slice's RemainingArea and moves the mask's chains into
// the object's chain lists. Run after the mask's own slice passes.
func FoldIntoObjects(maskSlices []*slice.Slice, objectSlices []*slice.Slice) {
	byIndex := make(map[int]*slice.Slice, len(maskSlices))
	for _, m := range maskSlices {
		byIndex[m.LayerIndex] = m
	}
	for _, obj := range objectSlices {
		m, ok := byIndex[obj.LayerIndex]
		if !ok {
			continue
		}
		obj.RemainingArea = obj.RemainingArea.DifferenceWith(m.MainPolygon)
		obj.FixedChains = append(obj.FixedChains, m.FixedChains...)
		obj.Chains = append(obj.Chains, m.Chains...)
	}
}
