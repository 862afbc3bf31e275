package slicecore

import (
	"fmt"

	"github.com/slicekit/core/calc"
	"github.com/slicekit/core/command"
	"github.com/slicekit/core/geom2d"
	"github.com/slicekit/core/internal/workpool"
	"github.com/slicekit/core/mask"
	"github.com/slicekit/core/mesh"
	"github.com/slicekit/core/pass"
	"github.com/slicekit/core/progress"
	"github.com/slicekit/core/settings"
	"github.com/slicekit/core/slice"
	"github.com/slicekit/core/slicerr"
	"github.com/slicekit/core/tower"
)

// ObjectInput pairs a mesh with its pre-canonicalisation triangle order,
// which tower.New needs to recover a winding-consistent orientation sign
// per triangle (the same pairing mask.Mask keeps for its own mesh).
type ObjectInput struct {
	Mesh     *mesh.ObjectMesh
	OrigTris []mesh.Triangle
}

// SliceInput is the core's sole entry point payload: one or more object
// meshes, zero or more masks delimiting region overrides, and the
// effective Settings every object is sliced under.
type SliceInput struct {
	Objects  []ObjectInput
	Masks    []*mask.Mask
	Settings *settings.Settings
}

// SliceResult is everything a run produces: the canonicalised, ID-assigned
// command stream, its derived totals, and the settings actually used
// (echoed back so callers that load settings from a file can confirm what
// took effect).
type SliceResult struct {
	Moves      []command.Command
	Calculated calc.Values
	Settings   *settings.Settings
	Warnings   []slicerr.Warning
}

// preMaskPasses runs before masks are folded in, in this fixed order: each
// pass consumes RemainingArea or neighbourhood state the previous one
// prepared. SupportTowerPass and the once-across-all-objects Skirt/Brim
// passes run ahead of these (see Run), and FillAreaPass/OrderPass run
// later, in postMaskPasses, so a mask's own fill can claim its region
// before the object's own infill consumes what's left of RemainingArea.
var preMaskPasses = []func([]*slice.Slice, *settings.Settings) error{
	pass.ShrinkPass,
	pass.WallPass,
	pass.BridgingPass,
	pass.TopAndBottomLayersPass,
	pass.SupportPass,
	pass.FiberInfillPass,
	pass.LightningFillPass,
}

// postMaskPasses runs after every mask has folded its chains and cropped
// its area out of each object's RemainingArea.
var postMaskPasses = []func([]*slice.Slice, *settings.Settings) error{
	pass.FillAreaPass,
	pass.OrderPass,
}

// Run slices every object in input, folds in every mask, converts the
// result to a canonical command stream and returns the totals calc
// derives from it. sink receives a SetTask notification as each stage of
// the run begins; pass nil for progress.NopSink{}.
func Run(input SliceInput, sink progress.Sink) (*SliceResult, error) {
	if sink == nil {
		sink = progress.NopSink{}
	}
	s := input.Settings

	sink.SetTask("validating settings")
	warnings, err := s.Validate()
	if err != nil {
		return nil, err
	}

	sink.SetTask("building towers")
	towers := make([]*tower.TriangleTower, len(input.Objects))
	pool := workpool.New(0)
	if err := pool.ForEachIndexedErr(len(input.Objects), func(i int) error {
		obj := input.Objects[i]
		tw, err := tower.New(obj.Mesh, obj.OrigTris)
		if err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
		towers[i] = tw
		return nil
	}); err != nil {
		return nil, err
	}

	maxZ := float32(0)
	for _, tw := range towers {
		if z := tw.MaxZ(); z > maxZ {
			maxZ = z
		}
	}

	sink.SetTask("slicing")
	objectSlices := make([][]*slice.Slice, len(input.Objects))
	if err := pool.ForEachIndexedErr(len(towers), func(i int) error {
		sl, err := slice.Slice(towers[i], maxZ, s)
		if err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
		objectSlices[i] = sl
		return nil
	}); err != nil {
		return nil, err
	}

	sink.SetTask("running passes")
	if err := pool.ForEachIndexedErr(len(objectSlices), func(i int) error {
		return pass.SupportTowerPass(objectSlices[i], s)
	}); err != nil {
		return nil, err
	}

	if err := pass.SkirtPass(objectSlices, s); err != nil {
		return nil, err
	}
	if err := pass.BrimPass(objectSlices, s); err != nil {
		return nil, err
	}

	if err := pool.ForEachIndexedErr(len(objectSlices), func(i int) error {
		for _, p := range preMaskPasses {
			if err := p(objectSlices[i], s); err != nil {
				return fmt.Errorf("object %d: %w", i, err)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	maskSlices, err := sliceAndCropMasks(input.Masks, s, maxZ, objectSlices, pool)
	if err != nil {
		return nil, err
	}
	for _, maskSl := range maskSlices {
		mask.FoldIntoObjects(maskSl, flatten(objectSlices))
	}

	if err := pool.ForEachIndexedErr(len(objectSlices), func(i int) error {
		for _, p := range postMaskPasses {
			if err := p(objectSlices[i], s); err != nil {
				return fmt.Errorf("object %d: %w", i, err)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	sink.SetTask("converting to commands")
	moves := command.ConvertObjectsIntoMoves(objectSlices)
	moves = command.OptimizePass(moves)
	moves = command.SlowDownLayerPass(moves, s.Fan.SlowDownThreshold, s.Fan.MinPrintSpeed)
	moves = command.MergeFiberPass(moves, s.Fiber.MaxAngle, s.Fiber.MinLength, s.Fiber.CutBefore)
	moves = command.EvalIdPass(moves)

	sink.SetTask("computing totals")
	values := calc.Compute(moves, s)

	return &SliceResult{
		Moves:      moves,
		Calculated: values,
		Settings:   s,
		Warnings:   warnings,
	}, nil
}

// sliceAndCropMasks builds each mask's own tower and slice list under
// settings that layer the mask's overlays and extrusion-width override on
// top of base, subtracts from every layer the union of what the objects
// occupy there, jitters the remaining boundary inward, then runs the mask's own
// fill pass so its region is claimed before the objects' own FillAreaPass
// sees what's left of RemainingArea.
func sliceAndCropMasks(masks []*mask.Mask, base *settings.Settings, maxZ float32, objectSlices [][]*slice.Slice, pool *workpool.Pool) ([][]*slice.Slice, error) {
	if len(masks) == 0 {
		return nil, nil
	}
	objectLayers := unionObjectLayers(objectSlices)

	out := make([][]*slice.Slice, len(masks))
	err := pool.ForEachIndexedErr(len(masks), func(i int) error {
		m := masks[i]
		ms := maskSettingsFor(m, base)
		sl, err := mask.Slice(m, maxZ, ms)
		if err != nil {
			return fmt.Errorf("mask %d: %w", i, err)
		}
		sl = mask.Crop(sl, objectLayers)
		mask.Jitter(sl, m.Settings.Epsilon, uint64(i)+1)
		if err := pass.FillAreaPass(sl, ms); err != nil {
			return fmt.Errorf("mask %d: %w", i, err)
		}
		out[i] = sl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// maskSettingsFor layers m's extrusion-width override and layer overlays on
// top of base, producing the effective settings the mask's own region is
// sliced and filled under.
func maskSettingsFor(m *mask.Mask, base *settings.Settings) *settings.Settings {
	ms := base.Clone()
	var zero settings.ExtrusionWidthCategory
	if m.Settings.ExtrusionWidth != zero {
		ms.ExtrusionWidth = m.Settings.ExtrusionWidth
	}
	ms.LayerSettings = append(append([]settings.LayerOverlay(nil), ms.LayerSettings...), m.Settings.Overlays...)
	return ms
}

// unionObjectLayers returns, for each layer index, the union of every
// object's MainPolygon at that layer, the footprint mask.Crop subtracts
// from the matching mask layer.
func unionObjectLayers(objectSlices [][]*slice.Slice) []geom2d.MultiPolygon {
	layerCount := 0
	for _, obj := range objectSlices {
		if len(obj) > layerCount {
			layerCount = len(obj)
		}
	}
	objectLayers := make([]geom2d.MultiPolygon, layerCount)
	for _, obj := range objectSlices {
		for k, sl := range obj {
			objectLayers[k] = objectLayers[k].UnionWith(sl.MainPolygon)
		}
	}
	return objectLayers
}

func flatten(objectSlices [][]*slice.Slice) []*slice.Slice {
	var out []*slice.Slice
	for _, obj := range objectSlices {
		out = append(out, obj...)
	}
	return out
}
