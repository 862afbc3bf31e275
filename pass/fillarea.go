package pass

import (
	"math"

	"github.com/slicekit/core/move"
	"github.com/slicekit/core/settings"
	"github.com/slicekit/core/slice"
)

// FillAreaPass is the last consumer of RemainingArea: solid fill uses
// dense rectilinear at 45+120k degrees; partial fill dispatches by
// InfillType per the Linear/Rectilinear/Triangle/Cubic table. Lightning is
// handled entirely by LightningFillPass and is a no-op here. It is
// independent per slice.
func FillAreaPass(slices []*slice.Slice, s *settings.Settings) error {
	if !ensureSlices(slices) {
		return nil
	}
	width := s.ExtrusionWidth.Infill
	for k, sl := range slices {
		if sl.RemainingArea.IsEmpty() {
			continue
		}
		angle := rotationAngle(k)

		if s.InfillPercentage >= 100 {
			chains := rasterFillMulti(sl.RemainingArea, angle, width, width, 0, move.TraceSolidInfill)
			sl.Chains = append(sl.Chains, chains...)
			sl.RemainingArea = nil
			continue
		}
		if s.InfillPercentage <= 0 {
			sl.RemainingArea = nil
			continue
		}

		base := width / (s.InfillPercentage / 100)
		sl.Chains = append(sl.Chains, partialInfillChains(sl, s, k, base, width)...)
		sl.RemainingArea = nil
	}
	return nil
}

func partialInfillChains(sl *slice.Slice, s *settings.Settings, k int, base, width float32) []*move.MoveChain {
	switch s.InfillType {
	case settings.InfillLinear:
		return rasterFillMulti(sl.RemainingArea, 0, base, width, 0, move.TraceInfill)

	case settings.InfillRectilinear:
		var out []*move.MoveChain
		out = append(out, rasterFillMulti(sl.RemainingArea, degToRad(45), base, width, 0, move.TraceInfill)...)
		out = append(out, rasterFillMulti(sl.RemainingArea, degToRad(135), 2*base, width, 0, move.TraceInfill)...)
		return out

	case settings.InfillTriangle:
		var out []*move.MoveChain
		for _, deg := range []float64{45, 105, 165} {
			out = append(out, rasterFillMulti(sl.RemainingArea, degToRad(deg), 3*base, width, 0, move.TraceInfill)...)
		}
		return out

	case settings.InfillCubic:
		var out []*move.MoveChain
		phase := s.LayerHeight / float32(math.Sqrt2) * float32(k%3)
		for _, deg := range []float64{45, 165, 285} {
			out = append(out, rasterFillMulti(sl.RemainingArea, degToRad(deg), 3*base, width, phase, move.TraceInfill)...)
		}
		return out

	case settings.InfillLightning:
		return nil

	default:
		return nil
	}
}
