package pass

import (
	"math"

	"github.com/slicekit/core/move"
	"github.com/slicekit/core/settings"
	"github.com/slicekit/core/slice"
)

// FiberInfillPass lays fiber-reinforced infill lines across RemainingArea
// on a layer cycle of length C = fiber.width + fiber.spacing: layers that
// fall within the spacing portion of the cycle print plain plastic, the
// rest co-deposit fiber. The pass never shrinks RemainingArea — FillAreaPass
// still consumes it afterwards.
func FiberInfillPass(slices []*slice.Slice, s *settings.Settings) error {
	if !s.Fiber.Enabled || !ensureSlices(slices) {
		return nil
	}
	c := s.Fiber.Width + s.Fiber.Spacing
	if c <= 0 {
		return nil
	}
	width := s.ExtrusionWidth.Infill
	for k, sl := range slices {
		pos := math.Mod(float64(k+1), float64(c))
		withFiber := !(pos < float64(s.Fiber.Spacing))

		angle := rotationAngle(k)
		trace := move.TraceInfill
		chains := rasterFillMulti(sl.RemainingArea, angle, s.Fiber.Width+s.Fiber.Spacing, width, 0, trace)
		for _, ch := range chains {
			if withFiber {
				tagFiber(ch, trace)
			}
		}
		sl.Chains = append(sl.Chains, chains...)
	}
	return nil
}

// tagFiber rewrites every extrusion move of c to carry the fiber variant of
// its trace type.
func tagFiber(c *move.MoveChain, trace move.TraceType) {
	for i, m := range c.Moves {
		if m.Type.IsExtrusion() {
			c.Moves[i].Type = move.WithFiber(trace)
		}
	}
}
