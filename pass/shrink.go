package pass

import (
	"github.com/slicekit/core/geom2d"
	"github.com/slicekit/core/settings"
	"github.com/slicekit/core/slice"
)

// ShrinkPass shrinks RemainingArea, SupportTower and SupportInterface by
// layer_shrink_amount, when enabled. It is independent per slice and safe
// to run in parallel across an object's slices.
func ShrinkPass(slices []*slice.Slice, s *settings.Settings) error {
	if s.LayerShrinkAmount == 0 || !ensureSlices(slices) {
		return nil
	}
	delta := -s.LayerShrinkAmount
	for _, sl := range slices {
		sl.RemainingArea = geom2d.OffsetFrom(sl.RemainingArea, delta)
		sl.SupportTower = geom2d.OffsetFrom(sl.SupportTower, delta)
		sl.SupportInterface = geom2d.OffsetFrom(sl.SupportInterface, delta)
	}
	return nil
}
