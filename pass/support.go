package pass

import (
	"github.com/slicekit/core/move"
	"github.com/slicekit/core/settings"
	"github.com/slicekit/core/slice"
)

// SupportPass fills each slice's SupportTower region with a fixed-spacing
// raster using the Support trace type. It is independent per slice.
func SupportPass(slices []*slice.Slice, s *settings.Settings) error {
	if !s.Support.Enabled || !ensureSlices(slices) {
		return nil
	}
	width := s.ExtrusionWidth.Support
	for _, sl := range slices {
		if sl.SupportTower.IsEmpty() {
			continue
		}
		chains := rasterFillMulti(sl.SupportTower, 0, s.Support.Spacing, width, 0, move.TraceSupport)
		sl.Chains = append(sl.Chains, chains...)
	}
	return nil
}
