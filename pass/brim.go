package pass

import (
	"github.com/slicekit/core/geom2d"
	"github.com/slicekit/core/move"
	"github.com/slicekit/core/settings"
	"github.com/slicekit/core/slice"
)

// BrimPass rings object 0's first-layer footprint with
// floor(brim.width/extrusion_width.ext_surface) concentric outward offsets,
// each a looped WallOuter chain. It runs after SkirtPass so brim loops are
// inserted after the skirt in FixedChains.
func BrimPass(objects [][]*slice.Slice, s *settings.Settings) error {
	if !s.Brim.Enabled || len(objects) == 0 || !ensureSlices(objects[0]) {
		return nil
	}
	width := s.ExtrusionWidth.ExteriorSurface
	if width <= 0 {
		return nil
	}
	rings := int(s.Brim.Width / width)
	if rings <= 0 {
		return nil
	}

	first := objects[0][0]
	base := first.MainPolygon
	for i := 1; i <= rings; i++ {
		offset := width * float32(i)
		loop := geom2d.OffsetFrom(base, offset)
		for _, p := range loop {
			chain := move.FromRing(p.Exterior, width, move.WithoutFiber(move.TraceWallOuter))
			first.FixedChains = append(first.FixedChains, chain)
		}
	}
	return nil
}
