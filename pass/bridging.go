package pass

import (
	"math"

	"github.com/slicekit/core/geom2d"
	"github.com/slicekit/core/move"
	"github.com/slicekit/core/settings"
	"github.com/slicekit/core/slice"
)

// BridgingPass fills unsupported area over a gap in the layer below with
// parallel lines at the angle that best aligns with the unsupported
// boundary. It starts at slice index 1 and is sequential: each layer reads
// the main_polygon of the one directly below it.
func BridgingPass(slices []*slice.Slice, s *settings.Settings) error {
	if len(slices) < 2 {
		return nil
	}
	for k := 1; k < len(slices); k++ {
		sl := slices[k]
		below := slices[k-1].MainPolygon

		unsupported := sl.RemainingArea.DifferenceWith(below)
		solidArea := geom2d.OffsetFrom(unsupported, 4*s.BridgeWidth).IntersectionWith(sl.RemainingArea)
		if solidArea.IsEmpty() {
			continue
		}

		width := s.ExtrusionWidth.Infill
		for _, poly := range solidArea {
			angle := bridgeAngle(poly)
			chain := rasterFillPolygon(poly, angle, s.BridgeWidth, width, 0, move.TraceBridging)
			if chain != nil {
				sl.Chains = append(sl.Chains, chain)
			}
		}
		sl.RemainingArea = sl.RemainingArea.DifferenceWith(solidArea)
	}
	return nil
}

// bridgeAngle picks, among the edges of poly, the one whose own direction
// minimises the sum of |projection| of every other edge onto that edge's
// perpendicular — i.e. the direction most "endorsed" by the rest of the
// boundary as the direction to span the gap along.
func bridgeAngle(poly geom2d.Polygon) float32 {
	edges := polygonEdgeVectors(poly)
	if len(edges) == 0 {
		return 0
	}

	best := 0
	bestScore := float32(math.MaxFloat32)
	for i, e := range edges {
		d := e.Normalize()
		if d.X == 0 && d.Y == 0 {
			continue
		}
		perp := d.Perp()
		var score float32
		for j, o := range edges {
			if j == i {
				continue
			}
			score += abs32(o.Dot(perp))
		}
		if score < bestScore {
			bestScore = score
			best = i
		}
	}

	d := edges[best].Normalize()
	return float32(math.Atan2(float64(d.Y), float64(d.X)))
}

func polygonEdgeVectors(poly geom2d.Polygon) []geom2d.Point {
	var out []geom2d.Point
	add := func(r geom2d.Ring) {
		n := len(r)
		for i := 0; i < n; i++ {
			out = append(out, r[(i+1)%n].Sub(r[i]))
		}
	}
	add(poly.Exterior)
	for _, h := range poly.Holes {
		add(h)
	}
	return out
}
