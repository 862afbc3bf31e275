package pass

import (
	"math"
	"sort"

	"github.com/slicekit/core/geom2d"
	"github.com/slicekit/core/move"
)

// rotatePoint rotates p about the origin by angle radians.
func rotatePoint(p geom2d.Point, angle float32) geom2d.Point {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return geom2d.Pt(p.X*c-p.Y*s, p.X*s+p.Y*c)
}

func rotateRing(r geom2d.Ring, angle float32) geom2d.Ring {
	out := make(geom2d.Ring, len(r))
	for i, p := range r {
		out[i] = rotatePoint(p, angle)
	}
	return out
}

func rotatePolygon(p geom2d.Polygon, angle float32) geom2d.Polygon {
	out := geom2d.Polygon{Exterior: rotateRing(p.Exterior, angle)}
	for _, h := range p.Holes {
		out.Holes = append(out.Holes, rotateRing(h, angle))
	}
	return out
}

// scanXIntersections returns the sorted X crossings of every ring of poly
// with the horizontal line y=y.
func scanXIntersections(poly geom2d.Polygon, y float32) []float32 {
	var xs []float32
	scan := func(r geom2d.Ring) {
		n := len(r)
		for i := 0; i < n; i++ {
			a := r[i]
			b := r[(i+1)%n]
			if (a.Y > y) != (b.Y > y) {
				t := (y - a.Y) / (b.Y - a.Y)
				xs = append(xs, a.X+t*(b.X-a.X))
			}
		}
	}
	scan(poly.Exterior)
	for _, h := range poly.Holes {
		scan(h)
	}
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	return xs
}

// rasterFillPolygon fills poly with boustrophedon raster lines at the given
// angle and spacing, returning a single chain whose lateral y-constant
// connectors between rows are Travel moves.
func rasterFillPolygon(poly geom2d.Polygon, angle, spacing, width, phase float32, trace move.TraceType) *move.MoveChain {
	if spacing <= 0 {
		return nil
	}
	rp := rotatePolygon(poly, -angle)
	min, max := geom2d.MultiPolygon{rp}.Bounds()

	leftToRight := true
	var chain *move.MoveChain
	started := false
	y0 := float32(math.Floor(float64((min.Y+phase)/spacing)))*spacing - phase

	for y := y0; y <= max.Y; y += spacing {
		xs := scanXIntersections(rp, y)
		if len(xs) < 2 {
			continue
		}
		type seg struct{ a, b float32 }
		var segs []seg
		for i := 0; i+1 < len(xs); i += 2 {
			segs = append(segs, seg{xs[i], xs[i+1]})
		}
		if !leftToRight {
			for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
				segs[i], segs[j] = segs[j], segs[i]
			}
		}
		for _, sgm := range segs {
			a, b := sgm.a, sgm.b
			if !leftToRight {
				a, b = b, a
			}
			p1 := rotatePoint(geom2d.Pt(a, y), angle)
			p2 := rotatePoint(geom2d.Pt(b, y), angle)
			if !started {
				chain = move.NewChain(p1, false)
				started = true
			} else {
				chain.Add(p1, 0, move.Travel())
			}
			chain.Add(p2, width, move.WithoutFiber(trace))
		}
		leftToRight = !leftToRight
	}
	return chain
}

// rasterFillMulti fills every polygon of mp, dropping empty results.
func rasterFillMulti(mp geom2d.MultiPolygon, angle, spacing, width, phase float32, trace move.TraceType) []*move.MoveChain {
	var chains []*move.MoveChain
	for _, poly := range mp {
		if c := rasterFillPolygon(poly, angle, spacing, width, phase, trace); c != nil {
			chains = append(chains, c)
		}
	}
	return chains
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
