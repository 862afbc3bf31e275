package geom2d

import "math"

// OffsetFrom computes the Minkowski sum of mp with a disc of radius delta
// (delta < 0 shrinks). Each ring is displaced along its per-edge outward
// normal and reconnected with mitred joins, the same normal-offset-and-join
// construction internal/stroke/expander.go uses for open strokes, applied
// here to closed rings.
func OffsetFrom(mp MultiPolygon, delta float32) MultiPolygon {
	if delta == 0 {
		return mp
	}
	out := make(MultiPolygon, 0, len(mp))
	for _, p := range mp {
		ext := offsetRing(p.Exterior, delta, true)
		if len(ext) < 3 || absF32(ext.Area()) < Epsilon {
			continue
		}
		var holes []Ring
		for _, h := range p.Holes {
			// Holes offset the opposite direction: growing the exterior
			// shrinks holes and vice versa.
			oh := offsetRing(h, -delta, false)
			if len(oh) >= 3 && absF32(oh.Area()) >= Epsilon {
				holes = append(holes, oh)
			}
		}
		out = append(out, Polygon{Exterior: ext, Holes: holes}.Canonicalize())
	}
	return dropDegenerate(out)
}

// offsetRing displaces every edge of r outward by delta along its normal and
// intersects consecutive displaced edges to find the new vertices. Every
// ring, exterior or not, is offset as a CCW ring and returned CCW; the
// exterior flag does not change the result.
func offsetRing(r Ring, delta float32, exterior bool) Ring {
	n := len(r)
	if n < 3 {
		return nil
	}
	r = r.EnsureOrientation(true)
	if !exterior {
		// holes are processed CCW internally then flipped back by the caller
	}

	type edge struct{ a, b Point }
	edges := make([]edge, n)
	normals := make([]Point, n)
	for i := 0; i < n; i++ {
		a := r[i]
		b := r[(i+1)%n]
		edges[i] = edge{a, b}
		dir := b.Sub(a).Normalize()
		// Outward normal for a CCW ring is the clockwise perpendicular.
		normals[i] = Point{dir.Y, -dir.X}
	}

	out := make(Ring, 0, n)
	for i := 0; i < n; i++ {
		prev := edges[(i-1+n)%n]
		cur := edges[i]
		pn := normals[(i-1+n)%n]
		cn := normals[i]

		pa := prev.a.Add(pn.Mul(delta))
		pb := prev.b.Add(pn.Mul(delta))
		ca := cur.a.Add(cn.Mul(delta))
		cb := cur.b.Add(cn.Mul(delta))

		if pt, ok := lineIntersect(pa, pb, ca, cb); ok {
			out = append(out, pt)
		} else {
			// Parallel/degenerate edges: use the midpoint of the two
			// displaced endpoints as a mitred fallback vertex.
			out = append(out, pb.Lerp(ca, 0.5))
		}
	}
	return out
}

// lineIntersect finds the intersection of infinite lines through (p1,p2)
// and (p3,p4).
func lineIntersect(p1, p2, p3, p4 Point) (Point, bool) {
	d1 := p2.Sub(p1)
	d2 := p4.Sub(p3)
	denom := d1.Cross(d2)
	if math.Abs(float64(denom)) < 1e-9 {
		return Point{}, false
	}
	t := p3.Sub(p1).Cross(d2) / denom
	return p1.Add(d1.Mul(t)), true
}
