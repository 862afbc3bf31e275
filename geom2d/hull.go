package geom2d

import "sort"

// ConvexHull computes the convex hull of every point across mp via Andrew's
// monotone chain algorithm. The result is a single exterior-only polygon.
func ConvexHull(mp MultiPolygon) Polygon {
	var pts []Point
	for _, p := range mp {
		pts = append(pts, p.Exterior...)
		for _, h := range p.Holes {
			pts = append(pts, h...)
		}
	}
	return Polygon{Exterior: ConvexHullPoints(pts)}
}

// ConvexHullPoints computes the convex hull ring of a raw point set.
func ConvexHullPoints(pts []Point) Ring {
	pts = dedupSorted(pts)
	n := len(pts)
	if n < 3 {
		return Ring(pts)
	}

	cross := func(o, a, b Point) float32 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	lower := make([]Point, 0, n)
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	upper := make([]Point, 0, n)
	for i := n - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	return Ring(hull).EnsureOrientation(true)
}

func dedupSorted(pts []Point) []Point {
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	out := pts[:0:0]
	for i, p := range pts {
		if i > 0 && p == pts[i-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ClipToRect clips mp to an axis-aligned rectangle [min,max], used by
// SkirtPass to keep the skirt within the print bed.
func ClipToRect(mp MultiPolygon, min, max Point) MultiPolygon {
	rect := Polygon{Exterior: Ring{
		{min.X, min.Y}, {max.X, min.Y}, {max.X, max.Y}, {min.X, max.Y},
	}}
	return mp.IntersectionWith(MultiPolygon{rect})
}
