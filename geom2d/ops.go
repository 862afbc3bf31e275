package geom2d

import "sort"

// UnionWith returns the union of mp and other, canonicalised (exterior CCW,
// holes CW).
func (mp MultiPolygon) UnionWith(other MultiPolygon) MultiPolygon {
	return combine(mp, other, OpUnion)
}

// DifferenceWith returns mp minus other.
func (mp MultiPolygon) DifferenceWith(other MultiPolygon) MultiPolygon {
	return combine(mp, other, OpDifference)
}

// IntersectionWith returns the overlap of mp and other.
func (mp MultiPolygon) IntersectionWith(other MultiPolygon) MultiPolygon {
	return combine(mp, other, OpIntersection)
}

// combine runs the ring-pairwise clipper across every exterior (and hole)
// ring of both operands, then reassembles the resulting loops into
// polygons using the same smallest-enclosing-loop nesting rule the slicer
// uses via AssembleLoops, since a general boolean op over multi-ring polygons
// produces the same kind of unordered loop soup a tower cross-section
// does.
func combine(a, b MultiPolygon, op Op) MultiPolygon {
	var aRings, bRings []Ring
	for _, p := range a {
		aRings = append(aRings, p.Exterior)
		for _, h := range p.Holes {
			aRings = append(aRings, h.EnsureOrientation(false)) // treat holes as negative-area rings
		}
	}
	for _, p := range b {
		bRings = append(bRings, p.Exterior)
		for _, h := range p.Holes {
			bRings = append(bRings, h.EnsureOrientation(false))
		}
	}

	if len(aRings) == 0 {
		if op == OpUnion {
			return dropDegenerate(MultiPolygon{{}}.withRings(bRings))
		}
		return nil
	}
	if len(bRings) == 0 {
		if op == OpDifference || op == OpUnion {
			return dropDegenerate(MultiPolygon{{}}.withRings(aRings))
		}
		return nil
	}

	var loops []Ring
	switch op {
	case OpUnion:
		// Fold b's rings into a one at a time.
		acc := aRings
		for _, br := range bRings {
			acc = unionRingIntoSet(acc, br)
		}
		loops = acc
	case OpIntersection:
		for _, ar := range aRings {
			for _, br := range bRings {
				loops = append(loops, clipRings(ar, br, OpIntersection)...)
			}
		}
	case OpDifference:
		acc := aRings
		for _, br := range bRings {
			var next []Ring
			for _, ar := range acc {
				next = append(next, clipRings(ar, br, OpDifference)...)
			}
			acc = next
		}
		loops = acc
	}

	return AssembleLoops(loops)
}

func (MultiPolygon) withRings(rings []Ring) MultiPolygon {
	return AssembleLoops(rings)
}

func unionRingIntoSet(set []Ring, r Ring) []Ring {
	var out []Ring
	merged := r
	for _, s := range set {
		res := clipRings(s, merged, OpUnion)
		if len(res) == 1 {
			merged = res[0]
			continue
		}
		out = append(out, s)
	}
	out = append(out, merged)
	return out
}

// AssembleLoops nests a flat set of oriented loops into Polygons: loops are
// sorted by |area| descending, exterior (positive-area) loops become
// polygons and negative-area loops become holes of the smallest enclosing
// positive loop found by searching from smallest upward. This is the same
// reassembly the slicer needs for a tower cross-section's unordered loop
// soup.
func AssembleLoops(loops []Ring) MultiPolygon {
	type entry struct {
		ring Ring
		area float32
	}
	entries := make([]entry, 0, len(loops))
	for _, l := range loops {
		if len(l) < 3 {
			continue
		}
		a := l.Area()
		if absF32(a) < Epsilon {
			continue
		}
		entries = append(entries, entry{ring: l, area: a})
	}
	sort.Slice(entries, func(i, j int) bool {
		return absF32(entries[i].area) > absF32(entries[j].area)
	})

	var polys []Polygon
	var holes []entry
	for _, e := range entries {
		if e.area > 0 {
			polys = append(polys, Polygon{Exterior: e.ring})
		} else {
			holes = append(holes, e)
		}
	}

	// Search holes from smallest enclosing candidate upward: iterate
	// polygons from smallest to largest area and assign each hole to the
	// first (smallest) one that contains it.
	sort.Slice(polys, func(i, j int) bool {
		return absF32(polys[i].Exterior.Area()) < absF32(polys[j].Exterior.Area())
	})
	for _, h := range holes {
		pt := h.ring[0]
		for i := range polys {
			if polys[i].Exterior.Contains(pt) {
				polys[i].Holes = append(polys[i].Holes, h.ring)
				break
			}
		}
	}

	out := make(MultiPolygon, len(polys))
	for i, p := range polys {
		out[i] = p.Canonicalize()
	}
	return dropDegenerate(out)
}
