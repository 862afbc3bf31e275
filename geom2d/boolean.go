package geom2d

import "sort"

// Op selects the boolean operation performed by clipRings.
type Op int

const (
	OpUnion Op = iota
	OpIntersection
	OpDifference
)

// vertex is a node in the Greiner-Hormann doubly linked polygon
// representation: either an original ring vertex or a synthesized
// intersection vertex shared between the two input rings.
type vertex struct {
	p            Point
	next, prev   *vertex
	neighbor     *vertex // paired vertex in the other ring, for intersections
	intersection bool
	entry        bool
	alpha        float32 // parametric position along the edge, for sorting
	visited      bool
}

func buildRing(r Ring) *vertex {
	n := len(r)
	verts := make([]*vertex, n)
	for i, p := range r {
		verts[i] = &vertex{p: p}
	}
	for i := 0; i < n; i++ {
		verts[i].next = verts[(i+1)%n]
		verts[i].prev = verts[(i-1+n)%n]
	}
	return verts[0]
}

// clipRings implements the boolean ops
// for a single pair of simple (non-self-intersecting) rings, using a
// from-scratch Greiner-Hormann clipper. Point classification for entry/exit
// flags reuses Ring.Contains, the same winding-number test path_ops.go
// uses.
func clipRings(subject, clip Ring, op Op) []Ring {
	if len(subject) < 3 || len(clip) < 3 {
		return fallbackClip(subject, clip, op)
	}

	sHead := buildRing(subject)
	cHead := buildRing(clip)

	intersections := findIntersections(sHead, cHead)
	if intersections == 0 {
		return noIntersectionCase(subject, clip, op)
	}

	markEntryExit(sHead, clip, op, false)
	markEntryExit(cHead, subject, op, true)

	return traceResult(sHead, op)
}

// findIntersections walks every edge pair between the two rings, inserting
// paired intersection vertices into both linked lists in parametric order.
// Returns the number of intersections found.
func findIntersections(sHead, cHead *vertex) int {
	count := 0

	sVerts := collect(sHead)
	cVerts := collect(cHead)

	sHits := make(map[*vertex][]hit)
	cHits := make(map[*vertex][]hit)

	for _, sv := range sVerts {
		for _, cv := range cVerts {
			pt, ta, tb, ok := segmentIntersect(sv.p, sv.next.p, cv.p, cv.next.p)
			if !ok {
				continue
			}
			count++
			sIv := &vertex{p: pt, intersection: true, alpha: ta}
			cIv := &vertex{p: pt, intersection: true, alpha: tb}
			sIv.neighbor = cIv
			cIv.neighbor = sIv
			sHits[sv] = append(sHits[sv], hit{alpha: ta, pt: pt, other: sIv})
			cHits[cv] = append(cHits[cv], hit{alpha: tb, pt: pt, other: cIv})
		}
	}

	insertHits(sVerts, sHits)
	insertHits(cVerts, cHits)

	return count
}

func collect(head *vertex) []*vertex {
	var out []*vertex
	v := head
	for {
		out = append(out, v)
		v = v.next
		if v == head {
			break
		}
	}
	return out
}

// hit is one intersection found on an edge, recorded against the edge's
// start vertex until insertHits splices it into that ring.
type hit struct {
	alpha float32
	pt    Point
	other *vertex // the intersection vertex to insert into this edge's ring
}

func insertHits(verts []*vertex, hits map[*vertex][]hit) {
	for _, v := range verts {
		list := hits[v]
		if len(list) == 0 {
			continue
		}
		sort.Slice(list, func(i, j int) bool { return list[i].alpha < list[j].alpha })
		after := v
		nextOrig := v.next
		for _, h := range list {
			iv := h.other
			iv.prev = after
			iv.next = nextOrig
			after.next = iv
			nextOrig.prev = iv
			after = iv
		}
	}
}

// segmentIntersect returns the intersection point and the parametric
// position along each segment, if the open segments properly intersect.
func segmentIntersect(a1, a2, b1, b2 Point) (Point, float32, float32, bool) {
	d1 := a2.Sub(a1)
	d2 := b2.Sub(b1)
	denom := d1.Cross(d2)
	if denom > -1e-9 && denom < 1e-9 {
		return Point{}, 0, 0, false
	}
	diff := b1.Sub(a1)
	t := diff.Cross(d2) / denom
	u := diff.Cross(d1) / denom
	if t <= 1e-7 || t >= 1-1e-7 || u <= 1e-7 || u >= 1-1e-7 {
		return Point{}, 0, 0, false
	}
	return a1.Add(d1.Mul(t)), t, u, true
}

// markEntryExit classifies every intersection vertex in the ring headed by
// head as entry (crossing into other) or exit, alternating along the ring
// starting from whichever state the first vertex's containment implies.
func markEntryExit(head *vertex, other Ring, op Op, isClip bool) {
	v := head
	start := head.p.Add(Point{1e-5, 1e-5})
	_ = start
	inside := other.Contains(head.p)
	first := true
	for {
		if v.intersection {
			inside = !inside
			v.entry = inside
		}
		v = v.next
		if v == head && !first {
			break
		}
		first = false
	}
}

// traceResult walks the combined linked structure starting at each
// unvisited intersection, producing output rings per the standard
// Greiner-Hormann traversal rule for the requested operation.
func traceResult(sHead *vertex, op Op) []Ring {
	var rings []Ring
	starts := collect(sHead)
	for _, start := range starts {
		if !start.intersection || start.visited {
			continue
		}
		var ring Ring
		v := start
		onSubject := true
		for {
			v.visited = true
			if v.neighbor != nil {
				v.neighbor.visited = true
			}
			ring = append(ring, v.p)

			// Intersection keeps inside the other ring on both lists, union
			// keeps outside on both, difference keeps outside the clip ring
			// along the subject and inside the subject along the clip.
			forward := v.entry
			if op == OpUnion || (op == OpDifference && onSubject) {
				forward = !forward
			}
			if forward {
				v = v.next
			} else {
				v = v.prev
			}
			for !v.intersection {
				ring = append(ring, v.p)
				if forward {
					v = v.next
				} else {
					v = v.prev
				}
			}
			v = v.neighbor
			onSubject = !onSubject
			if v == nil || v == start {
				break
			}
			if v.visited && v != start {
				break
			}
		}
		if len(ring) >= 3 {
			rings = append(rings, ring.EnsureOrientation(true))
		}
	}
	return rings
}

// noIntersectionCase handles the common degenerate inputs where the two
// rings never cross: one fully contains the other, or they are disjoint.
func noIntersectionCase(subject, clip Ring, op Op) []Ring {
	subjInClip := len(clip) > 0 && clip.Contains(subject[0])
	clipInSubj := len(subject) > 0 && subject.Contains(clip[0])

	switch op {
	case OpUnion:
		if subjInClip {
			return []Ring{clip}
		}
		if clipInSubj {
			return []Ring{subject}
		}
		return []Ring{subject, clip}
	case OpIntersection:
		if subjInClip {
			return []Ring{subject}
		}
		if clipInSubj {
			return []Ring{clip}
		}
		return nil
	case OpDifference:
		if clipInSubj {
			// clip becomes a hole of subject; callers handle hole
			// reassembly via the polygon-level nesting pass.
			return []Ring{subject, clip.Reversed()}
		}
		if subjInClip {
			return nil
		}
		return []Ring{subject}
	}
	return nil
}

// fallbackClip handles degenerate (too-short) rings conservatively.
func fallbackClip(subject, clip Ring, op Op) []Ring {
	switch op {
	case OpUnion:
		var out []Ring
		if len(subject) >= 3 {
			out = append(out, subject)
		}
		if len(clip) >= 3 {
			out = append(out, clip)
		}
		return out
	case OpDifference:
		if len(subject) >= 3 {
			return []Ring{subject}
		}
		return nil
	default:
		return nil
	}
}
