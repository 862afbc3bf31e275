package geom2d

import "container/heap"

// Simplify reduces every ring of mp using Visvalingam-Whyatt simplification
// at the given area tolerance (0.01mm for slices, 0.2mm under mask crop).
// The point-removal-by-priority structure mirrors the curve-flattening
// reduction loop in internal/path/flatten.go, adapted from "subdivide
// until within tolerance" to "remove until below tolerance".
func Simplify(mp MultiPolygon, eps float32) MultiPolygon {
	out := make(MultiPolygon, len(mp))
	for i, p := range mp {
		out[i] = Polygon{
			Exterior: simplifyRing(p.Exterior, eps),
			Holes:    simplifyHoles(p.Holes, eps),
		}
	}
	return dropDegenerate(out)
}

func simplifyHoles(holes []Ring, eps float32) []Ring {
	out := make([]Ring, 0, len(holes))
	for _, h := range holes {
		out = append(out, simplifyRing(h, eps))
	}
	return out
}

type vwNode struct {
	idx        int
	prev, next *vwNode
	area       float32
	heapIdx    int
	removed    bool
}

type vwHeap []*vwNode

func (h vwHeap) Len() int            { return len(h) }
func (h vwHeap) Less(i, j int) bool  { return h[i].area < h[j].area }
func (h vwHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIdx = i
	h[j].heapIdx = j
}
func (h *vwHeap) Push(x any) {
	n := x.(*vwNode)
	n.heapIdx = len(*h)
	*h = append(*h, n)
}
func (h *vwHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func triArea(a, b, c Point) float32 {
	return absF32((b.Sub(a)).Cross(c.Sub(a))) / 2
}

// simplifyRing keeps removing the point with the least "effective area"
// (the area of the triangle it forms with its neighbours) while that area
// stays below eps, as long as at least 3 points remain.
func simplifyRing(r Ring, eps float32) Ring {
	n := len(r)
	if n <= 3 {
		return r
	}
	nodes := make([]*vwNode, n)
	for i := range r {
		nodes[i] = &vwNode{idx: i}
	}
	for i := 0; i < n; i++ {
		nodes[i].next = nodes[(i+1)%n]
		nodes[i].prev = nodes[(i-1+n)%n]
	}
	for _, nd := range nodes {
		nd.area = triArea(r[nd.prev.idx], r[nd.idx], r[nd.next.idx])
	}

	h := make(vwHeap, 0, n)
	for _, nd := range nodes {
		heap.Push(&h, nd)
	}

	remaining := n
	for remaining > 3 && len(h) > 0 {
		smallest := h[0]
		if smallest.area > float32(eps) {
			break
		}
		heap.Pop(&h)
		if smallest.removed {
			continue
		}
		smallest.removed = true
		remaining--

		p, nx := smallest.prev, smallest.next
		p.next = nx
		nx.prev = p
		if !p.removed {
			p.area = triArea(r[p.prev.idx], r[p.idx], r[p.next.idx])
			heap.Fix(&h, p.heapIdx)
		}
		if !nx.removed {
			nx.area = triArea(r[nx.prev.idx], r[nx.idx], r[nx.next.idx])
			heap.Fix(&h, nx.heapIdx)
		}
	}

	out := make(Ring, 0, remaining)
	// Find any surviving node to start the walk.
	var start *vwNode
	for _, nd := range nodes {
		if !nd.removed {
			start = nd
			break
		}
	}
	if start == nil {
		return r
	}
	cur := start
	for {
		out = append(out, r[cur.idx])
		cur = cur.next
		if cur == start {
			break
		}
	}
	return out
}
