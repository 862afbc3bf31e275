// Package tower builds the TriangleTower: a vertex-sorted prism index that
// lets the slicer intersect a mesh with a Z-plane in amortised O(changes)
// per call instead of re-scanning every triangle at every layer.
//
// Ring fragments are arena-allocated and linked by index rather than
// pointer, the same pooled-slab allocation idiom used by
// internal/parallel/tile_pool.go.
package tower

import (
	"sort"

	"github.com/slicekit/core/geom2d"
	"github.com/slicekit/core/mesh"
	"github.com/slicekit/core/slicerr"
)

// TriangleTower is the per-mesh derived structure the slicer walks
// layer-by-layer.
type TriangleTower struct {
	mesh *mesh.ObjectMesh

	// sortedVerts lists vertex indices in ascending Z order.
	sortedVerts []uint32

	// startBucket[v] lists triangle indices (into mesh.Triangles) whose
	// lowest vertex (post Z-canonicalisation) is v.
	startBucket map[uint32][]int

	// endBucket[v] lists triangle indices whose highest vertex is v.
	endBucket map[uint32][]int

	// orientation[i] is -1 when sorting the i'th triangle's ORIGINAL vertex
	// order by Z was an odd permutation (which reverses its winding) and +1
	// otherwise, used to keep slice loop winding consistent regardless of
	// how canonicalization permuted the triangle's vertex list.
	orientation []int8
}

// New constructs a TriangleTower from m. origOrder must be the same
// triangles m was built from, in their pre-canonicalisation order, so the
// tower can recover a consistent winding sign; callers typically get both
// from the same mesh.New call.
func New(m *mesh.ObjectMesh, origOrder []mesh.Triangle) (*TriangleTower, error) {
	if len(m.Triangles) == 0 {
		return nil, slicerr.ErrNoTriangles
	}
	if len(m.Vertices) == 0 {
		return nil, slicerr.ErrEmptyObject
	}

	n := len(m.Vertices)
	order := make([]uint32, n)
	for i := range order {
		order[i] = uint32(i)
	}
	sort.Slice(order, func(i, j int) bool {
		za, zb := m.Vertices[order[i]].Z, m.Vertices[order[j]].Z
		if za != zb {
			return za < zb
		}
		return order[i] < order[j]
	})

	t := &TriangleTower{
		mesh:        m,
		sortedVerts: order,
		startBucket: make(map[uint32][]int),
		endBucket:   make(map[uint32][]int),
		orientation: make([]int8, len(m.Triangles)),
	}

	for i, tri := range m.Triangles {
		t.startBucket[tri[0]] = append(t.startBucket[tri[0]], i)
		t.endBucket[tri[2]] = append(t.endBucket[tri[2]], i)

		sign := int8(1)
		if len(origOrder) == len(m.Triangles) {
			o := origOrder[i]
			even := tri == o || tri == (mesh.Triangle{o[1], o[2], o[0]}) || tri == (mesh.Triangle{o[2], o[0], o[1]})
			if !even {
				sign = -1
			}
		}
		t.orientation[i] = sign
	}

	return t, nil
}

// MaxZ returns the highest vertex Z in the tower, used to bound slicing.
func (t *TriangleTower) MaxZ() float32 {
	if len(t.sortedVerts) == 0 {
		return 0
	}
	return t.mesh.Vertices[t.sortedVerts[len(t.sortedVerts)-1]].Z
}

// MinZ returns the lowest vertex Z in the tower.
func (t *TriangleTower) MinZ() float32 {
	if len(t.sortedVerts) == 0 {
		return 0
	}
	return t.mesh.Vertices[t.sortedVerts[0]].Z
}

// Iterator returns a fresh TriangleTowerIterator positioned before the
// tower's lowest vertex.
func (t *TriangleTower) Iterator() *TriangleTowerIterator {
	return &TriangleTowerIterator{
		tower:      t,
		active:     make(map[int]struct{}),
		currentZ:   t.MinZ(),
		firstCall:  true,
	}
}

// TriangleTowerIterator maintains a Z-monotone frontier of active (plane-
// straddling) triangles, advanced by AdvanceToHeight.
type TriangleTowerIterator struct {
	tower     *TriangleTower
	currentZ  float32
	vertPos   int
	active    map[int]struct{}
	firstCall bool
}

// AdvanceToHeight moves the iterator's frontier to z, retiring triangles
// whose highest vertex has been passed and activating triangles whose
// lowest vertex has been reached. Fails with OutOfOrderHeight if z is lower
// than the iterator's current height.
func (it *TriangleTowerIterator) AdvanceToHeight(z float32) error {
	if !it.firstCall && z < it.currentZ {
		return slicerr.ErrOutOfOrderHeight
	}
	it.firstCall = false

	verts := it.tower.sortedVerts
	for it.vertPos < len(verts) && it.tower.mesh.Vertices[verts[it.vertPos]].Z <= z {
		v := verts[it.vertPos]
		for _, ti := range it.tower.startBucket[v] {
			it.active[ti] = struct{}{}
		}
		for _, ti := range it.tower.endBucket[v] {
			delete(it.active, ti)
		}
		it.vertPos++
	}
	it.currentZ = z
	return nil
}

// segment is one triangle's Z-plane intersection, directed so that
// consecutive fragments can be chained by matching endpoints.
type segment struct {
	a, b geom2d.Point
}

// GetPoints returns every closed polygon loop formed by the currently
// active triangles' intersection with the plane at the iterator's current
// height. Loops are assembled by matching segment endpoints via a
// key-based map; a loop that does not close
// within MaxLoopIterations edges aborts with LoopExceededMaxIterations.
func (it *TriangleTowerIterator) GetPoints() ([]geom2d.Ring, error) {
	z := it.currentZ
	m := it.tower.mesh

	segments := make([]segment, 0, len(it.active))
	for ti := range it.active {
		tri := m.Triangles[ti]
		p0, p1, p2 := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
		if p0.Z == p2.Z {
			// Coplanar triangle at the cut height: ambiguous, reject
			// upstream.
			return nil, slicerr.ErrUnableToStartSlice
		}

		var a, b geom2d.Point
		if z <= p1.Z {
			a = lerpEdge(p0, p2, z)
			b = lerpEdge(p0, p1, z)
		} else {
			a = lerpEdge(p0, p2, z)
			b = lerpEdge(p1, p2, z)
		}
		if it.tower.orientation[ti] < 0 {
			a, b = b, a
		}
		segments = append(segments, segment{a: a, b: b})
	}

	return chainSegments(segments)
}

// lerpEdge interpolates the XY position of the edge p-q at height z.
func lerpEdge(p, q mesh.Vec3, z float32) geom2d.Point {
	if q.Z == p.Z {
		return geom2d.Pt(p.X, p.Y)
	}
	t := (z - p.Z) / (q.Z - p.Z)
	return geom2d.Pt(p.X+(q.X-p.X)*t, p.Y+(q.Y-p.Y)*t)
}

const quantize = 1.0 / 1e-4

func key(p geom2d.Point) [2]int64 {
	return [2]int64{int64(p.X * quantize), int64(p.Y * quantize)}
}

// chainSegments links directed segments sharing endpoints into closed
// loops, walking each fragment's next-link (keyed by quantized endpoint
// coordinates) until it returns to its start.
func chainSegments(segments []segment) ([]geom2d.Ring, error) {
	startIndex := make(map[[2]int64][]int)
	for i, s := range segments {
		k := key(s.a)
		startIndex[k] = append(startIndex[k], i)
	}

	used := make([]bool, len(segments))
	var loops []geom2d.Ring

	for i := range segments {
		if used[i] {
			continue
		}
		var ring geom2d.Ring
		cur := i
		iterations := 0
		for {
			used[cur] = true
			ring = append(ring, segments[cur].a)
			nextKey := key(segments[cur].b)
			candidates := startIndex[nextKey]
			found := -1
			for _, c := range candidates {
				if !used[c] {
					found = c
					break
				}
			}
			iterations++
			if iterations > slicerr.MaxLoopIterations {
				return nil, slicerr.ErrLoopExceededMaxIterations
			}
			if found == -1 {
				// Closed back to the ring's own start.
				break
			}
			cur = found
		}
		if len(ring) >= 3 {
			loops = append(loops, ring)
		}
	}
	return loops, nil
}
