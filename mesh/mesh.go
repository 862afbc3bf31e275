// Package mesh provides ObjectMesh, the owned indexed triangle soup that
// feeds tower construction. Vec3/transform follow the Vec2/Matrix idiom in
// vec.go and matrix.go, lifted to three dimensions for mesh vertices.
package mesh

import (
	"fmt"
	"math"

	"github.com/slicekit/core/slicerr"
)

// Vec3 is a 3D point or displacement in millimetres.
type Vec3 struct {
	X, Y, Z float32
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Triangle is three indices into a mesh's vertex slice.
type Triangle [3]uint32

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// Union returns the smallest AABB containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: Vec3{minF(a.Min.X, b.Min.X), minF(a.Min.Y, b.Min.Y), minF(a.Min.Z, b.Min.Z)},
		Max: Vec3{maxF(a.Max.X, b.Max.X), maxF(a.Max.Y, b.Max.Y), maxF(a.Max.Z, b.Max.Z)},
	}
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Transform is a 4x4-equivalent affine transform stored as a 3x4 row-major
// matrix (no perspective row needed for translate/rotate/scale), mirroring
// the Matrix type in matrix.go but lifted to 3D.
type Transform struct {
	// Row-major 3x4: [a b c tx; d e f ty; g h i tz]
	M [3][4]float32
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{M: [3][4]float32{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	}}
}

// Translate returns a transform that moves points by (x, y, z).
func Translate(x, y, z float32) Transform {
	t := Identity()
	t.M[0][3] = x
	t.M[1][3] = y
	t.M[2][3] = z
	return t
}

// Apply transforms a point through t.
func (t Transform) Apply(p Vec3) Vec3 {
	return Vec3{
		X: t.M[0][0]*p.X + t.M[0][1]*p.Y + t.M[0][2]*p.Z + t.M[0][3],
		Y: t.M[1][0]*p.X + t.M[1][1]*p.Y + t.M[1][2]*p.Z + t.M[1][3],
		Z: t.M[2][0]*p.X + t.M[2][1]*p.Y + t.M[2][2]*p.Z + t.M[2][3],
	}
}

// Then composes t followed by o (o.Apply(t.Apply(p))).
func (t Transform) Then(o Transform) Transform {
	var out Transform
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += o.M[r][k] * t.M[k][c]
			}
			if c == 3 {
				sum += o.M[r][3]
			}
			out.M[r][c] = sum
		}
	}
	return out
}

// ObjectMesh is an owned indexed triangle soup.
type ObjectMesh struct {
	Vertices  []Vec3
	Triangles []Triangle
}

// New constructs an ObjectMesh, canonicalising each triangle's vertex order
// by ascending Z (tie-broken by index) as required by tower construction.
func New(vertices []Vec3, triangles []Triangle) (*ObjectMesh, error) {
	if len(triangles) == 0 {
		return nil, slicerr.ErrNoTriangles
	}
	m := &ObjectMesh{Vertices: vertices, Triangles: make([]Triangle, len(triangles))}
	for i, tri := range triangles {
		m.Triangles[i] = canonicalizeTriangle(vertices, tri)
	}
	return m, nil
}

// canonicalizeTriangle reorders a triangle's indices so they are sorted by
// ascending vertex Z, breaking ties by index.
func canonicalizeTriangle(vertices []Vec3, tri Triangle) Triangle {
	idx := [3]uint32{tri[0], tri[1], tri[2]}
	less := func(a, b uint32) bool {
		za, zb := vertices[a].Z, vertices[b].Z
		if za != zb {
			return za < zb
		}
		return a < b
	}
	// 3-element insertion sort.
	if less(idx[1], idx[0]) {
		idx[0], idx[1] = idx[1], idx[0]
	}
	if less(idx[2], idx[1]) {
		idx[1], idx[2] = idx[2], idx[1]
	}
	if less(idx[1], idx[0]) {
		idx[0], idx[1] = idx[1], idx[0]
	}
	return Triangle(idx)
}

// Transform applies t to every vertex, returning a new mesh (meshes are
// treated as immutable inputs).
func (m *ObjectMesh) Transform(t Transform) *ObjectMesh {
	out := &ObjectMesh{
		Vertices:  make([]Vec3, len(m.Vertices)),
		Triangles: m.Triangles,
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = t.Apply(v)
	}
	return out
}

// AABB returns the mesh's axis-aligned bounding box.
func (m *ObjectMesh) AABB() AABB {
	if len(m.Vertices) == 0 {
		return AABB{}
	}
	box := AABB{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		box.Min = Vec3{minF(box.Min.X, v.X), minF(box.Min.Y, v.Y), minF(box.Min.Z, v.Z)}
		box.Max = Vec3{maxF(box.Max.X, v.X), maxF(box.Max.Y, v.Y), maxF(box.Max.Z, v.Z)}
	}
	return box
}

// FitsWithin reports whether the mesh's AABB fits within [0,printX]x[0,printY]
// in X/Y and within printZ in Z, returning ErrObjectOutsidePrintVolume if not.
func (m *ObjectMesh) FitsWithin(printX, printY, printZ float32) error {
	box := m.AABB()
	if box.Min.X < -1e-4 || box.Min.Y < -1e-4 || box.Min.Z < -1e-4 ||
		box.Max.X > printX+1e-4 || box.Max.Y > printY+1e-4 || box.Max.Z > printZ+1e-4 {
		return fmt.Errorf("%w: bounds %+v exceed %gx%gx%g", slicerr.ErrObjectOutsidePrintVolume, box, printX, printY, printZ)
	}
	return nil
}

// CenterOnBed translates the mesh so its XY center sits at the origin and
// its minimum Z equals the bed height implied by settings.
func (m *ObjectMesh) CenterOnBed(bedZ float32) *ObjectMesh {
	box := m.AABB()
	cx := (box.Min.X + box.Max.X) / 2
	cy := (box.Min.Y + box.Max.Y) / 2
	return m.Transform(Translate(-cx, -cy, bedZ-box.Min.Z))
}

// roundTiny clamps values extremely close to zero, avoiding -0 artifacts in
// downstream orientation tests.
func roundTiny(v float32) float32 {
	if math.Abs(float64(v)) < 1e-12 {
		return 0
	}
	return v
}
