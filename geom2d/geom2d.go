// Package geom2d is the 2D polygon kernel: boolean ops, offsetting,
// simplification and convex hull over multipolygons of float32
// coordinates.
//
// The point/vector types follow the internal/clip.Point and vec.go idiom
// (position vs. displacement kept as distinct types), narrowed to float32
// because slice geometry uses float32 throughout.
package geom2d

import "math"

// Epsilon is the smallest loop area kept by the kernel; anything smaller is
// considered degenerate and dropped.
const Epsilon = 1e-4

// Point is a 2D coordinate.
type Point struct {
	X, Y float32
}

// Pt is a convenience constructor.
func Pt(x, y float32) Point { return Point{X: x, Y: y} }

// Add returns the sum of two points treated as vectors.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul scales the point.
func (p Point) Mul(s float32) Point { return Point{p.X * s, p.Y * s} }

// Dot returns the dot product of two points treated as vectors.
func (p Point) Dot(q Point) float32 { return p.X*q.X + p.Y*q.Y }

// Cross returns the 2D cross product (z component of the 3D cross product).
func (p Point) Cross(q Point) float32 { return p.X*q.Y - p.Y*q.X }

// Length returns the Euclidean length of p treated as a vector.
func (p Point) Length() float32 { return float32(math.Sqrt(float64(p.X*p.X + p.Y*p.Y))) }

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float32 { return p.Sub(q).Length() }

// Normalize returns a unit vector in the direction of p, or the zero vector
// if p is too short to normalize safely.
func (p Point) Normalize() Point {
	l := p.Length()
	if l < 1e-9 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Lerp linearly interpolates between p and q.
func (p Point) Lerp(q Point, t float32) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Perp returns p rotated 90 degrees counter-clockwise.
func (p Point) Perp() Point { return Point{-p.Y, p.X} }

// Ring is a single closed loop of points. The last point is implicitly
// connected back to the first; Ring never repeats the start point at the
// end.
type Ring []Point

// Area returns the signed area of the ring via the shoelace formula
// Σ(x1·y2 − x2·y1)/2, which equals the "Σ(x1+x2)(y2-y1)" form halved and is
// positive for CCW rings.
func (r Ring) Area() float32 {
	if len(r) < 3 {
		return 0
	}
	var sum float32
	n := len(r)
	for i := 0; i < n; i++ {
		a := r[i]
		b := r[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// IsCCW reports whether the ring is wound counter-clockwise (positive area).
func (r Ring) IsCCW() bool { return r.Area() > 0 }

// Reversed returns the ring with its winding order flipped.
func (r Ring) Reversed() Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// EnsureOrientation returns r wound CCW if ccw is true, CW otherwise.
func (r Ring) EnsureOrientation(ccw bool) Ring {
	if r.IsCCW() == ccw {
		return r
	}
	return r.Reversed()
}

// Bounds returns the axis-aligned bounding box of the ring.
func (r Ring) Bounds() (min, max Point) {
	if len(r) == 0 {
		return Point{}, Point{}
	}
	min, max = r[0], r[0]
	for _, p := range r[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Contains performs strict point-in-ring containment via ray casting, the
// same winding-number classification path_ops.go uses.
func (r Ring) Contains(pt Point) bool {
	inside := false
	n := len(r)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := r[i], r[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			xInt := (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y) + a.X
			if pt.X < xInt {
				inside = !inside
			}
		}
	}
	return inside
}

// Polygon is one exterior ring (CCW) plus zero or more hole rings (CW),
// the kernel's canonical orientation.
type Polygon struct {
	Exterior Ring
	Holes    []Ring
}

// Canonicalize fixes winding orientation: exterior CCW, holes CW.
func (p Polygon) Canonicalize() Polygon {
	out := Polygon{Exterior: p.Exterior.EnsureOrientation(true)}
	for _, h := range p.Holes {
		out.Holes = append(out.Holes, h.EnsureOrientation(false))
	}
	return out
}

// Contains tests strict containment in the exterior minus holes.
func (p Polygon) Contains(pt Point) bool {
	if !p.Exterior.Contains(pt) {
		return false
	}
	for _, h := range p.Holes {
		if h.Contains(pt) {
			return false
		}
	}
	return true
}

// Area returns the polygon's area (exterior minus holes).
func (p Polygon) Area() float32 {
	a := absF32(p.Exterior.Area())
	for _, h := range p.Holes {
		a -= absF32(h.Area())
	}
	return a
}

// MultiPolygon is zero or more disjoint Polygons, the working representation
// of a Slice's main_polygon and remaining_area.
type MultiPolygon []Polygon

// IsEmpty reports whether the multipolygon has no area-bearing content.
func (mp MultiPolygon) IsEmpty() bool {
	for _, p := range mp {
		if absF32(p.Exterior.Area()) >= Epsilon {
			return false
		}
	}
	return true
}

// Bounds returns the bounding box across every exterior ring.
func (mp MultiPolygon) Bounds() (min, max Point) {
	first := true
	for _, p := range mp {
		lo, hi := p.Exterior.Bounds()
		if first {
			min, max = lo, hi
			first = false
			continue
		}
		if lo.X < min.X {
			min.X = lo.X
		}
		if lo.Y < min.Y {
			min.Y = lo.Y
		}
		if hi.X > max.X {
			max.X = hi.X
		}
		if hi.Y > max.Y {
			max.Y = hi.Y
		}
	}
	return min, max
}

// Contains reports whether pt lies in any constituent polygon.
func (mp MultiPolygon) Contains(pt Point) bool {
	for _, p := range mp {
		if p.Contains(pt) {
			return true
		}
	}
	return false
}

// dropDegenerate removes rings whose absolute area is below Epsilon.
func dropDegenerate(mp MultiPolygon) MultiPolygon {
	out := make(MultiPolygon, 0, len(mp))
	for _, p := range mp {
		if absF32(p.Exterior.Area()) < Epsilon {
			continue
		}
		kept := p.Holes[:0:0]
		for _, h := range p.Holes {
			if absF32(h.Area()) >= Epsilon {
				kept = append(kept, h)
			}
		}
		p.Holes = kept
		out = append(out, p)
	}
	return out
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
