package calc

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/math/f32"
	"golang.org/x/image/vector"

	"github.com/slicekit/core/geom2d"
	"github.com/slicekit/core/slice"
)

// debugPadding keeps a slice's polygon from touching the raster edge.
const debugPadding = 4

// DebugPNG rasterizes sl.MainPolygon into a grayscale PNG for ad-hoc
// inspection. It is not part of the pipeline's contractual output: no
// pass depends on it, and it is never called from the orchestrator.
func DebugPNG(sl *slice.Slice) ([]byte, error) {
	min, max := sl.MainPolygon.Bounds()
	w := int(max.X-min.X) + 2*debugPadding
	h := int(max.Y-min.Y) + 2*debugPadding
	if w <= 0 || h <= 0 {
		w, h = 2*debugPadding, 2*debugPadding
	}

	z := vector.NewRasterizer(w, h)
	for _, poly := range sl.MainPolygon {
		rasterizeRing(z, poly.Exterior, min)
		for _, hole := range poly.Holes {
			rasterizeRing(z, hole, min)
		}
	}

	alpha := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(alpha, alpha.Bounds(), image.NewUniform(color.White), image.Point{})

	var buf bytes.Buffer
	if err := png.Encode(&buf, alpha); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rasterizeRing feeds one ring's edges into z, offsetting every point so
// the polygon's bounding box min corner lands at (debugPadding,
// debugPadding).
func rasterizeRing(z *vector.Rasterizer, r geom2d.Ring, origin geom2d.Point) {
	if len(r) == 0 {
		return
	}
	pt := func(p geom2d.Point) f32.Vec2 {
		return f32.Vec2{p.X - origin.X + debugPadding, p.Y - origin.Y + debugPadding}
	}
	z.MoveTo(pt(r[0]))
	for _, p := range r[1:] {
		z.LineTo(pt(p))
	}
	z.ClosePath()
}
