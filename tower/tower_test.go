package tower

import (
	"testing"

	"github.com/slicekit/core/mesh"
)

// cube builds a 10mm axis-aligned cube with consistently CCW-from-outside
// winding, matching the STL convention the tower relies on for orientation.
func cube(t *testing.T, size float32) (*mesh.ObjectMesh, []mesh.Triangle) {
	t.Helper()
	verts := []mesh.Vec3{
		{0, 0, 0}, {size, 0, 0}, {size, size, 0}, {0, size, 0},
		{0, 0, size}, {size, 0, size}, {size, size, size}, {0, size, size},
	}
	tris := []mesh.Triangle{
		{0, 2, 1}, {0, 3, 2}, // bottom (normal -Z)
		{4, 5, 6}, {4, 6, 7}, // top (normal +Z)
		{0, 1, 5}, {0, 5, 4}, // front
		{1, 2, 6}, {1, 6, 5}, // right
		{2, 3, 7}, {2, 7, 6}, // back
		{3, 0, 4}, {3, 4, 7}, // left
	}
	m, err := mesh.New(verts, tris)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, tris
}

func TestAdvanceToHeightRejectsOutOfOrder(t *testing.T) {
	m, orig := cube(t, 10)
	tw, err := New(m, orig)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	it := tw.Iterator()
	if err := it.AdvanceToHeight(5); err != nil {
		t.Fatalf("AdvanceToHeight(5): %v", err)
	}
	if err := it.AdvanceToHeight(1); err == nil {
		t.Fatal("expected OutOfOrderHeight for a decreasing height")
	}
}

func TestGetPointsAtMidHeightReturnsOneLoop(t *testing.T) {
	m, orig := cube(t, 10)
	tw, err := New(m, orig)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	it := tw.Iterator()
	if err := it.AdvanceToHeight(5); err != nil {
		t.Fatalf("AdvanceToHeight: %v", err)
	}
	loops, err := it.GetPoints()
	if err != nil {
		t.Fatalf("GetPoints: %v", err)
	}
	if len(loops) != 1 {
		t.Fatalf("got %d loops, want 1", len(loops))
	}
	// Each side face is two triangles whose diagonal crosses z=5, so every
	// face contributes two segments to the loop.
	if len(loops[0]) != 8 {
		t.Errorf("loop has %d points, want 8", len(loops[0]))
	}
}

func TestGetPointsOutsideMeshIsEmpty(t *testing.T) {
	m, orig := cube(t, 10)
	tw, err := New(m, orig)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	it := tw.Iterator()
	if err := it.AdvanceToHeight(0.001); err != nil {
		t.Fatalf("AdvanceToHeight: %v", err)
	}
	loops, err := it.GetPoints()
	if err != nil {
		t.Fatalf("GetPoints: %v", err)
	}
	if len(loops) > 1 {
		t.Errorf("got %d loops near the base, want at most 1", len(loops))
	}
}
