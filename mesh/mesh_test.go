package mesh

import "testing"

func cubeMesh(t *testing.T, size float32) *ObjectMesh {
	t.Helper()
	verts := []Vec3{
		{0, 0, 0}, {size, 0, 0}, {size, size, 0}, {0, size, 0},
		{0, 0, size}, {size, 0, size}, {size, size, size}, {0, size, size},
	}
	quads := [][4]uint32{
		{0, 1, 2, 3}, {4, 5, 6, 7}, {0, 1, 5, 4},
		{1, 2, 6, 5}, {2, 3, 7, 6}, {3, 0, 4, 7},
	}
	var tris []Triangle
	for _, q := range quads {
		tris = append(tris, Triangle{q[0], q[1], q[2]}, Triangle{q[0], q[2], q[3]})
	}
	m, err := New(verts, tris)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestNewCanonicalizesTriangleOrder(t *testing.T) {
	m := cubeMesh(t, 10)
	for _, tri := range m.Triangles {
		z0, z1, z2 := m.Vertices[tri[0]].Z, m.Vertices[tri[1]].Z, m.Vertices[tri[2]].Z
		if z0 > z1 || z1 > z2 {
			t.Errorf("triangle %v not sorted by Z: %v %v %v", tri, z0, z1, z2)
		}
	}
}

func TestNewRejectsEmptyMesh(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Fatal("expected error for empty triangle list")
	}
}

func TestAABB(t *testing.T) {
	m := cubeMesh(t, 10)
	box := m.AABB()
	if box.Min != (Vec3{0, 0, 0}) || box.Max != (Vec3{10, 10, 10}) {
		t.Errorf("AABB = %+v, want 0..10 cube", box)
	}
}

func TestCenterOnBed(t *testing.T) {
	m := cubeMesh(t, 10)
	centered := m.CenterOnBed(0)
	box := centered.AABB()
	if box.Min.Z != 0 {
		t.Errorf("min Z = %v, want 0", box.Min.Z)
	}
	if box.Min.X != -5 || box.Max.X != 5 {
		t.Errorf("X bounds = [%v,%v], want [-5,5]", box.Min.X, box.Max.X)
	}
}

func TestFitsWithinRejectsOversizedObject(t *testing.T) {
	m := cubeMesh(t, 300)
	if err := m.FitsWithin(220, 220, 250); err == nil {
		t.Fatal("expected ObjectOutsidePrintVolume error")
	}
}

func TestFitsWithinAcceptsFittingObject(t *testing.T) {
	m := cubeMesh(t, 10)
	if err := m.FitsWithin(220, 220, 250); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
