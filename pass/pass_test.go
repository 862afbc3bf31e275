package pass

import (
	"math"
	"testing"

	"github.com/slicekit/core/geom2d"
	"github.com/slicekit/core/move"
	"github.com/slicekit/core/settings"
	"github.com/slicekit/core/slice"
)

func square(x0, y0, x1, y1 float32) geom2d.MultiPolygon {
	return geom2d.MultiPolygon{{Exterior: geom2d.Ring{
		{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1},
	}}}
}

// TestBridgingPassPicksXAxisAngle covers two slabs supporting a cap with a
// gap running across X, so the unsupported boundary runs along Y and the
// bridge fill direction should land on the X axis.
func TestBridgingPassPicksXAxisAngle(t *testing.T) {
	below := square(0, 0, 10, 10).UnionWith(square(20, 0, 30, 10))
	cap := square(0, 0, 30, 10)

	lower := slice.New(0, 0, 2, below, settings.LayerSettings{})
	upper := slice.New(1, 2, 2.2, cap, settings.LayerSettings{})
	upper.RemainingArea = cap

	s := &settings.Settings{BridgeWidth: 0.4}
	s.ExtrusionWidth.Infill = 0.4

	if err := BridgingPass([]*slice.Slice{lower, upper}, s); err != nil {
		t.Fatalf("BridgingPass: %v", err)
	}
	if len(upper.Chains) == 0 {
		t.Fatal("expected bridging chains, got none")
	}

	found := false
	maxSlope := float32(math.Tan(5 * math.Pi / 180))
	for _, c := range upper.Chains {
		prev := c.StartPoint
		for _, m := range c.Moves {
			if m.Type.IsExtrusion() && m.Type.Trace == move.TraceBridging {
				found = true
				if d := m.End.Sub(prev); abs32(d.Y) > abs32(d.X)*maxSlope {
					t.Errorf("bridging move %v -> %v is not along the X axis", prev, m.End)
				}
			}
			prev = m.End
		}
	}
	if !found {
		t.Error("expected at least one Bridging-traced extrusion move")
	}
}

func TestBridgeAngleAlignsWithLongEdges(t *testing.T) {
	poly := geom2d.Polygon{Exterior: geom2d.Ring{
		{6, 0}, {24, 0}, {24, 10}, {6, 10},
	}}
	angle := bridgeAngle(poly)
	deg := angle * 180 / math.Pi
	for deg > 90 {
		deg -= 180
	}
	for deg < -90 {
		deg += 180
	}
	if deg < -5 || deg > 5 {
		t.Errorf("bridge angle = %v deg, want ~0", deg)
	}
}

func TestWallPassInsetsAndShrinksRemainingArea(t *testing.T) {
	mp := square(0, 0, 10, 10)
	ls := settings.LayerSettings{NumberOfPerimeters: 1}
	sl := slice.New(0, 0, 0.2, mp, ls)

	s := &settings.Settings{}
	s.ExtrusionWidth.Perimeter = 0.4
	s.ExtrusionWidth.Interior = 0.4

	if err := WallPass([]*slice.Slice{sl}, s); err != nil {
		t.Fatalf("WallPass: %v", err)
	}
	if len(sl.FixedChains) == 0 {
		t.Fatal("expected wall chains")
	}
	if sl.RemainingArea.IsEmpty() {
		t.Fatal("remaining area should still hold the cube's interior")
	}
	area := sl.RemainingArea[0].Area()
	if area <= 0 || area >= 100 {
		t.Errorf("remaining area = %v, want shrunk below 100 but > 0", area)
	}
}

func TestOrderPassGreedyNearestNext(t *testing.T) {
	far := move.NewChain(geom2d.Pt(100, 100), false)
	far.Add(geom2d.Pt(101, 100), 0.4, move.WithoutFiber(move.TraceInfill))

	near := move.NewChain(geom2d.Pt(1, 0), false)
	near.Add(geom2d.Pt(2, 0), 0.4, move.WithoutFiber(move.TraceInfill))

	// The last fixed chain ends at the origin, so ordering starts from there.
	wall := move.NewChain(geom2d.Pt(0, 1), true)
	wall.Add(geom2d.Pt(0, 0), 0.4, move.WithoutFiber(move.TraceWallOuter))

	sl := &slice.Slice{FixedChains: []*move.MoveChain{wall}, Chains: []*move.MoveChain{far, near}}
	s := &settings.Settings{}
	if err := OrderPass([]*slice.Slice{sl}, s); err != nil {
		t.Fatalf("OrderPass: %v", err)
	}
	if sl.Chains[0] != near {
		t.Errorf("expected nearest chain first, got chain starting at %v", sl.Chains[0].StartPoint)
	}
}

func TestSupportTowerPassAccumulatesOverhang(t *testing.T) {
	// Overhang at layer i is
	// layer[i].main_polygon - layer[i+1].main_polygon.offset(-tan(angle)*h).
	// A layer wider than the (shrunk) layer above it gets a non-empty
	// overhang, accumulated into its own support_tower.
	wide := square(0, 0, 20, 20)
	narrow := square(5, 5, 15, 15)

	lower := slice.New(0, 0, 0.2, wide, settings.LayerSettings{})
	upper := slice.New(1, 0.2, 0.4, narrow, settings.LayerSettings{})

	s := &settings.Settings{}
	s.Support.Enabled = true
	s.Support.MaxOverhangAngle = float32(math.Pi / 4)
	s.Support.InterfaceLayers = 1

	if err := SupportTowerPass([]*slice.Slice{lower, upper}, s); err != nil {
		t.Fatalf("SupportTowerPass: %v", err)
	}
	if lower.SupportTower.IsEmpty() && lower.SupportInterface.IsEmpty() {
		t.Error("expected lower slice to receive support material under the overhang")
	}
}
