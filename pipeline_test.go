package slicecore

import (
	"testing"

	"github.com/slicekit/core/command"
	"github.com/slicekit/core/mask"
	"github.com/slicekit/core/mesh"
	"github.com/slicekit/core/settings"
)

// cube builds a size-mm axis-aligned cube with consistently CCW-from-outside
// winding, matching the convention tower.New relies on for orientation.
func cube(t *testing.T, size float32) (*mesh.ObjectMesh, []mesh.Triangle) {
	t.Helper()
	verts := []mesh.Vec3{
		{0, 0, 0}, {size, 0, 0}, {size, size, 0}, {0, size, 0},
		{0, 0, size}, {size, 0, size}, {size, size, size}, {0, size, size},
	}
	tris := []mesh.Triangle{
		{0, 2, 1}, {0, 3, 2},
		{4, 5, 6}, {4, 6, 7},
		{0, 1, 5}, {0, 5, 4},
		{1, 2, 6}, {1, 6, 5},
		{2, 3, 7}, {2, 7, 6},
		{3, 0, 4}, {3, 4, 7},
	}
	m, err := mesh.New(verts, tris)
	if err != nil {
		t.Fatalf("mesh.New: %v", err)
	}
	return m, tris
}

func unitCubeSettings() *settings.Settings {
	return &settings.Settings{
		PrintX: 200, PrintY: 200, PrintZ: 200,
		NozzleDiameter: 0.4, LayerHeight: 0.2,
		ExtruderTemp: 200, BedTemp: 60,
		NumberOfPerimeters: 1, TopLayers: 0, BottomLayers: 0,
		InfillPercentage: 0, InfillType: settings.InfillRectilinear,
		BridgeWidth: 0.4,
		Speed: settings.SpeedCategory{
			Travel: 150, Perimeter: 50, Infill: 60, SolidInfill: 50,
			TopSolidInfill: 40, Bridge: 25, Support: 50,
		},
		Acceleration: settings.AccelCategory{Travel: 1000, Perimeter: 800, Infill: 1000, Bridge: 500, Support: 800},
		Jerk:         settings.JerkCategory{X: 8, Y: 8, Z: 0.4, E: 1.5},
		ExtrusionWidth: settings.ExtrusionWidthCategory{
			Perimeter: 0.4, ExteriorSurface: 0.4, Interior: 0.4, Infill: 0.45,
			SolidInfill: 0.4, TopSolidInfill: 0.4, Support: 0.4, Skirt: 0.4,
		},
		Filament: settings.FilamentSettings{Diameter: 1.75, Density: 0.00124},
		Fiber:    settings.FiberSettings{MaxAngle: 0.3, MinLength: 25, CutBefore: 20, Width: 1, Spacing: 1},
		Fan:      settings.FanSettings{Speed: 100, SlowDownThreshold: 0, MinPrintSpeed: 15},
	}
}

func TestRunSlicesUnitCubeIntoFiftyLayers(t *testing.T) {
	m, orig := cube(t, 10)
	result, err := Run(SliceInput{
		Objects:  []ObjectInput{{Mesh: m, OrigTris: orig}},
		Settings: unitCubeSettings(),
	}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	layerChanges := 0
	for _, c := range result.Moves {
		if c.Kind == command.KindLayerChange {
			layerChanges++
		}
	}
	if layerChanges != 50 {
		t.Errorf("layer changes = %d, want 50", layerChanges)
	}
}

func TestRunLayerChangesAreMonotoneInZ(t *testing.T) {
	m, orig := cube(t, 10)
	result, err := Run(SliceInput{
		Objects:  []ObjectInput{{Mesh: m, OrigTris: orig}},
		Settings: unitCubeSettings(),
	}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	lastZ := float32(-1)
	for _, c := range result.Moves {
		if c.Kind != command.KindLayerChange {
			continue
		}
		if c.Z < lastZ {
			t.Fatalf("LayerChange z decreased: %v after %v", c.Z, lastZ)
		}
		lastZ = c.Z
	}
}

func TestRunAssignsSequentialMoveIDsToExtrusionCommandsOnly(t *testing.T) {
	m, orig := cube(t, 10)
	result, err := Run(SliceInput{
		Objects:  []ObjectInput{{Mesh: m, OrigTris: orig}},
		Settings: unitCubeSettings(),
	}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	next := 0
	for _, c := range result.Moves {
		if !c.IsExtrusion() {
			continue
		}
		if c.MoveID != next {
			t.Fatalf("MoveID = %d, want %d", c.MoveID, next)
		}
		next++
	}
}

func TestRunReturnsErrorForInvalidSettings(t *testing.T) {
	m, orig := cube(t, 10)
	s := unitCubeSettings()
	s.NozzleDiameter = 0
	if _, err := Run(SliceInput{
		Objects:  []ObjectInput{{Mesh: m, OrigTris: orig}},
		Settings: s,
	}, nil); err == nil {
		t.Fatal("expected error for invalid settings")
	}
}

// TestRunSlicesSuccessfullyWithAMaskOverlay runs with a mask mesh inside
// the object's footprint and checks that Run succeeds and still emits a
// non-empty move stream.
func TestRunSlicesSuccessfullyWithAMaskOverlay(t *testing.T) {
	m, orig := cube(t, 10)
	maskMesh, maskOrig := cube(t, 4)

	result, err := Run(SliceInput{
		Objects: []ObjectInput{{Mesh: m, OrigTris: orig}},
		Masks: []*mask.Mask{{
			Mesh:     maskMesh,
			OrigTris: maskOrig,
			Settings: mask.Settings{
				ExtrusionWidth: settings.ExtrusionWidthCategory{Infill: 0.8},
			},
		}},
		Settings: unitCubeSettings(),
	}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Moves) == 0 {
		t.Fatal("expected a non-empty move stream with a mask present")
	}
}

func TestRunComputesNonZeroPlasticLength(t *testing.T) {
	m, orig := cube(t, 10)
	result, err := Run(SliceInput{
		Objects:  []ObjectInput{{Mesh: m, OrigTris: orig}},
		Settings: unitCubeSettings(),
	}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Calculated.PlasticLengthMM <= 0 {
		t.Errorf("PlasticLengthMM = %v, want > 0", result.Calculated.PlasticLengthMM)
	}
}
