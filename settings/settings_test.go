package settings

import "testing"

func baseSettings() *Settings {
	return &Settings{
		PrintX: 220, PrintY: 220, PrintZ: 250,
		NozzleDiameter: 0.4, LayerHeight: 0.2,
		ExtruderTemp: 200, BedTemp: 60,
		NumberOfPerimeters: 2, TopLayers: 4, BottomLayers: 4,
		InfillPercentage: 20, InfillType: InfillRectilinear,
		BridgeWidth: 0.4,
		Speed: SpeedCategory{
			Travel: 150, Perimeter: 50, Infill: 60, SolidInfill: 50,
			TopSolidInfill: 40, Bridge: 25, Support: 50,
		},
		Acceleration: AccelCategory{Travel: 1000, Perimeter: 800, Infill: 1000, Bridge: 500, Support: 800},
		Jerk:         JerkCategory{X: 8, Y: 8, Z: 0.4, E: 1.5},
		ExtrusionWidth: ExtrusionWidthCategory{
			Perimeter: 0.4, ExteriorSurface: 0.4, Interior: 0.4, Infill: 0.45,
			SolidInfill: 0.4, TopSolidInfill: 0.4, Support: 0.4, Skirt: 0.4,
		},
		Filament: FilamentSettings{Diameter: 1.75, Density: 0.00124},
		Fiber:    FiberSettings{MaxAngle: 0.3, MinLength: 25, CutBefore: 20, Width: 1, Spacing: 1},
		Fan:      FanSettings{Speed: 100, SlowDownThreshold: 5, MinPrintSpeed: 15},
	}
}

func TestValidateAcceptsWellFormedSettings(t *testing.T) {
	s := baseSettings()
	warnings, err := s.Validate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %+v", warnings)
	}
}

func TestValidateRejectsNonPositiveDimension(t *testing.T) {
	s := baseSettings()
	s.NozzleDiameter = 0
	if _, err := s.Validate(); err == nil {
		t.Fatal("expected error for zero nozzle diameter")
	}
}

func TestValidateRejectsNonPositiveJerk(t *testing.T) {
	s := baseSettings()
	s.Jerk.Z = 0
	if _, err := s.Validate(); err == nil {
		t.Fatal("expected error for zero max_jerk_z")
	}
}

func TestValidateWarnsOnSkirtBrimOverlap(t *testing.T) {
	s := baseSettings()
	s.Skirt.Enabled = true
	s.Skirt.Distance = 2
	s.Brim.Enabled = true
	s.Brim.Width = 5
	warnings, err := s.Validate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, w := range warnings {
		if w.Field == "skirt.distance" {
			found = true
		}
	}
	if !found {
		t.Error("expected SkirtAndBrimOverlap warning")
	}
}

func TestResolveLayerIdempotentWithNoOverlays(t *testing.T) {
	s := baseSettings()
	resolved := s.ResolveLayer(0, 0.1)
	if !floatsEqual(resolved.LayerHeight, s.LayerHeight) {
		t.Errorf("LayerHeight = %v, want %v", resolved.LayerHeight, s.LayerHeight)
	}
	if resolved.NumberOfPerimeters != s.NumberOfPerimeters {
		t.Errorf("NumberOfPerimeters = %v, want %v", resolved.NumberOfPerimeters, s.NumberOfPerimeters)
	}
}

func TestResolveLayerAppliesSingleLayerOverlay(t *testing.T) {
	s := baseSettings()
	speed := float32(5)
	height := float32(0.3)
	s.LayerSettings = []LayerOverlay{
		{Range: SingleLayer(0), Override: LayerOverride{TravelSpeed: &speed, LayerHeight: &height}},
	}

	layer0 := s.ResolveLayer(0, 0.15)
	if layer0.Speed.Travel != 5 {
		t.Errorf("layer 0 travel speed = %v, want 5", layer0.Speed.Travel)
	}
	if layer0.LayerHeight != 0.3 {
		t.Errorf("layer 0 layer height = %v, want 0.3", layer0.LayerHeight)
	}

	layer1 := s.ResolveLayer(1, 0.5)
	if layer1.Speed.Travel != s.Speed.Travel {
		t.Errorf("layer 1 travel speed = %v, want base %v", layer1.Speed.Travel, s.Speed.Travel)
	}
}

func TestLayerRangeMatches(t *testing.T) {
	tests := []struct {
		name  string
		r     LayerRange
		layer int
		z     float32
		want  bool
	}{
		{"single hit", SingleLayer(3), 3, 0, true},
		{"single miss", SingleLayer(3), 4, 0, false},
		{"index range hit", IndexRange(2, 5), 4, 0, true},
		{"index range end exclusive", IndexRange(2, 5), 5, 0, false},
		{"z range hit", ZRange(1, 2), 0, 1.5, true},
		{"z range end exclusive", ZRange(1, 2), 0, 2, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Matches(tc.layer, tc.z); got != tc.want {
				t.Errorf("Matches(%d, %v) = %v, want %v", tc.layer, tc.z, got, tc.want)
			}
		})
	}
}
