package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleTOML = `
print_x = 200
print_y = 200
print_z = 180
nozzle_diameter = 0.4
layer_height = 0.2
number_of_perimeters = 3
top_layers = 4

[speed]
travel = 150
perimeter = 60

[jerk]
x = 8
y = 8
z = 0.4
e = 1.5

[filament]
diameter = 1.75
density = 0.00124

[fiber]
enabled = true
max_angle_deg = 30
min_length = 10
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.toml")
	if err := os.WriteFile(path, []byte(sampleTOML), 0o644); err != nil {
		t.Fatalf("writing sample profile: %v", err)
	}
	return path
}

func TestLoadSettingsTOMLParsesScalarFields(t *testing.T) {
	s, err := LoadSettingsTOML(writeSample(t))
	if err != nil {
		t.Fatalf("LoadSettingsTOML: %v", err)
	}
	if s.PrintX != 200 || s.PrintY != 200 || s.PrintZ != 180 {
		t.Errorf("print volume = %v,%v,%v, want 200,200,180", s.PrintX, s.PrintY, s.PrintZ)
	}
	if s.NumberOfPerimeters != 3 || s.TopLayers != 4 {
		t.Errorf("NumberOfPerimeters/TopLayers = %d/%d, want 3/4", s.NumberOfPerimeters, s.TopLayers)
	}
}

func TestLoadSettingsTOMLConvertsNestedCategories(t *testing.T) {
	s, err := LoadSettingsTOML(writeSample(t))
	if err != nil {
		t.Fatalf("LoadSettingsTOML: %v", err)
	}
	if s.Speed.Travel != 150 || s.Speed.Perimeter != 60 {
		t.Errorf("Speed = %+v, want Travel=150 Perimeter=60", s.Speed)
	}
	if s.Filament.Diameter != 1.75 || s.Filament.Density != 0.00124 {
		t.Errorf("Filament = %+v, want Diameter=1.75 Density=0.00124", s.Filament)
	}
	if s.Jerk.X != 8 || s.Jerk.Z != 0.4 {
		t.Errorf("Jerk = %+v, want X=8 Z=0.4", s.Jerk)
	}
}

func TestLoadSettingsTOMLConvertsDegreesToRadians(t *testing.T) {
	s, err := LoadSettingsTOML(writeSample(t))
	if err != nil {
		t.Fatalf("LoadSettingsTOML: %v", err)
	}
	if !s.Fiber.Enabled {
		t.Fatal("Fiber.Enabled = false, want true")
	}
	const wantRad = 30 * 3.14159265 / 180
	if diff := s.Fiber.MaxAngle - wantRad; diff > 1e-5 || diff < -1e-5 {
		t.Errorf("Fiber.MaxAngle = %v, want %v", s.Fiber.MaxAngle, wantRad)
	}
}

func TestLoadSettingsTOMLReturnsErrorForMissingFile(t *testing.T) {
	if _, err := LoadSettingsTOML(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}
