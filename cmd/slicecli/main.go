// Command slicecli slices a synthetic test solid and reports the
// resulting command counts and derived totals, a minimal standalone
// driver for exercising the core outside of a host application.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/slicekit/core"
	"github.com/slicekit/core/config"
	"github.com/slicekit/core/mesh"
	"github.com/slicekit/core/progress"
	"github.com/slicekit/core/settings"
)

func main() {
	var (
		profile = flag.String("profile", "", "path to a TOML settings profile; built-in defaults if empty")
		size    = flag.Float64("size", 20, "edge length in mm of the synthetic test cube")
		verbose = flag.Bool("verbose", false, "log pipeline progress to stderr")
	)
	flag.Parse()

	if *verbose {
		slicecore.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	s, err := loadSettings(*profile)
	if err != nil {
		log.Fatalf("loading settings: %v", err)
	}

	m, orig := testCube(float32(*size))
	counter := progress.NewCounter()

	result, err := slicecore.Run(slicecore.SliceInput{
		Objects:  []slicecore.ObjectInput{{Mesh: m, OrigTris: orig}},
		Settings: s,
	}, counter)
	if err != nil {
		log.Fatalf("slicing: %v", err)
	}

	log.Printf("run %s: %d commands", counter.RunID, len(result.Moves))
	log.Printf("%s", result.Calculated.Report())
	for _, w := range result.Warnings {
		log.Printf("warning: %s", w.Error())
	}
}

func loadSettings(profile string) (*settings.Settings, error) {
	if profile != "" {
		return config.LoadSettingsTOML(profile)
	}
	return defaultSettings(), nil
}

// defaultSettings is a reasonable 0.4mm-nozzle profile, used when no TOML
// profile is given.
func defaultSettings() *settings.Settings {
	return &settings.Settings{
		PrintX: 220, PrintY: 220, PrintZ: 250,
		NozzleDiameter: 0.4, LayerHeight: 0.2,
		ExtruderTemp: 200, BedTemp: 60,
		NumberOfPerimeters: 2, TopLayers: 4, BottomLayers: 4,
		InfillPercentage: 20, InfillType: settings.InfillRectilinear,
		BridgeWidth: 0.4,
		Speed: settings.SpeedCategory{
			Travel: 150, Perimeter: 50, Infill: 60, SolidInfill: 50,
			TopSolidInfill: 40, Bridge: 25, Support: 50,
		},
		Acceleration: settings.AccelCategory{
			Travel: 1000, Perimeter: 800, Infill: 1000, Bridge: 500, Support: 800,
		},
		Jerk: settings.JerkCategory{X: 8, Y: 8, Z: 0.4, E: 1.5},
		ExtrusionWidth: settings.ExtrusionWidthCategory{
			Perimeter: 0.4, ExteriorSurface: 0.4, Interior: 0.4, Infill: 0.45,
			SolidInfill: 0.4, TopSolidInfill: 0.4, Support: 0.4, Skirt: 0.4,
		},
		Filament: settings.FilamentSettings{Diameter: 1.75, Density: 0.00124},
		Fiber:    settings.FiberSettings{MaxAngle: 0.3, MinLength: 25, CutBefore: 20, Width: 1, Spacing: 1},
		Fan:      settings.FanSettings{Speed: 100, SlowDownThreshold: 5, MinPrintSpeed: 15},
	}
}

// testCube builds an axis-aligned cube of the given edge length, CCW-wound
// from outside every face.
func testCube(size float32) (*mesh.ObjectMesh, []mesh.Triangle) {
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
		log.Fatalf("building test cube: %v", err)
	}
	return m, tris
}
