// Package config loads a Settings tree from the human-readable TOML
// format the external slicing tool persists its profiles in.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/slicekit/core/settings"
)

// fileSpeed mirrors settings.SpeedCategory with TOML field names.
type fileSpeed struct {
	Travel         float32 `toml:"travel"`
	Perimeter      float32 `toml:"perimeter"`
	Infill         float32 `toml:"infill"`
	SolidInfill    float32 `toml:"solid_infill"`
	TopSolidInfill float32 `toml:"top_solid_infill"`
	Bridge         float32 `toml:"bridge"`
	Support        float32 `toml:"support"`
}

type fileAccel struct {
	Travel    float32 `toml:"travel"`
	Perimeter float32 `toml:"perimeter"`
	Infill    float32 `toml:"infill"`
	Bridge    float32 `toml:"bridge"`
	Support   float32 `toml:"support"`
}

// fileJerk mirrors settings.JerkCategory with TOML field names.
type fileJerk struct {
	X float32 `toml:"x"`
	Y float32 `toml:"y"`
	Z float32 `toml:"z"`
	E float32 `toml:"e"`
}

type fileExtrusionWidth struct {
	Perimeter       float32 `toml:"perimeter"`
	ExteriorSurface float32 `toml:"ext_surface"`
	Interior        float32 `toml:"interior"`
	Infill          float32 `toml:"infill"`
	SolidInfill     float32 `toml:"solid_infill"`
	TopSolidInfill  float32 `toml:"top_solid_infill"`
	Support         float32 `toml:"support"`
	Skirt           float32 `toml:"skirt"`
}

type fileFilament struct {
	Diameter float32 `toml:"diameter"`
	Density  float32 `toml:"density"`
}

type fileFiber struct {
	Enabled   bool    `toml:"enabled"`
	Width     float32 `toml:"width"`
	Spacing   float32 `toml:"spacing"`
	MaxAngle  float32 `toml:"max_angle_deg"`
	MinLength float32 `toml:"min_length"`
	CutBefore float32 `toml:"cut_before"`
}

type fileSupport struct {
	Enabled          bool    `toml:"enabled"`
	MaxOverhangAngle float32 `toml:"max_overhang_angle_deg"`
	InterfaceLayers  int     `toml:"interface_layers"`
	Spacing          float32 `toml:"spacing"`
}

type fileSkirt struct {
	Enabled  bool    `toml:"enabled"`
	Layers   int     `toml:"layers"`
	Distance float32 `toml:"distance"`
}

type fileBrim struct {
	Enabled bool    `toml:"enabled"`
	Width   float32 `toml:"width"`
}

type fileFan struct {
	Speed             float32 `toml:"speed"`
	SlowDownThreshold float32 `toml:"slow_down_threshold"`
	MinPrintSpeed     float32 `toml:"min_print_speed"`
}

// fileSettings is the TOML-tagged mirror of settings.Settings that
// toml.Decode populates directly, avoiding a hand-written field-by-field
// marshaler.
type fileSettings struct {
	PrintX float32 `toml:"print_x"`
	PrintY float32 `toml:"print_y"`
	PrintZ float32 `toml:"print_z"`

	NozzleDiameter float32 `toml:"nozzle_diameter"`
	LayerHeight    float32 `toml:"layer_height"`

	ExtruderTemp float32 `toml:"extruder_temp"`
	BedTemp      float32 `toml:"bed_temp"`

	NumberOfPerimeters   int  `toml:"number_of_perimeters"`
	TopLayers            int  `toml:"top_layers"`
	BottomLayers         int  `toml:"bottom_layers"`
	InnerPerimetersFirst bool `toml:"inner_perimeters_first"`

	InfillPercentage float32 `toml:"infill_percentage"`
	InfillType       int     `toml:"infill_type"`

	BridgeWidth       float32 `toml:"bridge_width"`
	LayerShrinkAmount float32 `toml:"layer_shrink_amount"`

	Speed          fileSpeed          `toml:"speed"`
	Acceleration   fileAccel          `toml:"acceleration"`
	Jerk           fileJerk           `toml:"jerk"`
	ExtrusionWidth fileExtrusionWidth `toml:"extrusion_width"`
	Filament       fileFilament       `toml:"filament"`
	Fiber          fileFiber          `toml:"fiber"`
	Support        fileSupport        `toml:"support"`
	Skirt          fileSkirt          `toml:"skirt"`
	Brim           fileBrim           `toml:"brim"`
	Fan            fileFan            `toml:"fan"`
}

// LoadSettingsTOML parses path into a *settings.Settings. Layer-range
// overlays are not representable in this file format and must be added by
// the caller after load, the same split the upstream tool's profile UI
// maintains between "base profile" and "per-range overrides".
func LoadSettingsTOML(path string) (*settings.Settings, error) {
	var fs fileSettings
	if _, err := toml.DecodeFile(path, &fs); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return fs.toSettings(), nil
}

func (fs fileSettings) toSettings() *settings.Settings {
	return &settings.Settings{
		PrintX:         fs.PrintX,
		PrintY:         fs.PrintY,
		PrintZ:         fs.PrintZ,
		NozzleDiameter: fs.NozzleDiameter,
		LayerHeight:    fs.LayerHeight,
		ExtruderTemp:   fs.ExtruderTemp,
		BedTemp:        fs.BedTemp,

		NumberOfPerimeters:   fs.NumberOfPerimeters,
		TopLayers:            fs.TopLayers,
		BottomLayers:         fs.BottomLayers,
		InnerPerimetersFirst: fs.InnerPerimetersFirst,

		InfillPercentage: fs.InfillPercentage,
		InfillType:       settings.PartialInfillType(fs.InfillType),

		BridgeWidth:       fs.BridgeWidth,
		LayerShrinkAmount: fs.LayerShrinkAmount,

		Speed: settings.SpeedCategory{
			Travel:         fs.Speed.Travel,
			Perimeter:      fs.Speed.Perimeter,
			Infill:         fs.Speed.Infill,
			SolidInfill:    fs.Speed.SolidInfill,
			TopSolidInfill: fs.Speed.TopSolidInfill,
			Bridge:         fs.Speed.Bridge,
			Support:        fs.Speed.Support,
		},
		Acceleration: settings.AccelCategory{
			Travel:    fs.Acceleration.Travel,
			Perimeter: fs.Acceleration.Perimeter,
			Infill:    fs.Acceleration.Infill,
			Bridge:    fs.Acceleration.Bridge,
			Support:   fs.Acceleration.Support,
		},
		Jerk: settings.JerkCategory{
			X: fs.Jerk.X,
			Y: fs.Jerk.Y,
			Z: fs.Jerk.Z,
			E: fs.Jerk.E,
		},
		ExtrusionWidth: settings.ExtrusionWidthCategory{
			Perimeter:       fs.ExtrusionWidth.Perimeter,
			ExteriorSurface: fs.ExtrusionWidth.ExteriorSurface,
			Interior:        fs.ExtrusionWidth.Interior,
			Infill:          fs.ExtrusionWidth.Infill,
			SolidInfill:     fs.ExtrusionWidth.SolidInfill,
			TopSolidInfill:  fs.ExtrusionWidth.TopSolidInfill,
			Support:         fs.ExtrusionWidth.Support,
			Skirt:           fs.ExtrusionWidth.Skirt,
		},
		Filament: settings.FilamentSettings{
			Diameter: fs.Filament.Diameter,
			Density:  fs.Filament.Density,
		},
		Fiber: settings.FiberSettings{
			Enabled:   fs.Fiber.Enabled,
			Width:     fs.Fiber.Width,
			Spacing:   fs.Fiber.Spacing,
			MaxAngle:  degToRad(fs.Fiber.MaxAngle),
			MinLength: fs.Fiber.MinLength,
			CutBefore: fs.Fiber.CutBefore,
		},
		Support: settings.SupportSettings{
			Enabled:          fs.Support.Enabled,
			MaxOverhangAngle: degToRad(fs.Support.MaxOverhangAngle),
			InterfaceLayers:  fs.Support.InterfaceLayers,
			Spacing:          fs.Support.Spacing,
		},
		Skirt: settings.SkirtSettings{
			Enabled:  fs.Skirt.Enabled,
			Layers:   fs.Skirt.Layers,
			Distance: fs.Skirt.Distance,
		},
		Brim: settings.BrimSettings{
			Enabled: fs.Brim.Enabled,
			Width:   fs.Brim.Width,
		},
		Fan: settings.FanSettings{
			Speed:             fs.Fan.Speed,
			SlowDownThreshold: fs.Fan.SlowDownThreshold,
			MinPrintSpeed:     fs.Fan.MinPrintSpeed,
		},
	}
}

func degToRad(deg float32) float32 { return deg * 3.14159265 / 180 }
