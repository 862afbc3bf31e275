package settings

import (
	"fmt"
	"math"

	"github.com/slicekit/core/slicerr"
)

// Validate checks Settings' invariants once at entry, before any tower is
// built. It returns the first violated invariant as an error — validation
// errors abort before any pass runs — plus any non-fatal Warnings
// collected along the way.
func (s *Settings) Validate() ([]slicerr.Warning, error) {
	var warnings []slicerr.Warning

	positive := []struct {
		name  string
		value float32
	}{
		{"print_x", s.PrintX}, {"print_y", s.PrintY}, {"print_z", s.PrintZ},
		{"nozzle_diameter", s.NozzleDiameter}, {"layer_height", s.LayerHeight},
		{"speed.travel", s.Speed.Travel}, {"speed.perimeter", s.Speed.Perimeter},
		{"speed.infill", s.Speed.Infill}, {"speed.solid_infill", s.Speed.SolidInfill},
		{"speed.top_solid_infill", s.Speed.TopSolidInfill}, {"speed.bridge", s.Speed.Bridge},
		{"speed.support", s.Speed.Support},
		{"acceleration.travel", s.Acceleration.Travel}, {"acceleration.perimeter", s.Acceleration.Perimeter},
		{"acceleration.infill", s.Acceleration.Infill}, {"acceleration.bridge", s.Acceleration.Bridge},
		{"acceleration.support", s.Acceleration.Support},
		{"jerk.x", s.Jerk.X}, {"jerk.y", s.Jerk.Y}, {"jerk.z", s.Jerk.Z}, {"jerk.e", s.Jerk.E},
		{"filament.diameter", s.Filament.Diameter}, {"filament.density", s.Filament.Density},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return warnings, fmt.Errorf("%s: %w", p.name, slicerr.ErrLessThanOrEqualToZero)
		}
	}

	if s.LayerHeight < 0.2*s.NozzleDiameter || s.LayerHeight > 0.8*s.NozzleDiameter {
		warnings = append(warnings, warning(slicerr.WarnLayerSizeTooLow, "layer_height", s.LayerHeight))
		if s.LayerHeight > 0.8*s.NozzleDiameter {
			warnings[len(warnings)-1].Kind = slicerr.WarnLayerSizeTooHigh
		}
	}

	widths := []struct {
		name  string
		value float32
	}{
		{"extrusion_width.perimeter", s.ExtrusionWidth.Perimeter},
		{"extrusion_width.interior", s.ExtrusionWidth.Interior},
		{"extrusion_width.infill", s.ExtrusionWidth.Infill},
		{"extrusion_width.solid_infill", s.ExtrusionWidth.SolidInfill},
		{"extrusion_width.top_solid_infill", s.ExtrusionWidth.TopSolidInfill},
		{"extrusion_width.support", s.ExtrusionWidth.Support},
		{"extrusion_width.skirt", s.ExtrusionWidth.Skirt},
		{"extrusion_width.ext_surface", s.ExtrusionWidth.ExteriorSurface},
	}
	for _, w := range widths {
		if w.value <= 0 {
			return warnings, fmt.Errorf("%s: %w", w.name, slicerr.ErrLessThanOrEqualToZero)
		}
		lo, hi := 0.6*s.NozzleDiameter, 2.0*s.NozzleDiameter
		if w.value < lo {
			warnings = append(warnings, warning(slicerr.WarnExtrusionWidthTooLow, w.name, w.value))
		} else if w.value > hi {
			warnings = append(warnings, warning(slicerr.WarnExtrusionWidthTooHigh, w.name, w.value))
		}
	}

	minDim := s.PrintX
	if s.PrintY < minDim {
		minDim = s.PrintY
	}
	speedAccelPairs := []struct {
		name  string
		speed float32
		accel float32
	}{
		{"perimeter", s.Speed.Perimeter, s.Acceleration.Perimeter},
		{"infill", s.Speed.Infill, s.Acceleration.Infill},
		{"bridge", s.Speed.Bridge, s.Acceleration.Bridge},
		{"support", s.Speed.Support, s.Acceleration.Support},
		{"travel", s.Speed.Travel, s.Acceleration.Travel},
	}
	for _, p := range speedAccelPairs {
		limit := (p.speed * p.speed) / (2 * p.accel)
		if limit > minDim {
			warnings = append(warnings, warning(slicerr.WarnAccelerationTooLow, p.name, p.accel))
		}
	}

	if s.ExtruderTemp < 140 {
		warnings = append(warnings, warning(slicerr.WarnNozzleTemperatureTooLow, "extruder_temp", s.ExtruderTemp))
	} else if s.ExtruderTemp > 260 {
		warnings = append(warnings, warning(slicerr.WarnNozzleTemperatureTooHigh, "extruder_temp", s.ExtruderTemp))
	}

	if s.Skirt.Enabled && s.Brim.Enabled && s.Skirt.Distance <= s.Brim.Width {
		warnings = append(warnings, warning(slicerr.WarnSkirtAndBrimOverlap, "skirt.distance", s.Skirt.Distance))
	}

	return warnings, nil
}

func warning(kind slicerr.WarningKind, field string, value float32) slicerr.Warning {
	return slicerr.Warning{Kind: kind, Field: field, Value: float64(value)}
}

// floatsEqual is used by tests exercising the idempotence property:
// folding no overlays onto a Settings yields the base verbatim.
func floatsEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-9
}
