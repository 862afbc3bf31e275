// Package calc computes the derived numbers that ride along a finished
// command stream: plastic length/volume/weight, fiber length and total
// print time, plus an ad-hoc PNG debug dump of a single slice.
package calc

import (
	"math"
	"strconv"

	"github.com/slicekit/core/command"
	"github.com/slicekit/core/geom2d"
	"github.com/slicekit/core/settings"
)

// Values holds every quantity Compute derives from a finished command
// stream.
type Values struct {
	PlasticLengthMM float64
	PlasticVolumeMM3 float64
	PlasticWeightG   float64
	FiberLengthMM    float64
	TotalTimeSec     float64
}

// Compute walks cmds once, tracking cursor position, active layer height
// and active movement speed, and accumulates the totals in Values.
// Extrusion is modelled as a bead with a flattened rectangular middle and
// two rounded ends that together make up a full circle of diameter
// layerHeight: cross_section = (width-layerHeight)*layerHeight +
// pi*(layerHeight/2)^2. PlasticLengthMM is the length of filament (of
// diameter Filament.Diameter) consumed, not the path length walked on the
// bed: it scales
// the path length by the ratio of the bead's cross-section to the
// filament's own circular cross-section.
func Compute(cmds []command.Command, s *settings.Settings) Values {
	var v Values
	cursor := geom2d.Point{}
	layerHeight := s.LayerHeight
	var speed float32
	filamentArea := math.Pi * math.Pow(float64(s.Filament.Diameter)/2, 2)

	for _, c := range cmds {
		switch c.Kind {
		case command.KindLayerChange:
			layerHeight = s.ResolveLayer(c.LayerIndex, c.Z).LayerHeight
			continue
		case command.KindSetState:
			if c.State.MovementSpeed != nil {
				speed = *c.State.MovementSpeed
			}
			continue
		case command.KindDelay:
			v.TotalTimeSec += float64(c.DelayMS) / 1000
			continue
		case command.KindMoveTo, command.KindMoveAndExtrude,
			command.KindMoveAndExtrudeFiber, command.KindMoveAndExtrudeFiberAndCut:
			length := float64(cursor.Distance(c.End))
			if speed > 0 {
				v.TotalTimeSec += length / float64(speed)
			}
			if c.IsExtrusion() {
				width, thickness := float64(c.Width), float64(layerHeight)
				crossSection := (width-thickness)*thickness + math.Pi*math.Pow(thickness/2, 2)
				v.PlasticVolumeMM3 += length * crossSection
				if filamentArea > 0 {
					v.PlasticLengthMM += length * (crossSection / filamentArea)
				}
			}
			if c.IsFiber() {
				v.FiberLengthMM += length
			}
			cursor = c.End
		default:
			continue
		}
	}

	v.PlasticWeightG = v.PlasticVolumeMM3 * float64(s.Filament.Density)
	return v
}

// roundTo rounds v to the given number of decimal places, used when
// surfacing totals to a human-readable report.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Report renders Values as a short human-readable summary line, the shape
// a CLI progress sink prints at the end of a run.
func (v Values) Report() string {
	return "plastic: " + ftoa(roundTo(v.PlasticLengthMM, 1)) + "mm / " +
		ftoa(roundTo(v.PlasticWeightG, 2)) + "g, fiber: " +
		ftoa(roundTo(v.FiberLengthMM, 1)) + "mm, time: " +
		ftoa(roundTo(v.TotalTimeSec, 1)) + "s"
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
