// Package settings implements the Settings value type, its LayerRange
// overlays and the single layer-settings-view resolution function.
//
// One resolve function is used rather than a parallel "partial settings"
// type hierarchy; LayerOverride below is kept deliberately small (pointer
// fields only for the values overlays are allowed to touch) instead of
// mirroring Settings field-for-field.
package settings

// SpeedCategory groups the feedrates used by different trace types.
type SpeedCategory struct {
	Travel         float32
	Perimeter      float32
	Infill         float32
	SolidInfill    float32
	TopSolidInfill float32
	Bridge         float32
	Support        float32
}

// AccelCategory mirrors SpeedCategory for accelerations.
type AccelCategory struct {
	Travel      float32
	Perimeter   float32
	Infill      float32
	Bridge      float32
	Support     float32
}

// JerkCategory holds the per-axis maximum jerk the machine is allowed to
// command, plus the extruder axis.
type JerkCategory struct {
	X float32
	Y float32
	Z float32
	E float32
}

// ExtrusionWidthCategory holds per-trace-type extrusion widths.
type ExtrusionWidthCategory struct {
	Perimeter         float32
	ExteriorSurface   float32 // "ext_surface", used by brim spacing
	Interior          float32
	Infill            float32
	SolidInfill       float32
	TopSolidInfill    float32
	Support           float32
	Skirt             float32
}

// FilamentSettings describes the feedstock used for volume/weight calc.
type FilamentSettings struct {
	Diameter float32
	Density  float32 // g/mm^3
}

// FiberSettings parameterizes fiber co-deposition and MergeFiberPass.
type FiberSettings struct {
	Enabled    bool
	Width      float32
	Spacing    float32
	MaxAngle   float32 // radians
	MinLength  float32
	CutBefore  float32
}

// SupportSettings controls SupportTowerPass and SupportPass.
type SupportSettings struct {
	Enabled           bool
	MaxOverhangAngle  float32 // radians, measured from vertical
	InterfaceLayers   int
	Spacing           float32
}

// SkirtSettings controls SkirtPass.
type SkirtSettings struct {
	Enabled  bool
	Layers   int
	Distance float32
}

// BrimSettings controls BrimPass.
type BrimSettings struct {
	Enabled bool
	Width   float32
}

// FanSettings controls SlowDownLayerPass.
type FanSettings struct {
	Speed             float32
	SlowDownThreshold float32 // seconds
	MinPrintSpeed     float32
}

// PartialInfillType selects the fill pattern for FillAreaPass.
type PartialInfillType int

const (
	InfillLinear PartialInfillType = iota
	InfillRectilinear
	InfillTriangle
	InfillCubic
	InfillLightning
)

// Settings is the flat, cloneable bundle of parameters shared read-only
// across every pass, plus the layer-range overlays resolved by
// ResolveLayer.
type Settings struct {
	PrintX, PrintY, PrintZ float32

	NozzleDiameter float32
	LayerHeight    float32

	ExtruderTemp float32
	BedTemp      float32

	NumberOfPerimeters  int
	TopLayers           int
	BottomLayers        int
	InnerPerimetersFirst bool

	InfillPercentage float32
	InfillType       PartialInfillType

	BridgeWidth       float32
	LayerShrinkAmount float32

	Speed          SpeedCategory
	Acceleration   AccelCategory
	Jerk           JerkCategory
	ExtrusionWidth ExtrusionWidthCategory
	Filament       FilamentSettings
	Fiber          FiberSettings
	Support        SupportSettings
	Skirt          SkirtSettings
	Brim           BrimSettings
	Fan            FanSettings

	// Overlays are folded in list order by ResolveLayer.
	LayerSettings []LayerOverlay
}

// LayerOverlay pairs a LayerRange selector with the override values that
// apply to matching layers.
type LayerOverlay struct {
	Range    LayerRange
	Override LayerOverride
}

// LayerOverride carries only the fields an overlay may change. Every field
// is a pointer so ResolveLayer can distinguish "not set" from a zero value,
// without introducing a parallel optional-everything hierarchy for the
// base Settings type itself.
type LayerOverride struct {
	LayerHeight         *float32
	TravelSpeed         *float32
	PerimeterSpeed      *float32
	InfillSpeed         *float32
	SolidInfillSpeed    *float32
	TopSolidInfillSpeed *float32
	BridgeSpeed         *float32
	SupportSpeed        *float32
	NumberOfPerimeters  *int
	InfillPercentage    *float32
	InfillType          *PartialInfillType
}

// LayerSettings is the immutable per-layer snapshot produced by
// ResolveLayer.
type LayerSettings struct {
	LayerIndex int
	MidZ       float32

	LayerHeight float32

	Speed          SpeedCategory
	Acceleration   AccelCategory
	ExtrusionWidth ExtrusionWidthCategory

	NumberOfPerimeters   int
	InnerPerimetersFirst bool
	InfillPercentage     float32
	InfillType           PartialInfillType

	BridgeWidth float32
	Fan         FanSettings
	Fiber       FiberSettings
}

// Clone returns a deep-enough copy of Settings suitable for passing to
// concurrent readers (every field is a value type except the overlay
// slice, which is never mutated after validation).
func (s *Settings) Clone() *Settings {
	cp := *s
	cp.LayerSettings = append([]LayerOverlay(nil), s.LayerSettings...)
	return &cp
}

// ResolveLayer folds every overlay whose LayerRange matches
// (layerIndex, midZ) onto the base Settings, in list order, using
// left-biased or-else semantics: once a field has been set by an earlier
// overlay, later overlays and the base no longer change it.
func (s *Settings) ResolveLayer(layerIndex int, midZ float32) LayerSettings {
	out := LayerSettings{
		LayerIndex:           layerIndex,
		MidZ:                 midZ,
		LayerHeight:          s.LayerHeight,
		Speed:                s.Speed,
		Acceleration:         s.Acceleration,
		ExtrusionWidth:       s.ExtrusionWidth,
		NumberOfPerimeters:   s.NumberOfPerimeters,
		InnerPerimetersFirst: s.InnerPerimetersFirst,
		InfillPercentage:     s.InfillPercentage,
		InfillType:           s.InfillType,
		BridgeWidth:          s.BridgeWidth,
		Fan:                  s.Fan,
		Fiber:                s.Fiber,
	}

	var (
		layerHeightSet, travelSet, perimSet, infillSpeedSet bool
		solidSet, topSolidSet, bridgeSet, supportSet         bool
		numPerimSet, infillPctSet, infillTypeSet             bool
	)

	for _, ov := range s.LayerSettings {
		if !ov.Range.Matches(layerIndex, midZ) {
			continue
		}
		o := ov.Override
		if o.LayerHeight != nil && !layerHeightSet {
			out.LayerHeight = *o.LayerHeight
			layerHeightSet = true
		}
		if o.TravelSpeed != nil && !travelSet {
			out.Speed.Travel = *o.TravelSpeed
			travelSet = true
		}
		if o.PerimeterSpeed != nil && !perimSet {
			out.Speed.Perimeter = *o.PerimeterSpeed
			perimSet = true
		}
		if o.InfillSpeed != nil && !infillSpeedSet {
			out.Speed.Infill = *o.InfillSpeed
			infillSpeedSet = true
		}
		if o.SolidInfillSpeed != nil && !solidSet {
			out.Speed.SolidInfill = *o.SolidInfillSpeed
			solidSet = true
		}
		if o.TopSolidInfillSpeed != nil && !topSolidSet {
			out.Speed.TopSolidInfill = *o.TopSolidInfillSpeed
			topSolidSet = true
		}
		if o.BridgeSpeed != nil && !bridgeSet {
			out.Speed.Bridge = *o.BridgeSpeed
			bridgeSet = true
		}
		if o.SupportSpeed != nil && !supportSet {
			out.Speed.Support = *o.SupportSpeed
			supportSet = true
		}
		if o.NumberOfPerimeters != nil && !numPerimSet {
			out.NumberOfPerimeters = *o.NumberOfPerimeters
			numPerimSet = true
		}
		if o.InfillPercentage != nil && !infillPctSet {
			out.InfillPercentage = *o.InfillPercentage
			infillPctSet = true
		}
		if o.InfillType != nil && !infillTypeSet {
			out.InfillType = *o.InfillType
			infillTypeSet = true
		}
	}

	return out
}
