// Package slice implements the Slice working set and the slicer that
// intersects a tower with a Z-plane and assembles the result into oriented
// polygon loops.
package slice

import (
	"github.com/slicekit/core/geom2d"
	"github.com/slicekit/core/move"
	"github.com/slicekit/core/settings"
)

// Slice is the per-layer working set. Passes in package pass mutate
// RemainingArea, SupportInterface/SupportTower, Chains and FixedChains in
// place as they consume the layer.
type Slice struct {
	MainPolygon  geom2d.MultiPolygon // frozen after creation
	RemainingArea geom2d.MultiPolygon // shrinks as passes consume it

	SupportInterface geom2d.MultiPolygon
	SupportTower     geom2d.MultiPolygon

	// FixedChains hold perimeters, skirt and brim; their relative order is
	// preserved (skirt before brim before walls).
	FixedChains []*move.MoveChain
	// Chains hold reorderable infill/fill chains, reordered by OrderPass.
	Chains []*move.MoveChain

	BottomHeight float32
	TopHeight    float32
	LayerIndex   int

	Settings settings.LayerSettings
}

// New creates a Slice whose MainPolygon and RemainingArea both start as mp
// (RemainingArea then shrinks independently as passes run).
func New(layerIndex int, bottom, top float32, mp geom2d.MultiPolygon, ls settings.LayerSettings) *Slice {
	return &Slice{
		MainPolygon:   mp,
		RemainingArea: mp,
		BottomHeight:  bottom,
		TopHeight:     top,
		LayerIndex:    layerIndex,
		Settings:      ls,
	}
}

// MidZ returns the layer's mid-height, the value overlays key Z-ranges on.
func (s *Slice) MidZ() float32 { return (s.BottomHeight + s.TopHeight) / 2 }
