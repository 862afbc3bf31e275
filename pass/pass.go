// Package pass implements the slice passes, run in a fixed order that is
// itself part of the contract: support tower, skirt, brim, shrink, walls,
// bridging, top/bottom, support fill, fiber infill, lightning fill, fill
// area and finally chain ordering.
package pass

import (
	"math"

	"github.com/slicekit/core/geom2d"
	"github.com/slicekit/core/move"
	"github.com/slicekit/core/slice"
)

// travelChain builds a zero-width Travel move as a standalone one-move
// chain, used to link successive loops within a fixed-chain pass.
func travelChain(from, to geom2d.Point) *move.MoveChain {
	c := move.NewChain(from, false)
	c.Add(to, 0, move.Travel())
	return c
}

func degToRad(d float64) float32 { return float32(d * math.Pi / 180) }

// rotationAngle returns the infill rotation angle 45+120k degrees used by
// solid/top/bottom fill passes, in radians.
func rotationAngle(layerIndex int) float32 {
	deg := 45 + 120*float64(layerIndex%3)
	return degToRad(deg)
}

// ensureSlices is a defensive no-op guard shared by every per-slice pass:
// an empty slice list is valid input (e.g. an object with zero layers)
// and every pass must treat it as already done.
func ensureSlices(slices []*slice.Slice) bool { return len(slices) > 0 }
