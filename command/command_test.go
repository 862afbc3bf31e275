package command

import (
	"testing"

	"github.com/slicekit/core/geom2d"
)

func pt(x, y float32) geom2d.Point { return geom2d.Pt(x, y) }

func TestIsExtrusionAndIsFiber(t *testing.T) {
	cases := []struct {
		name          string
		cmd           Command
		wantExtrusion bool
		wantFiber     bool
	}{
		{"move", MoveTo(pt(0, 0)), false, false},
		{"extrude", MoveAndExtrude(pt(1, 0), 0.4), true, false},
		{"fiber", MoveAndExtrudeFiber(pt(1, 0), 0.4), true, true},
		{"fiberCut", MoveAndExtrudeFiberAndCut(pt(1, 0), 0.4, 2), true, true},
		{"layerChange", LayerChange(0.2, 1), false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.cmd.IsExtrusion(); got != c.wantExtrusion {
				t.Errorf("IsExtrusion() = %v, want %v", got, c.wantExtrusion)
			}
			if got := c.cmd.IsFiber(); got != c.wantFiber {
				t.Errorf("IsFiber() = %v, want %v", got, c.wantFiber)
			}
		})
	}
}

func TestStateChangeIsEmpty(t *testing.T) {
	if !(StateChange{}).IsEmpty() {
		t.Error("zero-value StateChange should be empty")
	}
	speed := float32(50)
	if (StateChange{MovementSpeed: &speed}).IsEmpty() {
		t.Error("StateChange with MovementSpeed set should not be empty")
	}
}

func TestOptimizePassDropsEmptyStateChanges(t *testing.T) {
	speed := float32(50)
	cmds := []Command{
		SetState(StateChange{}),
		SetState(StateChange{MovementSpeed: &speed}),
		MoveAndExtrude(pt(1, 0), 0.4),
	}
	out := OptimizePass(cmds)
	for _, c := range out {
		if c.Kind == KindSetState && c.State.IsEmpty() {
			t.Error("OptimizePass left an empty SetState in the output")
		}
	}
	if len(out) != 2 {
		t.Errorf("len(out) = %d, want 2", len(out))
	}
}

func TestOptimizePassReplacesZeroLengthMoveWithNoAction(t *testing.T) {
	cmds := []Command{
		MoveTo(pt(5, 5)),
		MoveAndExtrude(pt(5, 5), 0.4),
	}
	out := OptimizePass(cmds)
	if out[1].Kind != KindNoAction {
		t.Errorf("second command kind = %v, want KindNoAction", out[1].Kind)
	}
}

func TestOptimizePassCollapsesConsecutiveTravels(t *testing.T) {
	cmds := []Command{
		MoveTo(pt(1, 0)),
		MoveTo(pt(2, 0)),
		MoveTo(pt(3, 0)),
	}
	out := OptimizePass(cmds)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].End != (pt(3, 0)) {
		t.Errorf("End = %+v, want (3,0)", out[0].End)
	}
}

func TestEvalIdPassNumbersOnlyExtrusionCommandsSequentially(t *testing.T) {
	cmds := []Command{
		MoveTo(pt(0, 0)),
		MoveAndExtrude(pt(1, 0), 0.4),
		LayerChange(0.2, 1),
		MoveAndExtrude(pt(2, 0), 0.4),
		MoveAndExtrudeFiber(pt(3, 0), 0.4),
	}
	out := EvalIdPass(cmds)
	want := []int{-1, 0, -1, 1, 2}
	for i, c := range out {
		wantID := want[i]
		if !c.IsExtrusion() {
			continue
		}
		if c.MoveID != wantID {
			t.Errorf("out[%d].MoveID = %d, want %d", i, c.MoveID, wantID)
		}
	}
}

func TestSlowDownLayerPassIsNoopWhenThresholdZero(t *testing.T) {
	speed := float32(60)
	cmds := []Command{
		SetState(StateChange{MovementSpeed: &speed}),
		MoveAndExtrude(pt(100, 0), 0.4),
	}
	out := SlowDownLayerPass(cmds, 0, 15)
	if *out[0].State.MovementSpeed != speed {
		t.Errorf("speed changed with threshold 0: got %v, want %v", *out[0].State.MovementSpeed, speed)
	}
}

func TestSlowDownLayerPassScalesDownFastLayer(t *testing.T) {
	speed := float32(600)
	cmds := []Command{
		SetState(StateChange{MovementSpeed: &speed}),
		MoveTo(pt(0, 0)),
		MoveAndExtrude(pt(10, 0), 0.4),
	}
	// 10mm at 600mm/s takes 1/60s, well under a 5s threshold: scaled down.
	out := SlowDownLayerPass(cmds, 5, 15)
	got := *out[0].State.MovementSpeed
	if got >= speed {
		t.Errorf("speed not reduced: got %v, want < %v", got, speed)
	}
	if got < 15 {
		t.Errorf("speed %v fell below MinPrintSpeed 15", got)
	}
}

func TestSlowDownLayerPassNeverGoesBelowMinPrintSpeed(t *testing.T) {
	speed := float32(6000)
	cmds := []Command{
		SetState(StateChange{MovementSpeed: &speed}),
		MoveTo(pt(0, 0)),
		MoveAndExtrude(pt(1, 0), 0.4),
	}
	out := SlowDownLayerPass(cmds, 100, 15)
	if got := *out[0].State.MovementSpeed; got < 15 {
		t.Errorf("speed = %v, fell below MinPrintSpeed 15", got)
	}
}

// TestMergeFiberPassDowngradesShortRuns covers E5: a fiber run shorter than
// MinLength is downgraded entirely to ordinary extrusion, never cut.
func TestMergeFiberPassDowngradesShortRuns(t *testing.T) {
	cmds := []Command{
		MoveTo(pt(0, 0)),
		MoveAndExtrudeFiber(pt(5, 0), 0.4),
	}
	out := MergeFiberPass(cmds, 0.3, 25, 20)
	for _, c := range out {
		if c.Kind == KindMoveAndExtrudeFiber || c.Kind == KindMoveAndExtrudeFiberAndCut {
			t.Errorf("short run was not downgraded: %+v", c)
		}
	}
}

// TestMergeFiberPassCutsLongRunBeforeItsEnd covers E4: a fiber run at least
// MinLength long is cut CutBefore millimetres before its end, and the
// portion after the cut carries the exact remaining length as CutPos.
func TestMergeFiberPassCutsLongRunBeforeItsEnd(t *testing.T) {
	cmds := []Command{
		MoveTo(pt(0, 0)),
		MoveAndExtrudeFiber(pt(100, 0), 0.4),
	}
	out := MergeFiberPass(cmds, 0.3, 25, 20)

	var cutCmd *Command
	for i := range out {
		if out[i].Kind == KindMoveAndExtrudeFiberAndCut {
			cutCmd = &out[i]
		}
	}
	if cutCmd == nil {
		t.Fatal("expected a MoveAndExtrudeFiberAndCut in the output")
	}
	if diff := cutCmd.CutPos - 20; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("CutPos = %v, want ~20", cutCmd.CutPos)
	}
}

// TestMergeFiberPassBreaksRunOnSharpAngle ensures a direction change beyond
// maxAngle ends the current fiber run rather than merging across it: each
// of the two 50mm legs qualifies for its own cut independently, so a
// genuine break produces two MoveAndExtrudeFiberAndCut commands where a
// merged run would produce only one.
func TestMergeFiberPassBreaksRunOnSharpAngle(t *testing.T) {
	cmds := []Command{
		MoveTo(pt(0, 0)),
		MoveAndExtrudeFiber(pt(50, 0), 0.4),
		MoveAndExtrudeFiber(pt(50, 50), 0.4), // sharp 90 degree turn
	}
	out := MergeFiberPass(cmds, 0.3, 25, 20)

	cuts := 0
	for _, c := range out {
		if c.Kind == KindMoveAndExtrudeFiberAndCut {
			cuts++
		}
	}
	if cuts != 2 {
		t.Errorf("cut commands = %d, want 2 (one per independently-cut leg)", cuts)
	}
}
