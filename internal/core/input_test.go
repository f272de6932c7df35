package core

import (
	"testing"
	"time"
)

func TestInputFrameKeepsOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRotateCCW)
	f.Set(ActionNone)
	f.Set(ActionHurdle)
	f.Set(ActionRotateCCW)

	want := []Action{ActionRotateCCW, ActionHurdle, ActionRotateCCW}
	if len(f.Actions) != len(want) {
		t.Fatalf("Actions = %v, expected %v", f.Actions, want)
	}
	for i := range want {
		if f.Actions[i] != want[i] {
			t.Errorf("Actions[%d] = %v, expected %v", i, f.Actions[i], want[i])
		}
	}

	if !f.Has(ActionHurdle) || f.Has(ActionStep) {
		t.Error("Has() does not match the recorded actions")
	}
}

func TestInputFrameCloneAndClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionStep)
	f.Elapsed = 16 * time.Millisecond

	clone := f.Clone()
	f.Clear()

	if len(f.Actions) != 0 || f.Elapsed != 0 {
		t.Errorf("Clear() left %v / %v", f.Actions, f.Elapsed)
	}
	if !clone.Has(ActionStep) || clone.Elapsed != 16*time.Millisecond {
		t.Errorf("Clone() should be independent of Clear(), got %+v", clone)
	}
}

func TestActionString(t *testing.T) {
	if ActionHurdle.String() != "Hurdle" {
		t.Errorf("ActionHurdle.String() = %q", ActionHurdle.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
