package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionRotateCCW        // Left, S - move one lane counterclockwise
	ActionRotateCW         // Right, F - move one lane clockwise
	ActionStep             // Up, E - advance without changing lane
	ActionHurdle           // Down, D - advance while hurdling
	ActionRestart          // Backspace, R - rebuild the level and start over
	ActionQuit             // Q, Esc, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionRotateCW:
		return "RotateCW"
	case ActionStep:
		return "Step"
	case ActionHurdle:
		return "Hurdle"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input drained during one tick of the host loop.
// Actions keep their arrival order: every key press is one discrete move, so
// two presses in the same tick must produce two advances, in order.
type InputFrame struct {
	Actions []Action

	// Elapsed is the animation time that passes during this tick. The
	// scheduler decides whether that is wall-clock delta or one fixed tick.
	Elapsed time.Duration
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set appends an action to this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
	f.Elapsed = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := InputFrame{Elapsed: f.Elapsed}
	clone.Actions = append([]Action(nil), f.Actions...)
	return clone
}
