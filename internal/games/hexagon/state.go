package hexagon

import (
	"time"

	"github.com/vovakirdan/hexlanes/internal/level"
)

// restartClock is the animation clock after a restart. Anything past the
// full slide-in works; nothing should be mid-animation on a fresh level.
const restartClock = time.Second

// State is the mutable part of a run.
type State struct {
	Offset     int  // Bands scrolled past the player
	PlayerLane int  // Lane the player occupies
	Alive      bool // Cleared by a collision; only restart sets it again
	Hurdling   bool // Set for the collision check of a single advance

	// SinceAdvance drives the slide-in animation. Each advance zeroes it so
	// the obstacles slide in from the next band out.
	SinceAdvance time.Duration
}

// freshState returns the state at the start of a run.
func freshState() State {
	return State{
		Alive:        true,
		SinceAdvance: restartClock,
	}
}

// Collides decides whether the player dies on reaching a cell.
// Walls always kill, hurdles kill unless hurdled, and hurdling
// where there is nothing to clear is a mistimed jump, which also kills.
func Collides(c level.Cell, hurdling bool) bool {
	switch c {
	case level.Wall:
		return true
	case level.Hurdle:
		return !hurdling
	default:
		return hurdling
	}
}
