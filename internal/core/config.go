package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host ticks per second (default 60)
	Seed     int64 // RNG seed for level generation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Distance travelled (bands passed)
	GameOver bool // Whether the player has died
}

// StepResult is returned by Game.Step() after each host tick.
type StepResult struct {
	State GameState

	// Restarted is set when the tick processed a restart, so the platform
	// knows the previous run is finished.
	Restarted bool

	// Err is a fatal error raised during the tick, such as a catalog that
	// no longer loads on restart. The platform must end the session.
	Err error
}
