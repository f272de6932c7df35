// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

// HexagonConfig contains all tunable settings for a run.
type HexagonConfig struct {
	Level      LevelConfig      `yaml:"level"`
	Animation  AnimationConfig  `yaml:"animation"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	Palette    PaletteConfig    `yaml:"palette"`
	Difficulty DifficultyConfig `yaml:"difficulty"`

	// Patterns is an optional catalog file that replaces the built-in one.
	Patterns string `yaml:"patterns"`
}

// LevelConfig defines the shape of a generated timeline.
type LevelConfig struct {
	IntroLength int `yaml:"intro_length"` // Empty positions before the first pattern
	Length      int `yaml:"length"`       // Total timeline positions
}

// AnimationConfig defines the obstacle slide-in.
type AnimationConfig struct {
	PixelsPerSecond float64 `yaml:"pixels_per_second"`
}

// SchedulerConfig selects the host loop timing discipline.
type SchedulerConfig struct {
	Mode     string `yaml:"mode"`      // "delta" or "fixed"
	TickRate int    `yaml:"tick_rate"` // Ticks per second
}

// PaletteConfig holds the frame colors as hex strings ("#rrggbb").
type PaletteConfig struct {
	Dark   string `yaml:"dark"`   // Odd lanes and the inner disk
	Medium string `yaml:"medium"` // Even lanes
	Light  string `yaml:"light"`  // Border ring and walls
	Hurdle string `yaml:"hurdle"`
	Player string `yaml:"player"`
	Text   string `yaml:"text"`
}

// DifficultyConfig defines how the slide-in speeds up over a run.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "distance" or "none"
	MaxAt int    `yaml:"max_at"` // Distance at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to animation speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
