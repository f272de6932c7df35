package config

import (
	_ "embed"
)

//go:embed defaults/hexagon.yaml
var defaultHexagonYAML []byte

// DefaultHexagonConfig returns the built-in configuration.
func DefaultHexagonConfig() HexagonConfig {
	return HexagonConfig{
		Level: LevelConfig{
			IntroLength: 4,
			Length:      300,
		},
		Animation: AnimationConfig{
			PixelsPerSecond: 240,
		},
		Scheduler: SchedulerConfig{
			Mode:     "delta",
			TickRate: 60,
		},
		Palette: PaletteConfig{
			Dark:   "#471205",
			Medium: "#6a1a07",
			Light:  "#c1161e",
			Hurdle: "#1fc116",
			Player: "#ff7780",
			Text:   "#ffffff",
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "distance",
				MaxAt: 250,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}
