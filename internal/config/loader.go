package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/hexlanes/internal/core"
)

// hexagonFile is the config file name looked up in each search directory.
const hexagonFile = "hexagon.yaml"

// LoadHexagon loads the game configuration.
// Search order: customPath -> ~/.hexlanes/configs/hexagon.yaml -> ./configs/hexagon.yaml -> embedded default.
// Keys missing from a file keep their default values.
func LoadHexagon(customPath string) (HexagonConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return HexagonConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseHexagon(data)
		if err != nil {
			return HexagonConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(hexagonFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseHexagon(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", hexagonFile)); err == nil {
		if cfg, err := parseHexagon(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseHexagon(defaultHexagonYAML)
	if err != nil {
		return DefaultHexagonConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseHexagon decodes YAML over the defaults and validates the result.
func parseHexagon(data []byte) (HexagonConfig, error) {
	cfg := DefaultHexagonConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return HexagonConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return HexagonConfig{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a run.
func (c HexagonConfig) Validate() error {
	var errs []error

	if c.Level.Length <= 0 {
		errs = append(errs, fmt.Errorf("level.length must be positive, got %d", c.Level.Length))
	}
	if c.Level.IntroLength < 0 || c.Level.IntroLength >= c.Level.Length {
		errs = append(errs, fmt.Errorf("level.intro_length must be in [0, %d), got %d", c.Level.Length, c.Level.IntroLength))
	}
	if c.Animation.PixelsPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("animation.pixels_per_second must be positive, got %g", c.Animation.PixelsPerSecond))
	}
	if _, err := core.ParseScheduleMode(c.Scheduler.Mode); err != nil {
		errs = append(errs, fmt.Errorf("scheduler.mode: %w", err))
	}
	if c.Scheduler.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("scheduler.tick_rate must be positive, got %d", c.Scheduler.TickRate))
	}
	if _, err := c.Palette.Colors(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// userConfigPath returns the path to a config file in the user's config directory.
// PatternsPath returns the configured catalog file with a leading ~
// expanded to the home directory, or "" when none is set.
func (c HexagonConfig) PatternsPath() string {
	p := c.Patterns
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}

func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hexlanes", "configs", filename)
}

// ApplyHexagonPreset modifies the config based on a difficulty preset.
func ApplyHexagonPreset(cfg *HexagonConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Longer run-in on easy, shorter on hard
	switch preset {
	case DifficultyEasy:
		cfg.Level.IntroLength = 8
	case DifficultyHard:
		cfg.Level.IntroLength = 2
	}
}

// ParsePreset validates a difficulty preset name.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}
