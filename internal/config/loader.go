package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCatch loads the catch game configuration.
// Search order: customPath -> ~/.pawpark/configs/catch.yaml -> ./configs/catch.yaml -> embedded default
// Files are layered over the built-in defaults, so a partial file only
// overrides the keys it names.
func LoadCatch(customPath string) (CatchConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultCatchConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseCatch(data)
		if err != nil {
			return DefaultCatchConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("catch.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseCatch(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "catch.yaml")); err == nil {
		if cfg, err := parseCatch(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseCatch(defaultCatchYAML)
	if err != nil {
		return DefaultCatchConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseCatch decodes data over the defaults and validates the result.
func parseCatch(data []byte) (CatchConfig, error) {
	cfg := DefaultCatchConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first setting that would make the game unplayable.
func (c CatchConfig) Validate() error {
	switch {
	case c.Timing.SpawnIntervalMS <= 0 || c.Timing.TickIntervalMS <= 0:
		return fmt.Errorf("timing intervals must be positive")
	case c.Field.ReferenceWidth <= 0 || c.Field.ReferenceHeight <= 0:
		return fmt.Errorf("reference field must be positive")
	case c.Field.CellWidth <= 0 || c.Field.CellHeight <= 0:
		return fmt.Errorf("cell size must be positive")
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("player size must be positive")
	case c.Objects.MinSpeed <= 0 || c.Objects.MaxSpeed < c.Objects.MinSpeed:
		return fmt.Errorf("fall speed range [%g, %g] is invalid", c.Objects.MinSpeed, c.Objects.MaxSpeed)
	case c.Objects.MaxLive <= 0:
		return fmt.Errorf("max_live must be positive")
	case c.Spawn.Bone < 0 || c.Spawn.Trash < c.Spawn.Bone || c.Spawn.Trash > 1:
		return fmt.Errorf("spawn thresholds must satisfy 0 <= bone <= trash <= 1")
	case c.Rules.MaxStrikes <= 0:
		return fmt.Errorf("max_strikes must be positive")
	}
	if _, ok := ParsePreset(string(c.Difficulty.Preset)); !ok {
		return fmt.Errorf("unknown difficulty preset %q", c.Difficulty.Preset)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pawpark", "configs", filename)
}

// ApplyCatchPreset modifies the config based on a difficulty preset.
func ApplyCatchPreset(cfg *CatchConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset

	// Hard sessions also ramp up as the score grows
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Progression.Type = "none"
	case DifficultyHard:
		cfg.Difficulty.Progression.Type = "score"
	}
}
