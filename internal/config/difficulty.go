package config

import "math"

// DifficultyManager calculates the fall speed factor for a session.
type DifficultyManager struct {
	cfg    DifficultyConfig
	preset float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:    cfg,
		preset: SpeedForPreset(cfg.Preset),
	}
}

// IsEnabled returns whether the speed ramp is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Progression.Type == "score"
}

// Level returns the ramp level (0.0 to 1.0) for the collected count.
func (d *DifficultyManager) Level(collected int) float64 {
	if !d.IsEnabled() {
		return 0
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	return clampF(float64(collected)/maxAt, 0.0, 1.0)
}

// SpeedFactor returns the multiplier applied to freshly drawn fall speeds.
func (d *DifficultyManager) SpeedFactor(collected int) float64 {
	return d.preset * (1.0 + d.Level(collected)*d.cfg.Scaling.SpeedMultiplier)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
