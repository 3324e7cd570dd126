package config

import (
	_ "embed"
)

//go:embed defaults/catch.yaml
var defaultCatchYAML []byte

// DefaultCatchConfig returns the built-in catch configuration.
func DefaultCatchConfig() CatchConfig {
	return CatchConfig{
		Timing: CatchTiming{
			SpawnIntervalMS: 650,
			TickIntervalMS:  16,
		},
		Field: CatchField{
			ReferenceWidth:  390,
			ReferenceHeight: 844,
			CellWidth:       5,
			CellHeight:      10,
			MinWidth:        10,
		},
		Player: CatchPlayer{
			Width:        130,
			Height:       120,
			BottomOffset: 18,
			Margin:       8,
		},
		Objects: CatchObjects{
			BoneWidth:    70,
			BoneHeight:   32,
			HazardWidth:  70,
			HazardHeight: 60,
			SpawnY:       -80,
			MinSpeed:     2.3,
			MaxSpeed:     4.6,
			CullMargin:   120,
			MaxLive:      18,
		},
		Spawn: CatchSpawn{
			Bone:  0.65,
			Trash: 0.82,
		},
		Rules: CatchRules{
			MaxStrikes: 3,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
			Progression: ProgressionConfig{
				Type:  "none",
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultCatchYAML returns the embedded default YAML.
func DefaultCatchYAML() []byte {
	return defaultCatchYAML
}
