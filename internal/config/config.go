// Package config provides YAML-based configuration loading and difficulty
// management for the catch game.
package config

// CatchConfig contains all configuration for the catch game.
// Lengths are in reference units: the layout a 390x844 portrait field uses
// before the screen-derived scale factor is applied.
type CatchConfig struct {
	Timing     CatchTiming      `yaml:"timing"`
	Field      CatchField       `yaml:"field"`
	Player     CatchPlayer      `yaml:"player"`
	Objects    CatchObjects     `yaml:"objects"`
	Spawn      CatchSpawn       `yaml:"spawn"`
	Rules      CatchRules       `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// CatchTiming defines the periods of the two periodic processes.
type CatchTiming struct {
	SpawnIntervalMS int `yaml:"spawn_interval_ms"`
	TickIntervalMS  int `yaml:"tick_interval_ms"`
}

// CatchField defines the reference field and how terminal cells map onto it.
type CatchField struct {
	ReferenceWidth  float64 `yaml:"reference_width"`  // portrait width at scale 1
	ReferenceHeight float64 `yaml:"reference_height"` // portrait height at scale 1
	CellWidth       float64 `yaml:"cell_width"`       // field units per terminal column
	CellHeight      float64 `yaml:"cell_height"`      // field units per terminal row
	MinWidth        float64 `yaml:"min_width"`        // narrower fields do not spawn
}

// CatchPlayer defines the dog the player drags.
type CatchPlayer struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomOffset float64 `yaml:"bottom_offset"`
	Margin       float64 `yaml:"margin"`
}

// CatchObjects defines falling object sizes and motion.
type CatchObjects struct {
	BoneWidth    float64 `yaml:"bone_width"`
	BoneHeight   float64 `yaml:"bone_height"`
	HazardWidth  float64 `yaml:"hazard_width"`
	HazardHeight float64 `yaml:"hazard_height"`
	SpawnY       float64 `yaml:"spawn_y"`
	MinSpeed     float64 `yaml:"min_speed"`
	MaxSpeed     float64 `yaml:"max_speed"`
	CullMargin   float64 `yaml:"cull_margin"`
	MaxLive      int     `yaml:"max_live"`
}

// CatchSpawn defines the cumulative kind thresholds over a uniform draw.
// Draws below Bone spawn a bone, below Trash a trash bag, anything else a
// no-dogs sign.
type CatchSpawn struct {
	Bone  float64 `yaml:"bone"`
	Trash float64 `yaml:"trash"`
}

// CatchRules defines scoring limits.
type CatchRules struct {
	MaxStrikes int `yaml:"max_strikes"`
}

// DifficultyConfig defines the difficulty preset and optional speed ramp.
type DifficultyConfig struct {
	Preset      DifficultyPreset  `yaml:"preset"`
	Progression ProgressionConfig `yaml:"progression"`
	Scaling     ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a session.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "none" or "score"
	MaxAt int    `yaml:"max_at"` // collected count at which the ramp tops out
}

// ScalingConfig defines how the ramp affects fall speed.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // extra speed fraction at the top of the ramp
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// SpeedForPreset returns the fall speed multiplier for a preset.
// Unknown presets play like normal.
func SpeedForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.8
	case DifficultyHard:
		return 1.3
	default:
		return 1.0
	}
}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, true
	case "":
		return DifficultyNormal, true
	default:
		return "", false
	}
}
