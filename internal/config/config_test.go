package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var fromYAML CatchConfig
	if err := yaml.Unmarshal(DefaultCatchYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if fromYAML != DefaultCatchConfig() {
		t.Errorf("embedded defaults drifted from DefaultCatchConfig:\n%+v\n%+v", fromYAML, DefaultCatchConfig())
	}
}

func TestLoadCatchFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadCatch("")
	if err != nil {
		t.Fatalf("LoadCatch() failed: %v", err)
	}
	if cfg.Timing.SpawnIntervalMS != 650 || cfg.Timing.TickIntervalMS != 16 {
		t.Errorf("unexpected timing: %+v", cfg.Timing)
	}
}

func TestLoadCatchLocalDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	os.MkdirAll(filepath.Join(dir, "configs"), 0o755)
	os.WriteFile(filepath.Join(dir, "configs", "catch.yaml"), []byte("rules:\n  max_strikes: 5\n"), 0o600)

	cfg, err := LoadCatch("")
	if err != nil {
		t.Fatalf("LoadCatch() failed: %v", err)
	}
	if cfg.Rules.MaxStrikes != 5 {
		t.Errorf("MaxStrikes = %d, expected 5", cfg.Rules.MaxStrikes)
	}
	// Untouched keys keep their defaults
	if cfg.Player.Width != 130 {
		t.Errorf("Player.Width = %g, expected default 130", cfg.Player.Width)
	}
}

func TestLoadCatchCustomPath(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"valid override", "difficulty:\n  preset: hard\n", false},
		{"bad yaml", "timing: [", true},
		{"negative interval", "timing:\n  tick_interval_ms: -1\n", true},
		{"inverted thresholds", "spawn:\n  bone: 0.9\n  trash: 0.5\n", true},
		{"unknown preset", "difficulty:\n  preset: nightmare\n", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catch.yaml")
			os.WriteFile(path, []byte(tc.content), 0o600)

			_, err := LoadCatch(path)
			if (err != nil) != tc.wantErr {
				t.Errorf("LoadCatch() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestLoadCatchMissingCustomPath(t *testing.T) {
	cfg, err := LoadCatch(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
	if cfg != DefaultCatchConfig() {
		t.Error("failed load should still return usable defaults")
	}
}

func TestSpeedForPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		want   float64
	}{
		{DifficultyEasy, 0.8},
		{DifficultyNormal, 1.0},
		{DifficultyHard, 1.3},
		{"bogus", 1.0},
	}
	for _, tc := range tests {
		if got := SpeedForPreset(tc.preset); got != tc.want {
			t.Errorf("SpeedForPreset(%q) = %g, expected %g", tc.preset, got, tc.want)
		}
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("empty preset should parse as normal, got %q %v", p, ok)
	}
	if _, ok := ParsePreset("extreme"); ok {
		t.Error("unknown preset should not parse")
	}
}

func TestDifficultyManagerRamp(t *testing.T) {
	cfg := DefaultCatchConfig()
	ApplyCatchPreset(&cfg, DifficultyHard)
	dm := NewDifficultyManager(cfg.Difficulty)

	if !dm.IsEnabled() {
		t.Fatal("hard preset should enable the score ramp")
	}
	if got := dm.SpeedFactor(0); got != 1.3 {
		t.Errorf("SpeedFactor(0) = %g, expected 1.3", got)
	}
	top := 1.3 * (1 + cfg.Difficulty.Scaling.SpeedMultiplier)
	if got := dm.SpeedFactor(cfg.Difficulty.Progression.MaxAt * 2); got != top {
		t.Errorf("SpeedFactor past max = %g, expected %g", got, top)
	}
}

func TestDifficultyManagerFlat(t *testing.T) {
	dm := NewDifficultyManager(DefaultCatchConfig().Difficulty)
	if dm.IsEnabled() {
		t.Fatal("default progression should be flat")
	}
	for _, n := range []int{0, 10, 1000} {
		if got := dm.SpeedFactor(n); got != 1.0 {
			t.Errorf("SpeedFactor(%d) = %g, expected 1.0", n, got)
		}
	}
}
