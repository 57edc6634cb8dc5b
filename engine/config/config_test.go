package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/stonegate/engine/config"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Puzzle.FieldSize != 60 || cfg.Puzzle.TimeTolerance != 0.05 || cfg.Puzzle.AngleTolerance != 0.1 {
		t.Fatalf("unexpected puzzle defaults %+v", cfg.Puzzle)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != config.Default() {
		t.Fatal("missing file should give the defaults")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stonegate.yaml")
	data := []byte("window:\n  width: 800\n  height: 600\npuzzle:\n  field_size: 12\naudio:\n  enabled: false\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 || cfg.Puzzle.FieldSize != 12 || cfg.Audio.Enabled {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Window.Title != "Stonegate" || cfg.Puzzle.StoneScale != 0.03 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	want := config.Default()
	want.Transition.FadeRate = 0.8
	if err := config.Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"zero width", func(c *config.Config) { c.Window.Width = 0 }},
		{"empty field", func(c *config.Config) { c.Puzzle.FieldSize = 0 }},
		{"negative tolerance", func(c *config.Config) { c.Puzzle.AngleTolerance = -1 }},
		{"inverted bounds", func(c *config.Config) { c.Puzzle.Bounds.MinZ = 5 }},
		{"reveal start too large", func(c *config.Config) { c.Transition.RevealStart = 0.6 }},
		{"zero fade rate", func(c *config.Config) { c.Transition.FadeRate = 0 }},
		{"loud", func(c *config.Config) { c.Audio.Volume = 2 }},
		{"flat fov", func(c *config.Config) { c.Render.CameraFovDegrees = 180 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, config.ErrInvalid) {
				t.Fatalf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("window: [not, a, map]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("malformed YAML should fail to load")
	}
}
