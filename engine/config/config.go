// Package config holds the game's tunable settings, loaded from a YAML file over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read by the game when no path is given, relative to the working directory.
const DefaultPath = "config/stonegate.yaml"

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Config is the complete set of game settings.
type Config struct {
	Window     Window     `yaml:"window"`
	Puzzle     Puzzle     `yaml:"puzzle"`
	Render     Render     `yaml:"render"`
	Transition Transition `yaml:"transition"`
	Audio      Audio      `yaml:"audio"`
	Assets     Assets     `yaml:"assets"`
	Profiling  bool       `yaml:"profiling"`
}

// Window configures the game window.
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

// Bounds is the box rotating bodies are scattered in.
type Bounds struct {
	MinX float32 `yaml:"min_x"`
	MaxX float32 `yaml:"max_x"`
	MinY float32 `yaml:"min_y"`
	MaxY float32 `yaml:"max_y"`
	MinZ float32 `yaml:"min_z"`
	MaxZ float32 `yaml:"max_z"`
}

// Puzzle configures the puzzle state and its matching tolerances.
type Puzzle struct {
	FieldSize      int     `yaml:"field_size"`
	Seed           int64   `yaml:"seed"`
	TimeTolerance  float32 `yaml:"time_tolerance"`
	AngleTolerance float32 `yaml:"angle_tolerance"`
	DragAngleScale float32 `yaml:"drag_angle_scale"`
	DragTimeScale  float32 `yaml:"drag_time_scale"`
	StoneScale     float32 `yaml:"stone_scale"`
	MaxVelocity    float32 `yaml:"max_velocity"`
	Bounds         Bounds  `yaml:"bounds"`
}

// Render configures the render pipeline.
type Render struct {
	ShadowMapSize      int        `yaml:"shadow_map_size"`
	ShadowBias         float32    `yaml:"shadow_bias"`
	SkyColor           [3]float32 `yaml:"sky_color"`
	SpotColor          [3]float32 `yaml:"spot_color"`
	OffscreenClear     [4]float64 `yaml:"offscreen_clear"`
	ScreenClear        [4]float64 `yaml:"screen_clear"`
	CameraFovDegrees   float32    `yaml:"camera_fov_degrees"`
	SpotFovDegrees     float32    `yaml:"spot_fov_degrees"`
	ImageSize          int        `yaml:"image_size"`
	MaterialResolution int        `yaml:"material_resolution"`
}

// Transition configures the reveal and fade overlay.
type Transition struct {
	RevealStart float32    `yaml:"reveal_start"`
	RevealRate  float32    `yaml:"reveal_rate"`
	FadeRate    float32    `yaml:"fade_rate"`
	FadeColor   [4]float32 `yaml:"fade_color"`
}

// Audio configures the sound manager.
type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// Assets configures where target images come from.
type Assets struct {
	// ImageDir is an optional directory of PNG or JPEG target images. Built-in images are
	// generated when it is empty.
	ImageDir string `yaml:"image_dir"`
}

// Default returns the canonical game settings.
func Default() Config {
	return Config{
		Window: Window{
			Title:  "Stonegate",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Puzzle: Puzzle{
			FieldSize:      60,
			Seed:           0,
			TimeTolerance:  0.05,
			AngleTolerance: 0.1,
			DragAngleScale: 5,
			DragTimeScale:  2,
			StoneScale:     0.03,
			MaxVelocity:    6,
			Bounds: Bounds{
				MinX: -4, MaxX: 4,
				MinY: -4, MaxY: 4,
				MinZ: 0, MaxZ: 4,
			},
		},
		Render: Render{
			ShadowMapSize:      512,
			ShadowBias:         1e-5,
			SkyColor:           [3]float32{0.2, 0.2, 0.3},
			SpotColor:          [3]float32{1, 1, 1},
			OffscreenClear:     [4]float64{1, 0, 1, 0},
			ScreenClear:        [4]float64{0, 0, 0, 0},
			CameraFovDegrees:   60,
			SpotFovDegrees:     45,
			ImageSize:          512,
			MaterialResolution: 256,
		},
		Transition: Transition{
			RevealStart: 1.0 / 3.0,
			RevealRate:  1.0,
			FadeRate:    0.4,
			FadeColor:   [4]float32{0, 0, 0, 1},
		},
		Audio: Audio{
			Enabled: true,
			Volume:  0.5,
		},
	}
}

// Load reads the YAML file at path over Default(). A missing file yields the defaults
// without error; a malformed file or invalid values are errors.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Config: the loaded settings
//   - error: a decode error or a wrapped ErrInvalid
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first out-of-range setting.
//
// Returns:
//   - error: a wrapped ErrInvalid, or nil
func (c Config) Validate() error {
	b := c.Puzzle.Bounds
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Puzzle.FieldSize <= 0:
		return fmt.Errorf("%w: puzzle.field_size %d", ErrInvalid, c.Puzzle.FieldSize)
	case c.Puzzle.TimeTolerance <= 0 || c.Puzzle.AngleTolerance <= 0:
		return fmt.Errorf("%w: puzzle tolerances must be positive", ErrInvalid)
	case b.MinX > b.MaxX || b.MinY > b.MaxY || b.MinZ > b.MaxZ:
		return fmt.Errorf("%w: puzzle.bounds min exceeds max", ErrInvalid)
	case c.Puzzle.StoneScale <= 0:
		return fmt.Errorf("%w: puzzle.stone_scale %v", ErrInvalid, c.Puzzle.StoneScale)
	case c.Render.ShadowMapSize <= 0 || c.Render.ImageSize <= 0 || c.Render.MaterialResolution <= 0:
		return fmt.Errorf("%w: render texture sizes must be positive", ErrInvalid)
	case c.Render.CameraFovDegrees <= 0 || c.Render.CameraFovDegrees >= 180 || c.Render.SpotFovDegrees <= 0 || c.Render.SpotFovDegrees >= 180:
		return fmt.Errorf("%w: field of view must be in (0, 180) degrees", ErrInvalid)
	case c.Transition.RevealStart < 0 || c.Transition.RevealStart > 0.5:
		return fmt.Errorf("%w: transition.reveal_start %v outside [0, 0.5]", ErrInvalid, c.Transition.RevealStart)
	case c.Transition.RevealRate <= 0 || c.Transition.FadeRate <= 0:
		return fmt.Errorf("%w: transition rates must be positive", ErrInvalid)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume %v outside [0, 1]", ErrInvalid, c.Audio.Volume)
	}
	return nil
}
