// Package config handles demo configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/trefoil/internal/logger"
	"github.com/Faultbox/trefoil/pkg/curve"
	"github.com/Faultbox/trefoil/pkg/math"
	"github.com/Faultbox/trefoil/pkg/tube"
)

// Config holds all demo settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Tube      TubeConfig      `yaml:"tube"`
	Camera    CameraConfig    `yaml:"camera"`
	Lighting  LightingConfig  `yaml:"lighting"`
	Animation AnimationConfig `yaml:"animation"`
	Texture   TextureConfig   `yaml:"texture"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title         string `yaml:"title"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Fullscreen    bool   `yaml:"fullscreen"`
	VSync         bool   `yaml:"vsync"`
	ScreenshotDir string `yaml:"screenshot_dir"` // F12 captures
}

// TubeConfig mirrors tube.Options in file form.
type TubeConfig struct {
	Style      string     `yaml:"style"` // points, skeleton, wireframe, surface
	Slices     int        `yaml:"slices"`
	Scale      float32    `yaml:"scale"`
	TwistTurns float64    `yaml:"twist_turns"` // quarter turns per loop
	Closed     bool       `yaml:"closed"`
	Normals    bool       `yaml:"normals"`
	Colour     bool       `yaml:"colour"`
	UV         bool       `yaml:"uv"`
	UMax       float32    `yaml:"u_max"`
	VMax       float32    `yaml:"v_max"`
	WorldUp    [3]float32 `yaml:"world_up,flow"`
	Axes       bool       `yaml:"axes"` // draw the world axes alongside the knot
}

// CameraConfig describes the fixed orthographic camera.
type CameraConfig struct {
	Distance float32 `yaml:"distance"`
	Width    float32 `yaml:"width"`
	Height   float32 `yaml:"height"`
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
}

// LightingConfig holds the directional light used by the lit shader.
type LightingConfig struct {
	Ambient   float32    `yaml:"ambient"`
	Diffuse   float32    `yaml:"diffuse"`
	Direction [4]float32 `yaml:"direction,flow"`
}

// AnimationConfig controls how the knot turns.
type AnimationConfig struct {
	AutoRotate bool    `yaml:"auto_rotate"`
	Speed      float32 `yaml:"speed"` // radians per second
}

// TextureConfig selects the surface texture. An empty path uses the
// generated wood grain.
type TextureConfig struct {
	Path  string `yaml:"path"`
	Size  int    `yaml:"size"`
	Rings int    `yaml:"rings"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the settings of the lit, textured trefoil.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:         "Trefoil",
			Width:         800,
			Height:        800,
			VSync:         true,
			ScreenshotDir: "screenshots",
		},
		Tube: TubeConfig{
			Style:      "surface",
			Slices:     100,
			Scale:      0.4,
			TwistTurns: 1,
			Closed:     true,
			Normals:    true,
			Colour:     true,
			UV:         true,
			UMax:       20,
			VMax:       1,
			WorldUp:    [3]float32{0, 0, 1},
			Axes:       true,
		},
		Camera: CameraConfig{
			Distance: 5,
			Width:    8,
			Height:   8,
			Near:     1,
			Far:      10,
		},
		Lighting: LightingConfig{
			Ambient:   0.1,
			Diffuse:   1,
			Direction: [4]float32{0, 1, 0, 0},
		},
		Animation: AnimationConfig{
			AutoRotate: true,
			Speed:      float32(curve.Tau / 4),
		},
		Texture: TextureConfig{
			Size:  256,
			Rings: 9,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// TubeOptions converts the tube section into generator options.
func (c *Config) TubeOptions() (tube.Options, error) {
	style, err := tube.ParseStyle(c.Tube.Style)
	if err != nil {
		return tube.Options{}, err
	}
	up := c.Tube.WorldUp
	return tube.Options{
		Style:       style,
		Slices:      c.Tube.Slices,
		Scale:       c.Tube.Scale,
		TwistTurns:  c.Tube.TwistTurns,
		Closed:      c.Tube.Closed,
		WithNormals: c.Tube.Normals,
		WithColour:  c.Tube.Colour,
		WithUV:      c.Tube.UV,
		UMax:        c.Tube.UMax,
		VMax:        c.Tube.VMax,
		WorldUp:     math.Vec3{X: up[0], Y: up[1], Z: up[2]},
	}, nil
}

// Validate reports every setting that is out of range.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0,
		"window: size %dx%d must be positive", c.Window.Width, c.Window.Height)

	if _, err := c.TubeOptions(); err != nil {
		errs = append(errs, fmt.Errorf("tube: %w", err))
	}
	check(c.Tube.Slices >= 3, "tube: slices = %d, need at least 3", c.Tube.Slices)
	check(c.Tube.Scale > 0, "tube: scale = %v must be positive", c.Tube.Scale)
	check(c.Tube.WorldUp != [3]float32{}, "tube: world_up must not be zero")

	check(c.Camera.Width > 0 && c.Camera.Height > 0,
		"camera: view %vx%v must be positive", c.Camera.Width, c.Camera.Height)
	check(c.Camera.Near > 0 && c.Camera.Near < c.Camera.Far,
		"camera: need 0 < near (%v) < far (%v)", c.Camera.Near, c.Camera.Far)

	check(c.Lighting.Ambient >= 0 && c.Lighting.Diffuse >= 0,
		"lighting: intensities must not be negative")
	check(c.Texture.Path != "" || c.Texture.Size > 0,
		"texture: size = %d must be positive", c.Texture.Size)

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}
	return errors.Join(errs...)
}
