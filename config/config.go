// Package config loads the YAML application config of the scene viewer
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bloeys/nscene/logging"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yml"

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	VSync  *bool  `yaml:"vsync"` // pointer to distinguish unset vs false
	MSAA   *bool  `yaml:"msaa"`
}

type CameraConfig struct {
	Position []float32 `yaml:"position"`
	FovDeg   float32   `yaml:"fov_deg"`
	Near     float32   `yaml:"near"`
	Far      float32   `yaml:"far"`

	MoveSpeed float32 `yaml:"move_speed"`
	RotSpeed  float32 `yaml:"rot_speed"`
}

type SceneConfig struct {
	ShaderPath    string `yaml:"shader_path"`
	PrimitivesDir string `yaml:"primitives_dir"`
	Path          string `yaml:"path"`
	Watch         bool   `yaml:"watch"`
	FlipTextures  *bool  `yaml:"flip_textures"`
}

type Config struct {
	Window WindowConfig `yaml:"window"`
	Camera CameraConfig `yaml:"camera"`
	Scene  SceneConfig  `yaml:"scene"`
}

func (c *Config) IsVSync() bool {
	return c.Window.VSync == nil || *c.Window.VSync
}

func (c *Config) IsMSAA() bool {
	return c.Window.MSAA == nil || *c.Window.MSAA
}

// IsFlipTextures reports whether images are flipped so their first row is the bottom
// one, which is what OpenGL texture coordinates expect
func (c *Config) IsFlipTextures() bool {
	return c.Scene.FlipTextures == nil || *c.Scene.FlipTextures
}

// Default returns a config with every field set
func Default() Config {

	c := Config{}
	c.applyDefaults()
	return c
}

// applyDefaults fills every unset field
func (c *Config) applyDefaults() {

	if c.Window.Title == "" {
		c.Window.Title = "nScene"
	}

	if c.Window.Width <= 0 {
		c.Window.Width = 1280
	}

	if c.Window.Height <= 0 {
		c.Window.Height = 720
	}

	if len(c.Camera.Position) == 0 {
		c.Camera.Position = []float32{0, 5, 12}
	}

	if c.Camera.FovDeg <= 0 {
		c.Camera.FovDeg = 45
	}

	if c.Camera.Near <= 0 {
		c.Camera.Near = 0.1
	}

	if c.Camera.Far <= 0 {
		c.Camera.Far = 200
	}

	if c.Camera.MoveSpeed <= 0 {
		c.Camera.MoveSpeed = 10
	}

	if c.Camera.RotSpeed <= 0 {
		c.Camera.RotSpeed = 0.5
	}

	if c.Scene.ShaderPath == "" {
		c.Scene.ShaderPath = "./res/shaders/scene.glsl"
	}

	if c.Scene.PrimitivesDir == "" {
		c.Scene.PrimitivesDir = "./res/models"
	}

	if c.Scene.Path == "" {
		c.Scene.Path = "./res/scenes/kitchen.toml"
	}
}

func (c *Config) validate() error {

	if len(c.Camera.Position) != 3 {
		return fmt.Errorf("camera.position must have 3 components, got %d", len(c.Camera.Position))
	}

	if c.Camera.Near >= c.Camera.Far {
		return fmt.Errorf("camera.near (%f) must be less than camera.far (%f)", c.Camera.Near, c.Camera.Far)
	}

	if c.Camera.FovDeg >= 180 {
		return fmt.Errorf("camera.fov_deg must be less than 180, got %f", c.Camera.FovDeg)
	}

	return nil
}

// Parse decodes a YAML config and fills defaults for missing fields
func Parse(data []byte) (Config, error) {

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config. Err: %w", err)
	}

	c.applyDefaults()
	if err := c.validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Load reads the config at path. A missing file gives the default config.
func Load(path string) (Config, error) {

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.InfoLog.Printf("No config found at '%s', using defaults\n", path)
		return Default(), nil
	}

	if err != nil {
		return Config{}, fmt.Errorf("failed to read config '%s'. Err: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config '%s': %w", path, err)
	}

	return c, nil
}
