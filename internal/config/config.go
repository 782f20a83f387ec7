// Package config holds the program settings: built-in defaults optionally
// overlaid by a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "HELLOTRIANGLE_CONFIG"

// Config is the full set of settings.
type Config struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	GLMajor      int `yaml:"gl_major"`
	GLMinor      int `yaml:"gl_minor"`
	SwapInterval int `yaml:"swap_interval"`

	Background [4]float32 `yaml:"background"`

	LogLevel string `yaml:"log_level"`
	// Screenshot, when set, is where a PNG of the scene is written on exit.
	Screenshot string `yaml:"screenshot,omitempty"`
}

// Default returns the built-in settings: an 800x600 "LearnOpenGL" window with
// an OpenGL 3.3 core context.
func Default() Config {
	return Config{
		Title:        "LearnOpenGL",
		Width:        800,
		Height:       600,
		GLMajor:      3,
		GLMinor:      3,
		SwapInterval: 1,
		Background:   [4]float32{0.2, 0.3, 0.3, 1.0},
		LogLevel:     "info",
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by EnvPath, or the defaults when unset.
func LoadFromEnv() (Config, error) {
	return Load(os.Getenv(EnvPath))
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate rejects settings the program cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	if c.GLMajor < 3 || c.GLMinor < 0 {
		errs = append(errs, fmt.Errorf("OpenGL %d.%d requested, 3.0 or newer required", c.GLMajor, c.GLMinor))
	}
	if c.SwapInterval < 0 {
		errs = append(errs, fmt.Errorf("swap_interval %d must not be negative", c.SwapInterval))
	}
	for i, v := range c.Background {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("background[%d] = %v outside [0, 1]", i, v))
		}
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
}
