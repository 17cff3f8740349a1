// Package config holds the engine settings a program reads at startup.
package config

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/spritekit/render"
	"github.com/milk9111/spritekit/store"
)

type Config struct {
	Title      string  `yaml:"title"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Mode       string  `yaml:"mode"`
	Background Color   `yaml:"background"`
	Alpha      int     `yaml:"alpha"`
	Rotation   float64 `yaml:"rotation"`

	SampleRate   int   `yaml:"sample_rate"`
	FontSizes    []int `yaml:"font_sizes"`
	DerivedLimit int   `yaml:"derived_limit"`

	// Manifest is the asset manifest path, relative to AssetDir.
	Manifest string `yaml:"manifest"`
	AssetDir string `yaml:"asset_dir"`
	Watch    bool   `yaml:"watch"`

	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Title:        "spritekit",
		Width:        640,
		Height:       480,
		Mode:         render.GPU.String(),
		Background:   Color{color.NRGBA{A: 255}},
		Alpha:        255,
		SampleRate:   store.DefaultSampleRate,
		FontSizes:    slices.Clone(store.DefaultFontSizes),
		DerivedLimit: store.DefaultDerivedLimit,
		Manifest:     "manifest.yaml",
		LogLevel:     "info",
	}
}

// Load reads a YAML config. Fields missing from the file keep their
// defaults.
func Load(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", filename, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", filename, err)
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("render size %dx%d must be positive", c.Width, c.Height)
	}
	if c.Alpha < 0 || c.Alpha > 255 {
		return fmt.Errorf("alpha %d is outside 0..255", c.Alpha)
	}
	if _, err := render.ParseMode(c.Mode); err != nil {
		return err
	}
	for _, size := range c.FontSizes {
		if size <= 0 {
			return fmt.Errorf("font size %d must be positive", size)
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// RenderMode is Mode parsed. Validate has already rejected bad values.
func (c Config) RenderMode() render.Mode {
	m, _ := render.ParseMode(c.Mode)
	return m
}

func (c Config) RenderOptions() render.Options {
	return render.Options{Width: c.Width, Height: c.Height, Background: c.Background.Color}
}

func (c Config) StoreOptions() store.Options {
	return store.Options{SampleRate: c.SampleRate, FontSizes: c.FontSizes, DerivedLimit: c.DerivedLimit}
}

func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}
