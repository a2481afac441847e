// Package config loads cubelab settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/smasonuk/cubelab/viewer"
)

// DefaultPath is where the CLI looks for a config file when none is given.
const DefaultPath = "cubelab.yaml"

const (
	VariantLab    = "lab"
	VariantCanvas = "canvas"
)

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	TPS    int    `yaml:"tps"`
}

// Config is the whole settings file. Keys missing from the file keep their
// Default values.
type Config struct {
	Variant string             `yaml:"variant"`
	Window  Window             `yaml:"window"`
	Lab     viewer.LabOptions  `yaml:"lab"`
	Canvas  viewer.Description `yaml:"canvas"`
}

func Default() Config {
	return Config{
		Variant: VariantLab,
		Window: Window{
			Width:  1140,
			Height: 680,
			Title:  "cubelab",
			TPS:    60,
		},
		Lab:    viewer.DefaultLabOptions(),
		Canvas: viewer.DefaultDescription(),
	}
}

// Load reads path over Default. A missing file yields the defaults; a file
// that cannot be read or parsed is an error.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	log.Printf("config: loaded %s", path)
	return c, nil
}

// Validate rejects settings no viewer can run with.
func (c Config) Validate() error {
	switch c.Variant {
	case VariantLab, VariantCanvas:
	default:
		return fmt.Errorf("unknown variant %q", c.Variant)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

// Save writes c to path as YAML, creating the directory if needed.
func Save(path string, c Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
