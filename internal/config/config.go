// Package config loads the engine configuration: defaults, an optional YAML
// file, then command-line flags, each layer overriding the previous one.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AssetRootEnv names the environment variable pointing at the asset root
// for textures, models, and sounds.
const AssetRootEnv = "MC_LITE_ASSETS"

// Config captures the tunable parameters of an engine run.
type Config struct {
	Seed            uint32  `yaml:"seed"`
	RenderDistance  int     `yaml:"renderDistance"`
	ResolutionScale float64 `yaml:"resolutionScale"`
	SaveDir         string  `yaml:"saveDir"`
	AssetRoot       string  `yaml:"assetRoot"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		RenderDistance:  3,
		ResolutionScale: 0.7,
		SaveDir:         "save",
		AssetRoot:       os.Getenv(AssetRootEnv),
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.Clamp()
	return cfg, nil
}

// Clamp bounds the tunables to sane ranges.
func (c *Config) Clamp() {
	if c.RenderDistance < 1 {
		c.RenderDistance = 1
	}
	if c.RenderDistance > 16 {
		c.RenderDistance = 16
	}
	if c.ResolutionScale < 0.1 {
		c.ResolutionScale = 0.1
	}
	if c.ResolutionScale > 2.0 {
		c.ResolutionScale = 2.0
	}
}
