// Package config manages TOML configuration for the finisher engine.
// Builtin defaults always apply; a config file only overrides what it sets.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/slobdell/finisher/engine"
)

// Config holds the entire config structure.
type Config struct {
	Engine EngineConfig `toml:"engine"`
}

// EngineConfig mirrors engine.Options.
type EngineConfig struct {
	MinGramSize    int     `toml:"min_gram_size"`
	TypoDeviations int     `toml:"typo_deviations"`
	MinResults     int     `toml:"min_results"`
	MaxResults     int     `toml:"max_results"`
	ScoreThreshold float64 `toml:"score_threshold"`
}

// Default returns the builtin configuration.
func Default() *Config {
	opts := engine.DefaultOptions()
	return &Config{
		Engine: EngineConfig{
			MinGramSize:    opts.MinGramSize,
			TypoDeviations: opts.TypoDeviations,
			MinResults:     opts.MinResults,
			MaxResults:     opts.MaxResults,
			ScoreThreshold: opts.ScoreThreshold,
		},
	}
}

// Load reads a TOML file over the builtin defaults. A missing file is not
// an error: the defaults are returned, so callers can treat the config file
// as optional.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Debugf("no config file at %s, using defaults", path)
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// EngineOptions converts the config into engine options.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		MinGramSize:    c.Engine.MinGramSize,
		TypoDeviations: c.Engine.TypoDeviations,
		MinResults:     c.Engine.MinResults,
		MaxResults:     c.Engine.MaxResults,
		ScoreThreshold: c.Engine.ScoreThreshold,
	}
}
