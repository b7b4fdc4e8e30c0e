// SPDX-License-Identifier: EPL-2.0

// Package config loads the command line defaults from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/ik5/audseq/audio"
)

// Config holds the settings shared by every audseq command. Flags override
// each field.
type Config struct {
	// Output overrides the scene layout when set; zero keeps the scene's.
	Output audio.Specs `envPrefix:"AUDSEQ_"`

	Quality audio.Quality `env:"AUDSEQ_QUALITY" envDefault:"cubic"`

	// Duration in seconds; zero plays the scene length.
	Duration float64 `env:"AUDSEQ_DURATION"`

	Verbose bool `env:"AUDSEQ_VERBOSE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the environment configuration with defaults applied.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Duration < 0 {
		return Config{}, fmt.Errorf("parse env: AUDSEQ_DURATION must not be negative, got %v", cfg.Duration)
	}

	return cfg, nil
}
