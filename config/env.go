// Package config loads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings the launcher reads from PERSPECTA_* variables.
type Config struct {
	LogLevel     string `env:"PERSPECTA_LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"PERSPECTA_LOG_FORMAT" envDefault:"text"`
	StrictParams bool   `env:"PERSPECTA_STRICT_PARAMS" envDefault:"false"`
	Output       string `env:"PERSPECTA_OUTPUT" envDefault:"json"`
}

// ParseEnv loads configuration from the process environment.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseEnvFrom loads configuration from the given variables instead of the
// process environment.
func ParseEnvFrom(target any, environ map[string]string) error {
	if err := env.ParseWithOptions(target, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the launcher configuration from environ, or from the process
// environment when environ is nil.
func Load(environ map[string]string) (Config, error) {
	var cfg Config
	var err error
	if environ == nil {
		err = ParseEnv(&cfg)
	} else {
		err = ParseEnvFrom(&cfg, environ)
	}
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}
