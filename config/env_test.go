package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"PERSPECTA_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("PERSPECTA_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(map[string]string{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{LogLevel: "info", LogFormat: "text", StrictParams: false, Output: "json"}
	if cfg != want {
		t.Fatalf("expected %+v, got %+v", want, cfg)
	}
}

func TestLoadFromMap(t *testing.T) {
	cfg, err := Load(map[string]string{
		"PERSPECTA_LOG_LEVEL":     "debug",
		"PERSPECTA_LOG_FORMAT":    "json",
		"PERSPECTA_STRICT_PARAMS": "true",
		"PERSPECTA_OUTPUT":        "text",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" || !cfg.StrictParams || cfg.Output != "text" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadInvalidBool(t *testing.T) {
	_, err := Load(map[string]string{"PERSPECTA_STRICT_PARAMS": "sometimes"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
