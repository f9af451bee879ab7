package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Addr string `env:"BUYSIM_TEST_ADDR" envDefault:"localhost:9000"`
	Days int    `env:"BUYSIM_TEST_DAYS" envDefault:"14"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != "localhost:9000" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.Days != 14 {
		t.Fatalf("expected default days 14, got %d", cfg.Days)
	}
}

func TestParseEnvOverride(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("BUYSIM_TEST_DAYS", "30")

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Days != 30 {
		t.Fatalf("expected days 30, got %d", cfg.Days)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("BUYSIM_TEST_DAYS", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
