package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port int `env:"TASKFLOW_TEST_PORT" envDefault:"123"`
}

type prefixedTestConfig struct {
	Addr string        `env:"ADDR" envDefault:":3000"`
	TTL  time.Duration `env:"TTL" envDefault:"1h"`
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
	t.Setenv("TASKFLOW_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvWithPrefix(t *testing.T) {
	t.Setenv("TASKFLOW_TEST_ADDR", ":9999")

	var cfg prefixedTestConfig
	if err := ParseEnvWithPrefix(&cfg, "TASKFLOW_TEST_"); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Fatalf("expected prefixed addr, got %q", cfg.Addr)
	}
	if cfg.TTL != time.Hour {
		t.Fatalf("expected default ttl, got %s", cfg.TTL)
	}
}
