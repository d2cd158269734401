package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Env != "local" {
		t.Errorf("Env = %q, want local", cfg.Env)
	}
	if cfg.Http.Port != ":8080" {
		t.Errorf("Http.Port = %q, want :8080", cfg.Http.Port)
	}
	if cfg.Cache.ActiveTTL != 60*time.Second {
		t.Errorf("Cache.ActiveTTL = %v, want 60s", cfg.Cache.ActiveTTL)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ENV", "prod")
	t.Setenv("HTTP_PORT", ":9090")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Env != "prod" {
		t.Errorf("Env = %q, want prod", cfg.Env)
	}
	if cfg.Http.Port != ":9090" {
		t.Errorf("Http.Port = %q, want :9090", cfg.Http.Port)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := func() *Config {
		return &Config{
			Http:     HttpConfig{Port: ":8080"},
			Postgres: PostgresConfig{Host: "pg-local"},
			Auth:     AuthConfig{JWTSecret: "s"},
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cfg := base()
	cfg.Http.Port = "8080"
	if err := cfg.Validate(); err == nil {
		t.Error("port without ':' should fail")
	}

	cfg = base()
	cfg.Auth.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Error("missing JWT secret should fail")
	}
}
