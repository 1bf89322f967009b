package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "prod" {
		t.Fatalf("expected App.Env to be prod, got %q", cfg.App.Env)
	}

	if cfg.Upstream.BaseURL != "https://procurement.example.com/api" {
		t.Fatalf("unexpected upstream base url: %q", cfg.Upstream.BaseURL)
	}

	if got := cfg.Upstream.Timeout; got != 30*time.Second {
		t.Fatalf("expected default upstream timeout 30s, got %v", got)
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}

	if got := cfg.Confirm.TokenTTL; got != 2*time.Minute {
		t.Fatalf("expected default confirm token ttl 2m, got %v", got)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvUpstreamBaseURL); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvUpstreamBaseURL, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvUpstreamBaseURL, "https://procurement.example.com/api")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvJWTSecret, "secret")
	t.Setenv(EnvJWTIssuer, "procurement-gateway")
	t.Setenv(EnvJWTExpMins, "60")
	t.Setenv(EnvRefreshTokenTTLMinutes, "43200")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}

func TestRefreshTokenTTL(t *testing.T) {
	cfg := JWTConfig{RefreshTokenTTLMinutes: 120}
	if got := cfg.RefreshTokenTTL(); got != 2*time.Hour {
		t.Fatalf("expected 2h, got %v", got)
	}
	cfg.RefreshTokenTTLMinutes = 0
	if got := cfg.RefreshTokenTTL(); got != 0 {
		t.Fatalf("expected zero ttl, got %v", got)
	}
}
