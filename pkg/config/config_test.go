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

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}

	if cfg.Upstream.BaseURL != "https://commerce.example.com/api/v1" {
		t.Fatalf("unexpected upstream base URL: %q", cfg.Upstream.BaseURL)
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}

	if got := cfg.Cache.CatalogTTL; got != 15*time.Minute {
		t.Fatalf("expected catalog TTL 15m, got %v", got)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsNonHTTPUpstream(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvUpstreamBaseURL, "ftp://commerce.example.com")

	if _, err := Load(); err == nil {
		t.Fatal("expected non-http upstream URL to be rejected")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvUpstreamBaseURL, "https://commerce.example.com/api/v1")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
}
