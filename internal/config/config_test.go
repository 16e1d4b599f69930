package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q", cfg.DatabaseType)
	}
	if cfg.StoreBackend != "sql" {
		t.Errorf("StoreBackend = %q", cfg.StoreBackend)
	}
	if cfg.FragmentSource != "fs" {
		t.Errorf("FragmentSource = %q", cfg.FragmentSource)
	}
	if cfg.QuizSessionTTL != 2*time.Hour {
		t.Errorf("QuizSessionTTL = %v", cfg.QuizSessionTTL)
	}
	if cfg.RateLimitRequests != 30 || cfg.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = %d per %v", cfg.RateLimitRequests, cfg.RateLimitWindow)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("FRAGMENT_TIMEOUT", "2s")
	t.Setenv("VISITOR_COOKIE_TTL", "24h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerPort != "9000" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.StoreBackend != "redis" {
		t.Errorf("StoreBackend = %q", cfg.StoreBackend)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("RedisDB = %d", cfg.RedisDB)
	}
	if cfg.FragmentTimeout != 2*time.Second {
		t.Errorf("FragmentTimeout = %v", cfg.FragmentTimeout)
	}
	if cfg.VisitorCookieTTL != 24*time.Hour {
		t.Errorf("VisitorCookieTTL = %v", cfg.VisitorCookieTTL)
	}
}

func TestLoadInvalidValue(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RATE_LIMIT_REQUESTS", "many")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid integer")
	}
}
