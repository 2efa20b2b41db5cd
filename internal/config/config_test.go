package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.StatsAPI.BaseURL != "http://localhost:3000" {
		t.Errorf("Unexpected stats base URL %q", cfg.StatsAPI.BaseURL)
	}
	if cfg.StatsAPI.Timeout != 30*time.Second {
		t.Errorf("Unexpected timeout %v", cfg.StatsAPI.Timeout)
	}
	if cfg.LLM.MaxTokens != 1000 || cfg.LLM.Temperature != 0.7 || cfg.LLM.NPosts != 5 {
		t.Errorf("Unexpected LLM defaults: %+v", cfg.LLM)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis should default to disabled")
	}
	if !cfg.Agent.WarmOnStart {
		t.Error("Warm-on-start should default to enabled")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STATS_API_BASE_URL", "https://api.example.com")
	t.Setenv("STATS_API_TIMEOUT_SECONDS", "10")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.StatsAPI.BaseURL != "https://api.example.com" {
		t.Errorf("Override ignored: %q", cfg.StatsAPI.BaseURL)
	}
	if cfg.StatsAPI.Timeout != 10*time.Second {
		t.Errorf("Timeout override ignored: %v", cfg.StatsAPI.Timeout)
	}
	if cfg.LLM.Temperature != 0.2 {
		t.Errorf("Temperature override ignored: %v", cfg.LLM.Temperature)
	}
	if !cfg.Redis.Enabled || cfg.Redis.Port != 6380 {
		t.Errorf("Redis overrides ignored: %+v", cfg.Redis)
	}
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("STATS_API_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("LIVE_ENABLED", "maybe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.StatsAPI.Timeout != 30*time.Second {
		t.Errorf("Expected default timeout for bad value, got %v", cfg.StatsAPI.Timeout)
	}
	if cfg.Live.Enabled {
		t.Error("Expected default for unparseable bool")
	}
}

func TestValidateLiveRequiresURL(t *testing.T) {
	t.Setenv("LIVE_ENABLED", "true")
	t.Setenv("LIVE_WS_URL", "")

	if _, err := Load(); err == nil {
		t.Error("Expected validation error when live is enabled without a URL")
	}
}
