package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	StatsAPI StatsAPIConfig
	LLM      LLMConfig
	Live     LiveConfig
	Redis    RedisConfig
	Scraper  ScraperConfig
	Metrics  MetricsConfig
	Logging  LoggingConfig
	Agent    AgentConfig
}

type StatsAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type LLMConfig struct {
	BaseURL     string
	MaxTokens   int
	Temperature float64
	NPosts      int
}

type LiveConfig struct {
	WSURL   string
	Enabled bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Enabled  bool
}

type ScraperConfig struct {
	BaseURL string
	Enabled bool
}

type MetricsConfig struct {
	Addr string
}

type LoggingConfig struct {
	Level string
	File  string
}

type AgentConfig struct {
	RefreshInterval time.Duration
	WarmOnStart     bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		StatsAPI: StatsAPIConfig{
			BaseURL: getEnv("STATS_API_BASE_URL", "http://localhost:3000"),
			Timeout: time.Duration(getEnvInt("STATS_API_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		LLM: LLMConfig{
			BaseURL:     getEnv("LLM_API_BASE_URL", "http://localhost:8000"),
			MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 1000),
			Temperature: getEnvFloat("LLM_TEMPERATURE", 0.7),
			NPosts:      getEnvInt("LLM_N_POSTS", 5),
		},
		Live: LiveConfig{
			WSURL:   getEnv("LIVE_WS_URL", ""),
			Enabled: getEnvBool("LIVE_ENABLED", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Enabled:  getEnvBool("REDIS_ENABLED", false),
		},
		Scraper: ScraperConfig{
			BaseURL: getEnv("SCRAPER_BASE_URL", "https://www.instagram.com"),
			Enabled: getEnvBool("SCRAPER_ENABLED", true),
		},
		Metrics: MetricsConfig{
			Addr: getEnv("METRICS_ADDR", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
		Agent: AgentConfig{
			RefreshInterval: time.Duration(getEnvInt("REFRESH_INTERVAL_SECONDS", 120)) * time.Second,
			WarmOnStart:     getEnvBool("WARM_ON_START", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.StatsAPI.BaseURL == "" {
		return fmt.Errorf("STATS_API_BASE_URL is required")
	}
	if c.LLM.BaseURL == "" {
		return fmt.Errorf("LLM_API_BASE_URL is required")
	}
	if c.Live.Enabled && c.Live.WSURL == "" {
		return fmt.Errorf("LIVE_WS_URL is required when LIVE_ENABLED is set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
