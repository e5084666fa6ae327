package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API   APIConfig
	Token TokenConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type TokenConfig struct {
	// Path of the durable auth token file. Empty means the default
	// location under the user home directory.
	Path string
}

func Load() (*Config, error) {
	// .env is optional outside development
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("RAVEN_API_BASE_URL", "http://localhost:8000"), "/"),
			Timeout: getDurationEnv("RAVEN_HTTP_TIMEOUT", 15*time.Second),
		},
		Token: TokenConfig{
			Path: getEnv("RAVEN_TOKEN_PATH", ""),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
