package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application-wide configuration populated from environment variables.
type Config struct {
	Port          int
	GeminiAPIKey  string
	GeminiModel   string
	AudioDir      string
	TempDir       string
	SessionSecret string
	CORSOrigin    string
	LogLevel      string
}

// Load reads the .env file (if present) and environment variables,
// applies defaults and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnvInt("PORT", 8000),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		AudioDir:      getEnv("AUDIO_DIR", "static/audio"),
		TempDir:       getEnv("TEMP_DIR", os.TempDir()),
		SessionSecret: getEnv("SESSION_SECRET", "secret"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:3000"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY not set")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.AudioDir == "" {
		return fmt.Errorf("AUDIO_DIR must not be empty")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
