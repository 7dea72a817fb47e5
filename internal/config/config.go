package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultAppEnv          = "development"
	defaultLogLevel        = "info"
	defaultGeminiModel     = "gemini-2.0-flash"
	defaultShutdownTimeout = 10 * time.Second
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Port            string
	AppEnv          string
	LogLevel        string
	GeminiAPIKey    string
	GeminiModel     string
	ShutdownTimeout time.Duration
}

// IsDev reports whether the service runs in local development mode.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	}
	return false
}

// SuggestionsEnabled reports whether an API key for the text-generation service is set.
func (c Config) SuggestionsEnabled() bool {
	return c.GeminiAPIKey != ""
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv file. Variables already present in
// the environment win over the file.
func LoadFrom(dotenvPath string) Config {
	// A missing file is fine; production injects real env vars.
	_ = godotenv.Load(dotenvPath)

	cfg := Config{
		Port:            getEnv("PORT", defaultPort),
		AppEnv:          getEnv("APP_ENV", defaultAppEnv),
		LogLevel:        getEnv("LOG_LEVEL", defaultLogLevel),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		GeminiModel:     getEnv("GEMINI_MODEL", defaultGeminiModel),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	if cfg.GeminiAPIKey == "" {
		log.Print("warning: GEMINI_API_KEY is not set, AI suggestions are disabled")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
		log.Printf("warning: %s=%q is not a valid duration, using %s", key, value, fallback)
	}
	return fallback
}
