// ABOUTME: Configuration loader for the simulator service
// ABOUTME: Loads settings from environment variables (and an optional .env) with defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port               string
	CacheTTL           int      // seconds, for computed simulation results
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)
	ShutdownTimeout    int      // seconds to drain in-flight requests

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitWrite   int  // Requests per minute for history writes (default: 30)
	RateLimitDefault int  // Requests per minute for all other endpoints (default: 100)
	RateLimitModel   int  // Requests per minute for funnel analyses that call the model (default: 10)

	// Storage (optional; history is kept in memory when unset)
	DatabaseURL string

	// Simulation
	MarketsFile       string // YAML file with market presets merged over the built-ins
	DefaultMarket     string // market clients preselect; must be a known preset
	IncludeReturnFees bool   // count return fees in total cost (default: true)

	// Funnel analysis (optional; fixed fallback diagnoses when unset)
	GeminiAPIKey    string
	GeminiModel     string
	AnalysisTimeout int // seconds per model call
}

// GeminiConfigured returns true if a Gemini API key is set
func (c *Config) GeminiConfigured() bool {
	return c.GeminiAPIKey != ""
}

// PostgresConfigured returns true if a database URL is set
func (c *Config) PostgresConfigured() bool {
	return c.DatabaseURL != ""
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CacheTTL:           getEnvInt("CACHE_TTL", 300),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),
		ShutdownTimeout:    getEnvInt("SHUTDOWN_TIMEOUT", 10),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitWrite:   getEnvInt("RATE_LIMIT_WRITE", 30),
		RateLimitDefault: getEnvInt("RATE_LIMIT_DEFAULT", 100),
		RateLimitModel:   getEnvInt("RATE_LIMIT_MODEL", 10),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		MarketsFile:       os.Getenv("MARKETS_FILE"),
		DefaultMarket:     strings.ToUpper(getEnv("DEFAULT_MARKET", "MA")),
		IncludeReturnFees: getEnvBool("INCLUDE_RETURN_FEES", true),

		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		AnalysisTimeout: getEnvInt("ANALYSIS_TIMEOUT", 20),
	}

	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("CACHE_TTL must be non-negative, got %d", cfg.CacheTTL)
	}
	if cfg.ShutdownTimeout < 1 {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT must be at least 1, got %d", cfg.ShutdownTimeout)
	}
	if cfg.AnalysisTimeout < 1 {
		return nil, fmt.Errorf("ANALYSIS_TIMEOUT must be at least 1, got %d", cfg.AnalysisTimeout)
	}

	// Validate rate limit values
	for _, rl := range []struct {
		name  string
		value int
	}{
		{"RATE_LIMIT_WRITE", cfg.RateLimitWrite},
		{"RATE_LIMIT_DEFAULT", cfg.RateLimitDefault},
		{"RATE_LIMIT_MODEL", cfg.RateLimitModel},
	} {
		if rl.value < 1 || rl.value > 10000 {
			return nil, fmt.Errorf("%s must be between 1 and 10000, got %d", rl.name, rl.value)
		}
	}

	return cfg, nil
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

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
