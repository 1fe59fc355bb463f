package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nutrilens/backend/internal/models"
)

// ModelConfig describes one inference modality: which model serves it
// and whether that model supports schema-constrained generation.
type ModelConfig struct {
	Model          string
	SchemaEnforced bool
}

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Inference service configuration
	GeminiAPIKey string
	GeminiAPIURL string
	TextModel    ModelConfig
	ImageModel   ModelConfig

	// Redis configuration (optional; empty host disables caching and
	// rate limiting)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Rate limiting for the analyze endpoints
	RateLimit       int
	RateLimitWindow time.Duration

	// Static daily nutrition goal
	Goal models.DailyGoal
}

// LoadConfig creates a new Config instance from environment variables
// and secret files, then validates it.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		GeminiAPIURL: getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta"),
		TextModel: ModelConfig{
			Model:          getEnv("GEMINI_TEXT_MODEL", "gemini-3-flash-preview"),
			SchemaEnforced: getEnvBool("GEMINI_TEXT_SCHEMA_ENFORCED", true),
		},
		ImageModel: ModelConfig{
			Model:          getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
			SchemaEnforced: getEnvBool("GEMINI_IMAGE_SCHEMA_ENFORCED", false),
		},

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RateLimit:       getEnvInt("ANALYZE_RATE_LIMIT", 30),
		RateLimitWindow: getEnvDuration("ANALYZE_RATE_WINDOW", time.Hour),

		Goal: models.DailyGoal{
			Calories: getEnvFloat("GOAL_CALORIES", 2200),
			Protein:  getEnvFloat("GOAL_PROTEIN", 140),
			Carbs:    getEnvFloat("GOAL_CARBS", 250),
			Fat:      getEnvFloat("GOAL_FAT", 70),
		},
	}

	apiKey, err := loadAPIKey()
	if err != nil {
		return nil, err
	}
	cfg.GeminiAPIKey = apiKey

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadAPIKey reads the inference API key from the environment or from a
// secret file, the file being the fallback when the variable is unset.
func loadAPIKey() (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey != "" {
		return apiKey, nil
	}

	apiKeyFile := os.Getenv("GEMINI_API_KEY_FILE")
	if apiKeyFile == "" {
		return "", fmt.Errorf("GEMINI_API_KEY or GEMINI_API_KEY_FILE must be set")
	}

	apiKeyBytes, err := os.ReadFile(apiKeyFile)
	if err != nil {
		return "", fmt.Errorf("failed to read API key file: %w", err)
	}

	apiKey = strings.TrimSpace(string(apiKeyBytes))
	if apiKey == "" {
		return "", fmt.Errorf("API key file is empty")
	}

	return apiKey, nil
}

// RedisEnabled reports whether a Redis endpoint was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// RedisAddr returns the host:port address for the Redis client.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
