package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.GeminiAPIKey == "" {
		errors = append(errors, "inference API key is required")
	}
	if cfg.GeminiAPIURL == "" {
		errors = append(errors, "inference API URL is required")
	}
	if cfg.TextModel.Model == "" {
		errors = append(errors, "text model identifier is required")
	}
	if cfg.ImageModel.Model == "" {
		errors = append(errors, "image model identifier is required")
	}
	if cfg.ServerPort == "" {
		errors = append(errors, "server port is required")
	}
	if cfg.RateLimit <= 0 {
		errors = append(errors, "rate limit must be positive")
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, "rate limit window must be positive")
	}

	// Goal targets are static for the session but must still be sane.
	if cfg.Goal.Calories <= 0 {
		errors = append(errors, "goal calories must be positive")
	}
	if cfg.Goal.Protein <= 0 || cfg.Goal.Carbs <= 0 || cfg.Goal.Fat <= 0 {
		errors = append(errors, "goal macros must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
