package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"linkedin-scraper/internal/models"
)

// Environment variables that override the file configuration
const (
	EnvEndpoint = "SCRAPER_ENDPOINT"
	EnvAddr     = "SCRAPER_ADDR"
)

// DefaultConfig returns the default configuration for the scraper UI
func DefaultConfig() models.Config {
	return models.Config{
		ListenAddr:           "127.0.0.1:8080",
		ScrapeEndpoint:       "http://localhost:3000/scrape",
		RequestTimeout:       0, // no timeout, the request lives as long as its context
		MaxResponseBytes:     16 << 20,
		MaxIdleConns:         10,
		PageSize:             models.DefaultPageSize,
		MaxConcurrentExports: 4,
		SessionTTL:           2 * time.Hour,
		ShutdownTimeout:      10 * time.Second,
	}
}

// Load returns DefaultConfig overlaid with the YAML file at path (if any)
// and then with environment overrides. The result is not validated: callers
// apply their flag overrides first and then call Validate.
func Load(path string) (models.Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if v := os.Getenv(EnvEndpoint); v != "" {
		cfg.ScrapeEndpoint = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.ListenAddr = v
	}

	return cfg, nil
}

// Validate checks the values the rest of the program relies on
func Validate(cfg models.Config) error {
	if cfg.ScrapeEndpoint == "" {
		return fmt.Errorf("scrape_endpoint must not be empty")
	}
	if cfg.PageSize <= 0 || cfg.PageSize > models.MaxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d, got %d", models.MaxPageSize, cfg.PageSize)
	}
	if cfg.MaxConcurrentExports <= 0 {
		return fmt.Errorf("max_concurrent_exports must be positive, got %d", cfg.MaxConcurrentExports)
	}
	if cfg.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	if cfg.MaxResponseBytes <= 0 {
		return fmt.Errorf("max_response_bytes must be positive")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %s", cfg.ShutdownTimeout)
	}
	return nil
}
