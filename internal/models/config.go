package models

import "time"

// Config represents the application configuration
type Config struct {
	ListenAddr           string        `yaml:"listen_addr"`
	ScrapeEndpoint       string        `yaml:"scrape_endpoint"`
	RequestTimeout       time.Duration `yaml:"request_timeout"`
	MaxResponseBytes     int64         `yaml:"max_response_bytes"`
	MaxIdleConns         int           `yaml:"max_idle_conns"`
	PageSize             int           `yaml:"page_size"`
	MaxConcurrentExports int64         `yaml:"max_concurrent_exports"`
	SessionTTL           time.Duration `yaml:"session_ttl"`
	ShutdownTimeout      time.Duration `yaml:"shutdown_timeout"`
	Verbose              bool          `yaml:"verbose"`
}
