// Package config provides configuration loading and validation for the
// server and CLI. Each concern has its own constructor reading environment
// variables, so callers only pay for what they use.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port         int
	DatabaseURL  string
	GeminiAPIKey string // empty disables the enhance endpoint
	ChromePath   string // empty lets the rasterizer auto-detect Chrome
	CORSOrigin   string
}

// NewServerConfig creates the server configuration from environment
// variables. It reads PORT (default: 8080), DATABASE_URL (required),
// GEMINI_API_KEY, CHROME_PATH, and CORS_ORIGIN (default: *).
func NewServerConfig() (*ServerConfig, error) {
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %v", err)
	}

	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "*"
	}

	config := &ServerConfig{
		Port:         port,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		ChromePath:   os.Getenv("CHROME_PATH"),
		CORSOrigin:   origin,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}
	return config, nil
}

// normalize validates the configuration.
func (c *ServerConfig) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	return nil
}

// Addr returns the listen address for the configured port.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
