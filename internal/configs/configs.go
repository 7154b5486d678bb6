/*
Package configs is responsible for loading and parsing the application's configuration settings.

It configures server parameters by reading operating system environment variables: the running
environment, the listening port, the allowed browser origin and the directory of the landing page.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AnyOrigin is the CLIENT_URL value that lets every browser origin connect.
const AnyOrigin = "*"

// AppConfig contains all configuration parameters required for the application to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int
	PublicDir   string

	// Security Settings
	ClientURL string
}

// IsDevelopment reports whether the server runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowsAnyOrigin reports whether every browser origin is accepted.
func (c *AppConfig) AllowsAnyOrigin() bool {
	return c.ClientURL == AnyOrigin
}

// LoadConfig reads and parses the application configuration from environment variables.
// It provides default values for each configuration item and performs necessary type conversions and validation.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Server Settings ---
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "3000"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	cfg.PublicDir = os.Getenv("PUBLIC_DIR")
	if cfg.PublicDir == "" {
		cfg.PublicDir = "public"
	}

	// --- Security Settings ---
	cfg.ClientURL = NormalizeOrigin(os.Getenv("CLIENT_URL"))
	if cfg.ClientURL == "" {
		cfg.ClientURL = AnyOrigin
	}

	return cfg, nil
}

// NormalizeOrigin trims surrounding whitespace and a single trailing slash, so that
// "https://app.example.com/" matches the Origin header "https://app.example.com".
func NormalizeOrigin(origin string) string {
	origin = strings.TrimSpace(origin)
	return strings.TrimSuffix(origin, "/")
}
