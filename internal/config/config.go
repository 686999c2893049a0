package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the client settings read from the environment.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	APIKeyHeader string
	APIKey       string
	Verbose      bool
}

const defaultTimeout = 30 * time.Second

func LoadConfig() (*Config, error) {
	baseURL := os.Getenv("VALHALLA_BASE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("VALHALLA_BASE_URL is required")
	}

	timeout := defaultTimeout
	if raw := os.Getenv("VALHALLA_TIMEOUT_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("invalid VALHALLA_TIMEOUT_MS: %q", raw)
		}
		timeout = time.Duration(ms) * time.Millisecond
	}

	verbose := false
	if raw := os.Getenv("VALHALLA_VERBOSE"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid VALHALLA_VERBOSE: %q", raw)
		}
		verbose = v
	}

	return &Config{
		BaseURL:      baseURL,
		Timeout:      timeout,
		APIKeyHeader: os.Getenv("VALHALLA_API_KEY_HEADER"),
		APIKey:       os.Getenv("VALHALLA_API_KEY"),
		Verbose:      verbose,
	}, nil
}
