package httpcache

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"
)

const DefaultTimeout = 15 * time.Second

type Config struct {
	TTL     time.Duration
	Size    int
	Timeout time.Duration
}

func LoadEnv() (*Config, error) {
	cfg := &Config{
		TTL:     DefaultTTL,
		Size:    DefaultSize,
		Timeout: DefaultTimeout,
	}

	if v := os.Getenv("HTTP_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_CACHE_TTL: %w", err)
		}
		cfg.TTL = d
	}

	if v := os.Getenv("HTTP_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid HTTP_CACHE_SIZE: %q", v)
		}
		cfg.Size = n
	}

	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// NewClient returns an http.Client whose GET responses are served from the cache
// while fresh.
func NewClient(cfg Config) *http.Client {
	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: NewTransport(cfg.TTL, cfg.Size),
	}
}
