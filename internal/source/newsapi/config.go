package newsapi

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
)

type Config struct {
	BaseURL string
	APIKey  string
	RPS     float64
	Burst   int
}

func LoadEnv() (*Config, error) {
	cfg := &Config{
		BaseURL: os.Getenv("NEWSAPI_BASE_URL"),
		APIKey:  os.Getenv("NEWSAPI_KEY"),
		RPS:     1,
		Burst:   3,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.APIKey == "" {
		slog.Warn("NEWSAPI_KEY is not set, international sources will return no articles")
	}

	if v := os.Getenv("NEWSAPI_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid NEWSAPI_RPS: %w", err)
		}
		cfg.RPS = rps
	}
	if v := os.Getenv("NEWSAPI_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid NEWSAPI_BURST: %w", err)
		}
		cfg.Burst = burst
	}

	return cfg, nil
}
