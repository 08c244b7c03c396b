package aggregator

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	BranchTimeout    time.Duration
	PrimaryCountry   string
	SecondaryCountry string
}

func LoadEnv() (*Config, error) {
	cfg := &Config{
		BranchTimeout:    DefaultBranchTimeout,
		PrimaryCountry:   os.Getenv("NEWSAPI_PRIMARY_COUNTRY"),
		SecondaryCountry: os.Getenv("NEWSAPI_SECONDARY_COUNTRY"),
	}
	if cfg.PrimaryCountry == "" {
		cfg.PrimaryCountry = DefaultPrimaryCountry
	}
	if cfg.SecondaryCountry == "" {
		cfg.SecondaryCountry = DefaultSecondaryCountry
	}

	if v := os.Getenv("AGGREGATOR_BRANCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid AGGREGATOR_BRANCH_TIMEOUT: %q", v)
		}
		cfg.BranchTimeout = d
	}

	return cfg, nil
}

// Options turns the config into facade options.
func (c Config) Options() []Option {
	return []Option{
		WithBranchTimeout(c.BranchTimeout),
		WithCountries(c.PrimaryCountry, c.SecondaryCountry),
	}
}
