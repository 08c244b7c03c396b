package berita

import (
	"fmt"
	"os"
)

type Config struct {
	BaseURL         string
	PrimarySource   string
	SecondarySource string
	Catalog         *Catalog
}

func LoadEnv() (*Config, error) {
	cfg := &Config{
		BaseURL:         os.Getenv("REGIONAL_BASE_URL"),
		PrimarySource:   os.Getenv("REGIONAL_PRIMARY_SOURCE"),
		SecondarySource: os.Getenv("REGIONAL_SECONDARY_SOURCE"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PrimarySource == "" {
		cfg.PrimarySource = DefaultPrimarySource
	}
	if cfg.SecondarySource == "" {
		cfg.SecondarySource = DefaultSecondarySource
	}

	path := os.Getenv("REGIONAL_CATALOG_PATH")
	if path == "" {
		cfg.Catalog = DefaultCatalog()
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open regional catalog %s: %w", path, err)
	}
	defer f.Close()

	catalog, err := NewCatalogLoader(f).Load()
	if err != nil {
		return nil, err
	}
	cfg.Catalog = catalog

	return cfg, nil
}

// NewClientFromConfig builds a client using cfg and any extra options.
func NewClientFromConfig(cfg Config, opts ...ClientOption) (*Client, error) {
	opts = append([]ClientOption{
		WithCatalog(cfg.Catalog),
		WithSources(cfg.PrimarySource, cfg.SecondarySource),
	}, opts...)
	return NewClient(cfg.BaseURL, opts...)
}
