package app

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/news-hub/internal/aggregator"
	"github.com/DjordjeVuckovic/news-hub/internal/cache"
	"github.com/DjordjeVuckovic/news-hub/internal/source/berita"
	"github.com/DjordjeVuckovic/news-hub/internal/source/httpcache"
	"github.com/DjordjeVuckovic/news-hub/internal/source/newsapi"
	"github.com/DjordjeVuckovic/news-hub/internal/storage/factory"
)

// Config gathers the configuration of every component the binaries wire.
type Config struct {
	LogLevel   slog.Level
	HTTP       httpcache.Config
	NewsAPI    newsapi.Config
	Regional   berita.Config
	Aggregator aggregator.Config
	Cache      cache.Config
	Storage    factory.StorageConfig
}

func LoadEnv() (*Config, error) {
	level, err := ParseLogLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}

	httpCfg, err := httpcache.LoadEnv()
	if err != nil {
		return nil, err
	}
	newsapiCfg, err := newsapi.LoadEnv()
	if err != nil {
		return nil, err
	}
	regionalCfg, err := berita.LoadEnv()
	if err != nil {
		return nil, err
	}
	aggCfg, err := aggregator.LoadEnv()
	if err != nil {
		return nil, err
	}
	cacheCfg, err := cache.LoadEnv()
	if err != nil {
		return nil, err
	}
	storageCfg, err := factory.LoadEnv()
	if err != nil {
		return nil, err
	}

	return &Config{
		LogLevel:   level,
		HTTP:       *httpCfg,
		NewsAPI:    *newsapiCfg,
		Regional:   *regionalCfg,
		Aggregator: *aggCfg,
		Cache:      *cacheCfg,
		Storage:    *storageCfg,
	}, nil
}

// ParseLogLevel maps LOG_LEVEL values to slog levels. Empty means info.
func ParseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL: %q", raw)
	}
}
