// Package app wires sources, cache, archive, facade and resolver together for
// the binaries.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/DjordjeVuckovic/news-hub/internal/aggregator"
	"github.com/DjordjeVuckovic/news-hub/internal/cache"
	"github.com/DjordjeVuckovic/news-hub/internal/resolver"
	"github.com/DjordjeVuckovic/news-hub/internal/source/berita"
	"github.com/DjordjeVuckovic/news-hub/internal/source/httpcache"
	"github.com/DjordjeVuckovic/news-hub/internal/source/newsapi"
	"github.com/DjordjeVuckovic/news-hub/internal/storage/factory"
	pkgserver "github.com/DjordjeVuckovic/news-hub/pkg/server"
)

type App struct {
	Facade        *aggregator.Facade
	Resolver      *resolver.Resolver
	HealthChecker *pkgserver.CompositeHealthChecker

	archive    *factory.Archive
	closeStore func() error
}

// New builds the application. ctx bounds background work such as the memory
// cache sweep and must stay alive as long as the App is used.
func New(ctx context.Context, cfg Config) (*App, error) {
	httpClient := httpcache.NewClient(cfg.HTTP)

	international, err := newsapi.NewClient(cfg.NewsAPI.BaseURL, cfg.NewsAPI.APIKey,
		newsapi.WithHttpClient(httpClient),
		newsapi.WithRateLimit(cfg.NewsAPI.RPS, cfg.NewsAPI.Burst),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create international source: %w", err)
	}

	regional, err := berita.NewClientFromConfig(cfg.Regional, berita.WithHttpClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create regional source: %w", err)
	}

	store, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to create article cache: %w", err)
	}

	health := pkgserver.NewCompositeHealthChecker()
	if pinger, ok := store.(interface{ HealthCheck(context.Context) error }); ok {
		health.Add(pkgserver.HealthCheckFunc(func(ctx context.Context) bool {
			return pinger.HealthCheck(ctx) == nil
		}))
	}

	aggOpts := cfg.Aggregator.Options()
	var resolverOpts []resolver.Option

	archive, err := factory.NewArchive(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create article archive: %w", err)
	}
	if archive != nil {
		slog.Info("Article archive enabled", "type", cfg.Storage.Type)
		aggOpts = append(aggOpts, aggregator.WithArchive(archive))
		resolverOpts = append(resolverOpts, resolver.WithArchive(archive))
		health.Add(archive.HealthChecker)
	}

	facade := aggregator.New(international, regional, store, aggOpts...)

	return &App{
		Facade:        facade,
		Resolver:      resolver.New(facade, store, resolverOpts...),
		HealthChecker: health,
		archive:       archive,
		closeStore:    storeCloser(store),
	}, nil
}

// Close waits for pending archive writes, then releases the archive and the
// cache connection.
func (a *App) Close() {
	a.Facade.Wait()
	if a.archive != nil {
		a.archive.Close()
	}
	if a.closeStore != nil {
		if err := a.closeStore(); err != nil {
			slog.Warn("failed to close article cache", "error", err)
		}
	}
}

func storeCloser(store cache.Store) func() error {
	if c, ok := store.(io.Closer); ok {
		return c.Close
	}
	return nil
}
