// Package resolver maps an opaque article id back to a full article.
//
// Ids reach the resolver in several shapes: provider URLs (raw or
// percent-encoded), provider links, and slug+hash ids minted for pages. None of
// them is canonical, so resolution walks a fixed chain of increasingly broad
// lookups and stops at the first hit.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/news-hub/internal/aggregator"
	"github.com/DjordjeVuckovic/news-hub/internal/cache"
	"github.com/DjordjeVuckovic/news-hub/internal/domain"
	"github.com/DjordjeVuckovic/news-hub/internal/metrics"
	"github.com/DjordjeVuckovic/news-hub/internal/storage"
	"golang.org/x/sync/singleflight"
)

// Resolution steps, as reported to metrics.
const (
	StepURL     = "url"
	StepCache   = "cache"
	StepRefetch = "refetch"
	StepSlug    = "slug"
	StepScan    = "scan"
	StepArchive = "archive"
	StepMiss    = "miss"
)

var DefaultFetchLimits = []int{200, 300, 400}

// DefaultFetchTimeout bounds a shared re-fetch, which outlives the request
// that started it.
const DefaultFetchTimeout = 30 * time.Second

// MixedFetcher produces fresh article batches; every batch it returns is
// expected to be cached by the fetcher itself.
type MixedFetcher interface {
	GetMixedArticles(ctx context.Context, limit int, opts ...aggregator.MixOption) []domain.Article
}

type Archive interface {
	FindByID(ctx context.Context, id string) (domain.Article, error)
	FindByURL(ctx context.Context, url string) (domain.Article, error)
}

type Resolver struct {
	fetcher MixedFetcher
	store   cache.Store
	archive Archive
	limits  []int
	timeout time.Duration
	group   singleflight.Group
}

type Option func(*Resolver)

func WithArchive(a Archive) Option {
	return func(r *Resolver) {
		r.archive = a
	}
}

// WithFetchLimits sets the escalating batch sizes used to re-fetch.
func WithFetchLimits(limits ...int) Option {
	return func(r *Resolver) {
		if len(limits) > 0 {
			r.limits = limits
		}
	}
}

func WithFetchTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func New(fetcher MixedFetcher, store cache.Store, opts ...Option) *Resolver {
	r := &Resolver{
		fetcher: fetcher,
		store:   store,
		limits:  DefaultFetchLimits,
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveArticleByID returns the article for id, or false when every lookup misses.
func (r *Resolver) ResolveArticleByID(ctx context.Context, id string) (domain.Article, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Article{}, false
	}

	l := &lookup{resolver: r, batches: make(map[int][]domain.Article)}

	a, step, ok := l.resolve(ctx, id)
	metrics.RecordResolution(step)
	if ok {
		slog.Debug("article resolved", "id", id, "step", step)
	} else {
		slog.Info("article not found", "id", id)
	}
	return a, ok
}

// lookup holds the batches fetched while resolving a single id.
type lookup struct {
	resolver *Resolver
	batches  map[int][]domain.Article
}

func (l *lookup) resolve(ctx context.Context, id string) (domain.Article, string, bool) {
	r := l.resolver

	targets, isURL := urlTargets(id)
	if isURL {
		if a, ok := l.byURL(ctx, targets); ok {
			return a, StepURL, true
		}
	}

	if a, ok := r.store.Get(ctx, id); ok {
		return a, StepCache, true
	}

	var fetched []domain.Article
	for _, limit := range r.limits {
		if ctx.Err() != nil {
			return domain.Article{}, StepMiss, false
		}
		batch := l.fetch(ctx, limit)
		if a, ok := exactMatch(batch, id); ok {
			return a, StepRefetch, true
		}
		fetched = append(fetched, batch...)
	}

	if a, ok := slugMatch(fetched, id); ok {
		return a, StepSlug, true
	}

	cached := r.store.Entries(ctx)
	if a, ok := exactMatch(cached, id); ok {
		return a, StepScan, true
	}
	if a, ok := slugMatch(cached, id); ok {
		return a, StepScan, true
	}

	if a, ok := l.fromArchive(ctx, id, targets); ok {
		return a, StepArchive, true
	}

	return domain.Article{}, StepMiss, false
}

// byURL searches the cache and then the first fresh batch for an article
// whose url (or id) equals one of targets.
func (l *lookup) byURL(ctx context.Context, targets []string) (domain.Article, bool) {
	r := l.resolver

	for _, t := range targets {
		if a, ok := r.store.Get(ctx, t); ok {
			return a, true
		}
	}
	if a, ok := urlMatch(r.store.Entries(ctx), targets); ok {
		return a, true
	}
	if len(r.limits) == 0 {
		return domain.Article{}, false
	}
	return urlMatch(l.fetch(ctx, r.limits[0]), targets)
}

func (l *lookup) fromArchive(ctx context.Context, id string, targets []string) (domain.Article, bool) {
	archive := l.resolver.archive
	if archive == nil {
		return domain.Article{}, false
	}

	a, err := archive.FindByID(ctx, id)
	if err == nil {
		return a, true
	}
	logArchiveError(id, err)

	for _, t := range targets {
		a, err := archive.FindByURL(ctx, t)
		if err == nil {
			return a, true
		}
		logArchiveError(t, err)
	}
	return domain.Article{}, false
}

// fetch returns the batch for limit, sharing in-flight fetches across
// concurrent resolutions and reusing batches within this lookup.
// The shared fetch runs detached from any single caller, so one caller giving
// up does not hand an empty batch to the others.
func (l *lookup) fetch(ctx context.Context, limit int) []domain.Article {
	if batch, ok := l.batches[limit]; ok {
		return batch
	}

	r := l.resolver
	ch := r.group.DoChan(strconv.Itoa(limit), func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()
		return r.fetcher.GetMixedArticles(fetchCtx, limit), nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			slog.Debug("re-fetch shared with a concurrent resolution", "limit", limit)
		}
		batch, _ := res.Val.([]domain.Article)
		l.batches[limit] = batch
		return batch
	case <-ctx.Done():
		return nil
	}
}

func logArchiveError(key string, err error) {
	if !errors.Is(err, storage.ErrNotFound) {
		slog.Warn("archive lookup failed", "key", key, "error", err)
	}
}
