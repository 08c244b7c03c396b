// Package aggregator blends the international and regional adapters into
// single article lists and records every served article in the cache.
package aggregator

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/news-hub/internal/cache"
	"github.com/DjordjeVuckovic/news-hub/internal/domain"
	"github.com/DjordjeVuckovic/news-hub/internal/source"
	"github.com/DjordjeVuckovic/news-hub/internal/source/newsapi"
)

const (
	DefaultBranchTimeout    = 8 * time.Second
	DefaultPrimaryCountry   = "us"
	DefaultSecondaryCountry = "gb"

	archiveTimeout = 10 * time.Second
)

type InternationalSource interface {
	FetchHeadlines(ctx context.Context, p newsapi.HeadlineParams) source.Result
	SearchArticles(ctx context.Context, query string, p newsapi.SearchParams) source.Result
}

type RegionalSource interface {
	FetchLatest(ctx context.Context) source.Result
	FetchTrending(ctx context.Context) source.Result
}

// Archiver keeps a durable copy of served articles.
type Archiver interface {
	SaveBulk(ctx context.Context, articles []domain.Article) error
}

type Facade struct {
	intl     InternationalSource
	regional RegionalSource
	store    cache.Store
	archive  Archiver

	branchTimeout    time.Duration
	primaryCountry   string
	secondaryCountry string
	shuffle          func(n int, swap func(i, j int))

	archiving sync.WaitGroup
}

type Option func(*Facade)

// WithBranchTimeout bounds every upstream call of a fan-out; a branch that
// does not answer in time contributes no articles.
func WithBranchTimeout(d time.Duration) Option {
	return func(f *Facade) {
		if d > 0 {
			f.branchTimeout = d
		}
	}
}

func WithCountries(primary, secondary string) Option {
	return func(f *Facade) {
		if primary != "" {
			f.primaryCountry = primary
		}
		if secondary != "" {
			f.secondaryCountry = secondary
		}
	}
}

func WithArchive(a Archiver) Option {
	return func(f *Facade) {
		f.archive = a
	}
}

func WithShuffle(shuffle func(n int, swap func(i, j int))) Option {
	return func(f *Facade) {
		f.shuffle = shuffle
	}
}

func New(intl InternationalSource, regional RegionalSource, store cache.Store, opts ...Option) *Facade {
	f := &Facade{
		intl:             intl,
		regional:         regional,
		store:            store,
		branchTimeout:    DefaultBranchTimeout,
		primaryCountry:   DefaultPrimaryCountry,
		secondaryCountry: DefaultSecondaryCountry,
		shuffle:          rand.Shuffle,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type mixOptions struct {
	used *domain.UsedSet
}

type MixOption func(*mixOptions)

// WithUsed filters out articles already in used and marks the returned ones into it.
func WithUsed(used *domain.UsedSet) MixOption {
	return func(o *mixOptions) {
		o.used = used
	}
}

func applyMixOptions(opts []MixOption) mixOptions {
	var o mixOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// remember caches every returned article, marks it as used and hands the
// batch to the archive.
func (f *Facade) remember(ctx context.Context, articles []domain.Article, used *domain.UsedSet) {
	inserted := 0
	for _, a := range articles {
		if f.store.Put(ctx, a.ID, a) {
			inserted++
		}
		if used != nil {
			used.Mark(a)
		}
	}
	slog.Debug("articles cached", "returned", len(articles), "inserted", inserted)

	if f.archive == nil || len(articles) == 0 {
		return
	}

	batch := make([]domain.Article, len(articles))
	copy(batch, articles)

	f.archiving.Add(1)
	go func() {
		defer f.archiving.Done()

		archiveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
		defer cancel()

		if err := f.archive.SaveBulk(archiveCtx, batch); err != nil {
			slog.Warn("failed to archive articles", "count", len(batch), "error", err)
		}
	}()
}

// Wait blocks until pending archive writes have finished.
func (f *Facade) Wait() {
	f.archiving.Wait()
}
