package aggregator

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
	"github.com/DjordjeVuckovic/news-hub/internal/metrics"
	"github.com/DjordjeVuckovic/news-hub/internal/source"
	"github.com/DjordjeVuckovic/news-hub/internal/source/berita"
	"github.com/DjordjeVuckovic/news-hub/internal/source/newsapi"
)

const (
	opMixed    = "mixed"
	opTrending = "trending"
	opSearch   = "search"

	categoryGeneral    = "general"
	categoryTechnology = "technology"
)

// regionalSlots is the share of a mixed page reserved for regional articles.
func regionalSlots(limit int) int {
	return limit * 8 / 10
}

// GetMixedArticles returns up to limit unique articles, mostly regional, in random order.
func (f *Facade) GetMixedArticles(ctx context.Context, limit int, opts ...MixOption) []domain.Article {
	if limit <= 0 {
		return []domain.Article{}
	}
	o := applyMixOptions(opts)

	pageSize := min(limit, newsapi.MaxPageSize)
	batches := f.settleAll(ctx, []branch{
		{name: "regional.latest", adapter: berita.Name, fetch: f.regional.FetchLatest},
		{name: "international.primary", adapter: newsapi.Name, fetch: f.headlines(f.primaryCountry, "", pageSize)},
		{name: "international.secondary", adapter: newsapi.Name, fetch: f.headlines(f.secondaryCountry, "", pageSize)},
	})

	picked := newPicker(o.used)

	regional := picked.unique(batches[0])
	slots := min(regionalSlots(limit), len(regional))
	mixed := make([]domain.Article, 0, limit)
	mixed = append(mixed, regional[:slots]...)

	pool := picked.unique(batches[1], batches[2])
	f.shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	intlTaken := min(len(pool), limit-len(mixed))
	mixed = append(mixed, pool[:intlTaken]...)

	// International sources could not fill their share.
	if missing := limit - len(mixed); missing > 0 {
		rest := regional[slots:]
		mixed = append(mixed, rest[:min(len(rest), missing)]...)
	}

	f.shuffle(len(mixed), func(i, j int) { mixed[i], mixed[j] = mixed[j], mixed[i] })
	mixed = mixed[:min(len(mixed), limit)]

	f.remember(ctx, mixed, o.used)
	metrics.RecordAggregation(opMixed, len(mixed))
	slog.Debug("mixed articles assembled",
		"limit", limit,
		"regional", slots,
		"international", intlTaken,
		"returned", len(mixed))

	return mixed
}

// GetTrendingArticles returns up to limit unique top headlines, newest first.
func (f *Facade) GetTrendingArticles(ctx context.Context, limit int, opts ...MixOption) []domain.Article {
	if limit <= 0 {
		return []domain.Article{}
	}
	o := applyMixOptions(opts)

	pageSize := min(limit, newsapi.MaxPageSize)
	batches := f.settleAll(ctx, []branch{
		{name: "regional.trending", adapter: berita.Name, fetch: f.regional.FetchTrending},
		{name: "international.top", adapter: newsapi.Name, fetch: f.headlines(f.primaryCountry, "", pageSize)},
		{name: "international.general", adapter: newsapi.Name, fetch: f.headlines(f.primaryCountry, categoryGeneral, pageSize)},
		{name: "international.technology", adapter: newsapi.Name, fetch: f.headlines(f.primaryCountry, categoryTechnology, pageSize)},
	})

	trending := newPicker(o.used).unique(batches...)
	slices.SortStableFunc(trending, func(a, b domain.Article) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	trending = trending[:min(len(trending), limit)]

	f.remember(ctx, trending, o.used)
	metrics.RecordAggregation(opTrending, len(trending))

	return trending
}

// SearchAllSources returns regional articles whose title contains query followed
// by international keyword matches, truncated to limit.
func (f *Facade) SearchAllSources(ctx context.Context, query string, limit int) []domain.Article {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return []domain.Article{}
	}

	batches := f.settleAll(ctx, []branch{
		{name: "regional.latest", adapter: berita.Name, fetch: f.regional.FetchLatest},
		{name: "international.search", adapter: newsapi.Name, fetch: func(ctx context.Context) source.Result {
			return f.intl.SearchArticles(ctx, query, newsapi.SearchParams{PageSize: min(limit, newsapi.MaxPageSize)})
		}},
	})

	needle := strings.ToLower(query)
	found := make([]domain.Article, 0, limit)
	for _, a := range batches[0] {
		if strings.Contains(strings.ToLower(a.Title), needle) {
			found = append(found, a)
		}
	}
	found = append(found, batches[1]...)
	found = found[:min(len(found), limit)]

	f.remember(ctx, found, nil)
	metrics.RecordAggregation(opSearch, len(found))

	return found
}

func (f *Facade) headlines(country, category string, pageSize int) func(context.Context) source.Result {
	return func(ctx context.Context) source.Result {
		return f.intl.FetchHeadlines(ctx, newsapi.HeadlineParams{
			Country:  country,
			Category: category,
			PageSize: pageSize,
		})
	}
}

// picker dedupes candidates within one call and against the caller's used set.
type picker struct {
	batch *domain.UsedSet
	used  *domain.UsedSet
}

func newPicker(used *domain.UsedSet) *picker {
	return &picker{batch: domain.NewUsedSet(), used: used}
}

func (p *picker) unique(batches ...[]domain.Article) []domain.Article {
	out := make([]domain.Article, 0)
	for _, batch := range batches {
		for _, a := range batch {
			if p.used != nil && p.used.Seen(a) {
				continue
			}
			if p.batch.MarkIfUnseen(a) {
				out = append(out, a)
			}
		}
	}
	return out
}
