// Package cache keeps previously served articles addressable by id for a
// short window so single-article lookups can skip a re-fetch.
package cache

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
)

const DefaultTTL = 10 * time.Minute

// Store is the article cache shared by the aggregator and the resolver.
// Put is insert-if-absent: the first article stored under an id wins until it expires.
type Store interface {
	Get(ctx context.Context, id string) (domain.Article, bool)
	Put(ctx context.Context, id string, article domain.Article) bool
	// Entries returns every unexpired article.
	Entries(ctx context.Context) []domain.Article
}
