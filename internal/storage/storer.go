// Package storage defines the optional article archive: a durable history of
// every article the aggregator served, used as the last resolution fallback.
package storage

import (
	"context"
	"errors"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("article not found in archive")

type Storer interface {
	// SaveBulk stores articles that are not archived yet; existing ids are left untouched.
	SaveBulk(ctx context.Context, articles []domain.Article) error
}

type Finder interface {
	FindByID(ctx context.Context, id string) (domain.Article, error)
	FindByURL(ctx context.Context, url string) (domain.Article, error)
}

type Archive interface {
	Storer
	Finder
}

// RecordID derives the storage key of an archived article from its opaque id.
func RecordID(articleID string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(articleID))
}

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	InMem Type = "in_mem"
)

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}
