package es

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
	"github.com/DjordjeVuckovic/news-hub/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

type Storer struct {
	client    *elasticsearch.TypedClient
	indexName string
	refresh   string
	now       func() time.Time
}

type StorerOption func(*Storer)

// WithRefresh sets the bulk refresh policy ("true", "wait_for" or "false").
func WithRefresh(refresh string) StorerOption {
	return func(s *Storer) {
		s.refresh = refresh
	}
}

func NewStorer(ctx context.Context, config ClientConfig, opts ...StorerOption) (*Storer, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	s := &Storer{
		client:    client,
		indexName: config.IndexName,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return s, nil
}

// SaveBulk indexes articles with the create action, so an article that is
// already archived keeps its first version.
func (s *Storer) SaveBulk(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         s.indexName,
		Client:        s.client,
		NumWorkers:    2,
		FlushBytes:    5e+6, // 5MB
		FlushInterval: 30 * time.Second,
		Refresh:       s.refresh,
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var created, existing, failed atomic.Int64
	archivedAt := s.now()

	for _, article := range articles {
		if article.ID == "" {
			continue
		}
		docID := storage.RecordID(article.ID).String()

		docBytes, err := json.Marshal(toDocument(article, archivedAt))
		if err != nil {
			slog.Error("failed to marshal document", "error", err, "id", article.ID)
			failed.Add(1)
			continue
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "create",
			DocumentID: docID,
			Body:       bytes.NewReader(docBytes),
			OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
				created.Add(1)
			},
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err == nil && res.Status == http.StatusConflict {
					existing.Add(1)
					return
				}
				failed.Add(1)
				if err != nil {
					slog.Error("bulk archive error", "error", err, "id", item.DocumentID)
				} else {
					slog.Error("bulk archive error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
				}
			},
		})
		if err != nil {
			failed.Add(1)
			slog.Error("failed to add document to bulk indexer", "error", err, "id", article.ID)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	slog.Debug("bulk archive completed",
		"created", created.Load(),
		"existing", existing.Load(),
		"failed", failed.Load(),
		"index", s.indexName)

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("failed to archive %d out of %d articles", n, len(articles))
	}
	return nil
}

func (s *Storer) FindByID(ctx context.Context, id string) (domain.Article, error) {
	res, err := s.client.Get(s.indexName, storage.RecordID(id).String()).Do(ctx)
	if err != nil {
		if isNotFound(err) {
			return domain.Article{}, storage.ErrNotFound
		}
		return domain.Article{}, fmt.Errorf("failed to get archived article: %w", err)
	}
	if !res.Found {
		return domain.Article{}, storage.ErrNotFound
	}

	return decode(res.Source_)
}

func (s *Storer) FindByURL(ctx context.Context, url string) (domain.Article, error) {
	res, err := s.client.Search().
		Index(s.indexName).
		Query(&types.Query{
			Term: map[string]types.TermQuery{
				"url": {Value: url},
			},
		}).
		Size(1).
		Do(ctx)
	if err != nil {
		if isNotFound(err) {
			return domain.Article{}, storage.ErrNotFound
		}
		return domain.Article{}, fmt.Errorf("failed to search archived article: %w", err)
	}
	if len(res.Hits.Hits) == 0 {
		return domain.Article{}, storage.ErrNotFound
	}

	return decode(res.Hits.Hits[0].Source_)
}

func (s *Storer) EnsureIndex(ctx context.Context) error {
	exists, err := s.client.Indices.Exists(s.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if exists {
		slog.Info("Index already exists", "index", s.indexName)
		return nil
	}

	settings := buildSettings()
	mappings := buildMapping()
	createRes, err := s.client.Indices.Create(s.indexName).
		Settings(&settings).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", s.indexName)
	return nil
}

func decode(source json.RawMessage) (domain.Article, error) {
	var doc Document
	if err := json.Unmarshal(source, &doc); err != nil {
		return domain.Article{}, fmt.Errorf("failed to decode archived article: %w", err)
	}
	return doc.toArticle(), nil
}

func isNotFound(err error) bool {
	var esErr *types.ElasticsearchError
	return errors.As(err, &esErr) && esErr.Status == http.StatusNotFound
}
