package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
	"github.com/DjordjeVuckovic/news-hub/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertArticle = `
        INSERT INTO articles (id, article_id, title, description, content, url, image_url,
                              source_id, source_name, author, published_at, category, language)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        ON CONFLICT (id) DO NOTHING;
    `

	selectArticle = `
        SELECT article_id, title, description, content, url, image_url,
               source_id, source_name, author, published_at, category, language
        FROM articles
    `
)

type Storer struct {
	db *pgxpool.Pool
}

func NewStorer(pool *ConnectionPool) (*Storer, error) {
	if pool == nil {
		return nil, errors.New("pg storer requires a connection pool")
	}
	return &Storer{db: pool.conn}, nil
}

func (s *Storer) SaveBulk(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, a := range articles {
		if a.ID == "" {
			continue
		}
		batch.Queue(insertArticle,
			storage.RecordID(a.ID),
			a.ID,
			a.Title,
			a.Description,
			a.Content,
			a.URL,
			a.ImageURL,
			a.Source.ID,
			a.Source.Name,
			a.Author,
			a.PublishedAt,
			a.Category,
			string(a.Language),
		)
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int64
	for i := 0; i < batch.Len(); i++ {
		tag, err := results.Exec()
		if err != nil {
			return fmt.Errorf("failed to archive article %d: %w", i, err)
		}
		inserted += tag.RowsAffected()
	}

	slog.Debug("articles archived", "inserted", inserted, "total", batch.Len())
	return nil
}

func (s *Storer) FindByID(ctx context.Context, id string) (domain.Article, error) {
	row := s.db.QueryRow(ctx, selectArticle+" WHERE id = $1", storage.RecordID(id))
	return scanArticle(row)
}

func (s *Storer) FindByURL(ctx context.Context, url string) (domain.Article, error) {
	row := s.db.QueryRow(ctx, selectArticle+" WHERE url = $1 ORDER BY archived_at LIMIT 1", url)
	return scanArticle(row)
}

func scanArticle(row pgx.Row) (domain.Article, error) {
	var a domain.Article
	var language string
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Description,
		&a.Content,
		&a.URL,
		&a.ImageURL,
		&a.Source.ID,
		&a.Source.Name,
		&a.Author,
		&a.PublishedAt,
		&a.Category,
		&language,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Article{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Article{}, fmt.Errorf("failed to scan archived article: %w", err)
	}
	a.Language = domain.Language(language)

	return a, nil
}
