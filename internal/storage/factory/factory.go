package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/news-hub/internal/storage"
	"github.com/DjordjeVuckovic/news-hub/internal/storage/es"
	"github.com/DjordjeVuckovic/news-hub/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/news-hub/internal/storage/pg"
	"github.com/DjordjeVuckovic/news-hub/pkg/server"
)

// Archive is a configured archive backend with its health check and cleanup.
type Archive struct {
	storage.Archive
	HealthChecker server.HealthChecker
	close         func()
}

func (a *Archive) Close() {
	if a.close != nil {
		a.close()
	}
}

// NewArchive creates the archive selected by cfg. It returns nil when the
// archive is disabled.
func NewArchive(ctx context.Context, cfg StorageConfig) (*Archive, error) {
	switch cfg.Type {
	case "":
		return nil, nil

	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		storer, err := pg.NewStorer(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return &Archive{
			Archive:       storer,
			HealthChecker: pg.NewHealthChecker(pool),
			close:         pool.Close,
		}, nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}
		storer, err := es.NewStorer(ctx, *cfg.Es)
		if err != nil {
			return nil, err
		}
		return &Archive{
			Archive:       storer,
			HealthChecker: es.NewHealthChecker(storer),
		}, nil

	case storage.InMem:
		return &Archive{
			Archive:       in_mem.NewInMemStorer(),
			HealthChecker: server.NewOkHealthChecker(),
		}, nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
