package in_mem

import (
	"context"
	"log/slog"
	"sync"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
	"github.com/DjordjeVuckovic/news-hub/internal/storage"
)

type InMemStorer struct {
	storageLock sync.RWMutex
	storage     map[string]domain.Article
	byURL       map[string]string
}

func NewInMemStorer() *InMemStorer {
	return &InMemStorer{
		storage: make(map[string]domain.Article),
		byURL:   make(map[string]string),
	}
}

func (s *InMemStorer) SaveBulk(_ context.Context, articles []domain.Article) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	saved := 0
	for _, article := range articles {
		if article.ID == "" {
			continue
		}
		if _, ok := s.storage[article.ID]; ok {
			continue
		}
		s.storage[article.ID] = article
		if _, ok := s.byURL[article.URL]; !ok && article.URL != "" {
			s.byURL[article.URL] = article.ID
		}
		saved++
	}
	slog.Debug("articles archived in memory", "saved", saved, "total", len(s.storage))

	return nil
}

func (s *InMemStorer) FindByID(_ context.Context, id string) (domain.Article, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	article, ok := s.storage[id]
	if !ok {
		return domain.Article{}, storage.ErrNotFound
	}
	return article, nil
}

func (s *InMemStorer) FindByURL(_ context.Context, url string) (domain.Article, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	id, ok := s.byURL[url]
	if !ok {
		return domain.Article{}, storage.ErrNotFound
	}
	return s.storage[id], nil
}

func (s *InMemStorer) Len() int {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()
	return len(s.storage)
}
