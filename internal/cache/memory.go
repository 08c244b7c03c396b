package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
	"github.com/DjordjeVuckovic/news-hub/internal/metrics"
	"github.com/hashicorp/golang-lru/v2/simplelru"
)

const DefaultMaxEntries = 5000

type entry struct {
	article   domain.Article
	expiresAt time.Time
}

// Memory is a bounded in-process Store. Reads never remove expired entries;
// they are dropped by Sweep or pushed out by the LRU bound.
type Memory struct {
	mu         sync.Mutex
	lru        *simplelru.LRU[string, entry]
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

type MemoryOption func(*Memory)

func WithTTL(ttl time.Duration) MemoryOption {
	return func(m *Memory) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

func WithMaxEntries(n int) MemoryOption {
	return func(m *Memory) {
		if n > 0 {
			m.maxEntries = n
		}
	}
}

func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		ttl:        DefaultTTL,
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	// NewLRU only fails for a non-positive size, which the options rule out.
	lru, _ := simplelru.NewLRU[string, entry](m.maxEntries, nil)
	m.lru = lru

	return m
}

func (m *Memory) Get(_ context.Context, id string) (domain.Article, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.lru.Peek(id)
	if !ok || m.expired(e) {
		metrics.RecordCacheLookup(false)
		return domain.Article{}, false
	}
	m.lru.Get(id)
	metrics.RecordCacheLookup(true)

	return e.article, true
}

func (m *Memory) Put(_ context.Context, id string, article domain.Article) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.lru.Peek(id); ok && !m.expired(e) {
		return false
	}
	m.lru.Add(id, entry{
		article:   article,
		expiresAt: m.now().Add(m.ttl),
	})

	return true
}

func (m *Memory) Entries(_ context.Context) []domain.Article {
	m.mu.Lock()
	defer m.mu.Unlock()

	articles := make([]domain.Article, 0, m.lru.Len())
	for _, id := range m.lru.Keys() {
		e, _ := m.lru.Peek(id)
		if !m.expired(e) {
			articles = append(articles, e.article)
		}
	}
	return articles
}

// Len counts stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Len()
}

// Sweep removes expired entries and reports how many were dropped.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for _, id := range m.lru.Keys() {
		if e, ok := m.lru.Peek(id); ok && m.expired(e) {
			m.lru.Remove(id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				slog.Debug("article cache swept", "removed", n, "remaining", m.Len())
			}
		}
	}
}

func (m *Memory) expired(e entry) bool {
	return m.now().After(e.expiresAt)
}
