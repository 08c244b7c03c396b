package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func article(id, title string) domain.Article {
	return domain.Article{
		ID:       id,
		Title:    title,
		URL:      "https://example.com/" + id,
		Language: domain.LanguageEnglish,
	}
}

func TestMemory_FirstWriteWins(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	assert.True(t, m.Put(ctx, "a", article("a", "first")))
	assert.False(t, m.Put(ctx, "a", article("a", "second")))

	got, ok := m.Get(ctx, "a")
	require.True(t, ok)
	assert.Equal(t, "first", got.Title)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := NewMemory(WithClock(clock.Now))

	m.Put(ctx, "a", article("a", "first"))

	clock.Advance(DefaultTTL)
	_, ok := m.Get(ctx, "a")
	assert.True(t, ok, "entry is live up to its expiry instant")

	clock.Advance(time.Nanosecond)
	_, ok = m.Get(ctx, "a")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len(), "expired entries stay stored until swept")
	assert.Empty(t, m.Entries(ctx))
}

func TestMemory_ExpiredEntryCanBeReplaced(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := NewMemory(WithClock(clock.Now), WithTTL(time.Minute))

	m.Put(ctx, "a", article("a", "first"))
	clock.Advance(2 * time.Minute)

	assert.True(t, m.Put(ctx, "a", article("a", "second")))
	got, ok := m.Get(ctx, "a")
	require.True(t, ok)
	assert.Equal(t, "second", got.Title)
}

func TestMemory_Sweep(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := NewMemory(WithClock(clock.Now))

	m.Put(ctx, "old-1", article("old-1", "old"))
	m.Put(ctx, "old-2", article("old-2", "old"))
	clock.Advance(5 * time.Minute)
	m.Put(ctx, "fresh", article("fresh", "fresh"))
	clock.Advance(6 * time.Minute)

	assert.Equal(t, 2, m.Sweep())
	assert.Equal(t, 1, m.Len())
	_, ok := m.Get(ctx, "fresh")
	assert.True(t, ok)
}

func TestMemory_Run(t *testing.T) {
	clock := newFakeClock()
	m := NewMemory(WithClock(clock.Now))
	m.Put(context.Background(), "a", article("a", "first"))
	clock.Advance(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestMemory_BoundedLRU(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(WithMaxEntries(2))

	m.Put(ctx, "a", article("a", "a"))
	m.Put(ctx, "b", article("b", "b"))
	_, ok := m.Get(ctx, "a")
	require.True(t, ok)
	m.Put(ctx, "c", article("c", "c"))

	assert.Equal(t, 2, m.Len())
	_, ok = m.Get(ctx, "b")
	assert.False(t, ok, "least recently used entry is evicted")
	_, ok = m.Get(ctx, "a")
	assert.True(t, ok)
}

func TestMemory_Entries(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Put(ctx, "a", article("a", "a"))
	m.Put(ctx, "b", article("b", "b"))

	ids := make([]string, 0, 2)
	for _, a := range m.Entries(ctx) {
		ids = append(ids, a.ID)
	}
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}

func TestMemory_ConcurrentPutIsAtomic(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var inserted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if m.Put(ctx, "same", article("same", "t")) {
				inserted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), inserted.Load())
}
