package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
	"github.com/DjordjeVuckovic/news-hub/internal/metrics"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultKeyPrefix = "news-hub:article:"

	scanCount = 200
)

// Redis stores articles as JSON strings under prefixed keys. Expiry is left
// to Redis key TTLs, so Get and Entries only ever see live articles.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

type RedisOption func(*Redis)

func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

func WithKeyPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

func NewRedis(client *redis.Client, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		ttl:    DefaultTTL,
		prefix: DefaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) Get(ctx context.Context, id string) (domain.Article, bool) {
	payload, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("redis cache get failed", "id", id, "error", err)
		}
		metrics.RecordCacheLookup(false)
		return domain.Article{}, false
	}

	var article domain.Article
	if err := json.Unmarshal(payload, &article); err != nil {
		slog.Warn("redis cache entry is not an article", "id", id, "error", err)
		metrics.RecordCacheLookup(false)
		return domain.Article{}, false
	}

	metrics.RecordCacheLookup(true)
	return article, true
}

func (r *Redis) Put(ctx context.Context, id string, article domain.Article) bool {
	payload, err := json.Marshal(article)
	if err != nil {
		slog.Warn("failed to encode article for redis cache", "id", id, "error", err)
		return false
	}

	inserted, err := r.client.SetNX(ctx, r.key(id), payload, r.ttl).Result()
	if err != nil {
		slog.Warn("redis cache put failed", "id", id, "error", err)
		return false
	}
	return inserted
}

func (r *Redis) Entries(ctx context.Context) []domain.Article {
	var keys []string
	iter := r.client.Scan(ctx, 0, r.prefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		slog.Warn("redis cache scan failed", "error", err)
	}

	articles := make([]domain.Article, 0, len(keys))
	for start := 0; start < len(keys); start += scanCount {
		end := min(start+scanCount, len(keys))

		values, err := r.client.MGet(ctx, keys[start:end]...).Result()
		if err != nil {
			slog.Warn("redis cache mget failed", "error", err)
			continue
		}
		for _, v := range values {
			// keys that expired between SCAN and MGET come back as nil
			s, ok := v.(string)
			if !ok {
				continue
			}
			var article domain.Article
			if err := json.Unmarshal([]byte(s), &article); err != nil {
				continue
			}
			articles = append(articles, article)
		}
	}
	return articles
}

func (r *Redis) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) key(id string) string {
	return r.prefix + id
}
