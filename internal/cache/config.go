package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"

	DefaultSweepInterval = time.Minute

	redisConnectTimeout = 5 * time.Second
)

var ErrEmptyRedisAddress = errors.New("redis address is required")

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type Config struct {
	Backend       Backend
	TTL           time.Duration
	MaxEntries    int
	SweepInterval time.Duration
	Redis         RedisConfig
}

func LoadEnv() (*Config, error) {
	cfg := &Config{
		Backend:       Backend(os.Getenv("CACHE_BACKEND")),
		TTL:           DefaultTTL,
		MaxEntries:    DefaultMaxEntries,
		SweepInterval: DefaultSweepInterval,
		Redis: RedisConfig{
			Address:  os.Getenv("REDIS_ADDRESS"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendMemory
	}
	if cfg.Backend != BackendMemory && cfg.Backend != BackendRedis {
		return nil, fmt.Errorf("invalid CACHE_BACKEND value: %s, expected one of %v",
			cfg.Backend, []Backend{BackendMemory, BackendRedis})
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid CACHE_TTL: %q", v)
		}
		cfg.TTL = d
	}
	if v := os.Getenv("CACHE_MAX_ENTRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid CACHE_MAX_ENTRIES: %q", v)
		}
		cfg.MaxEntries = n
	}
	if v := os.Getenv("CACHE_SWEEP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CACHE_SWEEP_INTERVAL: %w", err)
		}
		cfg.SweepInterval = d
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.Redis.DB = db
	}

	if cfg.Backend == BackendRedis && cfg.Redis.Address == "" {
		return nil, ErrEmptyRedisAddress
	}

	return cfg, nil
}

// New builds the configured Store. The memory backend sweeps expired entries
// in the background until ctx is done; a non-positive SweepInterval disables it.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendRedis:
		client, err := NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		slog.Info("Using redis article cache", "address", cfg.Redis.Address, "ttl", cfg.TTL)
		return NewRedis(client, WithRedisTTL(cfg.TTL)), nil
	case BackendMemory, "":
		m := NewMemory(WithTTL(cfg.TTL), WithMaxEntries(cfg.MaxEntries))
		if cfg.SweepInterval > 0 {
			go m.Run(ctx, cfg.SweepInterval)
		}
		slog.Info("Using in-memory article cache", "ttl", cfg.TTL, "maxEntries", cfg.MaxEntries)
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Backend)
	}
}

// NewRedisClient connects to Redis and verifies the connection with a ping.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, ErrEmptyRedisAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}
