package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    Config
		wantErr bool
	}{
		{
			name: "defaults",
			want: Config{
				Backend:       BackendMemory,
				TTL:           DefaultTTL,
				MaxEntries:    DefaultMaxEntries,
				SweepInterval: DefaultSweepInterval,
			},
		},
		{
			name: "redis",
			env: map[string]string{
				"CACHE_BACKEND":  "redis",
				"CACHE_TTL":      "30m",
				"REDIS_ADDRESS":  "localhost:6379",
				"REDIS_PASSWORD": "secret",
				"REDIS_DB":       "2",
			},
			want: Config{
				Backend:       BackendRedis,
				TTL:           30 * time.Minute,
				MaxEntries:    DefaultMaxEntries,
				SweepInterval: DefaultSweepInterval,
				Redis:         RedisConfig{Address: "localhost:6379", Password: "secret", DB: 2},
			},
		},
		{name: "unknown backend", env: map[string]string{"CACHE_BACKEND": "memcached"}, wantErr: true},
		{name: "redis without address", env: map[string]string{"CACHE_BACKEND": "redis"}, wantErr: true},
		{name: "bad ttl", env: map[string]string{"CACHE_TTL": "ten minutes"}, wantErr: true},
		{name: "bad max entries", env: map[string]string{"CACHE_MAX_ENTRIES": "0"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{
				"CACHE_BACKEND", "CACHE_TTL", "CACHE_MAX_ENTRIES", "CACHE_SWEEP_INTERVAL",
				"REDIS_ADDRESS", "REDIS_PASSWORD", "REDIS_DB",
			} {
				t.Setenv(key, tt.env[key])
			}

			cfg, err := LoadEnv()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *cfg)
		})
	}
}

func TestNew(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("memory", func(t *testing.T) {
		store, err := New(ctx, Config{Backend: BackendMemory, TTL: DefaultTTL, MaxEntries: 10})
		require.NoError(t, err)
		assert.IsType(t, &Memory{}, store)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		store, err := New(ctx, Config{Backend: BackendRedis, TTL: DefaultTTL, Redis: RedisConfig{Address: mr.Addr()}})
		require.NoError(t, err)
		assert.IsType(t, &Redis{}, store)
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := New(ctx, Config{Backend: BackendRedis, Redis: RedisConfig{Address: addr}})
		assert.Error(t, err)
	})
}
