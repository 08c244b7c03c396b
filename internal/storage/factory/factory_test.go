package factory

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
	"github.com/DjordjeVuckovic/news-hub/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    StorageConfig
		wantErr bool
	}{
		{name: "disabled", want: StorageConfig{}},
		{name: "in memory", env: map[string]string{"STORAGE_TYPE": "in_mem"}, want: StorageConfig{Type: storage.InMem}},
		{name: "unknown type", env: map[string]string{"STORAGE_TYPE": "sqlite"}, wantErr: true},
		{name: "pg without connection string", env: map[string]string{"STORAGE_TYPE": "pg"}, wantErr: true},
		{name: "es without addresses", env: map[string]string{"STORAGE_TYPE": "es", "ES_ADDRESSES": " , "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"STORAGE_TYPE", "PG_CONNECTION_STRING", "ES_ADDRESSES", "ES_INDEX_NAME"} {
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

	t.Run("es", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "es")
		t.Setenv("ES_ADDRESSES", "http://es-1:9200, http://es-2:9200")
		t.Setenv("ES_INDEX_NAME", "")

		cfg, err := LoadEnv()
		require.NoError(t, err)
		require.NotNil(t, cfg.Es)
		assert.Equal(t, []string{"http://es-1:9200", "http://es-2:9200"}, cfg.Es.Addresses)
		assert.Equal(t, "news_hub_articles", cfg.Es.IndexName)
	})
}

func TestNewArchive(t *testing.T) {
	ctx := context.Background()

	archive, err := NewArchive(ctx, StorageConfig{})
	require.NoError(t, err)
	assert.Nil(t, archive)

	archive, err = NewArchive(ctx, StorageConfig{Type: storage.InMem})
	require.NoError(t, err)
	defer archive.Close()

	assert.True(t, archive.HealthChecker.Healthy(ctx))
	require.NoError(t, archive.SaveBulk(ctx, []domain.Article{{ID: "a", Title: "A", URL: "https://example.com/a"}}))
	got, err := archive.FindByURL(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	_, err = NewArchive(ctx, StorageConfig{Type: storage.PG})
	assert.Error(t, err)
}
