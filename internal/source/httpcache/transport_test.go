package httpcache

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUpstream(t *testing.T, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func get(t *testing.T, client *http.Client, url string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestTransport_CachesSuccessfulGet(t *testing.T) {
	srv, hits := newUpstream(t, http.StatusOK)
	client := &http.Client{Transport: NewTransport(time.Minute, 10)}

	first, body1 := get(t, client, srv.URL+"/v2/top-headlines?country=us")
	second, body2 := get(t, client, srv.URL+"/v2/top-headlines?country=us")

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, body1, body2)
	assert.Empty(t, first.Header.Get(HeaderCache))
	assert.Equal(t, "HIT", second.Header.Get(HeaderCache))
	assert.Equal(t, http.StatusOK, second.StatusCode)
}

func TestTransport_DistinctURLsAreDistinctEntries(t *testing.T) {
	srv, hits := newUpstream(t, http.StatusOK)
	transport := NewTransport(time.Minute, 10)
	client := &http.Client{Transport: transport}

	get(t, client, srv.URL+"/a")
	get(t, client, srv.URL+"/b")

	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, 2, transport.Len())
}

func TestTransport_DoesNotCacheFailures(t *testing.T) {
	srv, hits := newUpstream(t, http.StatusTooManyRequests)
	client := &http.Client{Transport: NewTransport(time.Minute, 10)}

	get(t, client, srv.URL)
	resp, _ := get(t, client, srv.URL)

	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestTransport_BypassesNonGet(t *testing.T) {
	srv, hits := newUpstream(t, http.StatusOK)
	client := &http.Client{Transport: NewTransport(time.Minute, 10)}

	for range 2 {
		resp, err := client.Post(srv.URL, "application/json", strings.NewReader("{}"))
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	assert.Equal(t, int32(2), hits.Load())
}

func TestTransport_EntriesExpire(t *testing.T) {
	srv, hits := newUpstream(t, http.StatusOK)
	client := &http.Client{Transport: NewTransport(20*time.Millisecond, 10)}

	get(t, client, srv.URL)
	time.Sleep(60 * time.Millisecond)
	get(t, client, srv.URL)

	assert.Equal(t, int32(2), hits.Load())
}

func TestLoadEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("HTTP_CACHE_TTL", "")
		t.Setenv("HTTP_CACHE_SIZE", "")
		t.Setenv("HTTP_TIMEOUT", "")

		cfg, err := LoadEnv()
		require.NoError(t, err)
		assert.Equal(t, DefaultTTL, cfg.TTL)
		assert.Equal(t, DefaultSize, cfg.Size)
		assert.Equal(t, DefaultTimeout, cfg.Timeout)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("HTTP_CACHE_TTL", "2m")
		t.Setenv("HTTP_CACHE_SIZE", "64")
		t.Setenv("HTTP_TIMEOUT", "3s")

		cfg, err := LoadEnv()
		require.NoError(t, err)
		assert.Equal(t, 2*time.Minute, cfg.TTL)
		assert.Equal(t, 64, cfg.Size)
		assert.Equal(t, 3*time.Second, cfg.Timeout)
	})

	t.Run("invalid size", func(t *testing.T) {
		t.Setenv("HTTP_CACHE_SIZE", "zero")
		_, err := LoadEnv()
		assert.Error(t, err)
	})
}
