// Package httpcache provides the transport-level response cache shared by the
// upstream news clients. Successful GET responses are kept for a fixed
// freshness window; it is independent of the article cache.
package httpcache

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultTTL  = 5 * time.Minute
	DefaultSize = 256

	HeaderCache = "X-Cache"
)

type cachedResponse struct {
	status int
	header http.Header
	body   []byte
}

type Transport struct {
	next    http.RoundTripper
	entries *expirable.LRU[string, cachedResponse]
}

type TransportOption func(*Transport)

// WithNext sets the underlying round tripper. Defaults to http.DefaultTransport.
func WithNext(next http.RoundTripper) TransportOption {
	return func(t *Transport) {
		t.next = next
	}
}

func NewTransport(ttl time.Duration, size int, opts ...TransportOption) *Transport {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if size <= 0 {
		size = DefaultSize
	}

	t := &Transport{
		next:    http.DefaultTransport,
		entries: expirable.NewLRU[string, cachedResponse](size, nil, ttl),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet || req.Header.Get("Cache-Control") == "no-cache" {
		return t.next.RoundTrip(req)
	}

	key := req.URL.String()
	if cached, ok := t.entries.Get(key); ok {
		slog.Debug("http cache hit", "url", req.URL.Redacted())
		return cached.toResponse(req), nil
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}

	t.entries.Add(key, cachedResponse{
		status: resp.StatusCode,
		header: resp.Header.Clone(),
		body:   body,
	})

	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))
	return resp, nil
}

// Len returns the number of fresh cached responses.
func (t *Transport) Len() int {
	return t.entries.Len()
}

func (c cachedResponse) toResponse(req *http.Request) *http.Response {
	header := c.header.Clone()
	header.Set(HeaderCache, "HIT")

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", c.status, http.StatusText(c.status)),
		StatusCode:    c.status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(c.body)),
		ContentLength: int64(len(c.body)),
		Request:       req,
	}
}
