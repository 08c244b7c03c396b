// Package berita adapts the Indonesian regional news aggregator to the unified
// article model. The aggregator serves a fixed catalog of sources; RSS feeds of
// a secondary source act as the fallback when the primary feed is unavailable.
package berita

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/DjordjeVuckovic/news-hub/internal/source"
	"github.com/mmcdole/gofeed"
)

const (
	Name           = "berita"
	DefaultBaseURL = "https://berita-indo-api-next.vercel.app/api"

	DefaultPrimarySource   = "cnn-news"
	DefaultSecondarySource = "antara-news"
)

var (
	ErrAllSourcesUnavailable = errors.New("berita: all regional sources unavailable")
	ErrUnknownSource         = errors.New("berita: unknown regional source")
	ErrUnknownCategory       = errors.New("berita: unknown category for source")
	ErrMissingData           = errors.New("berita: response has no data array")
)

type Client struct {
	base      url.URL
	http      *http.Client
	catalog   *Catalog
	primary   string
	secondary string
	mapper    *mapper
}

type ClientOption func(*Client)

func WithHttpClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.http = httpClient
	}
}

func WithCatalog(catalog *Catalog) ClientOption {
	return func(c *Client) {
		c.catalog = catalog
	}
}

// WithSources sets the primary feed and the secondary fallback feed.
func WithSources(primary, secondary string) ClientOption {
	return func(c *Client) {
		if primary != "" {
			c.primary = primary
		}
		if secondary != "" {
			c.secondary = secondary
		}
	}
}

func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.mapper = newMapper(now)
	}
}

func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse regional base url: %w", err)
	}

	c := &Client{
		base:      *base,
		http:      &http.Client{Timeout: 15 * time.Second},
		primary:   DefaultPrimarySource,
		secondary: DefaultSecondarySource,
		mapper:    newMapper(time.Now),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.catalog == nil {
		c.catalog = DefaultCatalog()
	}

	for _, id := range []string{c.primary, c.secondary} {
		if _, ok := c.catalog.Lookup(id); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSource, id)
		}
	}

	return c, nil
}

// FetchByRegionalSource fetches one source of the catalog, optionally narrowed to a category.
func (c *Client) FetchByRegionalSource(ctx context.Context, sourceID, category string) (res source.Result) {
	defer source.Guard(&res, Name)

	src, ok := c.catalog.Lookup(sourceID)
	if !ok {
		return source.Failed(fmt.Errorf("%w: %q", ErrUnknownSource, sourceID))
	}
	if !src.HasCategory(category) {
		return source.Failed(fmt.Errorf("%w: %q/%q", ErrUnknownCategory, sourceID, category))
	}

	var env envelope
	if err := c.do(ctx, src.ID, category, &env); err != nil {
		slog.Warn("regional request failed", "source", src.ID, "category", category, "error", err)
		return source.Failed(err)
	}
	if env.Data == nil {
		return source.Failed(fmt.Errorf("%w: %s", ErrMissingData, src.ID))
	}

	articles := c.mapper.fromAPI(env.Data, src, category)
	slog.Debug("regional articles fetched", "source", src.ID, "category", category, "count", len(articles))

	return source.Succeeded(articles, env.Total)
}

// FetchLatest returns the primary source's full feed, falling back to the secondary feed.
func (c *Client) FetchLatest(ctx context.Context) source.Result {
	return c.withFallback(ctx, "")
}

// FetchTrending returns the primary source's trending category, falling back to the secondary feed.
func (c *Client) FetchTrending(ctx context.Context) source.Result {
	src, _ := c.catalog.Lookup(c.primary)
	return c.withFallback(ctx, src.Trending)
}

func (c *Client) withFallback(ctx context.Context, category string) source.Result {
	primary := c.FetchByRegionalSource(ctx, c.primary, category)
	if !primary.Empty() {
		return primary
	}

	slog.Warn("primary regional feed unavailable, trying secondary",
		"primary", c.primary,
		"secondary", c.secondary,
		"error", primary.Err)

	secondary := c.fetchSecondary(ctx)
	if secondary.Success {
		return secondary
	}

	return source.Failed(fmt.Errorf("%w: primary %s: %v; secondary %s: %v",
		ErrAllSourcesUnavailable, c.primary, primary.Err, c.secondary, secondary.Err))
}

// fetchSecondary prefers the secondary source's RSS feed and uses its API feed
// when no RSS feed is configured.
func (c *Client) fetchSecondary(ctx context.Context) (res source.Result) {
	defer source.Guard(&res, Name)

	src, _ := c.catalog.Lookup(c.secondary)
	if src.RSS == "" {
		return c.FetchByRegionalSource(ctx, src.ID, "")
	}

	parser := gofeed.NewParser()
	parser.Client = c.http
	feed, err := parser.ParseURLWithContext(src.RSS, ctx)
	if err != nil {
		slog.Warn("regional rss feed failed", "source", src.ID, "url", src.RSS, "error", err)
		return source.Failed(fmt.Errorf("parse rss feed %s: %w", src.ID, err))
	}

	articles := c.mapper.fromFeed(feed, src)
	return source.Succeeded(articles, len(articles))
}

func (c *Client) do(ctx context.Context, sourceID, category string, respData any) error {
	reqURL := c.base.JoinPath(sourceID)
	if category != "" {
		reqURL = reqURL.JoinPath(category)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, respData); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}

func (c *Client) Catalog() *Catalog {
	return c.catalog
}
