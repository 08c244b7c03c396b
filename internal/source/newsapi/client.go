// Package newsapi adapts the international headline/search provider
// (newsapi.org v2) to the unified article model.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
	"github.com/DjordjeVuckovic/news-hub/internal/source"
	"golang.org/x/time/rate"
)

const (
	Name           = "newsapi"
	DefaultBaseURL = "https://newsapi.org"
	MaxPageSize    = 100

	headlinesPath  = "/v2/top-headlines"
	everythingPath = "/v2/everything"
	removedTitle   = "[Removed]"
	statusOK       = "ok"
)

var (
	ErrMissingAPIKey = errors.New("newsapi: api key is not configured")
	ErrEmptyQuery    = errors.New("newsapi: search query is empty")
)

type Client struct {
	base    url.URL
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	now     func() time.Time
}

type ClientOption func(*Client)

func WithHttpClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.http = httpClient
	}
}

// WithRateLimit throttles outbound calls to rps requests per second.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

func NewClient(baseURL, apiKey string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse newsapi base url: %w", err)
	}

	c := &Client{
		base:   *base,
		apiKey: strings.TrimSpace(apiKey),
		http:   &http.Client{Timeout: 15 * time.Second},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type HeadlineParams struct {
	Country  string
	Category string
	PageSize int
	Page     int
}

type SearchParams struct {
	PageSize int
	Page     int
	Language string
	SortBy   string
}

// FetchHeadlines returns top headlines filtered by country and category.
func (c *Client) FetchHeadlines(ctx context.Context, p HeadlineParams) (res source.Result) {
	defer source.Guard(&res, Name)

	q := url.Values{}
	if p.Country != "" {
		q.Set("country", p.Country)
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	setPaging(q, p.PageSize, p.Page)

	return c.fetch(ctx, headlinesPath, q, p.Category)
}

// SearchArticles runs a keyword search over the provider's full archive.
func (c *Client) SearchArticles(ctx context.Context, query string, p SearchParams) (res source.Result) {
	defer source.Guard(&res, Name)

	query = strings.TrimSpace(query)
	if query == "" {
		return source.Failed(ErrEmptyQuery)
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("language", orDefault(p.Language, string(domain.LanguageEnglish)))
	q.Set("sortBy", orDefault(p.SortBy, "publishedAt"))
	setPaging(q, p.PageSize, p.Page)

	return c.fetch(ctx, everythingPath, q, "")
}

func (c *Client) fetch(ctx context.Context, path string, q url.Values, category string) source.Result {
	if c.apiKey == "" {
		return source.Failed(ErrMissingAPIKey)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return source.Failed(fmt.Errorf("newsapi rate limit wait: %w", err))
		}
	}

	var env envelope
	if err := c.do(ctx, path, q, &env); err != nil {
		slog.Warn("newsapi request failed", "path", path, "error", err)
		return source.Failed(err)
	}

	if env.Status != statusOK {
		return source.Failed(fmt.Errorf("newsapi error %s: %s", env.Code, env.Message))
	}
	if env.Articles == nil {
		return source.Failed(errors.New("newsapi: response has no articles array"))
	}

	articles := mapArticles(env.Articles, category, c.now())
	slog.Debug("newsapi articles fetched", "path", path, "count", len(articles), "total", env.TotalResults)

	return source.Succeeded(articles, env.TotalResults)
}

func (c *Client) do(ctx context.Context, path string, q url.Values, respData any) error {
	reqURL := c.base.JoinPath(path)
	reqURL.RawQuery = q.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("X-Api-Key", c.apiKey)

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
		var apiErr envelope
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("unexpected status code: %d, %s: %s", resp.StatusCode, apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, respData); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}

func setPaging(q url.Values, pageSize, page int) {
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(min(pageSize, MaxPageSize)))
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
