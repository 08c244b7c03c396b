package berita

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiBody = `{
  "messages": "Result of all news in CNN News",
  "total": 3,
  "data": [
    {
      "title": "Harga <b>BBM</b> Naik &amp; Warga Protes",
      "link": "https://www.cnnindonesia.com/ekonomi/bbm-naik",
      "contentSnippet": "<p>Pemerintah menaikkan harga.</p>",
      "isoDate": "2025-03-01T08:00:00.000Z",
      "image": {"small": "https://img.cnn/small.jpg", "large": "https://img.cnn/large.jpg"}
    },
    {
      "title": "Timnas Menang",
      "link": "https://www.cnnindonesia.com/olahraga/timnas",
      "description": "Skor 2-0",
      "pubDate": "Sat, 01 Mar 2025 09:00:00 +0700",
      "image": "https://img.cnn/timnas.jpg",
      "creator": "Redaksi"
    },
    {
      "title": "",
      "link": "https://www.cnnindonesia.com/empty-title"
    }
  ]
}`

const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Antara Terkini</title>
    <item>
      <title>Gempa di Maluku</title>
      <link>https://www.antaranews.com/berita/gempa</link>
      <description><![CDATA[<img src="x.jpg"/>Gempa magnitudo 5.]]></description>
      <pubDate>Sat, 01 Mar 2025 10:00:00 +0700</pubDate>
      <category>Nasional</category>
      <media:thumbnail url="https://img.antara/gempa.jpg"/>
    </item>
    <item>
      <title>Tanpa Tanggal</title>
      <link>https://www.antaranews.com/berita/tanpa-tanggal</link>
    </item>
  </channel>
</rss>`

var fixedNow = time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

type upstream struct {
	apiStatus map[string]int
	apiBody   map[string]string
	rssStatus int
	hits      map[string]int
}

func newUpstream() *upstream {
	return &upstream{
		apiStatus: map[string]int{},
		apiBody:   map[string]string{},
		rssStatus: http.StatusOK,
		hits:      map[string]int{},
	}
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.hits[r.URL.Path]++
	if r.URL.Path == "/rss" {
		w.WriteHeader(u.rssStatus)
		_, _ = w.Write([]byte(rssBody))
		return
	}
	if status, ok := u.apiStatus[r.URL.Path]; ok {
		w.WriteHeader(status)
		return
	}
	body, ok := u.apiBody[r.URL.Path]
	if !ok {
		body = apiBody
	}
	_, _ = w.Write([]byte(body))
}

func testCatalog(rssURL string) *Catalog {
	return &Catalog{Sources: []SourceDef{
		{ID: "cnn-news", Name: "CNN Indonesia", Trending: "nasional", Categories: []string{"nasional", "ekonomi"}},
		{ID: "antara-news", Name: "Antara News", RSS: rssURL},
		{ID: "republika-news", Name: "Republika"},
	}}
}

func newTestClient(t *testing.T, up *upstream, secondary string) *Client {
	t.Helper()
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/api",
		WithCatalog(testCatalog(srv.URL+"/rss")),
		WithSources("cnn-news", secondary),
		WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, err)
	return c
}

func TestClient_FetchByRegionalSource(t *testing.T) {
	up := newUpstream()
	c := newTestClient(t, up, "antara-news")

	res := c.FetchByRegionalSource(context.Background(), "cnn-news", "ekonomi")

	require.True(t, res.Success)
	assert.Equal(t, 3, res.TotalResults)
	assert.Equal(t, 1, up.hits["/api/cnn-news/ekonomi"])
	require.Len(t, res.Articles, 2, "items without a title are dropped")

	first := res.Articles[0]
	assert.Equal(t, "https://www.cnnindonesia.com/ekonomi/bbm-naik", first.ID)
	assert.Equal(t, first.ID, first.URL)
	assert.Equal(t, "Harga BBM Naik & Warga Protes", first.Title)
	assert.Equal(t, "Pemerintah menaikkan harga.", first.Description)
	require.NotNil(t, first.ImageURL)
	assert.Equal(t, "https://img.cnn/large.jpg", *first.ImageURL)
	assert.Equal(t, domain.Source{ID: "cnn-news", Name: "CNN Indonesia"}, first.Source)
	assert.Equal(t, domain.LanguageIndonesian, first.Language)
	assert.Equal(t, "ekonomi", first.Category)
	assert.Nil(t, first.Author)
	assert.Equal(t, time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), first.PublishedAt.UTC())

	second := res.Articles[1]
	require.NotNil(t, second.ImageURL)
	assert.Equal(t, "https://img.cnn/timnas.jpg", *second.ImageURL)
	require.NotNil(t, second.Author)
	assert.Equal(t, "Redaksi", *second.Author)
	assert.Equal(t, "Skor 2-0", second.Description)
	assert.Equal(t, time.Date(2025, 3, 1, 2, 0, 0, 0, time.UTC), second.PublishedAt.UTC())
}

func TestClient_FetchByRegionalSource_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		sourceID string
		category string
		body     string
		status   int
		wantErr  error
	}{
		{name: "unknown source", sourceID: "bbc-news", wantErr: ErrUnknownSource},
		{name: "unknown category", sourceID: "cnn-news", category: "sport", wantErr: ErrUnknownCategory},
		{name: "missing data array", sourceID: "cnn-news", body: `{"messages":"oops","total":0}`, wantErr: ErrMissingData},
		{name: "null data array", sourceID: "cnn-news", body: `{"messages":"oops","total":0,"data":null}`, wantErr: ErrMissingData},
		{name: "data is not an array", sourceID: "cnn-news", body: `{"messages":"oops","data":{"title":"x"}}`},
		{name: "server error", sourceID: "cnn-news", status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := newUpstream()
			if tt.body != "" {
				up.apiBody["/api/cnn-news"] = tt.body
			}
			if tt.status != 0 {
				up.apiStatus["/api/cnn-news"] = tt.status
			}
			c := newTestClient(t, up, "antara-news")

			res := c.FetchByRegionalSource(context.Background(), tt.sourceID, tt.category)

			assert.False(t, res.Success)
			assert.NotNil(t, res.Articles)
			assert.Empty(t, res.Articles)
			require.Error(t, res.Err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, res.Err, tt.wantErr)
			}
		})
	}
}

func TestClient_FetchLatest_Fallback(t *testing.T) {
	t.Run("primary succeeds", func(t *testing.T) {
		up := newUpstream()
		c := newTestClient(t, up, "antara-news")

		res := c.FetchLatest(context.Background())

		require.True(t, res.Success)
		assert.Equal(t, "cnn-news", res.Articles[0].Source.ID)
		assert.Zero(t, up.hits["/rss"])
	})

	t.Run("primary fails, secondary rss used", func(t *testing.T) {
		up := newUpstream()
		up.apiStatus["/api/cnn-news"] = http.StatusServiceUnavailable
		c := newTestClient(t, up, "antara-news")

		res := c.FetchLatest(context.Background())

		require.True(t, res.Success)
		require.Len(t, res.Articles, 2)
		gempa := res.Articles[0]
		assert.Equal(t, "https://www.antaranews.com/berita/gempa", gempa.ID)
		assert.Equal(t, "Gempa magnitudo 5.", gempa.Description)
		assert.Equal(t, "nasional", gempa.Category)
		require.NotNil(t, gempa.ImageURL)
		assert.Equal(t, "https://img.antara/gempa.jpg", *gempa.ImageURL)
		assert.Equal(t, domain.Source{ID: "antara-news", Name: "Antara News"}, gempa.Source)
		assert.Equal(t, fixedNow, res.Articles[1].PublishedAt)
	})

	t.Run("primary empty, secondary rss used", func(t *testing.T) {
		up := newUpstream()
		up.apiBody["/api/cnn-news"] = `{"messages":"empty","total":0,"data":[]}`
		c := newTestClient(t, up, "antara-news")

		res := c.FetchLatest(context.Background())

		require.True(t, res.Success)
		assert.Equal(t, 1, up.hits["/rss"])
		assert.Equal(t, "antara-news", res.Articles[0].Source.ID)
	})

	t.Run("secondary without rss uses its api feed", func(t *testing.T) {
		up := newUpstream()
		up.apiStatus["/api/cnn-news"] = http.StatusInternalServerError
		c := newTestClient(t, up, "republika-news")

		res := c.FetchLatest(context.Background())

		require.True(t, res.Success)
		assert.Equal(t, 1, up.hits["/api/republika-news"])
		assert.Equal(t, "republika-news", res.Articles[0].Source.ID)
	})

	t.Run("both fail", func(t *testing.T) {
		up := newUpstream()
		up.apiStatus["/api/cnn-news"] = http.StatusInternalServerError
		up.rssStatus = http.StatusNotFound
		c := newTestClient(t, up, "antara-news")

		res := c.FetchLatest(context.Background())

		assert.False(t, res.Success)
		assert.Empty(t, res.Articles)
		assert.ErrorIs(t, res.Err, ErrAllSourcesUnavailable)
	})
}

func TestClient_FetchTrending_UsesTrendingCategory(t *testing.T) {
	up := newUpstream()
	c := newTestClient(t, up, "antara-news")

	res := c.FetchTrending(context.Background())

	require.True(t, res.Success)
	assert.Equal(t, 1, up.hits["/api/cnn-news/nasional"])
	assert.Equal(t, "nasional", res.Articles[0].Category)
}

func TestNewClient_RejectsSourcesOutsideCatalog(t *testing.T) {
	_, err := NewClient("http://localhost", WithSources("bbc-news", ""))
	assert.ErrorIs(t, err, ErrUnknownSource)
}
