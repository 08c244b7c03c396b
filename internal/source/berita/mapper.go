package berita

import (
	"encoding/json"
	"html"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
)

// envelope is the aggregator response shape. Data is a pointer-free slice so a
// missing or null "data" field decodes to nil and is rejected by the client.
type envelope struct {
	Messages string    `json:"messages"`
	Total    int       `json:"total"`
	Data     []apiItem `json:"data"`
}

type apiItem struct {
	Title          string          `json:"title"`
	Link           string          `json:"link"`
	ContentSnippet string          `json:"contentSnippet"`
	Description    string          `json:"description"`
	Content        string          `json:"content"`
	Creator        string          `json:"creator"`
	IsoDate        string          `json:"isoDate"`
	PubDate        string          `json:"pubDate"`
	Image          json.RawMessage `json:"image"`
}

type apiImage struct {
	Small string `json:"small"`
	Large string `json:"large"`
}

var pubDateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05",
}

type mapper struct {
	policy *bluemonday.Policy
	now    func() time.Time
}

func newMapper(now func() time.Time) *mapper {
	return &mapper{
		policy: bluemonday.StrictPolicy(),
		now:    now,
	}
}

func (m *mapper) fromAPI(items []apiItem, src SourceDef, category string) []domain.Article {
	now := m.now()
	articles := make([]domain.Article, 0, len(items))
	for _, it := range items {
		link := strings.TrimSpace(it.Link)
		title := m.text(it.Title)
		if link == "" || title == "" {
			continue
		}

		description := m.text(firstNonEmpty(it.ContentSnippet, it.Description))
		date := firstNonEmpty(it.IsoDate, it.PubDate)

		articles = append(articles, domain.Article{
			ID:          link,
			Title:       title,
			Description: description,
			Content:     m.text(firstNonEmpty(it.Content, description)),
			URL:         link,
			ImageURL:    domain.OptionalString(imageURL(it.Image)),
			Source:      domain.Source{ID: src.ID, Name: src.Name},
			Author:      domain.OptionalString(it.Creator),
			PublishedAt: domain.PublishedOrNow(date, now, pubDateLayouts...),
			Category:    category,
			Language:    domain.LanguageIndonesian,
		})
	}
	return articles
}

func (m *mapper) fromFeed(feed *gofeed.Feed, src SourceDef) []domain.Article {
	now := m.now()
	articles := make([]domain.Article, 0, len(feed.Items))
	for _, it := range feed.Items {
		link := strings.TrimSpace(it.Link)
		if link == "" {
			link = strings.TrimSpace(it.GUID)
		}
		title := m.text(it.Title)
		if link == "" || title == "" {
			continue
		}

		published := now
		switch {
		case it.PublishedParsed != nil:
			published = *it.PublishedParsed
		case it.UpdatedParsed != nil:
			published = *it.UpdatedParsed
		}

		description := m.text(it.Description)
		articles = append(articles, domain.Article{
			ID:          link,
			Title:       title,
			Description: description,
			Content:     m.text(firstNonEmpty(it.Content, it.Description)),
			URL:         link,
			ImageURL:    domain.OptionalString(feedImageURL(it)),
			Source:      domain.Source{ID: src.ID, Name: src.Name},
			Author:      domain.OptionalString(feedAuthor(it)),
			PublishedAt: published,
			Category:    firstCategory(it),
			Language:    domain.LanguageIndonesian,
		})
	}
	return articles
}

// text strips markup from upstream text and unescapes the entities left behind.
func (m *mapper) text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(m.policy.Sanitize(s)))
}

// imageURL accepts both {"small","large"} objects and bare strings.
func imageURL(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var img apiImage
	if err := json.Unmarshal(raw, &img); err == nil {
		return firstNonEmpty(img.Large, img.Small)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

func feedImageURL(it *gofeed.Item) string {
	if it.Image != nil && it.Image.URL != "" {
		return it.Image.URL
	}

	if media, ok := it.Extensions["media"]; ok {
		for _, key := range []string{"thumbnail", "content"} {
			for _, ext := range media[key] {
				if u := ext.Attrs["url"]; u != "" {
					return u
				}
			}
		}
	}

	for _, enc := range it.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}

func feedAuthor(it *gofeed.Item) string {
	if it.Author != nil && it.Author.Name != "" {
		return it.Author.Name
	}
	for _, a := range it.Authors {
		if a != nil && a.Name != "" {
			return a.Name
		}
	}
	return ""
}

func firstCategory(it *gofeed.Item) string {
	if len(it.Categories) == 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(it.Categories[0]))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
