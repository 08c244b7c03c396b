package newsapi

import (
	"strings"
	"time"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
)

type envelope struct {
	Status       string       `json:"status"`
	TotalResults int          `json:"totalResults"`
	Articles     []apiArticle `json:"articles"`
	Code         string       `json:"code,omitempty"`
	Message      string       `json:"message,omitempty"`
}

type apiSource struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

type apiArticle struct {
	Source      apiSource `json:"source"`
	Author      *string   `json:"author"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	URL         string    `json:"url"`
	URLToImage  *string   `json:"urlToImage"`
	PublishedAt string    `json:"publishedAt"`
	Content     *string   `json:"content"`
}

func mapArticles(raw []apiArticle, category string, now time.Time) []domain.Article {
	articles := make([]domain.Article, 0, len(raw))
	for _, a := range raw {
		u := strings.TrimSpace(a.URL)
		title := strings.TrimSpace(a.Title)
		if u == "" || title == "" || title == removedTitle {
			continue
		}

		articles = append(articles, domain.Article{
			ID:          u,
			Title:       title,
			Description: deref(a.Description),
			Content:     deref(a.Content),
			URL:         u,
			ImageURL:    domain.OptionalString(deref(a.URLToImage)),
			Source:      mapSource(a.Source),
			Author:      domain.OptionalString(deref(a.Author)),
			PublishedAt: domain.PublishedOrNow(a.PublishedAt, now),
			Category:    category,
			Language:    domain.LanguageEnglish,
		})
	}
	return articles
}

func mapSource(s apiSource) domain.Source {
	id := strings.TrimSpace(deref(s.ID))
	if id == "" {
		id = Name
	}
	return domain.Source{ID: id, Name: s.Name}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
