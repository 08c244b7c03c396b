package dto

import (
	"time"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
)

// Article is the API representation of domain.Article.
type Article struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url" swaggertype:"string" format:"uri"`
	ImageURL    *string   `json:"imageUrl"`
	Author      *string   `json:"author"`
	PublishedAt time.Time `json:"publishedAt"`
	Category    string    `json:"category,omitempty"`
	Language    string    `json:"language" enums:"en,id"`
	Source      Source    `json:"source"`
}

type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ArticleList struct {
	Items []Article `json:"items"`
	Count int       `json:"count"`
}

func FromArticle(a domain.Article) Article {
	return Article{
		ID:          a.ID,
		Slug:        domain.SlugID(a),
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		URL:         a.URL,
		ImageURL:    a.ImageURL,
		Author:      a.Author,
		PublishedAt: a.PublishedAt,
		Category:    a.Category,
		Language:    string(a.Language),
		Source:      Source{ID: a.Source.ID, Name: a.Source.Name},
	}
}

func FromArticles(articles []domain.Article) ArticleList {
	items := make([]Article, 0, len(articles))
	for _, a := range articles {
		items = append(items, FromArticle(a))
	}
	return ArticleList{Items: items, Count: len(items)}
}
