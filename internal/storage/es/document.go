package es

import (
	"time"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

const textAnalyzer = "multilingual_analyzer"

// Document is the archived article as indexed in Elasticsearch.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	ImageURL    *string   `json:"image_url,omitempty"`
	SourceID    string    `json:"source_id"`
	SourceName  string    `json:"source_name"`
	Author      *string   `json:"author,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Category    string    `json:"category,omitempty"`
	Language    string    `json:"language"`
	ArchivedAt  time.Time `json:"archived_at"`
}

func toDocument(a domain.Article, archivedAt time.Time) Document {
	return Document{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		URL:         a.URL,
		ImageURL:    a.ImageURL,
		SourceID:    a.Source.ID,
		SourceName:  a.Source.Name,
		Author:      a.Author,
		PublishedAt: a.PublishedAt,
		Category:    a.Category,
		Language:    string(a.Language),
		ArchivedAt:  archivedAt,
	}
}

func (d Document) toArticle() domain.Article {
	return domain.Article{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Content:     d.Content,
		URL:         d.URL,
		ImageURL:    d.ImageURL,
		Source:      domain.Source{ID: d.SourceID, Name: d.SourceName},
		Author:      d.Author,
		PublishedAt: d.PublishedAt,
		Category:    d.Category,
		Language:    domain.Language(d.Language),
	}
}

func buildSettings() types.IndexSettings {
	return types.IndexSettings{
		Analysis: &types.IndexSettingsAnalysis{
			Analyzer: map[string]types.Analyzer{
				textAnalyzer: types.StandardAnalyzer{
					Stopwords: []string{"_none_"},
				},
			},
		},
	}
}

func buildMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			"id":           types.NewKeywordProperty(),
			"title":        createTextPropertyWithKeyword(textAnalyzer),
			"description":  createTextProperty(textAnalyzer),
			"content":      createTextProperty(textAnalyzer),
			"url":          types.NewKeywordProperty(),
			"image_url":    types.NewKeywordProperty(),
			"source_id":    types.NewKeywordProperty(),
			"source_name":  createTextPropertyWithKeyword(""),
			"author":       createTextPropertyWithKeyword(""),
			"published_at": types.NewDateProperty(),
			"category":     types.NewKeywordProperty(),
			"language":     types.NewKeywordProperty(),
			"archived_at":  types.NewDateProperty(),
		},
	}
}

func createTextProperty(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	return textProp
}

func createTextPropertyWithKeyword(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	textProp.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}
	return textProp
}
