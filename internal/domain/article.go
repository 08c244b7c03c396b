package domain

import (
	"strings"
	"time"
)

// Article is the unified record every source adapter maps into.
// ID is opaque: the international provider uses the article URL, the regional
// provider its own link. It is compared by equality or by SlugWithoutHash only.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	ImageURL    *string   `json:"imageUrl"`
	Source      Source    `json:"source"`
	Author      *string   `json:"author"`
	PublishedAt time.Time `json:"publishedAt"`
	Category    string    `json:"category,omitempty"`
	Language    Language  `json:"language"`
}

type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WellFormed reports whether the article carries the fields every consumer relies on.
func (a Article) WellFormed() bool {
	return strings.TrimSpace(a.ID) != "" &&
		strings.TrimSpace(a.Title) != "" &&
		strings.TrimSpace(a.URL) != ""
}

// OptionalString returns nil for blank values so absent upstream fields stay null.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// PublishedOrNow parses an upstream timestamp, falling back to now when it is
// missing or unparsable.
func PublishedOrNow(raw string, now time.Time, layouts ...string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}
	if len(layouts) == 0 {
		layouts = []string{time.RFC3339, time.RFC3339Nano}
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return now
}
