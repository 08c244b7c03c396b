package resolver

import (
	"net/url"
	"strings"

	"github.com/DjordjeVuckovic/news-hub/internal/domain"
)

const (
	maxDecodeRounds = 3
	encodedScheme   = "%3a%2f%2f"
)

// urlTargets reports whether id looks like a URL and returns the raw id
// plus its percent-decoded form.
func urlTargets(id string) ([]string, bool) {
	lower := strings.ToLower(id)
	isURL := strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.Contains(lower, encodedScheme)
	if !isURL {
		return nil, false
	}

	targets := []string{id}
	decoded := id
	for i := 0; i < maxDecodeRounds && strings.Contains(decoded, "%"); i++ {
		next, err := url.PathUnescape(decoded)
		if err != nil || next == decoded {
			break
		}
		decoded = next
	}
	if decoded != id {
		targets = append(targets, decoded)
	}
	return targets, true
}

func urlMatch(candidates []domain.Article, targets []string) (domain.Article, bool) {
	for _, a := range candidates {
		for _, t := range targets {
			if a.URL == t || a.ID == t {
				return a, true
			}
		}
	}
	return domain.Article{}, false
}

// exactMatch matches the provider id or the page slug id.
func exactMatch(candidates []domain.Article, id string) (domain.Article, bool) {
	for _, a := range candidates {
		if a.ID == id {
			return a, true
		}
	}
	for _, a := range candidates {
		if domain.SlugID(a) == id {
			return a, true
		}
	}
	return domain.Article{}, false
}

// slugMatch compares id and every candidate with their trailing hash segment dropped.
func slugMatch(candidates []domain.Article, id string) (domain.Article, bool) {
	want, ok := domain.SlugWithoutHash(id)
	if !ok {
		return domain.Article{}, false
	}

	for _, a := range candidates {
		if got, ok := domain.SlugWithoutHash(a.ID); ok && got == want {
			return a, true
		}
		if got, _ := domain.SlugWithoutHash(domain.SlugID(a)); got == want {
			return a, true
		}
	}
	return domain.Article{}, false
}
