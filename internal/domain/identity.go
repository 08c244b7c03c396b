package domain

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"sync"
)

const (
	slugMaxLength  = 80
	slugHashLength = 8
	slugSeparator  = "-"
)

// Normalize lowercases s, trims it and collapses inner whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// IdentityKeys returns the dedup identity of an article: normalized title, url and id.
// Blank components are omitted so they never collide.
func IdentityKeys(a Article) []string {
	keys := make([]string, 0, 3)
	if t := Normalize(a.Title); t != "" {
		keys = append(keys, "t:"+t)
	}
	if u := Normalize(a.URL); u != "" {
		keys = append(keys, "u:"+u)
	}
	if id := Normalize(a.ID); id != "" {
		keys = append(keys, "i:"+id)
	}
	return keys
}

// UsedSet tracks articles already placed on a page. It is owned by the caller,
// which creates one per page render and threads it through aggregator calls.
type UsedSet struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewUsedSet() *UsedSet {
	return &UsedSet{keys: make(map[string]struct{})}
}

// Seen reports whether any identity component of a was already marked.
func (s *UsedSet) Seen(a Article) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seenLocked(a)
}

func (s *UsedSet) Mark(a Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markLocked(a)
}

// MarkIfUnseen marks a and returns true when none of its identity components were seen before.
func (s *UsedSet) MarkIfUnseen(a Article) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seenLocked(a) {
		return false
	}
	s.markLocked(a)
	return true
}

func (s *UsedSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

func (s *UsedSet) seenLocked(a Article) bool {
	for _, k := range IdentityKeys(a) {
		if _, ok := s.keys[k]; ok {
			return true
		}
	}
	return false
}

func (s *UsedSet) markLocked(a Article) {
	for _, k := range IdentityKeys(a) {
		s.keys[k] = struct{}{}
	}
}

// SlugID mints the page-facing id: a slug of the title followed by a short
// hash of the article URL (or id when the URL is missing).
func SlugID(a Article) string {
	seed := a.URL
	if seed == "" {
		seed = a.ID
	}
	sum := sha1.Sum([]byte(seed))
	return slugify(a.Title) + slugSeparator + hex.EncodeToString(sum[:])[:slugHashLength]
}

// SlugWithoutHash drops the trailing "-"-delimited segment of id.
// The second return value is false when id has a single segment.
func SlugWithoutHash(id string) (string, bool) {
	idx := strings.LastIndex(id, slugSeparator)
	if idx <= 0 {
		return id, false
	}
	return id[:idx], true
}

func slugify(title string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(title) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingDash = b.Len() > 0
			continue
		}
		if pendingDash {
			b.WriteByte('-')
			pendingDash = false
		}
		b.WriteRune(r)
		if b.Len() >= slugMaxLength {
			break
		}
	}

	slug := strings.TrimRight(b.String(), slugSeparator)
	if slug == "" {
		return "article"
	}
	return slug
}
