package domain

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "breaking news today", Normalize("  Breaking   NEWS\tToday "))
	assert.Equal(t, "", Normalize("   "))
}

func TestIdentityKeys_SkipsBlankComponents(t *testing.T) {
	keys := IdentityKeys(Article{ID: "abc", Title: "  "})
	assert.Equal(t, []string{"i:abc"}, keys)
}

func TestUsedSet(t *testing.T) {
	a := Article{ID: "1", Title: "Rupiah Menguat", URL: "https://example.com/a"}

	t.Run("matches on any identity component", func(t *testing.T) {
		set := NewUsedSet()
		set.Mark(a)

		assert.True(t, set.Seen(Article{ID: "other", Title: "rupiah  MENGUAT"}))
		assert.True(t, set.Seen(Article{ID: "other", URL: "HTTPS://example.com/a"}))
		assert.True(t, set.Seen(Article{ID: "1"}))
		assert.False(t, set.Seen(Article{ID: "2", Title: "Different", URL: "https://example.com/b"}))
	})

	t.Run("mark if unseen is first-come", func(t *testing.T) {
		set := NewUsedSet()
		assert.True(t, set.MarkIfUnseen(a))
		assert.False(t, set.MarkIfUnseen(a))
		assert.Equal(t, 3, set.Len())
	})

	t.Run("concurrent marks", func(t *testing.T) {
		set := NewUsedSet()
		var wg sync.WaitGroup
		accepted := make(chan bool, 50)
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				accepted <- set.MarkIfUnseen(a)
			}()
		}
		wg.Wait()
		close(accepted)

		count := 0
		for ok := range accepted {
			if ok {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}

func TestSlugWithoutHash(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		want   string
		wantOk bool
	}{
		{name: "slug with hash", id: "my-slug-abc123", want: "my-slug", wantOk: true},
		{name: "two segments", id: "slug-abc", want: "slug", wantOk: true},
		{name: "single segment", id: "slug", want: "slug", wantOk: false},
		{name: "leading dash only", id: "-abc", want: "-abc", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SlugWithoutHash(tt.id)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOk, ok)
		})
	}
}

func TestSlugID(t *testing.T) {
	a := Article{ID: "x", Title: "Harga BBM Naik, Warga Protes!", URL: "https://example.com/bbm"}

	id := SlugID(a)
	prefix, ok := SlugWithoutHash(id)

	assert.True(t, ok)
	assert.Equal(t, "harga-bbm-naik-warga-protes", prefix)
	assert.Len(t, strings.TrimPrefix(id, prefix+"-"), slugHashLength)
	assert.Equal(t, id, SlugID(a), "slug ids must be stable")

	other := a
	other.URL = "https://example.com/bbm-2"
	otherPrefix, _ := SlugWithoutHash(SlugID(other))
	assert.Equal(t, prefix, otherPrefix)
	assert.NotEqual(t, id, SlugID(other))
}

func TestSlugID_EmptyTitle(t *testing.T) {
	id := SlugID(Article{ID: "x", Title: "???"})
	assert.True(t, strings.HasPrefix(id, "article-"))
}
