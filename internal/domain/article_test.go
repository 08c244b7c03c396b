package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticle_WellFormed(t *testing.T) {
	assert.True(t, Article{ID: "1", Title: "t", URL: "u"}.WellFormed())
	assert.False(t, Article{ID: "1", Title: " ", URL: "u"}.WellFormed())
	assert.False(t, Article{Title: "t", URL: "u"}.WellFormed())
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString("  "))
	got := OptionalString(" Reuters ")
	require.NotNil(t, got)
	assert.Equal(t, "Reuters", *got)
}

func TestPublishedOrNow(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, now, PublishedOrNow("", now))
	assert.Equal(t, now, PublishedOrNow("yesterday", now))
	assert.Equal(t,
		time.Date(2024, 12, 31, 10, 0, 0, 0, time.UTC),
		PublishedOrNow("2024-12-31T10:00:00Z", now).UTC())
	assert.Equal(t,
		time.Date(2024, 12, 31, 10, 0, 0, 0, time.UTC),
		PublishedOrNow("Tue, 31 Dec 2024 10:00:00 +0000", now, time.RFC1123Z).UTC())
}
