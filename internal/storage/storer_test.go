package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordID(t *testing.T) {
	id := "https://example.com/story"

	assert.Equal(t, RecordID(id), RecordID(id))
	assert.NotEqual(t, RecordID(id), RecordID(id+"?page=2"))
	assert.Equal(t, 5, int(RecordID(id).Version()))
}
