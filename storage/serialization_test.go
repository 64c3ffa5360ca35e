package storage

import (
	"testing"
	"time"

	"github.com/notelens/notelens/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalNote(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	original := &core.Note{
		ID:          "note-1",
		Title:       "Grocery list",
		Content:     "milk, eggs, coffee ‰∏ñÁïå",
		CategoryIDs: []string{"personal", "shopping"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	data := MarshalNote(original)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalNote(data)
	require.NoError(t, err)

	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.Title, decoded.Title)
	assert.Equal(t, original.Content, decoded.Content)
	assert.Equal(t, original.CategoryIDs, decoded.CategoryIDs)
	assert.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
	assert.True(t, original.UpdatedAt.Equal(decoded.UpdatedAt))
}

func TestMarshalUnmarshalIndexedDocument(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	original := &core.IndexedDocument{
		ID:          "doc-1",
		Text:        "Grocery list milk, eggs, coffee",
		Vector:      []float32{0.1, 0.2, 0.3, 0.4},
		Metadata:    map[string]string{"title": "Grocery list", "category_ids": `["personal"]`},
		Fingerprint: core.TextFingerprint("Grocery list milk, eggs, coffee"),
		CreatedAt:   now,
		IndexedAt:   now,
	}

	data := MarshalIndexedDocument(original)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalIndexedDocument(data)
	require.NoError(t, err)

	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.Text, decoded.Text)
	assert.Equal(t, original.Vector, decoded.Vector)
	assert.Equal(t, original.Metadata, decoded.Metadata)
	assert.Equal(t, original.Fingerprint, decoded.Fingerprint)
	assert.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
	assert.True(t, original.IndexedAt.Equal(decoded.IndexedAt))
}

func TestUnmarshalIndexedDocument_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalIndexedDocument(tt.data)
			assert.ErrorIs(t, err, ErrSerializationFailed)
		})
	}
}

func TestUnmarshalNote_Invalid(t *testing.T) {
	_, err := UnmarshalNote([]byte{0xFF, 0xFF, 0xFF})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestResultFromDocument(t *testing.T) {
	doc := &core.IndexedDocument{
		ID:   "doc-1",
		Text: "quarterly budget review",
		Metadata: map[string]string{
			"title":        "Budget",
			"category_ids": `["work","finance"]`,
		},
	}

	result := ResultFromDocument(doc, 0.87)

	assert.Equal(t, "doc-1", result.ID)
	assert.InDelta(t, 0.87, result.Similarity, 1e-6)
	assert.Equal(t, "quarterly budget review", result.Text)
	assert.Equal(t, "Budget", result.Metadata["title"])
	assert.Equal(t, []any{"work", "finance"}, result.Metadata["category_ids"])
}
