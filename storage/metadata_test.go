package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeMetadata(t *testing.T) {
	t.Run("strings pass through", func(t *testing.T) {
		encoded := EncodeMetadata(map[string]any{"title": "Grocery list"})

		assert.Equal(t, "Grocery list", encoded["title"])
	})

	t.Run("timestamps become RFC 3339", func(t *testing.T) {
		ts := time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC)
		encoded := EncodeMetadata(map[string]any{"created_at": ts})

		assert.Equal(t, "2025-03-11T14:30:00Z", encoded["created_at"])
	})

	t.Run("lists are JSON encoded", func(t *testing.T) {
		encoded := EncodeMetadata(map[string]any{
			"category_ids": []string{"work", "finance"},
		})

		assert.JSONEq(t, `["work","finance"]`, encoded["category_ids"])
	})

	t.Run("maps are JSON encoded", func(t *testing.T) {
		encoded := EncodeMetadata(map[string]any{
			"extra": map[string]any{"pinned": true},
		})

		assert.JSONEq(t, `{"pinned":true}`, encoded["extra"])
	})

	t.Run("scalars are stringified", func(t *testing.T) {
		encoded := EncodeMetadata(map[string]any{"revision": 7, "pinned": true})

		assert.Equal(t, "7", encoded["revision"])
		assert.Equal(t, "true", encoded["pinned"])
	})

	t.Run("nil input", func(t *testing.T) {
		assert.Nil(t, EncodeMetadata(nil))
	})
}

func TestDecodeMetadata(t *testing.T) {
	t.Run("round trip restores structured values", func(t *testing.T) {
		encoded := EncodeMetadata(map[string]any{
			"title":        "Budget",
			"category_ids": []string{"work"},
		})

		decoded := DecodeMetadata(encoded)

		assert.Equal(t, "Budget", decoded["title"])
		assert.Equal(t, []any{"work"}, decoded["category_ids"])
	})

	t.Run("plain strings stay strings", func(t *testing.T) {
		decoded := DecodeMetadata(map[string]string{"title": "true"})

		assert.Equal(t, "true", decoded["title"])
	})

	t.Run("bracket-leading non-JSON stays a string", func(t *testing.T) {
		decoded := DecodeMetadata(map[string]string{"title": "[draft] budget notes"})

		assert.Equal(t, "[draft] budget notes", decoded["title"])
	})

	t.Run("nil input", func(t *testing.T) {
		assert.Nil(t, DecodeMetadata(nil))
	})
}
