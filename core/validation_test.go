package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateNote(t *testing.T) {
	valid := &Note{
		ID:        "note-1",
		Title:     "Budget",
		Content:   "quarterly numbers",
		CreatedAt: time.Now().UTC(),
	}

	t.Run("valid note", func(t *testing.T) {
		assert.NoError(t, ValidateNote(valid))
	})

	t.Run("nil note", func(t *testing.T) {
		assert.ErrorIs(t, ValidateNote(nil), ErrInvalidNote)
	})

	t.Run("missing ID", func(t *testing.T) {
		note := *valid
		note.ID = ""
		err := ValidateNote(&note)
		assert.ErrorIs(t, err, ErrInvalidNote)
		assert.ErrorIs(t, err, ErrEmptyID)
	})

	t.Run("title or content suffices", func(t *testing.T) {
		note := *valid
		note.Content = ""
		assert.NoError(t, ValidateNote(&note))

		note = *valid
		note.Title = ""
		assert.NoError(t, ValidateNote(&note))
	})

	t.Run("both empty", func(t *testing.T) {
		note := *valid
		note.Title = ""
		note.Content = ""
		assert.ErrorIs(t, ValidateNote(&note), ErrEmptyNote)
	})
}

func TestValidateIndexedDocument(t *testing.T) {
	valid := &IndexedDocument{
		ID:     "doc-1",
		Text:   "Budget quarterly numbers",
		Vector: []float32{0.1, 0.2},
	}

	t.Run("valid document", func(t *testing.T) {
		assert.NoError(t, ValidateIndexedDocument(valid))
	})

	t.Run("nil document", func(t *testing.T) {
		assert.ErrorIs(t, ValidateIndexedDocument(nil), ErrInvalidDocument)
	})

	t.Run("missing ID", func(t *testing.T) {
		doc := *valid
		doc.ID = ""
		assert.ErrorIs(t, ValidateIndexedDocument(&doc), ErrEmptyID)
	})

	t.Run("whitespace text", func(t *testing.T) {
		doc := *valid
		doc.Text = "   "
		assert.ErrorIs(t, ValidateIndexedDocument(&doc), ErrEmptyText)
	})

	t.Run("empty vector", func(t *testing.T) {
		doc := *valid
		doc.Vector = nil
		assert.ErrorIs(t, ValidateIndexedDocument(&doc), ErrEmptyVector)
	})
}

func TestNoteSearchText(t *testing.T) {
	note := &Note{Title: "Budget", Content: "quarterly numbers"}
	assert.Equal(t, "Budget quarterly numbers", note.SearchText())
}
