package badger

import (
	"context"
	"testing"

	"github.com/notelens/notelens/core"
	"github.com/notelens/notelens/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotes(t *testing.T) storage.NoteRepository {
	t.Helper()
	_, notes, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return notes
}

func TestNoteRepository_CreateGet(t *testing.T) {
	notes := newTestNotes(t)
	ctx := context.Background()

	created, err := notes.CreateNote(ctx, &core.Note{
		Title:       "Grocery list",
		Content:     "milk, eggs",
		CategoryIDs: []string{"personal"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())

	got, err := notes.GetNote(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grocery list", got.Title)
	assert.Equal(t, []string{"personal"}, got.CategoryIDs)
}

func TestNoteRepository_CreateExplicitID(t *testing.T) {
	notes := newTestNotes(t)
	ctx := context.Background()

	_, err := notes.CreateNote(ctx, &core.Note{ID: "note-1", Title: "First"})
	require.NoError(t, err)

	_, err = notes.CreateNote(ctx, &core.Note{ID: "note-1", Title: "Duplicate"})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestNoteRepository_CreateInvalid(t *testing.T) {
	notes := newTestNotes(t)
	ctx := context.Background()

	_, err := notes.CreateNote(ctx, &core.Note{})
	assert.ErrorIs(t, err, core.ErrEmptyNote)
}

func TestNoteRepository_Update(t *testing.T) {
	notes := newTestNotes(t)
	ctx := context.Background()

	created, err := notes.CreateNote(ctx, &core.Note{Title: "Draft"})
	require.NoError(t, err)

	created.Content = "now with content"
	updated, err := notes.UpdateNote(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "now with content", updated.Content)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	t.Run("missing note", func(t *testing.T) {
		_, err := notes.UpdateNote(ctx, &core.Note{ID: "nope", Title: "x"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestNoteRepository_Delete(t *testing.T) {
	notes := newTestNotes(t)
	ctx := context.Background()

	created, err := notes.CreateNote(ctx, &core.Note{Title: "Doomed"})
	require.NoError(t, err)

	require.NoError(t, notes.DeleteNote(ctx, created.ID))

	_, err = notes.GetNote(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = notes.DeleteNote(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNoteRepository_ListAndCount(t *testing.T) {
	notes := newTestNotes(t)
	ctx := context.Background()

	for _, id := range []string{"note-c", "note-a", "note-b"} {
		_, err := notes.CreateNote(ctx, &core.Note{ID: id, Title: "Title " + id})
		require.NoError(t, err)
	}

	t.Run("ordered by ID", func(t *testing.T) {
		all, err := notes.ListNotes(ctx, 0, 0)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "note-a", all[0].ID)
		assert.Equal(t, "note-c", all[2].ID)
	})

	t.Run("skip and limit", func(t *testing.T) {
		page, err := notes.ListNotes(ctx, 1, 1)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "note-b", page[0].ID)
	})

	t.Run("count", func(t *testing.T) {
		count, err := notes.CountNotes(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})
}
