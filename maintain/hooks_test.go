package maintain

import (
	"context"
	"testing"
	"time"

	"github.com/notelens/notelens/core"
	"github.com/notelens/notelens/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHooks(t *testing.T, f *rebuildFixture) *Hooks {
	t.Helper()

	hooks, err := NewHooks(f.index, WithPoolSize(1))
	require.NoError(t, err)
	t.Cleanup(hooks.Release)
	return hooks
}

func eventually(t *testing.T, condition func() bool, msg string) {
	t.Helper()
	require.Eventually(t, condition, 2*time.Second, 10*time.Millisecond, msg)
}

func TestHooks_OnNoteCreated(t *testing.T) {
	f := newRebuildFixture(t)
	hooks := newHooks(t, f)
	ctx := context.Background()

	note := f.addNote(t, "Budget", "quarterly numbers")
	require.NoError(t, hooks.OnNoteCreated(note))

	eventually(t, func() bool {
		ok, err := f.index.Contains(ctx, note.ID)
		return err == nil && ok
	}, "note should be indexed")

	doc, err := f.index.Get(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, note.SearchText(), doc.Text)
	assert.Equal(t, "Budget", doc.Metadata[storage.MetaTitle])
}

func TestHooks_OnNoteUpdated_TextChanged(t *testing.T) {
	f := newRebuildFixture(t)
	hooks := newHooks(t, f)
	ctx := context.Background()

	note := f.addNote(t, "Budget", "old numbers")
	require.NoError(t, hooks.OnNoteCreated(note))
	eventually(t, func() bool {
		ok, _ := f.index.Contains(ctx, note.ID)
		return ok
	}, "note should be indexed")

	note.Content = "new numbers"
	updated, err := f.notes.UpdateNote(ctx, note)
	require.NoError(t, err)
	require.NoError(t, hooks.OnNoteUpdated(updated))

	eventually(t, func() bool {
		doc, err := f.index.Get(ctx, note.ID)
		return err == nil && doc.Text == updated.SearchText()
	}, "index should carry the new text")

	doc, err := f.index.Get(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, core.TextFingerprint(updated.SearchText()), doc.Fingerprint)
}

func TestHooks_OnNoteUpdated_MetadataOnly(t *testing.T) {
	f := newRebuildFixture(t)
	hooks := newHooks(t, f)
	ctx := context.Background()

	note := f.addNote(t, "Budget", "numbers")
	require.NoError(t, hooks.OnNoteCreated(note))
	eventually(t, func() bool {
		ok, _ := f.index.Contains(ctx, note.ID)
		return ok
	}, "note should be indexed")

	embedCalls := f.embedder.CallCount()

	note.CategoryIDs = []string{"finance"}
	updated, err := f.notes.UpdateNote(ctx, note)
	require.NoError(t, err)
	require.NoError(t, hooks.OnNoteUpdated(updated))

	eventually(t, func() bool {
		doc, err := f.index.Get(ctx, note.ID)
		return err == nil && doc.Metadata[storage.MetaCategoryIDs] == `["finance"]`
	}, "metadata should be refreshed")

	assert.Equal(t, embedCalls, f.embedder.CallCount(), "unchanged text must not re-embed")
}

func TestHooks_OnNoteUpdated_NotYetIndexed(t *testing.T) {
	f := newRebuildFixture(t)
	hooks := newHooks(t, f)
	ctx := context.Background()

	note := f.addNote(t, "Budget", "numbers")
	require.NoError(t, hooks.OnNoteUpdated(note))

	eventually(t, func() bool {
		ok, _ := f.index.Contains(ctx, note.ID)
		return ok
	}, "update of an unindexed note should index it")
}

func TestHooks_OnNoteDeleted(t *testing.T) {
	f := newRebuildFixture(t)
	hooks := newHooks(t, f)
	ctx := context.Background()

	note := f.addNote(t, "Budget", "numbers")
	require.NoError(t, hooks.OnNoteCreated(note))
	eventually(t, func() bool {
		ok, _ := f.index.Contains(ctx, note.ID)
		return ok
	}, "note should be indexed")

	require.NoError(t, hooks.OnNoteDeleted(note.ID))
	eventually(t, func() bool {
		ok, err := f.index.Contains(ctx, note.ID)
		return err == nil && !ok
	}, "note should be removed from the index")

	// Deleting again is a no-op
	require.NoError(t, hooks.OnNoteDeleted(note.ID))
}

func TestNewHooks_Validation(t *testing.T) {
	_, err := NewHooks(nil)
	assert.ErrorIs(t, err, ErrIndexRequired)
}
