package maintain

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/notelens/notelens/ai/mock"
	"github.com/notelens/notelens/core"
	"github.com/notelens/notelens/index"
	"github.com/notelens/notelens/storage"
	"github.com/notelens/notelens/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rebuildFixture struct {
	notes    storage.NoteRepository
	index    *index.Index
	embedder *mock.MockEmbedder
}

func newRebuildFixture(t *testing.T) *rebuildFixture {
	t.Helper()

	indexRepo, noteRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	embedder := mock.NewMockEmbedder()
	ix, err := index.New(indexRepo, embedder)
	require.NoError(t, err)

	return &rebuildFixture{
		notes:    noteRepo,
		index:    ix,
		embedder: embedder,
	}
}

func (f *rebuildFixture) addNote(t *testing.T, title, content string, categories ...string) *core.Note {
	t.Helper()

	note, err := f.notes.CreateNote(context.Background(), &core.Note{
		Title:       title,
		Content:     content,
		CategoryIDs: categories,
	})
	require.NoError(t, err)
	return note
}

func fastConfig() *Config {
	cfg := DefaultConfig()
	cfg.BatchSize = 2
	cfg.ReportInterval = 1
	cfg.RetryDelay = time.Millisecond
	return cfg
}

func TestRebuilder_Run(t *testing.T) {
	f := newRebuildFixture(t)
	ctx := context.Background()

	f.addNote(t, "Budget", "quarterly budget numbers")
	f.addNote(t, "Meeting", "notes from the standup")
	f.addNote(t, "Recipe", "pasta with garlic")

	var out bytes.Buffer
	rebuilder, err := NewRebuilder(f.notes, f.index, fastConfig(), &out)
	require.NoError(t, err)

	indexed, err := rebuilder.Run(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 3, indexed)

	count, err := f.index.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Contains(t, out.String(), "Rebuild complete")
}

func TestRebuilder_RunIsIdempotent(t *testing.T) {
	f := newRebuildFixture(t)
	ctx := context.Background()

	f.addNote(t, "One", "first note")
	f.addNote(t, "Two", "second note")

	rebuilder, err := NewRebuilder(f.notes, f.index, fastConfig(), io.Discard)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		indexed, err := rebuilder.Run(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, 2, indexed)
	}

	count, err := f.index.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRebuilder_ClearFirst(t *testing.T) {
	f := newRebuildFixture(t)
	ctx := context.Background()

	// A stale entry with no backing note
	_, err := f.index.Upsert(ctx, "stale-doc", "orphaned text", nil)
	require.NoError(t, err)

	f.addNote(t, "Live", "a live note")

	rebuilder, err := NewRebuilder(f.notes, f.index, fastConfig(), io.Discard)
	require.NoError(t, err)

	indexed, err := rebuilder.Run(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, indexed)

	contains, err := f.index.Contains(ctx, "stale-doc")
	require.NoError(t, err)
	assert.False(t, contains)
}

func TestRebuilder_SkipsFailingNotes(t *testing.T) {
	f := newRebuildFixture(t)
	ctx := context.Background()

	f.addNote(t, "One", "first note")
	f.addNote(t, "Two", "second note")

	f.embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}

	rebuilder, err := NewRebuilder(f.notes, f.index, fastConfig(), io.Discard)
	require.NoError(t, err)

	indexed, err := rebuilder.Run(ctx, false)
	require.NoError(t, err)
	assert.Zero(t, indexed)

	count, err := f.index.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRebuilder_RetriesTransientFailures(t *testing.T) {
	f := newRebuildFixture(t)
	ctx := context.Background()

	f.addNote(t, "Flaky", "note behind a rate limit")

	failures := 1
	f.embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if failures > 0 {
			failures--
			return nil, errors.New("rate limited")
		}
		return []float32{1, 0}, nil
	}

	rebuilder, err := NewRebuilder(f.notes, f.index, fastConfig(), io.Discard)
	require.NoError(t, err)

	indexed, err := rebuilder.Run(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, indexed)
	assert.Equal(t, 2, f.embedder.CallCount())

	count, err := f.index.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRebuilder_SkipsEmptyNotes(t *testing.T) {
	f := newRebuildFixture(t)
	ctx := context.Background()

	f.addNote(t, "", " ")
	f.addNote(t, "Real", "has content")

	rebuilder, err := NewRebuilder(f.notes, f.index, fastConfig(), io.Discard)
	require.NoError(t, err)

	indexed, err := rebuilder.Run(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, indexed)
}

func TestRebuilder_EmptyStore(t *testing.T) {
	f := newRebuildFixture(t)

	var out bytes.Buffer
	rebuilder, err := NewRebuilder(f.notes, f.index, fastConfig(), &out)
	require.NoError(t, err)

	indexed, err := rebuilder.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Zero(t, indexed)
	assert.Contains(t, out.String(), "No notes found")
}

func TestRebuilder_ContextCancellation(t *testing.T) {
	f := newRebuildFixture(t)

	f.addNote(t, "One", "first note")

	rebuilder, err := NewRebuilder(f.notes, f.index, fastConfig(), io.Discard)
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = rebuilder.Run(cancelled, false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRebuilder_Validation(t *testing.T) {
	f := newRebuildFixture(t)

	_, err := NewRebuilder(nil, f.index, nil, io.Discard)
	assert.ErrorIs(t, err, ErrNoteRepositoryRequired)

	_, err = NewRebuilder(f.notes, nil, nil, io.Discard)
	assert.ErrorIs(t, err, ErrIndexRequired)
}

func TestNoteIterator_Batches(t *testing.T) {
	f := newRebuildFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		f.addNote(t, "Note", "content")
	}

	it := NewNoteIterator(f.notes, 2)

	seen := 0
	batches := 0
	err := it.ForEach(ctx, func(notes []*core.Note) error {
		seen += len(notes)
		batches++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, seen)
	assert.Equal(t, 3, batches)
}
