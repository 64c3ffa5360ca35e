package storage

import (
	"context"
	"time"

	"github.com/notelens/notelens/core"
)

// IndexFilter restricts a similarity search to a subset of the index.
// A nil filter (or a zero-valued one) matches every document.
type IndexFilter struct {
	// Start and End bound the document's source creation time.
	// Both are inclusive when set.
	Start *time.Time
	End   *time.Time

	// Categories keeps only documents tagged with at least one of the
	// given category IDs.
	Categories []string
}

// IndexRepository stores indexed documents and serves vector similarity
// queries over them. Implementations must be thread-safe and support
// concurrent access.
type IndexRepository interface {
	// Put stores a document, replacing any existing entry with the same ID.
	// The write is atomic: readers observe either the old entry or the new
	// one, never a mix.
	Put(ctx context.Context, doc *core.IndexedDocument) error

	// Delete removes a document by ID. Deleting an absent ID is a no-op.
	Delete(ctx context.Context, id string) error

	// Get retrieves a document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	Get(ctx context.Context, id string) (*core.IndexedDocument, error)

	// List returns documents ordered by ID ascending.
	// A limit <= 0 means no limit; offset skips that many documents.
	List(ctx context.Context, limit, offset int) ([]*core.IndexedDocument, error)

	// ListByDateRange returns documents whose source creation time falls
	// within [start, end], ordered by creation time ascending.
	// A limit <= 0 means no limit.
	ListByDateRange(ctx context.Context, start, end time.Time, limit int) ([]*core.IndexedDocument, error)

	// FindSimilar scores every document passing the filter against the
	// given vector and returns up to limit results ordered by similarity
	// descending, ties broken by ID ascending. No similarity threshold is
	// applied here; that is the search pipeline's concern. An empty
	// vector is rejected with ErrInvalidQuery.
	FindSimilar(ctx context.Context, vector []float32, limit int, filter *IndexFilter) ([]*core.ScoredResult, error)

	// Clear removes every document from the index and returns how many
	// were removed.
	Clear(ctx context.Context) (int, error)

	// Count returns the number of indexed documents.
	Count(ctx context.Context) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}

// NoteRepository provides operations for managing source notes.
// Implementations must be thread-safe and support concurrent access.
type NoteRepository interface {
	// CreateNote stores a new note. An empty ID is replaced with a
	// generated one; an explicit ID that already exists yields
	// ErrDuplicateKey. Timestamps are populated if unset.
	// Returns the note with ID and timestamps populated.
	CreateNote(ctx context.Context, note *core.Note) (*core.Note, error)

	// GetNote retrieves a single note by ID.
	// Returns ErrNotFound if the note doesn't exist.
	GetNote(ctx context.Context, id string) (*core.Note, error)

	// UpdateNote replaces an existing note and refreshes its UpdatedAt.
	// Returns ErrNotFound if the note doesn't exist.
	UpdateNote(ctx context.Context, note *core.Note) (*core.Note, error)

	// DeleteNote removes a note by ID.
	// Returns ErrNotFound if the note doesn't exist.
	DeleteNote(ctx context.Context, id string) error

	// ListNotes returns notes ordered by ID ascending, skipping the first
	// skip notes and returning at most limit. A limit <= 0 means no limit.
	ListNotes(ctx context.Context, skip, limit int) ([]*core.Note, error)

	// CountNotes returns the number of stored notes.
	CountNotes(ctx context.Context) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
