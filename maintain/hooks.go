package maintain

import (
	"context"
	"errors"
	"log/slog"
	"runtime"

	"github.com/notelens/notelens/core"
	"github.com/notelens/notelens/index"
	"github.com/notelens/notelens/storage"
	"github.com/panjf2000/ants/v2"
)

// Hooks applies incremental index updates as notes change. Updates run
// asynchronously on a worker pool; failures are logged and left for the
// next rebuild rather than surfaced to the caller.
type Hooks struct {
	index  *index.Index
	pool   *ants.Pool
	logger *slog.Logger
}

// HooksOption configures Hooks.
type HooksOption func(*Hooks) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) HooksOption {
	return func(h *Hooks) error {
		if size < 1 {
			size = 1
		}

		if h.pool != nil {
			h.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		h.pool = pool
		return nil
	}
}

// WithHooksLogger sets a custom logger.
// Default is slog.Default().
func WithHooksLogger(logger *slog.Logger) HooksOption {
	return func(h *Hooks) error {
		if logger == nil {
			logger = slog.Default()
		}
		h.logger = logger
		return nil
	}
}

// NewHooks creates lifecycle hooks over the given index.
func NewHooks(ix *index.Index, opts ...HooksOption) (*Hooks, error) {
	if ix == nil {
		return nil, ErrIndexRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	h := &Hooks{
		index:  ix,
		pool:   pool,
		logger: slog.Default().With("component", "hooks"),
	}

	for _, opt := range opts {
		if optErr := opt(h); optErr != nil {
			h.Release()
			return nil, optErr
		}
	}

	return h, nil
}

// OnNoteCreated schedules the note for indexing.
func (h *Hooks) OnNoteCreated(note *core.Note) error {
	n := *note
	return h.pool.Submit(func() {
		ok, err := h.index.Upsert(context.Background(), n.ID, n.SearchText(), NoteMetadata(&n))
		if err != nil {
			h.logger.Error("error indexing created note", "id", n.ID, "err", err)
			return
		}
		if !ok {
			h.logger.Warn("created note not indexed", "id", n.ID)
		}
	})
}

// OnNoteUpdated schedules the note for reindexing. When the searchable text
// is unchanged only the metadata is refreshed, skipping the embedding call.
func (h *Hooks) OnNoteUpdated(note *core.Note) error {
	n := *note
	return h.pool.Submit(func() {
		ctx := context.Background()
		text := n.SearchText()

		existing, err := h.index.Get(ctx, n.ID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			h.logger.Error("error reading index for updated note", "id", n.ID, "err", err)
			return
		}

		if existing != nil && existing.Fingerprint == core.TextFingerprint(text) {
			if err := h.index.Refresh(ctx, n.ID, NoteMetadata(&n)); err != nil {
				h.logger.Error("error refreshing updated note", "id", n.ID, "err", err)
			}
			return
		}

		ok, err := h.index.Upsert(ctx, n.ID, text, NoteMetadata(&n))
		if err != nil {
			h.logger.Error("error reindexing updated note", "id", n.ID, "err", err)
			return
		}
		if !ok {
			h.logger.Warn("updated note not reindexed", "id", n.ID)
		}
	})
}

// OnNoteDeleted schedules removal of the note from the index.
func (h *Hooks) OnNoteDeleted(id string) error {
	return h.pool.Submit(func() {
		if err := h.index.Delete(context.Background(), id); err != nil {
			h.logger.Error("error removing deleted note from index", "id", id, "err", err)
		}
	})
}

// Release releases the worker pool.
// The hooks should not be used after calling Release.
func (h *Hooks) Release() {
	if h.pool != nil {
		h.pool.Release()
	}
}
