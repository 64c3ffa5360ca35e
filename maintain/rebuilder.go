// Copyright 2025 Notelens Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package maintain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/notelens/notelens/core"
	"github.com/notelens/notelens/index"
	"github.com/notelens/notelens/storage"
)

// Config holds configuration for the rebuild operation.
type Config struct {
	// BatchSize is the number of notes to fetch in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of notes)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Rebuilder reindexes every note in the store. Notes whose embedding keeps
// failing after retries are skipped and logged, never fatal, so a rebuild
// always makes as much progress as the embedding service allows.
type Rebuilder struct {
	notes    storage.NoteRepository
	index    *index.Index
	config   *Config
	progress io.Writer
	iterator *NoteIterator
	logger   *slog.Logger
}

// NewRebuilder creates a new rebuilder.
// progress: where to write progress output (typically os.Stderr)
func NewRebuilder(notes storage.NoteRepository, ix *index.Index, config *Config, progress io.Writer) (*Rebuilder, error) {
	if notes == nil {
		return nil, ErrNoteRepositoryRequired
	}
	if ix == nil {
		return nil, ErrIndexRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Rebuilder{
		notes:    notes,
		index:    ix,
		config:   config,
		progress: progress,
		iterator: NewNoteIterator(notes, config.BatchSize),
		logger:   slog.Default().With("component", "rebuilder"),
	}, nil
}

// Run executes the rebuild and returns the number of notes indexed.
// When clearFirst is true the index is emptied before reindexing; otherwise
// existing entries are overwritten in place, which makes repeated runs
// converge on the same index either way.
func (r *Rebuilder) Run(ctx context.Context, clearFirst bool) (int, error) {
	total, err := r.notes.CountNotes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}

	if clearFirst {
		removed, err := r.index.Clear(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to clear index: %w", err)
		}
		r.logger.Info("cleared index before rebuild", "removed", removed)
	}

	if total == 0 {
		fmt.Fprintf(r.progress, "No notes found in store (0 notes)\n")
		return 0, nil
	}

	fmt.Fprintf(r.progress, "Starting index rebuild of %d notes (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	indexed := 0
	skipped := 0
	processed := 0

	err = r.iterator.ForEach(ctx, func(notes []*core.Note) error {
		for _, note := range notes {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			ok, err := r.indexNote(ctx, note)
			if err != nil {
				return err
			}
			if ok {
				indexed++
			} else {
				skipped++
			}
		}

		processed += len(notes)
		tracker.Update(processed)
		return nil
	})
	if err != nil {
		return indexed, err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Rebuild complete. Indexed %d notes, skipped %d, in %v (%.1f notes/sec)\n",
		indexed, skipped, elapsed.Round(time.Second), float64(processed)/elapsed.Seconds())

	return indexed, nil
}

// indexNote upserts a single note with retry. Transient embedding failures
// are retried via UpsertStrict; a note that still fails after all attempts is
// skipped rather than aborting the run. Storage failures abort immediately.
func (r *Rebuilder) indexNote(ctx context.Context, note *core.Note) (bool, error) {
	var ok bool
	err := RetryWithBackoff(ctx, func() error {
		var err error
		ok, err = r.index.UpsertStrict(ctx, note.ID, note.SearchText(), NoteMetadata(note))
		return err
	}, r.config.MaxRetries, r.config.RetryDelay)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		if errors.Is(err, index.ErrEmbedding) {
			r.logger.Warn("note skipped after retries", "id", note.ID, "err", err)
			return false, nil
		}
		return false, err
	}
	if !ok {
		r.logger.Warn("note not indexed", "id", note.ID)
	}
	return ok, nil
}

// NoteMetadata builds the index metadata for a note.
func NoteMetadata(note *core.Note) map[string]any {
	return map[string]any{
		storage.MetaTitle:       note.Title,
		storage.MetaCreatedAt:   note.CreatedAt,
		storage.MetaUpdatedAt:   note.UpdatedAt,
		storage.MetaCategoryIDs: note.CategoryIDs,
	}
}
