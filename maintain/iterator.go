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

	"github.com/notelens/notelens/core"
	"github.com/notelens/notelens/storage"
)

const (
	// DefaultBatchSize is the default number of notes to fetch in each batch
	DefaultBatchSize = 100
)

// NoteIterator iterates over all notes in batches.
type NoteIterator struct {
	repo      storage.NoteRepository
	batchSize int
}

// NewNoteIterator creates a new note iterator.
// batchSize: number of notes to fetch in each batch (must be > 0)
func NewNoteIterator(repo storage.NoteRepository, batchSize int) *NoteIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &NoteIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all notes, calling fn for each batch.
// Iteration stops on first error from fn or when all notes are processed.
// Context cancellation is checked between batches.
func (it *NoteIterator) ForEach(ctx context.Context, fn func([]*core.Note) error) error {
	skip := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		notes, err := it.repo.ListNotes(ctx, skip, it.batchSize)
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			return nil
		}

		if err := fn(notes); err != nil {
			return err
		}

		// A short page means the store is exhausted
		if len(notes) < it.batchSize {
			return nil
		}
		skip += len(notes)
	}
}
