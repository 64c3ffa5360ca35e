// Package maintain keeps the vector index consistent with the note store.
//
// It provides a full index rebuild with batching, progress tracking and
// retry logic with exponential backoff, plus lifecycle hooks that apply
// incremental index updates as notes are created, updated and deleted.
// Hooks use text fingerprints to skip re-embedding when only metadata
// changed.
package maintain
