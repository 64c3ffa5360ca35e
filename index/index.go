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


// Package index maintains the vector index: one entry per live note, with
// the embedding always matching the stored text. Embedding failures degrade
// gracefully rather than failing the caller; a document is simply left
// unindexed until the next maintenance pass.
package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/notelens/notelens/ai"
	"github.com/notelens/notelens/core"
	"github.com/notelens/notelens/storage"
)

// Index writes and removes indexed documents, delegating persistence to a
// storage.IndexRepository and embedding to an ai.Embedder.
type Index struct {
	repo     storage.IndexRepository
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures an Index.
type Option func(*Index)

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Index) {
		ix.logger = logger
	}
}

// New creates an Index over the given repository and embedder.
func New(repo storage.IndexRepository, embedder ai.Embedder, opts ...Option) (*Index, error) {
	if repo == nil {
		return nil, ErrNilRepository
	}
	if embedder == nil {
		return nil, ErrNilEmbedder
	}

	ix := &Index{
		repo:     repo,
		embedder: embedder,
		logger:   slog.Default().With("component", "index"),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix, nil
}

// Upsert embeds text and stores it under id, replacing any existing entry.
// The returned bool reports whether the document was indexed.
//
// Two failure modes deliberately do not return an error: empty or
// whitespace-only text, and an unreachable embedding service. Both leave the
// index unchanged and return (false, nil), so bulk callers keep going.
// Context cancellation and storage failures are real errors.
func (ix *Index) Upsert(ctx context.Context, id, text string, metadata map[string]any) (bool, error) {
	ok, err := ix.UpsertStrict(ctx, id, text, metadata)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		if errors.Is(err, ErrEmbedding) {
			ix.logger.Warn("embedding failed, document left unindexed", "id", id, "err", err)
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// UpsertStrict is Upsert without the embedding-failure degrade: an
// unreachable embedding service surfaces as an error wrapping ErrEmbedding,
// so callers with a retry policy can engage it. Empty text is still a
// (false, nil) skip since retrying it cannot succeed.
func (ix *Index) UpsertStrict(ctx context.Context, id, text string, metadata map[string]any) (bool, error) {
	if id == "" {
		return false, core.ErrEmptyID
	}
	if strings.TrimSpace(text) == "" {
		ix.logger.Warn("skipping upsert of empty text", "id", id)
		return false, nil
	}

	vector, err := ix.embedder.EmbedText(ctx, text)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		return false, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}
	if len(vector) == 0 {
		ix.logger.Warn("embedder returned empty vector, document left unindexed", "id", id)
		return false, nil
	}

	doc := &core.IndexedDocument{
		ID:          id,
		Text:        text,
		Vector:      vector,
		Metadata:    storage.EncodeMetadata(metadata),
		Fingerprint: core.TextFingerprint(text),
		CreatedAt:   createdAtFrom(metadata, time.Now().UTC()),
		IndexedAt:   time.Now().UTC(),
	}

	if err := ix.repo.Put(ctx, doc); err != nil {
		return false, err
	}
	return true, nil
}

// Refresh updates a document's metadata without re-embedding. The stored
// text, vector and fingerprint are kept. Returns storage.ErrNotFound when
// the document is not indexed.
func (ix *Index) Refresh(ctx context.Context, id string, metadata map[string]any) error {
	doc, err := ix.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	doc.Metadata = storage.EncodeMetadata(metadata)
	doc.CreatedAt = createdAtFrom(metadata, doc.CreatedAt)
	doc.IndexedAt = time.Now().UTC()

	return ix.repo.Put(ctx, doc)
}

// Delete removes a document from the index. Absent IDs are a no-op.
func (ix *Index) Delete(ctx context.Context, id string) error {
	return ix.repo.Delete(ctx, id)
}

// Get retrieves an indexed document by ID.
func (ix *Index) Get(ctx context.Context, id string) (*core.IndexedDocument, error) {
	return ix.repo.Get(ctx, id)
}

// Contains reports whether a document is indexed.
func (ix *Index) Contains(ctx context.Context, id string) (bool, error) {
	_, err := ix.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Count returns the number of indexed documents.
func (ix *Index) Count(ctx context.Context) (int, error) {
	return ix.repo.Count(ctx)
}

// Clear removes every document, returning how many were removed.
func (ix *Index) Clear(ctx context.Context) (int, error) {
	return ix.repo.Clear(ctx)
}

// createdAtFrom extracts the source creation time from metadata, accepting
// either a time.Time or an RFC 3339 string. An absent or unparseable value
// yields the fallback: now for new documents, the stored time on refresh,
// so a metadata-only refresh never moves a document in the temporal index.
func createdAtFrom(metadata map[string]any, fallback time.Time) time.Time {
	if raw, ok := metadata[storage.MetaCreatedAt]; ok {
		switch v := raw.(type) {
		case time.Time:
			return v.UTC()
		case string:
			if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
				return ts.UTC()
			}
			if ts, err := time.Parse(time.RFC3339, v); err == nil {
				return ts.UTC()
			}
		}
	}
	return fallback
}
