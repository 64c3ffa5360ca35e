package index

import "errors"

var (
	// ErrNilRepository indicates the index was constructed without a
	// storage repository.
	ErrNilRepository = errors.New("index repository cannot be nil")

	// ErrNilEmbedder indicates the index was constructed without an
	// embedding service.
	ErrNilEmbedder = errors.New("embedder cannot be nil")

	// ErrEmbedding wraps failures of the embedding service. Returned by
	// UpsertStrict; Upsert converts it into a logged skip.
	ErrEmbedding = errors.New("embedding failed")
)
