package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// IntentParser classifies natural-language queries into structured search
// intents. Implementations must be thread-safe for concurrent use.
type IntentParser interface {
	// ParseIntent classifies a query into a QueryIntent. It never fails:
	// when the underlying service is unavailable or returns malformed
	// output, implementations degrade to a keyword intent derived from
	// the query text itself.
	ParseIntent(ctx context.Context, query string) QueryIntent

	// ResolveTemporalRange resolves the date range a temporal query refers
	// to ("last week", "yesterday", "in March"). Returns an error when the
	// range cannot be determined; callers fall back to non-temporal search.
	ResolveTemporalRange(ctx context.Context, query string) (TemporalRange, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and IntentParser instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// IntentParser returns the query-intent parsing service.
	// The returned IntentParser is safe for concurrent use.
	IntentParser() IntentParser

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
