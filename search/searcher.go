package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/notelens/notelens/ai"
	"github.com/notelens/notelens/core"
	"github.com/notelens/notelens/storage"
)

const (
	// defaultThreshold is the minimum similarity a ranked hit must reach
	// to be returned.
	defaultThreshold float32 = 0.7

	// defaultTopK is the result limit applied when the caller passes none.
	defaultTopK = 5
)

// Searcher turns natural-language queries into ranked results over the
// vector index. Queries are classified first; each intent drives a
// different retrieval branch.
type Searcher struct {
	repo      storage.IndexRepository
	parser    ai.IntentParser
	embedder  ai.Embedder
	threshold float32
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithThreshold overrides the similarity cut-off for ranked results.
func WithThreshold(threshold float32) Option {
	return func(s *Searcher) error {
		if threshold < -1 || threshold > 1 {
			return ErrInvalidThreshold
		}
		s.threshold = threshold
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	repo storage.IndexRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Searcher, error) {
	if repo == nil {
		return nil, ErrIndexRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		repo:      repo,
		parser:    provider.IntentParser(),
		embedder:  provider.Embedder(),
		threshold: defaultThreshold,
		logger:    slog.Default().With("component", "searcher"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search runs a natural-language query and returns ranked results.
// A limit <= 0 applies the default for ranked branches and no limit for
// exhaustive ones (list_all, purely temporal).
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]*core.ScoredResult, error) {
	return s.SearchWithMonitor(ctx, query, limit, nil)
}

// SearchWithMonitor runs a query with observation hooks at each pipeline
// stage. The monitor may be nil.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, limit int, monitor SearchMonitor) ([]*core.ScoredResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	query = strings.TrimSpace(query)
	if query == "" {
		results := []*core.ScoredResult{}
		monitor.Finish(results)
		return results, nil
	}

	intent := s.parser.ParseIntent(ctx, query)
	monitor.AfterIntentParse(intent)
	s.logger.Debug("parsed query intent",
		"query", query,
		"intent", intent.Type,
		"terms", intent.SearchTerms)

	var (
		results []*core.ScoredResult
		err     error
	)
	switch intent.Type {
	case ai.IntentListAll:
		results, err = s.listAll(ctx, limit)
	case ai.IntentTemporal:
		results, err = s.searchTemporal(ctx, query, intent, limit, monitor)
	default:
		results, err = s.searchRanked(ctx, query, intent, nil, limit, monitor)
	}
	if err != nil {
		return nil, err
	}

	if results == nil {
		results = []*core.ScoredResult{}
	}
	monitor.Finish(results)
	return results, nil
}

// listAll returns every indexed document with similarity 1.0, in ID order.
func (s *Searcher) listAll(ctx context.Context, limit int) ([]*core.ScoredResult, error) {
	docs, err := s.repo.List(ctx, limit, 0)
	if err != nil {
		s.logger.Error("error listing index", "err", err)
		return nil, err
	}

	results := make([]*core.ScoredResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, storage.ResultFromDocument(doc, 1.0))
	}
	return results, nil
}

// searchTemporal handles queries bound to a date range. When the range
// cannot be resolved the query degrades to a ranked search; when it can,
// topic terms rank within the range and a bare range lists it.
func (s *Searcher) searchTemporal(ctx context.Context, query string, intent ai.QueryIntent, limit int, monitor SearchMonitor) ([]*core.ScoredResult, error) {
	rng, err := s.parser.ResolveTemporalRange(ctx, query)
	monitor.AfterTemporalResolve(rng, err)
	if err != nil {
		s.logger.Warn("temporal range unresolved, degrading to ranked search", "query", query, "err", err)
		return s.searchRanked(ctx, query, intent, nil, limit, monitor)
	}

	if intent.SearchTerms != "" {
		filter := &storage.IndexFilter{Start: &rng.Start, End: &rng.End, Categories: intent.Categories}
		return s.searchRanked(ctx, query, intent, filter, limit, monitor)
	}

	docs, err := s.repo.ListByDateRange(ctx, rng.Start, rng.End, limit)
	if err != nil {
		s.logger.Error("error listing index by date range", "err", err)
		return nil, err
	}

	results := make([]*core.ScoredResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, storage.ResultFromDocument(doc, 1.0))
	}
	return results, nil
}

// searchRanked embeds the query terms and ranks the filtered index by
// similarity. Results below the threshold are dropped unless the caller
// supplied a date filter, whose results are already scoped.
func (s *Searcher) searchRanked(ctx context.Context, query string, intent ai.QueryIntent, filter *storage.IndexFilter, limit int, monitor SearchMonitor) ([]*core.ScoredResult, error) {
	text := intent.SearchTerms
	if text == "" {
		text = query
	}

	vector, err := s.embedder.EmbedText(ctx, text)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn("embedding failed, returning no results", "query", query, "err", err)
		return []*core.ScoredResult{}, nil
	}
	if len(vector) == 0 {
		s.logger.Warn("embedder returned empty vector, returning no results", "query", query)
		return []*core.ScoredResult{}, nil
	}

	if limit <= 0 {
		limit = defaultTopK
	}
	temporal := filter != nil
	if filter == nil && len(intent.Categories) > 0 {
		filter = &storage.IndexFilter{Categories: intent.Categories}
	}

	matches, err := s.repo.FindSimilar(ctx, vector, limit, filter)
	if err != nil {
		s.logger.Error("error querying for similar documents", "err", err)
		return nil, err
	}
	monitor.AfterSimilaritySearch(matches)

	// Date-scoped results are kept regardless of similarity; the range is
	// the user's real constraint. Duplicate IDs from the repository are
	// collapsed to the best-ranked occurrence either way.
	results := make([]*core.ScoredResult, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, match := range matches {
		if _, dup := seen[match.ID]; dup {
			continue
		}
		seen[match.ID] = struct{}{}
		if !temporal && match.Similarity < s.threshold {
			continue
		}
		results = append(results, match)
	}
	return results, nil
}
