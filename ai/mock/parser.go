package mock

import (
	"context"

	"github.com/notelens/notelens/ai"
)

// MockIntentParser is a test double for ai.IntentParser.
// It allows custom behavior injection via function fields.
type MockIntentParser struct {
	// ParseIntentFunc is called by ParseIntent if set.
	// If nil, uses default fallback-derived behavior.
	ParseIntentFunc func(ctx context.Context, query string) ai.QueryIntent

	// ResolveTemporalRangeFunc is called by ResolveTemporalRange if set.
	// If nil, resolution fails with ai.ErrNoTemporalRange.
	ResolveTemporalRangeFunc func(ctx context.Context, query string) (ai.TemporalRange, error)

	callCount int
}

// NewMockIntentParser creates a mock intent parser with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockParser().
func NewMockIntentParser() *MockIntentParser {
	return &MockIntentParser{}
}

// ParseIntent classifies a query. The default behavior matches the degraded
// path of the production parser: a keyword intent over fallback terms.
func (m *MockIntentParser) ParseIntent(ctx context.Context, query string) ai.QueryIntent {
	m.callCount++

	if m.ParseIntentFunc != nil {
		return m.ParseIntentFunc(ctx, query)
	}

	return ai.FallbackIntent(query)
}

// ResolveTemporalRange resolves a date range. By default resolution fails,
// which exercises the temporal-to-keyword fallback in callers.
func (m *MockIntentParser) ResolveTemporalRange(ctx context.Context, query string) (ai.TemporalRange, error) {
	m.callCount++

	if m.ResolveTemporalRangeFunc != nil {
		return m.ResolveTemporalRangeFunc(ctx, query)
	}

	return ai.TemporalRange{}, ai.ErrNoTemporalRange
}

// CallCount returns the number of times any method was called.
func (m *MockIntentParser) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockIntentParser) Reset() {
	m.callCount = 0
	m.ParseIntentFunc = nil
	m.ResolveTemporalRangeFunc = nil
}
