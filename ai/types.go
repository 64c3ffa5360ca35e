package ai

import "time"

// IntentType classifies what a natural-language query is asking for.
type IntentType string

const (
	// IntentSemantic is the default: rank documents by semantic similarity
	// to the query.
	IntentSemantic IntentType = "semantic"

	// IntentKeyword searches by extracted key terms rather than the raw
	// query phrasing. Also the degraded mode when parsing fails.
	IntentKeyword IntentType = "keyword"

	// IntentTemporal restricts results to a resolved date range.
	IntentTemporal IntentType = "temporal"

	// IntentListAll asks for every indexed document, unranked.
	IntentListAll IntentType = "list_all"
)

// ParseIntentType converts a raw intent label into an IntentType.
// Unknown labels coerce to IntentKeyword so a misbehaving model can
// never produce an unhandled intent.
func ParseIntentType(s string) IntentType {
	switch IntentType(s) {
	case IntentSemantic, IntentKeyword, IntentTemporal, IntentListAll:
		return IntentType(s)
	default:
		return IntentKeyword
	}
}

// QueryIntent is the structured interpretation of a natural-language query.
type QueryIntent struct {
	// Type is the classified intent.
	Type IntentType

	// SearchTerms are the distilled key terms for keyword and temporal
	// intents. Empty for list_all; may be empty for temporal queries
	// that carry no topic ("what did I write last week").
	SearchTerms string

	// Categories are category names mentioned in the query, if any.
	Categories []string
}

// TemporalRange is a resolved closed date interval. Start and End are both
// inclusive; End is normalized to the last representable instant of its day.
type TemporalRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range.
func (r TemporalRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}
