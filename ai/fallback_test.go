package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackSearchTerms(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "query scaffolding stripped",
			query:    "find my notes about budget",
			expected: "budget",
		},
		{
			name:     "multiple content words kept in order",
			query:    "show me notes about the quarterly marketing budget",
			expected: "quarterly marketing budget",
		},
		{
			name:     "caps at three terms",
			query:    "detailed quarterly marketing budget projections spreadsheet",
			expected: "detailed quarterly marketing",
		},
		{
			name:     "punctuation trimmed",
			query:    "Notes about \"kubernetes\", please!",
			expected: "kubernetes",
		},
		{
			name:     "short tokens dropped",
			query:    "ssh vpn dns configuration",
			expected: "configuration",
		},
		{
			name:     "all stop words falls back to raw query",
			query:    "show me all my notes",
			expected: "show me all my notes",
		},
		{
			name:     "empty query",
			query:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FallbackSearchTerms(tt.query))
		})
	}
}

func TestFallbackIntent(t *testing.T) {
	intent := FallbackIntent("find my notes about budget")

	assert.Equal(t, IntentKeyword, intent.Type)
	assert.Equal(t, "budget", intent.SearchTerms)
	assert.Empty(t, intent.Categories)
}

func TestParseIntentType(t *testing.T) {
	assert.Equal(t, IntentSemantic, ParseIntentType("semantic"))
	assert.Equal(t, IntentKeyword, ParseIntentType("keyword"))
	assert.Equal(t, IntentTemporal, ParseIntentType("temporal"))
	assert.Equal(t, IntentListAll, ParseIntentType("list_all"))

	// Unknown labels degrade to keyword
	assert.Equal(t, IntentKeyword, ParseIntentType("summarize"))
	assert.Equal(t, IntentKeyword, ParseIntentType(""))
}
