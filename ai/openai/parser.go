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


package openai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/notelens/notelens/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// IntentParser implements ai.IntentParser using OpenAI-compatible chat APIs.
type IntentParser struct {
	client llms.Model
	now    func() time.Time
	logger *slog.Logger
}

// intentResponse is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type intentResponse struct {
	Intent      string   `json:"intent"`
	SearchTerms string   `json:"search_terms"`
	Categories  []string `json:"categories"`
}

// temporalResponse is the wrapper structure for the LLM's date-range response.
type temporalResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// newIntentParser is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newIntentParser(config *ai.Config) (*IntentParser, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat/classification
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ParserHost),
		openai.WithToken("none"),
		openai.WithModel(config.ParserModel),
	)
	if err != nil {
		return nil, err
	}

	return &IntentParser{
		client: client,
		now:    time.Now,
		logger: slog.Default().With("component", "openai-parser"),
	}, nil
}

// NewIntentParser creates a new query-intent parser using the provided configuration.
//
// Returns ai.IntentParser interface to enforce abstraction.
func NewIntentParser(config *ai.Config) (ai.IntentParser, error) {
	return newIntentParser(config)
}

// ParseIntent classifies a natural-language query into a structured intent.
// It never fails: any model or parsing error degrades to a keyword intent
// derived from the query text.
func (p *IntentParser) ParseIntent(ctx context.Context, query string) ai.QueryIntent {
	query = strings.TrimSpace(query)
	if query == "" {
		return ai.QueryIntent{Type: ai.IntentKeyword}
	}

	responseText, err := p.generateJSON(ctx, buildIntentPrompt(), query)
	if err != nil {
		p.logger.Warn("intent parsing degraded to keyword fallback", "err", err)
		return ai.FallbackIntent(query)
	}

	intent, err := parseIntentResponse(responseText)
	if err != nil {
		p.logger.Warn("intent parsing degraded to keyword fallback",
			"response", responseText,
			"err", err)
		return ai.FallbackIntent(query)
	}
	return intent
}

// ResolveTemporalRange resolves the date range a temporal query refers to,
// anchored at today's date.
func (p *IntentParser) ResolveTemporalRange(ctx context.Context, query string) (ai.TemporalRange, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return ai.TemporalRange{}, ai.ErrNoTemporalRange
	}

	responseText, err := p.generateJSON(ctx, buildTemporalPrompt(p.now()), query)
	if err != nil {
		return ai.TemporalRange{}, err
	}

	rng, err := parseTemporalResponse(responseText)
	if err != nil {
		p.logger.Warn("failed to resolve temporal range",
			"response", responseText,
			"err", err)
		return ai.TemporalRange{}, err
	}
	return rng, nil
}

// generateJSON sends a system/user prompt pair in JSON mode and returns the
// cleaned response body. Retries up to 3 times on malformed output.
func (p *IntentParser) generateJSON(ctx context.Context, systemPrompt, userText string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userText),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := p.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			p.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return "", err
		}

		if len(response.Choices) < 1 {
			return "", errors.New("no choices returned from model")
		}

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(response.Choices[0].Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if !json.Valid([]byte(responseText)) {
			lastErr = errors.New("model returned invalid JSON")
			p.logger.Warn("error parsing model response",
				"attempt", attempt+1,
				"response", responseText)
			continue
		}
		return responseText, nil
	}
	return "", lastErr
}

// parseIntentResponse decodes the model's intent JSON. Unknown intent labels
// coerce to keyword; missing fields are tolerated.
func parseIntentResponse(responseText string) (ai.QueryIntent, error) {
	var resp intentResponse
	if err := json.Unmarshal([]byte(responseText), &resp); err != nil {
		return ai.QueryIntent{}, err
	}

	categories := make([]string, 0, len(resp.Categories))
	for _, c := range resp.Categories {
		c = strings.TrimSpace(c)
		if c != "" {
			categories = append(categories, c)
		}
	}
	if len(categories) == 0 {
		categories = nil
	}

	return ai.QueryIntent{
		Type:        ai.ParseIntentType(resp.Intent),
		SearchTerms: strings.TrimSpace(resp.SearchTerms),
		Categories:  categories,
	}, nil
}

// parseTemporalResponse decodes the model's date-range JSON. The end of the
// range is pushed to the last representable microsecond of its day so the
// interval is inclusive on both sides.
func parseTemporalResponse(responseText string) (ai.TemporalRange, error) {
	var resp temporalResponse
	if err := json.Unmarshal([]byte(responseText), &resp); err != nil {
		return ai.TemporalRange{}, err
	}

	start, err := time.Parse("2006-01-02", resp.StartDate)
	if err != nil {
		return ai.TemporalRange{}, ai.ErrNoTemporalRange
	}
	end, err := time.Parse("2006-01-02", resp.EndDate)
	if err != nil {
		return ai.TemporalRange{}, ai.ErrNoTemporalRange
	}
	if end.Before(start) {
		return ai.TemporalRange{}, ai.ErrNoTemporalRange
	}

	return ai.TemporalRange{
		Start: start,
		End:   end.AddDate(0, 0, 1).Add(-time.Microsecond),
	}, nil
}
