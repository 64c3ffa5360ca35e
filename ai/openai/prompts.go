package openai

import (
	"fmt"
	"time"
)

const intentResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "intent": {
      "type": "string",
      "enum": ["semantic", "keyword", "temporal", "list_all"]
    },
    "search_terms": {
      "type": "string"
    },
    "categories": {
      "type": "array",
      "items": {"type": "string"}
    }
  },
  "required": ["intent", "search_terms", "categories"],
  "additionalProperties": false
}`

const intentPromptTemplate = `Classify the user's note-search query and return the result as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Intent meanings:
- "list_all": the user wants every note, with no topic ("show me everything", "list all my notes").
- "temporal": the query refers to a time period ("last week", "yesterday", "in March"). Keep any topic words in search_terms; search_terms may be empty when the query is purely temporal.
- "keyword": the query names specific terms or phrases to look up rather than describing a topic.
- "semantic": anything else. This is the default.

Rules:
- search_terms contains the distilled content words of the query, lowercase, with filler words ("find", "show me", "my notes about") removed. For list_all it must be "".
- categories lists category names only when the query explicitly names one ("in my work notes", "from the recipes category"). Otherwise it must be [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "show me all my notes"
Output:
{"intent":"list_all","search_terms":"","categories":[]}

Example:
Input: "find my notes about the quarterly budget"
Output:
{"intent":"semantic","search_terms":"quarterly budget","categories":[]}

Example:
Input: "what did I write last week about the offsite"
Output:
{"intent":"temporal","search_terms":"offsite","categories":[]}

Example (purely temporal, no topic):
Input: "notes from yesterday"
Output:
{"intent":"temporal","search_terms":"","categories":[]}

Example (category mentioned):
Input: "pasta ideas in my recipes category"
Output:
{"intent":"semantic","search_terms":"pasta ideas","categories":["recipes"]}

Example (informal, no punctuation):
Input: "hey can u find that note about kubernetes ingress"
Output:
{"intent":"keyword","search_terms":"kubernetes ingress","categories":[]}`

const temporalPromptTemplate = `Resolve the date range the user's query refers to and return it as JSON.

Today's date is %s (%s).

Output ONLY valid JSON. Do not include any preamble, explanation, greeting, or acknowledgment. Start your
response directly with the opening brace { and end with the closing brace }. Your output must exactly follow
this schema:

{
  "type": "object",
  "properties": {
    "start_date": {"type": "string", "format": "date"},
    "end_date": {"type": "string", "format": "date"}
  },
  "required": ["start_date", "end_date"],
  "additionalProperties": false
}

Rules:
- Dates use the YYYY-MM-DD format.
- The range is inclusive on both ends; for a single day, start_date equals end_date.
- "last week" means the previous Monday-to-Sunday calendar week, not the last 7 days.
- Month or year names without a year refer to the most recent occurrence that is not in the future.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example (assuming today is Wednesday 2025-03-12):
Input: "what did I write last week"
Output:
{"start_date":"2025-03-03","end_date":"2025-03-09"}

Example (assuming today is Wednesday 2025-03-12):
Input: "notes from yesterday"
Output:
{"start_date":"2025-03-11","end_date":"2025-03-11"}

Example (assuming today is Wednesday 2025-03-12):
Input: "meeting notes from january"
Output:
{"start_date":"2025-01-01","end_date":"2025-01-31"}`

// buildIntentPrompt creates the system prompt for intent classification.
func buildIntentPrompt() string {
	return fmt.Sprintf(intentPromptTemplate, intentResponseSchema)
}

// buildTemporalPrompt creates the system prompt for date-range resolution,
// anchored at the given date.
func buildTemporalPrompt(today time.Time) string {
	return fmt.Sprintf(temporalPromptTemplate,
		today.Format("2006-01-02"),
		today.Weekday().String())
}
