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


package ai

import "strings"

// stopWords are filler and query-scaffolding words stripped when deriving
// fallback search terms. Includes the verbs and nouns people use to address
// the search engine itself ("find my notes about ...").
var stopWords = map[string]struct{}{
	"a": {}, "about": {}, "all": {}, "an": {}, "and": {}, "any": {},
	"are": {}, "can": {}, "did": {}, "do": {}, "entries": {}, "every": {},
	"everything": {}, "find": {}, "for": {}, "from": {}, "get": {},
	"give": {}, "have": {}, "how": {}, "i": {}, "in": {}, "is": {},
	"list": {}, "me": {}, "my": {}, "note": {}, "notes": {}, "of": {},
	"on": {}, "please": {}, "related": {}, "search": {}, "show": {},
	"some": {}, "that": {}, "the": {}, "them": {}, "there": {},
	"things": {}, "this": {}, "to": {}, "was": {}, "were": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "with": {},
	"write": {}, "wrote": {}, "you": {},
}

// FallbackSearchTerms derives key terms from a raw query without any model
// involvement. It keeps up to three of the longer non-stop-word tokens, in
// query order. Returns the trimmed query itself when nothing survives the
// filter, so downstream search always has something to work with.
func FallbackSearchTerms(query string) string {
	const maxTerms = 3

	var kept []string
	for _, tok := range strings.Fields(query) {
		tok = strings.ToLower(strings.Trim(tok, ".,;:!?\"'()[]"))
		if tok == "" {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if len([]rune(tok)) <= 3 {
			continue
		}
		kept = append(kept, tok)
		if len(kept) == maxTerms {
			break
		}
	}

	if len(kept) == 0 {
		return strings.TrimSpace(query)
	}
	return strings.Join(kept, " ")
}

// FallbackIntent is the degraded interpretation used when intent parsing is
// unavailable: a keyword search over terms extracted from the query text.
func FallbackIntent(query string) QueryIntent {
	return QueryIntent{
		Type:        IntentKeyword,
		SearchTerms: FallbackSearchTerms(query),
	}
}
