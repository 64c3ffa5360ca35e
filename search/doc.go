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


// Package search provides intent-aware semantic search over the note index.
//
// The Searcher type implements a multi-stage pipeline:
//   - Query-intent classification (semantic, keyword, temporal, list_all)
//   - Vector similarity ranking with a relevance threshold
//   - Date-range retrieval for temporal queries
//
// The pipeline degrades rather than fails: an unreachable intent parser
// falls back to keyword search over the raw query, an unresolvable date
// range falls back to ranked search, and an unreachable embedder yields
// empty results instead of an error.
package search
