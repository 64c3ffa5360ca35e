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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidNote indicates a Note failed validation.
	ErrInvalidNote = errors.New("invalid note")

	// ErrInvalidDocument indicates an IndexedDocument failed validation.
	ErrInvalidDocument = errors.New("invalid indexed document")

	// ErrEmptyID indicates the ID field is empty.
	ErrEmptyID = errors.New("id cannot be empty")

	// ErrEmptyNote indicates a note has neither title nor content.
	ErrEmptyNote = errors.New("note must have a title or content")

	// ErrEmptyText indicates the Text field is empty or whitespace-only.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrEmptyVector indicates the embedding vector is missing.
	ErrEmptyVector = errors.New("embedding vector cannot be empty")
)
