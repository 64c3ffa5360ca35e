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

import (
	"fmt"
	"strings"
)

// ValidateNote validates a Note according to domain rules.
//
// Validation rules:
//   - ID must not be empty (assigned by the note store on create)
//   - Title and Content must not both be empty
//
// NOT validated:
//   - CategoryIDs (may be empty)
//   - Timestamps (populated by the note store)
func ValidateNote(note *Note) error {
	if note == nil {
		return fmt.Errorf("%w: note is nil", ErrInvalidNote)
	}

	if note.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrEmptyID)
	}

	if note.Title == "" && note.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrEmptyNote)
	}

	return nil
}

// ValidateIndexedDocument validates an IndexedDocument before storage.
//
// Validation rules:
//   - ID must not be empty
//   - Text must not be empty or whitespace-only
//   - Vector must not be empty (the index never stores an entry whose
//     embedding does not correspond to its text)
func ValidateIndexedDocument(doc *IndexedDocument) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyID)
	}

	if strings.TrimSpace(doc.Text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyText)
	}

	if len(doc.Vector) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyVector)
	}

	return nil
}
