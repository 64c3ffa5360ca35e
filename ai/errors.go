package ai

import "errors"

var (
	// ErrEmptyInput indicates an empty or whitespace-only text was
	// submitted for embedding.
	ErrEmptyInput = errors.New("input text cannot be empty")

	// ErrNoTemporalRange indicates the parser could not resolve a date
	// range from the query.
	ErrNoTemporalRange = errors.New("no temporal range resolved")
)
