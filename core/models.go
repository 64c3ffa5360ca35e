package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// TextFingerprint generates a deterministic fingerprint of indexed text using
// BLAKE2b hashing. Identical text always produces an identical fingerprint,
// which lets the maintenance layer skip re-embedding unchanged documents.
func TextFingerprint(text string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// Note is a source document owned by the note store.
// The search core reads notes but never mutates them.
type Note struct {
	ID          string
	Title       string
	Content     string
	CategoryIDs []string
	CreatedAt   time.Time // When the note was created
	UpdatedAt   time.Time // When the note was last updated
}

// SearchText returns the text that is embedded for this note:
// the title and content joined by a single space.
func (n *Note) SearchText() string {
	return n.Title + " " + n.Content
}

// IndexedDocument is the unit stored in the vector index. There is exactly
// one entry per live note ID, and the embedding always corresponds to the
// stored Text.
//
// Metadata values are always strings; structured values (lists, maps) are
// JSON-encoded on write and decoded symmetrically on read. See the
// storage package for the encoding boundary.
type IndexedDocument struct {
	ID          string
	Text        string            // Embedding input, typically title + " " + content
	Vector      []float32         // Embedding vector
	Metadata    map[string]string // String-valued metadata (structured values JSON-encoded)
	Fingerprint uint64            // BLAKE2b fingerprint of Text
	CreatedAt   time.Time         // Source creation time, denormalized for the temporal index
	IndexedAt   time.Time         // When this entry was (re)written
}

// ScoredResult is a single search hit. Results are ordered by similarity
// descending; equal similarities are broken by ID ascending.
type ScoredResult struct {
	ID         string
	Similarity float32
	Text       string
	Metadata   map[string]any // Decoded metadata (structured values restored)
}
