package badger

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Key prefixes for different data types
const (
	indexRecordPrefix = "idxrec"
	indexDatePrefix   = "idxdat"
	noteRecordPrefix  = "notrec"
)

// makeIndexRecordKey generates a key for an indexed document by ID.
func makeIndexRecordKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", indexRecordPrefix, id))
}

// makeIndexDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeIndexDateKey(timestamp time.Time, id string) []byte {
	prefix := indexDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 + len(id) // 8 bytes for timestamp + document ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	copy(buf[offset:], []byte(id))
	return buf
}

// makePartialIndexDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialIndexDateKey(timestamp time.Time) []byte {
	prefix := indexDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeNoteRecordKey generates a key for a note by ID.
func makeNoteRecordKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", noteRecordPrefix, id))
}
