package badger

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/notelens/notelens/core"
	"github.com/notelens/notelens/storage"
)

// IndexRepository implements storage.IndexRepository for BadgerDB.
type IndexRepository struct {
	backend *Backend
}

var _ storage.IndexRepository = (*IndexRepository)(nil)

// NewIndexRepository creates a new IndexRepository over an open backend.
func NewIndexRepository(backend *Backend) *IndexRepository {
	return &IndexRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *IndexRepository) Close() error {
	return nil
}

// Put stores a document, replacing any existing entry with the same ID.
// The record and its date-index entry are written in one transaction.
func (r *IndexRepository) Put(ctx context.Context, doc *core.IndexedDocument) error {
	if err := core.ValidateIndexedDocument(doc); err != nil {
		return err
	}
	if doc.IndexedAt.IsZero() {
		doc.IndexedAt = time.Now().UTC()
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeIndexRecordKey(doc.ID)

		// Read old entry so a changed creation time doesn't orphan its
		// date-index key
		old, err := r.readDocument(tx, key)
		if err != nil {
			return err
		}

		if err := tx.Set(key, storage.MarshalIndexedDocument(doc)); err != nil {
			return err
		}

		if old != nil && !old.CreatedAt.Equal(doc.CreatedAt) {
			if err := tx.Delete(makeIndexDateKey(old.CreatedAt, old.ID)); err != nil {
				return err
			}
		}
		dateKey := makeIndexDateKey(doc.CreatedAt, doc.ID)
		if err := tx.Set(dateKey, []byte(doc.ID)); err != nil {
			return err
		}

		return commit(tx)
	}, true)
}

// Delete removes a document by ID. Deleting an absent ID is a no-op.
func (r *IndexRepository) Delete(ctx context.Context, id string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeIndexRecordKey(id)

		doc, err := r.readDocument(tx, key)
		if err != nil {
			return err
		}
		if doc == nil {
			return nil
		}

		if err := tx.Delete(makeIndexDateKey(doc.CreatedAt, doc.ID)); err != nil {
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}

		return commit(tx)
	}, true)
}

// Get retrieves a document by ID.
func (r *IndexRepository) Get(ctx context.Context, id string) (*core.IndexedDocument, error) {
	var result *core.IndexedDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readDocument(tx, makeIndexRecordKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// List returns documents ordered by ID ascending.
func (r *IndexRepository) List(ctx context.Context, limit, offset int) ([]*core.IndexedDocument, error) {
	var results []*core.IndexedDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(indexRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		skipped := 0
		for iter.Rewind(); iter.Valid(); iter.Next() {
			if skipped < offset {
				skipped++
				continue
			}
			if limit > 0 && len(results) >= limit {
				break
			}

			var doc *core.IndexedDocument
			err := iter.Item().Value(func(val []byte) error {
				var err error
				doc, err = storage.UnmarshalIndexedDocument(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, doc)
		}
		return nil
	}, false)
	return results, err
}

// ListByDateRange returns documents created within [start, end], ordered by
// creation time ascending.
func (r *IndexRepository) ListByDateRange(ctx context.Context, start, end time.Time, limit int) ([]*core.IndexedDocument, error) {
	var results []*core.IndexedDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialIndexDateKey(start)
		// End is inclusive; step one microsecond past it for the exclusive bound
		endKey := makePartialIndexDateKey(end.Add(time.Microsecond))
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) >= 0 {
				break
			}
			if limit > 0 && len(results) >= limit {
				break
			}

			// The index value holds the document ID
			var id string
			if err := iter.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			}); err != nil {
				return err
			}

			doc, err := r.readDocument(tx, makeIndexRecordKey(id))
			if err != nil {
				return err
			}
			if doc != nil {
				results = append(results, doc)
			}
		}
		return nil
	}, false)
	return results, err
}

// FindSimilar scores every document passing the filter against the given
// vector. Results are ordered by similarity descending, ties broken by ID
// ascending. No similarity threshold is applied here. An empty query vector
// is rejected with storage.ErrInvalidQuery.
func (r *IndexRepository) FindSimilar(ctx context.Context, vector []float32, limit int, filter *storage.IndexFilter) ([]*core.ScoredResult, error) {
	if len(vector) == 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.ScoredResult

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(indexRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var doc *core.IndexedDocument
			err := iter.Item().Value(func(val []byte) error {
				var err error
				doc, err = storage.UnmarshalIndexedDocument(val)
				return err
			})
			if err != nil {
				return err
			}

			if !matchesFilter(doc, filter) {
				continue
			}

			similarity := core.CosineSimilarity(vector, doc.Vector)
			results = append(results, storage.ResultFromDocument(doc, similarity))
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Sort by similarity descending, ID ascending on ties
	slices.SortFunc(results, func(a, b *core.ScoredResult) int {
		if a.Similarity > b.Similarity {
			return -1
		}
		if a.Similarity < b.Similarity {
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// clearBatchSize caps how many keys a single Clear transaction deletes so a
// large index never exceeds Badger's transaction size limit.
var clearBatchSize = 1000

// Clear removes every document and index entry, returning how many
// documents were removed. Deletes run in batches of clearBatchSize keys,
// one transaction per batch.
func (r *IndexRepository) Clear(ctx context.Context) (int, error) {
	count := 0
	for _, prefix := range []string{indexRecordPrefix + ":", indexDatePrefix + ":"} {
		for {
			deleted := 0
			err := r.backend.WithTx(func(tx *badger.Txn) error {
				opts := badger.DefaultIteratorOptions
				opts.Prefix = []byte(prefix)
				opts.PrefetchValues = false
				iter := tx.NewIterator(opts)

				var keys [][]byte
				for iter.Rewind(); iter.Valid() && len(keys) < clearBatchSize; iter.Next() {
					keys = append(keys, iter.Item().KeyCopy(nil))
				}
				iter.Close()

				for _, key := range keys {
					if err := tx.Delete(key); err != nil {
						return err
					}
				}
				deleted = len(keys)
				return commit(tx)
			}, true)
			if err != nil {
				return 0, err
			}
			if prefix == indexRecordPrefix+":" {
				count += deleted
			}
			if deleted < clearBatchSize {
				break
			}
		}
	}
	return count, nil
}

// Count returns the number of indexed documents.
func (r *IndexRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(indexRecordPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)

	if err != nil {
		return 0, err
	}
	return count, nil
}

// readDocument reads an indexed document from the transaction.
// Returns nil with no error when the key is absent.
func (r *IndexRepository) readDocument(tx *badger.Txn, key []byte) (*core.IndexedDocument, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc *core.IndexedDocument
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		doc, unmarshalErr = storage.UnmarshalIndexedDocument(val)
		return unmarshalErr
	})
	return doc, err
}

// matchesFilter reports whether a document passes the index filter.
func matchesFilter(doc *core.IndexedDocument, filter *storage.IndexFilter) bool {
	if filter == nil {
		return true
	}

	if filter.Start != nil && doc.CreatedAt.Before(*filter.Start) {
		return false
	}
	if filter.End != nil && doc.CreatedAt.After(*filter.End) {
		return false
	}

	if len(filter.Categories) > 0 {
		categories := documentCategories(doc)
		found := false
		for _, want := range filter.Categories {
			if slices.Contains(categories, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// documentCategories decodes the category list stored in document metadata.
func documentCategories(doc *core.IndexedDocument) []string {
	raw, ok := doc.Metadata[storage.MetaCategoryIDs]
	if !ok {
		return nil
	}
	var categories []string
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		return nil
	}
	return categories
}
