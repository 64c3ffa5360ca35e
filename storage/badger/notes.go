package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/notelens/notelens/core"
	"github.com/notelens/notelens/storage"
)

// NoteRepository implements storage.NoteRepository for BadgerDB.
type NoteRepository struct {
	backend *Backend
}

var _ storage.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository creates a new NoteRepository over an open backend.
func NewNoteRepository(backend *Backend) *NoteRepository {
	return &NoteRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *NoteRepository) Close() error {
	return nil
}

// CreateNote stores a new note. An empty ID is replaced with a generated
// UUID; an explicit ID that already exists yields ErrDuplicateKey.
func (r *NoteRepository) CreateNote(ctx context.Context, note *core.Note) (*core.Note, error) {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = note.CreatedAt
	}

	if err := core.ValidateNote(note); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeNoteRecordKey(note.ID)

		existing, err := r.readNote(tx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			return storage.ErrDuplicateKey
		}

		if err := tx.Set(key, storage.MarshalNote(note)); err != nil {
			return err
		}
		return commit(tx)
	}, true)

	if err != nil {
		return nil, err
	}
	return note, nil
}

// GetNote retrieves a single note by ID.
func (r *NoteRepository) GetNote(ctx context.Context, id string) (*core.Note, error) {
	var result *core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readNote(tx, makeNoteRecordKey(id))
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

// UpdateNote replaces an existing note and refreshes its UpdatedAt.
func (r *NoteRepository) UpdateNote(ctx context.Context, note *core.Note) (*core.Note, error) {
	if err := core.ValidateNote(note); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeNoteRecordKey(note.ID)

		old, err := r.readNote(tx, key)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		note.CreatedAt = old.CreatedAt
		note.UpdatedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalNote(note)); err != nil {
			return err
		}
		return commit(tx)
	}, true)

	if err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote removes a note by ID.
func (r *NoteRepository) DeleteNote(ctx context.Context, id string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeNoteRecordKey(id)

		note, err := r.readNote(tx, key)
		if err != nil {
			return err
		}
		if note == nil {
			return storage.ErrNotFound
		}

		if err := tx.Delete(key); err != nil {
			return err
		}
		return commit(tx)
	}, true)
}

// ListNotes returns notes ordered by ID ascending.
func (r *NoteRepository) ListNotes(ctx context.Context, skip, limit int) ([]*core.Note, error) {
	var results []*core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(noteRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		skipped := 0
		for iter.Rewind(); iter.Valid(); iter.Next() {
			if skipped < skip {
				skipped++
				continue
			}
			if limit > 0 && len(results) >= limit {
				break
			}

			var note *core.Note
			err := iter.Item().Value(func(val []byte) error {
				var err error
				note, err = storage.UnmarshalNote(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, note)
		}
		return nil
	}, false)
	return results, err
}

// CountNotes returns the number of stored notes.
func (r *NoteRepository) CountNotes(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(noteRecordPrefix + ":")
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

// readNote reads a note from the transaction.
// Returns nil with no error when the key is absent.
func (r *NoteRepository) readNote(tx *badger.Txn, key []byte) (*core.Note, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var note *core.Note
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		note, unmarshalErr = storage.UnmarshalNote(val)
		return unmarshalErr
	})
	return note, err
}
