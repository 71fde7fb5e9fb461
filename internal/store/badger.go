package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore implements Store on an embedded BadgerDB. Documents live under
// keys of the form "<collection>/<id>"; queries are prefix scans filtered
// in Go.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens a persistent BadgerDB store at the given directory.
func OpenBadger(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// OpenBadgerInMemory opens an in-memory store. Used by tests.
func OpenBadgerInMemory() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening in-memory badger store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func docKey(collection, id string) []byte {
	return []byte(collection + "/" + id)
}

func (s *BadgerStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(docKey(collection, id))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s/%s: %w", collection, id, err)
	}
	return out, nil
}

func (s *BadgerStore) Set(ctx context.Context, collection, id string, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(docKey(collection, id), doc)
	})
	if err != nil {
		return fmt.Errorf("writing %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *BadgerStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(docKey(collection, id))
	})
	if err != nil {
		return fmt.Errorf("deleting %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *BadgerStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prefix := []byte(collection + "/")
	var docs []Document
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if !Matches(val, q) {
				continue
			}
			id := string(item.Key()[len(prefix):])
			docs = append(docs, Document{ID: id, Data: val})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", collection, err)
	}
	return docs, nil
}

func (s *BadgerStore) DeleteBatch(ctx context.Context, collection string, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, id := range ids {
		if err := wb.Delete(docKey(collection, id)); err != nil {
			return fmt.Errorf("batch-deleting %s/%s: %w", collection, id, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flushing batch delete on %s: %w", collection, err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
