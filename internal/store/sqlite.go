package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a single SQLite table keyed by
// (collection, id), with the document body kept as a JSON blob. Query
// filtering runs in Go, matching the Badger backend exactly.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite-backed store at the given path. ":memory:" opens
// an in-memory database. Sets WAL mode for better concurrent reads.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite store: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		body BLOB NOT NULL,
		PRIMARY KEY (collection, id)
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating documents table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	var body []byte
	row := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE collection = ? AND id = ?`, collection, id)
	if err := row.Scan(&body); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading %s/%s: %w", collection, id, err)
	}
	return body, nil
}

func (s *SQLiteStore) Set(ctx context.Context, collection, id string, doc []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, body) VALUES (?, ?, ?)
		 ON CONFLICT (collection, id) DO UPDATE SET body = excluded.body`,
		collection, id, doc)
	if err != nil {
		return fmt.Errorf("writing %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return fmt.Errorf("deleting %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *SQLiteStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, body FROM documents WHERE collection = ?`, collection)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Data); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		if Matches(d.Data, q) {
			docs = append(docs, d)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", collection, err)
	}
	return docs, nil
}

func (s *SQLiteStore) DeleteBatch(ctx context.Context, collection string, ids []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning batch delete: %w", err)
	}
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("batch-deleting %s/%s: %w", collection, id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch delete on %s: %w", collection, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
