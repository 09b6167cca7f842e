package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ErrUnsupported is returned by SQLiteKV methods called before Open, or
// after Close — the "persistent backend disabled" case of §7.
var ErrUnsupported = errors.New("storage: sqlite backend not open")

// SQLiteKV is a KV adapter backed by github.com/mattn/go-sqlite3. It is the
// one concrete storage driver this module ships, wired behind the KV
// interface exactly as §6 requires ("the core only calls these through an
// adapter interface"): nothing in core/atomspace, core/pln, or core/ure
// imports this package or the sqlite3 driver.
type SQLiteKV struct {
	path string
	db   *sql.DB
}

// NewSQLiteKV returns a KV adapter that will open path on Open.
func NewSQLiteKV(path string) *SQLiteKV {
	return &SQLiteKV{path: path}
}

func (s *SQLiteKV) Open(ctx context.Context) error {
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return fmt.Errorf("storage: opening sqlite database: %w", err)
	}
	const schema = `CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return fmt.Errorf("storage: creating kv table: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteKV) Close(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteKV) Put(ctx context.Context, key string, value []byte) error {
	if s.db == nil {
		return ErrUnsupported
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("storage: put %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.db == nil {
		return nil, false, ErrUnsupported
	}
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("storage: get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	if s.db == nil {
		return ErrUnsupported
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("storage: delete %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteKV) Each(ctx context.Context, fn func(key string, value []byte) bool) error {
	if s.db == nil {
		return ErrUnsupported
	}
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM kv ORDER BY key`)
	if err != nil {
		return fmt.Errorf("storage: each: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("storage: each scan: %w", err)
		}
		if !fn(key, value) {
			break
		}
	}
	return rows.Err()
}

var _ KV = (*SQLiteKV)(nil)
