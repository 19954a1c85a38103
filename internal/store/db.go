// Package store owns the SQLite storage: the per-(sector, indicator)
// relational tables, the aggregated document collections, and the run
// history.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	_ "github.com/mattn/go-sqlite3"
)

// ErrWrite marks a store failure beyond the expected uniqueness conflict:
// connectivity loss or a constraint violation. The enclosing batch is
// rolled back, never partially applied.
var ErrWrite = errors.New("store: write failed")

// Store wraps the SQLite handle shared by both the relational tables and
// the document collections.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens (or creates) the database at path and ensures the fixed
// schema objects exist. Dataset tables are created lazily by EnsureDataset.
func Open(path string, log *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	// An in-memory database is private to the connection that opened it;
	// cap the pool at one so every query sees the same schema.
	if strings.Contains(path, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, log: log}
	if err := s.init(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			doc_id     TEXT NOT NULL,
			payload    TEXT NOT NULL,
			updated_at DATETIME NOT NULL,
			PRIMARY KEY (collection, doc_id)
		);`,
		`CREATE TABLE IF NOT EXISTS runs (
			id         TEXT PRIMARY KEY,
			status     TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_errors (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     TEXT NOT NULL,
			stage      TEXT NOT NULL,
			message    TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: init schema: %v", ErrWrite, err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
