package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"ecotrack/internal/model"
)

var tableNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// TableName returns the relational table for one (sector, indicator) pair.
func TableName(sector, indicator string) string {
	return sector + "_" + indicator
}

// EnsureDataset creates the relational table for a dataset if it does not
// exist. Table names come from the fixed dataset catalog, but are still
// validated because they are interpolated into SQL.
func (s *Store) EnsureDataset(ctx context.Context, table string) error {
	if !tableNameRe.MatchString(table) {
		return fmt.Errorf("%w: invalid table name %q", ErrWrite, table)
	}
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		category_code TEXT NOT NULL,
		date          TEXT NOT NULL,
		value         NUMERIC,
		PRIMARY KEY (category_code, date)
	);`, table)
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrWrite, table, err)
	}
	return nil
}

// InsertRecords inserts a normalized batch into table inside a single
// transaction. Rows whose (category_code, date) key already exists are
// skipped, preserving the stored value: published statistics rarely change
// after publication, so revisions do not overwrite. (This is the place to
// switch to DO UPDATE if the data owner confirms revisions should win.)
// Any other failure rolls the whole batch back and returns ErrWrite.
// It returns the number of newly inserted rows.
func (s *Store) InsertRecords(ctx context.Context, table string, records []model.NormalizedRecord) (int, error) {
	if !tableNameRe.MatchString(table) {
		return 0, fmt.Errorf("%w: invalid table name %q", ErrWrite, table)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin: %v", ErrWrite, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (category_code, date, value) VALUES (?, ?, ?)
		 ON CONFLICT (category_code, date) DO NOTHING;`, table))
	if err != nil {
		return 0, fmt.Errorf("%w: prepare insert into %s: %v", ErrWrite, table, err)
	}
	defer stmt.Close()

	inserted := 0
	for _, rec := range records {
		res, err := stmt.ExecContext(ctx, rec.Category, rec.Date, nullable(rec.Value))
		if err != nil {
			return 0, fmt.Errorf("%w: insert into %s: %v", ErrWrite, table, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit %s: %v", ErrWrite, table, err)
	}

	s.log.Info("table populated",
		zap.String("table", table),
		zap.Int("batch", len(records)),
		zap.Int("inserted", inserted))
	return inserted, nil
}

// Rows returns all rows of a dataset table ordered by date then category,
// so downstream shaping sees a stable order.
func (s *Store) Rows(ctx context.Context, table string) ([]model.Row, error) {
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("%w: invalid table name %q", ErrWrite, table)
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT category_code, date, value FROM %s ORDER BY date, category_code;`, table))
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", ErrWrite, table, err)
	}
	defer rows.Close()

	var out []model.Row
	for rows.Next() {
		var r model.Row
		var v sql.NullFloat64
		if err := rows.Scan(&r.Category, &r.Date, &v); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", ErrWrite, table, err)
		}
		if v.Valid {
			val := v.Float64
			r.Value = &val
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate %s: %v", ErrWrite, table, err)
	}
	return out, nil
}

func nullable(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
