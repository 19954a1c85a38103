package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ecotrack/internal/model"
)

// UpsertDocument inserts or fully replaces one aggregated document in a
// collection. The replacement is a single-row write, so a reader never
// observes a partially replaced payload. Entry order inside the payload is
// whatever the aggregator produced; marshaling is deterministic, so
// re-aggregating unchanged data yields a byte-identical payload.
func (s *Store) UpsertDocument(ctx context.Context, collection string, doc model.Document) error {
	payload, err := json.Marshal(doc.Data)
	if err != nil {
		return fmt.Errorf("%w: marshal document %s/%s: %v", ErrWrite, collection, doc.ID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, doc_id, payload, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (collection, doc_id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at;`,
		collection, doc.ID, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: upsert document %s/%s: %v", ErrWrite, collection, doc.ID, err)
	}
	return nil
}

// UpsertDocuments writes a batch of documents to one collection.
func (s *Store) UpsertDocuments(ctx context.Context, collection string, docs []model.Document) error {
	for _, doc := range docs {
		if err := s.UpsertDocument(ctx, collection, doc); err != nil {
			return err
		}
	}
	s.log.Info("documents stored",
		zap.String("collection", collection),
		zap.Int("count", len(docs)))
	return nil
}

// Documents returns all documents of a collection ordered by key. A
// collection with no documents yields an empty slice: "not yet aggregated"
// is a valid state, not a fault.
func (s *Store) Documents(ctx context.Context, collection string) ([]model.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_id, payload FROM documents WHERE collection = ? ORDER BY doc_id;`,
		collection)
	if err != nil {
		return nil, fmt.Errorf("%w: query collection %s: %v", ErrWrite, collection, err)
	}
	defer rows.Close()

	docs := []model.Document{}
	for rows.Next() {
		var doc model.Document
		var payload string
		if err := rows.Scan(&doc.ID, &payload); err != nil {
			return nil, fmt.Errorf("%w: scan collection %s: %v", ErrWrite, collection, err)
		}
		if err := json.Unmarshal([]byte(payload), &doc.Data); err != nil {
			return nil, fmt.Errorf("%w: decode document %s/%s: %v", ErrWrite, collection, doc.ID, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate collection %s: %v", ErrWrite, collection, err)
	}
	return docs, nil
}

// DocumentPayload returns the stored payload bytes for one document, or
// false when the document does not exist. Used by tests to check the
// byte-identical idempotence of aggregation runs.
func (s *Store) DocumentPayload(ctx context.Context, collection, docID string) ([]byte, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM documents WHERE collection = ? AND doc_id = ?;`,
		collection, docID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: read document %s/%s: %v", ErrWrite, collection, docID, err)
	}
	return []byte(payload), true, nil
}
