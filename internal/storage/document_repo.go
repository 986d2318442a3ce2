package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DocumentRepo stores remote snapshot documents for the mirror server.
type DocumentRepo struct {
	db *sql.DB
}

func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

func (r *DocumentRepo) Get(ctx context.Context, key string) (*RemoteDocument, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, body, updated_at FROM remote_documents WHERE key = ?
	`, key)

	var doc RemoteDocument
	var body string
	if err := row.Scan(&doc.Key, &body, &doc.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("document get: %w", err)
	}
	doc.Body = []byte(body)
	return &doc, nil
}

// Upsert replaces the document body for key and stamps updated_at with the
// server clock, returning the stored document.
func (r *DocumentRepo) Upsert(ctx context.Context, key string, body []byte, now time.Time) (*RemoteDocument, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO remote_documents (key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, key, string(body), now)
	if err != nil {
		return nil, fmt.Errorf("document upsert: %w", err)
	}
	return &RemoteDocument{Key: key, Body: body, UpdatedAt: now}, nil
}
