package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		// One row per logical collection; values are whole JSON blobs.
		`CREATE TABLE IF NOT EXISTS collections (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		// Mirror-server side: one snapshot document per sync key.
		`CREATE TABLE IF NOT EXISTS remote_documents (
			key TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
