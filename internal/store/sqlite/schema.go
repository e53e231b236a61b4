package sqlite

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS models (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		name               TEXT NOT NULL,
		name_normalized    TEXT NOT NULL,
		version            INTEGER NOT NULL,
		project            TEXT NOT NULL DEFAULT '',
		source_application TEXT NOT NULL DEFAULT '',
		payload            TEXT NOT NULL,
		level_count        INTEGER NOT NULL DEFAULT 0,
		element_count      INTEGER NOT NULL DEFAULT 0,
		created_at         TEXT NOT NULL DEFAULT (datetime('now')),
		CONSTRAINT uq_model_name_version UNIQUE (name_normalized, version)
	);

	CREATE INDEX IF NOT EXISTS idx_models_name ON models (name_normalized);
	CREATE INDEX IF NOT EXISTS idx_models_created ON models (created_at);
	CREATE INDEX IF NOT EXISTS idx_models_source ON models (source_application);
	`

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range strings.Split(ddl, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}
