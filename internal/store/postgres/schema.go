package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	// All DDL uses IF NOT EXISTS so repeated runs are harmless.
	ddl := `
CREATE TABLE IF NOT EXISTS models (
    id                 BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    name               TEXT NOT NULL,
    name_normalized    TEXT NOT NULL,
    version            INTEGER NOT NULL,
    project            TEXT NOT NULL DEFAULT '',
    source_application TEXT NOT NULL DEFAULT '',
    payload            JSONB NOT NULL,
    level_count        INTEGER NOT NULL DEFAULT 0,
    element_count      INTEGER NOT NULL DEFAULT 0,
    created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT uq_model_name_version UNIQUE (name_normalized, version)
);

CREATE INDEX IF NOT EXISTS idx_models_name ON models (name_normalized);
CREATE INDEX IF NOT EXISTS idx_models_created ON models (created_at);
CREATE INDEX IF NOT EXISTS idx_models_source ON models (source_application);
`
	_, err := c.pool.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
