package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"structhub/internal/model"
	"structhub/internal/store"
)

func (c *Client) SaveModel(ctx context.Context, name string, m *model.BaseModel) (*store.ModelRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("model name is required")
	}
	if m == nil {
		return nil, fmt.Errorf("model is required")
	}

	payload, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshaling model: %w", err)
	}
	summary := m.Summarize()

	query := `
INSERT INTO models (name, name_normalized, version, project, source_application, payload, level_count, element_count)
VALUES ($1, $2,
    (SELECT COALESCE(MAX(version), 0) + 1 FROM models WHERE name_normalized = $2),
    $3, $4, $5, $6, $7)
RETURNING version, created_at
`

	record := store.ModelRecord{
		Name:              name,
		Project:           m.Metadata.Project,
		SourceApplication: m.Metadata.SourceApplication,
		Levels:            summary.Levels,
		Elements:          summary.TotalElements(),
	}
	err = c.pool.QueryRow(ctx, query,
		name,
		strings.ToLower(name),
		m.Metadata.Project,
		m.Metadata.SourceApplication,
		payload,
		summary.Levels,
		summary.TotalElements(),
	).Scan(&record.Version, &record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("saving model: %w", err)
	}

	return &record, nil
}

func (c *Client) GetModel(ctx context.Context, name string, version int) (*model.BaseModel, *store.ModelRecord, error) {
	query := `
SELECT name, version, project, source_application, payload, level_count, element_count, created_at
FROM models
WHERE name_normalized = $1
  AND ($2 <= 0 OR version = $2)
ORDER BY version DESC
LIMIT 1
`

	var record store.ModelRecord
	var payload []byte
	err := c.pool.QueryRow(ctx, query, strings.ToLower(name), version).Scan(
		&record.Name,
		&record.Version,
		&record.Project,
		&record.SourceApplication,
		&payload,
		&record.Levels,
		&record.Elements,
		&record.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, store.ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("getting model %q: %w", name, err)
	}

	var m model.BaseModel
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, nil, fmt.Errorf("unmarshaling model %q: %w", name, err)
	}

	return &m, &record, nil
}

func (c *Client) ListModels(ctx context.Context) ([]store.ModelRecord, error) {
	query := `
SELECT DISTINCT ON (name_normalized)
    name, version, project, source_application, level_count, element_count, created_at
FROM models
ORDER BY name_normalized, version DESC
`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (c *Client) ListVersions(ctx context.Context, name string) ([]store.ModelRecord, error) {
	query := `
SELECT name, version, project, source_application, level_count, element_count, created_at
FROM models
WHERE name_normalized = $1
ORDER BY version
`

	rows, err := c.pool.Query(ctx, query, strings.ToLower(name))
	if err != nil {
		return nil, fmt.Errorf("listing versions for %q: %w", name, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (c *Client) DeleteModel(ctx context.Context, name string, version int) (int64, error) {
	query := `
DELETE FROM models
WHERE name_normalized = $1
  AND ($2 <= 0 OR version = $2)
`

	tag, err := c.pool.Exec(ctx, query, strings.ToLower(name), version)
	if err != nil {
		return 0, fmt.Errorf("deleting model %q: %w", name, err)
	}
	return tag.RowsAffected(), nil
}

func scanRecords(rows pgx.Rows) ([]store.ModelRecord, error) {
	records := make([]store.ModelRecord, 0)
	for rows.Next() {
		var r store.ModelRecord
		err := rows.Scan(
			&r.Name,
			&r.Version,
			&r.Project,
			&r.SourceApplication,
			&r.Levels,
			&r.Elements,
			&r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning model record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating model records: %w", err)
	}
	return records, nil
}
