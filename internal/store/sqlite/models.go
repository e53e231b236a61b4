package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"structhub/internal/model"
	"structhub/internal/store"
)

// sqlite stores timestamps as datetime('now') text.
const timeLayout = "2006-01-02 15:04:05"

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
VALUES (?, ?,
    (SELECT COALESCE(MAX(version), 0) + 1 FROM models WHERE name_normalized = ?),
    ?, ?, ?, ?, ?)
RETURNING version, created_at
`

	normalized := strings.ToLower(name)
	record := store.ModelRecord{
		Name:              name,
		Project:           m.Metadata.Project,
		SourceApplication: m.Metadata.SourceApplication,
		Levels:            summary.Levels,
		Elements:          summary.TotalElements(),
	}
	var created string
	err = c.db.QueryRowContext(ctx, query,
		name,
		normalized,
		normalized,
		m.Metadata.Project,
		m.Metadata.SourceApplication,
		string(payload),
		summary.Levels,
		summary.TotalElements(),
	).Scan(&record.Version, &created)
	if err != nil {
		return nil, fmt.Errorf("saving model: %w", err)
	}
	record.CreatedAt = parseTime(created)

	return &record, nil
}

func (c *Client) GetModel(ctx context.Context, name string, version int) (*model.BaseModel, *store.ModelRecord, error) {
	query := `
SELECT name, version, project, source_application, payload, level_count, element_count, created_at
FROM models
WHERE name_normalized = ?
  AND (? <= 0 OR version = ?)
ORDER BY version DESC
LIMIT 1
`

	var record store.ModelRecord
	var payload, created string
	err := c.db.QueryRowContext(ctx, query, strings.ToLower(name), version, version).Scan(
		&record.Name,
		&record.Version,
		&record.Project,
		&record.SourceApplication,
		&payload,
		&record.Levels,
		&record.Elements,
		&created,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, store.ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("getting model %q: %w", name, err)
	}
	record.CreatedAt = parseTime(created)

	var m model.BaseModel
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		return nil, nil, fmt.Errorf("unmarshaling model %q: %w", name, err)
	}

	return &m, &record, nil
}

func (c *Client) ListModels(ctx context.Context) ([]store.ModelRecord, error) {
	query := `
SELECT m.name, m.version, m.project, m.source_application, m.level_count, m.element_count, m.created_at
FROM models m
JOIN (
    SELECT name_normalized, MAX(version) AS latest
    FROM models
    GROUP BY name_normalized
) l ON l.name_normalized = m.name_normalized AND l.latest = m.version
ORDER BY m.name_normalized
`

	rows, err := c.db.QueryContext(ctx, query)
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
WHERE name_normalized = ?
ORDER BY version
`

	rows, err := c.db.QueryContext(ctx, query, strings.ToLower(name))
	if err != nil {
		return nil, fmt.Errorf("listing versions for %q: %w", name, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (c *Client) DeleteModel(ctx context.Context, name string, version int) (int64, error) {
	query := `
DELETE FROM models
WHERE name_normalized = ?
  AND (? <= 0 OR version = ?)
`

	res, err := c.db.ExecContext(ctx, query, strings.ToLower(name), version, version)
	if err != nil {
		return 0, fmt.Errorf("deleting model %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting model %q: %w", name, err)
	}
	return affected, nil
}

func scanRecords(rows *sql.Rows) ([]store.ModelRecord, error) {
	records := make([]store.ModelRecord, 0)
	for rows.Next() {
		var r store.ModelRecord
		var created string
		err := rows.Scan(
			&r.Name,
			&r.Version,
			&r.Project,
			&r.SourceApplication,
			&r.Levels,
			&r.Elements,
			&created,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning model record: %w", err)
		}
		r.CreatedAt = parseTime(created)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating model records: %w", err)
	}
	return records, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
