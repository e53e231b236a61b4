package postgres

import (
	"context"
	"fmt"
	"strings"

	"structhub/internal/store"
)

// SearchModels matches the query against model name, project, and
// source application, case-insensitively, returning the latest version
// of each match.
func (c *Client) SearchModels(ctx context.Context, query string) ([]store.ModelRecord, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	sql := `
SELECT DISTINCT ON (name_normalized)
    name, version, project, source_application, level_count, element_count, created_at
FROM models
WHERE name_normalized LIKE $1
   OR lower(project) LIKE $1
   OR lower(source_application) LIKE $1
ORDER BY name_normalized, version DESC
`

	rows, err := c.pool.Query(ctx, sql, pattern)
	if err != nil {
		return nil, fmt.Errorf("searching models: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}
