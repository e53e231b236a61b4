package sqlite

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

	sqlQuery := `
SELECT m.name, m.version, m.project, m.source_application, m.level_count, m.element_count, m.created_at
FROM models m
JOIN (
    SELECT name_normalized, MAX(version) AS latest
    FROM models
    GROUP BY name_normalized
) l ON l.name_normalized = m.name_normalized AND l.latest = m.version
WHERE m.name_normalized LIKE ?
   OR lower(m.project) LIKE ?
   OR lower(m.source_application) LIKE ?
ORDER BY m.name_normalized
`

	rows, err := c.db.QueryContext(ctx, sqlQuery, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("searching models: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}
