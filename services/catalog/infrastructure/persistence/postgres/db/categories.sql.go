package db

import (
	"context"

	"github.com/google/uuid"
)

const getCategory = `-- name: GetCategory :one
SELECT id, name, slug, description, active, created_at
FROM catalog.categories
WHERE id = $1
`

func (q *Queries) GetCategory(ctx context.Context, id uuid.UUID) (CatalogCategory, error) {
	row := q.db.QueryRowContext(ctx, getCategory, id)
	var c CatalogCategory
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Slug,
		&c.Description,
		&c.Active,
		&c.CreatedAt,
	)
	return c, err
}

const listActiveCategories = `-- name: ListActiveCategories :many
SELECT c.id, c.name, c.slug, c.description, c.active, c.created_at,
       count(i.id) FILTER (WHERE i.active) AS item_count
FROM catalog.categories c
LEFT JOIN catalog.items i ON i.category_id = c.id
WHERE c.active
GROUP BY c.id
ORDER BY c.name
`

func (q *Queries) ListActiveCategories(ctx context.Context) ([]CategoryRow, error) {
	rows, err := q.db.QueryContext(ctx, listActiveCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CategoryRow
	for rows.Next() {
		var c CategoryRow
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Slug,
			&c.Description,
			&c.Active,
			&c.CreatedAt,
			&c.ItemCount,
		); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deactivateCategory = `-- name: DeactivateCategory :execrows
UPDATE catalog.categories SET active = FALSE WHERE slug = $1
`

func (q *Queries) DeactivateCategory(ctx context.Context, slug string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deactivateCategory, slug)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
