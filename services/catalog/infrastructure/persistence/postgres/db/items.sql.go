package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const itemColumns = `i.id, i.owner_id, i.category_id, i.title, i.description, i.size,
       i.price_per_day, i.security_deposit, i.condition, i.city, i.status,
       i.rating, i.reviews_count, i.views, i.active, i.created_at, i.updated_at,
       c.slug, c.name`

const insertItem = `-- name: InsertItem :exec
INSERT INTO catalog.items (
    id, owner_id, category_id, title, description, size,
    price_per_day, security_deposit, condition, city, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`

type InsertItemParams struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	CategoryID      uuid.UUID
	Title           string
	Description     string
	Size            string
	PricePerDay     int64
	SecurityDeposit int64
	Condition       string
	City            string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (q *Queries) InsertItem(ctx context.Context, arg InsertItemParams) error {
	_, err := q.db.ExecContext(ctx, insertItem,
		arg.ID,
		arg.OwnerID,
		arg.CategoryID,
		arg.Title,
		arg.Description,
		arg.Size,
		arg.PricePerDay,
		arg.SecurityDeposit,
		arg.Condition,
		arg.City,
		arg.Status,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getItem = `-- name: GetItem :one
SELECT ` + itemColumns + `
FROM catalog.items i
JOIN catalog.categories c ON c.id = i.category_id
WHERE i.id = $1 AND i.active
`

func (q *Queries) GetItem(ctx context.Context, id uuid.UUID) (ItemRow, error) {
	row := q.db.QueryRowContext(ctx, getItem, id)
	return scanItem(row)
}

// Empty filter values match every row. Search and city patterns arrive
// already wrapped in % by the caller.
const itemFilter = `
WHERE i.active
  AND ($1::text = '' OR c.slug = $1)
  AND ($2::text = '' OR i.size = $2)
  AND ($3::bigint = 0 OR i.price_per_day >= $3)
  AND ($4::bigint = 0 OR i.price_per_day <= $4)
  AND ($5::text = '' OR i.city ILIKE $5)
  AND ($6::text = '' OR i.title ILIKE $6 OR i.description ILIKE $6)
`

const listItems = `-- name: ListItems :many
SELECT ` + itemColumns + `
FROM catalog.items i
JOIN catalog.categories c ON c.id = i.category_id` + itemFilter + `ORDER BY i.created_at DESC, i.id
LIMIT $7 OFFSET $8
`

type ItemFilterParams struct {
	CategorySlug string
	Size         string
	MinPrice     int64
	MaxPrice     int64
	CityPattern  string
	TextPattern  string
}

func (p ItemFilterParams) args() []interface{} {
	return []interface{}{p.CategorySlug, p.Size, p.MinPrice, p.MaxPrice, p.CityPattern, p.TextPattern}
}

type ListItemsParams struct {
	ItemFilterParams
	Limit  int32
	Offset int32
}

func (q *Queries) ListItems(ctx context.Context, arg ListItemsParams) ([]ItemRow, error) {
	args := append(arg.args(), arg.Limit, arg.Offset)
	return q.listItems(ctx, listItems, args...)
}

const countItems = `-- name: CountItems :one
SELECT count(*)
FROM catalog.items i
JOIN catalog.categories c ON c.id = i.category_id` + itemFilter

func (q *Queries) CountItems(ctx context.Context, arg ItemFilterParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countItems, arg.args()...)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const listItemsByOwner = `-- name: ListItemsByOwner :many
SELECT ` + itemColumns + `
FROM catalog.items i
JOIN catalog.categories c ON c.id = i.category_id
WHERE i.owner_id = $1 AND i.active
ORDER BY i.created_at DESC, i.id
`

func (q *Queries) ListItemsByOwner(ctx context.Context, ownerID uuid.UUID) ([]ItemRow, error) {
	return q.listItems(ctx, listItemsByOwner, ownerID)
}

const incrementItemViews = `-- name: IncrementItemViews :one
UPDATE catalog.items SET views = views + 1
WHERE id = $1 AND active
RETURNING views
`

func (q *Queries) IncrementItemViews(ctx context.Context, id uuid.UUID) (int32, error) {
	row := q.db.QueryRowContext(ctx, incrementItemViews, id)
	var views int32
	err := row.Scan(&views)
	return views, err
}

const deactivateItem = `-- name: DeactivateItem :execrows
UPDATE catalog.items SET active = FALSE, updated_at = $2
WHERE id = $1 AND active
`

type DeactivateItemParams struct {
	ID        uuid.UUID
	UpdatedAt time.Time
}

func (q *Queries) DeactivateItem(ctx context.Context, arg DeactivateItemParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deactivateItem, arg.ID, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (q *Queries) listItems(ctx context.Context, query string, args ...interface{}) ([]ItemRow, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ItemRow
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (ItemRow, error) {
	var i ItemRow
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.CategoryID,
		&i.Title,
		&i.Description,
		&i.Size,
		&i.PricePerDay,
		&i.SecurityDeposit,
		&i.Condition,
		&i.City,
		&i.Status,
		&i.Rating,
		&i.ReviewsCount,
		&i.Views,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.CategorySlug,
		&i.CategoryName,
	)
	return i, err
}
