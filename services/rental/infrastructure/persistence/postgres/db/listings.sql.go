package db

import (
	"context"

	"github.com/google/uuid"
)

const getListing = `-- name: GetListing :one
SELECT id, owner_id, title, price_per_day, security_deposit, status, active, rating, reviews_count
FROM catalog.items
WHERE id = $1
`

func (q *Queries) GetListing(ctx context.Context, id uuid.UUID) (CatalogItem, error) {
	row := q.db.QueryRowContext(ctx, getListing, id)
	return scanListing(row)
}

const getListingForUpdate = `-- name: GetListingForUpdate :one
SELECT id, owner_id, title, price_per_day, security_deposit, status, active, rating, reviews_count
FROM catalog.items
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetListingForUpdate(ctx context.Context, id uuid.UUID) (CatalogItem, error) {
	row := q.db.QueryRowContext(ctx, getListingForUpdate, id)
	return scanListing(row)
}

const updateListingStatus = `-- name: UpdateListingStatus :exec
UPDATE catalog.items SET status = $2, updated_at = now() WHERE id = $1
`

type UpdateListingStatusParams struct {
	ID     uuid.UUID
	Status string
}

func (q *Queries) UpdateListingStatus(ctx context.Context, arg UpdateListingStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateListingStatus, arg.ID, arg.Status)
	return err
}

const updateListingRating = `-- name: UpdateListingRating :exec
UPDATE catalog.items SET rating = $2, reviews_count = $3, updated_at = now() WHERE id = $1
`

type UpdateListingRatingParams struct {
	ID           uuid.UUID
	Rating       float64
	ReviewsCount int32
}

func (q *Queries) UpdateListingRating(ctx context.Context, arg UpdateListingRatingParams) error {
	_, err := q.db.ExecContext(ctx, updateListingRating, arg.ID, arg.Rating, arg.ReviewsCount)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row rowScanner) (CatalogItem, error) {
	var i CatalogItem
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.Title,
		&i.PricePerDay,
		&i.SecurityDeposit,
		&i.Status,
		&i.Active,
		&i.Rating,
		&i.ReviewsCount,
	)
	return i, err
}
