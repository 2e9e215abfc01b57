package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const insertReview = `-- name: InsertReview :exec
INSERT INTO rental.reviews (id, item_id, rental_id, reviewer_id, rating, comment, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

type InsertReviewParams struct {
	ID         uuid.UUID
	ItemID     uuid.UUID
	RentalID   uuid.UUID
	ReviewerID uuid.UUID
	Rating     int16
	Comment    string
	CreatedAt  time.Time
}

func (q *Queries) InsertReview(ctx context.Context, arg InsertReviewParams) error {
	_, err := q.db.ExecContext(ctx, insertReview,
		arg.ID,
		arg.ItemID,
		arg.RentalID,
		arg.ReviewerID,
		arg.Rating,
		arg.Comment,
		arg.CreatedAt,
	)
	return err
}

const reviewExists = `-- name: ReviewExists :one
SELECT EXISTS(SELECT 1 FROM rental.reviews WHERE rental_id = $1 AND reviewer_id = $2)
`

type ReviewExistsParams struct {
	RentalID   uuid.UUID
	ReviewerID uuid.UUID
}

func (q *Queries) ReviewExists(ctx context.Context, arg ReviewExistsParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, reviewExists, arg.RentalID, arg.ReviewerID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const listReviewsByItem = `-- name: ListReviewsByItem :many
SELECT id, item_id, rental_id, reviewer_id, rating, comment, created_at
FROM rental.reviews
WHERE item_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListReviewsByItem(ctx context.Context, itemID uuid.UUID) ([]RentalReview, error) {
	rows, err := q.db.QueryContext(ctx, listReviewsByItem, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RentalReview
	for rows.Next() {
		var i RentalReview
		if err := rows.Scan(
			&i.ID,
			&i.ItemID,
			&i.RentalID,
			&i.ReviewerID,
			&i.Rating,
			&i.Comment,
			&i.CreatedAt,
		); err != nil {
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
