package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const rentalColumns = `r.id, r.item_id, r.renter_id, r.owner_id, r.start_date, r.end_date,
	r.total_amount, r.security_deposit, r.status, r.message, r.payment_status,
	r.created_at, r.updated_at, r.approved_at, r.started_at, r.completed_at, r.cancelled_at,
	i.title`

const insertRental = `-- name: InsertRental :exec
INSERT INTO rental.rentals (
	id, item_id, renter_id, owner_id, start_date, end_date,
	total_amount, security_deposit, status, message, payment_status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`

type InsertRentalParams struct {
	ID              uuid.UUID
	ItemID          uuid.UUID
	RenterID        uuid.UUID
	OwnerID         uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	TotalAmount     int64
	SecurityDeposit int64
	Status          string
	Message         string
	PaymentStatus   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (q *Queries) InsertRental(ctx context.Context, arg InsertRentalParams) error {
	_, err := q.db.ExecContext(ctx, insertRental,
		arg.ID,
		arg.ItemID,
		arg.RenterID,
		arg.OwnerID,
		arg.StartDate,
		arg.EndDate,
		arg.TotalAmount,
		arg.SecurityDeposit,
		arg.Status,
		arg.Message,
		arg.PaymentStatus,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getRental = `-- name: GetRental :one
SELECT ` + rentalColumns + `
FROM rental.rentals r
JOIN catalog.items i ON i.id = r.item_id
WHERE r.id = $1
`

func (q *Queries) GetRental(ctx context.Context, id uuid.UUID) (RentalRow, error) {
	return scanRental(q.db.QueryRowContext(ctx, getRental, id))
}

const getRentalForUpdate = `-- name: GetRentalForUpdate :one
SELECT ` + rentalColumns + `
FROM rental.rentals r
JOIN catalog.items i ON i.id = r.item_id
WHERE r.id = $1
FOR UPDATE OF r
`

func (q *Queries) GetRentalForUpdate(ctx context.Context, id uuid.UUID) (RentalRow, error) {
	return scanRental(q.db.QueryRowContext(ctx, getRentalForUpdate, id))
}

const updateRentalStatus = `-- name: UpdateRentalStatus :exec
UPDATE rental.rentals
SET status = $2, updated_at = $3, approved_at = $4, started_at = $5, completed_at = $6, cancelled_at = $7
WHERE id = $1
`

type UpdateRentalStatusParams struct {
	ID          uuid.UUID
	Status      string
	UpdatedAt   time.Time
	ApprovedAt  sql.NullTime
	StartedAt   sql.NullTime
	CompletedAt sql.NullTime
	CancelledAt sql.NullTime
}

func (q *Queries) UpdateRentalStatus(ctx context.Context, arg UpdateRentalStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateRentalStatus,
		arg.ID,
		arg.Status,
		arg.UpdatedAt,
		arg.ApprovedAt,
		arg.StartedAt,
		arg.CompletedAt,
		arg.CancelledAt,
	)
	return err
}

const listBlockingRentals = `-- name: ListBlockingRentals :many
SELECT ` + rentalColumns + `
FROM rental.rentals r
JOIN catalog.items i ON i.id = r.item_id
WHERE r.item_id = $1 AND r.status IN ('approved', 'active')
ORDER BY r.start_date
`

func (q *Queries) ListBlockingRentals(ctx context.Context, itemID uuid.UUID) ([]RentalRow, error) {
	return q.listRentals(ctx, listBlockingRentals, itemID)
}

const listRentalsByRenter = `-- name: ListRentalsByRenter :many
SELECT ` + rentalColumns + `
FROM rental.rentals r
JOIN catalog.items i ON i.id = r.item_id
WHERE r.renter_id = $1
ORDER BY r.created_at DESC
`

func (q *Queries) ListRentalsByRenter(ctx context.Context, renterID uuid.UUID) ([]RentalRow, error) {
	return q.listRentals(ctx, listRentalsByRenter, renterID)
}

const listRentalsByOwner = `-- name: ListRentalsByOwner :many
SELECT ` + rentalColumns + `
FROM rental.rentals r
JOIN catalog.items i ON i.id = r.item_id
WHERE r.owner_id = $1
ORDER BY r.created_at DESC
`

func (q *Queries) ListRentalsByOwner(ctx context.Context, ownerID uuid.UUID) ([]RentalRow, error) {
	return q.listRentals(ctx, listRentalsByOwner, ownerID)
}

const listPendingStartingBefore = `-- name: ListPendingStartingBefore :many
SELECT ` + rentalColumns + `
FROM rental.rentals r
JOIN catalog.items i ON i.id = r.item_id
WHERE r.status = 'pending' AND r.start_date < $1
ORDER BY r.start_date
`

func (q *Queries) ListPendingStartingBefore(ctx context.Context, day time.Time) ([]RentalRow, error) {
	return q.listRentals(ctx, listPendingStartingBefore, day)
}

func (q *Queries) listRentals(ctx context.Context, query string, args ...interface{}) ([]RentalRow, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RentalRow
	for rows.Next() {
		i, err := scanRental(rows)
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

func scanRental(row rowScanner) (RentalRow, error) {
	var i RentalRow
	err := row.Scan(
		&i.ID,
		&i.ItemID,
		&i.RenterID,
		&i.OwnerID,
		&i.StartDate,
		&i.EndDate,
		&i.TotalAmount,
		&i.SecurityDeposit,
		&i.Status,
		&i.Message,
		&i.PaymentStatus,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.ApprovedAt,
		&i.StartedAt,
		&i.CompletedAt,
		&i.CancelledAt,
		&i.ItemTitle,
	)
	return i, err
}
