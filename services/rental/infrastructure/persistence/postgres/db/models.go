package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// CatalogItem holds the catalog.items columns the rental context reads.
type CatalogItem struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Title           string
	PricePerDay     int64
	SecurityDeposit int64
	Status          string
	Active          bool
	Rating          float64
	ReviewsCount    int32
}

type RentalRental struct {
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
	ApprovedAt      sql.NullTime
	StartedAt       sql.NullTime
	CompletedAt     sql.NullTime
	CancelledAt     sql.NullTime
}

// RentalRow is a rental joined with its item's title.
type RentalRow struct {
	RentalRental
	ItemTitle string
}

type RentalReview struct {
	ID         uuid.UUID
	ItemID     uuid.UUID
	RentalID   uuid.UUID
	ReviewerID uuid.UUID
	Rating     int16
	Comment    string
	CreatedAt  time.Time
}
