package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/pkg/money"
	rentaldomain "github.com/rentrobe/rentrobe/services/rental/domain"
)

// PaymentStatus tracks settlement. Nothing gates on it yet.
type PaymentStatus string

const PaymentPending PaymentStatus = "pending"

// Rental is the booking aggregate: one renter, one item, one date range.
type Rental struct {
	ID              uuid.UUID
	ItemID          uuid.UUID
	RenterID        uuid.UUID
	OwnerID         uuid.UUID // copied from the item at request time
	Period          DateRange
	TotalAmount     money.Amount
	SecurityDeposit money.Amount
	Status          Status
	Message         string
	PaymentStatus   PaymentStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ApprovedAt      *time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
	CancelledAt     *time.Time

	// ItemTitle is filled in by reads for display; it is not persisted.
	ItemTitle string
}

// NewRental builds a pending rental of listing for renterID. Total is
// Period.Days() times the daily price; the deposit is copied from the listing.
// Callers enforce availability and conflict rules first.
func NewRental(listing *Listing, renterID uuid.UUID, period DateRange, message string, now time.Time) (*Rental, error) {
	total, err := listing.PricePerDay.Times(period.Days())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", rentaldomain.ErrAmountOverflow, err)
	}
	now = now.UTC()
	return &Rental{
		ID:              uuid.New(),
		ItemID:          listing.ID,
		RenterID:        renterID,
		OwnerID:         listing.OwnerID,
		Period:          period,
		TotalAmount:     total,
		SecurityDeposit: listing.SecurityDeposit,
		Status:          StatusPending,
		Message:         message,
		PaymentStatus:   PaymentPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Involves reports whether userID is the rental's renter or owner.
func (r *Rental) Involves(userID uuid.UUID) bool {
	return r.RenterID == userID || r.OwnerID == userID
}

// Apply moves the rental to the new status and stamps the matching
// timestamp. The caller checks CanTransitionTo first.
func (r *Rental) Apply(to Status, now time.Time) {
	now = now.UTC()
	switch to {
	case StatusApproved:
		r.ApprovedAt = &now
	case StatusActive:
		r.StartedAt = &now
	case StatusCompleted:
		r.CompletedAt = &now
	case StatusCancelled:
		r.CancelledAt = &now
	}
	r.Status = to
	r.UpdatedAt = now
}
