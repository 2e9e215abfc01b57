package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a renter's rating of a completed rental.
type Review struct {
	ID         uuid.UUID
	ItemID     uuid.UUID
	RentalID   uuid.UUID
	ReviewerID uuid.UUID
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

// NewReview builds a review of rental by its renter.
func NewReview(rental *Rental, rating int, comment string, now time.Time) *Review {
	return &Review{
		ID:         uuid.New(),
		ItemID:     rental.ItemID,
		RentalID:   rental.ID,
		ReviewerID: rental.RenterID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  now.UTC(),
	}
}
