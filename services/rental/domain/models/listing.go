package models

import (
	"math"

	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/pkg/money"
)

// ListingStatus mirrors the catalog item's availability.
type ListingStatus string

const (
	ListingAvailable   ListingStatus = "available"
	ListingRented      ListingStatus = "rented"
	ListingUnavailable ListingStatus = "unavailable"
)

// Listing is the rental context's view of a catalog item: the fields the
// booking engine reads (price, owner, availability) and the derived fields it
// writes (status, rating).
type Listing struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Title           string
	PricePerDay     money.Amount
	SecurityDeposit money.Amount
	Status          ListingStatus
	Active          bool
	Rating          float64
	ReviewsCount    int
}

// Rentable reports whether new rental requests may target the listing.
func (l *Listing) Rentable() bool {
	return l.Active && l.Status == ListingAvailable
}

// ApplyRating folds rating into the running mean, rounded to one decimal.
func (l *Listing) ApplyRating(rating int) {
	total := l.Rating*float64(l.ReviewsCount) + float64(rating)
	l.ReviewsCount++
	l.Rating = math.Round(total/float64(l.ReviewsCount)*10) / 10
}
