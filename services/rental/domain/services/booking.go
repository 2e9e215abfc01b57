// Package services contains stateless domain services for the rental bounded
// context. They decide whether a request or transition is allowed; loading
// and persisting state is the application layer's job.
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	rentaldomain "github.com/rentrobe/rentrobe/services/rental/domain"
	"github.com/rentrobe/rentrobe/services/rental/domain/models"
)

// CheckRequest validates a new rental request against the listing and the
// calendar. Checks run in order: availability, self-rental, start date, date
// ordering, length. today must already be truncated with models.Today.
func CheckRequest(listing *models.Listing, renterID uuid.UUID, period models.DateRange, today time.Time) error {
	if !listing.Rentable() {
		return rentaldomain.ErrItemUnavailable
	}
	if listing.OwnerID == renterID {
		return rentaldomain.ErrSelfRental
	}
	if period.Start.Before(today) {
		return rentaldomain.ErrStartInPast
	}
	if !period.Valid() {
		return rentaldomain.ErrEndBeforeStart
	}
	if period.Days() > rentaldomain.MaxRentalDays {
		return rentaldomain.ErrRentalTooLong
	}
	return nil
}

// FindConflict returns the first blocking rental whose dates overlap period,
// ignoring the rental with id skip (uuid.Nil to ignore none).
func FindConflict(existing []*models.Rental, period models.DateRange, skip uuid.UUID) *models.Rental {
	for _, r := range existing {
		if r.ID == skip || !r.Status.Blocks() {
			continue
		}
		if r.Period.Overlaps(period) {
			return r
		}
	}
	return nil
}

// CheckConflicts wraps FindConflict as an error.
func CheckConflicts(existing []*models.Rental, period models.DateRange, skip uuid.UUID) error {
	if c := FindConflict(existing, period, skip); c != nil {
		return fmt.Errorf("%w (rental %s, %s)", rentaldomain.ErrDateOverlap, c.ID, c.Period)
	}
	return nil
}

// CheckTransition authorises actorID to move rental to status to.
// Only the item owner may drive transitions.
func CheckTransition(rental *models.Rental, actorID uuid.UUID, to models.Status) error {
	if rental.OwnerID != actorID {
		return fmt.Errorf("%w: only the item owner can change rental status", rentaldomain.ErrPermission)
	}
	if !rental.Status.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s → %s", rentaldomain.ErrInvalidTransition, rental.Status, to)
	}
	return nil
}

// HasOtherActive reports whether any rental other than skip is active.
func HasOtherActive(rentals []*models.Rental, skip uuid.UUID) bool {
	for _, r := range rentals {
		if r.ID != skip && r.Status == models.StatusActive {
			return true
		}
	}
	return false
}
