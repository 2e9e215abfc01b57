package domain

import (
	"errors"
	"fmt"
)

// MaxRentalDays caps the billable length of a single rental.
const MaxRentalDays = 365

// Sentinel errors for the rental domain. Use errors.Is() to check these.
// Specific conflict and date-range errors wrap their category so callers can
// match either the category or the exact reason.
var (
	// ErrValidation indicates a missing or malformed field.
	ErrValidation = errors.New("validation failed")

	// ErrItemNotFound indicates the referenced item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrRentalNotFound indicates the referenced rental does not exist.
	ErrRentalNotFound = errors.New("rental not found")

	// ErrPermission indicates the actor may not perform this action on the rental.
	ErrPermission = errors.New("permission denied")

	// ErrConflict is the category for requests refused because of item state.
	ErrConflict = errors.New("rental conflict")

	// ErrInvalidTransition indicates a status change outside the transition table.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyReviewed indicates the reviewer already reviewed this rental.
	ErrAlreadyReviewed = errors.New("rental already reviewed")

	// ErrInvalidRating indicates a rating outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrNotCompleted indicates a review was attempted before the rental completed.
	ErrNotCompleted = errors.New("rental is not completed")

	// ErrDateRange is the category for invalid rental dates.
	ErrDateRange = errors.New("invalid date range")
)

var (
	// ErrDateOverlap: requested dates overlap an approved or active rental.
	ErrDateOverlap = fmt.Errorf("%w: item is already booked for these dates", ErrConflict)

	// ErrSelfRental: renters cannot rent their own items.
	ErrSelfRental = fmt.Errorf("%w: cannot rent your own item", ErrConflict)

	// ErrItemUnavailable: the item is not in the available state.
	ErrItemUnavailable = fmt.Errorf("%w: item is not available for rent", ErrConflict)

	// ErrItemInUse: another rental of the item is already active.
	ErrItemInUse = fmt.Errorf("%w: item is out on another rental", ErrConflict)

	// ErrStartInPast: start date is before today.
	ErrStartInPast = fmt.Errorf("%w: start date cannot be in the past", ErrDateRange)

	// ErrEndBeforeStart: end date precedes start date.
	ErrEndBeforeStart = fmt.Errorf("%w: end date must not be before start date", ErrDateRange)

	// ErrRentalTooLong: the range bills more than MaxRentalDays.
	ErrRentalTooLong = fmt.Errorf("%w: rental cannot exceed %d days", ErrDateRange, MaxRentalDays)

	// ErrAmountOverflow: the rental total does not fit the amount type.
	ErrAmountOverflow = fmt.Errorf("%w: rental total is too large", ErrValidation)
)

// ConflictReason returns a short label for a conflict error, used as a
// metric attribute. Non-conflict errors yield "".
func ConflictReason(err error) string {
	switch {
	case errors.Is(err, ErrDateOverlap):
		return "date_overlap"
	case errors.Is(err, ErrSelfRental):
		return "self_rental"
	case errors.Is(err, ErrItemUnavailable):
		return "item_unavailable"
	case errors.Is(err, ErrItemInUse):
		return "item_in_use"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return ""
	}
}
