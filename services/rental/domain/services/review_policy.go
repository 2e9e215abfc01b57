package services

import (
	"fmt"

	"github.com/google/uuid"

	rentaldomain "github.com/rentrobe/rentrobe/services/rental/domain"
	"github.com/rentrobe/rentrobe/services/rental/domain/models"
)

// CheckReviewer verifies reviewerID may review rental: they must be its
// renter and the rental must be completed. The duplicate and rating checks
// follow in the application service.
func CheckReviewer(rental *models.Rental, reviewerID uuid.UUID) error {
	if rental.RenterID != reviewerID {
		return fmt.Errorf("%w: only the renter can review this rental", rentaldomain.ErrPermission)
	}
	if rental.Status != models.StatusCompleted {
		return rentaldomain.ErrNotCompleted
	}
	return nil
}

// CheckRating verifies rating lies in [MinRating, MaxRating].
func CheckRating(rating int) error {
	if rating < models.MinRating || rating > models.MaxRating {
		return fmt.Errorf("%w (got %d)", rentaldomain.ErrInvalidRating, rating)
	}
	return nil
}
