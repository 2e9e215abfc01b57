package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/services/rental/domain/models"
)

// ListingRepository reads and updates the rental context's view of items.
type ListingRepository interface {
	// Get returns the listing or ErrItemNotFound.
	Get(ctx context.Context, itemID uuid.UUID) (*models.Listing, error)
	// GetForUpdate is Get plus a row lock held until the unit of work ends.
	// Concurrent requests for the same item serialise here.
	GetForUpdate(ctx context.Context, itemID uuid.UUID) (*models.Listing, error)
	UpdateStatus(ctx context.Context, itemID uuid.UUID, status models.ListingStatus) error
	UpdateRating(ctx context.Context, itemID uuid.UUID, rating float64, count int) error
}

// RentalRepository persists Rental aggregates.
type RentalRepository interface {
	Insert(ctx context.Context, rental *models.Rental) error
	// Get returns the rental or ErrRentalNotFound.
	Get(ctx context.Context, id uuid.UUID) (*models.Rental, error)
	// GetForUpdate is Get plus a row lock held until the unit of work ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Rental, error)
	// UpdateStatus persists Status, UpdatedAt and the transition timestamps.
	UpdateStatus(ctx context.Context, rental *models.Rental) error
	// ListBlocking returns the item's approved and active rentals.
	ListBlocking(ctx context.Context, itemID uuid.UUID) ([]*models.Rental, error)
	// ListByRenter and ListByOwner order newest request first.
	ListByRenter(ctx context.Context, renterID uuid.UUID) ([]*models.Rental, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Rental, error)
	// ListPendingStartingBefore returns pending rentals whose start date is before day.
	ListPendingStartingBefore(ctx context.Context, day time.Time) ([]*models.Rental, error)
}

// ReviewRepository persists reviews.
type ReviewRepository interface {
	// Insert returns ErrAlreadyReviewed on a duplicate (rental, reviewer) pair.
	Insert(ctx context.Context, review *models.Review) error
	Exists(ctx context.Context, rentalID, reviewerID uuid.UUID) (bool, error)
	// ListByItem orders newest first.
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*models.Review, error)
}

// EventPublisher records domain events inside the unit of work. They are
// delivered only if the unit of work commits.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, eventID uuid.UUID, event any) error
}

// UnitOfWork groups the repositories that must commit together.
type UnitOfWork interface {
	Listings() ListingRepository
	Rentals() RentalRepository
	Reviews() ReviewRepository
	Events() EventPublisher
}

// Store is the rental context's persistence boundary. Reads outside a
// transaction go through the plain accessors; mutations run in WithinTx,
// which commits when fn returns nil and rolls back otherwise.
type Store interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
	Listings() ListingRepository
	Rentals() RentalRepository
	Reviews() ReviewRepository
}
