package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/services/catalog/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
// Reads return active items only.
type ItemRepository interface {
	// Save persists a new item and publishes ItemCreatedEvent in the same transaction.
	Save(ctx context.Context, item *models.Item) error

	// Get returns an active item or ErrItemNotFound.
	Get(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// List returns one page of items matching filter, newest first, and the
	// total number of matches.
	List(ctx context.Context, filter models.ItemFilter, opts QueryOpts) ([]*models.Item, int, error)

	// ListByOwner returns the owner's active items, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Item, error)

	// IncrementViews bumps the view counter and returns the new value.
	// Returns ErrItemNotFound for missing or inactive items.
	IncrementViews(ctx context.Context, id uuid.UUID) (int, error)

	// Deactivate soft-deletes the item and publishes ItemDeactivatedEvent in
	// the same transaction.
	Deactivate(ctx context.Context, item *models.Item) error
}

// CategoryRepository is the persistence interface for categories.
type CategoryRepository interface {
	// Get returns the category, active or not, or ErrCategoryNotFound.
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)

	// ListActive returns active categories by name with their active item counts.
	ListActive(ctx context.Context) ([]*models.Category, error)

	// Deactivate marks the category inactive. Returns ErrCategoryNotFound
	// for unknown slugs; deactivating twice is not an error.
	Deactivate(ctx context.Context, slug string) error
}
