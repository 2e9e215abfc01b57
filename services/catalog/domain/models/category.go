package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups items for browsing. Categories are seeded by migration
// and only ever deactivated, never deleted.
type Category struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description string
	Active      bool
	ItemCount   int // active items, filled by listings
	CreatedAt   time.Time
}
