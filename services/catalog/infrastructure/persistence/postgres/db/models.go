package db

import (
	"time"

	"github.com/google/uuid"
)

type CatalogCategory struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description string
	Active      bool
	CreatedAt   time.Time
}

type CatalogItem struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	CategoryID      uuid.UUID
	Title           string
	Description     string
	Size            string
	PricePerDay     int64
	SecurityDeposit int64
	Condition       string
	City            string
	Status          string
	Rating          float64
	ReviewsCount    int32
	Views           int32
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ItemRow is an item joined with its category.
type ItemRow struct {
	CatalogItem
	CategorySlug string
	CategoryName string
}

// CategoryRow is a category with its active item count.
type CategoryRow struct {
	CatalogCategory
	ItemCount int64
}
