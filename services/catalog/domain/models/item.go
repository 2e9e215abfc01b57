package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/pkg/money"
)

// ItemStatus is an item's availability. The rental context moves it between
// available and rented.
type ItemStatus string

const (
	ItemAvailable   ItemStatus = "available"
	ItemRented      ItemStatus = "rented"
	ItemUnavailable ItemStatus = "unavailable"
)

// DefaultCondition is used when a listing does not state one.
const DefaultCondition = "excellent"

// Item is the core aggregate for this bounded context: a garment listed
// for rent by its owner.
type Item struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	CategoryID      uuid.UUID
	CategorySlug    string // read-only, joined from the category
	CategoryName    string // read-only, joined from the category
	Title           ItemTitle
	Description     string
	Size            Size
	PricePerDay     money.Amount
	SecurityDeposit money.Amount
	Condition       string
	City            string
	Status          ItemStatus
	Rating          float64
	ReviewsCount    int
	Views           int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewItemParams carries the owner-supplied fields of a new listing.
type NewItemParams struct {
	OwnerID         uuid.UUID
	Category        *Category
	Title           ItemTitle
	Description     string
	Size            Size
	PricePerDay     money.Amount
	SecurityDeposit money.Amount
	Condition       string
	City            string
}

// NewItem constructs an available, active Item with a generated ID, no
// ratings and no views.
func NewItem(p NewItemParams, now time.Time) *Item {
	now = now.UTC()
	condition := p.Condition
	if condition == "" {
		condition = DefaultCondition
	}
	item := &Item{
		ID:              uuid.New(),
		OwnerID:         p.OwnerID,
		Title:           p.Title,
		Description:     p.Description,
		Size:            p.Size,
		PricePerDay:     p.PricePerDay,
		SecurityDeposit: p.SecurityDeposit,
		Condition:       condition,
		City:            p.City,
		Status:          ItemAvailable,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if p.Category != nil {
		item.CategoryID = p.Category.ID
		item.CategorySlug = p.Category.Slug
		item.CategoryName = p.Category.Name
	}
	return item
}
