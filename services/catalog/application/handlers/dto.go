package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/pkg/httpx"
	"github.com/rentrobe/rentrobe/services/catalog/domain/models"
)

// CategoryRef names an item's category.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Slug string    `json:"slug" example:"formal"`
	Name string    `json:"name" example:"Formal Wear"`
} // @name CategoryRef

// ItemResponse is the wire shape of an item. Amounts are whole rupees.
type ItemResponse struct {
	ID              uuid.UUID   `json:"id"               example:"123e4567-e89b-12d3-a456-426614174000"`
	OwnerID         uuid.UUID   `json:"owner_id"`
	Category        CategoryRef `json:"category"`
	Title           string      `json:"title"            example:"Velvet tuxedo"`
	Description     string      `json:"description"      example:"Dry cleaned after every rental"`
	Size            string      `json:"size"             example:"M"`
	PricePerDay     int64       `json:"price_per_day"    example:"800"`
	SecurityDeposit int64       `json:"security_deposit" example:"2000"`
	Condition       string      `json:"condition"        example:"excellent"`
	City            string      `json:"city"             example:"Mumbai"`
	Status          string      `json:"status"           example:"available"`
	Rating          float64     `json:"rating"           example:"4.5"`
	ReviewsCount    int         `json:"reviews_count"    example:"2"`
	Views           int         `json:"views"            example:"17"`
	CreatedAt       time.Time   `json:"created_at"`
} // @name ItemResponse

// ItemListResponse is one page of items.
type ItemListResponse struct {
	Items      []ItemResponse `json:"items"`
	Pagination httpx.PageMeta `json:"pagination"`
} // @name ItemListResponse

// OwnerItemsResponse lists the caller's items.
type OwnerItemsResponse struct {
	Items []ItemResponse `json:"items"`
	Count int            `json:"count" example:"3"`
} // @name OwnerItemsResponse

// CategoryResponse is the wire shape of a category.
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"        example:"Formal Wear"`
	Slug        string    `json:"slug"        example:"formal"`
	Description string    `json:"description" example:"Suits, tuxedos and gowns"`
	ItemCount   int       `json:"item_count"  example:"12"`
} // @name CategoryResponse

// CategoryListResponse wraps the active categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
} // @name CategoryListResponse

// SearchResponse carries quick-search matches and suggestions.
type SearchResponse struct {
	Items       []ItemResponse `json:"items"`
	Suggestions []string       `json:"suggestions" example:"Party Wear,party dress"`
} // @name SearchResponse

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:      item.ID,
		OwnerID: item.OwnerID,
		Category: CategoryRef{
			ID:   item.CategoryID,
			Slug: item.CategorySlug,
			Name: item.CategoryName,
		},
		Title:           item.Title.String(),
		Description:     item.Description,
		Size:            string(item.Size),
		PricePerDay:     item.PricePerDay.Major(),
		SecurityDeposit: item.SecurityDeposit.Major(),
		Condition:       item.Condition,
		City:            item.City,
		Status:          string(item.Status),
		Rating:          item.Rating,
		ReviewsCount:    item.ReviewsCount,
		Views:           item.Views,
		CreatedAt:       item.CreatedAt,
	}
}

func toItemResponses(items []*models.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = toItemResponse(item)
	}
	return out
}
