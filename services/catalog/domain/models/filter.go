package models

import (
	"strings"

	"github.com/rentrobe/rentrobe/pkg/money"
)

// ItemFilter narrows an item listing. Zero values do not filter.
type ItemFilter struct {
	CategorySlug string
	Size         Size
	MinPrice     money.Amount
	MaxPrice     money.Amount
	City         string // case-insensitive substring
	Search       string // case-insensitive substring of title or description
}

// Matches reports whether item passes every set filter. Stores that cannot
// push filters into a query use it directly.
func (f ItemFilter) Matches(item *Item) bool {
	if !item.Active {
		return false
	}
	if f.CategorySlug != "" && item.CategorySlug != f.CategorySlug {
		return false
	}
	if f.Size != "" && item.Size != f.Size {
		return false
	}
	if f.MinPrice > 0 && item.PricePerDay < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && item.PricePerDay > f.MaxPrice {
		return false
	}
	if f.City != "" && !ContainsFold(item.City, f.City) {
		return false
	}
	if f.Search != "" && !ContainsFold(item.Title.String(), f.Search) && !ContainsFold(item.Description, f.Search) {
		return false
	}
	return true
}

// ContainsFold reports whether substr occurs in s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
