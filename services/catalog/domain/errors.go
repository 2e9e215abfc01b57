package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the catalog domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist or was deactivated.
	ErrItemNotFound = errors.New("item not found")

	// ErrCategoryNotFound indicates the requested category does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInvalidItem indicates the item violates listing rules.
	ErrInvalidItem = errors.New("invalid item")

	// ErrPermission indicates the caller may not act on the item.
	ErrPermission = errors.New("permission denied")
)

// Specific validation failures. Each wraps ErrInvalidItem.
var (
	ErrInvalidItemTitle = fmt.Errorf("%w: title", ErrInvalidItem)
	ErrInvalidPrice     = fmt.Errorf("%w: price", ErrInvalidItem)
	ErrInvalidSize      = fmt.Errorf("%w: size", ErrInvalidItem)
	ErrCategoryInactive = fmt.Errorf("%w: category is not active", ErrInvalidItem)
)
