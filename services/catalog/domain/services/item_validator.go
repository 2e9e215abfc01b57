// Package services contains stateless domain services for the catalog bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/pkg/money"
	catalogdomain "github.com/rentrobe/rentrobe/services/catalog/domain"
	"github.com/rentrobe/rentrobe/services/catalog/domain/models"
)

// ValidateTitle enforces business rules for ItemTitle beyond the length
// constraint enforced by the ItemTitle constructor.
//
// Business rules:
//   - No leading or trailing whitespace
//   - No control characters (Unicode category Cc)
//   - No consecutive spaces
//   - Must not be only whitespace characters
func ValidateTitle(title models.ItemTitle) error {
	s := title.String()

	if s != strings.TrimSpace(s) {
		return fmt.Errorf("title must not have leading or trailing whitespace")
	}

	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("title must not be only whitespace")
	}

	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("title must not contain control characters")
		}
	}

	if strings.Contains(s, "  ") {
		return fmt.Errorf("title must not contain consecutive spaces")
	}

	return nil
}

// ValidateItemForCreation performs cross-field validation on a new Item
// before it is persisted. Errors wrap the matching catalog sentinel.
func ValidateItemForCreation(item *models.Item, category *models.Category) error {
	if item == nil {
		return fmt.Errorf("%w: item cannot be nil", catalogdomain.ErrInvalidItem)
	}

	if err := ValidateTitle(item.Title); err != nil {
		return fmt.Errorf("%w: %w", catalogdomain.ErrInvalidItemTitle, err)
	}

	if _, err := models.ParseSize(string(item.Size)); err != nil {
		return fmt.Errorf("%w: %w", catalogdomain.ErrInvalidSize, err)
	}

	if item.PricePerDay <= 0 {
		return fmt.Errorf("%w: price per day must be positive", catalogdomain.ErrInvalidPrice)
	}
	if item.SecurityDeposit < 0 {
		return fmt.Errorf("%w: security deposit must not be negative", catalogdomain.ErrInvalidPrice)
	}
	if item.PricePerDay > money.MaxAmount || item.SecurityDeposit > money.MaxAmount {
		return fmt.Errorf("%w: amounts are capped at %d", catalogdomain.ErrInvalidPrice, money.MaxMajor)
	}

	if category == nil || category.ID != item.CategoryID {
		return fmt.Errorf("%w: category must be set", catalogdomain.ErrInvalidItem)
	}
	if !category.Active {
		return fmt.Errorf("%w: %s", catalogdomain.ErrCategoryInactive, category.Slug)
	}

	if item.OwnerID == uuid.Nil {
		return fmt.Errorf("%w: owner_id must be set", catalogdomain.ErrInvalidItem)
	}

	if item.ID == uuid.Nil {
		return fmt.Errorf("%w: id must be set", catalogdomain.ErrInvalidItem)
	}

	return nil
}
