// Package errhttp maps domain sentinel errors to HTTP status codes and
// machine-readable error codes.
// Add a rule to rules for each new domain sentinel error. Specific errors
// come before the category they wrap.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/rentrobe/rentrobe/pkg/httpx"
	catalogdomain "github.com/rentrobe/rentrobe/services/catalog/domain"
	rentaldomain "github.com/rentrobe/rentrobe/services/rental/domain"
)

type rule struct {
	target error
	status int
	code   string
}

var rules = []rule{
	// rental
	{rentaldomain.ErrAmountOverflow, http.StatusUnprocessableEntity, "amount_too_large"},
	{rentaldomain.ErrValidation, http.StatusUnprocessableEntity, "validation_error"},
	{rentaldomain.ErrItemNotFound, http.StatusNotFound, "item_not_found"},
	{rentaldomain.ErrRentalNotFound, http.StatusNotFound, "rental_not_found"},
	{rentaldomain.ErrPermission, http.StatusForbidden, "forbidden"},
	{rentaldomain.ErrDateOverlap, http.StatusConflict, "date_overlap"},
	{rentaldomain.ErrSelfRental, http.StatusConflict, "self_rental"},
	{rentaldomain.ErrItemUnavailable, http.StatusConflict, "item_unavailable"},
	{rentaldomain.ErrItemInUse, http.StatusConflict, "item_in_use"},
	{rentaldomain.ErrConflict, http.StatusConflict, "conflict"},
	{rentaldomain.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{rentaldomain.ErrAlreadyReviewed, http.StatusConflict, "already_reviewed"},
	{rentaldomain.ErrNotCompleted, http.StatusConflict, "not_completed"},
	{rentaldomain.ErrInvalidRating, http.StatusUnprocessableEntity, "invalid_rating"},
	{rentaldomain.ErrStartInPast, http.StatusUnprocessableEntity, "start_in_past"},
	{rentaldomain.ErrEndBeforeStart, http.StatusUnprocessableEntity, "end_before_start"},
	{rentaldomain.ErrRentalTooLong, http.StatusUnprocessableEntity, "rental_too_long"},
	{rentaldomain.ErrDateRange, http.StatusUnprocessableEntity, "invalid_date_range"},

	// catalog
	{catalogdomain.ErrItemNotFound, http.StatusNotFound, "item_not_found"},
	{catalogdomain.ErrCategoryNotFound, http.StatusNotFound, "category_not_found"},
	{catalogdomain.ErrPermission, http.StatusForbidden, "forbidden"},
	{catalogdomain.ErrInvalidItemTitle, http.StatusUnprocessableEntity, "invalid_title"},
	{catalogdomain.ErrInvalidPrice, http.StatusUnprocessableEntity, "invalid_price"},
	{catalogdomain.ErrInvalidSize, http.StatusUnprocessableEntity, "invalid_size"},
	{catalogdomain.ErrCategoryInactive, http.StatusUnprocessableEntity, "category_inactive"},
	{catalogdomain.ErrInvalidItem, http.StatusUnprocessableEntity, "invalid_item"},
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Unrecognized errors become 500 with a generic message so internals do not leak.
func WriteError(w http.ResponseWriter, err error) {
	status, code := Classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	httpx.JSONErrorCode(w, status, msg, code)
}

// Classify returns the HTTP status and error code for err.
func Classify(err error) (int, string) {
	for _, r := range rules {
		if errors.Is(err, r.target) {
			return r.status, r.code
		}
	}
	return http.StatusInternalServerError, "internal"
}
