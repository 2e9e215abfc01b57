package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_Messages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrItemNotFound, "item not found"},
		{ErrCategoryNotFound, "category not found"},
		{ErrInvalidItem, "invalid item"},
		{ErrPermission, "permission denied"},
		{ErrCategoryInactive, "invalid item: category is not active"},
	}
	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("unexpected message: %q, want %q", tt.err.Error(), tt.want)
		}
	}
}

func TestValidationErrors_WrapInvalidItem(t *testing.T) {
	for _, err := range []error{ErrInvalidItemTitle, ErrInvalidPrice, ErrInvalidSize, ErrCategoryInactive} {
		if !errors.Is(err, ErrInvalidItem) {
			t.Errorf("%v must wrap ErrInvalidItem", err)
		}
	}
}

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", ErrItemNotFound)
	if !errors.Is(wrapped, ErrItemNotFound) {
		t.Fatal("errors.Is must match wrapped ErrItemNotFound")
	}

	wrapped2 := fmt.Errorf("%w: %w", ErrInvalidItemTitle, errors.New("too long"))
	if !errors.Is(wrapped2, ErrInvalidItem) {
		t.Fatal("errors.Is must match double-wrapped ErrInvalidItem")
	}
}
