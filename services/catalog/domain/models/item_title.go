package models

import (
	"fmt"
	"unicode/utf8"
)

// ItemTitle is a value object representing a valid listing title.
// Encapsulates the length rule: 1 <= runes <= 200.
type ItemTitle string

const (
	minItemTitleLength = 1
	maxItemTitleLength = 200
)

// NewItemTitle constructs a valid ItemTitle or returns an error if constraints are violated.
func NewItemTitle(s string) (ItemTitle, error) {
	n := utf8.RuneCountInString(s)
	if n < minItemTitleLength {
		return "", fmt.Errorf("title must be at least %d character", minItemTitleLength)
	}
	if n > maxItemTitleLength {
		return "", fmt.Errorf("title must not exceed %d characters", maxItemTitleLength)
	}
	return ItemTitle(s), nil
}

// String returns the underlying string value.
func (t ItemTitle) String() string {
	return string(t)
}
