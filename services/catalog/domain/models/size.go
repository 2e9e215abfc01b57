package models

import "fmt"

// Size is a garment size.
type Size string

// Sizes in ascending order.
var Sizes = []Size{"XS", "S", "M", "L", "XL", "XXL"}

// ParseSize accepts one of Sizes exactly.
func ParseSize(s string) (Size, error) {
	for _, v := range Sizes {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown size %q", s)
}
