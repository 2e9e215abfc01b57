// Package money holds the minor-unit amount type shared by the catalog and
// rental contexts. Amounts are stored and computed in paise; the HTTP
// boundary speaks whole rupees.
package money

import (
	"errors"
	"fmt"
	"math"
)

// MinorPerMajor is the number of minor units (paise) in one major unit (rupee).
const MinorPerMajor = 100

// MaxMajor is the largest whole-rupee value accepted at the boundary (one crore).
const MaxMajor = 10_000_000

// MaxAmount is MaxMajor in minor units.
const MaxAmount = Amount(MaxMajor * MinorPerMajor)

// ErrOutOfRange reports an amount outside 0..MaxMajor or an overflowing product.
var ErrOutOfRange = errors.New("amount out of range")

// Amount is a monetary value in minor currency units.
type Amount int64

// FromMajor converts a whole major-unit value into an Amount. Values below
// zero or above MaxMajor are rejected rather than wrapped.
func FromMajor(major int64) (Amount, error) {
	if major < 0 || major > MaxMajor {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, major)
	}
	return Amount(major * MinorPerMajor), nil
}

// MustFromMajor is FromMajor for constants; it panics on an out-of-range value.
func MustFromMajor(major int64) Amount {
	a, err := FromMajor(major)
	if err != nil {
		panic(err)
	}
	return a
}

// Major returns the amount in whole major units, truncating any minor remainder.
func (a Amount) Major() int64 {
	return int64(a) / MinorPerMajor
}

// Minor returns the raw minor-unit value.
func (a Amount) Minor() int64 {
	return int64(a)
}

// Times multiplies the amount by n, e.g. a daily price by a number of days.
// Negative operands and products that do not fit in an int64 are rejected.
func (a Amount) Times(n int) (Amount, error) {
	if a < 0 || n < 0 {
		return 0, fmt.Errorf("%w: %d x %d", ErrOutOfRange, a, n)
	}
	if n != 0 && int64(a) > math.MaxInt64/int64(n) {
		return 0, fmt.Errorf("%w: %d x %d overflows", ErrOutOfRange, a, n)
	}
	return a * Amount(n), nil
}
