package vehicle

import (
	"fmt"

	"moveline/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Class is the vehicle size class a customer can require for a move.
// It is a value object persisted as its string representation.
type Class string

const (
	// ClassSmall is a small van.
	ClassSmall Class = "small"
	// ClassMedium is a medium truck.
	ClassMedium Class = "medium"
	// ClassLarge is a large truck.
	ClassLarge Class = "large"
)

// ErrUnknownClass is returned when a vehicle class cannot be resolved,
// either because a string does not name a known class or because pricing
// needs a class and neither the order nor an assigned vehicle provides one.
var ErrUnknownClass = errs.NewValueIsInvalidError("vehicle class")

// perKmRates is the transport rate table in currency units per kilometer.
func perKmRates() map[Class]decimal.Decimal {
	return map[Class]decimal.Decimal{
		ClassSmall:  decimal.NewFromFloat(5.0),
		ClassMedium: decimal.NewFromFloat(7.5),
		ClassLarge:  decimal.NewFromFloat(10.0),
	}
}

// ParseClass converts a string to a Class, validating it names a known class.
func ParseClass(s string) (Class, error) {
	class := Class(s)
	if err := class.Validate(); err != nil {
		return "", err
	}
	return class, nil
}

// Validate checks that the class is one of the known size classes.
func (c Class) Validate() error {
	if _, ok := perKmRates()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"vehicle class",
			fmt.Errorf("%q is not a known vehicle class", string(c)),
		)
	}
	return nil
}

// String implements fmt.Stringer.
func (c Class) String() string {
	return string(c)
}

// PerKmRate returns the per-kilometer transport rate for the class.
func (c Class) PerKmRate() (decimal.Decimal, error) {
	rate, ok := perKmRates()[c]
	if !ok {
		return decimal.Decimal{}, ErrUnknownClass
	}
	return rate, nil
}
