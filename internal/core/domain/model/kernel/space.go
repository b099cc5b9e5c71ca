package kernel

import (
	"fmt"

	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// spaceTolerance absorbs rounding noise in volumetric comparisons. It is a
// comparison slack, not a unit of capacity.
var spaceTolerance = decimal.New(1, -4)

// Space is a volumetric quantity (train capacity, product unit space, used space).
// It is backed by an arbitrary-precision decimal and is never negative.
type Space struct {
	value decimal.Decimal
}

// ZeroSpace returns an empty volume.
func ZeroSpace() Space {
	return Space{value: decimal.Zero}
}

// NewSpace validates that value is not negative.
func NewSpace(value decimal.Decimal) (Space, error) {
	if value.IsNegative() {
		return Space{}, errs.NewValueIsInvalidErrorWithCause(
			"space",
			fmt.Errorf("%s is negative", value.String()),
		)
	}
	return Space{value: value}, nil
}

// SpaceFromFloat is a convenience for request payloads and tests.
func SpaceFromFloat(value float64) (Space, error) {
	return NewSpace(decimal.NewFromFloat(value))
}

// SpaceFromString parses a decimal literal such as "12.5".
func SpaceFromString(value string) (Space, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Space{}, errs.NewValueIsInvalidErrorWithCause("space", err)
	}
	return NewSpace(d)
}

func (s Space) Decimal() decimal.Decimal {
	return s.value
}

func (s Space) Float64() float64 {
	f, _ := s.value.Float64()
	return f
}

func (s Space) String() string {
	return s.value.String()
}

func (s Space) IsZero() bool {
	return s.value.IsZero()
}

func (s Space) IsPositive() bool {
	return s.value.IsPositive()
}

func (s Space) Add(other Space) Space {
	return Space{value: s.value.Add(other.value)}
}

// Sub never goes below zero.
func (s Space) Sub(other Space) Space {
	diff := s.value.Sub(other.value)
	if diff.IsNegative() {
		return ZeroSpace()
	}
	return Space{value: diff}
}

// Times returns the space taken by qty units of s.
func (s Space) Times(qty int) Space {
	return Space{value: s.value.Mul(decimal.NewFromInt(int64(qty)))}
}

// Exceeds reports whether s is larger than limit by more than the comparison tolerance.
func (s Space) Exceeds(limit Space) bool {
	return s.value.Sub(limit.value).GreaterThan(spaceTolerance)
}

// IsEqual compares within the comparison tolerance.
func (s Space) IsEqual(other Space) bool {
	return s.value.Sub(other.value).Abs().LessThanOrEqual(spaceTolerance)
}

// Ratio returns s/total as a percentage rounded to two decimals; zero when total is zero.
func (s Space) Ratio(total Space) float64 {
	if total.value.IsZero() {
		return 0
	}
	pct, _ := s.value.Div(total.value).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return pct
}
