package domain

import (
	"fmt"
)

// Default request bounds, matching the calculator's input widgets.
const (
	DefaultMinHomeValue   = 100000
	DefaultMaxHomeValue   = 100000000
	DefaultMinRatePercent = 0
	DefaultMaxRatePercent = 100
	DefaultMinTermYears   = 5
	DefaultMaxTermYears   = 35
)

// RequestLimits bounds the values a caller may submit. It is applied at the
// service edge, on top of the engine's own invariants.
type RequestLimits struct {
	MinHomeValue   float64
	MaxHomeValue   float64
	MinRatePercent float64
	MaxRatePercent float64
	MinTermYears   int
	MaxTermYears   int
}

// DefaultRequestLimits returns the default request bounds.
func DefaultRequestLimits() RequestLimits {
	return RequestLimits{
		MinHomeValue:   DefaultMinHomeValue,
		MaxHomeValue:   DefaultMaxHomeValue,
		MinRatePercent: DefaultMinRatePercent,
		MaxRatePercent: DefaultMaxRatePercent,
		MinTermYears:   DefaultMinTermYears,
		MaxTermYears:   DefaultMaxTermYears,
	}
}

// Validate checks a request against the limits.
func (l RequestLimits) Validate(homeValue, annualRatePercent float64, termYears int) error {
	if homeValue < l.MinHomeValue {
		return fmt.Errorf("%w: loan value must be at least %.0f", ErrOutOfRange, l.MinHomeValue)
	}

	if l.MaxHomeValue > 0 && homeValue > l.MaxHomeValue {
		return fmt.Errorf("%w: loan value must not exceed %.0f", ErrOutOfRange, l.MaxHomeValue)
	}

	if annualRatePercent < l.MinRatePercent {
		return fmt.Errorf("%w: interest rate must be at least %.2f%%", ErrOutOfRange, l.MinRatePercent)
	}

	if l.MaxRatePercent > 0 && annualRatePercent > l.MaxRatePercent {
		return fmt.Errorf("%w: interest rate must not exceed %.2f%%", ErrOutOfRange, l.MaxRatePercent)
	}

	if termYears < l.MinTermYears || (l.MaxTermYears > 0 && termYears > l.MaxTermYears) {
		return fmt.Errorf("%w: term must be between %d and %d years", ErrOutOfRange, l.MinTermYears, l.MaxTermYears)
	}

	return nil
}
