package domain

import (
	"errors"
	"testing"
)

func TestRequestLimitsValidate(t *testing.T) {
	t.Parallel()

	limits := DefaultRequestLimits()

	t.Run("calculator defaults accepted", func(t *testing.T) {
		if err := limits.Validate(300000, 2.5, 25); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("zero rate accepted by default", func(t *testing.T) {
		if err := limits.Validate(300000, 0, 25); err != nil {
			t.Fatalf("expected zero rate to be accepted, got %v", err)
		}
	})

	t.Run("loan value below minimum", func(t *testing.T) {
		err := limits.Validate(99999, 2.5, 25)
		if !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("expected ErrOutOfRange, got %v", err)
		}
	})

	t.Run("loan value above maximum", func(t *testing.T) {
		err := limits.Validate(DefaultMaxHomeValue+1, 2.5, 25)
		if !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("expected ErrOutOfRange, got %v", err)
		}
	})

	t.Run("rate above maximum", func(t *testing.T) {
		err := limits.Validate(300000, 101, 25)
		if !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("expected ErrOutOfRange, got %v", err)
		}
	})

	t.Run("term outside bounds", func(t *testing.T) {
		for _, term := range []int{0, 4, 36} {
			if err := limits.Validate(300000, 2.5, term); !errors.Is(err, ErrOutOfRange) {
				t.Fatalf("expected ErrOutOfRange for term %d, got %v", term, err)
			}
		}
	})

	t.Run("minimum rate enforced when configured", func(t *testing.T) {
		strict := limits
		strict.MinRatePercent = 1
		if err := strict.Validate(300000, 0.5, 25); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("expected ErrOutOfRange, got %v", err)
		}
	})

	t.Run("zero maximum disables the upper bound", func(t *testing.T) {
		open := limits
		open.MaxHomeValue = 0
		if err := open.Validate(5e9, 2.5, 25); err != nil {
			t.Fatalf("expected no upper bound, got %v", err)
		}
	})
}
