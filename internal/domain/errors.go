package domain

import (
	"errors"
	"fmt"
)

var (
	// Loan errors
	ErrInvalidLoanParameters = errors.New("invalid loan parameters")
	ErrInvalidTerm           = fmt.Errorf("%w: term must yield at least one payment period", ErrInvalidLoanParameters)
	ErrDepositExceedsValue   = fmt.Errorf("%w: deposit must be less than the home value", ErrInvalidLoanParameters)

	// Request errors
	ErrOutOfRange = errors.New("value out of accepted range")
)
