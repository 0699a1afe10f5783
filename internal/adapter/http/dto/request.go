package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/goloan/internal/adapter/render"
	"github.com/iho/goloan/internal/domain"
	"github.com/iho/goloan/internal/usecase"
)

// LoanRequest carries the loan terms shared by every endpoint.
type LoanRequest struct {
	LoanValue    decimal.Decimal `json:"loan_value"`
	Deposit      decimal.Decimal `json:"deposit"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TermYears    int             `json:"term_years"`
	Precision    *int32          `json:"precision,omitempty"`
}

// Places returns the requested rounding precision, defaulting to two places.
func (r *LoanRequest) Places() (int32, error) {
	if r.Precision == nil {
		return render.DefaultPlaces, nil
	}

	if err := render.ValidatePlaces(*r.Precision); err != nil {
		return 0, err
	}

	return *r.Precision, nil
}

// PaymentRequest represents a request for a monthly payment quote.
type PaymentRequest struct {
	LoanRequest
}

// ToUseCaseInput converts to use case input.
func (r *PaymentRequest) ToUseCaseInput() usecase.QuoteInput {
	return usecase.QuoteInput{
		HomeValue:         r.LoanValue.InexactFloat64(),
		Deposit:           r.Deposit.InexactFloat64(),
		AnnualRatePercent: r.InterestRate.InexactFloat64(),
		TermYears:         r.TermYears,
	}
}

// ScheduleRequest represents a request to compute a repayment schedule.
type ScheduleRequest struct {
	LoanRequest
	IncludeEarlyExitPenalty      *bool `json:"include_early_exit_penalty,omitempty"`
	IncludeFirst24MonthsInterest *bool `json:"include_first_24_months_interest,omitempty"`
}

// ToUseCaseInput converts to use case input. Optional columns default to on.
func (r *ScheduleRequest) ToUseCaseInput() usecase.CalculateScheduleInput {
	opts := domain.DefaultScheduleOptions()
	if r.IncludeEarlyExitPenalty != nil {
		opts.IncludeEarlyExitPenalty = *r.IncludeEarlyExitPenalty
	}
	if r.IncludeFirst24MonthsInterest != nil {
		opts.IncludeFirst24MonthsInterest = *r.IncludeFirst24MonthsInterest
	}

	return usecase.CalculateScheduleInput{
		HomeValue:         r.LoanValue.InexactFloat64(),
		Deposit:           r.Deposit.InexactFloat64(),
		AnnualRatePercent: r.InterestRate.InexactFloat64(),
		TermYears:         r.TermYears,
		Options:           opts,
	}
}
