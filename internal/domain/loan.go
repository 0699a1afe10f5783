package domain

import "time"

const (
	// MonthsPerYear is the number of payment periods in one year of term.
	MonthsPerYear = 12

	// EarlyExitPenaltyRate is the fraction of the remaining balance charged
	// when the loan is repaid early.
	EarlyExitPenaltyRate = 0.015

	// FirstInterestWindow is the number of leading periods summed into
	// AmortizationResult.InterestFirst24Months.
	FirstInterestWindow = 24

	// MaxTermYears bounds the term so the period count and the schedule
	// allocation stay within int range.
	MaxTermYears = 100
)

// LoanParameters describes a fixed-rate amortizing loan.
type LoanParameters struct {
	Principal         float64
	AnnualRatePercent float64
	TermYears         int
}

// Periods returns the number of monthly payments over the loan's term.
func (p LoanParameters) Periods() int {
	return p.TermYears * MonthsPerYear
}

// MonthlyRate returns the periodic (monthly) rate as a decimal fraction.
func (p LoanParameters) MonthlyRate() float64 {
	return monthlyRate(p.AnnualRatePercent)
}

// ScheduleOptions toggles the optional derived columns of a schedule.
type ScheduleOptions struct {
	IncludeEarlyExitPenalty      bool
	IncludeFirst24MonthsInterest bool
}

// DefaultScheduleOptions enables every optional column.
func DefaultScheduleOptions() ScheduleOptions {
	return ScheduleOptions{
		IncludeEarlyExitPenalty:      true,
		IncludeFirst24MonthsInterest: true,
	}
}

// PaymentRecord is a single period of an amortization schedule.
type PaymentRecord struct {
	PeriodIndex      int
	YearIndex        int
	Payment          float64
	Principal        float64
	Interest         float64
	RemainingBalance float64
	// EarlyExitPenalty is zero unless ScheduleOptions.IncludeEarlyExitPenalty is set.
	EarlyExitPenalty float64
}

// AmortizationResult is the full schedule plus its aggregates.
type AmortizationResult struct {
	Parameters            LoanParameters
	Options               ScheduleOptions
	Records               []PaymentRecord
	MonthlyPayment        float64
	TotalPaid             float64
	TotalInterest         float64
	InterestFirst24Months float64
}

// Calculation is a schedule computed on behalf of a caller.
type Calculation struct {
	ID        string
	HomeValue float64
	Deposit   float64
	Result    *AmortizationResult
	CreatedAt time.Time
}
