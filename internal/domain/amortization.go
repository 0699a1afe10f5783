package domain

import (
	"fmt"
	"math"
)

// ValidateLoanParameters checks the loan invariants before any computation.
func ValidateLoanParameters(p LoanParameters) error {
	if !isFinite(p.Principal) || p.Principal <= 0 {
		return fmt.Errorf("%w: principal must be positive, got %v", ErrInvalidLoanParameters, p.Principal)
	}

	if !isFinite(p.AnnualRatePercent) || p.AnnualRatePercent < 0 {
		return fmt.Errorf("%w: annual rate must be non-negative, got %v", ErrInvalidLoanParameters, p.AnnualRatePercent)
	}

	if p.TermYears == 0 {
		return ErrInvalidTerm
	}

	if p.TermYears < 0 {
		return fmt.Errorf("%w: term must be at least 1 year, got %d", ErrInvalidLoanParameters, p.TermYears)
	}

	if p.TermYears > MaxTermYears {
		return fmt.Errorf("%w: term must not exceed %d years, got %d", ErrInvalidLoanParameters, MaxTermYears, p.TermYears)
	}

	return nil
}

// ComputeMonthlyPayment returns the fixed monthly payment that amortizes
// principal over termYears at annualRatePercent.
func ComputeMonthlyPayment(principal, annualRatePercent float64, termYears int) (float64, error) {
	params := LoanParameters{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TermYears:         termYears,
	}

	if err := ValidateLoanParameters(params); err != nil {
		return 0, err
	}

	payment := monthlyPayment(params)
	if !isFinite(payment) {
		return 0, fmt.Errorf("%w: rate %v overflows over %d periods", ErrInvalidLoanParameters, annualRatePercent, params.Periods())
	}

	return payment, nil
}

// BuildSchedule computes the full amortization schedule in a single pass.
// Values are returned at full precision; rounding belongs to the caller.
//
// Each balance is evaluated in closed form, B_k = P*(G_n-G_k)/G_n with
// G_k = (1+r)^k - 1, so rounding error does not compound across periods and
// the final balance is exactly zero.
func BuildSchedule(params LoanParameters, opts ScheduleOptions) (*AmortizationResult, error) {
	payment, err := ComputeMonthlyPayment(params.Principal, params.AnnualRatePercent, params.TermYears)
	if err != nil {
		return nil, err
	}

	n := params.Periods()
	r := params.MonthlyRate()
	total := growth(r, n)

	records := make([]PaymentRecord, 0, n)
	previousGrowth := 0.0

	var interestFirst24 float64

	for i := 1; i <= n; i++ {
		g := growth(r, i)
		balance := params.Principal * (total - g) / total
		principal := params.Principal * (g - previousGrowth) / total
		interest := payment - principal

		record := PaymentRecord{
			PeriodIndex:      i,
			YearIndex:        YearIndex(i),
			Payment:          payment,
			Principal:        principal,
			Interest:         interest,
			RemainingBalance: balance,
		}

		if opts.IncludeEarlyExitPenalty {
			record.EarlyExitPenalty = balance * EarlyExitPenaltyRate
		}

		if opts.IncludeFirst24MonthsInterest && i <= FirstInterestWindow {
			interestFirst24 += interest
		}

		records = append(records, record)
		previousGrowth = g
	}

	totalPaid := payment * float64(n)

	return &AmortizationResult{
		Parameters:            params,
		Options:               opts,
		Records:               records,
		MonthlyPayment:        payment,
		TotalPaid:             totalPaid,
		TotalInterest:         totalPaid - params.Principal,
		InterestFirst24Months: interestFirst24,
	}, nil
}

// YearIndex returns the 1-based year a 1-based period falls in.
func YearIndex(period int) int {
	return (period + MonthsPerYear - 1) / MonthsPerYear
}

// PrincipalFromHomeValue subtracts a deposit from the purchase price.
func PrincipalFromHomeValue(homeValue, deposit float64) (float64, error) {
	if !isFinite(homeValue) || homeValue <= 0 {
		return 0, fmt.Errorf("%w: home value must be positive, got %v", ErrInvalidLoanParameters, homeValue)
	}

	if !isFinite(deposit) || deposit < 0 {
		return 0, fmt.Errorf("%w: deposit must be non-negative, got %v", ErrInvalidLoanParameters, deposit)
	}

	if deposit >= homeValue {
		return 0, ErrDepositExceedsValue
	}

	return homeValue - deposit, nil
}

func monthlyPayment(p LoanParameters) float64 {
	n := p.Periods()
	r := p.MonthlyRate()

	if r == 0 {
		return p.Principal / float64(n)
	}

	g := growth(r, n)

	return p.Principal * r * (g + 1) / g
}

// growth returns (1+r)^k - 1. At r == 0 it returns k, the limit of the
// balance formula, so zero-rate schedules use the same closed form.
// expm1/log1p keeps precision for very small rates.
func growth(r float64, k int) float64 {
	if r == 0 {
		return float64(k)
	}
	return math.Expm1(float64(k) * math.Log1p(r))
}

func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100 / MonthsPerYear
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
