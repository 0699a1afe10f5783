package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/iho/goloan/internal/domain"
)

// ScheduleUseCase computes repayment schedules for API and CLI callers.
type ScheduleUseCase struct {
	limits   domain.RequestLimits
	idGen    IDGenerator
	recorder ScheduleRecorder
	logger   zerolog.Logger
	now      func() time.Time
}

// NewScheduleUseCase creates a new ScheduleUseCase.
func NewScheduleUseCase(limits domain.RequestLimits, idGen IDGenerator, recorder ScheduleRecorder, logger zerolog.Logger) *ScheduleUseCase {
	return &ScheduleUseCase{
		limits:   limits,
		idGen:    idGen,
		recorder: recorder,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CalculateScheduleInput represents input for computing a schedule.
type CalculateScheduleInput struct {
	HomeValue         float64
	Deposit           float64
	AnnualRatePercent float64
	TermYears         int
	Options           domain.ScheduleOptions
}

// QuoteInput represents input for a monthly payment quote.
type QuoteInput struct {
	HomeValue         float64
	Deposit           float64
	AnnualRatePercent float64
	TermYears         int
}

// Quote is a monthly payment without the per-period breakdown.
type Quote struct {
	Parameters     domain.LoanParameters
	MonthlyPayment float64
	TotalPaid      float64
	TotalInterest  float64
	Summary        string
}

// YearlyReport is a calculation grouped by year.
type YearlyReport struct {
	Calculation *domain.Calculation
	Years       []YearSummary
}

// Quote computes the monthly payment for a loan.
func (uc *ScheduleUseCase) Quote(ctx context.Context, input QuoteInput) (*Quote, error) {
	params, err := uc.loanParameters(input.HomeValue, input.Deposit, input.AnnualRatePercent, input.TermYears)
	if err != nil {
		uc.recordError(ctx, err)
		return nil, err
	}

	payment, err := domain.ComputeMonthlyPayment(params.Principal, params.AnnualRatePercent, params.TermYears)
	if err != nil {
		uc.recordError(ctx, err)
		return nil, err
	}

	totalPaid := payment * float64(params.Periods())

	return &Quote{
		Parameters:     params,
		MonthlyPayment: payment,
		TotalPaid:      totalPaid,
		TotalInterest:  totalPaid - params.Principal,
		Summary:        BorrowingSummary(params),
	}, nil
}

// Calculate computes the full amortization schedule.
func (uc *ScheduleUseCase) Calculate(ctx context.Context, input CalculateScheduleInput) (*domain.Calculation, error) {
	params, err := uc.loanParameters(input.HomeValue, input.Deposit, input.AnnualRatePercent, input.TermYears)
	if err != nil {
		uc.recordError(ctx, err)
		return nil, err
	}

	start := time.Now()

	result, err := domain.BuildSchedule(params, input.Options)
	if err != nil {
		uc.recordError(ctx, err)
		return nil, err
	}

	elapsed := time.Since(start)
	uc.recorder.ObserveSchedule(params.Principal, len(result.Records), elapsed)

	calc := &domain.Calculation{
		ID:        uc.idGen.Generate(),
		HomeValue: input.HomeValue,
		Deposit:   input.Deposit,
		Result:    result,
		CreatedAt: uc.now(),
	}

	uc.log(ctx).Debug().
		Str("calculation_id", calc.ID).
		Float64("principal", params.Principal).
		Float64("annual_rate", params.AnnualRatePercent).
		Int("term_years", params.TermYears).
		Float64("monthly_payment", result.MonthlyPayment).
		Dur("elapsed", elapsed).
		Msg("schedule computed")

	return calc, nil
}

// Yearly computes the schedule and groups it by year.
func (uc *ScheduleUseCase) Yearly(ctx context.Context, input CalculateScheduleInput) (*YearlyReport, error) {
	calc, err := uc.Calculate(ctx, input)
	if err != nil {
		return nil, err
	}

	return &YearlyReport{
		Calculation: calc,
		Years:       SummarizeByYear(calc.Result),
	}, nil
}

func (uc *ScheduleUseCase) loanParameters(homeValue, deposit, rate float64, termYears int) (domain.LoanParameters, error) {
	if err := uc.limits.Validate(homeValue, rate, termYears); err != nil {
		return domain.LoanParameters{}, err
	}

	principal, err := domain.PrincipalFromHomeValue(homeValue, deposit)
	if err != nil {
		return domain.LoanParameters{}, err
	}

	return domain.LoanParameters{
		Principal:         principal,
		AnnualRatePercent: rate,
		TermYears:         termYears,
	}, nil
}

func (uc *ScheduleUseCase) recordError(ctx context.Context, err error) {
	kind := errorKind(err)
	uc.recorder.RecordError(kind)

	uc.log(ctx).Info().Err(err).Str("error_type", kind).Msg("schedule request rejected")
}

// log prefers the request-scoped logger attached by the HTTP middleware.
func (uc *ScheduleUseCase) log(ctx context.Context) *zerolog.Logger {
	if logger := zerolog.Ctx(ctx); logger.GetLevel() != zerolog.Disabled {
		return logger
	}
	return &uc.logger
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidTerm):
		return errorKindInvalidTerm
	case errors.Is(err, domain.ErrInvalidLoanParameters):
		return errorKindInvalidParameters
	case errors.Is(err, domain.ErrOutOfRange):
		return errorKindOutOfRange
	default:
		return errorKindInternal
	}
}

// BorrowingSummary describes the loan in one sentence.
func BorrowingSummary(p domain.LoanParameters) string {
	return fmt.Sprintf("You are borrowing $%s at an interest rate of %.2f%% for a term of %d years.",
		humanize.Comma(int64(math.Round(p.Principal))), p.AnnualRatePercent, p.TermYears)
}
