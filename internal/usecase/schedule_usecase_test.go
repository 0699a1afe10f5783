package usecase_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/iho/goloan/internal/domain"
	"github.com/iho/goloan/internal/usecase"
	"github.com/iho/goloan/internal/usecase/mocks"
)

func newScheduleUseCase(t *testing.T) (*usecase.ScheduleUseCase, *mocks.MockIDGenerator, *mocks.MockScheduleRecorder) {
	t.Helper()

	ctrl := gomock.NewController(t)
	idGen := mocks.NewMockIDGenerator(ctrl)
	recorder := mocks.NewMockScheduleRecorder(ctrl)

	uc := usecase.NewScheduleUseCase(domain.DefaultRequestLimits(), idGen, recorder, zerolog.Nop())
	return uc, idGen, recorder
}

func TestScheduleUseCase_Calculate(t *testing.T) {
	uc, idGen, recorder := newScheduleUseCase(t)

	idGen.EXPECT().Generate().Return("calc-1")
	recorder.EXPECT().ObserveSchedule(300000.0, 300, gomock.Any())

	calc, err := uc.Calculate(context.Background(), usecase.CalculateScheduleInput{
		HomeValue:         350000,
		Deposit:           50000,
		AnnualRatePercent: 2.5,
		TermYears:         25,
		Options:           domain.DefaultScheduleOptions(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calc.ID != "calc-1" {
		t.Errorf("expected ID calc-1, got %s", calc.ID)
	}
	if calc.HomeValue != 350000 || calc.Deposit != 50000 {
		t.Errorf("expected request values to be kept, got %+v", calc)
	}
	if calc.Result.Parameters.Principal != 300000 {
		t.Errorf("expected deposit to be subtracted, got principal %v", calc.Result.Parameters.Principal)
	}
	if len(calc.Result.Records) != 300 {
		t.Errorf("expected 300 records, got %d", len(calc.Result.Records))
	}
	if calc.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestScheduleUseCase_CalculateRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		input    usecase.CalculateScheduleInput
		wantErr  error
		wantKind string
	}{
		{
			name:     "loan value below minimum",
			input:    usecase.CalculateScheduleInput{HomeValue: 5000, AnnualRatePercent: 2.5, TermYears: 25},
			wantErr:  domain.ErrOutOfRange,
			wantKind: "out_of_range",
		},
		{
			name:     "term outside bounds",
			input:    usecase.CalculateScheduleInput{HomeValue: 300000, AnnualRatePercent: 2.5, TermYears: 40},
			wantErr:  domain.ErrOutOfRange,
			wantKind: "out_of_range",
		},
		{
			name:     "deposit covers the whole price",
			input:    usecase.CalculateScheduleInput{HomeValue: 300000, Deposit: 300000, AnnualRatePercent: 2.5, TermYears: 25},
			wantErr:  domain.ErrDepositExceedsValue,
			wantKind: "invalid_parameters",
		},
		{
			name:     "negative rate",
			input:    usecase.CalculateScheduleInput{HomeValue: 300000, AnnualRatePercent: -1, TermYears: 25},
			wantErr:  domain.ErrOutOfRange,
			wantKind: "out_of_range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, recorder := newScheduleUseCase(t)
			recorder.EXPECT().RecordError(tt.wantKind)

			calc, err := uc.Calculate(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if calc != nil {
				t.Fatalf("expected no calculation, got %+v", calc)
			}
		})
	}
}

func TestScheduleUseCase_EngineErrorsReachCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	idGen := mocks.NewMockIDGenerator(ctrl)
	recorder := mocks.NewMockScheduleRecorder(ctrl)

	limits := domain.RequestLimits{MinTermYears: 0, MaxTermYears: 0}
	uc := usecase.NewScheduleUseCase(limits, idGen, recorder, zerolog.Nop())

	recorder.EXPECT().RecordError("invalid_term")

	_, err := uc.Calculate(context.Background(), usecase.CalculateScheduleInput{
		HomeValue:         1000,
		AnnualRatePercent: 5,
		TermYears:         0,
	})
	if !errors.Is(err, domain.ErrInvalidTerm) {
		t.Fatalf("expected ErrInvalidTerm, got %v", err)
	}
}

func TestScheduleUseCase_UnboundedLimitsStillCapTerm(t *testing.T) {
	ctrl := gomock.NewController(t)
	idGen := mocks.NewMockIDGenerator(ctrl)
	recorder := mocks.NewMockScheduleRecorder(ctrl)

	uc := usecase.NewScheduleUseCase(domain.RequestLimits{}, idGen, recorder, zerolog.Nop())

	recorder.EXPECT().RecordError("invalid_parameters")

	_, err := uc.Calculate(context.Background(), usecase.CalculateScheduleInput{
		HomeValue:         300000,
		AnnualRatePercent: 5,
		TermYears:         math.MaxInt / domain.MonthsPerYear,
	})
	if !errors.Is(err, domain.ErrInvalidLoanParameters) {
		t.Fatalf("expected ErrInvalidLoanParameters, got %v", err)
	}
}

func TestScheduleUseCase_Quote(t *testing.T) {
	uc, _, _ := newScheduleUseCase(t)

	quote, err := uc.Quote(context.Background(), usecase.QuoteInput{
		HomeValue:         300000,
		AnnualRatePercent: 0,
		TermYears:         25,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.MonthlyPayment != 1000 {
		t.Errorf("expected zero-rate payment 1000, got %v", quote.MonthlyPayment)
	}
	if quote.TotalInterest != 0 {
		t.Errorf("expected no interest, got %v", quote.TotalInterest)
	}

	want := "You are borrowing $300,000 at an interest rate of 0.00% for a term of 25 years."
	if quote.Summary != want {
		t.Errorf("expected summary %q, got %q", want, quote.Summary)
	}
}

func TestScheduleUseCase_Yearly(t *testing.T) {
	uc, idGen, recorder := newScheduleUseCase(t)

	idGen.EXPECT().Generate().Return("calc-2")
	recorder.EXPECT().ObserveSchedule(gomock.Any(), 60, gomock.Any())

	report, err := uc.Yearly(context.Background(), usecase.CalculateScheduleInput{
		HomeValue:         120000,
		AnnualRatePercent: 4,
		TermYears:         5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Calculation.ID != "calc-2" {
		t.Errorf("expected calculation ID calc-2, got %s", report.Calculation.ID)
	}
	if len(report.Years) != 5 {
		t.Fatalf("expected 5 years, got %d", len(report.Years))
	}
}

func TestBorrowingSummary(t *testing.T) {
	got := usecase.BorrowingSummary(domain.LoanParameters{Principal: 1234567.4, AnnualRatePercent: 3.1, TermYears: 30})
	want := "You are borrowing $1,234,567 at an interest rate of 3.10% for a term of 30 years."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
