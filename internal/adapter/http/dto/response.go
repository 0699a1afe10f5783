package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goloan/internal/adapter/render"
	"github.com/iho/goloan/internal/domain"
	"github.com/iho/goloan/internal/usecase"
)

// PaymentResponse represents a monthly payment quote in API responses.
type PaymentResponse struct {
	Principal      decimal.Decimal `json:"principal"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	TermYears      int             `json:"term_years"`
	Periods        int             `json:"periods"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	Summary        string          `json:"summary"`
}

// PaymentFromQuote converts a quote to response.
func PaymentFromQuote(q *usecase.Quote, places int32) *PaymentResponse {
	return &PaymentResponse{
		Principal:      render.Round(q.Parameters.Principal, places),
		InterestRate:   decimal.NewFromFloat(q.Parameters.AnnualRatePercent),
		TermYears:      q.Parameters.TermYears,
		Periods:        q.Parameters.Periods(),
		MonthlyPayment: render.Round(q.MonthlyPayment, places),
		TotalPaid:      render.Round(q.TotalPaid, places),
		TotalInterest:  render.Round(q.TotalInterest, places),
		Summary:        q.Summary,
	}
}

// PaymentRecordResponse represents one schedule period in API responses.
type PaymentRecordResponse struct {
	Period           int              `json:"period"`
	Year             int              `json:"year"`
	Payment          decimal.Decimal  `json:"payment"`
	Principal        decimal.Decimal  `json:"principal"`
	Interest         decimal.Decimal  `json:"interest"`
	RemainingBalance decimal.Decimal  `json:"remaining_balance"`
	EarlyExitPenalty *decimal.Decimal `json:"early_exit_penalty,omitempty"`
}

// YearSummaryResponse represents one year of a schedule in API responses.
type YearSummaryResponse struct {
	Year                int             `json:"year"`
	Periods             int             `json:"periods"`
	MinRemainingBalance decimal.Decimal `json:"min_remaining_balance"`
	MinPrincipal        decimal.Decimal `json:"min_principal"`
	MinInterest         decimal.Decimal `json:"min_interest"`
	PrincipalPaid       decimal.Decimal `json:"principal_paid"`
	InterestPaid        decimal.Decimal `json:"interest_paid"`
}

// ScheduleResponse represents a computed schedule in API responses.
type ScheduleResponse struct {
	ID                    string                  `json:"id"`
	CreatedAt             time.Time               `json:"created_at"`
	Summary               string                  `json:"summary"`
	LoanValue             decimal.Decimal         `json:"loan_value"`
	Deposit               decimal.Decimal         `json:"deposit"`
	Principal             decimal.Decimal         `json:"principal"`
	InterestRate          decimal.Decimal         `json:"interest_rate"`
	TermYears             int                     `json:"term_years"`
	Periods               int                     `json:"periods"`
	MonthlyPayment        decimal.Decimal         `json:"monthly_payment"`
	TotalPaid             decimal.Decimal         `json:"total_paid"`
	TotalInterest         decimal.Decimal         `json:"total_interest"`
	InterestFirst24Months *decimal.Decimal        `json:"interest_first_24_months,omitempty"`
	Schedule              []PaymentRecordResponse `json:"schedule"`
	Yearly                []YearSummaryResponse   `json:"yearly,omitempty"`
}

// ScheduleFromDomain converts a calculation to response.
func ScheduleFromDomain(c *domain.Calculation, years []usecase.YearSummary, places int32) *ScheduleResponse {
	result := c.Result
	params := result.Parameters

	resp := &ScheduleResponse{
		ID:             c.ID,
		CreatedAt:      c.CreatedAt,
		Summary:        usecase.BorrowingSummary(params),
		LoanValue:      render.Round(c.HomeValue, places),
		Deposit:        render.Round(c.Deposit, places),
		Principal:      render.Round(params.Principal, places),
		InterestRate:   decimal.NewFromFloat(params.AnnualRatePercent),
		TermYears:      params.TermYears,
		Periods:        params.Periods(),
		MonthlyPayment: render.Round(result.MonthlyPayment, places),
		TotalPaid:      render.Round(result.TotalPaid, places),
		TotalInterest:  render.Round(result.TotalInterest, places),
		Schedule:       RecordsFromDomain(result, places),
		Yearly:         YearsFromUseCase(years, places),
	}

	if result.Options.IncludeFirst24MonthsInterest {
		v := render.Round(result.InterestFirst24Months, places)
		resp.InterestFirst24Months = &v
	}

	return resp
}

// RecordsFromDomain converts schedule records to responses.
func RecordsFromDomain(result *domain.AmortizationResult, places int32) []PaymentRecordResponse {
	records := make([]PaymentRecordResponse, len(result.Records))
	for i, r := range result.Records {
		records[i] = PaymentRecordResponse{
			Period:           r.PeriodIndex,
			Year:             r.YearIndex,
			Payment:          render.Round(r.Payment, places),
			Principal:        render.Round(r.Principal, places),
			Interest:         render.Round(r.Interest, places),
			RemainingBalance: render.Round(r.RemainingBalance, places),
		}
		if result.Options.IncludeEarlyExitPenalty {
			penalty := render.Round(r.EarlyExitPenalty, places)
			records[i].EarlyExitPenalty = &penalty
		}
	}
	return records
}

// YearsFromUseCase converts yearly summaries to responses.
func YearsFromUseCase(years []usecase.YearSummary, places int32) []YearSummaryResponse {
	if len(years) == 0 {
		return nil
	}

	result := make([]YearSummaryResponse, len(years))
	for i, y := range years {
		result[i] = YearSummaryResponse{
			Year:                y.Year,
			Periods:             y.Periods,
			MinRemainingBalance: render.Round(y.MinRemainingBalance, places),
			MinPrincipal:        render.Round(y.MinPrincipal, places),
			MinInterest:         render.Round(y.MinInterest, places),
			PrincipalPaid:       render.Round(y.PrincipalPaid, places),
			InterestPaid:        render.Round(y.InterestPaid, places),
		}
	}
	return result
}

// YearlyResponse represents a yearly breakdown in API responses.
type YearlyResponse struct {
	ID             string                `json:"id"`
	MonthlyPayment decimal.Decimal       `json:"monthly_payment"`
	Years          []YearSummaryResponse `json:"years"`
}

// YearlyFromUseCase converts a yearly report to response.
func YearlyFromUseCase(report *usecase.YearlyReport, places int32) *YearlyResponse {
	return &YearlyResponse{
		ID:             report.Calculation.ID,
		MonthlyPayment: render.Round(report.Calculation.Result.MonthlyPayment, places),
		Years:          YearsFromUseCase(report.Years, places),
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
