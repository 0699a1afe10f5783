package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/goloan/internal/adapter/http/dto"
	"github.com/iho/goloan/internal/adapter/render"
	"github.com/iho/goloan/internal/domain"
	"github.com/iho/goloan/internal/usecase"
)

// ScheduleService defines the behavior needed by ScheduleHandler.
type ScheduleService interface {
	Quote(ctx context.Context, input usecase.QuoteInput) (*usecase.Quote, error)
	Calculate(ctx context.Context, input usecase.CalculateScheduleInput) (*domain.Calculation, error)
	Yearly(ctx context.Context, input usecase.CalculateScheduleInput) (*usecase.YearlyReport, error)
}

// ScheduleHandler handles repayment schedule HTTP requests.
type ScheduleHandler struct {
	scheduleUC ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleUC ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleUC: scheduleUC}
}

// Payment returns the monthly payment quote for a loan.
func (h *ScheduleHandler) Payment(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	places, err := req.Places()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid precision", err.Error())
		return
	}

	quote, err := h.scheduleUC.Quote(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute payment", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromQuote(quote, places))
}

// Create computes a full schedule including the yearly breakdown.
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, places, ok := decodeScheduleRequest(w, r)
	if !ok {
		return
	}

	report, err := h.scheduleUC.Yearly(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute schedule", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ScheduleFromDomain(report.Calculation, report.Years, places))
}

// Yearly computes a schedule and returns only the per-year breakdown.
func (h *ScheduleHandler) Yearly(w http.ResponseWriter, r *http.Request) {
	req, places, ok := decodeScheduleRequest(w, r)
	if !ok {
		return
	}

	report, err := h.scheduleUC.Yearly(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute schedule", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.YearlyFromUseCase(report, places))
}

// CSV renders a schedule described by query parameters as CSV.
func (h *ScheduleHandler) CSV(w http.ResponseWriter, r *http.Request) {
	req, err := scheduleRequestFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	places, err := req.Places()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid precision", err.Error())
		return
	}

	calc, err := h.scheduleUC.Calculate(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute schedule", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "schedule-"+calc.ID+".csv"))
	w.WriteHeader(http.StatusOK)

	if err := render.WriteCSV(w, calc.Result, places); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("calculation_id", calc.ID).Msg("failed to write csv")
	}
}

func decodeScheduleRequest(w http.ResponseWriter, r *http.Request) (*dto.ScheduleRequest, int32, bool) {
	var req dto.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return nil, 0, false
	}

	places, err := req.Places()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid precision", err.Error())
		return nil, 0, false
	}

	return &req, places, true
}

func scheduleRequestFromQuery(r *http.Request) (*dto.ScheduleRequest, error) {
	var (
		req  dto.ScheduleRequest
		errs []error
	)

	var err error
	if req.LoanValue, err = parseDecimalQuery(r, "loan_value"); err != nil {
		errs = append(errs, err)
	}
	if req.InterestRate, err = parseDecimalQuery(r, "interest_rate"); err != nil {
		errs = append(errs, err)
	}
	if r.URL.Query().Get("deposit") != "" {
		if req.Deposit, err = parseDecimalQuery(r, "deposit"); err != nil {
			errs = append(errs, err)
		}
	} else {
		req.Deposit = decimal.Zero
	}
	if req.TermYears, err = parseIntQuery(r, "term_years", 0); err != nil {
		errs = append(errs, err)
	}

	if req.Precision, err = parsePrecisionQuery(r, "precision"); err != nil {
		errs = append(errs, err)
	}

	if req.IncludeEarlyExitPenalty, err = parseBoolQuery(r, "include_early_exit_penalty"); err != nil {
		errs = append(errs, err)
	}
	if req.IncludeFirst24MonthsInterest, err = parseBoolQuery(r, "include_first_24_months_interest"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &req, nil
}
