package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/iho/goloan/internal/adapter/http/dto"
	"github.com/iho/goloan/internal/adapter/render"
	"github.com/iho/goloan/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidTerm):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidLoanParameters):
		return http.StatusBadRequest
	case errors.Is(err, render.ErrInvalidPrecision):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseDecimalQuery parses a required decimal query parameter.
func parseDecimalQuery(r *http.Request, key string) (decimal.Decimal, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return decimal.Zero, fmt.Errorf("missing query parameter %q", key)
	}
	d, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) (int, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return i, nil
}

// parsePrecisionQuery parses the optional precision parameter. Values outside
// int32 are rejected rather than truncated; nil means the default.
func parsePrecisionQuery(r *http.Request, key string) (*int32, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}
	i, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	places := int32(i)
	return &places, nil
}

// parseBoolQuery parses an optional boolean query parameter.
func parseBoolQuery(r *http.Request, key string) (*bool, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &b, nil
}
