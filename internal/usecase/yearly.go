package usecase

import (
	"math"

	"github.com/iho/goloan/internal/domain"
)

// YearSummary aggregates one year of a schedule for charting.
type YearSummary struct {
	Year                int
	Periods             int
	MinRemainingBalance float64
	MinPrincipal        float64
	MinInterest         float64
	PrincipalPaid       float64
	InterestPaid        float64
}

// SummarizeByYear groups schedule records by YearIndex. The minimum columns
// are the representative per-year samples used by balance and breakdown charts.
func SummarizeByYear(result *domain.AmortizationResult) []YearSummary {
	if result == nil || len(result.Records) == 0 {
		return nil
	}

	years := make([]YearSummary, 0, result.Parameters.TermYears)

	for _, record := range result.Records {
		if len(years) == 0 || years[len(years)-1].Year != record.YearIndex {
			years = append(years, YearSummary{
				Year:                record.YearIndex,
				MinRemainingBalance: math.Inf(1),
				MinPrincipal:        math.Inf(1),
				MinInterest:         math.Inf(1),
			})
		}

		year := &years[len(years)-1]
		year.Periods++
		year.MinRemainingBalance = math.Min(year.MinRemainingBalance, record.RemainingBalance)
		year.MinPrincipal = math.Min(year.MinPrincipal, record.Principal)
		year.MinInterest = math.Min(year.MinInterest, record.Interest)
		year.PrincipalPaid += record.Principal
		year.InterestPaid += record.Interest
	}

	return years
}
