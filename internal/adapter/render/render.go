// Package render formats amortization results for people: rounded amounts,
// CSV exports and aligned text tables. The engine itself never rounds.
package render

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/iho/goloan/internal/domain"
	"github.com/iho/goloan/internal/usecase"
)

const (
	// DefaultPlaces is the number of decimal places used when none is requested.
	DefaultPlaces int32 = 2
	// MaxPlaces is the largest precision callers may request.
	MaxPlaces int32 = 6
)

// ErrInvalidPrecision is returned for a precision outside 0..MaxPlaces.
var ErrInvalidPrecision = errors.New("precision must be between 0 and 6")

// ValidatePlaces checks a requested rounding precision.
func ValidatePlaces(places int32) error {
	if places < 0 || places > MaxPlaces {
		return ErrInvalidPrecision
	}
	return nil
}

// Round converts a full-precision amount to a decimal rounded half away from zero.
func Round(v float64, places int32) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(places)
}

// Grouped formats an amount with thousands separators, e.g. 1,345.85.
func Grouped(v float64, places int32) string {
	return humanize.FormatFloat(groupFormat(places), Round(v, places).InexactFloat64())
}

func groupFormat(places int32) string {
	format := "#,###."
	for i := int32(0); i < places; i++ {
		format += "#"
	}
	return format
}

var csvHeader = []string{"Year", "Month", "Payment", "Principal", "Interest", "Remaining Balance", "Penalty"}

// WriteCSV writes one row per payment period. The penalty column is empty
// when the schedule was computed without it.
func WriteCSV(w io.Writer, result *domain.AmortizationResult, places int32) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, record := range result.Records {
		penalty := ""
		if result.Options.IncludeEarlyExitPenalty {
			penalty = Round(record.EarlyExitPenalty, places).StringFixed(places)
		}

		row := []string{
			strconv.Itoa(record.YearIndex),
			strconv.Itoa(record.PeriodIndex),
			Round(record.Payment, places).StringFixed(places),
			Round(record.Principal, places).StringFixed(places),
			Round(record.Interest, places).StringFixed(places),
			Round(record.RemainingBalance, places).StringFixed(places),
			penalty,
		}

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTable writes the aggregates followed by the schedule as aligned columns.
func WriteTable(w io.Writer, result *domain.AmortizationResult, places int32) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(tw, "Monthly Payment\t%s\t\n", Grouped(result.MonthlyPayment, places))
	fmt.Fprintf(tw, "Total Payment\t%s\t\n", Grouped(result.TotalPaid, places))
	fmt.Fprintf(tw, "Interest (Lifetime)\t%s\t\n", Grouped(result.TotalInterest, places))
	if result.Options.IncludeFirst24MonthsInterest {
		fmt.Fprintf(tw, "Interest (24 Months)\t%s\t\n", Grouped(result.InterestFirst24Months, places))
	}
	fmt.Fprintln(tw, "\t\t")

	fmt.Fprint(tw, "Year\tMonth\tPayment\tPrincipal\tInterest\tRemaining Balance\t")
	if result.Options.IncludeEarlyExitPenalty {
		fmt.Fprint(tw, "Penalty\t")
	}
	fmt.Fprintln(tw)

	for _, record := range result.Records {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t",
			record.YearIndex,
			record.PeriodIndex,
			Grouped(record.Payment, places),
			Grouped(record.Principal, places),
			Grouped(record.Interest, places),
			Grouped(record.RemainingBalance, places),
		)
		if result.Options.IncludeEarlyExitPenalty {
			fmt.Fprintf(tw, "%s\t", Grouped(record.EarlyExitPenalty, places))
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

// WriteYearlyTable writes one row per year of the schedule.
func WriteYearlyTable(w io.Writer, years []usecase.YearSummary, places int32) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, "Year\tPayments\tPrincipal Paid\tInterest Paid\tClosing Balance\t")
	for _, year := range years {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t\n",
			year.Year,
			year.Periods,
			Grouped(year.PrincipalPaid, places),
			Grouped(year.InterestPaid, places),
			Grouped(year.MinRemainingBalance, places),
		)
	}

	return tw.Flush()
}
