package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/goloan/internal/adapter/http/dto"
	"github.com/iho/goloan/internal/adapter/idgen"
	"github.com/iho/goloan/internal/adapter/render"
	"github.com/iho/goloan/internal/domain"
	"github.com/iho/goloan/internal/usecase"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "goloan-cli",
		Short:         "GoLoan CLI tool",
		Long:          `A command line interface for computing loan repayment schedules.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoLoan API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(scheduleCmd(), paymentCmd(), pingCmd())

	return rootCmd
}

// loanFlags are the loan terms shared by the local commands.
type loanFlags struct {
	loanValue float64
	deposit   float64
	rate      float64
	years     int
	precision int32
}

func (f *loanFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.loanValue, "loan-value", 300000, "Property value")
	cmd.Flags().Float64Var(&f.deposit, "deposit", 0, "Deposit subtracted from the property value")
	cmd.Flags().Float64Var(&f.rate, "rate", 2.5, "Annual interest rate in percent")
	cmd.Flags().IntVar(&f.years, "years", 25, "Loan term in years")
	cmd.Flags().Int32Var(&f.precision, "precision", render.DefaultPlaces, "Decimal places in output")
}

type scheduleFlags struct {
	loanFlags
	format     string
	yearly     bool
	noPenalty  bool
	noInterest bool
}

func scheduleCmd() *cobra.Command {
	var flags scheduleFlags

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Compute a repayment schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.format, "format", "table", "Output format: table, json or csv")
	cmd.Flags().BoolVar(&flags.yearly, "yearly", false, "Summarize by year")
	cmd.Flags().BoolVar(&flags.noPenalty, "no-penalty", false, "Omit the early exit penalty column")
	cmd.Flags().BoolVar(&flags.noInterest, "no-24-month-interest", false, "Omit the first 24 months interest total")

	return cmd
}

func paymentCmd() *cobra.Command {
	var flags loanFlags

	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Compute the monthly payment",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPayment(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}

	flags.register(cmd)

	return cmd
}

func pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the API is alive",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ping(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func newScheduleUseCase() *usecase.ScheduleUseCase {
	limits := domain.DefaultRequestLimits()
	return usecase.NewScheduleUseCase(limits, idgen.NewULIDGenerator(), nopRecorder{}, zerolog.Nop())
}

func runSchedule(ctx context.Context, w io.Writer, flags scheduleFlags) error {
	places := flags.precision
	if err := render.ValidatePlaces(places); err != nil {
		return err
	}

	input := usecase.CalculateScheduleInput{
		HomeValue:         flags.loanValue,
		Deposit:           flags.deposit,
		AnnualRatePercent: flags.rate,
		TermYears:         flags.years,
		Options: domain.ScheduleOptions{
			IncludeEarlyExitPenalty:      !flags.noPenalty,
			IncludeFirst24MonthsInterest: !flags.noInterest,
		},
	}

	report, err := newScheduleUseCase().Yearly(ctx, input)
	if err != nil {
		return err
	}
	calc := report.Calculation

	switch flags.format {
	case "json":
		if flags.yearly {
			return writeJSON(w, dto.YearlyFromUseCase(report, places))
		}
		return writeJSON(w, dto.ScheduleFromDomain(calc, report.Years, places))
	case "csv":
		if flags.yearly {
			return fmt.Errorf("--yearly is not supported with csv output")
		}
		return render.WriteCSV(w, calc.Result, places)
	case "table":
		fmt.Fprintln(w, usecase.BorrowingSummary(calc.Result.Parameters))
		fmt.Fprintln(w)
		if flags.yearly {
			return render.WriteYearlyTable(w, report.Years, places)
		}
		return render.WriteTable(w, calc.Result, places)
	default:
		return fmt.Errorf("unknown format %q", flags.format)
	}
}

func runPayment(ctx context.Context, w io.Writer, flags loanFlags) error {
	places := flags.precision
	if err := render.ValidatePlaces(places); err != nil {
		return err
	}

	quote, err := newScheduleUseCase().Quote(ctx, usecase.QuoteInput{
		HomeValue:         flags.loanValue,
		Deposit:           flags.deposit,
		AnnualRatePercent: flags.rate,
		TermYears:         flags.years,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, quote.Summary)
	fmt.Fprintf(w, "Monthly Payment:     %s\n", render.Grouped(quote.MonthlyPayment, places))
	fmt.Fprintf(w, "Total Payment:       %s\n", render.Grouped(quote.TotalPaid, places))
	fmt.Fprintf(w, "Interest (Lifetime): %s\n", render.Grouped(quote.TotalInterest, places))

	return nil
}

func ping(ctx context.Context, w io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check FAILED (status: %d): %s", resp.StatusCode, string(body))
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	fmt.Fprintf(w, "Health check PASSED\nStatus: %v\n", result["status"])
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// nopRecorder discards schedule metrics in the CLI.
type nopRecorder struct{}

func (nopRecorder) ObserveSchedule(float64, int, time.Duration) {}

func (nopRecorder) RecordError(string) {}
