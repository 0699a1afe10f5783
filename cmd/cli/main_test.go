package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iho/goloan/internal/adapter/http/dto"
	"github.com/iho/goloan/internal/domain"
)

func defaultScheduleFlags(format string) scheduleFlags {
	return scheduleFlags{
		loanFlags: loanFlags{loanValue: 300000, rate: 2.5, years: 25, precision: 2},
		format:    format,
	}
}

func TestRunSchedule_Table(t *testing.T) {
	var out bytes.Buffer
	if err := runSchedule(context.Background(), &out, defaultScheduleFlags("table")); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, "You are borrowing $300,000 at an interest rate of 2.50% for a term of 25 years.") {
		t.Fatalf("expected borrowing summary first, got %q", got[:80])
	}
	if !strings.Contains(got, "1,345.85") || !strings.Contains(got, "Penalty") {
		t.Fatalf("expected grouped payment and penalty column in table output")
	}
}

func TestRunSchedule_CSV(t *testing.T) {
	flags := defaultScheduleFlags("csv")
	flags.noPenalty = true

	var out bytes.Buffer
	if err := runSchedule(context.Background(), &out, flags); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	rows, err := csv.NewReader(&out).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	if len(rows) != 301 || rows[1][6] != "" {
		t.Fatalf("unexpected csv: %d rows, first %v", len(rows), rows[1])
	}
}

func TestRunSchedule_JSONYearly(t *testing.T) {
	flags := defaultScheduleFlags("json")
	flags.yearly = true

	var out bytes.Buffer
	if err := runSchedule(context.Background(), &out, flags); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	var resp dto.YearlyResponse
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Years) != 25 || resp.MonthlyPayment.String() != "1345.85" {
		t.Fatalf("unexpected yearly response: %+v", resp)
	}
}

func TestRunSchedule_Errors(t *testing.T) {
	flags := defaultScheduleFlags("xml")
	if err := runSchedule(context.Background(), &bytes.Buffer{}, flags); err == nil {
		t.Fatal("expected unknown format to fail")
	}

	flags = defaultScheduleFlags("table")
	flags.years = 50
	if err := runSchedule(context.Background(), &bytes.Buffer{}, flags); !errors.Is(err, domain.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}

	flags = defaultScheduleFlags("csv")
	flags.yearly = true
	if err := runSchedule(context.Background(), &bytes.Buffer{}, flags); err == nil {
		t.Fatal("expected yearly csv to be rejected")
	}
}

func TestPaymentCmd(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"payment", "--loan-value", "350000", "--deposit", "50000", "--precision", "0"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if !strings.Contains(out.String(), "Monthly Payment:     1,346") {
		t.Fatalf("unexpected payment output:\n%s", out.String())
	}
}

func TestPingCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	cmd := newRootCmd()
	cmd.SetArgs([]string{"ping", "--url", srv.URL})

	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	if !strings.Contains(out.String(), "Status: ok") {
		t.Fatalf("unexpected ping output: %q", out.String())
	}
}

func TestPingCmd_Unhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cmd := newRootCmd()
	cmd.SetArgs([]string{"ping", "--url", srv.URL})
	cmd.SetOut(&bytes.Buffer{})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected ping to fail on 503")
	}
}
