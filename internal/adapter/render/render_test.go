package render

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/goloan/internal/domain"
	"github.com/iho/goloan/internal/usecase"
)

func buildResult(t *testing.T, opts domain.ScheduleOptions) *domain.AmortizationResult {
	t.Helper()

	result, err := domain.BuildSchedule(domain.LoanParameters{
		Principal:         300000,
		AnnualRatePercent: 2.5,
		TermYears:         25,
	}, opts)
	require.NoError(t, err)
	return result
}

func TestRound(t *testing.T) {
	assert.Equal(t, "1345.85", Round(1345.8502022298123, 2).String())
	assert.Equal(t, "1346", Round(1345.8502022298123, 0).String())
	assert.Equal(t, "0", Round(-2.07e-8, 2).String())
}

func TestGrouped(t *testing.T) {
	assert.Equal(t, "403,755.06", Grouped(403755.0606689437, 2))
	assert.Equal(t, "403,755", Grouped(403755.0606689437, 0))
}

func TestValidatePlaces(t *testing.T) {
	assert.NoError(t, ValidatePlaces(0))
	assert.NoError(t, ValidatePlaces(MaxPlaces))
	assert.True(t, errors.Is(ValidatePlaces(-1), ErrInvalidPrecision))
	assert.True(t, errors.Is(ValidatePlaces(MaxPlaces+1), ErrInvalidPrecision))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, buildResult(t, domain.DefaultScheduleOptions()), 2))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 301)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"1", "1", "1345.85", "720.85", "625.00", "299279.15", "4489.19"}, rows[1])
	assert.Equal(t, "25", rows[300][0])
	assert.Equal(t, "0.00", rows[300][5])
}

func TestWriteCSV_WithoutPenalty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, buildResult(t, domain.ScheduleOptions{}), 0))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, "", rows[1][6])
	assert.Equal(t, "1346", rows[1][2])
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, buildResult(t, domain.DefaultScheduleOptions()), 2))

	out := buf.String()
	assert.Contains(t, out, "1,345.85")
	assert.Contains(t, out, "403,755.06")
	assert.Contains(t, out, "Interest (24 Months)")
	assert.Contains(t, out, "Penalty")
	assert.Equal(t, 300+6, strings.Count(out, "\n"))
}

func TestWriteYearlyTable(t *testing.T) {
	result := buildResult(t, domain.DefaultScheduleOptions())

	var buf bytes.Buffer
	require.NoError(t, WriteYearlyTable(&buf, usecase.SummarizeByYear(result), 0))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 26)
	assert.Contains(t, lines[0], "Closing Balance")
}
