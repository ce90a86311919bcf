// Package export turns the project ledger into shareable documents: the two
// CSV layouts (detailed sessions, project summary) and a PDF earnings report.
package export

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/highercomve/billtracker/internal/billing"
	"github.com/highercomve/billtracker/internal/models"
	"github.com/highercomve/billtracker/internal/service"
	"github.com/highercomve/billtracker/internal/tax"
)

var sessionsHeader = []string{
	"Project",
	"Start Time",
	"End Time",
	"Duration (Hours)",
	"Duration (HH:MM:SS)",
	"Rate ($/hour)",
	"Earnings ($)",
}

var summaryHeader = []string{
	"Project Name",
	"Hourly Rate ($/hour)",
	"Total Time (Hours)",
	"Total Time (HH:MM:SS)",
	"Total Sessions",
	"Total Earnings ($)",
	"Average Session Length (Minutes)",
}

var taxHeader = []string{
	"Tax Rate (%)",
	"Estimated Tax ($)",
	"Net Earnings ($)",
}

// SessionsCSV renders one row per recorded time block across all projects,
// newest first. When settings.IncludeInExports is set, each row carries the
// flat-rate tax estimate for its own earnings.
func SessionsCSV(projects []models.Project, settings models.TaxSettings) string {
	records := [][]string{header(sessionsHeader, settings)}
	for _, row := range service.AllSessions(projects) {
		b := row.Block
		record := []string{
			row.ProjectName,
			FormatTimestamp(b.StartTime),
			FormatTimestamp(b.EndTime),
			strconv.FormatFloat(float64(b.Duration)/3600, 'f', 3, 64),
			billing.FormatClock(b.Duration),
			strconv.FormatFloat(b.Rate, 'f', 2, 64),
			strconv.FormatFloat(b.Earnings, 'f', 2, 64),
		}
		records = append(records, appendTax(record, b.Earnings, settings))
	}
	return write(records)
}

// SummaryCSV renders one rollup row per project, in collection order.
func SummaryCSV(projects []models.Project, settings models.TaxSettings) string {
	records := [][]string{header(summaryHeader, settings)}
	for _, s := range service.Summarize(projects) {
		avg := "0.0"
		if s.Sessions > 0 {
			avg = strconv.FormatFloat(s.AvgSessionMinutes, 'f', 1, 64)
		}
		record := []string{
			s.Name,
			strconv.FormatFloat(s.Rate, 'f', 2, 64),
			strconv.FormatFloat(float64(s.TotalTime)/3600, 'f', 3, 64),
			billing.FormatClock(s.TotalTime),
			strconv.Itoa(s.Sessions),
			strconv.FormatFloat(s.TotalEarnings, 'f', 2, 64),
			avg,
		}
		records = append(records, appendTax(record, s.TotalEarnings, settings))
	}
	return write(records)
}

func header(base []string, settings models.TaxSettings) []string {
	h := append([]string{}, base...)
	if settings.IncludeInExports {
		h = append(h, taxHeader...)
	}
	return h
}

func appendTax(record []string, earnings float64, settings models.TaxSettings) []string {
	if !settings.IncludeInExports {
		return record
	}
	calc := tax.Calculate(earnings, settings)
	return append(record,
		strconv.FormatFloat(calc.TaxRate, 'f', 1, 64),
		strconv.FormatFloat(calc.TaxAmount, 'f', 2, 64),
		strconv.FormatFloat(calc.NetEarnings, 'f', 2, 64),
	)
}

func write(records [][]string) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	// Writer only fails on unwritable output; strings.Builder never errors.
	_ = w.WriteAll(records)
	w.Flush()
	return strings.TrimSuffix(sb.String(), "\n")
}

// FormatTimestamp renders an instant as "YYYY-MM-DD HH:MM:SS" in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

// Filename builds the export file name, e.g. "sessions-2026-08-31.csv".
func Filename(dataset string, now time.Time) string {
	return fmt.Sprintf("%s-%s.csv", dataset, now.Format("2006-01-02"))
}
