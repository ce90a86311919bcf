// Package billing holds the pure time and earnings arithmetic: converting a
// (start, end) pair and an hourly rate into a recorded time block, plus the
// duration formatting shared across the UI and exports.
package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/highercomve/billtracker/internal/models"
)

// ErrInvalidInterval is returned when end is not strictly after start.
var ErrInvalidInterval = errors.New("billing: end time must be after start time")

// ComputeDuration returns the whole seconds between start and end,
// truncated toward zero.
func ComputeDuration(start, end time.Time) (int64, error) {
	if !end.After(start) {
		return 0, ErrInvalidInterval
	}
	return int64(end.Sub(start) / time.Second), nil
}

// ComputeEarnings converts a duration in seconds and an hourly rate into a
// currency amount. Full floating precision is kept; rounding happens only at
// display and export time.
func ComputeEarnings(durationSeconds int64, hourlyRate float64) float64 {
	return float64(durationSeconds) / 3600 * hourlyRate
}

// NewTimeBlock builds an immutable time block from a completed interval and
// the rate in effect when it was recorded.
func NewTimeBlock(start, end time.Time, rate float64) (models.TimeBlock, error) {
	duration, err := ComputeDuration(start, end)
	if err != nil {
		return models.TimeBlock{}, err
	}
	return models.TimeBlock{
		ID:        uuid.New().String(),
		StartTime: start,
		EndTime:   end,
		Duration:  duration,
		Rate:      rate,
		Earnings:  ComputeEarnings(duration, rate),
	}, nil
}

// FormatClock renders seconds as zero-padded HH:MM:SS.
func FormatClock(totalSeconds int64) string {
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatCompact renders seconds as "2h 5m", or just "5m" under an hour.
func FormatCompact(totalSeconds int64) string {
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatMoney renders a currency amount with two decimals.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
