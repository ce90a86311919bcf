package models

import (
	"time"
)

// TimeBlock is one completed tracking session. Blocks are immutable once
// recorded: Rate and Earnings are snapshots taken when the session stopped,
// so later edits to the project's rate never change historical earnings.
type TimeBlock struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  int64     `json:"duration_sec"`
	Rate      float64   `json:"rate"`
	Earnings  float64   `json:"earnings"`
}

// Project is a named billing bucket. TotalTime and TotalEarnings are derived
// and must always equal the sums over TimeBlocks.
type Project struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Rate          float64     `json:"rate"` // current hourly rate, applies to future sessions only
	TotalTime     int64       `json:"total_time_sec"`
	TotalEarnings float64     `json:"total_earnings"`
	TimeBlocks    []TimeBlock `json:"time_blocks"`
}

// TaxSettings is the app-wide flat-rate estimate configuration.
// The include flags only gate where tax figures are shown, never the math.
type TaxSettings struct {
	TaxRate           float64 `json:"tax_rate"`
	IncludeInDisplays bool    `json:"include_in_displays"`
	IncludeInExports  bool    `json:"include_in_exports"`
}

// TaxCalculation is derived on demand from an earnings figure and never persisted.
type TaxCalculation struct {
	GrossEarnings float64 `json:"gross_earnings"`
	TaxAmount     float64 `json:"tax_amount"`
	NetEarnings   float64 `json:"net_earnings"`
	TaxRate       float64 `json:"tax_rate"`
}

// AppState holds small bits of state that survive restarts.
type AppState struct {
	LastRunVersion   string `json:"last_run_version"`
	CurrentProjectID string `json:"current_project_id"`
}
