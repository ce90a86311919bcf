// Package tax implements the flat-rate tax estimate layered onto earnings
// figures. This is a planning aid, not a statutory computation.
package tax

import (
	"fmt"

	"github.com/highercomve/billtracker/internal/models"
)

// DefaultSettings is a reasonable starting point for freelancers
// (federal + state + self-employment averages out near 30%).
var DefaultSettings = models.TaxSettings{
	TaxRate:           30,
	IncludeInDisplays: true,
	IncludeInExports:  true,
}

// Preset is a labelled tax rate offered in the settings UI.
type Preset struct {
	Rate  float64
	Label string
}

// Presets lists common flat rates for different situations, in display order.
var Presets = []Preset{
	{Rate: 15, Label: "Low tax state, part-time"},
	{Rate: 22, Label: "Average employed rate"},
	{Rate: 30, Label: "Freelancer national average"},
	{Rate: 35, Label: "High earner, high tax state"},
	{Rate: 40, Label: "California/NY high earner"},
}

// Calculate applies the flat rate to a gross earnings figure. It is a total
// function: out-of-range inputs (negative gross, rates above 100) pass through
// arithmetically rather than being clamped.
func Calculate(grossEarnings float64, settings models.TaxSettings) models.TaxCalculation {
	taxAmount := grossEarnings * settings.TaxRate / 100
	return models.TaxCalculation{
		GrossEarnings: grossEarnings,
		TaxAmount:     taxAmount,
		NetEarnings:   grossEarnings - taxAmount,
		TaxRate:       settings.TaxRate,
	}
}

// FormatRate renders a rate as a one-decimal percentage, e.g. "30.0%".
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

// RateDescription classifies a rate into a burden band. Band edges are
// inclusive on the lower band.
func RateDescription(rate float64) string {
	switch {
	case rate <= 15:
		return "Low tax burden"
	case rate <= 25:
		return "Moderate tax burden"
	case rate <= 35:
		return "High tax burden"
	default:
		return "Very high tax burden"
	}
}
