package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/highercomve/billtracker/internal/app"
	"github.com/highercomve/billtracker/internal/billing"
	"github.com/highercomve/billtracker/internal/tax"
)

// Taxes is the tax estimate settings tab. The slider covers the sensible
// 5-50% range; the estimator itself accepts any rate.
type Taxes struct {
	state *app.State
}

func NewTaxes(state *app.State) *Taxes {
	return &Taxes{state: state}
}

func (t *Taxes) MakeUI() fyne.CanvasObject {
	settings := t.state.TaxSettings()

	rateLabel := widget.NewLabel("")
	previewLabel := widget.NewLabel("")

	slider := widget.NewSlider(5, 50)
	slider.Step = 1
	slider.Value = settings.TaxRate

	refresh := func() {
		s := t.state.TaxSettings()
		rateLabel.SetText(fmt.Sprintf("%s (%s)", tax.FormatRate(s.TaxRate), tax.RateDescription(s.TaxRate)))

		// Preview against the selected project's earnings, or a round sample.
		sample := 1000.0
		if p, ok := t.state.CurrentProject(); ok && p.TotalEarnings > 0 {
			sample = p.TotalEarnings
		}
		calc := tax.Calculate(sample, s)
		previewLabel.SetText(fmt.Sprintf("On %s gross: %s tax, %s net",
			billing.FormatMoney(calc.GrossEarnings),
			billing.FormatMoney(calc.TaxAmount),
			billing.FormatMoney(calc.NetEarnings)))
	}

	slider.OnChanged = func(value float64) {
		s := t.state.TaxSettings()
		s.TaxRate = value
		if err := t.state.SetTaxSettings(s); err != nil {
			showError(err)
		}
	}

	presetNames := make([]string, len(tax.Presets))
	for i, p := range tax.Presets {
		presetNames[i] = fmt.Sprintf("%s: %s", tax.FormatRate(p.Rate), p.Label)
	}
	presetSelect := widget.NewSelect(presetNames, func(string) {})
	presetSelect.PlaceHolder = "Presets"
	presetSelect.OnChanged = func(string) {
		idx := presetSelect.SelectedIndex()
		if idx < 0 || idx >= len(tax.Presets) {
			return
		}
		s := t.state.TaxSettings()
		s.TaxRate = tax.Presets[idx].Rate
		slider.SetValue(s.TaxRate)
		if err := t.state.SetTaxSettings(s); err != nil {
			showError(err)
		}
	}

	displayCheck := widget.NewCheck("Show tax estimates in displays", func(checked bool) {
		s := t.state.TaxSettings()
		s.IncludeInDisplays = checked
		if err := t.state.SetTaxSettings(s); err != nil {
			showError(err)
		}
	})
	displayCheck.Checked = settings.IncludeInDisplays

	exportCheck := widget.NewCheck("Include tax estimates in exports", func(checked bool) {
		s := t.state.TaxSettings()
		s.IncludeInExports = checked
		if err := t.state.SetTaxSettings(s); err != nil {
			showError(err)
		}
	})
	exportCheck.Checked = settings.IncludeInExports

	t.state.Subscribe(func() {
		fyne.Do(refresh)
	})
	refresh()

	return container.NewVBox(
		widget.NewLabel("Flat tax rate estimate"),
		slider,
		rateLabel,
		presetSelect,
		widget.NewSeparator(),
		displayCheck,
		exportCheck,
		widget.NewSeparator(),
		previewLabel,
	)
}
