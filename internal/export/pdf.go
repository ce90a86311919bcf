package export

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/highercomve/billtracker/internal/billing"
	"github.com/highercomve/billtracker/internal/ledger"
	"github.com/highercomve/billtracker/internal/models"
	"github.com/highercomve/billtracker/internal/tax"
)

var sessionGrid = []uint{3, 3, 2, 2, 2}

// EarningsPDF writes an A4 earnings report: one session table per project
// with its totals, then a grand total and, when enabled, the flat-rate tax
// estimate against overall earnings.
func EarningsPDF(path string, projects []models.Project, settings models.TaxSettings) error {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("Earnings Report", props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
	})

	headers := []string{"Start", "End", "Duration", "Rate", "Earnings"}

	for _, p := range projects {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(fmt.Sprintf("%s ($%.2f/hour)", p.Name, p.Rate), props.Text{
					Top:   5,
					Style: consts.Bold,
					Size:  12,
				})
			})
		})

		rows := [][]string{}
		for _, b := range ledger.SortedBlocks(p) {
			rows = append(rows, []string{
				FormatTimestamp(b.StartTime),
				FormatTimestamp(b.EndTime),
				billing.FormatClock(b.Duration),
				strconv.FormatFloat(b.Rate, 'f', 2, 64),
				strconv.FormatFloat(b.Earnings, 'f', 2, 64),
			})
		}

		m.TableList(headers, rows, props.TableList{
			HeaderProp: props.TableListContent{
				Size:      9,
				GridSizes: sessionGrid,
			},
			ContentProp: props.TableListContent{
				Size:      9,
				GridSizes: sessionGrid,
			},
			Align:                consts.Center,
			AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
			HeaderContentSpace:   1,
			Line:                 false,
		})

		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(fmt.Sprintf("Subtotal: %s / $%.2f", billing.FormatClock(p.TotalTime), p.TotalEarnings), props.Text{
					Style: consts.Bold,
					Align: consts.Right,
					Size:  10,
				})
			})
		})
		m.Row(5, func() {})
	}

	totals := ledger.TotalsAcross(projects)
	m.Row(20, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Total: %d sessions, %s, $%.2f", totals.Sessions, billing.FormatClock(totals.Time), totals.Earnings), props.Text{
				Top:   10,
				Style: consts.Bold,
				Align: consts.Right,
				Size:  12,
			})
		})
	})

	if settings.IncludeInExports {
		calc := tax.Calculate(totals.Earnings, settings)
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(fmt.Sprintf("Estimated tax (%s): $%.2f, net $%.2f", tax.FormatRate(calc.TaxRate), calc.TaxAmount, calc.NetEarnings), props.Text{
					Align: consts.Right,
					Size:  10,
				})
			})
		})
	}

	return m.OutputFileAndClose(path)
}
