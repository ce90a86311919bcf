package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/highercomve/billtracker/internal/app"
	"github.com/highercomve/billtracker/internal/billing"
	"github.com/highercomve/billtracker/internal/export"
	"github.com/highercomve/billtracker/internal/ledger"
)

// Export is the export tab: collection rollup plus CSV and PDF downloads.
type Export struct {
	state *app.State
	log   *zap.SugaredLogger
}

func NewExport(state *app.State, log *zap.SugaredLogger) *Export {
	return &Export{state: state, log: log}
}

func (e *Export) MakeUI() fyne.CanvasObject {
	statsLabel := widget.NewLabel("")

	refresh := func() {
		totals := ledger.TotalsAcross(e.state.Projects())
		statsLabel.SetText(fmt.Sprintf("%d sessions, %s tracked, %s earned",
			totals.Sessions, billing.FormatCompact(totals.Time), billing.FormatMoney(totals.Earnings)))
	}
	e.state.Subscribe(func() {
		fyne.Do(refresh)
	})
	refresh()

	sessionsBtn := widget.NewButtonWithIcon("Export Sessions CSV", theme.DocumentSaveIcon(), func() {
		e.saveText(export.Filename("sessions", time.Now()), func() string {
			return export.SessionsCSV(e.state.Projects(), e.state.TaxSettings())
		})
	})

	summaryBtn := widget.NewButtonWithIcon("Export Summary CSV", theme.DocumentSaveIcon(), func() {
		e.saveText(export.Filename("summary", time.Now()), func() string {
			return export.SummaryCSV(e.state.Projects(), e.state.TaxSettings())
		})
	})

	pdfBtn := widget.NewButtonWithIcon("Export Earnings PDF", theme.DocumentSaveIcon(), func() {
		e.savePDF(fmt.Sprintf("earnings-%s.pdf", time.Now().Format("2006-01-02")))
	})

	return container.NewVBox(
		statsLabel,
		widget.NewSeparator(),
		widget.NewLabel("Detailed sessions: one row per tracked session with timestamps, duration and earnings."),
		sessionsBtn,
		widget.NewLabel("Project summary: totals, session counts and averages per project."),
		summaryBtn,
		widget.NewLabel("Earnings report: printable PDF with per-project session tables."),
		pdfBtn,
	)
}

func (e *Export) saveText(filename string, generate func() string) {
	if len(e.state.Projects()) == 0 {
		showInfo("Nothing to Export", "Create a project and track a session first.")
		return
	}
	saver := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			showError(err)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()
		if _, err := writer.Write([]byte(generate())); err != nil {
			e.log.Errorw("csv export failed", "error", err)
			showError(err)
			return
		}
		e.log.Infow("exported csv", "file", writer.URI().String())
	}, parentWindow())
	saver.SetFileName(filename)
	saver.Show()
}

func (e *Export) savePDF(filename string) {
	if len(e.state.Projects()) == 0 {
		showInfo("Nothing to Export", "Create a project and track a session first.")
		return
	}
	saver := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			showError(err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		// maroto writes to a path, not a writer.
		if err := export.EarningsPDF(path, e.state.Projects(), e.state.TaxSettings()); err != nil {
			e.log.Errorw("pdf export failed", "error", err)
			showError(err)
			return
		}
		e.log.Infow("exported pdf", "file", path)
	}, parentWindow())
	saver.SetFileName(filename)
	saver.Show()
}
