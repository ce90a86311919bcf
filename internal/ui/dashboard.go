package ui

import (
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/highercomve/billtracker/internal/app"
	"github.com/highercomve/billtracker/internal/billing"
	"github.com/highercomve/billtracker/internal/tax"
	"github.com/highercomve/billtracker/internal/timer"
)

// Dashboard is the tracker tab: project selector, stopwatch, session vs
// total display, and the start/stop control.
type Dashboard struct {
	state *app.State
	timer *timer.Timer
	log   *zap.SugaredLogger

	clockData    binding.String
	earningsData binding.String
	taxData      binding.String
	showTotal    bool

	selector *widget.Select
	startBtn *widget.Button
}

func NewDashboard(state *app.State, t *timer.Timer, log *zap.SugaredLogger) *Dashboard {
	return &Dashboard{
		state:        state,
		timer:        t,
		log:          log,
		clockData:    binding.NewString(),
		earningsData: binding.NewString(),
		taxData:      binding.NewString(),
	}
}

func (d *Dashboard) MakeUI() fyne.CanvasObject {
	d.clockData.Set("00:00:00")
	d.earningsData.Set("$0.00")

	clockLabel := widget.NewLabelWithData(d.clockData)
	clockLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	clockLabel.Alignment = fyne.TextAlignCenter

	earningsLabel := widget.NewLabelWithData(d.earningsData)
	earningsLabel.Alignment = fyne.TextAlignCenter

	taxLabel := widget.NewLabelWithData(d.taxData)
	taxLabel.Alignment = fyne.TextAlignCenter

	d.selector = widget.NewSelect(nil, func(string) {
		idx := d.selector.SelectedIndex()
		projects := d.state.Projects()
		if idx >= 0 && idx < len(projects) {
			d.state.SelectProject(projects[idx].ID)
		}
		d.refreshDisplay()
	})
	d.selector.PlaceHolder = "Select a project"

	d.startBtn = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		d.Toggle()
	})

	modeCheck := widget.NewCheck("Show project total", func(checked bool) {
		d.showTotal = checked
		d.refreshDisplay()
	})

	d.state.Subscribe(func() {
		fyne.Do(func() {
			d.refreshSelector()
			d.refreshDisplay()
		})
	})
	d.refreshSelector()
	d.refreshDisplay()

	// The ticker only redraws; elapsed time comes from the wall clock.
	go func() {
		ticker := time.NewTicker(time.Second)
		for range ticker.C {
			fyne.Do(func() {
				if d.timer.Running() {
					d.refreshDisplay()
				}
			})
		}
	}()

	return container.NewVBox(
		d.selector,
		clockLabel,
		earningsLabel,
		taxLabel,
		modeCheck,
		d.startBtn,
	)
}

// Toggle starts the timer when idle and stops it (recording the session)
// when running. It is also reached from the system tray.
func (d *Dashboard) Toggle() {
	if d.timer.Running() {
		d.StopSession()
		return
	}

	project, ok := d.state.CurrentProject()
	if !ok {
		showInfo("No Project Selected", "Select a project before starting the timer.")
		return
	}
	if err := d.timer.Start(&project); err != nil {
		if errors.Is(err, timer.ErrNoProject) {
			showInfo("No Project Selected", "Select a project before starting the timer.")
			return
		}
		d.log.Errorw("failed to start timer", "error", err)
		return
	}
	d.startBtn.SetText("Stop")
	d.startBtn.SetIcon(theme.MediaStopIcon())
	// Switching projects mid-session is not allowed.
	d.selector.Disable()
	d.refreshDisplay()
}

// StopSession ends the running session. Sessions under one second are
// discarded; anything longer is recorded against the project at its rate in
// effect right now.
func (d *Dashboard) StopSession() {
	projectID := d.timer.ProjectID()
	var rate float64
	if project, ok := d.state.CurrentProject(); ok && project.ID == projectID {
		rate = project.Rate
	}
	block, recorded, err := d.timer.Stop(rate)
	if err != nil {
		d.log.Errorw("failed to stop session", "error", err)
	} else if recorded {
		if err := d.state.RecordBlock(projectID, block); err != nil {
			showError(err)
		}
	}
	d.startBtn.SetText("Start")
	d.startBtn.SetIcon(theme.MediaPlayIcon())
	d.selector.Enable()
	d.refreshDisplay()
}

func (d *Dashboard) refreshSelector() {
	projects := d.state.Projects()
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = fmt.Sprintf("%s ($%.2f/hour)", p.Name, p.Rate)
	}
	d.selector.Options = names
	if current, ok := d.state.CurrentProject(); ok {
		for i, p := range projects {
			if p.ID == current.ID {
				d.selector.SetSelectedIndex(i)
				break
			}
		}
	} else {
		d.selector.ClearSelected()
	}
	d.selector.Refresh()
}

func (d *Dashboard) refreshDisplay() {
	var seconds int64
	var earnings float64

	project, hasProject := d.state.CurrentProject()
	if d.showTotal && hasProject {
		seconds = project.TotalTime
		earnings = project.TotalEarnings
	} else {
		seconds = d.timer.Elapsed()
		var rate float64
		if hasProject {
			rate = project.Rate
		}
		earnings = billing.ComputeEarnings(seconds, rate)
	}

	d.clockData.Set(billing.FormatClock(seconds))
	d.earningsData.Set(billing.FormatMoney(earnings))

	settings := d.state.TaxSettings()
	if settings.IncludeInDisplays {
		calc := tax.Calculate(earnings, settings)
		d.taxData.Set(fmt.Sprintf("Tax est. %s: %s, net %s",
			tax.FormatRate(calc.TaxRate),
			billing.FormatMoney(calc.TaxAmount),
			billing.FormatMoney(calc.NetEarnings)))
	} else {
		d.taxData.Set("")
	}
}

func showInfo(title, message string) {
	wins := fyne.CurrentApp().Driver().AllWindows()
	if len(wins) > 0 {
		dialog.ShowInformation(title, message, wins[0])
	}
}

func showError(err error) {
	wins := fyne.CurrentApp().Driver().AllWindows()
	if len(wins) > 0 {
		dialog.ShowError(err, wins[0])
	}
}
