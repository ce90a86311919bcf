package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/highercomve/billtracker/internal/app"
	"github.com/highercomve/billtracker/internal/billing"
	"github.com/highercomve/billtracker/internal/models"
	"github.com/highercomve/billtracker/internal/timer"
)

// Projects is the project management tab: create, edit and delete billing
// buckets. Deleting the project a session is running against is blocked.
type Projects struct {
	state    *app.State
	timer    *timer.Timer
	projects []models.Project
	list     *widget.List
}

func NewProjects(state *app.State, t *timer.Timer) *Projects {
	return &Projects{state: state, timer: t}
}

func (pm *Projects) MakeUI() fyne.CanvasObject {
	pm.projects = pm.state.Projects()

	pm.list = widget.NewList(
		func() int { return len(pm.projects) },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, nil,
				container.NewHBox(
					widget.NewLabel("0h 0m"),
					widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), nil),
					widget.NewButtonWithIcon("", theme.DeleteIcon(), nil),
				),
				widget.NewLabel("Name"))
		},
		func(i int, o fyne.CanvasObject) {
			if i >= len(pm.projects) {
				return
			}
			p := pm.projects[i]
			box := o.(*fyne.Container)
			name := box.Objects[0].(*widget.Label)
			right := box.Objects[1].(*fyne.Container)
			totals := right.Objects[0].(*widget.Label)
			editBtn := right.Objects[1].(*widget.Button)
			delBtn := right.Objects[2].(*widget.Button)

			name.SetText(fmt.Sprintf("%s ($%.2f/hour)", p.Name, p.Rate))
			totals.SetText(fmt.Sprintf("%s / %s", billing.FormatCompact(p.TotalTime), billing.FormatMoney(p.TotalEarnings)))
			editBtn.OnTapped = func() { pm.showEditDialog(p) }
			delBtn.OnTapped = func() { pm.confirmDelete(p) }
		},
	)

	addBtn := widget.NewButtonWithIcon("New Project", theme.ContentAddIcon(), func() {
		pm.showCreateDialog()
	})

	pm.state.Subscribe(func() {
		fyne.Do(func() {
			pm.projects = pm.state.Projects()
			pm.list.Refresh()
		})
	})

	return container.NewBorder(addBtn, nil, nil, nil, pm.list)
}

func (pm *Projects) showCreateDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.PlaceHolder = "Project name"
	rateEntry := widget.NewEntry()
	rateEntry.PlaceHolder = "Hourly rate"

	items := []*widget.FormItem{
		widget.NewFormItem("Name", nameEntry),
		widget.NewFormItem("Rate ($/hour)", rateEntry),
	}

	parent := parentWindow()
	dlg := dialog.NewForm("New Project", "Create", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		rate, err := parseRate(rateEntry.Text)
		if err != nil {
			showError(err)
			return
		}
		if err := pm.state.CreateProject(nameEntry.Text, rate); err != nil {
			showError(err)
		}
	}, parent)
	dlg.Resize(fyne.NewSize(320, dlg.MinSize().Height))
	dlg.Show()
}

func (pm *Projects) showEditDialog(p models.Project) {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(p.Name)
	rateEntry := widget.NewEntry()
	rateEntry.SetText(strconv.FormatFloat(p.Rate, 'f', 2, 64))

	items := []*widget.FormItem{
		widget.NewFormItem("Name", nameEntry),
		widget.NewFormItem("Rate ($/hour)", rateEntry),
	}

	parent := parentWindow()
	dlg := dialog.NewForm("Edit Project", "Save", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		rate, err := parseRate(rateEntry.Text)
		if err != nil {
			showError(err)
			return
		}
		// Rate changes apply to future sessions only; recorded blocks keep
		// the rate they were tracked at.
		if err := pm.state.EditProject(p.ID, nameEntry.Text, rate); err != nil {
			showError(err)
		}
	}, parent)
	dlg.Resize(fyne.NewSize(320, dlg.MinSize().Height))
	dlg.Show()
}

func (pm *Projects) confirmDelete(p models.Project) {
	if pm.timer.Running() && pm.timer.ProjectID() == p.ID {
		showInfo("Timer Running", "Stop the timer before deleting this project.")
		return
	}
	message := fmt.Sprintf("Delete %q? This permanently removes all of its tracked sessions.", p.Name)
	dialog.ShowConfirm("Confirm Deletion", message, func(confirmed bool) {
		if !confirmed {
			return
		}
		if err := pm.state.DeleteProject(p.ID); err != nil {
			showError(err)
		}
	}, parentWindow())
}

func parseRate(text string) (float64, error) {
	rate, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("hourly rate must be a number")
	}
	return rate, nil
}

func parentWindow() fyne.Window {
	return fyne.CurrentApp().Driver().AllWindows()[0]
}
