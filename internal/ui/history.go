package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/highercomve/billtracker/internal/app"
	"github.com/highercomve/billtracker/internal/billing"
	"github.com/highercomve/billtracker/internal/ledger"
	"github.com/highercomve/billtracker/internal/service"
)

// History is the session log tab: every recorded block across all projects,
// newest first, optionally bucketed by day or week.
type History struct {
	state   *app.State
	groupBy string
	content *fyne.Container
}

func NewHistory(state *app.State) *History {
	return &History{state: state, groupBy: service.GroupByNone}
}

func (h *History) MakeUI() fyne.CanvasObject {
	h.content = container.NewVBox()

	groupSelect := widget.NewSelect(
		[]string{service.GroupByNone, service.GroupByDay, service.GroupByWeek},
		func(selected string) {
			h.groupBy = selected
			h.rebuild()
		},
	)
	groupSelect.SetSelected(service.GroupByNone)

	h.state.Subscribe(func() {
		fyne.Do(h.rebuild)
	})
	h.rebuild()

	top := container.NewHBox(widget.NewLabel("Group by:"), groupSelect)
	return container.NewBorder(top, nil, nil, nil, container.NewVScroll(h.content))
}

func (h *History) rebuild() {
	projects := h.state.Projects()
	rows := service.AllSessions(projects)

	h.content.Objects = nil
	if len(rows) == 0 {
		h.content.Add(widget.NewLabel("No sessions recorded yet."))
		h.content.Refresh()
		return
	}

	totals := ledger.TotalsAcross(projects)
	h.content.Add(widget.NewLabel(fmt.Sprintf("%d sessions, %s, %s total",
		totals.Sessions, billing.FormatClock(totals.Time), billing.FormatMoney(totals.Earnings))))
	h.content.Add(widget.NewSeparator())

	for _, group := range service.GroupSessions(rows, h.groupBy) {
		if group.Title != "" {
			title := widget.NewLabel(group.Title)
			title.TextStyle = fyne.TextStyle{Bold: true}
			h.content.Add(title)
		}
		for _, row := range group.Rows {
			h.content.Add(h.makeRow(row))
		}
		if group.Title != "" {
			subtotal := widget.NewLabel(fmt.Sprintf("Subtotal: %s / %s",
				billing.FormatClock(group.Time), billing.FormatMoney(group.Earnings)))
			subtotal.Alignment = fyne.TextAlignTrailing
			h.content.Add(subtotal)
			h.content.Add(widget.NewSeparator())
		}
	}
	h.content.Refresh()
}

func (h *History) makeRow(row service.SessionRow) fyne.CanvasObject {
	b := row.Block
	info := widget.NewLabel(fmt.Sprintf("%s  %s  %s  %s",
		row.ProjectName,
		b.StartTime.Format("Mon, 02 Jan 15:04"),
		billing.FormatClock(b.Duration),
		billing.FormatMoney(b.Earnings)))

	delBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		dialog.ShowConfirm("Confirm Deletion", "Delete this session?", func(confirmed bool) {
			if !confirmed {
				return
			}
			h.deleteBlock(b.ID)
		}, parentWindow())
	})

	return container.NewBorder(nil, nil, nil, delBtn, info)
}

func (h *History) deleteBlock(blockID string) {
	// The row only knows the block; find its owner by id.
	for _, p := range h.state.Projects() {
		for _, b := range p.TimeBlocks {
			if b.ID == blockID {
				if err := h.state.DeleteBlock(p.ID, blockID); err != nil {
					showError(err)
				}
				return
			}
		}
	}
}
