package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// SetupTray installs the system tray menu; closing the window hides it
// instead of quitting so a running session keeps ticking.
func SetupTray(a fyne.App, w fyne.Window, icon fyne.Resource, d *Dashboard) {
	if desk, ok := a.(desktop.App); ok {
		m := fyne.NewMenu("Bill Tracker",
			fyne.NewMenuItem("Show", func() {
				w.Show()
			}),
			fyne.NewMenuItem("Start/Stop Timer", func() {
				d.Toggle()
			}),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Quit", func() {
				a.Quit()
			}),
		)
		desk.SetSystemTrayMenu(m)
		desk.SetSystemTrayIcon(icon)
	}

	w.SetCloseIntercept(func() {
		w.Hide()
	})
}
