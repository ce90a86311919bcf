package ui

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/viper"

	"github.com/highercomve/billtracker/internal/app"
	"github.com/highercomve/billtracker/internal/store"
)

// Config is the settings tab: data folder location and destructive resets.
type Config struct {
	window         fyne.Window
	storage        *store.Storage
	state          *app.State
	configFilePath string
}

func NewConfig(w fyne.Window, storage *store.Storage, state *app.State, configFilePath string) *Config {
	return &Config{window: w, storage: storage, state: state, configFilePath: configFilePath}
}

func (c *Config) MakeUI() fyne.CanvasObject {
	entry := widget.NewEntry()
	entry.SetText(viper.GetString("data_folder"))

	browseBtn := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				dialog.ShowError(err, c.window)
				return
			}
			if uri == nil {
				return
			}
			entry.SetText(uri.Path())
		}, c.window).Show()
	})

	folderContainer := container.NewBorder(nil, nil, nil, browseBtn, entry)

	saveBtn := widget.NewButton("Save Configuration", func() {
		newDataFolder := entry.Text
		if newDataFolder == "" {
			dialog.ShowError(errors.New("data folder must not be empty"), c.window)
			return
		}

		oldDataFolder := c.storage.BaseDir

		saveConfig := func() {
			viper.Set("data_folder", newDataFolder)
			if err := viper.WriteConfigAs(c.configFilePath); err != nil {
				dialog.ShowError(err, c.window)
				return
			}
			dialog.ShowInformation("Success", "Configuration saved.", c.window)
		}

		if newDataFolder == oldDataFolder {
			saveConfig()
			return
		}

		var d dialog.Dialog
		moveBtn := widget.NewButton("Move existing data", func() {
			d.Hide()
			if err := c.storage.MoveData(newDataFolder); err != nil {
				dialog.ShowError(err, c.window)
				return
			}
			saveConfig()
		})
		freshBtn := widget.NewButton("Start fresh", func() {
			d.Hide()
			c.storage.UpdateBaseDir(newDataFolder)
			if err := c.state.Load(); err != nil {
				dialog.ShowError(err, c.window)
				return
			}
			saveConfig()
		})

		content := container.NewVBox(
			widget.NewLabel("The data folder changed. Move the existing data or start fresh?"),
			container.NewHBox(moveBtn, freshBtn),
		)
		d = dialog.NewCustom("Data Folder Changed", "Cancel", content, c.window)
		d.Show()
	})

	eraseBtn := widget.NewButtonWithIcon("Erase All Data", theme.DeleteIcon(), func() {
		dialog.ShowConfirm("Erase All Data", "Delete every project, session and setting? This cannot be undone.", func(confirmed bool) {
			if !confirmed {
				return
			}
			if err := c.storage.DeleteAll(); err != nil {
				dialog.ShowError(err, c.window)
				return
			}
			c.state.Reset()
			dialog.ShowInformation("Success", "All data erased.", c.window)
		}, c.window)
	})
	eraseBtn.Importance = widget.DangerImportance

	quitBtn := widget.NewButtonWithIcon("Quit", theme.LogoutIcon(), func() {
		fyne.CurrentApp().Quit()
	})

	return container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Data folder", folderContainer),
		),
		saveBtn,
		widget.NewSeparator(),
		eraseBtn,
		widget.NewSeparator(),
		quitBtn,
	)
}
