package main

import (
	_ "embed"

	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"github.com/highercomve/billtracker/internal/app"
	"github.com/highercomve/billtracker/internal/logging"
	"github.com/highercomve/billtracker/internal/store"
	"github.com/highercomve/billtracker/internal/timer"
	"github.com/highercomve/billtracker/internal/ui"
	"github.com/highercomve/billtracker/internal/updater"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
)

//go:embed Icon.png
var embeddedIconBytes []byte

var userConfigFilePath string

func setupViper() error {
	viper.SetConfigName("billtracker")
	viper.SetConfigType("yaml")

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error getting user home directory: %w", err)
		}
		if runtime.GOOS == "windows" {
			configHome = filepath.Join(homeDir, "AppData", "Roaming")
		} else {
			configHome = filepath.Join(homeDir, ".config")
		}
	}

	userConfigFilePath = filepath.Join(configHome, "billtracker", "billtracker.yml")
	viper.SetConfigFile(userConfigFilePath)

	if err := os.MkdirAll(filepath.Dir(userConfigFilePath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	viper.SetDefault("data_folder", "./data")
	viper.SetDefault("debug", false)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			if err := viper.WriteConfigAs(userConfigFilePath); err != nil {
				return fmt.Errorf("error creating config file: %w", err)
			}
		} else {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func main() {
	os.Setenv("FYNE_SCALE", "auto")

	a := fyneapp.NewWithID("com.highercomve.bill-tracker")

	iconResource := fyne.NewStaticResource("billtracker.png", embeddedIconBytes)
	a.SetIcon(iconResource)

	w := a.NewWindow("Bill Tracker")
	w.Resize(fyne.NewSize(420, 640))

	if err := setupViper(); err != nil {
		dialog.ShowError(err, w)
		w.ShowAndRun()
		return
	}

	logger := logging.New(viper.GetBool("debug"))
	defer logger.Sync()
	log := logger.Sugar()

	go func() {
		if err := updater.SelfUpdate(log, "highercomve", "billtracker"); err != nil {
			log.Warnw("self-update failed", "error", err)
		}
	}()

	storage := store.NewStorage(viper.GetString("data_folder"))
	state := app.NewState(storage, log)
	if err := state.Load(); err != nil {
		dialog.ShowError(err, w)
	}

	sessionTimer := timer.New(nil)

	dashboard := ui.NewDashboard(state, sessionTimer, log)
	projects := ui.NewProjects(state, sessionTimer)
	taxes := ui.NewTaxes(state)
	history := ui.NewHistory(state)
	exports := ui.NewExport(state, log)
	configUI := ui.NewConfig(w, storage, state, userConfigFilePath)

	tabs := container.NewAppTabs(
		container.NewTabItem("Tracker", dashboard.MakeUI()),
		container.NewTabItem("Projects", projects.MakeUI()),
		container.NewTabItem("History", history.MakeUI()),
		container.NewTabItem("Taxes", taxes.MakeUI()),
		container.NewTabItem("Export", exports.MakeUI()),
		container.NewTabItem("Settings", configUI.MakeUI()),
	)

	w.SetContent(tabs)

	ui.SetupTray(a, w, iconResource, dashboard)
	ui.CheckVersion(w, storage)

	w.ShowAndRun()
}
