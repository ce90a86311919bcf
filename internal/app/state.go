// Package app holds the shared application state: the project collection,
// the current selection and the tax settings. Every mutation goes through the
// ledger, is persisted immediately, and notifies subscribed views. There are
// no package-level singletons; the state is built in main and handed to the
// UI.
package app

import (
	"sync"

	"go.uber.org/zap"

	"github.com/highercomve/billtracker/internal/ledger"
	"github.com/highercomve/billtracker/internal/models"
	"github.com/highercomve/billtracker/internal/store"
)

type State struct {
	mu      sync.Mutex
	storage *store.Storage
	log     *zap.SugaredLogger

	projects    []models.Project
	currentID   string
	taxSettings models.TaxSettings

	listeners []func()
}

func NewState(storage *store.Storage, log *zap.SugaredLogger) *State {
	return &State{storage: storage, log: log}
}

// Load pulls projects, tax settings and the previous selection from disk.
// A stale selection falls back to the first project. Safe to call again after
// the storage directory changes; subscribers are notified of the new model.
func (s *State) Load() error {
	s.mu.Lock()

	projects, err := s.storage.LoadProjects()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	settings, err := s.storage.LoadTaxSettings()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	appState, err := s.storage.LoadAppState()
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.projects = projects
	s.taxSettings = settings
	s.currentID = ""
	if _, ok := ledger.FindProject(projects, appState.CurrentProjectID); ok {
		s.currentID = appState.CurrentProjectID
	} else if len(projects) > 0 {
		s.currentID = projects[0].ID
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

// Subscribe registers a callback fired after every state change. Callbacks
// run on the caller's goroutine while no lock is held.
func (s *State) Subscribe(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *State) notify() {
	s.mu.Lock()
	listeners := append([]func(){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// Projects returns a copy of the collection.
func (s *State) Projects() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Project{}, s.projects...)
}

// CurrentProject returns the selected project, if any.
func (s *State) CurrentProject() (models.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ledger.FindProject(s.projects, s.currentID)
}

// SelectProject switches the selection. Unknown ids are ignored.
func (s *State) SelectProject(id string) {
	s.mu.Lock()
	if _, ok := ledger.FindProject(s.projects, id); !ok || id == s.currentID {
		s.mu.Unlock()
		return
	}
	s.currentID = id
	s.persistAppStateLocked()
	s.mu.Unlock()
	s.notify()
}

// CreateProject validates the name against the collection, creates the
// project and auto-selects it when nothing was selected before.
func (s *State) CreateProject(name string, rate float64) error {
	s.mu.Lock()
	if err := ledger.ValidateName(s.projects, name, ""); err != nil {
		s.mu.Unlock()
		return err
	}
	project, err := ledger.NewProject(name, rate)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.projects = append(s.projects, project)
	if s.currentID == "" {
		s.currentID = project.ID
	}
	err = s.persistProjectsLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// EditProject renames or reprices a project. Recorded blocks keep their
// historical rate and earnings.
func (s *State) EditProject(id, newName string, newRate float64) error {
	s.mu.Lock()
	project, ok := ledger.FindProject(s.projects, id)
	if !ok {
		s.mu.Unlock()
		return nil
	}
	if err := ledger.ValidateName(s.projects, newName, id); err != nil {
		s.mu.Unlock()
		return err
	}
	updated, err := ledger.EditProject(project, newName, newRate)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.projects = ledger.UpsertProject(s.projects, updated)
	err = s.persistProjectsLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// DeleteProject removes a project and its blocks, then reassigns the
// selection to the first remaining project.
func (s *State) DeleteProject(id string) error {
	s.mu.Lock()
	s.projects = ledger.DeleteProject(s.projects, id)
	s.currentID = ledger.NextSelection(s.projects, s.currentID)
	err := s.persistProjectsLocked()
	s.persistAppStateLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// RecordBlock appends a completed session to its project and recomputes the
// totals.
func (s *State) RecordBlock(projectID string, block models.TimeBlock) error {
	s.mu.Lock()
	project, ok := ledger.FindProject(s.projects, projectID)
	if !ok {
		s.mu.Unlock()
		s.log.Warnw("discarding session for deleted project", "project_id", projectID)
		return nil
	}
	s.projects = ledger.UpsertProject(s.projects, ledger.AppendTimeBlock(project, block))
	err := s.persistProjectsLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// DeleteBlock removes one time block. Ids that are already gone are no-ops.
func (s *State) DeleteBlock(projectID, blockID string) error {
	s.mu.Lock()
	project, ok := ledger.FindProject(s.projects, projectID)
	if !ok {
		s.mu.Unlock()
		return nil
	}
	s.projects = ledger.UpsertProject(s.projects, ledger.RemoveTimeBlock(project, blockID))
	err := s.persistProjectsLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// TaxSettings returns the current tax configuration.
func (s *State) TaxSettings() models.TaxSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taxSettings
}

// SetTaxSettings replaces and persists the tax configuration.
func (s *State) SetTaxSettings(settings models.TaxSettings) error {
	s.mu.Lock()
	s.taxSettings = settings
	err := s.storage.SaveTaxSettings(settings)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// Reset clears the in-memory model after the on-disk data was erased.
func (s *State) Reset() {
	s.mu.Lock()
	s.projects = []models.Project{}
	s.currentID = ""
	s.mu.Unlock()
	s.notify()
}

func (s *State) persistProjectsLocked() error {
	if err := s.storage.SaveProjects(s.projects); err != nil {
		s.log.Errorw("failed to persist projects", "error", err)
		return err
	}
	return nil
}

func (s *State) persistAppStateLocked() {
	state, err := s.storage.LoadAppState()
	if err != nil {
		s.log.Warnw("failed to load app state", "error", err)
	}
	state.CurrentProjectID = s.currentID
	if err := s.storage.SaveAppState(state); err != nil {
		s.log.Warnw("failed to persist app state", "error", err)
	}
}
