// Package store is the persistence adapter: each logical key (projects, tax
// settings, app state) lives in its own JSON file under the data directory.
// Values round-trip through encoding/json, which keeps time.Time fields as
// RFC 3339 strings and restores them to proper instants on load.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/highercomve/billtracker/internal/models"
	"github.com/highercomve/billtracker/internal/tax"
)

const (
	projectsKey    = "projects"
	taxSettingsKey = "tax-settings"
	appStateKey    = "state"
)

type Storage struct {
	BaseDir string
	mu      sync.Mutex
}

func NewStorage(baseDir string) *Storage {
	os.MkdirAll(baseDir, 0755)
	return &Storage{BaseDir: baseDir}
}

func (s *Storage) keyPath(key string) string {
	return filepath.Join(s.BaseDir, key+".json")
}

// load reads the file backing key into v. Returns os.ErrNotExist (wrapped)
// when the key has never been saved.
func (s *Storage) load(key string, v interface{}) error {
	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

func (s *Storage) save(key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return os.WriteFile(s.keyPath(key), data, 0644)
}

// LoadProjects returns the stored project collection, or an empty one when
// nothing has been saved yet.
func (s *Storage) LoadProjects() ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var projects []models.Project
	if err := s.load(projectsKey, &projects); err != nil {
		if os.IsNotExist(err) {
			return []models.Project{}, nil
		}
		return nil, err
	}
	// A hand-edited file can leave nil block slices behind.
	for i := range projects {
		if projects[i].TimeBlocks == nil {
			projects[i].TimeBlocks = []models.TimeBlock{}
		}
	}
	return projects, nil
}

func (s *Storage) SaveProjects(projects []models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(projectsKey, projects)
}

// LoadTaxSettings returns the stored settings, falling back to the defaults
// on first run.
func (s *Storage) LoadTaxSettings() (models.TaxSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var settings models.TaxSettings
	if err := s.load(taxSettingsKey, &settings); err != nil {
		if os.IsNotExist(err) {
			return tax.DefaultSettings, nil
		}
		return tax.DefaultSettings, err
	}
	return settings, nil
}

func (s *Storage) SaveTaxSettings(settings models.TaxSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(taxSettingsKey, settings)
}

func (s *Storage) LoadAppState() (models.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var state models.AppState
	if err := s.load(appStateKey, &state); err != nil {
		if os.IsNotExist(err) {
			return models.AppState{}, nil
		}
		return models.AppState{}, err
	}
	return state, nil
}

func (s *Storage) SaveAppState(state models.AppState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(appStateKey, state)
}

// UpdateBaseDir points the store at a new directory without moving anything.
func (s *Storage) UpdateBaseDir(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	os.MkdirAll(dir, 0755)
	s.BaseDir = dir
}

// MoveData copies every data file into the new directory and switches over.
// The old files are left in place as a backup.
func (s *Storage) MoveData(newDir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(newDir, 0755); err != nil {
		return err
	}
	for _, key := range []string{projectsKey, taxSettingsKey, appStateKey} {
		src := s.keyPath(key)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		if err := copyFile(src, filepath.Join(newDir, key+".json")); err != nil {
			return fmt.Errorf("moving %s: %w", key, err)
		}
	}
	s.BaseDir = newDir
	return nil
}

// DeleteAll erases every stored key. The in-memory model is the caller's to reset.
func (s *Storage) DeleteAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{projectsKey, taxSettingsKey, appStateKey} {
		if err := os.Remove(s.keyPath(key)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
