package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highercomve/billtracker/internal/billing"
	"github.com/highercomve/billtracker/internal/ledger"
	"github.com/highercomve/billtracker/internal/models"
	"github.com/highercomve/billtracker/internal/tax"
)

func seedProjects(t *testing.T) []models.Project {
	t.Helper()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	p, err := ledger.NewProject("Design", 60)
	require.NoError(t, err)
	block, err := billing.NewTimeBlock(start, start.Add(30*time.Minute), 60)
	require.NoError(t, err)
	return []models.Project{ledger.AppendTimeBlock(p, block)}
}

func TestProjectsRoundTrip(t *testing.T) {
	s := NewStorage(t.TempDir())

	t.Run("empty store yields empty collection", func(t *testing.T) {
		projects, err := s.LoadProjects()
		require.NoError(t, err)
		assert.Empty(t, projects)
	})

	t.Run("save and reload preserves instants", func(t *testing.T) {
		seeded := seedProjects(t)
		require.NoError(t, s.SaveProjects(seeded))

		loaded, err := s.LoadProjects()
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		require.Len(t, loaded[0].TimeBlocks, 1)

		want := seeded[0].TimeBlocks[0]
		got := loaded[0].TimeBlocks[0]
		assert.True(t, want.StartTime.Equal(got.StartTime))
		assert.True(t, want.EndTime.Equal(got.EndTime))
		assert.Equal(t, want.Duration, got.Duration)
		assert.Equal(t, want.Earnings, got.Earnings)
		assert.Equal(t, seeded[0].TotalTime, loaded[0].TotalTime)
	})

	t.Run("nil block slices come back empty", func(t *testing.T) {
		dir := t.TempDir()
		s2 := NewStorage(dir)
		err := os.WriteFile(filepath.Join(dir, "projects.json"),
			[]byte(`[{"id":"a","name":"Design","rate":60}]`), 0644)
		require.NoError(t, err)

		loaded, err := s2.LoadProjects()
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.NotNil(t, loaded[0].TimeBlocks)
		assert.Empty(t, loaded[0].TimeBlocks)
	})
}

func TestTaxSettingsRoundTrip(t *testing.T) {
	s := NewStorage(t.TempDir())

	t.Run("defaults on first run", func(t *testing.T) {
		settings, err := s.LoadTaxSettings()
		require.NoError(t, err)
		assert.Equal(t, tax.DefaultSettings, settings)
	})

	t.Run("round trip", func(t *testing.T) {
		want := models.TaxSettings{TaxRate: 22, IncludeInDisplays: false, IncludeInExports: true}
		require.NoError(t, s.SaveTaxSettings(want))

		got, err := s.LoadTaxSettings()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestAppStateRoundTrip(t *testing.T) {
	s := NewStorage(t.TempDir())

	state, err := s.LoadAppState()
	require.NoError(t, err)
	assert.Zero(t, state)

	state.LastRunVersion = "v0.3.0"
	state.CurrentProjectID = "p1"
	require.NoError(t, s.SaveAppState(state))

	got, err := s.LoadAppState()
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestMoveData(t *testing.T) {
	oldDir := t.TempDir()
	newDir := filepath.Join(t.TempDir(), "nested", "data")

	s := NewStorage(oldDir)
	require.NoError(t, s.SaveProjects(seedProjects(t)))
	require.NoError(t, s.SaveTaxSettings(tax.DefaultSettings))

	require.NoError(t, s.MoveData(newDir))
	assert.Equal(t, newDir, s.BaseDir)

	projects, err := s.LoadProjects()
	require.NoError(t, err)
	assert.Len(t, projects, 1)

	// The old files stay behind as a backup.
	_, err = os.Stat(filepath.Join(oldDir, "projects.json"))
	assert.NoError(t, err)
}

func TestDeleteAll(t *testing.T) {
	s := NewStorage(t.TempDir())
	require.NoError(t, s.SaveProjects(seedProjects(t)))
	require.NoError(t, s.SaveTaxSettings(tax.DefaultSettings))

	require.NoError(t, s.DeleteAll())

	projects, err := s.LoadProjects()
	require.NoError(t, err)
	assert.Empty(t, projects)

	// Deleting an already-empty store is fine.
	require.NoError(t, s.DeleteAll())
}
