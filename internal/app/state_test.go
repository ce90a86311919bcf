package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/highercomve/billtracker/internal/billing"
	"github.com/highercomve/billtracker/internal/ledger"
	"github.com/highercomve/billtracker/internal/models"
	"github.com/highercomve/billtracker/internal/store"
	"github.com/highercomve/billtracker/internal/tax"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	s := NewState(store.NewStorage(t.TempDir()), zap.NewNop().Sugar())
	require.NoError(t, s.Load())
	return s
}

func mustBlock(t *testing.T, start time.Time, seconds int64, rate float64) models.TimeBlock {
	t.Helper()
	block, err := billing.NewTimeBlock(start, start.Add(time.Duration(seconds)*time.Second), rate)
	require.NoError(t, err)
	return block
}

func TestCreateProject(t *testing.T) {
	s := newTestState(t)

	t.Run("first project becomes the selection", func(t *testing.T) {
		require.NoError(t, s.CreateProject("Design", 60))
		current, ok := s.CurrentProject()
		require.True(t, ok)
		assert.Equal(t, "Design", current.Name)
		assert.Equal(t, 60.0, current.Rate)
	})

	t.Run("second project does not steal the selection", func(t *testing.T) {
		require.NoError(t, s.CreateProject("Research", 45))
		current, ok := s.CurrentProject()
		require.True(t, ok)
		assert.Equal(t, "Design", current.Name)
		assert.Len(t, s.Projects(), 2)
	})

	t.Run("duplicate names are rejected case-insensitively", func(t *testing.T) {
		assert.ErrorIs(t, s.CreateProject("  design ", 10), ledger.ErrDuplicateName)
		assert.Len(t, s.Projects(), 2)
	})

	t.Run("blank name and bad rate are rejected", func(t *testing.T) {
		assert.ErrorIs(t, s.CreateProject("   ", 10), ledger.ErrEmptyName)
		assert.ErrorIs(t, s.CreateProject("Ops", 0), ledger.ErrInvalidRate)
	})
}

func TestSelectProject(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.CreateProject("Design", 60))
	require.NoError(t, s.CreateProject("Research", 45))
	research := s.Projects()[1]

	s.SelectProject(research.ID)
	current, ok := s.CurrentProject()
	require.True(t, ok)
	assert.Equal(t, "Research", current.Name)

	// Unknown ids leave the selection alone.
	s.SelectProject("nope")
	current, _ = s.CurrentProject()
	assert.Equal(t, "Research", current.Name)
}

func TestEditProjectKeepsHistory(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.CreateProject("Design", 60))
	project := s.Projects()[0]

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordBlock(project.ID, mustBlock(t, start, 1800, 60)))

	require.NoError(t, s.EditProject(project.ID, "Design v2", 90))

	updated := s.Projects()[0]
	assert.Equal(t, "Design v2", updated.Name)
	assert.Equal(t, 90.0, updated.Rate)
	require.Len(t, updated.TimeBlocks, 1)
	assert.Equal(t, 60.0, updated.TimeBlocks[0].Rate)
	assert.Equal(t, 30.0, updated.TotalEarnings)

	t.Run("renaming onto another project fails", func(t *testing.T) {
		require.NoError(t, s.CreateProject("Research", 45))
		assert.ErrorIs(t, s.EditProject(project.ID, "research", 90), ledger.ErrDuplicateName)
	})

	t.Run("editing an unknown id is a no-op", func(t *testing.T) {
		require.NoError(t, s.EditProject("nope", "Ghost", 10))
		assert.Len(t, s.Projects(), 2)
	})
}

func TestDeleteProjectReassignsSelection(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.CreateProject("Design", 60))
	require.NoError(t, s.CreateProject("Research", 45))

	design := s.Projects()[0]
	require.NoError(t, s.DeleteProject(design.ID))

	current, ok := s.CurrentProject()
	require.True(t, ok)
	assert.Equal(t, "Research", current.Name)

	require.NoError(t, s.DeleteProject(current.ID))
	_, ok = s.CurrentProject()
	assert.False(t, ok)
	assert.Empty(t, s.Projects())
}

func TestRecordAndDeleteBlock(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.CreateProject("Design", 60))
	project := s.Projects()[0]
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.RecordBlock(project.ID, mustBlock(t, start, 3600, 60)))
	require.NoError(t, s.RecordBlock(project.ID, mustBlock(t, start.Add(2*time.Hour), 1800, 60)))

	updated := s.Projects()[0]
	assert.Equal(t, int64(5400), updated.TotalTime)
	assert.Equal(t, 90.0, updated.TotalEarnings)

	t.Run("sessions for a deleted project are discarded", func(t *testing.T) {
		require.NoError(t, s.RecordBlock("nope", mustBlock(t, start, 60, 60)))
		assert.Equal(t, int64(5400), s.Projects()[0].TotalTime)
	})

	t.Run("deleting a block recomputes totals", func(t *testing.T) {
		victim := s.Projects()[0].TimeBlocks[0]
		require.NoError(t, s.DeleteBlock(project.ID, victim.ID))
		updated := s.Projects()[0]
		require.Len(t, updated.TimeBlocks, 1)
		assert.Equal(t, int64(5400)-victim.Duration, updated.TotalTime)
		assert.Equal(t, 90.0-victim.Earnings, updated.TotalEarnings)
	})

	t.Run("deleting an unknown block is a no-op", func(t *testing.T) {
		before := s.Projects()[0]
		require.NoError(t, s.DeleteBlock(project.ID, "nope"))
		require.NoError(t, s.DeleteBlock("nope", "nope"))
		assert.Equal(t, before.TotalTime, s.Projects()[0].TotalTime)
	})
}

func TestStatePersistsAcrossLoads(t *testing.T) {
	dir := t.TempDir()
	storage := store.NewStorage(dir)

	s := NewState(storage, zap.NewNop().Sugar())
	require.NoError(t, s.Load())
	require.NoError(t, s.CreateProject("Design", 60))
	require.NoError(t, s.CreateProject("Research", 45))
	research := s.Projects()[1]
	s.SelectProject(research.ID)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordBlock(research.ID, mustBlock(t, start, 1800, 45)))
	require.NoError(t, s.SetTaxSettings(models.TaxSettings{TaxRate: 25, IncludeInDisplays: true, IncludeInExports: false}))

	reloaded := NewState(store.NewStorage(dir), zap.NewNop().Sugar())
	require.NoError(t, reloaded.Load())

	current, ok := reloaded.CurrentProject()
	require.True(t, ok)
	assert.Equal(t, "Research", current.Name)
	assert.Equal(t, int64(1800), current.TotalTime)
	assert.Equal(t, 22.5, current.TotalEarnings)
	assert.Equal(t, 25.0, reloaded.TaxSettings().TaxRate)
}

func TestStaleSelectionFallsBack(t *testing.T) {
	dir := t.TempDir()
	storage := store.NewStorage(dir)

	s := NewState(storage, zap.NewNop().Sugar())
	require.NoError(t, s.Load())
	require.NoError(t, s.CreateProject("Design", 60))

	// Point the saved selection at a project that no longer exists.
	state, err := storage.LoadAppState()
	require.NoError(t, err)
	state.CurrentProjectID = "gone"
	require.NoError(t, storage.SaveAppState(state))

	reloaded := NewState(store.NewStorage(dir), zap.NewNop().Sugar())
	require.NoError(t, reloaded.Load())
	current, ok := reloaded.CurrentProject()
	require.True(t, ok)
	assert.Equal(t, "Design", current.Name)
}

func TestSubscribeNotifies(t *testing.T) {
	s := newTestState(t)
	calls := 0
	s.Subscribe(func() { calls++ })

	require.NoError(t, s.CreateProject("Design", 60))
	assert.Equal(t, 1, calls)

	require.NoError(t, s.SetTaxSettings(tax.DefaultSettings))
	assert.Equal(t, 2, calls)
}

func TestReset(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.CreateProject("Design", 60))

	s.Reset()
	assert.Empty(t, s.Projects())
	_, ok := s.CurrentProject()
	assert.False(t, ok)
}

func TestTaxWorkflow(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.CreateProject("Design", 60))
	project := s.Projects()[0]

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordBlock(project.ID, mustBlock(t, start, 1800, 60)))
	require.NoError(t, s.SetTaxSettings(models.TaxSettings{TaxRate: 25, IncludeInDisplays: true, IncludeInExports: true}))

	gross := s.Projects()[0].TotalEarnings
	calc := tax.Calculate(gross, s.TaxSettings())
	assert.Equal(t, 30.0, calc.GrossEarnings)
	assert.Equal(t, 7.5, calc.TaxAmount)
	assert.Equal(t, 22.5, calc.NetEarnings)
}
