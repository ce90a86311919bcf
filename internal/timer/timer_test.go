package timer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highercomve/billtracker/internal/models"
)

// fakeClock is a controllable time source so timer behavior is deterministic.
type fakeClock struct {
	mu      sync.Mutex
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
}

func testProject() *models.Project {
	return &models.Project{ID: "p1", Name: "Design", Rate: 60}
}

func TestStart(t *testing.T) {
	t.Run("requires a project", func(t *testing.T) {
		tm := New(newFakeClock().Now)
		assert.ErrorIs(t, tm.Start(nil), ErrNoProject)
		assert.False(t, tm.Running())
	})

	t.Run("records the session start", func(t *testing.T) {
		clock := newFakeClock()
		tm := New(clock.Now)
		require.NoError(t, tm.Start(testProject()))
		assert.True(t, tm.Running())
		assert.Equal(t, clock.Now(), tm.SessionStart())
		assert.Equal(t, "p1", tm.ProjectID())
	})

	t.Run("rejects a second start", func(t *testing.T) {
		tm := New(newFakeClock().Now)
		require.NoError(t, tm.Start(testProject()))
		assert.ErrorIs(t, tm.Start(testProject()), ErrAlreadyRunning)
	})
}

func TestElapsedTracksWallClock(t *testing.T) {
	clock := newFakeClock()
	tm := New(clock.Now)

	assert.Equal(t, int64(0), tm.Elapsed())

	require.NoError(t, tm.Start(testProject()))
	assert.Equal(t, int64(0), tm.Elapsed())

	clock.Advance(90 * time.Second)
	assert.Equal(t, int64(90), tm.Elapsed())

	// A delayed tick cannot undercount: elapsed is derived, not counted.
	clock.Advance(10 * time.Minute)
	assert.Equal(t, int64(690), tm.Elapsed())
}

func TestStop(t *testing.T) {
	t.Run("records a block after a half-hour session", func(t *testing.T) {
		clock := newFakeClock()
		tm := New(clock.Now)
		start := clock.Now()

		require.NoError(t, tm.Start(testProject()))
		clock.Advance(1800 * time.Second)

		block, recorded, err := tm.Stop(60)
		require.NoError(t, err)
		require.True(t, recorded)
		assert.Equal(t, start, block.StartTime)
		assert.Equal(t, clock.Now(), block.EndTime)
		assert.Equal(t, int64(1800), block.Duration)
		assert.Equal(t, 60.0, block.Rate)
		assert.Equal(t, 30.0, block.Earnings)

		assert.False(t, tm.Running())
		assert.Equal(t, int64(0), tm.Elapsed())
		assert.True(t, tm.SessionStart().IsZero())
	})

	t.Run("same-second stop records nothing", func(t *testing.T) {
		clock := newFakeClock()
		tm := New(clock.Now)

		require.NoError(t, tm.Start(testProject()))
		clock.Advance(900 * time.Millisecond)

		_, recorded, err := tm.Stop(60)
		require.NoError(t, err)
		assert.False(t, recorded)
		assert.False(t, tm.Running())
		assert.Equal(t, int64(0), tm.Elapsed())
	})

	t.Run("stop while idle is a no-op", func(t *testing.T) {
		tm := New(newFakeClock().Now)
		_, recorded, err := tm.Stop(60)
		require.NoError(t, err)
		assert.False(t, recorded)
	})

	t.Run("bills at the rate passed on stop", func(t *testing.T) {
		clock := newFakeClock()
		tm := New(clock.Now)

		require.NoError(t, tm.Start(testProject()))
		clock.Advance(time.Hour)

		// The project's rate was edited to 100 mid-session.
		block, recorded, err := tm.Stop(100)
		require.NoError(t, err)
		require.True(t, recorded)
		assert.Equal(t, 100.0, block.Rate)
		assert.Equal(t, 100.0, block.Earnings)
	})

	t.Run("timer is restartable after stop", func(t *testing.T) {
		clock := newFakeClock()
		tm := New(clock.Now)

		require.NoError(t, tm.Start(testProject()))
		clock.Advance(time.Minute)
		_, _, err := tm.Stop(60)
		require.NoError(t, err)

		require.NoError(t, tm.Start(testProject()))
		clock.Advance(2 * time.Minute)
		block, recorded, err := tm.Stop(60)
		require.NoError(t, err)
		require.True(t, recorded)
		assert.Equal(t, int64(120), block.Duration)
	})
}

func TestNewDefaultsToRealClock(t *testing.T) {
	tm := New(nil)
	require.NoError(t, tm.Start(testProject()))
	_, recorded, err := tm.Stop(60)
	require.NoError(t, err)
	// Starting and stopping within the same second must not record a block.
	assert.False(t, recorded)
}
