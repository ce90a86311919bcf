// Package timer implements the per-project stopwatch. Elapsed time is always
// derived from the wall-clock delta against the session start, never from a
// counted tick, so a delayed ticker can only delay the display, not the math.
package timer

import (
	"errors"
	"sync"
	"time"

	"github.com/highercomve/billtracker/internal/billing"
	"github.com/highercomve/billtracker/internal/models"
)

var (
	// ErrNoProject is returned when Start is called without a project.
	ErrNoProject = errors.New("timer: no project selected")
	// ErrAlreadyRunning is returned when Start is called mid-session.
	ErrAlreadyRunning = errors.New("timer: session already running")
)

// Timer is the session stopwatch for a single selected project. The zero
// value is not usable; construct with New.
type Timer struct {
	mu           sync.Mutex
	now          func() time.Time
	running      bool
	sessionStart time.Time
	projectID    string
}

// New returns an idle timer. now may be nil, in which case time.Now is used;
// tests inject a fake clock here.
func New(now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{now: now}
}

// Start begins a session against the given project. It fails without side
// effects when no project is selected or a session is already running.
func (t *Timer) Start(project *models.Project) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if project == nil {
		return ErrNoProject
	}
	if t.running {
		return ErrAlreadyRunning
	}
	t.running = true
	t.sessionStart = t.now()
	t.projectID = project.ID
	return nil
}

// Stop ends the session, billing it at rate, the project's hourly rate at
// the moment of recording. When at least one whole second has elapsed it
// returns the recorded time block and true; a same-second stop returns false
// and records nothing. Either way the timer is idle afterwards. This is the
// only path that creates a time block.
func (t *Timer) Stop(rate float64) (models.TimeBlock, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return models.TimeBlock{}, false, nil
	}
	start := t.sessionStart
	end := t.now()

	t.running = false
	t.sessionStart = time.Time{}
	t.projectID = ""

	if end.Sub(start) < time.Second {
		return models.TimeBlock{}, false, nil
	}
	block, err := billing.NewTimeBlock(start, end, rate)
	if err != nil {
		return models.TimeBlock{}, false, err
	}
	return block, true, nil
}

// Running reports whether a session is in progress.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Elapsed returns the whole seconds since the session started, or zero
// when idle.
func (t *Timer) Elapsed() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return 0
	}
	return int64(t.now().Sub(t.sessionStart) / time.Second)
}

// SessionStart returns the wall-clock instant the session began, zero
// when idle.
func (t *Timer) SessionStart() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessionStart
}

// ProjectID returns the id of the project the running session is billed
// against, empty when idle.
func (t *Timer) ProjectID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.projectID
}
