// Package ledger owns the project collection and the aggregate invariant:
// a project's TotalTime and TotalEarnings always equal the sums over its
// time blocks. All operations are value-in/value-out; callers hold the state
// and replace it with the returned value.
package ledger

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/highercomve/billtracker/internal/models"
)

// NewProject creates an empty project. Name is trimmed and must be non-empty;
// rate must be greater than zero. Uniqueness against the existing collection
// is the caller's responsibility (see ValidateName).
func NewProject(name string, rate float64) (models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Project{}, ErrEmptyName
	}
	if rate <= 0 {
		return models.Project{}, ErrInvalidRate
	}
	return models.Project{
		ID:         uuid.New().String(),
		Name:       name,
		Rate:       rate,
		TimeBlocks: []models.TimeBlock{},
	}, nil
}

// ValidateName checks a candidate name against the collection. The comparison
// is case-insensitive on the trimmed name. excludeID skips the project being
// edited so it can keep its own name.
func ValidateName(projects []models.Project, name, excludeID string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	lower := strings.ToLower(name)
	for _, p := range projects {
		if p.ID == excludeID {
			continue
		}
		if strings.ToLower(p.Name) == lower {
			return ErrDuplicateName
		}
	}
	return nil
}

// EditProject replaces the project's name and rate. Time blocks and totals are
// untouched: recorded sessions keep the rate that was in effect when they were
// tracked, so past earnings never move.
func EditProject(p models.Project, newName string, newRate float64) (models.Project, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return models.Project{}, ErrEmptyName
	}
	if newRate <= 0 {
		return models.Project{}, ErrInvalidRate
	}
	p.Name = newName
	p.Rate = newRate
	return p, nil
}

// AppendTimeBlock adds a block and recomputes both totals as the full sum over
// all blocks. Summing from scratch keeps the totals from drifting away from
// the blocks through partial updates.
func AppendTimeBlock(p models.Project, block models.TimeBlock) models.Project {
	p.TimeBlocks = append(append([]models.TimeBlock{}, p.TimeBlocks...), block)
	return recompute(p)
}

// RemoveTimeBlock drops the block with the given id and recomputes totals.
// An absent id is a no-op: the project comes back unchanged.
func RemoveTimeBlock(p models.Project, blockID string) models.Project {
	kept := make([]models.TimeBlock, 0, len(p.TimeBlocks))
	for _, b := range p.TimeBlocks {
		if b.ID != blockID {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(p.TimeBlocks) {
		return p
	}
	p.TimeBlocks = kept
	return recompute(p)
}

func recompute(p models.Project) models.Project {
	var totalTime int64
	var totalEarnings float64
	for _, b := range p.TimeBlocks {
		totalTime += b.Duration
		totalEarnings += b.Earnings
	}
	p.TotalTime = totalTime
	p.TotalEarnings = totalEarnings
	return p
}

// UpsertProject replaces the project with the same id, or appends it when the
// id is not present yet.
func UpsertProject(projects []models.Project, p models.Project) []models.Project {
	out := make([]models.Project, 0, len(projects)+1)
	replaced := false
	for _, existing := range projects {
		if existing.ID == p.ID {
			out = append(out, p)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, p)
	}
	return out
}

// DeleteProject removes the project and, with it, all of its time blocks.
// An unknown id is a no-op.
func DeleteProject(projects []models.Project, projectID string) []models.Project {
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.ID != projectID {
			out = append(out, p)
		}
	}
	return out
}

// NextSelection decides which project should be selected after a deletion:
// the current selection if it survived, else the first remaining project,
// else nothing.
func NextSelection(projects []models.Project, currentID string) string {
	for _, p := range projects {
		if p.ID == currentID {
			return currentID
		}
	}
	if len(projects) > 0 {
		return projects[0].ID
	}
	return ""
}

// FindProject looks a project up by id.
func FindProject(projects []models.Project, id string) (models.Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// SortedBlocks returns the project's blocks ordered by start time, newest
// first, without touching the stored order.
func SortedBlocks(p models.Project) []models.TimeBlock {
	blocks := append([]models.TimeBlock{}, p.TimeBlocks...)
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].StartTime.After(blocks[j].StartTime)
	})
	return blocks
}

// Totals is a rollup across the whole collection, used by the export screen.
type Totals struct {
	Sessions int
	Time     int64
	Earnings float64
}

// TotalsAcross sums sessions, time and earnings over every project.
func TotalsAcross(projects []models.Project) Totals {
	var t Totals
	for _, p := range projects {
		t.Sessions += len(p.TimeBlocks)
		t.Time += p.TotalTime
		t.Earnings += p.TotalEarnings
	}
	return t
}
