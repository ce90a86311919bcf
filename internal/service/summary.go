// Package service provides the aggregation helpers shared by the reports
// screen and the exporters.
package service

import (
	"sort"

	"github.com/highercomve/billtracker/internal/models"
)

// ProjectSummary is one project's rollup row.
type ProjectSummary struct {
	Name              string
	Rate              float64
	TotalTime         int64
	TotalEarnings     float64
	Sessions          int
	AvgSessionMinutes float64
}

// Summarize builds one summary row per project, preserving collection order.
func Summarize(projects []models.Project) []ProjectSummary {
	out := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		s := ProjectSummary{
			Name:          p.Name,
			Rate:          p.Rate,
			TotalTime:     p.TotalTime,
			TotalEarnings: p.TotalEarnings,
			Sessions:      len(p.TimeBlocks),
		}
		if s.Sessions > 0 {
			s.AvgSessionMinutes = float64(p.TotalTime) / float64(s.Sessions) / 60
		}
		out = append(out, s)
	}
	return out
}

// SessionRow is one time block annotated with its owning project, the unit of
// the detailed export and history list.
type SessionRow struct {
	ProjectName string
	Block       models.TimeBlock
}

// AllSessions flattens every block across all projects, newest first.
func AllSessions(projects []models.Project) []SessionRow {
	var rows []SessionRow
	for _, p := range projects {
		for _, b := range p.TimeBlocks {
			rows = append(rows, SessionRow{ProjectName: p.Name, Block: b})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Block.StartTime.After(rows[j].Block.StartTime)
	})
	return rows
}
