package service

import (
	"fmt"
	"sort"
	"time"
)

const (
	GroupByNone = "None"
	GroupByDay  = "Daily"
	GroupByWeek = "Weekly"
)

// GroupKey returns a sortable bucket key for a session start time.
func GroupKey(t time.Time, groupBy string) string {
	switch groupBy {
	case GroupByDay:
		return t.Format("2006-01-02")
	case GroupByWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	}
	return ""
}

// GroupTitle returns the heading shown above a bucket.
func GroupTitle(t time.Time, groupBy string) string {
	switch groupBy {
	case GroupByDay:
		return t.Format("Monday, 02 Jan 2006")
	case GroupByWeek:
		start, end := weekRange(t)
		return fmt.Sprintf("%s - %s", start.Format("Jan 02"), end.Format("Jan 02, 2006"))
	}
	return ""
}

func weekRange(t time.Time) (time.Time, time.Time) {
	offset := int(t.Weekday())
	if offset == 0 {
		offset = 7
	}
	start := t.AddDate(0, 0, -offset+1)
	return start, start.AddDate(0, 0, 6)
}

// SessionGroup is one bucket of sessions sharing a group key.
type SessionGroup struct {
	Key      string
	Title    string
	Rows     []SessionRow
	Time     int64
	Earnings float64
}

// GroupSessions buckets rows by the requested period, newest bucket first.
// With GroupByNone everything lands in a single untitled bucket.
func GroupSessions(rows []SessionRow, groupBy string) []SessionGroup {
	if groupBy == GroupByNone || groupBy == "" {
		g := SessionGroup{Rows: rows}
		for _, r := range rows {
			g.Time += r.Block.Duration
			g.Earnings += r.Block.Earnings
		}
		return []SessionGroup{g}
	}

	byKey := make(map[string]*SessionGroup)
	var keys []string
	for _, r := range rows {
		key := GroupKey(r.Block.StartTime, groupBy)
		g, ok := byKey[key]
		if !ok {
			g = &SessionGroup{Key: key, Title: GroupTitle(r.Block.StartTime, groupBy)}
			byKey[key] = g
			keys = append(keys, key)
		}
		g.Rows = append(g.Rows, r)
		g.Time += r.Block.Duration
		g.Earnings += r.Block.Earnings
	}

	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	out := make([]SessionGroup, 0, len(keys))
	for _, key := range keys {
		out = append(out, *byKey[key])
	}
	return out
}
