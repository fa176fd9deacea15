package storage

import "time"

// DaySnapshot is one day's task list as of a board revision.
type DaySnapshot struct {
	Key      string
	Revision int64
	Tasks    []TaskRow
	SyncedAt time.Time
}

type TaskRow struct {
	Position  int
	Text      string
	Completed bool
}

type DaySummary struct {
	Key       string
	Total     int
	Completed int
}

type SessionSummary struct {
	Days         int
	Weeks        int
	Total        int
	Completed    int
	BusiestDay   string
	BusiestCount int
}

// DayListFilter bounds ListDays by inclusive date keys; NonEmpty skips days
// without tasks.
type DayListFilter struct {
	From     string
	To       string
	NonEmpty bool
}
