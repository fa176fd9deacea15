package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Repository mirrors planner days for the stats command. It is scoped to one
// session.
type Repository interface {
	SyncDay(ctx context.Context, in DaySnapshot) (bool, error)
	ListDays(ctx context.Context, filter DayListFilter) ([]DaySummary, error)
	Summary(ctx context.Context) (SessionSummary, error)
}
