package planner

import (
	"time"

	"github.com/sandeepkv93/weekly/internal/model"
)

// Board is the whole planner state: the week anchor, the task store and the
// drag in progress, if any.
type Board struct {
	Anchor time.Time
	Store  Store
	Drag   Drag
}

func NewBoard(anchor time.Time) Board {
	b := Board{Anchor: anchor, Store: NewStore()}
	return b.ensureWeek()
}

// Week is derived from the anchor on every call.
func (b Board) Week() model.Week {
	return model.WeekOf(b.Anchor)
}

func (b Board) DayKey(col int) (model.DateKey, bool) {
	if col < 0 || col >= model.DaysPerWeek {
		return "", false
	}
	return model.KeyOf(b.Week()[col]), true
}

func (b Board) NavigateWeek(direction int) Board {
	switch {
	case direction > 0:
		direction = 1
	case direction < 0:
		direction = -1
	default:
		return b
	}
	b.Anchor = b.Anchor.AddDate(0, 0, 7*direction)
	return b.ensureWeek()
}

func (b Board) ResetToCurrentWeek(now time.Time) Board {
	b.Anchor = now
	return b.ensureWeek()
}

func (b Board) GoTo(date time.Time) Board {
	b.Anchor = date
	return b.ensureWeek()
}

func (b Board) StartDrag(src Location) Board {
	if _, ok := b.Store.Task(src.Day, src.Index); !ok {
		return b
	}
	b.Drag = b.Drag.Start(src)
	return b
}

func (b Board) EndDrag(dst *Location) Board {
	if !b.Drag.Active() {
		return b
	}
	b.Drag, b.Store = b.Drag.End(DropResult{Source: b.Drag.Source, Destination: dst}, b.Store)
	return b
}

func (b Board) ensureWeek() Board {
	b.Store = b.Store.EnsureDays(b.Week().Keys()...)
	return b
}
