package planner

import "github.com/sandeepkv93/weekly/internal/model"

// Location addresses one slot in a day's list.
type Location struct {
	Day   model.DateKey
	Index int
}

// DropResult is what a drag-and-drop source reports when a drag ends.
// A nil Destination means the task was dropped outside every list.
type DropResult struct {
	Source      Location
	Destination *Location
}

type DragState string

const (
	DragIdle     DragState = "idle"
	DragDragging DragState = "dragging"
)

// Drag tracks one drag gesture at a time.
type Drag struct {
	State  DragState
	Source Location
}

func (d Drag) Active() bool {
	return d.State == DragDragging
}

// Start begins a drag. The store is not touched until the drag ends.
func (d Drag) Start(src Location) Drag {
	return Drag{State: DragDragging, Source: src}
}

func (d Drag) Cancel() Drag {
	return Drag{State: DragIdle}
}

// End applies a drop. Drops without a destination are discarded.
func (d Drag) End(res DropResult, s Store) (Drag, Store) {
	if res.Destination == nil {
		return d.Cancel(), s
	}
	dst := *res.Destination
	return d.Cancel(), s.MoveTask(res.Source.Day, res.Source.Index, dst.Day, dst.Index)
}
