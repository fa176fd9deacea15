package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/weekly/internal/model"
	"github.com/sandeepkv93/weekly/internal/planner"
	"github.com/sandeepkv93/weekly/internal/views"
)

func (m Model) boardRows() int {
	counts := make([]int, 0, model.DaysPerWeek)
	for col := 0; col < model.DaysPerWeek; col++ {
		counts = append(counts, m.dayLen(col))
	}
	return views.BoardRows(minBoardRows, counts)
}

func (m Model) hitTest(msg tea.MouseMsg) (views.Hit, bool) {
	return views.HitTest(msg.X, msg.Y, m.boardColumnWidth(), m.boardRows(), model.DaysPerWeek)
}

// handleMouse drives the drag collaborator: press on a task picks it up,
// motion tracks the slot under the pointer, release drops there. Releasing
// off the board reports no destination.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if !m.mouse || m.Mode != ModeBrowse || m.HelpVisible {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.Board.Drag.Active() {
			return m, nil
		}
		hit, ok := m.hitTest(msg)
		if !ok {
			return m, nil
		}
		m.Cursor = Cursor{Day: hit.Column, Index: hit.Row}
		m.clampCursor()
		key, _ := m.Board.DayKey(hit.Column)
		if _, exists := m.Board.Store.Task(key, hit.Row); !exists {
			return m, nil
		}
		m.Board = m.Board.StartDrag(planner.Location{Day: key, Index: hit.Row})
		if m.Board.Drag.Active() {
			m.MouseDragging = true
			m.Target = Cursor{Day: hit.Column, Index: hit.Row}
			m.logger.Debug("drag started", "day", key, "index", hit.Row, "via", "mouse")
		}
		return m, nil
	case tea.MouseActionMotion:
		if !m.MouseDragging {
			return m, nil
		}
		if hit, ok := m.hitTest(msg); ok {
			m.Target = Cursor{Day: hit.Column, Index: clamp(hit.Row, 0, m.maxTargetIndex(hit.Column))}
		} else {
			m.Target = Cursor{Day: m.Target.Day, Index: -1}
		}
		return m, nil
	case tea.MouseActionRelease:
		if !m.MouseDragging {
			return m, nil
		}
		hit, ok := m.hitTest(msg)
		if !ok {
			cmd := m.drop(nil)
			return m, cmd
		}
		dst := Cursor{Day: hit.Column, Index: clamp(hit.Row, 0, m.maxTargetIndex(hit.Column))}
		cmd := m.drop(&dst)
		return m, cmd
	}
	return m, nil
}
