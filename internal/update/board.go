package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/weekly/internal/config"
	"github.com/sandeepkv93/weekly/internal/model"
	"github.com/sandeepkv93/weekly/internal/planner"
)

func (m Model) cursorKey() model.DateKey {
	key, _ := m.Board.DayKey(m.Cursor.Day)
	return key
}

func (m Model) dayLen(col int) int {
	key, ok := m.Board.DayKey(col)
	if !ok {
		return 0
	}
	return m.Board.Store.Len(key)
}

// boardColumnWidth narrows the configured column width so all seven days fit
// the window, down to config.MinColumnWidth.
func (m Model) boardColumnWidth() int {
	if m.Width <= 0 {
		return m.columnWidth
	}
	fit := m.Width/model.DaysPerWeek - 2
	return clamp(fit, min(config.MinColumnWidth, m.columnWidth), m.columnWidth)
}

// displayDropIndex maps the drop target to the task it lands in front of on
// screen. In the source column the target counts slots after the grabbed
// task is lifted out, so targets at or past it shift down by one.
func (m Model) displayDropIndex(col int) int {
	if !m.Board.Drag.Active() || col != m.Target.Day || m.Target.Index < 0 {
		return -1
	}
	key, _ := m.Board.DayKey(col)
	if key == m.Board.Drag.Source.Day && m.Target.Index >= m.Board.Drag.Source.Index {
		return m.Target.Index + 1
	}
	return m.Target.Index
}

func (m *Model) clampCursor() {
	m.Cursor.Day = clamp(m.Cursor.Day, 0, model.DaysPerWeek-1)
	m.Cursor.Index = clamp(m.Cursor.Index, 0, max(0, m.dayLen(m.Cursor.Day)-1))
}

func (m *Model) moveCursor(dDay, dIndex int) {
	m.Cursor.Day += dDay
	m.Cursor.Index += dIndex
	m.clampCursor()
}

func (m *Model) openAddForm() tea.Cmd {
	m.Mode = ModeAdding
	m.addInput.SetValue("")
	m.Status = StatusBar{Text: fmt.Sprintf("adding to %s", model.FormatDayHeader(m.Board.Week()[m.Cursor.Day]))}
	return m.addInput.Focus()
}

func (m *Model) closeAddForm() {
	m.Mode = ModeBrowse
	m.addInput.SetValue("")
	m.addInput.Blur()
}

// submitAdd appends the typed text to the cursor day. The form stays open
// and clears; blank input changes nothing.
func (m *Model) submitAdd() tea.Cmd {
	text := m.addInput.Value()
	key := m.cursorKey()
	before := m.Board.Store.Len(key)
	m.Board.Store = m.Board.Store.AddTask(key, text)
	if m.Board.Store.Len(key) == before {
		return nil
	}
	m.addInput.SetValue("")
	m.Cursor.Index = before
	m.logger.Debug("task added", "day", key, "index", before)
	m.Status = StatusBar{Text: fmt.Sprintf("added to %s", key)}
	return m.syncDays(key)
}

func (m *Model) toggleAtCursor() tea.Cmd {
	key := m.cursorKey()
	task, ok := m.Board.Store.Task(key, m.Cursor.Index)
	if !ok {
		return nil
	}
	m.Board.Store = m.Board.Store.ToggleCompletion(key, m.Cursor.Index)
	m.logger.Debug("task toggled", "day", key, "index", m.Cursor.Index, "completed", !task.Completed)
	return m.syncDays(key)
}

func (m *Model) deleteAtCursor() tea.Cmd {
	key := m.cursorKey()
	if _, ok := m.Board.Store.Task(key, m.Cursor.Index); !ok {
		return nil
	}
	m.Board.Store = m.Board.Store.DeleteTask(key, m.Cursor.Index)
	m.logger.Debug("task deleted", "day", key, "index", m.Cursor.Index)
	m.Status = StatusBar{Text: "task deleted"}
	m.clampCursor()
	return m.syncDays(key)
}

func (m *Model) navigate(direction int) {
	m.Board = m.Board.NavigateWeek(direction)
	m.afterWeekChange("navigate", "direction", direction)
}

func (m *Model) resetToCurrentWeek() {
	m.Board = m.Board.ResetToCurrentWeek(m.now())
	m.afterWeekChange("current week")
	if idx := m.Board.Week().IndexOf(m.today); idx >= 0 {
		m.Cursor = Cursor{Day: idx}
	}
}

func (m *Model) afterWeekChange(how string, kv ...any) {
	week := m.Board.Week()
	m.clampCursor()
	m.Status = StatusBar{Text: "week of " + model.FormatDayHeader(week.Start())}
	m.logger.Debug("week changed", append([]any{"how", how, "start", model.KeyOf(week.Start())}, kv...)...)
}

// grab starts a drag of the task under the cursor. The drop target starts
// where the task is.
func (m *Model) grab() {
	src := planner.Location{Day: m.cursorKey(), Index: m.Cursor.Index}
	m.Board = m.Board.StartDrag(src)
	if !m.Board.Drag.Active() {
		return
	}
	m.Target = m.Cursor
	m.Status = StatusBar{Text: "moving task: arrows pick a slot, enter drops, esc cancels"}
	m.logger.Debug("drag started", "day", src.Day, "index", src.Index)
}

// maxTargetIndex is the last slot a grabbed task can land on in col. The
// source column loses the task first, so it has one slot fewer.
func (m Model) maxTargetIndex(col int) int {
	n := m.dayLen(col)
	if key, ok := m.Board.DayKey(col); ok && m.Board.Drag.Active() && key == m.Board.Drag.Source.Day {
		return max(0, n-1)
	}
	return n
}

func (m *Model) moveTarget(dDay, dIndex int) {
	m.Target.Day = clamp(m.Target.Day+dDay, 0, model.DaysPerWeek-1)
	m.Target.Index = clamp(m.Target.Index+dIndex, 0, m.maxTargetIndex(m.Target.Day))
}

// drop ends the drag at dst; a nil destination discards it.
func (m *Model) drop(dst *Cursor) tea.Cmd {
	if !m.Board.Drag.Active() {
		return nil
	}
	src := m.Board.Drag.Source
	m.MouseDragging = false
	m.Target = Cursor{Index: -1}
	if dst == nil {
		m.Board = m.Board.EndDrag(nil)
		m.Status = StatusBar{Text: "move cancelled"}
		m.logger.Debug("drop discarded", "day", src.Day, "index", src.Index)
		return nil
	}
	key, ok := m.Board.DayKey(dst.Day)
	if !ok {
		m.Board = m.Board.EndDrag(nil)
		return nil
	}
	m.Board = m.Board.EndDrag(&planner.Location{Day: key, Index: dst.Index})
	m.Cursor = *dst
	m.clampCursor()
	m.Status = StatusBar{Text: fmt.Sprintf("moved to %s", key)}
	m.logger.Debug("task moved", "from", src.Day, "from_index", src.Index, "to", key, "to_index", dst.Index)
	if key == src.Day {
		return m.syncDays(key)
	}
	return m.syncDays(src.Day, key)
}

// weekCounts tallies the displayed week.
func (m Model) weekCounts() (done, total int) {
	for _, key := range m.Board.Week().Keys() {
		for _, task := range m.Board.Store.Day(key) {
			total++
			if task.Completed {
				done++
			}
		}
	}
	return done, total
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
