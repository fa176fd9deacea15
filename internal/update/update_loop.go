package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/weekly/internal/model"
	"github.com/sandeepkv93/weekly/internal/views"
)

func (m Model) Init() tea.Cmd {
	return midnightTick(m.now())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.MouseMsg:
		return m.handleMouse(typed)
	case tea.WindowSizeMsg:
		m.Width, m.Height = typed.Width, typed.Height
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case DaySyncedMsg:
		m.logger.Debug("day synced", "day", typed.Key, "revision", typed.Revision, "applied", typed.Applied)
		return m, nil
	case StatsMsg:
		summary := typed.Summary
		m.LastStats = &summary
		m.Status = StatusBar{Text: describeStats(summary, typed.Week)}
		return m, nil
	case DayChangedMsg:
		m.today = model.KeyOf(typed.At)
		m.logger.Info("date changed", "today", m.today)
		return m, midnightTick(typed.At)
	}

	// cursor blink and similar component messages
	var cmd tea.Cmd
	switch m.Mode {
	case ModeAdding:
		m.addInput, cmd = m.addInput.Update(msg)
	case ModePalette:
		m.commandInput, cmd = m.commandInput.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	switch {
	case m.Mode == ModePalette:
		return m.handlePaletteKey(msg)
	case m.Mode == ModeAdding:
		return m.handleAddKey(msg)
	case m.Board.Drag.Active():
		return m.handleDragKey(msg)
	case m.HelpVisible && keyStr != m.Keys.Help && keyStr != m.Keys.Quit:
		var cmd tea.Cmd
		if keyStr == "esc" {
			m.HelpVisible = false
			return m, nil
		}
		m.helpViewport, cmd = m.helpViewport.Update(msg)
		return m, cmd
	}

	switch keyStr {
	case "/":
		cmd := m.openPalette()
		return m, cmd
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.refreshHelp()
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.PrevWeek:
		m.navigate(-1)
		return m, nil
	case m.Keys.NextWeek:
		m.navigate(1)
		return m, nil
	case m.Keys.CurrentWeek:
		m.resetToCurrentWeek()
		return m, nil
	case "left", "h":
		m.moveCursor(-1, 0)
	case "right", "l":
		m.moveCursor(1, 0)
	case "up", "k":
		m.moveCursor(0, -1)
	case "down", "j":
		m.moveCursor(0, 1)
	case "a", "enter":
		cmd := m.openAddForm()
		return m, cmd
	case " ", "x":
		cmd := m.toggleAtCursor()
		return m, cmd
	case "d", "delete":
		cmd := m.deleteAtCursor()
		return m, cmd
	case "m":
		m.grab()
	}
	return m, nil
}

func (m Model) handleAddKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeAddForm()
		m.Status = StatusBar{Text: "add closed"}
		return m, nil
	case "enter":
		cmd := m.submitAdd()
		return m, cmd
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

func (m Model) handleDragKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.moveTarget(-1, 0)
	case "right", "l":
		m.moveTarget(1, 0)
	case "up", "k":
		m.moveTarget(0, -1)
	case "down", "j":
		m.moveTarget(0, 1)
	case "enter", "m":
		dst := m.Target
		cmd := m.drop(&dst)
		return m, cmd
	case "esc":
		cmd := m.drop(nil)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	week := m.Board.Week()
	done, total := m.weekCounts()
	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}

	title := "weekly planner"
	if m.Board.Drag.Active() {
		title += " | moving task"
	}
	nav := fmt.Sprintf("%s prev | %s - %s | next %s | %s current week",
		m.Keys.PrevWeek, model.FormatDayHeader(week.Start()), model.FormatDayHeader(week.End()), m.Keys.NextWeek, m.Keys.CurrentWeek)

	addForm := ""
	if m.Mode == ModeAdding {
		addForm = fmt.Sprintf("%s | enter add, esc close\n%s", model.FormatDayHeader(week[m.Cursor.Day]), m.addInput.View())
	}
	palette := ""
	if m.Mode == ModePalette {
		palette = m.commandInput.View()
	}
	helpView := ""
	if m.HelpVisible {
		helpView = m.helpViewport.View()
	}

	return views.RenderApp(views.AppData{
		Title:         title,
		Nav:           nav,
		Board:         views.RenderBoard(m.boardData()),
		AddForm:       addForm,
		Palette:       palette,
		StatusLine:    m.Status.Text,
		StatusIsError: m.Status.IsError,
		Footer:        fmt.Sprintf("%s %d/%d done this week\n%s", m.weekProgress.ViewAs(pct), done, total, m.shortHelpView()),
		Help:          helpView,
		Width:         m.Width,
	})
}

func (m Model) boardData() views.BoardData {
	week := m.Board.Week()
	dragging := m.Board.Drag.Active()
	cols := make([]views.DayColumn, 0, model.DaysPerWeek)
	for i, day := range week {
		key := model.KeyOf(day)
		col := views.DayColumn{
			Header:    model.FormatDayHeader(day),
			Today:     key == m.today,
			Focused:   i == m.Cursor.Day && !dragging,
			DropIndex: m.displayDropIndex(i),
		}
		for j, task := range m.Board.Store.Day(key) {
			col.Tasks = append(col.Tasks, views.TaskCell{
				Text:      task.Text,
				Completed: task.Completed,
				Cursor:    !dragging && i == m.Cursor.Day && j == m.Cursor.Index,
				Dragged:   dragging && key == m.Board.Drag.Source.Day && j == m.Board.Drag.Source.Index,
			})
		}
		cols = append(cols, col)
	}
	return views.BoardData{Columns: cols, ColumnWidth: m.boardColumnWidth(), Rows: minBoardRows}
}

// notify records an activity entry for the help panel and the log. The slice
// is rebuilt so earlier Model values keep their own history.
func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{Title: title, Body: body, Level: level, At: m.now()}
	keep := m.Notifications
	if len(keep) >= maxNotifications {
		keep = keep[len(keep)-maxNotifications+1:]
	}
	next := make([]Notification, 0, len(keep)+1)
	next = append(next, keep...)
	m.Notifications = append(next, n)
	if level == "error" {
		m.logger.Error(body, "title", title)
	} else {
		m.logger.Info(body, "title", title)
	}
}

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}
