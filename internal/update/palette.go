package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/weekly/internal/commands"
	"github.com/sandeepkv93/weekly/internal/model"
)

func (m *Model) openPalette() tea.Cmd {
	m.Mode = ModePalette
	m.commandInput.SetValue("")
	m.Status = StatusBar{Text: "command palette active"}
	return m.commandInput.Focus()
}

func (m *Model) closePalette() {
	m.Mode = ModeBrowse
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	return m, cmd
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.commandInput.Value())
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			key, err := m.resolveDay(a.Day)
			if err != nil {
				return commands.Result{}, err
			}
			m.Board.Store = m.Board.Store.AddTask(key, a.Text)
			m.logger.Debug("task added", "day", key, "via", "palette")
			follow = m.syncDays(key)
			return commands.Result{Message: fmt.Sprintf("added to %s: %s", key, a.Text)}, nil
		},
		Goto: func(g commands.GotoArgs) (commands.Result, error) {
			key, err := model.ParseDateKey(g.Date)
			if err != nil {
				return commands.Result{}, invalidArg(err.Error())
			}
			date, err := key.Date(m.now().Location())
			if err != nil {
				return commands.Result{}, invalidArg(err.Error())
			}
			m.Board = m.Board.GoTo(date)
			m.afterWeekChange("goto", "date", key)
			m.Cursor = Cursor{Day: m.Board.Week().IndexOf(key)}
			return commands.Result{Message: "week of " + model.FormatDayHeader(m.Board.Week().Start())}, nil
		},
		Next: func() (commands.Result, error) {
			m.navigate(1)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Prev: func() (commands.Result, error) {
			m.navigate(-1)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Today: func() (commands.Result, error) {
			m.resetToCurrentWeek()
			return commands.Result{Message: m.Status.Text}, nil
		},
		Move: func(a commands.MoveArgs) (commands.Result, error) {
			from, err := m.resolveDay(a.FromDay)
			if err != nil {
				return commands.Result{}, err
			}
			to, err := m.resolveDay(a.ToDay)
			if err != nil {
				return commands.Result{}, err
			}
			if _, ok := m.Board.Store.Task(from, a.FromPos-1); !ok {
				return commands.Result{}, invalidArg(fmt.Sprintf("no task %d on %s", a.FromPos, from))
			}
			m.Board.Store = m.Board.Store.MoveTask(from, a.FromPos-1, to, a.ToPos-1)
			m.logger.Debug("task moved", "from", from, "to", to, "via", "palette")
			if from == to {
				follow = m.syncDays(from)
			} else {
				follow = m.syncDays(from, to)
			}
			return commands.Result{Message: fmt.Sprintf("moved %s #%d to %s #%d", from, a.FromPos, to, a.ToPos)}, nil
		},
		Clear: func(c commands.ClearArgs) (commands.Result, error) {
			key, err := m.resolveDay(c.Day)
			if err != nil {
				return commands.Result{}, err
			}
			var removed int
			m.Board.Store, removed = m.Board.Store.ClearCompleted(key)
			if removed > 0 {
				follow = m.syncDays(key)
			}
			return commands.Result{Message: fmt.Sprintf("cleared %d completed task(s) from %s", removed, key)}, nil
		},
		Stats: func() (commands.Result, error) {
			if m.repo == nil {
				done, total := m.Board.Store.Completed(), m.Board.Store.Total()
				return commands.Result{Message: fmt.Sprintf("%d/%d done this session", done, total)}, nil
			}
			follow = statsCmd(m.repo, m.Board.Week())
			return commands.Result{Message: "collecting stats..."}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m, nil
	}
	m.clampCursor()
	m.Status = StatusBar{Text: res.Message}
	m.notify("Command", res.Message, "info")
	return m, follow
}

// resolveDay accepts YYYY-MM-DD, "today", or a weekday name within the
// displayed week.
func (m Model) resolveDay(raw string) (model.DateKey, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "today" {
		return model.KeyOf(m.now()), nil
	}
	if key, err := model.ParseDateKey(raw); err == nil {
		return key, nil
	}
	if wd, ok := model.ParseWeekday(raw); ok {
		return model.KeyOf(m.Board.Week()[int(wd)]), nil
	}
	return "", invalidArg(fmt.Sprintf("unknown day %q (use YYYY-MM-DD, today or a weekday)", raw))
}

func invalidArg(msg string) error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: msg}
}
