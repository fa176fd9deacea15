package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/weekly/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.PrevWeek, Action: "previous week"},
		{Key: m.Keys.NextWeek, Action: "next week"},
		{Key: m.Keys.CurrentWeek, Action: "current week"},
		{Key: "/", Action: "command palette"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) boardBindings() []KeyBinding {
	if m.Board.Drag.Active() {
		return []KeyBinding{
			{Key: "←/→", Action: "target day"},
			{Key: "↑/↓", Action: "target slot"},
			{Key: "enter", Action: "drop"},
			{Key: "esc", Action: "cancel"},
		}
	}
	return []KeyBinding{
		{Key: "←/→", Action: "day"},
		{Key: "↑/↓", Action: "task"},
		{Key: "a", Action: "add task"},
		{Key: "space", Action: "toggle done"},
		{Key: "d", Action: "delete"},
		{Key: "m", Action: "move task"},
	}
}

func (m Model) helpBindings() []key.Binding {
	all := append(m.boardBindings(), m.globalBindings()...)
	out := make([]key.Binding, 0, len(all))
	for _, kb := range all {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}

func (m Model) shortHelpView() string {
	bindings := m.helpBindings()
	return m.helpModel.View(helpKeyMap{short: bindings, full: [][]key.Binding{bindings}})
}

func (m Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# Weekly planner\n\n## Keys\n\n| key | action |\n|---|---|\n")
	for _, kb := range append(m.boardBindings(), m.globalBindings()...) {
		fmt.Fprintf(&b, "| `%s` | %s |\n", kb.Key, kb.Action)
	}
	b.WriteString("\nDrag a task with the mouse to move it; releasing outside the board cancels.\n")
	b.WriteString("\n## Commands\n\n")
	b.WriteString("- `add <day> <text>`\n- `goto <YYYY-MM-DD>`\n- `next`, `prev`, `today`\n")
	b.WriteString("- `move <day> <pos> <day> <pos>`\n- `clear <day>` drops completed tasks\n- `stats`\n\n")
	b.WriteString("`<day>` is a date, `today`, or a weekday of the shown week.\n")
	if m.LastStats != nil {
		fmt.Fprintf(&b, "\n## Last stats\n\n%s\n", describeStats(*m.LastStats, nil))
	}
	if recent := m.recentActivity(); len(recent) > 0 {
		b.WriteString("\n## Recent activity\n\n")
		for _, n := range recent {
			fmt.Fprintf(&b, "- %s **%s** %s: %s\n", n.At.Format("15:04"), strings.ToUpper(n.Level), n.Title, n.Body)
		}
	}
	return b.String()
}

func (m *Model) refreshHelp() {
	m.helpViewport.SetContent(views.RenderMarkdown(m.helpMarkdown(), m.markdownStyle))
	m.helpViewport.GotoTop()
}

// recentActivity is the newest notifications first.
func (m Model) recentActivity() []Notification {
	n := min(len(m.Notifications), recentNotifications)
	out := make([]Notification, 0, n)
	for i := len(m.Notifications) - 1; i >= len(m.Notifications)-n; i-- {
		out = append(out, m.Notifications[i])
	}
	return out
}
