package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type TaskCell struct {
	Text      string
	Completed bool
	Cursor    bool
	Dragged   bool
}

type DayColumn struct {
	Header  string
	Today   bool
	Focused bool
	Tasks   []TaskCell
	// DropIndex is where a grabbed task would land, or -1. The task
	// currently there is marked; past the end a hint fills the free slot.
	DropIndex int
}

type BoardData struct {
	Columns     []DayColumn
	ColumnWidth int
	// Rows is the number of task lines every column reserves.
	Rows int
}

var (
	columnStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
	todayBorder   = lipgloss.Color("12")
	focusBorder   = lipgloss.Color("10")
	dropBorder    = lipgloss.Color("11")
	dayHeader     = lipgloss.NewStyle().Bold(true)
	todayHeader   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	ruleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	draggedStyle  = lipgloss.NewStyle().Faint(true)
	dropHintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

const (
	cursorMarker  = "> "
	draggedMarker = "~ "
	dropMarker    = "+ "
	blankMarker   = "  "
)

// RenderBoard lays the columns out side by side, no gaps, each
// ColumnWidth+2 cells wide including the border.
func RenderBoard(data BoardData) string {
	counts := make([]int, len(data.Columns))
	for i, col := range data.Columns {
		counts[i] = len(col.Tasks)
	}
	rows := BoardRows(data.Rows, counts)
	rendered := make([]string, 0, len(data.Columns))
	for _, col := range data.Columns {
		rendered = append(rendered, renderColumn(col, data.ColumnWidth, rows))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// BoardRows is the row count RenderBoard reserves: room for the longest
// column plus one slot to drop after its last task.
func BoardRows(minRows int, counts []int) int {
	rows := minRows
	for _, n := range counts {
		if n+1 > rows {
			rows = n + 1
		}
	}
	return rows
}

func renderColumn(col DayColumn, width, rows int) string {
	inner := innerWidth(width)
	header := dayHeader
	if col.Today {
		header = todayHeader
	}
	lines := make([]string, 0, rows+2)
	lines = append(lines, header.Render(truncate(col.Header, inner)))
	lines = append(lines, ruleStyle.Render(strings.Repeat("─", inner)))
	for i, task := range col.Tasks {
		if col.DropIndex == i && !task.Dragged {
			lines = append(lines, dropHintStyle.Render(truncate(dropMarker+checkbox(task)+task.Text, inner)))
			continue
		}
		lines = append(lines, renderTask(task, inner))
	}
	if col.DropIndex >= len(col.Tasks) {
		lines = append(lines, dropHintStyle.Render(truncate(dropMarker+"drop here", inner)))
	}
	for len(lines) < rows+2 {
		lines = append(lines, "")
	}
	lines = lines[:rows+2]

	style := columnStyle.Width(width)
	switch {
	case col.DropIndex >= 0:
		style = style.BorderForeground(dropBorder)
	case col.Focused:
		style = style.BorderForeground(focusBorder)
	case col.Today:
		style = style.BorderForeground(todayBorder)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func renderTask(task TaskCell, inner int) string {
	marker := blankMarker
	switch {
	case task.Dragged:
		marker = draggedMarker
	case task.Cursor:
		marker = cursorMarker
	}
	text := truncate(marker+checkbox(task)+task.Text, inner)
	switch {
	case task.Dragged:
		return draggedStyle.Render(text)
	case task.Cursor:
		return cursorStyle.Render(text)
	case task.Completed:
		return doneStyle.Render(text)
	default:
		return text
	}
}

func checkbox(task TaskCell) string {
	if task.Completed {
		return "[x] "
	}
	return "[ ] "
}

func innerWidth(width int) int {
	if width <= 2 {
		return 1
	}
	return width - 2
}

func truncate(s string, w int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w <= 1 {
		return "…"
	}
	return xansi.Cut(s, 0, w-1) + "…"
}
