package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// AppData is everything the top-level view needs. Title and Nav are always
// one line each so the board starts at BoardTop.
type AppData struct {
	Title         string
	Nav           string
	Board         string
	AddForm       string
	Palette       string
	StatusLine    string
	StatusIsError bool
	Footer        string
	Help          string
	Width         int
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	navStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderApp(data AppData) string {
	lines := []string{
		headerStyle.Render(oneLine(data.Title, data.Width)),
		navStyle.Render(oneLine(data.Nav, data.Width)),
		data.Board,
	}
	if data.AddForm != "" {
		lines = append(lines, data.AddForm)
	}
	if data.Palette != "" {
		lines = append(lines, data.Palette)
	}
	if data.StatusLine != "" {
		if data.StatusIsError {
			lines = append(lines, errorStyle.Render("error: "+data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	if data.Help != "" {
		lines = append(lines, panelStyle.Render(data.Help))
	}
	return clip(strings.Join(lines, "\n"), data.Width)
}

// clip cuts every line of s to width cells. Escape sequences are kept.
func clip(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if xansi.StringWidth(line) > width {
			lines[i] = xansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders md with the given glamour style ("dark", "light",
// "notty"). Rendering failures fall back to the raw text.
func RenderMarkdown(md string, style string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if style == "" {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

func oneLine(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width <= 0 {
		return s
	}
	return truncate(s, width)
}
