package update

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/weekly/internal/model"
	"github.com/sandeepkv93/weekly/internal/storage"
)

func runPalette(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m = send(m, runes("/"))
	if m.Mode != ModePalette {
		t.Fatalf("expected palette mode, got %q", m.Mode)
	}
	m = send(m, runes(line))
	updated, cmd := m.Update(keyMsg(tea.KeyEnter))
	next := updated.(Model)
	if next.Mode != ModeBrowse {
		t.Fatalf("palette should close after enter, got %q", next.Mode)
	}
	return next, cmd
}

func TestPaletteAddResolvesDays(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = runPalette(t, m, "add fri write docs")
	m, _ = runPalette(t, m, "add today stand-up")
	m, _ = runPalette(t, m, "add 2024-02-01 far away")

	if got := texts(m, fri); len(got) != 1 || got[0] != "write docs" {
		t.Fatalf("fri = %v", got)
	}
	if got := texts(m, wed); len(got) != 1 || got[0] != "stand-up" {
		t.Fatalf("wed = %v", got)
	}
	if got := texts(m, "2024-02-01"); len(got) != 1 {
		t.Fatalf("explicit date not used: %v", got)
	}
}

func TestPaletteNavigation(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = runPalette(t, m, "goto 2024-02-01")
	if got := model.KeyOf(m.Board.Week().Start()); got != "2024-01-28" {
		t.Fatalf("goto week start = %s", got)
	}
	if m.Cursor.Day != 4 {
		t.Fatalf("cursor should land on the date, got %d", m.Cursor.Day)
	}
	m, _ = runPalette(t, m, "next")
	if got := model.KeyOf(m.Board.Week().Start()); got != "2024-02-04" {
		t.Fatalf("next week start = %s", got)
	}
	m, _ = runPalette(t, m, "prev")
	m, _ = runPalette(t, m, "today")
	if got := model.KeyOf(m.Board.Week().Start()); got != sun {
		t.Fatalf("today week start = %s", got)
	}
}

func TestPaletteMoveAndClear(t *testing.T) {
	m := seed(newTestModel(t, nil), wed, "a", "b")
	m = seed(m, thu, "c")
	m, _ = runPalette(t, m, "move wed 2 thu 1")
	if got := strings.Join(texts(m, thu), ","); got != "b,c" {
		t.Fatalf("thu = %s", got)
	}

	m.Board.Store = m.Board.Store.ToggleCompletion(thu, 0)
	m, _ = runPalette(t, m, "clear thu")
	if got := strings.Join(texts(m, thu), ","); got != "c" {
		t.Fatalf("thu after clear = %s", got)
	}
	if !strings.Contains(m.Status.Text, "cleared 1") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestPaletteErrors(t *testing.T) {
	m := newTestModel(t, nil)
	for _, line := range []string{"add blursday x", "move wed 1 thu 1", "goto 2024-13-01", "launch"} {
		next, _ := runPalette(t, m, line)
		if !next.Status.IsError {
			t.Fatalf("%q: expected error status, got %+v", line, next.Status)
		}
	}
}

func TestPaletteEscCloses(t *testing.T) {
	m := send(newTestModel(t, nil), runes("/"), runes("next"), keyMsg(tea.KeyEsc))
	if m.Mode != ModeBrowse {
		t.Fatalf("expected browse mode, got %q", m.Mode)
	}
	if got := model.KeyOf(m.Board.Week().Start()); got != sun {
		t.Fatal("esc must not run the command")
	}
}

func TestPaletteStatsWithoutMirror(t *testing.T) {
	m := seed(newTestModel(t, nil), wed, "a")
	m, cmd := runPalette(t, m, "stats")
	if cmd != nil || m.Status.Text != "0/1 done this session" {
		t.Fatalf("unexpected stats result: %+v", m.Status)
	}
}

func TestPaletteStatsFromMirror(t *testing.T) {
	repo, err := storage.OpenSession()
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	m := newTestModel(t, repo)
	m, cmd := runPalette(t, m, "add wed a")
	m = drain(t, m, cmd)
	m, cmd = runPalette(t, m, "add 2024-01-15 b")
	m = drain(t, m, cmd)
	m, cmd = runPalette(t, m, "stats")
	m = drain(t, m, cmd)

	if m.LastStats == nil {
		t.Fatal("expected stats message")
	}
	want := storage.SessionSummary{Days: 2, Weeks: 2, Total: 2, BusiestDay: "2024-01-10", BusiestCount: 1}
	if *m.LastStats != want {
		t.Fatalf("stats = %+v, want %+v", *m.LastStats, want)
	}
	if !strings.Contains(m.Status.Text, "0/2 done") {
		t.Fatalf("unexpected status: %q", m.Status.Text)
	}
	if !strings.Contains(m.Status.Text, "this week 0/1 done on 1 day(s)") {
		t.Fatalf("status should cover the shown week: %q", m.Status.Text)
	}
}
