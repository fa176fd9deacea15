package update

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/sandeepkv93/weekly/internal/config"
	"github.com/sandeepkv93/weekly/internal/model"
	"github.com/sandeepkv93/weekly/internal/storage"
	"github.com/sandeepkv93/weekly/internal/views"
)

const (
	sun = model.DateKey("2024-01-07")
	wed = model.DateKey("2024-01-10")
	thu = model.DateKey("2024-01-11")
	fri = model.DateKey("2024-01-12")
	sat = model.DateKey("2024-01-13")
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func fixedNow() time.Time {
	return time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)
}

func newTestModel(t *testing.T, repo storage.Repository) Model {
	t.Helper()
	return NewModelWithOptions(Options{Config: config.Default(), Now: fixedNow, Repo: repo})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyMsg(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

// drain runs cmd and feeds every resulting message back into the model.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c)
		}
	case nil:
	default:
		updated, next := m.Update(msg)
		m = drain(t, updated.(Model), next)
	}
	return m
}

func texts(m Model, day model.DateKey) []string {
	var out []string
	for _, task := range m.Board.Store.Day(day) {
		out = append(out, task.Text)
	}
	return out
}

func seed(m Model, day model.DateKey, items ...string) Model {
	for _, item := range items {
		m.Board.Store = m.Board.Store.AddTask(day, item)
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t, nil)
	if m.Mode != ModeBrowse {
		t.Fatalf("expected browse mode, got %q", m.Mode)
	}
	if got := model.KeyOf(m.Board.Week().Start()); got != sun {
		t.Fatalf("week start = %s, want %s", got, sun)
	}
	if m.Cursor.Day != 3 {
		t.Fatalf("cursor should start on today's column, got %d", m.Cursor.Day)
	}
	if m.Keys.Quit != "q" || m.Keys.NextWeek != "]" {
		t.Fatalf("unexpected keys: %+v", m.Keys)
	}
	for _, k := range m.Board.Week().Keys() {
		if !m.Board.Store.Has(k) {
			t.Fatalf("expected entry for %s", k)
		}
	}
	if m.Init() == nil {
		t.Fatal("expected midnight tick from Init")
	}
}

func TestAddFormStaysOpen(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(m, runes("a"))
	if m.Mode != ModeAdding {
		t.Fatalf("expected adding mode, got %q", m.Mode)
	}

	m = send(m, runes("quick call"), keyMsg(tea.KeyEnter))
	if got := texts(m, wed); len(got) != 1 || got[0] != "quick call" {
		t.Fatalf("unexpected wed tasks: %v", got)
	}
	if m.Mode != ModeAdding || m.addInput.Value() != "" {
		t.Fatalf("form should stay open and clear, mode=%q value=%q", m.Mode, m.addInput.Value())
	}
	if m.Quitting {
		t.Fatal("typing q in the form must not quit")
	}

	m = send(m, runes("   "), keyMsg(tea.KeyEnter))
	if got := texts(m, wed); len(got) != 1 {
		t.Fatalf("blank submit should be ignored, got %v", got)
	}

	m = send(m, keyMsg(tea.KeyEsc))
	if m.Mode != ModeBrowse {
		t.Fatalf("esc should close the form, got %q", m.Mode)
	}
}

func TestToggleAndDelete(t *testing.T) {
	m := seed(newTestModel(t, nil), wed, "a", "b", "c")

	m = send(m, runes("j"), runes(" "))
	if task, _ := m.Board.Store.Task(wed, 1); !task.Completed {
		t.Fatal("expected b completed")
	}
	m = send(m, runes("x"))
	if task, _ := m.Board.Store.Task(wed, 1); task.Completed {
		t.Fatal("second toggle should restore b")
	}

	m = send(m, runes("d"))
	if got := texts(m, wed); strings.Join(got, ",") != "a,c" {
		t.Fatalf("unexpected tasks after delete: %v", got)
	}

	m = send(m, runes("d"), runes("d"), runes("d"))
	if got := texts(m, wed); len(got) != 0 {
		t.Fatalf("expected empty day, got %v", got)
	}
	if m.Cursor.Index != 0 {
		t.Fatalf("cursor should clamp to 0, got %d", m.Cursor.Index)
	}
}

func TestCursorClampsToWeek(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(m, runes("l"), runes("l"), runes("l"), runes("l"))
	if m.Cursor.Day != 6 {
		t.Fatalf("cursor day = %d, want 6", m.Cursor.Day)
	}
	m = send(m, keyMsg(tea.KeyLeft), keyMsg(tea.KeyDown))
	if m.Cursor.Day != 5 || m.Cursor.Index != 0 {
		t.Fatalf("unexpected cursor: %+v", m.Cursor)
	}
}

func TestWeekNavigationKeepsEntries(t *testing.T) {
	m := seed(newTestModel(t, nil), wed, "keep me")

	m = send(m, runes("]"))
	if got := model.KeyOf(m.Board.Week().Start()); got != "2024-01-14" {
		t.Fatalf("next week start = %s", got)
	}
	m = send(m, runes("["), runes("["))
	if got := model.KeyOf(m.Board.Week().Start()); got != "2023-12-31" {
		t.Fatalf("prev week start = %s", got)
	}
	m = send(m, runes("t"))
	if got := model.KeyOf(m.Board.Week().Start()); got != sun {
		t.Fatalf("current week start = %s", got)
	}
	if m.Cursor.Day != 3 {
		t.Fatalf("current week should focus today, got %d", m.Cursor.Day)
	}
	if got := texts(m, wed); len(got) != 1 || got[0] != "keep me" {
		t.Fatalf("entries lost across navigation: %v", got)
	}
	if !m.Board.Store.Has("2024-01-14") || !m.Board.Store.Has("2023-12-31") {
		t.Fatal("visited weeks should have entries")
	}
}

func TestKeyboardGrabAndDrop(t *testing.T) {
	m := seed(newTestModel(t, nil), wed, "a", "b")
	m = seed(m, thu, "c")

	m = send(m, runes("m"))
	if !m.Board.Drag.Active() {
		t.Fatal("expected active drag")
	}
	m = send(m, keyMsg(tea.KeyRight), keyMsg(tea.KeyDown), keyMsg(tea.KeyDown))
	if m.Target != (Cursor{Day: 4, Index: 1}) {
		t.Fatalf("target = %+v, want thu slot 1", m.Target)
	}
	m = send(m, keyMsg(tea.KeyEnter))
	if m.Board.Drag.Active() {
		t.Fatal("drag should end on drop")
	}
	if got := strings.Join(texts(m, wed), ","); got != "b" {
		t.Fatalf("wed = %s", got)
	}
	if got := strings.Join(texts(m, thu), ","); got != "c,a" {
		t.Fatalf("thu = %s", got)
	}
	if m.Cursor != (Cursor{Day: 4, Index: 1}) {
		t.Fatalf("cursor should follow the task, got %+v", m.Cursor)
	}
}

func TestKeyboardGrabWithinDay(t *testing.T) {
	m := seed(newTestModel(t, nil), wed, "a", "b", "c")
	m = send(m, runes("m"), keyMsg(tea.KeyDown), keyMsg(tea.KeyDown), keyMsg(tea.KeyDown), keyMsg(tea.KeyEnter))
	if got := strings.Join(texts(m, wed), ","); got != "b,c,a" {
		t.Fatalf("wed = %s", got)
	}
}

func TestGrabCancelLeavesStore(t *testing.T) {
	m := seed(newTestModel(t, nil), wed, "a")
	before := m.Board.Store
	m = send(m, runes("m"), keyMsg(tea.KeyRight), keyMsg(tea.KeyEsc))
	if m.Board.Drag.Active() {
		t.Fatal("esc should end the drag")
	}
	if got := texts(m, wed); len(got) != 1 || m.Board.Store.Len(thu) != before.Len(thu) {
		t.Fatalf("cancelled drag changed the store: wed=%v", got)
	}
}

func TestGrabMarksLandingTaskInSourceDay(t *testing.T) {
	m := seed(newTestModel(t, nil), wed, "A", "B", "C")
	m = send(m, runes("m"))
	if out := m.View(); !strings.Contains(out, "+ [ ] B") {
		t.Fatalf("dropping in place should mark B:\n%s", out)
	}

	m = send(m, keyMsg(tea.KeyDown))
	out := m.View()
	if !strings.Contains(out, "+ [ ] C") || strings.Contains(out, "+ [ ] B") {
		t.Fatalf("target 1 lands before C, so C should be marked:\n%s", out)
	}

	down := send(m, keyMsg(tea.KeyDown))
	if out := down.View(); !strings.Contains(out, "+ drop here") || strings.Contains(out, "+ [ ] C") {
		t.Fatalf("last slot should show the drop hint:\n%s", out)
	}

	m = send(m, keyMsg(tea.KeyEnter))
	if got := strings.Join(texts(m, wed), ","); got != "B,A,C" {
		t.Fatalf("wed = %s", got)
	}
}

func TestGrabOnEmptyDayIsNoop(t *testing.T) {
	m := send(newTestModel(t, nil), runes("m"))
	if m.Board.Drag.Active() {
		t.Fatal("grabbing an empty slot should not start a drag")
	}
}

func cell(col, row int) (int, int) {
	outer := views.ColumnOuterWidth(config.DefaultColumnWidth)
	return col*outer + 3, views.BoardTop + 3 + row
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func TestMouseDragAcrossDays(t *testing.T) {
	m := seed(newTestModel(t, nil), wed, "a", "b")
	m = seed(m, thu, "c")

	x, y := cell(3, 1)
	m = send(m, mouse(tea.MouseActionPress, x, y))
	if !m.MouseDragging || m.Board.Drag.Source.Index != 1 {
		t.Fatalf("expected mouse drag of wed #2, got %+v", m.Board.Drag)
	}
	x, y = cell(4, 0)
	m = send(m, mouse(tea.MouseActionMotion, x, y))
	if m.Target != (Cursor{Day: 4, Index: 0}) {
		t.Fatalf("target = %+v", m.Target)
	}
	m = send(m, mouse(tea.MouseActionRelease, x, y))
	if m.Board.Drag.Active() || m.MouseDragging {
		t.Fatal("release should end the drag")
	}
	if got := strings.Join(texts(m, thu), ","); got != "b,c" {
		t.Fatalf("thu = %s", got)
	}
}

func TestMouseDropBelowTasksAppends(t *testing.T) {
	m := seed(newTestModel(t, nil), wed, "a")
	m = seed(m, fri, "x")

	x, y := cell(3, 0)
	m = send(m, mouse(tea.MouseActionPress, x, y))
	x, y = cell(5, 3)
	m = send(m, mouse(tea.MouseActionRelease, x, y))
	if got := strings.Join(texts(m, fri), ","); got != "x,a" {
		t.Fatalf("fri = %s", got)
	}
}

func TestMouseReleaseOutsideBoardDiscards(t *testing.T) {
	m := seed(newTestModel(t, nil), wed, "a")
	x, y := cell(3, 0)
	m = send(m, mouse(tea.MouseActionPress, x, y), mouse(tea.MouseActionRelease, x, 0))
	if m.Board.Drag.Active() {
		t.Fatal("drag should be idle after release")
	}
	if got := texts(m, wed); len(got) != 1 {
		t.Fatalf("store changed by discarded drop: %v", got)
	}
}

func TestMouseDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Mouse = false
	m := seed(NewModelWithOptions(Options{Config: cfg, Now: fixedNow}), wed, "a")
	x, y := cell(3, 0)
	m = send(m, mouse(tea.MouseActionPress, x, y))
	if m.Board.Drag.Active() {
		t.Fatal("mouse should be ignored when disabled")
	}
}

func TestHelpToggle(t *testing.T) {
	m := send(newTestModel(t, nil), runes("?"))
	if !m.HelpVisible {
		t.Fatal("expected help visible")
	}
	if !strings.Contains(m.View(), "previous week") {
		t.Fatal("help should list bindings")
	}
	m = send(m, keyMsg(tea.KeyEsc))
	if m.HelpVisible {
		t.Fatal("esc should hide help")
	}
}

func TestHelpShowsRecentActivity(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(m, SetStatusMsg{Text: "ready"}, AppErrorMsg{Err: errors.New("boom")})
	md := m.helpMarkdown()
	if !strings.Contains(md, "## Recent activity") {
		t.Fatalf("help should list recent activity:\n%s", md)
	}
	boom, ready := strings.Index(md, "**ERROR** Error: boom"), strings.Index(md, "Status: ready")
	if boom < 0 || ready < 0 || boom > ready {
		t.Fatalf("expected newest first, got:\n%s", md)
	}
	m = send(m, runes("?"))
	m.helpViewport.GotoBottom()
	if !strings.Contains(m.helpViewport.View(), "Recent activity") {
		t.Fatal("help panel should render recent activity")
	}
}

func TestNotificationsAreNotShared(t *testing.T) {
	base := send(newTestModel(t, nil), SetStatusMsg{Text: "one"})
	left := send(base, SetStatusMsg{Text: "left"})
	right := send(base, SetStatusMsg{Text: "right"})
	if len(base.Notifications) != 1 {
		t.Fatalf("earlier model grew to %d notifications", len(base.Notifications))
	}
	if got := left.Notifications[1].Body; got != "left" {
		t.Fatalf("sibling model overwrote history: %q", got)
	}
	if got := right.Notifications[1].Body; got != "right" {
		t.Fatalf("unexpected history: %q", got)
	}

	for i := 0; i < maxNotifications+5; i++ {
		right = send(right, SetStatusMsg{Text: fmt.Sprintf("n%d", i)})
	}
	if len(right.Notifications) != maxNotifications {
		t.Fatalf("history = %d, want %d", len(right.Notifications), maxNotifications)
	}
	if last := right.Notifications[maxNotifications-1].Body; last != fmt.Sprintf("n%d", maxNotifications+4) {
		t.Fatalf("newest entry = %q", last)
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, nil)
	updated, cmd := m.Update(runes("q"))
	if !updated.(Model).Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
	updated, cmd = send(m, runes("a")).Update(keyMsg(tea.KeyCtrlC))
	if !updated.(Model).Quitting || cmd == nil {
		t.Fatal("ctrl+c should quit from the add form")
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(m, SetStatusMsg{Text: "ready"})
	if m.Status.Text != "ready" || m.Status.IsError {
		t.Fatalf("unexpected status: %+v", m.Status)
	}

	m = send(m, AppErrorMsg{Err: errors.New("boom")})
	last := m.Notifications[len(m.Notifications)-1]
	if last.Level != "error" || last.Body != "boom" {
		t.Fatalf("expected error notification boom, got: %+v", last)
	}
	if !m.Status.IsError || m.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", m.Status)
	}

	m = send(m, ClearStatusMsg{})
	if m.Status.Text != "" || m.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", m.Status)
	}
}

func TestDayChangedMovesToday(t *testing.T) {
	m := newTestModel(t, nil)
	updated, cmd := m.Update(DayChangedMsg{At: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)})
	if updated.(Model).today != thu {
		t.Fatalf("today = %s, want %s", updated.(Model).today, thu)
	}
	if cmd == nil {
		t.Fatal("expected the next midnight tick")
	}
}

func TestViewRendersWeek(t *testing.T) {
	m := seed(newTestModel(t, nil), wed, "write report")
	out := m.View()
	for _, want := range []string{"Sun 7th Jan (01/07)", "Wed 10th Jan (01/10)", "Sat 13th Jan (01/13)", "write report", "0/1 done this week"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[views.BoardTop+3], "write report") {
		t.Fatalf("first task should sit on the first task row:\n%s", out)
	}
}

func TestViewFitsNarrowWindow(t *testing.T) {
	m := seed(newTestModel(t, nil), wed, "write a fairly long report title")
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	out := m.View()
	for i, line := range strings.Split(out, "\n") {
		if w := xansi.StringWidth(line); w > 120 {
			t.Fatalf("line %d is %d cells wide:\n%s", i, w, out)
		}
	}
	for _, want := range []string{"Sun 7th Jan", "Mon 8th Jan", "Tue 9th Jan", "Wed 10th Jan", "Thu 11th Jan", "Fri 12th Jan", "Sat 13th Jan"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}

	wide := send(m, tea.WindowSizeMsg{Width: 400, Height: 40})
	if got := wide.boardColumnWidth(); got != config.DefaultColumnWidth {
		t.Fatalf("wide window column width = %d, want %d", got, config.DefaultColumnWidth)
	}
	tiny := send(m, tea.WindowSizeMsg{Width: 40, Height: 40})
	if got := tiny.boardColumnWidth(); got != config.MinColumnWidth {
		t.Fatalf("tiny window column width = %d, want %d", got, config.MinColumnWidth)
	}
}

func TestMouseHitsNarrowedColumns(t *testing.T) {
	m := seed(newTestModel(t, nil), sat, "z")
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	outer := views.ColumnOuterWidth(m.boardColumnWidth())
	if outer*model.DaysPerWeek > 120 {
		t.Fatalf("board is %d cells wide", outer*model.DaysPerWeek)
	}
	m = send(m, mouse(tea.MouseActionPress, 6*outer+3, views.BoardTop+3))
	if !m.Board.Drag.Active() || m.Board.Drag.Source.Day != sat {
		t.Fatalf("expected a drag of the saturday task, got %+v", m.Board.Drag)
	}
}

func TestSyncWritesSessionMirror(t *testing.T) {
	repo, err := storage.OpenSession()
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	m := newTestModel(t, repo)
	m = send(m, runes("a"), runes("plan sprint"))
	updated, cmd := m.Update(keyMsg(tea.KeyEnter))
	m = drain(t, updated.(Model), cmd)

	snap, err := repo.GetDay(context.Background(), wed.String())
	if err != nil {
		t.Fatalf("get day: %v", err)
	}
	if len(snap.Tasks) != 1 || snap.Tasks[0].Text != "plan sprint" {
		t.Fatalf("unexpected mirror: %+v", snap)
	}

	updated, cmd = send(m, keyMsg(tea.KeyEsc)).Update(runes(" "))
	drain(t, updated.(Model), cmd)
	snap, err = repo.GetDay(context.Background(), wed.String())
	if err != nil {
		t.Fatalf("get day: %v", err)
	}
	if !snap.Tasks[0].Completed || snap.Revision != 2 {
		t.Fatalf("toggle not mirrored: %+v", snap)
	}
}
