package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/weekly/internal/model"
	"github.com/sandeepkv93/weekly/internal/storage"
)

const syncTimeout = 2 * time.Second

// syncDays snapshots the given days and writes them to the session mirror in
// the background. Each snapshot carries a fresh revision so a late write
// cannot overwrite a newer one.
func (m *Model) syncDays(keys ...model.DateKey) tea.Cmd {
	if m.repo == nil || len(keys) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(keys))
	for _, key := range keys {
		m.revision++
		cmds = append(cmds, syncDayCmd(m.repo, m.snapshot(key, m.revision)))
	}
	return tea.Batch(cmds...)
}

func (m Model) snapshot(key model.DateKey, revision int64) storage.DaySnapshot {
	tasks := m.Board.Store.Day(key)
	rows := make([]storage.TaskRow, 0, len(tasks))
	for i, task := range tasks {
		rows = append(rows, storage.TaskRow{Position: i, Text: task.Text, Completed: task.Completed})
	}
	return storage.DaySnapshot{Key: key.String(), Revision: revision, Tasks: rows, SyncedAt: m.now()}
}

func syncDayCmd(repo storage.Repository, snap storage.DaySnapshot) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		applied, err := repo.SyncDay(ctx, snap)
		if err != nil {
			return AppErrorMsg{Err: fmt.Errorf("sync %s: %w", snap.Key, err)}
		}
		return DaySyncedMsg{Key: model.DateKey(snap.Key), Revision: snap.Revision, Applied: applied}
	}
}

// statsCmd reads the session totals and the displayed week's days.
func statsCmd(repo storage.Repository, week model.Week) tea.Cmd {
	filter := storage.DayListFilter{
		From:     model.KeyOf(week.Start()).String(),
		To:       model.KeyOf(week.End()).String(),
		NonEmpty: true,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		summary, err := repo.Summary(ctx)
		if err != nil {
			return AppErrorMsg{Err: fmt.Errorf("stats: %w", err)}
		}
		days, err := repo.ListDays(ctx, filter)
		if err != nil {
			return AppErrorMsg{Err: fmt.Errorf("stats: %w", err)}
		}
		return StatsMsg{Summary: summary, Week: days}
	}
}

// describeStats summarises the session; a non-nil week adds the displayed
// week's totals in front.
func describeStats(s storage.SessionSummary, week []storage.DaySummary) string {
	if s.Total == 0 {
		return "no tasks this session"
	}
	session := fmt.Sprintf("session %d/%d done across %d day(s) in %d week(s); busiest %s with %d",
		s.Completed, s.Total, s.Days, s.Weeks, s.BusiestDay, s.BusiestCount)
	if week == nil {
		return session
	}
	done, total := 0, 0
	for _, d := range week {
		done += d.Completed
		total += d.Total
	}
	return fmt.Sprintf("this week %d/%d done on %d day(s) | %s", done, total, len(week), session)
}

// midnightTick fires once the local date after now begins.
func midnightTick(now time.Time) tea.Cmd {
	y, mo, d := now.Date()
	next := time.Date(y, mo, d+1, 0, 0, 0, 0, now.Location())
	return tea.Tick(next.Sub(now), func(t time.Time) tea.Msg {
		return DayChangedMsg{At: t}
	})
}
