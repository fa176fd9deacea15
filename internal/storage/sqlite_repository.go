package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sandeepkv93/weekly/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

// MemoryDSN keeps the mirror inside the process; nothing outlives it.
const MemoryDSN = ":memory:"

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db, now: time.Now}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// OpenSession opens a migrated in-memory mirror.
func OpenSession() (*SQLiteRepository, error) {
	repo, err := OpenSQLite(MemoryDSN)
	if err != nil {
		return nil, err
	}
	if err := MigrateUp(repo.db); err != nil {
		_ = repo.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// SyncDay replaces the stored tasks of a day. Snapshots with a revision not
// newer than the stored one are ignored and reported as not applied.
func (r *SQLiteRepository) SyncDay(ctx context.Context, in DaySnapshot) (bool, error) {
	if _, err := model.ParseDateKey(in.Key); err != nil {
		return false, fmt.Errorf("storage: %w", err)
	}
	for _, row := range in.Tasks {
		if err := (model.Task{Text: row.Text}).Validate(); err != nil {
			return false, fmt.Errorf("storage: day %s position %d: %w", in.Key, row.Position, err)
		}
	}
	syncedAt := in.SyncedAt
	if syncedAt.IsZero() {
		syncedAt = r.now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var current int64
	err = tx.QueryRowContext(ctx, `SELECT revision FROM days WHERE date_key = ?`, in.Key).Scan(&current)
	switch {
	case err == nil:
		if current >= in.Revision {
			return false, nil
		}
	case errors.Is(err, sql.ErrNoRows):
	default:
		return false, err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO days (date_key, revision, synced_at) VALUES (?, ?, ?)
		ON CONFLICT(date_key) DO UPDATE SET revision = excluded.revision, synced_at = excluded.synced_at`,
		in.Key, in.Revision, mustTime(syncedAt),
	); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM day_tasks WHERE date_key = ?`, in.Key); err != nil {
		return false, err
	}
	for i, row := range in.Tasks {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO day_tasks (date_key, position, text, completed) VALUES (?, ?, ?, ?)`,
			in.Key, i, row.Text, boolInt(row.Completed),
		); err != nil {
			return false, err
		}
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *SQLiteRepository) GetDay(ctx context.Context, key string) (DaySnapshot, error) {
	var out DaySnapshot
	var synced string
	err := r.db.QueryRowContext(ctx, `SELECT date_key, revision, synced_at FROM days WHERE date_key = ?`, key).
		Scan(&out.Key, &out.Revision, &synced)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DaySnapshot{}, ErrNotFound
		}
		return DaySnapshot{}, err
	}
	syncedAt, err := parseRequiredTime(synced)
	if err != nil {
		return DaySnapshot{}, err
	}
	out.SyncedAt = syncedAt

	rows, err := r.db.QueryContext(ctx, `
		SELECT position, text, completed FROM day_tasks WHERE date_key = ? ORDER BY position ASC`, key)
	if err != nil {
		return DaySnapshot{}, err
	}
	defer rows.Close()

	out.Tasks = make([]TaskRow, 0)
	for rows.Next() {
		var row TaskRow
		var completed int
		if err := rows.Scan(&row.Position, &row.Text, &completed); err != nil {
			return DaySnapshot{}, err
		}
		row.Completed = completed == 1
		out.Tasks = append(out.Tasks, row)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ListDays(ctx context.Context, filter DayListFilter) ([]DaySummary, error) {
	query := `
		SELECT d.date_key, COUNT(t.position), COALESCE(SUM(t.completed), 0)
		FROM days d LEFT JOIN day_tasks t ON t.date_key = d.date_key`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if filter.From != "" {
		clauses = append(clauses, "d.date_key >= ?")
		args = append(args, filter.From)
	}
	if filter.To != "" {
		clauses = append(clauses, "d.date_key <= ?")
		args = append(args, filter.To)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` GROUP BY d.date_key`
	if filter.NonEmpty {
		query += ` HAVING COUNT(t.position) > 0`
	}
	query += ` ORDER BY d.date_key ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DaySummary, 0)
	for rows.Next() {
		var item DaySummary
		if err := rows.Scan(&item.Key, &item.Total, &item.Completed); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Summary aggregates every non-empty day seen this session. Weeks are
// counted Sunday to Saturday.
func (r *SQLiteRepository) Summary(ctx context.Context) (SessionSummary, error) {
	var out SessionSummary
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(DISTINCT date_key),
			COUNT(DISTINCT date(date_key, '-6 days', 'weekday 0')),
			COUNT(*),
			COALESCE(SUM(completed), 0)
		FROM day_tasks`).Scan(&out.Days, &out.Weeks, &out.Total, &out.Completed)
	if err != nil {
		return SessionSummary{}, err
	}
	if out.Total == 0 {
		return out, nil
	}
	err = r.db.QueryRowContext(ctx, `
		SELECT date_key, COUNT(*) AS n FROM day_tasks
		GROUP BY date_key ORDER BY n DESC, date_key ASC LIMIT 1`).Scan(&out.BusiestDay, &out.BusiestCount)
	if err != nil {
		return SessionSummary{}, err
	}
	return out, nil
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
