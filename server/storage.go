package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/existflow/tidytask/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no task with the id exists in the requested list
var ErrNotFound = errors.New("task not found")

const (
	dialectSQLite   = "sqlite"
	dialectPostgres = "postgres"
)

// Storage persists todos and trash in one table, split by the trashed flag
type Storage struct {
	db      *sqlx.DB
	dialect string
}

// OpenStorage opens a PostgreSQL database for postgres:// URLs and a SQLite
// file (or ":memory:") for anything else.
func OpenStorage(dsn string) (*Storage, error) {
	dialect := dialectSQLite
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialect = dialectPostgres
	}

	if dialect == dialectSQLite && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc registers as "sqlite", which sqlx does not know as a ? driver
	sqlx.BindDriver(dialectSQLite, sqlx.QUESTION)

	db, err := sqlx.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dialect == dialectSQLite {
		// one connection so ":memory:" is a single database
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Storage{db: db, dialect: dialect}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

const taskColumns = "id, task, status, created_at, updated_at"

// taskRow is a tasks row as stored; timestamps are RFC 3339 text
type taskRow struct {
	ID        string `db:"id"`
	Task      string `db:"task"`
	Status    string `db:"status"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

func (r taskRow) toTask() (model.Task, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return model.Task{}, fmt.Errorf("task %s: bad created_at: %w", r.ID, err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, r.UpdatedAt)
	if err != nil {
		return model.Task{}, fmt.Errorf("task %s: bad updated_at: %w", r.ID, err)
	}
	return model.Task{
		ID:        r.ID,
		Task:      r.Task,
		Status:    model.Status(r.Status),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// List returns active tasks, or trashed ones when trashed is true, in insertion order
func (s *Storage) List(ctx context.Context, trashed bool) ([]model.Task, error) {
	var rows []taskRow
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(
		`SELECT `+taskColumns+` FROM tasks WHERE trashed = ? ORDER BY seq ASC`),
		boolInt(trashed))
	if err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(rows))
	for _, r := range rows {
		t, err := r.toTask()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Get returns one task from the active or trashed list
func (s *Storage) Get(ctx context.Context, id string, trashed bool) (model.Task, error) {
	var r taskRow
	err := s.db.GetContext(ctx, &r, s.db.Rebind(
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND trashed = ?`),
		id, boolInt(trashed))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, ErrNotFound
	}
	if err != nil {
		return model.Task{}, err
	}
	return r.toTask()
}

// Create stores a new active task under a fresh id
func (s *Storage) Create(ctx context.Context, t model.Task) (model.Task, error) {
	t.ID = uuid.New().String()
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	_, err := s.db.ExecContext(ctx, s.db.Rebind(
		`INSERT INTO tasks (id, task, status, trashed, created_at, updated_at) VALUES (?, ?, ?, 0, ?, ?)`),
		t.ID, t.Task, string(t.Status), formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
	if err != nil {
		return model.Task{}, err
	}
	return s.Get(ctx, t.ID, false)
}

// Update overwrites an active task
func (s *Storage) Update(ctx context.Context, t model.Task) (model.Task, error) {
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx, s.db.Rebind(
		`UPDATE tasks SET task = ?, status = ?, updated_at = ? WHERE id = ? AND trashed = 0`),
		t.Task, string(t.Status), formatTime(t.UpdatedAt), t.ID)
	if err != nil {
		return model.Task{}, err
	}
	if err := expectRow(res); err != nil {
		return model.Task{}, err
	}
	return s.Get(ctx, t.ID, false)
}

// MoveToTrash soft-deletes an active task
func (s *Storage) MoveToTrash(ctx context.Context, id string) error {
	return s.setTrashed(ctx, id, true)
}

// Restore moves a trashed task back to the active list and returns it
func (s *Storage) Restore(ctx context.Context, id string) (model.Task, error) {
	if err := s.setTrashed(ctx, id, false); err != nil {
		return model.Task{}, err
	}
	return s.Get(ctx, id, false)
}

func (s *Storage) setTrashed(ctx context.Context, id string, trashed bool) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(
		`UPDATE tasks SET trashed = ?, updated_at = ? WHERE id = ? AND trashed = ?`),
		boolInt(trashed), formatTime(time.Now()), id, boolInt(!trashed))
	if err != nil {
		return err
	}
	return expectRow(res)
}

// Purge permanently deletes one trashed task
func (s *Storage) Purge(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(
		`DELETE FROM tasks WHERE id = ? AND trashed = 1`), id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// PurgeAll permanently deletes every trashed task and returns how many were removed
func (s *Storage) PurgeAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE trashed = 1`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
