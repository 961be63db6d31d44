package server

import "fmt"

// migrate runs database migrations for the active dialect
func (s *Storage) migrate() error {
	migrations := []string{migrationTasksSQLite}
	if s.dialect == dialectPostgres {
		migrations = []string{migrationTasksPostgres}
	}
	migrations = append(migrations, migrationTasksIndex)

	for i, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

// seq keeps insertion order; list endpoints return rows in seq order.
const migrationTasksSQLite = `
CREATE TABLE IF NOT EXISTS tasks (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT UNIQUE NOT NULL,
    task TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending',
    trashed INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

const migrationTasksPostgres = `
CREATE TABLE IF NOT EXISTS tasks (
    seq BIGSERIAL PRIMARY KEY,
    id TEXT UNIQUE NOT NULL,
    task TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending',
    trashed INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

const migrationTasksIndex = `
CREATE INDEX IF NOT EXISTS idx_tasks_trashed ON tasks(trashed, seq);
`
