package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS projects (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			status     TEXT NOT NULL DEFAULT 'Not Started'
			           CHECK(status IN ('Not Started', 'In Progress', 'On Hold', 'Completed')),
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS tasks (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			date       TEXT NOT NULL,
			completed  INTEGER NOT NULL DEFAULT 0,
			category   TEXT NOT NULL DEFAULT ''
			           CHECK(category IN ('', 'Projects', 'Areas', 'Resources', 'Archives')),
			project_id TEXT,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_date ON tasks(date);
		CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
