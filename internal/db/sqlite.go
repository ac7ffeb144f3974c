// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/weekpulse/internal/dateutil"
	"github.com/javiermolinar/weekpulse/internal/task"
)

// SQLite implements task.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ task.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

const taskColumns = `id, title, date, completed, category, project_id, created_at`

const insertTask = `
	INSERT INTO tasks (` + taskColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		date = excluded.date,
		completed = excluded.completed,
		category = excluded.category,
		project_id = excluded.project_id
`

const insertProject = `
	INSERT INTO projects (id, title, status, created_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		status = excluded.status
`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateTask adds a new task to the repository.
func (s *SQLite) CreateTask(ctx context.Context, t *task.Task) error {
	if err := putTask(ctx, s.db, t); err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func putTask(ctx context.Context, db execer, t *task.Task) error {
	var projectID sql.NullString
	if id, ok := t.Project.ID(); ok {
		projectID = sql.NullString{String: id, Valid: true}
	}
	createdAt := t.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := db.ExecContext(ctx, insertTask,
		t.ID,
		t.Title,
		t.Date.String(),
		t.Completed,
		string(t.Category),
		projectID,
		createdAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// GetTask retrieves a task by ID.
func (s *SQLite) GetTask(ctx context.Context, id string) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	t, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying task: %w", err)
	}
	return t, nil
}

// ListTasks returns every task ordered by date.
func (s *SQLite) ListTasks(ctx context.Context) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY date, created_at`
	return s.queryTasks(ctx, query)
}

// ListTasksByDateRange returns all tasks dated within the range (inclusive).
func (s *SQLite) ListTasksByDateRange(ctx context.Context, from, to dateutil.DayKey) ([]*task.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE date >= ? AND date <= ?
		ORDER BY date, created_at
	`
	return s.queryTasks(ctx, query, from.String(), to.String())
}

func (s *SQLite) queryTasks(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// SetTaskCompleted marks a task as completed or pending.
func (s *SQLite) SetTaskCompleted(ctx context.Context, id string, completed bool) error {
	result, err := s.db.ExecContext(ctx, `UPDATE tasks SET completed = ? WHERE id = ?`, completed, id)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return expectRow(result, task.ErrTaskNotFound, id)
}

// DeleteTask removes a task.
func (s *SQLite) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return expectRow(result, task.ErrTaskNotFound, id)
}

// CreateProject adds a new project.
func (s *SQLite) CreateProject(ctx context.Context, p *task.Project) error {
	if err := putProject(ctx, s.db, p); err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func putProject(ctx context.Context, db execer, p *task.Project) error {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := db.ExecContext(ctx, insertProject,
		p.ID,
		p.Title,
		string(p.Status),
		createdAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// GetProject retrieves a project by ID.
func (s *SQLite) GetProject(ctx context.Context, id string) (*task.Project, error) {
	query := `SELECT id, title, status, created_at FROM projects WHERE id = ?`

	p, err := scanProject(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", task.ErrProjectNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying project: %w", err)
	}
	return p, nil
}

// ListProjects returns every project ordered by creation time.
func (s *SQLite) ListProjects(ctx context.Context) ([]*task.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, status, created_at FROM projects ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []*task.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// SetProjectStatus changes a project's status.
func (s *SQLite) SetProjectStatus(ctx context.Context, id string, status task.ProjectStatus) error {
	if _, err := task.ParseStatus(string(status)); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `UPDATE projects SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return expectRow(result, task.ErrProjectNotFound, id)
}

// Import upserts tasks and projects in a single transaction.
// Existing rows with the same ID are overwritten.
func (s *SQLite) Import(ctx context.Context, tasks []*task.Task, projects []*task.Project) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range projects {
		if err := putProject(ctx, tx, p); err != nil {
			return fmt.Errorf("inserting project %q: %w", p.Title, err)
		}
	}
	for _, t := range tasks {
		if err := putTask(ctx, tx, t); err != nil {
			return fmt.Errorf("inserting task %q: %w", t.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*task.Task, error) {
	var (
		t         task.Task
		date      string
		category  string
		projectID sql.NullString
		createdAt string
	)
	if err := row.Scan(&t.ID, &t.Title, &date, &t.Completed, &category, &projectID, &createdAt); err != nil {
		return nil, err
	}

	// Malformed dates are kept verbatim; they never match a pulse day.
	t.Date = normalizeDate(date)
	t.Category = task.Category(category)
	if projectID.Valid {
		t.Project = task.LinkTo(projectID.String)
	}

	var err error
	t.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	return &t, nil
}

func scanProject(row rowScanner) (*task.Project, error) {
	var (
		p         task.Project
		status    string
		createdAt string
	)
	if err := row.Scan(&p.ID, &p.Title, &status, &createdAt); err != nil {
		return nil, err
	}
	p.Status = task.ProjectStatus(status)

	var err error
	p.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	return &p, nil
}

// normalizeDate strips a time suffix SQLite may attach to date-only values.
func normalizeDate(s string) dateutil.DayKey {
	if len(s) > len(dateutil.KeyLayout) && s[len(dateutil.KeyLayout)] == 'T' {
		if key, err := dateutil.ParseKey(s[:len(dateutil.KeyLayout)]); err == nil {
			return key
		}
	}
	return dateutil.DayKey(s)
}

func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}

func expectRow(result sql.Result, notFound error, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", notFound, id)
	}
	return nil
}
