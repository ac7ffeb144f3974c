package task

import (
	"context"

	"github.com/javiermolinar/weekpulse/internal/dateutil"
)

// Repository defines the storage interface for tasks and projects.
type Repository interface {
	// CreateTask adds a new task to the repository.
	CreateTask(ctx context.Context, task *Task) error

	// GetTask retrieves a task by ID. Returns ErrTaskNotFound if absent.
	GetTask(ctx context.Context, id string) (*Task, error)

	// ListTasks returns every task ordered by date.
	ListTasks(ctx context.Context) ([]*Task, error)

	// ListTasksByDateRange returns all tasks dated within [from, to] (inclusive).
	ListTasksByDateRange(ctx context.Context, from, to dateutil.DayKey) ([]*Task, error)

	// SetTaskCompleted marks a task as completed or pending.
	SetTaskCompleted(ctx context.Context, id string, completed bool) error

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id string) error

	// CreateProject adds a new project.
	CreateProject(ctx context.Context, project *Project) error

	// GetProject retrieves a project by ID. Returns ErrProjectNotFound if absent.
	GetProject(ctx context.Context, id string) (*Project, error)

	// ListProjects returns every project ordered by creation time.
	ListProjects(ctx context.Context) ([]*Project, error)

	// SetProjectStatus changes a project's status.
	SetProjectStatus(ctx context.Context, id string, status ProjectStatus) error

	// Close releases any resources held by the repository.
	Close() error
}
