// Package exchange reads and writes the JSON document used by import and export.
// The shape mirrors the browser app's local storage: {"tasks": [...], "projects": [...]}.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/javiermolinar/weekpulse/internal/dateutil"
	"github.com/javiermolinar/weekpulse/internal/task"
)

// ErrInvalidDocument is returned when a document cannot be decoded.
var ErrInvalidDocument = errors.New("invalid exchange document")

// Document is the import/export payload.
type Document struct {
	Tasks    []TaskRecord    `json:"tasks"`
	Projects []ProjectRecord `json:"projects"`
}

// TaskRecord is the JSON form of a task.
type TaskRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Category  string `json:"category,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// ProjectRecord is the JSON form of a project.
type ProjectRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Importer stores a batch of tasks and projects.
type Importer interface {
	Import(ctx context.Context, tasks []*task.Task, projects []*task.Project) error
}

// Decode reads a document. Unknown fields are ignored.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := sonic.ConfigStd.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return &doc, nil
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc *Document) error {
	enc := sonic.ConfigStd.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return nil
}

// FromDomain builds a document from stored tasks and projects.
func FromDomain(tasks []*task.Task, projects []*task.Project) *Document {
	doc := &Document{
		Tasks:    make([]TaskRecord, 0, len(tasks)),
		Projects: make([]ProjectRecord, 0, len(projects)),
	}
	for _, t := range tasks {
		projectID, _ := t.Project.ID()
		doc.Tasks = append(doc.Tasks, TaskRecord{
			ID:        t.ID,
			Title:     t.Title,
			Date:      t.Date.String(),
			Completed: t.Completed,
			Category:  string(t.Category),
			ProjectID: projectID,
			CreatedAt: formatTime(t.CreatedAt),
		})
	}
	for _, p := range projects {
		doc.Projects = append(doc.Projects, ProjectRecord{
			ID:        p.ID,
			Title:     p.Title,
			Status:    string(p.Status),
			CreatedAt: formatTime(p.CreatedAt),
		})
	}
	return doc
}

// ToDomain validates the document and converts it to domain values.
// Records without an ID get a fresh one; a missing creation time becomes now.
func (d *Document) ToDomain(now time.Time) ([]*task.Task, []*task.Project, error) {
	projects := make([]*task.Project, 0, len(d.Projects))
	for i, r := range d.Projects {
		p, err := r.toDomain(now)
		if err != nil {
			return nil, nil, fmt.Errorf("project %d: %w", i, err)
		}
		projects = append(projects, p)
	}

	tasks := make([]*task.Task, 0, len(d.Tasks))
	for i, r := range d.Tasks {
		t, err := r.toDomain(now)
		if err != nil {
			return nil, nil, fmt.Errorf("task %d: %w", i, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, projects, nil
}

func (r TaskRecord) toDomain(now time.Time) (*task.Task, error) {
	if r.Title == "" {
		return nil, task.ErrEmptyTitle
	}
	date, err := dateutil.ParseKey(r.Date)
	if err != nil {
		return nil, err
	}
	category, err := task.ParseCategory(r.Category)
	if err != nil {
		return nil, err
	}
	createdAt, err := parseTime(r.CreatedAt, now)
	if err != nil {
		return nil, err
	}
	return &task.Task{
		ID:        idOrNew(r.ID),
		Title:     r.Title,
		Date:      date,
		Completed: r.Completed,
		Category:  category,
		Project:   task.LinkTo(r.ProjectID),
		CreatedAt: createdAt,
	}, nil
}

func (r ProjectRecord) toDomain(now time.Time) (*task.Project, error) {
	if r.Title == "" {
		return nil, task.ErrEmptyTitle
	}
	status := task.StatusNotStarted
	if r.Status != "" {
		var err error
		if status, err = task.ParseStatus(r.Status); err != nil {
			return nil, err
		}
	}
	createdAt, err := parseTime(r.CreatedAt, now)
	if err != nil {
		return nil, err
	}
	return &task.Project{
		ID:        idOrNew(r.ID),
		Title:     r.Title,
		Status:    status,
		CreatedAt: createdAt,
	}, nil
}

func idOrNew(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// parseTime accepts RFC 3339 timestamps as written by both this tool and the browser app.
func parseTime(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid createdAt %q: %w", s, err)
	}
	return t, nil
}

// Import decodes r and stores its contents through dst.
// It returns the number of tasks and projects imported.
func Import(ctx context.Context, dst Importer, r io.Reader) (tasks, projects int, err error) {
	doc, err := Decode(r)
	if err != nil {
		return 0, 0, err
	}
	ts, ps, err := doc.ToDomain(time.Now())
	if err != nil {
		return 0, 0, err
	}
	if err := dst.Import(ctx, ts, ps); err != nil {
		return 0, 0, fmt.Errorf("storing import: %w", err)
	}
	return len(ts), len(ps), nil
}

// Export writes every task and project in repo to w.
func Export(ctx context.Context, repo task.Repository, w io.Writer) error {
	tasks, err := repo.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("fetching tasks: %w", err)
	}
	projects, err := repo.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("fetching projects: %w", err)
	}
	return Encode(w, FromDomain(tasks, projects))
}
