// Package task defines the core domain types for weekpulse.
package task

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/weekpulse/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrInvalidCategory = errors.New("category must be one of Projects, Areas, Resources, Archives")
	ErrInvalidStatus   = errors.New("status must be one of Not Started, In Progress, On Hold, Completed")
)

// Domain errors.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrProjectNotFound = errors.New("project not found")
)

// Category is the PARA bucket a task is filed under.
type Category string

const (
	CategoryNone      Category = ""
	CategoryProjects  Category = "Projects"
	CategoryAreas     Category = "Areas"
	CategoryResources Category = "Resources"
	CategoryArchives  Category = "Archives"
)

// Categories lists the valid non-empty categories.
func Categories() []Category {
	return []Category{CategoryProjects, CategoryAreas, CategoryResources, CategoryArchives}
}

// ParseCategory parses a category name case-insensitively. An empty string yields CategoryNone.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryNone, nil
	}
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

// ProjectRef is an optional reference from a task to its project.
// The zero value is NoProject.
type ProjectRef struct {
	id string
}

// NoProject is the absent project reference.
var NoProject = ProjectRef{}

// LinkTo returns a reference to the project with the given ID.
// A blank ID yields NoProject.
func LinkTo(projectID string) ProjectRef {
	return ProjectRef{id: strings.TrimSpace(projectID)}
}

// ID returns the referenced project ID and whether a reference is present.
func (r ProjectRef) ID() (string, bool) {
	return r.id, r.id != ""
}

// IsSet reports whether the reference points at a project.
func (r ProjectRef) IsSet() bool {
	return r.id != ""
}

// Kind classifies a task for the weekly pulse.
type Kind int

const (
	// KindOther is neither a project nor an area task.
	KindOther Kind = iota
	// KindProject is linked to a project, whatever its category.
	KindProject
	// KindArea is unlinked and filed under Areas.
	KindArea
)

// Task is a dated to-do item.
type Task struct {
	ID        string
	Title     string
	Date      dateutil.DayKey
	Completed bool
	Category  Category
	Project   ProjectRef
	CreatedAt time.Time
}

// New creates a new Task with validation.
// date must be a valid day key; category may be empty.
func New(title string, date dateutil.DayKey, category Category, project ProjectRef) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !date.Valid() {
		return nil, dateutil.ErrInvalidDateFormat
	}
	if _, err := ParseCategory(string(category)); err != nil {
		return nil, err
	}

	return &Task{
		ID:        uuid.NewString(),
		Title:     title,
		Date:      date,
		Category:  category,
		Project:   project,
		CreatedAt: time.Now(),
	}, nil
}

// Kind returns how the task is counted in the pulse.
func (t *Task) Kind() Kind {
	switch {
	case t.Project.IsSet():
		return KindProject
	case t.Category == CategoryAreas:
		return KindArea
	default:
		return KindOther
	}
}

// IsPending reports whether the task is not completed.
func (t *Task) IsPending() bool {
	return !t.Completed
}

// On reports whether the task is dated on key.
func (t *Task) On(key dateutil.DayKey) bool {
	return t.Date == key
}
