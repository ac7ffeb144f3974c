package task

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	StatusNotStarted ProjectStatus = "Not Started"
	StatusInProgress ProjectStatus = "In Progress"
	StatusOnHold     ProjectStatus = "On Hold"
	StatusCompleted  ProjectStatus = "Completed"
)

// Statuses lists the valid project statuses.
func Statuses() []ProjectStatus {
	return []ProjectStatus{StatusNotStarted, StatusInProgress, StatusOnHold, StatusCompleted}
}

// ParseStatus parses a status case-insensitively.
// Dashes and underscores are accepted in place of spaces ("in-progress").
func ParseStatus(s string) (ProjectStatus, error) {
	norm := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s))
	for _, st := range Statuses() {
		if strings.EqualFold(norm, string(st)) {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

// Project groups tasks under a goal with a status.
type Project struct {
	ID        string
	Title     string
	Status    ProjectStatus
	CreatedAt time.Time
}

// NewProject creates a project with validation. An empty status defaults to Not Started.
func NewProject(title string, status ProjectStatus) (*Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if status == "" {
		status = StatusNotStarted
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}
	return &Project{
		ID:        uuid.NewString(),
		Title:     title,
		Status:    status,
		CreatedAt: time.Now(),
	}, nil
}

// IsActive reports whether the project is in progress.
func (p *Project) IsActive() bool {
	return p.Status == StatusInProgress
}
