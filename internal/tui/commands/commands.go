// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekpulse/internal/config"
	"github.com/javiermolinar/weekpulse/internal/dateutil"
	"github.com/javiermolinar/weekpulse/internal/summary"
	"github.com/javiermolinar/weekpulse/internal/task"
)

// DataLoadedMsg is sent when the pulse window and the projects are loaded.
type DataLoadedMsg struct {
	Day      dateutil.DayKey // today at load time
	Tasks    []*task.Task
	Projects []*task.Project
}

// TaskToggledMsg is sent after a task's completion state was persisted.
type TaskToggledMsg struct {
	ID        string
	Completed bool
}

// InsightMsg carries the LLM read of the week.
type InsightMsg struct {
	Text string
}

// ClockTickMsg is sent periodically so the model can notice a new day.
type ClockTickMsg struct {
	Time time.Time
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// WriteClipboard is the clipboard sink used by Copy.
var WriteClipboard = clipboard.WriteAll

// LoadData loads tasks for the seven days starting at now and every project.
func LoadData(repo task.Repository, now time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		keys := dateutil.Upcoming(now)

		tasks, err := repo.ListTasksByDateRange(ctx, keys[0], keys[len(keys)-1])
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading tasks: %w", err)}
		}
		projects, err := repo.ListProjects(ctx)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading projects: %w", err)}
		}

		return DataLoadedMsg{Day: keys[0], Tasks: tasks, Projects: projects}
	}
}

// ToggleTask persists a task's completion state.
func ToggleTask(repo task.Repository, id string, completed bool) tea.Cmd {
	return func() tea.Msg {
		if err := repo.SetTaskCompleted(context.Background(), id, completed); err != nil {
			return ErrMsg{Err: fmt.Errorf("updating task: %w", err)}
		}
		return TaskToggledMsg{ID: id, Completed: completed}
	}
}

// Insight builds the pulse from the repository and asks the configured LLM about it.
func Insight(cfg *config.Config, repo task.Repository, now time.Time) tea.Cmd {
	return func() tea.Msg {
		pulse, _, err := summary.BuildPulseFromRepo(context.Background(), repo, summary.BuildPulseOptions{
			Now:            now,
			IncludeInsight: true,
			Provider:       cfg.LLM.Provider,
			Model:          cfg.LLM.Model,
			BaseURL:        cfg.LLM.BaseURL,
		})
		if err != nil {
			return ErrMsg{Err: err}
		}
		if pulse.Insight == "" {
			return StatusMsgCmd{Msg: "Nothing planned this week"}
		}
		return InsightMsg{Text: pulse.Insight}
	}
}

// Copy writes text to the system clipboard.
func Copy(text string) tea.Cmd {
	return func() tea.Msg {
		if err := WriteClipboard(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: "Copied pulse to clipboard"}
	}
}

// ClockTick fires a ClockTickMsg after d.
func ClockTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return ClockTickMsg{Time: t}
	})
}
