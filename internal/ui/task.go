package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekpulse/internal/dateutil"
	"github.com/javiermolinar/weekpulse/internal/task"
)

// ErrAmbiguousID is returned when an ID prefix matches more than one record.
var ErrAmbiguousID = errors.New("id prefix matches more than one record")

func (a *App) taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(a.taskAddCmd())
	cmd.AddCommand(a.taskListCmd())
	cmd.AddCommand(a.taskCompleteCmd("done", "Mark a task as completed", true))
	cmd.AddCommand(a.taskCompleteCmd("undo", "Mark a task as pending again", false))
	cmd.AddCommand(a.taskRemoveCmd())
	return cmd
}

func (a *App) taskAddCmd() *cobra.Command {
	var (
		date     string
		category string
		project  string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long: `Add a dated task. Link it to a project with --project, or file it
under a PARA category with --category. Unlinked Areas tasks count as
area work in the pulse; linked tasks count as project work.`,
		Example: `  weekpulse task add "Draft chapter 3" --date=tomorrow --project=1a2b
  weekpulse task add "Gym" --date=friday --category=areas`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()

			key, err := dateutil.ParseRelativeDate(date, a.now())
			if err != nil {
				return err
			}
			cat, err := task.ParseCategory(category)
			if err != nil {
				return err
			}

			ref := task.NoProject
			projectTitle := ""
			if project != "" {
				p, err := a.findProject(ctx, project)
				if err != nil {
					return err
				}
				ref = task.LinkTo(p.ID)
				projectTitle = p.Title
			}

			t, err := task.New(args[0], key, cat, ref)
			if err != nil {
				return err
			}
			if err := a.repo.CreateTask(ctx, t); err != nil {
				return fmt.Errorf("creating task: %w", err)
			}

			msg := fmt.Sprintf("Created task %s: %s on %s", shortID(t.ID), t.Title, t.Date)
			switch {
			case projectTitle != "":
				msg += " [" + projectTitle + "]"
			case t.Category != task.CategoryNone:
				msg += " [" + string(t.Category) + "]"
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, today, tomorrow, weekday; default: today)")
	cmd.Flags().StringVar(&category, "category", "", "PARA category: projects, areas, resources or archives")
	cmd.Flags().StringVar(&project, "project", "", "Project ID or unique prefix")
	return cmd
}

func (a *App) taskListCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks grouped by day. Without --date, lists the seven days of
the pulse starting today.`,
		Example: `  weekpulse task list
  weekpulse task list --date=2025-01-15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()

			keys := dateutil.Upcoming(a.now())
			if date != "" {
				key, err := parseListDate(date, a.now())
				if err != nil {
					return err
				}
				keys = []dateutil.DayKey{key}
			}

			tasks, err := a.repo.ListTasksByDateRange(ctx, keys[0], keys[len(keys)-1])
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}
			projects, err := a.repo.ListProjects(ctx)
			if err != nil {
				return fmt.Errorf("listing projects: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks found.")
				return nil
			}

			index := projectIndex(projects)
			first := true
			for _, key := range keys {
				day := task.NewDay(key, tasks)
				if day.Len() == 0 {
					continue
				}
				if !first {
					fmt.Fprintln(out)
				}
				first = false
				fmt.Fprintf(out, "=== %s %s ===\n", key.Weekday().String()[:3], key)
				for _, t := range day.Tasks() {
					fmt.Fprintln(out, formatTaskRow(t, index))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Single day to list (YYYY-MM-DD, today, tomorrow, weekday)")
	return cmd
}

func (a *App) taskCompleteCmd(use, short string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()

			t, err := a.findTask(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.repo.SetTaskCompleted(ctx, t.ID, completed); err != nil {
				return fmt.Errorf("updating task: %w", err)
			}

			state := "pending"
			if completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked task %s as %s: %s\n", shortID(t.ID), state, t.Title)
			return nil
		},
	}
}

func (a *App) taskRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()

			t, err := a.findTask(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.repo.DeleteTask(ctx, t.ID); err != nil {
				return fmt.Errorf("deleting task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s: %s\n", shortID(t.ID), t.Title)
			return nil
		},
	}
}

// parseListDate accepts past dates, unlike scheduling.
func parseListDate(s string, now time.Time) (dateutil.DayKey, error) {
	key, err := dateutil.ParseRelativeDate(s, now)
	if errors.Is(err, dateutil.ErrDateInPast) {
		return dateutil.ParseKey(s)
	}
	return key, err
}

// findTask resolves an exact ID or a unique ID prefix.
func (a *App) findTask(ctx context.Context, id string) (*task.Task, error) {
	id = strings.TrimSpace(id)
	if t, err := a.repo.GetTask(ctx, id); err == nil {
		return t, nil
	} else if !errors.Is(err, task.ErrTaskNotFound) {
		return nil, err
	}

	tasks, err := a.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	var match *task.Task
	for _, t := range tasks {
		if id == "" || !strings.HasPrefix(t.ID, id) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
		}
		match = t
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	return match, nil
}
