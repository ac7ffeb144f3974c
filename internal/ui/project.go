package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekpulse/internal/task"
)

func (a *App) projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(a.projectAddCmd())
	cmd.AddCommand(a.projectListCmd())
	cmd.AddCommand(a.projectStatusCmd())
	return cmd
}

func statusNames() string {
	names := make([]string, 0, 4)
	for _, s := range task.Statuses() {
		names = append(names, strings.ToLower(strings.ReplaceAll(string(s), " ", "-")))
	}
	return strings.Join(names, ", ")
}

func (a *App) projectAddCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:     "add [title]",
		Short:   "Add a new project",
		Example: `  weekpulse project add "Write the book" --status=in-progress`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var st task.ProjectStatus
			if status != "" {
				parsed, err := task.ParseStatus(status)
				if err != nil {
					return err
				}
				st = parsed
			}
			p, err := task.NewProject(args[0], st)
			if err != nil {
				return err
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.CreateProject(context.Background(), p); err != nil {
				return fmt.Errorf("creating project: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s: %s (%s)\n", shortID(p.ID), p.Title, p.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Status: "+statusNames()+" (default: not-started)")
	return cmd
}

func (a *App) projectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long:  `List every project. Only In Progress projects count as active in the pulse.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			projects, err := a.repo.ListProjects(context.Background())
			if err != nil {
				return fmt.Errorf("listing projects: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects found.")
				return nil
			}
			for _, p := range projects {
				marker := " "
				title := p.Title
				if p.IsActive() {
					marker = "*"
					title = formatProject(title)
				}
				fmt.Fprintf(out, "%s %s  %-12s  %s\n", marker, formatMuted(shortID(p.ID)), p.Status, title)
			}
			return nil
		},
	}
}

func (a *App) projectStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status [id] [status]",
		Short:   "Change a project's status",
		Example: `  weekpulse project status 1a2b on-hold`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := task.ParseStatus(args[1])
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()

			p, err := a.findProject(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.repo.SetProjectStatus(ctx, p.ID, st); err != nil {
				return fmt.Errorf("updating project: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project %s: %s -> %s\n", p.Title, p.Status, st)
			return nil
		},
	}
}

// findProject resolves an exact ID or a unique ID prefix.
func (a *App) findProject(ctx context.Context, id string) (*task.Project, error) {
	id = strings.TrimSpace(id)
	if p, err := a.repo.GetProject(ctx, id); err == nil {
		return p, nil
	} else if !errors.Is(err, task.ErrProjectNotFound) {
		return nil, err
	}

	projects, err := a.repo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	var match *task.Project
	for _, p := range projects {
		if id == "" || !strings.HasPrefix(p.ID, id) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
		}
		match = p
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", task.ErrProjectNotFound, id)
	}
	return match, nil
}
