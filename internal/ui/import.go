package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekpulse/internal/exchange"
)

func (a *App) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import tasks and projects from a JSON document",
		Long: `Import a JSON document with "tasks" and "projects" arrays into the
current database. Records whose ID already exists are overwritten.

Example:
  weekpulse import ~/backup/weekpulse.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			importer, ok := a.repo.(exchange.Importer)
			if !ok {
				return errors.New("storage does not support import")
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("import file does not exist: %s", path)
				}
				return fmt.Errorf("opening import file: %w", err)
			}
			defer func() { _ = f.Close() }()

			tasks, projects, err := exchange.Import(context.Background(), importer, f)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks and %d projects from %s\n", tasks, projects, path)
			return nil
		},
	}
}

func (a *App) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export tasks and projects as JSON",
		Long: `Write every task and project as a JSON document. Without a file
argument the document goes to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()

			if len(args) == 0 {
				return exchange.Export(ctx, a.repo, cmd.OutOrStdout())
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			if err := exchange.Export(ctx, a.repo, f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing export file: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", path)
			return nil
		},
	}
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
