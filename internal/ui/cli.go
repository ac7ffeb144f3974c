package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekpulse/internal/config"
	"github.com/javiermolinar/weekpulse/internal/task"
	"github.com/javiermolinar/weekpulse/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   task.Repository
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
	now    func() time.Time
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repo is opened lazily from the configured database path.
func NewApp(repo task.Repository, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{repo: repo, config: cfg, now: time.Now}

	a.root = &cobra.Command{
		Use:   "weekpulse",
		Short: "A terminal tracker for PARA tasks with a 7-day pulse",
		Long: `weekpulse tracks dated tasks and projects, PARA style.

Its main view is the 7-Day Weekly Pulse: one tile per day from today
through the next six days, counting pending project and area tasks.
Run without arguments to open the interactive view.`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (writes "+tui.DebugLogPath+")")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.pulseCmd())
	a.root.AddCommand(a.taskCmd())
	a.root.AddCommand(a.projectCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.exportCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "weekpulse %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the database on first use, writing a default config
// when none exists yet.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	state, err := tui.DetectInitState(a.config)
	if err != nil {
		return err
	}
	repo, err := tui.InitializeStorage(a.config, state)
	if err != nil {
		return err
	}
	a.repo = repo
	return nil
}

// Close releases the repository if one was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
