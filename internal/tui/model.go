// Package tui provides the terminal user interface for weekpulse.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/javiermolinar/weekpulse/internal/config"
	"github.com/javiermolinar/weekpulse/internal/dateutil"
	"github.com/javiermolinar/weekpulse/internal/locale"
	"github.com/javiermolinar/weekpulse/internal/summary"
	"github.com/javiermolinar/weekpulse/internal/task"
	"github.com/javiermolinar/weekpulse/internal/tui/commands"
	"github.com/javiermolinar/weekpulse/internal/tui/theme"
	"github.com/javiermolinar/weekpulse/internal/tui/view"
)

const (
	statusTTL     = 3 * time.Second
	errorTTL      = 5 * time.Second
	clockInterval = time.Minute
)

// Model is the main TUI model. It owns the selected day and hands it to
// the pulse strip on every render.
type Model struct {
	// Dependencies
	repo   task.Repository
	config *config.Config

	// Theme and styles
	styles *Styles
	names  *locale.Names
	keys   KeyMap
	help   help.Model
	pulse  WeeklySummary

	// Data
	tasks     []*task.Task
	projects  []*task.Project
	loadedFor dateutil.DayKey // today at the last load
	loading   bool

	// Selection
	selected dateutil.DayKey
	focus    int // focused tile
	cursor   int // row in the day list
	insight  string

	// Terminal dimensions
	width  int
	height int
	mouse  bool

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	// Error state
	err error

	now func() time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// WithSelectFunc replaces the message produced when a tile is activated.
func WithSelectFunc(fn SelectFunc) ModelOption {
	return func(m *Model) {
		m.pulse = NewWeeklySummary(m.names, m.styles.Pulse, fn)
	}
}

// New creates a new TUI model.
func New(repo task.Repository, cfg *config.Config, opts ...ModelOption) Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)
	names := locale.New(cfg.UI.Locale)

	h := help.New()
	h.Styles.ShortKey = styles.HelpStyle.Bold(true)
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.ShortSeparator = styles.HelpStyle
	h.Styles.FullKey = styles.HelpStyle.Bold(true)
	h.Styles.FullDesc = styles.HelpStyle
	h.Styles.FullSeparator = styles.HelpStyle
	h.Styles.Ellipsis = styles.HelpStyle

	m := Model{
		repo:    repo,
		config:  cfg,
		styles:  styles,
		names:   names,
		keys:    DefaultKeyMap(),
		help:    h,
		pulse:   NewWeeklySummary(names, styles.Pulse, nil),
		mouse:   cfg.UI.Mouse,
		loading: repo != nil,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.selected = dateutil.Today(m.now())

	return m
}

// Init loads the week and starts the clock.
func (m Model) Init() tea.Cmd {
	if m.repo == nil {
		return commands.ClockTick(clockInterval)
	}
	return tea.Batch(
		commands.LoadData(m.repo, m.now()),
		commands.ClockTick(clockInterval),
	)
}

// Selected returns the selected day.
func (m Model) Selected() dateutil.DayKey {
	return m.selected
}

func (m Model) reload() (Model, tea.Cmd) {
	if m.repo == nil {
		return m, nil
	}
	m.loading = true
	return m, commands.LoadData(m.repo, m.now())
}

// dayTasks returns the tasks of the selected day, open ones first.
func (m Model) dayTasks() []*task.Task {
	return summary.DayTasks(m.selected, m.tasks)
}

func (m Model) currentTask() *task.Task {
	tasks := m.dayTasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return nil
	}
	return tasks[m.cursor]
}

func (m Model) innerWidth() int {
	return m.width - 2*appPadX
}

func (m Model) pulseGeometry() view.PulseGeometry {
	return view.NewPulseGeometry(appPadX, appPadY, m.innerWidth(), dateutil.PulseDays)
}

// Run starts the TUI.
func Run(repo task.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
// A nil repo is opened from the configured path, initializing storage on first run.
func RunWithDebug(repo task.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	if repo == nil {
		state, err := DetectInitState(cfg)
		if err != nil {
			return err
		}
		if state.NeedsInit() {
			debugLog.WithFields(log.Fields{
				"config_missing": state.ConfigMissing,
				"db_missing":     state.DBMissing,
				"db_path":        state.DBPath,
			}).Info("first run")
		}
		repo, err = InitializeStorage(cfg, state)
		if err != nil {
			return err
		}
		defer func() { _ = repo.Close() }()
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	_, err := tea.NewProgram(New(repo, cfg), opts...).Run()
	return err
}
