package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/javiermolinar/weekpulse/internal/config"
	"github.com/javiermolinar/weekpulse/internal/db"
	"github.com/javiermolinar/weekpulse/internal/task"
)

// InitState records which first-run files are missing.
type InitState struct {
	ConfigMissing bool
	DBMissing     bool
	ConfigPath    string
	DBPath        string
}

// NeedsInit reports whether anything has to be created.
func (s InitState) NeedsInit() bool {
	return s.ConfigMissing || s.DBMissing
}

// DetectInitState checks the default config path and the configured database.
func DetectInitState(cfg *config.Config) (InitState, error) {
	state := InitState{
		ConfigPath: config.DefaultConfigPath(),
		DBPath:     cfg.Storage.DBPath,
	}

	var err error
	if state.ConfigMissing, err = pathMissing(state.ConfigPath); err != nil {
		return InitState{}, fmt.Errorf("checking config path: %w", err)
	}
	if state.DBMissing, err = pathMissing(state.DBPath); err != nil {
		return InitState{}, fmt.Errorf("checking db path: %w", err)
	}
	return state, nil
}

func pathMissing(path string) (bool, error) {
	if path == "" {
		return true, nil
	}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	default:
		return false, err
	}
}

// InitializeStorage writes a default config when none exists and opens the
// database, creating its directory on first run.
func InitializeStorage(cfg *config.Config, state InitState) (task.Repository, error) {
	if state.ConfigMissing && state.ConfigPath != "" {
		if err := cfg.SaveTo(state.ConfigPath); err != nil {
			return nil, fmt.Errorf("saving config: %w", err)
		}
	}
	return openRepo(state.DBPath)
}

func openRepo(dbPath string) (task.Repository, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return repo, nil
}
