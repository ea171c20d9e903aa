package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/javiermolinar/workload/internal/config"
	"github.com/javiermolinar/workload/internal/db"
	"github.com/javiermolinar/workload/internal/task"
)

// InitState tracks whether first-run setup is required.
type InitState struct {
	NeedsInit     bool
	ConfigMissing bool
	DBMissing     bool
	ConfigPath    string
	DBPath        string
}

// DetectInitState checks for a missing config file or database.
func DetectInitState(cfg *config.Config, configPath string) (InitState, error) {
	state := InitState{
		ConfigPath: configPath,
		DBPath:     cfg.Storage.DBPath,
	}

	var err error
	if state.ConfigMissing, err = pathMissing(state.ConfigPath); err != nil {
		return InitState{}, fmt.Errorf("checking config path: %w", err)
	}
	if state.DBMissing, err = pathMissing(state.DBPath); err != nil {
		return InitState{}, fmt.Errorf("checking db path: %w", err)
	}
	state.NeedsInit = state.ConfigMissing || state.DBMissing
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
	case os.IsNotExist(err):
		return true, nil
	default:
		return false, err
	}
}

func openRepo(dbPath string) (task.Repository, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path is empty")
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

// initializeStorage writes the default config and opens the database.
func (m Model) initializeStorage() (Model, error) {
	if m.initState.ConfigMissing {
		if err := m.config.SaveTo(m.initState.ConfigPath); err != nil {
			return m, fmt.Errorf("saving config: %w", err)
		}
	}
	if m.repo == nil {
		repo, err := openRepo(m.initState.DBPath)
		if err != nil {
			return m, err
		}
		m.repo = repo
	}
	m.initState = InitState{}
	return m, nil
}
