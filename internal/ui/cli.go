package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/workload/internal/config"
	"github.com/javiermolinar/workload/internal/db"
	"github.com/javiermolinar/workload/internal/task"
	"github.com/javiermolinar/workload/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo    task.Repository
	config  *config.Config
	root    *cobra.Command
	verbose bool
	debug   bool // TUI debug log
	noColor bool
}

// NewApp creates a new CLI application. A nil repo is opened lazily from
// the configured database path.
func NewApp(repo task.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "workload",
		Short: "Team capacity allocation and scheduling",
		Long: `Workload spreads planned work over days, weeks and months, compares it
with each person's capacity net of leave, and flags who is available,
optimally loaded or overallocated.

Run without a subcommand to open the interactive heatmap.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := log.InfoLevel
			if a.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			// With no repo the TUI offers to create config and database.
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Write a TUI debug log to "+tui.DebugLogPath)
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.personCmd())
	a.root.AddCommand(a.projectCmd())
	a.root.AddCommand(a.itemCmd())
	a.root.AddCommand(a.leaveCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.allocCmd())
	a.root.AddCommand(a.teamCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.eventCmd())
	a.root.AddCommand(a.pixelCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "workload %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the configured database on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}

	path := a.config.Storage.DBPath
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}

	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// Close releases the repository, if one was opened.
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
