package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/workload/internal/roster"
	"github.com/javiermolinar/workload/internal/task"
)

func (a *App) importCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [roster_file]",
		Short: "Import people, projects, work items and leaves",
		Long: `Import a roster file (.toml or .json) into the database.

Every record is validated first; nothing is stored unless all records are
valid. Records with an existing ID are replaced.

Example:
  workload import ~/team/q1.toml
  workload import roster.json --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())
			p := newProgress(logger)
			r, err := roster.Load(path)
			if err != nil {
				return err
			}
			p.done("parsed roster")

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "Roster is valid: %s\n", rosterCounts(r))
				return nil
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := importRoster(cmd.Context(), a.repo, r); err != nil {
				return err
			}

			fmt.Fprintf(out, "Imported %s from %s\n", rosterCounts(r), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without storing it")
	return cmd
}

func importRoster(ctx context.Context, repo task.Repository, r *task.Roster) error {
	if err := repo.ImportRoster(ctx, r); err != nil {
		return fmt.Errorf("importing roster: %w", err)
	}
	return nil
}

func rosterCounts(r *task.Roster) string {
	return fmt.Sprintf("%d people, %d projects, %d work items, %d leaves",
		len(r.People), len(r.Projects), len(r.Items), len(r.Leaves))
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
