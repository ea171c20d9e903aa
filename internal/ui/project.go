package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/workload/internal/task"
)

func (a *App) projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(a.projectAddCmd(), a.projectListCmd())
	return cmd
}

func (a *App) projectAddCmd() *cobra.Command {
	var billable bool

	cmd := &cobra.Command{
		Use:     "add [id] [name]",
		Short:   "Add or update a project",
		Example: `  workload project add p1 "Acme portal" --billable`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			p := &task.Project{ID: args[0], Name: args[1], IsBillable: billable}
			if err := a.repo.CreateProject(cmd.Context(), p); err != nil {
				return fmt.Errorf("creating project: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved project %s: %s\n", p.ID, p.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&billable, "billable", false, "Work on this project is billable")
	return cmd
}

func (a *App) projectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			projects, err := a.repo.ListProjects(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing projects: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects found.")
				return nil
			}
			for _, p := range projects {
				billable := ""
				if p.IsBillable {
					billable = "$"
				}
				fmt.Fprintf(out, "  %-10s %-30s %s\n", p.ID, truncate(p.Name, 30), billable)
			}
			return nil
		},
	}
}
