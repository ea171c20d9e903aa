package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/workload/internal/task"
)

func (a *App) personCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage people",
	}
	cmd.AddCommand(a.personAddCmd(), a.personListCmd())
	return cmd
}

func (a *App) personAddCmd() *cobra.Command {
	var (
		weekly     float64
		department string
		role       string
	)

	cmd := &cobra.Command{
		Use:   "add [id] [name]",
		Short: "Add or update a person",
		Example: `  workload person add u1 "Ana Garcia" --weekly=32 --department=Engineering
  workload person add u2 Bruno`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			if !cmd.Flags().Changed("weekly") {
				weekly = a.config.Capacity.DefaultWeeklyHours
			}
			p := &task.Person{
				ID:                  args[0],
				Name:                args[1],
				Department:          department,
				Role:                role,
				WeeklyCapacityHours: weekly,
			}
			if err := a.repo.CreatePerson(cmd.Context(), p); err != nil {
				return fmt.Errorf("creating person: %w", err)
			}

			loggerFromContext(cmd.Context()).Debug("saved person", "id", p.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved person %s: %s (%s/week)\n", p.ID, p.Name, FormatHours(p.WeeklyCapacityHours))
			return nil
		},
	}

	cmd.Flags().Float64Var(&weekly, "weekly", 0, "Contracted hours per week (default from config)")
	cmd.Flags().StringVar(&department, "department", "", "Department")
	cmd.Flags().StringVar(&role, "role", "", "Role")
	return cmd
}

func (a *App) personListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List people",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			people, err := a.repo.ListPeople(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing people: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(people) == 0 {
				fmt.Fprintln(out, "No people found.")
				return nil
			}
			for _, p := range people {
				fmt.Fprintf(out, "  %-10s %-24s %6s/week  %s\n",
					p.ID,
					truncate(p.DisplayName(), 24),
					FormatHours(p.WeeklyCapacityHours),
					formatMuted(joinNonEmpty(" · ", p.Department, p.Role)),
				)
			}
			return nil
		},
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	s := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if s != "" {
			s += sep
		}
		s += p
	}
	return s
}
