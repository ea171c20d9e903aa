package ui

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/workload/internal/bucket"
	"github.com/javiermolinar/workload/internal/dateutil"
	"github.com/javiermolinar/workload/internal/task"
)

func (a *App) itemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage work items",
	}
	cmd.AddCommand(a.itemAddCmd(), a.itemListCmd())
	return cmd
}

func (a *App) itemAddCmd() *cobra.Command {
	var (
		id         string
		assignee   string
		project    string
		start      string
		end        string
		hours      float64
		logged     float64
		billable   bool
		status     string
		allocation string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add or update a work item",
		Long: `Add a work item assigned to one person over an inclusive date span.

Planned hours cover the whole span and are spread over its working days.
Billable defaults to the project's setting.`,
		Example: `  workload item add "Build API" --assignee=u1 --project=p1 --start=2025-01-06 --end=2025-01-17 --hours=60
  workload item add "Hotfix" --assignee=u2 --start=today --hours=4 --status=in_progress`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()

			now := time.Now()
			startDate, err := dateutil.ParseRelativeDate(start, now)
			if err != nil {
				return fmt.Errorf("start date: %w", err)
			}
			endDate := startDate
			if end != "" {
				if endDate, err = dateutil.ParseRelativeDate(end, now); err != nil {
					return fmt.Errorf("end date: %w", err)
				}
			}

			st, err := task.ParseStatus(status)
			if err != nil {
				return err
			}
			at, err := task.ParseAllocationType(allocation)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("billable") && project != "" {
				billable, err = a.projectBillable(cmd, project)
				if err != nil {
					return err
				}
			}

			if id == "" {
				id = uuid.NewString()
			}
			item := &task.WorkItem{
				ID:             id,
				Name:           args[0],
				AssigneeID:     assignee,
				ProjectID:      project,
				StartDate:      startDate,
				EndDate:        endDate,
				PlannedHours:   hours,
				LoggedHours:    logged,
				IsBillable:     billable,
				Status:         st,
				AllocationType: at,
			}
			if err := a.repo.CreateWorkItem(ctx, item); err != nil {
				return fmt.Errorf("creating work item: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved item %s: %s → %s, %s over %s..%s (%d working days)\n",
				item.ID,
				item.Name,
				item.AssigneeID,
				FormatHours(item.PlannedHours),
				dateutil.FormatDate(item.StartDate),
				dateutil.FormatDate(item.EndDate),
				item.SpanWorkingDays(),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Item ID (default: random UUID)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assigned person ID (required)")
	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD or today/tomorrow/next-week...)")
	cmd.Flags().StringVar(&end, "end", "", "End date (defaults to start)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Planned hours for the whole span (required)")
	cmd.Flags().Float64Var(&logged, "logged", 0, "Hours already logged")
	cmd.Flags().BoolVar(&billable, "billable", false, "Billable work (default from project)")
	cmd.Flags().StringVar(&status, "status", "todo", "Status: todo, in_progress, completed, blocked")
	cmd.Flags().StringVar(&allocation, "type", "hard", "Allocation type: hard or soft")

	_ = cmd.MarkFlagRequired("assignee")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

// projectBillable looks up the billable flag of a stored project.
func (a *App) projectBillable(cmd *cobra.Command, projectID string) (bool, error) {
	projects, err := a.repo.ListProjects(cmd.Context())
	if err != nil {
		return false, fmt.Errorf("listing projects: %w", err)
	}
	for _, p := range projects {
		if p.ID == projectID {
			return p.IsBillable, nil
		}
	}
	loggerFromContext(cmd.Context()).Warn("unknown project, item is not billable", "project", projectID)
	return false, nil
}

func (a *App) itemListCmd() *cobra.Command {
	var (
		person string
		from   string
		to     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work items overlapping a date range",
		Example: `  workload item list
  workload item list --person=u1 --from=this-month --to=2025-03-31`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			start, end, err := parseWindow(from, to, bucket.Week, time.Now())
			if err != nil {
				return err
			}

			items, err := a.repo.ListWorkItems(cmd.Context(), person, start, end)
			if err != nil {
				return fmt.Errorf("listing work items: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No work items found in the specified date range.")
				return nil
			}

			nameWidth := max(20, min(48, termWidth()-70))
			for _, it := range items {
				billable := " "
				if it.IsBillable {
					billable = "$"
				}
				fmt.Fprintf(out, "  %s %s %s  %s..%s  %-8s %s %s  %s\n",
					statusSymbol(it.Status),
					billable,
					pad(truncate(it.ID, 12), 12),
					dateutil.FormatDate(it.StartDate),
					dateutil.FormatDate(it.EndDate),
					it.AssigneeID,
					pad(FormatHours(it.PlannedHours), 6),
					formatMuted(string(it.AllocationType)),
					truncate(it.Name, nameWidth),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&person, "person", "", "Only items assigned to this person")
	cmd.Flags().StringVar(&from, "from", "", "Range start (default: four weeks from this Monday)")
	cmd.Flags().StringVar(&to, "to", "", "Range end")
	return cmd
}
