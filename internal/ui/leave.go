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

func (a *App) leaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Manage leaves",
	}
	cmd.AddCommand(a.leaveAddCmd(), a.leaveListCmd())
	return cmd
}

func (a *App) leaveAddCmd() *cobra.Command {
	var (
		id          string
		leaveType   string
		start       string
		end         string
		status      string
		halfDay     bool
		description string
	)

	cmd := &cobra.Command{
		Use:   "add [person]",
		Short: "Add or update a leave",
		Long: `Record an absence. Only approved leaves reduce capacity; a half-day
leave takes the configured fraction of each working day.`,
		Example: `  workload leave add u1 --type=vacation --start=2025-01-08 --end=2025-01-10 --status=approved
  workload leave add u2 --type=personal --start=tomorrow --half-day --status=approved`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

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

			lt, err := task.ParseLeaveType(leaveType)
			if err != nil {
				return err
			}
			ls, err := task.ParseLeaveStatus(status)
			if err != nil {
				return err
			}

			if id == "" {
				id = uuid.NewString()
			}
			l := &task.Leave{
				ID:          id,
				UserID:      args[0],
				Type:        lt,
				StartDate:   startDate,
				EndDate:     endDate,
				Status:      ls,
				IsHalfDay:   halfDay,
				Description: description,
			}
			if err := a.repo.CreateLeave(cmd.Context(), l); err != nil {
				return fmt.Errorf("creating leave: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s leave for %s: %s..%s (%s)\n",
				l.Type, l.UserID, dateutil.FormatDate(l.StartDate), dateutil.FormatDate(l.EndDate), l.Status)
			if !l.ReducesCapacity() {
				fmt.Fprintln(cmd.OutOrStdout(), formatMuted("  not approved: capacity is unchanged"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Leave ID (default: random UUID)")
	cmd.Flags().StringVar(&leaveType, "type", "vacation", "Type: vacation, sick, personal, holiday, training, wfh")
	cmd.Flags().StringVar(&start, "start", "", "Start date (required)")
	cmd.Flags().StringVar(&end, "end", "", "End date (defaults to start)")
	cmd.Flags().StringVar(&status, "status", "pending", "Status: approved, pending, denied")
	cmd.Flags().BoolVar(&halfDay, "half-day", false, "Each day is a half day")
	cmd.Flags().StringVar(&description, "description", "", "Free-form note")

	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func (a *App) leaveListCmd() *cobra.Command {
	var (
		person string
		from   string
		to     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leaves overlapping a date range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			start, end, err := parseWindow(from, to, bucket.Week, time.Now())
			if err != nil {
				return err
			}

			leaves, err := a.repo.ListLeaves(cmd.Context(), person, start, end)
			if err != nil {
				return fmt.Errorf("listing leaves: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(leaves) == 0 {
				fmt.Fprintln(out, "No leaves found in the specified date range.")
				return nil
			}
			for _, l := range leaves {
				half := ""
				if l.IsHalfDay {
					half = " ½"
				}
				fmt.Fprintf(out, "  %s..%s  %-8s %-9s%s %s %s\n",
					dateutil.FormatDate(l.StartDate),
					dateutil.FormatDate(l.EndDate),
					l.UserID,
					l.Type,
					half,
					leaveStatus(l.Status),
					formatMuted(l.Description),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&person, "person", "", "Only leaves of this person")
	cmd.Flags().StringVar(&from, "from", "", "Range start (default: four weeks from this Monday)")
	cmd.Flags().StringVar(&to, "to", "", "Range end")
	return cmd
}

func leaveStatus(s task.LeaveStatus) string {
	switch s {
	case task.LeaveApproved:
		return colorOptimal.Sprint(s)
	case task.LeaveDenied:
		return formatMuted(string(s))
	default:
		return formatInsight(string(s))
	}
}
