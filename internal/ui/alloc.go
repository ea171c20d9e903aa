package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/workload/internal/allocation"
	"github.com/javiermolinar/workload/internal/bucket"
	"github.com/javiermolinar/workload/internal/summary"
)

const (
	nameColWidth = 16
	cellWidth    = 13
)

func (a *App) allocCmd() *cobra.Command {
	var (
		resolution string
		from       string
		to         string
		person     string
		weekly     bool
		detail     bool
	)

	cmd := &cobra.Command{
		Use:   "alloc",
		Short: "Show planned hours against capacity per person",
		Long: `Show each person's allocation over a date window.

Each cell shows utilization and planned hours for one day, week or month,
colored as available, optimal or overallocated. Cells marked * include
approved leave.`,
		Example: `  workload alloc
  workload alloc --resolution=day --from=this-week
  workload alloc --resolution=month --from=2025-01-01 --to=2025-06-30
  workload alloc --person=u1 --detail
  workload alloc --weekly`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := bucket.ParseResolution(resolution)
			if err != nil {
				return err
			}
			start, end, err := parseWindow(from, to, res, time.Now())
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			p := newProgress(loggerFromContext(cmd.Context()))
			s, err := summary.Build(cmd.Context(), a.repo, summary.BuildOptions{
				Options:  a.summaryOptions(res, start, end),
				PersonID: person,
			})
			if err != nil {
				return fmt.Errorf("computing allocation: %w", err)
			}
			p.done(fmt.Sprintf("computed %d rows", len(s.Rows)))

			out := cmd.OutOrStdout()
			if len(s.Rows) == 0 {
				fmt.Fprintln(out, "No people found. Add some with 'workload person add' or 'workload import'.")
				return nil
			}

			printWindowHeader(out, "ALLOCATION", s)
			switch {
			case weekly:
				printWeeklyTable(out, s)
			default:
				printAllocTable(out, s, termWidth())
			}
			if detail {
				printDetail(out, s)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resolution, "resolution", "r", "week", "Bucket size: day, week or month")
	cmd.Flags().StringVar(&from, "from", "", "Window start (default depends on resolution)")
	cmd.Flags().StringVar(&to, "to", "", "Window end")
	cmd.Flags().StringVar(&person, "person", "", "Only this person")
	cmd.Flags().BoolVar(&weekly, "weekly", false, "Show totals with under/optimal/over status instead of cells")
	cmd.Flags().BoolVar(&detail, "detail", false, "List the work items behind each cell")
	return cmd
}

func (a *App) summaryOptions(res bucket.Resolution, start, end time.Time) summary.Options {
	return summary.Options{
		Resolution:         res,
		Start:              start,
		End:                end,
		Thresholds:         a.config.AllocationThresholds(),
		AllocOptions:       a.config.AllocationOptions(),
		DefaultWeeklyHours: a.config.Capacity.DefaultWeeklyHours,
	}
}

func printWindowHeader(w io.Writer, title string, s *summary.TeamSummary) {
	header := fmt.Sprintf("%s: %s · %s - %s", title, s.Resolution,
		s.Start.Format("Mon Jan 2"), s.End.Format("Mon Jan 2, 2006"))
	fmt.Fprintf(w, "\n  %s\n", formatHeader(header))
}

// printAllocTable prints the people × buckets grid, splitting the buckets
// into several blocks when they do not fit in width.
func printAllocTable(w io.Writer, s *summary.TeamSummary, width int) {
	buckets := len(s.Rows[0].Allocations)
	perBlock := max(1, (width-nameColWidth-4)/cellWidth)

	for from := 0; from < buckets; from += perBlock {
		to := min(from+perBlock, buckets)
		rule := strings.Repeat("─", nameColWidth+2+(to-from)*cellWidth)

		fmt.Fprintln(w, rule)
		header := "  " + pad("", nameColWidth)
		for _, a := range s.Rows[0].Allocations[from:to] {
			header += pad(a.Bucket.Label(), cellWidth)
		}
		fmt.Fprintln(w, formatHeader(header))

		for _, r := range s.Rows {
			line := "  " + pad(truncate(r.Person.DisplayName(), nameColWidth-1), nameColWidth)
			for _, a := range r.Allocations[from:to] {
				line += formatCell(a, s.Thresholds)
			}
			fmt.Fprintln(w, line)
		}
	}

	fmt.Fprintln(w, strings.Repeat("─", nameColWidth+2+min(perBlock, buckets)*cellWidth))
	printTeamLine(w, s)
}

// formatCell renders one allocation as a fixed-width colored cell.
func formatCell(a allocation.Allocation, th allocation.Thresholds) string {
	status := th.CellStatus(a)
	marker := " "
	if a.LeaveHours > 0 {
		marker = "*"
	}
	if status == allocation.StatusNone {
		return pad(formatMuted("  ·")+marker, cellWidth)
	}
	text := fmt.Sprintf("%4.0f%% %s", a.UtilizationPercent, FormatHours(a.PlannedHours))
	return pad(formatStatus(status, text)+marker, cellWidth)
}

func printWeeklyTable(w io.Writer, s *summary.TeamSummary) {
	fmt.Fprintln(w, strings.Repeat("─", 74))
	for _, r := range s.Rows {
		t := r.Totals
		status := s.Thresholds.ClassifyWeekly(t.UtilizationPercent)
		fmt.Fprintf(w, "  %s %s/%s  %s %s %s\n",
			pad(truncate(r.Person.DisplayName(), nameColWidth-1), nameColWidth),
			pad(FormatHours(t.PlannedHours), 7),
			pad(FormatHours(t.CapacityHours), 7),
			UtilBar(t.UtilizationPercent, 20, s.Thresholds.Classify(t.UtilizationPercent)),
			pad(FormatPercent(t.UtilizationPercent), 5),
			formatWeekly(status, string(status)),
		)
	}
	fmt.Fprintln(w, strings.Repeat("─", 74))
	printTeamLine(w, s)
}

func printTeamLine(w io.Writer, s *summary.TeamSummary) {
	st := s.Stats
	fmt.Fprintf(w, "  Team: %s of %s (%s)  |  Billable: %s  |  %s  %s  %s\n",
		FormatHours(st.TotalPlanned),
		FormatHours(st.TotalCapacity),
		FormatPercent(st.AverageUtilization),
		FormatPercent(s.BillablePercent),
		formatWeekly(allocation.WeeklyOver, fmt.Sprintf("%d over", st.Over)),
		formatWeekly(allocation.WeeklyOptimal, fmt.Sprintf("%d optimal", st.Optimal)),
		formatWeekly(allocation.WeeklyUnder, fmt.Sprintf("%d under", st.Under)),
	)
}

// printDetail lists the contributions of every non-empty cell, grouped by
// project.
func printDetail(w io.Writer, s *summary.TeamSummary) {
	for _, r := range s.Rows {
		printed := false
		for _, a := range r.Allocations {
			if a.IsEmpty() {
				continue
			}
			if !printed {
				fmt.Fprintf(w, "\n  %s\n", formatHeader(r.Person.DisplayName()))
				printed = true
			}
			fmt.Fprintf(w, "    %s  %s of %s, %s free",
				pad(a.Bucket.Label(), cellWidth),
				FormatHours(a.PlannedHours),
				FormatHours(a.CapacityHours),
				FormatHours(a.AvailableHours()),
			)
			if a.LeaveHours > 0 {
				fmt.Fprintf(w, ", %s leave", FormatHours(a.LeaveHours))
			}
			fmt.Fprintln(w)
			for _, ph := range allocation.ProjectBreakdown(a) {
				project := ph.ProjectID
				if project == "" {
					project = "(no project)"
				}
				fmt.Fprintf(w, "      %s %s\n", pad(project, 18), formatMuted(fmt.Sprintf("%s in %d items", FormatHours(ph.Hours), ph.Items)))
			}
			for _, c := range a.Contributions {
				fmt.Fprintf(w, "        %s %s\n", pad(FormatHours(c.Hours), 7), truncate(c.Name, 48))
			}
		}
	}
}
