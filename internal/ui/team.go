package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/workload/internal/bucket"
	"github.com/javiermolinar/workload/internal/llm"
	"github.com/javiermolinar/workload/internal/summary"
)

func (a *App) teamCmd() *cobra.Command {
	var (
		resolution string
		from       string
		to         string
		insight    bool
		suggest    bool
		model      string
		maxMoves   int
	)

	cmd := &cobra.Command{
		Use:   "team",
		Short: "Summarize team utilization",
		Long: `Show team totals, who is over or under capacity, and the billable
share of planned work.

With --insight an LLM writes a short analysis. With --suggest it proposes
work item reassignments; suggestions are previewed, never stored.`,
		Example: `  workload team
  workload team --resolution=month --from=this-month --insight
  workload team --suggest --max-moves=3`,
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
			if model == "" {
				model = a.config.LLM.Model
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			p := newProgress(logger)
			s, err := summary.Build(ctx, a.repo, summary.BuildOptions{
				Options:        a.summaryOptions(res, start, end),
				IncludeInsight: insight,
				Provider:       a.config.LLM.Provider,
				Model:          model,
				BaseURL:        a.config.LLM.BaseURL,
			})
			if err != nil {
				return fmt.Errorf("building team summary: %w", err)
			}
			p.done("built team summary")

			out := cmd.OutOrStdout()
			if len(s.Rows) == 0 {
				fmt.Fprintln(out, "No people found.")
				return nil
			}

			printWindowHeader(out, "TEAM", s)
			printWeeklyTable(out, s)

			if s.Insight != "" {
				fmt.Fprintf(out, "\n  %s\n", formatHeader("INSIGHT"))
				fmt.Fprintln(out, strings.Repeat("─", 74))
				PrintInsightWrapped(out, s.Insight, 72)
			}

			if suggest {
				client, err := llm.NewClient(a.config.LLM.Provider, model, a.config.LLM.BaseURL)
				if err != nil {
					return fmt.Errorf("creating LLM client: %w", err)
				}
				p := newProgress(logger)
				moves, warnings, after, err := s.Rebalance(ctx, client, maxMoves, a.config.AllocationOptions()...)
				if err != nil {
					return err
				}
				p.done(fmt.Sprintf("received %d moves", len(moves)))
				printRebalance(out, moves, warnings, after)
			}

			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resolution, "resolution", "r", "week", "Bucket size: day, week or month")
	cmd.Flags().StringVar(&from, "from", "", "Window start (default depends on resolution)")
	cmd.Flags().StringVar(&to, "to", "", "Window end")
	cmd.Flags().BoolVar(&insight, "insight", false, "Ask the LLM for an analysis")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "Ask the LLM for reassignments")
	cmd.Flags().StringVar(&model, "model", "", "LLM model to use (default from config)")
	cmd.Flags().IntVar(&maxMoves, "max-moves", llm.DefaultMaxMoves, "Maximum reassignments to request")
	return cmd
}

func printRebalance(w io.Writer, moves []llm.Reassignment, warnings []string, after *summary.TeamSummary) {
	fmt.Fprintf(w, "\n  %s\n", formatHeader("SUGGESTED MOVES"))
	fmt.Fprintln(w, strings.Repeat("─", 74))

	if len(moves) == 0 {
		fmt.Fprintln(w, formatMuted("  No reassignments suggested."))
	}
	for _, m := range moves {
		fmt.Fprintf(w, "  ➜  %s (%s): %s → %s\n", truncate(m.Item.Name, 32), FormatHours(m.Item.PlannedHours), m.From, m.To)
		if m.Reason != "" {
			fmt.Fprintf(w, "     %s\n", formatMuted(truncate(m.Reason, 68)))
		}
	}
	for _, warn := range warnings {
		fmt.Fprintf(w, "  %s\n", formatInsight("! "+warn))
	}

	if len(moves) > 0 {
		fmt.Fprintf(w, "\n  %s\n", formatHeader("AFTER"))
		printWeeklyTable(w, after)
	}
}
