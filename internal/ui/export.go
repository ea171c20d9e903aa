package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/workload/internal/bucket"
	"github.com/javiermolinar/workload/internal/export"
	"github.com/javiermolinar/workload/internal/summary"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		resolution string
		from       string
		to         string
		person     string
		output     string
	)

	cmd := &cobra.Command{
		Use:       "export [csv|json]",
		Short:     "Export the allocation table",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"csv", "json"},
		Example: `  workload export csv -o allocation.csv
  workload export json --resolution=month --from=2025-01-01 --to=2025-12-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(args[0])
			if format != "csv" && format != "json" {
				return fmt.Errorf("unsupported export format %q: use csv or json", args[0])
			}

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

			s, err := summary.Build(cmd.Context(), a.repo, summary.BuildOptions{
				Options:  a.summaryOptions(res, start, end),
				PersonID: person,
			})
			if err != nil {
				return fmt.Errorf("computing allocation: %w", err)
			}

			if output == "" {
				if format == "csv" {
					return export.WriteCSV(cmd.OutOrStdout(), s.Rows, s.Thresholds)
				}
				return export.WriteJSON(cmd.OutOrStdout(), s.Rows, s.Thresholds)
			}

			path, err := resolvePath(output)
			if err != nil {
				return err
			}
			if format == "csv" {
				err = export.ToCSV(s.Rows, s.Thresholds, path)
			} else {
				err = export.ToJSON(s.Rows, s.Thresholds, path)
			}
			if err != nil {
				return err
			}

			loggerFromContext(cmd.Context()).Info("exported allocation", "people", len(s.Rows), "path", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resolution, "resolution", "r", "week", "Bucket size: day, week or month")
	cmd.Flags().StringVar(&from, "from", "", "Window start (default depends on resolution)")
	cmd.Flags().StringVar(&to, "to", "", "Window end")
	cmd.Flags().StringVar(&person, "person", "", "Only this person")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}
