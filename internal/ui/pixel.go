package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/workload/internal/scheduler"
)

func (a *App) pixelCmd() *cobra.Command {
	var delta bool

	cmd := &cobra.Command{
		Use:   "pixel [offset]",
		Short: "Convert a grid pixel offset to a snapped time",
		Long: `Show the time of day a vertical pixel offset maps to on the configured
grid, and where that time is drawn. With --delta the offset is treated as
a drag distance and converted to snapped minutes.`,
		Example: `  workload pixel 570
  workload pixel --delta -- -37`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			px, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid pixel offset %q: %w", args[0], err)
			}

			g := a.config.Geometry()
			out := cmd.OutOrStdout()
			if delta {
				fmt.Fprintf(out, "%gpx → %+d min (snap %d)\n", px, scheduler.SnapDelta(g, px), g.SnapMinutes)
				return nil
			}

			tod := scheduler.PixelToTime(g, px)
			fmt.Fprintf(out, "%gpx → %s (drawn at %gpx)\n", px, tod, scheduler.TimeToPixel(g, tod))
			return nil
		},
	}

	cmd.Flags().BoolVar(&delta, "delta", false, "Treat the offset as a drag delta")
	return cmd
}
