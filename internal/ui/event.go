package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/workload/internal/dateutil"
	"github.com/javiermolinar/workload/internal/scheduler"
	"github.com/javiermolinar/workload/internal/task"
)

func (a *App) eventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Place and adjust events on the calendar grid",
		Long: `Events are concrete time blocks on the calendar. Gestures are given in
pixels of the configured grid and snap to the configured interval.`,
	}
	cmd.AddCommand(
		a.eventPlaceCmd(),
		a.eventMoveCmd(),
		a.eventResizeCmd(),
		a.eventDragCmd(),
		a.eventDeleteCmd(),
		a.eventListCmd(),
		a.eventLayoutCmd(),
	)
	return cmd
}

// localDay turns a calendar date into local midnight, where events live.
func localDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.Local)
}

// commitIntent stores the result of a gesture.
func commitIntent(ctx context.Context, repo task.Repository, in scheduler.Intent) error {
	switch in.Kind {
	case scheduler.IntentCreate, scheduler.IntentMove, scheduler.IntentResize:
		ev := in.Event
		if err := repo.SaveEvent(ctx, &ev); err != nil {
			return fmt.Errorf("saving event: %w", err)
		}
	case scheduler.IntentDelete:
		if err := repo.DeleteEvent(ctx, in.Event.ID); err != nil {
			return fmt.Errorf("deleting event: %w", err)
		}
	}
	return nil
}

// warnPlacement logs when ev leaves working hours or overlaps other events.
func (a *App) warnPlacement(ctx context.Context, ev task.ScheduledEvent) {
	logger := loggerFromContext(ctx)
	if reason := a.config.Workweek().CheckEvent(ev); reason != "" {
		logger.Warn("event outside working time", "id", ev.ID, "reason", reason)
	}

	day := ev.Day()
	others, err := a.repo.ListEvents(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		logger.Debug("could not check overlaps", "err", err)
		return
	}
	list := make([]task.ScheduledEvent, 0, len(others))
	for _, o := range others {
		list = append(list, *o)
	}
	for _, o := range scheduler.Overlapping(list, ev) {
		logger.Warn("event overlaps", "id", ev.ID, "other", o.Title, "at", o.StartClock()+"-"+o.EndClock())
	}
}

func (a *App) eventPlaceCmd() *cobra.Command {
	var (
		date  string
		at    string
		title string
	)

	cmd := &cobra.Command{
		Use:   "place [item_id]",
		Short: "Drop a work item (or an untitled block) on the grid",
		Long: `Create an event for a work item. The event lasts the configured
default duration, or the item's remaining hours when those are at most
one hour. Without --date and --at the next free working slot is used.`,
		Example: `  workload event place t1 --date=2025-01-06 --at=09:30
  workload event place --title="Standup" --at=10:00
  workload event place t2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()

			var item *task.WorkItem
			if len(args) == 1 {
				var err error
				if item, err = a.repo.GetWorkItem(ctx, args[0]); err != nil {
					return err
				}
			}

			day, hour, minute, err := a.dropTarget(date, at, time.Now())
			if err != nil {
				return err
			}

			ev := a.config.Scheduler().PlaceDroppedItem(item, day, hour, minute)
			if title != "" {
				ev.Title = title
			}
			if err := commitIntent(ctx, a.repo, scheduler.CreateIntent(ev)); err != nil {
				return err
			}
			a.warnPlacement(ctx, ev)

			printEvent(cmd.OutOrStdout(), "Placed", ev)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD or today/tomorrow...)")
	cmd.Flags().StringVar(&at, "at", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&title, "title", "", "Event title (default: item name)")
	return cmd
}

// dropTarget resolves --date/--at, defaulting to the next working slot.
func (a *App) dropTarget(date, at string, now time.Time) (day time.Time, hour, minute int, err error) {
	if date == "" && at == "" {
		slot := a.config.Workweek().NextAvailableStart(now)
		tod := slot.StartTime()
		return localDay(slot.Date), tod.Hour, tod.Minute, nil
	}

	d, err := dateutil.ParseRelativeDate(date, now)
	if err != nil {
		return day, 0, 0, err
	}
	day = localDay(d)

	if at == "" {
		at = a.config.Schedule.DayStart
	}
	hour, minute, err = task.ParseClock(at)
	if err != nil {
		return day, 0, 0, err
	}
	return day, hour, minute, nil
}

func (a *App) eventMoveCmd() *cobra.Command {
	var (
		pixels float64
		days   int
		date   string
		at     string
	)

	cmd := &cobra.Command{
		Use:   "move [event_id]",
		Short: "Move an event, keeping its duration",
		Example: `  workload event move 4f1c --pixels=45
  workload event move 4f1c --days=1
  workload event move 4f1c --date=2025-01-08 --at=14:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()

			ev, err := a.repo.GetEvent(ctx, args[0])
			if err != nil {
				return err
			}

			var moved task.ScheduledEvent
			if date != "" || at != "" {
				d := ev.Day()
				if date != "" {
					parsed, err := dateutil.ParseRelativeDate(date, time.Now())
					if err != nil {
						return err
					}
					d = localDay(parsed)
				}
				clock := ev.StartClock()
				if at != "" {
					clock = at
				}
				hour, minute, err := task.ParseClock(clock)
				if err != nil {
					return err
				}
				moved = scheduler.MoveEventTo(*ev, d, scheduler.TimeOfDay{Hour: hour, Minute: minute})
			} else {
				moved = scheduler.ShiftDays(scheduler.MoveEvent(*ev, pixels, a.config.Geometry()), days)
			}

			out := cmd.OutOrStdout()
			if moved.Start.Equal(ev.Start) {
				fmt.Fprintln(out, "Event unchanged.")
				return nil
			}

			in := scheduler.Intent{Kind: scheduler.IntentMove, Event: moved, Previous: *ev}
			if err := commitIntent(ctx, a.repo, in); err != nil {
				return err
			}
			a.warnPlacement(ctx, moved)

			printEvent(out, "Moved", moved)
			return nil
		},
	}

	cmd.Flags().Float64Var(&pixels, "pixels", 0, "Vertical pixel delta (positive is later)")
	cmd.Flags().IntVar(&days, "days", 0, "Whole days to shift")
	cmd.Flags().StringVar(&date, "date", "", "Target day")
	cmd.Flags().StringVar(&at, "at", "", "Target start time (HH:MM)")
	cmd.MarkFlagsMutuallyExclusive("pixels", "date")
	cmd.MarkFlagsMutuallyExclusive("pixels", "at")
	return cmd
}

func (a *App) eventResizeCmd() *cobra.Command {
	var (
		edge   string
		pixels float64
	)

	cmd := &cobra.Command{
		Use:   "resize [event_id]",
		Short: "Drag the top or bottom edge of an event",
		Example: `  workload event resize 4f1c --edge=bottom --pixels=30
  workload event resize 4f1c --edge=top --pixels=-15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := scheduler.ParseEdge(edge)
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()

			ev, err := a.repo.GetEvent(ctx, args[0])
			if err != nil {
				return err
			}

			resized, ok := scheduler.ResizeEvent(*ev, e, pixels, a.config.Geometry())
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, "Event unchanged: the resize would leave no duration or does not move the edge.")
				return nil
			}

			in := scheduler.Intent{Kind: scheduler.IntentResize, Event: resized, Previous: *ev}
			if err := commitIntent(ctx, a.repo, in); err != nil {
				return err
			}
			a.warnPlacement(ctx, resized)

			printEvent(out, "Resized", resized)
			return nil
		},
	}

	cmd.Flags().StringVar(&edge, "edge", "bottom", "Edge to drag: top or bottom")
	cmd.Flags().Float64Var(&pixels, "pixels", 0, "Vertical pixel delta")
	_ = cmd.MarkFlagRequired("pixels")
	return cmd
}

func (a *App) eventDragCmd() *cobra.Command {
	var (
		kind string
		dx   float64
		dy   float64
	)

	cmd := &cobra.Command{
		Use:   "drag [event_id]",
		Short: "Replay a pointer drag on an event",
		Long: `Simulate pointer down, move and up on an event. Travel below the drag
threshold is a click and only shows the event; larger travel moves or
resizes it.`,
		Example: `  workload event drag 4f1c --dy=62
  workload event drag 4f1c --kind=bottom --dy=-30
  workload event drag 4f1c --dx=2 --dy=1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dk, err := parseDragKind(kind)
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()

			ev, err := a.repo.GetEvent(ctx, args[0])
			if err != nil {
				return err
			}

			in, ok, err := replayDrag(*ev, dk, dx, dy, a.config.Geometry(), a.config.Grid.DragThresholdPx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case !ok:
				fmt.Fprintln(out, "Event unchanged.")
				return nil
			case in.Kind == scheduler.IntentOpen:
				printEvent(out, "Opened", in.Event)
				return nil
			}

			if err := commitIntent(ctx, a.repo, in); err != nil {
				return err
			}
			a.warnPlacement(ctx, in.Event)

			printEvent(out, capitalize(string(in.Kind))+"d", in.Event)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "move", "Drag kind: move, top or bottom")
	cmd.Flags().Float64Var(&dx, "dx", 0, "Horizontal pointer travel in pixels")
	cmd.Flags().Float64Var(&dy, "dy", 0, "Vertical pointer travel in pixels")
	return cmd
}

func parseDragKind(s string) (scheduler.DragKind, error) {
	switch strings.ToLower(s) {
	case "", "move":
		return scheduler.DragMove, nil
	case "top":
		return scheduler.DragResizeTop, nil
	case "bottom":
		return scheduler.DragResizeBottom, nil
	default:
		return 0, fmt.Errorf("drag kind must be 'move', 'top' or 'bottom', got %q", s)
	}
}

// replayDrag runs one pointer gesture from (0, 0) to (dx, dy).
func replayDrag(ev task.ScheduledEvent, kind scheduler.DragKind, dx, dy float64, g scheduler.Geometry, threshold float64) (scheduler.Intent, bool, error) {
	d := scheduler.NewDragSession(g, threshold)
	if err := d.PointerDown(ev, kind, 0, 0); err != nil {
		return scheduler.Intent{}, false, err
	}
	d.PointerMove(dx, dy)
	in, ok := d.PointerUp(dx, dy)
	return in, ok, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (a *App) eventDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [event_id]",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()

			ev, err := a.repo.GetEvent(ctx, args[0])
			if err != nil {
				return err
			}
			if err := commitIntent(ctx, a.repo, scheduler.DeleteIntent(*ev)); err != nil {
				return err
			}

			printEvent(cmd.OutOrStdout(), "Deleted", *ev)
			return nil
		},
	}
}

func (a *App) eventListCmd() *cobra.Command {
	var (
		from string
		to   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events in a date range",
		Long: `List events starting within a date range (inclusive).

If no dates are specified, lists this week's events.`,
		Example: `  workload event list
  workload event list --from=today
  workload event list --from=2025-01-06 --to=2025-01-10`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			start, end, err := eventWindow(from, to, time.Now())
			if err != nil {
				return err
			}

			events, err := a.listEvents(cmd.Context(), start, end)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No events found in the specified date range.")
				return nil
			}

			for i, g := range scheduler.GroupByDay(events) {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "  %s\n", formatHeader(g.Day.Format("Mon Jan 2")))
				for _, ev := range g.Events {
					printEventRow(out, ev)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start (default: this Monday)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (default: a week from start)")
	return cmd
}

// eventWindow returns the local half-open range [start, end) covering the
// given inclusive dates.
func eventWindow(from, to string, now time.Time) (start, end time.Time, err error) {
	first, last := dateutil.WeekRange(now)
	if from != "" {
		if first, err = dateutil.ParseRelativeDate(from, now); err != nil {
			return start, end, err
		}
		last = first.AddDate(0, 0, 6)
	}
	if to != "" {
		if last, err = dateutil.ParseRelativeDate(to, now); err != nil {
			return start, end, err
		}
	}
	if last.Before(first) {
		return start, end, dateutil.ErrEndDateBeforeStart
	}
	return localDay(first), localDay(last).AddDate(0, 0, 1), nil
}

func (a *App) listEvents(ctx context.Context, start, end time.Time) ([]task.ScheduledEvent, error) {
	stored, err := a.repo.ListEvents(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	events := make([]task.ScheduledEvent, len(stored))
	for i, ev := range stored {
		events[i] = *ev
	}
	return events, nil
}

func (a *App) eventLayoutCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show how a day's overlapping events share columns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			d, err := dateutil.ParseRelativeDate(date, time.Now())
			if err != nil {
				return err
			}
			day := localDay(d)

			events, err := a.listEvents(cmd.Context(), day, day.AddDate(0, 0, 1))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No events on this day.")
				return nil
			}

			printLayout(out, day, scheduler.LayoutDayEvents(events), a.config.Geometry())
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (default: today)")
	return cmd
}

func printLayout(w io.Writer, day time.Time, positioned []scheduler.PositionedEvent, g scheduler.Geometry) {
	fmt.Fprintf(w, "  %s\n", formatHeader(day.Format("Mon Jan 2")))
	for _, p := range positioned {
		ev := p.Event
		top := scheduler.TimeToPixel(g, scheduler.TimeOfDay{Hour: ev.Start.Hour(), Minute: ev.Start.Minute()})
		height := ev.Duration().Hours() * g.PixelsPerHour
		fmt.Fprintf(w, "  %s-%s  track %d/%d  y=%-6.0f h=%-5.0f %s\n",
			ev.StartClock(),
			ev.EndClock(),
			p.Track+1,
			p.Columns,
			top,
			height,
			truncate(eventTitle(ev), 40),
		)
	}
}

func printEvent(w io.Writer, verb string, ev task.ScheduledEvent) {
	fmt.Fprintf(w, "%s event %s: %s %s %s-%s\n",
		verb,
		ev.ID,
		eventTitle(ev),
		dateutil.FormatDate(ev.Start),
		ev.StartClock(),
		ev.EndClock(),
	)
}

func printEventRow(w io.Writer, ev task.ScheduledEvent) {
	source := ""
	if ev.SourceItemID != "" {
		source = formatMuted(" ← " + ev.SourceItemID)
	}
	fmt.Fprintf(w, "    %s-%s  %s  %s%s\n",
		ev.StartClock(),
		ev.EndClock(),
		pad(formatDuration(ev.Duration()), 6),
		truncate(eventTitle(ev), 40),
		source,
	)
}

func eventTitle(ev task.ScheduledEvent) string {
	if ev.Title == "" {
		return "(untitled)"
	}
	return ev.Title
}

// formatDuration formats a duration as 1h30m, 45m or 2h.
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes == 0 {
		return "0m"
	}
	hours, mins := minutes/60, minutes%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh%dm", hours, mins)
	}
}
