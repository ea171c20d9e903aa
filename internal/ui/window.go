package ui

import (
	"time"

	"github.com/javiermolinar/workload/internal/bucket"
	"github.com/javiermolinar/workload/internal/dateutil"
	"github.com/javiermolinar/workload/internal/summary"
)

// parseWindow resolves --from/--to flags. Both empty gives the default
// window for res; only --from gives the default window containing it; only
// --to starts the window today.
func parseWindow(from, to string, res bucket.Resolution, now time.Time) (start, end time.Time, err error) {
	switch {
	case from == "" && to == "":
		start, end = summary.DefaultWindow(res, now)
		return start, end, nil
	case to == "":
		start, err = dateutil.ParseRelativeDate(from, now)
		if err != nil {
			return start, end, err
		}
		_, end = summary.DefaultWindow(res, start)
		return start, end, nil
	}

	start, err = dateutil.ParseRelativeDate(from, now)
	if err != nil {
		return start, end, err
	}
	end, err = dateutil.ParseRelativeDate(to, now)
	if err != nil {
		return start, end, err
	}
	if end.Before(start) {
		return start, end, dateutil.ErrEndDateBeforeStart
	}
	return start, end, nil
}
