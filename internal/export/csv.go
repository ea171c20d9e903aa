// Package export writes allocation tables to CSV and JSON files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/javiermolinar/workload/internal/allocation"
	"github.com/javiermolinar/workload/internal/dateutil"
)

var csvHeader = []string{
	"Person ID", "Person", "Resolution", "Bucket Start", "Bucket End",
	"Planned Hours", "Capacity Hours", "Leave Hours", "Utilization %", "Status",
}

// ToCSV writes one line per person and bucket to path.
func ToCSV(rows []allocation.Row, th allocation.Thresholds, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	return WriteCSV(f, rows, th)
}

// WriteCSV writes the allocation table to w.
func WriteCSV(w io.Writer, rows []allocation.Row, th allocation.Thresholds) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range rows {
		for _, a := range r.Allocations {
			line := []string{
				r.Person.ID,
				r.Person.DisplayName(),
				string(a.Bucket.Resolution),
				dateutil.FormatDate(a.Bucket.Start),
				dateutil.FormatDate(a.Bucket.End),
				formatHours(a.PlannedHours),
				formatHours(a.CapacityHours),
				formatHours(a.LeaveHours),
				strconv.FormatFloat(a.UtilizationPercent, 'f', 1, 64),
				string(th.CellStatus(a)),
			}
			if err := cw.Write(line); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}
