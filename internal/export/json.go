package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/javiermolinar/workload/internal/allocation"
	"github.com/javiermolinar/workload/internal/dateutil"
)

type jsonExport struct {
	ExportedAt string       `json:"exported_at"`
	Count      int          `json:"count"`
	People     []jsonPerson `json:"people"`
}

type jsonPerson struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	PlannedHours       float64      `json:"planned_hours"`
	CapacityHours      float64      `json:"capacity_hours"`
	UtilizationPercent float64      `json:"utilization_percent"`
	WeeklyStatus       string       `json:"weekly_status"`
	Buckets            []jsonBucket `json:"buckets"`
}

type jsonBucket struct {
	Resolution         string             `json:"resolution"`
	Label              string             `json:"label"`
	Start              string             `json:"start"`
	End                string             `json:"end"`
	PlannedHours       float64            `json:"planned_hours"`
	CapacityHours      float64            `json:"capacity_hours"`
	LeaveHours         float64            `json:"leave_hours,omitempty"`
	UtilizationPercent float64            `json:"utilization_percent"`
	Status             string             `json:"status"`
	Contributions      []jsonContribution `json:"contributions,omitempty"`
}

type jsonContribution struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name,omitempty"`
	ProjectID string  `json:"project_id,omitempty"`
	Billable  bool    `json:"billable"`
	Hours     float64 `json:"hours"`
}

// ToJSON writes the allocation table to path.
func ToJSON(rows []allocation.Row, th allocation.Thresholds, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, rows, th); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// WriteJSON writes the allocation table to w. Count is the number of people.
func WriteJSON(w io.Writer, rows []allocation.Row, th allocation.Thresholds) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(rows),
		People:     make([]jsonPerson, 0, len(rows)),
	}

	for _, r := range rows {
		p := jsonPerson{
			ID:                 r.Person.ID,
			Name:               r.Person.DisplayName(),
			PlannedHours:       r.Totals.PlannedHours,
			CapacityHours:      r.Totals.CapacityHours,
			UtilizationPercent: r.Totals.UtilizationPercent,
			WeeklyStatus:       string(th.ClassifyWeekly(r.Totals.UtilizationPercent)),
		}
		for _, a := range r.Allocations {
			b := jsonBucket{
				Resolution:         string(a.Bucket.Resolution),
				Label:              a.Bucket.Label(),
				Start:              dateutil.FormatDate(a.Bucket.Start),
				End:                dateutil.FormatDate(a.Bucket.End),
				PlannedHours:       a.PlannedHours,
				CapacityHours:      a.CapacityHours,
				LeaveHours:         a.LeaveHours,
				UtilizationPercent: a.UtilizationPercent,
				Status:             string(th.CellStatus(a)),
			}
			for _, c := range a.Contributions {
				b.Contributions = append(b.Contributions, jsonContribution{
					ItemID:    c.ItemID,
					Name:      c.Name,
					ProjectID: c.ProjectID,
					Billable:  c.IsBillable,
					Hours:     c.Hours,
				})
			}
			p.Buckets = append(p.Buckets, b)
		}
		export.People = append(export.People, p)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	return nil
}
