package view

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/workload/internal/allocation"
)

// Hours formats hours compactly: 8h, 7.5h, 0h.
func Hours(h float64) string {
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", h), "0"), ".")
	if s == "" || s == "-0" {
		s = "0"
	}
	return s + "h"
}

// CellText is the text of one heatmap cell: utilization and planned hours,
// with a leave marker.
func CellText(a allocation.Allocation, status allocation.Status) string {
	marker := ""
	if a.LeaveHours > 0 {
		marker = "*"
	}
	if status == allocation.StatusNone {
		return "·" + marker
	}
	return fmt.Sprintf("%.0f%% %s%s", a.UtilizationPercent, Hours(a.PlannedHours), marker)
}

// DetailLines describes one cell: totals, the per-project breakdown and the
// contributing work items.
func DetailLines(a allocation.Allocation, status allocation.Status, width int) []string {
	lines := []string{
		fmt.Sprintf("Planned %s of %s (%.0f%%, %s)",
			Hours(a.PlannedHours), Hours(a.CapacityHours), a.UtilizationPercent, status),
		fmt.Sprintf("Free %s · Leave %s · %d working days",
			Hours(a.AvailableHours()), Hours(a.LeaveHours), a.Bucket.WorkingDayCount()),
	}
	if a.IsEmpty() {
		return append(lines, "", "Nothing planned.")
	}

	lines = append(lines, "", "By project:")
	for _, ph := range allocation.ProjectBreakdown(a) {
		project := ph.ProjectID
		if project == "" {
			project = "(no project)"
		}
		noun := "items"
		if ph.Items == 1 {
			noun = "item"
		}
		lines = append(lines, fmt.Sprintf("  %-16s %6s  %d %s", Fit(project, 16), Hours(ph.Hours), ph.Items, noun))
	}

	lines = append(lines, "", "Items:")
	for _, c := range a.Contributions {
		billable := " "
		if c.IsBillable {
			billable = "$"
		}
		lines = append(lines, fmt.Sprintf("  %6s %s %s", Hours(c.Hours), billable, Fit(c.Name, width-11)))
	}
	return lines
}

// CopyText renders a cell's contributions as tab-separated lines for the
// clipboard.
func CopyText(person string, a allocation.Allocation) string {
	var b strings.Builder
	for _, c := range a.Contributions {
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\t%.2f\n", person, a.Bucket.Label(), c.ItemID, c.Name, c.Hours)
	}
	return b.String()
}
