package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/workload/internal/allocation"
	"github.com/javiermolinar/workload/internal/bucket"
	"github.com/javiermolinar/workload/internal/tui/view"
)

// buckets returns the columns of the loaded window.
func (m Model) buckets() []bucket.Bucket {
	if m.summary == nil {
		return nil
	}
	if len(m.summary.Rows) > 0 {
		out := make([]bucket.Bucket, len(m.summary.Rows[0].Allocations))
		for i, a := range m.summary.Rows[0].Allocations {
			out[i] = a.Bucket
		}
		return out
	}
	return bucket.Enumerate(m.summary.Resolution, m.summary.Start, m.summary.End)
}

func (m Model) rows() []allocation.Row {
	if m.summary == nil {
		return nil
	}
	return m.summary.Rows
}

// visibleCols is the number of bucket columns that fit next to the name
// and total columns. Each column takes its width plus one border cell.
func (m Model) visibleCols() int {
	if m.width <= 0 {
		return len(m.buckets())
	}
	n := (m.width - nameColWidth - cellWidth - 3) / (cellWidth + 1)
	return max(n, 1)
}

// clampCursor keeps the cursor inside the grid and the offset such that
// the cursor column is visible.
func (m *Model) clampCursor() {
	nRows, nCols := len(m.rows()), len(m.buckets())
	m.cursor.Row = clamp(m.cursor.Row, 0, nRows-1)
	m.cursor.Col = clamp(m.cursor.Col, 0, nCols-1)

	visible := m.visibleCols()
	if m.cursor.Col < m.offset {
		m.offset = m.cursor.Col
	}
	if m.cursor.Col >= m.offset+visible {
		m.offset = m.cursor.Col - visible + 1
	}
	m.offset = clamp(m.offset, 0, max(nCols-visible, 0))
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// focusColumn moves the cursor to the bucket containing t.
func (m *Model) focusColumn(t time.Time) {
	for i, b := range m.buckets() {
		if b.Contains(t) {
			m.cursor.Col = i
			m.clampCursor()
			return
		}
	}
	m.cursor.Col = 0
	m.clampCursor()
}

// selected returns the row and allocation under the cursor.
func (m Model) selected() (allocation.Row, allocation.Allocation, bool) {
	rows := m.rows()
	if m.cursor.Row < 0 || m.cursor.Row >= len(rows) {
		return allocation.Row{}, allocation.Allocation{}, false
	}
	row := rows[m.cursor.Row]
	if m.cursor.Col < 0 || m.cursor.Col >= len(row.Allocations) {
		return row, allocation.Allocation{}, false
	}
	return row, row.Allocations[m.cursor.Col], true
}

// totalStatus maps a person's weekly classification onto cell colors.
func totalStatus(w allocation.WeeklyStatus) allocation.Status {
	switch w {
	case allocation.WeeklyOver:
		return allocation.StatusOverallocated
	case allocation.WeeklyOptimal:
		return allocation.StatusOptimal
	default:
		return allocation.StatusAvailable
	}
}

// heatmapViewState lays out the visible part of the grid: a name column,
// the bucket columns from the offset and a total column.
func (m Model) heatmapViewState() view.HeatmapViewState {
	buckets := m.buckets()
	end := min(m.offset+m.visibleCols(), len(buckets))
	if m.offset >= end {
		return view.HeatmapViewState{}
	}
	visible := buckets[m.offset:end]

	labels, todayCols := view.BucketLabels(visible, m.now())
	headers := make([]string, 0, len(visible)+2)
	headerStyles := make([]lipgloss.Style, 0, len(visible)+2)
	headers = append(headers, "Person")
	headerStyles = append(headerStyles, m.styles.NameStyle.Bold(true))
	for i, l := range labels {
		headers = append(headers, view.Fit(l, cellWidth))
		if todayCols[i] {
			headerStyles = append(headerStyles, m.styles.HeaderTodayStyle)
		} else {
			headerStyles = append(headerStyles, m.styles.HeaderStyle)
		}
	}
	headers = append(headers, "Total")
	headerStyles = append(headerStyles, m.styles.HeaderStyle)

	th := m.summary.Thresholds
	var content view.TableContent
	for r, row := range m.rows() {
		cells := make([]string, 0, len(headers))
		styles := make([]lipgloss.Style, 0, len(headers))

		nameStyle := m.styles.NameStyle
		if r == m.cursor.Row {
			nameStyle = m.styles.NameCursorStyle
		}
		cells = append(cells, view.Fit(row.Person.DisplayName(), nameColWidth-1))
		styles = append(styles, nameStyle)

		for c := m.offset; c < end; c++ {
			a := row.Allocations[c]
			status := th.CellStatus(a)
			cells = append(cells, view.CellText(a, status))
			styles = append(styles, m.styles.cellStyle(status, r == m.cursor.Row && c == m.cursor.Col))
		}

		total := totalStatus(th.ClassifyWeekly(row.Totals.UtilizationPercent))
		cells = append(cells, fmt.Sprintf("%.0f%% %s", row.Totals.UtilizationPercent, view.Hours(row.Totals.PlannedHours)))
		styles = append(styles, m.styles.statusStyle(total).Width(cellWidth).Align(lipgloss.Center).Bold(true))

		content.Rows = append(content.Rows, cells)
		content.CellStyles = append(content.CellStyles, styles)
	}

	return view.HeatmapViewState{
		Headers:      headers,
		HeaderStyles: headerStyles,
		Content:      content,
		BorderStyle:  m.styles.BorderStyle,
	}
}
