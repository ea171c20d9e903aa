package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/workload/internal/allocation"
	"github.com/javiermolinar/workload/internal/task"
)

// FormatHours formats hours compactly: 8h, 7.5h, 0h.
func FormatHours(h float64) string {
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", h), "0"), ".")
	if s == "" || s == "-0" {
		s = "0"
	}
	return s + "h"
}

// FormatPercent formats a utilization percentage without decimals.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.0f%%", pct)
}

// UtilBar renders utilization as a bar of width cells. Utilization above
// 100% fills the bar and appends a "+" marker.
func UtilBar(pct float64, width int, status allocation.Status) string {
	if width <= 0 {
		return ""
	}
	filled := int(pct * float64(width) / 100)
	filled = min(max(filled, 0), width)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	marker := " "
	if pct > 100 {
		marker = "+"
	}
	return "[" + formatStatus(status, bar) + "]" + marker
}

// truncate shortens s to width terminal cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// pad right-pads s to width terminal cells.
func pad(s string, width int) string {
	if n := ansi.StringWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// statusSymbol returns the indicator for a work item status.
func statusSymbol(s task.Status) string {
	switch s {
	case task.StatusTodo:
		return "○"
	case task.StatusInProgress:
		return "◐"
	case task.StatusCompleted:
		return "●"
	case task.StatusBlocked:
		return "✗"
	default:
		return "?"
	}
}

// PrintInsightWrapped formats and prints insight text preserving structure.
func PrintInsightWrapped(w io.Writer, text string, width int) {
	text = stripMarkdownCodeBlocks(text)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			fmt.Fprintln(w)
			continue
		}

		prefix, content, contentWidth, header := parseInsightLine(trimmed, width)
		if header {
			fmt.Fprintln(w)
			fmt.Fprintln(w, formatHeader("  "+content))
			continue
		}

		wrapAndPrint(w, content, prefix, contentWidth)
	}
}

// parseInsightLine returns the prefix, content and wrap width of a line,
// and whether it is a header.
func parseInsightLine(trimmed string, width int) (prefix, content string, contentWidth int, isHeader bool) {
	prefix = "  "
	content = trimmed
	contentWidth = width - 2

	switch {
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		prefix = "    • "
		content = strings.TrimPrefix(strings.TrimPrefix(trimmed, "- "), "* ")
		contentWidth = width - 6

	case strings.HasPrefix(trimmed, "#"):
		content = strings.TrimLeft(trimmed, "# ")
		isHeader = true

	case strings.HasPrefix(trimmed, "HEADLINE:"):
		content = strings.TrimSpace(strings.TrimPrefix(trimmed, "HEADLINE:"))
		isHeader = true

	case strings.HasPrefix(trimmed, ">"):
		content = strings.TrimPrefix(trimmed, "> ")
		prefix = "  │ "
		contentWidth = width - 4
	}

	return prefix, content, contentWidth, isHeader
}

// wrapAndPrint wraps text to width and prints it with the given prefix.
func wrapAndPrint(w io.Writer, text, prefix string, width int) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return
	}

	cont := strings.Repeat(" ", ansi.StringWidth(prefix))
	lead := prefix
	line := ""
	for _, word := range words {
		switch {
		case line == "":
			line = word
		case ansi.StringWidth(line)+1+ansi.StringWidth(word) <= width:
			line += " " + word
		default:
			fmt.Fprintln(w, formatInsight(lead+line))
			lead = cont
			line = word
		}
	}
	fmt.Fprintln(w, formatInsight(lead+line))
}

// stripMarkdownCodeBlocks removes ``` fence lines and their content.
func stripMarkdownCodeBlocks(text string) string {
	var result []string
	inCodeBlock := false
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if !inCodeBlock {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
