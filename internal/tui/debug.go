package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/javiermolinar/workload/internal/tui/commands"
)

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "workload-debug.log"

// debugLog is nil unless debug mode is on.
var (
	debugLog  *log.Logger
	debugFile *os.File
)

// InitDebugLogger opens the debug log when enabled. Entries are JSON lines
// so they can be filtered with jq.
func InitDebugLogger(enabled bool) error {
	debugLog = nil
	if !enabled {
		return nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}
	debugFile = f
	debugLog = log.NewWithOptions(f, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Formatter:       log.JSONFormatter,
	})
	debugLog.Debug("debug start", "log_file", DebugLogPath)
	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog == nil {
		return
	}
	debugLog.Debug("debug end")
	if debugFile != nil {
		_ = debugFile.Close()
	}
	debugLog, debugFile = nil, nil
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if debugLog == nil {
		return
	}
	debugLog.Debug("key", "key", msg.String())
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	if debugLog == nil {
		return
	}
	debugLog.Debug("mode", "from", from.String(), "to", to.String(), "reason", reason)
}

// LogCursorMove logs cursor movement.
func LogCursorMove(p Position, reason string) {
	if debugLog == nil {
		return
	}
	debugLog.Debug("cursor", "row", p.Row, "col", p.Col, "reason", reason)
}

// LogWindow logs the window being loaded.
func LogWindow(w commands.Window, reason string) {
	if debugLog == nil {
		return
	}
	debugLog.Debug("window",
		"resolution", w.Resolution,
		"start", w.Start.Format("2006-01-02"),
		"end", w.End.Format("2006-01-02"),
		"person", w.PersonID,
		"reason", reason,
	)
}

// LogError logs an error.
func LogError(context string, err error) {
	if debugLog == nil {
		return
	}
	debugLog.Error(context, "err", err)
}
