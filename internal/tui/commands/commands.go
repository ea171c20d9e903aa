// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/workload/internal/bucket"
	"github.com/javiermolinar/workload/internal/config"
	"github.com/javiermolinar/workload/internal/llm"
	"github.com/javiermolinar/workload/internal/summary"
	"github.com/javiermolinar/workload/internal/task"
)

// SummaryLoadedMsg is sent when the allocation table of a window is ready.
type SummaryLoadedMsg struct {
	Summary *summary.TeamSummary
}

// InsightMsg carries the LLM analysis of the loaded summary.
type InsightMsg struct {
	Text string
}

// RebalanceMsg carries suggested reassignments and the table they produce.
type RebalanceMsg struct {
	Moves    []llm.Reassignment
	Warnings []string
	After    *summary.TeamSummary
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// Window is the slice of time the heatmap shows.
type Window struct {
	Resolution bucket.Resolution
	Start      time.Time
	End        time.Time
	PersonID   string
}

// SummaryOptions maps the configuration onto summary options for w.
func SummaryOptions(cfg *config.Config, w Window) summary.BuildOptions {
	return summary.BuildOptions{
		Options: summary.Options{
			Resolution:         w.Resolution,
			Start:              w.Start,
			End:                w.End,
			Thresholds:         cfg.AllocationThresholds(),
			AllocOptions:       cfg.AllocationOptions(),
			DefaultWeeklyHours: cfg.Capacity.DefaultWeeklyHours,
		},
		PersonID: w.PersonID,
	}
}

// LoadSummary builds the allocation table for a window.
func LoadSummary(repo task.Repository, cfg *config.Config, w Window) tea.Cmd {
	return func() tea.Msg {
		s, err := summary.Build(context.Background(), repo, SummaryOptions(cfg, w))
		if err != nil {
			return ErrMsg{Err: err}
		}
		return SummaryLoadedMsg{Summary: s}
	}
}

// Insight asks the LLM to analyze s.
func Insight(client llm.Client, s *summary.TeamSummary) tea.Cmd {
	return func() tea.Msg {
		if s == nil {
			return ErrMsg{Err: fmt.Errorf("nothing loaded")}
		}
		text, err := llm.NewEvaluator(client).EvaluateTeam(context.Background(), s.TeamInput())
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("generating insight: %w", err)}
		}
		return InsightMsg{Text: text}
	}
}

// Rebalance asks the LLM for reassignments and recomputes the table.
func Rebalance(client llm.Client, cfg *config.Config, s *summary.TeamSummary) tea.Cmd {
	return func() tea.Msg {
		if s == nil {
			return ErrMsg{Err: fmt.Errorf("nothing loaded")}
		}
		moves, warnings, after, err := s.Rebalance(context.Background(), client, llm.DefaultMaxMoves, cfg.AllocationOptions()...)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return RebalanceMsg{Moves: moves, Warnings: warnings, After: after}
	}
}

// MovesAppliedMsg is sent after suggested reassignments are stored.
type MovesAppliedMsg struct {
	Count int
}

// ApplyMoves stores the reassignments. Items are written one by one; the
// first failure stops the batch.
func ApplyMoves(repo task.Repository, moves []llm.Reassignment) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		for i, mv := range moves {
			it := *mv.Item
			it.AssigneeID = mv.To
			if err := repo.CreateWorkItem(ctx, &it); err != nil {
				return ErrMsg{Err: fmt.Errorf("reassigning %s (%d of %d applied): %w", it.ID, i, len(moves), err)}
			}
		}
		return MovesAppliedMsg{Count: len(moves)}
	}
}
