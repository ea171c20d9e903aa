package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/workload/internal/allocation"
)

const evaluatorSystemPrompt = `You are a minimalist resource planning analyst. Output ONLY the exact format shown - no markdown, no extra text. Be extremely concise.`

const teamPromptTemplate = `Analyze this team's capacity allocation and output EXACTLY this format (no markdown, no code blocks):

HEADLINE: [ 3-6 word summary ]

🔥 OVERLOAD: Who is over capacity, by how many hours, and in which period.
🧊 SLACK: Who has the most unplanned capacity and when.
💸 BILLABLE: One sentence about the billable share of planned work.

NEXT STEPS:
➜  First concrete reassignment or rescheduling.
➜  Second concrete change.

Data Format:
- Person line: name  planned/capacity hours  utilization  [under|optimal|over]
- Period line: label  planned/capacity  utilization  [available|optimal|overallocated|none]
- Cells at or above %.0f%% are overallocated, below %.0f%% available

Team Data:
%s

Rules:
- Use the exact emoji prefixes shown (🔥, 🧊, 💸, ➜)
- Keep each line under 70 characters
- Be specific with names, periods and hours from the data
- If no issue exists for a category, omit that line
- Output plain text only, no markdown formatting`

// ErrNoPeople is returned when there is nothing to evaluate.
var ErrNoPeople = errors.New("no people to evaluate")

// TeamInput is the allocation snapshot sent for evaluation.
type TeamInput struct {
	Start           time.Time
	End             time.Time
	Rows            []allocation.Row
	Stats           allocation.TeamStats
	BillablePercent float64
	Thresholds      allocation.Thresholds
}

// Evaluator asks an LLM for a short capacity insight on a team.
type Evaluator struct {
	client Client
}

// NewEvaluator creates a new Evaluator with the given LLM client.
func NewEvaluator(client Client) *Evaluator {
	return &Evaluator{client: client}
}

// EvaluateTeam sends the team's allocation table to the LLM.
func (e *Evaluator) EvaluateTeam(ctx context.Context, in TeamInput) (string, error) {
	if len(in.Rows) == 0 {
		return "", ErrNoPeople
	}

	prompt := fmt.Sprintf(teamPromptTemplate,
		in.Thresholds.OverallocatedAt,
		in.Thresholds.AvailableBelow,
		FormatTeamData(in),
	)

	return e.client.Chat(ctx, []Message{
		{Role: "system", Content: evaluatorSystemPrompt},
		{Role: "user", Content: prompt},
	})
}

// FormatTeamData renders the allocation table in the compact text form the
// prompt describes.
func FormatTeamData(in TeamInput) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Window: %s - %s\n", in.Start.Format("Mon Jan 2"), in.End.Format("Mon Jan 2, 2006"))
	fmt.Fprintf(&sb, "Team: %d people, %s planned of %s capacity (%.0f%%), billable %.0f%%\n",
		in.Stats.People,
		formatHours(in.Stats.TotalPlanned),
		formatHours(in.Stats.TotalCapacity),
		in.Stats.AverageUtilization,
		in.BillablePercent,
	)
	fmt.Fprintf(&sb, "Status: %d over, %d optimal, %d under\n", in.Stats.Over, in.Stats.Optimal, in.Stats.Under)

	for _, r := range in.Rows {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%s  %s/%s  %.0f%%  [%s]\n",
			r.Person.DisplayName(),
			formatHours(r.Totals.PlannedHours),
			formatHours(r.Totals.CapacityHours),
			r.Totals.UtilizationPercent,
			in.Thresholds.ClassifyWeekly(r.Totals.UtilizationPercent),
		)
		for _, a := range r.Allocations {
			if a.IsEmpty() && a.LeaveHours == 0 {
				continue
			}
			line := fmt.Sprintf("  %s  %s/%s  %.0f%%  [%s]",
				a.Bucket.Label(),
				formatHours(a.PlannedHours),
				formatHours(a.CapacityHours),
				a.UtilizationPercent,
				in.Thresholds.CellStatus(a),
			)
			if a.LeaveHours > 0 {
				line += fmt.Sprintf("  leave %s", formatHours(a.LeaveHours))
			}
			sb.WriteString(line + "\n")
		}
	}

	return sb.String()
}

// formatHours formats hours compactly: 8h, 7.5h, 0h.
func formatHours(h float64) string {
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", h), "0"), ".")
	if s == "" || s == "-0" {
		s = "0"
	}
	return s + "h"
}
