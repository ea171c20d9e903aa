package llm

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/javiermolinar/workload/internal/allocation"
	"github.com/javiermolinar/workload/internal/dateutil"
	"github.com/javiermolinar/workload/internal/task"
)

const rebalancePrompt = `You are a resource planner balancing work across a team.

Window: %s to %s
Thresholds: a person is over capacity above %.0f%% and under-used below %.0f%%.

Team allocation:
%s
Reassignable work items (id | name | assignee | span | planned hours | status):
%s
Rules:
- Only move items that are not completed.
- Move items away from people above the over threshold.
- Prefer targets below the under threshold.
- Never invent item or person IDs; use only the IDs listed above.
- Suggest at most %d moves.
- "warnings" must be an array of strings (no objects).

Respond ONLY with valid JSON (no markdown, no explanation):
{
  "moves": [
    {"item_id": "string", "to_person": "string", "reason": "string"}
  ],
  "warnings": ["string"]
}`

// DefaultMaxMoves bounds the number of reassignments requested.
const DefaultMaxMoves = 5

// RebalanceRequest is the context sent to the LLM.
type RebalanceRequest struct {
	Start      time.Time
	End        time.Time
	Rows       []allocation.Row
	Items      []*task.WorkItem
	Thresholds allocation.Thresholds
	MaxMoves   int
}

// RebalanceResponse is the parsed LLM answer.
type RebalanceResponse struct {
	Moves    []SuggestedMove `json:"moves"`
	Warnings []string        `json:"warnings"`
}

// SuggestedMove is one reassignment proposed by the LLM.
type SuggestedMove struct {
	ItemID   string `json:"item_id"`
	ToPerson string `json:"to_person"`
	Reason   string `json:"reason"`
}

// Reassignment is a SuggestedMove checked against the roster.
type Reassignment struct {
	Item   *task.WorkItem
	From   string
	To     string
	Reason string
}

// Rebalancer uses an LLM to propose work item reassignments.
type Rebalancer struct {
	client Client
}

// NewRebalancer creates a new Rebalancer with the given LLM client.
func NewRebalancer(client Client) *Rebalancer {
	return &Rebalancer{client: client}
}

// Suggest asks the LLM for reassignments.
func (r *Rebalancer) Suggest(ctx context.Context, req RebalanceRequest) (*RebalanceResponse, error) {
	var resp RebalanceResponse
	if err := r.client.ChatJSON(ctx, r.BuildMessages(req), &resp); err != nil {
		return nil, fmt.Errorf("getting rebalance suggestions from LLM: %w", err)
	}
	return &resp, nil
}

// BuildMessages creates the message list for a rebalance request.
func (r *Rebalancer) BuildMessages(req RebalanceRequest) []Message {
	maxMoves := req.MaxMoves
	if maxMoves <= 0 {
		maxMoves = DefaultMaxMoves
	}

	var team strings.Builder
	for _, row := range req.Rows {
		fmt.Fprintf(&team, "- %s (id %s): %s planned of %s, %.0f%% [%s]\n",
			row.Person.DisplayName(),
			row.Person.ID,
			formatHours(row.Totals.PlannedHours),
			formatHours(row.Totals.CapacityHours),
			row.Totals.UtilizationPercent,
			req.Thresholds.ClassifyWeekly(row.Totals.UtilizationPercent),
		)
	}

	var items strings.Builder
	for _, it := range sortedItems(req.Items) {
		if it.IsDone() {
			continue
		}
		fmt.Fprintf(&items, "- %s | %s | %s | %s..%s | %s | %s\n",
			it.ID,
			it.Name,
			it.AssigneeID,
			dateutil.FormatDate(it.StartDate),
			dateutil.FormatDate(it.EndDate),
			formatHours(it.PlannedHours),
			it.Status,
		)
	}

	content := fmt.Sprintf(rebalancePrompt,
		dateutil.FormatDate(req.Start),
		dateutil.FormatDate(req.End),
		req.Thresholds.WeeklyOverAbove,
		req.Thresholds.WeeklyUnderBelow,
		team.String(),
		items.String(),
		maxMoves,
	)
	return []Message{{Role: "user", Content: content}}
}

// Resolve checks each suggested move against the known items and people.
// Moves naming unknown IDs, completed items or the current assignee are
// dropped and reported as warnings alongside the LLM's own.
func (resp *RebalanceResponse) Resolve(items []*task.WorkItem, people []*task.Person) ([]Reassignment, []string) {
	byID := make(map[string]*task.WorkItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	known := make(map[string]bool, len(people))
	for _, p := range people {
		known[p.ID] = true
	}

	warnings := slices.Clone(resp.Warnings)
	var out []Reassignment
	moved := make(map[string]bool)
	for _, m := range resp.Moves {
		it, ok := byID[m.ItemID]
		switch {
		case !ok:
			warnings = append(warnings, fmt.Sprintf("ignored move of unknown item %q", m.ItemID))
		case !known[m.ToPerson]:
			warnings = append(warnings, fmt.Sprintf("ignored move of %s to unknown person %q", m.ItemID, m.ToPerson))
		case it.IsDone():
			warnings = append(warnings, fmt.Sprintf("ignored move of completed item %s", m.ItemID))
		case it.AssigneeID == m.ToPerson:
			warnings = append(warnings, fmt.Sprintf("ignored move of %s to its current assignee", m.ItemID))
		case moved[m.ItemID]:
			warnings = append(warnings, fmt.Sprintf("ignored duplicate move of %s", m.ItemID))
		default:
			moved[m.ItemID] = true
			out = append(out, Reassignment{Item: it, From: it.AssigneeID, To: m.ToPerson, Reason: m.Reason})
		}
	}
	return out, warnings
}

// ApplyReassignments returns a copy of items with the reassignments applied.
// The input items are not modified.
func ApplyReassignments(items []*task.WorkItem, moves []Reassignment) []*task.WorkItem {
	to := make(map[string]string, len(moves))
	for _, m := range moves {
		to[m.Item.ID] = m.To
	}

	out := make([]*task.WorkItem, len(items))
	for i, it := range items {
		if target, ok := to[it.ID]; ok {
			cp := *it
			cp.AssigneeID = target
			out[i] = &cp
			continue
		}
		out[i] = it
	}
	return out
}

func sortedItems(items []*task.WorkItem) []*task.WorkItem {
	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b *task.WorkItem) int {
		if c := a.StartDate.Compare(b.StartDate); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return sorted
}
