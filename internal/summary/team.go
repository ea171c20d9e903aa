// Package summary builds team allocation summaries over a repository.
package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/workload/internal/allocation"
	"github.com/javiermolinar/workload/internal/bucket"
	"github.com/javiermolinar/workload/internal/dateutil"
	"github.com/javiermolinar/workload/internal/llm"
	"github.com/javiermolinar/workload/internal/task"
)

// ErrModelRequired is returned when insight is requested without a model.
var ErrModelRequired = errors.New("model is required for insight")

// TeamSummary holds the allocation table of a window and optional insight.
type TeamSummary struct {
	Start           time.Time
	End             time.Time
	Resolution      bucket.Resolution
	Roster          *task.Roster
	Rows            []allocation.Row
	Stats           allocation.TeamStats
	BillablePercent float64
	Thresholds      allocation.Thresholds
	Insight         string
}

// Options configures Summarize. Zero thresholds mean the defaults.
type Options struct {
	Resolution   bucket.Resolution
	Start        time.Time
	End          time.Time
	Thresholds   allocation.Thresholds
	AllocOptions []allocation.Option

	// DefaultWeeklyHours replaces a missing contract when positive.
	DefaultWeeklyHours float64
}

// BuildOptions configures the repository-backed summary builder.
type BuildOptions struct {
	Options
	PersonID       string // empty includes everyone
	IncludeInsight bool
	Provider       string
	Model          string
	BaseURL        string

	// Client overrides the client built from Provider, Model and BaseURL.
	Client llm.Client
}

// DefaultWindow returns the window shown when none is given: the current
// week for days, four weeks for weeks and three months for months.
func DefaultWindow(res bucket.Resolution, now time.Time) (start, end time.Time) {
	switch res {
	case bucket.Day:
		return dateutil.WeekRange(now)
	case bucket.Month:
		first, _ := dateutil.MonthRange(now)
		_, last := dateutil.MonthRange(first.AddDate(0, 2, 0))
		return first, last
	default:
		start = dateutil.StartOfWeek(now)
		return start, start.AddDate(0, 0, 27)
	}
}

// Summarize computes the allocation table for a roster snapshot.
func Summarize(r *task.Roster, opts Options) *TeamSummary {
	res := opts.Resolution
	if res == "" {
		res = bucket.Week
	}
	start, end := opts.Start, opts.End
	if start.IsZero() || end.IsZero() {
		start, end = DefaultWindow(res, time.Now())
	}
	start, end = dateutil.Date(start), dateutil.Date(end)
	th := opts.Thresholds
	if th == (allocation.Thresholds{}) {
		th = allocation.DefaultThresholds()
	}

	if opts.DefaultWeeklyHours > 0 {
		r = withDefaultCapacity(r, opts.DefaultWeeklyHours)
	}
	rows := allocation.ComputeRows(r, res, start, end, opts.AllocOptions...)

	var items []*task.WorkItem
	for _, it := range r.Items {
		if it.Overlaps(start, end) {
			items = append(items, it)
		}
	}

	return &TeamSummary{
		Start:           start,
		End:             end,
		Resolution:      res,
		Roster:          r,
		Rows:            rows,
		Stats:           allocation.Team(rows, th),
		BillablePercent: allocation.BillableUtilization(items),
		Thresholds:      th,
	}
}

// withDefaultCapacity returns a copy of r where people without a contract
// get weekly hours.
func withDefaultCapacity(r *task.Roster, weekly float64) *task.Roster {
	out := *r
	out.People = make([]*task.Person, len(r.People))
	for i, p := range r.People {
		if p.WeeklyCapacityHours <= 0 {
			cp := *p
			cp.WeeklyCapacityHours = weekly
			p = &cp
		}
		out.People[i] = p
	}
	return &out
}

// loadRange widens [start, end] to the bounds of the buckets containing
// them.
func loadRange(res bucket.Resolution, start, end time.Time) (time.Time, time.Time) {
	return bucket.Of(res, start).Start, bucket.Of(res, end).End
}

// LoadRoster reads the records overlapping [start, end] from repo. When
// personID is set only that person is returned, along with their items
// and leaves.
func LoadRoster(ctx context.Context, repo task.Repository, personID string, start, end time.Time) (*task.Roster, error) {
	var people []*task.Person
	if personID != "" {
		p, err := repo.GetPerson(ctx, personID)
		if err != nil {
			return nil, fmt.Errorf("fetching person: %w", err)
		}
		people = []*task.Person{p}
	} else {
		var err error
		people, err = repo.ListPeople(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching people: %w", err)
		}
	}

	projects, err := repo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching projects: %w", err)
	}
	items, err := repo.ListWorkItems(ctx, personID, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching work items: %w", err)
	}
	leaves, err := repo.ListLeaves(ctx, personID, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching leaves: %w", err)
	}

	return &task.Roster{People: people, Projects: projects, Items: items, Leaves: leaves}, nil
}

// Build loads the window from repo, summarizes it and optionally adds an
// LLM insight.
func Build(ctx context.Context, repo task.Repository, opts BuildOptions) (*TeamSummary, error) {
	res := opts.Resolution
	if res == "" {
		res = bucket.Week
	}
	if opts.Start.IsZero() || opts.End.IsZero() {
		opts.Start, opts.End = DefaultWindow(res, time.Now())
	}

	// Edge buckets span whole calendar units, so load everything they cover.
	from, to := loadRange(res, opts.Start, opts.End)
	r, err := LoadRoster(ctx, repo, opts.PersonID, from, to)
	if err != nil {
		return nil, err
	}

	summary := Summarize(r, opts.Options)

	if opts.IncludeInsight && len(summary.Rows) > 0 {
		client, err := opts.client()
		if err != nil {
			return nil, err
		}

		insight, err := llm.NewEvaluator(client).EvaluateTeam(ctx, summary.TeamInput())
		if err != nil {
			return nil, fmt.Errorf("evaluating team: %w", err)
		}
		summary.Insight = insight
	}

	return summary, nil
}

func (o BuildOptions) client() (llm.Client, error) {
	if o.Client != nil {
		return o.Client, nil
	}
	if o.Model == "" {
		return nil, ErrModelRequired
	}
	client, err := llm.NewClient(o.Provider, o.Model, o.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating LLM client: %w", err)
	}
	return client, nil
}

// TeamInput converts the summary into evaluator input.
func (s *TeamSummary) TeamInput() llm.TeamInput {
	return llm.TeamInput{
		Start:           s.Start,
		End:             s.End,
		Rows:            s.Rows,
		Stats:           s.Stats,
		BillablePercent: s.BillablePercent,
		Thresholds:      s.Thresholds,
	}
}

// RebalanceRequest converts the summary into a rebalance request.
func (s *TeamSummary) RebalanceRequest(maxMoves int) llm.RebalanceRequest {
	return llm.RebalanceRequest{
		Start:      s.Start,
		End:        s.End,
		Rows:       s.Rows,
		Items:      s.Roster.Items,
		Thresholds: s.Thresholds,
		MaxMoves:   maxMoves,
	}
}

// Rebalance asks client for reassignments and returns the checked moves,
// the warnings, and the summary recomputed with the moves applied. The
// repository is not touched.
func (s *TeamSummary) Rebalance(ctx context.Context, client llm.Client, maxMoves int, allocOpts ...allocation.Option) ([]llm.Reassignment, []string, *TeamSummary, error) {
	resp, err := llm.NewRebalancer(client).Suggest(ctx, s.RebalanceRequest(maxMoves))
	if err != nil {
		return nil, nil, nil, err
	}

	moves, warnings := resp.Resolve(s.Roster.Items, s.Roster.People)

	after := *s.Roster
	after.Items = llm.ApplyReassignments(s.Roster.Items, moves)
	next := Summarize(&after, Options{
		Resolution:   s.Resolution,
		Start:        s.Start,
		End:          s.End,
		Thresholds:   s.Thresholds,
		AllocOptions: allocOpts,
	})
	return moves, warnings, next, nil
}
