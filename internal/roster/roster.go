// Package roster loads people, projects, work items and leaves from a TOML
// or JSON file.
package roster

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/workload/internal/dateutil"
	"github.com/javiermolinar/workload/internal/task"
)

// ErrUnsupportedFormat is returned for files that are neither TOML nor JSON.
var ErrUnsupportedFormat = errors.New("roster must be a .toml or .json file")

// Format is the encoding of a roster file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

type file struct {
	People   []personRecord  `toml:"people" json:"people"`
	Projects []projectRecord `toml:"projects" json:"projects"`
	Items    []itemRecord    `toml:"items" json:"items"`
	Leaves   []leaveRecord   `toml:"leaves" json:"leaves"`
}

type personRecord struct {
	ID                  string  `toml:"id" json:"id"`
	Name                string  `toml:"name" json:"name"`
	Department          string  `toml:"department" json:"department"`
	Role                string  `toml:"role" json:"role"`
	WeeklyCapacityHours float64 `toml:"weekly_capacity_hours" json:"weekly_capacity_hours"`
}

type projectRecord struct {
	ID       string `toml:"id" json:"id"`
	Name     string `toml:"name" json:"name"`
	Billable bool   `toml:"billable" json:"billable"`
}

type itemRecord struct {
	ID             string  `toml:"id" json:"id"`
	Name           string  `toml:"name" json:"name"`
	AssigneeID     string  `toml:"assignee_id" json:"assignee_id"`
	ProjectID      string  `toml:"project_id" json:"project_id"`
	StartDate      string  `toml:"start_date" json:"start_date"`
	EndDate        string  `toml:"end_date" json:"end_date"`
	PlannedHours   float64 `toml:"planned_hours" json:"planned_hours"`
	LoggedHours    float64 `toml:"logged_hours" json:"logged_hours"`
	Billable       *bool   `toml:"billable" json:"billable"` // nil inherits from the project
	Status         string  `toml:"status" json:"status"`
	AllocationType string  `toml:"allocation_type" json:"allocation_type"`
}

type leaveRecord struct {
	ID          string `toml:"id" json:"id"`
	UserID      string `toml:"user_id" json:"user_id"`
	Type        string `toml:"type" json:"type"`
	StartDate   string `toml:"start_date" json:"start_date"`
	EndDate     string `toml:"end_date" json:"end_date"`
	Status      string `toml:"status" json:"status"`
	HalfDay     bool   `toml:"half_day" json:"half_day"`
	Description string `toml:"description" json:"description"`
}

// Load reads a roster file, choosing the decoder by extension.
func Load(path string) (*task.Roster, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}

	r, err := Parse(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("roster %s: %w", filepath.Base(path), err)
	}
	return r, nil
}

// Parse decodes and validates a roster. Every invalid record is reported;
// the returned error matches task.ErrInvalidRecord.
func Parse(r io.Reader, format Format) (*task.Roster, error) {
	var f file
	switch format {
	case FormatTOML:
		if err := toml.NewDecoder(r).Decode(&f); err != nil {
			return nil, fmt.Errorf("parsing toml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
	default:
		return nil, ErrUnsupportedFormat
	}
	return f.build()
}

func (f *file) build() (*task.Roster, error) {
	var (
		out  task.Roster
		errs []error
	)

	seen := make(map[string]bool)
	unique := func(kind, id string) bool {
		if id == "" {
			return true
		}
		key := kind + "/" + id
		if seen[key] {
			errs = append(errs, &task.InvalidRecordError{Kind: kind, ID: id, Reason: "duplicate id"})
			return false
		}
		seen[key] = true
		return true
	}

	for _, rec := range f.People {
		p := &task.Person{
			ID:                  strings.TrimSpace(rec.ID),
			Name:                strings.TrimSpace(rec.Name),
			Department:          rec.Department,
			Role:                rec.Role,
			WeeklyCapacityHours: rec.WeeklyCapacityHours,
		}
		if err := task.ValidatePerson(p); err != nil {
			errs = append(errs, err)
			continue
		}
		if unique("person", p.ID) {
			out.People = append(out.People, p)
		}
	}

	billable := make(map[string]bool)
	for _, rec := range f.Projects {
		p := &task.Project{ID: strings.TrimSpace(rec.ID), Name: strings.TrimSpace(rec.Name), IsBillable: rec.Billable}
		if err := task.ValidateProject(p); err != nil {
			errs = append(errs, err)
			continue
		}
		if unique("project", p.ID) {
			billable[p.ID] = p.IsBillable
			out.Projects = append(out.Projects, p)
		}
	}

	for _, rec := range f.Items {
		w, err := rec.toWorkItem(billable)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if unique("work item", w.ID) {
			out.Items = append(out.Items, w)
		}
	}

	for _, rec := range f.Leaves {
		l, err := rec.toLeave()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if unique("leave", l.ID) {
			out.Leaves = append(out.Leaves, l)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &out, nil
}

func (rec itemRecord) toWorkItem(projectBillable map[string]bool) (*task.WorkItem, error) {
	id := strings.TrimSpace(rec.ID)
	start, end, err := span("work item", id, rec.StartDate, rec.EndDate)
	if err != nil {
		return nil, err
	}
	status, err := task.ParseStatus(rec.Status)
	if err != nil {
		return nil, &task.InvalidRecordError{Kind: "work item", ID: id, Reason: err.Error()}
	}
	alloc, err := task.ParseAllocationType(rec.AllocationType)
	if err != nil {
		return nil, &task.InvalidRecordError{Kind: "work item", ID: id, Reason: err.Error()}
	}

	w := &task.WorkItem{
		ID:             id,
		Name:           strings.TrimSpace(rec.Name),
		AssigneeID:     strings.TrimSpace(rec.AssigneeID),
		ProjectID:      strings.TrimSpace(rec.ProjectID),
		StartDate:      start,
		EndDate:        end,
		PlannedHours:   rec.PlannedHours,
		LoggedHours:    rec.LoggedHours,
		IsBillable:     projectBillable[strings.TrimSpace(rec.ProjectID)],
		Status:         status,
		AllocationType: alloc,
	}
	if rec.Billable != nil {
		w.IsBillable = *rec.Billable
	}
	if err := task.ValidateWorkItem(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (rec leaveRecord) toLeave() (*task.Leave, error) {
	id := strings.TrimSpace(rec.ID)
	start, end, err := span("leave", id, rec.StartDate, rec.EndDate)
	if err != nil {
		return nil, err
	}
	typ, err := task.ParseLeaveType(rec.Type)
	if err != nil {
		return nil, &task.InvalidRecordError{Kind: "leave", ID: id, Reason: err.Error()}
	}
	status, err := task.ParseLeaveStatus(rec.Status)
	if err != nil {
		return nil, &task.InvalidRecordError{Kind: "leave", ID: id, Reason: err.Error()}
	}

	l := &task.Leave{
		ID:          id,
		UserID:      strings.TrimSpace(rec.UserID),
		Type:        typ,
		StartDate:   start,
		EndDate:     end,
		Status:      status,
		IsHalfDay:   rec.HalfDay,
		Description: rec.Description,
	}
	if err := task.ValidateLeave(l); err != nil {
		return nil, err
	}
	return l, nil
}

// span parses a record's dates. The start date is required; an empty end
// date means a single-day span. Inverted spans are rejected by validation.
func span(kind, id, start, end string) (s, e time.Time, err error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" {
		return s, e, &task.InvalidRecordError{Kind: kind, ID: id, Reason: "start_date is required"}
	}
	if s, err = dateutil.ParseDate(start); err != nil {
		return s, e, &task.InvalidRecordError{Kind: kind, ID: id, Reason: err.Error()}
	}
	if end == "" {
		return s, s, nil
	}
	if e, err = dateutil.ParseDate(end); err != nil {
		return s, e, &task.InvalidRecordError{Kind: kind, ID: id, Reason: err.Error()}
	}
	return s, e, nil
}
