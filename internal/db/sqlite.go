// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/workload/internal/dateutil"
	"github.com/javiermolinar/workload/internal/task"
)

// timestampLayout stores event instants in UTC so that text comparison
// orders them chronologically.
const timestampLayout = "2006-01-02T15:04:05Z"

// SQLite implements task.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ task.Repository = (*SQLite)(nil)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreatePerson adds or replaces a person.
func (s *SQLite) CreatePerson(ctx context.Context, p *task.Person) error {
	return insertPerson(ctx, s.db, p)
}

func insertPerson(ctx context.Context, ex execer, p *task.Person) error {
	if err := task.ValidatePerson(p); err != nil {
		return err
	}

	query := `
		INSERT INTO people (id, name, department, role, weekly_capacity_hours)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			department = excluded.department,
			role = excluded.role,
			weekly_capacity_hours = excluded.weekly_capacity_hours
	`
	if _, err := ex.ExecContext(ctx, query, p.ID, p.Name, p.Department, p.Role, p.WeeklyCapacityHours); err != nil {
		return fmt.Errorf("inserting person %q: %w", p.ID, err)
	}
	return nil
}

// GetPerson retrieves a person by ID.
func (s *SQLite) GetPerson(ctx context.Context, id string) (*task.Person, error) {
	query := `
		SELECT id, name, department, role, weekly_capacity_hours
		FROM people
		WHERE id = ?
	`

	var p task.Person
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Department, &p.Role, &p.WeeklyCapacityHours,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("person %q: %w", id, task.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying person: %w", err)
	}
	return &p, nil
}

// ListPeople returns every person ordered by name.
func (s *SQLite) ListPeople(ctx context.Context) ([]*task.Person, error) {
	query := `
		SELECT id, name, department, role, weekly_capacity_hours
		FROM people
		ORDER BY name, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying people: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var people []*task.Person
	for rows.Next() {
		var p task.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Department, &p.Role, &p.WeeklyCapacityHours); err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		people = append(people, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating people: %w", err)
	}
	return people, nil
}

// CreateProject adds or replaces a project.
func (s *SQLite) CreateProject(ctx context.Context, p *task.Project) error {
	return insertProject(ctx, s.db, p)
}

func insertProject(ctx context.Context, ex execer, p *task.Project) error {
	if err := task.ValidateProject(p); err != nil {
		return err
	}

	query := `
		INSERT INTO projects (id, name, is_billable)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			is_billable = excluded.is_billable
	`
	if _, err := ex.ExecContext(ctx, query, p.ID, p.Name, p.IsBillable); err != nil {
		return fmt.Errorf("inserting project %q: %w", p.ID, err)
	}
	return nil
}

// ListProjects returns every project ordered by name.
func (s *SQLite) ListProjects(ctx context.Context) ([]*task.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, is_billable FROM projects ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []*task.Project
	for rows.Next() {
		var p task.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.IsBillable); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// CreateWorkItem adds or replaces a work item.
func (s *SQLite) CreateWorkItem(ctx context.Context, w *task.WorkItem) error {
	return insertWorkItem(ctx, s.db, w)
}

func insertWorkItem(ctx context.Context, ex execer, w *task.WorkItem) error {
	if err := task.ValidateWorkItem(w); err != nil {
		return err
	}
	if w.Status == "" {
		w.Status = task.StatusTodo
	}
	if w.AllocationType == "" {
		w.AllocationType = task.AllocationHard
	}

	query := `
		INSERT INTO work_items (
			id, name, assignee_id, project_id, start_date, end_date,
			planned_hours, logged_hours, is_billable, status, allocation_type
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			assignee_id = excluded.assignee_id,
			project_id = excluded.project_id,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			planned_hours = excluded.planned_hours,
			logged_hours = excluded.logged_hours,
			is_billable = excluded.is_billable,
			status = excluded.status,
			allocation_type = excluded.allocation_type
	`
	_, err := ex.ExecContext(ctx, query,
		w.ID,
		w.Name,
		w.AssigneeID,
		w.ProjectID,
		dateutil.FormatDate(w.StartDate),
		dateutil.FormatDate(w.EndDate),
		w.PlannedHours,
		w.LoggedHours,
		w.IsBillable,
		w.Status,
		w.AllocationType,
	)
	if err != nil {
		return fmt.Errorf("inserting work item %q: %w", w.ID, err)
	}
	return nil
}

const workItemColumns = `id, name, assignee_id, project_id, start_date, end_date,
		       planned_hours, logged_hours, is_billable, status, allocation_type`

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanWorkItem(sc scanner) (*task.WorkItem, error) {
	var (
		w        task.WorkItem
		from, to string
	)
	err := sc.Scan(
		&w.ID,
		&w.Name,
		&w.AssigneeID,
		&w.ProjectID,
		&from,
		&to,
		&w.PlannedHours,
		&w.LoggedHours,
		&w.IsBillable,
		&w.Status,
		&w.AllocationType,
	)
	if err != nil {
		return nil, err
	}
	if w.StartDate, err = parseDate(from); err != nil {
		return nil, fmt.Errorf("parsing start date of %q: %w", w.ID, err)
	}
	if w.EndDate, err = parseDate(to); err != nil {
		return nil, fmt.Errorf("parsing end date of %q: %w", w.ID, err)
	}
	return &w, nil
}

// GetWorkItem retrieves a work item by ID.
func (s *SQLite) GetWorkItem(ctx context.Context, id string) (*task.WorkItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+workItemColumns+` FROM work_items WHERE id = ?`, id)
	w, err := scanWorkItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("work item %q: %w", id, task.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting work item: %w", err)
	}
	return w, nil
}

// ListWorkItems returns the items of assigneeID whose span overlaps
// [start, end] ordered by start date. An empty assigneeID matches everyone.
func (s *SQLite) ListWorkItems(ctx context.Context, assigneeID string, start, end time.Time) ([]*task.WorkItem, error) {
	query := `
		SELECT ` + workItemColumns + `
		FROM work_items
		WHERE start_date <= ? AND end_date >= ?
		  AND (? = '' OR assignee_id = ?)
		ORDER BY start_date, id
	`

	rows, err := s.db.QueryContext(ctx, query,
		dateutil.FormatDate(end),
		dateutil.FormatDate(start),
		assigneeID, assigneeID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying work items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []*task.WorkItem
	for rows.Next() {
		w, err := scanWorkItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning work item: %w", err)
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work items: %w", err)
	}
	return items, nil
}

// CreateLeave adds or replaces a leave. A leave without an ID gets a
// generated one.
func (s *SQLite) CreateLeave(ctx context.Context, l *task.Leave) error {
	return insertLeave(ctx, s.db, l)
}

func insertLeave(ctx context.Context, ex execer, l *task.Leave) error {
	if err := task.ValidateLeave(l); err != nil {
		return err
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}

	query := `
		INSERT INTO leaves (id, user_id, type, start_date, end_date, status, is_half_day, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			type = excluded.type,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			status = excluded.status,
			is_half_day = excluded.is_half_day,
			description = excluded.description
	`
	_, err := ex.ExecContext(ctx, query,
		l.ID,
		l.UserID,
		l.Type,
		dateutil.FormatDate(l.StartDate),
		dateutil.FormatDate(l.EndDate),
		l.Status,
		l.IsHalfDay,
		l.Description,
	)
	if err != nil {
		return fmt.Errorf("inserting leave %q: %w", l.ID, err)
	}
	return nil
}

// ListLeaves returns the leaves of userID overlapping [start, end] ordered
// by start date. An empty userID matches everyone.
func (s *SQLite) ListLeaves(ctx context.Context, userID string, start, end time.Time) ([]*task.Leave, error) {
	query := `
		SELECT id, user_id, type, start_date, end_date, status, is_half_day, description
		FROM leaves
		WHERE start_date <= ? AND end_date >= ?
		  AND (? = '' OR user_id = ?)
		ORDER BY start_date, id
	`

	rows, err := s.db.QueryContext(ctx, query,
		dateutil.FormatDate(end),
		dateutil.FormatDate(start),
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying leaves: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var leaves []*task.Leave
	for rows.Next() {
		var (
			l        task.Leave
			from, to string
		)
		if err := rows.Scan(&l.ID, &l.UserID, &l.Type, &from, &to, &l.Status, &l.IsHalfDay, &l.Description); err != nil {
			return nil, fmt.Errorf("scanning leave: %w", err)
		}
		var err error
		if l.StartDate, err = parseDate(from); err != nil {
			return nil, fmt.Errorf("parsing start date of leave %q: %w", l.ID, err)
		}
		if l.EndDate, err = parseDate(to); err != nil {
			return nil, fmt.Errorf("parsing end date of leave %q: %w", l.ID, err)
		}
		leaves = append(leaves, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating leaves: %w", err)
	}
	return leaves, nil
}

// ImportRoster stores all records of a roster in a single transaction.
// Any invalid record aborts the import and nothing is written.
func (s *SQLite) ImportRoster(ctx context.Context, r *task.Roster) error {
	if r == nil {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range r.People {
		if err := insertPerson(ctx, tx, p); err != nil {
			return err
		}
	}
	for _, p := range r.Projects {
		if err := insertProject(ctx, tx, p); err != nil {
			return err
		}
	}
	for _, w := range r.Items {
		if err := insertWorkItem(ctx, tx, w); err != nil {
			return err
		}
	}
	for _, l := range r.Leaves {
		if err := insertLeave(ctx, tx, l); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// SaveEvent inserts or updates a scheduled event.
func (s *SQLite) SaveEvent(ctx context.Context, e *task.ScheduledEvent) error {
	if err := task.ValidateEvent(e); err != nil {
		return err
	}

	query := `
		INSERT INTO events (id, title, start_at, end_at, source_item_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			start_at = excluded.start_at,
			end_at = excluded.end_at,
			source_item_id = excluded.source_item_id
	`
	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.Title,
		formatTimestamp(e.Start),
		formatTimestamp(e.End),
		e.SourceItemID,
	)
	if err != nil {
		return fmt.Errorf("saving event %q: %w", e.ID, err)
	}
	return nil
}

// GetEvent retrieves an event by ID.
func (s *SQLite) GetEvent(ctx context.Context, id string) (*task.ScheduledEvent, error) {
	query := `
		SELECT id, title, start_at, end_at, source_item_id
		FROM events
		WHERE id = ?
	`

	var (
		e          task.ScheduledEvent
		start, end string
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Title, &start, &end, &e.SourceItemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %q: %w", id, task.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}
	if e.Start, err = parseTimestamp(start); err != nil {
		return nil, fmt.Errorf("parsing event start: %w", err)
	}
	if e.End, err = parseTimestamp(end); err != nil {
		return nil, fmt.Errorf("parsing event end: %w", err)
	}
	return &e, nil
}

// DeleteEvent removes an event.
func (s *SQLite) DeleteEvent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("event %q: %w", id, task.ErrNotFound)
	}
	return nil
}

// ListEvents returns events starting within [start, end) ordered by start.
func (s *SQLite) ListEvents(ctx context.Context, start, end time.Time) ([]*task.ScheduledEvent, error) {
	query := `
		SELECT id, title, start_at, end_at, source_item_id
		FROM events
		WHERE start_at >= ? AND start_at < ?
		ORDER BY start_at, end_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, formatTimestamp(start), formatTimestamp(end))
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []*task.ScheduledEvent
	for rows.Next() {
		var (
			e        task.ScheduledEvent
			from, to string
		)
		if err := rows.Scan(&e.ID, &e.Title, &from, &to, &e.SourceItemID); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		var err error
		if e.Start, err = parseTimestamp(from); err != nil {
			return nil, fmt.Errorf("parsing event start: %w", err)
		}
		if e.End, err = parseTimestamp(to); err != nil {
			return nil, fmt.Errorf("parsing event end: %w", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTimestamp reads a stored instant and returns it in local time.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return time.Time{}, err
		}
	}
	return t.In(time.Local), nil
}

// parseDate parses a date string in various formats SQLite might return.
// Date-only values become midnight UTC, the representation dateutil uses
// for calendar dates.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateutil.DateLayout, s); err == nil {
		return t, nil
	}

	// DATE columns can come back as "2006-01-02T00:00:00Z".
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' {
		if t, err := time.Parse(dateutil.DateLayout, s[:10]); err == nil {
			return t, nil
		}
	}

	formats := []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return dateutil.Date(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
