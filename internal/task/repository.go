package task

import (
	"context"
	"time"
)

// Roster is an in-memory snapshot of every record the aggregator needs.
type Roster struct {
	People   []*Person
	Projects []*Project
	Items    []*WorkItem
	Leaves   []*Leave
}

// Repository defines the storage interface for workload records.
type Repository interface {
	// CreatePerson adds or replaces a person.
	CreatePerson(ctx context.Context, p *Person) error

	// GetPerson retrieves a person by ID. Returns ErrNotFound if missing.
	GetPerson(ctx context.Context, id string) (*Person, error)

	// ListPeople returns every person ordered by name.
	ListPeople(ctx context.Context) ([]*Person, error)

	// CreateProject adds or replaces a project.
	CreateProject(ctx context.Context, p *Project) error

	// ListProjects returns every project ordered by name.
	ListProjects(ctx context.Context) ([]*Project, error)

	// CreateWorkItem adds or replaces a work item.
	CreateWorkItem(ctx context.Context, w *WorkItem) error

	// GetWorkItem retrieves a work item by ID. Returns ErrNotFound if missing.
	GetWorkItem(ctx context.Context, id string) (*WorkItem, error)

	// ListWorkItems returns the items of assigneeID whose span overlaps
	// [start, end]. An empty assigneeID matches everyone.
	ListWorkItems(ctx context.Context, assigneeID string, start, end time.Time) ([]*WorkItem, error)

	// CreateLeave adds or replaces a leave.
	CreateLeave(ctx context.Context, l *Leave) error

	// ListLeaves returns the leaves of userID overlapping [start, end].
	// An empty userID matches everyone.
	ListLeaves(ctx context.Context, userID string, start, end time.Time) ([]*Leave, error)

	// ImportRoster stores all records of a roster in a single transaction.
	ImportRoster(ctx context.Context, r *Roster) error

	// SaveEvent inserts or updates a scheduled event.
	SaveEvent(ctx context.Context, e *ScheduledEvent) error

	// GetEvent retrieves an event by ID. Returns ErrNotFound if missing.
	GetEvent(ctx context.Context, id string) (*ScheduledEvent, error)

	// DeleteEvent removes an event. Returns ErrNotFound if missing.
	DeleteEvent(ctx context.Context, id string) error

	// ListEvents returns events starting within [start, end) ordered by start.
	ListEvents(ctx context.Context, start, end time.Time) ([]*ScheduledEvent, error)

	// Close releases any resources held by the repository.
	Close() error
}
