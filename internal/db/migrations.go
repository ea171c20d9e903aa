package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS people (
			id                    TEXT PRIMARY KEY,
			name                  TEXT NOT NULL DEFAULT '',
			department            TEXT NOT NULL DEFAULT '',
			role                  TEXT NOT NULL DEFAULT '',
			weekly_capacity_hours REAL NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS projects (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL DEFAULT '',
			is_billable INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS work_items (
			id              TEXT PRIMARY KEY,
			name            TEXT NOT NULL DEFAULT '',
			assignee_id     TEXT NOT NULL,
			project_id      TEXT NOT NULL DEFAULT '',
			start_date      TEXT NOT NULL,
			end_date        TEXT NOT NULL,
			planned_hours   REAL NOT NULL DEFAULT 0,
			logged_hours    REAL NOT NULL DEFAULT 0,
			is_billable     INTEGER NOT NULL DEFAULT 0,
			status          TEXT NOT NULL DEFAULT 'todo' CHECK(status IN ('todo', 'in_progress', 'completed', 'blocked')),
			allocation_type TEXT NOT NULL DEFAULT 'hard' CHECK(allocation_type IN ('soft', 'hard'))
		);

		CREATE INDEX IF NOT EXISTS idx_work_items_assignee ON work_items(assignee_id);
		CREATE INDEX IF NOT EXISTS idx_work_items_span ON work_items(start_date, end_date);

		CREATE TABLE IF NOT EXISTS leaves (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			type        TEXT NOT NULL CHECK(type IN ('vacation', 'sick', 'personal', 'holiday', 'training', 'wfh')),
			start_date  TEXT NOT NULL,
			end_date    TEXT NOT NULL,
			status      TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('approved', 'pending', 'denied')),
			is_half_day INTEGER NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_leaves_user ON leaves(user_id);

		CREATE TABLE IF NOT EXISTS events (
			id             TEXT PRIMARY KEY,
			title          TEXT NOT NULL DEFAULT '',
			start_at       TEXT NOT NULL,
			end_at         TEXT NOT NULL,
			source_item_id TEXT NOT NULL DEFAULT '',
			created_at     DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_at);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
