package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS departments (
		id                   TEXT PRIMARY KEY,
		name                 TEXT NOT NULL UNIQUE COLLATE NOCASE,
		work_start_min       INTEGER NOT NULL CHECK(work_start_min BETWEEN 0 AND 1439),
		work_end_min         INTEGER NOT NULL CHECK(work_end_min BETWEEN 0 AND 1439),
		break_start_min      INTEGER CHECK(break_start_min BETWEEN 0 AND 1439),
		break_duration_min   INTEGER CHECK(break_duration_min > 0),
		lecture_duration_min INTEGER NOT NULL CHECK(lecture_duration_min > 0),
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL,
		CHECK((break_start_min IS NULL) = (break_duration_min IS NULL))
	)`,

	`CREATE TABLE IF NOT EXISTS department_faculty (
		department_id TEXT NOT NULL REFERENCES departments(id) ON DELETE CASCADE,
		position      INTEGER NOT NULL,
		faculty       TEXT NOT NULL,
		subject       TEXT NOT NULL,
		PRIMARY KEY (department_id, position),
		UNIQUE (department_id, faculty)
	)`,

	`CREATE TABLE IF NOT EXISTS generations (
		id              TEXT PRIMARY KEY,
		department_id   TEXT REFERENCES departments(id) ON DELETE SET NULL,
		department_name TEXT NOT NULL,
		provider        TEXT NOT NULL DEFAULT '',
		model           TEXT NOT NULL DEFAULT '',
		prompt          TEXT NOT NULL,
		raw_response    TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL CHECK(status IN ('ok','failed')),
		failure_kind    TEXT NOT NULL DEFAULT ''
		                CHECK(failure_kind IN ('','extraction','parse','model')),
		error           TEXT NOT NULL DEFAULT '',
		latency_ms      INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_generations_department ON generations(department_id)`,
	`CREATE INDEX IF NOT EXISTS idx_generations_created ON generations(created_at)`,

	`CREATE TABLE IF NOT EXISTS generation_rows (
		generation_id TEXT NOT NULL REFERENCES generations(id) ON DELETE CASCADE,
		position      INTEGER NOT NULL,
		start_min     INTEGER NOT NULL,
		end_min       INTEGER NOT NULL,
		subject       TEXT NOT NULL,
		faculty       TEXT NOT NULL,
		PRIMARY KEY (generation_id, position)
	)`,
}
