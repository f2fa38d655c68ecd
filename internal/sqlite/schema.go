// Schema DDL for the plan archive. Tables persist across attaches, so every
// statement is idempotent.
package sqlite

import (
	"database/sql"
	"fmt"
)

const (
	createJobs = `CREATE TABLE IF NOT EXISTS jobs (
    job_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    source TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createPlans = `CREATE TABLE IF NOT EXISTS plans (
    plan_id TEXT PRIMARY KEY,
    job_id TEXT NOT NULL,
    name TEXT NOT NULL,
    boards_used INTEGER NOT NULL,
    score REAL NOT NULL,
    attempts INTEGER NOT NULL,
    seed INTEGER NOT NULL,
    layout TEXT NOT NULL,
    created_at TEXT NOT NULL,
    FOREIGN KEY (job_id) REFERENCES jobs(job_id)
);`

	idxPlansJob = `CREATE INDEX IF NOT EXISTS idx_plans_job ON plans(job_id);`
)

// applySchema creates the archive tables and indexes if they are missing.
func applySchema(db *sql.DB) error {
	for _, stmt := range []string{createJobs, createPlans, idxPlansJob} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
