// This file implements the jobs table accessor for the SQLite backend.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/sawmill/pkg/types"
)

// Compile-time interface check: jobsTable must implement Table.
var _ types.Table = (*jobsTable)(nil)

// jobsTable implements the Table interface for archived jobs. The source
// column holds the job YAML as written, so any plan can be re-solved from
// what was stored.
type jobsTable struct {
	backend *Backend
}

// Get retrieves an archived job by ID.
func (jt *jobsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	db, err := jt.backend.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT job_id, name, source, created_at FROM jobs WHERE job_id = ?",
		id,
	)
	job, err := hydrateJob(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting job %s: %w", id, err)
	}
	return job, nil
}

// Set persists an archived job. If id is empty, generates a UUID v7 and
// creates the job. Returns the actual ID.
func (jt *jobsTable) Set(id string, data any) (string, error) {
	job, ok := data.(*types.ArchivedJob)
	if !ok {
		return "", types.ErrInvalidData
	}
	if job.Name == "" || job.Source == "" {
		return "", types.ErrInvalidData
	}

	db, err := jt.backend.handle()
	if err != nil {
		return "", err
	}

	if id == "" {
		job.JobID = generateUUID()
		job.CreatedAt = time.Now().UTC()
		id = job.JobID
	}

	var exists bool
	err = db.QueryRow("SELECT 1 FROM jobs WHERE job_id = ?", id).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		return "", fmt.Errorf("checking job existence: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	createdAtStr := job.CreatedAt.Format(time.RFC3339)

	if exists {
		_, err = tx.Exec(
			"UPDATE jobs SET name = ?, source = ?, created_at = ? WHERE job_id = ?",
			job.Name, job.Source, createdAtStr, id,
		)
	} else {
		_, err = tx.Exec(
			"INSERT INTO jobs (job_id, name, source, created_at) VALUES (?, ?, ?, ?)",
			id, job.Name, job.Source, createdAtStr,
		)
	}
	if err != nil {
		return "", fmt.Errorf("persisting job: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing job: %w", err)
	}

	return id, nil
}

// Delete removes a job and cascades to its plans.
func (jt *jobsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	db, err := jt.backend.handle()
	if err != nil {
		return err
	}

	var exists bool
	err = db.QueryRow("SELECT 1 FROM jobs WHERE job_id = ?", id).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.ErrNotFound
		}
		return fmt.Errorf("checking job existence: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM plans WHERE job_id = ?", id); err != nil {
		return fmt.Errorf("deleting job plans: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM jobs WHERE job_id = ?", id); err != nil {
		return fmt.Errorf("deleting job: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing job deletion: %w", err)
	}
	return nil
}

// Fetch queries jobs matching the filter, ordered by created_at DESC.
// Supported keys: name (string), limit (int).
func (jt *jobsTable) Fetch(filter types.Filter) ([]any, error) {
	db, err := jt.backend.handle()
	if err != nil {
		return nil, err
	}

	query := "SELECT job_id, name, source, created_at FROM jobs"
	var args []any

	if filter != nil {
		if v, ok := filter["name"]; ok {
			name, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			query += " WHERE name = ?"
			args = append(args, name)
		}
	}
	query += " ORDER BY created_at DESC"

	if filter != nil {
		if v, ok := filter["limit"]; ok {
			limit, ok := v.(int)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			if limit > 0 {
				query += fmt.Sprintf(" LIMIT %d", limit)
			}
		}
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching jobs: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		job, err := hydrateJob(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating job: %w", err)
		}
		results = append(results, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating jobs: %w", err)
	}
	return results, nil
}

// hydrateJob converts one SQLite row into a *types.ArchivedJob.
func hydrateJob(scan func(dest ...any) error) (*types.ArchivedJob, error) {
	var j types.ArchivedJob
	var createdAt string
	if err := scan(&j.JobID, &j.Name, &j.Source, &createdAt); err != nil {
		return nil, err
	}
	var err error
	j.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &j, nil
}
