// This file implements the plans table accessor for the SQLite backend.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/sawmill/pkg/types"
)

// Compile-time interface check: plansTable must implement Table.
var _ types.Table = (*plansTable)(nil)

// plansTable implements the Table interface for archived plans. Each
// operation hydrates/dehydrates between SQLite rows and *types.Plan
// structs; the layout column holds the Layout JSON.
type plansTable struct {
	backend *Backend
}

// Get retrieves a plan by ID and hydrates the row to *types.Plan.
func (pt *plansTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	db, err := pt.backend.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT plan_id, job_id, name, boards_used, score, attempts, seed, layout, created_at FROM plans WHERE plan_id = ?",
		id,
	)
	plan, err := hydratePlan(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting plan %s: %w", id, err)
	}
	return plan, nil
}

// Set persists a plan. If id is empty, generates a UUID v7 and creates the
// plan. If id is provided, updates the existing plan. Returns the actual ID.
func (pt *plansTable) Set(id string, data any) (string, error) {
	plan, ok := data.(*types.Plan)
	if !ok {
		return "", types.ErrInvalidData
	}
	if plan.JobID == "" {
		return "", types.ErrInvalidData
	}

	db, err := pt.backend.handle()
	if err != nil {
		return "", err
	}

	if id == "" {
		plan.PlanID = generateUUID()
		plan.CreatedAt = time.Now().UTC()
		id = plan.PlanID
	}

	// Determine INSERT vs UPDATE.
	var exists bool
	err = db.QueryRow("SELECT 1 FROM plans WHERE plan_id = ?", id).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		return "", fmt.Errorf("checking plan existence: %w", err)
	}

	layoutJSON, err := json.Marshal(plan.Layout)
	if err != nil {
		return "", fmt.Errorf("encoding layout: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	createdAtStr := plan.CreatedAt.Format(time.RFC3339)

	if exists {
		_, err = tx.Exec(
			"UPDATE plans SET job_id = ?, name = ?, boards_used = ?, score = ?, attempts = ?, seed = ?, layout = ?, created_at = ? WHERE plan_id = ?",
			plan.JobID, plan.Name, plan.BoardsUsed, plan.Score, plan.Attempts, plan.Seed, string(layoutJSON), createdAtStr, id,
		)
	} else {
		_, err = tx.Exec(
			"INSERT INTO plans (plan_id, job_id, name, boards_used, score, attempts, seed, layout, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			id, plan.JobID, plan.Name, plan.BoardsUsed, plan.Score, plan.Attempts, plan.Seed, string(layoutJSON), createdAtStr,
		)
	}
	if err != nil {
		return "", fmt.Errorf("persisting plan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing plan: %w", err)
	}

	return id, nil
}

// Delete removes a plan by ID.
func (pt *plansTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	db, err := pt.backend.handle()
	if err != nil {
		return err
	}

	res, err := db.Exec("DELETE FROM plans WHERE plan_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch queries plans matching the filter, ordered by created_at DESC.
// Supported keys: job_id (string), name (string), limit (int), offset (int).
func (pt *plansTable) Fetch(filter types.Filter) ([]any, error) {
	db, err := pt.backend.handle()
	if err != nil {
		return nil, err
	}

	query := "SELECT plan_id, job_id, name, boards_used, score, attempts, seed, layout, created_at FROM plans"
	var conditions []string
	var args []any

	if filter != nil {
		if v, ok := filter["job_id"]; ok {
			jobID, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, "job_id = ?")
			args = append(args, jobID)
		}
		if v, ok := filter["name"]; ok {
			name, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, "name = ?")
			args = append(args, name)
		}
	}

	for i, c := range conditions {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY created_at DESC"

	if filter != nil {
		limit := -1 // SQLite treats a negative LIMIT as unbounded.
		if v, ok := filter["limit"]; ok {
			n, ok := v.(int)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			if n > 0 {
				limit = n
			}
		}
		offset := 0
		if v, ok := filter["offset"]; ok {
			n, ok := v.(int)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			if n > 0 {
				offset = n
			}
		}
		// OFFSET is only valid after a LIMIT clause.
		if limit > 0 || offset > 0 {
			query += fmt.Sprintf(" LIMIT %d", limit)
			if offset > 0 {
				query += fmt.Sprintf(" OFFSET %d", offset)
			}
		}
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching plans: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		plan, err := hydratePlan(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating plan: %w", err)
		}
		results = append(results, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return results, nil
}

// hydratePlan converts one SQLite row into a *types.Plan. scan is either
// sql.Row.Scan or sql.Rows.Scan.
func hydratePlan(scan func(dest ...any) error) (*types.Plan, error) {
	var p types.Plan
	var layoutJSON, createdAt string
	if err := scan(&p.PlanID, &p.JobID, &p.Name, &p.BoardsUsed, &p.Score, &p.Attempts, &p.Seed, &layoutJSON, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(layoutJSON), &p.Layout); err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	var err error
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &p, nil
}
