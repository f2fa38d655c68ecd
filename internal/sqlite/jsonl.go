// JSONL export/import for the plan archive, with atomic writes. The
// database remains the store of record; JSONL is the interchange surface
// the export/import commands use.
package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JSONL file names written by ExportJSONL and read by ImportJSONL.
const (
	plansJSONL = "plans.jsonl"
	jobsJSONL  = "jobs.jsonl"
)

// planRecord matches the JSONL format for plans. Timestamps stay RFC3339
// strings so exported files round-trip byte for byte.
type planRecord struct {
	PlanID     string          `json:"plan_id"`
	JobID      string          `json:"job_id"`
	Name       string          `json:"name"`
	BoardsUsed int             `json:"boards_used"`
	Score      float64         `json:"score"`
	Attempts   int             `json:"attempts"`
	Seed       int64           `json:"seed"`
	Layout     json.RawMessage `json:"layout"`
	CreatedAt  string          `json:"created_at"`
}

// jobRecord matches the JSONL format for jobs.
type jobRecord struct {
	JobID     string `json:"job_id"`
	Name      string `json:"name"`
	Source    string `json:"source"`
	CreatedAt string `json:"created_at"`
}

// ExportJSONL writes jobs.jsonl and plans.jsonl under dir, creating it if
// needed. Each file is written atomically.
func (b *Backend) ExportJSONL(dir string) error {
	db, err := b.handle()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	var jobs []json.RawMessage
	rows, err := db.Query("SELECT job_id, name, source, created_at FROM jobs ORDER BY created_at ASC")
	if err != nil {
		return fmt.Errorf("querying jobs for export: %w", err)
	}
	for rows.Next() {
		var rec jobRecord
		if err := rows.Scan(&rec.JobID, &rec.Name, &rec.Source, &rec.CreatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("scanning job for export: %w", err)
		}
		data, err := json.Marshal(rec)
		if err != nil {
			rows.Close()
			return fmt.Errorf("marshaling job for export: %w", err)
		}
		jobs = append(jobs, data)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating jobs for export: %w", err)
	}

	var plans []json.RawMessage
	rows, err = db.Query("SELECT plan_id, job_id, name, boards_used, score, attempts, seed, layout, created_at FROM plans ORDER BY created_at ASC")
	if err != nil {
		return fmt.Errorf("querying plans for export: %w", err)
	}
	for rows.Next() {
		var rec planRecord
		var layout string
		if err := rows.Scan(&rec.PlanID, &rec.JobID, &rec.Name, &rec.BoardsUsed, &rec.Score, &rec.Attempts, &rec.Seed, &layout, &rec.CreatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("scanning plan for export: %w", err)
		}
		rec.Layout = json.RawMessage(layout)
		data, err := json.Marshal(rec)
		if err != nil {
			rows.Close()
			return fmt.Errorf("marshaling plan for export: %w", err)
		}
		plans = append(plans, data)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating plans for export: %w", err)
	}

	if err := writeJSONL(filepath.Join(dir, jobsJSONL), jobs); err != nil {
		return fmt.Errorf("writing %s: %w", jobsJSONL, err)
	}
	if err := writeJSONL(filepath.Join(dir, plansJSONL), plans); err != nil {
		return fmt.Errorf("writing %s: %w", plansJSONL, err)
	}
	return nil
}

// ImportJSONL reads jobs.jsonl and plans.jsonl from dir and upserts every
// record in one transaction. Missing files are skipped; blank and
// malformed lines are ignored. Returns the number of jobs and plans
// imported.
func (b *Backend) ImportJSONL(dir string) (jobs, plans int, err error) {
	db, err := b.handle()
	if err != nil {
		return 0, 0, err
	}

	jobRecs, err := readJSONL(filepath.Join(dir, jobsJSONL))
	if err != nil {
		return 0, 0, err
	}
	planRecs, err := readJSONL(filepath.Join(dir, plansJSONL))
	if err != nil {
		return 0, 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback()

	// Jobs load first so plan foreign keys resolve.
	for _, raw := range jobRecs {
		var rec jobRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.JobID == "" {
			continue
		}
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO jobs (job_id, name, source, created_at) VALUES (?, ?, ?, ?)",
			rec.JobID, rec.Name, rec.Source, rec.CreatedAt,
		); err != nil {
			return 0, 0, fmt.Errorf("importing job %s: %w", rec.JobID, err)
		}
		jobs++
	}

	for _, raw := range planRecs {
		var rec planRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.PlanID == "" {
			continue
		}
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO plans (plan_id, job_id, name, boards_used, score, attempts, seed, layout, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			rec.PlanID, rec.JobID, rec.Name, rec.BoardsUsed, rec.Score, rec.Attempts, rec.Seed, string(rec.Layout), rec.CreatedAt,
		); err != nil {
			return 0, 0, fmt.Errorf("importing plan %s: %w", rec.PlanID, err)
		}
		plans++
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("committing import: %w", err)
	}
	return jobs, plans, nil
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line
// as a json.RawMessage. A missing file yields no records. Malformed lines
// are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
