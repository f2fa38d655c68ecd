// Plan is the archived outcome of one solve: the winning layout plus the
// search parameters that produced it.
package types

import "time"

// Plan records one accepted solution. PlanID is a UUID v7 generated on
// creation; JobID links the plan to the archived job it was solved from.
type Plan struct {
	PlanID     string    `json:"plan_id"`
	JobID      string    `json:"job_id"`
	Name       string    `json:"name"`        // Job name at solve time.
	BoardsUsed int       `json:"boards_used"` // Boards holding at least one piece.
	Score      float64   `json:"score"`       // Solution score (product over boards).
	Attempts   int       `json:"attempts"`    // Attempts configured; 0 means exhaustive.
	Seed       int64     `json:"seed"`        // Effective seed, for reproducing the solve.
	Layout     Layout    `json:"layout"`
	CreatedAt  time.Time `json:"created_at"`
}

// Summary returns the short fields shown by list output, omitting the layout.
func (p *Plan) Summary() map[string]any {
	return map[string]any{
		"plan_id":     p.PlanID,
		"name":        p.Name,
		"boards_used": p.BoardsUsed,
		"score":       p.Score,
		"created_at":  p.CreatedAt.Format(time.RFC3339),
	}
}

// ArchivedJob records one job file in the archive. Source is the job YAML
// as written, so a plan can always be re-solved from what was stored.
type ArchivedJob struct {
	JobID     string    `json:"job_id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}
