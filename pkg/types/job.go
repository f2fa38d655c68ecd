// Job is the planning request: stock boards, a cutlist, and saw parameters,
// loaded from a YAML job file.
package types

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Job validation errors.
var (
	ErrInvalidJob      = errors.New("invalid job")
	ErrNoBoards        = errors.New("job has no boards")
	ErrNoCuts          = errors.New("job has no cutlist entries")
	ErrNegativeSpacing = errors.New("spacing must not be negative")
)

// Job describes one planning request. Spacing is the saw kerf consumed
// between adjacent pieces. AllowRotation permits placing pieces turned 90
// degrees, for parts where grain direction does not matter.
type Job struct {
	Name          string  `json:"name" yaml:"name"`
	Spacing       float64 `json:"spacing" yaml:"spacing"`
	AllowRotation bool    `json:"allow_rotation" yaml:"allow_rotation"`
	Boards        []Board `json:"boards" yaml:"boards"`
	Cutlist       []Cut   `json:"cutlist" yaml:"cutlist"`

	// Margin is the legacy name for Spacing in older job files. It is
	// folded into Spacing after parsing and never read elsewhere.
	Margin float64 `json:"-" yaml:"margin"`
}

// ParseJob parses job YAML. The legacy margin key is folded into Spacing
// when the spacing key is absent; an explicit "spacing: 0" wins over margin.
func ParseJob(data []byte) (*Job, error) {
	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}
	// A pointer field distinguishes "spacing: 0" from a missing key.
	var present struct {
		Spacing *float64 `yaml:"spacing"`
	}
	if err := yaml.Unmarshal(data, &present); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}
	if present.Spacing == nil && job.Margin != 0 {
		job.Spacing = job.Margin
	}
	job.Margin = 0
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// LoadJob reads and parses a job file. A missing name defaults to the file
// stem, so "plans/hall-table.yaml" becomes job "hall-table".
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}
	job, err := ParseJob(data)
	if err != nil {
		return nil, err
	}
	if job.Name == "" {
		base := filepath.Base(path)
		job.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return job, nil
}

// Validate checks that the job is well-formed. It returns a sentinel error
// from this package on failure.
func (j *Job) Validate() error {
	if len(j.Boards) == 0 {
		return ErrNoBoards
	}
	if len(j.Cutlist) == 0 {
		return ErrNoCuts
	}
	if j.Spacing < 0 {
		return ErrNegativeSpacing
	}
	return nil
}

// TotalPieces returns the number of individual pieces the cutlist demands,
// with counts expanded.
func (j *Job) TotalPieces() int {
	total := 0
	for _, c := range j.Cutlist {
		total += c.Count
	}
	return total
}

// CutArea returns the total area demanded by the cutlist, counts expanded,
// spacing ignored.
func (j *Job) CutArea() float64 {
	area := 0.0
	for _, c := range j.Cutlist {
		area += float64(c.Count) * c.Area()
	}
	return area
}

// BoardArea returns the total stock area across all boards.
func (j *Job) BoardArea() float64 {
	area := 0.0
	for _, b := range j.Boards {
		area += b.Area()
	}
	return area
}

// Source returns the job re-encoded as YAML, used when archiving the job
// alongside its plans.
func (j *Job) Source() (string, error) {
	out := struct {
		Name          string   `yaml:"name"`
		Spacing       float64  `yaml:"spacing"`
		AllowRotation bool     `yaml:"allow_rotation,omitempty"`
		Boards        []string `yaml:"boards"`
		Cutlist       []string `yaml:"cutlist"`
	}{
		Name:          j.Name,
		Spacing:       j.Spacing,
		AllowRotation: j.AllowRotation,
	}
	for _, b := range j.Boards {
		out.Boards = append(out.Boards, b.String())
	}
	for _, c := range j.Cutlist {
		out.Cutlist = append(out.Cutlist, c.String())
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encoding job: %w", err)
	}
	return string(data), nil
}
