package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/sawmill/pkg/types"
)

func TestExportImportRoundTrip(t *testing.T) {
	src := setupBackend(t)
	jobID := archiveJob(t, src, "hall-table")
	plans, err := src.GetTable(types.PlansTable)
	require.NoError(t, err)
	planID, err := plans.Set("", samplePlan(jobID))
	require.NoError(t, err)

	exportDir := t.TempDir()
	require.NoError(t, src.ExportJSONL(exportDir))

	for _, f := range []string{jobsJSONL, plansJSONL} {
		_, err := os.Stat(filepath.Join(exportDir, f))
		assert.NoError(t, err, "%s should exist", f)
	}

	// Import into a fresh archive.
	dst := setupBackend(t)
	jobs, plansN, err := dst.ImportJSONL(exportDir)
	require.NoError(t, err)
	assert.Equal(t, 1, jobs)
	assert.Equal(t, 1, plansN)

	dstPlans, err := dst.GetTable(types.PlansTable)
	require.NoError(t, err)
	entity, err := dstPlans.Get(planID)
	require.NoError(t, err)
	got := entity.(*types.Plan)
	assert.Equal(t, jobID, got.JobID)
	assert.Equal(t, 0.83, got.Score)
	require.Len(t, got.Layout.Boards, 1)
}

func TestImportSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	content := `{"job_id":"j1","name":"good","source":"boards: []","created_at":"2026-08-01T12:00:00Z"}
not json at all

{"name":"missing id"}
{"job_id":"j2","name":"also good","source":"boards: []","created_at":"2026-08-01T13:00:00Z"}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, jobsJSONL), []byte(content), 0o644))

	b := setupBackend(t)
	jobs, plans, err := b.ImportJSONL(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, jobs)
	assert.Zero(t, plans, "plans.jsonl missing is not an error")
}

func TestImportUpserts(t *testing.T) {
	b := setupBackend(t)
	dir := t.TempDir()

	first := `{"job_id":"j1","name":"before","source":"boards: []","created_at":"2026-08-01T12:00:00Z"}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, jobsJSONL), []byte(first), 0o644))
	_, _, err := b.ImportJSONL(dir)
	require.NoError(t, err)

	second := `{"job_id":"j1","name":"after","source":"boards: []","created_at":"2026-08-01T12:00:00Z"}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, jobsJSONL), []byte(second), 0o644))
	_, _, err = b.ImportJSONL(dir)
	require.NoError(t, err)

	jobs, err := b.GetTable(types.JobsTable)
	require.NoError(t, err)
	entity, err := jobs.Get("j1")
	require.NoError(t, err)
	assert.Equal(t, "after", entity.(*types.ArchivedJob).Name)
}

func TestWriteJSONLAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jsonl")

	require.NoError(t, writeJSONL(path, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
