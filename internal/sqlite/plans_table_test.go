package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/sawmill/pkg/types"
)

// samplePlan returns a plan with a small but real layout attached.
func samplePlan(jobID string) *types.Plan {
	return &types.Plan{
		JobID:      jobID,
		Name:       "hall-table",
		BoardsUsed: 1,
		Score:      0.83,
		Attempts:   100,
		Seed:       42,
		Layout: types.Layout{
			Spacing: 0.125,
			Score:   0.83,
			Boards: []types.LayoutBoard{{
				Board: types.Board{Length: 96, Width: 5.5, ID: "A"},
				Score: 0.83,
				Rips: []types.LayoutRip{{
					Length: 57,
					Width:  4,
					Strips: []types.LayoutStrip{{
						Length: 57,
						Width:  4,
						Cuts: []types.LayoutCut{{
							Cut: types.Cut{Count: 1, Length: 57, Width: 4, Name: "Apron"},
						}},
					}},
				}},
			}},
		},
	}
}

// archiveJob stores a job and returns its generated ID.
func archiveJob(t *testing.T, b *Backend, name string) string {
	t.Helper()
	jobs, err := b.GetTable(types.JobsTable)
	require.NoError(t, err)
	id, err := jobs.Set("", &types.ArchivedJob{Name: name, Source: "boards:\n  - 96x5.5:A\n"})
	require.NoError(t, err)
	return id
}

func TestPlansTableSet(t *testing.T) {
	b := setupBackend(t)
	jobID := archiveJob(t, b, "hall-table")
	plans, err := b.GetTable(types.PlansTable)
	require.NoError(t, err)

	t.Run("create generates ID and timestamp", func(t *testing.T) {
		p := samplePlan(jobID)
		id, err := plans.Set("", p)
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, p.PlanID)
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("round-trips the layout", func(t *testing.T) {
		p := samplePlan(jobID)
		id, err := plans.Set("", p)
		require.NoError(t, err)

		entity, err := plans.Get(id)
		require.NoError(t, err)
		got := entity.(*types.Plan)

		assert.Equal(t, p.Score, got.Score)
		assert.Equal(t, p.BoardsUsed, got.BoardsUsed)
		require.Len(t, got.Layout.Boards, 1)
		require.Len(t, got.Layout.Boards[0].Rips, 1)
		assert.Equal(t, "Apron", got.Layout.Boards[0].Rips[0].Strips[0].Cuts[0].Cut.Name)
	})

	t.Run("update keeps the ID", func(t *testing.T) {
		p := samplePlan(jobID)
		id, err := plans.Set("", p)
		require.NoError(t, err)

		p.Name = "hall-table-v2"
		id2, err := plans.Set(id, p)
		require.NoError(t, err)
		assert.Equal(t, id, id2)

		entity, err := plans.Get(id)
		require.NoError(t, err)
		assert.Equal(t, "hall-table-v2", entity.(*types.Plan).Name)
	})

	t.Run("rejects wrong type and missing job", func(t *testing.T) {
		_, err := plans.Set("", "not a plan")
		assert.ErrorIs(t, err, types.ErrInvalidData)

		_, err = plans.Set("", &types.Plan{Name: "no job"})
		assert.ErrorIs(t, err, types.ErrInvalidData)
	})
}

func TestPlansTableGet(t *testing.T) {
	b := setupBackend(t)
	plans, err := b.GetTable(types.PlansTable)
	require.NoError(t, err)

	_, err = plans.Get("")
	assert.ErrorIs(t, err, types.ErrInvalidID)

	_, err = plans.Get("missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestPlansTableDelete(t *testing.T) {
	b := setupBackend(t)
	jobID := archiveJob(t, b, "hall-table")
	plans, err := b.GetTable(types.PlansTable)
	require.NoError(t, err)

	id, err := plans.Set("", samplePlan(jobID))
	require.NoError(t, err)

	require.NoError(t, plans.Delete(id))
	_, err = plans.Get(id)
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.ErrorIs(t, plans.Delete(id), types.ErrNotFound)
	assert.ErrorIs(t, plans.Delete(""), types.ErrInvalidID)
}

func TestPlansTableFetch(t *testing.T) {
	b := setupBackend(t)
	jobA := archiveJob(t, b, "table-a")
	jobB := archiveJob(t, b, "table-b")
	plans, err := b.GetTable(types.PlansTable)
	require.NoError(t, err)

	// Explicit IDs and timestamps make the DESC ordering deterministic.
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, jobID := range []string{jobA, jobA, jobB} {
		p := samplePlan(jobID)
		p.PlanID = generateUUID()
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		p.Name = []string{"first", "second", "third"}[i]
		_, err := plans.Set(p.PlanID, p)
		require.NoError(t, err)
	}

	t.Run("empty filter returns all, newest first", func(t *testing.T) {
		got, err := plans.Fetch(nil)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "third", got[0].(*types.Plan).Name)
		assert.Equal(t, "first", got[2].(*types.Plan).Name)
	})

	t.Run("filter by job_id", func(t *testing.T) {
		got, err := plans.Fetch(types.Filter{"job_id": jobA})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("filter by name", func(t *testing.T) {
		got, err := plans.Fetch(types.Filter{"name": "second"})
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("limit and offset", func(t *testing.T) {
		got, err := plans.Fetch(types.Filter{"limit": 1, "offset": 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "second", got[0].(*types.Plan).Name)
	})

	t.Run("offset without limit returns the remaining rows", func(t *testing.T) {
		got, err := plans.Fetch(types.Filter{"offset": 1})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "second", got[0].(*types.Plan).Name)
		assert.Equal(t, "first", got[1].(*types.Plan).Name)
	})

	t.Run("no match returns empty non-nil slice", func(t *testing.T) {
		got, err := plans.Fetch(types.Filter{"name": "nothing"})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("wrong filter value type", func(t *testing.T) {
		_, err := plans.Fetch(types.Filter{"job_id": 7})
		assert.ErrorIs(t, err, types.ErrInvalidFilter)
		_, err = plans.Fetch(types.Filter{"limit": "ten"})
		assert.ErrorIs(t, err, types.ErrInvalidFilter)
	})
}
