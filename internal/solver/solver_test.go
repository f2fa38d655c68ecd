package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/sawmill/pkg/types"
)

// testJob builds a job from parsed board and cut notations.
func testJob(t *testing.T, spacing float64, boards, cuts []string) *types.Job {
	t.Helper()
	job := &types.Job{Name: "test", Spacing: spacing}
	for _, s := range boards {
		b, err := types.ParseBoard(s)
		require.NoError(t, err)
		job.Boards = append(job.Boards, b)
	}
	for _, s := range cuts {
		c, err := types.ParseCut(s)
		require.NoError(t, err)
		job.Cutlist = append(job.Cutlist, c)
	}
	return job
}

func TestCheckJob(t *testing.T) {
	t.Run("feasible job passes", func(t *testing.T) {
		job := testJob(t, 0, []string{"96x5.5:A"}, []string{"2@40x5:Shelf"})
		assert.NoError(t, CheckJob(job))
	})

	t.Run("demand exceeding stock area", func(t *testing.T) {
		job := testJob(t, 0, []string{"10x10:A"}, []string{"3@10x5:Panel"})
		assert.ErrorIs(t, CheckJob(job), ErrInfeasible)
	})

	t.Run("piece larger than every board", func(t *testing.T) {
		job := testJob(t, 0, []string{"96x5.5:A"}, []string{"1@10x6:Wide"})
		err := CheckJob(job)
		assert.ErrorIs(t, err, ErrCutTooLarge)
		assert.Contains(t, err.Error(), "Wide")
	})

	t.Run("rotation rescues a turned piece", func(t *testing.T) {
		job := testJob(t, 0, []string{"96x5.5:A"}, []string{"1@4x20:Turned"})
		assert.ErrorIs(t, CheckJob(job), ErrCutTooLarge)

		job.AllowRotation = true
		assert.NoError(t, CheckJob(job))
	})
}

func TestSolveRandom(t *testing.T) {
	job := testJob(t, 0.125,
		[]string{"96x5.5:A", "96x5.5:B"},
		[]string{"2@57x4:Apron", "4@20x1.5:Slat"})

	opts := DefaultOptions()
	opts.Attempts = 50
	opts.Seed = 7

	result, err := Solve(context.Background(), job, opts)
	require.NoError(t, err)
	require.NotNil(t, result.Best)

	assert.Positive(t, result.Stats.Viable)
	assert.Equal(t, 50, result.Stats.Attempts)
	assert.Equal(t, int64(7), result.Stats.Seed)
	assert.LessOrEqual(t, len(result.Ranked), opts.TopN)

	layout := result.Best.Layout(job.Spacing)
	assert.Equal(t, 6, layout.Pieces(), "every piece placed")
	assert.Equal(t, result.Best.BoardsUsed, layout.BoardsUsed())
}

func TestSolveDeterministicBySeed(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the search twice")
	}
	job := testJob(t, 0.125,
		[]string{"96x5.5:A", "96x5.5:B"},
		[]string{"2@57x4:Apron", "4@20x1.5:Slat", "2@30x2:Rail"})

	opts := DefaultOptions()
	opts.Attempts = 40
	opts.Seed = 99

	first, err := Solve(context.Background(), job, opts)
	require.NoError(t, err)
	second, err := Solve(context.Background(), job, opts)
	require.NoError(t, err)

	require.Equal(t, len(first.Ranked), len(second.Ranked))
	for i := range first.Ranked {
		assert.Equal(t, first.Ranked[i].Score, second.Ranked[i].Score)
		assert.Equal(t, first.Ranked[i].Attempt, second.Ranked[i].Attempt)
	}
}

func TestSolveNoSolution(t *testing.T) {
	// Each 6x6 piece fits alone, but two never share the 10x10 board.
	job := testJob(t, 0, []string{"10x10:A"}, []string{"2@6x6:Block"})

	opts := DefaultOptions()
	opts.Attempts = 10
	opts.Seed = 1

	_, err := Solve(context.Background(), job, opts)
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestSolveValidatesJob(t *testing.T) {
	opts := DefaultOptions()
	opts.Attempts = 1

	_, err := Solve(context.Background(), &types.Job{}, opts)
	assert.ErrorIs(t, err, types.ErrNoBoards)
}

func TestSolveCanceledContext(t *testing.T) {
	job := testJob(t, 0, []string{"96x5.5:A"}, []string{"2@40x5:Shelf"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := DefaultOptions()
	opts.Attempts = 100
	opts.Seed = 1

	_, err := Solve(ctx, job, opts)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolveUsesFewestBoards(t *testing.T) {
	// Everything fits on one board; ranking must prefer single-board
	// layouts even when a two-board spread scores well.
	job := testJob(t, 0,
		[]string{"100x5:A", "100x5:B"},
		[]string{"2@40x5:Shelf"})

	opts := DefaultOptions()
	opts.Attempts = 60
	opts.Seed = 3

	result, err := Solve(context.Background(), job, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Best.BoardsUsed)
}

func TestExpandCutlist(t *testing.T) {
	cuts := []types.Cut{
		{Count: 3, Length: 10, Width: 2, Name: "a"},
		{Count: 1, Length: 5, Width: 1, Name: "b"},
	}
	pieces := expandCutlist(cuts)
	require.Len(t, pieces, 4)
	for _, p := range pieces {
		assert.Equal(t, 1, p.Count)
	}
	assert.Equal(t, "a", pieces[2].Name)
	assert.Equal(t, "b", pieces[3].Name)
}
