package solver

import (
	"context"
	"math/big"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/sawmill/pkg/types"
)

func TestNextPermutationMultiset(t *testing.T) {
	// Two identical pieces collapse: {a, a, b} has three distinct orderings.
	order := []types.Cut{piece(1, 1, "a"), piece(1, 1, "a"), piece(2, 1, "b")}
	sort.Slice(order, func(i, j int) bool { return cutBefore(order[i], order[j]) })

	seen := map[string]bool{}
	count := 0
	for {
		key := ""
		for _, c := range order {
			key += c.Name
		}
		assert.False(t, seen[key], "ordering %s visited twice", key)
		seen[key] = true
		count++
		if !nextPermutation(order) {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestCountDistinctOrderings(t *testing.T) {
	tests := []struct {
		name   string
		pieces []types.Cut
		want   int64
	}{
		{"empty", nil, 1},
		{"all distinct", []types.Cut{piece(1, 1, "a"), piece(2, 1, "b"), piece(3, 1, "c")}, 6},
		{"one duplicate pair", []types.Cut{piece(1, 1, "a"), piece(1, 1, "a"), piece(2, 1, "b")}, 3},
		{"two duplicate pairs", []types.Cut{
			piece(1, 1, "a"), piece(1, 1, "a"),
			piece(2, 1, "b"), piece(2, 1, "b"),
		}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := countDistinctOrderings(tt.pieces)
			assert.Equal(t, 0, got.Cmp(big.NewInt(tt.want)), "got %s", got)
		})
	}
}

func TestSearchSpaceExpandsCounts(t *testing.T) {
	job := testJob(t, 0, []string{"100x5:A"}, []string{"2@40x5:Shelf", "1@20x5:End"})
	assert.Equal(t, "3", SearchSpace(job).String())
}

func TestSolveExhaustive(t *testing.T) {
	job := testJob(t, 0, []string{"100x5:A"}, []string{"2@40x5:Shelf", "1@20x5:End"})

	opts := DefaultOptions()
	opts.Attempts = 0

	result, err := Solve(context.Background(), job, opts)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.Attempts, "every distinct ordering tried")
	require.NotNil(t, result.Stats.Permutations)
	assert.Equal(t, "3", result.Stats.Permutations.String())
	assert.Equal(t, 3, result.Stats.Viable)
	assert.Equal(t, 1, result.Best.BoardsUsed)
}

func TestSolveExhaustiveLimit(t *testing.T) {
	job := testJob(t, 0, []string{"100x5:A"}, []string{"2@40x5:Shelf", "1@20x5:End"})

	opts := DefaultOptions()
	opts.Attempts = 0
	opts.ExhaustiveLimit = 2

	_, err := Solve(context.Background(), job, opts)
	assert.ErrorIs(t, err, ErrSearchSpaceTooLarge)
}
