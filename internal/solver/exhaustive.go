package solver

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/sawmill/pkg/types"
)

// solveExhaustive tries every distinct ordering of the pieces. Identical
// pieces make many orderings equivalent, so iteration runs over the
// multiset: a sorted start plus lexicographic next-permutation visits each
// distinct ordering exactly once.
func solveExhaustive(ctx context.Context, job *types.Job, pieces []types.Cut, opts Options) (*ranker, Stats, error) {
	count := countDistinctOrderings(pieces)
	if count.Cmp(big.NewInt(opts.ExhaustiveLimit)) > 0 {
		return nil, Stats{}, fmt.Errorf("%w: %s distinct orderings (limit %d); use random attempts instead",
			ErrSearchSpaceTooLarge, count.String(), opts.ExhaustiveLimit)
	}
	opts.Logger.Debug("exhaustive search", zap.String("orderings", count.String()))

	order := make([]types.Cut, len(pieces))
	copy(order, pieces)
	sort.Slice(order, func(i, j int) bool { return cutBefore(order[i], order[j]) })

	rk := newRanker(opts.TopN)
	stats := Stats{Permutations: count}
	for {
		if stats.Attempts%1024 == 0 {
			select {
			case <-ctx.Done():
				return nil, Stats{}, ctx.Err()
			default:
			}
		}

		if sol := packAttempt(job, order, opts, stats.Attempts); sol != nil {
			stats.Viable++
			rk.offer(sol)
		}
		stats.Attempts++

		if !nextPermutation(order) {
			break
		}
	}
	return rk, stats, nil
}

// SearchSpace returns the number of distinct cutlist orderings exhaustive
// mode would try for the job, counts expanded.
func SearchSpace(job *types.Job) *big.Int {
	return countDistinctOrderings(expandCutlist(job.Cutlist))
}

// cutBefore is the ordering the permutation walk runs over.
func cutBefore(a, b types.Cut) bool {
	if a.Length != b.Length {
		return a.Length < b.Length
	}
	if a.Width != b.Width {
		return a.Width < b.Width
	}
	return a.Name < b.Name
}

func cutEqual(a, b types.Cut) bool {
	return a.Length == b.Length && a.Width == b.Width && a.Name == b.Name
}

// nextPermutation rearranges order into the lexicographically next
// permutation, returning false when order was already the last one.
// Duplicate pieces collapse automatically: equal elements never swap, so
// each distinct ordering appears once.
func nextPermutation(order []types.Cut) bool {
	i := len(order) - 2
	for i >= 0 && !cutBefore(order[i], order[i+1]) {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(order) - 1
	for !cutBefore(order[i], order[j]) {
		j--
	}
	order[i], order[j] = order[j], order[i]
	for l, r := i+1, len(order)-1; l < r; l, r = l+1, r-1 {
		order[l], order[r] = order[r], order[l]
	}
	return true
}

// countDistinctOrderings returns n! divided by the factorial of each
// duplicate group size.
func countDistinctOrderings(pieces []types.Cut) *big.Int {
	sorted := make([]types.Cut, len(pieces))
	copy(sorted, pieces)
	sort.Slice(sorted, func(i, j int) bool { return cutBefore(sorted[i], sorted[j]) })

	count := new(big.Int).MulRange(1, int64(len(sorted)))

	run := 1
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && cutEqual(sorted[i], sorted[i-1]) {
			run++
			continue
		}
		if run > 1 {
			count.Div(count, new(big.Int).MulRange(1, int64(run)))
		}
		run = 1
	}
	return count
}
