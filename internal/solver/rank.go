package solver

import "sort"

// ranker keeps the topN solutions with the fewest boards used, breaking
// ties by attempt index so results are reproducible. Offers must arrive in
// attempt order. finish orders the kept subset by score descending, which
// is the ranking the planner reports: of the layouts that consume the
// least stock, the densest first.
type ranker struct {
	topN int
	sols []*Solution
}

func newRanker(topN int) *ranker {
	return &ranker{topN: topN}
}

// offer inserts the solution when it beats the current tail. The kept
// slice stays ordered by (boards used, attempt) ascending.
func (r *ranker) offer(s *Solution) {
	pos := sort.Search(len(r.sols), func(i int) bool {
		if r.sols[i].BoardsUsed != s.BoardsUsed {
			return r.sols[i].BoardsUsed > s.BoardsUsed
		}
		return r.sols[i].Attempt > s.Attempt
	})
	if pos >= r.topN {
		return
	}
	r.sols = append(r.sols, nil)
	copy(r.sols[pos+1:], r.sols[pos:])
	r.sols[pos] = s
	if len(r.sols) > r.topN {
		r.sols = r.sols[:r.topN]
	}
}

// finish returns the kept subset ordered by score descending; equal scores
// keep attempt order.
func (r *ranker) finish() []*Solution {
	sort.SliceStable(r.sols, func(i, j int) bool {
		return r.sols[i].Score > r.sols[j].Score
	})
	return r.sols
}
