package solver

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/sawmill/pkg/types"
)

// Solve errors.
var (
	ErrInfeasible          = errors.New("cutlist cannot fit the stock")
	ErrCutTooLarge         = errors.New("cut is larger than every board")
	ErrSearchSpaceTooLarge = errors.New("exhaustive search space too large")
	ErrNoSolution          = errors.New("no viable layout found")
)

// Options control the search. Zero values fall back to the defaults
// documented per field; start from DefaultOptions when in doubt.
type Options struct {
	// Attempts is the number of random restarts. Zero switches to
	// exhaustive mode, which tries every distinct cutlist ordering.
	Attempts int

	// TopN bounds the ranked result list (default 10).
	TopN int

	// Seed drives the shuffle; zero derives a seed from the clock. The
	// effective seed is recorded in Stats for reproducing a solve.
	Seed int64

	// Workers caps parallel attempts (default NumCPU).
	Workers int

	// Cleanup enables the second pass that packs leftover pieces into
	// tail space and secondary segments.
	Cleanup bool

	// SmallPieceRatio classifies a leftover piece as small when its
	// length is at most this fraction of a board's length (default 0.5).
	SmallPieceRatio float64

	// ExhaustiveLimit fails exhaustive mode fast when the number of
	// distinct orderings exceeds it (default 10,000,000).
	ExhaustiveLimit int64

	// Logger receives search progress at Debug level; nil means silent.
	Logger *zap.Logger
}

// DefaultOptions returns the options the CLI starts from.
func DefaultOptions() Options {
	return Options{
		Attempts:        100,
		TopN:            10,
		Cleanup:         true,
		SmallPieceRatio: 0.5,
		ExhaustiveLimit: 10_000_000,
	}
}

// normalized fills zero-valued fields with their defaults. Attempts and
// Cleanup keep their zero meanings (exhaustive mode, cleanup off).
func (o Options) normalized() Options {
	if o.TopN <= 0 {
		o.TopN = 10
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.SmallPieceRatio <= 0 {
		o.SmallPieceRatio = 0.5
	}
	if o.ExhaustiveLimit <= 0 {
		o.ExhaustiveLimit = 10_000_000
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Solution is one viable layout: every piece placed.
type Solution struct {
	Boards     []*Board
	Score      float64
	BoardsUsed int
	Attempt    int
}

// Stats reports what the search did.
type Stats struct {
	Attempts     int           // Orderings tried.
	Viable       int           // Orderings that placed every piece.
	Permutations *big.Int      // Distinct orderings (exhaustive mode only).
	Seed         int64         // Effective seed.
	Elapsed      time.Duration // Wall time of the search.
}

// Result is the outcome of a successful solve. Ranked holds the TopN
// lowest-board-count solutions ordered by score descending; Best is
// Ranked[0].
type Result struct {
	Best   *Solution
	Ranked []*Solution
	Stats  Stats
}

// CheckJob verifies the job can possibly be solved: the demanded area must
// not exceed the stock area, and every piece must fit at least one board
// in some allowed orientation.
func CheckJob(job *types.Job) error {
	cutArea := job.CutArea()
	boardArea := job.BoardArea()
	if cutArea > boardArea+types.Epsilon {
		return fmt.Errorf("%w: cutlist needs %.2f but stock offers %.2f",
			ErrInfeasible, cutArea, boardArea)
	}

	for _, c := range job.Cutlist {
		if !fitsAnyBoard(c, job) {
			return fmt.Errorf("%w: %s", ErrCutTooLarge, c.String())
		}
	}
	return nil
}

func fitsAnyBoard(c types.Cut, job *types.Job) bool {
	for _, b := range job.Boards {
		if fitsWithin(c.Length, b.Length) && fitsWithin(c.Width, b.Width) {
			return true
		}
		if job.AllowRotation && fitsWithin(c.Width, b.Length) && fitsWithin(c.Length, b.Width) {
			return true
		}
	}
	return false
}

// Solve searches for layouts that place every cutlist piece. With
// Attempts > 0 it shuffles the cutlist per attempt and first-fits, running
// attempts in parallel; with Attempts == 0 it tries every distinct
// ordering. Returns ErrNoSolution when no ordering was viable.
func Solve(ctx context.Context, job *types.Job, opts Options) (*Result, error) {
	opts = opts.normalized()

	if err := job.Validate(); err != nil {
		return nil, err
	}
	if err := CheckJob(job); err != nil {
		return nil, err
	}

	start := time.Now()
	pieces := expandCutlist(job.Cutlist)

	var (
		rk    *ranker
		stats Stats
		err   error
	)
	if opts.Attempts > 0 {
		rk, stats, err = solveRandom(ctx, job, pieces, opts)
	} else {
		rk, stats, err = solveExhaustive(ctx, job, pieces, opts)
	}
	if err != nil {
		return nil, err
	}

	stats.Seed = opts.Seed
	stats.Elapsed = time.Since(start)

	ranked := rk.finish()
	if len(ranked) == 0 {
		return nil, fmt.Errorf("%w after %d orderings", ErrNoSolution, stats.Attempts)
	}

	opts.Logger.Info("search complete",
		zap.Int("attempts", stats.Attempts),
		zap.Int("viable", stats.Viable),
		zap.Int("boards_used", ranked[0].BoardsUsed),
		zap.Float64("score", ranked[0].Score),
		zap.Duration("elapsed", stats.Elapsed))

	return &Result{Best: ranked[0], Ranked: ranked, Stats: stats}, nil
}

// solveRandom runs shuffled first-fit attempts in parallel. Each attempt
// seeds its own generator from the base seed plus the attempt index, and
// writes into its own slot, so results are independent of scheduling.
func solveRandom(ctx context.Context, job *types.Job, pieces []types.Cut, opts Options) (*ranker, Stats, error) {
	slots := make([]*Solution, opts.Attempts)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for k := 0; k < opts.Attempts; k++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(opts.Seed + int64(k)))
			order := shuffled(pieces, rng)
			sol := packAttempt(job, order, opts, k)
			slots[k] = sol
			if sol != nil {
				opts.Logger.Debug("viable attempt",
					zap.Int("attempt", k),
					zap.Int("boards_used", sol.BoardsUsed),
					zap.Float64("score", sol.Score))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	rk := newRanker(opts.TopN)
	stats := Stats{Attempts: opts.Attempts}
	for _, sol := range slots {
		if sol == nil {
			continue
		}
		stats.Viable++
		rk.offer(sol)
	}
	return rk, stats, nil
}

// packAttempt first-fits one ordering onto fresh boards, then runs the
// cleanup pass on anything left over. Returns nil unless every piece was
// placed.
func packAttempt(job *types.Job, order []types.Cut, opts Options, attempt int) *Solution {
	boards := make([]*Board, len(job.Boards))
	for i, stock := range job.Boards {
		boards[i] = newBoard(stock, job.Spacing, job.AllowRotation)
	}

	var orphans []types.Cut
	for _, c := range order {
		if !placeFirstFit(boards, c) {
			orphans = append(orphans, c)
		}
	}

	if len(orphans) > 0 && opts.Cleanup {
		orphans = cleanupPass(boards, orphans, opts.SmallPieceRatio)
	}
	if len(orphans) > 0 {
		return nil
	}

	score := 1.0
	used := 0
	for _, b := range boards {
		score *= b.Score()
		if b.Pieces() > 0 {
			used++
		}
	}
	return &Solution{Boards: boards, Score: score, BoardsUsed: used, Attempt: attempt}
}

func placeFirstFit(boards []*Board, c types.Cut) bool {
	for _, b := range boards {
		if b.Accept(c) {
			return true
		}
	}
	return false
}

// expandCutlist flattens counts into individual pieces.
func expandCutlist(cuts []types.Cut) []types.Cut {
	var pieces []types.Cut
	for _, c := range cuts {
		unit := c
		unit.Count = 1
		for i := 0; i < c.Count; i++ {
			pieces = append(pieces, unit)
		}
	}
	return pieces
}

// shuffled returns a shuffled copy, leaving the input untouched.
func shuffled(pieces []types.Cut, rng *rand.Rand) []types.Cut {
	order := make([]types.Cut, len(pieces))
	copy(order, pieces)
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

// Layout exports the solution as the serializable geometry consumed by
// renderers and the archive.
func (s *Solution) Layout(spacing float64) types.Layout {
	l := types.Layout{Spacing: spacing, Score: s.Score}
	for _, b := range s.Boards {
		l.Boards = append(l.Boards, b.layoutBoard())
	}
	return l
}
