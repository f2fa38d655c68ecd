package solver

import (
	"github.com/mesh-intelligence/sawmill/pkg/types"
)

// cleanupPass tries to place leftover pieces after first-fit placement.
// Each orphan is first offered to the space already allocated on every
// board: tail room behind a shorter strip, or a fresh strip inside an
// existing segment. Pieces that still have no home and are small relative
// to a board get a new segment flagged secondary at the end of that
// board's allocation. Returns the pieces that remain unplaced.
func cleanupPass(boards []*Board, orphans []types.Cut, smallRatio float64) []types.Cut {
	var remaining []types.Cut
	for _, c := range orphans {
		if placeWithin(boards, c) {
			continue
		}
		if placeSecondary(boards, c, smallRatio) {
			continue
		}
		remaining = append(remaining, c)
	}
	return remaining
}

func placeWithin(boards []*Board, c types.Cut) bool {
	for _, b := range boards {
		if b.acceptWithin(c) {
			return true
		}
	}
	return false
}

// placeSecondary opens a secondary segment on the first board that takes
// the piece in a small orientation: placed length at most smallRatio of the
// board length. Long pieces never get secondary segments; they either fit
// the primary allocation or the attempt fails.
func placeSecondary(boards []*Board, c types.Cut, smallRatio float64) bool {
	for _, b := range boards {
		if b.acceptSecondary(c, smallRatio) {
			return true
		}
	}
	return false
}
