// Package solver searches for cutting layouts that place every cutlist piece
// on the stock boards. The layout hierarchy has three levels sharing the
// Stack interface: a Board holds RipStacks end to end along its length
// (primary crosscuts between them), a RipStack holds CrosscutStacks side by
// side across the board width (rip cuts between them), and a CrosscutStack
// holds pieces end to end along the length axis (secondary crosscuts
// between them).
package solver

import (
	"github.com/mesh-intelligence/sawmill/pkg/types"
)

// Stack is the shared capability of every level of the cut hierarchy:
// dimensions, packing quality, and piece placement.
type Stack interface {
	// Length is the extent along the board length axis.
	Length() float64
	// Width is the extent across the board width axis.
	Width() float64
	// Area is the bounding area this level claims from its parent.
	Area() float64
	// UsedArea is the summed area of the pieces inside.
	UsedArea() float64
	// Pieces is the number of pieces inside.
	Pieces() int
	// Score rates packing quality in [0,1]; an empty level scores 1.
	Score() float64
	// Accept places the piece within the existing budget, returning false
	// when there is no room. Accept never grows the level beyond the
	// budget fixed at creation.
	Accept(c types.Cut) bool
}

// eq reports whether two dimensions are equal within tolerance.
func eq(a, b float64) bool {
	d := a - b
	return d < types.Epsilon && d > -types.Epsilon
}

// fitsWithin reports whether a occupies no more than budget, within tolerance.
func fitsWithin(a, budget float64) bool {
	return a <= budget+types.Epsilon
}

// densityScore rates how much of a bounding area the pieces actually use.
// Zero-area levels score 1 so they stay neutral under the product.
func densityScore(used, bounding float64) float64 {
	if bounding <= 0 {
		return 1
	}
	d := used / bounding
	if d < 0 {
		return 0
	}
	if d > 1 {
		return 1
	}
	return d
}
