package solver

import (
	"github.com/mesh-intelligence/sawmill/pkg/types"
)

// Compile-time interface check.
var _ Stack = (*RipStack)(nil)

// RipStack is a board segment: strips stacked across the width axis,
// separated by rip cuts. The segment length is the span between the
// primary crosscuts bounding it; strips never extend past it. Width is
// capped by the board width fixed at creation.
type RipStack struct {
	strips    []*CrosscutStack
	spacing   float64
	maxWidth  float64
	segLength float64
	secondary bool
}

// newRipStack creates an empty segment capped at the board width. The
// segment length starts at zero and grows only through addStrip.
func newRipStack(spacing, maxWidth float64, secondary bool) *RipStack {
	return &RipStack{spacing: spacing, maxWidth: maxWidth, secondary: secondary}
}

// Length returns the segment length along the board.
func (r *RipStack) Length() float64 {
	return r.segLength
}

// Width returns the used width: strip widths plus one kerf between each
// adjacent pair.
func (r *RipStack) Width() float64 {
	if len(r.strips) == 0 {
		return 0
	}
	total := r.spacing * float64(len(r.strips)-1)
	for _, s := range r.strips {
		total += s.Width()
	}
	return total
}

// Area returns the segment's bounding area.
func (r *RipStack) Area() float64 {
	return r.segLength * r.Width()
}

// UsedArea returns the summed piece area across all strips.
func (r *RipStack) UsedArea() float64 {
	total := 0.0
	for _, s := range r.strips {
		total += s.UsedArea()
	}
	return total
}

// Pieces returns the number of pieces across all strips.
func (r *RipStack) Pieces() int {
	total := 0
	for _, s := range r.strips {
		total += s.Pieces()
	}
	return total
}

// Score rates how densely the pieces fill the segment's bounding box.
func (r *RipStack) Score() float64 {
	return densityScore(r.UsedArea(), r.Area())
}

// Secondary reports whether the segment was opened by the cleanup pass.
func (r *RipStack) Secondary() bool {
	return r.secondary
}

// Strips returns the strips in placement order.
func (r *RipStack) Strips() []*CrosscutStack {
	return r.strips
}

// Accept places the piece inside the current segment without growing it:
// first in the tail space of an existing strip, then as a new strip when
// width remains. The segment length and board allocation are unchanged,
// so cleanup placement never needs board-level validation.
func (r *RipStack) Accept(c types.Cut) bool {
	for _, s := range r.strips {
		if s.Accept(c) {
			return true
		}
	}
	if !r.fitsNewStrip(c) || !fitsWithin(c.Length, r.segLength) {
		return false
	}
	s := newCrosscutStack(r.spacing, r.segLength)
	if !s.Accept(c) {
		return false
	}
	r.strips = append(r.strips, s)
	return true
}

// fitsNewStrip reports whether a strip of the piece's width still fits
// across the segment.
func (r *RipStack) fitsNewStrip(c types.Cut) bool {
	grown := r.Width() + c.Width
	if len(r.strips) > 0 {
		grown += r.spacing
	}
	return fitsWithin(grown, r.maxWidth)
}

// growth returns how much the segment would lengthen to host the piece.
func (r *RipStack) growth(c types.Cut) float64 {
	if c.Length > r.segLength {
		return c.Length - r.segLength
	}
	return 0
}

// addStrip opens a new single-piece strip for the piece, growing the
// segment when the piece is longer than it. The caller validates that the
// growth fits the board; addStrip only re-checks the width.
func (r *RipStack) addStrip(c types.Cut) bool {
	if !r.fitsNewStrip(c) {
		return false
	}
	if c.Length > r.segLength {
		r.segLength = c.Length
		for _, s := range r.strips {
			s.maxLength = r.segLength
		}
	}
	s := newCrosscutStack(r.spacing, r.segLength)
	if !s.Accept(c) {
		return false
	}
	r.strips = append(r.strips, s)
	return true
}
