package solver

import (
	"github.com/mesh-intelligence/sawmill/pkg/types"
)

// Compile-time interface check.
var _ Stack = (*CrosscutStack)(nil)

// CrosscutStack is a strip: pieces laid end to end along the length axis,
// separated by secondary crosscuts. Its width is set by its widest piece;
// its length may grow up to the budget fixed at creation.
type CrosscutStack struct {
	cuts      []types.Cut
	spacing   float64
	maxLength float64
}

// newCrosscutStack creates an empty strip bounded by maxLength.
func newCrosscutStack(spacing, maxLength float64) *CrosscutStack {
	return &CrosscutStack{spacing: spacing, maxLength: maxLength}
}

// Length returns the used strip length: piece lengths plus one kerf between
// each adjacent pair.
func (s *CrosscutStack) Length() float64 {
	if len(s.cuts) == 0 {
		return 0
	}
	total := s.spacing * float64(len(s.cuts)-1)
	for _, c := range s.cuts {
		total += c.Length
	}
	return total
}

// Width returns the widest piece in the strip.
func (s *CrosscutStack) Width() float64 {
	w := 0.0
	for _, c := range s.cuts {
		if c.Width > w {
			w = c.Width
		}
	}
	return w
}

// Area returns the strip's bounding area.
func (s *CrosscutStack) Area() float64 {
	return s.Length() * s.Width()
}

// UsedArea returns the summed piece area.
func (s *CrosscutStack) UsedArea() float64 {
	total := 0.0
	for _, c := range s.cuts {
		total += c.Area()
	}
	return total
}

// Pieces returns the number of pieces in the strip.
func (s *CrosscutStack) Pieces() int {
	return len(s.cuts)
}

// Score rates how densely the pieces fill the strip's bounding box.
func (s *CrosscutStack) Score() float64 {
	return densityScore(s.UsedArea(), s.Area())
}

// Accept appends the piece to the strip when the grown length stays within
// the budget and the piece is no wider than the strip. The first piece sets
// the strip width.
func (s *CrosscutStack) Accept(c types.Cut) bool {
	grown := s.Length() + c.Length
	if len(s.cuts) > 0 {
		grown += s.spacing
	}
	if !fitsWithin(grown, s.maxLength) {
		return false
	}
	if len(s.cuts) > 0 && !fitsWithin(c.Width, s.Width()) {
		return false
	}
	s.cuts = append(s.cuts, c)
	return true
}

// Cuts returns the placed pieces in placement order.
func (s *CrosscutStack) Cuts() []types.Cut {
	return s.cuts
}
