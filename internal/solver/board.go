package solver

import (
	"math"

	"github.com/mesh-intelligence/sawmill/pkg/types"
)

// Compile-time interface check.
var _ Stack = (*Board)(nil)

// Board is the top of the hierarchy: one stock board with rip stacks laid
// end to end along its length, separated by primary crosscuts. Length and
// Width report the stock dimensions; the allocation below them is tracked
// per segment.
type Board struct {
	stock         types.Board
	rips          []*RipStack
	spacing       float64
	allowRotation bool
}

// newBoard wraps a stock board for placement.
func newBoard(stock types.Board, spacing float64, allowRotation bool) *Board {
	return &Board{stock: stock, spacing: spacing, allowRotation: allowRotation}
}

// Length returns the stock board length.
func (b *Board) Length() float64 {
	return b.stock.Length
}

// Width returns the stock board width.
func (b *Board) Width() float64 {
	return b.stock.Width
}

// Area returns the stock board area.
func (b *Board) Area() float64 {
	return b.stock.Area()
}

// UsedArea returns the summed piece area placed on the board.
func (b *Board) UsedArea() float64 {
	total := 0.0
	for _, r := range b.rips {
		total += r.UsedArea()
	}
	return total
}

// Pieces returns the number of pieces placed on the board.
func (b *Board) Pieces() int {
	total := 0
	for _, r := range b.rips {
		total += r.Pieces()
	}
	return total
}

// Stock returns the stock board being cut.
func (b *Board) Stock() types.Board {
	return b.stock
}

// Rips returns the segments in placement order.
func (b *Board) Rips() []*RipStack {
	return b.rips
}

// allocatedLength returns the board length consumed by segments: segment
// lengths plus one primary crosscut kerf between each adjacent pair.
func (b *Board) allocatedLength() float64 {
	if len(b.rips) == 0 {
		return 0
	}
	total := b.spacing * float64(len(b.rips)-1)
	for _, r := range b.rips {
		total += r.Length()
	}
	return total
}

// requiredArea returns the summed bounding area of all segments.
func (b *Board) requiredArea() float64 {
	total := 0.0
	for _, r := range b.rips {
		total += r.Area()
	}
	return total
}

// Score rates the board layout: piece density within the claimed segments,
// weighted by the fraction of the board left as clean uncut scrap. An
// empty board scores 1 so it stays neutral under the solution product.
func (b *Board) Score() float64 {
	required := b.requiredArea()
	if required <= 0 {
		return 1
	}
	scrap := b.Area() - required
	return densityScore(b.UsedArea(), required) * (scrap / b.Area())
}

// Accept runs the primary placement: the piece joins the best-matching
// existing segment, opening its own strip there, or opens a new segment at
// the end of the allocation. Returns false when neither fits. When
// rotation is allowed the piece is retried turned 90 degrees.
func (b *Board) Accept(c types.Cut) bool {
	if b.acceptOriented(c) {
		return true
	}
	if b.allowRotation && !eq(c.Length, c.Width) {
		return b.acceptOriented(c.Rotated())
	}
	return false
}

func (b *Board) acceptOriented(c types.Cut) bool {
	if !fitsWithin(c.Length, b.stock.Length) || !fitsWithin(c.Width, b.stock.Width) {
		return false
	}

	if best := b.bestRipFor(c); best != nil {
		return best.addStrip(c)
	}

	grown := b.allocatedLength() + c.Length
	if len(b.rips) > 0 {
		grown += b.spacing
	}
	if !fitsWithin(grown, b.stock.Length) {
		return false
	}
	r := newRipStack(b.spacing, b.stock.Width, false)
	if !r.addStrip(c) {
		return false
	}
	b.rips = append(b.rips, r)
	return true
}

// bestRipFor picks the primary segment whose length is closest to the
// piece length, among segments with width room for a new strip and whose
// growth keeps the allocation within the board. Returns nil when no
// segment qualifies.
func (b *Board) bestRipFor(c types.Cut) *RipStack {
	var best *RipStack
	bestDelta := math.MaxFloat64
	for _, r := range b.rips {
		if r.secondary {
			continue
		}
		if !r.fitsNewStrip(c) {
			continue
		}
		if !fitsWithin(b.allocatedLength()+r.growth(c), b.stock.Length) {
			continue
		}
		delta := math.Abs(c.Length - r.Length())
		if delta < bestDelta {
			bestDelta = delta
			best = r
		}
	}
	return best
}

// acceptWithin offers the piece to every existing segment without growing
// the allocation: tail space first, then new strips inside a segment.
// When rotation is allowed the rotated piece is tried as well.
func (b *Board) acceptWithin(c types.Cut) bool {
	for _, r := range b.rips {
		if r.Accept(c) {
			return true
		}
	}
	if b.allowRotation && !eq(c.Length, c.Width) {
		rot := c.Rotated()
		for _, r := range b.rips {
			if r.Accept(rot) {
				return true
			}
		}
	}
	return false
}

// acceptSecondary opens a new segment flagged secondary at the end of the
// allocation for a leftover piece. Each orientation must classify as small
// on its own: its length may not exceed smallRatio of the board length.
func (b *Board) acceptSecondary(c types.Cut, smallRatio float64) bool {
	if fitsWithin(c.Length, smallRatio*b.Length()) && b.acceptSecondaryOriented(c) {
		return true
	}
	if b.allowRotation && !eq(c.Length, c.Width) {
		r := c.Rotated()
		return fitsWithin(r.Length, smallRatio*b.Length()) && b.acceptSecondaryOriented(r)
	}
	return false
}

func (b *Board) acceptSecondaryOriented(c types.Cut) bool {
	if !fitsWithin(c.Width, b.stock.Width) {
		return false
	}
	grown := b.allocatedLength() + c.Length
	if len(b.rips) > 0 {
		grown += b.spacing
	}
	if !fitsWithin(grown, b.stock.Length) {
		return false
	}
	r := newRipStack(b.spacing, b.stock.Width, true)
	if !r.addStrip(c) {
		return false
	}
	b.rips = append(b.rips, r)
	return true
}

// layoutBoard exports the board with absolute offsets computed.
func (b *Board) layoutBoard() types.LayoutBoard {
	lb := types.LayoutBoard{
		Board: b.stock,
		Score: b.Score(),
	}
	lengthOffset := 0.0
	for _, r := range b.rips {
		lr := types.LayoutRip{
			Offset:    lengthOffset,
			Length:    r.Length(),
			Width:     r.Width(),
			Secondary: r.secondary,
		}
		widthOffset := 0.0
		for _, s := range r.strips {
			ls := types.LayoutStrip{
				Offset: widthOffset,
				Length: s.Length(),
				Width:  s.Width(),
			}
			cutOffset := 0.0
			for _, c := range s.cuts {
				ls.Cuts = append(ls.Cuts, types.LayoutCut{Offset: cutOffset, Cut: c})
				cutOffset += c.Length + b.spacing
			}
			lr.Strips = append(lr.Strips, ls)
			widthOffset += s.Width() + b.spacing
		}
		lb.Rips = append(lb.Rips, lr)
		lengthOffset += r.Length() + b.spacing
	}
	return lb
}
