// Layout is the serializable geometry of one solution: where every piece
// lands on every board. Offsets are absolute within their axis so renderers
// and the archive need no solver state to reproduce a drawing.
package types

// Layout captures a full cutting layout. Boards appear in job order,
// including boards the solution leaves empty.
type Layout struct {
	Spacing float64       `json:"spacing"`
	Score   float64       `json:"score"`
	Boards  []LayoutBoard `json:"boards"`
}

// LayoutBoard is one stock board with its rip stacks laid end to end along
// the length axis. Primary crosscuts fall between consecutive rips.
type LayoutBoard struct {
	Board Board       `json:"board"`
	Score float64     `json:"score"`
	Rips  []LayoutRip `json:"rips"`
}

// LayoutRip is one board segment with its strips stacked across the width
// axis. Offset is the segment's position along the board length. Secondary
// marks segments opened by the cleanup pass.
type LayoutRip struct {
	Offset    float64       `json:"offset"`
	Length    float64       `json:"length"`
	Width     float64       `json:"width"`
	Secondary bool          `json:"secondary,omitempty"`
	Strips    []LayoutStrip `json:"strips"`
}

// LayoutStrip is one strip with its pieces laid end to end along the length
// axis. Offset is the strip's position across the board width. Secondary
// crosscuts fall between consecutive pieces.
type LayoutStrip struct {
	Offset float64     `json:"offset"`
	Length float64     `json:"length"`
	Width  float64     `json:"width"`
	Cuts   []LayoutCut `json:"cuts"`
}

// LayoutCut is one placed piece. Offset is the piece's position along its
// strip, relative to the rip's own offset.
type LayoutCut struct {
	Offset float64 `json:"offset"`
	Cut    Cut     `json:"cut"`
}

// BoardsUsed returns the number of boards holding at least one piece.
func (l *Layout) BoardsUsed() int {
	used := 0
	for _, b := range l.Boards {
		if len(b.Rips) > 0 {
			used++
		}
	}
	return used
}

// Pieces returns the total number of placed pieces.
func (l *Layout) Pieces() int {
	total := 0
	for _, b := range l.Boards {
		for _, r := range b.Rips {
			for _, s := range r.Strips {
				total += len(s.Cuts)
			}
		}
	}
	return total
}
