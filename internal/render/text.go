// Package render draws cutting layouts as plain text or SVG. Both renderers
// consume the serializable Layout geometry, so archived plans render the
// same as fresh solves.
package render

import (
	"fmt"
	"io"

	"github.com/mesh-intelligence/sawmill/pkg/types"
)

// WriteText writes a human-readable rendering of the layout: one block per
// board with its rips, strips, and pieces, then totals.
func WriteText(w io.Writer, l types.Layout) {
	for _, b := range l.Boards {
		fmt.Fprintf(w, "board %s %gx%g (score %.2f)\n", b.Board.ID, b.Board.Length, b.Board.Width, b.Score)
		if len(b.Rips) == 0 {
			fmt.Fprintln(w, "  (empty)")
			continue
		}
		for _, r := range b.Rips {
			mark := ""
			if r.Secondary {
				mark = " secondary"
			}
			fmt.Fprintf(w, "  rip @%.2f  %.2fx%.2f%s\n", r.Offset, r.Length, r.Width, mark)
			for _, s := range r.Strips {
				fmt.Fprintf(w, "    strip @%.2f  %.2fx%.2f\n", s.Offset, s.Length, s.Width)
				for _, c := range s.Cuts {
					fmt.Fprintf(w, "      @%.2f  %gx%g  %s\n", c.Offset, c.Cut.Length, c.Cut.Width, c.Cut.Name)
				}
			}
		}
	}
	fmt.Fprintf(w, "boards used: %d\n", l.BoardsUsed())
	fmt.Fprintf(w, "solution score: %.4f\n", l.Score)
}
