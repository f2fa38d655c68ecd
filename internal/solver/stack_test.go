package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/sawmill/pkg/types"
)

func piece(length, width float64, name string) types.Cut {
	return types.Cut{Count: 1, Length: length, Width: width, Name: name}
}

func TestCrosscutStackEmpty(t *testing.T) {
	s := newCrosscutStack(0.125, 30)

	assert.Zero(t, s.Length())
	assert.Zero(t, s.Width())
	assert.Zero(t, s.Pieces())
	assert.Equal(t, 1.0, s.Score(), "empty strip is neutral")
}

func TestCrosscutStackAccept(t *testing.T) {
	s := newCrosscutStack(0.125, 30)

	require.True(t, s.Accept(piece(12, 4, "a")))
	assert.Equal(t, 12.0, s.Length())
	assert.Equal(t, 4.0, s.Width())
	assert.InDelta(t, 48.0, s.UsedArea(), types.Epsilon)
	assert.InDelta(t, 1.0, s.Score(), types.Epsilon, "single piece fills its own bounding box")

	// Second piece adds one kerf between the two.
	require.True(t, s.Accept(piece(10, 3, "b")))
	assert.InDelta(t, 22.125, s.Length(), types.Epsilon)
	assert.Equal(t, 4.0, s.Width(), "width stays at the widest piece")
	assert.InDelta(t, 78.0, s.UsedArea(), types.Epsilon)
	assert.InDelta(t, 78.0/88.5, s.Score(), types.Epsilon)

	assert.False(t, s.Accept(piece(10, 5, "wide")), "wider than the strip")
	assert.False(t, s.Accept(piece(8, 4, "long")), "would overflow the length budget")
	assert.Equal(t, 2, s.Pieces())
}

func TestCrosscutStackFirstPieceSetsWidth(t *testing.T) {
	s := newCrosscutStack(0, 10)

	require.True(t, s.Accept(piece(5, 2, "narrow")))
	assert.False(t, s.Accept(piece(4, 3, "wider")))
	require.True(t, s.Accept(piece(4, 1.5, "narrower")))
	assert.Equal(t, 2.0, s.Width())
}

func TestRipStackDimensions(t *testing.T) {
	r := newRipStack(0.125, 5.5, false)

	require.True(t, r.addStrip(piece(20, 2, "a")))
	assert.Equal(t, 20.0, r.Length())
	assert.Equal(t, 2.0, r.Width())

	// A longer piece grows the segment and relaxes earlier strip budgets.
	require.True(t, r.addStrip(piece(25, 2, "b")))
	assert.Equal(t, 25.0, r.Length())
	assert.InDelta(t, 4.125, r.Width(), types.Epsilon)
	assert.InDelta(t, 25*4.125, r.Area(), types.Epsilon)
	assert.Equal(t, 2, r.Pieces())
}

func TestRipStackAcceptUsesTailSpace(t *testing.T) {
	r := newRipStack(0.125, 5.5, false)
	require.True(t, r.addStrip(piece(20, 2, "a")))
	require.True(t, r.addStrip(piece(25, 2, "b")))

	// Fits behind the 20-long strip: 20 + 0.125 + 4 <= 25.
	require.True(t, r.Accept(piece(4, 2, "tail")))
	assert.Equal(t, 3, r.Pieces())
	assert.Equal(t, 25.0, r.Length(), "segment does not grow")
	require.Len(t, r.Strips(), 2)
	assert.Equal(t, 2, r.Strips()[0].Pieces())

	// Nothing left: too long for either tail, too wide for a new strip.
	assert.False(t, r.Accept(piece(10, 1.5, "nofit")))
}

func TestRipStackAcceptOpensStripWithinSegment(t *testing.T) {
	r := newRipStack(0, 8, false)
	require.True(t, r.addStrip(piece(20, 2, "a")))

	require.True(t, r.Accept(piece(15, 3, "strip")))
	require.Len(t, r.Strips(), 2)
	assert.Equal(t, 20.0, r.Length())
	assert.Equal(t, 5.0, r.Width())

	assert.False(t, r.Accept(piece(25, 1, "toolong")), "piece longer than the segment")
}

func TestRipStackGrowth(t *testing.T) {
	r := newRipStack(0, 5.5, false)
	require.True(t, r.addStrip(piece(20, 2, "a")))

	assert.Equal(t, 0.0, r.growth(piece(10, 2, "short")))
	assert.Equal(t, 5.0, r.growth(piece(25, 2, "long")))
}

func TestRipStackSecondaryFlag(t *testing.T) {
	assert.False(t, newRipStack(0, 5, false).Secondary())
	assert.True(t, newRipStack(0, 5, true).Secondary())
}
