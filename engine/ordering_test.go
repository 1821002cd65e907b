package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderMovesPutsHashMoveFirst(t *testing.T) {
	pos := StartPosition()
	moves := pos.LegalMoves(All)
	require.True(t, len(moves) > 1)

	ttMove := moves[len(moves)-1]
	ss := NewSearchStack(DefaultConfig())
	OrderMoves(pos, moves, ttMove, ss, 0, Move{})
	assert.Equal(t, ttMove, moves[0])
}

func TestOrderMovesKillerBeforeOtherQuiets(t *testing.T) {
	// The start position has no captures, so with no hash move the only
	// thing that can outrank a plain quiet is a recorded killer.
	pos := StartPosition()
	moves := pos.LegalMoves(All)
	require.True(t, len(moves) > 1)

	killer := moves[len(moves)/2]
	ss := NewSearchStack(DefaultConfig())
	ss.AddKiller(0, killer)

	OrderMoves(pos, moves, Move{}, ss, 0, Move{})
	assert.Equal(t, killer, moves[0])
}

func TestOrderMovesHistoryBreaksQuietTie(t *testing.T) {
	pos := StartPosition()
	moves := pos.LegalMoves(All)
	require.True(t, len(moves) > 1)

	favored := moves[len(moves)-1]
	ss := NewSearchStack(DefaultConfig())
	ss.history.add(White, favored, 8)

	OrderMoves(pos, moves, Move{}, ss, 0, Move{})
	assert.Equal(t, favored, moves[0])
}

func TestScoreCaptureRanksGoodAboveBadCapture(t *testing.T) {
	good, err := PositionFromFEN("4k3/8/8/3n4/8/8/8/3RK3 w - - 0 1")
	require.NoError(t, err)
	goodCapture := findMove(t, good, "d1d5")

	bad, err := PositionFromFEN("4k3/8/8/3p4/1n6/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)
	badCapture := findMove(t, bad, "d1d5")

	assert.Greater(t, scoreCapture(good, goodCapture), scoreCapture(bad, badCapture))
	assert.False(t, SeeSign(good, goodCapture))
	assert.True(t, SeeSign(bad, badCapture))
}

func TestAddKillerDemotesPreviousTopKiller(t *testing.T) {
	ss := NewSearchStack(DefaultConfig())
	m1 := Move{From: SquareFromStringMust(t, "e2"), To: SquareFromStringMust(t, "e4")}
	m2 := Move{From: SquareFromStringMust(t, "d2"), To: SquareFromStringMust(t, "d4")}

	ss.AddKiller(3, m1)
	ss.AddKiller(3, m2)

	assert.Equal(t, m2, ss.At(3).Killers[0])
	assert.Equal(t, m1, ss.At(3).Killers[1])
	assert.True(t, ss.IsKiller(3, m1))
	assert.True(t, ss.IsKiller(3, m2))

	// Re-recording the current top killer is a no-op.
	ss.AddKiller(3, m2)
	assert.Equal(t, m2, ss.At(3).Killers[0])
	assert.Equal(t, m1, ss.At(3).Killers[1])
}

func TestCounterTableRoundTrip(t *testing.T) {
	ss := NewSearchStack(DefaultConfig())
	prev := Move{To: SquareFromStringMust(t, "e4"), Target: ColorFigure(White, Pawn)}
	reply := Move{From: SquareFromStringMust(t, "g8"), To: SquareFromStringMust(t, "f6")}

	ss.counter.set(prev, reply)
	assert.Equal(t, reply, ss.counter.get(prev))

	// The zero move is a sentinel for "no previous move" and must never
	// be stored or matched.
	ss.counter.set(Move{}, reply)
	assert.Equal(t, Move{}, ss.counter.get(Move{}))
}
