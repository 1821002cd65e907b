package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeWinningCapture(t *testing.T) {
	// White rook takes an undefended black knight.
	pos, err := PositionFromFEN("4k3/8/8/3n4/8/8/8/3RK3 w - - 0 1")
	require.NoError(t, err)
	m := findMove(t, pos, "d1d5")
	assert.Greater(t, See(pos, m), int32(0))
	assert.False(t, SeeSign(pos, m))
}

func TestSeeLosingCapture(t *testing.T) {
	// White queen takes a pawn defended by a knight: loses the exchange.
	pos, err := PositionFromFEN("4k3/8/8/3p4/1n6/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)
	m := findMove(t, pos, "d1d5")
	assert.Less(t, See(pos, m), int32(0))
	assert.True(t, SeeSign(pos, m))
}

func TestSeeUndefendedPawnCapture(t *testing.T) {
	// Pawn takes an undefended pawn: the full pawn value, no recapture.
	pos, err := PositionFromFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	m := findMove(t, pos, "e4d5")
	assert.Equal(t, int32(100), See(pos, m))
}

func TestSeeEqualPawnTradeNetsZero(t *testing.T) {
	// Pawn takes pawn, recaptured by pawn: a dead-even trade nets to zero.
	pos, err := PositionFromFEN("4k3/8/2p5/3p4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	m := findMove(t, pos, "e4d5")
	assert.Equal(t, int32(0), See(pos, m))
}
