package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZobristEnpassantOnlyFilledOnRank3AndRank6(t *testing.T) {
	for sq := SquareA3; sq <= SquareA3+7; sq++ {
		assert.NotZero(t, zobristEnpassant[sq], "rank-3 square %d should have an enpassant key", sq)
	}
	for sq := SquareA6; sq <= SquareA6+7; sq++ {
		assert.NotZero(t, zobristEnpassant[sq], "rank-6 square %d should have an enpassant key", sq)
	}
	// Rank 1 squares are never en-passant targets and must stay zero.
	for sq := SquareA1; sq <= SquareA1+7; sq++ {
		assert.Zero(t, zobristEnpassant[sq], "rank-1 square %d must not have an enpassant key", sq)
	}
}

func TestZobristCastleEntriesAreDistinct(t *testing.T) {
	seen := make(map[uint64]bool)
	for i := Castle(0); i < CastleArraySize; i++ {
		k := zobristCastle[i]
		assert.False(t, seen[k], "castle key collision at index %d", i)
		seen[k] = true
	}
	// NoCastle (index 0) still draws a random key from the seeded stream;
	// Position folds the key for the current rights, NoCastle included,
	// into every hash alike, so the value itself need not be zero.
	assert.NotZero(t, zobristCastle[0])
}

func TestZobristColorIsNonZero(t *testing.T) {
	assert.NotZero(t, zobristColor)
}

func TestZobristPieceKeysAreDistinctAcrossSquares(t *testing.T) {
	pi := ColorFigure(White, Queen)
	seen := make(map[uint64]bool)
	for sq := 0; sq < 64; sq++ {
		k := zobristPiece[pi][sq]
		assert.False(t, seen[k], "piece/square key collision at square %d", sq)
		seen[k] = true
	}
}

func TestZobristPieceKeysAreDistinctAcrossPieces(t *testing.T) {
	sq := 27
	a := zobristPiece[ColorFigure(White, Pawn)][sq]
	b := zobristPiece[ColorFigure(Black, Pawn)][sq]
	c := zobristPiece[ColorFigure(White, Knight)][sq]
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, b, c)
}

func TestPositionZobristChangesAfterMakeMove(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("FENStartPos should always parse: %v", err)
	}
	before := pos.Zobrist

	e2, _ := SquareFromString("e2")
	e4, _ := SquareFromString("e4")
	m := Move{
		From:           e2,
		To:             e4,
		Target:         ColorFigure(White, Pawn),
		MoveType:       Normal,
		SavedEnpassant: pos.EnpassantSquare,
		SavedCastle:    pos.CastlingAbility,
		SavedHalfmove:  int16(pos.HalfmoveClock),
	}

	pos.DoMove(m)
	after := pos.Zobrist
	assert.NotEqual(t, before, after)

	pos.UndoMove(m)
	assert.Equal(t, before, pos.Zobrist)
}
