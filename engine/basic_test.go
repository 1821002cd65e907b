package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquareFromString(t *testing.T) {
	sq, err := SquareFromString("e4")
	require.NoError(t, err)
	assert.Equal(t, RankFile(3, 4), sq)
	assert.Equal(t, "e4", sq.String())

	_, err = SquareFromString("e9")
	assert.Error(t, err)
	_, err = SquareFromString("z1")
	assert.Error(t, err)
	_, err = SquareFromString("e")
	assert.Error(t, err)
}

func TestSquareRankFile(t *testing.T) {
	sq := RankFile(2, 5)
	assert.Equal(t, 2, sq.Rank())
	assert.Equal(t, 5, sq.File())
}

func TestColorOpposite(t *testing.T) {
	assert.Equal(t, Black, White.Opposite())
	assert.Equal(t, White, Black.Opposite())
}

func TestColorFigurePiece(t *testing.T) {
	pi := ColorFigure(White, Knight)
	assert.Equal(t, White, pi.Color())
	assert.Equal(t, Knight, pi.Figure())
	assert.Equal(t, "N", pi.String())

	pi = ColorFigure(Black, Knight)
	assert.Equal(t, "n", pi.String())
	assert.Equal(t, ".", NoPiece.String())
}

func TestBitboardPopOps(t *testing.T) {
	bb := SquareA1.Bitboard() | SquareA1.Relative(1, 1).Bitboard()
	assert.Equal(t, 2, bb.Popcnt())
	assert.Equal(t, 2, bb.CountMax2())

	sq := bb.Pop()
	assert.Equal(t, SquareA1, sq)
	assert.Equal(t, 1, bb.Popcnt())
	assert.Equal(t, 1, bb.CountMax2())

	bb.Pop()
	assert.Equal(t, 0, bb.Popcnt())
	assert.Equal(t, 0, bb.CountMax2())
}

func TestBitboardHas(t *testing.T) {
	bb := SquareA1.Bitboard()
	assert.True(t, bb.Has(SquareA1))
	assert.False(t, bb.Has(SquareA1.Relative(1, 0)))
}

func TestCastleString(t *testing.T) {
	assert.Equal(t, "-", NoCastle.String())
	c := WhiteOO | BlackOOO
	s := c.String()
	assert.Contains(t, s, "K")
	assert.Contains(t, s, "q")
}

func TestCastlingRook(t *testing.T) {
	piece, rookStart, rookEnd := CastlingRook(RankFile(0, 6)) // g1, white kingside
	assert.Equal(t, ColorFigure(White, Rook), piece)
	assert.Equal(t, RankFile(0, 7), rookStart)
	assert.Equal(t, RankFile(0, 5), rookEnd)

	piece, rookStart, rookEnd = CastlingRook(RankFile(0, 2)) // c1, white queenside
	assert.Equal(t, ColorFigure(White, Rook), piece)
	assert.Equal(t, RankFile(0, 0), rookStart)
	assert.Equal(t, RankFile(0, 3), rookEnd)

	piece, rookStart, rookEnd = CastlingRook(RankFile(7, 6)) // g8, black kingside
	assert.Equal(t, ColorFigure(Black, Rook), piece)
	assert.Equal(t, RankFile(7, 7), rookStart)
	assert.Equal(t, RankFile(7, 5), rookEnd)
}
