// zobrist.go holds the magic numbers used for Zobrist hashing of a
// position. Generation is deterministic (seeded from a fixed source) so
// the same position always hashes the same way across runs and across
// Lazy-SMP worker goroutines, which the shared lock-free transposition
// table depends on.
//
// http://research.cs.wisc.edu/techreports/1970/TR88.pdf

package engine

import "math/rand"

var (
	zobristPiece     [4 * FigureArraySize][64]uint64
	zobristEnpassant [64]uint64
	zobristCastle    [CastleArraySize]uint64
	zobristColor     uint64
)

func rand64(r *rand.Rand) uint64 {
	return uint64(r.Int63())<<32 ^ uint64(r.Int63())
}

func init() {
	r := rand.New(rand.NewSource(1))

	for col := ColorMinValue; col <= ColorMaxValue; col++ {
		for fig := FigureMinValue; fig <= FigureMaxValue; fig++ {
			pi := ColorFigure(col, fig)
			for sq := 0; sq < 64; sq++ {
				zobristPiece[pi][sq] = rand64(r)
			}
		}
	}
	for sq := SquareA3; sq <= SquareA3+7; sq++ {
		zobristEnpassant[sq] = rand64(r)
	}
	for sq := SquareA6; sq <= SquareA6+7; sq++ {
		zobristEnpassant[sq] = rand64(r)
	}
	for i := Castle(0); i < CastleArraySize; i++ {
		zobristCastle[i] = rand64(r)
	}
	zobristColor = rand64(r)
}
