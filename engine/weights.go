// weights.go holds the tapered evaluator's tuned numbers: middlegame and
// endgame material values and one piece-square table per figure, indexed
// from White's point of view (Black reads the same table mirrored across
// the rank axis). The evaluator treats these as opaque data — see eval.go.
//
// The original tuner-generated 187-entry feature table this file replaced
// depended on a feature-extraction order defined in the tuning harness
// (features.go / lib.go), which is out of scope and not carried forward;
// see DESIGN.md. This is a smaller, hand-authored table in the same
// tapered Score{M,E} shape.

package engine

// Score is a (middlegame, endgame) pair blended by game phase.
type Score struct {
	M, E int32
}

func (s Score) Add(o Score) Score { return Score{s.M + o.M, s.E + o.E} }
func (s Score) Sub(o Score) Score { return Score{s.M - o.M, s.E - o.E} }
func (s Score) Neg() Score        { return Score{-s.M, -s.E} }

// figureValue are each figure's material worth, middlegame and endgame.
var figureValue = [FigureArraySize]Score{
	NoFigure: {0, 0},
	Pawn:     {82, 94},
	Knight:   {337, 281},
	Bishop:   {365, 297},
	Rook:     {477, 512},
	Queen:    {1025, 936},
	King:     {0, 0},
}

// figurePhase is how much each figure (other than the king) contributes to
// the 0 (pure endgame) .. totalPhase (pure middlegame) phase counter.
var figurePhase = [FigureArraySize]int32{
	NoFigure: 0, Pawn: 0, Knight: 1, Bishop: 1, Rook: 2, Queen: 4, King: 0,
}

const totalPhase = 4*1 + 4*1 + 4*2 + 2*4 // 4N + 4B + 4R + 2Q on the board

// pst[figure][square] is White's positional bonus for a figure standing on
// square (A1=0 .. H8=63). Black reads the same table for the vertically
// mirrored square, via mirrorSquare.
var pst = [FigureArraySize][64]Score{
	Pawn: {
		{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0},
		{5, 5}, {10, 10}, {10, 10}, {-20, -20}, {-20, -20}, {10, 10}, {10, 10}, {5, 5},
		{5, 5}, {-5, -5}, {-10, -10}, {0, 0}, {0, 0}, {-10, -10}, {-5, -5}, {5, 5},
		{0, 10}, {0, 10}, {0, 15}, {20, 25}, {20, 25}, {0, 15}, {0, 10}, {0, 10},
		{5, 20}, {5, 20}, {10, 25}, {25, 35}, {25, 35}, {10, 25}, {5, 20}, {5, 20},
		{10, 45}, {10, 45}, {20, 55}, {30, 65}, {30, 65}, {20, 55}, {10, 45}, {10, 45},
		{50, 80}, {50, 80}, {50, 85}, {50, 90}, {50, 90}, {50, 85}, {50, 80}, {50, 80},
		{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0},
	},
	Knight: {
		{-50, -50}, {-40, -30}, {-30, -20}, {-30, -20}, {-30, -20}, {-30, -20}, {-40, -30}, {-50, -50},
		{-40, -30}, {-20, -10}, {0, 0}, {5, 5}, {5, 5}, {0, 0}, {-20, -10}, {-40, -30},
		{-30, -20}, {5, 0}, {10, 10}, {15, 15}, {15, 15}, {10, 10}, {5, 0}, {-30, -20},
		{-30, -20}, {0, 5}, {15, 15}, {20, 20}, {20, 20}, {15, 15}, {0, 5}, {-30, -20},
		{-30, -20}, {5, 5}, {15, 15}, {20, 20}, {20, 20}, {15, 15}, {5, 5}, {-30, -20},
		{-30, -20}, {0, 0}, {10, 10}, {15, 15}, {15, 15}, {10, 10}, {0, 0}, {-30, -20},
		{-40, -30}, {-20, -10}, {0, 0}, {0, 5}, {0, 5}, {0, 0}, {-20, -10}, {-40, -30},
		{-50, -50}, {-40, -30}, {-30, -20}, {-30, -20}, {-30, -20}, {-30, -20}, {-40, -30}, {-50, -50},
	},
	Bishop: {
		{-20, -20}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-20, -20},
		{-10, -10}, {5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {5, 0}, {-10, -10},
		{-10, -10}, {10, 0}, {10, 0}, {10, 0}, {10, 0}, {10, 0}, {10, 0}, {-10, -10},
		{-10, -10}, {0, 0}, {10, 0}, {10, 0}, {10, 0}, {10, 0}, {0, 0}, {-10, -10},
		{-10, -10}, {5, 0}, {5, 0}, {10, 0}, {10, 0}, {5, 0}, {5, 0}, {-10, -10},
		{-10, -10}, {0, 0}, {5, 0}, {10, 0}, {10, 0}, {5, 0}, {0, 0}, {-10, -10},
		{-10, -10}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-10, -10},
		{-20, -20}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-20, -20},
	},
	Rook: {
		{0, 0}, {0, 0}, {0, 0}, {5, 5}, {5, 5}, {0, 0}, {0, 0}, {0, 0},
		{-5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, 0},
		{-5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, 0},
		{-5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, 0},
		{-5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, 0},
		{-5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, 0},
		{5, 0}, {10, 0}, {10, 0}, {10, 0}, {10, 0}, {10, 0}, {10, 0}, {5, 0},
		{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0},
	},
	Queen: {
		{-20, -20}, {-10, -10}, {-10, -10}, {-5, -5}, {-5, -5}, {-10, -10}, {-10, -10}, {-20, -20},
		{-10, -10}, {0, 0}, {5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-10, -10},
		{-10, -10}, {5, 0}, {5, 5}, {5, 5}, {5, 5}, {5, 5}, {0, 0}, {-10, -10},
		{0, 0}, {0, 0}, {5, 5}, {5, 5}, {5, 5}, {5, 5}, {0, 0}, {-5, 0},
		{-5, 0}, {0, 0}, {5, 5}, {5, 5}, {5, 5}, {5, 5}, {0, 0}, {-5, 0},
		{-10, -10}, {0, 0}, {5, 5}, {5, 5}, {5, 5}, {5, 5}, {0, 0}, {-10, -10},
		{-10, -10}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-10, -10},
		{-20, -20}, {-10, -10}, {-10, -10}, {-5, -5}, {-5, -5}, {-10, -10}, {-10, -10}, {-20, -20},
	},
	King: {
		{20, -50}, {30, -30}, {10, -30}, {0, -30}, {0, -30}, {10, -30}, {30, -30}, {20, -50},
		{20, -30}, {20, -30}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {20, -30}, {20, -30},
		{-10, -30}, {-20, -10}, {-20, 20}, {-20, 30}, {-20, 30}, {-20, 20}, {-20, -10}, {-10, -30},
		{-20, -30}, {-30, -10}, {-30, 30}, {-40, 40}, {-40, 40}, {-30, 30}, {-30, -10}, {-20, -30},
		{-30, -30}, {-40, -10}, {-40, 30}, {-50, 40}, {-50, 40}, {-40, 30}, {-40, -10}, {-30, -30},
		{-30, -30}, {-40, -10}, {-40, 20}, {-50, 30}, {-50, 30}, {-40, 20}, {-40, -10}, {-30, -30},
		{-30, -30}, {-40, -20}, {-40, -10}, {-50, 0}, {-50, 0}, {-40, -10}, {-40, -20}, {-30, -30},
		{-30, -50}, {-40, -40}, {-40, -30}, {-50, -20}, {-50, -20}, {-40, -30}, {-40, -40}, {-30, -50},
	},
}

// mobilityBonus is added per square a figure attacks, squares held by its
// own side included.
var mobilityBonus = [FigureArraySize]Score{
	Knight: {4, 4}, Bishop: {5, 5}, Rook: {2, 4}, Queen: {1, 2},
}

func mirrorSquare(sq Square) Square {
	return RankFile(7-sq.Rank(), sq.File())
}
