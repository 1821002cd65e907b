// see.go implements static exchange evaluation: the net material gained or
// lost by a sequence of captures on a single square, used to split good
// captures from bad ones in move ordering and to prune hopeless captures
// in quiescence search.
//
// https://www.chessprogramming.org/Static_Exchange_Evaluation
// https://www.chessprogramming.org/SEE_-_The_Swap_Algorithm

package engine

// seeValues are approximate figure values for the exchange simulation,
// deliberately cruder than the tapered evaluator's weights: SEE only needs
// to get the sign (and rough magnitude) of a trade right.
var seeValues = [FigureArraySize]int32{0, 100, 325, 325, 500, 975, 20000}

func seeCaptureValue(capture Piece, mt MoveType, promo Figure) int32 {
	score := seeValues[capture.Figure()]
	if mt == Promotion {
		score += seeValues[promo] - seeValues[Pawn]
	}
	return score
}

// SeeSign reports whether See(pos, m) < 0 without necessarily computing
// the full exchange: if the moving piece is worth no more than whatever it
// captures, the trade cannot be losing even in the worst case.
func SeeSign(pos *Position, m Move) bool {
	if m.Piece().Figure() <= m.Capture.Figure() {
		return false
	}
	return See(pos, m) < 0
}

// See returns the static exchange evaluation of playing m: the net gain in
// seeValues terms assuming both sides recapture with their least valuable
// attacker until no side wants to continue. m must not yet have been
// played on pos.
func See(pos *Position, m Move) int32 {
	us := pos.Us()
	sq := m.To
	target := m.Target

	var occ [ColorArraySize]Bitboard
	occ[White] = pos.ByColor[White]
	occ[Black] = pos.ByColor[Black]
	occ[us] &^= m.From.Bitboard()
	occ[us] |= m.To.Bitboard()
	occ[us.Opposite()] &^= m.CaptureSquare().Bitboard()
	us = us.Opposite()

	all := occ[White] | occ[Black]
	onBackRank := sq.Rank() == 0 || sq.Rank() == 7

	score := seeCaptureValue(m.Capture, m.MoveType, m.Target.Figure())
	gain := make([]int32, 1, 16)
	gain[0] = score

	for score >= 0 {
		ours := occ[us]
		var fig Figure
		var att Bitboard
		mt := Normal

		pawnAttackers := PawnAttacks(us.Opposite(), sq) & ours & pos.ByFigure[Pawn]

		switch {
		case !onBackRank && pawnAttackers != 0:
			fig, att = Pawn, pawnAttackers
		case KnightAttacks(sq)&ours&pos.ByFigure[Knight] != 0:
			fig, att = Knight, KnightAttacks(sq)&ours&pos.ByFigure[Knight]
		case SuperAttacks(sq)&ours == 0:
			// no attacker of any kind left; stop the exchange.
		case BishopAttacks(sq, all)&ours&pos.ByFigure[Bishop] != 0:
			fig, att = Bishop, BishopAttacks(sq, all)&ours&pos.ByFigure[Bishop]
		case RookAttacks(sq, all)&ours&pos.ByFigure[Rook] != 0:
			fig, att = Rook, RookAttacks(sq, all)&ours&pos.ByFigure[Rook]
		case onBackRank && pawnAttackers != 0:
			// a pawn capturing onto the back rank promotes; value it as a
			// queen rather than a pawn for the rest of the exchange.
			fig, mt, att = Queen, Promotion, pawnAttackers
		case (BishopAttacks(sq, all)|RookAttacks(sq, all))&ours&pos.ByFigure[Queen] != 0:
			fig, att = Queen, (BishopAttacks(sq, all)|RookAttacks(sq, all))&ours&pos.ByFigure[Queen]
		case KingAttacks(sq)&ours&pos.ByFigure[King] != 0:
			fig, att = King, KingAttacks(sq)&ours&pos.ByFigure[King]
		}

		if att == 0 {
			break
		}

		from := att.LSB()
		attacker := ColorFigure(us, fig)
		promo := NoFigure
		if mt == Promotion {
			promo = Queen
		}
		score = seeCaptureValue(target, mt, promo) - score
		gain = append(gain, score)

		target = attacker
		occ[us] &^= from
		all &^= from
		us = us.Opposite()
	}

	for i := len(gain) - 2; i >= 0; i-- {
		if -gain[i+1] < gain[i] {
			gain[i] = -gain[i+1]
		}
	}
	return gain[0]
}
