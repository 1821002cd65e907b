// quiescence.go resolves the "horizon effect" at the leaves of the main
// search: rather than evaluating a position mid-capture-sequence, it plays
// out captures (and, when in check, every legal evasion) until the
// position is quiet, then evaluates.
//
// Grounded on the teacher's search structure (engine.go) for the overall
// negamax shape, adapted to this package's move generator and SEE.

package engine

// Quiescence returns a quiescence-search score for pos from the side to
// move's point of view, bounded by [alpha, beta]. ply is the distance
// from the search root, used for mate-score bookkeeping. ss is the
// calling thread's search stack, consulted only by move ordering (its
// killer, counter-move and history tables), which ranks in-check evasions
// that happen to be quiet.
func Quiescence(pos *Position, alpha, beta int32, ply int, ss *SearchStack) int32 {
	if ply >= maxPly {
		return Evaluate(pos)
	}

	inCheck := pos.IsChecked(pos.SideToMove)

	var standPat int32
	if !inCheck {
		standPat = Evaluate(pos)
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	var moves []Move
	if inCheck {
		moves = pos.EvasionMoves()
		if len(moves) == 0 {
			return MatedIn(ply)
		}
	} else {
		moves = pos.LegalMoves(Violent)
	}

	OrderMoves(pos, moves, Move{}, ss, 0, Move{})

	cfg := ss.Cfg.Quiescence
	for _, m := range moves {
		if !inCheck {
			if cfg.UseSEE && m.MoveType != Promotion && SeeSign(pos, m) {
				continue // bad capture, can't possibly help
			}
			gain := mvvValue[m.Capture.Figure()] * 10
			if standPat+gain+cfg.DeltaMargin < alpha {
				continue // even the best case for this capture falls short
			}
		}

		pos.DoMove(m)
		score := -Quiescence(pos, -beta, -alpha, ply+1, ss)
		pos.UndoMove(m)

		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}
