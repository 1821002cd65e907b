// movegen.go turns board state into moves: pseudo-legal generation staged
// by violence (Quiet/Tactical/Violent/All, see position.go), legality
// filtering via make-check-unmake, and a dedicated evasion generator for
// in-check nodes.

package engine

func moveKind(m Move) int {
	switch {
	case m.MoveType == Castling:
		return Tactical
	case m.MoveType == Promotion:
		if m.Target.Figure() == Queen {
			return Violent
		}
		return Tactical
	case m.Capture != NoPiece:
		return Violent
	default:
		return Quiet
	}
}

func (pos *Position) finalizeMove(m Move) Move {
	m.SavedEnpassant = pos.EnpassantSquare
	m.SavedCastle = pos.CastlingAbility
	m.SavedHalfmove = int16(pos.HalfmoveClock)
	return m
}

// PseudoLegalMoves appends every move of the requested kind (a bitwise-or
// of Quiet/Tactical/Violent) that does not account for the moving side's
// own king ending up in check.
func (pos *Position) PseudoLegalMoves(kind int) []Move {
	var moves []Move
	us, them := pos.SideToMove, pos.Them()
	occ := pos.Occupied()

	emit := func(m Move) {
		if moveKind(m)&kind != 0 {
			moves = append(moves, pos.finalizeMove(m))
		}
	}

	pos.genPawnMoves(us, them, occ, emit)
	pos.genLeaperMoves(us, Knight, KnightAttacks, emit)
	pos.genSliderMoves(us, Bishop, occ, emit)
	pos.genSliderMoves(us, Rook, occ, emit)
	pos.genQueenMoves(us, occ, emit)
	pos.genLeaperMoves(us, King, KingAttacks, emit)
	pos.genCastles(us, occ, emit)
	return moves
}

// LegalMoves returns every fully legal move of the requested kind.
func (pos *Position) LegalMoves(kind int) []Move {
	pseudo := pos.PseudoLegalMoves(kind)
	legal := pseudo[:0]
	for _, m := range pseudo {
		if pos.IsLegalAfterMake(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// EvasionMoves returns every legal move available while in check. It is
// just LegalMoves(All): when in check, Quiet/Tactical/Violent staging buys
// nothing since almost every legal reply is forced, so quiescence asks for
// every one of them rather than only the violent slice.
func (pos *Position) EvasionMoves() []Move {
	return pos.LegalMoves(All)
}

// IsLegalAfterMake reports whether playing m leaves the moving side's own
// king safe. It is the single source of truth for legality: every pseudo
// move, including castling (already vetted for check in genCastles), is
// re-checked this way before being handed to the search.
func (pos *Position) IsLegalAfterMake(m Move) bool {
	us := pos.SideToMove
	pos.DoMove(m)
	ok := !pos.IsChecked(us)
	pos.UndoMove(m)
	return ok
}

func (pos *Position) genLeaperMoves(us Color, fig Figure, attacks func(Square) Bitboard, emit func(Move)) {
	for from, bb := Square(0), pos.ByPiece(us, fig); bb != 0; {
		from = bb.Pop()
		targets := attacks(from) &^ pos.ByColor[us]
		for targets != 0 {
			to := targets.Pop()
			emit(Move{From: from, To: to, Capture: pos.Get(to), Target: ColorFigure(us, fig), MoveType: Normal})
		}
	}
}

func (pos *Position) genSliderMoves(us Color, fig Figure, occ Bitboard, emit func(Move)) {
	var attacks func(Square, Bitboard) Bitboard
	if fig == Bishop {
		attacks = BishopAttacks
	} else {
		attacks = RookAttacks
	}
	for bb := pos.ByPiece(us, fig); bb != 0; {
		from := bb.Pop()
		targets := attacks(from, occ) &^ pos.ByColor[us]
		for targets != 0 {
			to := targets.Pop()
			emit(Move{From: from, To: to, Capture: pos.Get(to), Target: ColorFigure(us, fig), MoveType: Normal})
		}
	}
}

func (pos *Position) genQueenMoves(us Color, occ Bitboard, emit func(Move)) {
	for bb := pos.ByPiece(us, Queen); bb != 0; {
		from := bb.Pop()
		targets := QueenAttacks(from, occ) &^ pos.ByColor[us]
		for targets != 0 {
			to := targets.Pop()
			emit(Move{From: from, To: to, Capture: pos.Get(to), Target: ColorFigure(us, Queen), MoveType: Normal})
		}
	}
}

func (pos *Position) genPawnMoves(us, them Color, occ Bitboard, emit func(Move)) {
	dir, startRank, promRank := 8, 1, 7
	if us == Black {
		dir, startRank, promRank = -8, 6, 0
	}

	for bb := pos.ByPiece(us, Pawn); bb != 0; {
		from := bb.Pop()
		to := Square(int(from) + dir)

		if !occ.Has(to) {
			pos.emitPawnAdvance(us, from, to, promRank, emit)
			if from.Rank() == startRank {
				to2 := Square(int(from) + 2*dir)
				if !occ.Has(to2) {
					emit(Move{From: from, To: to2, Target: ColorFigure(us, Pawn), MoveType: Normal})
				}
			}
		}

		for caps := PawnAttacks(us, from) & pos.ByColor[them]; caps != 0; {
			to := caps.Pop()
			pos.emitPawnCapture(us, from, to, pos.Get(to), promRank, emit)
		}

		if pos.EnpassantSquare != SquareNone && PawnAttacks(us, from).Has(pos.EnpassantSquare) {
			emit(Move{
				From: from, To: pos.EnpassantSquare,
				Capture: ColorFigure(them, Pawn), Target: ColorFigure(us, Pawn),
				MoveType: Enpassant,
			})
		}
	}
}

func (pos *Position) emitPawnAdvance(us Color, from, to Square, promRank int, emit func(Move)) {
	pos.emitPawnCapture(us, from, to, NoPiece, promRank, emit)
}

func (pos *Position) emitPawnCapture(us Color, from, to Square, capture Piece, promRank int, emit func(Move)) {
	if to.Rank() == promRank {
		for _, fig := range [4]Figure{Queen, Rook, Bishop, Knight} {
			emit(Move{From: from, To: to, Capture: capture, Target: ColorFigure(us, fig), MoveType: Promotion})
		}
		return
	}
	emit(Move{From: from, To: to, Capture: capture, Target: ColorFigure(us, Pawn), MoveType: Normal})
}

func (pos *Position) castlePossible(us Color, empty, safe []Square, occ Bitboard) bool {
	for _, sq := range empty {
		if occ.Has(sq) {
			return false
		}
	}
	for _, sq := range safe {
		if pos.IsAttackedBy(sq, us.Opposite()) {
			return false
		}
	}
	return true
}

func (pos *Position) genCastles(us Color, occ Bitboard, emit func(Move)) {
	rank := us.KingHomeRank()
	e := RankFile(rank, 4)
	if pos.Get(e) != ColorFigure(us, King) {
		return
	}

	kingside, queenside := WhiteOO, WhiteOOO
	if us == Black {
		kingside, queenside = BlackOO, BlackOOO
	}

	if pos.CastlingAbility&kingside != 0 {
		f, g := RankFile(rank, 5), RankFile(rank, 6)
		if pos.castlePossible(us, []Square{f, g}, []Square{e, f, g}, occ) {
			emit(Move{From: e, To: g, Target: ColorFigure(us, King), MoveType: Castling})
		}
	}
	if pos.CastlingAbility&queenside != 0 {
		d, c, b := RankFile(rank, 3), RankFile(rank, 2), RankFile(rank, 1)
		if pos.castlePossible(us, []Square{b, c, d}, []Square{e, d, c}, occ) {
			emit(Move{From: e, To: c, Target: ColorFigure(us, King), MoveType: Castling})
		}
	}
}

// Perft counts the leaf nodes reachable from pos at exactly depth plies,
// the standard move-generator correctness benchmark.
func Perft(pos *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range pos.LegalMoves(All) {
		pos.DoMove(m)
		nodes += Perft(pos, depth-1)
		pos.UndoMove(m)
	}
	return nodes
}

// PerftDivide runs Perft one ply at a time, returning the node count under
// each root move. Useful for isolating a move generator bug against a
// reference engine's per-move breakdown.
func PerftDivide(pos *Position, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	for _, m := range pos.LegalMoves(All) {
		pos.DoMove(m)
		out[m.UCI()] = Perft(pos, depth-1)
		pos.UndoMove(m)
	}
	return out
}
