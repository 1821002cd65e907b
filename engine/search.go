// search.go implements the negamax/PVS alpha-beta search: the pruning and
// extension techniques layered around it are what let the engine look
// many plies deeper than a brute-force tree would allow in the same time.
//
// Grounded throughout on the teacher's engine.go (searchTree/tryMove/
// search/Play), carried over nearly move-for-move for the overall shape
// (negamax, fail-soft bounds, aspiration windows, null-move pruning,
// futility/history pruning near the frontier, LMR, check extensions) and
// adapted to: the shared lock-free Table instead of a global mutable hash
// table, OrderMoves instead of the teacher's pull-based move-generation
// state machine, and a per-thread Thread value instead of package-level
// Engine state, so multiple Lazy-SMP workers can run this code at once.

package engine

import "sync/atomic"

const (
	checkExtension     = 1
	nullMoveDepthLimit = 1
	lmrDepthLimit      = 3
	futilityDepthLimit = 3
	maxExtendPerLine    = 16

	initialAspirationWindow = 21
	futilityMargin          = 150
	nodesPerTimeCheck       = 2048
)

var futilityFigureBonus = [FigureArraySize]int32{0, 100, 300, 300, 500, 900, 0}

// Thread is one Lazy-SMP worker's private search state: its own position
// (so DoMove/UndoMove never races another thread), its own ordering
// memory, and shared pointers to the transposition table, time manager,
// and node counter every thread contributes to.
type Thread struct {
	ID    int
	Pos   *Position
	Stack *SearchStack
	TT    *Table

	TM      *TimeManager
	Nodes   *atomic.Uint64
	Stopped *atomic.Bool
	Log     Logger

	rootPly  int
	extended int
	stats    Stats

	// RootMoves restricts the root node to this set of moves when
	// non-empty, implementing UCI's `go searchmoves`.
	RootMoves []Move

	// DepthSkew offsets the depth this thread's iterative deepening loop
	// requests relative to the nominal iteration depth, letting Lazy-SMP
	// helper threads explore slightly ahead of or behind the main thread
	// so they populate the shared table with different positions instead
	// of duplicating its work.
	DepthSkew int
}

// NewThread returns a fresh worker sharing tt, tm, nodes, and stop with
// its siblings but otherwise independent.
func NewThread(id int, pos *Position, cfg Config, tt *Table, tm *TimeManager, nodes *atomic.Uint64, stop *atomic.Bool) *Thread {
	return &Thread{
		ID: id, Pos: pos.Clone(), Stack: NewSearchStack(cfg),
		TT: tt, TM: tm, Nodes: nodes, Stopped: stop, Log: NopLogger{},
	}
}

func (th *Thread) ply() int { return th.Pos.Ply - th.rootPly }

func (th *Thread) checkTimeAndStop() {
	if th.Stopped.Load() {
		return
	}
	checkEvery := th.TM.CheckEvery
	if checkEvery == 0 {
		checkEvery = nodesPerTimeCheck
	}
	if th.Nodes.Load()%checkEvery == 0 && th.TM.Stopped() {
		th.Stopped.Store(true)
	}
}

// endPosition reports a terminal score (draw or checkmate) if pos is
// already decided without needing to search any move.
func (th *Thread) endPosition() (int32, bool) {
	pos := th.Pos
	if pos.InsufficientMaterial() {
		return 0, true
	}
	if pos.IsFiftyMoveDraw() {
		return 0, true
	}
	if th.Stack.Cfg.Repetition.Enabled && th.ply() > 0 && pos.IsThreefoldRepetition() {
		return 0, true
	}
	return 0, false
}

// Negamax searches pos to depth plies (extended/reduced along the way)
// and returns a fail-soft score bounded loosely by [alpha, beta], from
// the side to move's point of view.
func (th *Thread) Negamax(alpha, beta int32, depth int) int32 {
	ply := th.ply()
	pos := th.Pos

	if ply >= maxPly {
		return Evaluate(pos)
	}

	pvNode := alpha+1 < beta

	th.Nodes.Add(1)
	th.checkTimeAndStop()
	if th.Stopped.Load() {
		return alpha
	}
	if pvNode && int32(ply) > th.stats.SelDepth {
		th.stats.SelDepth = int32(ply)
	}

	if score, done := th.endPosition(); done && ply != 0 {
		return score
	}

	// Mate distance pruning: a shorter mate already found up the tree
	// makes searching this node pointless if it can't beat it.
	if MateScore-int32(ply) <= alpha {
		return MateIn(ply)
	}
	if MatedIn(ply) >= beta {
		return MatedIn(ply)
	}

	ttMove := Move{}
	if entry, ok := th.TT.Probe(pos.Zobrist, ply, th.Stack.Cfg.TT.FreshenOnFetch); ok {
		th.stats.CacheHit++
		ttMove, _ = ResolvePacked(pos, entry.Move)
		if entry.Depth >= depth {
			switch entry.Bound {
			case BoundExact:
				return entry.Score
			case BoundLower:
				if entry.Score >= beta {
					return entry.Score
				}
			case BoundUpper:
				if entry.Score <= alpha {
					return entry.Score
				}
			}
		}
	} else {
		th.stats.CacheMiss++
	}

	inCheck := pos.IsChecked(pos.SideToMove)

	if depth <= 0 {
		if alpha >= KnownWinScore || beta <= KnownLossScore {
			return Evaluate(pos)
		}
		return Quiescence(pos, alpha, beta, ply, th.Stack)
	}

	frame := th.Stack.At(ply)
	frame.InCheck = inCheck

	// Internal iterative reduction: without a hash move to try first,
	// this node's ordering is weak, so search it one ply shallower to
	// populate the transposition table with a move before committing
	// full depth to it.
	if ttMove == (Move{}) && depth >= 4 && !inCheck {
		depth--
	}

	us := pos.SideToMove
	minorsMajors := (pos.ByFigure[Knight] | pos.ByFigure[Bishop] | pos.ByFigure[Rook] | pos.ByFigure[Queen]) & pos.ByColor[us]

	cfg := &th.Stack.Cfg

	// Reverse futility / static null move pruning: if the static eval
	// already beats beta by a wide margin, assume a real search would too.
	var staticEval int32
	haveStatic := false
	if !inCheck {
		staticEval = Evaluate(pos)
		haveStatic = true
		frame.StaticEval = staticEval
		if cfg.ReverseFut.Enabled && depth <= cfg.ReverseFut.DepthLimit && !pvNode &&
			staticEval-int32(depth)*cfg.ReverseFut.MarginStep >= beta && beta > KnownLossScore {
			return staticEval
		}
	}

	// Razoring: a static eval far below alpha near the frontier is
	// unlikely to recover; confirm with quiescence before giving up.
	if cfg.Razor.Enabled && !inCheck && !pvNode && depth <= cfg.Razor.DepthLimit && haveStatic &&
		staticEval+cfg.Razor.Margin*int32(depth) < alpha {
		score := Quiescence(pos, alpha, beta, ply, th.Stack)
		if score <= alpha {
			return score
		}
	}

	// Null-move pruning: if passing the turn still doesn't let the
	// opponent catch up, this position is too good to need full search.
	// Disabled with too little non-pawn material (zugzwang risk).
	if cfg.NullMove.Enabled && depth > cfg.NullMove.DepthLimit && !inCheck && !pvNode &&
		minorsMajors.Popcnt() > 0 && alpha > KnownLossScore && beta < KnownWinScore {
		savedEP := pos.DoNullMove()
		reduction := cfg.NullMove.BaseReduct + minorsMajors.CountMax2()
		score := -th.Negamax(-beta, -beta+1, depth-1-reduction)
		pos.UndoNullMove(savedEP)
		if th.Stopped.Load() {
			return alpha
		}
		if score >= beta {
			return score
		}
	}

	var moves []Move
	forcedReply := false
	if inCheck {
		moves = pos.EvasionMoves()
		forcedReply = len(moves) == 1
	} else {
		moves = pos.PseudoLegalMoves(All)
	}
	prevMove := Move{}
	if ply > 0 {
		prevMove = th.Stack.At(ply - 1).CurrentMove
	}
	OrderMoves(pos, moves, ttMove, th.Stack, ply, prevMove)

	allowLMP := cfg.LMP.Enabled && !inCheck && !pvNode && depth <= cfg.LMP.DepthLimit
	allowLMR := cfg.LMR.Enabled && !inCheck && depth > cfg.LMR.DepthLimit

	bestMove, bestScore := Move{}, int32(-InfinityScore)
	legalMoves := 0
	trueLegalMoves := 0
	searchedQuiet := 0

	for _, m := range moves {
		critical := m == ttMove || th.Stack.IsKiller(ply, m)
		seeLoses := m.IsViolent() && SeeSign(pos, m)

		pos.DoMove(m)
		if pos.IsChecked(us) {
			pos.UndoMove(m)
			continue
		}
		trueLegalMoves++
		if ply == 0 && len(th.RootMoves) > 0 && !containsMove(th.RootMoves, m) {
			pos.UndoMove(m)
			continue
		}
		legalMoves++
		frame.CurrentMove = m
		givesCheck := pos.IsChecked(pos.SideToMove)

		// Late move pruning: once many quiet moves have already failed to
		// raise alpha near the frontier, stop trying further quiet ones.
		if allowLMP && !critical && !givesCheck && m.IsQuiet() {
			searchedQuiet++
			if searchedQuiet > cfg.LMP.BaseCount+depth*depth {
				pos.UndoMove(m)
				continue
			}
			if cfg.Futility.Enabled && depth <= cfg.Futility.DepthLimit && haveStatic && staticEval+cfg.Futility.Margin+int32(depth)*60 < alpha {
				pos.UndoMove(m)
				continue
			}
		}

		// SEE pruning: skip captures that lose material outright near
		// the frontier, outside of check and the PV.
		if cfg.MoveOrderer.UseSEE && !pvNode && !inCheck && !givesCheck && depth <= 5 && seeLoses {
			pos.UndoMove(m)
			continue
		}

		recapture := cfg.Extensions.Recapture && m.IsViolent() && prevMove.IsViolent() && m.To == prevMove.To
		givesCheckExt := cfg.Extensions.Check && givesCheck
		forcedReplyExt := cfg.Extensions.SingleReply && forcedReply

		newDepth := depth - 1
		extend := givesCheckExt || forcedReplyExt || recapture
		didExtend := false
		if extend && th.extended < cfg.Extensions.MaxExtend {
			newDepth += checkExtension
			th.extended++
			didExtend = true
		}

		reduction := 0
		if allowLMR && !critical && !givesCheck && (m.IsQuiet() || seeLoses) {
			reduction = 1 + min(depth, legalMoves)/cfg.LMR.Divisor
		}

		var score int32
		if legalMoves == 1 || !cfg.PVS.Enabled {
			score = -th.Negamax(-beta, -alpha, newDepth)
		} else {
			score = alpha + 1
			if reduction > 0 {
				score = -th.Negamax(-alpha-1, -alpha, newDepth-reduction)
			}
			if score > alpha {
				score = -th.Negamax(-alpha-1, -alpha, newDepth)
				if score > alpha && score < beta {
					score = -th.Negamax(-beta, -alpha, newDepth)
				}
			}
		}
		pos.UndoMove(m)

		if didExtend {
			th.extended--
		}

		if th.Stopped.Load() {
			return alpha
		}

		if score > bestScore {
			bestMove, bestScore = m, score
			if score > alpha {
				alpha = score
			}
		}
		if alpha >= beta {
			if cfg.Killers.Enabled {
				th.Stack.AddKiller(ply, m)
			}
			if cfg.CounterMove.Enabled {
				th.Stack.counter.set(prevMove, m)
			}
			if cfg.History.Enabled && m.IsQuiet() {
				th.Stack.history.add(us, m, depth)
			}
			break
		}
	}

	if trueLegalMoves == 0 {
		if inCheck {
			return MatedIn(ply)
		}
		return 0
	}
	if legalMoves == 0 {
		// Every legal move was excluded by RootMoves (searchmoves); fall
		// back to evaluating the position rather than reporting mate.
		return Evaluate(pos)
	}

	bound := BoundExact
	switch {
	case bestScore <= alpha:
		bound = BoundUpper
	case bestScore >= beta:
		bound = BoundLower
	}
	th.TT.Store(pos.Zobrist, PackedMove(bestMove.Pack()), bestScore, depth, bound, pvNode, ply, cfg.TT.RewritePV)
	return bestScore
}

func containsMove(moves []Move, m Move) bool {
	for _, cand := range moves {
		if cand.From == m.From && cand.To == m.To && cand.MoveType == m.MoveType {
			return true
		}
	}
	return false
}
