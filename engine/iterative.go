// iterative.go drives iterative deepening: repeated searches at
// increasing depth, each seeded by the previous iteration's score via an
// aspiration window, so the transposition table and move ordering from a
// shallower pass speed up the next one.
//
// Grounded on the teacher's engine.go (search/Play), adapted onto Thread
// and TimeManager and extended with explicit best-move stability
// tracking fed to the time manager (see timeman.go's NotifyBestMove).

package engine

import "time"

// Result is one completed iteration's outcome, reported to the UCI layer
// after every depth so it can emit an `info` line.
type Result struct {
	Depth int
	Score int32
	Best  Move
	Nodes uint64
}

// searchAspirated repeats a search at depth with a narrow window around
// estimated, widening whenever the result falls outside it, the gradual
// widening scheme used by many engines since it costs nothing when the
// estimate is already close.
func (th *Thread) searchAspirated(depth int, estimated int32) int32 {
	cfg := th.Stack.Cfg.Aspiration
	if depth < cfg.MinDepth {
		return th.Negamax(-InfinityScore, InfinityScore, depth)
	}

	window := cfg.InitialWindow
	alpha := max32(estimated-window, -InfinityScore)
	beta := min32(estimated+window, InfinityScore)

	for iter := 0; ; iter++ {
		score := th.Negamax(alpha, beta, depth)
		if th.Stopped.Load() {
			return score
		}
		if iter >= cfg.MaxIter {
			return th.Negamax(-InfinityScore, InfinityScore, depth)
		}
		if score <= alpha {
			alpha = max32(alpha-window, -InfinityScore)
			window += window / 2
		} else if score >= beta {
			beta = min32(beta+window, InfinityScore)
			window += window / 2
		} else {
			return score
		}
	}
}

// IterativeDeepen searches pos from depth 1 up to th.TM.Depth, stopping
// early when the time manager says so, and returns the best line found by
// the last fully-completed iteration. On the main thread (ID 0), when
// th.Stack.Cfg.MultiPV is greater than 1, each depth also searches
// MultiPV-1 additional root lines, rooted at the legal moves not already
// reported, and logs one `info ... multipv N` line per line.
func (th *Thread) IterativeDeepen(onIteration func(Result)) []Move {
	th.rootPly = th.Pos.Ply
	score := int32(0)
	var lastBest Move
	var lastPV []Move
	baseRootMoves := th.RootMoves

	start := time.Now()
	th.Log.BeginSearch()
	defer th.Log.EndSearch()

	for depth := 1; depth <= th.TM.Depth && depth < maxPly; depth++ {
		if !th.TM.NextDepth(depth) {
			break
		}
		th.extended = 0
		searchDepth := depth + th.DepthSkew
		if searchDepth < 1 {
			searchDepth = 1
		}
		th.stats.Depth = int32(searchDepth)

		score = th.searchAspirated(searchDepth, score)
		if th.Stopped.Load() && depth > 1 {
			break
		}

		pv := th.PrincipalVariation()
		var best Move
		if len(pv) > 0 {
			best = pv[0]
		}
		th.TM.NotifyBestMove(lastBest != (Move{}) && best != lastBest)
		lastBest = best
		lastPV = pv

		th.stats.Nodes = th.Nodes.Load()
		if th.ID == 0 {
			th.Log.PrintPV(th.stats, time.Since(start), score, pv, 1, th.TT.HashFull())
			th.searchExtraPVLines(start, searchDepth, score, baseRootMoves, best)
		}
		if onIteration != nil {
			onIteration(Result{Depth: depth, Score: score, Best: best, Nodes: th.Nodes.Load()})
		}
		if IsMateScore(score) {
			break
		}
	}

	if lastPV != nil {
		return lastPV
	}
	return th.PrincipalVariation()
}

// searchExtraPVLines searches and logs the second through
// th.Stack.Cfg.MultiPV-th best root lines at searchDepth, each excluding
// every move already reported ahead of it. It leaves th.RootMoves and
// th.extended as it found them, and re-stores the shared table's root
// entry for primary's line afterward, since the last extra line's own
// root store would otherwise leave the table pointing at a worse move for
// the next iteration's move ordering.
func (th *Thread) searchExtraPVLines(start time.Time, searchDepth int, primaryScore int32, baseRootMoves []Move, primary Move) {
	multiPV := th.Stack.Cfg.MultiPV
	if multiPV < 2 || primary == (Move{}) {
		return
	}

	candidates := baseRootMoves
	if len(candidates) == 0 {
		candidates = th.legalRootMoves()
	}

	savedRootMoves, savedExtended := th.RootMoves, th.extended
	searchedAnyLine := false
	defer func() {
		th.RootMoves = savedRootMoves
		th.extended = savedExtended
		if searchedAnyLine {
			th.TT.Store(th.Pos.Zobrist, PackedMove(primary.Pack()), primaryScore, searchDepth, BoundExact, true, 0, true)
		}
	}()

	excluded := []Move{primary}
	for line := 2; line <= multiPV; line++ {
		th.RootMoves = excludeMoves(candidates, excluded)
		if len(th.RootMoves) == 0 {
			break
		}
		th.extended = 0
		searchedAnyLine = true

		lineScore := th.searchAspirated(searchDepth, 0)
		if th.Stopped.Load() {
			break
		}

		pv := th.PrincipalVariation()
		if len(pv) == 0 {
			break
		}
		th.stats.Nodes = th.Nodes.Load()
		th.Log.PrintPV(th.stats, time.Since(start), lineScore, pv, line, th.TT.HashFull())
		excluded = append(excluded, pv[0])
	}
}

// legalRootMoves returns every legal move from the current root position,
// used by searchExtraPVLines to build its candidate set when `go
// searchmoves` did not already restrict the root to a smaller one.
func (th *Thread) legalRootMoves() []Move {
	pos := th.Pos
	us := pos.SideToMove
	pseudo := pos.PseudoLegalMoves(All)
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		pos.DoMove(m)
		ok := !pos.IsChecked(us)
		pos.UndoMove(m)
		if ok {
			legal = append(legal, m)
		}
	}
	return legal
}

// excludeMoves returns the moves of candidates whose From/To/MoveType does
// not match any move in excluded.
func excludeMoves(candidates, excluded []Move) []Move {
	out := make([]Move, 0, len(candidates))
	for _, m := range candidates {
		skip := false
		for _, e := range excluded {
			if e.From == m.From && e.To == m.To && e.MoveType == m.MoveType {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, m)
		}
	}
	return out
}

// PrincipalVariation walks the transposition table from the current
// position, following its stored best move until a move fails to resolve
// or a position repeats, returning the line played to get there.
func (th *Thread) PrincipalVariation() []Move {
	pos := th.Pos
	seen := make(map[uint64]bool)
	var line []Move
	var played []Move

	for len(line) < maxPly {
		entry, ok := th.TT.Probe(pos.Zobrist, 0, th.Stack.Cfg.TT.FreshenOnFetch)
		if !ok || entry.Move.IsZero() || seen[pos.Zobrist] {
			break
		}
		m, ok := ResolvePacked(pos, entry.Move)
		if !ok {
			break
		}
		seen[pos.Zobrist] = true
		line = append(line, m)
		played = append(played, m)
		pos.DoMove(m)
	}

	for i := len(played) - 1; i >= 0; i-- {
		pos.UndoMove(played[i])
	}
	return line
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
