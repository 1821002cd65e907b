// ordering.go ranks a node's legal moves before alpha-beta walks them.
// Good ordering is what makes alpha-beta pruning effective at all: a
// cutoff found on the first move prunes the rest of the node for free.
//
// Grounded on the teacher's move_ordering.go for the staging (hash move,
// then captures, then killers/counter, then quiets) and its MVV-LVA
// table, reworked from a pull-based state machine into a single sort pass
// since this package generates moves eagerly rather than lazily.

package engine

import "sort"

// mvvValue are approximate victim values for Most Valuable Victim /
// Least Valuable Aggressor ordering, one pawn = 10.
var mvvValue = [FigureArraySize]int32{0, 10, 40, 45, 68, 145, 256}

const (
	scoreHash       = 1 << 30
	scoreGoodCapture = 1 << 29
	scoreKiller0     = 1 << 28
	scoreKiller1     = scoreKiller0 - 1
	scoreCounter     = scoreKiller1 - 1
	scoreQuietBase   = 0
	scoreBadCapture  = -(1 << 29)
)

// OrderMoves sorts moves in place, most promising first, for a node at
// ply with ttMove as the transposition table's suggested move (the zero
// Move if there isn't one) and prev as the move that led to this node
// (the zero Move at the root).
func OrderMoves(pos *Position, moves []Move, ttMove Move, ss *SearchStack, ply int, prev Move) {
	us := pos.SideToMove
	counterMove := ss.counter.get(prev)

	scores := make([]int32, len(moves))
	for i, m := range moves {
		scores[i] = scoreMove(pos, m, us, ttMove, ss, ply, counterMove)
	}

	sort.Stable(&moveSorter{moves: moves, scores: scores})
}

func scoreMove(pos *Position, m Move, us Color, ttMove Move, ss *SearchStack, ply int, counterMove Move) int32 {
	switch {
	case m == ttMove:
		return scoreHash
	case m.IsViolent():
		return scoreCapture(pos, m)
	case m == ss.frames[ply].Killers[0]:
		return scoreKiller0
	case m == ss.frames[ply].Killers[1]:
		return scoreKiller1
	case m == counterMove:
		return scoreCounter
	default:
		return scoreQuietBase + ss.history.get(us, m)
	}
}

// scoreCapture ranks violent moves by SEE sign (good trades ahead of bad
// ones) and, within a sign, by MVV-LVA.
func scoreCapture(pos *Position, m Move) int32 {
	mvvlva := mvvValue[m.Capture.Figure()]*64 - mvvValue[m.Piece().Figure()]
	if m.MoveType == Promotion {
		mvvlva += mvvValue[m.Target.Figure()]
	}
	if SeeSign(pos, m) {
		return scoreBadCapture + mvvlva
	}
	return scoreGoodCapture + mvvlva
}

type moveSorter struct {
	moves  []Move
	scores []int32
}

func (s *moveSorter) Len() int      { return len(s.moves) }
func (s *moveSorter) Swap(i, j int) {
	s.moves[i], s.moves[j] = s.moves[j], s.moves[i]
	s.scores[i], s.scores[j] = s.scores[j], s.scores[i]
}
func (s *moveSorter) Less(i, j int) bool { return s.scores[i] > s.scores[j] }
