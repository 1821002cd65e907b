// stack.go holds per-thread search memory: the ply-indexed stack frames
// alpha-beta recurses through, plus the history, killer, and counter-move
// tables move ordering consults. Each Lazy-SMP worker owns one of these
// exclusively, so nothing here needs synchronization.
//
// Grounded on the teacher's move_ordering.go (killer/counter-move shape)
// and engine.go (the per-search bookkeeping struct), adapted into a single
// explicit stack rather than state stored on the engine value.

package engine

const maxPly = 128

// StackFrame is the per-ply state alpha-beta threads through recursive
// calls: the window it was entered with, its static evaluation, the move
// currently being tried, and the two killer moves that have caused a beta
// cutoff at this ply before.
type StackFrame struct {
	Alpha, Beta int32
	StaticEval  int32
	InCheck     bool
	CurrentMove Move
	Excluded    Move
	Killers     [2]Move
}

// SearchStack is one thread's ply-indexed array of StackFrame plus its
// move-ordering memory tables and the tuning configuration search.go and
// quiescence.go consult for margins and depth limits.
type SearchStack struct {
	frames  [maxPly]StackFrame
	history historyTable
	counter counterTable
	Cfg     Config
}

// NewSearchStack returns a zeroed stack configured by cfg, ready for a
// new search.
func NewSearchStack(cfg Config) *SearchStack {
	return &SearchStack{Cfg: cfg}
}

// At returns the stack frame for ply, extending the backing array's
// effective length has no cost since it is fixed-size.
func (s *SearchStack) At(ply int) *StackFrame {
	return &s.frames[ply]
}

// AddKiller records m as a killer at ply if it isn't already the most
// recent one, demoting the previous top killer to second place.
func (s *SearchStack) AddKiller(ply int, m Move) {
	if !m.IsQuiet() {
		return
	}
	f := &s.frames[ply]
	if f.Killers[0] == m {
		return
	}
	f.Killers[1] = f.Killers[0]
	f.Killers[0] = m
}

// IsKiller reports whether m is one of ply's two killer moves.
func (s *SearchStack) IsKiller(ply int, m Move) bool {
	f := &s.frames[ply]
	return m == f.Killers[0] || m == f.Killers[1]
}

// historyTable scores quiet moves by how often they have caused a beta
// cutoff, indexed by the moving side, origin, and destination square.
type historyTable [ColorArraySize][64][64]int32

func (h *historyTable) add(us Color, m Move, depth int) {
	bonus := int32(depth * depth)
	v := &h[us][m.From][m.To]
	*v += bonus - *v*bonus/16384
}

func (h *historyTable) get(us Color, m Move) int32 {
	return h[us][m.From][m.To]
}

// counterTable records, for each (piece, destination) pair a side just
// played, the reply that most recently refuted it - the move ordering
// tries right after killers on the theory that the same reply often
// refutes the same threat again.
type counterTable [4 * FigureArraySize][64]Move

func (c *counterTable) set(prev Move, reply Move) {
	if prev == (Move{}) {
		return
	}
	c[prev.Target][prev.To] = reply
}

func (c *counterTable) get(prev Move) Move {
	if prev == (Move{}) {
		return Move{}
	}
	return c[prev.Target][prev.To]
}
