// timeman.go budgets how long iterative deepening is allowed to keep
// searching: a per-move time slice derived from the clock, an increment,
// and an assumed branching factor, extended when the best move looks
// unstable and polled only every checkEvery nodes to keep the check cheap.
//
// Grounded on the teacher's time_control.go: same branching-factor
// formula and ponder/deadline handling, rewritten onto atomic.Bool instead
// of a mutex-guarded flag and extended with instability overspend and
// explicit node-count polling (Thread.checkTimeAndStop, every CheckEvery
// nodes).

package engine

import (
	"math"
	"sync/atomic"
	"time"
)

const defaultBranchFactor = 2

// defaultMovesToGo is NewTimeManager's moves-to-go assumption.
const defaultMovesToGo = 30

// TimeManager decides how long a single `go` command is allowed to run.
type TimeManager struct {
	WTime, WInc time.Duration
	BTime, BInc time.Duration
	Depth       int // maximum depth, inclusive
	MovesToGo   int

	// CheckEvery is how many nodes pass between polls of the deadline.
	// Kept coarse since time.Now() is not free at billions of calls/sec.
	CheckEvery uint64

	numPieces  int
	sideToMove Color
	predicted  bool

	stopped   atomic.Bool
	ponderhit atomic.Bool

	searchTime     time.Duration
	searchDeadline time.Time
	ponderTime     time.Duration
	ponderDeadline time.Time

	// stability tracks how many consecutive iterations agreed on the best
	// move; an iteration that changes its mind earns the search a one-time
	// extension of the deadline, up to overspendFactor of the base budget.
	stability       int
	overspent       bool
	baseSearch      time.Duration
	overspendFactor float64
}

const overspendFactor = 2.0

// ApplyConfig overrides the manager's overspend factor and node-polling
// interval from cfg, and its moves-to-go assumption while that still holds
// NewTimeManager's default (a value set by a constructor or by the `go`
// command's movestogo/movetime is kept). Called once before Start.
func (tm *TimeManager) ApplyConfig(cfg MoveTimeConfig) {
	if cfg.MovesToGo > 0 && tm.MovesToGo == defaultMovesToGo {
		tm.MovesToGo = cfg.MovesToGo
	}
	if cfg.CheckEvery > 0 {
		tm.CheckEvery = cfg.CheckEvery
	}
	if cfg.OverspendFactor > 0 {
		tm.overspendFactor = cfg.OverspendFactor
	}
}

// NewTimeManager returns a manager with no limits, to be configured by the
// UCI `go` command's parameters before Start. predicted reports whether the
// opponent played the move this engine predicted and pondered on last time
// it searched from this game: when true, Start trims a ply off the assumed
// branching factor, since the position has already had a head start warming
// the transposition table instead of being searched cold.
func NewTimeManager(pos *Position, predicted bool) *TimeManager {
	inf := time.Duration(math.MaxInt64)
	return &TimeManager{
		WTime: inf, BTime: inf,
		Depth:      64,
		MovesToGo:  defaultMovesToGo,
		CheckEvery: 2048,
		numPieces:       pos.Occupied().Popcnt(),
		sideToMove:      pos.SideToMove,
		predicted:       predicted,
		overspendFactor: overspendFactor,
	}
}

// NewFixedDepthTimeManager returns a manager with no time limit, stopping
// only once depth is reached - used for `go depth N` and for tests.
func NewFixedDepthTimeManager(pos *Position, depth int) *TimeManager {
	tm := NewTimeManager(pos, false)
	tm.Depth = depth
	tm.MovesToGo = 1
	return tm
}

// NewDeadlineTimeManager returns a manager with a fixed wall-clock budget
// and no depth limit - used for `go movetime N`.
func NewDeadlineTimeManager(pos *Position, budget time.Duration) *TimeManager {
	tm := NewTimeManager(pos, false)
	tm.WTime, tm.BTime = budget, budget
	tm.MovesToGo = 1
	return tm
}

func (tm *TimeManager) thinkingTime(t, inc time.Duration) time.Duration {
	n := time.Duration(tm.MovesToGo)
	if tt := (t + (n-1)*inc) / n; tt < t {
		return tt
	}
	return t
}

// Start commits the manager to a wall-clock deadline. Call once, as soon
// as possible after `go` is received, so the clock starts accurately.
func (tm *TimeManager) Start(ponder bool) {
	branchFactor := time.Duration(defaultBranchFactor)
	for np := tm.numPieces - 2; np > 0; np /= 6 {
		branchFactor++
	}
	for i := 4; i > 0; i /= 2 {
		if tm.MovesToGo <= i {
			branchFactor++
		}
	}
	if tm.predicted && branchFactor > defaultBranchFactor {
		branchFactor--
	}

	var ownTime, ownInc, theirTime, theirInc time.Duration
	if tm.sideToMove == White {
		ownTime, ownInc, theirTime, theirInc = tm.WTime, tm.WInc, tm.BTime, tm.BInc
	} else {
		ownTime, ownInc, theirTime, theirInc = tm.BTime, tm.BInc, tm.WTime, tm.WInc
	}

	tm.stopped.Store(false)
	tm.ponderhit.Store(!ponder)
	tm.stability = 0
	tm.overspent = false

	tm.baseSearch = tm.thinkingTime(ownTime, ownInc) / branchFactor
	tm.searchTime = tm.baseSearch
	tm.ponderTime = (tm.thinkingTime(theirTime, theirInc) + tm.searchTime/2) / branchFactor

	now := time.Now()
	tm.searchDeadline = now.Add(tm.searchTime)
	tm.ponderDeadline = now.Add(tm.ponderTime)
}

// NextDepth reports whether iterative deepening may start searching
// depth. Always allows depth <= 2 so a move is available even under
// extreme time pressure.
func (tm *TimeManager) NextDepth(depth int) bool {
	return depth <= tm.Depth && (depth <= 2 || !tm.Stopped())
}

// NotifyBestMove tells the manager whether this iteration's best move
// matches the previous iteration's. A change resets stability and, once
// per search, grants a one-time extension to the deadline - an unstable
// best move is exactly when cutting the search short is most costly.
func (tm *TimeManager) NotifyBestMove(changed bool) {
	if changed {
		tm.stability = 0
		if !tm.overspent {
			tm.overspent = true
			extended := time.Duration(float64(tm.baseSearch) * tm.overspendFactor)
			tm.searchDeadline = time.Now().Add(extended)
		}
		return
	}
	tm.stability++
}

// PonderHit switches the manager from pondering to its own clock.
func (tm *TimeManager) PonderHit() {
	tm.searchDeadline = time.Now().Add(tm.searchTime)
	tm.ponderhit.Store(true)
}

// Stop marks the search stopped; its result will still be used.
func (tm *TimeManager) Stop() {
	tm.stopped.Store(true)
}

// Stopped reports whether the deadline (ponder or search) has passed.
func (tm *TimeManager) Stopped() bool {
	if tm.stopped.Load() {
		return true
	}
	if tm.ponderhit.Load() && time.Now().After(tm.searchDeadline) {
		tm.stopped.Store(true)
		return true
	}
	if !tm.ponderhit.Load() && time.Now().After(tm.ponderDeadline) {
		tm.stopped.Store(true)
		return true
	}
	return false
}

// Aborted reports whether a ponder search was cut short before a
// ponderhit arrived, as opposed to running out its own clock.
func (tm *TimeManager) Aborted() bool {
	return !tm.ponderhit.Load() && tm.stopped.Load()
}
