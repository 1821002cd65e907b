// smp.go coordinates a Lazy-SMP search: one main thread whose principal
// variation is trusted, and cfg.Threads-1 helper threads that search the
// same position concurrently purely to populate the shared table before
// the main thread's next iteration reaches the same nodes.
//
// Grounded on domino14/macondo's endgame solver (its errgroup-based helper
// pool, one goroutine per extra thread, skewed per-thread search depths so
// helpers explore different parts of the tree instead of repeating the
// main thread's work) adapted onto this package's Thread/TimeManager/
// Control instead of macondo's game-state-stack threading model.

package engine

import "golang.org/x/sync/errgroup"

// Search runs iterative deepening on pos using ctrl.Cfg.Threads workers
// that all share ctrl's table, node counter and stop flag, and tm's
// deadline. It returns the principal variation found by the main thread
// once tm's deadline or depth limit stops the search. onIteration is
// called only for the main thread's completed iterations.
func Search(pos *Position, tm *TimeManager, ctrl *Control, log Logger, rootMoves []Move, onIteration func(Result)) []Move {
	ctrl.Reset()
	tm.ApplyConfig(ctrl.Cfg.MoveTime)
	tm.Start(false)

	threads := ctrl.Cfg.Threads
	if threads < 1 {
		threads = 1
	}
	if log == nil {
		log = NopLogger{}
	}

	var g errgroup.Group
	for id := 1; id < threads; id++ {
		id := id
		g.Go(func() error {
			th := NewThread(id, pos, ctrl.Cfg, ctrl.TT, tm, &ctrl.Nodes, &ctrl.Stopped)
			th.DepthSkew = id % 3
			th.RootMoves = rootMoves
			th.IterativeDeepen(nil)
			return nil
		})
	}

	main := NewThread(0, pos, ctrl.Cfg, ctrl.TT, tm, &ctrl.Nodes, &ctrl.Stopped)
	main.Log = log
	main.RootMoves = rootMoves
	pv := main.IterativeDeepen(onIteration)

	ctrl.Stop()
	tm.Stop()
	g.Wait()

	return pv
}
