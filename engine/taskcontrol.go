// taskcontrol.go holds the state every Lazy-SMP worker thread shares: one
// transposition table, one node counter, one stop flag, all reachable
// without a lock since Table is already safe for concurrent access and the
// counter/flag are atomics.
//
// Grounded on the teacher's engine.go (the package-level Engine holding a
// single shared HashTable and stop channel other goroutines watched),
// adapted into an explicit value passed to every Thread instead of global
// state, so more than one search can exist at once (e.g. under test).

package engine

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Control is the state shared by every thread of one Lazy-SMP search: the
// table they all probe and store into, and the counters search.go consults
// to decide whether to keep going.
type Control struct {
	TT      *Table
	Cfg     Config
	Nodes   atomic.Uint64
	Stopped atomic.Bool
}

// NewControl returns a Control with a table sized from cfg.TT.SizeMB.
func NewControl(cfg Config) *Control {
	return &Control{TT: NewTable(cfg.TT.SizeMB), Cfg: cfg}
}

// Reset prepares c for a new `go` command: the node counter and stop flag
// go back to zero, and the table's generation advances so stale entries
// lose replacement priority without being erased.
func (c *Control) Reset() {
	c.Nodes.Store(0)
	c.Stopped.Store(false)
	c.TT.NewGeneration()
}

// Stop signals every thread sharing c to return from its current Negamax
// call as soon as it next checks in.
func (c *Control) Stop() {
	c.Stopped.Store(true)
}

// SetLogger wires c's transposition table to log its invariant-violation
// diagnostics through log.
func (c *Control) SetLogger(log zerolog.Logger) {
	c.TT.SetLogger(log)
}
