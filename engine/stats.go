// stats.go collects search statistics and defines how progress is
// reported during a search. Grounded on the teacher's engine.go (the
// Stats struct and Logger interface), adapted to the Table-based cache
// hit accounting and wired to zerolog instead of the teacher's ad-hoc
// stdout Printf logger.

package engine

import (
	"time"

	"github.com/rs/zerolog"
)

// Stats accumulates counters for one search, read by the UCI layer to
// build `info` lines and by the time manager's instrumentation.
type Stats struct {
	Nodes     uint64
	CacheHit  uint64
	CacheMiss uint64
	Depth     int32
	SelDepth  int32
}

// CacheHitRatio returns the fraction of transposition table probes that
// hit, or 0 if none were made yet.
func (s *Stats) CacheHitRatio() float64 {
	total := s.CacheHit + s.CacheMiss
	if total == 0 {
		return 0
	}
	return float64(s.CacheHit) / float64(total)
}

// Logger is notified of search progress. The UCI adapter implements this
// to turn iterations into `info` lines; tests and library callers can use
// NopLogger.
type Logger interface {
	BeginSearch()
	EndSearch()
	PrintPV(stats Stats, elapsed time.Duration, score int32, pv []Move, multiPV int, hashFull int)
}

// NopLogger discards every event, the default when no UCI session is
// attached (e.g. when the engine is driven as a plain library).
type NopLogger struct{}

func (NopLogger) BeginSearch()                                            {}
func (NopLogger) EndSearch()                                              {}
func (NopLogger) PrintPV(Stats, time.Duration, int32, []Move, int, int)   {}

// ZerologLogger logs search progress through zerolog, the structured
// logger the rest of this module's ambient stack uses.
type ZerologLogger struct {
	Log zerolog.Logger
}

func (l ZerologLogger) BeginSearch() {
	l.Log.Debug().Msg("search started")
}

func (l ZerologLogger) EndSearch() {
	l.Log.Debug().Msg("search finished")
}

func (l ZerologLogger) PrintPV(stats Stats, elapsed time.Duration, score int32, pv []Move, multiPV int, hashFull int) {
	ev := l.Log.Info().
		Int32("depth", stats.Depth).
		Int32("seldepth", stats.SelDepth).
		Uint64("nodes", stats.Nodes).
		Dur("time", elapsed).
		Int32("score_cp", score).
		Int("multipv", multiPV).
		Int("hashfull", hashFull).
		Float64("cache_hit_ratio", stats.CacheHitRatio())
	if stats.Nodes > 0 && elapsed > 0 {
		ev = ev.Uint64("nps", uint64(float64(stats.Nodes)/elapsed.Seconds()))
	}
	strs := make([]string, len(pv))
	for i, m := range pv {
		strs[i] = m.UCI()
	}
	ev.Strs("pv", strs).Msg("iteration complete")
}
