// logger.go implements engine.Logger by writing UCI `info` lines, the
// protocol's only channel for reporting search progress mid-search.
//
// Grounded on the teacher's zurichess/uci.go uciLogger (buffered Fprintf
// building one info line per completed iteration, mate score rewritten in
// moves rather than plies) adapted to the stats.Logger interface's
// signature and written straight to the session's configured writer
// instead of a package-level stdout buffer.

package uci

import (
	"fmt"
	"io"
	"time"

	"github.com/odonata-engine/odonata/engine"
)

type infoLogger struct {
	out   io.Writer
	start time.Time
}

func (l *infoLogger) BeginSearch() {
	l.start = time.Now()
}

func (l *infoLogger) EndSearch() {}

func (l *infoLogger) PrintPV(stats engine.Stats, elapsed time.Duration, score int32, pv []engine.Move, multiPV int, hashFull int) {
	var scoreStr string
	switch {
	case score >= engine.KnownWinScore:
		scoreStr = fmt.Sprintf("mate %d", (engine.MateScore-score+1)/2)
	case score <= engine.KnownLossScore:
		scoreStr = fmt.Sprintf("mate %d", (engine.MatedScore-score)/2)
	default:
		scoreStr = fmt.Sprintf("cp %d", score)
	}

	nanos := elapsed.Nanoseconds()
	if nanos <= 0 {
		nanos = int64(time.Microsecond)
	}
	millis := nanos / int64(time.Millisecond)
	nps := stats.Nodes * uint64(time.Second) / uint64(nanos)

	fmt.Fprintf(l.out, "info depth %d seldepth %d multipv %d score %s nodes %d time %d nps %d hashfull %d pv",
		stats.Depth, stats.SelDepth, multiPV, scoreStr, stats.Nodes, millis, nps, hashFull)
	for _, m := range pv {
		fmt.Fprintf(l.out, " %s", m.UCI())
	}
	fmt.Fprintln(l.out)
}
