package uci

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odonata-engine/odonata/engine"
)

func newTestUCI() (*UCI, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, zerolog.Nop()), &buf
}

func TestUCICommandEmitsIdentityAndOptions(t *testing.T) {
	u, buf := newTestUCI()
	require.NoError(t, u.Execute("uci"))

	out := buf.String()
	assert.Contains(t, out, "id name Odonata")
	assert.Contains(t, out, "option name Threads")
	assert.Contains(t, out, "option name Hash")
	assert.Contains(t, out, "uciok")
}

func TestIsReadyRespondsReadyOk(t *testing.T) {
	u, buf := newTestUCI()
	require.NoError(t, u.Execute("isready"))
	assert.Contains(t, buf.String(), "readyok")
}

func TestQuitReturnsSentinelError(t *testing.T) {
	u, _ := newTestUCI()
	assert.Equal(t, errQuit, u.Execute("quit"))
}

func TestPositionStartposWithMoves(t *testing.T) {
	u, _ := newTestUCI()
	require.NoError(t, u.Execute("position startpos moves e2e4 e7e5"))

	assert.Equal(t, engine.White, u.pos.SideToMove)
	e6, err := engine.SquareFromString("e6")
	require.NoError(t, err)
	assert.Equal(t, e6, u.pos.EnpassantSquare)
}

func TestPositionFenRejectsGarbage(t *testing.T) {
	u, _ := newTestUCI()
	assert.Error(t, u.Execute("position fen not a fen here"))
}

func TestPositionMissingArgumentErrors(t *testing.T) {
	u, _ := newTestUCI()
	assert.Error(t, u.Execute("position"))
}

func TestSetOptionThreadsUpdatesConfigAndOptions(t *testing.T) {
	u, _ := newTestUCI()
	require.NoError(t, u.Execute("setoption name Threads value 4"))
	assert.Equal(t, 4, u.opts.Threads)
	assert.Equal(t, 4, u.cfg.Threads)
}

func TestSetOptionThreadsOutOfRangeErrors(t *testing.T) {
	u, _ := newTestUCI()
	assert.Error(t, u.Execute("setoption name Threads value 0"))
	assert.Error(t, u.Execute("setoption name Threads value 99999"))
}

func TestSetOptionHashRebuildsControl(t *testing.T) {
	u, _ := newTestUCI()
	oldCtrl := u.ctrl
	require.NoError(t, u.Execute("setoption name Hash value 128"))
	assert.Equal(t, 128, u.cfg.TT.SizeMB)
	assert.Equal(t, 128, u.opts.HashMB)
	assert.NotSame(t, oldCtrl, u.ctrl)
}

func TestSetOptionClearHashEmptiesTable(t *testing.T) {
	u, _ := newTestUCI()
	u.ctrl.TT.Store(1234, engine.PackedMove(1), 10, 1, engine.BoundExact, false, 0, true)

	require.NoError(t, u.Execute("setoption name Clear Hash"))
	_, ok := u.ctrl.TT.Probe(1234, 0, false)
	assert.False(t, ok)
}

func TestSetOptionMissingValueErrors(t *testing.T) {
	u, _ := newTestUCI()
	assert.Error(t, u.Execute("setoption name Threads"))
}

func TestSetOptionUnknownNameErrors(t *testing.T) {
	u, _ := newTestUCI()
	assert.Error(t, u.Execute("setoption name NotARealOption value 1"))
}

func TestSetOptionMultiPVUpdatesOptions(t *testing.T) {
	u, _ := newTestUCI()
	require.NoError(t, u.Execute("setoption name MultiPV value 3"))
	assert.Equal(t, 3, u.opts.MultiPV)
}

func TestSetOptionMultiPVOutOfRangeErrors(t *testing.T) {
	u, _ := newTestUCI()
	assert.Error(t, u.Execute("setoption name MultiPV value 0"))
}

func TestSetOptionPonderUpdatesOptions(t *testing.T) {
	u, _ := newTestUCI()
	require.NoError(t, u.Execute("setoption name Ponder value true"))
	assert.True(t, u.opts.Ponder)
}

func TestSetOptionOwnBookUpdatesOptions(t *testing.T) {
	u, _ := newTestUCI()
	require.NoError(t, u.Execute("setoption name OwnBook value true"))
	assert.True(t, u.opts.OwnBook)
}

func TestSetOptionUCIAnalyseModeUpdatesConfigAndOptions(t *testing.T) {
	u, _ := newTestUCI()
	require.NoError(t, u.Execute("setoption name UCI_AnalyseMode value true"))
	assert.True(t, u.opts.UCIAnalyseMode)
	assert.True(t, u.cfg.Deterministic)
}

func TestSetOptionMalformedLineErrors(t *testing.T) {
	u, _ := newTestUCI()
	assert.Error(t, u.Execute("setoption nam Threads value 1"))
}

func TestGoCommandParsesDepthIntoTimeManager(t *testing.T) {
	u, _ := newTestUCI()
	require.NoError(t, u.Execute("position startpos"))
	require.NoError(t, u.Execute("go depth 7"))
	assert.Equal(t, 7, u.tm.Depth)
	require.NoError(t, u.Execute("stop"))
}

func TestGoCommandRejectsUnknownArgument(t *testing.T) {
	u, _ := newTestUCI()
	require.NoError(t, u.Execute("position startpos"))
	assert.Error(t, u.Execute("go frobnicate"))
}

func TestStopWithNoSearchInFlightDoesNotBlock(t *testing.T) {
	u, _ := newTestUCI()
	done := make(chan struct{})
	go func() {
		u.Execute("stop")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop blocked with no search in flight")
	}
}

func TestPositionCommandDoesNotBlockWhenIdle(t *testing.T) {
	u, _ := newTestUCI()
	done := make(chan struct{})
	go func() {
		u.Execute("position startpos")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("position blocked with no search in flight")
	}
}

// TestStopWaitsForInFlightSearchToFinish exercises the idle-token
// handshake directly: stop must not return until play() has actually
// printed its bestmove and released the token, never racing ahead of it.
func TestStopWaitsForInFlightSearchToFinish(t *testing.T) {
	u, buf := newTestUCI()
	require.NoError(t, u.Execute("position startpos"))
	require.NoError(t, u.Execute("go depth 2"))
	require.NoError(t, u.Execute("stop"))
	assert.Contains(t, buf.String(), "bestmove")
}

func TestBoardCommandPrintsFenAndKey(t *testing.T) {
	u, buf := newTestUCI()
	require.NoError(t, u.Execute("d"))
	out := buf.String()
	assert.Contains(t, out, "Fen:")
	assert.Contains(t, out, "Key:")
}

func TestEvalCommandPrintsScore(t *testing.T) {
	u, buf := newTestUCI()
	require.NoError(t, u.Execute("eval"))
	assert.Contains(t, buf.String(), "info string eval")
}

func TestPerftCommandPrintsNodeCount(t *testing.T) {
	u, buf := newTestUCI()
	require.NoError(t, u.Execute("perft 2"))
	assert.Contains(t, buf.String(), "perft(2) = 400")
}

func TestPerftCommandRejectsBadDepth(t *testing.T) {
	u, _ := newTestUCI()
	assert.Error(t, u.Execute("perft notanumber"))
}
