package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedDepthTimeManagerCapsNextDepth(t *testing.T) {
	pos := StartPosition()
	tm := NewFixedDepthTimeManager(pos, 4)
	tm.Start(false)

	assert.True(t, tm.NextDepth(1))
	assert.True(t, tm.NextDepth(4))
	assert.False(t, tm.NextDepth(5))
}

func TestNextDepthAlwaysAllowsShallowDepths(t *testing.T) {
	pos := StartPosition()
	tm := NewTimeManager(pos, false) // generous default Depth of 64
	tm.Start(false)
	tm.Stop() // simulate the deadline already having passed

	// Depths 1 and 2 are always allowed so a move exists under time
	// pressure, even once stopped.
	assert.True(t, tm.NextDepth(2))
	assert.False(t, tm.NextDepth(3))
}

func TestStopMarksStopped(t *testing.T) {
	pos := StartPosition()
	tm := NewTimeManager(pos, false)
	tm.Start(false)
	assert.False(t, tm.Stopped())
	tm.Stop()
	assert.True(t, tm.Stopped())
}

func TestDeadlineTimeManagerStopsAfterBudget(t *testing.T) {
	pos := StartPosition()
	tm := NewDeadlineTimeManager(pos, time.Millisecond)
	tm.Start(false)
	assert.Eventually(t, tm.Stopped, 200*time.Millisecond, time.Millisecond)
}

func TestNotifyBestMoveExtendsDeadlineOnlyOnce(t *testing.T) {
	pos := StartPosition()
	tm := NewTimeManager(pos, false)
	tm.Start(false)

	tm.NotifyBestMove(true)
	assert.Equal(t, 0, tm.stability)
	assert.True(t, tm.overspent)
	extended := tm.searchDeadline

	tm.NotifyBestMove(true)
	assert.Equal(t, extended, tm.searchDeadline, "a second change should not extend the deadline again")
}

func TestNotifyBestMoveStableIncrementsStability(t *testing.T) {
	pos := StartPosition()
	tm := NewTimeManager(pos, false)
	tm.Start(false)

	tm.NotifyBestMove(false)
	assert.Equal(t, 1, tm.stability)
	tm.NotifyBestMove(false)
	assert.Equal(t, 2, tm.stability)
}

func TestPonderHitSwitchesToOwnClock(t *testing.T) {
	pos := StartPosition()
	tm := NewTimeManager(pos, false)
	tm.Start(true)
	assert.False(t, tm.ponderhit.Load())

	tm.PonderHit()
	assert.True(t, tm.ponderhit.Load())
}

func TestPredictedTrimsBranchFactor(t *testing.T) {
	// A position with enough pieces that the piece-count loop alone grants
	// at least one extra branch factor above defaultBranchFactor, so a
	// predicted hit has room to trim one back off.
	pos := StartPosition()

	cold := NewTimeManager(pos, false)
	cold.WTime, cold.WInc = time.Hour, 0
	cold.Start(false)

	warm := NewTimeManager(pos, true)
	warm.WTime, warm.WInc = time.Hour, 0
	warm.Start(false)

	assert.Greater(t, warm.searchTime, cold.searchTime,
		"a predicted hit should divide by a smaller branch factor, yielding more search time")
}

func TestAbortedOnlyWhenStoppedBeforePonderHit(t *testing.T) {
	pos := StartPosition()
	tm := NewTimeManager(pos, false)
	tm.Start(true)

	tm.Stop()
	assert.True(t, tm.Aborted())

	tm.PonderHit()
	assert.False(t, tm.Aborted())
}
