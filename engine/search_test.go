package engine

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFindsMateInOne(t *testing.T) {
	pos, err := PositionFromFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	require.NoError(t, err)

	tm := NewFixedDepthTimeManager(pos, 4)
	ctrl := NewControl(DefaultConfig())

	var results []Result
	pv := Search(pos, tm, ctrl, nil, nil, func(r Result) { results = append(results, r) })

	require.NotEmpty(t, results)
	last := results[len(results)-1]
	assert.Equal(t, MateIn(1), last.Score)
	assert.Equal(t, "a1a8", last.Best.UCI())
	require.NotEmpty(t, pv)
	assert.Equal(t, "a1a8", pv[0].UCI())
}

func TestSearchStalematePositionScoresZeroWithNoMove(t *testing.T) {
	pos, err := PositionFromFEN("7k/5K2/6Q1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	tm := NewFixedDepthTimeManager(pos, 2)
	ctrl := NewControl(DefaultConfig())

	var results []Result
	pv := Search(pos, tm, ctrl, nil, nil, func(r Result) { results = append(results, r) })

	require.NotEmpty(t, results)
	last := results[len(results)-1]
	assert.Equal(t, int32(0), last.Score)
	assert.Equal(t, "0000", last.Best.UCI())
	assert.Empty(t, pv)
}

func newTestThread(pos *Position, cfg Config) *Thread {
	return &Thread{
		Pos:     pos,
		Stack:   NewSearchStack(cfg),
		Nodes:   new(atomic.Uint64),
		Stopped: new(atomic.Bool),
		Log:     NopLogger{},
	}
}

func TestNegamaxReturnsStaticEvalAtMaxPly(t *testing.T) {
	pos := StartPosition()
	th := newTestThread(pos, DefaultConfig())
	th.rootPly = pos.Ply - maxPly

	require.Equal(t, maxPly, th.ply())
	assert.Equal(t, Evaluate(pos), th.Negamax(-InfinityScore, InfinityScore, 4))
}

func TestNegamaxCountsCacheMissThenCacheHitOnSecondProbe(t *testing.T) {
	pos, err := PositionFromFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)
	th := newTestThread(pos, DefaultConfig())
	th.TT = NewTable(1)

	th.Negamax(-InfinityScore, InfinityScore, 3)
	assert.Equal(t, uint64(0), th.stats.CacheHit)
	assert.Greater(t, th.stats.CacheMiss, uint64(0))

	missesBefore := th.stats.CacheMiss
	th.Negamax(-InfinityScore, InfinityScore, 3)
	assert.Greater(t, th.stats.CacheHit, uint64(0), "the second search should hit entries the first one stored")
	assert.GreaterOrEqual(t, th.stats.CacheMiss, missesBefore)
}

func TestEndPositionDetectsInsufficientMaterial(t *testing.T) {
	pos, err := PositionFromFEN("8/8/8/4k3/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	th := newTestThread(pos, DefaultConfig())

	score, done := th.endPosition()
	assert.True(t, done)
	assert.Equal(t, int32(0), score)
}

func TestEndPositionDetectsFiftyMoveDraw(t *testing.T) {
	pos, err := PositionFromFEN("8/8/8/4k3/8/8/3R4/4K3 w - - 100 80")
	require.NoError(t, err)
	th := newTestThread(pos, DefaultConfig())

	score, done := th.endPosition()
	assert.True(t, done)
	assert.Equal(t, int32(0), score)
}

func TestEndPositionRepetitionOnlyAppliesAwayFromRoot(t *testing.T) {
	pos := StartPosition()
	moves := []string{
		"g1f3", "g8f6", "f3g1", "f6g8",
		"g1f3", "g8f6", "f3g1", "f6g8",
		"g1f3", "g8f6", "f3g1", "f6g8",
	}
	for _, uci := range moves {
		pos.DoMove(findMove(t, pos, uci))
	}
	require.True(t, pos.IsThreefoldRepetition())

	th := newTestThread(pos, DefaultConfig())

	// th.rootPly == pos.Ply means ply() == 0: the repetition check is
	// skipped at the root so the root position is always searched.
	th.rootPly = pos.Ply
	_, done := th.endPosition()
	assert.False(t, done)

	// Any ply beyond the root does apply the repetition check.
	th.rootPly = 0
	score, done := th.endPosition()
	assert.True(t, done)
	assert.Equal(t, int32(0), score)
}
