// tt.go implements the shared transposition table. Every Lazy-SMP search
// thread probes and stores into the same table concurrently without a
// lock: each slot is two atomic words, the packed entry and the position
// key XORed with that entry, so a torn write (one thread's store
// interleaved with another's) is detected by reading both words twice and
// comparing - the corrupted slot is then treated as a miss rather than
// trusted, and counted and logged as an InternalInvariantViolation once
// past the logging threshold so a persistently racing table is visible
// without flooding the log.
//
// Grounded on the teacher's hash_table.go for the overall shape (bounds,
// depth-preferred replacement, power-of-two sizing by megabytes) but
// reworked from a plain slice of structs into the lock-free XOR-trick
// scheme needed for concurrent access, and bucketed two entries per
// index rather than the teacher's two-probe rehash.

package engine

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Bound classifies how a stored score relates to the search window that
// produced it.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower // fail-high: true score is at least the stored score
	BoundUpper // fail-low: true score is at most the stored score
)

// ttData is a transposition table entry packed into 64 bits:
//
//	bits 0-15  packed move (PackedMove)
//	bits 16-31 score, offset by 1<<15 so it stores as unsigned
//	bits 32-39 depth, offset by 1<<6 so negative depths (quiescence) fit
//	bits 40-41 bound
//	bit  42    pv: this entry was stored from a PV node
//	bits 43-48 age: generation counter, for replacement
type ttData uint64

const (
	ttScoreBias = 1 << 15
	ttDepthBias = 1 << 6
)

func packTTData(move PackedMove, score int32, depth int, bound Bound, pv bool, age uint8) ttData {
	d := ttData(move)
	d |= ttData(uint32(score+ttScoreBias)&0xffff) << 16
	d |= ttData(uint8(depth+ttDepthBias)) << 32
	d |= ttData(bound) << 40
	if pv {
		d |= 1 << 42
	}
	d |= ttData(age&0x3f) << 43
	return d
}

func (d ttData) move() PackedMove { return PackedMove(d & 0xffff) }
func (d ttData) score() int32     { return int32((d>>16)&0xffff) - ttScoreBias }
func (d ttData) depth() int       { return int(uint8((d>>32)&0xff)) - ttDepthBias }
func (d ttData) bound() Bound     { return Bound((d >> 40) & 0x3) }
func (d ttData) pv() bool         { return d&(1<<42) != 0 }
func (d ttData) age() uint8       { return uint8((d >> 43) & 0x3f) }

// Entry is the resolved, ply-adjusted view of a transposition table probe.
type Entry struct {
	Move  PackedMove
	Score int32
	Depth int
	Bound Bound
	PV    bool
}

type ttSlot struct {
	keyXorData atomic.Uint64
	data       atomic.Uint64
}

// load reads a slot's two atomic words twice, comparing the pairs: if
// either word changed between the first read and the second, a concurrent
// Store raced with this load and torn is true - the returned key/data must
// not be trusted. This is stronger than just re-deriving the key from the
// XOR and checking it against what the caller expected: that alone cannot
// tell a torn write apart from the slot simply holding a different key, but
// two words disagreeing across back-to-back reads can only mean a write
// landed mid-read.
func (s *ttSlot) load() (key uint64, data ttData, ok bool, torn bool) {
	d1 := s.data.Load()
	kx1 := s.keyXorData.Load()
	d2 := s.data.Load()
	kx2 := s.keyXorData.Load()
	if d1 != d2 || kx1 != kx2 {
		return 0, 0, false, true
	}
	return kx1 ^ d1, ttData(d1), d1 != 0 || kx1 != 0, false
}

func (s *ttSlot) store(key uint64, data ttData) {
	s.data.Store(uint64(data))
	s.keyXorData.Store(key ^ uint64(data))
}

const bucketWidth = 2

type bucket struct {
	slots [bucketWidth]ttSlot
}

// Table is a fixed-size, lock-free, concurrently accessible transposition
// table shared by every Lazy-SMP search thread.
type Table struct {
	buckets   []bucket
	mask      uint64
	age       atomic.Uint32
	tornReads atomic.Uint64
	log       zerolog.Logger
}

// NewTable builds a transposition table sized to approximately sizeMB
// megabytes, rounded down to a power of two number of buckets.
func NewTable(sizeMB int) *Table {
	if sizeMB < 1 {
		sizeMB = 1
	}
	const bucketSize = 32 // two 16-byte slots
	n := uint64(sizeMB) << 20 / bucketSize
	if n == 0 {
		n = 1
	}
	for n&(n-1) != 0 {
		n &= n - 1
	}
	return &Table{buckets: make([]bucket, n), mask: n - 1, log: zerolog.Nop()}
}

// SetLogger wires t's invariant-violation diagnostics (currently: torn
// reads) through log instead of the default no-op logger.
func (t *Table) SetLogger(log zerolog.Logger) {
	t.log = log
}

// TornReads returns the number of torn reads observed so far: slots whose
// two atomic words disagreed across back-to-back loads because a Store
// raced with the read. Exposed for tests and diagnostics; Probe already
// treats every torn read as a miss.
func (t *Table) TornReads() uint64 {
	return t.tornReads.Load()
}

const tornReadLogThreshold = 1000

// recordTornRead counts a torn read and logs it at Error once on the first
// occurrence and then once every tornReadLogThreshold occurrences, so a
// persistently racing table doesn't flood the log.
func (t *Table) recordTornRead() {
	n := t.tornReads.Add(1)
	if n == 1 || n%tornReadLogThreshold == 0 {
		t.log.Error().
			Str("kind", "InternalInvariantViolation").
			Uint64("torn_reads_total", n).
			Msg("transposition table entry failed its XOR self-check, treating as a miss")
	}
}

// NewGeneration bumps the age counter, marking every existing entry stale
// for replacement purposes without erasing the table.
func (t *Table) NewGeneration() {
	t.age.Add(1)
}

// Clear zeroes every entry.
func (t *Table) Clear() {
	for i := range t.buckets {
		for j := range t.buckets[i].slots {
			t.buckets[i].slots[j].data.Store(0)
			t.buckets[i].slots[j].keyXorData.Store(0)
		}
	}
}

// Probe looks up key (the position's Zobrist hash) and, if found and not
// torn, returns its entry with the stored mate score rebased from "plies
// from this node" to "plies from the root" using ply. When freshen is set
// (TTConfig.FreshenOnFetch), a hit has its age bumped to the table's
// current generation in place, so entries that keep getting probed don't
// lose replacement priority just because a NewGeneration happened since
// they were stored.
func (t *Table) Probe(key uint64, ply int, freshen bool) (Entry, bool) {
	b := &t.buckets[key&t.mask]
	for i := range b.slots {
		k, d, any, torn := b.slots[i].load()
		if torn {
			t.recordTornRead()
			continue
		}
		if !any || k != key || d == 0 {
			continue
		}
		if freshen {
			age := uint8(t.age.Load()) & 0x3f
			if d.age() != age {
				b.slots[i].store(key, packTTData(d.move(), d.score(), d.depth(), d.bound(), d.pv(), age))
			}
		}
		return Entry{
			Move:  d.move(),
			Score: scoreFromTT(d.score(), ply),
			Depth: d.depth(),
			Bound: d.bound(),
			PV:    d.pv(),
		}, true
	}
	return Entry{}, false
}

// boundRank orders bounds by how useful they are to keep around on a
// replacement decision: an exact score is worth the most, a one-sided
// bound less, and an empty slot nothing.
func boundRank(b Bound) int {
	switch b {
	case BoundExact:
		return 2
	case BoundLower, BoundUpper:
		return 1
	default:
		return 0
	}
}

// replaceScore ranks how evictable d is relative to the table's current
// generation: highest priority to age (a stale entry from several
// generations back goes first), then bound type (exact-over-bounds-over-
// nothing), then the pv bit (a PV entry is kept over a non-PV one), and
// finally depth (shallower searches go first). Higher is more evictable.
func replaceScore(currentAge uint8, d ttData) int {
	staleness := int(currentAge - d.age())
	evictBound := 2 - boundRank(d.bound())
	evictPV := 0
	if !d.pv() {
		evictPV = 1
	}
	return staleness*1_000_000 + evictBound*10_000 + evictPV*100 - d.depth()
}

// Store records an entry for key, replacing whichever of the bucket's two
// slots is least valuable to keep under the AgeTypeDepth policy (see
// replaceScore). A same-key hit is always checked for overwrite first: if
// the existing entry is a deeper PV line and this store is neither a PV
// store nor permitted to clobber one (rewritePV, from TTConfig.RewritePV),
// the existing entry survives untouched.
func (t *Table) Store(key uint64, move PackedMove, score int32, depth int, bound Bound, pv bool, ply int, rewritePV bool) {
	age := uint8(t.age.Load()) & 0x3f
	data := packTTData(move, scoreToTT(score, ply), depth, bound, pv, age)

	b := &t.buckets[key&t.mask]
	victim := 0
	victimScore := -1 << 30
	for i := range b.slots {
		k, d, any, torn := b.slots[i].load()
		if torn {
			t.recordTornRead()
			victim = i
			break
		}
		if !any || d == 0 {
			victim = i
			break
		}
		if k == key {
			if d.pv() && !pv && !rewritePV && d.depth() > depth {
				return
			}
			victim = i
			break
		}
		score := replaceScore(age, d)
		if score > victimScore {
			victimScore = score
			victim = i
		}
	}
	b.slots[victim].store(key, data)
}

const hashFullSampleBuckets = 1000

// HashFull estimates, in permille, how much of the table is occupied by
// entries from the current generation - the UCI `hashfull` field. Sampling
// the first hashFullSampleBuckets buckets (or all of them, if fewer) keeps
// the estimate cheap on a table with millions of buckets.
func (t *Table) HashFull() int {
	n := len(t.buckets)
	if n > hashFullSampleBuckets {
		n = hashFullSampleBuckets
	}
	if n == 0 {
		return 0
	}
	age := uint8(t.age.Load()) & 0x3f
	used, total := 0, 0
	for i := 0; i < n; i++ {
		for j := range t.buckets[i].slots {
			total++
			_, d, any, torn := t.buckets[i].slots[j].load()
			if torn {
				t.recordTornRead()
				continue
			}
			if any && d != 0 && d.age() == age {
				used++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return used * 1000 / total
}

// scoreToTT rewrites a mate score from "plies from the root" to "plies
// from this node", so the same stored value is correct however deep in
// the tree it is later probed from.
func scoreToTT(score int32, ply int) int32 {
	switch {
	case score >= KnownWinScore:
		return score + int32(ply)
	case score <= KnownLossScore:
		return score - int32(ply)
	default:
		return score
	}
}

func scoreFromTT(score int32, ply int) int32 {
	switch {
	case score >= KnownWinScore:
		return score - int32(ply)
	case score <= KnownLossScore:
		return score + int32(ply)
	default:
		return score
	}
}
