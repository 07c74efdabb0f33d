package engine

import (
	"fmt"
	"math/bits"
	"sync/atomic"
)

const wordBits = 64

// Arena is the eliminated-number array for one computation: one flag per
// integer in [0, n], packed 64 to a word. A set bit means "still a candidate
// prime". Flags are only ever cleared once the arena has been built, and every
// access goes through sync/atomic so workers can share words at chunk seams.
type Arena struct {
	words []uint64
	n     uint64
}

// arenaWords is the number of uint64 words needed to hold flags 0..n.
func arenaWords(n uint64) uint64 { return n/wordBits + 1 }

// ArenaBytes reports how many bytes NewArena(n) allocates.
func ArenaBytes(n uint64) uint64 { return arenaWords(n) * 8 }

// NewArena allocates flags for 0..n, sets them all and clears 0 and 1.
// It does not check memory: a failed allocation is fatal to the runtime, so
// callers size the arena with CheckBound against a memory limit first.
func NewArena(n uint64) (*Arena, error) {
	if n > MaxBound {
		return nil, fmt.Errorf("%w: arena for bound %d", ErrInvalidBound, n)
	}
	words := make([]uint64, arenaWords(n))
	for i := range words {
		words[i] = ^uint64(0)
	}
	// Bits past n in the last word stay clear so popcounts stay exact.
	if tail := (n + 1) % wordBits; tail != 0 {
		words[len(words)-1] = (uint64(1) << tail) - 1
	}
	a := &Arena{words: words, n: n}
	a.clear(0)
	if n >= 1 {
		a.clear(1)
	}
	return a, nil
}

// Bound is the largest index held by the arena.
func (a *Arena) Bound() uint64 { return a.n }

// Len is the number of flags (Bound()+1).
func (a *Arena) Len() uint64 { return a.n + 1 }

// Get reports whether i is still a candidate prime.
func (a *Arena) Get(i uint64) bool {
	w := atomic.LoadUint64(&a.words[i/wordBits])
	return w&(uint64(1)<<(i%wordBits)) != 0
}

// clear marks i composite. Clearing an already clear flag is a no-op.
func (a *Arena) clear(i uint64) {
	atomic.AndUint64(&a.words[i/wordBits], ^(uint64(1) << (i % wordBits)))
}

// Count returns the number of set flags.
func (a *Arena) Count() int {
	total := 0
	for i := range a.words {
		total += bits.OnesCount64(atomic.LoadUint64(&a.words[i]))
	}
	return total
}

// Equal reports whether both arenas hold the same bound and flags.
func (a *Arena) Equal(b *Arena) bool {
	if a.n != b.n || len(a.words) != len(b.words) {
		return false
	}
	for i := range a.words {
		if atomic.LoadUint64(&a.words[i]) != atomic.LoadUint64(&b.words[i]) {
			return false
		}
	}
	return true
}
