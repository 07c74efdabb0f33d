package engine

import (
	"errors"
	"fmt"
	"math"
	"runtime/debug"
)

// MaxBound is the largest accepted upper bound. It keeps n+1, p*p and the
// chunk arithmetic far from uint64 overflow and the arena addressable.
const MaxBound uint64 = 1<<40 - 1

var (
	// ErrInvalidBound is returned before any allocation for bounds the engine
	// cannot represent.
	ErrInvalidBound = errors.New("invalid bound")
	// ErrResourceExhausted is returned when the arena would exceed the memory
	// limit. Nothing has been allocated at that point.
	ErrResourceExhausted = errors.New("resource exhausted")
)

// CheckBound validates n against MaxBound and, when memLimit > 0, the arena
// size against memLimit bytes.
func CheckBound(n, memLimit uint64) error {
	if n > MaxBound {
		return fmt.Errorf("%w: %d exceeds maximum %d", ErrInvalidBound, n, MaxBound)
	}
	if memLimit > 0 {
		if need := ArenaBytes(n); need > memLimit {
			return fmt.Errorf("%w: bound %d needs %d bytes, limit is %d", ErrResourceExhausted, n, need, memLimit)
		}
	}
	return nil
}

// DefaultArenaLimit caps arenas when neither Config.MemoryLimit nor GOMEMLIMIT
// is set. 4 GiB holds bounds up to 2^35-1.
const DefaultArenaLimit uint64 = 4 << 30

// DefaultMemoryLimit returns the runtime soft memory limit when one is set
// (GOMEMLIMIT or debug.SetMemoryLimit), otherwise DefaultArenaLimit.
func DefaultMemoryLimit() uint64 {
	if l := debug.SetMemoryLimit(-1); l > 0 && l < math.MaxInt64 {
		return uint64(l)
	}
	return DefaultArenaLimit
}
