package engine

import "math/bits"

// Compile returns every index in [2, n] still flagged as prime, ascending.
// It must only run after marking has finished; the words are read without
// atomics.
func Compile(a *Arena) []uint64 {
	out := make([]uint64, 0, a.Count())
	for wi, w := range a.words {
		base := uint64(wi) * wordBits
		for w != 0 {
			out = append(out, base+uint64(bits.TrailingZeros64(w)))
			w &= w - 1
		}
	}
	return out
}
