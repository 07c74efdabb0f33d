package writers

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash"
)

// Digest fingerprints a prime list: xxhash64 over each value as 8
// little-endian bytes, rendered as 16 hex digits. Equal lists give equal
// digests on every platform.
func Digest(primes []uint64) string {
	h := xxhash.New()
	var buf [8]byte
	for _, p := range primes {
		binary.LittleEndian.PutUint64(buf[:], p)
		_, _ = h.Write(buf[:])
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
