// pkg/api/report_v1.go
package api

// ReportV1 is the stable JSON schema for one method run.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ReportV1 struct {
	Method         string   `json:"method"` // "trial" | "sieve" | "parallel"
	Bound          uint64   `json:"bound"`
	Threads        int      `json:"threads"`
	Count          int      `json:"count"`
	ElapsedSeconds float64  `json:"elapsed_seconds"`
	Digest         string   `json:"digest"` // xxhash64 of the prime list, hex
	Primes         []uint64 `json:"primes,omitempty"`
}
