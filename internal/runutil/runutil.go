// internal/runutil/runutil.go
package runutil

import (
	"fmt"
	"runtime"
)

// FallbackThreads is used when the host reports no CPUs.
const FallbackThreads = 2

// DefaultListThreshold is the prime count from which listing needs an
// explicit yes (prompt or --list always).
const DefaultListThreshold = 32

// List modes for the prime list display.
const (
	ListAuto   = "auto"
	ListAlways = "always"
	ListNever  = "never"
)

// numCPU is swapped in tests.
var numCPU = runtime.NumCPU

// EffectiveThreads returns the worker count to use. If requested > 0,
// that value is used as-is. Otherwise the host CPU count, or
// FallbackThreads when the host reports none.
func EffectiveThreads(requested int) int {
	if requested > 0 {
		return requested
	}
	if n := numCPU(); n > 0 {
		return n
	}
	return FallbackThreads
}

// ValidateListMode checks a --list value.
func ValidateListMode(mode string) error {
	switch mode {
	case ListAuto, ListAlways, ListNever:
		return nil
	}
	return fmt.Errorf("invalid list mode %q (want %s | %s | %s)", mode, ListAuto, ListAlways, ListNever)
}

// ShouldList decides whether a prime list of count entries is printed.
// Rules (same order as the interactive prompt flow):
//   - never → no; always → yes
//   - auto: count < threshold → yes
//   - auto: count >= threshold → ask(), or no when ask is nil
func ShouldList(mode string, count, threshold int, ask func() bool) bool {
	switch mode {
	case ListNever:
		return false
	case ListAlways:
		return true
	}
	if threshold <= 0 {
		threshold = DefaultListThreshold
	}
	if count < threshold {
		return true
	}
	if ask == nil {
		return false
	}
	return ask()
}
