// Package selector maps the user-facing method and bound codes onto engine
// methods and bounds.
package selector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"primesieve/internal/engine"
)

// ErrInvalidSelector is returned for method or bound codes outside the
// recognized set.
var ErrInvalidSelector = errors.New("invalid selector")

// PresetCustom is the bound menu code that asks for a custom bound.
const PresetCustom = 5

var presets = map[int]uint64{
	1: 1_000,
	2: 100_000_000,
	3: 1_000_000_000,
	4: 4_000_000_000,
}

// ParseMethod accepts a menu code ("1".."4") or a method name
// ("trial", "sieve", "parallel", "all"; case-insensitive).
func ParseMethod(s string) (engine.Method, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if code, err := strconv.Atoi(s); err == nil {
		m := engine.Method(code)
		if !m.Valid() {
			return 0, fmt.Errorf("%w: method code %d (want 1-4)", ErrInvalidSelector, code)
		}
		return m, nil
	}
	for _, m := range []engine.Method{engine.MethodTrial, engine.MethodSieve, engine.MethodParallel, engine.MethodAll} {
		if s == m.String() {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: method %q (want 1-4 or trial | sieve | parallel | all)", ErrInvalidSelector, s)
}

// PresetBound returns the bound for menu codes 1-4. PresetCustom and every
// other code are rejected; custom bounds go through ParseBound.
func PresetBound(code int) (uint64, error) {
	if n, ok := presets[code]; ok {
		return n, nil
	}
	return 0, fmt.Errorf("%w: bound preset %d (want 1-4)", ErrInvalidSelector, code)
}

// ParseBound parses a decimal bound. "_" and "," digit separators are
// accepted ("1_000_000", "4,000,000,000").
func ParseBound(s string) (uint64, error) {
	clean := strings.NewReplacer("_", "", ",", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, fmt.Errorf("%w: empty bound", engine.ErrInvalidBound)
	}
	n, err := strconv.ParseUint(clean, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", engine.ErrInvalidBound, s, err)
	}
	return n, nil
}
