// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"primesieve/internal/engine"
)

// Reporter renders method runs to one output stream.
type Reporter interface {
	// Begin is called before a method starts computing.
	Begin(m engine.Method, bound uint64) error
	// Report is called with the finished result. The reporter calls list
	// (once, at the point where the prime list would go) to decide whether the
	// full list is included; a nil list means no.
	Report(res engine.Result, list func() bool) error
	// Separate is called between consecutive methods of one run.
	Separate() error
}

// Reporter registry (format → constructor). Register in init() blocks of the
// format files.
var reporters = map[string]func(io.Writer) Reporter{}

// Register adds or replaces (last wins) the constructor for format.
func Register(format string, fn func(io.Writer) Reporter) { reporters[format] = fn }

// New returns the reporter registered for format.
func New(format string, w io.Writer) (Reporter, error) {
	fn, ok := reporters[format]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w), nil
}

// Formats lists the registered formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(reporters))
	for f := range reporters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
