// internal/writers/text.go
package writers

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"

	"primesieve/internal/engine"
)

func init() {
	Register("text", func(w io.Writer) Reporter { return &textReporter{w: w} })
}

type textReporter struct{ w io.Writer }

func (r *textReporter) Begin(m engine.Method, bound uint64) error {
	_, err := fmt.Fprintf(r.w, "Starting %s with upper limit %s\n", m.Title(), humanize.Comma(int64(bound)))
	return err
}

func (r *textReporter) Report(res engine.Result, list func() bool) error {
	if _, err := fmt.Fprintf(r.w, "Number of primes found: %d\n", res.Count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.w, "Execution time: %.6f seconds\n", res.Elapsed.Seconds()); err != nil {
		return err
	}
	if list == nil || !list() {
		return nil
	}
	return WritePrimes(r.w, res.Primes)
}

func (r *textReporter) Separate() error {
	_, err := io.WriteString(r.w, "\n")
	return err
}

// WritePrimes prints "Primes found:" and the space-separated list.
func WritePrimes(w io.Writer, primes []uint64) error {
	if _, err := io.WriteString(w, "Primes found:\n"); err != nil {
		return err
	}
	buf := make([]byte, 0, 64)
	for _, p := range primes {
		buf = strconv.AppendUint(buf[:0], p, 10)
		buf = append(buf, ' ')
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
