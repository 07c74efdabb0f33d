// internal/writers/json.go
package writers

import (
	"encoding/json"
	"io"

	"primesieve/internal/engine"
	"primesieve/pkg/api"
)

func init() {
	Register("json", func(w io.Writer) Reporter { return &jsonReporter{w: w} })
}

// ToAPIReport converts a domain Result to the stable wire schema (v1).
// Primes are only attached when list is true.
func ToAPIReport(res engine.Result, list bool) api.ReportV1 {
	v := api.ReportV1{
		Method:         res.Method.String(),
		Bound:          res.Bound,
		Threads:        res.Threads,
		Count:          res.Count,
		ElapsedSeconds: res.Elapsed.Seconds(),
		Digest:         Digest(res.Primes),
	}
	if list {
		v.Primes = append([]uint64(nil), res.Primes...)
	}
	return v
}

type jsonReporter struct{ w io.Writer }

func (r *jsonReporter) Begin(engine.Method, uint64) error { return nil }

// Report writes one indented JSON object per result.
func (r *jsonReporter) Report(res engine.Result, list func() bool) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToAPIReport(res, list != nil && list()))
}

func (r *jsonReporter) Separate() error { return nil }
