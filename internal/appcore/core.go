// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"primesieve/internal/engine"
	"primesieve/internal/runutil"
	"primesieve/internal/writers"
)

// ErrMismatch is reported when the methods of an "all" run disagree.
var ErrMismatch = errors.New("methods disagree")

// Exit codes.
const (
	ExitOK          = 0
	ExitUsage       = 2
	ExitRuntime     = 3
	ExitInterrupted = 130
)

type Options struct {
	Method engine.Method
	Bound  uint64

	Threads     int
	MemoryLimit uint64

	Output        string
	List          string
	ListThreshold int

	Logger *zap.Logger
}

// AskFunc asks the user whether to print a long prime list.
type AskFunc func() bool

// Run computes o.Bound with every method o.Method stands for, writes one
// report per method to stdout and returns the process exit code. In "all"
// mode prime lists are never printed and the three results are checked
// against each other.
func Run(ctx context.Context, stdout, stderr io.Writer, o Options, ask AskFunc) int {
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}
	outw := bufio.NewWriter(stdout)

	rep, err := writers.New(o.Output, outw)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}

	eng := engine.New(engine.Config{
		Threads:     o.Threads,
		MemoryLimit: o.MemoryLimit,
		Logger:      log,
	})
	if err := eng.Check(o.Method, o.Bound); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitCode(err)
	}

	methods := o.Method.Expand()
	all := len(methods) > 1
	results := make([]engine.Result, 0, len(methods))

	for i, m := range methods {
		if ctx.Err() != nil {
			return finish(outw, stderr, ExitInterrupted)
		}
		if i > 0 {
			if err := rep.Separate(); err != nil {
				return writeFailed(stderr, err)
			}
		}
		if err := rep.Begin(m, o.Bound); err != nil {
			return writeFailed(stderr, err)
		}
		// Show "Starting ..." before a possibly long computation.
		if err := outw.Flush(); err != nil {
			return writeFailed(stderr, err)
		}

		res, err := eng.Compute(m, o.Bound)
		if err != nil {
			_ = outw.Flush()
			fmt.Fprintf(stderr, "error: %s: %v\n", m.Title(), err)
			return exitCode(err)
		}
		results = append(results, res)

		var list func() bool
		if !all {
			list = func() bool {
				return runutil.ShouldList(o.List, res.Count, o.ListThreshold, flushThen(outw, ask))
			}
		}
		if err := rep.Report(res, list); err != nil {
			return writeFailed(stderr, err)
		}
	}

	if all {
		if err := crossCheck(results); err != nil {
			log.Error("cross-check failed", zap.Error(err))
			_ = outw.Flush()
			fmt.Fprintf(stderr, "error: %v\n", err)
			return ExitRuntime
		}
		log.Debug("cross-check passed", zap.Int("methods", len(results)))
	}
	if ctx.Err() != nil {
		return finish(outw, stderr, ExitInterrupted)
	}
	return finish(outw, stderr, ExitOK)
}

// crossCheck compares count and digest of every result with the first.
func crossCheck(results []engine.Result) error {
	if len(results) < 2 {
		return nil
	}
	ref := results[0]
	refDigest := writers.Digest(ref.Primes)
	for _, r := range results[1:] {
		if r.Count != ref.Count {
			return fmt.Errorf("%w: %s found %d primes, %s found %d", ErrMismatch, ref.Method, ref.Count, r.Method, r.Count)
		}
		if d := writers.Digest(r.Primes); d != refDigest {
			return fmt.Errorf("%w: %s digest %s, %s digest %s", ErrMismatch, ref.Method, refDigest, r.Method, d)
		}
	}
	return nil
}

// flushThen flushes pending output so a prompt follows it, then asks.
// A nil ask stays nil.
func flushThen(w *bufio.Writer, ask AskFunc) func() bool {
	if ask == nil {
		return nil
	}
	return func() bool {
		if err := w.Flush(); err != nil {
			return false
		}
		return ask()
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, engine.ErrInvalidBound):
		return ExitUsage
	default:
		return ExitRuntime
	}
}

func writeFailed(stderr io.Writer, err error) int {
	if writers.IsBrokenPipe(err) {
		return ExitOK
	}
	fmt.Fprintln(stderr, err)
	return ExitRuntime
}

// finish flushes stdout and returns code, or the write failure code.
func finish(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); err != nil {
		return writeFailed(stderr, err)
	}
	return code
}
