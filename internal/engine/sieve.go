package engine

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// markRange clears every multiple of every base prime p (p*p <= n) that lies
// in c and is >= p*p. The base flag a.Get(p) is read from the whole arena and
// may be written concurrently by the worker owning p; a stale "set" only
// causes a redundant pass, since flags are never set again.
func markRange(a *Arena, c Chunk) {
	n := a.n
	for p := uint64(2); p*p <= n; p++ {
		if !a.Get(p) {
			continue
		}
		for i := FirstMultiple(p, c.Start); i < c.End; i += p {
			a.clear(i)
		}
	}
}

// MarkSequential runs the sieve with a single worker over [2, n].
func MarkSequential(a *Arena) {
	markRange(a, Chunk{Start: 2, End: a.Len()})
}

// MarkParallel splits the arena into Chunks(n, threads) and runs one marking
// worker per chunk, returning once every worker has finished. The final
// arena is identical to the one MarkSequential produces. Running it again on
// an already marked arena changes nothing.
func MarkParallel(a *Arena, threads int) error {
	chunks := Chunks(a.n, threads)

	var g errgroup.Group
	for _, c := range chunks {
		g.Go(func() error {
			if c.Start > c.End || c.End > a.Len() {
				return fmt.Errorf("chunk [%d, %d) outside arena of %d flags", c.Start, c.End, a.Len())
			}
			markRange(a, c)
			return nil
		})
	}
	return g.Wait()
}
