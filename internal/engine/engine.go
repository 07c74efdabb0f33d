package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// FallbackThreads is used when the host reports no usable parallelism.
const FallbackThreads = 2

// Config controls one Engine.
type Config struct {
	Threads     int         // parallel sieve workers (< 1 means FallbackThreads)
	MemoryLimit uint64      // max arena bytes; 0 = DefaultMemoryLimit()
	Logger      *zap.Logger // nil = no logging
}

// Result is the outcome of one computation.
type Result struct {
	Method  Method
	Bound   uint64
	Threads int // workers used; 1 for the single-threaded methods
	Primes  []uint64
	Count   int
	Elapsed time.Duration
}

type Engine struct {
	cfg Config
	log *zap.Logger
}

func New(c Config) *Engine {
	if c.Threads < 1 {
		c.Threads = FallbackThreads
	}
	if c.MemoryLimit == 0 {
		c.MemoryLimit = DefaultMemoryLimit()
	}
	log := c.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{cfg: c, log: log.Named("engine")}
}

// Threads returns the worker count used by MethodParallel.
func (e *Engine) Threads() int { return e.cfg.Threads }

// MemoryLimit returns the arena byte limit in effect.
func (e *Engine) MemoryLimit() uint64 { return e.cfg.MemoryLimit }

// Check validates n for method m without allocating. Only the sieve methods
// are held to the memory limit; trial division keeps no arena.
func (e *Engine) Check(m Method, n uint64) error {
	limit := e.cfg.MemoryLimit
	if !m.usesArena() {
		limit = 0
	}
	return CheckBound(n, limit)
}

// Compute lists the primes up to n with method m. The bound is validated
// before anything is allocated; Elapsed covers allocation, marking and
// compilation.
func (e *Engine) Compute(m Method, n uint64) (Result, error) {
	if !m.Valid() || m == MethodAll {
		return Result{}, fmt.Errorf("engine: cannot compute with method %q", m)
	}
	if err := e.Check(m, n); err != nil {
		return Result{}, err
	}

	threads := 1
	if m == MethodParallel {
		threads = e.cfg.Threads
	}
	e.log.Debug("compute started",
		zap.Stringer("method", m),
		zap.Uint64("bound", n),
		zap.Int("threads", threads),
	)

	start := time.Now()
	var (
		primes []uint64
		err    error
	)
	switch m {
	case MethodTrial:
		primes = TrialDivision(n)
	case MethodSieve:
		primes, err = e.sieve(n, func(a *Arena) error {
			MarkSequential(a)
			return nil
		})
	case MethodParallel:
		primes, err = e.sieve(n, func(a *Arena) error {
			e.log.Debug("parallel marking",
				zap.Int("workers", len(Chunks(n, threads))),
				zap.Uint64("chunk_size", ChunkSize(n, threads)),
				zap.Uint64("arena_bytes", ArenaBytes(n)),
			)
			if err := MarkParallel(a, threads); err != nil {
				return fmt.Errorf("parallel sieve: %w", err)
			}
			return nil
		})
	}
	elapsed := time.Since(start)
	if err != nil {
		e.log.Error("compute failed", zap.Stringer("method", m), zap.Uint64("bound", n), zap.Error(err))
		return Result{}, err
	}

	res := Result{
		Method:  m,
		Bound:   n,
		Threads: threads,
		Primes:  primes,
		Count:   len(primes),
		Elapsed: elapsed,
	}
	e.log.Info("compute finished",
		zap.Stringer("method", m),
		zap.Uint64("bound", n),
		zap.Int("threads", threads),
		zap.Int("count", res.Count),
		zap.Duration("elapsed", elapsed),
	)
	return res, nil
}

// sieve allocates a fresh arena for n, runs mark on it and compiles the
// survivors.
func (e *Engine) sieve(n uint64, mark func(*Arena) error) ([]uint64, error) {
	a, err := NewArena(n)
	if err != nil {
		return nil, err
	}
	if err := mark(a); err != nil {
		return nil, err
	}
	return Compile(a), nil
}

// ComputePrimesParallel runs the parallel sieve with the given worker count.
func ComputePrimesParallel(bound uint64, threads int) (Result, error) {
	if threads < 1 {
		return Result{}, fmt.Errorf("engine: thread count must be >= 1, got %d", threads)
	}
	return New(Config{Threads: threads}).Compute(MethodParallel, bound)
}

// ComputePrimesSequentialSieve runs the single-threaded sieve.
func ComputePrimesSequentialSieve(bound uint64) (Result, error) {
	return New(Config{Threads: 1}).Compute(MethodSieve, bound)
}

// ComputePrimesTrialDivision runs the trial-division baseline.
func ComputePrimesTrialDivision(bound uint64) (Result, error) {
	return New(Config{Threads: 1}).Compute(MethodTrial, bound)
}
