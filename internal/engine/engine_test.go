package engine

import (
	"errors"
	"fmt"
	"math"
	"runtime/debug"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	equivalenceBounds  = []uint64{0, 1, 2, 3, 30, 997, 10000}
	equivalenceThreads = []int{1, 2, 3, 8}
)

// filterIsPrime is the slowest, most obvious reference.
func filterIsPrime(n uint64) []uint64 {
	out := []uint64{}
	for k := uint64(2); k <= n; k++ {
		if IsPrime(k) {
			out = append(out, k)
		}
	}
	return out
}

func TestKnownValues(t *testing.T) {
	res, err := ComputePrimesParallel(30, 4)
	require.NoError(t, err)
	want := []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}
	if diff := cmp.Diff(want, res.Primes); diff != "" {
		t.Fatalf("primes up to 30 (-want +got):\n%s", diff)
	}
	assert.Equal(t, 10, res.Count)

	for _, tc := range []struct {
		n     uint64
		count int
	}{
		{100, 25},
		{1000, 168},
		{10000, 1229},
		{1000000, 78498},
	} {
		res, err := ComputePrimesParallel(tc.n, 3)
		require.NoError(t, err)
		assert.Equal(t, tc.count, res.Count, "pi(%d)", tc.n)
		assert.Len(t, res.Primes, tc.count)
	}
}

func TestBoundaries(t *testing.T) {
	cases := map[uint64][]uint64{
		0: {},
		1: {},
		2: {2},
		3: {2, 3},
		4: {2, 3},
		5: {2, 3, 5},
	}
	for n, want := range cases {
		for _, threads := range equivalenceThreads {
			res, err := ComputePrimesParallel(n, threads)
			require.NoError(t, err)
			if diff := cmp.Diff(want, res.Primes); diff != "" {
				t.Errorf("n=%d threads=%d (-want +got):\n%s", n, threads, diff)
			}
			assert.Equal(t, len(want), res.Count)
		}
	}
}

func TestParallelMatchesSequentialAndTrial(t *testing.T) {
	for _, n := range equivalenceBounds {
		seq, err := ComputePrimesSequentialSieve(n)
		require.NoError(t, err)
		trial, err := ComputePrimesTrialDivision(n)
		require.NoError(t, err)
		ref := filterIsPrime(n)

		if diff := cmp.Diff(ref, seq.Primes); diff != "" {
			t.Fatalf("sequential sieve n=%d (-want +got):\n%s", n, diff)
		}
		if diff := cmp.Diff(ref, trial.Primes); diff != "" {
			t.Fatalf("trial division n=%d (-want +got):\n%s", n, diff)
		}
		for _, threads := range equivalenceThreads {
			t.Run(fmt.Sprintf("n=%d/t=%d", n, threads), func(t *testing.T) {
				par, err := ComputePrimesParallel(n, threads)
				require.NoError(t, err)
				if diff := cmp.Diff(seq.Primes, par.Primes); diff != "" {
					t.Fatalf("parallel vs sequential (-want +got):\n%s", diff)
				}
				assert.Equal(t, seq.Count, par.Count)
				assert.Equal(t, threads, par.Threads)
			})
		}
	}
}

func TestThreadCountInvariance(t *testing.T) {
	const n = 50000
	base, err := ComputePrimesParallel(n, 1)
	require.NoError(t, err)
	for _, threads := range []int{2, 3, 4, 5, 7, 8, 16, 64, 1000} {
		res, err := ComputePrimesParallel(n, threads)
		require.NoError(t, err)
		if diff := cmp.Diff(base.Primes, res.Primes); diff != "" {
			t.Fatalf("threads=%d (-want +got):\n%s", threads, diff)
		}
		assert.Equal(t, base.Count, res.Count)
	}
}

func TestResultStrictlyIncreasing(t *testing.T) {
	for _, m := range []Method{MethodTrial, MethodSieve, MethodParallel} {
		res, err := New(Config{Threads: 5}).Compute(m, 20000)
		require.NoError(t, err)
		for i := 1; i < len(res.Primes); i++ {
			if res.Primes[i-1] >= res.Primes[i] {
				t.Fatalf("%s: primes[%d]=%d not below primes[%d]=%d", m, i-1, res.Primes[i-1], i, res.Primes[i])
			}
		}
	}
}

func TestComputeRejectsBoundBeforeAllocation(t *testing.T) {
	eng := New(Config{Threads: 4})
	_, err := eng.Compute(MethodParallel, MaxBound+1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidBound), "got %v", err)

	_, err = eng.Compute(MethodTrial, ^uint64(0))
	assert.ErrorIs(t, err, ErrInvalidBound)
}

func TestComputeMemoryLimit(t *testing.T) {
	eng := New(Config{Threads: 2, MemoryLimit: 1024})
	_, err := eng.Compute(MethodSieve, 1<<20)
	assert.ErrorIs(t, err, ErrResourceExhausted)

	// 1024 bytes hold 8192 flags.
	res, err := eng.Compute(MethodParallel, 8191)
	require.NoError(t, err)
	assert.Equal(t, 1028, res.Count)
}

func TestMemoryLimitSkipsTrialDivision(t *testing.T) {
	// 64 bytes hold 512 flags; the arena for 1000 needs 128.
	eng := New(Config{MemoryLimit: 64})
	res, err := eng.Compute(MethodTrial, 1000)
	require.NoError(t, err)
	assert.Equal(t, 168, res.Count)

	_, err = eng.Compute(MethodSieve, 1000)
	assert.ErrorIs(t, err, ErrResourceExhausted)
	assert.NoError(t, eng.Check(MethodTrial, 1000))
	assert.ErrorIs(t, eng.Check(MethodAll, 1000), ErrResourceExhausted)
}

func TestDefaultMemoryLimitCapsHugeBounds(t *testing.T) {
	prev := debug.SetMemoryLimit(math.MaxInt64)
	t.Cleanup(func() { debug.SetMemoryLimit(prev) })

	assert.Equal(t, DefaultArenaLimit, DefaultMemoryLimit())
	eng := New(Config{Threads: 2})
	assert.Equal(t, DefaultArenaLimit, eng.MemoryLimit())

	// 2^40 flags would need 128 GiB; refused before allocating.
	_, err := eng.Compute(MethodParallel, MaxBound)
	assert.ErrorIs(t, err, ErrResourceExhausted)
	_, err = eng.Compute(MethodSieve, MaxBound)
	assert.ErrorIs(t, err, ErrResourceExhausted)

	// The largest preset stays well inside the default.
	assert.NoError(t, eng.Check(MethodAll, 4_000_000_000))

	debug.SetMemoryLimit(1 << 30)
	assert.Equal(t, uint64(1<<30), DefaultMemoryLimit())
	assert.Equal(t, uint64(1<<30), New(Config{}).MemoryLimit())
}

func TestComputeRejectsUnknownMethods(t *testing.T) {
	eng := New(Config{})
	_, err := eng.Compute(MethodAll, 10)
	assert.Error(t, err)
	_, err = eng.Compute(Method(0), 10)
	assert.Error(t, err)
}

func TestComputePrimesParallelRejectsZeroThreads(t *testing.T) {
	_, err := ComputePrimesParallel(10, 0)
	assert.Error(t, err)
}

func TestNewAppliesFallbackThreads(t *testing.T) {
	assert.Equal(t, FallbackThreads, New(Config{}).Threads())
	assert.Equal(t, 6, New(Config{Threads: 6}).Threads())
}

func TestComputeLogsCompletion(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	eng := New(Config{Threads: 3, Logger: zap.New(core)})

	res, err := eng.Compute(MethodParallel, 100)
	require.NoError(t, err)
	require.Equal(t, 25, res.Count)

	assert.Equal(t, 1, logs.FilterMessage("compute started").Len())
	assert.Equal(t, 1, logs.FilterMessage("parallel marking").Len())
	done := logs.FilterMessage("compute finished").All()
	require.Len(t, done, 1)
	fields := done[0].ContextMap()
	assert.Equal(t, "parallel", fields["method"])
	assert.Equal(t, int64(25), fields["count"])
	assert.Equal(t, int64(3), fields["threads"])
	assert.Equal(t, "engine", done[0].LoggerName)
}

func TestMethodNames(t *testing.T) {
	assert.Equal(t, "parallel", MethodParallel.String())
	assert.Equal(t, "Sieve of Eratosthenes", MethodSieve.Title())
	assert.Equal(t, "unknown", Method(9).String())
	assert.False(t, Method(0).Valid())
	assert.Equal(t, []Method{MethodTrial, MethodSieve, MethodParallel}, MethodAll.Expand())
	assert.Equal(t, []Method{MethodSieve}, MethodSieve.Expand())
}
