package engine

// IsPrime reports whether n is prime by trial division over 6k±1 candidates.
func IsPrime(n uint64) bool {
	if n <= 1 {
		return false
	}
	if n <= 3 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	for i := uint64(5); i <= n/i; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// TrialDivision lists the primes in [2, n] by testing 2, 3 and then each
// 6k-1, 6k+1 pair with IsPrime.
func TrialDivision(n uint64) []uint64 {
	out := []uint64{}
	if n >= 2 {
		out = append(out, 2)
	}
	if n >= 3 {
		out = append(out, 3)
	}
	for k := uint64(5); k <= n; k += 6 {
		if IsPrime(k) {
			out = append(out, k)
		}
		if k+2 <= n && IsPrime(k+2) {
			out = append(out, k+2)
		}
	}
	return out
}
