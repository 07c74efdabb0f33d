package engine

// Method selects how primes are computed.
type Method int

const (
	MethodTrial    Method = iota + 1 // trial division
	MethodSieve                      // sequential sieve
	MethodParallel                   // parallel sieve
	MethodAll                        // every method above, in order
)

var methodNames = map[Method]string{
	MethodTrial:    "trial",
	MethodSieve:    "sieve",
	MethodParallel: "parallel",
	MethodAll:      "all",
}

var methodTitles = map[Method]string{
	MethodTrial:    "Classic Primality Test",
	MethodSieve:    "Sieve of Eratosthenes",
	MethodParallel: "Multithreaded Sieve of Eratosthenes",
	MethodAll:      "All Methods",
}

// Valid reports whether m is one of the known methods.
func (m Method) Valid() bool {
	_, ok := methodNames[m]
	return ok
}

func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	return "unknown"
}

// Title is the human-readable name used in reports.
func (m Method) Title() string {
	if s, ok := methodTitles[m]; ok {
		return s
	}
	return "Unknown Method"
}

// Expand returns the concrete methods m stands for.
func (m Method) Expand() []Method {
	if m == MethodAll {
		return []Method{MethodTrial, MethodSieve, MethodParallel}
	}
	return []Method{m}
}

// usesArena reports whether m (or one of the methods it expands to) sieves.
func (m Method) usesArena() bool {
	return m == MethodSieve || m == MethodParallel || m == MethodAll
}
