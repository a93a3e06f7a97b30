// Package dice provides the randomness abstraction threaded through the
// combat layer. Nothing in the core reads global random state; every roll
// goes through a Source handed in by the caller.
package dice

// Source is the randomness provider for jam rolls and any other chance check.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random float in [0.0, 1.0).
	Float64() float64
}
