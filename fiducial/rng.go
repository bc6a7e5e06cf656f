// Package fiducial - RNG utilities for the first-round shuffle.
//
// Determinism: the same seed yields the same dictionary on every platform.
// No time-based source is used anywhere; a nil or unseeded configuration
// falls back to defaultRNGSeed.
//
// Concurrency: *rand.Rand is NOT goroutine-safe. Do not share one between
// concurrent Generate calls.
package fiducial

import "math/rand"

// defaultRNGSeed is the fixed seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed is used verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	return rand.New(rand.NewSource(seed))
}

// shuffleInPlace performs a Fisher–Yates shuffle of a using rng.
// Complexity: O(n) time, O(1) extra space.
func shuffleInPlace(a []int, rng *rand.Rand) {
	if rng == nil {
		rng = rngFromSeed(0)
	}
	for i := len(a) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}
