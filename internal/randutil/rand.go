// Package randutil derives reproducible random sources for simulations.
package randutil

import (
	"fmt"
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from seed. Both PCG
// words are derived from the one seed so that every caller gets the same
// sequence for the same value.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Stream returns the source for the n-th independent worker of a run seeded
// with seed.
func Stream(seed int64, n int) *rand.Rand {
	return New(int64(mix(uint64(seed) + uint64(n)*goldenRatio64)))
}

// Between draws an integer uniformly from the inclusive range [low, high].
// Like rand.IntN with a non-positive bound, it panics if high < low.
func Between(rng *rand.Rand, low, high int) int {
	if high < low {
		panic(fmt.Sprintf("randutil: invalid range [%d, %d]", low, high))
	}
	return low + rng.IntN(high-low+1)
}

// splitmix64 finaliser.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
