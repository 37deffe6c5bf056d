package collapse

import "math/rand"

// defaultRNGSeed is used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// Stream identifiers of the two random choice points.
const (
	selectStream  uint64 = 1
	observeStream uint64 = 2
)

// NewRand returns a deterministic *rand.Rand for seed.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed verbatim.
//
// Notes:
//   - *rand.Rand is not goroutine-safe; give each concurrent run its own.
//
// Complexity: O(1).
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new seed,
// e.g. to get a fresh seed per retry after a contradiction.
//
// Notes:
//   - SplitMix64 finalizer: nearby parents or streams give unrelated seeds.
//   - parent==0 is treated as defaultRNGSeed, matching NewRand.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	if parent == 0 {
		parent = defaultRNGSeed
	}
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// streamRNG returns the RNG of one choice point for seed.
func streamRNG(seed int64, stream uint64) *rand.Rand {
	return rand.New(rand.NewSource(DeriveSeed(seed, stream)))
}
