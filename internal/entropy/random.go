// Package entropy provides the explicit random stream every stochastic
// step of a run draws from. Each run owns exactly one Stream; nothing in
// the simulation reaches for the global math/rand source.
package entropy

import (
	"math"
	"math/rand"
)

// maxRejections bounds rejection sampling. Past it the draw falls back to
// clamping the mean, which only happens for degenerate parameters.
const maxRejections = 10000

// Stream is a seeded pseudo-random source. It is not safe for concurrent use.
type Stream struct {
	seed int64
	rng  *rand.Rand
}

// NewStream creates a stream from seed. Equal seeds yield equal sequences.
func NewStream(seed int64) *Stream {
	return &Stream{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the stream was created with.
func (s *Stream) Seed() int64 {
	return s.seed
}

// Float returns a uniform float64 in [0, 1).
func (s *Stream) Float() float64 {
	return s.rng.Float64()
}

// Norm returns a standard normal deviate.
func (s *Stream) Norm() float64 {
	return s.rng.NormFloat64()
}

// IntRange returns a uniform integer in the closed range [lo, hi].
func (s *Stream) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// Intn returns a uniform integer in [0, n).
func (s *Stream) Intn(n int) int {
	return s.rng.Intn(n)
}

// Shuffle applies a uniform random permutation through swap.
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}

// TruncatedNormalInt draws round(mean + stdDev*Z) conditioned on landing in
// [lo, hi]. Out-of-range draws are rejected and redrawn, so the bounds carry
// no extra probability mass.
func (s *Stream) TruncatedNormalInt(mean, stdDev float64, lo, hi int) int {
	for i := 0; i < maxRejections; i++ {
		v := int(math.Round(mean + stdDev*s.rng.NormFloat64()))
		if v >= lo && v <= hi {
			return v
		}
	}
	return clampInt(int(math.Round(mean)), lo, hi)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
