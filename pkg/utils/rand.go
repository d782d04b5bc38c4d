package utils

import (
	"math/rand"
)

// trialStride decorrelates per-trial streams drawn from the same seed.
// Any odd constant works; this one is the 32-bit golden ratio.
const trialStride = 0x9E3779B9

// RandSource is a seeded random number generator.
type RandSource struct {
	rng *rand.Rand
}

// NewRandSource creates a new random source with the given seed.
func NewRandSource(seed int64) *RandSource {
	return &RandSource{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// TrialSource derives a random source that is a pure function of
// (seed, trial index), so trial N always sees the same stream no matter
// what earlier trials consumed.
func TrialSource(seed int64, trial int) *RandSource {
	return NewRandSource(seed + int64(trial+1)*trialStride)
}

// Float64 returns a random float64 in [0.0, 1.0)
func (r *RandSource) Float64() float64 {
	return r.rng.Float64()
}

// Intn returns a random int in [0, n)
func (r *RandSource) Intn(n int) int {
	return r.rng.Intn(n)
}

// UniformFloat64 returns a uniformly distributed random number in [min, max)
func (r *RandSource) UniformFloat64(min, max float64) float64 {
	return min + r.rng.Float64()*(max-min)
}

// NormFloat64 returns a normally distributed random number with mean and stddev
func (r *RandSource) NormFloat64(mean, stddev float64) float64 {
	return r.rng.NormFloat64()*stddev + mean
}

// BernoulliBool returns true with probability p, false otherwise
func (r *RandSource) BernoulliBool(p float64) bool {
	return r.rng.Float64() < p
}
