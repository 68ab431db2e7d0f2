// Package rng implements the Mulberry32 pseudo-random generator and the
// distribution samplers built on it (spec §4.9, §5). Mulberry32 is used
// instead of math/rand specifically because its output is bit-exact and
// portable across implementations given the same 32-bit seed, which is what
// lets two independent runs of the Monte Carlo simulator (spec §5.2,
// "reproducibility") agree to the last bit. Everything here draws from one
// caller-owned stream in whatever order the caller requests it — the
// ordering contract itself lives in internal/montecarlo, not here.
package rng

import "math"

// Mulberry32 is a 32-bit state PRNG. The zero value is not usable; construct
// with New.
type Mulberry32 struct {
	state uint32
}

// New constructs a Mulberry32 generator seeded with the low 32 bits of seed.
func New(seed int64) *Mulberry32 {
	return &Mulberry32{state: uint32(seed)}
}

// Next advances the generator and returns a float64 uniformly distributed in
// [0, 1). The arithmetic below mirrors the canonical JavaScript mulberry32
// reference implementation term for term; Go's uint32 arithmetic already
// wraps modulo 2^32, which is what Math.imul and the `| 0` coercions give in
// the original.
func (m *Mulberry32) Next() float64 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296
}

// Uniform returns a value uniformly distributed in [lo, hi).
func (m *Mulberry32) Uniform(lo, hi float64) float64 {
	return lo + m.Next()*(hi-lo)
}

// Normal returns a value from N(mean, stdDev^2) via the Box-Muller
// transform, consuming exactly two draws from the stream. Only the cosine
// branch is used — the companion sine value is discarded rather than cached,
// so every Normal() call has the same, fixed draw cost regardless of call
// history.
func (m *Mulberry32) Normal(mean, stdDev float64) float64 {
	u1 := m.Next()
	if u1 <= 0 {
		u1 = 1e-12
	}
	u2 := m.Next()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + stdDev*z
}

// Lognormal returns a value from a lognormal distribution whose underlying
// normal has the given mu/sigma, consuming exactly two draws.
func (m *Mulberry32) Lognormal(mu, sigma float64) float64 {
	return math.Exp(m.Normal(mu, sigma))
}

// Triangular returns a value from a triangular distribution with the given
// min, mode (peak), and max, consuming exactly one draw.
func (m *Mulberry32) Triangular(min, mode, max float64) float64 {
	if max <= min {
		return min
	}
	u := m.Next()
	c := (mode - min) / (max - min)
	if u < c {
		return min + math.Sqrt(u*(max-min)*(mode-min))
	}
	return max - math.Sqrt((1-u)*(max-min)*(max-mode))
}
