// Package rng provides the injectable random primitives every sampling
// routine in this repository is built on: a uniform generator contract plus
// the derived normal, Rayleigh, and fat-tail mixture samplers used by the
// odds and skill packages.
package rng

import (
	"math"
	"math/rand/v2"
)

// Source is the generator contract every sampler in this repository takes.
// Implementations must be safe to use from exactly one goroutine; callers
// needing concurrent fan-out derive independent sub-streams (see Stream.Split)
// rather than sharing one Source across goroutines.
type Source interface {
	// Float64 returns a pseudo-random value in [0, 1).
	Float64() float64
}

// Stream is a seeded Source backed by math/rand/v2's PCG generator. Two
// Streams constructed from the same seed produce bit-identical sequences,
// which is what the session/venue/tournament drivers rely on for
// deterministic replay.
type Stream struct {
	r *rand.Rand
}

// NewStream constructs a deterministic Stream from a 64-bit seed.
func NewStream(seed uint64) *Stream {
	return &Stream{r: rand.New(rand.NewPCG(seed, 0))}
}

// Float64 implements Source.
func (s *Stream) Float64() float64 {
	return s.r.Float64()
}

// Split derives an independent child Stream deterministically from this
// Stream's own sequence. Used by the venue driver to hand each bay task a
// distinct sub-seed without sharing a generator across goroutines: calling
// Split n times in bay order on the master stream reproduces the same n
// child streams on every run with the same master seed.
func (s *Stream) Split() *Stream {
	hi := s.r.Uint64()
	lo := s.r.Uint64()
	return &Stream{r: rand.New(rand.NewPCG(hi, lo))}
}

// Uniform draws U(0,1), open at zero: values exactly 0 are resampled since
// downstream callers (Rayleigh's inverse CDF) take a log of this value.
func Uniform(src Source) float64 {
	for {
		u := src.Float64()
		if u > 0 {
			return u
		}
	}
}

// Normal draws from N(mu, sigma) via the Box-Muller transform, consuming two
// independent uniforms per call.
func Normal(src Source, mu, sigma float64) float64 {
	u1 := Uniform(src)
	u2 := src.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mu + sigma*z
}

// Rayleigh draws a radial miss distance from a Rayleigh(sigma) distribution
// via inverse-CDF sampling.
func Rayleigh(src Source, sigma float64) float64 {
	u := Uniform(src)
	return sigma * math.Sqrt(-2*math.Log(u))
}

// FatTail samples a miss distance from a two-component mixture: with
// probability pFatTail the miss is drawn from a Rayleigh inflated by
// mFatTail (a mishit), otherwise from the plain Rayleigh(sigma). Returns the
// sampled distance and whether the fat-tail branch fired.
func FatTail(src Source, sigma, pFatTail, mFatTail float64) (distance float64, isFatTail bool) {
	if src.Float64() < pFatTail {
		return Rayleigh(src, sigma*mFatTail), true
	}
	return Rayleigh(src, sigma), false
}

// RayleighPDF evaluates the Rayleigh probability density at d for scale
// sigma. Returns 0 outside the distribution's support or for a
// non-positive sigma.
func RayleighPDF(d, sigma float64) float64 {
	if d < 0 || sigma <= 0 {
		return 0
	}
	return (d / (sigma * sigma)) * math.Exp(-(d*d)/(2*sigma*sigma))
}

// RayleighMean returns the analytic mean of Rayleigh(sigma): sigma*sqrt(pi/2).
func RayleighMean(sigma float64) float64 {
	return sigma * math.Sqrt(math.Pi/2)
}

// RayleighVariance returns the analytic variance of Rayleigh(sigma).
func RayleighVariance(sigma float64) float64 {
	return sigma * sigma * (4 - math.Pi) / 2
}
