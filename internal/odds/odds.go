// Package odds computes the dynamic payout ceiling P_max that pins a
// target's expected payout to its posted RTP for a given skill dispersion.
package odds

import (
	"math"

	"github.com/jstittsworth/continuum-wagersim/internal/quadrature"
	"github.com/jstittsworth/continuum-wagersim/internal/rng"
	"github.com/jstittsworth/continuum-wagersim/internal/targets"
)

// epsilon guards the P_max division against a pathologically small sigma
// driving the expected-payout integral to zero.
const epsilon = 1e-10

// subdivisions is the trapezoid subdivision count used to evaluate the
// expected-payout integral; the reference implementation uses 2000 for
// numerical stability at this accuracy target.
const subdivisions = 2000

// ComputePMax returns the maximum payout multiplier for target t at skill
// dispersion sigma, chosen so that the expected payout multiplier equals
// t.RTP: P_max = rtp / I(sigma), where I(sigma) is the Rayleigh-weighted
// payout integral below.
func ComputePMax(t targets.Target, sigma float64) float64 {
	upperBound := math.Max(1.5*t.DMaxFt, 5*sigma)

	expectedPayout := quadrature.IntegratePayoffFunction(
		t.DMaxFt, t.K, sigma, rng.RayleighPDF, upperBound, subdivisions,
	)

	return t.RTP / (expectedPayout + epsilon)
}
