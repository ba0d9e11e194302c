// Package quadrature implements the fixed-step and adaptive numerical
// integration routines the odds engine uses to evaluate the expected-payout
// integral.
package quadrature

import (
	"math"

	"github.com/jstittsworth/continuum-wagersim/internal/simerrors"
)

// Func is an integrand: a first-class function so the adaptive routine
// never needs to know what it is integrating.
type Func func(x float64) float64

// Trapezoid integrates f over [a, b] using n equal-width subintervals with
// the endpoints weighted by one half. Returns 0 for n == 0.
func Trapezoid(f Func, a, b float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	h := (b - a) / float64(n)
	sum := (f(a) + f(b)) / 2
	for i := 1; i < n; i++ {
		sum += f(a + float64(i)*h)
	}
	return sum * h
}

// Simpson integrates f over [a, b] using Simpson's rule with n subintervals.
// n must be even and positive.
func Simpson(f Func, a, b float64, n int) (float64, error) {
	if n <= 0 || n%2 != 0 {
		return 0, &simerrors.ConfigError{Field: "n", Reason: "simpson's rule requires a positive even subdivision count"}
	}
	h := (b - a) / float64(n)
	sum := f(a) + f(b)
	for i := 1; i < n; i++ {
		x := a + float64(i)*h
		if i%2 == 0 {
			sum += 2 * f(x)
		} else {
			sum += 4 * f(x)
		}
	}
	return sum * h / 3, nil
}

// Adaptive integrates f over [a, b], recursively bisecting until the
// difference between a coarse trapezoid estimate and the sum of its two
// half-interval estimates falls below tol, or maxDepth is reached. On
// non-smooth integrands or exhausted depth it falls back to the coarse
// estimate for that subinterval rather than failing.
func Adaptive(f Func, a, b, tol float64, maxDepth int) float64 {
	return adaptiveRecursive(f, a, b, tol, maxDepth)
}

func adaptiveRecursive(f Func, a, b, tol float64, depth int) float64 {
	const coarseN = 10

	whole := Trapezoid(f, a, b, coarseN)
	if depth <= 0 {
		return whole
	}

	m := (a + b) / 2
	left := Trapezoid(f, a, m, coarseN)
	right := Trapezoid(f, m, b, coarseN)
	refined := left + right

	diff := refined - whole
	if diff < 0 {
		diff = -diff
	}
	if diff < tol {
		return whole
	}

	return adaptiveRecursive(f, a, m, tol/2, depth-1) + adaptiveRecursive(f, m, b, tol/2, depth-1)
}

// IntegratePayoffFunction evaluates the expected-payout integral
// ∫[0,dMax] (1 - d/dMax)^k * rayleighPDF(d, sigma) dd using a fixed-step
// trapezoid rule with n subdivisions over [0, upperBound], where
// upperBound must already account for the Rayleigh tail beyond dMax (see
// odds.ComputePMax for the bound used in this repository).
func IntegratePayoffFunction(dMax, k, sigma float64, pdf func(d, sigma float64) float64, upperBound float64, n int) float64 {
	integrand := func(d float64) float64 {
		if d > dMax || d < 0 {
			return 0
		}
		payoffFactor := math.Pow(1-d/dMax, k)
		return payoffFactor * pdf(d, sigma)
	}
	return Trapezoid(integrand, 0, upperBound, n)
}
