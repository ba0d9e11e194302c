// Package skill implements the one-dimensional Kalman-style filter used to
// track a player's dispersion (sigma) per club category from noisy,
// wager-weighted shot batches.
package skill

import "math"

// minErrorCovariance and maxErrorCovariance bound the logarithmic
// confidence mapping: 100% confidence at or below min, 0% at or above max.
const (
	minErrorCovariance = 50.0
	maxErrorCovariance = 1000.0

	// initialErrorCovariance is deliberately uninformative: a freshly
	// created filter trusts its sigma0 seed very little.
	initialErrorCovariance = 1000.0
)

// ShotRecord is one pending (miss, wager) pair awaiting a batch update.
type ShotRecord struct {
	MissFt float64
	Wager  float64
}

// Filter is the per-(player, category) Kalman state.
type Filter struct {
	Estimate        float64 // sigma-hat, feet
	ErrorCovariance float64 // P
	ProcessNoise    float64 // Q
	initialEstimate float64 // sigma0, for Reset

	batch       []ShotRecord
	capacity    int
	pMaxHistory []float64
}

// defaultBatchCapacity matches the reference's default batch size.
const defaultBatchCapacity = 5

// New constructs a Filter seeded at initialSigma with the given process
// noise and an intentionally high initial error covariance.
func New(initialSigma, processNoise float64) *Filter {
	return &Filter{
		Estimate:        initialSigma,
		ErrorCovariance: initialErrorCovariance,
		ProcessNoise:    processNoise,
		initialEstimate: initialSigma,
		capacity:        defaultBatchCapacity,
	}
}

// Predict projects the estimate forward: sigma-hat is unchanged (no
// deterministic drift model) but covariance grows by the process noise.
func (f *Filter) Predict() {
	f.ErrorCovariance += f.ProcessNoise
}

// Update incorporates a scalar pseudo-measurement z with measurement
// variance r: Kalman gain K = P/(P+R); estimate blends toward z by K;
// covariance shrinks by (1-K).
func (f *Filter) Update(z, r float64) {
	k := f.ErrorCovariance / (f.ErrorCovariance + r)
	f.Estimate += k * (z - f.Estimate)
	f.ErrorCovariance *= 1 - k
}

// Confidence maps the error covariance to a 0-100% presentation value:
// 100% at P<=50, 0% at P>=1000, logarithmic in between.
func (f *Filter) Confidence() float64 {
	p := f.ErrorCovariance
	if p <= minErrorCovariance {
		return 100.0
	}
	if p >= maxErrorCovariance {
		return 0.0
	}
	normalized := math.Log(p/minErrorCovariance) / math.Log(maxErrorCovariance/minErrorCovariance)
	return 100.0 * (1 - normalized)
}

// StandardError returns sqrt(P), the standard deviation of the estimate's
// uncertainty.
func (f *Filter) StandardError() float64 {
	return math.Sqrt(f.ErrorCovariance)
}

// Reset restores the filter to its initial sigma0/P=1000 state, clearing
// any pending batch, so a filter can be reused without reallocating. The
// recorded P_max history is kept.
func (f *Filter) Reset() {
	f.Estimate = f.initialEstimate
	f.ErrorCovariance = initialErrorCovariance
	f.batch = f.batch[:0]
}

// AddShot appends a (miss, wager) pair to the pending batch and reports
// whether the batch has now reached capacity.
func (f *Filter) AddShot(missFt, wager float64) (batchFull bool) {
	f.batch = append(f.batch, ShotRecord{MissFt: missFt, Wager: wager})
	return len(f.batch) >= f.capacity
}

// IsHighStakes reports whether wager qualifies as high-stakes against the
// *current* batch's mean wager: false whenever the batch is empty, so the
// first shot routed to a fresh filter can never be high-stakes regardless
// of its size (DESIGN.md OQ4 — this is a required ordering contract, not
// an oversight).
func (f *Filter) IsHighStakes(wager float64) bool {
	if len(f.batch) == 0 {
		return false
	}
	return wager >= 10*meanWager(f.batch)
}

// BatchLen returns the number of shots currently pending in the batch.
func (f *Filter) BatchLen() int {
	return len(f.batch)
}

// PMaxHistory returns the recorded P_max values applied across this
// filter's updates, in chronological order.
func (f *Filter) PMaxHistory() []float64 {
	return f.pMaxHistory
}

// Flush reduces the pending batch to a single pseudo-measurement and runs
// one predict+update cycle, then records pMaxUsed in history and clears
// the batch. A no-op if the batch is empty.
func (f *Filter) Flush(pMaxUsed float64) {
	if len(f.batch) == 0 {
		return
	}

	weightedAvg := weightedAverageMeasurement(f.batch)
	unbiased := debiasRayleighMeasurement(weightedAvg)

	misses := make([]float64, len(f.batch))
	for i, s := range f.batch {
		misses[i] = s.MissFt
	}
	r := math.Max(measurementVariance(misses), minErrorCovariance)

	f.Predict()
	f.Update(unbiased, r)

	f.pMaxHistory = append(f.pMaxHistory, pMaxUsed)
	f.batch = f.batch[:0]
}

func meanWager(batch []ShotRecord) float64 {
	var total float64
	for _, s := range batch {
		total += s.Wager
	}
	return total / float64(len(batch))
}

// debiasRayleighMeasurement converts a Rayleigh-biased measured miss (whose
// mean is sigma*sqrt(pi/2)) to an unbiased estimate of sigma itself.
func debiasRayleighMeasurement(measuredMiss float64) float64 {
	return measuredMiss / math.Sqrt(math.Pi/2)
}

// weightedAverageMeasurement computes the wager-weighted mean miss distance
// over a batch; returns 0 for an empty batch (debiasing then maps 0 to 0,
// matching the reference's empty-batch behavior — callers must not invoke
// Flush on an empty batch to begin with, which Filter.Flush guarantees).
func weightedAverageMeasurement(batch []ShotRecord) float64 {
	var totalWeight, weightedSum float64
	for _, s := range batch {
		totalWeight += s.Wager
		weightedSum += s.MissFt * s.Wager
	}
	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}

// measurementVariance is the Bessel-corrected sample variance of a batch of
// miss distances; a single-element batch (where sample variance is
// undefined) defaults to 100.
func measurementVariance(misses []float64) float64 {
	if len(misses) <= 1 {
		return 100.0
	}
	var sum float64
	for _, m := range misses {
		sum += m
	}
	mean := sum / float64(len(misses))

	var sqDiff float64
	for _, m := range misses {
		d := m - mean
		sqDiff += d * d
	}
	return sqDiff / float64(len(misses)-1)
}

// InitialDispersion computes sigma0 (feet) from a player's handicap and a
// category's representative distance in yards.
func InitialDispersion(handicap uint8, distanceYds int) float64 {
	distance := float64(distanceYds)
	distanceFactor := 0.05 + ((distance-75.0)/175.0)*0.01
	skillFactor := 0.5 + float64(handicap)/30.0
	return distance * 3.0 * distanceFactor * skillFactor
}
