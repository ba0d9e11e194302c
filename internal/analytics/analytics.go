// Package analytics computes the Monte-Carlo and post-hoc statistics that
// are this system's actual output: expected value, RTP-by-skill sweeps,
// fairness spread, and convergence traces recorded during a session.
package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/jstittsworth/continuum-wagersim/internal/player"
	"github.com/jstittsworth/continuum-wagersim/internal/rng"
	"github.com/jstittsworth/continuum-wagersim/internal/session"
	"github.com/jstittsworth/continuum-wagersim/internal/simerrors"
	"github.com/jstittsworth/continuum-wagersim/internal/targets"
)

// fairnessThreshold is the max-EV-spread cutoff a target must stay under
// (per $10 wager) to be considered fair across skill levels.
const fairnessThreshold = 0.10

// ExpectedValue runs trials shots against target t at a fixed wager with
// p's *current*, frozen sigma (no filter updates), returning the mean net
// result per shot.
func ExpectedValue(p *player.Player, t targets.Target, wager float64, trials int, src rng.Source) (float64, error) {
	if trials <= 0 {
		return 0, simerrors.ErrInsufficientData("expected_value")
	}

	sigma := p.Sigma(t)
	pMax := p.PMax(t)

	var totalNet float64
	for i := 0; i < trials; i++ {
		miss, _ := rng.FatTail(src, sigma, session.DefaultFatTailProb, session.DefaultFatTailMult)
		multiplier := t.PayoutMultiplier(miss, pMax)
		payout := multiplier * wager
		totalNet += payout - wager
	}
	return totalNet / float64(trials), nil
}

// RTPSweepPoint reports the actual RTP and its deviation from the target's
// posted RTP for one handicap.
type RTPSweepPoint struct {
	Handicap  uint8
	ActualRTP float64
	Deviation float64 // actual - target.RTP
}

// ValidateRTPAcrossSkills runs trials shots at a fixed $10 wager for a
// fresh player at each handicap in handicaps, reporting actual RTP and
// deviation from t.RTP for each.
func ValidateRTPAcrossSkills(t targets.Target, handicaps []uint8, trials int, src rng.Source) ([]RTPSweepPoint, error) {
	if trials <= 0 || len(handicaps) == 0 {
		return nil, simerrors.ErrInsufficientData("validate_rtp_across_skills")
	}

	const fixedWager = 10.0
	points := make([]RTPSweepPoint, len(handicaps))
	for i, h := range handicaps {
		p := player.New("sweep", h)
		sigma := p.Sigma(t)
		pMax := p.PMax(t)

		var totalWagered, totalPaid float64
		for s := 0; s < trials; s++ {
			miss, _ := rng.FatTail(src, sigma, session.DefaultFatTailProb, session.DefaultFatTailMult)
			multiplier := t.PayoutMultiplier(miss, pMax)
			totalWagered += fixedWager
			totalPaid += multiplier * fixedWager
		}

		actualRTP := totalPaid / totalWagered
		points[i] = RTPSweepPoint{
			Handicap:  h,
			ActualRTP: actualRTP,
			Deviation: actualRTP - t.RTP,
		}
	}
	return points, nil
}

// FairnessPoint is one handicap's EV/P_max/sigma snapshot within a
// fairness sweep.
type FairnessPoint struct {
	Handicap uint8
	EV       float64
	PMax     float64
	Sigma    float64
}

// FairnessReport summarizes whether EV spread across handicaps on one
// target stays within the fairness threshold.
type FairnessReport struct {
	Points         []FairnessPoint
	MaxEVDifference float64
	IsFair         bool
}

// Fairness runs trials shots at $10 for a fresh player at each handicap in
// handicaps against target t, and reports the max EV spread across them.
func Fairness(t targets.Target, handicaps []uint8, trials int, src rng.Source) (FairnessReport, error) {
	if trials <= 0 || len(handicaps) == 0 {
		return FairnessReport{}, simerrors.ErrInsufficientData("fairness")
	}

	const fixedWager = 10.0
	points := make([]FairnessPoint, len(handicaps))
	for i, h := range handicaps {
		p := player.New("fairness", h)
		ev, err := ExpectedValue(p, t, fixedWager, trials, src)
		if err != nil {
			return FairnessReport{}, err
		}
		points[i] = FairnessPoint{
			Handicap: h,
			EV:       ev,
			PMax:     p.PMax(t),
			Sigma:    p.Sigma(t),
		}
	}

	minEV, maxEV := points[0].EV, points[0].EV
	for _, pt := range points {
		if pt.EV < minEV {
			minEV = pt.EV
		}
		if pt.EV > maxEV {
			maxEV = pt.EV
		}
	}
	spread := maxEV - minEV

	return FairnessReport{
		Points:          points,
		MaxEVDifference: spread,
		IsFair:          spread < fairnessThreshold,
	}, nil
}

// ConvergenceReport reduces a session's recorded covariance trace (see
// session.CovarianceSample) into per-category confidence/sigma
// trajectories and the shot index at which confidence first crossed 80%.
//
// This replaces the reference's hard-coded convergence stub with an
// actual trace recorded during the session — see DESIGN.md's OQ1 entry.
type ConvergenceReport struct {
	ConfidenceTrajectory map[targets.Category][]float64
	SigmaTrajectory      map[targets.Category][]float64
	ShotsTo80Percent     map[targets.Category]int // -1 if never crossed
}

// Convergence reduces result's recorded CovarianceTrace. Returns an
// explicit insufficient-data error if no category ever received a filter
// update (the trace is empty).
func Convergence(result session.Result) (ConvergenceReport, error) {
	if len(result.CovarianceTrace) == 0 {
		return ConvergenceReport{}, simerrors.ErrInsufficientData("convergence")
	}

	report := ConvergenceReport{
		ConfidenceTrajectory: make(map[targets.Category][]float64),
		SigmaTrajectory:      make(map[targets.Category][]float64),
		ShotsTo80Percent:     make(map[targets.Category]int),
	}

	shotsAtCross := make(map[targets.Category]int)
	for _, sample := range result.CovarianceTrace {
		cat := sample.Category
		report.ConfidenceTrajectory[cat] = append(report.ConfidenceTrajectory[cat], sample.Confidence)
		report.SigmaTrajectory[cat] = append(report.SigmaTrajectory[cat], sample.Sigma)
		if _, crossed := shotsAtCross[cat]; !crossed && sample.Confidence >= 80.0 {
			shotsAtCross[cat] = sample.ShotNum
		}
	}

	for _, cat := range []targets.Category{targets.Short, targets.Mid, targets.Long} {
		if shot, ok := shotsAtCross[cat]; ok {
			report.ShotsTo80Percent[cat] = shot
		} else {
			report.ShotsTo80Percent[cat] = -1
		}
	}

	return report, nil
}

// MeanStdDev returns the sample mean and standard deviation of xs via
// gonum/stat.
func MeanStdDev(xs []float64) (mean, stddev float64) {
	return stat.MeanStdDev(xs, nil)
}

// PearsonCorrelation returns the Pearson correlation coefficient between
// xs and ys via gonum/stat.
func PearsonCorrelation(xs, ys []float64) float64 {
	return stat.Correlation(xs, ys, nil)
}

// SortedHandicaps returns a sorted copy of hs, used by callers building a
// sweep in a deterministic order regardless of how the caller assembled
// the slice.
func SortedHandicaps(hs []uint8) []uint8 {
	out := make([]uint8, len(hs))
	copy(out, hs)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
