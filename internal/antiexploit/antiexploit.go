// Package antiexploit implements the post-hoc statistics the spec calls
// for over a completed shot log: sandbagging, cherry-picking, and
// skill-jump detection. These are pure reporting functions — they never
// decide policy, only flag a shot log for review.
package antiexploit

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/jstittsworth/continuum-wagersim/internal/session"
)

// SandbaggingReport scores a shot log for sandbagging (deliberately
// inflating dispersion, then betting big once the filter under-estimates
// skill).
type SandbaggingReport struct {
	Score     float64
	Flagged   bool
	EnoughData bool
}

// DetectSandbagging requires at least 20 shots. Score increments:
//   - +0.3 if stdev(miss)/mean(miss) > 0.8
//   - +0.4 if Pearson correlation(wager, multiplier) < -0.5
//   - +0.3 if (given >= 50 shots) second-half mean wager > 5x first-half
//
// Flagged when the total score exceeds 0.6.
func DetectSandbagging(outcomes []session.ShotOutcome) SandbaggingReport {
	if len(outcomes) < 20 {
		return SandbaggingReport{EnoughData: false}
	}

	misses := make([]float64, len(outcomes))
	wagers := make([]float64, len(outcomes))
	multipliers := make([]float64, len(outcomes))
	for i, o := range outcomes {
		misses[i] = o.MissFt
		wagers[i] = o.Wager
		multipliers[i] = o.Multiplier
	}

	var score float64

	meanMiss, stdMiss := stat.MeanStdDev(misses, nil)
	if meanMiss > 0 && stdMiss/meanMiss > 0.8 {
		score += 0.3
	}

	if stat.Correlation(wagers, multipliers, nil) < -0.5 {
		score += 0.4
	}

	if len(outcomes) >= 50 {
		mid := len(outcomes) / 2
		firstHalfMean := stat.Mean(wagers[:mid], nil)
		secondHalfMean := stat.Mean(wagers[mid:], nil)
		if firstHalfMean > 0 && secondHalfMean > 5*firstHalfMean {
			score += 0.3
		}
	}

	return SandbaggingReport{Score: score, Flagged: score > 0.6, EnoughData: true}
}

// CherryPickingReport scores a shot log for cherry-picking (only wagering
// big when the multiplier curve happens to favor the player).
type CherryPickingReport struct {
	Score      float64
	Flagged    bool
	EnoughData bool
}

// DetectCherryPicking requires at least 10 shots. Score increments:
//   - +0.5 if correlation(wager, multiplier) > 0.5
//   - +0.4 if above-median-wager shots average multiplier > 1.5x
//     below-median-wager shots' average multiplier
//
// Flagged when the total score exceeds 0.6.
func DetectCherryPicking(outcomes []session.ShotOutcome) CherryPickingReport {
	if len(outcomes) < 10 {
		return CherryPickingReport{EnoughData: false}
	}

	wagers := make([]float64, len(outcomes))
	multipliers := make([]float64, len(outcomes))
	for i, o := range outcomes {
		wagers[i] = o.Wager
		multipliers[i] = o.Multiplier
	}

	var score float64
	if stat.Correlation(wagers, multipliers, nil) > 0.5 {
		score += 0.5
	}

	median := medianOf(wagers)
	var aboveMult, belowMult []float64
	for _, o := range outcomes {
		if o.Wager > median {
			aboveMult = append(aboveMult, o.Multiplier)
		} else {
			belowMult = append(belowMult, o.Multiplier)
		}
	}
	if len(aboveMult) > 0 && len(belowMult) > 0 {
		aboveMean := stat.Mean(aboveMult, nil)
		belowMean := stat.Mean(belowMult, nil)
		if belowMean > 0 && aboveMean > 1.5*belowMean {
			score += 0.4
		}
	}

	return CherryPickingReport{Score: score, Flagged: score > 0.6, EnoughData: true}
}

// SkillJumpReport scores a shot log for a sudden, implausible skill jump
// (often paired with a simultaneous wager increase — evidence of a
// different, better player taking over mid-session).
type SkillJumpReport struct {
	Score      float64
	Flagged    bool
	EnoughData bool
}

// recentWindow is the number of trailing shots compared against the
// historical mean miss to detect a sudden improvement.
const recentWindow = 10

// DetectSkillJump requires at least 2*recentWindow shots so "recent" and
// "historical" windows are disjoint. Score increments:
//   - +0.5 if recent mean miss is > 40% better (smaller) than historical
//   - +0.4 if recent mean wager also tripled over historical
//
// Flagged when the total score exceeds 0.7.
func DetectSkillJump(outcomes []session.ShotOutcome) SkillJumpReport {
	if len(outcomes) < 2*recentWindow {
		return SkillJumpReport{EnoughData: false}
	}

	historical := outcomes[:len(outcomes)-recentWindow]
	recent := outcomes[len(outcomes)-recentWindow:]

	historicalMiss := meanMiss(historical)
	recentMiss := meanMiss(recent)
	historicalWager := meanWager(historical)
	recentWager := meanWager(recent)

	var score float64
	if historicalMiss > 0 {
		improvement := (historicalMiss - recentMiss) / historicalMiss
		if improvement > 0.4 {
			score += 0.5
		}
	}
	if historicalWager > 0 && recentWager > 3*historicalWager {
		score += 0.4
	}

	return SkillJumpReport{Score: score, Flagged: score > 0.7, EnoughData: true}
}

func meanMiss(outcomes []session.ShotOutcome) float64 {
	var total float64
	for _, o := range outcomes {
		total += o.MissFt
	}
	return total / float64(len(outcomes))
}

func meanWager(outcomes []session.ShotOutcome) float64 {
	var total float64
	for _, o := range outcomes {
		total += o.Wager
	}
	return total / float64(len(outcomes))
}

// medianOf returns the median of a copy of xs, leaving xs untouched.
func medianOf(xs []float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
