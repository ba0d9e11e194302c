// Package session implements the sequential single-player shot loop: the
// driver that couples hole selection, wager sampling, payout computation,
// and batched/high-stakes skill filter updates.
package session

import (
	"github.com/jstittsworth/continuum-wagersim/internal/player"
	"github.com/jstittsworth/continuum-wagersim/internal/rng"
	"github.com/jstittsworth/continuum-wagersim/internal/simerrors"
	"github.com/jstittsworth/continuum-wagersim/internal/targets"
)

// HoleSelectionKind distinguishes the three hole-picking policies a
// session config may use.
type HoleSelectionKind int

const (
	Random HoleSelectionKind = iota
	Fixed
	Weighted
)

// WeightedChoice is one (target id, probability) entry in a Weighted hole
// selection. Probabilities need not sum exactly to 1: the last matching
// entry in cumulative order catches any rounding residue.
type WeightedChoice struct {
	HoleID int
	Prob   float64
}

// HoleSelection configures which policy picks a target each step.
type HoleSelection struct {
	Kind     HoleSelectionKind
	FixedID  int               // used when Kind == Fixed
	Weighted []WeightedChoice // used when Kind == Weighted
}

// DeveloperMode overrides normal sampling for validation/debugging.
type DeveloperMode struct {
	// ManualMissDistance, if non-nil, forces every shot's miss to this
	// value, bypassing sampling entirely.
	ManualMissDistance *float64
	// DisableKalman suppresses all filter updates when true.
	DisableKalman bool
}

// Config holds one session's inputs.
type Config struct {
	NumShots      int
	WagerMin      float64
	WagerMax      float64
	HoleSelection HoleSelection
	Developer     DeveloperMode
	FatTailProb   float64
	FatTailMult   float64
}

// DefaultFatTailProb and DefaultFatTailMult match the reference defaults.
const (
	DefaultFatTailProb = 0.02
	DefaultFatTailMult = 3.0
)

// Validate rejects a malformed config before any shot is simulated,
// matching the "drivers either produce a complete result or report one
// ConfigError and abort" contract.
func (c Config) Validate() error {
	if c.NumShots < 0 {
		return &simerrors.ConfigError{Field: "num_shots", Reason: "must be non-negative"}
	}
	if c.WagerMin > c.WagerMax {
		return &simerrors.ConfigError{Field: "wager_range", Reason: "wager_min must be <= wager_max"}
	}
	switch c.HoleSelection.Kind {
	case Fixed:
		if _, ok := targets.ByID(c.HoleSelection.FixedID); !ok {
			return &simerrors.ConfigError{Field: "hole", Reason: "invalid target id"}
		}
	case Weighted:
		if len(c.HoleSelection.Weighted) == 0 {
			return &simerrors.ConfigError{Field: "hole_selection", Reason: "weighted selection requires at least one entry"}
		}
		for _, wc := range c.HoleSelection.Weighted {
			if _, ok := targets.ByID(wc.HoleID); !ok {
				return &simerrors.ConfigError{Field: "hole_selection", Reason: "invalid target id in weighted entry"}
			}
		}
	case Random:
		// always valid
	default:
		return &simerrors.ConfigError{Field: "hole_selection", Reason: "unknown hole selection kind"}
	}
	return nil
}

// ShotOutcome is one append-only record of a single step's result.
type ShotOutcome struct {
	MissFt     float64
	Multiplier float64
	Payout     float64
	Wager      float64
	TargetID   int
	IsFatTail  bool
}

func (o ShotOutcome) NetResult() float64 { return o.Payout - o.Wager }
func (o ShotOutcome) IsWin() bool        { return o.Multiplier >= 1.0 }
func (o ShotOutcome) IsAce() bool        { return o.MissFt < 0.1 }

// CovarianceSample is one (shot index, sigma, errorCovariance) observation
// taken whenever a category's filter flushes, forming the convergence
// trace analytics.Convergence reduces (see DESIGN.md OQ1 — this replaces
// the reference's hard-coded stub with a real recorded trace).
type CovarianceSample struct {
	ShotNum         int
	Category        targets.Category
	Sigma           float64
	ErrorCovariance float64
	Confidence      float64
}

// Result aggregates everything a session produced.
type Result struct {
	TotalWagered    float64
	TotalPaid       float64
	Outcomes        []ShotOutcome
	FinalSigma      map[targets.Category]float64
	UpdateCount     int
	HighStakesCount int
	CovarianceTrace []CovarianceSample
}

// Net returns total paid minus total wagered.
func (r Result) Net() float64 { return r.TotalPaid - r.TotalWagered }

// HouseEdge returns 1 - total_paid/total_wagered, or 0 if nothing was
// wagered.
func (r Result) HouseEdge() float64 {
	if r.TotalWagered == 0 {
		return 0
	}
	return 1 - r.TotalPaid/r.TotalWagered
}

// Run executes cfg against p (mutated in place) using src for all sampling,
// returning the accumulated Result. The config is validated first; a
// malformed config is rejected before any shot is simulated.
func Run(p *player.Player, cfg Config, src rng.Source) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	fatTailProb := cfg.FatTailProb
	if fatTailProb == 0 {
		fatTailProb = DefaultFatTailProb
	}
	fatTailMult := cfg.FatTailMult
	if fatTailMult == 0 {
		fatTailMult = DefaultFatTailMult
	}

	result := Result{
		FinalSigma: make(map[targets.Category]float64, 3),
	}

	for step := 0; step < cfg.NumShots; step++ {
		hole, err := selectHole(cfg.HoleSelection, src)
		if err != nil {
			return Result{}, err
		}

		wager := cfg.WagerMin + src.Float64()*(cfg.WagerMax-cfg.WagerMin)

		pMax := p.PMax(hole)

		var miss float64
		var isFatTail bool
		if cfg.Developer.ManualMissDistance != nil {
			miss = *cfg.Developer.ManualMissDistance
		} else {
			miss, isFatTail = rng.FatTail(src, p.Sigma(hole), fatTailProb, fatTailMult)
		}

		multiplier := hole.PayoutMultiplier(miss, pMax)
		payout := multiplier * wager

		result.Outcomes = append(result.Outcomes, ShotOutcome{
			MissFt:     miss,
			Multiplier: multiplier,
			Payout:     payout,
			Wager:      wager,
			TargetID:   hole.ID,
			IsFatTail:  isFatTail,
		})
		result.TotalWagered += wager
		result.TotalPaid += payout

		if !cfg.Developer.DisableKalman {
			// A high-stakes wager flushes the *existing* batch immediately,
			// before this shot joins it (OQ4: a fresh/empty batch is never
			// high-stakes, so this never fires on a category's first shot),
			// and then flushes again once the shot has been inserted.
			highStakes := p.IsHighStakes(hole, wager)
			if highStakes {
				p.Update(hole, pMax)
				result.UpdateCount++
				result.HighStakesCount++
				recordCovarianceSample(&result, p, hole, step)
			}

			if p.AddShotToBatch(hole, miss, wager) || highStakes {
				p.Update(hole, pMax)
				result.UpdateCount++
				recordCovarianceSample(&result, p, hole, step)
			}
		}
	}

	if !cfg.Developer.DisableKalman {
		for _, cat := range []targets.Category{targets.Short, targets.Mid, targets.Long} {
			repHole := representativeTarget(cat)
			if p.BatchLen(repHole) > 0 {
				pMax := p.PMax(repHole)
				p.Update(repHole, pMax)
				result.UpdateCount++
				recordCovarianceSample(&result, p, repHole, cfg.NumShots)
			}
		}
	}

	for _, cat := range []targets.Category{targets.Short, targets.Mid, targets.Long} {
		repHole := representativeTarget(cat)
		result.FinalSigma[cat] = p.Sigma(repHole)
	}

	return result, nil
}

func recordCovarianceSample(result *Result, p *player.Player, t targets.Target, step int) {
	result.CovarianceTrace = append(result.CovarianceTrace, CovarianceSample{
		ShotNum:         step,
		Category:        t.Category,
		Sigma:           p.Sigma(t),
		ErrorCovariance: p.StandardError(t) * p.StandardError(t),
		Confidence:      p.Confidence(t),
	})
}

// representativeTarget returns the first catalog target in a category,
// used only to route a category to any target sharing its filter (any
// target in the category routes to the same skill filter).
func representativeTarget(cat targets.Category) targets.Target {
	ts := targets.ByCategory(cat)
	return ts[0]
}

func selectHole(sel HoleSelection, src rng.Source) (targets.Target, error) {
	switch sel.Kind {
	case Fixed:
		t, ok := targets.ByID(sel.FixedID)
		if !ok {
			return targets.Target{}, &simerrors.ConfigError{Field: "hole", Reason: "invalid target id"}
		}
		return t, nil
	case Weighted:
		roll := src.Float64()
		var cumulative float64
		for i, wc := range sel.Weighted {
			cumulative += wc.Prob
			if roll < cumulative || i == len(sel.Weighted)-1 {
				t, ok := targets.ByID(wc.HoleID)
				if !ok {
					return targets.Target{}, &simerrors.ConfigError{Field: "hole_selection", Reason: "invalid target id in weighted entry"}
				}
				return t, nil
			}
		}
		// unreachable given the last-entry catch above, but keep the
		// compiler happy with an explicit fallback.
		t, _ := targets.ByID(sel.Weighted[len(sel.Weighted)-1].HoleID)
		return t, nil
	default: // Random
		all := targets.All()
		idx := int(src.Float64() * float64(len(all)))
		if idx >= len(all) {
			idx = len(all) - 1
		}
		return all[idx], nil
	}
}
