// Package player implements the player aggregate: a handicap plus one
// skill filter per club category, routing shots and P_max queries to the
// right filter.
package player

import (
	"github.com/jstittsworth/continuum-wagersim/internal/odds"
	"github.com/jstittsworth/continuum-wagersim/internal/skill"
	"github.com/jstittsworth/continuum-wagersim/internal/targets"
)

// defaultProcessNoise matches the reference's default Kalman process noise.
const defaultProcessNoise = 1.0

// Player owns exactly one skill Filter per club category.
type Player struct {
	ID       string
	Handicap uint8

	filters map[targets.Category]*skill.Filter
}

// New constructs a Player with a fresh skill filter for every category,
// seeded from handicap and each category's representative distance.
func New(id string, handicap uint8) *Player {
	filters := make(map[targets.Category]*skill.Filter, 3)
	for _, cat := range []targets.Category{targets.Short, targets.Mid, targets.Long} {
		sigma0 := skill.InitialDispersion(handicap, targets.RepresentativeDistance(cat))
		filters[cat] = skill.New(sigma0, defaultProcessNoise)
	}
	return &Player{ID: id, Handicap: handicap, filters: filters}
}

// filterFor returns the skill filter owning t's club category.
func (p *Player) filterFor(t targets.Target) *skill.Filter {
	return p.filters[t.Category]
}

// Sigma returns the current dispersion estimate for t's club category.
func (p *Player) Sigma(t targets.Target) float64 {
	return p.filterFor(t).Estimate
}

// PMax computes the current maximum payout multiplier for t, using this
// player's current sigma estimate for t's club category.
func (p *Player) PMax(t targets.Target) float64 {
	return odds.ComputePMax(t, p.Sigma(t))
}

// AddShotToBatch records a (miss, wager) pair against t's club category
// and reports whether that category's batch has reached capacity.
func (p *Player) AddShotToBatch(t targets.Target, missFt, wager float64) (batchFull bool) {
	return p.filterFor(t).AddShot(missFt, wager)
}

// IsHighStakes reports whether wager qualifies as high-stakes against t's
// club category's current batch.
func (p *Player) IsHighStakes(t targets.Target, wager float64) bool {
	return p.filterFor(t).IsHighStakes(wager)
}

// Update flushes t's club category's pending batch through the Kalman
// filter and records pMaxUsed in that category's history.
func (p *Player) Update(t targets.Target, pMaxUsed float64) {
	p.filterFor(t).Flush(pMaxUsed)
}

// BatchLen returns the number of shots pending in t's club category batch.
func (p *Player) BatchLen(t targets.Target) int {
	return p.filterFor(t).BatchLen()
}

// HasPendingBatch reports whether t's club category has a non-empty batch.
func (p *Player) HasPendingBatch(t targets.Target) bool {
	return p.filterFor(t).BatchLen() > 0
}

// Confidence returns the 0-100% confidence score for t's club category.
func (p *Player) Confidence(t targets.Target) float64 {
	return p.filterFor(t).Confidence()
}

// StandardError returns sqrt(P) for t's club category, the standard
// deviation of the filter's estimate uncertainty.
func (p *Player) StandardError(t targets.Target) float64 {
	return p.filterFor(t).StandardError()
}

// PMaxHistory returns the recorded P_max values applied to t's club
// category, in chronological order.
func (p *Player) PMaxHistory(t targets.Target) []float64 {
	return p.filterFor(t).PMaxHistory()
}

// ForEachCategory invokes fn once per club category in declared catalog
// order (Short, Mid, Long), passing that category's filter. Used by CSV
// export to group P_max history by category.
func (p *Player) ForEachCategory(fn func(cat targets.Category, f *skill.Filter)) {
	for _, cat := range []targets.Category{targets.Short, targets.Mid, targets.Long} {
		fn(cat, p.filters[cat])
	}
}
