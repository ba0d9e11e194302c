// Package targets holds the immutable, process-wide catalog of the eight
// target configurations and their pure payout/breakeven functions.
package targets

import "math"

// Category bands a target's distance into a club category used to key
// skill filters. A fixed three-variant enum, not an open-ended set: the
// catalog is fixed at eight targets across exactly these three bands.
type Category int

const (
	Short Category = iota
	Mid
	Long
)

// String renders the category the way it's displayed in CLI output and the
// P_max-history CSV export (Wedge/MidIron/LongIron, matching the reference
// catalog's declared row order).
func (c Category) String() string {
	switch c {
	case Short:
		return "Wedge"
	case Mid:
		return "MidIron"
	case Long:
		return "LongIron"
	default:
		return "Unknown"
	}
}

// CategoryFromDistance bands a distance in yards into a club Category:
// Short <= 130yd, Mid <= 185yd, Long otherwise.
func CategoryFromDistance(distanceYds int) Category {
	switch {
	case distanceYds <= 130:
		return Short
	case distanceYds <= 185:
		return Mid
	default:
		return Long
	}
}

// RepresentativeDistance returns the representative distance (yards) used
// to seed a fresh skill filter's sigma0 for a category: 100/162/225 for
// Short/Mid/Long respectively.
func RepresentativeDistance(c Category) int {
	switch c {
	case Short:
		return 100
	case Mid:
		return 162
	case Long:
		return 225
	default:
		return 162
	}
}

// Target is one immutable entry in the catalog.
type Target struct {
	ID          int
	DistanceYds int
	DMaxFt      float64
	RTP         float64
	K           float64
	Category    Category
}

// PayoutMultiplier returns the multiplier paid for a miss distance d given
// this target's payout curve and a computed P_max. Zero beyond DMaxFt;
// monotone non-increasing on [0, DMaxFt].
func (t Target) PayoutMultiplier(d, pMax float64) float64 {
	if d > t.DMaxFt || d < 0 {
		return 0
	}
	return pMax * math.Pow(1-d/t.DMaxFt, t.K)
}

// BreakevenRadius returns the miss distance at which PayoutMultiplier
// equals 1.0 for the given P_max, or 0 when pMax <= 1 (no radius pays
// exactly even money).
func (t Target) BreakevenRadius(pMax float64) float64 {
	if pMax <= 1.0 {
		return 0
	}
	return t.DMaxFt * (1 - math.Pow(pMax, -1/t.K))
}

// catalog is the process-wide, immutable set of eight targets. Declared
// once at package init and never mutated; callers receive copies via All
// and ByID since Target is a small value type.
//
// RTP is flat at 0.85 across every target — see DESIGN.md's "OQ3" entry for
// why this repository does not adopt the category-dependent 0.86/0.88/0.90
// scheme some reference comments describe but the reference catalog itself
// never implements.
var catalog = [8]Target{
	{ID: 1, DistanceYds: 75, DMaxFt: 17.95, RTP: 0.85, K: 5.0, Category: Short},
	{ID: 2, DistanceYds: 100, DMaxFt: 25.69, RTP: 0.85, K: 5.0, Category: Short},
	{ID: 3, DistanceYds: 125, DMaxFt: 36.71, RTP: 0.85, K: 5.5, Category: Short},
	{ID: 4, DistanceYds: 150, DMaxFt: 47.58, RTP: 0.85, K: 6.0, Category: Mid},
	{ID: 5, DistanceYds: 175, DMaxFt: 59.09, RTP: 0.85, K: 6.0, Category: Mid},
	{ID: 6, DistanceYds: 200, DMaxFt: 73.58, RTP: 0.85, K: 6.5, Category: Long},
	{ID: 7, DistanceYds: 225, DMaxFt: 84.84, RTP: 0.85, K: 6.5, Category: Long},
	{ID: 8, DistanceYds: 250, DMaxFt: 101.14, RTP: 0.85, K: 6.5, Category: Long},
}

// All returns every target in catalog order (by ascending ID).
func All() []Target {
	out := make([]Target, len(catalog))
	copy(out, catalog[:])
	return out
}

// ByID returns the target with the given id and true, or the zero Target
// and false if id is outside [1,8].
func ByID(id int) (Target, bool) {
	if id < 1 || id > len(catalog) {
		return Target{}, false
	}
	return catalog[id-1], true
}

// ByCategory returns every target in catalog order belonging to c.
func ByCategory(c Category) []Target {
	var out []Target
	for _, t := range catalog {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out
}
