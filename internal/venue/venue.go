// Package venue fans a configured player population out across parallel
// hitting bays, each running an independent session, then aggregates the
// results into venue-level economics: hold percentage, a profit time
// series, a handicap x distance heatmap, and a payout histogram.
package venue

import (
	"fmt"
	"sync"

	"github.com/jstittsworth/continuum-wagersim/internal/player"
	"github.com/jstittsworth/continuum-wagersim/internal/rng"
	"github.com/jstittsworth/continuum-wagersim/internal/session"
	"github.com/jstittsworth/continuum-wagersim/internal/simerrors"
	"github.com/jstittsworth/continuum-wagersim/internal/targets"
)

// ArchetypeKind selects the handicap-sampling distribution used to build
// a venue's player pool.
type ArchetypeKind int

const (
	Uniform ArchetypeKind = iota
	BellCurve
	SkewedHigh
	SkewedLow
)

// Archetype configures a handicap distribution. Mean/StdDev only apply to
// BellCurve.
type Archetype struct {
	Kind   ArchetypeKind
	Mean   uint8
	StdDev float64
}

// Config holds one venue run's inputs.
type Config struct {
	NumBays      int
	Hours        float64
	ShotsPerHour int
	Archetype    Archetype
	WagerMin     float64
	WagerMax     float64
}

// Validate rejects a malformed config before any bay is simulated.
func (c Config) Validate() error {
	if c.NumBays <= 0 {
		return &simerrors.ConfigError{Field: "num_bays", Reason: "must be positive"}
	}
	if c.Hours <= 0 {
		return &simerrors.ConfigError{Field: "hours", Reason: "must be positive"}
	}
	if c.ShotsPerHour <= 0 {
		return &simerrors.ConfigError{Field: "shots_per_hour", Reason: "must be positive"}
	}
	if c.WagerMin > c.WagerMax {
		return &simerrors.ConfigError{Field: "wager_range", Reason: "wager_min must be <= wager_max"}
	}
	return nil
}

// handicapBins mirrors the reference's fixed 6-bucket handicap banding.
var handicapBins = []string{"0-4", "5-9", "10-14", "15-19", "20-24", "25-30"}

func handicapBinIndex(h uint8) int {
	switch {
	case h <= 4:
		return 0
	case h <= 9:
		return 1
	case h <= 14:
		return 2
	case h <= 19:
		return 3
	case h <= 24:
		return 4
	default:
		return 5
	}
}

// HeatmapData reports hold percentage by handicap bin x target distance.
type HeatmapData struct {
	HandicapBins []string
	DistanceBins []int
	// HoldPercentages[handicapBin][distanceBin]
	HoldPercentages [][]float64
}

// ProgressUpdate reports one bay's completion, for CLI progress display.
type ProgressUpdate struct {
	BaysDone  int
	BaysTotal int
}

// Result aggregates venue-wide economics across all bays.
type Result struct {
	TotalWagered   float64
	TotalPaid      float64
	NetProfit      float64
	HoldPercentage float64
	ProfitOverTime [][2]float64 // (hour, cumulative_profit)
	Heatmap        HeatmapData
	PayoutBuckets  [11]int // [0x, 1x, ..., 9x, 10x+]
	TotalShots     int
}

// bayOutcome pairs one bay's player with its session result, matching
// the reference's (player, session_result) tuple list used for heatmap
// construction.
type bayOutcome struct {
	handicap uint8
	result   session.Result
	outcomes []session.ShotOutcome
}

// GeneratePlayerPool builds size players with handicaps drawn from
// archetype, sampled in order from src so the pool is reproducible for a
// given master seed.
func GeneratePlayerPool(archetype Archetype, size int, src *rng.Stream) []*player.Player {
	players := make([]*player.Player, size)
	for i := 0; i < size; i++ {
		var handicap uint8
		switch archetype.Kind {
		case Uniform:
			handicap = uint8(src.Float64() * 31)
			if handicap > 30 {
				handicap = 30
			}
		case BellCurve:
			sample := rng.Normal(src, float64(archetype.Mean), archetype.StdDev)
			handicap = clampHandicap(sample)
		case SkewedHigh:
			u := src.Float64()
			skewed := 1 - (1-u)*(1-u)
			handicap = clampHandicap(skewed * 30)
		case SkewedLow:
			u := src.Float64()
			skewed := u * u
			handicap = clampHandicap(skewed * 30)
		}
		players[i] = player.New(fmt.Sprintf("player_%d", i), handicap)
	}
	return players
}

func clampHandicap(v float64) uint8 {
	rounded := v
	if rounded < 0 {
		rounded = 0
	}
	if rounded > 30 {
		rounded = 30
	}
	return uint8(rounded + 0.5)
}

// Run fans out one session per bay across goroutines, using src.Split()
// to give each bay an independent, reproducible stream, then aggregates
// into a Result. progress, if non-nil, receives one ProgressUpdate per
// completed bay; Run closes it before returning.
func Run(cfg Config, src *rng.Stream, progress chan<- ProgressUpdate) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if progress != nil {
		defer close(progress)
	}

	totalShots := int(float64(cfg.NumBays) * cfg.Hours * float64(cfg.ShotsPerHour))
	shotsPerBay := totalShots / cfg.NumBays

	players := GeneratePlayerPool(cfg.Archetype, cfg.NumBays, src)

	bayResults := make([]bayOutcome, cfg.NumBays)
	var wg sync.WaitGroup
	var progressMu sync.Mutex
	done := 0

	for i := 0; i < cfg.NumBays; i++ {
		bayStream := src.Split()
		wg.Add(1)
		go func(idx int, p *player.Player, bayRNG *rng.Stream) {
			defer wg.Done()

			sessCfg := session.Config{
				NumShots: shotsPerBay,
				WagerMin: cfg.WagerMin,
				WagerMax: cfg.WagerMax,
				HoleSelection: session.HoleSelection{
					Kind: session.Random,
				},
			}
			result, err := session.Run(p, sessCfg, bayRNG)
			if err != nil {
				result = session.Result{}
			}
			bayResults[idx] = bayOutcome{
				handicap: p.Handicap,
				result:   result,
				outcomes: result.Outcomes,
			}

			if progress != nil {
				progressMu.Lock()
				done++
				progress <- ProgressUpdate{BaysDone: done, BaysTotal: cfg.NumBays}
				progressMu.Unlock()
			}
		}(i, players[i], bayStream)
	}
	wg.Wait()

	var totalWagered, totalPaid float64
	var allShots []session.ShotOutcome
	for _, b := range bayResults {
		totalWagered += b.result.TotalWagered
		totalPaid += b.result.TotalPaid
		allShots = append(allShots, b.outcomes...)
	}

	netProfit := totalWagered - totalPaid
	var holdPct float64
	if totalWagered > 0 {
		holdPct = netProfit / totalWagered
	}

	result := Result{
		TotalWagered:   totalWagered,
		TotalPaid:      totalPaid,
		NetProfit:      netProfit,
		HoldPercentage: holdPct,
		ProfitOverTime: buildProfitOverTime(netProfit, cfg.Hours),
		Heatmap:        buildHeatmap(bayResults),
		PayoutBuckets:  buildPayoutDistribution(allShots),
		TotalShots:     len(allShots),
	}
	return result, nil
}

func buildProfitOverTime(netProfit, hours float64) [][2]float64 {
	profitPerHour := netProfit / hours
	numHours := int(hours)
	series := make([][2]float64, 0, numHours+1)
	for h := 0; h <= numHours; h++ {
		series = append(series, [2]float64{float64(h), profitPerHour * float64(h)})
	}
	return series
}

// buildHeatmap sums *actual* wagers per (handicap bin, target) cell and
// divides net profit in that cell by the real wager sum, rather than the
// reference's `count * $10` approximation (DESIGN.md OQ2).
func buildHeatmap(bayResults []bayOutcome) HeatmapData {
	all := targets.All()
	distanceBins := make([]int, len(all))
	idByIndex := make(map[int]int, len(all))
	for i, t := range all {
		distanceBins[i] = t.DistanceYds
		idByIndex[t.ID] = i
	}

	profitMatrix := make([][]float64, len(handicapBins))
	wagerMatrix := make([][]float64, len(handicapBins))
	for i := range profitMatrix {
		profitMatrix[i] = make([]float64, len(all))
		wagerMatrix[i] = make([]float64, len(all))
	}

	for _, b := range bayResults {
		hBin := handicapBinIndex(b.handicap)
		for _, o := range b.outcomes {
			holeIdx, ok := idByIndex[o.TargetID]
			if !ok {
				continue
			}
			profitMatrix[hBin][holeIdx] += o.Wager - o.Payout
			wagerMatrix[hBin][holeIdx] += o.Wager
		}
	}

	holdPercentages := make([][]float64, len(handicapBins))
	for i := range holdPercentages {
		holdPercentages[i] = make([]float64, len(all))
		for j := range holdPercentages[i] {
			if wagerMatrix[i][j] > 0 {
				holdPercentages[i][j] = profitMatrix[i][j] / wagerMatrix[i][j]
			}
		}
	}

	return HeatmapData{
		HandicapBins:    handicapBins,
		DistanceBins:    distanceBins,
		HoldPercentages: holdPercentages,
	}
}

func buildPayoutDistribution(shots []session.ShotOutcome) [11]int {
	var dist [11]int
	for _, s := range shots {
		bin := int(s.Multiplier)
		if bin > 10 {
			bin = 10
		}
		dist[bin]++
	}
	return dist
}
