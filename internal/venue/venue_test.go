package venue

import (
	"testing"

	"github.com/jstittsworth/continuum-wagersim/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		NumBays:      4,
		Hours:        1,
		ShotsPerHour: 10,
		Archetype:    Archetype{Kind: Uniform},
		WagerMin:     5,
		WagerMax:     10,
	}
}

func TestValidateRejectsNonPositiveBays(t *testing.T) {
	cfg := validConfig()
	cfg.NumBays = 0
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsInvertedWagerRange(t *testing.T) {
	cfg := validConfig()
	cfg.WagerMin = 100
	cfg.WagerMax = 5
	require.Error(t, cfg.Validate())
}

func TestGeneratePlayerPoolUniformHasWideSpread(t *testing.T) {
	src := rng.NewStream(1)
	players := GeneratePlayerPool(Archetype{Kind: Uniform}, 100, src)
	require.Len(t, players, 100)

	minH, maxH := uint8(30), uint8(0)
	for _, p := range players {
		if p.Handicap < minH {
			minH = p.Handicap
		}
		if p.Handicap > maxH {
			maxH = p.Handicap
		}
	}
	assert.Greater(t, int(maxH)-int(minH), 10)
}

func TestGeneratePlayerPoolBellCurveCentersOnMean(t *testing.T) {
	src := rng.NewStream(2)
	players := GeneratePlayerPool(Archetype{Kind: BellCurve, Mean: 15, StdDev: 3}, 200, src)

	var total float64
	for _, p := range players {
		total += float64(p.Handicap)
	}
	mean := total / 200
	assert.InDelta(t, 15.0, mean, 3.0)
}

func TestGeneratePlayerPoolSkewedHighMeanAboveMidpoint(t *testing.T) {
	src := rng.NewStream(3)
	players := GeneratePlayerPool(Archetype{Kind: SkewedHigh}, 300, src)

	var total float64
	for _, p := range players {
		total += float64(p.Handicap)
	}
	mean := total / 300
	assert.Greater(t, mean, 15.0)
}

func TestGeneratePlayerPoolSkewedLowMeanBelowMidpoint(t *testing.T) {
	src := rng.NewStream(4)
	players := GeneratePlayerPool(Archetype{Kind: SkewedLow}, 300, src)

	var total float64
	for _, p := range players {
		total += float64(p.Handicap)
	}
	mean := total / 300
	assert.Less(t, mean, 15.0)
}

func TestRunProducesExpectedShotCount(t *testing.T) {
	cfg := validConfig()
	src := rng.NewStream(5)

	result, err := Run(cfg, src, nil)
	require.NoError(t, err)
	assert.Equal(t, 40, result.TotalShots) // 4 bays * 1 hour * 10 shots/hour
	assert.Greater(t, result.TotalWagered, 0.0)
}

func TestRunHoldPercentageIsBounded(t *testing.T) {
	cfg := validConfig()
	src := rng.NewStream(6)

	result, err := Run(cfg, src, nil)
	require.NoError(t, err)
	assert.Greater(t, result.HoldPercentage, -1.0)
	assert.Less(t, result.HoldPercentage, 1.0)
}

func TestRunProfitOverTimeStartsAtZeroEndsAtNetProfit(t *testing.T) {
	cfg := validConfig()
	cfg.Hours = 4
	src := rng.NewStream(7)

	result, err := Run(cfg, src, nil)
	require.NoError(t, err)
	require.Len(t, result.ProfitOverTime, 5)
	assert.Zero(t, result.ProfitOverTime[0][1])
	assert.InDelta(t, result.NetProfit, result.ProfitOverTime[4][1], 0.01)
}

func TestRunHeatmapShape(t *testing.T) {
	cfg := validConfig()
	src := rng.NewStream(8)

	result, err := Run(cfg, src, nil)
	require.NoError(t, err)
	assert.Len(t, result.Heatmap.HandicapBins, 6)
	assert.Len(t, result.Heatmap.DistanceBins, 8)
	require.Len(t, result.Heatmap.HoldPercentages, 6)
	for _, row := range result.Heatmap.HoldPercentages {
		assert.Len(t, row, 8)
	}
}

func TestRunEmitsProgressPerBayAndClosesChannel(t *testing.T) {
	cfg := validConfig()
	src := rng.NewStream(9)
	progress := make(chan ProgressUpdate, cfg.NumBays)

	result, err := Run(cfg, src, progress)
	require.NoError(t, err)

	count := 0
	for range progress {
		count++
	}
	assert.Equal(t, cfg.NumBays, count)
	assert.Equal(t, 40, result.TotalShots)
}

func TestRunRejectsInvalidConfigBeforeSimulating(t *testing.T) {
	cfg := validConfig()
	cfg.NumBays = -1
	src := rng.NewStream(10)

	_, err := Run(cfg, src, nil)
	require.Error(t, err)
}
