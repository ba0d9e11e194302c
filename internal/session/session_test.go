package session

import (
	"testing"

	"github.com/jstittsworth/continuum-wagersim/internal/player"
	"github.com/jstittsworth/continuum-wagersim/internal/rng"
	"github.com/jstittsworth/continuum-wagersim/internal/simerrors"
	"github.com/jstittsworth/continuum-wagersim/internal/targets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(numShots int) Config {
	return Config{
		NumShots: numShots,
		WagerMin: 5,
		WagerMax: 20,
		HoleSelection: HoleSelection{
			Kind: Random,
		},
	}
}

func TestValidateRejectsNegativeShots(t *testing.T) {
	cfg := validConfig(-1)
	err := cfg.Validate()
	require.Error(t, err)
	var cfgErr *simerrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestValidateRejectsInvertedWagerRange(t *testing.T) {
	cfg := validConfig(10)
	cfg.WagerMin = 50
	cfg.WagerMax = 5
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownFixedHole(t *testing.T) {
	cfg := validConfig(10)
	cfg.HoleSelection = HoleSelection{Kind: Fixed, FixedID: 999}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsEmptyWeightedSelection(t *testing.T) {
	cfg := validConfig(10)
	cfg.HoleSelection = HoleSelection{Kind: Weighted}
	require.Error(t, cfg.Validate())
}

func TestRunRejectsInvalidConfigBeforeSimulating(t *testing.T) {
	p := player.New("p1", 15)
	cfg := validConfig(-5)
	src := rng.NewStream(1)

	result, err := Run(p, cfg, src)
	require.Error(t, err)
	assert.Empty(t, result.Outcomes)
}

func TestRunFixedHoleOnlyTargetsThatHole(t *testing.T) {
	p := player.New("p1", 15)
	cfg := validConfig(30)
	cfg.HoleSelection = HoleSelection{Kind: Fixed, FixedID: 4}
	src := rng.NewStream(42)

	result, err := Run(p, cfg, src)
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 30)
	for _, o := range result.Outcomes {
		assert.Equal(t, 4, o.TargetID)
	}
}

func TestRunAccumulatesWagerAndPayoutTotals(t *testing.T) {
	p := player.New("p1", 15)
	cfg := validConfig(50)
	cfg.HoleSelection = HoleSelection{Kind: Fixed, FixedID: 1}
	src := rng.NewStream(7)

	result, err := Run(p, cfg, src)
	require.NoError(t, err)

	var wantWagered, wantPaid float64
	for _, o := range result.Outcomes {
		wantWagered += o.Wager
		wantPaid += o.Payout
	}
	assert.InDelta(t, wantWagered, result.TotalWagered, 1e-9)
	assert.InDelta(t, wantPaid, result.TotalPaid, 1e-9)
}

func TestRunDeveloperManualMissDisablesSampling(t *testing.T) {
	p := player.New("p1", 15)
	manual := 5.0
	cfg := validConfig(10)
	cfg.HoleSelection = HoleSelection{Kind: Fixed, FixedID: 1}
	cfg.Developer = DeveloperMode{ManualMissDistance: &manual}
	src := rng.NewStream(3)

	result, err := Run(p, cfg, src)
	require.NoError(t, err)
	for _, o := range result.Outcomes {
		assert.Equal(t, 5.0, o.MissFt)
		assert.False(t, o.IsFatTail)
	}
}

func TestRunDisableKalmanLeavesSigmaUnchanged(t *testing.T) {
	p := player.New("p1", 15)
	hole, _ := targets.ByID(1)
	sigmaBefore := p.Sigma(hole)

	cfg := validConfig(50)
	cfg.HoleSelection = HoleSelection{Kind: Fixed, FixedID: 1}
	cfg.Developer = DeveloperMode{DisableKalman: true}
	src := rng.NewStream(9)

	result, err := Run(p, cfg, src)
	require.NoError(t, err)
	assert.Equal(t, sigmaBefore, p.Sigma(hole))
	assert.Zero(t, result.UpdateCount)
	assert.Empty(t, result.CovarianceTrace)
}

func TestRunFlushesTrailingPartialBatchAtEnd(t *testing.T) {
	p := player.New("p1", 15)
	cfg := validConfig(3) // fewer than the batch capacity of 5
	cfg.HoleSelection = HoleSelection{Kind: Fixed, FixedID: 1}
	src := rng.NewStream(11)

	result, err := Run(p, cfg, src)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.UpdateCount, 1)

	hole, _ := targets.ByID(1)
	assert.Zero(t, p.BatchLen(hole))
}

func TestRunIsDeterministicForFixedSeed(t *testing.T) {
	cfg := validConfig(25)
	cfg.HoleSelection = HoleSelection{Kind: Fixed, FixedID: 6}

	p1 := player.New("p1", 10)
	r1, err1 := Run(p1, cfg, rng.NewStream(123))
	require.NoError(t, err1)

	p2 := player.New("p1", 10)
	r2, err2 := Run(p2, cfg, rng.NewStream(123))
	require.NoError(t, err2)

	require.Len(t, r2.Outcomes, len(r1.Outcomes))
	for i := range r1.Outcomes {
		assert.Equal(t, r1.Outcomes[i], r2.Outcomes[i])
	}
}

func TestResultHouseEdgeZeroWhenNothingWagered(t *testing.T) {
	var r Result
	assert.Zero(t, r.HouseEdge())
}

func TestShotOutcomeHelpers(t *testing.T) {
	o := ShotOutcome{Payout: 30, Wager: 10, Multiplier: 3, MissFt: 0.05}
	assert.Equal(t, 20.0, o.NetResult())
	assert.True(t, o.IsWin())
	assert.True(t, o.IsAce())

	loss := ShotOutcome{Payout: 0, Wager: 10, Multiplier: 0, MissFt: 50}
	assert.False(t, loss.IsWin())
	assert.False(t, loss.IsAce())
}

func TestWeightedSelectionRespectsLastEntryFallback(t *testing.T) {
	cfg := validConfig(40)
	cfg.HoleSelection = HoleSelection{
		Kind: Weighted,
		Weighted: []WeightedChoice{
			{HoleID: 1, Prob: 0.5},
			{HoleID: 8, Prob: 0.5},
		},
	}
	p := player.New("p1", 15)
	src := rng.NewStream(99)

	result, err := Run(p, cfg, src)
	require.NoError(t, err)
	for _, o := range result.Outcomes {
		assert.Contains(t, []int{1, 8}, o.TargetID)
	}
}
