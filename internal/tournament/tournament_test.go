package tournament

import (
	"testing"

	"github.com/jstittsworth/continuum-wagersim/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		GameMode:          ClosestToPin,
		HoleID:            4,
		NumPlayers:        10,
		EntryFee:          20,
		HouseRakePercent:  0.10,
		Payout:            PayoutStructure{Kind: Top3, ShareA: 0.5, ShareB: 0.3, ShareC: 0.2},
		AttemptsPerPlayer: 3,
	}
}

func TestValidateRejectsInvalidHole(t *testing.T) {
	cfg := validConfig()
	cfg.HoleID = 99
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsOversizedShares(t *testing.T) {
	cfg := validConfig()
	cfg.Payout = PayoutStructure{Kind: Top2, ShareA: 0.8, ShareB: 0.8}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsRakeOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.HouseRakePercent = 1.5
	require.Error(t, cfg.Validate())
}

// S3 from spec §8: CTP hole=4, 10 players, fee=$20, rake=10%, Top3, 3 attempts.
func TestScenarioS3(t *testing.T) {
	cfg := validConfig()
	src := rng.NewStream(42)

	result, err := Run(cfg, src)
	require.NoError(t, err)

	assert.InDelta(t, 200.0, result.EntryPool, 1e-9)
	assert.InDelta(t, 20.0, result.HouseRake, 1e-9)
	assert.InDelta(t, 180.0, result.PrizePool, 1e-9)
	require.Len(t, result.Leaderboard, 10)

	var paid float64
	for _, p := range result.Prizes {
		paid += p.Amount
	}
	assert.InDelta(t, 180.0, paid, 0.01)

	for i := 1; i < len(result.Leaderboard); i++ {
		assert.LessOrEqual(t, result.Leaderboard[i-1].Score, result.Leaderboard[i].Score)
	}
}

func TestEmptyTournamentHasEmptyLeaderboard(t *testing.T) {
	cfg := validConfig()
	cfg.NumPlayers = 0
	src := rng.NewStream(1)

	result, err := Run(cfg, src)
	require.NoError(t, err)

	assert.Empty(t, result.Leaderboard)
	assert.Zero(t, result.EntryPool)
	assert.Zero(t, result.HouseRake)
	assert.Empty(t, result.Prizes)
}

func TestLongestDriveSortsDescending(t *testing.T) {
	cfg := validConfig()
	cfg.GameMode = LongestDrive
	cfg.HoleID = 0
	src := rng.NewStream(7)

	result, err := Run(cfg, src)
	require.NoError(t, err)

	for i := 1; i < len(result.Leaderboard); i++ {
		assert.GreaterOrEqual(t, result.Leaderboard[i-1].Score, result.Leaderboard[i].Score)
	}
}

func TestWinnerTakesAllPaysOnlyRankOne(t *testing.T) {
	cfg := validConfig()
	cfg.Payout = PayoutStructure{Kind: WinnerTakesAll}
	src := rng.NewStream(3)

	result, err := Run(cfg, src)
	require.NoError(t, err)
	require.Len(t, result.Prizes, 1)
	assert.Equal(t, 1, result.Prizes[0].Rank)
	assert.InDelta(t, result.PrizePool, result.Prizes[0].Amount, 1e-9)
}

func TestShortLeaderboardPaysOnlyExistingRanks(t *testing.T) {
	cfg := validConfig()
	cfg.NumPlayers = 2
	cfg.Payout = PayoutStructure{Kind: Top3, ShareA: 0.5, ShareB: 0.3, ShareC: 0.2}
	src := rng.NewStream(5)

	result, err := Run(cfg, src)
	require.NoError(t, err)
	require.Len(t, result.Leaderboard, 2)
	assert.Len(t, result.Prizes, 2)
}
