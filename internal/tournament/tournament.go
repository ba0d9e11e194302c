// Package tournament implements the scored, ranked driver mode: a uniform
// player pool attempts either closest-to-pin or longest-drive, the best
// attempt per player is kept, and the entry pool is split across a
// configurable prize structure.
package tournament

import (
	"fmt"
	"sort"

	"github.com/jstittsworth/continuum-wagersim/internal/player"
	"github.com/jstittsworth/continuum-wagersim/internal/rng"
	"github.com/jstittsworth/continuum-wagersim/internal/session"
	"github.com/jstittsworth/continuum-wagersim/internal/simerrors"
	"github.com/jstittsworth/continuum-wagersim/internal/targets"
)

// GameMode selects the scored event a tournament runs.
type GameMode int

const (
	ClosestToPin GameMode = iota
	LongestDrive
)

// PayoutStructureKind selects how the prize pool is split across ranks.
type PayoutStructureKind int

const (
	WinnerTakesAll PayoutStructureKind = iota
	Top2
	Top3
)

// PayoutStructure configures a prize split. Shares apply only to the
// fields relevant to Kind; ShareA+ShareB (+ShareC) may total less than 1,
// with the remainder retained by the house, but must not exceed it.
type PayoutStructure struct {
	Kind   PayoutStructureKind
	ShareA float64
	ShareB float64
	ShareC float64
}

// longestDriveBaseYds/HcpFactor and longestDriveOffsetSig/Adj match the reference's
// longest-drive model: a handicap-scaled base distance plus a fat-tail
// offset sampled around a fixed sigma.
const (
	longestDriveBaseYds   = 250.0
	longestDriveHcpFactor = 3.0
	longestDriveOffsetSig = 20.0
	longestDriveOffsetAdj = 20.0
)

// Config holds one tournament run's inputs.
type Config struct {
	GameMode          GameMode
	HoleID            int // used when GameMode == ClosestToPin
	NumPlayers        int
	EntryFee          float64
	HouseRakePercent  float64 // fraction in [0,1]
	Payout            PayoutStructure
	AttemptsPerPlayer int
}

// Validate rejects a malformed config before any player is generated.
func (c Config) Validate() error {
	if c.NumPlayers < 0 {
		return &simerrors.ConfigError{Field: "num_players", Reason: "must be non-negative"}
	}
	if c.EntryFee < 0 {
		return &simerrors.ConfigError{Field: "entry_fee", Reason: "must be non-negative"}
	}
	if c.HouseRakePercent < 0 || c.HouseRakePercent > 1 {
		return &simerrors.ConfigError{Field: "house_rake_percent", Reason: "must be in [0,1]"}
	}
	if c.AttemptsPerPlayer <= 0 {
		return &simerrors.ConfigError{Field: "attempts_per_player", Reason: "must be positive"}
	}
	if c.GameMode == ClosestToPin {
		if _, ok := targets.ByID(c.HoleID); !ok {
			return &simerrors.ConfigError{Field: "hole", Reason: "invalid target id"}
		}
	}
	switch c.Payout.Kind {
	case WinnerTakesAll:
		// no shares to validate
	case Top2:
		if c.Payout.ShareA+c.Payout.ShareB > 1.0000001 {
			return &simerrors.ConfigError{Field: "payout", Reason: "top2 shares must not exceed 1"}
		}
	case Top3:
		if c.Payout.ShareA+c.Payout.ShareB+c.Payout.ShareC > 1.0000001 {
			return &simerrors.ConfigError{Field: "payout", Reason: "top3 shares must not exceed 1"}
		}
	default:
		return &simerrors.ConfigError{Field: "payout", Reason: "unknown payout structure"}
	}
	return nil
}

// Entry is one player's best-attempt score in the leaderboard.
type Entry struct {
	PlayerID string
	Handicap uint8
	Score    float64 // feet for ClosestToPin (lower better); yards for LongestDrive (higher better)
}

// Prize is one leaderboard rank's payout.
type Prize struct {
	Rank     int
	PlayerID string
	Amount   float64
}

// Result aggregates everything a tournament produced.
type Result struct {
	Leaderboard []Entry
	EntryPool   float64
	HouseRake   float64
	PrizePool   float64
	Prizes      []Prize
}

// Run generates a uniform-archetype player pool, runs every attempt for
// every player, keeps each player's best score, ranks the leaderboard, and
// splits the prize pool per cfg.Payout.
func Run(cfg Config, src *rng.Stream) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	entryPool := cfg.EntryFee * float64(cfg.NumPlayers)
	houseRake := entryPool * cfg.HouseRakePercent
	prizePool := entryPool - houseRake

	if cfg.NumPlayers == 0 {
		return Result{
			Leaderboard: nil,
			EntryPool:   entryPool,
			HouseRake:   houseRake,
			PrizePool:   prizePool,
			Prizes:      nil,
		}, nil
	}

	var hole targets.Target
	if cfg.GameMode == ClosestToPin {
		hole, _ = targets.ByID(cfg.HoleID)
	}

	entries := make([]Entry, cfg.NumPlayers)
	for i := 0; i < cfg.NumPlayers; i++ {
		handicap := uint8(src.Float64() * 31)
		if handicap > 30 {
			handicap = 30
		}
		p := player.New(fmt.Sprintf("player_%d", i), handicap)

		best, ok := bestAttempt(cfg, p, hole, src)
		if !ok {
			continue
		}
		entries[i] = Entry{PlayerID: p.ID, Handicap: handicap, Score: best}
	}

	sortLeaderboard(cfg.GameMode, entries)

	result := Result{
		Leaderboard: entries,
		EntryPool:   entryPool,
		HouseRake:   houseRake,
		PrizePool:   prizePool,
		Prizes:      splitPrizes(cfg.Payout, prizePool, entries),
	}
	return result, nil
}

// bestAttempt runs every attempt for p and returns the best score (min for
// ClosestToPin, max for LongestDrive).
func bestAttempt(cfg Config, p *player.Player, hole targets.Target, src *rng.Stream) (float64, bool) {
	if cfg.AttemptsPerPlayer <= 0 {
		return 0, false
	}

	switch cfg.GameMode {
	case ClosestToPin:
		best := -1.0
		for a := 0; a < cfg.AttemptsPerPlayer; a++ {
			miss, _ := rng.FatTail(src, p.Sigma(hole), session.DefaultFatTailProb, session.DefaultFatTailMult)
			if best < 0 || miss < best {
				best = miss
			}
		}
		return best, true
	case LongestDrive:
		base := longestDriveBaseYds - longestDriveHcpFactor*float64(p.Handicap)
		best := -1.0
		for a := 0; a < cfg.AttemptsPerPlayer; a++ {
			offset, _ := rng.FatTail(src, longestDriveOffsetSig, session.DefaultFatTailProb, session.DefaultFatTailMult)
			drive := base + offset - longestDriveOffsetAdj
			if best < 0 || drive > best {
				best = drive
			}
		}
		return best, true
	default:
		return 0, false
	}
}

// sortLeaderboard orders entries ascending for ClosestToPin (lower miss
// wins), descending for LongestDrive (longer drive wins); ties break by
// player id lexicographically.
func sortLeaderboard(mode GameMode, entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score == entries[j].Score {
			return entries[i].PlayerID < entries[j].PlayerID
		}
		if mode == ClosestToPin {
			return entries[i].Score < entries[j].Score
		}
		return entries[i].Score > entries[j].Score
	})
}

// splitPrizes pays the configured structure's ranks in order, skipping any
// rank the leaderboard is too short to have.
func splitPrizes(structure PayoutStructure, prizePool float64, leaderboard []Entry) []Prize {
	var shares []float64
	switch structure.Kind {
	case WinnerTakesAll:
		shares = []float64{1.0}
	case Top2:
		shares = []float64{structure.ShareA, structure.ShareB}
	case Top3:
		shares = []float64{structure.ShareA, structure.ShareB, structure.ShareC}
	}

	var prizes []Prize
	for rank, share := range shares {
		if rank >= len(leaderboard) {
			break
		}
		prizes = append(prizes, Prize{
			Rank:     rank + 1,
			PlayerID: leaderboard[rank].PlayerID,
			Amount:   prizePool * share,
		})
	}
	return prizes
}
