package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jstittsworth/continuum-wagersim/internal/export"
	"github.com/jstittsworth/continuum-wagersim/internal/player"
	"github.com/jstittsworth/continuum-wagersim/internal/rng"
	"github.com/jstittsworth/continuum-wagersim/internal/session"
	"github.com/jstittsworth/continuum-wagersim/internal/simerrors"
	"github.com/jstittsworth/continuum-wagersim/pkg/config"
	"github.com/jstittsworth/continuum-wagersim/pkg/logger"
)

// runPlayer drives a single-player session: `wagersim player --handicap N
// --shots N [--wager-min F] [--wager-max F] [--hole N] [--developer-mode]
// [--export PATH]`. Wager bounds default to cfg's DEFAULT_WAGER_MIN/MAX
// when the corresponding flag is not supplied.
func runPlayer(args []string, cfg *config.Config) error {
	fs := flag.NewFlagSet("player", flag.ContinueOnError)
	handicap := fs.Int("handicap", 0, "player handicap, 0-30")
	shots := fs.Int("shots", 100, "number of shots to simulate")
	wagerMin := fs.Float64("wager-min", cfg.DefaultWagerMin, "minimum wager")
	wagerMax := fs.Float64("wager-max", cfg.DefaultWagerMax, "maximum wager")
	hole := fs.Int("hole", 0, "fixed target id; 0 means random hole selection")
	developerMode := fs.Bool("developer-mode", false, "disable the skill filter for breakeven-radius validation")
	exportPath := fs.String("export", "", "path to write a session CSV export")
	playerID := fs.String("player-id", "", "player id; generated if not supplied")
	seed := fs.Uint64("seed", 1, "master RNG seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *handicap < 0 || *handicap > 30 {
		return fmt.Errorf("invalid handicap: %d (must be 0-30)", *handicap)
	}

	holeSelection := session.HoleSelection{Kind: session.Random}
	if *hole != 0 {
		holeSelection = session.HoleSelection{Kind: session.Fixed, FixedID: *hole}
	}

	sessCfg := session.Config{
		NumShots:      *shots,
		WagerMin:      *wagerMin,
		WagerMax:      *wagerMax,
		HoleSelection: holeSelection,
		Developer:     session.DeveloperMode{DisableKalman: *developerMode},
		FatTailProb:   cfg.DefaultFatTailProb,
		FatTailMult:   cfg.DefaultFatTailMult,
	}

	id := *playerID
	if id == "" {
		id = uuid.New().String()
	}
	p := player.New(id, uint8(*handicap))
	log := logger.WithSessionContext(p.ID, p.Handicap)

	src := rng.NewStream(*seed)
	result, err := session.Run(p, sessCfg, src)
	if err != nil {
		var cfgErr *simerrors.ConfigError
		if errors.As(err, &cfgErr) {
			return cfgErr
		}
		return err
	}

	log.WithFields(map[string]interface{}{
		"total_wagered": result.TotalWagered,
		"total_paid":    result.TotalPaid,
		"house_edge":    result.HouseEdge(),
		"updates":       result.UpdateCount,
	}).Info("session complete")

	fmt.Printf("Wagered: $%.2f  Paid: $%.2f  Net: $%.2f  House edge: %.2f%%\n",
		result.TotalWagered, result.TotalPaid, result.Net(), result.HouseEdge()*100)

	if *exportPath != "" {
		f, err := os.Create(*exportPath)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		defer f.Close()
		if err := export.WriteSessionCSV(f, result); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	return nil
}
