package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jstittsworth/continuum-wagersim/internal/export"
	"github.com/jstittsworth/continuum-wagersim/internal/rng"
	"github.com/jstittsworth/continuum-wagersim/internal/venue"
	"github.com/jstittsworth/continuum-wagersim/pkg/config"
	"github.com/jstittsworth/continuum-wagersim/pkg/logger"
)

// runVenue drives a parallel multi-bay venue run: `wagersim venue --bays N
// --hours F --shots-per-hour N [--archetype ...] [--wager-min F]
// [--wager-max F] [--export-json PATH] [--export-heatmap PATH]`. Wager
// bounds default to cfg's DEFAULT_WAGER_MIN/MAX when not supplied.
func runVenue(args []string, cfg *config.Config) error {
	fs := flag.NewFlagSet("venue", flag.ContinueOnError)
	bays := fs.Int("bays", 1, "number of parallel hitting bays")
	hours := fs.Float64("hours", 1, "operating hours")
	shotsPerHour := fs.Int("shots-per-hour", 10, "shots per hour per bay")
	archetypeFlag := fs.String("archetype", "uniform", "uniform|bell|beginners|experts")
	wagerMin := fs.Float64("wager-min", cfg.DefaultWagerMin, "minimum wager")
	wagerMax := fs.Float64("wager-max", cfg.DefaultWagerMax, "maximum wager")
	exportJSON := fs.String("export-json", "", "path to write a venue JSON export")
	exportHeatmap := fs.String("export-heatmap", "", "path to write a heatmap CSV export")
	seed := fs.Uint64("seed", 1, "master RNG seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	archetype, err := parseArchetype(*archetypeFlag)
	if err != nil {
		return err
	}

	venueCfg := venue.Config{
		NumBays:      *bays,
		Hours:        *hours,
		ShotsPerHour: *shotsPerHour,
		Archetype:    archetype,
		WagerMin:     *wagerMin,
		WagerMax:     *wagerMax,
	}

	log := logger.WithVenueContext(*bays, *hours)

	src := rng.NewStream(*seed)
	result, err := venue.Run(venueCfg, src, nil)
	if err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{
		"total_shots": result.TotalShots,
		"hold_pct":    result.HoldPercentage,
	}).Info("venue run complete")

	fmt.Printf("Shots: %d  Wagered: $%.2f  Paid: $%.2f  Hold: %.2f%%\n",
		result.TotalShots, result.TotalWagered, result.TotalPaid, result.HoldPercentage*100)

	if *exportJSON != "" {
		f, err := os.Create(*exportJSON)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		defer f.Close()
		if err := export.WriteVenueJSON(f, result); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	if *exportHeatmap != "" {
		f, err := os.Create(*exportHeatmap)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		defer f.Close()
		if err := export.WriteHeatmapCSV(f, result.Heatmap); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	return nil
}

func parseArchetype(name string) (venue.Archetype, error) {
	switch name {
	case "uniform":
		return venue.Archetype{Kind: venue.Uniform}, nil
	case "bell":
		return venue.Archetype{Kind: venue.BellCurve, Mean: 15, StdDev: 5}, nil
	case "beginners":
		return venue.Archetype{Kind: venue.SkewedHigh}, nil
	case "experts":
		return venue.Archetype{Kind: venue.SkewedLow}, nil
	default:
		return venue.Archetype{}, fmt.Errorf("unknown archetype %q (want uniform|bell|beginners|experts)", name)
	}
}
