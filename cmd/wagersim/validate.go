package main

import (
	"flag"
	"fmt"

	"github.com/jstittsworth/continuum-wagersim/internal/analytics"
	"github.com/jstittsworth/continuum-wagersim/internal/player"
	"github.com/jstittsworth/continuum-wagersim/internal/rng"
	"github.com/jstittsworth/continuum-wagersim/internal/session"
	"github.com/jstittsworth/continuum-wagersim/internal/targets"
)

// runValidate runs the named analytics checks and prints their results:
// `wagersim validate --test all|rtp|fairness|convergence [-v]`.
func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	test := fs.String("test", "all", "all|rtp|fairness|convergence")
	verbose := fs.Bool("v", false, "print per-point detail")
	seed := fs.Uint64("seed", 1, "master RNG seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch *test {
	case "all":
		if err := validateRTP(*seed, *verbose); err != nil {
			return err
		}
		if err := validateFairness(*seed, *verbose); err != nil {
			return err
		}
		return validateConvergence(*seed, *verbose)
	case "rtp":
		return validateRTP(*seed, *verbose)
	case "fairness":
		return validateFairness(*seed, *verbose)
	case "convergence":
		return validateConvergence(*seed, *verbose)
	default:
		return fmt.Errorf("unknown test %q (want all|rtp|fairness|convergence)", *test)
	}
}

func validateRTP(seed uint64, verbose bool) error {
	hole, _ := targets.ByID(4)
	handicaps := []uint8{0, 5, 10, 15, 20, 25, 30}
	src := rng.NewStream(seed)

	points, err := analytics.ValidateRTPAcrossSkills(hole, handicaps, 5000, src)
	if err != nil {
		return err
	}

	fmt.Printf("RTP validation (target %.2f):\n", hole.RTP)
	for _, pt := range points {
		if verbose {
			fmt.Printf("  handicap=%2d actual_rtp=%.4f deviation=%+.4f\n", pt.Handicap, pt.ActualRTP, pt.Deviation)
		}
	}
	return nil
}

func validateFairness(seed uint64, verbose bool) error {
	hole, _ := targets.ByID(5)
	handicaps := []uint8{0, 5, 10, 15, 20, 25, 30}
	src := rng.NewStream(seed)

	report, err := analytics.Fairness(hole, handicaps, 5000, src)
	if err != nil {
		return err
	}

	fmt.Printf("Fairness validation: max EV spread $%.4f (fair=%v)\n", report.MaxEVDifference, report.IsFair)
	if verbose {
		for _, pt := range report.Points {
			fmt.Printf("  handicap=%2d ev=%.4f p_max=%.3f sigma=%.3f\n", pt.Handicap, pt.EV, pt.PMax, pt.Sigma)
		}
	}
	return nil
}

func validateConvergence(seed uint64, verbose bool) error {
	p := player.New("validate", 15)
	cfg := session.Config{
		NumShots:      2000,
		WagerMin:      5,
		WagerMax:      15,
		HoleSelection: session.HoleSelection{Kind: session.Fixed, FixedID: 4},
	}
	src := rng.NewStream(seed)
	result, err := session.Run(p, cfg, src)
	if err != nil {
		return err
	}

	report, err := analytics.Convergence(result)
	if err != nil {
		return err
	}

	fmt.Println("Convergence validation:")
	for cat, shot := range report.ShotsTo80Percent {
		fmt.Printf("  category=%s shots_to_80pct=%d\n", cat, shot)
		if verbose {
			fmt.Printf("    confidence_trajectory=%v\n", report.ConfidenceTrajectory[cat])
		}
	}
	return nil
}
