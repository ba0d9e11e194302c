// Package logger provides the structured logging the CLI and driver entry
// points use, following the teacher repo's logrus-based init pattern
// (shared/pkg/logger): a package-level logger, environment-aware
// formatting, and a family of With*Context helpers. internal/skill,
// internal/odds, internal/quadrature, and internal/rng stay silent and
// pure, as do the driver packages — only cmd/wagersim logs.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

// Init configures the package-level logger: level parses case-insensitively
// and falls back to Info with a warning on an unrecognized value; the
// formatter is JSON outside development, colorized text inside it.
func Init(level string, isDevelopment bool) *logrus.Logger {
	l := logrus.New()

	if level == "" {
		if isDevelopment {
			level = "debug"
		} else {
			level = "info"
		}
	}

	if parsed, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		l.SetLevel(parsed)
	} else {
		l.SetLevel(logrus.InfoLevel)
		l.WithField("invalid_level", level).Warn("unrecognized log level, defaulting to info")
	}

	if isDevelopment {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			ForceColors:     true,
		})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}

	l.SetOutput(os.Stderr)
	log = l
	return l
}

// Get returns the package-level logger, lazily initializing it to a
// sensible default if Init was never called (e.g. a package test that logs
// without going through cmd/wagersim).
func Get() *logrus.Logger {
	if log == nil {
		return Init("info", false)
	}
	return log
}

// WithSessionContext returns an entry pre-populated with a session's
// player id and handicap.
func WithSessionContext(playerID string, handicap uint8) *logrus.Entry {
	return Get().WithFields(logrus.Fields{
		"player_id": playerID,
		"handicap":  handicap,
	})
}

// WithVenueContext returns an entry pre-populated with a venue run's bay
// count and operating hours.
func WithVenueContext(bays int, hours float64) *logrus.Entry {
	return Get().WithFields(logrus.Fields{
		"bays":  bays,
		"hours": hours,
	})
}

// WithTournamentContext returns an entry pre-populated with a tournament's
// game mode and player count.
func WithTournamentContext(mode string, players int) *logrus.Entry {
	return Get().WithFields(logrus.Fields{
		"mode":    mode,
		"players": players,
	})
}

// WithTargetContext returns an entry pre-populated with a target id.
func WithTargetContext(id int) *logrus.Entry {
	return Get().WithField("target_id", id)
}
