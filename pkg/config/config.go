// Package config holds the CLI layer's defaults — wager bounds, batch
// capacity, log level/format — loaded the teacher's way (backend/pkg/config):
// a mapstructure-tagged struct populated via viper, with SetDefault calls
// for every field and an optional --config file override. The simulation
// core (internal/*) takes no environment variables (spec §6); this package
// is consumed only by cmd/wagersim.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds every CLI-layer default a subcommand can fall back on when
// a flag is not supplied.
type Config struct {
	DefaultWagerMin    float64 `mapstructure:"DEFAULT_WAGER_MIN"`
	DefaultWagerMax    float64 `mapstructure:"DEFAULT_WAGER_MAX"`
	DefaultBatchCap    int     `mapstructure:"DEFAULT_BATCH_CAPACITY"`
	DefaultFatTailProb float64 `mapstructure:"DEFAULT_FAT_TAIL_PROB"`
	DefaultFatTailMult float64 `mapstructure:"DEFAULT_FAT_TAIL_MULT"`
	LogLevel           string  `mapstructure:"LOG_LEVEL"`
	LogFormat          string  `mapstructure:"LOG_FORMAT"`
	Development        bool    `mapstructure:"DEVELOPMENT"`
}

// Load reads defaults, an optional config file at configPath (if
// non-empty), and environment variables prefixed WAGERSIM_, in that
// precedence order (env > file > defaults).
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("DEFAULT_WAGER_MIN", 5.0)
	v.SetDefault("DEFAULT_WAGER_MAX", 50.0)
	v.SetDefault("DEFAULT_BATCH_CAPACITY", 5)
	v.SetDefault("DEFAULT_FAT_TAIL_PROB", 0.02)
	v.SetDefault("DEFAULT_FAT_TAIL_MULT", 3.0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DEVELOPMENT", false)

	v.SetEnvPrefix("WAGERSIM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
