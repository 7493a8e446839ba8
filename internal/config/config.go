// Package config provides Viper-based configuration loading for the Farkle
// simulator.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// GameConfig holds the shared rules of every game.
type GameConfig struct {
	// MinimumWinScore triggers the final round.
	MinimumWinScore int `mapstructure:"minimum_win_score"`
	// OnTheBoard is the minimum first banked total.
	OnTheBoard int `mapstructure:"on_the_board"`
	// MaxRounds bounds regular rounds per game; zero means unlimited.
	MaxRounds int `mapstructure:"max_rounds"`
}

// GridConfig lists the strategy values combined by the grid mode.
type GridConfig struct {
	PointThresholds []int  `mapstructure:"point_thresholds"`
	DiceThresholds  []int  `mapstructure:"dice_thresholds"`
	Greedy          []bool `mapstructure:"greedy"`
	FinalTurn       []bool `mapstructure:"final_turn"`
}

// SimulationConfig holds batch simulation settings.
type SimulationConfig struct {
	// Games is the number of games per batch.
	Games int `mapstructure:"games"`
	// Workers bounds concurrently running games.
	Workers int `mapstructure:"workers"`
	// Seed is the base seed; game i uses Seed+i. Zero picks a random seed.
	Seed uint64 `mapstructure:"seed"`
	// Grid configures strategy enumeration.
	Grid GridConfig `mapstructure:"grid"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Game       GameConfig       `mapstructure:"game"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.MinimumWinScore < 1 {
		errs = append(errs, fmt.Sprintf("game.minimum_win_score must be >= 1, got %d", g.MinimumWinScore))
	}
	if g.OnTheBoard < 0 {
		errs = append(errs, fmt.Sprintf("game.on_the_board must be >= 0, got %d", g.OnTheBoard))
	}
	if g.MaxRounds < 0 {
		errs = append(errs, fmt.Sprintf("game.max_rounds must be >= 0, got %d", g.MaxRounds))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.Games < 1 {
		errs = append(errs, fmt.Sprintf("simulation.games must be >= 1, got %d", s.Games))
	}
	if s.Workers < 1 {
		errs = append(errs, fmt.Sprintf("simulation.workers must be >= 1, got %d", s.Workers))
	}
	for _, pt := range s.Grid.PointThresholds {
		if pt < 0 {
			errs = append(errs, fmt.Sprintf("simulation.grid.point_thresholds must be >= 0, got %d", pt))
			break
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Precondition: path is empty or names a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with FARKLE_ prefix
	v.SetEnvPrefix("FARKLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration produced by the built-in defaults alone.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.minimum_win_score", 10000)
	v.SetDefault("game.on_the_board", 500)
	v.SetDefault("game.max_rounds", 1000)

	v.SetDefault("simulation.games", 1000)
	v.SetDefault("simulation.workers", 4)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.grid.point_thresholds", []int{300, 500, 1000, 2000})
	v.SetDefault("simulation.grid.dice_thresholds", []int{2, 3, 4})
	v.SetDefault("simulation.grid.greedy", []bool{false, true})
	v.SetDefault("simulation.grid.final_turn", []bool{false, true})
}
