// Package player defines immutable Farkle player strategies.
package player

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Config describes a player's identity and strategy.
type Config struct {
	// ID uniquely identifies the player; a UUID is generated when empty.
	ID string `yaml:"id" mapstructure:"id"`
	// Name is the display name; defaults to the strategy description.
	Name string `yaml:"name" mapstructure:"name"`
	// PointThreshold is the running turn total required before stopping voluntarily.
	PointThreshold int `yaml:"point_threshold" mapstructure:"point_threshold"`
	// DiceThreshold is the fewest dice the player will roll again with.
	DiceThreshold int `yaml:"dice_threshold" mapstructure:"dice_threshold"`
	// Greedy players keep rolling whenever the dice threshold allows.
	Greedy bool `yaml:"greedy" mapstructure:"greedy"`
	// FinalTurn switches the final-round target to catching the leader.
	FinalTurn bool `yaml:"final_turn" mapstructure:"final_turn"`
}

// ErrNegativeThreshold is returned when a point threshold is below zero.
var ErrNegativeThreshold = errors.New("point threshold must be >= 0")

// Player is an immutable strategy configuration. Scores live in the ledger,
// never on the player.
type Player struct {
	id             string
	name           string
	pointThreshold int
	diceThreshold  int
	greedy         bool
	finalTurn      bool
}

// New builds a Player from cfg.
//
// Precondition: cfg.PointThreshold >= 0.
// Postcondition: DiceThreshold() >= 1; ID() is non-empty.
func New(cfg Config) (*Player, error) {
	if cfg.PointThreshold < 0 {
		return nil, fmt.Errorf("player %q: %w (got %d)", cfg.Name, ErrNegativeThreshold, cfg.PointThreshold)
	}
	p := &Player{
		id:             cfg.ID,
		name:           cfg.Name,
		pointThreshold: cfg.PointThreshold,
		diceThreshold:  max(cfg.DiceThreshold, 1),
		greedy:         cfg.Greedy,
		finalTurn:      cfg.FinalTurn,
	}
	if p.id == "" {
		p.id = uuid.New().String()
	}
	if p.name == "" {
		p.name = p.Describe()
	}
	return p, nil
}

// MustNew is New that panics on error. Intended for tests and fixed rosters.
func MustNew(cfg Config) *Player {
	p, err := New(cfg)
	if err != nil {
		panic("player: MustNew: " + err.Error())
	}
	return p
}

// ID returns the player's unique identifier.
func (p *Player) ID() string { return p.id }

// Name returns the display name.
func (p *Player) Name() string { return p.name }

// PointThreshold returns the turn total needed before banking.
func (p *Player) PointThreshold() int { return p.pointThreshold }

// DiceThreshold returns the fewest dice the player will roll again with.
func (p *Player) DiceThreshold() int { return p.diceThreshold }

// Greedy reports whether the player always takes the minimal extraction when allowed.
func (p *Player) Greedy() bool { return p.greedy }

// FinalTurnAggressive reports whether the final-round target is to overtake the leader.
func (p *Player) FinalTurnAggressive() bool { return p.finalTurn }

// Config returns the configuration that reproduces this player.
func (p *Player) Config() Config {
	return Config{
		ID:             p.id,
		Name:           p.name,
		PointThreshold: p.pointThreshold,
		DiceThreshold:  p.diceThreshold,
		Greedy:         p.greedy,
		FinalTurn:      p.finalTurn,
	}
}

// Describe returns a compact strategy label such as "pt=500 dt=3 greedy final".
func (p *Player) Describe() string {
	parts := []string{
		fmt.Sprintf("pt=%d", p.pointThreshold),
		fmt.Sprintf("dt=%d", p.diceThreshold),
	}
	if p.greedy {
		parts = append(parts, "greedy")
	}
	if p.finalTurn {
		parts = append(parts, "final")
	}
	return strings.Join(parts, " ")
}

// String returns the display name.
func (p *Player) String() string {
	return p.name
}
