package sim

import (
	"errors"

	"github.com/cory-johannsen/farkle/internal/game/player"
)

// Grid lists the strategy values to combine.
type Grid struct {
	PointThresholds []int
	DiceThresholds  []int
	Greedy          []bool
	FinalTurn       []bool
}

// Players enumerates every combination of the grid's values. Each player's
// ID and name are its strategy label. Empty Greedy or FinalTurn lists mean
// false only.
//
// Postcondition: IDs are unique; len(result) is the product of the list
// lengths less any combinations that collapse when dice thresholds below 1
// are normalized.
func (g Grid) Players() ([]*player.Player, error) {
	if len(g.PointThresholds) == 0 || len(g.DiceThresholds) == 0 {
		return nil, errors.New("sim: grid needs at least one point threshold and one dice threshold")
	}
	greedy := orFalse(g.Greedy)
	final := orFalse(g.FinalTurn)

	var cfgs []player.Config
	for _, pt := range g.PointThresholds {
		for _, dt := range g.DiceThresholds {
			for _, gr := range greedy {
				for _, ft := range final {
					cfgs = append(cfgs, player.Config{PointThreshold: pt, DiceThreshold: dt, Greedy: gr, FinalTurn: ft})
				}
			}
		}
	}

	players := make([]*player.Player, 0, len(cfgs))
	for _, cfg := range cfgs {
		p, err := player.New(cfg)
		if err != nil {
			return nil, err
		}
		cfg.ID, cfg.Name = p.Describe(), p.Describe()
		players = append(players, player.MustNew(cfg))
	}
	return dedupe(players), nil
}

func orFalse(v []bool) []bool {
	if len(v) == 0 {
		return []bool{false}
	}
	return v
}

// dedupe drops later players whose ID repeats, which happens when several
// dice thresholds normalize to 1.
func dedupe(players []*player.Player) []*player.Player {
	seen := make(map[string]bool, len(players))
	out := players[:0]
	for _, p := range players {
		if seen[p.ID()] {
			continue
		}
		seen[p.ID()] = true
		out = append(out, p)
	}
	return out
}
