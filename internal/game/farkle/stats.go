package farkle

import "github.com/cory-johannsen/farkle/internal/game/turn"

// Stats aggregates one player's turns within a game.
type Stats struct {
	Turns    int
	Banks    int
	Farkles  int
	Skips    int
	Rolls    int
	HotDice  int
	Points   int
	BestTurn int
}

func (s *Stats) record(out turn.Outcome) {
	s.Turns++
	s.Rolls += out.Rolls
	s.HotDice += out.HotDice
	switch out.State {
	case turn.Banked:
		s.Banks++
		s.Points += out.Points
		s.BestTurn = max(s.BestTurn, out.Points)
	case turn.Farkled:
		s.Farkles++
	case turn.Skipped:
		s.Skips++
	}
}

// FarkleRate returns the fraction of turns that farkled.
func (s Stats) FarkleRate() float64 {
	if s.Turns == 0 {
		return 0
	}
	return float64(s.Farkles) / float64(s.Turns)
}
