// Package turn implements the per-turn decision engine: after every roll it
// decides whether a player banks, keeps rolling, or has farkled.
package turn

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/farkle/internal/game/dice"
	"github.com/cory-johannsen/farkle/internal/game/player"
	"github.com/cory-johannsen/farkle/internal/game/scoring"
	"github.com/cory-johannsen/farkle/internal/narration"
)

// State is the turn state machine's position.
type State int

const (
	// Rolling is the initial state; the player must roll again.
	Rolling State = iota
	// Banked ends the turn and pays out the running total.
	Banked
	// Farkled ends the turn with nothing.
	Farkled
	// Skipped ends the turn before any roll because the player's dice
	// threshold exceeds the hand capacity.
	Skipped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Rolling:
		return "rolling"
	case Banked:
		return "banked"
	case Farkled:
		return "farkled"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// FinalTurnMargin is added to the deficit on an aggressive final turn so that
// tying the leader is not enough. It is the smallest scoring increment.
const FinalTurnMargin = 50

// Context is what the engine knows about the game when a turn starts.
type Context struct {
	// Score is the player's committed ledger score.
	Score int
	// OnTheBoard is the minimum first banked total.
	OnTheBoard int
	// Final marks a final-round turn.
	Final bool
	// TopScore is the score to beat on a final turn.
	TopScore int
}

// Outcome summarizes a completed turn.
type Outcome struct {
	State State
	// Points is the amount to commit; zero unless State is Banked.
	Points int
	// Required is the running total the player needed to stop.
	Required int
	// Rolls counts RollAll calls.
	Rolls int
	// HotDice counts rolls where every die scored.
	HotDice int
}

// Required computes the running total p needs before banking.
//
// Ordinary turns need max(PointThreshold, OnTheBoard-Score). An aggressive
// final turn needs enough to overtake ctx.TopScore instead, and never less
// than the on-the-board shortfall.
func Required(p *player.Player, ctx Context) int {
	onBoard := ctx.OnTheBoard - ctx.Score
	if ctx.Final && p.FinalTurnAggressive() {
		return max(ctx.TopScore-ctx.Score+FinalTurnMargin, onBoard)
	}
	return max(p.PointThreshold(), onBoard)
}

// Engine plays single turns. It never touches the ledger; callers commit
// Outcome.Points.
type Engine struct {
	src    dice.Source
	sink   narration.Sink
	logger *zap.Logger
}

// NewEngine creates an Engine rolling with src.
//
// Precondition: src must be non-nil. sink and logger may be nil.
func NewEngine(src dice.Source, sink narration.Sink, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{src: src, sink: narration.OrNop(sink), logger: logger}
}

// Take plays one turn for p with a fresh hand.
//
// Postcondition: the returned State is Banked, Farkled, or Skipped; Points is
// zero unless Banked, and a Banked Points is at least Required.
func (e *Engine) Take(p *player.Player, ctx Context) Outcome {
	hand := dice.NewHand(e.src)
	out := Outcome{State: Rolling, Required: Required(p, ctx)}
	dt := p.DiceThreshold()

	if hand.Len() < dt {
		out.State = Skipped
		narration.Emitf(e.sink, "%s skips the turn: dice threshold %d exceeds %d dice", p.Name(), dt, hand.Len())
		return out
	}

	running := 0
	for out.State == Rolling {
		hand.RollAll()
		out.Rolls++
		rolled := hand.String()

		optimal := scoring.CalculateOptimal(hand)
		total, left := scoring.CalculateTotal(hand)

		switch {
		case optimal.IsFarkle():
			running = 0
			out.State = Farkled
		case left == 0:
			running += total
			out.HotDice++
			hand.Reset()
		case !p.Greedy() && running+total >= out.Required && left < dt:
			running += total
			out.State = Banked
		case running+optimal.Value() >= out.Required:
			if hand.Len()-optimal.Cost() < dt {
				running += total
				out.State = Banked
			} else {
				running += optimal.Value()
				scoring.RemoveDice(hand, optimal)
			}
		default:
			running += optimal.Value()
			scoring.RemoveDice(hand, optimal)
		}

		e.logger.Debug("turn roll",
			zap.String("player", p.ID()),
			zap.String("dice", rolled),
			zap.String("optimal", optimal.String()),
			zap.Int("total", total),
			zap.Int("left", left),
			zap.Int("running", running),
			zap.Stringer("state", out.State),
		)
		e.narrate(p, rolled, optimal, total, left, running, out.State)
	}

	if out.State == Banked {
		out.Points = running
	}
	return out
}

func (e *Engine) narrate(p *player.Player, rolled string, optimal scoring.Category, total, left, running int, state State) {
	switch {
	case state == Farkled:
		narration.Emitf(e.sink, "%s rolls %s: farkle, turn over", p.Name(), rolled)
	case state == Banked:
		narration.Emitf(e.sink, "%s rolls %s: takes %d and banks %d", p.Name(), rolled, total, running)
	case left == 0:
		narration.Emitf(e.sink, "%s rolls %s: hot dice for %d, running %d", p.Name(), rolled, total, running)
	default:
		narration.Emitf(e.sink, "%s rolls %s: keeps %s, running %d", p.Name(), rolled, optimal, running)
	}
}
