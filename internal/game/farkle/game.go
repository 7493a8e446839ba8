// Package farkle sequences Farkle turns across players, commits banked
// totals to the ledger, and runs the closing final round.
package farkle

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/farkle/internal/game/dice"
	"github.com/cory-johannsen/farkle/internal/game/ledger"
	"github.com/cory-johannsen/farkle/internal/game/player"
	"github.com/cory-johannsen/farkle/internal/game/turn"
	"github.com/cory-johannsen/farkle/internal/narration"
)

var (
	// ErrNoPlayers is returned when a game is created without players.
	ErrNoPlayers = errors.New("game requires at least one player")
	// ErrDuplicatePlayer is returned when two players share an ID.
	ErrDuplicatePlayer = errors.New("duplicate player id")
	// ErrInvalidOptions is returned for out-of-range options.
	ErrInvalidOptions = errors.New("invalid game options")
	// ErrRoundLimit is returned when nobody reaches the win score within
	// Options.MaxRounds.
	ErrRoundLimit = errors.New("round limit reached without a winner")
)

// Options are the shared game parameters.
type Options struct {
	// MinimumWinScore triggers the final round once a player reaches it.
	MinimumWinScore int
	// OnTheBoard is the minimum first banked total.
	OnTheBoard int
	// MaxRounds bounds the regular rounds; zero means unlimited.
	MaxRounds int
}

// DefaultOptions returns the standard rules: 10000 to win, 500 to get on the board.
func DefaultOptions() Options {
	return Options{MinimumWinScore: 10000, OnTheBoard: 500}
}

// Validate checks option invariants.
func (o Options) Validate() error {
	if o.MinimumWinScore < 1 {
		return fmt.Errorf("%w: minimum win score must be >= 1, got %d", ErrInvalidOptions, o.MinimumWinScore)
	}
	if o.OnTheBoard < 0 {
		return fmt.Errorf("%w: on-the-board requirement must be >= 0, got %d", ErrInvalidOptions, o.OnTheBoard)
	}
	if o.MaxRounds < 0 {
		return fmt.Errorf("%w: max rounds must be >= 0, got %d", ErrInvalidOptions, o.MaxRounds)
	}
	return nil
}

// TurnRecord is one entry of the game history.
type TurnRecord struct {
	Round    int
	PlayerID string
	Final    bool
	Outcome  turn.Outcome
	// Score is the player's committed score after the turn.
	Score int
}

// Result is the outcome of a finished game.
type Result struct {
	// Winner is the ID of the player with the highest score.
	Winner string
	// Rounds counts regular rounds played.
	Rounds int
	// FinalRound reports whether any final turns were played.
	FinalRound bool
	// Standings ranks every player, highest score first.
	Standings []ledger.Standing
	// Stats is keyed by player ID.
	Stats map[string]Stats
}

// Game owns one isolated match: its ledger, rotation, and dice source.
// A Game is not safe for concurrent use.
type Game struct {
	opts    Options
	seats   []*player.Player
	queue   []*player.Player
	ledger  *ledger.Ledger
	engine  *turn.Engine
	sink    narration.Sink
	logger  *zap.Logger
	rounds  int
	trigger string
	winner  string
	history []TurnRecord
	stats   map[string]*Stats
}

// New creates a game for players in seat order.
//
// Precondition: src must be non-nil. sink and logger may be nil.
// Postcondition: returns ErrNoPlayers for an empty roster; every player has a
// zero ledger entry.
func New(players []*player.Player, opts Options, src dice.Source, sink narration.Sink, logger *zap.Logger) (*Game, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	sink = narration.OrNop(sink)

	ids := make([]string, 0, len(players))
	stats := make(map[string]*Stats, len(players))
	for _, p := range players {
		if _, dup := stats[p.ID()]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlayer, p.ID())
		}
		stats[p.ID()] = &Stats{}
		ids = append(ids, p.ID())
	}

	return &Game{
		opts:   opts,
		seats:  append([]*player.Player(nil), players...),
		queue:  append([]*player.Player(nil), players...),
		ledger: ledger.New(opts.OnTheBoard, ids...),
		engine: turn.NewEngine(src, sink, logger),
		sink:   sink,
		logger: logger,
		stats:  stats,
	}, nil
}

// Ledger exposes the game's score ledger for reading.
func (g *Game) Ledger() *ledger.Ledger {
	return g.ledger
}

// History returns every turn played so far, in order.
func (g *Game) History() []TurnRecord {
	return append([]TurnRecord(nil), g.history...)
}

// Play runs regular rounds until someone reaches the win score, then the
// final round, and returns the result.
//
// Postcondition: on success Result.Winner holds the highest score, and that
// score is at least Options.MinimumWinScore.
func (g *Game) Play() (Result, error) {
	for g.winner == "" {
		if g.opts.MaxRounds > 0 && g.rounds >= g.opts.MaxRounds {
			g.logger.Warn("round limit reached", zap.Int("rounds", g.rounds))
			return g.result(), fmt.Errorf("after %d rounds: %w", g.rounds, ErrRoundLimit)
		}
		if err := g.playRound(); err != nil {
			return g.result(), err
		}
	}
	if err := g.finalRound(); err != nil {
		return g.result(), err
	}

	res := g.result()
	narration.Emitf(g.sink, "%s wins with %d after %d rounds", g.name(res.Winner), g.ledger.Score(res.Winner), res.Rounds)
	g.logger.Info("game finished",
		zap.String("winner", res.Winner),
		zap.Int("score", g.ledger.Score(res.Winner)),
		zap.Int("rounds", res.Rounds),
		zap.Bool("final_round", res.FinalRound),
	)
	return res, nil
}

// playRound gives every player in rotation one turn, stopping early when a
// player reaches the win score.
func (g *Game) playRound() error {
	g.rounds++
	narration.Emitf(g.sink, "round %d", g.rounds)
	for range len(g.queue) {
		p := g.queue[0]
		g.queue = append(g.queue[1:], p)

		out := g.engine.Take(p, turn.Context{
			Score:      g.ledger.Score(p.ID()),
			OnTheBoard: g.opts.OnTheBoard,
		})
		if err := g.commit(p, out, false); err != nil {
			return err
		}
		if g.ledger.Score(p.ID()) >= g.opts.MinimumWinScore {
			g.trigger, g.winner = p.ID(), p.ID()
			narration.Emitf(g.sink, "%s reaches %d, final round", p.Name(), g.ledger.Score(p.ID()))
			return nil
		}
	}
	return nil
}

// finalRound gives every player except the trigger one last turn to overtake
// the leader. It is a no-op for a single player.
func (g *Game) finalRound() error {
	if len(g.queue) <= 1 {
		return nil
	}
	top := g.opts.MinimumWinScore
	if g.winner != "" {
		top = g.ledger.Score(g.winner)
	}
	for _, p := range append([]*player.Player(nil), g.queue...) {
		if p.ID() == g.trigger {
			continue
		}
		out := g.engine.Take(p, turn.Context{
			Score:      g.ledger.Score(p.ID()),
			OnTheBoard: g.opts.OnTheBoard,
			Final:      true,
			TopScore:   top,
		})
		if err := g.commit(p, out, true); err != nil {
			return err
		}
		if score := g.ledger.Score(p.ID()); score > top {
			g.winner, top = p.ID(), score
			narration.Emitf(g.sink, "%s takes the lead with %d", p.Name(), score)
		}
	}
	return nil
}

func (g *Game) commit(p *player.Player, out turn.Outcome, final bool) error {
	if out.State == turn.Banked {
		if err := g.ledger.Commit(p.ID(), out.Points); err != nil {
			return fmt.Errorf("round %d: %w", g.rounds, err)
		}
		narration.Emitf(g.sink, "%s banks %d (total %d)", p.Name(), out.Points, g.ledger.Score(p.ID()))
	}
	g.stats[p.ID()].record(out)
	g.history = append(g.history, TurnRecord{
		Round:    g.rounds,
		PlayerID: p.ID(),
		Final:    final,
		Outcome:  out,
		Score:    g.ledger.Score(p.ID()),
	})
	g.logger.Debug("turn committed",
		zap.Int("round", g.rounds),
		zap.String("player", p.ID()),
		zap.Bool("final", final),
		zap.Stringer("state", out.State),
		zap.Int("points", out.Points),
		zap.Int("score", g.ledger.Score(p.ID())),
	)
	return nil
}

func (g *Game) result() Result {
	stats := make(map[string]Stats, len(g.stats))
	for id, s := range g.stats {
		stats[id] = *s
	}
	final := false
	for _, r := range g.history {
		if r.Final {
			final = true
			break
		}
	}
	return Result{
		Winner:     g.winner,
		Rounds:     g.rounds,
		FinalRound: final,
		Standings:  g.ledger.Standings(g.winner),
		Stats:      stats,
	}
}

func (g *Game) name(id string) string {
	for _, p := range g.seats {
		if p.ID() == id {
			return p.Name()
		}
	}
	return id
}
