// Package sim runs many independent Farkle games and aggregates the results.
package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/farkle/internal/game/dice"
	"github.com/cory-johannsen/farkle/internal/game/farkle"
	"github.com/cory-johannsen/farkle/internal/game/player"
)

// Runner plays batches of games. Every game gets its own ledger, rotation,
// and seeded source; only the immutable players are shared.
type Runner struct {
	// Games is the number of games per batch.
	Games int
	// Workers bounds how many games run at once.
	Workers int
	// Seed is the base seed; game i is seeded with Seed+i.
	Seed uint64
	// Options are the rules applied to every game.
	Options farkle.Options
	// RotateSeats shifts the seating by one player per game so no strategy
	// always moves first.
	RotateSeats bool
	// Logger receives batch progress; nil disables logging.
	Logger *zap.Logger
}

// gameOutcome is the per-game summary kept for aggregation.
type gameOutcome struct {
	result  farkle.Result
	aborted bool
}

// Run plays r.Games games between the players in roster.
//
// Precondition: len(roster) >= 1; r.Games >= 1; r.Workers >= 1.
// Postcondition: Report.Games == r.Games unless ctx is cancelled, in which
// case ctx.Err() is returned.
func (r *Runner) Run(ctx context.Context, roster []*player.Player) (Report, error) {
	if len(roster) == 0 {
		return Report{}, farkle.ErrNoPlayers
	}
	if r.Games < 1 || r.Workers < 1 {
		return Report{}, fmt.Errorf("sim: games and workers must be >= 1, got %d and %d", r.Games, r.Workers)
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	outcomes := make([]gameOutcome, r.Games)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)
	for i := range r.Games {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			seats := roster
			if r.RotateSeats {
				seats = rotate(roster, i)
			}
			game, err := farkle.New(seats, r.Options, dice.NewSeededSource(r.Seed+uint64(i)), nil, nil)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			res, err := game.Play()
			switch {
			case errors.Is(err, farkle.ErrRoundLimit):
				outcomes[i] = gameOutcome{result: res, aborted: true}
			case err != nil:
				return fmt.Errorf("game %d: %w", i, err)
			default:
				outcomes[i] = gameOutcome{result: res}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	report := aggregate(roster, outcomes)
	logger.Info("batch finished",
		zap.Int("games", report.Games),
		zap.Int("aborted", report.Aborted),
		zap.Float64("mean_rounds", report.MeanRounds),
		zap.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// RunGrid plays every candidate head to head against baseline and returns
// one report per matchup, in candidate order.
//
// Precondition: baseline's ID differs from every candidate's ID.
func (r *Runner) RunGrid(ctx context.Context, candidates []*player.Player, baseline *player.Player) ([]Report, error) {
	reports := make([]Report, 0, len(candidates))
	for _, c := range candidates {
		rep, err := r.Run(ctx, []*player.Player{c, baseline})
		if err != nil {
			return nil, fmt.Errorf("matchup %q: %w", c.Name(), err)
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func rotate(players []*player.Player, by int) []*player.Player {
	n := len(players)
	out := make([]*player.Player, n)
	for i := range players {
		out[i] = players[(i+by)%n]
	}
	return out
}
