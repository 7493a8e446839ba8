// Package main provides the Farkle simulator CLI: play one narrated game, run
// a batch of games between a roster, or sweep a grid of strategies against a
// baseline.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"go.uber.org/zap"

	"github.com/cory-johannsen/farkle/internal/config"
	"github.com/cory-johannsen/farkle/internal/game/dice"
	"github.com/cory-johannsen/farkle/internal/game/farkle"
	"github.com/cory-johannsen/farkle/internal/game/player"
	"github.com/cory-johannsen/farkle/internal/narration"
	"github.com/cory-johannsen/farkle/internal/observability"
	"github.com/cory-johannsen/farkle/internal/sim"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = defaults and FARKLE_* environment")
	rosterPath := flag.String("roster", "configs/roster.yaml", "path to player roster YAML")
	mode := flag.String("mode", "game", "run mode: game, batch, or grid")
	games := flag.Int("games", 0, "games per batch or matchup (0 = simulation.games)")
	seed := flag.Uint64("seed", 0, "base seed (0 = simulation.seed, or random when that is 0 too)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *games > 0 {
		cfg.Simulation.Games = *games
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}
	if cfg.Simulation.Seed == 0 {
		cfg.Simulation.Seed = uint64(dice.NewCryptoSource().Intn(math.MaxInt))
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	roster, err := player.LoadRoster(*rosterPath)
	if err != nil {
		logger.Fatal("loading roster", zap.Error(err))
	}
	logger.Info("roster loaded",
		zap.Int("players", len(roster)),
		zap.Uint64("seed", cfg.Simulation.Seed),
		zap.String("mode", *mode),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := farkle.Options{
		MinimumWinScore: cfg.Game.MinimumWinScore,
		OnTheBoard:      cfg.Game.OnTheBoard,
		MaxRounds:       cfg.Game.MaxRounds,
	}

	switch *mode {
	case "game":
		err = playGame(roster, opts, cfg.Simulation.Seed, logger)
	case "batch":
		err = runBatch(ctx, roster, opts, cfg.Simulation, logger)
	case "grid":
		err = runGrid(ctx, roster, opts, cfg.Simulation, logger)
	default:
		err = fmt.Errorf("unknown mode %q: must be game, batch, or grid", *mode)
	}
	if err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}

	logger.Info("done", zap.Duration("elapsed", time.Since(start)))
}

func playGame(roster []*player.Player, opts farkle.Options, seed uint64, logger *zap.Logger) error {
	pterm.DefaultSection.Printf("Farkle to %d (seed %d)", opts.MinimumWinScore, seed)

	game, err := farkle.New(roster, opts, dice.NewSeededSource(seed), narration.NewPtermSink(), logger)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	res, err := game.Play()
	if err != nil {
		return err
	}

	names := make(map[string]string, len(roster))
	for _, p := range roster {
		names[p.ID()] = p.Name()
	}
	rows := [][]string{{"Rank", "Player", "Score", "Turns", "Farkles", "Best turn"}}
	for i, s := range res.Standings {
		st := res.Stats[s.ID]
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			names[s.ID],
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", st.Turns),
			fmt.Sprintf("%d", st.Farkles),
			fmt.Sprintf("%d", st.BestTurn),
		})
	}
	pterm.DefaultSection.Println("Final standings")
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		return fmt.Errorf("rendering standings: %w", err)
	}
	pterm.Success.Printfln("%s wins after %d rounds", names[res.Winner], res.Rounds)
	return nil
}

func newRunner(opts farkle.Options, sc config.SimulationConfig, logger *zap.Logger) *sim.Runner {
	return &sim.Runner{
		Games:       sc.Games,
		Workers:     sc.Workers,
		Seed:        sc.Seed,
		Options:     opts,
		RotateSeats: true,
		Logger:      logger,
	}
}

func runBatch(ctx context.Context, roster []*player.Player, opts farkle.Options, sc config.SimulationConfig, logger *zap.Logger) error {
	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("playing %d games", sc.Games))
	rep, err := newRunner(opts, sc, logger).Run(ctx, roster)
	if err != nil {
		spinner.Fail(err.Error())
		return err
	}
	spinner.Success(fmt.Sprintf("%d games, %d aborted, %.1f mean rounds (seed %d)", rep.Games, rep.Aborted, rep.MeanRounds, sc.Seed))
	return pterm.DefaultTable.WithHasHeader().WithData(rep.Rows()).Render()
}

func runGrid(ctx context.Context, roster []*player.Player, opts farkle.Options, sc config.SimulationConfig, logger *zap.Logger) error {
	grid := sim.Grid{
		PointThresholds: sc.Grid.PointThresholds,
		DiceThresholds:  sc.Grid.DiceThresholds,
		Greedy:          sc.Grid.Greedy,
		FinalTurn:       sc.Grid.FinalTurn,
	}
	candidates, err := grid.Players()
	if err != nil {
		return err
	}
	// The first roster entry is the baseline every candidate plays against.
	baseline := roster[0]

	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("%d strategies vs %s", len(candidates), baseline.Name()))
	reports, err := newRunner(opts, sc, logger).RunGrid(ctx, candidates, baseline)
	if err != nil {
		spinner.Fail(err.Error())
		return err
	}
	spinner.Success(fmt.Sprintf("%d matchups of %d games (seed %d)", len(reports), sc.Games, sc.Seed))
	return pterm.DefaultTable.WithHasHeader().WithData(sim.GridRows(reports, baseline.ID())).Render()
}
