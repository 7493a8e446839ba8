package farkle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/farkle/internal/game/dice"
	"github.com/cory-johannsen/farkle/internal/game/farkle"
	"github.com/cory-johannsen/farkle/internal/game/player"
	"github.com/cory-johannsen/farkle/internal/game/turn"
	"github.com/cory-johannsen/farkle/internal/narration"
	"github.com/cory-johannsen/farkle/internal/testutil"
)

const (
	d1 = dice.One
	d2 = dice.Two
	d3 = dice.Three
	d4 = dice.Four
	d6 = dice.Six
)

var (
	sixOnes    = testutil.Roll(d1, d1, d1, d1, d1, d1) // hot dice, 3000
	singleOne  = testutil.Roll(d1, d2, d3, d4, d6, d6) // 100, 5 dice left
	fourFours  = testutil.Roll(d4, d4, d4, d4, d2, d3) // 1000, 2 dice left
	farkleRoll = testutil.Roll(d2, d3, d4, d6, d6, d2)
)

func p(id string, pt, dt int, finalTurn bool) *player.Player {
	return player.MustNew(player.Config{ID: id, Name: id, PointThreshold: pt, DiceThreshold: dt, FinalTurn: finalTurn})
}

func TestNew_NoPlayers(t *testing.T) {
	_, err := farkle.New(nil, farkle.DefaultOptions(), dice.NewSeededSource(1), nil, nil)
	assert.ErrorIs(t, err, farkle.ErrNoPlayers)
}

func TestNew_DuplicatePlayer(t *testing.T) {
	a := p("a", 300, 3, false)
	_, err := farkle.New([]*player.Player{a, a}, farkle.DefaultOptions(), dice.NewSeededSource(1), nil, nil)
	assert.ErrorIs(t, err, farkle.ErrDuplicatePlayer)
}

func TestNew_InvalidOptions(t *testing.T) {
	players := []*player.Player{p("a", 300, 3, false)}
	for _, opts := range []farkle.Options{
		{MinimumWinScore: 0, OnTheBoard: 500},
		{MinimumWinScore: 1000, OnTheBoard: -1},
		{MinimumWinScore: 1000, OnTheBoard: 500, MaxRounds: -1},
	} {
		_, err := farkle.New(players, opts, dice.NewSeededSource(1), nil, nil)
		assert.ErrorIs(t, err, farkle.ErrInvalidOptions, "%+v", opts)
	}
}

func TestNew_LedgerStartsAtZero(t *testing.T) {
	g, err := farkle.New([]*player.Player{p("a", 300, 3, false), p("b", 300, 3, false)}, farkle.DefaultOptions(), dice.NewSeededSource(1), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Ledger().Score("a"))
	assert.Equal(t, 0, g.Ledger().Score("b"))
	assert.Equal(t, 500, g.Ledger().OnTheBoard())
}

// TestPlay_SinglePlayerWinsInFirstRound verifies a lone player who banks past
// the win score wins in round one with no final round.
func TestPlay_SinglePlayerWinsInFirstRound(t *testing.T) {
	src := testutil.NewScriptedSource(t, sixOnes, singleOne)
	g, err := farkle.New([]*player.Player{p("solo", 300, dice.Capacity, false)},
		farkle.Options{MinimumWinScore: 300, OnTheBoard: 500}, src, nil, zaptest.NewLogger(t))
	require.NoError(t, err)

	res, err := g.Play()
	require.NoError(t, err)
	assert.Equal(t, "solo", res.Winner)
	assert.Equal(t, 1, res.Rounds)
	assert.False(t, res.FinalRound)
	assert.Equal(t, 3100, g.Ledger().Score("solo"))
	assert.Equal(t, 0, src.Remaining())
}

// TestPlay_TriggerStopsRound verifies the round ends as soon as a player
// reaches the win score and every other player gets exactly one final turn.
func TestPlay_TriggerStopsRound(t *testing.T) {
	src := testutil.NewScriptedSource(t,
		fourFours,  // a banks 1000 and triggers the final round
		farkleRoll, // b final turn
		farkleRoll, // c final turn
	)
	players := []*player.Player{p("a", 300, dice.Capacity, false), p("b", 300, dice.Capacity, false), p("c", 300, dice.Capacity, false)}
	g, err := farkle.New(players, farkle.Options{MinimumWinScore: 1000, OnTheBoard: 500}, src, nil, nil)
	require.NoError(t, err)

	res, err := g.Play()
	require.NoError(t, err)
	assert.Equal(t, "a", res.Winner)
	assert.Equal(t, 1, res.Rounds)
	assert.True(t, res.FinalRound)
	assert.Equal(t, 1, res.Stats["a"].Turns)
	assert.Equal(t, 1, res.Stats["b"].Turns)
	assert.Equal(t, 1, res.Stats["c"].Turns)
	assert.Equal(t, 1, res.Stats["b"].Farkles)

	hist := g.History()
	require.Len(t, hist, 3)
	assert.False(t, hist[0].Final)
	assert.Equal(t, []string{"a", "b", "c"}, []string{hist[0].PlayerID, hist[1].PlayerID, hist[2].PlayerID})
	assert.True(t, hist[1].Final)
	assert.True(t, hist[2].Final)
}

func TestPlay_FinalTurnOvertakes(t *testing.T) {
	src := testutil.NewScriptedSource(t,
		fourFours,           // a: 1000
		sixOnes, singleOne, // b: aggressive final turn needs 1050, banks 3100
	)
	players := []*player.Player{p("a", 300, dice.Capacity, false), p("b", 300, dice.Capacity, true)}
	g, err := farkle.New(players, farkle.Options{MinimumWinScore: 1000, OnTheBoard: 500}, src, nil, nil)
	require.NoError(t, err)

	res, err := g.Play()
	require.NoError(t, err)
	assert.Equal(t, "b", res.Winner)
	require.Len(t, res.Standings, 2)
	assert.Equal(t, "b", res.Standings[0].ID)
	assert.Equal(t, 3100, res.Standings[0].Score)

	hist := g.History()
	require.Len(t, hist, 2)
	assert.Equal(t, 1050, hist[1].Outcome.Required)
}

func TestPlay_TieKeepsFirstToReachScore(t *testing.T) {
	src := testutil.NewScriptedSource(t,
		fourFours, // a: 1000
		fourFours, // b: 1000, equal to the leader
	)
	players := []*player.Player{p("a", 300, dice.Capacity, false), p("b", 300, dice.Capacity, false)}
	g, err := farkle.New(players, farkle.Options{MinimumWinScore: 1000, OnTheBoard: 500}, src, nil, nil)
	require.NoError(t, err)

	res, err := g.Play()
	require.NoError(t, err)
	assert.Equal(t, 1000, g.Ledger().Score("b"))
	assert.Equal(t, "a", res.Winner)
	assert.Equal(t, "a", res.Standings[0].ID)
}

func TestPlay_FinalRoundOrderFollowsRotation(t *testing.T) {
	src := testutil.NewScriptedSource(t,
		farkleRoll, // a round 1
		fourFours,  // b round 1, triggers
		farkleRoll, // c final
		farkleRoll, // a final
	)
	players := []*player.Player{p("a", 300, dice.Capacity, false), p("b", 300, dice.Capacity, false), p("c", 300, dice.Capacity, false)}
	g, err := farkle.New(players, farkle.Options{MinimumWinScore: 1000, OnTheBoard: 500}, src, nil, nil)
	require.NoError(t, err)

	res, err := g.Play()
	require.NoError(t, err)
	assert.Equal(t, "b", res.Winner)

	hist := g.History()
	require.Len(t, hist, 4)
	assert.Equal(t, "c", hist[2].PlayerID)
	assert.Equal(t, "a", hist[3].PlayerID)
}

func TestPlay_RoundLimit(t *testing.T) {
	// A dice threshold of 1 never allows banking.
	never := player.MustNew(player.Config{ID: "n", PointThreshold: 0, DiceThreshold: 1})
	g, err := farkle.New([]*player.Player{never}, farkle.Options{MinimumWinScore: 1000, OnTheBoard: 0, MaxRounds: 5}, dice.NewSeededSource(9), nil, nil)
	require.NoError(t, err)

	res, err := g.Play()
	assert.ErrorIs(t, err, farkle.ErrRoundLimit)
	assert.Equal(t, 5, res.Rounds)
	assert.Equal(t, "", res.Winner)
	assert.Equal(t, 5, res.Stats["n"].Farkles)
}

func TestPlay_Narration(t *testing.T) {
	var rec narration.Recorder
	src := testutil.NewScriptedSource(t, fourFours)
	g, err := farkle.New([]*player.Player{p("a", 300, dice.Capacity, false)}, farkle.Options{MinimumWinScore: 1000, OnTheBoard: 500}, src, &rec, nil)
	require.NoError(t, err)
	_, err = g.Play()
	require.NoError(t, err)

	lines := rec.Lines()
	require.NotEmpty(t, lines)
	assert.Equal(t, "round 1", lines[0])
	assert.Contains(t, lines, "a banks 1000 (total 1000)")
	assert.Equal(t, "a wins with 1000 after 1 rounds", lines[len(lines)-1])
}

func TestStats_FarkleRate(t *testing.T) {
	assert.Equal(t, 0.0, farkle.Stats{}.FarkleRate())
	assert.Equal(t, 0.25, farkle.Stats{Turns: 4, Farkles: 1}.FarkleRate())
}

// TestProperty_Play_Invariants plays random seeded games and checks the
// ledger and winner invariants.
func TestProperty_Play_Invariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 4).Draw(rt, "players")
		players := make([]*player.Player, n)
		for i := range players {
			players[i] = player.MustNew(player.Config{
				PointThreshold: rapid.IntRange(0, 20).Draw(rt, "pt") * 50,
				DiceThreshold:  rapid.IntRange(2, dice.Capacity).Draw(rt, "dt"),
				Greedy:         rapid.Bool().Draw(rt, "greedy"),
				FinalTurn:      rapid.Bool().Draw(rt, "final"),
			})
		}
		opts := farkle.Options{MinimumWinScore: 3000, OnTheBoard: 500, MaxRounds: 300}
		g, err := farkle.New(players, opts, dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")), nil, nil)
		require.NoError(rt, err)

		res, err := g.Play()
		last := map[string]int{}
		for _, rec := range g.History() {
			prev := last[rec.PlayerID]
			if rec.Outcome.State == turn.Banked {
				assert.Equal(rt, prev+rec.Outcome.Points, rec.Score)
			} else {
				assert.Equal(rt, prev, rec.Score)
			}
			last[rec.PlayerID] = rec.Score
		}
		if err != nil {
			assert.ErrorIs(rt, err, farkle.ErrRoundLimit)
			return
		}
		require.NotEmpty(rt, res.Standings)
		assert.Equal(rt, res.Winner, res.Standings[0].ID)
		assert.GreaterOrEqual(rt, res.Standings[0].Score, opts.MinimumWinScore)
		for _, s := range res.Standings[1:] {
			assert.LessOrEqual(rt, s.Score, res.Standings[0].Score)
		}
	})
}
