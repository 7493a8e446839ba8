package turn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/farkle/internal/game/dice"
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
	d5 = dice.Five
	d6 = dice.Six
)

// onBoard is a context for a player already on the board.
var onBoard = turn.Context{Score: 1000, OnTheBoard: 500}

func newPlayer(pt, dt int, greedy bool) *player.Player {
	return player.MustNew(player.Config{ID: "p", Name: "P", PointThreshold: pt, DiceThreshold: dt, Greedy: greedy})
}

func TestRequired(t *testing.T) {
	plain := player.MustNew(player.Config{PointThreshold: 300})
	aggressive := player.MustNew(player.Config{PointThreshold: 300, FinalTurn: true})

	cases := []struct {
		name string
		p    *player.Player
		ctx  turn.Context
		want int
	}{
		{"not on board", plain, turn.Context{Score: 0, OnTheBoard: 500}, 500},
		{"on board", plain, turn.Context{Score: 800, OnTheBoard: 500}, 300},
		{"final turn without flag", plain, turn.Context{Score: 9000, OnTheBoard: 500, Final: true, TopScore: 10500}, 300},
		{"aggressive final turn", aggressive, turn.Context{Score: 9000, OnTheBoard: 500, Final: true, TopScore: 10500}, 1550},
		{"aggressive ordinary turn", aggressive, turn.Context{Score: 9000, OnTheBoard: 500}, 300},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, turn.Required(tc.p, tc.ctx))
		})
	}
}

func TestTake_SkipsWhenDiceThresholdExceedsCapacity(t *testing.T) {
	src := testutil.NewScriptedSource(t)
	out := turn.NewEngine(src, nil, nil).Take(newPlayer(0, dice.Capacity+1, false), onBoard)
	assert.Equal(t, turn.Skipped, out.State)
	assert.Equal(t, 0, out.Points)
	assert.Equal(t, 0, out.Rolls)
}

func TestTake_FarkleOnFirstRoll(t *testing.T) {
	src := testutil.NewScriptedSource(t, testutil.Roll(d2, d3, d4, d6, d6, d2))
	out := turn.NewEngine(src, nil, nil).Take(newPlayer(300, 2, false), onBoard)
	assert.Equal(t, turn.Farkled, out.State)
	assert.Equal(t, 0, out.Points)
	assert.Equal(t, 1, out.Rolls)
}

func TestTake_HotDiceThenBank(t *testing.T) {
	src := testutil.NewScriptedSource(t,
		testutil.Roll(d1, d1, d1, d1, d1, d1),
		testutil.Roll(d1, d2, d3, d4, d6, d6),
	)
	out := turn.NewEngine(src, nil, nil).Take(newPlayer(300, dice.Capacity, false), onBoard)
	assert.Equal(t, turn.Banked, out.State)
	assert.Equal(t, 3100, out.Points)
	assert.Equal(t, 2, out.Rolls)
	assert.Equal(t, 1, out.HotDice)
	assert.Equal(t, 0, src.Remaining())
}

// TestTake_FullDiceThresholdBanksAfterOneExtraction verifies a player with a
// zero point threshold and a dice threshold equal to the hand capacity stops
// after the first scoring roll and banks the full extraction.
func TestTake_FullDiceThresholdBanksAfterOneExtraction(t *testing.T) {
	for _, greedy := range []bool{false, true} {
		src := testutil.NewScriptedSource(t, testutil.Roll(d6, d6, d6, d1, d5, d2))
		out := turn.NewEngine(src, nil, nil).Take(newPlayer(0, dice.Capacity, greedy), onBoard)
		assert.Equal(t, turn.Banked, out.State, "greedy=%v", greedy)
		assert.Equal(t, 750, out.Points, "greedy=%v", greedy)
		assert.Equal(t, 1, out.Rolls, "greedy=%v", greedy)
	}
}

func TestTake_NonGreedyBanksMaximalExtraction(t *testing.T) {
	src := testutil.NewScriptedSource(t, testutil.Roll(d6, d6, d6, d1, d5, d2))
	out := turn.NewEngine(src, nil, nil).Take(newPlayer(300, 3, false), onBoard)
	assert.Equal(t, turn.Banked, out.State)
	assert.Equal(t, 750, out.Points)
	assert.Equal(t, 1, out.Rolls)
}

func TestTake_GreedyTakesMinimalAndRollsAgain(t *testing.T) {
	src := testutil.NewScriptedSource(t,
		testutil.Roll(d6, d6, d6, d1, d5, d2),
		testutil.Roll(d1, d2, d3),
	)
	out := turn.NewEngine(src, nil, nil).Take(newPlayer(300, 3, true), onBoard)
	assert.Equal(t, turn.Banked, out.State)
	assert.Equal(t, 700, out.Points)
	assert.Equal(t, 2, out.Rolls)
}

func TestTake_GreedyEndsWithFullerExtraction(t *testing.T) {
	// Second roll: optimal is a single one (100) but the full extraction is
	// 150; ending the turn banks the fuller amount.
	src := testutil.NewScriptedSource(t,
		testutil.Roll(d6, d6, d6, d1, d5, d2),
		testutil.Roll(d1, d5, d3),
	)
	out := turn.NewEngine(src, nil, nil).Take(newPlayer(300, 3, true), onBoard)
	assert.Equal(t, turn.Banked, out.State)
	assert.Equal(t, 750, out.Points)
}

func TestTake_FarkleDiscardsRunningTotal(t *testing.T) {
	src := testutil.NewScriptedSource(t,
		testutil.Roll(d5, d2, d3, d4, d6, d6), // keep 5, running 50
		testutil.Roll(d1, d1, d1, d2, d3),     // keep one 1, running 150
		testutil.Roll(d1, d5, d1, d5),         // hot dice, running 450
		testutil.Roll(d2, d2, d2, d2, d2, d2), // hot dice, running 3450
		testutil.Roll(d1, d2, d3, d4, d6, d6), // keep one 1, running 3550
		testutil.Roll(d2, d3, d4, d6, d6),     // farkle
	)
	out := turn.NewEngine(src, nil, nil).Take(newPlayer(5000, 2, false), onBoard)
	assert.Equal(t, turn.Farkled, out.State)
	assert.Equal(t, 0, out.Points)
	assert.Equal(t, 6, out.Rolls)
	assert.Equal(t, 2, out.HotDice)
	assert.Equal(t, 0, src.Remaining())
}

func TestTake_ThresholdNotMetKeepsRolling(t *testing.T) {
	src := testutil.NewScriptedSource(t,
		testutil.Roll(d5, d2, d3, d4, d6, d6), // 50 < 500, keep 5
		testutil.Roll(d4, d4, d4, d2, d3),     // 450 < 500, keep triplet
		testutil.Roll(d1, d3),                 // 550 >= 500 with 1 die left
	)
	out := turn.NewEngine(src, nil, nil).Take(newPlayer(500, 2, false), onBoard)
	assert.Equal(t, turn.Banked, out.State)
	assert.Equal(t, 550, out.Points)
	assert.Equal(t, 3, out.Rolls)
}

func TestTake_OnTheBoardRaisesRequirement(t *testing.T) {
	src := testutil.NewScriptedSource(t,
		testutil.Roll(d6, d6, d6, d1, d5, d2), // 750 total < 1000, keep the triplet
		testutil.Roll(d1, d1, d1),             // hot dice, running 900
		testutil.Roll(d4, d4, d4, d4, d2, d3), // 1900 >= 1000 with 2 dice left
	)
	out := turn.NewEngine(src, nil, nil).Take(newPlayer(0, 3, false), turn.Context{Score: 0, OnTheBoard: 1000})
	assert.Equal(t, 1000, out.Required)
	assert.Equal(t, turn.Banked, out.State)
	assert.Equal(t, 1900, out.Points)
	assert.Equal(t, 3, out.Rolls)
	require.Equal(t, 0, src.Remaining())
}

func TestTake_NarratesEveryRoll(t *testing.T) {
	var rec narration.Recorder
	src := testutil.NewScriptedSource(t,
		testutil.Roll(d1, d1, d1, d1, d1, d1),
		testutil.Roll(d2, d3, d4, d6, d6, d2),
	)
	out := turn.NewEngine(src, &rec, nil).Take(newPlayer(300, 2, false), onBoard)
	require.Equal(t, turn.Farkled, out.State)
	lines := rec.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "hot dice for 3000")
	assert.Contains(t, lines[1], "farkle")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "banked", turn.Banked.String())
	assert.Equal(t, "unknown", turn.State(42).String())
}

// TestProperty_Take_Outcome verifies every turn ends in a terminal state with
// a payout consistent with that state.
func TestProperty_Take_Outcome(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := player.MustNew(player.Config{
			PointThreshold: rapid.IntRange(0, 40).Draw(rt, "pt") * 50,
			DiceThreshold:  rapid.IntRange(0, dice.Capacity+1).Draw(rt, "dt"),
			Greedy:         rapid.Bool().Draw(rt, "greedy"),
			FinalTurn:      rapid.Bool().Draw(rt, "final"),
		})
		ctx := turn.Context{
			Score:      rapid.IntRange(0, 200).Draw(rt, "score") * 50,
			OnTheBoard: 500,
			Final:      rapid.Bool().Draw(rt, "isFinal"),
			TopScore:   10000,
		}
		src := dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed"))
		out := turn.NewEngine(src, nil, nil).Take(p, ctx)

		assert.NotEqual(rt, turn.Rolling, out.State)
		assert.Equal(rt, 0, out.Points%50)
		switch out.State {
		case turn.Banked:
			assert.GreaterOrEqual(rt, out.Points, out.Required)
			assert.Greater(rt, out.Points, 0)
		case turn.Skipped:
			assert.Greater(rt, p.DiceThreshold(), dice.Capacity)
			assert.Equal(rt, 0, out.Rolls)
			assert.Equal(rt, 0, out.Points)
		default:
			assert.Equal(rt, 0, out.Points)
		}
	})
}
