package sim

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/farkle/internal/game/player"
)

// PlayerReport aggregates one player's results across a batch.
type PlayerReport struct {
	ID       string
	Name     string
	Strategy string
	Wins     int
	// WinRate is Wins over completed (non-aborted) games.
	WinRate    float64
	MeanScore  float64
	FarkleRate float64
	HotDice    int
}

// Report summarizes a batch.
type Report struct {
	Games   int
	Aborted int
	// MeanRounds and MaxRounds cover completed games only.
	MeanRounds float64
	MaxRounds  int
	// Players is ordered by wins descending, then roster order.
	Players []PlayerReport
}

// Leader returns the player with the most wins.
//
// Postcondition: ok is false for an empty report.
func (r Report) Leader() (PlayerReport, bool) {
	if len(r.Players) == 0 {
		return PlayerReport{}, false
	}
	return r.Players[0], true
}

func aggregate(roster []*player.Player, outcomes []gameOutcome) Report {
	rep := Report{Games: len(outcomes)}
	index := make(map[string]int, len(roster))
	rows := make([]PlayerReport, len(roster))
	scores := make([]int, len(roster))
	turns := make([]int, len(roster))
	farkles := make([]int, len(roster))
	for i, p := range roster {
		index[p.ID()] = i
		rows[i] = PlayerReport{ID: p.ID(), Name: p.Name(), Strategy: p.Describe()}
	}

	rounds := 0
	for _, o := range outcomes {
		if o.aborted {
			rep.Aborted++
			continue
		}
		rounds += o.result.Rounds
		rep.MaxRounds = max(rep.MaxRounds, o.result.Rounds)
		if i, ok := index[o.result.Winner]; ok {
			rows[i].Wins++
		}
		for _, s := range o.result.Standings {
			scores[index[s.ID]] += s.Score
		}
		for id, st := range o.result.Stats {
			i := index[id]
			turns[i] += st.Turns
			farkles[i] += st.Farkles
			rows[i].HotDice += st.HotDice
		}
	}

	completed := rep.Games - rep.Aborted
	if completed > 0 {
		rep.MeanRounds = float64(rounds) / float64(completed)
		for i := range rows {
			rows[i].WinRate = float64(rows[i].Wins) / float64(completed)
			rows[i].MeanScore = float64(scores[i]) / float64(completed)
		}
	}
	for i := range rows {
		if turns[i] > 0 {
			rows[i].FarkleRate = float64(farkles[i]) / float64(turns[i])
		}
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Wins > rows[b].Wins })
	rep.Players = rows
	return rep
}

// Rows renders the report as a header row followed by one row per player.
func (r Report) Rows() [][]string {
	out := [][]string{{"Player", "Strategy", "Wins", "Win rate", "Mean score", "Farkle rate", "Hot dice"}}
	for _, p := range r.Players {
		out = append(out, []string{
			p.Name,
			p.Strategy,
			fmt.Sprintf("%d", p.Wins),
			fmt.Sprintf("%.1f%%", p.WinRate*100),
			fmt.Sprintf("%.0f", p.MeanScore),
			fmt.Sprintf("%.1f%%", p.FarkleRate*100),
			fmt.Sprintf("%d", p.HotDice),
		})
	}
	return out
}

// GridRows renders grid matchups against baseline as a header row followed
// by one row per candidate, best win rate first.
func GridRows(reports []Report, baselineID string) [][]string {
	type row struct {
		name, strategy string
		rate           float64
		aborted        int
	}
	rows := make([]row, 0, len(reports))
	for _, rep := range reports {
		for _, p := range rep.Players {
			if p.ID == baselineID {
				continue
			}
			rows = append(rows, row{name: p.Name, strategy: p.Strategy, rate: p.WinRate, aborted: rep.Aborted})
		}
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].rate > rows[b].rate })

	out := [][]string{{"Candidate", "Strategy", "Win rate vs baseline", "Aborted"}}
	for _, r := range rows {
		out = append(out, []string{r.name, r.strategy, fmt.Sprintf("%.1f%%", r.rate*100), fmt.Sprintf("%d", r.aborted)})
	}
	return out
}
