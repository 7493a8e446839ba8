// Package ledger holds the authoritative committed score of every player in
// a game.
package ledger

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownPlayer is returned for an ID the ledger was not created with.
	ErrUnknownPlayer = errors.New("unknown player")
	// ErrNegativePoints is returned when a commit would lower a score.
	ErrNegativePoints = errors.New("points must not be negative")
	// ErrNotOnBoard is returned when a player's first commit is below the
	// on-the-board requirement.
	ErrNotOnBoard = errors.New("points below on-the-board requirement")
)

// Standing is one row of the ranking.
type Standing struct {
	ID    string
	Score int
	// Seat is the player's position in the order the ledger was created with.
	Seat int
}

// Ledger maps player IDs to non-negative running totals.
//
// Invariant: scores never decrease.
type Ledger struct {
	onTheBoard int
	scores     map[string]int
	seats      []string
}

// New creates a ledger with a zero entry for each id.
//
// Precondition: onTheBoard >= 0; ids are unique.
func New(onTheBoard int, ids ...string) *Ledger {
	l := &Ledger{
		onTheBoard: max(onTheBoard, 0),
		scores:     make(map[string]int, len(ids)),
		seats:      make([]string, 0, len(ids)),
	}
	for _, id := range ids {
		if _, ok := l.scores[id]; ok {
			continue
		}
		l.scores[id] = 0
		l.seats = append(l.seats, id)
	}
	return l
}

// OnTheBoard returns the minimum first commit.
func (l *Ledger) OnTheBoard() int {
	return l.onTheBoard
}

// Has reports whether id has an entry.
func (l *Ledger) Has(id string) bool {
	_, ok := l.scores[id]
	return ok
}

// Score returns the committed score for id, or 0 for an unknown id.
func (l *Ledger) Score(id string) int {
	return l.scores[id]
}

// Commit adds a banked turn total to id's score. A zero commit is a no-op.
//
// Postcondition: on success Score(id) increased by exactly points.
func (l *Ledger) Commit(id string, points int) error {
	score, ok := l.scores[id]
	if !ok {
		return fmt.Errorf("committing %d for %q: %w", points, id, ErrUnknownPlayer)
	}
	if points < 0 {
		return fmt.Errorf("committing %d for %q: %w", points, id, ErrNegativePoints)
	}
	if points == 0 {
		return nil
	}
	if score == 0 && points < l.onTheBoard {
		return fmt.Errorf("committing %d for %q (need %d): %w", points, id, l.onTheBoard, ErrNotOnBoard)
	}
	l.scores[id] = score + points
	return nil
}

// Top returns the highest score and the first seat holding it.
//
// Postcondition: returns ("", 0) for an empty ledger.
func (l *Ledger) Top() (string, int) {
	best, bestID := 0, ""
	for _, id := range l.seats {
		if s := l.scores[id]; bestID == "" || s > best {
			best, bestID = s, id
		}
	}
	return bestID, best
}

// Standings returns every entry ordered by score descending. Equal scores
// are ordered by preferred first (when non-empty), then by seat.
func (l *Ledger) Standings(preferred string) []Standing {
	out := make([]Standing, len(l.seats))
	for i, id := range l.seats {
		out[i] = Standing{ID: id, Score: l.scores[id], Seat: i}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if preferred != "" && (out[i].ID == preferred) != (out[j].ID == preferred) {
			return out[i].ID == preferred
		}
		return out[i].Seat < out[j].Seat
	})
	return out
}
