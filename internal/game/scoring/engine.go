package scoring

import "github.com/cory-johannsen/farkle/internal/game/dice"

// CalculateOptimal returns the single richest scoring category for the dice
// in h. Categories are tested in a fixed priority order and the first match
// wins; values are not compared across categories.
//
// The result depends only on the face histogram of h.
//
// Postcondition: result.Cost() <= h.Len().
func CalculateOptimal(h *dice.Hand) Category {
	return Classify(h.Counts())
}

// Classify applies the priority order to a face histogram.
func Classify(c dice.Counts) Category {
	if f, ok := faceWithCount(c, 6); ok {
		return Category{Kind: SixOfAKind, Face: f}
	}
	if facesWithCount(c, 3) == 2 {
		return Category{Kind: TwoTriplets}
	}
	if f, ok := faceWithCount(c, 5); ok {
		return Category{Kind: FiveOfAKind, Face: f}
	}
	if facesWithCount(c, 1) == dice.Sides {
		return Category{Kind: Straight}
	}
	if facesWithCount(c, 2) == 3 {
		return Category{Kind: ThreePairs}
	}
	if f, ok := faceWithCount(c, 4); ok {
		if facesWithCount(c, 2) == 1 {
			return Category{Kind: FourOfAKindPlusPair, Face: f}
		}
		return Category{Kind: FourOfAKind, Face: f}
	}
	for _, f := range []dice.Face{dice.Four, dice.Five, dice.Six} {
		if c.Of(f) == 3 {
			return Category{Kind: ThreeOfAKind, Face: f}
		}
	}
	if c.Of(dice.One) > 0 {
		return Category{Kind: OneOne, Face: dice.One}
	}
	if c.Of(dice.Five) > 0 {
		return Category{Kind: OneFive, Face: dice.Five}
	}
	for _, f := range []dice.Face{dice.One, dice.Two, dice.Three} {
		if c.Of(f) == 3 {
			return Category{Kind: ThreeOfAKind, Face: f}
		}
	}
	return Category{}
}

// CalculateTotal greedily extracts every scoring category from a copy of h.
// It returns the summed value and the number of unscoreable dice left over.
// A remainder of zero means every die scored (hot dice).
//
// h is not modified.
func CalculateTotal(h *dice.Hand) (points, remaining int) {
	taken, left := Extract(h)
	for _, c := range taken {
		points += c.Value()
	}
	return points, left
}

// Extract returns the categories CalculateTotal takes, in order, and the
// number of dice left when extraction stops.
//
// h is not modified.
func Extract(h *dice.Hand) ([]Category, int) {
	work := h.Clone()
	var taken []Category
	for {
		c := CalculateOptimal(work)
		if c.IsFarkle() {
			return taken, work.Len()
		}
		taken = append(taken, c)
		RemoveDice(work, c)
	}
}

func faceWithCount(c dice.Counts, n int) (dice.Face, bool) {
	for _, f := range dice.Faces {
		if c.Of(f) == n {
			return f, true
		}
	}
	return 0, false
}

func facesWithCount(c dice.Counts, n int) int {
	matches := 0
	for _, f := range dice.Faces {
		if c.Of(f) == n {
			matches++
		}
	}
	return matches
}
