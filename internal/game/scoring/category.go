// Package scoring classifies Farkle dice into scoring categories and extracts
// points from a hand.
package scoring

import (
	"fmt"

	"github.com/cory-johannsen/farkle/internal/game/dice"
)

// Kind identifies one of the mutually exclusive scoring shapes.
type Kind int

const (
	// Farkle is a hand with no scoring shape. It is the zero value.
	Farkle Kind = iota
	OneOne
	OneFive
	ThreeOfAKind
	FourOfAKind
	FiveOfAKind
	SixOfAKind
	Straight
	TwoTriplets
	ThreePairs
	FourOfAKindPlusPair
)

var kindNames = map[Kind]string{
	Farkle:              "farkle",
	OneOne:              "single one",
	OneFive:             "single five",
	ThreeOfAKind:        "three of a kind",
	FourOfAKind:         "four of a kind",
	FiveOfAKind:         "five of a kind",
	SixOfAKind:          "six of a kind",
	Straight:            "straight",
	TwoTriplets:         "two triplets",
	ThreePairs:          "three pairs",
	FourOfAKindPlusPair: "four of a kind plus a pair",
}

// String returns the human-readable kind name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Category is a scoring shape together with the face it matched, if any.
// The zero Category is a Farkle.
type Category struct {
	Kind Kind
	// Face is the matched face for the same-face group kinds and the single
	// die kinds; it is zero for whole-hand kinds other than SixOfAKind.
	Face dice.Face
}

// Value returns the points awarded for the category.
func (c Category) Value() int {
	switch c.Kind {
	case OneOne:
		return 100
	case OneFive:
		return 50
	case ThreeOfAKind:
		if c.Face == dice.One {
			return 300
		}
		return int(c.Face) * 100
	case FourOfAKind:
		return 1000
	case FiveOfAKind:
		return 2000
	case SixOfAKind:
		return 3000
	case TwoTriplets:
		return 2500
	case Straight, ThreePairs, FourOfAKindPlusPair:
		return 1500
	default:
		return 0
	}
}

// Cost returns the number of dice the category consumes.
func (c Category) Cost() int {
	switch c.Kind {
	case OneOne, OneFive:
		return 1
	case ThreeOfAKind:
		return 3
	case FourOfAKind:
		return 4
	case FiveOfAKind:
		return 5
	case SixOfAKind, Straight, TwoTriplets, ThreePairs, FourOfAKindPlusPair:
		return dice.Capacity
	default:
		return 0
	}
}

// IsFarkle reports whether the category scores nothing.
func (c Category) IsFarkle() bool {
	return c.Kind == Farkle
}

// String renders the category as "three of a kind (4s) = 400".
func (c Category) String() string {
	switch c.Kind {
	case ThreeOfAKind, FourOfAKind, FiveOfAKind, SixOfAKind:
		return fmt.Sprintf("%s (%ss) = %d", c.Kind, c.Face, c.Value())
	default:
		return fmt.Sprintf("%s = %d", c.Kind, c.Value())
	}
}

// RemoveDice removes the dice consumed by c from h.
//
// Single-die kinds remove one matching die; same-face group kinds remove every
// die of the face; whole-hand kinds empty the hand; Farkle removes nothing.
//
// Postcondition: returns the number of dice removed.
func RemoveDice(h *dice.Hand, c Category) int {
	switch c.Kind {
	case OneOne, OneFive:
		return h.RemoveFace(c.Face, false)
	case ThreeOfAKind, FourOfAKind, FiveOfAKind:
		return h.RemoveFace(c.Face, true)
	case SixOfAKind, Straight, TwoTriplets, ThreePairs, FourOfAKindPlusPair:
		n := h.Len()
		h.Clear()
		return n
	default:
		return 0
	}
}
