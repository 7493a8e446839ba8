package dice

import (
	"fmt"
	"strings"
)

// Capacity is the number of dice in a full hand.
const Capacity = 6

// Counts is a face histogram. Index 0 is unused; Counts[f] is the number of
// dice showing face f.
type Counts [Sides + 1]int

// Of returns the number of dice showing f.
func (c Counts) Of(f Face) int {
	if !f.Valid() {
		return 0
	}
	return c[f]
}

// Total returns the number of dice counted.
func (c Counts) Total() int {
	n := 0
	for _, f := range Faces {
		n += c[f]
	}
	return n
}

// Hand is an ordered pool of independently rollable dice with a fixed
// capacity.
//
// Invariant: 0 <= Len() <= Capacity.
type Hand struct {
	src  Source
	dice []*Die
}

// NewHand returns a full hand of unrolled dice that rolls with src.
//
// Precondition: src must be non-nil before RollAll is called.
// Postcondition: Len() == Capacity.
func NewHand(src Source) *Hand {
	h := &Hand{src: src}
	h.fill()
	return h
}

// HandOf returns a hand whose dice already show faces, in order. src may be
// nil when the hand is only scored and never rolled.
//
// Precondition: len(faces) <= Capacity and every face is valid.
func HandOf(src Source, faces ...Face) *Hand {
	if len(faces) > Capacity {
		panic(fmt.Sprintf("dice: HandOf called with %d faces, capacity is %d", len(faces), Capacity))
	}
	h := &Hand{src: src, dice: make([]*Die, 0, Capacity)}
	for _, f := range faces {
		if !f.Valid() {
			panic(fmt.Sprintf("dice: HandOf called with invalid face %d", int(f)))
		}
		h.dice = append(h.dice, &Die{face: f})
	}
	return h
}

// Len returns the number of dice currently in the hand.
func (h *Hand) Len() int {
	return len(h.dice)
}

// Empty reports whether the hand holds no dice.
func (h *Hand) Empty() bool {
	return len(h.dice) == 0
}

// RollAll rolls every die in the hand. An empty hand is refilled to capacity
// first (hot dice).
//
// Precondition: the hand was built with a non-nil Source.
// Postcondition: Len() >= 1 and every die shows a valid face.
func (h *Hand) RollAll() {
	if h.src == nil {
		panic("dice: RollAll called on a hand without a source")
	}
	if h.Empty() {
		h.fill()
	}
	for _, d := range h.dice {
		d.Roll(h.src)
	}
}

// RemoveFace removes dice showing f. When all is false only the first
// matching die is removed; otherwise every matching die is removed.
//
// Postcondition: returns the number of dice removed.
func (h *Hand) RemoveFace(f Face, all bool) int {
	kept := h.dice[:0]
	removed := 0
	for _, d := range h.dice {
		if d.face == f && (all || removed == 0) {
			removed++
			continue
		}
		kept = append(kept, d)
	}
	for i := len(kept); i < len(h.dice); i++ {
		h.dice[i] = nil
	}
	h.dice = kept
	return removed
}

// Clear removes every die from the hand.
func (h *Hand) Clear() {
	h.dice = h.dice[:0]
}

// Reset clears the hand and refills it to capacity with unrolled dice.
//
// Postcondition: Len() == Capacity.
func (h *Hand) Reset() {
	h.Clear()
	h.fill()
}

// Faces returns a snapshot of the faces showing, in hand order.
func (h *Hand) Faces() []Face {
	out := make([]Face, len(h.dice))
	for i, d := range h.dice {
		out[i] = d.face
	}
	return out
}

// Counts returns the face histogram of the hand.
func (h *Hand) Counts() Counts {
	var c Counts
	for _, d := range h.dice {
		if d.face.Valid() {
			c[d.face]++
		}
	}
	return c
}

// Clone returns an independent copy of the hand sharing the same Source.
func (h *Hand) Clone() *Hand {
	c := &Hand{src: h.src, dice: make([]*Die, len(h.dice), Capacity)}
	for i, d := range h.dice {
		c.dice[i] = &Die{face: d.face}
	}
	return c
}

// String renders the hand as "[1 5 5 3]".
func (h *Hand) String() string {
	parts := make([]string, len(h.dice))
	for i, d := range h.dice {
		parts[i] = d.face.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (h *Hand) fill() {
	if h.dice == nil {
		h.dice = make([]*Die, 0, Capacity)
	}
	for len(h.dice) < Capacity {
		h.dice = append(h.dice, &Die{})
	}
}
