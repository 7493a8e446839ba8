// Package dice provides the randomness abstraction, die faces, and the
// rollable hand of dice used by the Farkle engines.
package dice

import "fmt"

// Face is the value showing on the top of a six-sided die.
type Face int

// Die faces, ordinal 1 through 6.
const (
	One Face = iota + 1
	Two
	Three
	Four
	Five
	Six
)

// Sides is the number of faces on every die.
const Sides = 6

// Faces lists every valid face in ascending order.
var Faces = [Sides]Face{One, Two, Three, Four, Five, Six}

// Valid reports whether f is one of the six die faces.
func (f Face) Valid() bool {
	return f >= One && f <= Six
}

// String returns the face's pip count, or "?" for an unrolled die.
func (f Face) String() string {
	if !f.Valid() {
		return "?"
	}
	return fmt.Sprintf("%d", int(f))
}

// Source is the randomness provider for dice rolls.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Die holds exactly one current face.
type Die struct {
	face Face
}

// Face returns the face currently showing.
func (d *Die) Face() Face {
	return d.face
}

// Roll assigns a uniformly random face drawn from src.
//
// Precondition: src must be non-nil.
// Postcondition: d.Face().Valid() is true.
func (d *Die) Roll(src Source) Face {
	d.face = Face(src.Intn(Sides) + 1)
	return d.face
}
