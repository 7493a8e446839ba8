// Package testutil provides test helpers shared across the game packages.
package testutil

import (
	"fmt"
	"testing"

	"github.com/cory-johannsen/farkle/internal/game/dice"
)

// ScriptedSource is a dice.Source that replays a fixed sequence of faces.
// Each Intn(6) call consumes the next face; once the script is exhausted it
// fails the owning test.
type ScriptedSource struct {
	t     testing.TB
	faces []dice.Face
	next  int
}

// NewScriptedSource returns a source that yields the given rolls in order.
// Rolls are concatenated, so each slice normally describes one RollAll call.
//
// Precondition: t must be non-nil; every face must be valid.
func NewScriptedSource(t testing.TB, rolls ...[]dice.Face) *ScriptedSource {
	t.Helper()
	s := &ScriptedSource{t: t}
	for _, r := range rolls {
		for _, f := range r {
			if !f.Valid() {
				t.Fatalf("testutil: invalid scripted face %d", int(f))
			}
			s.faces = append(s.faces, f)
		}
	}
	return s
}

// Intn returns the next scripted face as a zero-based index.
//
// Precondition: n == dice.Sides.
func (s *ScriptedSource) Intn(n int) int {
	if n != dice.Sides {
		panic(fmt.Sprintf("testutil: ScriptedSource only serves Intn(%d), got %d", dice.Sides, n))
	}
	if s.next >= len(s.faces) {
		s.t.Fatalf("testutil: scripted source exhausted after %d faces", len(s.faces))
		return 0
	}
	f := s.faces[s.next]
	s.next++
	return int(f) - 1
}

// Remaining returns how many scripted faces have not been consumed.
func (s *ScriptedSource) Remaining() int {
	return len(s.faces) - s.next
}

// Roll is shorthand for building one scripted roll.
func Roll(faces ...dice.Face) []dice.Face {
	return faces
}
