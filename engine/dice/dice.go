// Package dice represents a die as an ordered multiset of faces and
// computes pairwise win probabilities by exhaustive enumeration.
package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Construction errors.
var (
	ErrNoFaces      = errors.New("die must have at least one face")
	ErrNegativeFace = errors.New("die faces must be non-negative")
)

// Die is an immutable ordered sequence of non-negative integer faces.
type Die struct {
	faces []int
}

// New creates a die from the given faces. The slice is copied; the die
// never observes later mutation of the argument.
func New(faces []int) (Die, error) {
	if len(faces) == 0 {
		return Die{}, ErrNoFaces
	}
	for i, f := range faces {
		if f < 0 {
			return Die{}, fmt.Errorf("%w: face %d is %d", ErrNegativeFace, i, f)
		}
	}
	d := Die{faces: make([]int, len(faces))}
	copy(d.faces, faces)
	return d, nil
}

// Sides returns the number of faces.
func (d Die) Sides() int { return len(d.faces) }

// Face returns the face value at index i.
func (d Die) Face(i int) int { return d.faces[i] }

// Faces returns a copy of the face values.
func (d Die) Faces() []int {
	out := make([]int, len(d.faces))
	copy(out, d.faces)
	return out
}

// String renders the die as a comma-separated face list: "2,2,4,4,9,9".
func (d Die) String() string {
	parts := make([]string, len(d.faces))
	for i, f := range d.faces {
		parts[i] = strconv.Itoa(f)
	}
	return strings.Join(parts, ",")
}

// WinCounts enumerates all ordered face pairs (x from a, y from b) and
// counts the pairs a wins (x > y) and the ties (x == y). Ties count
// toward neither side.
func WinCounts(a, b Die) (wins, ties, total int) {
	for _, x := range a.faces {
		for _, y := range b.faces {
			switch {
			case x > y:
				wins++
			case x == y:
				ties++
			}
		}
	}
	return wins, ties, a.Sides() * b.Sides()
}

// WinProbability returns the probability that a beats b under the
// strict-greater win condition: wins / (|a| × |b|).
func WinProbability(a, b Die) float64 {
	wins, _, total := WinCounts(a, b)
	return float64(wins) / float64(total)
}
