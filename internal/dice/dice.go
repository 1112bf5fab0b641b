// Package dice provides the dice value type, roll modifiers, and randomness
// sources shared by every roller in the toolkit.
package dice

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Dice is a set of identical fair dice: Quantity dice with Sides faces each.
// "Fair" means every face has an equal chance of appearing.
//
// Invariant: Sides >= 1 and Quantity >= 0 for values built by New or Parse.
// A zero Quantity is legal and produces an empty roll.
type Dice struct {
	// Quantity is the number of dice rolled together.
	Quantity int
	// Sides is the number of faces on every die. It does not have to match
	// any physical die, so d7 or d1000 are fine.
	Sides int
}

// New builds a Dice value, checking the type invariants.
//
// Postcondition: Returns a valid Dice or a descriptive error.
func New(quantity, sides int) (Dice, error) {
	if quantity < 0 {
		return Dice{}, fmt.Errorf("dice: quantity must be >= 0, got %d", quantity)
	}
	if sides < 1 {
		return Dice{}, fmt.Errorf("dice: sides must be >= 1, got %d", sides)
	}
	return Dice{Quantity: quantity, Sides: sides}, nil
}

// MustNew builds a Dice value and panics on invalid arguments. Useful for
// package-level constants.
func MustNew(quantity, sides int) Dice {
	d, err := New(quantity, sides)
	if err != nil {
		panic("dice: MustNew: " + err.Error())
	}
	return d
}

// Single returns a single die with the given number of sides.
//
// Precondition: sides >= 1.
func Single(sides int) Dice {
	return MustNew(1, sides)
}

// Parse parses the bare dice notation "<quantity>d<sides>", e.g. "2d6".
// The quantity may be omitted ("d20" reads as one d20). Nothing may follow
// the sides; modifier suffixes belong to the expression grammar, not to the
// bare notation.
//
// Postcondition: Returns a valid Dice or an error naming the bad input.
func Parse(s string) (Dice, error) {
	parts := strings.Split(strings.ToLower(s), "d")
	if len(parts) != 2 {
		return Dice{}, fmt.Errorf("dice: invalid dice notation %q", s)
	}

	quantity := 1
	if parts[0] != "" {
		q, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return Dice{}, fmt.Errorf("dice: invalid quantity in %q", s)
		}
		quantity = int(q)
	}

	sides, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return Dice{}, fmt.Errorf("dice: invalid sides in %q", s)
	}

	d, err := New(quantity, int(sides))
	if err != nil {
		return Dice{}, fmt.Errorf("dice: %q: %w", s, err)
	}
	return d, nil
}

// String renders the canonical notation "<quantity>d<sides>".
//
// Postcondition: Parse(d.String()) round-trips for valid values.
func (d Dice) String() string {
	return fmt.Sprintf("%dd%d", d.Quantity, d.Sides)
}

// Roll rolls every die once using src and returns the face values sorted
// ascending.
//
// Precondition: d must satisfy the type invariants; src must be non-nil.
// Postcondition: len(result) == d.Quantity and every value is in [1, d.Sides].
func Roll(d Dice, src Source) []int {
	faces := make([]int, d.Quantity)
	for i := range faces {
		faces[i] = src.Intn(d.Sides) + 1
	}
	sort.Ints(faces)
	return faces
}

// Sum returns the sum of a slice of face values.
func Sum(faces []int) int {
	total := 0
	for _, f := range faces {
		total += f
	}
	return total
}
