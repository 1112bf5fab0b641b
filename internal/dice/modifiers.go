package dice

import "fmt"

// Modifier is a post-processing rule applied to a dice roll's face values,
// such as keeping the highest N dice of an ability roll.
//
// Apply takes face values sorted ascending and returns the surviving values,
// also sorted ascending and always a subsequence of the input. Counts that
// exceed the roll length saturate: keeping more dice than were rolled keeps
// them all, dropping more drops none. Custom modifiers may be defined by
// implementing this interface.
type Modifier interface {
	fmt.Stringer

	// Apply returns the surviving face values.
	//
	// Precondition: results is sorted ascending.
	// Postcondition: the returned slice is a fresh, sorted subsequence of results.
	Apply(results []int) []int
}

// KeepHighest keeps the N highest face values ("4d6kh3").
type KeepHighest int

// KeepLowest keeps the N lowest face values ("2d20kl1").
type KeepLowest int

// DropHighest drops the N highest face values ("3d6dh1").
type DropHighest int

// DropLowest drops the N lowest face values ("4d6dl1").
type DropLowest int

func (m KeepHighest) Apply(results []int) []int {
	n := clampCount(int(m), len(results))
	return copyFaces(results[len(results)-n:])
}

func (m KeepLowest) Apply(results []int) []int {
	n := clampCount(int(m), len(results))
	return copyFaces(results[:n])
}

// Apply drops the N highest by keeping the rest from the low end.
func (m DropHighest) Apply(results []int) []int {
	return KeepLowest(len(results) - clampCount(int(m), len(results))).Apply(results)
}

// Apply drops the N lowest by keeping the rest from the high end.
func (m DropLowest) Apply(results []int) []int {
	return KeepHighest(len(results) - clampCount(int(m), len(results))).Apply(results)
}

func (m KeepHighest) String() string { return fmt.Sprintf("kh%d", int(m)) }
func (m KeepLowest) String() string  { return fmt.Sprintf("kl%d", int(m)) }
func (m DropHighest) String() string { return fmt.Sprintf("dh%d", int(m)) }
func (m DropLowest) String() string  { return fmt.Sprintf("dl%d", int(m)) }

// clampCount bounds a modifier count to [0, length].
func clampCount(n, length int) int {
	if n < 0 {
		return 0
	}
	if n > length {
		return length
	}
	return n
}

func copyFaces(faces []int) []int {
	out := make([]int, len(faces))
	copy(out, faces)
	return out
}
