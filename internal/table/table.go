// Package table loads YAML roll tables and resolves dice rolls against
// their outcome bands.
package table

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/hexspell/roll/internal/dice"
	"github.com/hexspell/roll/internal/expr"
)

// Entry is one outcome band of a roll table: totals in [Min, Max] land here.
type Entry struct {
	Min    int    `yaml:"min"`
	Max    int    `yaml:"max"`
	Result string `yaml:"result"`
}

// Table maps the totals of a dice expression to outcomes. Bands must be
// sorted ascending and must not overlap. Gaps are allowed; a roll landing in
// one is a miss, not an error.
type Table struct {
	Name    string  `yaml:"name"`
	Dice    string  `yaml:"dice"`
	Entries []Entry `yaml:"entries"`
}

// Validate checks that the table satisfies its invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff the dice expression parses as a plain roll
// and the entries are well formed, sorted, and non-overlapping.
func (t *Table) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("roll table: name must not be empty")
	}
	k, err := expr.Parse(t.Dice)
	if err != nil {
		return fmt.Errorf("roll table %s: dice expression: %w", t.Name, err)
	}
	if _, ok := k.(expr.Simple); !ok {
		return fmt.Errorf("roll table %s: dice must be a plain expression, got %q", t.Name, t.Dice)
	}
	if len(t.Entries) == 0 {
		return fmt.Errorf("roll table %s: needs at least one entry", t.Name)
	}
	for i, e := range t.Entries {
		if e.Min > e.Max {
			return fmt.Errorf("roll table %s: entry[%d] min (%d) must be <= max (%d)", t.Name, i, e.Min, e.Max)
		}
		if e.Result == "" {
			return fmt.Errorf("roll table %s: entry[%d] must have a result", t.Name, i)
		}
		if i > 0 && e.Min <= t.Entries[i-1].Max {
			return fmt.Errorf("roll table %s: entry[%d] overlaps or is out of order (min %d, previous max %d)",
				t.Name, i, e.Min, t.Entries[i-1].Max)
		}
	}
	return nil
}

// Outcome records a single resolved roll against a table.
type Outcome struct {
	RollID  string // unique id for this outcome
	Table   string // name of the table rolled on
	Total   int    // evaluated total of the dice expression
	Matched bool   // whether the total landed in a band
	Result  string // text of the matching entry, empty on a miss
}

// Roll evaluates the table's dice expression with src and returns the
// outcome band the total lands in. A total covered by no band is a miss:
// the Outcome reports Matched false and an empty Result.
//
// Precondition: t must have passed Validate; src must be non-nil.
// Postcondition: On success the Outcome carries a fresh RollID and the total.
func (t *Table) Roll(src dice.Source) (Outcome, error) {
	k, err := expr.EvalString(t.Dice, src)
	if err != nil {
		return Outcome{}, fmt.Errorf("roll table %s: rolling %q: %w", t.Name, t.Dice, err)
	}
	total, ok := expr.Total(k)
	if !ok {
		return Outcome{}, fmt.Errorf("roll table %s: roll %q did not reduce to a number", t.Name, t.Dice)
	}
	out := Outcome{
		RollID: uuid.New().String(),
		Table:  t.Name,
		Total:  total,
	}
	for _, e := range t.Entries {
		if total >= e.Min && total <= e.Max {
			out.Matched = true
			out.Result = e.Result
			return out, nil
		}
	}
	return out, nil
}

// Find returns the table with the given name from a loaded set.
func Find(tables []*Table, name string) (*Table, bool) {
	for _, t := range tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}
