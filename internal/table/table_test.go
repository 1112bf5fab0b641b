package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hexspell/roll/internal/dice"
	"github.com/hexspell/roll/internal/table"
)

// validTable returns a well formed table covering every 2d6 total.
func validTable() *table.Table {
	return &table.Table{
		Name: "encounters",
		Dice: "2d6",
		Entries: []table.Entry{
			{Min: 2, Max: 4, Result: "goblin ambush"},
			{Min: 5, Max: 9, Result: "pack of wolves"},
			{Min: 10, Max: 12, Result: "young dragon"},
		},
	}
}

func TestTable_Validate_Accepts(t *testing.T) {
	require.NoError(t, validTable().Validate())
}

// TestTable_Validate_Rejects covers every invariant violation.
func TestTable_Validate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*table.Table)
	}{
		{"empty name", func(tb *table.Table) { tb.Name = "" }},
		{"unparseable dice", func(tb *table.Table) { tb.Dice = "whatdochat" }},
		{"labeled dice", func(tb *table.Table) { tb.Dice = "x: 2d6" }},
		{"separated dice", func(tb *table.Table) { tb.Dice = "1d6; 1d6" }},
		{"no entries", func(tb *table.Table) { tb.Entries = nil }},
		{"min above max", func(tb *table.Table) { tb.Entries[0].Min = 5 }},
		{"empty result", func(tb *table.Table) { tb.Entries[1].Result = "" }},
		{"overlapping bands", func(tb *table.Table) { tb.Entries[1].Min = 4 }},
		{"out of order", func(tb *table.Table) { tb.Entries[0], tb.Entries[1] = tb.Entries[1], tb.Entries[0] }},
	}
	for _, tc := range cases {
		tb := validTable()
		tc.mutate(tb)
		assert.Error(t, tb.Validate(), tc.name)
	}
}

// TestTable_Roll_MatchesBand verifies a scripted total lands in its band.
func TestTable_Roll_MatchesBand(t *testing.T) {
	tb := validTable()

	// Draws 2 and 3 become faces 3 and 4, a total of 7.
	out, err := tb.Roll(dice.NewSequenceSource(2, 3))
	require.NoError(t, err)

	assert.Equal(t, "encounters", out.Table)
	assert.Equal(t, 7, out.Total)
	assert.True(t, out.Matched)
	assert.Equal(t, "pack of wolves", out.Result)
	assert.NotEmpty(t, out.RollID)
}

// TestTable_Roll_DistinctIDs verifies every outcome gets its own id.
func TestTable_Roll_DistinctIDs(t *testing.T) {
	tb := validTable()
	src := dice.NewSeededSource(3)

	first, err := tb.Roll(src)
	require.NoError(t, err)
	second, err := tb.Roll(src)
	require.NoError(t, err)

	assert.NotEqual(t, first.RollID, second.RollID)
}

// TestTable_Roll_Miss verifies a total landing between bands is a miss,
// not an error.
func TestTable_Roll_Miss(t *testing.T) {
	tb := &table.Table{
		Name: "sparse",
		Dice: "2d6",
		Entries: []table.Entry{
			{Min: 2, Max: 4, Result: "low"},
			{Min: 10, Max: 12, Result: "high"},
		},
	}
	require.NoError(t, tb.Validate())

	out, err := tb.Roll(dice.NewSequenceSource(2, 3))
	require.NoError(t, err)

	assert.Equal(t, 7, out.Total)
	assert.False(t, out.Matched)
	assert.Empty(t, out.Result)
	assert.NotEmpty(t, out.RollID)
}

// TestTable_Roll_Property verifies every outcome's total sits inside the
// band that produced its result.
func TestTable_Roll_Property(t *testing.T) {
	tb := validTable()
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		out, err := tb.Roll(src)
		require.NoError(rt, err)

		assert.GreaterOrEqual(rt, out.Total, 2)
		assert.LessOrEqual(rt, out.Total, 12)
		assert.True(rt, out.Matched, "every 2d6 total is covered by a band")
		for _, e := range tb.Entries {
			if out.Total >= e.Min && out.Total <= e.Max {
				assert.Equal(rt, e.Result, out.Result, "result must come from the band holding %d", out.Total)
			}
		}
	})
}

func TestFind(t *testing.T) {
	tables := []*table.Table{validTable(), {Name: "treasure"}}

	got, ok := table.Find(tables, "treasure")
	require.True(t, ok)
	assert.Equal(t, "treasure", got.Name)

	_, ok = table.Find(tables, "missing")
	assert.False(t, ok)
}
