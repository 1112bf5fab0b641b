package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexspell/roll/internal/dice"
	"github.com/hexspell/roll/internal/expr"
)

// TestOperator_String verifies the notation for both operators.
func TestOperator_String(t *testing.T) {
	assert.Equal(t, "+", expr.Add.String())
	assert.Equal(t, "-", expr.Sub.String())
	assert.Panics(t, func() { _ = expr.Operator(99).String() })
}

// TestDiceAtom_String verifies dice notation renders with every modifier
// suffix in order.
func TestDiceAtom_String(t *testing.T) {
	e := expr.DiceRoll(dice.MustNew(4, 6), dice.KeepHighest(3), dice.DropLowest(1))
	assert.Equal(t, "4d6kh3dl1", e.String())
}

// TestApplication_String verifies operands render around the operator.
func TestApplication_String(t *testing.T) {
	e := expr.Application{Op: expr.Sub, Left: expr.DiceRoll(dice.MustNew(2, 8)), Right: expr.Number(1)}
	assert.Equal(t, "2d8 - 1", e.String())
}

// TestKind_String verifies the rendering of all three roll kinds.
func TestKind_String(t *testing.T) {
	simple := expr.Simple{Expr: expr.Number(4)}
	assert.Equal(t, "4", simple.String())

	labeled := expr.Labeled{Label: "damage", Expr: expr.DiceRoll(dice.MustNew(2, 6))}
	assert.Equal(t, "damage: 2d6", labeled.String())

	sep := expr.Separated{Parts: []expr.Kind{simple, labeled}}
	assert.Equal(t, "4; damage: 2d6", sep.String())
}

// TestComplete verifies only number constants count as reduced.
func TestComplete(t *testing.T) {
	assert.True(t, expr.Number(3).Complete())
	assert.False(t, expr.DiceRoll(dice.MustNew(1, 6)).Complete())
	assert.False(t, expr.Constant{Atom: expr.OperatorAtom{Op: expr.Add}}.Complete())

	app := expr.Application{Op: expr.Add, Left: expr.Number(1), Right: expr.Number(2)}
	assert.False(t, app.Complete(), "an application still needs reducing")

	mixed := expr.Separated{Parts: []expr.Kind{
		expr.Simple{Expr: expr.Number(1)},
		expr.Simple{Expr: expr.DiceRoll(dice.MustNew(1, 6))},
	}}
	assert.False(t, mixed.Complete(), "one unrolled die taints the batch")

	done := expr.Separated{Parts: []expr.Kind{
		expr.Simple{Expr: expr.Number(1)},
		expr.Labeled{Label: "x", Expr: expr.Number(2)},
	}}
	assert.True(t, done.Complete())
}

// TestNum verifies only number constants report a value.
func TestNum(t *testing.T) {
	v, ok := expr.Number(-13).Num()
	require.True(t, ok)
	assert.Equal(t, -13, v)

	_, ok = expr.DiceRoll(dice.MustNew(1, 6)).Num()
	assert.False(t, ok)

	app := expr.Application{Op: expr.Add, Left: expr.Number(1), Right: expr.Number(2)}
	_, ok = app.Num()
	assert.False(t, ok, "an application has no value until evaluated")
}

// TestTotal verifies batch totals sum every part and unreduced rolls report
// no total.
func TestTotal(t *testing.T) {
	total, ok := expr.Total(expr.Simple{Expr: expr.Number(5)})
	require.True(t, ok)
	assert.Equal(t, 5, total)

	total, ok = expr.Total(expr.Labeled{Label: "x", Expr: expr.Number(7)})
	require.True(t, ok)
	assert.Equal(t, 7, total)

	total, ok = expr.Total(expr.Separated{Parts: []expr.Kind{
		expr.Simple{Expr: expr.Number(5)},
		expr.Labeled{Label: "x", Expr: expr.Number(7)},
	}})
	require.True(t, ok)
	assert.Equal(t, 12, total)

	_, ok = expr.Total(expr.Simple{Expr: expr.DiceRoll(dice.MustNew(1, 6))})
	assert.False(t, ok, "an unrolled die has no total")
}
