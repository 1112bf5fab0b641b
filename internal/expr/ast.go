// Package expr parses and evaluates roll expressions: dice notation combined
// with plain numbers and the + and - operators, optionally labeled, and
// optionally separated into semicolon lists that roll as one batch.
package expr

import (
	"strconv"
	"strings"

	"github.com/hexspell/roll/internal/dice"
)

// Operator is an arithmetic operator joining two expressions.
type Operator int

const (
	Add Operator = iota
	Sub
)

// String renders the operator in roll notation.
func (o Operator) String() string {
	switch o {
	case Add:
		return "+"
	case Sub:
		return "-"
	}
	panic("expr: unknown operator " + strconv.Itoa(int(o)))
}

func (o Operator) apply(left, right int) int {
	switch o {
	case Add:
		return left + right
	case Sub:
		return left - right
	}
	panic("expr: unknown operator " + strconv.Itoa(int(o)))
}

// Atom is a single token of a roll expression: dice notation, a number, or a
// bare operator. The three implementations in this package are the only ones.
type Atom interface {
	String() string
	isAtom()
}

// DiceAtom is dice notation plus any modifier suffixes, e.g. "4d6kh3".
type DiceAtom struct {
	Dice      dice.Dice
	Modifiers []dice.Modifier
}

func (a DiceAtom) String() string {
	var b strings.Builder
	b.WriteString(a.Dice.String())
	for _, m := range a.Modifiers {
		b.WriteString(m.String())
	}
	return b.String()
}

func (DiceAtom) isAtom() {}

// NumberAtom is a plain integer, possibly negative.
type NumberAtom struct {
	Value int
}

func (a NumberAtom) String() string { return strconv.Itoa(a.Value) }

func (NumberAtom) isAtom() {}

// OperatorAtom is an operator standing alone as a token. It parses but never
// evaluates; it exists so malformed inputs like "+ + 1" fail at evaluation
// with a clear message instead of being rejected with a confusing parse error.
type OperatorAtom struct {
	Op Operator
}

func (a OperatorAtom) String() string { return a.Op.String() }

func (OperatorAtom) isAtom() {}

// Expr is a roll expression tree. The two implementations in this package,
// Constant and Application, are the only ones.
type Expr interface {
	String() string
	// Num returns the numeric value when the expression is a fully reduced
	// number, and false otherwise.
	Num() (int, bool)
	// Complete reports whether evaluating the expression again would leave
	// it unchanged without rolling anything.
	Complete() bool
	isExpr()
}

// Constant is a single atom as an expression.
type Constant struct {
	Atom Atom
}

func (c Constant) String() string { return c.Atom.String() }

// Num returns the value of a number constant.
func (c Constant) Num() (int, bool) {
	if n, ok := c.Atom.(NumberAtom); ok {
		return n.Value, true
	}
	return 0, false
}

// Complete reports true only for number constants: dice still need rolling
// and a bare operator can never reduce.
func (c Constant) Complete() bool {
	_, ok := c.Atom.(NumberAtom)
	return ok
}

func (Constant) isExpr() {}

// Application applies an operator to two subexpressions. Chains associate to
// the right, so "1 + 2 + 3" is 1 + (2 + 3).
type Application struct {
	Op    Operator
	Left  Expr
	Right Expr
}

func (a Application) String() string {
	return a.Left.String() + " " + a.Op.String() + " " + a.Right.String()
}

// Num always reports false; an application is reduced away by evaluation.
func (a Application) Num() (int, bool) { return 0, false }

// Complete always reports false; evaluation replaces the application with
// its numeric result.
func (a Application) Complete() bool { return false }

func (Application) isExpr() {}

// Kind is the shape of a whole roll: a bare expression, a labeled one, or a
// semicolon separated batch. The three implementations in this package are
// the only ones.
type Kind interface {
	String() string
	// Complete reports whether every expression in the roll is fully
	// reduced.
	Complete() bool
	isKind()
}

// Simple is a bare expression, e.g. "2d6 + 3".
type Simple struct {
	Expr Expr
}

func (s Simple) String() string { return s.Expr.String() }

func (s Simple) Complete() bool { return s.Expr.Complete() }

func (Simple) isKind() {}

// Labeled is an expression with a name in front, e.g. "attack: 2d20kh1".
// The label carries through evaluation untouched.
type Labeled struct {
	Label string
	Expr  Expr
}

func (l Labeled) String() string { return l.Label + ": " + l.Expr.String() }

func (l Labeled) Complete() bool { return l.Expr.Complete() }

func (Labeled) isKind() {}

// Separated is a batch of rolls evaluated in order, e.g. "1d6; 1d8; 4".
type Separated struct {
	Parts []Kind
}

func (s Separated) String() string {
	parts := make([]string, len(s.Parts))
	for i, p := range s.Parts {
		parts[i] = p.String()
	}
	return strings.Join(parts, "; ")
}

func (s Separated) Complete() bool {
	for _, p := range s.Parts {
		if !p.Complete() {
			return false
		}
	}
	return true
}

func (Separated) isKind() {}

// Number builds a fully reduced numeric expression.
func Number(v int) Expr {
	return Constant{Atom: NumberAtom{Value: v}}
}

// DiceRoll builds a dice expression with mods applied in order after rolling.
func DiceRoll(d dice.Dice, mods ...dice.Modifier) Expr {
	return Constant{Atom: DiceAtom{Dice: d, Modifiers: mods}}
}

// Total returns the combined numeric value of an evaluated roll: the value
// of a simple or labeled roll, or the sum across a separated batch. It
// reports false while any part is still unreduced.
func Total(k Kind) (int, bool) {
	switch k := k.(type) {
	case Simple:
		return k.Expr.Num()
	case Labeled:
		return k.Expr.Num()
	case Separated:
		sum := 0
		for _, p := range k.Parts {
			v, ok := Total(p)
			if !ok {
				return 0, false
			}
			sum += v
		}
		return sum, true
	}
	return 0, false
}
