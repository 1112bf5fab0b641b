package expr

import (
	"go.uber.org/zap"

	"github.com/hexspell/roll/internal/dice"
)

// Eval reduces k to its rolled form using src for randomness.
//
// Precondition: src must be non-nil.
// Postcondition: on success the result is Complete and Total reports a value.
func Eval(k Kind, src dice.Source) (Kind, error) {
	return NewEvaluator(src, zap.NewNop()).Eval(k)
}

// EvalExpr reduces a single expression tree to its rolled form using src.
//
// Precondition: src must be non-nil.
func EvalExpr(e Expr, src dice.Source) (Expr, error) {
	return NewEvaluator(src, zap.NewNop()).evalExpr(e)
}

// EvalString parses input and evaluates it in a single call.
//
// Precondition: src must be non-nil.
// Postcondition: returns a Complete result, a *ParseError, or a *EvalError.
func EvalString(input string, src dice.Source) (Kind, error) {
	return NewEvaluator(src, zap.NewNop()).EvalString(input)
}

// Evaluator reduces parsed rolls to numbers, logging every dice roll along
// the way at debug level.
type Evaluator struct {
	roller *dice.Roller
}

// NewEvaluator creates an Evaluator that rolls with src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewEvaluator(src dice.Source, logger *zap.Logger) *Evaluator {
	return &Evaluator{roller: dice.NewRoller(src, logger)}
}

// Eval reduces k until every die has been rolled and every operator applied.
// Labels carry through untouched and the parts of a separated batch are
// evaluated left to right, stopping at the first failure. Evaluating an
// already complete roll returns it unchanged without consuming randomness.
func (ev *Evaluator) Eval(k Kind) (Kind, error) {
	switch k := k.(type) {
	case Simple:
		e, err := ev.evalExpr(k.Expr)
		if err != nil {
			return nil, err
		}
		return Simple{Expr: e}, nil
	case Labeled:
		e, err := ev.evalExpr(k.Expr)
		if err != nil {
			return nil, err
		}
		return Labeled{Label: k.Label, Expr: e}, nil
	case Separated:
		parts := make([]Kind, 0, len(k.Parts))
		for _, part := range k.Parts {
			done, err := ev.Eval(part)
			if err != nil {
				return nil, err
			}
			parts = append(parts, done)
		}
		return Separated{Parts: parts}, nil
	}
	return nil, &EvalError{Expr: k.String(), Msg: "unknown roll kind"}
}

// EvalString parses input and evaluates the result in a single call.
func (ev *Evaluator) EvalString(input string) (Kind, error) {
	k, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return ev.Eval(k)
}

func (ev *Evaluator) evalExpr(e Expr) (Expr, error) {
	switch e := e.(type) {
	case Constant:
		switch atom := e.Atom.(type) {
		case NumberAtom:
			return e, nil
		case DiceAtom:
			var kept []int
			if len(atom.Modifiers) == 0 {
				kept = ev.roller.Roll(atom.Dice)
			} else {
				kept = ev.roller.RollModified(atom.Dice, atom.Modifiers...)
			}
			return Number(dice.Sum(kept)), nil
		case OperatorAtom:
			return nil, &EvalError{Expr: e.String(), Msg: "a bare operator is not a value"}
		}
	case Application:
		left, err := ev.evalExpr(e.Left)
		if err != nil {
			return nil, err
		}
		lv, ok := left.Num()
		if !ok {
			return nil, &EvalError{Expr: e.String(), Msg: "left operand did not reduce to a number"}
		}
		right, err := ev.evalExpr(e.Right)
		if err != nil {
			return nil, err
		}
		rv, ok := right.Num()
		if !ok {
			return nil, &EvalError{Expr: e.String(), Msg: "right operand did not reduce to a number"}
		}
		return Number(e.Op.apply(lv, rv)), nil
	}
	return nil, &EvalError{Expr: e.String(), Msg: "unknown expression"}
}
