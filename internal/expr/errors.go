package expr

import "fmt"

// ParseError reports an input string that is not a valid roll expression.
type ParseError struct {
	Input  string // the full original input
	Offset int    // byte offset into Input where parsing failed
	Msg    string // what went wrong
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("expr: cannot parse %q: %s", e.Input, e.Msg)
}

// EvalError reports an expression that parsed but cannot be reduced to a
// number, such as one built around a bare operator.
type EvalError struct {
	Expr string // rendering of the offending expression
	Msg  string // why it cannot reduce
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("expr: cannot evaluate %q: %s", e.Expr, e.Msg)
}
