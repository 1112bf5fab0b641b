package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hexspell/roll/internal/dice"
)

// Parse parses input into a roll of one of the three kinds.
// Supported forms: "2d6", "d20+3", "4d6kh3 - 1", "attack: 2d20kh1", "1d6; 1d8; 4"
//
// Inputs containing ';' parse as a Separated batch and inputs containing ':'
// as a Labeled roll; everything else parses as a Simple roll. Each expression
// must consume its whole segment, so trailing garbage is a *ParseError.
func Parse(input string) (Kind, error) {
	if strings.TrimSpace(input) == "" {
		return nil, &ParseError{Input: input, Msg: "empty expression"}
	}
	if strings.Contains(input, ";") {
		raw := strings.Split(input, ";")
		parts := make([]Kind, 0, len(raw))
		base := 0
		for _, segment := range raw {
			part, err := parseUnit(input, segment, base)
			if err != nil {
				return nil, err
			}
			parts = append(parts, part)
			base += len(segment) + 1
		}
		return Separated{Parts: parts}, nil
	}
	return parseUnit(input, input, 0)
}

// parseUnit parses one segment of input as either a labeled or a simple roll.
// The first ':' splits label from expression; a segment without one is simple.
// base is the segment's byte offset within the full input.
func parseUnit(input, segment string, base int) (Kind, error) {
	if i := strings.Index(segment, ":"); i >= 0 {
		label := strings.TrimSpace(segment[:i])
		if label == "" {
			return nil, &ParseError{Input: input, Offset: base, Msg: "empty label"}
		}
		e, err := parseFull(input, segment[i+1:], base+i+1)
		if err != nil {
			return nil, err
		}
		return Labeled{Label: label, Expr: e}, nil
	}
	e, err := parseFull(input, segment, base)
	if err != nil {
		return nil, err
	}
	return Simple{Expr: e}, nil
}

// parseFull parses segment as a single expression and requires that nothing
// but whitespace remains afterwards.
func parseFull(input, segment string, base int) (Expr, error) {
	p := &parser{input: input, s: segment, base: base}
	p.skipSpaces()
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos != len(p.s) {
		return nil, p.errAt(p.pos, fmt.Sprintf("unexpected trailing input %q", p.s[p.pos:]))
	}
	return e, nil
}

// parser is a cursor over one segment of the input.
type parser struct {
	input string // the full original input, for error reporting
	s     string // the segment being parsed
	base  int    // byte offset of the segment within input
	pos   int
}

// errAt builds a ParseError pointing at offset off within the current
// segment, reported relative to the full input.
func (p *parser) errAt(off int, msg string) *ParseError {
	return &ParseError{Input: p.input, Offset: p.base + off, Msg: msg}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.s) && isSpace(p.s[p.pos]) {
		p.pos++
	}
}

// digits consumes a run of ASCII digits and returns it.
func (p *parser) digits() string {
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}
	return p.s[start:p.pos]
}

// parseExpr parses a constant optionally followed by an operator and another
// expression. Chains associate to the right, so "1 + 2 + 3" is 1 + (2 + 3).
func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseConstant()
	if err != nil {
		return nil, err
	}
	mark := p.pos
	p.skipSpaces()
	op, ok := p.parseOperator()
	if !ok {
		p.pos = mark
		return left, nil
	}
	p.skipSpaces()
	right, err := p.parseExpr()
	if err != nil {
		p.pos = mark
		return left, nil
	}
	return Application{Op: op, Left: left, Right: right}, nil
}

func (p *parser) parseConstant() (Expr, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	return Constant{Atom: atom}, nil
}

// parseAtom parses a single token. Dice notation is tried before numbers so
// the quantity digits of "2d6" are not mistaken for a bare 2.
func (p *parser) parseAtom() (Atom, error) {
	a, ok, err := p.parseDice()
	if err != nil {
		return nil, err
	}
	if ok {
		return a, nil
	}
	a, ok, err = p.parseNumber()
	if err != nil {
		return nil, err
	}
	if ok {
		return a, nil
	}
	if op, ok := p.parseOperator(); ok {
		return OperatorAtom{Op: op}, nil
	}
	return nil, p.errAt(p.pos, fmt.Sprintf("expected dice, number, or operator at %q", p.s[p.pos:]))
}

// parseDice parses dice notation with optional modifier suffixes, e.g.
// "2d6", "d20", "4d6kh3dl1". The quantity defaults to 1 when omitted.
// Returns ok=false without advancing when the cursor is not at dice.
func (p *parser) parseDice() (Atom, bool, error) {
	start := p.pos

	qtyDigits := p.digits()
	if p.pos >= len(p.s) || (p.s[p.pos] != 'd' && p.s[p.pos] != 'D') {
		p.pos = start
		return nil, false, nil
	}
	p.pos++

	sidesDigits := p.digits()
	if sidesDigits == "" {
		p.pos = start
		return nil, false, nil
	}

	quantity := 1
	if qtyDigits != "" {
		q, err := strconv.ParseUint(qtyDigits, 10, 32)
		if err != nil {
			return nil, false, p.errAt(start, fmt.Sprintf("die quantity %q is out of range", qtyDigits))
		}
		quantity = int(q)
	}
	sides, err := strconv.ParseUint(sidesDigits, 10, 32)
	if err != nil {
		return nil, false, p.errAt(start, fmt.Sprintf("die sides %q is out of range", sidesDigits))
	}
	if sides < 1 {
		return nil, false, p.errAt(start, "a die needs at least one side")
	}

	mods, err := p.parseModifiers()
	if err != nil {
		return nil, false, err
	}
	return DiceAtom{Dice: dice.MustNew(quantity, int(sides)), Modifiers: mods}, true, nil
}

// parseModifiers consumes the modifier suffixes directly behind a die.
func (p *parser) parseModifiers() ([]dice.Modifier, error) {
	var mods []dice.Modifier
	for {
		m, ok, err := p.parseModifier()
		if err != nil {
			return nil, err
		}
		if !ok {
			return mods, nil
		}
		mods = append(mods, m)
	}
}

// parseModifier parses one keep or drop suffix: kh, kl, dh, dl, or the bare
// k shorthand for kh, each followed by a count. A lone 'd' never starts a
// modifier, which keeps notations like "3d5d8" from half-parsing as a drop.
func (p *parser) parseModifier() (dice.Modifier, bool, error) {
	start := p.pos
	rest := p.s[p.pos:]

	var build func(n int) dice.Modifier
	switch {
	case hasFold(rest, "kh"):
		build = func(n int) dice.Modifier { return dice.KeepHighest(n) }
		p.pos += 2
	case hasFold(rest, "kl"):
		build = func(n int) dice.Modifier { return dice.KeepLowest(n) }
		p.pos += 2
	case hasFold(rest, "dh"):
		build = func(n int) dice.Modifier { return dice.DropHighest(n) }
		p.pos += 2
	case hasFold(rest, "dl"):
		build = func(n int) dice.Modifier { return dice.DropLowest(n) }
		p.pos += 2
	case hasFold(rest, "k"):
		build = func(n int) dice.Modifier { return dice.KeepHighest(n) }
		p.pos++
	default:
		return nil, false, nil
	}

	ds := p.digits()
	if ds == "" {
		p.pos = start
		return nil, false, nil
	}
	n, err := strconv.Atoi(ds)
	if err != nil {
		return nil, false, p.errAt(start, fmt.Sprintf("modifier count %q is out of range", ds))
	}
	return build(n), true, nil
}

// parseNumber parses an integer, possibly negative. Returns ok=false without
// advancing when the cursor is not at a number.
func (p *parser) parseNumber() (Atom, bool, error) {
	start := p.pos
	if p.pos < len(p.s) && p.s[p.pos] == '-' {
		p.pos++
	}
	if p.digits() == "" {
		p.pos = start
		return nil, false, nil
	}
	v, err := strconv.Atoi(p.s[start:p.pos])
	if err != nil {
		return nil, false, p.errAt(start, fmt.Sprintf("number %q is out of range", p.s[start:p.pos]))
	}
	return NumberAtom{Value: v}, true, nil
}

// parseOperator parses a single + or -.
func (p *parser) parseOperator() (Operator, bool) {
	if p.pos >= len(p.s) {
		return 0, false
	}
	switch p.s[p.pos] {
	case '+':
		p.pos++
		return Add, true
	case '-':
		p.pos++
		return Sub, true
	}
	return 0, false
}

// hasFold reports whether s starts with prefix, ignoring case.
func hasFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
