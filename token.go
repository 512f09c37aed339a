package calcexpr

import (
	"math/big"
	"strings"
)

// Token is an element of an expression buffer. The concrete types are
// *Literal, Operator, and *PreEval.
type Token interface {
	// String returns the non-localized display text of the token.
	String() string

	kind() tokenKind
}

// tokenKind identifies the variant of a token. Its values are the tags of the
// serialization format.
type tokenKind byte

const (
	tokenLiteral tokenKind = iota
	tokenOperator
	tokenPreEval
)

// Literal is a number under construction. Only the expression buffer which
// owns a literal modifies it.
type Literal struct {
	whole string
	frac  string
	point bool
}

func (*Literal) kind() tokenKind { return tokenLiteral }

// Add appends a digit or decimal point to the literal. It reports false
// without modifying the literal if k is a second decimal point or is not a
// digit or decimal point.
func (l *Literal) Add(k Key) bool {
	if k == DecPoint {
		if l.point {
			return false
		}
		l.point = true
		return true
	}
	if _, ok := k.Digit(); !ok {
		return false
	}
	if l.point {
		l.frac += k.String()
	} else {
		l.whole += k.String()
	}
	return true
}

// Delete removes the last character typed into the literal. Panics if the
// literal is empty.
func (l *Literal) Delete() {
	switch {
	case l.frac != "":
		l.frac = l.frac[:len(l.frac)-1]
	case l.point:
		l.point = false
	case l.whole != "":
		l.whole = l.whole[:len(l.whole)-1]
	default:
		panic("calcexpr: Delete on empty literal")
	}
}

// IsEmpty reports whether nothing has been typed into the literal.
func (l *Literal) IsEmpty() bool {
	return !l.point && l.whole == ""
}

// Canonical returns the literal in the form [0-9]+(\.[0-9]*)?, with a zero
// integer part if none was typed.
func (l *Literal) Canonical() string {
	var b strings.Builder
	if l.whole == "" {
		b.WriteByte('0')
	} else {
		b.WriteString(l.whole)
	}
	if l.point {
		b.WriteByte('.')
		b.WriteString(l.frac)
	}
	return b.String()
}

// Rat returns the exact value of the canonical form of the literal.
func (l *Literal) Rat() *big.Rat {
	whole, frac, _ := strings.Cut(l.Canonical(), ".")
	var n, d big.Int
	n.SetString(whole+frac, 10)
	d.Exp(big.NewInt(10), big.NewInt(int64(len(frac))), nil)
	return new(big.Rat).SetFrac(&n, &d)
}

// String returns the literal as typed.
func (l *Literal) String() string {
	if l.point {
		return l.whole + "." + l.frac
	}
	return l.whole
}

func (l *Literal) clone() *Literal {
	c := *l
	return &c
}

// Operator is a token for any key other than digits and the decimal point.
type Operator Key

func (Operator) kind() tokenKind { return tokenOperator }

// String returns the display text of the operator's key.
func (o Operator) String() string {
	return Key(o).String()
}

// PreEval is an evaluated expression collapsed into a single token. It holds
// the buffer it was computed from along with the value and the settings used
// to compute it, so evaluating an expression that contains it never
// re-evaluates the nested buffer.
type PreEval struct {
	value   Value
	expr    *Expr
	degrees bool
	short   string
}

func (*PreEval) kind() tokenKind { return tokenPreEval }

// Value returns the cached value.
func (p *PreEval) Value() Value {
	return p.value
}

// Expr returns a copy of the buffer the value was computed from.
func (p *PreEval) Expr() *Expr {
	return p.expr.Clone()
}

// DegreeMode reports whether trigonometric functions used degrees when the
// value was computed.
func (p *PreEval) DegreeMode() bool {
	return p.degrees
}

// Short returns the abbreviated display text of the value.
func (p *PreEval) Short() string {
	return p.short
}

// String returns the short text.
func (p *PreEval) String() string {
	return p.short
}

// Formatter renders tokens for display.
type Formatter interface {
	// KeyText returns the display text of an operator key.
	KeyText(Key) string
	// Localize converts a non-localized number string, containing ASCII
	// digits, '.', '-', and possibly an exponent, into display form.
	Localize(string) string
}

type plainFormatter struct{}

func (plainFormatter) KeyText(k Key) string     { return k.String() }
func (plainFormatter) Localize(s string) string { return s }

// PlainFormatter is the Formatter which renders tokens without localization.
var PlainFormatter Formatter = plainFormatter{}

var (
	_ Token = (*Literal)(nil)
	_ Token = Operator(0)
	_ Token = (*PreEval)(nil)
)
