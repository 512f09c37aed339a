package calcexpr

import "strings"

// Expr is an editable sequence of tokens. The zero value is an empty buffer
// ready to use. An Expr owns its literals exclusively; operators and
// pre-evaluated tokens are immutable and may be shared between buffers.
//
// An Expr is not safe for concurrent use. To evaluate an expression while it
// may be edited, evaluate a Clone.
type Expr struct {
	tokens []Token
}

// Len returns the number of tokens in the buffer.
func (e *Expr) Len() int {
	return len(e.tokens)
}

// Token returns the token at index i. The returned token must not be
// modified.
func (e *Expr) Token(i int) Token {
	return e.tokens[i]
}

// IsEmpty reports whether the buffer has no tokens.
func (e *Expr) IsEmpty() bool {
	return len(e.tokens) == 0
}

// last returns the final token, or nil if the buffer is empty.
func (e *Expr) last() Token {
	if len(e.tokens) == 0 {
		return nil
	}
	return e.tokens[len(e.tokens)-1]
}

// isOp reports whether the token at i is the operator k.
func (e *Expr) isOp(i int, k Key) bool {
	op, ok := e.tokens[i].(Operator)
	return ok && Key(op) == k
}

// Add appends a key press to the buffer. It reports false without modifying
// the buffer if the key could not start or continue a valid expression:
//
//   - a binary operator other than − on an empty buffer;
//   - a binary operator after a binary operator, except − after an operator
//     other than −;
//   - a digit or decimal point after π, e, !, ), or a pre-evaluated value;
//   - a second decimal point in the same number;
//   - an invalid key.
func (e *Expr) Add(k Key) bool {
	if !k.Valid() {
		return false
	}
	n := len(e.tokens)
	if k.IsBinary() {
		if n == 0 && k != OpSub {
			return false
		}
		if e.hasTrailingBinary() && (k != OpSub || e.isOp(n-1, OpSub)) {
			return false
		}
	}
	if !k.literalKey() {
		e.tokens = append(e.tokens, Operator(k))
		return true
	}
	switch t := e.last().(type) {
	case *Literal:
		return t.Add(k)
	case *PreEval:
		return false
	case Operator:
		switch Key(t) {
		case ConstPi, ConstE, OpFact, RParen:
			return false
		}
	}
	l := new(Literal)
	l.Add(k)
	e.tokens = append(e.tokens, l)
	return true
}

func (e *Expr) hasTrailingBinary() bool {
	op, ok := e.last().(Operator)
	return ok && Key(op).IsBinary()
}

// Append appends the tokens of other to e. If both are nonempty and neither
// token at the boundary is an operator, a × is inserted between them so that
// the result does not read as a single number. other is not modified.
func (e *Expr) Append(other *Expr) {
	if len(e.tokens) != 0 && len(other.tokens) != 0 {
		_, lop := e.last().(Operator)
		_, fop := other.tokens[0].(Operator)
		if !lop && !fop {
			e.tokens = append(e.tokens, Operator(OpMul))
		}
	}
	for _, t := range other.tokens {
		e.tokens = append(e.tokens, cloneToken(t))
	}
}

// Delete removes the last character typed. Within a number, this removes one
// digit or the decimal point, and the number is removed once nothing is left
// of it. Otherwise the whole final token is removed. Delete does nothing on
// an empty buffer.
func (e *Expr) Delete() {
	n := len(e.tokens)
	if n == 0 {
		return
	}
	if l, ok := e.tokens[n-1].(*Literal); ok {
		l.Delete()
		if !l.IsEmpty() {
			return
		}
	}
	e.tokens[n-1] = nil
	e.tokens = e.tokens[:n-1]
}

// Clear removes all tokens.
func (e *Expr) Clear() {
	e.tokens = nil
}

// Clone returns a copy of the buffer that shares no literals with e.
func (e *Expr) Clone() *Expr {
	if len(e.tokens) == 0 {
		return new(Expr)
	}
	r := Expr{tokens: make([]Token, len(e.tokens))}
	for i, t := range e.tokens {
		r.tokens[i] = cloneToken(t)
	}
	return &r
}

func cloneToken(t Token) Token {
	if l, ok := t.(*Literal); ok {
		return l.clone()
	}
	return t
}

// IsConstant reports whether the buffer is exactly one number.
func (e *Expr) IsConstant() bool {
	if len(e.tokens) != 1 {
		return false
	}
	_, ok := e.tokens[0].(*Literal)
	return ok
}

// Abbreviate returns a new buffer containing a single pre-evaluated token
// which wraps a copy of e. v must be the result of evaluating all of e with
// the given degree mode, and short its display text; Abbreviate does not
// check either.
func (e *Expr) Abbreviate(v Value, degrees bool, short string) *Expr {
	p := &PreEval{
		value:   v,
		expr:    e.Clone(),
		degrees: degrees,
		short:   short,
	}
	return &Expr{tokens: []Token{p}}
}

// TrailingOperatorsStart returns the index of the start of the run of
// operators at the end of the buffer which cannot end an expression. Suffix
// operators and constants can end an expression.
func (e *Expr) TrailingOperatorsStart() int {
	r := len(e.tokens)
	for r > 0 {
		op, ok := e.tokens[r-1].(Operator)
		if !ok {
			break
		}
		if k := Key(op); k.IsSuffix() || k.IsConst() {
			break
		}
		r--
	}
	return r
}

// HasTrailingOperators reports whether the buffer ends with operators that
// cannot end an expression.
func (e *Expr) HasTrailingOperators() bool {
	return e.TrailingOperatorsStart() != len(e.tokens)
}

// HasInterestingOps reports whether evaluating the buffer could give anything
// other than the number as typed. It is false when the buffer, ignoring
// trailing operators and one leading −, is only a number.
func (e *Expr) HasInterestingOps() bool {
	last := e.TrailingOperatorsStart()
	first := 0
	if last > first && e.isOp(first, OpSub) {
		first++
	}
	for _, t := range e.tokens[first:last] {
		if _, ok := t.(*Literal); !ok {
			return true
		}
	}
	return false
}

// String returns the non-localized display text of the buffer.
func (e *Expr) String() string {
	return e.Format(PlainFormatter)
}

// Format returns the display text of the buffer as rendered by f.
func (e *Expr) Format(f Formatter) string {
	var b strings.Builder
	for _, t := range e.tokens {
		switch t := t.(type) {
		case *Literal:
			b.WriteString(f.Localize(t.String()))
		case Operator:
			b.WriteString(f.KeyText(Key(t)))
		case *PreEval:
			b.WriteString(f.Localize(t.short))
		}
	}
	return b.String()
}
