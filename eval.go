package calcexpr

import (
	"math/big"
	"strconv"

	"github.com/zephyrtronium/calcexpr/exactrat"
	"github.com/zephyrtronium/calcexpr/lazyreal"
)

// Expr = Term { ('+'|'−') Term }
// Term = SignedFactor { ('×'|'÷') SignedFactor | SignedFactor }
// SignedFactor = ['−'] Factor
// Factor = Suffix [ '^' SignedFactor ]
// Suffix = Unary { '!' | '²' | '%' }
// Unary = num | preeval | 'π' | 'e' | '√' ['−'] Unary | '(' Expr [')'] | func Expr [')']
//
// A close paren may be omitted at the end of the evaluated prefix.

// Value is the result of evaluating an expression. Real is always set. Rat is
// the exact value when it is known, in which case Real is computed from it.
// Neither is modified after evaluation.
type Value struct {
	Real *lazyreal.Real
	Rat  *big.Rat
}

// ratValue creates a value from an exact rational.
func ratValue(r *big.Rat) Value {
	return Value{Real: exactrat.Real(r), Rat: r}
}

// combine returns the exact value r if it is known, otherwise the value
// computed by real.
func combine(r *big.Rat, real func() *lazyreal.Real) Value {
	if r != nil {
		return ratValue(r)
	}
	return Value{Real: real()}
}

// IsExact reports whether the exact rational value is known.
func (v Value) IsExact() bool {
	return v.Rat != nil
}

// String formats the exact value as a fraction if it is known, otherwise the
// real value to 20 significant digits.
func (v Value) String() string {
	if v.Rat != nil {
		return v.Rat.RatString()
	}
	if v.Real == nil {
		return "<nil>"
	}
	return v.Real.String()
}

func (v Value) neg() Value {
	return combine(exactrat.Neg(v.Rat), v.Real.Neg)
}

func (v Value) add(w Value) Value {
	return combine(exactrat.Add(v.Rat, w.Rat), func() *lazyreal.Real { return v.Real.Add(w.Real) })
}

func (v Value) sub(w Value) Value {
	return combine(exactrat.Sub(v.Rat, w.Rat), func() *lazyreal.Real { return v.Real.Sub(w.Real) })
}

func (v Value) mul(w Value) Value {
	return combine(exactrat.Mul(v.Rat, w.Rat), func() *lazyreal.Real { return v.Real.Mul(w.Real) })
}

func (v Value) quo(w Value) (Value, error) {
	r, err := exactrat.Quo(v.Rat, w.Rat)
	if err != nil {
		return Value{}, &ArithmeticError{Op: OpDiv.String(), Err: err}
	}
	return combine(r, func() *lazyreal.Real { return v.Real.Quo(w.Real) }), nil
}

var (
	ratHundredth  = big.NewRat(1, 100)
	realHundredth = lazyreal.FromRat(ratHundredth)
)

func (v Value) pct() Value {
	return combine(exactrat.Mul(v.Rat, ratHundredth), func() *lazyreal.Real { return v.Real.Mul(realHundredth) })
}

// factTolerance is the number of bits after the binary point to which a value
// without a known exact form must match an integer to have a factorial.
const factTolerance = 100

func (v Value) fact() (Value, error) {
	op := OpFact.String()
	r := v.Rat
	if r == nil {
		n, ok, err := v.Real.NearInt(factTolerance)
		if err != nil {
			return Value{}, &ArithmeticError{Op: op, Err: err}
		}
		if !ok {
			return Value{}, &ArithmeticError{Op: op, Err: &lazyreal.DomainError{Func: op, Reason: "factorial of non-integer"}}
		}
		r = new(big.Rat).SetInt(n)
	}
	f, err := exactrat.Fact(r)
	if err != nil {
		return Value{}, &ArithmeticError{Op: op, Err: err}
	}
	if f != nil {
		return ratValue(f), nil
	}
	n := r.Num()
	if !n.IsInt64() {
		return Value{}, &ArithmeticError{Op: op, Err: &lazyreal.DomainError{Func: op, Reason: "argument too large"}}
	}
	return Value{Real: lazyreal.Fact(n.Int64())}, nil
}

func (v Value) pow(w Value) (Value, error) {
	r, err := exactrat.Pow(v.Rat, w.Rat)
	if err != nil {
		return Value{}, &ArithmeticError{Op: OpPow.String(), Err: err}
	}
	if r != nil {
		return ratValue(r), nil
	}
	// Integer powers are defined for negative bases, but only if we know the
	// exponent is exactly an integer.
	if n := exactrat.Int(w.Rat); n != nil {
		return Value{Real: pow(v.Real, n)}, nil
	}
	return Value{Real: v.Real.Pow(w.Real)}, nil
}

// pow computes an integer power by repeated squaring.
func pow(base *lazyreal.Real, exp *big.Int) *lazyreal.Real {
	switch {
	case exp.Sign() < 0:
		return pow(base, new(big.Int).Neg(exp)).Inverse()
	case exp.Sign() == 0:
		return lazyreal.One()
	case exp.Bit(0) == 1:
		if exp.BitLen() == 1 {
			return base
		}
		return pow(base, new(big.Int).Sub(exp, big.NewInt(1))).Mul(base)
	}
	t := pow(base, new(big.Int).Rsh(exp, 1))
	return t.Mul(t)
}

// evaluator walks a token sequence. Each rule takes the position of its first
// token and returns the position following the last token it used.
type evaluator struct {
	tokens []Token
	// degrees indicates that trigonometric functions use degrees.
	degrees bool
	// prefix is the number of tokens that participate in evaluation.
	prefix int
}

// Eval evaluates the expression. If required is false, the trailing run of
// operators which cannot end an expression is ignored, so that a partial
// expression like "2+3×" evaluates to 5. Otherwise every token must be used.
// degrees sets whether trigonometric functions use degrees or radians.
//
// The real part of the result is computed lazily, so some arithmetic errors,
// such as division by a computed zero, are reported only when the value is
// approximated. The exception is the factorial of a value without an exact
// form, which must be approximated during Eval to check that it is an
// integer. For huge arguments like (π^5000000)! that can take seconds, so
// interactive callers should evaluate off their input loop. Eval does not
// modify e.
func (e *Expr) Eval(degrees, required bool) (Value, error) {
	prefix := len(e.tokens)
	if !required {
		prefix = e.TrailingOperatorsStart()
	}
	return e.eval(degrees, prefix)
}

func (e *Expr) eval(degrees bool, prefix int) (Value, error) {
	ev := evaluator{tokens: e.tokens, degrees: degrees, prefix: prefix}
	j, v, err := ev.expr(0)
	if err != nil {
		return Value{}, err
	}
	if j != prefix {
		return Value{}, ev.unexpected(j)
	}
	return v, nil
}

// isOp reports whether the token at i is within the prefix and is the operator
// k.
func (ev *evaluator) isOp(i int, k Key) bool {
	if i >= ev.prefix {
		return false
	}
	op, ok := ev.tokens[i].(Operator)
	return ok && Key(op) == k
}

// canStartFactor reports whether the token at i can begin an implicit
// multiplication.
func (ev *evaluator) canStartFactor(i int) bool {
	if i >= ev.prefix {
		return false
	}
	op, ok := ev.tokens[i].(Operator)
	if !ok {
		return true
	}
	k := Key(op)
	return !k.IsBinary() && !k.IsSuffix() && k != RParen
}

func (ev *evaluator) unexpected(i int) error {
	if i >= ev.prefix {
		return &SyntaxError{Col: i, Msg: "unexpected end of expression"}
	}
	return &SyntaxError{Col: i, Msg: "unexpected " + strconv.Quote(ev.tokens[i].String())}
}

// close skips an optional close paren.
func (ev *evaluator) close(i int) int {
	if ev.isOp(i, RParen) {
		return i + 1
	}
	return i
}

func (ev *evaluator) expr(i int) (int, Value, error) {
	j, v, err := ev.term(i)
	for err == nil {
		add := ev.isOp(j, OpAdd)
		if !add && !ev.isOp(j, OpSub) {
			break
		}
		var w Value
		j, w, err = ev.term(j + 1)
		if err != nil {
			break
		}
		if add {
			v = v.add(w)
		} else {
			v = v.sub(w)
		}
	}
	return j, v, err
}

func (ev *evaluator) term(i int) (int, Value, error) {
	j, v, err := ev.signedFactor(i)
	for err == nil {
		mul, div := ev.isOp(j, OpMul), ev.isOp(j, OpDiv)
		if !mul && !div && !ev.canStartFactor(j) {
			break
		}
		if mul || div {
			j++
		}
		var w Value
		j, w, err = ev.signedFactor(j)
		if err != nil {
			break
		}
		if div {
			v, err = v.quo(w)
		} else {
			v = v.mul(w)
		}
	}
	return j, v, err
}

func (ev *evaluator) signedFactor(i int) (int, Value, error) {
	neg := ev.isOp(i, OpSub)
	if neg {
		i++
	}
	j, v, err := ev.factor(i)
	if err != nil || !neg {
		return j, v, err
	}
	return j, v.neg(), nil
}

func (ev *evaluator) factor(i int) (int, Value, error) {
	j, v, err := ev.suffix(i)
	if err != nil || !ev.isOp(j, OpPow) {
		return j, v, err
	}
	j, w, err := ev.signedFactor(j + 1)
	if err != nil {
		return j, Value{}, err
	}
	v, err = v.pow(w)
	return j, v, err
}

func (ev *evaluator) suffix(i int) (int, Value, error) {
	j, v, err := ev.unary(i)
	for err == nil {
		switch {
		case ev.isOp(j, OpFact):
			v, err = v.fact()
		case ev.isOp(j, OpSqr):
			v = v.mul(v)
		case ev.isOp(j, OpPct):
			v = v.pct()
		default:
			return j, v, nil
		}
		j++
	}
	return j, v, err
}

func (ev *evaluator) unary(i int) (int, Value, error) {
	if i >= ev.prefix {
		return i, Value{}, ev.unexpected(i)
	}
	var k Key
	switch t := ev.tokens[i].(type) {
	case *Literal:
		return i + 1, ratValue(t.Rat()), nil
	case *PreEval:
		return i + 1, t.value, nil
	case Operator:
		k = Key(t)
	}
	switch {
	case k == ConstPi:
		return i + 1, Value{Real: lazyreal.Pi()}, nil
	case k == ConstE:
		return i + 1, Value{Real: lazyreal.E()}, nil
	case k == OpSqrt:
		// √ binds tighter than anything else and accepts a leading minus.
		neg := ev.isOp(i+1, OpSub)
		j := i + 1
		if neg {
			j++
		}
		j, v, err := ev.unary(j)
		if err != nil {
			return j, Value{}, err
		}
		if neg {
			v = v.neg()
		}
		r, err := exactrat.Sqrt(v.Rat)
		if err != nil {
			return j, Value{}, &ArithmeticError{Op: k.String(), Err: err}
		}
		return j, combine(r, v.Real.Sqrt), nil
	case k == LParen:
		j, v, err := ev.expr(i + 1)
		if err != nil {
			return j, Value{}, err
		}
		return ev.close(j), v, nil
	case k.IsFunc():
		j, v, err := ev.expr(i + 1)
		if err != nil {
			return j, Value{}, err
		}
		v, err = globalfuncs[k].call(k, v, ev.degrees)
		return ev.close(j), v, err
	}
	return i, Value{}, ev.unexpected(i)
}
