package calcexpr

import (
	"errors"
	"io"
	"math/big"
	"strconv"
)

// Calculator is an interactive calculation session. It holds the expression
// being edited and, after Equals, its result. Pressing an operator after a
// result continues from the result; pressing anything else starts over.
//
// A Calculator is not safe for concurrent use.
type Calculator struct {
	expr    *Expr
	degrees bool
	digits  int
	fmt     Formatter
	// res is the result of the expression, if the calculator is showing one.
	res *result
}

type result struct {
	value Value
	short string
}

// NewCalculator creates a calculator with an empty expression.
func NewCalculator(opts ...Option) *Calculator {
	c := Calculator{
		expr:   new(Expr),
		digits: DefaultDigits,
		fmt:    PlainFormatter,
	}
	c.apply(opts)
	return &c
}

// Press adds a key to the expression and reports whether it was accepted.
// If the calculator is showing a result, a binary or suffix operator first
// replaces the expression with its collapsed result, and any other key first
// clears the expression.
func (c *Calculator) Press(k Key) bool {
	if c.res != nil {
		if k.IsBinary() || k.IsSuffix() {
			c.collapse()
		} else {
			c.Clear()
		}
	}
	return c.expr.Add(k)
}

// Type presses the keys for s. It stops at the first key the expression
// rejects and returns a *KeyError, or a *ScanError if s contains anything not
// naming a key, in which case no keys are pressed.
func (c *Calculator) Type(s string) error {
	keys, err := ParseKeys(s)
	if err != nil {
		return err
	}
	for i, k := range keys {
		if !c.Press(k) {
			return &KeyError{Col: i + 1, Key: k}
		}
	}
	return nil
}

// Delete removes the last character of the expression. If the calculator is
// showing a result, it returns to editing the expression first.
func (c *Calculator) Delete() {
	c.res = nil
	c.expr.Delete()
}

// Clear empties the expression.
func (c *Calculator) Clear() {
	c.res = nil
	c.expr.Clear()
}

// Expr returns a copy of the current expression.
func (c *Calculator) Expr() *Expr {
	return c.expr.Clone()
}

// Text returns the display text of the current expression.
func (c *Calculator) Text() string {
	return c.expr.Format(c.fmt)
}

// DegreeMode reports whether trigonometric functions use degrees.
func (c *Calculator) DegreeMode() bool {
	return c.degrees
}

// SetDegreeMode sets whether trigonometric functions use degrees. If the
// calculator is showing a result, the result is collapsed first so that it
// keeps the value computed in the old mode.
func (c *Calculator) SetDegreeMode(degrees bool) {
	if c.res != nil && degrees != c.degrees {
		c.collapse()
	}
	c.degrees = degrees
}

// Preview evaluates the complete part of the expression for display while it
// is being edited. It reports false if the expression has nothing worth
// evaluating or cannot be evaluated.
func (c *Calculator) Preview() (string, bool) {
	if !c.expr.HasInterestingOps() {
		return "", false
	}
	v, err := c.expr.Eval(c.degrees, false)
	if err != nil {
		return "", false
	}
	s, err := c.Short(v)
	if err != nil {
		return "", false
	}
	return c.fmt.Localize(s), true
}

// Equals evaluates the whole expression. On success, the calculator shows
// the result. Arithmetic errors in approximating the result are returned as
// *ArithmeticError.
func (c *Calculator) Equals() (Value, error) {
	v, err := c.expr.Eval(c.degrees, true)
	if err != nil {
		return Value{}, err
	}
	s, err := c.Short(v)
	if err != nil {
		var ae *ArithmeticError
		if !errors.As(err, &ae) {
			err = &ArithmeticError{Err: err}
		}
		return Value{}, err
	}
	c.res = &result{value: v, short: s}
	return v, nil
}

// Result returns the result the calculator is showing, if any.
func (c *Calculator) Result() (Value, bool) {
	if c.res == nil {
		return Value{}, false
	}
	return c.res.value, true
}

// ResultText returns the display text of the result, or the empty string if
// the calculator is not showing a result.
func (c *Calculator) ResultText() string {
	if c.res == nil {
		return ""
	}
	return c.fmt.Localize(c.res.short)
}

// Fraction returns the exact result as a fraction p/q, or as an integer. It
// reports false if the calculator is not showing a result or the result is
// not known exactly.
func (c *Calculator) Fraction() (string, bool) {
	if c.res == nil || c.res.value.Rat == nil {
		return "", false
	}
	return c.res.value.Rat.RatString(), true
}

// Collapse replaces the expression with a single token holding its result,
// evaluating it first if needed.
func (c *Calculator) Collapse() error {
	if c.res == nil {
		if _, err := c.Equals(); err != nil {
			return err
		}
	}
	c.collapse()
	return nil
}

func (c *Calculator) collapse() {
	c.expr = c.expr.Abbreviate(c.res.value, c.degrees, c.res.short)
	c.res = nil
}

// Short formats v in non-localized form. Integers and terminating decimals
// with at most the calculator's digit count are exact; other values are
// rounded to that many significant digits.
func (c *Calculator) Short(v Value) (string, error) {
	if s, ok := exactText(v.Rat, c.digits); ok {
		return s, nil
	}
	return v.Real.Text(c.digits)
}

// exactText formats r as a decimal if it has at most digits significant
// digits.
func exactText(r *big.Rat, digits int) (string, bool) {
	if r == nil {
		return "", false
	}
	if r.IsInt() {
		s := r.Num().String()
		if n := len(s); n <= digits || n == digits+1 && s[0] == '-' {
			return s, true
		}
		return "", false
	}
	// A fraction terminates iff its denominator has no factors other than 2
	// and 5, and then needs as many decimal places as the larger exponent.
	d := new(big.Int).Set(r.Denom())
	places := 0
	for _, p := range [...]int64{2, 5} {
		k := 0
		q, m := new(big.Int), new(big.Int)
		bp := big.NewInt(p)
		for {
			q.QuoRem(d, bp, m)
			if m.Sign() != 0 {
				break
			}
			d.Set(q)
			k++
		}
		places = max(places, k)
	}
	if d.Cmp(big.NewInt(1)) != 0 || places > digits {
		return "", false
	}
	s := r.FloatString(places)
	n := 0
	lead := true
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] < '0' || '9' < s[i]:
		case lead && s[i] == '0':
		default:
			lead = false
			n++
		}
	}
	if n > digits {
		return "", false
	}
	return s, true
}

// saveVersion identifies the format of saved calculators.
const saveVersion = 1

const (
	saveDegrees = 1 << iota
	saveResult
)

// Save writes the calculator's expression and settings to w.
func (c *Calculator) Save(w io.Writer) error {
	var flags byte
	if c.degrees {
		flags |= saveDegrees
	}
	if c.res != nil {
		flags |= saveResult
	}
	if _, err := w.Write([]byte{saveVersion, flags}); err != nil {
		return &FormatError{Msg: "writing calculator", Err: err}
	}
	return NewEncoder(w).Encode(c.expr)
}

// Restore replaces the calculator's expression and degree mode with those
// read from r, which must have been written by Save. If the saved calculator
// was showing a result, the result is evaluated again. On error, the
// calculator is unchanged.
func (c *Calculator) Restore(r io.Reader) error {
	var hdr [2]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return &FormatError{Msg: "reading calculator", Err: err}
	}
	if hdr[0] != saveVersion {
		return &FormatError{Msg: "unknown calculator version " + strconv.Itoa(int(hdr[0]))}
	}
	e, err := NewDecoder(r).Decode()
	if err != nil {
		return err
	}
	n := *c
	n.expr = e
	n.degrees = hdr[1]&saveDegrees != 0
	n.res = nil
	if hdr[1]&saveResult != 0 {
		if _, err := n.Equals(); err != nil {
			return &FormatError{Msg: "evaluating saved result", Err: err}
		}
	}
	*c = n
	return nil
}
