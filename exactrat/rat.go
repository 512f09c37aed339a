// Package exactrat implements bounded exact rational arithmetic.
//
// Values are *big.Rat that are never modified once returned. A nil value
// means "not known exactly": the true value is irrational, has no closed form
// the package recognizes, or needs more than MaxBits bits. Every function
// accepts nil arguments and propagates them, so callers can try the exact
// computation first and fall back to approximate arithmetic when the result
// is nil.
//
// Functions that can fail return an error only when the arguments are known
// exactly and lie outside the operation's domain, such as a division by an
// exact zero.
package exactrat

import (
	"math/big"

	"github.com/zephyrtronium/calcexpr/lazyreal"
)

// MaxBits is the largest combined size in bits of the numerator and
// denominator of a result. Larger results are reported as nil.
const MaxBits = 10000

// bounded returns r, or nil if r is too large.
func bounded(r *big.Rat) *big.Rat {
	if r.Num().BitLen()+r.Denom().BitLen() > MaxBits {
		return nil
	}
	return r
}

// Real converts x to a real. The result is nil if x is nil.
func Real(x *big.Rat) *lazyreal.Real {
	if x == nil {
		return nil
	}
	return lazyreal.FromRat(x)
}

// Int returns x as an integer, or nil if x is nil or not an integer.
func Int(x *big.Rat) *big.Int {
	if x == nil || !x.IsInt() {
		return nil
	}
	return new(big.Int).Set(x.Num())
}

// Add returns x+y.
func Add(x, y *big.Rat) *big.Rat {
	if x == nil || y == nil {
		return nil
	}
	return bounded(new(big.Rat).Add(x, y))
}

// Sub returns x-y.
func Sub(x, y *big.Rat) *big.Rat {
	if x == nil || y == nil {
		return nil
	}
	return bounded(new(big.Rat).Sub(x, y))
}

// Mul returns x×y.
func Mul(x, y *big.Rat) *big.Rat {
	if x == nil || y == nil {
		return nil
	}
	return bounded(new(big.Rat).Mul(x, y))
}

// Neg returns -x.
func Neg(x *big.Rat) *big.Rat {
	if x == nil {
		return nil
	}
	return new(big.Rat).Neg(x)
}

// Quo returns x÷y. Division by an exact zero is an error even if x is nil.
func Quo(x, y *big.Rat) (*big.Rat, error) {
	if y != nil && y.Sign() == 0 {
		return nil, &DomainError{Func: "÷", Reason: "division by zero"}
	}
	if x == nil || y == nil {
		return nil, nil
	}
	return bounded(new(big.Rat).Quo(x, y)), nil
}

// Pow returns x^y when the result is rational. Integer exponents are
// supported for every base, and exponents with denominator 2 for perfect
// squares.
func Pow(x, y *big.Rat) (*big.Rat, error) {
	if x == nil || y == nil {
		return nil, nil
	}
	if x.Sign() == 0 {
		switch y.Sign() {
		case -1:
			return nil, &DomainError{Func: "^", Reason: "division by zero"}
		case 0:
			return big.NewRat(1, 1), nil
		default:
			return new(big.Rat), nil
		}
	}
	if x.Cmp(ratOne) == 0 {
		return big.NewRat(1, 1), nil
	}
	if !y.IsInt() {
		if y.Denom().Cmp(big.NewInt(2)) != 0 {
			return nil, nil
		}
		r, err := Sqrt(x)
		if r == nil || err != nil {
			// Negative bases are left to the caller's fallback.
			return nil, nil
		}
		return Pow(r, new(big.Rat).SetInt(y.Num()))
	}
	n := y.Num()
	if !n.IsInt64() {
		if x.Cmp(ratMinusOne) == 0 {
			return big.NewRat(int64(1-2*int(n.Bit(0))), 1), nil
		}
		return nil, nil
	}
	e := n.Int64()
	neg := e < 0
	if neg {
		e = -e
	}
	if e > MaxBits || int64(x.Num().BitLen()+x.Denom().BitLen()-2)*e > MaxBits {
		if x.Cmp(ratMinusOne) == 0 {
			return big.NewRat(int64(1-2*(e&1)), 1), nil
		}
		return nil, nil
	}
	k := big.NewInt(e)
	p := new(big.Int).Exp(x.Num(), k, nil)
	q := new(big.Int).Exp(x.Denom(), k, nil)
	if neg {
		p, q = q, p
	}
	return bounded(new(big.Rat).SetFrac(p, q)), nil
}

// maxFact is the largest argument whose factorial Fact computes. 1100! is
// around MaxBits bits.
const maxFact = 1100

// Fact returns x!. x must be a non-negative integer.
func Fact(x *big.Rat) (*big.Rat, error) {
	if x == nil {
		return nil, nil
	}
	if !x.IsInt() {
		return nil, &DomainError{Func: "!", Reason: "factorial of non-integer"}
	}
	if x.Sign() < 0 {
		return nil, &DomainError{Func: "!", Reason: "factorial of negative number"}
	}
	n := x.Num()
	if !n.IsInt64() || n.Int64() > maxFact {
		return nil, nil
	}
	if n.Int64() < 2 {
		return big.NewRat(1, 1), nil
	}
	return bounded(new(big.Rat).SetInt(new(big.Int).MulRange(1, n.Int64()))), nil
}

// Sqrt returns the square root of x if x is the square of a rational.
func Sqrt(x *big.Rat) (*big.Rat, error) {
	if x == nil {
		return nil, nil
	}
	if x.Sign() < 0 {
		return nil, &DomainError{Func: "√", Reason: "square root of negative number"}
	}
	p := isqrt(x.Num())
	q := isqrt(x.Denom())
	if p == nil || q == nil {
		return nil, nil
	}
	return new(big.Rat).SetFrac(p, q), nil
}

// isqrt returns the square root of n if n is a perfect square, else nil.
func isqrt(n *big.Int) *big.Int {
	r := new(big.Int).Sqrt(n)
	if new(big.Int).Mul(r, r).Cmp(n) != 0 {
		return nil
	}
	return r
}

// Ln returns the natural logarithm of x when it is rational, which happens
// only for x = 1.
func Ln(x *big.Rat) (*big.Rat, error) {
	if x == nil {
		return nil, nil
	}
	if x.Sign() <= 0 {
		return nil, &DomainError{Func: "ln", Reason: "logarithm of non-positive number"}
	}
	if x.Cmp(ratOne) == 0 {
		return new(big.Rat), nil
	}
	return nil, nil
}

// Log returns the base-10 logarithm of x when x is an integer power of ten.
func Log(x *big.Rat) (*big.Rat, error) {
	if x == nil {
		return nil, nil
	}
	if x.Sign() <= 0 {
		return nil, &DomainError{Func: "log", Reason: "logarithm of non-positive number"}
	}
	if k, ok := powerOfTen(x.Num()); ok && x.Denom().IsInt64() && x.Denom().Int64() == 1 {
		return big.NewRat(int64(k), 1), nil
	}
	if k, ok := powerOfTen(x.Denom()); ok && x.Num().IsInt64() && x.Num().Int64() == 1 {
		return big.NewRat(-int64(k), 1), nil
	}
	return nil, nil
}

// powerOfTen reports whether n = 10^k for some k >= 0.
func powerOfTen(n *big.Int) (int, bool) {
	if n.Sign() <= 0 {
		return 0, false
	}
	s := n.String()
	if s[0] != '1' {
		return 0, false
	}
	for _, c := range s[1:] {
		if c != '0' {
			return 0, false
		}
	}
	return len(s) - 1, true
}

// Exp returns e^x when it is rational, which happens only for x = 0.
func Exp(x *big.Rat) (*big.Rat, error) {
	if x == nil || x.Sign() != 0 {
		return nil, nil
	}
	return big.NewRat(1, 1), nil
}

var (
	ratOne      = big.NewRat(1, 1)
	ratMinusOne = big.NewRat(-1, 1)
)

// DomainError is an error returned when a function is applied to an exact
// argument outside its domain.
type DomainError struct {
	// Func names the function.
	Func string
	// Reason describes the violation.
	Reason string
}

func (err *DomainError) Error() string {
	return err.Func + ": " + err.Reason
}
