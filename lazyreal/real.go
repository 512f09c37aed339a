// Package lazyreal implements lazily evaluated arbitrary-precision real
// numbers.
//
// A Real describes how to compute its value rather than holding one. Building
// an expression out of Reals does no arithmetic; work happens only when an
// approximation is requested with Approx or a method built on it, and each
// Real remembers the most precise approximation it has produced so far.
// Domain violations, like division by zero or the logarithm of a negative
// number, are therefore reported by materialization rather than by
// construction.
package lazyreal

import (
	"math"
	"math/big"
	"strconv"
	"sync"

	"github.com/zephyrtronium/bigfloat"
)

const (
	// guard is the number of extra bits computed by intermediate operations.
	guard = 32
	// maxExtra bounds the working precision added to recover bits lost to
	// cancellation, beyond the precision requested.
	maxExtra = 256
	// MaxPrec is the largest precision Approx will compute.
	MaxPrec = 1 << 24
)

// Real is a lazily evaluated real number. Reals are immutable and safe for
// concurrent use. Two Reals are the same value object only if they are the
// same pointer.
type Real struct {
	f func(prec uint) (*big.Float, error)

	mu   sync.Mutex
	prec uint
	val  *big.Float
	err  error
}

func newReal(f func(prec uint) (*big.Float, error)) *Real {
	return &Real{f: f}
}

// Approx returns an approximation of x rounded to prec bits of mantissa. The
// returned value is a new big.Float that the caller may modify.
func (x *Real) Approx(prec uint) (*big.Float, error) {
	if prec == 0 {
		prec = 1
	}
	if prec > MaxPrec {
		return nil, &DomainError{Func: "approx", Reason: "precision " + strconv.FormatUint(uint64(prec), 10) + " too large"}
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.err != nil {
		return nil, x.err
	}
	if x.val == nil || x.prec < prec {
		v, err := x.compute(prec)
		if err != nil {
			x.err = err
			return nil, err
		}
		x.val, x.prec = v, prec
	}
	return new(big.Float).SetPrec(prec).Set(x.val), nil
}

// compute calls x.f and turns arithmetic panics and overflow into errors.
func (x *Real) compute(prec uint) (r *big.Float, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		nan, ok := p.(big.ErrNaN)
		if !ok {
			panic(p)
		}
		r, err = nil, &DomainError{Func: "approx", Reason: nan.Error()}
	}()
	r, err = x.f(prec)
	if err != nil {
		return nil, err
	}
	if r.IsInf() {
		return nil, &DomainError{Func: "approx", Reason: "overflow"}
	}
	return r, nil
}

// FromRat returns the real value of r. r is copied.
func FromRat(r *big.Rat) *Real {
	r = new(big.Rat).Set(r)
	return newReal(func(prec uint) (*big.Float, error) {
		return new(big.Float).SetPrec(prec).SetRat(r), nil
	})
}

// FromInt returns the real value of i. i is copied.
func FromInt(i *big.Int) *Real {
	i = new(big.Int).Set(i)
	return newReal(func(prec uint) (*big.Float, error) {
		return new(big.Float).SetPrec(prec).SetInt(i), nil
	})
}

// FromInt64 returns the real value of i.
func FromInt64(i int64) *Real {
	return newReal(func(prec uint) (*big.Float, error) {
		return new(big.Float).SetPrec(prec).SetInt64(i), nil
	})
}

// FromString parses a decimal number, e.g. "3.14" or "1e-5", as an exact
// value.
func FromString(s string) (*Real, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, &strconv.NumError{Func: "FromString", Num: s, Err: strconv.ErrSyntax}
	}
	return FromRat(r), nil
}

var (
	one = FromInt64(1)
	pi  = newReal(func(prec uint) (*big.Float, error) {
		return piFloat(prec), nil
	})
	e = newReal(func(prec uint) (*big.Float, error) {
		wp := prec + guard
		z := new(big.Float).SetPrec(wp)
		bigfloat.Exp(z, new(big.Float).SetPrec(wp).SetInt64(1))
		return z, nil
	})
)

// One returns the real 1.
func One() *Real { return one }

// Pi returns π. Every call returns the same Real.
func Pi() *Real { return pi }

// E returns Euler's number. Every call returns the same Real.
func E() *Real { return e }

// piFloat computes π to prec bits.
func piFloat(prec uint) *big.Float {
	return bigfloat.Pi(new(big.Float).SetPrec(prec))
}

// noRef is the reference exponent reported to refine when every operand was
// exactly zero, so a zero result is exact.
const noRef = math.MinInt32

// refine evaluates f at increasing working precision until the result keeps
// prec significant bits. f reports the binary exponent of the magnitudes it
// combined; the distance from that to the result's exponent is the number of
// bits lost to cancellation. The extra precision is capped at prec+maxExtra,
// after which the best approximation so far is returned.
func refine(prec uint, f func(wp uint) (*big.Float, int, error)) (*big.Float, error) {
	limit := prec + maxExtra
	extra := uint(guard)
	for {
		z, ref, err := f(prec + extra)
		if err != nil {
			return nil, err
		}
		need := extra
		switch {
		case z.Sign() == 0:
			if ref != noRef {
				need = 2 * extra
			}
		default:
			if lost := ref - z.MantExp(nil); lost > 0 {
				need = uint(lost) + guard
			}
		}
		if need <= extra || extra >= limit {
			return z.SetPrec(prec), nil
		}
		extra = min(need, limit)
	}
}

// maxExp returns the larger binary exponent of a and b, or noRef if both are
// zero.
func maxExp(a, b *big.Float) int {
	switch {
	case a.Sign() == 0 && b.Sign() == 0:
		return noRef
	case a.Sign() == 0:
		return b.MantExp(nil)
	case b.Sign() == 0:
		return a.MantExp(nil)
	default:
		return max(a.MantExp(nil), b.MantExp(nil))
	}
}

// Add returns x+y.
func (x *Real) Add(y *Real) *Real {
	return sum(x, y, false)
}

// Sub returns x-y.
func (x *Real) Sub(y *Real) *Real {
	return sum(x, y, true)
}

func sum(x, y *Real, sub bool) *Real {
	return newReal(func(prec uint) (*big.Float, error) {
		return refine(prec, func(wp uint) (*big.Float, int, error) {
			a, err := x.Approx(wp)
			if err != nil {
				return nil, 0, err
			}
			b, err := y.Approx(wp)
			if err != nil {
				return nil, 0, err
			}
			z := new(big.Float).SetPrec(wp)
			if sub {
				z.Sub(a, b)
			} else {
				z.Add(a, b)
			}
			return z, maxExp(a, b), nil
		})
	})
}

// Mul returns x×y.
func (x *Real) Mul(y *Real) *Real {
	return newReal(func(prec uint) (*big.Float, error) {
		wp := prec + guard
		a, err := x.Approx(wp)
		if err != nil {
			return nil, err
		}
		b, err := y.Approx(wp)
		if err != nil {
			return nil, err
		}
		return a.Mul(a, b), nil
	})
}

// Quo returns x÷y.
func (x *Real) Quo(y *Real) *Real {
	return newReal(func(prec uint) (*big.Float, error) {
		wp := prec + guard
		b, err := y.Approx(wp)
		if err != nil {
			return nil, err
		}
		if b.Sign() == 0 {
			return nil, &DomainError{Func: "÷", Reason: "division by zero"}
		}
		a, err := x.Approx(wp)
		if err != nil {
			return nil, err
		}
		return a.Quo(a, b), nil
	})
}

// Neg returns -x.
func (x *Real) Neg() *Real {
	return newReal(func(prec uint) (*big.Float, error) {
		a, err := x.Approx(prec)
		if err != nil {
			return nil, err
		}
		return a.Neg(a), nil
	})
}

// Inverse returns 1/x.
func (x *Real) Inverse() *Real {
	return one.Quo(x)
}

// Sqrt returns the square root of x.
func (x *Real) Sqrt() *Real {
	return newReal(func(prec uint) (*big.Float, error) {
		a, err := x.Approx(prec + guard)
		if err != nil {
			return nil, err
		}
		switch a.Sign() {
		case -1:
			return nil, &DomainError{Func: "√", Reason: "square root of negative number"}
		case 0:
			return a, nil
		}
		return a.Sqrt(a), nil
	})
}

// Ln returns the natural logarithm of x.
func (x *Real) Ln() *Real {
	return newReal(func(prec uint) (*big.Float, error) {
		return refine(prec, func(wp uint) (*big.Float, int, error) {
			a, err := x.Approx(wp)
			if err != nil {
				return nil, 0, err
			}
			if a.Sign() <= 0 {
				return nil, 0, &DomainError{Func: "ln", Reason: "logarithm of non-positive number"}
			}
			z := new(big.Float).SetPrec(wp)
			bigfloat.Log(z, a)
			// The absolute error of the logarithm is the relative error of
			// its argument.
			return z, 0, nil
		})
	})
}

// Exp returns e^x.
func (x *Real) Exp() *Real {
	return newReal(func(prec uint) (*big.Float, error) {
		rough, err := x.Approx(guard)
		if err != nil {
			return nil, err
		}
		ex := rough.MantExp(nil)
		if ex > 40 {
			// |x| > 2^40 overflows or underflows every big.Float exponent.
			if rough.Sign() > 0 {
				return nil, &DomainError{Func: "exp", Reason: "overflow"}
			}
			return new(big.Float).SetPrec(prec), nil
		}
		// The relative error of e^x is the absolute error of x.
		wp := prec + guard + uint(max(ex, 0))
		a, err := x.Approx(wp)
		if err != nil {
			return nil, err
		}
		z := new(big.Float).SetPrec(wp)
		bigfloat.Exp(z, a)
		return z, nil
	})
}

// Pow returns x^y computed as exp(y ln x). It is undefined for x <= 0, even
// when y is an integer; callers wanting integer powers of negative numbers
// must compute them by multiplication.
func (x *Real) Pow(y *Real) *Real {
	return newReal(func(prec uint) (*big.Float, error) {
		a, err := x.Approx(prec + guard)
		if err != nil {
			return nil, err
		}
		if a.Sign() <= 0 {
			return nil, &DomainError{Func: "^", Reason: "power of non-positive number"}
		}
		b, err := y.Approx(guard)
		if err != nil {
			return nil, err
		}
		// Errors in either input are scaled by about |y ln x|.
		f, _ := b.Float64()
		m := math.Abs(f) * float64(abs(a.MantExp(nil))+1)
		var extra uint
		if m > 1 {
			extra = uint(min(math.Ceil(math.Log2(m)), 64))
		}
		wp := prec + guard + extra
		if a, err = x.Approx(wp); err != nil {
			return nil, err
		}
		if b, err = y.Approx(wp); err != nil {
			return nil, err
		}
		z := new(big.Float).SetPrec(wp)
		bigfloat.Pow(z, a, b)
		return z, nil
	})
}

// MaxFact is the largest argument Fact computes.
const MaxFact = 100000

// Fact returns n!.
func Fact(n int64) *Real {
	return newReal(func(prec uint) (*big.Float, error) {
		switch {
		case n < 0:
			return nil, &DomainError{Func: "!", Reason: "factorial of negative number"}
		case n > MaxFact:
			return nil, &DomainError{Func: "!", Reason: "factorial of " + strconv.FormatInt(n, 10) + " too large"}
		case n < 2:
			return new(big.Float).SetPrec(prec).SetInt64(1), nil
		}
		return new(big.Float).SetPrec(prec).SetInt(new(big.Int).MulRange(1, n)), nil
	})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// DomainError is an error from materializing a value that cannot be computed
// because an operation was applied outside its domain or overflowed.
type DomainError struct {
	// Func names the operation.
	Func string
	// Reason describes the violation.
	Reason string
}

func (err *DomainError) Error() string {
	return err.Func + ": " + err.Reason
}
