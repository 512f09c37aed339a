package lazyreal

import (
	"math/big"
	"strconv"
)

// maxTrigExp bounds the binary exponent of arguments to Sin and Cos. Reducing
// larger arguments needs that many extra bits of π.
const maxTrigExp = 1 << 16

// Sin returns the sine of x, in radians.
func (x *Real) Sin() *Real {
	return trig(x, "sin", 0)
}

// Cos returns the cosine of x, in radians.
func (x *Real) Cos() *Real {
	return trig(x, "cos", 1)
}

func trig(x *Real, name string, quadrant int64) *Real {
	return newReal(func(prec uint) (*big.Float, error) {
		rough, err := x.Approx(guard)
		if err != nil {
			return nil, err
		}
		ex := max(rough.MantExp(nil), 0)
		if ex > maxTrigExp {
			return nil, &DomainError{Func: name, Reason: "argument 2^" + strconv.Itoa(ex) + " too large"}
		}
		return refine(prec, func(wp uint) (*big.Float, int, error) {
			// Reduction keeps the absolute error of x, so the result has
			// about wp bits after the binary point.
			wp += uint(ex)
			a, err := x.Approx(wp)
			if err != nil {
				return nil, 0, err
			}
			return sincos(a, wp, quadrant), 0, nil
		})
	})
}

// sincos computes sin(x + q·π/2) to prec bits.
func sincos(x *big.Float, prec uint, q int64) *big.Float {
	halfPi := piFloat(prec)
	halfPi.SetMantExp(halfPi, -1)
	k := new(big.Float).SetPrec(prec).Quo(x, halfPi)
	n := roundInt(k)
	r := new(big.Float).SetPrec(prec).SetInt(n)
	r.Mul(r, halfPi)
	r.Sub(x, r)
	q += new(big.Int).Mod(n, big.NewInt(4)).Int64()
	switch q % 4 {
	case 0:
		return series(r, prec, false)
	case 1:
		return series(r, prec, true)
	case 2:
		z := series(r, prec, false)
		return z.Neg(z)
	default:
		z := series(r, prec, true)
		return z.Neg(z)
	}
}

// series sums the Taylor series of sin(r), or cos(r) if cos is set. It is
// meant for |r| <= π/4.
func series(r *big.Float, prec uint, cos bool) *big.Float {
	r2 := new(big.Float).SetPrec(prec).Mul(r, r)
	term := new(big.Float).SetPrec(prec)
	var n int64
	if cos {
		term.SetInt64(1)
	} else {
		term.Set(r)
		n = 1
	}
	sum := new(big.Float).SetPrec(prec).Set(term)
	d := new(big.Float).SetPrec(prec)
	for term.Sign() != 0 {
		term.Mul(term, r2)
		term.Quo(term, d.SetInt64((n+1)*(n+2)))
		term.Neg(term)
		n += 2
		if sum.Sign() != 0 && term.MantExp(nil) < sum.MantExp(nil)-int(prec)-1 {
			break
		}
		sum.Add(sum, term)
	}
	return sum
}

// Atan returns the arctangent of x, in radians.
func (x *Real) Atan() *Real {
	return newReal(func(prec uint) (*big.Float, error) {
		wp := prec + guard
		a, err := x.Approx(wp)
		if err != nil {
			return nil, err
		}
		return atanFloat(a, wp), nil
	})
}

// Asin returns the arcsine of x, in radians.
func (x *Real) Asin() *Real {
	return newReal(func(prec uint) (*big.Float, error) {
		return asin(x, prec+guard, "arcsin")
	})
}

// Acos returns the arccosine of x, in radians.
func (x *Real) Acos() *Real {
	return newReal(func(prec uint) (*big.Float, error) {
		return refine(prec, func(wp uint) (*big.Float, int, error) {
			s, err := asin(x, wp, "arccos")
			if err != nil {
				return nil, 0, err
			}
			z := piFloat(wp)
			z.SetMantExp(z, -1)
			z.Sub(z, s)
			return z, 1, nil
		})
	})
}

// asin computes the arcsine of x to wp bits as atan(x/sqrt((1-x)(1+x))).
func asin(x *Real, wp uint, name string) (*big.Float, error) {
	a, err := x.Approx(wp)
	if err != nil {
		return nil, err
	}
	one := new(big.Float).SetPrec(wp).SetInt64(1)
	d := new(big.Float).SetPrec(wp).Abs(a)
	switch d.Cmp(one) {
	case 1:
		return nil, &DomainError{Func: name, Reason: "argument outside [-1, 1]"}
	case 0:
		z := piFloat(wp)
		z.SetMantExp(z, -1)
		if a.Sign() < 0 {
			z.Neg(z)
		}
		return z, nil
	}
	// 1-|x| cancels as |x| approaches 1.
	d.Sub(one, d)
	if lost := -d.MantExp(nil); lost > 0 {
		wp += uint(lost)
		if a, err = x.Approx(wp); err != nil {
			return nil, err
		}
		one.SetPrec(wp)
	}
	u := new(big.Float).SetPrec(wp).Sub(one, a)
	v := new(big.Float).SetPrec(wp).Add(one, a)
	u.Mul(u, v)
	if u.Sign() <= 0 {
		z := piFloat(wp)
		z.SetMantExp(z, -1)
		if a.Sign() < 0 {
			z.Neg(z)
		}
		return z, nil
	}
	u.Sqrt(u)
	u.Quo(a, u)
	return atanFloat(u, wp), nil
}

// atanFloat computes the arctangent of x to prec bits.
func atanFloat(x *big.Float, prec uint) *big.Float {
	a := new(big.Float).SetPrec(prec).Abs(x)
	if a.Sign() == 0 {
		return a
	}
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	inv := a.Cmp(one) > 0
	if inv {
		a.Quo(one, a)
	}
	// atan(a) = 2 atan(a / (1 + sqrt(1 + a²)))
	eighth := new(big.Float).SetPrec(prec).SetMantExp(one, -3)
	halvings := 0
	t := new(big.Float).SetPrec(prec)
	for a.Cmp(eighth) > 0 {
		t.Mul(a, a)
		t.Add(t, one)
		t.Sqrt(t)
		t.Add(t, one)
		a.Quo(a, t)
		halvings++
	}
	a2 := new(big.Float).SetPrec(prec).Mul(a, a)
	pow := new(big.Float).SetPrec(prec).Set(a)
	sum := new(big.Float).SetPrec(prec).Set(a)
	d := new(big.Float).SetPrec(prec)
	for n := int64(3); ; n += 2 {
		pow.Mul(pow, a2)
		pow.Neg(pow)
		t.Quo(pow, d.SetInt64(n))
		if t.Sign() == 0 || t.MantExp(nil) < sum.MantExp(nil)-int(prec)-1 {
			break
		}
		sum.Add(sum, t)
	}
	sum.SetMantExp(sum, halvings)
	if inv {
		z := piFloat(prec)
		z.SetMantExp(z, -1)
		sum.Sub(z, sum)
	}
	if x.Sign() < 0 {
		sum.Neg(sum)
	}
	return sum
}

// roundInt rounds x to the nearest integer, with halves away from zero.
func roundInt(x *big.Float) *big.Int {
	t := new(big.Float).SetPrec(x.Prec() + 2).Set(x)
	h := big.NewFloat(0.5)
	if t.Sign() < 0 {
		t.Sub(t, h)
	} else {
		t.Add(t, h)
	}
	n, _ := t.Int(nil)
	return n
}
