package lazyreal

import (
	"math"
	"math/big"
)

// Cmp compares x and y to prec bits relative to the larger of them. It returns
// 0 when they are indistinguishable at that precision, otherwise -1 if x < y
// or +1 if x > y.
func (x *Real) Cmp(y *Real, prec uint) (int, error) {
	wp := prec + guard
	a, err := x.Approx(wp)
	if err != nil {
		return 0, err
	}
	b, err := y.Approx(wp)
	if err != nil {
		return 0, err
	}
	ref := maxExp(a, b)
	if ref == noRef {
		return 0, nil
	}
	d := new(big.Float).SetPrec(wp).Sub(a, b)
	if d.Sign() == 0 || d.MantExp(nil) <= ref-int(prec) {
		return 0, nil
	}
	return d.Sign(), nil
}

// Text formats x in %g style with the given number of significant decimal
// digits.
func (x *Real) Text(digits int) (string, error) {
	if digits < 1 {
		digits = 1
	}
	prec := uint(math.Ceil(float64(digits)*math.Log2(10))) + 4
	a, err := x.Approx(prec)
	if err != nil {
		return "", err
	}
	return a.Text('g', digits), nil
}

// Float64 returns the float64 nearest to x.
func (x *Real) Float64() (float64, error) {
	a, err := x.Approx(53)
	if err != nil {
		return 0, err
	}
	f, _ := a.Float64()
	return f, nil
}

// NearInt returns the integer nearest to x and reports whether x is within
// 2^-tol of it.
func (x *Real) NearInt(tol uint) (*big.Int, bool, error) {
	rough, err := x.Approx(guard)
	if err != nil {
		return nil, false, err
	}
	ex := max(rough.MantExp(nil), 0)
	a, err := x.Approx(uint(ex) + tol + guard)
	if err != nil {
		return nil, false, err
	}
	n := roundInt(a)
	d := new(big.Float).SetPrec(a.Prec()).SetInt(n)
	d.Sub(a, d)
	return n, d.Sign() == 0 || d.MantExp(nil) < -int(tol), nil
}

// String formats x to 20 significant digits, or describes the error that
// prevents computing it.
func (x *Real) String() string {
	s, err := x.Text(20)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return s
}
