package calcexpr

import (
	"math/big"

	"github.com/zephyrtronium/calcexpr/exactrat"
	"github.com/zephyrtronium/calcexpr/lazyreal"
)

// function is a named function of one value. Each is computed exactly when
// possible and otherwise on reals.
type function struct {
	// rat computes the exact result, or nil if it is not known. It returns an
	// error only for exact arguments outside the function's domain.
	rat func(x *big.Rat, degrees bool) (*big.Rat, error)
	// real computes the result approximately.
	real func(x *lazyreal.Real, degrees bool) *lazyreal.Real
}

func (f function) call(k Key, v Value, degrees bool) (Value, error) {
	r, err := f.rat(v.Rat, degrees)
	if err != nil {
		return Value{}, &ArithmeticError{Op: k.String(), Err: err}
	}
	if r != nil {
		return ratValue(r), nil
	}
	return Value{Real: f.real(v.Real, degrees)}, nil
}

var globalfuncs = map[Key]function{
	FunSin: {
		rat:  angular(exactrat.Sin, exactrat.DegreeSin),
		real: func(x *lazyreal.Real, deg bool) *lazyreal.Real { return toRadians(x, deg).Sin() },
	},
	FunCos: {
		rat:  angular(exactrat.Cos, exactrat.DegreeCos),
		real: func(x *lazyreal.Real, deg bool) *lazyreal.Real { return toRadians(x, deg).Cos() },
	},
	FunTan: {
		rat: angular(exactrat.Tan, exactrat.DegreeTan),
		real: func(x *lazyreal.Real, deg bool) *lazyreal.Real {
			x = toRadians(x, deg)
			return x.Sin().Quo(x.Cos())
		},
	},
	FunArcsin: {
		rat:  angular(exactrat.Asin, exactrat.DegreeAsin),
		real: func(x *lazyreal.Real, deg bool) *lazyreal.Real { return fromRadians(x.Asin(), deg) },
	},
	FunArccos: {
		rat:  angular(exactrat.Acos, exactrat.DegreeAcos),
		real: func(x *lazyreal.Real, deg bool) *lazyreal.Real { return fromRadians(x.Acos(), deg) },
	},
	FunArctan: {
		rat:  angular(exactrat.Atan, exactrat.DegreeAtan),
		real: func(x *lazyreal.Real, deg bool) *lazyreal.Real { return fromRadians(x.Atan(), deg) },
	},
	FunLn: {
		rat:  monadic(exactrat.Ln),
		real: func(x *lazyreal.Real, _ bool) *lazyreal.Real { return x.Ln() },
	},
	FunLog: {
		rat:  monadic(exactrat.Log),
		real: func(x *lazyreal.Real, _ bool) *lazyreal.Real { return x.Ln().Quo(ln10) },
	},
	FunExp: {
		rat:  monadic(exactrat.Exp),
		real: func(x *lazyreal.Real, _ bool) *lazyreal.Real { return x.Exp() },
	},
}

// monadic wraps an exact function which does not depend on the angle unit.
func monadic(f func(*big.Rat) (*big.Rat, error)) func(*big.Rat, bool) (*big.Rat, error) {
	return func(x *big.Rat, _ bool) (*big.Rat, error) {
		return f(x)
	}
}

// angular selects between exact functions of radians and degrees.
func angular(rad, deg func(*big.Rat) (*big.Rat, error)) func(*big.Rat, bool) (*big.Rat, error) {
	return func(x *big.Rat, degrees bool) (*big.Rat, error) {
		if degrees {
			return deg(x)
		}
		return rad(x)
	}
}

var (
	ln10             = lazyreal.FromInt64(10).Ln()
	radiansPerDegree = lazyreal.Pi().Quo(lazyreal.FromInt64(180))
	degreesPerRadian = lazyreal.FromInt64(180).Quo(lazyreal.Pi())
)

func toRadians(x *lazyreal.Real, degrees bool) *lazyreal.Real {
	if degrees {
		return x.Mul(radiansPerDegree)
	}
	return x
}

func fromRadians(x *lazyreal.Real, degrees bool) *lazyreal.Real {
	if degrees {
		return x.Mul(degreesPerRadian)
	}
	return x
}
