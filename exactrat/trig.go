package exactrat

import "math/big"

// Radian trigonometry is rational only at zero (and arccos at one).

// Sin returns sin(x) for x in radians.
func Sin(x *big.Rat) (*big.Rat, error) {
	if x == nil || x.Sign() != 0 {
		return nil, nil
	}
	return new(big.Rat), nil
}

// Cos returns cos(x) for x in radians.
func Cos(x *big.Rat) (*big.Rat, error) {
	if x == nil || x.Sign() != 0 {
		return nil, nil
	}
	return big.NewRat(1, 1), nil
}

// Tan returns tan(x) for x in radians.
func Tan(x *big.Rat) (*big.Rat, error) {
	return Sin(x)
}

// Asin returns arcsin(x) in radians.
func Asin(x *big.Rat) (*big.Rat, error) {
	if err := unitRange(x, "arcsin"); err != nil {
		return nil, err
	}
	return Sin(x)
}

// Acos returns arccos(x) in radians.
func Acos(x *big.Rat) (*big.Rat, error) {
	if err := unitRange(x, "arccos"); err != nil {
		return nil, err
	}
	if x == nil || x.Cmp(ratOne) != 0 {
		return nil, nil
	}
	return new(big.Rat), nil
}

// Atan returns arctan(x) in radians.
func Atan(x *big.Rat) (*big.Rat, error) {
	return Sin(x)
}

// unitRange checks that x is in [-1, 1].
func unitRange(x *big.Rat, name string) error {
	if x == nil {
		return nil
	}
	if new(big.Rat).Abs(x).Cmp(ratOne) > 0 {
		return &DomainError{Func: name, Reason: "argument outside [-1, 1]"}
	}
	return nil
}

// degrees returns x mod m if x is an integer.
func degrees(x *big.Rat, m int64) (int64, bool) {
	if x == nil || !x.IsInt() {
		return 0, false
	}
	return new(big.Int).Mod(x.Num(), big.NewInt(m)).Int64(), true
}

// DegreeSin returns sin(x) for x in degrees. It is rational at multiples of
// 30° other than 60° and 120° and their equivalents.
func DegreeSin(x *big.Rat) (*big.Rat, error) {
	d, ok := degrees(x, 360)
	if !ok {
		return nil, nil
	}
	switch d {
	case 0, 180:
		return new(big.Rat), nil
	case 30, 150:
		return big.NewRat(1, 2), nil
	case 90:
		return big.NewRat(1, 1), nil
	case 210, 330:
		return big.NewRat(-1, 2), nil
	case 270:
		return big.NewRat(-1, 1), nil
	}
	return nil, nil
}

// DegreeCos returns cos(x) for x in degrees.
func DegreeCos(x *big.Rat) (*big.Rat, error) {
	if x == nil {
		return nil, nil
	}
	return DegreeSin(new(big.Rat).Add(x, big.NewRat(90, 1)))
}

// DegreeTan returns tan(x) for x in degrees. Odd multiples of 90° are outside
// its domain.
func DegreeTan(x *big.Rat) (*big.Rat, error) {
	d, ok := degrees(x, 180)
	if !ok {
		return nil, nil
	}
	switch d {
	case 0:
		return new(big.Rat), nil
	case 45:
		return big.NewRat(1, 1), nil
	case 90:
		return nil, &DomainError{Func: "tan", Reason: "tangent of odd multiple of 90°"}
	case 135:
		return big.NewRat(-1, 1), nil
	}
	return nil, nil
}

// DegreeAsin returns arcsin(x) in degrees.
func DegreeAsin(x *big.Rat) (*big.Rat, error) {
	if err := unitRange(x, "arcsin"); err != nil {
		return nil, err
	}
	if x == nil {
		return nil, nil
	}
	a := new(big.Rat).Abs(x)
	var r *big.Rat
	switch {
	case a.Sign() == 0:
		return new(big.Rat), nil
	case a.Cmp(big.NewRat(1, 2)) == 0:
		r = big.NewRat(30, 1)
	case a.Cmp(ratOne) == 0:
		r = big.NewRat(90, 1)
	default:
		return nil, nil
	}
	if x.Sign() < 0 {
		r.Neg(r)
	}
	return r, nil
}

// DegreeAcos returns arccos(x) in degrees.
func DegreeAcos(x *big.Rat) (*big.Rat, error) {
	if err := unitRange(x, "arccos"); err != nil {
		return nil, err
	}
	s, err := DegreeAsin(x)
	if s == nil || err != nil {
		return nil, err
	}
	return s.Sub(big.NewRat(90, 1), s), nil
}

// DegreeAtan returns arctan(x) in degrees.
func DegreeAtan(x *big.Rat) (*big.Rat, error) {
	if x == nil {
		return nil, nil
	}
	switch {
	case x.Sign() == 0:
		return new(big.Rat), nil
	case x.Cmp(ratOne) == 0:
		return big.NewRat(45, 1), nil
	case x.Cmp(ratMinusOne) == 0:
		return big.NewRat(-45, 1), nil
	}
	return nil, nil
}
