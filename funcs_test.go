package calcexpr

import (
	"math/big"
	"testing"

	"github.com/zephyrtronium/calcexpr/lazyreal"
)

func TestFuncsComplete(t *testing.T) {
	for k := FunSin; k <= FunExp; k++ {
		f, ok := globalfuncs[k]
		if !ok {
			t.Errorf("no function for %v", k)
			continue
		}
		if f.rat == nil || f.real == nil {
			t.Errorf("incomplete function for %v", k)
		}
	}
}

// TestFuncsAgree checks that every exact result matches the approximation of
// the same function.
func TestFuncsAgree(t *testing.T) {
	args := []string{"0", "1/2", "-1/2", "1", "-1", "1/100", "30", "45", "60", "90", "135", "150", "180", "270", "1000"}
	tol := new(big.Float).SetMantExp(big.NewFloat(1), -80)
	for k := FunSin; k <= FunExp; k++ {
		f := globalfuncs[k]
		for _, s := range args {
			x, _ := new(big.Rat).SetString(s)
			for _, deg := range []bool{false, true} {
				r, err := f.rat(x, deg)
				if r == nil || err != nil {
					continue
				}
				a, err := f.real(lazyreal.FromRat(x), deg).Approx(128)
				if err != nil {
					t.Errorf("%v%s) deg=%t: exact %v but approximation failed: %v", k, s, deg, r, err)
					continue
				}
				d := new(big.Float).SetPrec(128).SetRat(r)
				d.Sub(d, a).Abs(d)
				if d.Cmp(tol) > 0 {
					t.Errorf("%v%s) deg=%t: exact %v, approximately %v", k, s, deg, r.RatString(), a)
				}
			}
		}
	}
}

func TestFuncsDomain(t *testing.T) {
	cases := []struct {
		k   Key
		x   string
		deg bool
	}{
		{FunLn, "0", false},
		{FunLn, "-1", false},
		{FunLog, "-1/2", false},
		{FunArcsin, "2", false},
		{FunArccos, "-3/2", true},
		{FunTan, "90", true},
		{FunTan, "-90", true},
	}
	for _, c := range cases {
		x, _ := new(big.Rat).SetString(c.x)
		_, err := globalfuncs[c.k].call(c.k, ratValue(x), c.deg)
		ae, ok := err.(*ArithmeticError)
		if !ok {
			t.Errorf("%v%s) deg=%t: want *ArithmeticError, got %#v", c.k, c.x, c.deg, err)
			continue
		}
		if ae.Op != c.k.String() {
			t.Errorf("%v%s): wrong op %q", c.k, c.x, ae.Op)
		}
	}
}
