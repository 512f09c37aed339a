package exactrat_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/zephyrtronium/calcexpr/exactrat"
)

func q(s string) *big.Rat {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		panic("bad rational " + s)
	}
	return r
}

func TestExact(t *testing.T) {
	type fn func(x *big.Rat) (*big.Rat, error)
	bin := func(f func(x, y *big.Rat) *big.Rat, y string) fn {
		return func(x *big.Rat) (*big.Rat, error) { return f(x, q(y)), nil }
	}
	bine := func(f func(x, y *big.Rat) (*big.Rat, error), y string) fn {
		return func(x *big.Rat) (*big.Rat, error) { return f(x, q(y)) }
	}
	cases := []struct {
		name string
		f    fn
		x    string
		// r is the expected result, or "" for nil.
		r string
	}{
		{"add", bin(exactrat.Add, "1/3"), "1/6", "1/2"},
		{"sub", bin(exactrat.Sub, "1/3"), "1/6", "-1/6"},
		{"mul", bin(exactrat.Mul, "3"), "1/6", "1/2"},
		{"quo", bine(exactrat.Quo, "4"), "2", "1/2"},
		{"neg", func(x *big.Rat) (*big.Rat, error) { return exactrat.Neg(x), nil }, "2", "-2"},
		{"pow", bine(exactrat.Pow, "3"), "2/3", "8/27"},
		{"pow-neg", bine(exactrat.Pow, "-2"), "-2", "1/4"},
		{"pow-zero", bine(exactrat.Pow, "0"), "0", "1"},
		{"pow-half", bine(exactrat.Pow, "3/2"), "4/9", "8/27"},
		{"pow-irrational", bine(exactrat.Pow, "1/2"), "2", ""},
		{"pow-third", bine(exactrat.Pow, "1/3"), "8", ""},
		{"pow-huge", bine(exactrat.Pow, "100000"), "3", ""},
		{"pow-one", bine(exactrat.Pow, "100000000000000000000000"), "1", "1"},
		{"pow-minus-one", bine(exactrat.Pow, "100000000000000000000001"), "-1", "-1"},
		{"fact", exactrat.Fact, "5", "120"},
		{"fact-zero", exactrat.Fact, "0", "1"},
		{"fact-huge", exactrat.Fact, "5000", ""},
		{"sqrt", exactrat.Sqrt, "9/4", "3/2"},
		{"sqrt-irrational", exactrat.Sqrt, "2", ""},
		{"ln", exactrat.Ln, "1", "0"},
		{"ln-irrational", exactrat.Ln, "2", ""},
		{"log", exactrat.Log, "1000", "3"},
		{"log-frac", exactrat.Log, "1/100", "-2"},
		{"log-irrational", exactrat.Log, "20", ""},
		{"exp", exactrat.Exp, "0", "1"},
		{"exp-irrational", exactrat.Exp, "1", ""},
		{"sin", exactrat.Sin, "0", "0"},
		{"sin-irrational", exactrat.Sin, "1", ""},
		{"cos", exactrat.Cos, "0", "1"},
		{"acos", exactrat.Acos, "1", "0"},
		{"dsin-30", exactrat.DegreeSin, "30", "1/2"},
		{"dsin-neg", exactrat.DegreeSin, "-90", "-1"},
		{"dsin-720", exactrat.DegreeSin, "720", "0"},
		{"dsin-60", exactrat.DegreeSin, "60", ""},
		{"dcos-60", exactrat.DegreeCos, "60", "1/2"},
		{"dcos-180", exactrat.DegreeCos, "180", "-1"},
		{"dtan-45", exactrat.DegreeTan, "45", "1"},
		{"dtan-315", exactrat.DegreeTan, "315", "-1"},
		{"dasin", exactrat.DegreeAsin, "-1/2", "-30"},
		{"dacos", exactrat.DegreeAcos, "1/2", "60"},
		{"dacos-neg", exactrat.DegreeAcos, "-1", "180"},
		{"datan", exactrat.DegreeAtan, "-1", "-45"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := c.f(q(c.x))
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			if c.r == "" {
				if r != nil {
					t.Errorf("want nil, got %v", r)
				}
				return
			}
			if r == nil {
				t.Fatalf("want %s, got nil", c.r)
			}
			if r.Cmp(q(c.r)) != 0 {
				t.Errorf("want %s, got %v", c.r, r.RatString())
			}
		})
	}
}

func TestDomainErrors(t *testing.T) {
	cases := []struct {
		name string
		f    func() (*big.Rat, error)
	}{
		{"quo", func() (*big.Rat, error) { return exactrat.Quo(q("1"), q("0")) }},
		{"quo-nil", func() (*big.Rat, error) { return exactrat.Quo(nil, q("0")) }},
		{"pow", func() (*big.Rat, error) { return exactrat.Pow(q("0"), q("-1")) }},
		{"fact-frac", func() (*big.Rat, error) { return exactrat.Fact(q("11/2")) }},
		{"fact-neg", func() (*big.Rat, error) { return exactrat.Fact(q("-1")) }},
		{"sqrt", func() (*big.Rat, error) { return exactrat.Sqrt(q("-4")) }},
		{"ln", func() (*big.Rat, error) { return exactrat.Ln(q("0")) }},
		{"log", func() (*big.Rat, error) { return exactrat.Log(q("-10")) }},
		{"asin", func() (*big.Rat, error) { return exactrat.Asin(q("2")) }},
		{"acos", func() (*big.Rat, error) { return exactrat.DegreeAcos(q("-3/2")) }},
		{"dtan", func() (*big.Rat, error) { return exactrat.DegreeTan(q("270")) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := c.f()
			if err == nil {
				t.Fatalf("no error, result %v", r)
			}
			if !errors.As(err, new(*exactrat.DomainError)) {
				t.Errorf("%#v is not *exactrat.DomainError", err)
			}
		})
	}
}

func TestNil(t *testing.T) {
	if exactrat.Add(nil, q("1")) != nil || exactrat.Mul(q("1"), nil) != nil || exactrat.Neg(nil) != nil {
		t.Error("nil did not propagate")
	}
	fns := []func(*big.Rat) (*big.Rat, error){
		exactrat.Fact, exactrat.Sqrt, exactrat.Ln, exactrat.Log, exactrat.Exp,
		exactrat.Sin, exactrat.Cos, exactrat.Tan, exactrat.Asin, exactrat.Acos, exactrat.Atan,
		exactrat.DegreeSin, exactrat.DegreeCos, exactrat.DegreeTan,
		exactrat.DegreeAsin, exactrat.DegreeAcos, exactrat.DegreeAtan,
	}
	for i, f := range fns {
		if r, err := f(nil); r != nil || err != nil {
			t.Errorf("function %d gave %v, %v for nil", i, r, err)
		}
	}
	if exactrat.Real(nil) != nil {
		t.Error("Real(nil) is not nil")
	}
}

func TestInt(t *testing.T) {
	if n := exactrat.Int(q("12")); n == nil || n.Int64() != 12 {
		t.Errorf("want 12, got %v", n)
	}
	if n := exactrat.Int(q("1/2")); n != nil {
		t.Errorf("want nil, got %v", n)
	}
}

func TestBounded(t *testing.T) {
	x := new(big.Rat).SetInt(new(big.Int).Lsh(big.NewInt(1), exactrat.MaxBits/2+1))
	if r := exactrat.Mul(x, x); r != nil {
		t.Errorf("oversized product was not dropped: %d bits", r.Num().BitLen())
	}
}
