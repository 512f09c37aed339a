package calcexpr_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/calcexpr"
)

func FuzzEval(f *testing.F) {
	f.Add("1×2", false)
	f.Add("sin(30)+5!", true)
	f.Add("((2π-√-", false)
	f.Add("1÷(3-3)^-2%", true)
	f.Fuzz(func(t *testing.T, s string, deg bool) {
		keys, err := calcexpr.ParseKeys(s)
		if err != nil {
			return
		}
		var e calcexpr.Expr
		for _, k := range keys {
			e.Add(k)
		}
		for _, required := range []bool{false, true} {
			_, err := e.Eval(deg, required)
			if err == nil {
				continue
			}
			var se *calcexpr.SyntaxError
			var ae *calcexpr.ArithmeticError
			if !errors.As(err, &se) && !errors.As(err, &ae) {
				t.Errorf("%q: unexpected error type %#v", e.String(), err)
			}
		}
	})
}
