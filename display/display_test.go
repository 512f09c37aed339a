package display_test

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/zephyrtronium/calcexpr"
	"github.com/zephyrtronium/calcexpr/display"
)

func TestLocalize(t *testing.T) {
	cases := []struct {
		name string
		tag  language.Tag
		in   string
		want string
	}{
		{"en", language.English, "3.14", "3.14"},
		{"en-neg", language.English, "-0.5", "−0.5"},
		{"en-int", language.English, "1234567", "1234567"},
		{"de", language.German, "3.14", "3,14"},
		{"de-neg", language.German, "-2.5", "−2,5"},
		{"fr", language.French, "0.125", "0,125"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := display.New(c.tag)
			if got := f.Localize(c.in); got != c.want {
				t.Errorf("want %q, got %q", c.want, got)
			}
		})
	}
}

func TestKeyText(t *testing.T) {
	f := display.New(language.German)
	if got := f.KeyText(calcexpr.DecPoint); got != "," {
		t.Errorf("wrong decimal point %q", got)
	}
	if got := f.KeyText(calcexpr.Digit7); got != "7" {
		t.Errorf("wrong digit %q", got)
	}
	if got := f.KeyText(calcexpr.FunSin); got != "sin(" {
		t.Errorf("wrong function %q", got)
	}
}

func TestFormatExpr(t *testing.T) {
	keys, err := calcexpr.ParseKeys("3.14+2×-1.5")
	if err != nil {
		t.Fatal(err)
	}
	var e calcexpr.Expr
	for _, k := range keys {
		e.Add(k)
	}
	f := display.New(language.German)
	if got, want := e.Format(f), "3,14+2×−1,5"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
	c := calcexpr.NewCalculator(calcexpr.WithFormatter(f))
	c.Type("1÷4")
	c.Equals()
	if got := c.ResultText(); got != "0,25" {
		t.Errorf("want 0,25, got %q", got)
	}
}

func TestParse(t *testing.T) {
	f, err := display.Parse("de-DE")
	if err != nil {
		t.Fatal(err)
	}
	if f.Point() != "," {
		t.Errorf("wrong point %q", f.Point())
	}
	if b, _ := f.Tag().Base(); b != language.MustParseBase("de") {
		t.Errorf("wrong language %v", f.Tag())
	}
	if _, err := display.Parse("!!"); err == nil {
		t.Error("no error for malformed tag")
	}
}
