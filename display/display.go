// Package display renders calculator expressions for a locale.
//
// The digits and decimal separator for a language are taken from its number
// formatting as provided by golang.org/x/text, so a Formatter for German shows
// 3,14 where the plain formatter shows 3.14.
package display

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/zephyrtronium/calcexpr"
)

// Formatter renders keys and numbers for one language. It implements
// calcexpr.Formatter. A Formatter is safe for concurrent use.
type Formatter struct {
	tag    language.Tag
	digits [10]string
	point  string
	repl   *strings.Replacer
}

var _ calcexpr.Formatter = (*Formatter)(nil)

// New creates a Formatter for the given language.
func New(tag language.Tag) *Formatter {
	p := message.NewPrinter(tag)
	f := Formatter{tag: tag}
	for i := range f.digits {
		f.digits[i] = p.Sprintf("%v", number.Decimal(i))
	}
	// Format a number with a fractional part and find what lies between the
	// digits.
	s := p.Sprintf("%v", number.Decimal(1.5, number.Scale(1)))
	s = strings.TrimPrefix(s, f.digits[1])
	s = strings.TrimSuffix(s, f.digits[5])
	f.point = s
	if f.point == "" {
		f.point = "."
	}
	r := make([]string, 0, 2*12)
	for i, d := range f.digits {
		r = append(r, string(rune('0'+i)), d)
	}
	r = append(r, ".", f.point, "-", "−")
	f.repl = strings.NewReplacer(r...)
	return &f
}

// Parse is a shortcut to create a Formatter for a BCP 47 language tag.
func Parse(lang string) (*Formatter, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, err
	}
	return New(tag), nil
}

// Tag returns the formatter's language.
func (f *Formatter) Tag() language.Tag {
	return f.tag
}

// Point returns the decimal separator.
func (f *Formatter) Point() string {
	return f.point
}

// KeyText returns the display text for k.
func (f *Formatter) KeyText(k calcexpr.Key) string {
	if d, ok := k.Digit(); ok {
		return f.digits[d]
	}
	if k == calcexpr.DecPoint {
		return f.point
	}
	return k.String()
}

// Localize converts the digits, decimal point, and minus signs in s.
func (f *Formatter) Localize(s string) string {
	return f.repl.Replace(s)
}
