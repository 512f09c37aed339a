package calcexpr

// Option is an option used when creating a Calculator.
type Option interface {
	calcOption()
}

type (
	degopt    bool
	digitsopt int
	fmtopt    struct{ f Formatter }
)

func (degopt) calcOption()    {}
func (digitsopt) calcOption() {}
func (fmtopt) calcOption()    {}

// DegreeMode sets whether trigonometric functions use degrees. The default is
// radians.
func DegreeMode(degrees bool) Option {
	return degopt(degrees)
}

// Digits sets the number of significant digits in results which cannot be
// shown exactly. Panics if n is less than 1.
func Digits(n int) Option {
	if n < 1 {
		panic("calcexpr: Digits must be positive")
	}
	return digitsopt(n)
}

// WithFormatter sets the formatter for display text. A nil formatter selects
// PlainFormatter.
func WithFormatter(f Formatter) Option {
	if f == nil {
		f = PlainFormatter
	}
	return fmtopt{f}
}

// DefaultDigits is the number of significant digits used when no Digits
// option is given.
const DefaultDigits = 12

func (c *Calculator) apply(opts []Option) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case degopt:
			c.degrees = bool(opt)
		case digitsopt:
			c.digits = int(opt)
		case fmtopt:
			c.fmt = opt.f
		default:
			panic("calcexpr: unknown option type")
		}
	}
}
