package calcexpr_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/zephyrtronium/calcexpr"
)

// collapse evaluates e and abbreviates it to its value.
func collapse(t *testing.T, e *calcexpr.Expr, deg bool) *calcexpr.Expr {
	t.Helper()
	v, err := e.Eval(deg, true)
	if err != nil {
		t.Fatalf("evaluating %q: %v", e, err)
	}
	return e.Abbreviate(v, deg, v.String())
}

func TestCodecRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"literal", "12.50"},
		{"point", "3."},
		{"ops", "(1+2)×3!-√4^2%"},
		{"funcs", "sin(π÷6)+arctan(e"},
		{"neg", "-2×-3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := build(t, c.src)
			var b bytes.Buffer
			if err := calcexpr.NewEncoder(&b).Encode(e); err != nil {
				t.Fatal(err)
			}
			d, err := calcexpr.NewDecoder(&b).Decode()
			if err != nil {
				t.Fatal(err)
			}
			if got, want := d.String(), e.String(); got != want {
				t.Errorf("want %q, got %q", want, got)
			}
			if b.Len() != 0 {
				t.Errorf("%d bytes left over", b.Len())
			}
			// Decoded literals must still be editable.
			if e.Add(calcexpr.Digit1) != d.Add(calcexpr.Digit1) {
				t.Errorf("decoded buffer accepts keys differently")
			}
			if e.String() != d.String() {
				t.Errorf("after editing: want %q, got %q", e, d)
			}
		})
	}
}

func TestCodecPreEval(t *testing.T) {
	inner := collapse(t, build(t, "sin(30)"), true)
	inner.Add(calcexpr.OpAdd)
	inner.Add(calcexpr.ConstPi)
	outer := collapse(t, inner, false)
	outer.Add(calcexpr.OpMul)
	outer.Add(calcexpr.Digit2)
	want, err := outer.Eval(false, true)
	if err != nil {
		t.Fatal(err)
	}

	var b bytes.Buffer
	if err := calcexpr.NewEncoder(&b).Encode(outer); err != nil {
		t.Fatal(err)
	}
	d, err := calcexpr.NewDecoder(&b).Decode()
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != outer.String() {
		t.Errorf("want %q, got %q", outer, d)
	}
	got, err := d.Eval(false, true)
	if err != nil {
		t.Fatal(err)
	}
	if c, err := got.Real.Cmp(want.Real, 200); err != nil || c != 0 {
		t.Errorf("want %v, got %v", want, got)
	}
	p := d.Token(0).(*calcexpr.PreEval)
	if p.DegreeMode() {
		t.Error("outer value decoded in degree mode")
	}
	q := p.Expr().Token(0).(*calcexpr.PreEval)
	if !q.DegreeMode() {
		t.Error("inner value decoded in radian mode")
	}
	if v := q.Value(); v.Rat == nil || v.Rat.RatString() != "1/2" {
		t.Errorf("inner value: want 1/2, got %v", v)
	}
}

func TestCodecShared(t *testing.T) {
	p := collapse(t, build(t, "1÷7"), false)
	e := p.Clone()
	e.Add(calcexpr.OpAdd)
	e.Append(p)

	var one, two bytes.Buffer
	if err := calcexpr.NewEncoder(&one).Encode(p); err != nil {
		t.Fatal(err)
	}
	if err := calcexpr.NewEncoder(&two).Encode(e); err != nil {
		t.Fatal(err)
	}
	// The second occurrence is a tag and index, and the operator between is
	// a tag and key.
	if want := one.Len() + 10; two.Len() != want {
		t.Errorf("shared value written more than once: want %d bytes, got %d", want, two.Len())
	}
	d, err := calcexpr.NewDecoder(&two).Decode()
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 3 {
		t.Fatalf("want 3 tokens, got %d", d.Len())
	}
	if d.Token(0) != d.Token(2) {
		t.Error("shared value decoded as separate tokens")
	}
}

func TestCodecSession(t *testing.T) {
	p := collapse(t, build(t, "2π"), false)
	var b bytes.Buffer
	enc := calcexpr.NewEncoder(&b)
	if err := enc.Encode(p); err != nil {
		t.Fatal(err)
	}
	n := b.Len()
	if err := enc.Encode(p); err != nil {
		t.Fatal(err)
	}
	// count, tag, index
	if got := b.Len() - n; got != 9 {
		t.Errorf("second encoding took %d bytes", got)
	}
	dec := calcexpr.NewDecoder(&b)
	x, err := dec.Decode()
	if err != nil {
		t.Fatal(err)
	}
	y, err := dec.Decode()
	if err != nil {
		t.Fatal(err)
	}
	if x.Token(0) != y.Token(0) {
		t.Error("value shared across buffers decoded separately")
	}
	if _, err := dec.Decode(); !errors.Is(err, io.EOF) {
		t.Errorf("want io.EOF at end of session, got %v", err)
	}
}

func TestCodecErrors(t *testing.T) {
	u32 := func(b []byte, v int) []byte { return binary.BigEndian.AppendUint32(b, uint32(v)) }
	str := func(b []byte, s string) []byte {
		b = binary.BigEndian.AppendUint16(b, uint16(len(s)))
		return append(b, s...)
	}
	cases := []struct {
		name string
		b    []byte
	}{
		{"short-count", []byte{0, 0}},
		{"negative-count", u32(nil, -1)},
		{"missing-token", u32(nil, 1)},
		{"bad-tag", append(u32(nil, 1), 9)},
		{"bad-key", u32(append(u32(nil, 1), 1), 99)},
		{"digit-key", u32(append(u32(nil, 1), 1), int(calcexpr.Digit1))},
		{"empty-literal", str(append(str(append(u32(nil, 1), 0), ""), 0), "")},
		{"non-digit", str(append(str(append(u32(nil, 1), 0), "1a"), 0), "")},
		{"frac-without-point", str(append(str(append(u32(nil, 1), 0), "1"), 0), "5")},
		{"truncated-literal", append(str(append(u32(nil, 1), 0), "12"), 0, 0)},
		{"bad-utf8", str(append(str(append(str(append(u32(u32(append(u32(nil, 1), 2), 1), 1), 0), "1"), 0), ""), 0), "\xff")},
		{"dangling-reference", u32(append(u32(nil, 1), 2), 7)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := calcexpr.NewDecoder(bytes.NewReader(c.b))
			e, err := d.Decode()
			var fe *calcexpr.FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("want *FormatError, got %#v", err)
			}
			if e != nil {
				t.Errorf("got buffer %q with error", e)
			}
			// Errors are sticky.
			if _, again := d.Decode(); again != err {
				t.Errorf("second decode gave %v, want %v", again, err)
			}
		})
	}
}

func TestCodecBadNested(t *testing.T) {
	// A pre-evaluated token whose nested buffer is just ")".
	var b []byte
	b = binary.BigEndian.AppendUint32(b, 1)
	b = append(b, 2)
	b = binary.BigEndian.AppendUint32(b, 1)
	b = binary.BigEndian.AppendUint32(b, 1)
	b = append(b, 1)
	b = binary.BigEndian.AppendUint32(b, uint32(calcexpr.RParen))
	b = append(b, 0)
	b = binary.BigEndian.AppendUint16(b, 0)
	_, err := calcexpr.NewDecoder(bytes.NewReader(b)).Decode()
	var fe *calcexpr.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("want *FormatError, got %#v", err)
	}
	var se *calcexpr.SyntaxError
	if !errors.As(err, &se) {
		t.Errorf("want wrapped *SyntaxError, got %#v", fe.Err)
	}
}

func TestCodecTruncated(t *testing.T) {
	var b bytes.Buffer
	if err := calcexpr.NewEncoder(&b).Encode(build(t, "12")); err != nil {
		t.Fatal(err)
	}
	r := bytes.NewReader(b.Bytes()[:b.Len()-1])
	_, err := calcexpr.NewDecoder(r).Decode()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("want io.ErrUnexpectedEOF, got %v", err)
	}
	_, err = calcexpr.NewDecoder(bytes.NewReader(nil)).Decode()
	if !errors.Is(err, io.EOF) {
		t.Errorf("want io.EOF, got %v", err)
	}
}

type failWriter struct{}

var errFail = errors.New("fail")

func (failWriter) Write([]byte) (int, error) { return 0, errFail }

func TestEncoderWriteError(t *testing.T) {
	enc := calcexpr.NewEncoder(failWriter{})
	err := enc.Encode(build(t, "1+2"))
	if !errors.Is(err, errFail) {
		t.Fatalf("want wrapped write error, got %v", err)
	}
	if again := enc.Encode(build(t, "3")); again != err {
		t.Errorf("second encode gave %v, want %v", again, err)
	}
}

func TestCodecCollapsedTwice(t *testing.T) {
	cases := []struct {
		name string
		src  string
		deg  bool
	}{
		{"exact", "7+1", false},
		{"real", "2π", false},
		{"degrees", "sin(30)", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := collapse(t, build(t, c.src), c.deg)
			q := collapse(t, p, c.deg)
			// Evaluating a lone pre-evaluated token gives back its own value,
			// so both levels share one value object.
			inner := q.Token(0).(*calcexpr.PreEval).Expr().Token(0).(*calcexpr.PreEval)
			outer := q.Token(0).(*calcexpr.PreEval)
			if inner.Value().Real != outer.Value().Real {
				t.Fatal("collapsing twice computed a new value")
			}
			e := q.Clone()
			e.Add(calcexpr.OpAdd)
			e.Append(q)
			var b bytes.Buffer
			if err := calcexpr.NewEncoder(&b).Encode(e); err != nil {
				t.Fatal(err)
			}
			d, err := calcexpr.NewDecoder(&b).Decode()
			if err != nil {
				t.Fatal(err)
			}
			if got, want := d.String(), e.String(); got != want {
				t.Errorf("want %q, got %q", want, got)
			}
			if d.Token(0) != d.Token(2) {
				t.Error("shared value decoded as separate tokens")
			}
			want, err := e.Eval(c.deg, true)
			if err != nil {
				t.Fatal(err)
			}
			got, err := d.Eval(c.deg, true)
			if err != nil {
				t.Fatal(err)
			}
			if cmp, err := got.Real.Cmp(want.Real, 100); err != nil || cmp != 0 {
				t.Errorf("want %v, got %v", want, got)
			}
		})
	}
}
