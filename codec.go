package calcexpr

import (
	"encoding/binary"
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/zephyrtronium/calcexpr/lazyreal"
)

// Serialized buffers have the following layout, with integers big-endian:
//
//	expr    = count:int32 token*
//	token   = 0:byte string(whole) point:bool string(frac)
//	        | 1:byte key:int32
//	        | 2:byte index:int32 [expr degrees:bool string(short)]
//	string  = length:uint16 utf8
//	bool    = 0 | 1
//
// The bracketed part of a pre-evaluated token appears only the first time its
// index appears in a session.

// maxDepth is the deepest nesting of pre-evaluated tokens a Decoder accepts.
const maxDepth = 10000

// Encoder writes expression buffers. Pre-evaluated tokens are written in full
// only the first time the Encoder sees their values, identified by the
// *lazyreal.Real of the value, and as references afterward. Distinct
// pre-evaluated tokens with equal but separately computed values are written
// separately.
//
// Each Encoder is one session and must be read by one Decoder. An Encoder is
// not safe for concurrent use, but separate Encoders are independent.
type Encoder struct {
	w    io.Writer
	ids  map[*lazyreal.Real]int32
	next int32
	buf  []byte
	err  error
}

// NewEncoder creates an encoding session writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		w:    w,
		ids:  make(map[*lazyreal.Real]int32),
		next: 1,
	}
}

// Encode writes e. Each call writes the entire buffer in a single call to the
// underlying writer. After an error, the session is unusable and all later
// calls return the same error.
func (enc *Encoder) Encode(e *Expr) error {
	if enc.err != nil {
		return enc.err
	}
	b, err := enc.expr(enc.buf[:0], e)
	if err != nil {
		enc.err = err
		return err
	}
	enc.buf = b
	if _, err := enc.w.Write(b); err != nil {
		enc.err = &FormatError{Msg: "writing expression", Err: err}
		return enc.err
	}
	return nil
}

func (enc *Encoder) expr(b []byte, e *Expr) ([]byte, error) {
	if len(e.tokens) > math.MaxInt32 {
		return b, &FormatError{Msg: "expression too long"}
	}
	b = binary.BigEndian.AppendUint32(b, uint32(len(e.tokens)))
	var err error
	for _, t := range e.tokens {
		b = append(b, byte(t.kind()))
		switch t := t.(type) {
		case *Literal:
			if b, err = appendString(b, t.whole); err != nil {
				return b, err
			}
			b = appendBool(b, t.point)
			if b, err = appendString(b, t.frac); err != nil {
				return b, err
			}
		case Operator:
			b = binary.BigEndian.AppendUint32(b, uint32(t))
		case *PreEval:
			if id, ok := enc.ids[t.value.Real]; ok {
				b = binary.BigEndian.AppendUint32(b, uint32(id))
				continue
			}
			id := enc.next
			enc.next++
			b = binary.BigEndian.AppendUint32(b, uint32(id))
			if b, err = enc.expr(b, t.expr); err != nil {
				return b, err
			}
			b = appendBool(b, t.degrees)
			if b, err = appendString(b, t.short); err != nil {
				return b, err
			}
			// The nested buffer may evaluate to this same value, as when a
			// result is collapsed twice. Like the decoder, register the index
			// only once the whole payload is written.
			enc.ids[t.value.Real] = id
		}
	}
	return b, nil
}

func appendBool(b []byte, v bool) []byte {
	if v {
		return append(b, 1)
	}
	return append(b, 0)
}

func appendString(b []byte, s string) ([]byte, error) {
	if len(s) > math.MaxUint16 {
		return b, &FormatError{Msg: "string of length " + strconv.Itoa(len(s)) + " too long"}
	}
	b = binary.BigEndian.AppendUint16(b, uint16(len(s)))
	return append(b, s...), nil
}

// Decoder reads expression buffers written by an Encoder. A pre-evaluated
// token is evaluated once, when its full form is read, and later references
// to it produce the same *PreEval.
//
// A Decoder reads exactly the bytes of each buffer from its reader, so other
// data may follow in the same stream. A Decoder is not safe for concurrent
// use, but separate Decoders are independent.
type Decoder struct {
	r   io.Reader
	ids map[int32]*PreEval
	buf [4]byte
	err error
}

// NewDecoder creates a decoding session reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r, ids: make(map[int32]*PreEval)}
}

// Decode reads a buffer. Every error is a *FormatError, and the result is nil
// on error. If the stream ended before the first byte of the buffer, the
// error unwraps to io.EOF. After an error, the session is unusable and all
// later calls return the same error.
func (d *Decoder) Decode() (*Expr, error) {
	if d.err != nil {
		return nil, d.err
	}
	e, err := d.expr(0)
	if err != nil {
		d.err = err
		return nil, err
	}
	return e, nil
}

func (d *Decoder) expr(depth int) (*Expr, error) {
	if depth > maxDepth {
		return nil, &FormatError{Msg: "expressions nested too deeply"}
	}
	n, err := d.readInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &FormatError{Msg: "negative token count " + strconv.Itoa(int(n))}
	}
	// Don't trust the count for allocation.
	e := &Expr{tokens: make([]Token, 0, min(n, 64))}
	for i := int32(0); i < n; i++ {
		t, err := d.token(depth)
		if err != nil {
			return nil, err
		}
		e.tokens = append(e.tokens, t)
	}
	return e, nil
}

func (d *Decoder) token(depth int) (Token, error) {
	tag, err := d.readByte()
	if err != nil {
		return nil, err
	}
	switch tokenKind(tag) {
	case tokenLiteral:
		return d.literal()
	case tokenOperator:
		k, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		if !Key(k).Valid() || Key(k).literalKey() {
			return nil, &FormatError{Msg: "invalid operator key " + strconv.Itoa(int(k))}
		}
		return Operator(k), nil
	case tokenPreEval:
		return d.preEval(depth)
	default:
		return nil, &FormatError{Msg: "unknown token tag " + strconv.Itoa(int(tag))}
	}
}

func (d *Decoder) literal() (*Literal, error) {
	var l Literal
	var err error
	if l.whole, err = d.readDigits(); err != nil {
		return nil, err
	}
	if l.point, err = d.readBool(); err != nil {
		return nil, err
	}
	if l.frac, err = d.readDigits(); err != nil {
		return nil, err
	}
	if l.IsEmpty() || (!l.point && l.frac != "") {
		return nil, &FormatError{Msg: "malformed number " + strconv.Quote(l.whole+"."+l.frac)}
	}
	return &l, nil
}

func (d *Decoder) preEval(depth int) (*PreEval, error) {
	id, err := d.readInt32()
	if err != nil {
		return nil, err
	}
	if p := d.ids[id]; p != nil {
		return p, nil
	}
	e, err := d.expr(depth + 1)
	if err != nil {
		return nil, err
	}
	degrees, err := d.readBool()
	if err != nil {
		return nil, err
	}
	v, err := e.eval(degrees, len(e.tokens))
	if err != nil {
		return nil, &FormatError{Msg: "evaluating saved expression " + strconv.Quote(e.String()), Err: err}
	}
	short, err := d.readString()
	if err != nil {
		return nil, err
	}
	p := &PreEval{value: v, expr: e, degrees: degrees, short: short}
	d.ids[id] = p
	return p, nil
}

// read fills b from the reader.
func (d *Decoder) read(b []byte) error {
	if _, err := io.ReadFull(d.r, b); err != nil {
		return &FormatError{Msg: "reading expression", Err: err}
	}
	return nil
}

func (d *Decoder) readByte() (byte, error) {
	if err := d.read(d.buf[:1]); err != nil {
		return 0, err
	}
	return d.buf[0], nil
}

func (d *Decoder) readBool() (bool, error) {
	b, err := d.readByte()
	return b != 0, err
}

func (d *Decoder) readInt32() (int32, error) {
	if err := d.read(d.buf[:4]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(d.buf[:4])), nil
}

func (d *Decoder) readString() (string, error) {
	if err := d.read(d.buf[:2]); err != nil {
		return "", err
	}
	b := make([]byte, binary.BigEndian.Uint16(d.buf[:2]))
	if err := d.read(b); err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &FormatError{Msg: "invalid UTF-8 in string"}
	}
	return string(b), nil
}

// readDigits reads a string which must contain only ASCII digits.
func (d *Decoder) readDigits() (string, error) {
	s, err := d.readString()
	if err != nil {
		return "", err
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || '9' < s[i] {
			return "", &FormatError{Msg: "non-digit in number " + strconv.Quote(s)}
		}
	}
	return s, nil
}
