package calcexpr

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// keyNames maps the names that can be typed for keys.
var keyNames = map[string]Key{
	"sin":    FunSin,
	"cos":    FunCos,
	"tan":    FunTan,
	"asin":   FunArcsin,
	"arcsin": FunArcsin,
	"acos":   FunArccos,
	"arccos": FunArccos,
	"atan":   FunArctan,
	"arctan": FunArctan,
	"ln":     FunLn,
	"log":    FunLog,
	"exp":    FunExp,
	"sqrt":   OpSqrt,
	"pi":     ConstPi,
	"e":      ConstE,
}

// keyRunes maps single runes to keys.
var keyRunes = map[rune]Key{
	'.': DecPoint,
	'+': OpAdd,
	'-': OpSub,
	'−': OpSub,
	'*': OpMul,
	'×': OpMul,
	'·': OpMul,
	'/': OpDiv,
	'÷': OpDiv,
	'^': OpPow,
	'√': OpSqrt,
	'!': OpFact,
	'²': OpSqr,
	'%': OpPct,
	'(': LParen,
	')': RParen,
	'π': ConstPi,
}

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	eof  bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the keys for the next token in the input and appends them to
// dst. At the end of the input, the result is dst with io.EOF.
func (l *lexer) next(dst []Key) ([]Key, error) {
	if l.eof {
		return dst, io.EOF
	}
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.eof = true
			}
			return dst, err
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9':
			return append(dst, Digit0+Key(r-'0')), nil
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return dst, err
			}
			k, ok := keyNames[strings.ToLower(l.buf.String())]
			if !ok {
				return dst, l.error()
			}
			dst = append(dst, k)
			if k.IsFunc() || k == OpSqrt {
				return l.paren(dst, k)
			}
			return dst, nil
		default:
			if k, ok := keyRunes[r]; ok {
				return append(dst, k), nil
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return dst, l.error()
		}
	}
}

// paren consumes an open paren following a function name. Function keys imply
// the paren, so it is dropped for them; the square root key does not, so it
// is kept for sqrt.
func (l *lexer) paren(dst []Key, k Key) ([]Key, error) {
	r, err := l.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			// The function name was the last token. Leave the EOF for the
			// next call.
			return dst, nil
		}
		return dst, err
	}
	if r != '(' {
		l.unreadRune()
		return dst, nil
	}
	if k == OpSqrt {
		dst = append(dst, LParen)
	}
	return dst, nil
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return nil
		}
	}
}

func (l *lexer) error() error {
	return &ScanError{
		Text: l.buf.String(),
		Col:  l.rune,
	}
}

// ScanKeys reads text and converts it to the key presses that would type it.
// Names of functions and constants, such as "sin" and "pi", produce the
// corresponding keys. A function name absorbs one following open paren, since
// function keys include it. Whitespace is ignored.
func ScanKeys(src io.RuneScanner) ([]Key, error) {
	l := lex(src)
	var keys []Key
	for {
		var err error
		keys, err = l.next(keys)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return keys, nil
			}
			return keys, err
		}
	}
}

// ParseKeys is a shortcut to scan keys from a string.
func ParseKeys(s string) ([]Key, error) {
	return ScanKeys(strings.NewReader(s))
}

// ScanError indicates text that does not name any key. It implements
// InputError.
type ScanError struct {
	// Text is the token the lexer was scanning when the error was
	// encountered.
	Text string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *ScanError) Error() string {
	return "unknown key at column " + strconv.Itoa(err.Col) + ": " + strconv.Quote(err.Text)
}

func (err *ScanError) Pos() int {
	return err.Col
}
