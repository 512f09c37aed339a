package calcexpr

import "strconv"

// SyntaxError is an error indicating that an expression buffer does not form
// a complete expression. It implements InputError.
type SyntaxError struct {
	// Col is the index of the token at which evaluation failed. It may equal
	// the length of the evaluated prefix if the expression ended early.
	Col int
	// Msg describes the problem.
	Msg string
}

func (err *SyntaxError) Error() string {
	return errpos(err.Col, err.Msg)
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// KeyError is an error indicating a key that the expression buffer rejected
// while typing text into a calculator. It implements InputError.
type KeyError struct {
	// Col is the 1-based index of the key among those scanned from the text.
	Col int
	// Key is the rejected key.
	Key Key
}

func (err *KeyError) Error() string {
	return errpos(err.Col, "cannot add "+strconv.Quote(err.Key.String())+" here")
}

func (err *KeyError) Pos() int {
	return err.Col
}

// ArithmeticError is an error indicating that a value in an expression is
// outside the domain of an operation, such as a division by zero or the
// factorial of a non-integer. Err is the underlying error, usually an
// *exactrat.DomainError or *lazyreal.DomainError.
type ArithmeticError struct {
	// Op is the display text of the operation.
	Op string
	// Err is the reason for the error.
	Err error
}

func (err *ArithmeticError) Error() string {
	if err.Op == "" {
		return "arithmetic error: " + err.Err.Error()
	}
	return "arithmetic error in " + err.Op + ": " + err.Err.Error()
}

func (err *ArithmeticError) Unwrap() error {
	return err.Err
}

// FormatError is an error indicating malformed or unreadable serialized data.
// Errors from the underlying reader or writer are wrapped in a FormatError.
type FormatError struct {
	// Msg describes the problem.
	Msg string
	// Err is the underlying error, if any.
	Err error
}

func (err *FormatError) Error() string {
	if err.Err == nil {
		return "calcexpr: " + err.Msg
	}
	return "calcexpr: " + err.Msg + ": " + err.Err.Error()
}

func (err *FormatError) Unwrap() error {
	return err.Err
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error. For SyntaxError, this is a token
	// index; for errors from scanning text, it counts runes or keys from 1.
	Pos() int
}

var (
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*KeyError)(nil)
	_ InputError = (*ScanError)(nil)

	_ error = (*ArithmeticError)(nil)
	_ error = (*FormatError)(nil)
)
