package calcexpr

import "strconv"

// Key identifies a calculator key. Keys are the unit of input to an Expr, and
// Operator tokens hold the key that created them. The numeric values of keys
// are part of the serialization format and never change.
type Key int32

const (
	KeyNone Key = iota

	Digit0
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	DecPoint

	OpAdd // binary +
	OpSub // binary -, also unary minus
	OpMul // binary ×
	OpDiv // binary ÷
	OpPow // binary ^
	OpSqrt
	OpFact // suffix !
	OpSqr  // suffix ²
	OpPct  // suffix %

	LParen
	RParen

	// Function keys imply their own open paren.
	FunSin
	FunCos
	FunTan
	FunArcsin
	FunArccos
	FunArctan
	FunLn
	FunLog
	FunExp

	ConstPi
	ConstE

	numKeys
)

var keyText = [numKeys]string{
	KeyNone:   "",
	Digit0:    "0",
	Digit1:    "1",
	Digit2:    "2",
	Digit3:    "3",
	Digit4:    "4",
	Digit5:    "5",
	Digit6:    "6",
	Digit7:    "7",
	Digit8:    "8",
	Digit9:    "9",
	DecPoint:  ".",
	OpAdd:     "+",
	OpSub:     "−",
	OpMul:     "×",
	OpDiv:     "÷",
	OpPow:     "^",
	OpSqrt:    "√",
	OpFact:    "!",
	OpSqr:     "²",
	OpPct:     "%",
	LParen:    "(",
	RParen:    ")",
	FunSin:    "sin(",
	FunCos:    "cos(",
	FunTan:    "tan(",
	FunArcsin: "arcsin(",
	FunArccos: "arccos(",
	FunArctan: "arctan(",
	FunLn:     "ln(",
	FunLog:    "log(",
	FunExp:    "exp(",
	ConstPi:   "π",
	ConstE:    "e",
}

// String returns the non-localized display text of the key. Function keys
// include their open paren.
func (k Key) String() string {
	if !k.Valid() {
		return "Key(" + strconv.Itoa(int(k)) + ")"
	}
	return keyText[k]
}

// Valid reports whether k is a key other than KeyNone.
func (k Key) Valid() bool {
	return KeyNone < k && k < numKeys
}

// Digit returns the value of a digit key. ok is false if k is not a digit.
func (k Key) Digit() (d int, ok bool) {
	if Digit0 <= k && k <= Digit9 {
		return int(k - Digit0), true
	}
	return 0, false
}

// IsBinary reports whether k is a binary operator. Note that OpSub is binary
// even though it also serves as unary minus.
func (k Key) IsBinary() bool {
	return OpAdd <= k && k <= OpPow
}

// IsSuffix reports whether k is a suffix operator.
func (k Key) IsSuffix() bool {
	return OpFact <= k && k <= OpPct
}

// IsFunc reports whether k is a named function.
func (k Key) IsFunc() bool {
	return FunSin <= k && k <= FunExp
}

// IsConst reports whether k is a named constant.
func (k Key) IsConst() bool {
	return k == ConstPi || k == ConstE
}

// literalKey reports whether k contributes to a literal.
func (k Key) literalKey() bool {
	return Digit0 <= k && k <= DecPoint
}
