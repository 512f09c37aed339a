// Package calcexpr implements the expression model of a pocket calculator with
// exact and arbitrary-precision results.
//
// An Expr is built one key at a time, the way a user types on a calculator:
// "2", "+", "sin(", "3", "0", ")". Keys that could not lead to a valid
// expression are rejected as they are pressed. Evaluation gives both an exact
// rational result, when there is one, and a lazily computed real which can be
// approximated to any precision, so 1÷3×3 is exactly 1 and √2 can be shown to
// as many digits as anyone wants.
//
// The grammar is forgiving in the ways calculator users expect. Adjacent
// factors multiply, so "2π" and "(1+2)(3+4)" need no ×. Close parens at the
// end may be omitted. Evaluation can ignore dangling operators at the end, so
// a result can be previewed while the user is still typing.
//
// A result can be collapsed into a single token with Abbreviate, after which
// further edits and evaluations reuse its value rather than recomputing it.
// Encoder and Decoder save and restore buffers, writing each collapsed
// result once however many times it appears.
//
// Calculator ties these together into an interactive session.
package calcexpr
