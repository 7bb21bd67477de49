package parser

import (
	"fmt"
	"strings"

	plex "github.com/alecthomas/participle/v2/lexer"
)

// Expr is one level of a calculation: a head term followed by a flat run of
// operator/term pairs. Precedence is not encoded here; the evaluator applies
// it while folding.
type Expr struct {
	Pos plex.Position

	Head *Term `@@`
	Tail []*Op `@@*`
}

// Op is an infix operator together with its right-hand term.
type Op struct {
	Pos plex.Position

	Operator Operator `@("+" | "-" | "*" | "/" | "&" | "|" | "^" | "<<" | ">>")`
	Term     *Term    `@@`
}

// Term is an optionally negated primary.
type Term struct {
	Pos plex.Position

	Neg     bool     `@"-"?`
	Primary *Primary `@@`
}

// Primary is either a literal, tagged by which field is set, or a
// parenthesized sub-expression.
type Primary struct {
	Pos plex.Position

	Hex   *string `  @Hex`
	Oct   *string `| @Oct`
	Bin   *string `| @Bin`
	Dec   *string `| @Dec`
	Group *Expr   `| "(" @@ ")"`
}

// Radix is the base a literal is written in.
type Radix int

const (
	Binary      Radix = 2
	Octal       Radix = 8
	Decimal     Radix = 10
	Hexadecimal Radix = 16
)

func (r Radix) String() string {
	switch r {
	case Binary:
		return "binary"
	case Octal:
		return "octal"
	case Decimal:
		return "decimal"
	case Hexadecimal:
		return "hexadecimal"
	}
	return fmt.Sprintf("radix(%d)", int(r))
}

// Literal returns the radix and the digits of p with the radix prefix
// stripped. ok is false when p is a sub-expression.
func (p *Primary) Literal() (radix Radix, digits string, ok bool) {
	switch {
	case p.Hex != nil:
		return Hexadecimal, strings.TrimPrefix(*p.Hex, "0x"), true
	case p.Oct != nil:
		return Octal, strings.TrimPrefix(*p.Oct, "o"), true
	case p.Bin != nil:
		return Binary, strings.TrimPrefix(*p.Bin, "b"), true
	case p.Dec != nil:
		return Decimal, *p.Dec, true
	}
	return 0, "", false
}

// ---------------------------
// Operators
// ---------------------------

// Operator is a binary infix operator.
type Operator int

const (
	Add Operator = iota + 1
	Sub
	Mul
	Div
	And
	Or
	Xor
	Shl
	Shr
)

var operatorSymbols = [...]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	And: "&",
	Or:  "|",
	Xor: "^",
	Shl: "<<",
	Shr: ">>",
}

// Capture implements participle.Capture.
func (o *Operator) Capture(values []string) error {
	sym := strings.Join(values, "")
	for op, s := range operatorSymbols {
		if s != "" && s == sym {
			*o = Operator(op)
			return nil
		}
	}
	return fmt.Errorf("unknown operator %q", sym)
}

func (o Operator) String() string {
	if o > 0 && int(o) < len(operatorSymbols) {
		return operatorSymbols[o]
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}
