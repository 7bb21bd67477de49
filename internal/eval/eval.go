// Package eval folds a parsed calculation into a 64-bit signed integer.
package eval

import (
	"errors"
	"fmt"
	"strings"

	plex "github.com/alecthomas/participle/v2/lexer"

	"github.com/CrimsonDemon567/hexcalc/internal/parser"
)

var (
	ErrDivisionByZero  = errors.New("division by zero")
	ErrLiteralOverflow = errors.New("literal out of range for int64")
	ErrOverflow        = errors.New("integer overflow")
	ErrNegativeShift   = errors.New("negative shift count")
)

// Error is an evaluation failure at a position in the input line.
type Error struct {
	Pos plex.Position
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %v", e.Pos.Line, e.Pos.Column, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Overflow selects how arithmetic overflow is handled.
type Overflow int

const (
	// Wrap uses two's-complement wraparound.
	Wrap Overflow = iota
	// Trap reports ErrOverflow.
	Trap
)

func (o Overflow) String() string {
	switch o {
	case Wrap:
		return "wrap"
	case Trap:
		return "trap"
	}
	return fmt.Sprintf("Overflow(%d)", int(o))
}

// ParseOverflow parses "wrap" or "trap".
func ParseOverflow(s string) (Overflow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wrap", "":
		return Wrap, nil
	case "trap":
		return Trap, nil
	}
	return Wrap, fmt.Errorf("unknown overflow policy %q (want wrap or trap)", s)
}

type Options struct {
	Overflow Overflow
}

// Evaluator holds only immutable options and is safe for concurrent use.
type Evaluator struct {
	opts Options
}

func New(opts Options) *Evaluator {
	return &Evaluator{opts: opts}
}

// Eval reduces expr to a single value.
func (e *Evaluator) Eval(expr *parser.Expr) (int64, error) {
	head, err := e.term(expr.Head)
	if err != nil {
		return 0, err
	}

	c := &climber{ev: e, tail: expr.Tail}
	return c.climb(head, minPrecedence)
}

func (e *Evaluator) term(t *parser.Term) (int64, error) {
	p := t.Primary

	if radix, digits, ok := p.Literal(); ok {
		v, err := decode(radix, digits, t.Neg)
		if err != nil {
			return 0, &Error{Pos: p.Pos, Err: err}
		}
		return v, nil
	}

	v, err := e.Eval(p.Group)
	if err != nil {
		return 0, err
	}
	if t.Neg {
		return e.negate(t.Pos, v)
	}
	return v, nil
}

func (e *Evaluator) negate(pos plex.Position, v int64) (int64, error) {
	if e.opts.Overflow == Trap && v == minInt64 {
		return 0, &Error{Pos: pos, Err: ErrOverflow}
	}
	return -v, nil
}
