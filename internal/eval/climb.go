package eval

import (
	"github.com/CrimsonDemon567/hexcalc/internal/parser"
)

// ---------------------------
// Precedence tiers
// ---------------------------

const (
	minPrecedence = tierAdditive

	tierAdditive       = 1
	tierMultiplicative = 2
	tierBitwise        = 3
)

// precedence returns the binding tier of op. Higher binds tighter; every
// operator is left-associative.
func precedence(op parser.Operator) int {
	switch op {
	case parser.Add, parser.Sub:
		return tierAdditive
	case parser.Mul, parser.Div:
		return tierMultiplicative
	case parser.And, parser.Or, parser.Xor, parser.Shl, parser.Shr:
		return tierBitwise
	}
	return -1
}

// ---------------------------
// Climbing
// ---------------------------

// climber walks the flat operator/term run of a single Expr level.
type climber struct {
	ev   *Evaluator
	tail []*parser.Op
	pos  int
}

func (c *climber) peek() (*parser.Op, int, bool) {
	if c.pos >= len(c.tail) {
		return nil, 0, false
	}
	op := c.tail[c.pos]
	return op, precedence(op.Operator), true
}

// climb folds operators binding at least as tightly as minPrec into lhs.
// A following operator of a strictly higher tier is resolved first by
// recursing on the right-hand side.
func (c *climber) climb(lhs int64, minPrec int) (int64, error) {
	for {
		op, prec, ok := c.peek()
		if !ok || prec < minPrec {
			return lhs, nil
		}
		c.pos++

		rhs, err := c.ev.term(op.Term)
		if err != nil {
			return 0, err
		}

		for {
			_, next, ok := c.peek()
			if !ok || next <= prec {
				break
			}
			rhs, err = c.climb(rhs, prec+1)
			if err != nil {
				return 0, err
			}
		}

		lhs, err = c.ev.apply(op, lhs, rhs)
		if err != nil {
			return 0, err
		}
	}
}
