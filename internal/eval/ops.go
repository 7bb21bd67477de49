package eval

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/CrimsonDemon567/hexcalc/internal/parser"
)

const (
	minInt64 = math.MinInt64
	intBits  = 64
)

// decode parses the digits of a literal in the given radix. A negated
// literal is decoded with its sign so that the most negative value fits.
func decode(radix parser.Radix, digits string, neg bool) (int64, error) {
	if neg {
		digits = "-" + digits
	}

	v, err := strconv.ParseInt(digits, int(radix), intBits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrLiteralOverflow
		}
		return 0, fmt.Errorf("invalid %s literal %q: %w", radix, digits, err)
	}
	return v, nil
}

func (e *Evaluator) apply(op *parser.Op, lhs, rhs int64) (int64, error) {
	v, err := e.binary(op.Operator, lhs, rhs)
	if err != nil {
		return 0, &Error{Pos: op.Pos, Err: err}
	}
	return v, nil
}

func (e *Evaluator) binary(op parser.Operator, lhs, rhs int64) (int64, error) {
	trap := e.opts.Overflow == Trap

	switch op {
	case parser.Add:
		r := lhs + rhs
		if trap && (lhs^r)&(rhs^r) < 0 {
			return 0, ErrOverflow
		}
		return r, nil

	case parser.Sub:
		r := lhs - rhs
		if trap && (lhs^rhs)&(lhs^r) < 0 {
			return 0, ErrOverflow
		}
		return r, nil

	case parser.Mul:
		r := lhs * rhs
		if trap && lhs != 0 && (r/lhs != rhs || (lhs == -1 && rhs == minInt64)) {
			return 0, ErrOverflow
		}
		return r, nil

	case parser.Div:
		if rhs == 0 {
			return 0, ErrDivisionByZero
		}
		if trap && lhs == minInt64 && rhs == -1 {
			return 0, ErrOverflow
		}
		// Go's integer division truncates toward zero.
		return lhs / rhs, nil

	case parser.And:
		return lhs & rhs, nil

	case parser.Or:
		return lhs | rhs, nil

	case parser.Xor:
		return lhs ^ rhs, nil

	case parser.Shl:
		if rhs < 0 {
			return 0, ErrNegativeShift
		}
		r := lhs << uint64(rhs)
		if trap {
			if rhs >= intBits && lhs != 0 {
				return 0, ErrOverflow
			}
			if rhs < intBits && r>>uint64(rhs) != lhs {
				return 0, ErrOverflow
			}
		}
		return r, nil

	case parser.Shr:
		if rhs < 0 {
			return 0, ErrNegativeShift
		}
		return lhs >> uint64(rhs), nil
	}

	return 0, fmt.Errorf("unknown operator %v", op)
}
