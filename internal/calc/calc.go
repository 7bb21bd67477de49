// Package calc is the entry point of the calculator: it parses one line and
// folds it into an integer.
package calc

import (
	"fmt"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/rs/zerolog"

	"github.com/CrimsonDemon567/hexcalc/internal/eval"
	"github.com/CrimsonDemon567/hexcalc/internal/lexer"
	"github.com/CrimsonDemon567/hexcalc/internal/parser"
)

// Calculator evaluates calculation lines. It keeps no state between calls
// and is safe for concurrent use.
type Calculator struct {
	log      zerolog.Logger
	overflow eval.Overflow
	eval     *eval.Evaluator
}

type Option func(*Calculator)

// WithLogger sets the logger used for debug tracing.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Calculator) { c.log = log }
}

// WithOverflow sets the arithmetic overflow policy.
func WithOverflow(o eval.Overflow) Option {
	return func(c *Calculator) { c.overflow = o }
}

func New(opts ...Option) *Calculator {
	c := &Calculator{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	c.eval = eval.New(eval.Options{Overflow: c.overflow})
	return c
}

// Parse evaluates line. Errors are either *parser.SyntaxError or *eval.Error.
func (c *Calculator) Parse(line string) (int64, error) {
	c.debugTokens(line)

	expr, err := parser.Parse(line)
	if err != nil {
		c.log.Debug().Err(err).Str("line", line).Msg("syntax error")
		return 0, err
	}

	if e := c.log.Debug(); e.Enabled() {
		e.Str("tree", repr.String(expr)).Msg("parsed")
	}

	v, err := c.eval.Eval(expr)
	if err != nil {
		c.log.Debug().Err(err).Str("line", line).Msg("evaluation failed")
		return 0, err
	}

	c.log.Debug().Str("line", line).Int64("result", v).Msg("evaluated")
	return v, nil
}

func (c *Calculator) debugTokens(line string) {
	e := c.log.Debug()
	if !e.Enabled() {
		return
	}
	tokens, err := lexer.Lex(line)
	values := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		values = append(values, tok.Value)
	}
	e.Err(err).Str("tokens", strings.Join(values, " ")).Msg("lexed")
}

// Format renders v as decimal, hexadecimal and binary. Negative values show
// their 64-bit two's-complement pattern in the last two.
func Format(v int64) string {
	return fmt.Sprintf("%d : 0x%x : 0b%b", v, uint64(v), uint64(v))
}
