package parser

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	plex "github.com/alecthomas/participle/v2/lexer"

	"github.com/CrimsonDemon567/hexcalc/internal/lexer"
)

var calculation = participle.MustBuild[Expr](
	participle.Lexer(lexer.Definition{}),
)

// SyntaxError reports input that does not match the calculation grammar.
type SyntaxError struct {
	Pos plex.Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Parse parses one line into an expression tree. Any input that is not
// fully consumed by the grammar fails with a *SyntaxError.
func Parse(line string) (*Expr, error) {
	expr, err := calculation.ParseString("", line)
	if err != nil {
		return nil, syntaxError(err)
	}
	return expr, nil
}

// Grammar returns the EBNF of the calculation grammar.
func Grammar() string {
	return calculation.String()
}

func syntaxError(err error) *SyntaxError {
	var perr participle.Error
	if errors.As(err, &perr) {
		return &SyntaxError{Pos: perr.Position(), Msg: perr.Message()}
	}
	return &SyntaxError{Pos: plex.Position{Line: 1, Column: 1}, Msg: err.Error()}
}
