package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrimsonDemon567/hexcalc/internal/parser"
)

func TestParseFlatSequence(t *testing.T) {
	expr, err := parser.Parse("1 + 0x2 * o3 << b1")
	require.NoError(t, err)

	require.NotNil(t, expr.Head)
	radix, digits, ok := expr.Head.Primary.Literal()
	require.True(t, ok)
	assert.Equal(t, parser.Decimal, radix)
	assert.Equal(t, "1", digits)

	require.Len(t, expr.Tail, 3)
	assert.Equal(t, parser.Add, expr.Tail[0].Operator)
	assert.Equal(t, parser.Mul, expr.Tail[1].Operator)
	assert.Equal(t, parser.Shl, expr.Tail[2].Operator)

	radix, digits, _ = expr.Tail[0].Term.Primary.Literal()
	assert.Equal(t, parser.Hexadecimal, radix)
	assert.Equal(t, "2", digits)

	radix, digits, _ = expr.Tail[1].Term.Primary.Literal()
	assert.Equal(t, parser.Octal, radix)
	assert.Equal(t, "3", digits)

	radix, digits, _ = expr.Tail[2].Term.Primary.Literal()
	assert.Equal(t, parser.Binary, radix)
	assert.Equal(t, "1", digits)
}

func TestParseAllOperators(t *testing.T) {
	expr, err := parser.Parse("1 + 2 - 3 * 4 / 5 & 6 | 7 ^ 8 << 9 >> 10")
	require.NoError(t, err)

	var ops []parser.Operator
	for _, op := range expr.Tail {
		ops = append(ops, op.Operator)
	}
	assert.Equal(t, []parser.Operator{
		parser.Add, parser.Sub, parser.Mul, parser.Div,
		parser.And, parser.Or, parser.Xor, parser.Shl, parser.Shr,
	}, ops)
}

func TestParseNestedGroups(t *testing.T) {
	expr, err := parser.Parse("((1 + 2)) * 3")
	require.NoError(t, err)

	outer := expr.Head.Primary.Group
	require.NotNil(t, outer)
	require.Empty(t, outer.Tail)

	inner := outer.Head.Primary.Group
	require.NotNil(t, inner)
	require.Len(t, inner.Tail, 1)
	assert.Equal(t, parser.Add, inner.Tail[0].Operator)

	_, _, ok := expr.Head.Primary.Literal()
	assert.False(t, ok)
}

func TestParseNegation(t *testing.T) {
	expr, err := parser.Parse("-7 - -2")
	require.NoError(t, err)

	assert.True(t, expr.Head.Neg)
	require.Len(t, expr.Tail, 1)
	assert.Equal(t, parser.Sub, expr.Tail[0].Operator)
	assert.True(t, expr.Tail[0].Term.Neg)
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"1 +",
		"(1 + 2",
		"1 + 2)",
		"1 2",
		"* 3",
		"0x",
		"1 % 2",
		"()",
		"--1",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			expr, err := parser.Parse(src)
			assert.Nil(t, expr)

			var serr *parser.SyntaxError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, 1, serr.Pos.Line)
			assert.NotEmpty(t, serr.Msg)
		})
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	_, err := parser.Parse("1 + 0xz")

	var serr *parser.SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 7, serr.Pos.Column)
	assert.Contains(t, serr.Error(), "1:7:")
}

func TestOperatorString(t *testing.T) {
	assert.Equal(t, "<<", parser.Shl.String())
	assert.Equal(t, "^", parser.Xor.String())
	assert.Equal(t, "Operator(0)", parser.Operator(0).String())
}

func TestGrammar(t *testing.T) {
	g := parser.Grammar()
	assert.Contains(t, g, "Expr")
	assert.Contains(t, g, "Primary")
}
