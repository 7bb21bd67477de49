package calc_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrimsonDemon567/hexcalc/internal/calc"
	"github.com/CrimsonDemon567/hexcalc/internal/eval"
	"github.com/CrimsonDemon567/hexcalc/internal/parser"
)

func TestParse(t *testing.T) {
	c := calc.New()

	tests := []struct {
		line string
		want int64
	}{
		{"1 + 2", 3},
		{"2 - 1", 1},
		{"1 * 2", 2},
		{"8 / 4", 2},
		{"0xff & 0x01", 0x01},
		{"0x1 | 0xfe", 0xff},
		{"0xff ^ 0xff", 0x00},
		{"0xff & 0x02 * (3 + 4)", 14},
		{"  b1010 + o12 + 0xa + 10  ", 40},
	}

	for _, tt := range tests {
		got, err := c.Parse(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestParseErrors(t *testing.T) {
	c := calc.New()

	_, err := c.Parse("1 / 0")
	assert.ErrorIs(t, err, eval.ErrDivisionByZero)

	for _, line := range []string{"1 +", "(1 + 2", "", "hello"} {
		_, err := c.Parse(line)
		var serr *parser.SyntaxError
		assert.ErrorAs(t, err, &serr, line)
	}
}

func TestParseIsStateless(t *testing.T) {
	c := calc.New()

	_, err := c.Parse("(1 +")
	require.Error(t, err)

	got, err := c.Parse("1 + 1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)
}

func TestParseConcurrent(t *testing.T) {
	c := calc.New(calc.WithOverflow(eval.Trap))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := c.Parse("(2 + 3) * 4")
				assert.NoError(t, err)
				assert.Equal(t, int64(20), got)
			}
		}()
	}
	wg.Wait()
}

func TestOverflowOption(t *testing.T) {
	_, err := calc.New(calc.WithOverflow(eval.Trap)).Parse("0x7fffffffffffffff * 2")
	assert.ErrorIs(t, err, eval.ErrOverflow)

	got, err := calc.New().Parse("0x7fffffffffffffff * 2")
	require.NoError(t, err)
	assert.Equal(t, int64(-2), got)
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := calc.New(calc.WithLogger(log)).Parse("1 + 2")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"message":"lexed"`)
	assert.Contains(t, out, `"tokens":"1 + 2 "`)
	assert.Contains(t, out, `"message":"parsed"`)
	assert.Contains(t, out, `"result":3`)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		v    int64
		want string
	}{
		{0, "0 : 0x0 : 0b0"},
		{14, "14 : 0xe : 0b1110"},
		{255, "255 : 0xff : 0b11111111"},
		{-1, "-1 : 0xffffffffffffffff : 0b1111111111111111111111111111111111111111111111111111111111111111"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, calc.Format(tt.v))
	}
}
