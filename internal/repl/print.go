package repl

import (
	"fmt"
	"io"

	"github.com/CrimsonDemon567/hexcalc/internal/calc"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

// Printer writes results and failures, optionally colored.
type Printer struct {
	W     io.Writer
	Color bool
}

func (p *Printer) paint(color, s string) string {
	if !p.Color {
		return s
	}
	return ansiBold + color + s + ansiReset
}

// Result prints v in all three bases.
func (p *Printer) Result(v int64) {
	fmt.Fprintln(p.W, p.paint(ansiGreen, calc.Format(v)))
}

// Failure reports that line could not be evaluated.
func (p *Printer) Failure(line string, err error) {
	fmt.Fprintf(p.W, "Failed to parse line '%s':\n%s\n", line, p.paint(ansiRed, err.Error()))
}
