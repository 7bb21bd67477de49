// Package repl drives a Calculator from a terminal or from piped input.
package repl

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"
)

// Evaluator is the one operation the loops need from the calculator.
type Evaluator interface {
	Parse(line string) (int64, error)
}

// evaluate evaluates one line and prints the outcome.
func evaluate(ev Evaluator, p *Printer, line string) (ok bool) {
	v, err := ev.Parse(line)
	if err != nil {
		p.Failure(line, err)
		return false
	}
	p.Result(v)
	return true
}

// RunBatch evaluates every non-blank line of r, continuing past failures.
// It returns the number of lines that failed.
func RunBatch(ctx context.Context, ev Evaluator, r io.Reader, p *Printer) (int, error) {
	failed := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return failed, err
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !evaluate(ev, p, line) {
			failed++
		}
	}
	return failed, sc.Err()
}

// ---------------------------
// Interactive session
// ---------------------------

// Session is an interactive prompt with persistent history.
type Session struct {
	Eval        Evaluator
	Printer     *Printer
	Prompt      string
	HistoryFile string
	Log         zerolog.Logger
}

// handle processes one prompt line. It reports whether the line should be
// kept in history and whether the session should end.
func (s *Session) handle(line string) (record, quit bool) {
	trimmed := strings.TrimSpace(line)
	switch trimmed {
	case "":
		return false, false
	case ":q", ":quit":
		return false, true
	}
	evaluate(s.Eval, s.Printer, line)
	return true, false
}

// Run prompts until EOF, Ctrl-C, :quit or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	ln := liner.NewLiner()
	var closeOnce sync.Once
	closeLiner := func() { closeOnce.Do(func() { _ = ln.Close() }) }
	defer closeLiner()

	ln.SetCtrlCAborts(true)
	s.readHistory(ln)
	defer s.writeHistory(ln)

	stop := context.AfterFunc(ctx, closeLiner)
	defer stop()

	for {
		line, err := ln.Prompt(s.Prompt)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			return err
		}

		record, quit := s.handle(line)
		if quit {
			return nil
		}
		if record {
			ln.AppendHistory(line)
		}
	}
}

func (s *Session) readHistory(ln *liner.State) {
	if s.HistoryFile == "" {
		return
	}
	f, err := os.Open(s.HistoryFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.Log.Warn().Err(err).Str("path", s.HistoryFile).Msg("cannot read history")
		}
		return
	}
	defer f.Close()
	if _, err := ln.ReadHistory(f); err != nil {
		s.Log.Warn().Err(err).Str("path", s.HistoryFile).Msg("cannot read history")
	}
}

func (s *Session) writeHistory(ln *liner.State) {
	if s.HistoryFile == "" {
		return
	}
	f, err := os.Create(s.HistoryFile)
	if err != nil {
		s.Log.Warn().Err(err).Str("path", s.HistoryFile).Msg("cannot write history")
		return
	}
	defer f.Close()
	if _, err := ln.WriteHistory(f); err != nil {
		s.Log.Warn().Err(err).Str("path", s.HistoryFile).Msg("cannot write history")
	}
}
