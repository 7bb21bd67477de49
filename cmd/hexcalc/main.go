package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/CrimsonDemon567/hexcalc/internal/calc"
	"github.com/CrimsonDemon567/hexcalc/internal/config"
	"github.com/CrimsonDemon567/hexcalc/internal/parser"
	"github.com/CrimsonDemon567/hexcalc/internal/repl"
)

var version = "dev"

type cli struct {
	Config   string           `help:"YAML config file." type:"path" env:"HEXCALC_CONFIG"`
	LogLevel string           `help:"Log level (debug, info, warn, error)." env:"HEXCALC_LOG_LEVEL"`
	Overflow string           `help:"Overflow policy (wrap, trap)." env:"HEXCALC_OVERFLOW"`
	History  string           `help:"History file for the interactive prompt." type:"path" env:"HEXCALC_HISTORY"`
	NoColor  bool             `help:"Disable colored output." env:"HEXCALC_NO_COLOR"`
	Grammar  bool             `help:"Print the expression grammar and exit."`
	Version  kong.VersionFlag `short:"V" help:"Print version and exit."`

	Exprs []string `arg:"" optional:"" name:"expr" help:"Expressions to evaluate. Reads stdin when omitted."`
}

func main() {
	var args cli
	kctx := kong.Parse(&args,
		kong.Name("hexcalc"),
		kong.Description("Hex calculator: evaluates integer expressions over decimal, 0x hex, o octal and b binary literals."),
		kong.Vars{"version": version},
	)

	cfg, err := loadConfig(&args)
	kctx.FatalIfErrorf(err)

	os.Exit(run(&args, cfg))
}

// loadConfig merges flags over the config file.
func loadConfig(args *cli) (config.Config, error) {
	cfg, err := config.Load(args.Config)
	if err != nil {
		return cfg, err
	}
	if args.LogLevel != "" {
		cfg.LogLevel = args.LogLevel
	}
	if args.Overflow != "" {
		cfg.Overflow = args.Overflow
	}
	if args.History != "" {
		cfg.HistoryFile = args.History
	}
	if args.NoColor {
		cfg.NoColor = true
	}
	return cfg, cfg.Validate()
}

func run(args *cli, cfg config.Config) int {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(cfg.Level())

	if args.Grammar {
		fmt.Print(parser.Grammar())
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := calc.New(calc.WithLogger(logger), calc.WithOverflow(cfg.OverflowPolicy()))
	printer := &repl.Printer{W: os.Stdout, Color: !cfg.NoColor && isTerminal(os.Stdout)}

	logger.Debug().Str("version", version).Str("overflow", cfg.Overflow).Msg("starting")

	switch {
	case len(args.Exprs) > 0:
		in := strings.NewReader(strings.Join(args.Exprs, "\n"))
		failed, err := repl.RunBatch(ctx, c, in, printer)
		if err != nil {
			logger.Error().Err(err).Msg("evaluating arguments")
			return 1
		}
		return exitCode(failed)

	case !isTerminal(os.Stdin):
		failed, err := repl.RunBatch(ctx, c, os.Stdin, printer)
		if err != nil {
			logger.Error().Err(err).Msg("reading input")
			return 1
		}
		return exitCode(failed)

	default:
		s := &repl.Session{
			Eval:        c,
			Printer:     printer,
			Prompt:      cfg.Prompt,
			HistoryFile: cfg.HistoryFile,
			Log:         logger,
		}
		if err := s.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("prompt failed")
			return 1
		}
		return 0
	}
}

func exitCode(failed int) int {
	if failed > 0 {
		return 1
	}
	return 0
}

func isTerminal(f interface{ Fd() uintptr }) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
