// Package main provides the roll CLI. It parses a dice expression from the
// command line, evaluates it, and prints one result line per roll, or runs a
// named Lua macro instead.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/hexspell/roll/internal/config"
	"github.com/hexspell/roll/internal/dice"
	"github.com/hexspell/roll/internal/expr"
	"github.com/hexspell/roll/internal/observability"
	"github.com/hexspell/roll/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (optional)")
	seed := flag.Int64("seed", 0, "deterministic random seed (0 uses crypto randomness)")
	showSum := flag.Bool("show-sum", false, "print a grand total across all rolls")
	macro := flag.String("macro", "", "run the named Lua macro instead of an expression")
	flag.Parse()

	if *macro == "" && flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: roll [flags] <dice expression>")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger = logger.With(zap.String("session", uuid.New().String()))
	src := newSource(*seed)

	if *macro != "" {
		runMacro(cfg, logger, src, *macro, flag.Args())
		logger.Debug("macro finished",
			zap.String("macro", *macro),
			zap.Duration("elapsed", time.Since(start)),
		)
		return
	}

	input := strings.Join(flag.Args(), " ")
	parsed, err := expr.Parse(input)
	if err != nil {
		logger.Fatal("parsing expression", zap.Error(err))
	}

	evaled, err := expr.NewEvaluator(src, logger).Eval(parsed)
	if err != nil {
		logger.Fatal("evaluating expression", zap.Error(err))
	}

	printResult(parsed, evaled)
	if *showSum {
		total, ok := expr.Total(evaled)
		if ok {
			color.Cyan("total: %d", total)
		}
	}

	logger.Debug("roll finished",
		zap.String("expression", input),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// newSource picks the randomness source: seeded for reproducible rolls,
// crypto otherwise.
func newSource(seed int64) dice.Source {
	if seed != 0 {
		return dice.NewSeededSource(seed)
	}
	return dice.NewCryptoSource()
}

// printResult prints one line per roll: the unevaluated notation (or the
// label) and the total it reduced to. Both trees have the same shape because
// evaluation preserves structure.
func printResult(parsed, evaled expr.Kind) {
	switch p := parsed.(type) {
	case expr.Simple:
		n, _ := evaled.(expr.Simple).Expr.Num()
		color.Green("%s: %d", p.Expr.String(), n)
	case expr.Labeled:
		n, _ := evaled.(expr.Labeled).Expr.Num()
		color.Green("%s: %d", p.Label, n)
	case expr.Separated:
		e := evaled.(expr.Separated)
		for i, part := range p.Parts {
			printResult(part, e.Parts[i])
		}
	}
}

// runMacro loads the configured macro directory and calls the named macro,
// passing any positional arguments as Lua strings.
func runMacro(cfg config.Config, logger *zap.Logger, src dice.Source, name string, rawArgs []string) {
	mgr := scripting.NewManager(src, logger)
	defer mgr.Close()

	if err := mgr.LoadDir(cfg.Macros.Dir, cfg.Macros.InstructionLimit); err != nil {
		logger.Fatal("loading macros", zap.Error(err))
	}

	args := make([]lua.LValue, 0, len(rawArgs))
	for _, a := range rawArgs {
		args = append(args, lua.LString(a))
	}

	ret, err := mgr.Call(name, args...)
	if err != nil {
		logger.Fatal("running macro", zap.Error(err))
	}
	if ret != lua.LNil {
		fmt.Fprintln(os.Stdout, ret.String())
	}
}
